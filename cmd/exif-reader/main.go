package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"exif-reader/internal/config"
	"exif-reader/internal/logger"
	"exif-reader/internal/metadata"
	"exif-reader/internal/shutdown"

	"github.com/urfave/cli/v3"
)

const (
	AppName    = "EXIF Reader"
	AppID      = "com.exifreader.viewer"
	AppVersion = "1.0.0"
)

func main() {
	cmd := &cli.Command{
		Name:      "exif-reader",
		Usage:     "Show a JPEG next to the EXIF metadata stored in it",
		ArgsUsage: "[FILE]",
		Version:   AppVersion,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "debug, info, warn or error",
				Value:   "info",
				Sources: cli.EnvVars("LOG_LEVEL"),
			},
			&cli.StringFlag{
				Name:  "scale-quality",
				Usage: "picture resampling: smooth or fast",
				Value: "smooth",
			},
			&cli.IntFlag{
				Name:  "width",
				Usage: "initial window width",
				Value: 350,
			},
			&cli.IntFlag{
				Name:  "height",
				Usage: "initial window height",
				Value: 650,
			},
			&cli.DurationFlag{
				Name:  "shutdown-timeout",
				Usage: "how long each component may take to shut down",
				Value: shutdown.DefaultTimeout,
			},
			&cli.BoolFlag{
				Name:  "timings",
				Usage: "record load phase timings and log them on exit",
				Value: true,
			},
		},
		Action: runViewer,
		Commands: []*cli.Command{
			{
				Name:      "dump",
				Usage:     "Print the metadata of one or more JPEG files",
				ArgsUsage: "FILE...",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "text or yaml",
						Value:   metadata.FormatText,
					},
				},
				Action: runDump,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "exif-reader: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig reads the flags shared by every command.
func loadConfig(cmd *cli.Command) (*config.Config, error) {
	root := cmd.Root()

	cfg := config.NewDefaultConfig()
	cfg.LogLevel = root.String("log-level")
	cfg.ScaleQuality = root.String("scale-quality")
	cfg.WindowWidth = int(root.Int("width"))
	cfg.WindowHeight = int(root.Int("height"))
	cfg.ShutdownTimeout = root.Duration("shutdown-timeout")
	cfg.Timings = root.Bool("timings")

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func runViewer(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cmd.Args().Len() > 1 {
		return fmt.Errorf("expected at most one file, got %d", cmd.Args().Len())
	}

	log := logger.NewConsoleLogger(cfg.Level())
	application, err := NewApplication(cfg, log)
	if err != nil {
		return fmt.Errorf("application initialization failed: %w", err)
	}

	return application.Run(ctx, cmd.Args().First())
}

func runDump(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	format := cmd.String("format")
	if format != metadata.FormatText && format != metadata.FormatYAML {
		return fmt.Errorf("unknown format %q", format)
	}

	paths := cmd.Args().Slice()
	if len(paths) == 0 {
		return errors.New("dump needs at least one file")
	}

	log := logger.NewZerolog(os.Stderr, cfg.Level()).WithComponent("dump")
	extractor := metadata.NewExtractor(metadata.WithLogger(log))

	return dump(ctx, cmd.Root().Writer, extractor, paths, format, log)
}

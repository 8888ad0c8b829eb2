package config

import (
	"fmt"
	"time"

	"exif-reader/internal/imaging"
	"exif-reader/internal/logger"
	"exif-reader/internal/shutdown"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Smallest window that still leaves room for all three rows.
const (
	MinWindowWidth  = 200
	MinWindowHeight = 300
)

const MinShutdownTimeout = 100 * time.Millisecond

// Config represents the application configuration.
type Config struct {
	LogLevel     string
	ScaleQuality string
	WindowWidth  int
	WindowHeight int

	// ShutdownTimeout bounds each component's shutdown.
	ShutdownTimeout time.Duration
	// Timings turns load phase timing on or off.
	Timings bool
}

// NewDefaultConfig returns the configuration used when no flag is given.
func NewDefaultConfig() *Config {
	return &Config{
		LogLevel:     "info",
		ScaleQuality: imaging.QualitySmooth,
		WindowWidth:  350,
		WindowHeight: 650,

		ShutdownTimeout: shutdown.DefaultTimeout,
		Timings:         true,
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.LogLevel, validation.Required, validation.By(validLogLevel)),
		validation.Field(&c.ScaleQuality, validation.Required, validation.In(imaging.QualitySmooth, imaging.QualityFast)),
		validation.Field(&c.WindowWidth, validation.Required, validation.Min(MinWindowWidth)),
		validation.Field(&c.WindowHeight, validation.Required, validation.Min(MinWindowHeight)),
		validation.Field(&c.ShutdownTimeout, validation.Required, validation.Min(MinShutdownTimeout)),
	)
}

// Level returns the parsed log level. Call Validate first.
func (c *Config) Level() logger.LogLevel {
	level, err := logger.ParseLevel(c.LogLevel)
	if err != nil {
		return logger.InfoLevel
	}
	return level
}

func validLogLevel(value interface{}) error {
	s, _ := value.(string)
	if _, err := logger.ParseLevel(s); err != nil {
		return fmt.Errorf("must be one of debug, info, warn, error")
	}
	return nil
}

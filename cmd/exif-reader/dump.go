package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"exif-reader/internal/logger"
	"exif-reader/internal/metadata"
)

// dump renders the entries of every file in paths to w. A file that cannot
// be read does not stop the others; all failures are returned together.
func dump(ctx context.Context, w io.Writer, extractor *metadata.Extractor, paths []string, format string, log logger.Logger) error {
	var errs []error
	for i, path := range paths {
		if err := ctx.Err(); err != nil {
			return err
		}

		entries, err := extractor.Extract(path)
		if err != nil {
			log.Error("extraction failed", err, map[string]interface{}{"path": path})
			errs = append(errs, err)
			continue
		}

		if len(paths) > 1 {
			if err := writeFileHeader(w, path, format, i); err != nil {
				return err
			}
		}
		if err := metadata.Render(w, entries, format); err != nil {
			return fmt.Errorf("failed to render %s: %w", path, err)
		}
	}
	return errors.Join(errs...)
}

func writeFileHeader(w io.Writer, path, format string, index int) error {
	var err error
	switch format {
	case metadata.FormatYAML:
		_, err = fmt.Fprintf(w, "---\n# %s\n", path)
	default:
		if index > 0 {
			_, err = fmt.Fprintln(w)
		}
		if err == nil {
			_, err = fmt.Fprintf(w, "==> %s <==\n", path)
		}
	}
	return err
}

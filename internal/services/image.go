package services

import (
	"bytes"
	"context"
	"fmt"
	"image/jpeg"
	"io"
	"os"
	"path/filepath"
	"time"

	"exif-reader/internal/debug/timing"
	"exif-reader/internal/logger"
	"exif-reader/internal/metadata"
	"exif-reader/internal/models"

	"fyne.io/fyne/v2/storage"
	"github.com/gabriel-vasile/mimetype"
)

// JPEGExtensions are the file types offered by the open dialog.
var JPEGExtensions = []string{".jpg", ".jpeg", ".JPG", ".JPEG"}

// ImageService loads JPEG files into documents: bitmap and metadata read
// from a single pass over the file.
type ImageService struct {
	extractor *metadata.Extractor
	timings   *timing.Tracker
	logger    logger.Logger
}

func NewImageService(extractor *metadata.Extractor, log logger.Logger) *ImageService {
	if log == nil {
		log = logger.Nop()
	}
	if extractor == nil {
		extractor = metadata.NewExtractor(metadata.WithLogger(log))
	}
	return &ImageService{
		extractor: extractor,
		timings:   timing.NewTracker(),
		logger:    log,
	}
}

// FileFilter restricts the open dialog to JPEG files.
func (is *ImageService) FileFilter() storage.FileFilter {
	return storage.NewExtensionFileFilter(JPEGExtensions)
}

// Timings exposes the per-phase load durations.
func (is *ImageService) Timings() *timing.Tracker {
	return is.timings
}

// LoadFile reads and decodes the JPEG at path.
func (is *ImageService) LoadFile(ctx context.Context, path string) (*models.Document, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	stop := is.timings.Start("read")
	data, err := os.ReadFile(path)
	stop()
	if err != nil {
		return nil, &metadata.DecodeError{Path: path, Op: "read", Err: err}
	}
	return is.load(ctx, path, data)
}

// LoadReader reads r to the end and decodes it as a JPEG named name.
func (is *ImageService) LoadReader(ctx context.Context, name string, r io.Reader) (*models.Document, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	stop := is.timings.Start("read")
	data, err := io.ReadAll(r)
	stop()
	if err != nil {
		return nil, &metadata.DecodeError{Path: name, Op: "read", Err: err}
	}
	return is.load(ctx, name, data)
}

func (is *ImageService) load(ctx context.Context, path string, data []byte) (*models.Document, error) {
	start := time.Now()
	defer is.timings.Start("load")()

	if mime := mimetype.Detect(data); !mime.Is("image/jpeg") {
		return nil, &metadata.DecodeError{
			Path: path,
			Op:   "sniff",
			Err:  fmt.Errorf("%w: detected %s", metadata.ErrNotJPEG, mime.String()),
		}
	}

	stopDecode := is.timings.Start("decode")
	img, err := jpeg.Decode(bytes.NewReader(data))
	stopDecode()
	if err != nil {
		return nil, &metadata.DecodeError{Path: path, Op: "decode", Err: fmt.Errorf("failed to decode bitmap: %w", err)}
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	stopExtract := is.timings.Start("extract")
	report, err := is.extractor.Analyze(path, data)
	stopExtract()
	if err != nil {
		return nil, err
	}

	doc := &models.Document{
		Path:     path,
		Name:     filepath.Base(path),
		Original: img,
		Entries:  report.Entries,
		Size:     int64(len(data)),
		LoadedAt: time.Now(),
	}

	is.logger.Info("image loaded", map[string]interface{}{
		"path":     path,
		"width":    img.Bounds().Dx(),
		"height":   img.Bounds().Dy(),
		"entries":  len(report.Entries),
		"skipped":  report.Skipped,
		"duration": time.Since(start).String(),
	})
	return doc, nil
}

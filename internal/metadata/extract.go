package metadata

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"exif-reader/internal/logger"

	"github.com/rwcarlsen/goexif/exif"
	"github.com/rwcarlsen/goexif/tiff"
)

var (
	ErrNotJPEG            = errors.New("not a JPEG stream")
	ErrMalformedContainer = errors.New("malformed EXIF container")
)

// DecodeError reports a file that is not a JPEG or whose EXIF container
// cannot be decoded.
type DecodeError struct {
	Path string
	Op   string
	Err  error
}

func (e *DecodeError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("metadata: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("metadata: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Entry is one named tag of the flattened metadata set.
type Entry struct {
	Name    string
	Segment Segment
	TagID   uint16
	Value   Value
}

// Report is the outcome of a single extraction.
type Report struct {
	Entries []Entry
	// Skipped counts tags whose id the registry could not resolve.
	Skipped int
	// Warnings holds the non-fatal decoder complaints that were suppressed.
	Warnings []error
}

type Extractor struct {
	registry Registry
	logger   logger.Logger
}

type Option func(*Extractor)

func WithRegistry(r Registry) Option {
	return func(e *Extractor) {
		e.registry = r
	}
}

func WithLogger(l logger.Logger) Option {
	return func(e *Extractor) {
		if l != nil {
			e.logger = l
		}
	}
}

func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{
		registry: DefaultRegistry(),
		logger:   logger.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

var defaultExtractor = NewExtractor()

// Extract reads the file at path with the default registry and returns its
// tags sorted by name.
func Extract(path string) ([]Entry, error) {
	return defaultExtractor.Extract(path)
}

func (e *Extractor) Extract(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &DecodeError{Path: path, Op: "read", Err: err}
	}
	report, err := e.Analyze(path, data)
	if err != nil {
		return nil, err
	}
	return report.Entries, nil
}

func (e *Extractor) ExtractBytes(data []byte) ([]Entry, error) {
	report, err := e.Analyze("", data)
	if err != nil {
		return nil, err
	}
	return report.Entries, nil
}

// Analyze decodes data and flattens all four segments into one name-sorted
// set. path is only used for error messages and logging.
func (e *Extractor) Analyze(path string, data []byte) (*Report, error) {
	payload, err := exifPayload(data)
	if err != nil {
		return nil, &DecodeError{Path: path, Op: "scan", Err: err}
	}
	if payload == nil {
		e.logger.Debug("no EXIF segment", map[string]interface{}{"path": path})
		return &Report{Entries: []Entry{}}, nil
	}

	var scope warningScope

	x, err := exif.Decode(bytes.NewReader(payload))
	if err != nil {
		if x == nil || exif.IsCriticalError(err) {
			return nil, &DecodeError{Path: path, Op: "decode", Err: fmt.Errorf("%w: %v", ErrMalformedContainer, err)}
		}
		scope.add(err)
	}

	dirs, err := segmentDirs(x)
	if err != nil {
		return nil, &DecodeError{Path: path, Op: "decode", Err: fmt.Errorf("%w: %v", ErrMalformedContainer, err)}
	}

	report := &Report{}
	byName := make(map[string]Entry)
	for _, segment := range Segments {
		dir := dirs[segment]
		if dir == nil {
			continue
		}
		for _, tag := range dir.Tags {
			name, ok := e.registry.Lookup(segment, tag.Id)
			if !ok {
				report.Skipped++
				continue
			}
			value, err := valueFromTag(tag)
			if err != nil {
				scope.add(fmt.Errorf("%s tag 0x%04x: %w", segment, tag.Id, err))
				continue
			}
			byName[name] = Entry{Name: name, Segment: segment, TagID: tag.Id, Value: value}
		}
	}

	report.Entries = make([]Entry, 0, len(byName))
	for _, entry := range byName {
		report.Entries = append(report.Entries, entry)
	}
	sort.Slice(report.Entries, func(i, j int) bool {
		return report.Entries[i].Name < report.Entries[j].Name
	})
	report.Warnings = scope.warnings

	if report.Skipped > 0 {
		e.logger.Debug("skipped unregistered tags", map[string]interface{}{
			"path":    path,
			"skipped": report.Skipped,
		})
	}
	scope.report(e.logger, path)

	return report, nil
}

// segmentDirs locates the directory of every segment present in x.
func segmentDirs(x *exif.Exif) (map[Segment]*tiff.Dir, error) {
	dirs := make(map[Segment]*tiff.Dir, len(Segments))
	if x.Tiff == nil || len(x.Tiff.Dirs) == 0 {
		return dirs, nil
	}

	primary := x.Tiff.Dirs[0]
	dirs[SegmentPrimary] = primary
	if len(x.Tiff.Dirs) > 1 {
		dirs[SegmentThumbnail] = x.Tiff.Dirs[1]
	}

	exifDir, err := loadSubDir(x, primary, tagExifPointer)
	if err != nil {
		return nil, fmt.Errorf("%s directory: %w", SegmentExif, err)
	}
	dirs[SegmentExif] = exifDir

	gpsDir, err := loadSubDir(x, primary, tagGPSPointer)
	if err != nil {
		return nil, fmt.Errorf("%s directory: %w", SegmentGPS, err)
	}
	dirs[SegmentGPS] = gpsDir

	return dirs, nil
}

// loadSubDir follows the pointer tag in parent. It returns nil without an
// error when parent has no such pointer.
func loadSubDir(x *exif.Exif, parent *tiff.Dir, pointer uint16) (*tiff.Dir, error) {
	var tag *tiff.Tag
	for _, t := range parent.Tags {
		if t.Id == pointer {
			tag = t
			break
		}
	}
	if tag == nil {
		return nil, nil
	}

	offset, err := tag.Int64(0)
	if err != nil {
		return nil, err
	}
	if offset <= 0 || offset >= int64(len(x.Raw)) {
		return nil, fmt.Errorf("offset %d outside container of %d bytes", offset, len(x.Raw))
	}

	r := bytes.NewReader(x.Raw)
	if _, err := r.Seek(offset, io.SeekStart); err != nil {
		return nil, err
	}
	dir, _, err := tiff.DecodeDir(r, x.Tiff.Order)
	if err != nil {
		return nil, err
	}
	return dir, nil
}

// warningScope collects the decoder complaints of one call so they can be
// reported once at debug level instead of surfacing as errors.
type warningScope struct {
	warnings []error
}

func (s *warningScope) add(err error) {
	s.warnings = append(s.warnings, err)
}

func (s *warningScope) report(log logger.Logger, path string) {
	if len(s.warnings) == 0 {
		return
	}
	log.Debug("suppressed decoder warnings", map[string]interface{}{
		"path":  path,
		"count": len(s.warnings),
		"first": s.warnings[0].Error(),
	})
}

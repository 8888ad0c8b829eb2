package models

import (
	"image"
	"sync"
	"time"

	"exif-reader/internal/imaging"
	"exif-reader/internal/metadata"
)

// Document is a fully loaded JPEG: its bitmap and its metadata entries.
type Document struct {
	Path     string
	Name     string
	Original image.Image
	Entries  []metadata.Entry
	Size     int64
	LoadedAt time.Time
}

type ViewerState int

const (
	StateEmpty ViewerState = iota
	StateLoaded
)

func (s ViewerState) String() string {
	if s == StateLoaded {
		return "loaded"
	}
	return "empty"
}

// Snapshot is a read-only view of the viewer for the UI and tests.
type Snapshot struct {
	State      ViewerState
	Name       string
	EntryCount int
	Fitted     image.Point
}

// Viewer holds at most one open document and its bitmap scaled to the
// picture area.
type Viewer struct {
	mu       sync.RWMutex
	document *Document
	scaled   image.Image
	area     image.Point
}

func NewViewer() *Viewer {
	return &Viewer{}
}

// Open replaces the current document. The cached scaled bitmap is dropped.
func (v *Viewer) Open(doc *Document) {
	if doc == nil {
		return
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	v.document = doc
	v.scaled = nil
	v.area = image.Point{}
}

// Close releases the document. Closing an empty viewer does nothing.
func (v *Viewer) Close() {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.document = nil
	v.scaled = nil
	v.area = image.Point{}
}

// Document returns the open document, or nil.
func (v *Viewer) Document() *Document {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.document
}

// Entries returns a copy of the open document's entries.
func (v *Viewer) Entries() []metadata.Entry {
	v.mu.RLock()
	defer v.mu.RUnlock()

	if v.document == nil {
		return nil
	}
	entries := make([]metadata.Entry, len(v.document.Entries))
	copy(entries, v.document.Entries)
	return entries
}

// Resize fits the document's bitmap into the given area and returns the
// scaled result. It returns nil without error when nothing is open. Asking
// for the same area twice returns the cached bitmap.
func (v *Viewer) Resize(areaWidth, areaHeight int, scaler *imaging.Scaler) (image.Image, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.document == nil || v.document.Original == nil {
		return nil, nil
	}

	area := image.Pt(areaWidth, areaHeight)
	if v.scaled != nil && v.area == area {
		return v.scaled, nil
	}

	scaled, err := scaler.FitAndScale(v.document.Original, areaWidth, areaHeight)
	if err != nil {
		return nil, err
	}

	v.scaled = scaled
	v.area = area
	return scaled, nil
}

func (v *Viewer) Snapshot() Snapshot {
	v.mu.RLock()
	defer v.mu.RUnlock()

	if v.document == nil {
		return Snapshot{State: StateEmpty}
	}

	snap := Snapshot{
		State:      StateLoaded,
		Name:       v.document.Name,
		EntryCount: len(v.document.Entries),
	}
	if v.scaled != nil {
		snap.Fitted = v.scaled.Bounds().Size()
	}
	return snap
}

// Shutdown releases the open document.
func (v *Viewer) Shutdown() {
	v.Close()
}

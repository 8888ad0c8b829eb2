package components

import (
	"exif-reader/internal/metadata"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	fynelayout "fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

const NoMetadataText = "No Metadata Found :("

// MetadataPanel lists tag names and values in two scrollable columns.
type MetadataPanel struct {
	rows   *fyne.Container
	scroll *container.Scroll
	count  int

	placeholder bool
}

func NewMetadataPanel() *MetadataPanel {
	mp := &MetadataPanel{
		rows: container.New(fynelayout.NewFormLayout()),
	}
	mp.scroll = container.NewVScroll(mp.rows)
	mp.Clear()
	return mp
}

// SetEntries rebuilds the list for an open file. An empty set shows the
// placeholder.
func (mp *MetadataPanel) SetEntries(entries []metadata.Entry) {
	objects := make([]fyne.CanvasObject, 0, 2*len(entries))
	for _, entry := range entries {
		key := widget.NewLabelWithStyle(entry.Name+" :", fyne.TextAlignTrailing, fyne.TextStyle{Bold: true})
		value := widget.NewLabel(entry.Value.String())
		value.Wrapping = fyne.TextWrapBreak
		objects = append(objects, key, value)
	}

	if len(objects) == 0 {
		placeholder := widget.NewLabelWithStyle(NoMetadataText, fyne.TextAlignCenter, fyne.TextStyle{Italic: true})
		mp.rows.Layout = fynelayout.NewVBoxLayout()
		objects = append(objects, placeholder)
	} else {
		mp.rows.Layout = fynelayout.NewFormLayout()
	}

	mp.count = len(entries)
	mp.placeholder = len(entries) == 0
	mp.rows.Objects = objects
	mp.rows.Refresh()
	mp.scroll.ScrollToTop()
}

// Clear empties the panel with no placeholder, for when no file is open.
func (mp *MetadataPanel) Clear() {
	mp.count = 0
	mp.placeholder = false
	mp.rows.Layout = fynelayout.NewFormLayout()
	mp.rows.Objects = nil
	mp.rows.Refresh()
	mp.scroll.ScrollToTop()
}

// RowCount returns the number of tag rows shown.
func (mp *MetadataPanel) RowCount() int {
	return mp.count
}

// Row returns the key and value text of row i.
func (mp *MetadataPanel) Row(i int) (string, string) {
	if i < 0 || i >= mp.count {
		return "", ""
	}
	key := mp.rows.Objects[2*i].(*widget.Label)
	value := mp.rows.Objects[2*i+1].(*widget.Label)
	return key.Text, value.Text
}

// Placeholder reports whether the empty-set message is shown.
func (mp *MetadataPanel) Placeholder() bool {
	return mp.placeholder
}

// Empty reports whether the panel shows nothing at all.
func (mp *MetadataPanel) Empty() bool {
	return len(mp.rows.Objects) == 0
}

func (mp *MetadataPanel) GetContainer() fyne.CanvasObject {
	return mp.scroll
}

package views

import (
	"image"
	"testing"

	"exif-reader/internal/metadata"
	"exif-reader/internal/views/components"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestView(t *testing.T) (*MainView, fyne.Window) {
	t.Helper()
	test.NewTempApp(t)
	w := test.NewWindow(nil)
	t.Cleanup(w.Close)
	return NewMainView(w), w
}

func sampleEntries() []metadata.Entry {
	return []metadata.Entry{
		{Name: "FNumber", Segment: metadata.SegmentExif, TagID: 0x829d,
			Value: metadata.Value{Kind: metadata.KindRational, Rationals: []metadata.Rational{{Num: 28, Den: 10}}}},
		{Name: "Make", Segment: metadata.SegmentPrimary, TagID: 0x010f,
			Value: metadata.Value{Kind: metadata.KindText, Text: "Canon"}},
	}
}

func TestMainView_InitialState(t *testing.T) {
	view, _ := newTestView(t)

	assert.Equal(t, components.NoFileText, view.GetHeader().Text())
	assert.False(t, view.GetMetadataPanel().Placeholder())
	assert.True(t, view.GetMetadataPanel().Empty())
	assert.Equal(t, 0, view.GetMetadataPanel().RowCount())
	assert.False(t, view.GetImageDisplay().HasImage())
}

func TestMainView_FileMenu(t *testing.T) {
	view, w := newTestView(t)

	var opened, closed, exited int
	view.SetOpenHandler(func() { opened++ })
	view.SetCloseHandler(func() { closed++ })
	view.SetExitHandler(func() { exited++ })

	menu := w.MainMenu()
	require.NotNil(t, menu)
	require.Len(t, menu.Items, 1)

	file := menu.Items[0]
	assert.Equal(t, "File", file.Label)
	require.Len(t, file.Items, 4)
	assert.Equal(t, "Open...", file.Items[0].Label)
	assert.Equal(t, "Close", file.Items[1].Label)
	assert.True(t, file.Items[2].IsSeparator)
	assert.Equal(t, "Exit", file.Items[3].Label)

	file.Items[0].Action()
	file.Items[1].Action()
	file.Items[3].Action()
	assert.Equal(t, []int{1, 1, 1}, []int{opened, closed, exited})
}

func TestMainView_ShowDocumentAndReset(t *testing.T) {
	view, w := newTestView(t)

	view.ShowDocument("IMG_0001.jpg", sampleEntries())
	view.SetPicture(image.NewRGBA(image.Rect(0, 0, 120, 80)))

	assert.Equal(t, "IMG_0001.jpg", view.GetHeader().Text())
	assert.Contains(t, w.Title(), "IMG_0001.jpg")
	panel := view.GetMetadataPanel()
	require.Equal(t, 2, panel.RowCount())
	key, value := panel.Row(0)
	assert.Equal(t, "FNumber :", key)
	assert.Equal(t, "28/10", value)
	key, value = panel.Row(1)
	assert.Equal(t, "Make :", key)
	assert.Equal(t, "Canon", value)

	width, height := view.GetImageDisplay().DisplayedSize()
	assert.Equal(t, [2]int{120, 80}, [2]int{width, height})

	view.Reset()
	assert.Equal(t, components.NoFileText, view.GetHeader().Text())
	assert.Equal(t, AppTitle, w.Title())
	assert.False(t, panel.Placeholder())
	assert.True(t, panel.Empty())
	assert.Equal(t, 0, panel.RowCount())
	assert.False(t, view.GetImageDisplay().HasImage())
}

func TestMainView_EmptyMetadataShowsPlaceholder(t *testing.T) {
	view, _ := newTestView(t)

	view.ShowDocument("plain.jpg", []metadata.Entry{})
	assert.True(t, view.GetMetadataPanel().Placeholder())
	assert.False(t, view.GetMetadataPanel().Empty())
	assert.Equal(t, "plain.jpg", view.GetHeader().Text())

	view.Reset()
	assert.False(t, view.GetMetadataPanel().Placeholder())
	assert.True(t, view.GetMetadataPanel().Empty())
}

func TestMainView_ResizeReportsPictureArea(t *testing.T) {
	view, w := newTestView(t)

	var areas [][2]int
	view.SetResizeHandler(func(width, height int) {
		areas = append(areas, [2]int{width, height})
	})

	w.Resize(fyne.NewSize(350, 650))

	require.NotEmpty(t, areas)
	last := areas[len(areas)-1]
	assert.Positive(t, last[0])
	assert.Positive(t, last[1])
	width, height := view.PictureArea()
	assert.Equal(t, last, [2]int{width, height})
}

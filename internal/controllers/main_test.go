package controllers

import (
	"bytes"
	"context"
	"errors"
	"image"
	"io"
	"testing"

	"exif-reader/internal/imaging"
	"exif-reader/internal/metadata"
	"exif-reader/internal/models"
	"exif-reader/internal/services"
	"exif-reader/internal/testutil"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeView struct {
	open, close, exit func()
	resize            func(int, int)

	area    [2]int
	name    string
	entries []metadata.Entry
	picture image.Image
	resets  int
	errs    []error
	chooser func(fyne.URIReadCloser, error)
	filter  storage.FileFilter
}

func (v *fakeView) SetOpenHandler(h func())           { v.open = h }
func (v *fakeView) SetCloseHandler(h func())          { v.close = h }
func (v *fakeView) SetExitHandler(h func())           { v.exit = h }
func (v *fakeView) SetResizeHandler(h func(int, int)) { v.resize = h }
func (v *fakeView) SetPicture(img image.Image)        { v.picture = img }
func (v *fakeView) PictureArea() (int, int)           { return v.area[0], v.area[1] }
func (v *fakeView) ShowError(err error)               { v.errs = append(v.errs, err) }

func (v *fakeView) ShowDocument(name string, entries []metadata.Entry) {
	v.name = name
	v.entries = entries
}

func (v *fakeView) Reset() {
	v.resets++
	v.name = ""
	v.entries = nil
	v.picture = nil
}

func (v *fakeView) ShowOpenDialog(filter storage.FileFilter, callback func(fyne.URIReadCloser, error)) {
	v.filter = filter
	v.chooser = callback
}

type fakeReader struct {
	io.Reader
	uri    fyne.URI
	closed bool
}

func (r *fakeReader) URI() fyne.URI { return r.uri }
func (r *fakeReader) Close() error {
	r.closed = true
	return nil
}

func newController(t *testing.T) (*MainController, *fakeView, *models.Viewer) {
	t.Helper()
	scaler, err := imaging.NewScaler(imaging.QualityFast)
	require.NoError(t, err)

	viewer := models.NewViewer()
	mc := NewMainController(services.NewImageService(nil, nil), viewer, scaler, nil)
	view := &fakeView{area: [2]int{300, 500}}
	mc.SetMainView(view)
	return mc, view, viewer
}

func chooseFile(t *testing.T, view *fakeView, path string, data []byte) *fakeReader {
	t.Helper()
	view.open()
	require.NotNil(t, view.chooser)
	reader := &fakeReader{Reader: bytes.NewReader(data), uri: storage.NewFileURI(path)}
	view.chooser(reader, nil)
	return reader
}

func TestController_OpenShowsDocumentAndFittedPicture(t *testing.T) {
	_, view, viewer := newController(t)

	data := testutil.JPEGWithExif(t, 400, 200, testutil.Sample().TIFF())
	reader := chooseFile(t, view, "/photos/wide.jpg", data)

	assert.True(t, reader.closed)
	assert.Empty(t, view.errs)
	assert.True(t, view.filter.Matches(storage.NewFileURI("/x/y.jpeg")))
	assert.Equal(t, "wide.jpg", view.name)
	assert.Len(t, view.entries, 21)
	require.NotNil(t, view.picture)
	assert.Equal(t, image.Pt(300, 150), view.picture.Bounds().Size())

	snap := viewer.Snapshot()
	assert.Equal(t, models.StateLoaded, snap.State)
	assert.Equal(t, "wide.jpg", snap.Name)
}

func TestController_ResizeRefits(t *testing.T) {
	_, view, _ := newController(t)
	chooseFile(t, view, "/photos/tall.jpg", testutil.JPEG(t, 200, 400))

	view.resize(500, 300)
	assert.Equal(t, image.Pt(150, 300), view.picture.Bounds().Size())
}

func TestController_FailedOpenLeavesViewerUntouched(t *testing.T) {
	_, view, viewer := newController(t)
	chooseFile(t, view, "/photos/good.jpg", testutil.JPEG(t, 40, 20))
	before := viewer.Snapshot()

	chooseFile(t, view, "/photos/bad.jpg", []byte("not a jpeg at all"))

	require.Len(t, view.errs, 1)
	assert.ErrorIs(t, view.errs[0], metadata.ErrNotJPEG)
	assert.Equal(t, before, viewer.Snapshot())
	assert.Equal(t, "good.jpg", view.name)
}

func TestController_DialogErrorAndCancel(t *testing.T) {
	_, view, viewer := newController(t)

	view.open()
	view.chooser(nil, nil)
	assert.Empty(t, view.errs)

	view.chooser(nil, errors.New("permission denied"))
	assert.Len(t, view.errs, 1)
	assert.Equal(t, models.StateEmpty, viewer.Snapshot().State)
}

func TestController_Close(t *testing.T) {
	_, view, viewer := newController(t)

	view.close()
	assert.Equal(t, 0, view.resets)

	chooseFile(t, view, "/photos/a.jpg", testutil.JPEG(t, 10, 10))
	view.close()

	assert.Equal(t, 1, view.resets)
	assert.Nil(t, view.picture)
	assert.Equal(t, models.StateEmpty, viewer.Snapshot().State)
}

func TestController_ExitCallsQuit(t *testing.T) {
	mc, view, _ := newController(t)

	quit := 0
	mc.SetQuitFunc(func() { quit++ })
	view.exit()
	assert.Equal(t, 1, quit)
}

func TestController_OpenFile(t *testing.T) {
	mc, view, _ := newController(t)
	path := testutil.WriteFile(t, "cli.jpg", testutil.JPEG(t, 64, 64))

	require.NoError(t, mc.OpenFile(context.Background(), path))
	assert.Equal(t, "cli.jpg", view.name)
	assert.Equal(t, image.Pt(300, 300), view.picture.Bounds().Size())

	err := mc.OpenFile(context.Background(), path+".missing")
	assert.Error(t, err)
	assert.Len(t, view.errs, 1)
	assert.Equal(t, "cli.jpg", mc.State().Viewer.Name)
}

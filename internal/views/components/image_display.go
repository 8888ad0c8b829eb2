package components

import (
	"image"
	"image/color"

	"exif-reader/internal/gui/layout"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
)

// ImageDisplay shows the open picture fitted into whatever space its row
// is given.
type ImageDisplay struct {
	container  *fyne.Container
	background *canvas.Rectangle
	picture    *canvas.Image
	fit        *layout.FitLayout
	area       *fyne.Container

	resizeHandler func(width, height int)
	hasImage      bool
	scale         func() float32
}

func NewImageDisplay() *ImageDisplay {
	display := &ImageDisplay{}
	display.scale = display.canvasScale
	display.createComponents()
	display.setupLayout()
	return display
}

func (id *ImageDisplay) createComponents() {
	id.background = canvas.NewRectangle(color.RGBA{R: 252, G: 252, B: 252, A: 255})

	id.picture = canvas.NewImageFromImage(nil)
	id.picture.FillMode = canvas.ImageFillStretch
	id.picture.ScaleMode = canvas.ImageScaleSmooth
	id.picture.Hide()
}

func (id *ImageDisplay) setupLayout() {
	id.fit = layout.NewFitLayout(id.handleResize)
	id.area = container.New(id.fit, id.picture)
	id.container = container.NewStack(id.background, id.area)
}

func (id *ImageDisplay) handleResize(size fyne.Size) {
	if id.resizeHandler == nil {
		return
	}
	width, height := toPixels(size, id.scale())
	if width <= 0 || height <= 0 {
		return
	}
	id.resizeHandler(width, height)
}

// SetResizeHandler registers the callback that receives the picture area in
// pixels whenever it changes.
func (id *ImageDisplay) SetResizeHandler(handler func(width, height int)) {
	id.resizeHandler = handler
}

// SetImage shows img at its own pixel size on the current canvas scale. The
// image must already be fitted to the area reported through the resize
// handler.
func (id *ImageDisplay) SetImage(img image.Image) {
	if img == nil {
		id.Clear()
		return
	}

	bounds := img.Bounds()
	id.picture.Image = img
	id.picture.SetMinSize(toUnits(bounds.Dx(), bounds.Dy(), id.scale()))
	id.picture.Show()
	id.hasImage = true
	id.area.Refresh()
}

// Clear removes the picture and leaves the empty background.
func (id *ImageDisplay) Clear() {
	id.picture.Image = nil
	id.picture.SetMinSize(fyne.NewSize(0, 0))
	id.picture.Hide()
	id.hasImage = false
	id.area.Refresh()
}

func (id *ImageDisplay) HasImage() bool {
	return id.hasImage
}

// DisplayedSize returns the pixel size of the shown picture.
func (id *ImageDisplay) DisplayedSize() (int, int) {
	if !id.hasImage || id.picture.Image == nil {
		return 0, 0
	}
	bounds := id.picture.Image.Bounds()
	return bounds.Dx(), bounds.Dy()
}

// Area returns the picture area from the last layout pass, in pixels.
func (id *ImageDisplay) Area() (int, int) {
	return toPixels(id.fit.Size(), id.scale())
}

func (id *ImageDisplay) GetContainer() *fyne.Container {
	return id.container
}

// canvasScale is the pixel density of the canvas showing the display, 1
// before it is shown.
func (id *ImageDisplay) canvasScale() float32 {
	current := fyne.CurrentApp()
	if current == nil {
		return 1
	}
	c := current.Driver().CanvasForObject(id.container)
	if c == nil || c.Scale() <= 0 {
		return 1
	}
	return c.Scale()
}

func toPixels(size fyne.Size, scale float32) (int, int) {
	return int(size.Width * scale), int(size.Height * scale)
}

func toUnits(width, height int, scale float32) fyne.Size {
	return fyne.NewSize(float32(width)/scale, float32(height)/scale)
}

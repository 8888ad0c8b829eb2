package components

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

const NoFileText = "No File Open"

// Header names the open file.
type Header struct {
	container *fyne.Container
	label     *widget.Label
}

func NewHeader() *Header {
	h := &Header{
		label: widget.NewLabelWithStyle(NoFileText, fyne.TextAlignCenter, fyne.TextStyle{Bold: true}),
	}
	h.label.Truncation = fyne.TextTruncateEllipsis
	h.container = container.NewStack(h.label)
	return h
}

func (h *Header) SetFileName(name string) {
	if name == "" {
		name = NoFileText
	}
	h.label.SetText(name)
}

func (h *Header) Reset() {
	h.label.SetText(NoFileText)
}

func (h *Header) Text() string {
	return h.label.Text
}

func (h *Header) GetContainer() *fyne.Container {
	return h.container
}

package layout

import (
	"fyne.io/fyne/v2"
)

// WeightedRowsLayout stacks objects vertically and shares the container
// height between them in proportion to their weights. Rows never shrink
// below their minimum height.
type WeightedRowsLayout struct {
	weights []float32
	padding float32
}

func NewWeightedRowsLayout(padding float32, weights ...float32) *WeightedRowsLayout {
	return &WeightedRowsLayout{
		weights: weights,
		padding: padding,
	}
}

func (wrl *WeightedRowsLayout) Layout(objects []fyne.CanvasObject, containerSize fyne.Size) {
	visible := wrl.visibleRows(objects)
	if len(visible) == 0 {
		return
	}

	available := containerSize.Height - wrl.padding*float32(len(visible)-1)
	total := float32(0)
	for _, row := range visible {
		total += row.weight
	}

	y := float32(0)
	for _, row := range visible {
		height := available * row.weight / total
		if minHeight := row.object.MinSize().Height; height < minHeight {
			height = minHeight
		}

		row.object.Resize(fyne.NewSize(containerSize.Width, height))
		row.object.Move(fyne.NewPos(0, y))
		y += height + wrl.padding
	}
}

func (wrl *WeightedRowsLayout) MinSize(objects []fyne.CanvasObject) fyne.Size {
	visible := wrl.visibleRows(objects)

	minWidth := float32(0)
	totalHeight := float32(0)
	for i, row := range visible {
		objMin := row.object.MinSize()
		if objMin.Width > minWidth {
			minWidth = objMin.Width
		}
		totalHeight += objMin.Height
		if i > 0 {
			totalHeight += wrl.padding
		}
	}

	return fyne.NewSize(minWidth, totalHeight)
}

type weightedRow struct {
	object fyne.CanvasObject
	weight float32
}

func (wrl *WeightedRowsLayout) visibleRows(objects []fyne.CanvasObject) []weightedRow {
	rows := make([]weightedRow, 0, len(objects))
	for i, obj := range objects {
		if !obj.Visible() {
			continue
		}
		weight := float32(1)
		if i < len(wrl.weights) && wrl.weights[i] > 0 {
			weight = wrl.weights[i]
		}
		rows = append(rows, weightedRow{object: obj, weight: weight})
	}
	return rows
}

// FitLayout centres each object at its minimum size and reports every new
// container size to OnResize before placing them. It asks for no space of
// its own, so a large bitmap never forces the window to grow.
type FitLayout struct {
	OnResize func(fyne.Size)

	lastSize fyne.Size
}

func NewFitLayout(onResize func(fyne.Size)) *FitLayout {
	return &FitLayout{OnResize: onResize}
}

func (fl *FitLayout) Layout(objects []fyne.CanvasObject, containerSize fyne.Size) {
	if containerSize != fl.lastSize {
		fl.lastSize = containerSize
		if fl.OnResize != nil {
			fl.OnResize(containerSize)
		}
	}

	for _, obj := range objects {
		size := obj.MinSize()
		if size.Width > containerSize.Width {
			size.Width = containerSize.Width
		}
		if size.Height > containerSize.Height {
			size.Height = containerSize.Height
		}

		obj.Resize(size)
		obj.Move(fyne.NewPos(
			(containerSize.Width-size.Width)/2,
			(containerSize.Height-size.Height)/2,
		))
	}
}

func (fl *FitLayout) MinSize(objects []fyne.CanvasObject) fyne.Size {
	return fyne.NewSize(0, 0)
}

// Size returns the container size seen by the last layout pass.
func (fl *FitLayout) Size() fyne.Size {
	return fl.lastSize
}

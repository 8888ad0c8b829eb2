package imaging

import (
	"fmt"
	"image"

	"golang.org/x/image/draw"
)

const (
	QualitySmooth = "smooth"
	QualityFast   = "fast"
)

// Scaler resamples bitmaps to a fitted size.
type Scaler struct {
	quality string
	kernel  draw.Scaler
}

func NewScaler(quality string) (*Scaler, error) {
	switch quality {
	case QualitySmooth, "":
		return &Scaler{quality: QualitySmooth, kernel: draw.CatmullRom}, nil
	case QualityFast:
		return &Scaler{quality: QualityFast, kernel: draw.ApproxBiLinear}, nil
	default:
		return nil, fmt.Errorf("imaging: unknown scale quality %q", quality)
	}
}

func (s *Scaler) Quality() string {
	return s.quality
}

// Scale renders src into a new width x height bitmap.
func (s *Scaler) Scale(src image.Image, width, height int) (*image.RGBA, error) {
	if src == nil {
		return nil, fmt.Errorf("imaging: nothing to scale")
	}
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimensions
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	s.kernel.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst, nil
}

// FitAndScale fits src into the area and renders it at the fitted size.
func (s *Scaler) FitAndScale(src image.Image, areaWidth, areaHeight int) (*image.RGBA, error) {
	if src == nil {
		return nil, fmt.Errorf("imaging: nothing to scale")
	}
	bounds := src.Bounds()
	w, h, err := Fit(bounds.Dx(), bounds.Dy(), areaWidth, areaHeight)
	if err != nil {
		return nil, err
	}
	return s.Scale(src, w, h)
}

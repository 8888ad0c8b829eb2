package imaging

import (
	"errors"
	"math"
)

var ErrInvalidDimensions = errors.New("imaging: dimensions must be positive")

// Fit returns the largest size with the image's aspect ratio that fits the
// area. One output dimension always equals the matching area dimension;
// neither drops below one pixel.
func Fit(imageWidth, imageHeight, areaWidth, areaHeight int) (int, int, error) {
	if imageWidth <= 0 || imageHeight <= 0 || areaWidth <= 0 || areaHeight <= 0 {
		return 0, 0, ErrInvalidDimensions
	}

	aspect := float64(imageWidth) / float64(imageHeight)
	if float64(areaWidth)/float64(areaHeight) > aspect {
		return atLeastOne(math.Round(float64(areaHeight) * aspect)), areaHeight, nil
	}
	return areaWidth, atLeastOne(math.Round(float64(areaWidth) / aspect)), nil
}

func atLeastOne(v float64) int {
	if v < 1 {
		return 1
	}
	return int(v)
}

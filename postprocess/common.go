package postprocess

import (
	"github.com/chewxy/math32"
)

// clamp restricts the value val to be within the range min and max
func clamp(val, min, max float32) float32 {

	if val > min {

		if val < max {
			return val
		}

		return max
	}

	return min
}

// intersection returns the overlapping area of two axis aligned boxes, with
// the overlap width and height clamped to be non-negative
func intersection(a, b Box) float32 {

	w := math32.Min(a.XMax, b.XMax) - math32.Max(a.XMin, b.XMin)
	h := math32.Min(a.YMax, b.YMax) - math32.Max(a.YMin, b.YMin)

	if w <= 0 || h <= 0 {
		return 0
	}

	return w * h
}

// IoU works out the Intersection over Union value of two boxes.  When the
// union area is zero or negative, as happens with degenerate boxes, the IoU
// is defined to be 0 so such boxes never suppress one another
func IoU(a, b Box) float32 {

	inter := intersection(a, b)
	union := a.Area() + b.Area() - inter

	if !(union > 0) {
		return 0
	}

	return inter / union
}

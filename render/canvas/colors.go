// Package canvas draws detection overlays onto RGBA images in pure Go
// without OpenCV
package canvas

import "image/color"

var (
	// White is the default label text color
	White = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	// Black is used for count text backgrounds
	Black = color.RGBA{R: 0, G: 0, B: 0, A: 255}

	// classColors is a list of colors used to paint boxes by class ID
	classColors = []color.RGBA{
		{R: 255, G: 56, B: 56, A: 255},  // #FF3838
		{R: 72, G: 249, B: 10, A: 255},  // #48F90A
		{R: 0, G: 194, B: 255, A: 255},  // #00C2FF
		{R: 255, G: 178, B: 29, A: 255}, // #FFB21D
		{R: 132, G: 56, B: 255, A: 255}, // #8438FF
		{R: 0, G: 212, B: 187, A: 255},  // #00D4BB
		{R: 255, G: 55, B: 199, A: 255}, // #FF37C7
		{R: 207, G: 210, B: 49, A: 255}, // #CFD231
	}
)

// ClassColor returns the box color for the given class ID
func ClassColor(labelID int) color.RGBA {
	if labelID < 0 {
		labelID = -labelID
	}

	return classColors[labelID%len(classColors)]
}

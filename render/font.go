package render

import (
	"image"
	"image/color"

	"github.com/swdee/go-spikecount/render/canvas"
	"gocv.io/x/gocv"
)

// Alignment of a box label relative to its box
type Alignment int

const (
	Left   Alignment = 1
	Center Alignment = 2
	Right  Alignment = 3
)

// Font defines the parameters for rendering box labels and the pot count on
// a Mat
type Font struct {
	Face      gocv.HersheyFont
	Scale     float64
	Color     color.RGBA
	Thickness int
	LineType  gocv.LineType
	// Padding to place around text
	LeftPad   int
	RightPad  int
	TopPad    int
	BottomPad int
	// Alignment of the text label to the bounding box
	Alignment Alignment
}

// DefaultFont returns the font used for box labels
func DefaultFont() Font {
	return Font{
		Face:      gocv.FontHersheySimplex,
		Scale:     0.5,
		Color:     canvas.White,
		Thickness: 1,
		LineType:  gocv.LineAA,
		LeftPad:   4,
		RightPad:  4,
		TopPad:    4,
		BottomPad: 6,
		Alignment: Left,
	}
}

// CountFont returns a larger font for the pot count banner
func CountFont() Font {
	f := DefaultFont()
	f.Scale = 0.8
	f.Thickness = 2
	f.TopPad = 8
	f.BottomPad = 8

	return f
}

// textSize returns the pixel size of the text rendered in this font
func (f Font) textSize(text string) image.Point {
	return gocv.GetTextSize(text, f.Face, f.Scale, f.Thickness)
}

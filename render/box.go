package render

import (
	"image"
	"image/color"

	"github.com/swdee/go-spikecount/postprocess"
	"github.com/swdee/go-spikecount/render/canvas"
	"gocv.io/x/gocv"
)

// boxLabel holds the precalculated position of a box label
type boxLabel struct {
	rect    image.Rectangle
	clr     color.RGBA
	text    string
	textPos image.Point
}

// DetectionBoxes renders the bounding boxes and label:score text of display
// space detections on the Mat
func DetectionBoxes(img *gocv.Mat, dets []postprocess.Detection, font Font,
	lineThickness int) {

	// keep a record of all box labels for later rendering
	boxLabels := make([]boxLabel, 0, len(dets))

	// draw detection boxes
	for _, det := range dets {

		useClr := canvas.ClassColor(det.LabelID)

		// draw rectangle around detected object
		r := canvas.Rect(det.Box)
		gocv.Rectangle(img, r, useClr, lineThickness)

		// create text for label
		text := canvas.Label(det)
		textSize := font.textSize(text)

		// Calculate the alignment of text label
		var centerX int

		switch font.Alignment {
		case Center:
			centerX = (r.Min.X + r.Max.X) / 2

		case Right:
			centerX = r.Max.X - (textSize.X / 2) - font.RightPad + (lineThickness / 2)

		case Left:
			fallthrough
		default:
			centerX = r.Min.X + (textSize.X / 2) + font.LeftPad - (lineThickness / 2)
		}

		// Adjust the label position so the text is centered horizontally
		labelPosition := image.Pt(centerX-textSize.X/2, r.Min.Y-font.BottomPad)

		// create box for placing text on
		bRect := image.Rect(centerX-textSize.X/2-font.LeftPad,
			r.Min.Y-textSize.Y-font.TopPad-font.BottomPad,
			centerX+textSize.X/2+font.RightPad, r.Min.Y)

		boxLabels = append(boxLabels, boxLabel{
			rect:    bRect,
			clr:     useClr,
			text:    text,
			textPos: labelPosition,
		})
	}

	// draw all precalculated box labels so they are the top most layer on the
	// image and don't get overlapped by other boxes
	for _, box := range boxLabels {
		// draw box text gets written on
		gocv.Rectangle(img, box.rect, box.clr, -1)

		// Draw the label over box
		gocv.PutTextWithParams(img, box.text, box.textPos,
			font.Face, font.Scale, font.Color, font.Thickness,
			font.LineType, false)
	}
}

// PotCount renders the active pot and its wheat spike count in the top left
// corner of the Mat
func PotCount(img *gocv.Mat, text string, font Font) {

	textSize := font.textSize(text)

	bg := image.Rect(0, 0, textSize.X+font.LeftPad+font.RightPad,
		textSize.Y+font.TopPad+font.BottomPad)
	gocv.Rectangle(img, bg, canvas.Black, -1)

	gocv.PutTextWithParams(img, text, image.Pt(font.LeftPad, textSize.Y+font.TopPad),
		font.Face, font.Scale, font.Color, font.Thickness, font.LineType, false)
}

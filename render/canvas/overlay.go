package canvas

import (
	"fmt"
	"image"
	"image/color"

	"github.com/swdee/go-spikecount/postprocess"
	"github.com/swdee/go-spikecount/tracker"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Label returns the text drawn above a detection box, eg: "Pot:0.93"
func Label(det postprocess.Detection) string {
	return fmt.Sprintf("%s:%.2f", det.LabelName, det.Objectness)
}

// Rect returns the integer pixel rectangle of a display space box
func Rect(b postprocess.Box) image.Rectangle {
	return image.Rect(int(b.XMin), int(b.YMin), int(b.XMax), int(b.YMax))
}

// Overlay draws detections onto an RGBA canvas without needing OpenCV, for
// hosts that composite the overlay over their own preview
type Overlay struct {
	Img           *image.RGBA
	LineThickness int
	TextColor     color.RGBA
	// Pad is the space in pixels around label text
	Pad  int
	face font.Face
}

// NewOverlay returns an overlay drawing on img using the basic 7x13 font
func NewOverlay(img *image.RGBA) *Overlay {
	return &Overlay{
		Img:           img,
		LineThickness: 2,
		TextColor:     White,
		Pad:           2,
		face:          basicfont.Face7x13,
	}
}

// Clear resets the canvas to fully transparent
func (o *Overlay) Clear() {
	draw.Draw(o.Img, o.Img.Bounds(), image.Transparent, image.Point{}, draw.Src)
}

// DetectionBoxes draws the outline and label:score text of each display
// space detection
func (o *Overlay) DetectionBoxes(dets []postprocess.Detection) {

	for _, det := range dets {
		o.outline(Rect(det.Box), ClassColor(det.LabelID))
	}

	// labels are drawn last so boxes never cover them
	for _, det := range dets {
		o.label(Rect(det.Box), Label(det), ClassColor(det.LabelID))
	}
}

// PotCountText returns the banner text for the active pot, eg:
// "Pot2 Wheat Spike:14".  A pot holding NoSpikeObserved shows 0
func PotCountText(ep tracker.PotEpisode) string {
	return fmt.Sprintf("Pot%d Wheat Spike:%d", ep.PotID, max(ep.MaxSpikes, 0))
}

// PotCount draws the active pot's spike count in the top left corner
func (o *Overlay) PotCount(ep tracker.PotEpisode) {
	o.text(o.Img.Bounds().Min, PotCountText(ep), Black)
}

// outline draws a rectangle border of LineThickness inside r
func (o *Overlay) outline(r image.Rectangle, clr color.RGBA) {

	t := o.LineThickness

	if t < 1 {
		t = 1
	}

	src := image.NewUniform(clr)

	for _, edge := range []image.Rectangle{
		image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+t),
		image.Rect(r.Min.X, r.Max.Y-t, r.Max.X, r.Max.Y),
		image.Rect(r.Min.X, r.Min.Y, r.Min.X+t, r.Max.Y),
		image.Rect(r.Max.X-t, r.Min.Y, r.Max.X, r.Max.Y),
	} {
		draw.Draw(o.Img, edge.Intersect(r), src, image.Point{}, draw.Src)
	}
}

// label draws text on a filled background above the box, or just inside its
// top edge when there is no room above
func (o *Overlay) label(r image.Rectangle, text string, bg color.RGBA) {

	h := o.face.Metrics().Height.Ceil() + 2*o.Pad
	top := r.Min.Y - h

	if top < o.Img.Bounds().Min.Y {
		top = r.Min.Y
	}

	o.text(image.Pt(r.Min.X, top), text, bg)
}

// text draws text with its background's top left corner at pt
func (o *Overlay) text(pt image.Point, text string, bg color.RGBA) {

	d := &font.Drawer{
		Dst:  o.Img,
		Src:  image.NewUniform(o.TextColor),
		Face: o.face,
	}

	width := d.MeasureString(text).Ceil()
	m := o.face.Metrics()

	bgRect := image.Rect(pt.X, pt.Y, pt.X+width+2*o.Pad, pt.Y+m.Height.Ceil()+2*o.Pad)
	draw.Draw(o.Img, bgRect, image.NewUniform(bg), image.Point{}, draw.Src)

	d.Dot = fixed.P(pt.X+o.Pad, pt.Y+o.Pad+m.Ascent.Ceil())
	d.DrawString(text)
}

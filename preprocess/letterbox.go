package preprocess

// Letterbox holds the parameters to scale a preview frame into the Model
// input whilst keeping its aspect, padding the short side equally on both
// edges
type Letterbox struct {
	srcWidth  int
	srcHeight int
	dstWidth  int
	dstHeight int
	// scaled size of the frame inside the padding
	innerWidth  int
	innerHeight int
	xPad        int
	yPad        int
	scale       float32
}

// NewLetterbox returns the letterbox placing a srcWidth x srcHeight frame into
// a dstWidth x dstHeight Model input
func NewLetterbox(srcWidth, srcHeight, dstWidth, dstHeight int) *Letterbox {

	l := &Letterbox{
		srcWidth:    srcWidth,
		srcHeight:   srcHeight,
		dstWidth:    dstWidth,
		dstHeight:   dstHeight,
		innerWidth:  dstWidth,
		innerHeight: dstHeight,
	}

	scaleW := float32(dstWidth) / float32(srcWidth)
	scaleH := float32(dstHeight) / float32(srcHeight)
	l.scale = scaleH

	if scaleW < scaleH {
		l.scale = scaleW
		l.innerHeight = int(float32(srcHeight) * l.scale)
	} else {
		l.innerWidth = int(float32(srcWidth) * l.scale)
	}

	l.xPad = (dstWidth - l.innerWidth) / 2
	l.yPad = (dstHeight - l.innerHeight) / 2

	return l
}

// Transform returns the transform from preview pixels to letterboxed Model
// input pixels
func (l *Letterbox) Transform() Affine {
	return Scale(float64(l.scale), float64(l.scale)).
		Then(Translate(float64(l.xPad), float64(l.yPad)))
}

// Inverse returns the transform mapping Model input pixels back onto the
// preview
func (l *Letterbox) Inverse() (Affine, error) {
	return l.Transform().Invert()
}

// Scale returns the scale factor applied to the preview
func (l *Letterbox) Scale() float32 {
	return l.scale
}

// Padding returns the horizontal and vertical padding in Model input pixels
func (l *Letterbox) Padding() (int, int) {
	return l.xPad, l.yPad
}

// Inner returns the scaled size of the preview inside the padding
func (l *Letterbox) Inner() (int, int) {
	return l.innerWidth, l.innerHeight
}

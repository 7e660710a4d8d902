package postprocess

import (
	"github.com/chewxy/math32"
)

// boxAttrs is the number of values at the start of each candidate row
// before the class scores, being cx, cy, w, h and objectness
const boxAttrs = 5

// YOLOv5 defines the struct for decoding the output of a YOLOv5 Model
// exported with its box coordinates normalised to the input image size
type YOLOv5 struct {
	// Params are the Model configuration parameters
	Params YOLOv5Params
}

// YOLOv5Params defines the struct containing the YOLOv5 parameters to use
// for decoding the output tensor
type YOLOv5Params struct {
	// InputWidth is the pixel width of the input image the Model was
	// trained on
	InputWidth int
	// InputHeight is the pixel height of the input image the Model was
	// trained on
	InputHeight int
	// NumCandidates is the number of candidate rows in the output tensor.
	// When zero the number is derived from the length of the tensor
	NumCandidates int
	// NumClasses is the number of different object classes the Model has
	// been trained with
	NumClasses int
}

// YOLOv5WheatParams returns an instance of YOLOv5Params configured for the
// wheat spike Model featuring:
// - Input Size: 640x640
// - Candidates: 25200, being the 3 anchors of the 80x80, 40x40 and 20x20 grids
// - Object Classes: 2, being "Pot" and "Wheat Spike"
func YOLOv5WheatParams() YOLOv5Params {
	return YOLOv5Params{
		InputWidth:    640,
		InputHeight:   640,
		NumCandidates: 25200,
		NumClasses:    2,
	}
}

// RowSize returns the number of values per candidate row
func (p YOLOv5Params) RowSize() int {
	return boxAttrs + p.NumClasses
}

// NewYOLOv5 returns an instance of the YOLOv5 decoder
func NewYOLOv5(p YOLOv5Params) *YOLOv5 {
	return &YOLOv5{
		Params: p,
	}
}

// Decode takes the flattened output tensor and converts every candidate row
// into a Detection without any filtering.  The tensor is only read from
func (y *YOLOv5) Decode(raw []float32) ([]Detection, error) {

	rowSize := y.Params.RowSize()
	numCandidates := y.Params.NumCandidates

	if numCandidates == 0 && len(raw)%rowSize == 0 {
		numCandidates = len(raw) / rowSize
	}

	if y.Params.NumClasses <= 0 || len(raw) != numCandidates*rowSize {
		return nil, &ShapeError{
			Got:     len(raw),
			Want:    numCandidates * rowSize,
			RowSize: rowSize,
		}
	}

	width := float32(y.Params.InputWidth)
	height := float32(y.Params.InputHeight)

	dets := make([]Detection, numCandidates)

	for i := range dets {
		row := raw[i*rowSize : (i+1)*rowSize]

		// outputs were divided by the image size on export so scale them back
		cx := row[0] * width
		cy := row[1] * height
		w := row[2] * width
		h := row[3] * height

		labelID, score := argmax(row[boxAttrs:])

		dets[i] = Detection{
			LabelID:    labelID,
			ClassScore: score,
			Objectness: row[4],
			Box: Box{
				XMin: math32.Max(0, cx-w/2),
				YMin: math32.Max(0, cy-h/2),
				XMax: math32.Min(width, cx+w/2),
				YMax: math32.Min(height, cy+h/2),
			},
		}
	}

	return dets, nil
}

// argmax returns the index and value of the largest score, the first index
// seen wins on ties
func argmax(scores []float32) (int, float32) {

	maxID := 0
	maxScore := scores[0]

	for k := 1; k < len(scores); k++ {
		if scores[k] > maxScore {
			maxID = k
			maxScore = scores[k]
		}
	}

	return maxID, maxScore
}

package stream

import (
	"github.com/swdee/go-spikecount"
	"github.com/swdee/go-spikecount/postprocess"
)

var testLabels = spikecount.Labels{"Pot", "Wheat Spike"}

func testParams() PipelineParams {
	return PipelineParams{
		Model: postprocess.YOLOv5Params{
			InputWidth:  100,
			InputHeight: 100,
			NumClasses:  2,
		},
		Labels:    testLabels,
		NumLabels: len(testLabels),
	}
}

// row returns a candidate row of the two class test Model in normalised
// coordinates
func row(cx, cy, w, h, obj float32, classID int) []float32 {
	r := []float32{cx, cy, w, h, obj, 0.1, 0.1}
	r[5+classID] = 0.9
	return r
}

// sceneTensor builds a tensor holding the given number of pots and
// separated wheat spikes plus a low confidence candidate that is always
// filtered
func sceneTensor(pots, spikes int) []float32 {

	var raw []float32

	for i := 0; i < pots; i++ {
		raw = append(raw, row(0.5, 0.5, 0.9, 0.9, 0.95, 0)...)
	}

	for i := 0; i < spikes; i++ {
		raw = append(raw, row(0.1+0.08*float32(i), 0.5, 0.05, 0.05, 0.9, 1)...)
	}

	raw = append(raw, row(0.5, 0.2, 0.1, 0.1, 0.1, 1)...)

	return raw
}

package stream

import (
	"errors"
	"fmt"
	"image"

	"github.com/swdee/go-spikecount/postprocess"
	"github.com/swdee/go-spikecount/preprocess"
)

// ErrNoLabels is returned when creating a Pipeline without a label table
var ErrNoLabels = errors.New("pipeline requires a label table")

// PipelineParams configures a Pipeline
type PipelineParams struct {
	// Model is the output tensor shape of the Model
	Model postprocess.YOLOv5Params
	// Labels resolves class IDs to names
	Labels postprocess.LabelResolver
	// NumLabels is the size of the label table, checked against the
	// Model's number of classes when set
	NumLabels int
	// ToDisplay maps model input coordinates to display coordinates.  When
	// nil detections stay in model space
	ToDisplay postprocess.Transformer
	// Viewport clips display boxes, the zero value disables clipping
	Viewport image.Rectangle
}

// Output is the result of running a raw tensor through the Pipeline
type Output struct {
	// Detections are the surviving detections in model input space
	Detections []postprocess.Detection
	// Display are the surviving detections mapped to display space
	Display []postprocess.Detection
	// Counts are the number of detections per label name
	Counts map[string]int
}

// Pipeline runs the pure stages on a raw tensor: decode, suppression,
// counting and display mapping.  It holds no per frame state
type Pipeline struct {
	decoder   *postprocess.YOLOv5
	labels    postprocess.LabelResolver
	toDisplay postprocess.Transformer
	mapper    postprocess.Mapper
}

// NewPipeline returns a Pipeline for the given parameters
func NewPipeline(p PipelineParams) (*Pipeline, error) {

	if p.Labels == nil {
		return nil, ErrNoLabels
	}

	if p.NumLabels > 0 && p.NumLabels != p.Model.NumClasses {
		return nil, fmt.Errorf("label table has %d labels but Model has %d classes",
			p.NumLabels, p.Model.NumClasses)
	}

	toDisplay := p.ToDisplay

	if toDisplay == nil {
		toDisplay = preprocess.Identity()
	}

	return &Pipeline{
		decoder:   postprocess.NewYOLOv5(p.Model),
		labels:    p.Labels,
		toDisplay: toDisplay,
		mapper:    postprocess.Mapper{Viewport: p.Viewport},
	}, nil
}

// Process runs the raw tensor of one frame through the pipeline using the
// given thresholds
func (p *Pipeline) Process(raw []float32, th postprocess.Thresholds) (Output, error) {

	candidates, err := p.decoder.Decode(raw)

	if err != nil {
		return Output{}, fmt.Errorf("error decoding tensor: %w", err)
	}

	dets, err := postprocess.Suppress(candidates, th, p.labels)

	if err != nil {
		return Output{}, fmt.Errorf("error suppressing detections: %w", err)
	}

	return Output{
		Detections: dets,
		Display:    p.mapper.Map(dets, p.toDisplay),
		Counts:     postprocess.CountByLabel(dets),
	}, nil
}

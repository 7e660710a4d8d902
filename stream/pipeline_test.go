package stream

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swdee/go-spikecount/postprocess"
	"github.com/swdee/go-spikecount/preprocess"
)

func TestNewPipelineErrors(t *testing.T) {

	p := testParams()
	p.Labels = nil

	_, err := NewPipeline(p)
	assert.ErrorIs(t, err, ErrNoLabels)

	p = testParams()
	p.NumLabels = 3

	_, err = NewPipeline(p)
	assert.Error(t, err)
}

func TestPipelineProcess(t *testing.T) {

	p := testParams()
	p.ToDisplay = preprocess.Scale(2, 2)

	pl, err := NewPipeline(p)
	require.NoError(t, err)

	// two copies of the pot collapse to one
	raw := sceneTensor(2, 3)

	out, err := pl.Process(raw, postprocess.DefaultThresholds())
	require.NoError(t, err)

	assert.Equal(t, map[string]int{"Pot": 1, "Wheat Spike": 3}, out.Counts)
	require.Len(t, out.Detections, 4)
	require.Len(t, out.Display, 4)

	for i, det := range out.Detections {
		disp := out.Display[i]

		assert.Equal(t, det.LabelName, disp.LabelName)
		assert.Equal(t, det.Objectness, disp.Objectness)
		assert.InDelta(t, det.Box.XMin*2, disp.Box.XMin, 1e-3)
		assert.InDelta(t, det.Box.YMax*2, disp.Box.YMax, 1e-3)
	}
}

func TestPipelineProcessIdentity(t *testing.T) {

	pl, err := NewPipeline(testParams())
	require.NoError(t, err)

	out, err := pl.Process(sceneTensor(1, 1), postprocess.DefaultThresholds())
	require.NoError(t, err)

	assert.Equal(t, out.Detections, out.Display)
}

func TestPipelineProcessEmpty(t *testing.T) {

	pl, err := NewPipeline(testParams())
	require.NoError(t, err)

	out, err := pl.Process(sceneTensor(0, 0), postprocess.DefaultThresholds())
	require.NoError(t, err)

	assert.Empty(t, out.Counts)
	assert.Empty(t, out.Detections)
}

func TestPipelineProcessShapeError(t *testing.T) {

	pl, err := NewPipeline(testParams())
	require.NoError(t, err)

	raw := sceneTensor(1, 1)

	_, err = pl.Process(raw[:len(raw)-1], postprocess.DefaultThresholds())
	assert.ErrorIs(t, err, postprocess.ErrShape)

	var shapeErr *postprocess.ShapeError
	require.True(t, errors.As(err, &shapeErr))
	assert.Equal(t, 7, shapeErr.RowSize)
}

func TestPipelineProcessLabelLookupError(t *testing.T) {

	p := testParams()
	p.Model.NumClasses = 3
	p.NumLabels = 0

	pl, err := NewPipeline(p)
	require.NoError(t, err)

	raw := []float32{0.5, 0.5, 0.2, 0.2, 0.9, 0.1, 0.1, 0.8}

	_, err = pl.Process(raw, postprocess.DefaultThresholds())
	assert.ErrorIs(t, err, postprocess.ErrLabelLookup)
}

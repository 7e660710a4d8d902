package canvas

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/swdee/go-spikecount/postprocess"
	"github.com/swdee/go-spikecount/tracker"
)

func testDetection(labelID int, name string, b postprocess.Box) postprocess.Detection {
	return postprocess.Detection{
		LabelID:    labelID,
		LabelName:  name,
		ClassScore: 0.8,
		Objectness: 0.934,
		Box:        b,
	}
}

func TestLabel(t *testing.T) {
	det := testDetection(1, "Wheat Spike", postprocess.Box{})
	assert.Equal(t, "Wheat Spike:0.93", Label(det))
}

func TestPotCountText(t *testing.T) {
	assert.Equal(t, "Pot2 Wheat Spike:14", PotCountText(tracker.PotEpisode{PotID: 2, MaxSpikes: 14}))
	assert.Equal(t, "Pot1 Wheat Spike:0", PotCountText(tracker.PotEpisode{PotID: 1, MaxSpikes: tracker.NoSpikeObserved}))
}

func TestClassColor(t *testing.T) {
	assert.Equal(t, classColors[0], ClassColor(0))
	assert.Equal(t, classColors[1], ClassColor(1+len(classColors)))
	assert.Equal(t, classColors[2], ClassColor(-2))
}

func TestOverlayDetectionBoxes(t *testing.T) {

	img := image.NewRGBA(image.Rect(0, 0, 200, 200))
	o := NewOverlay(img)

	det := testDetection(1, "Wheat Spike", postprocess.Box{XMin: 20, YMin: 60, XMax: 120, YMax: 160})
	o.DetectionBoxes([]postprocess.Detection{det})

	clr := ClassColor(1)

	// box edges
	assert.Equal(t, clr, img.RGBAAt(20, 100))
	assert.Equal(t, clr, img.RGBAAt(119, 100))
	assert.Equal(t, clr, img.RGBAAt(70, 159))

	// inside is untouched
	assert.Equal(t, color.RGBA{}, img.RGBAAt(70, 110))

	// label background sits above the box
	assert.NotEqual(t, color.RGBA{}, img.RGBAAt(21, 58))
	assert.Equal(t, color.RGBA{}, img.RGBAAt(21, 20))
}

func TestOverlayLabelInsideAtTopEdge(t *testing.T) {

	img := image.NewRGBA(image.Rect(0, 0, 100, 100))
	o := NewOverlay(img)

	det := testDetection(0, "Pot", postprocess.Box{XMin: 10, YMin: 0, XMax: 90, YMax: 90})
	o.DetectionBoxes([]postprocess.Detection{det})

	// no room above so the label is drawn below the top edge
	assert.NotEqual(t, color.RGBA{}, img.RGBAAt(12, 8))
}

func TestOverlayOutOfBoundsBox(t *testing.T) {

	img := image.NewRGBA(image.Rect(0, 0, 50, 50))
	o := NewOverlay(img)

	dets := []postprocess.Detection{
		testDetection(0, "Pot", postprocess.Box{XMin: -20, YMin: -20, XMax: 80, YMax: 80}),
		testDetection(1, "Wheat Spike", postprocess.Box{XMin: 100, YMin: 100, XMax: 120, YMax: 120}),
	}

	assert.NotPanics(t, func() {
		o.DetectionBoxes(dets)
	})
}

func TestOverlayPotCountAndClear(t *testing.T) {

	img := image.NewRGBA(image.Rect(0, 0, 200, 50))
	o := NewOverlay(img)

	o.PotCount(tracker.PotEpisode{PotID: 2, MaxSpikes: tracker.NoSpikeObserved})
	assert.Equal(t, Black, img.RGBAAt(0, 0))

	o.Clear()
	assert.Equal(t, color.RGBA{}, img.RGBAAt(0, 0))
}

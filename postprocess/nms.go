package postprocess

import (
	"math"
	"slices"
	"sort"

	flatbush "github.com/bmharper/flatbush-go"
	"github.com/chewxy/math32"
)

// Thresholds are the score and overlap limits used during suppression
type Thresholds struct {
	// Detect is the objectness score a candidate must exceed to be
	// considered at all
	Detect float32
	// IoU is the Non-Maximum Suppression threshold used for defining the
	// maximum allowed Intersection Over Union (IoU) between two bounding
	// boxes of the same class for both to be kept
	IoU float32
	// CrossClassIoU is the maximum allowed IoU between two boxes of any
	// class, used to remove one physical object detected as two classes
	CrossClassIoU float32
}

// DefaultThresholds returns the thresholds used by the wheat spike Model
// - Detect: 0.50
// - IoU: 0.50
// - Cross Class IoU: 0.70
func DefaultThresholds() Thresholds {
	return Thresholds{
		Detect:        0.50,
		IoU:           0.50,
		CrossClassIoU: 0.70,
	}
}

// Clamped returns a copy of the thresholds with every value restricted to
// the range [0,1]
func (t Thresholds) Clamped() Thresholds {
	return Thresholds{
		Detect:        clamp(t.Detect, 0, 1),
		IoU:           clamp(t.IoU, 0, 1),
		CrossClassIoU: clamp(t.CrossClassIoU, 0, 1),
	}
}

// Suppress runs per class Non-Maximum Suppression over the candidates
// followed by a second pass across all classes to remove duplicate boxes of
// the same object assigned different classes.  The label name of every
// surviving detection is resolved from labels, a class ID without a label
// fails the whole frame with a LabelLookupError
func Suppress(candidates []Detection, th Thresholds,
	labels LabelResolver) ([]Detection, error) {

	perClass := NMS(candidates, th.Detect, th.IoU)
	dets := NMSAllClass(perClass, th.Detect, th.CrossClassIoU)

	for i := range dets {
		name, ok := labels.LabelFor(dets[i].LabelID)

		if !ok {
			return nil, &LabelLookupError{LabelID: dets[i].LabelID}
		}

		dets[i].LabelName = name
	}

	return dets, nil
}

// NMS performs Non-Maximum Suppression separately for each class.  Only
// candidates with an objectness above detectThresh take part and a box is
// removed when its IoU with a higher scoring box of the same class exceeds
// iouThresh.  Results are grouped by ascending class ID
func NMS(candidates []Detection, detectThresh, iouThresh float32) []Detection {

	// group candidates by class keeping their original order
	classes := make(map[int][]Detection)

	for _, det := range candidates {
		if !valid(det, detectThresh) {
			continue
		}

		classes[det.LabelID] = append(classes[det.LabelID], det)
	}

	ids := make([]int, 0, len(classes))

	for id := range classes {
		ids = append(ids, id)
	}

	sort.Ints(ids)

	keep := make([]Detection, 0)

	for _, id := range ids {
		keep = append(keep, greedy(classes[id], iouThresh)...)
	}

	return keep
}

// NMSAllClass performs Non-Maximum Suppression without distinguishing
// between classes
func NMSAllClass(candidates []Detection, detectThresh, iouThresh float32) []Detection {

	pool := make([]Detection, 0, len(candidates))

	for _, det := range candidates {
		if valid(det, detectThresh) {
			pool = append(pool, det)
		}
	}

	return greedy(pool, iouThresh)
}

// valid reports if a candidate exceeds the detect threshold and has usable
// box coordinates.  NaN objectness never passes the comparison
func valid(det Detection, detectThresh float32) bool {
	return det.Objectness > detectThresh && !det.Box.hasNaN()
}

// byObjectness orders detections by descending objectness with NaN values
// placed last
func byObjectness(a, b Detection) int {

	aNaN := math32.IsNaN(a.Objectness)
	bNaN := math32.IsNaN(b.Objectness)

	switch {
	case aNaN && bNaN:
		return 0
	case aNaN:
		return 1
	case bNaN:
		return -1
	case a.Objectness > b.Objectness:
		return -1
	case a.Objectness < b.Objectness:
		return 1
	}

	return 0
}

// greedy sorts the pool by objectness once and then walks it in order,
// keeping each box not yet suppressed and suppressing every lower ranked box
// whose IoU with it exceeds threshold
func greedy(pool []Detection, threshold float32) []Detection {

	if len(pool) == 0 {
		return nil
	}

	sorted := slices.Clone(pool)
	slices.SortStableFunc(sorted, byObjectness)

	if len(sorted) == 1 {
		return sorted
	}

	// spatial index so each kept box is only compared against boxes whose
	// extents overlap it
	fb := flatbush.NewFlatbush[int32]()
	fb.Reserve(len(sorted))

	for _, det := range sorted {
		x1, y1, x2, y2 := indexBounds(det.Box)
		fb.Add(x1, y1, x2, y2)
	}

	fb.Finish()

	suppressed := make([]bool, len(sorted))
	keep := make([]Detection, 0, len(sorted))

	for i, det := range sorted {
		if suppressed[i] {
			continue
		}

		keep = append(keep, det)

		// a negative threshold suppresses boxes with no overlap at all which
		// the index would never return
		var others []int

		if threshold < 0 {
			others = rangeFrom(i+1, len(sorted))
		} else {
			others = fb.Search(indexBounds(det.Box))
		}

		for _, j := range others {
			if j <= i || suppressed[j] {
				continue
			}

			if IoU(det.Box, sorted[j].Box) > threshold {
				suppressed[j] = true
			}
		}
	}

	return keep
}

// indexBounds converts a box to integer extents that fully contain it
func indexBounds(b Box) (int32, int32, int32, int32) {
	return toIndex(math32.Floor(b.XMin)), toIndex(math32.Floor(b.YMin)),
		toIndex(math32.Ceil(b.XMax)), toIndex(math32.Ceil(b.YMax))
}

// toIndex converts a coordinate to int32 saturating at the type limits
func toIndex(v float32) int32 {

	if v <= math.MinInt32 {
		return math.MinInt32
	}

	if v >= math.MaxInt32 {
		return math.MaxInt32
	}

	return int32(v)
}

// rangeFrom returns the integers from start up to but excluding end
func rangeFrom(start, end int) []int {

	out := make([]int, 0, end-start)

	for i := start; i < end; i++ {
		out = append(out, i)
	}

	return out
}

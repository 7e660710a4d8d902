package postprocess

// CountByLabel returns the number of detections of each label name in the
// frame.  Labels with no detections have no entry, so a frame without any
// detections gives an empty map
func CountByLabel(dets []Detection) map[string]int {

	counts := make(map[string]int)

	for _, det := range dets {
		counts[det.LabelName]++
	}

	return counts
}

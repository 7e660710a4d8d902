package preprocess

import "math"

// TransformationMatrix returns the transform mapping a frame of srcWidth x
// srcHeight pixels into one of dstWidth x dstHeight pixels, rotating it by
// rotation degrees (a multiple of 90) about its center.  When
// maintainAspect is set the larger of the two scale factors is used for both
// axes so the destination is filled
func TransformationMatrix(srcWidth, srcHeight, dstWidth, dstHeight int,
	rotation int, maintainAspect bool) Affine {

	t := Identity()

	if rotation != 0 {
		t = t.Then(Translate(-float64(srcWidth)/2, -float64(srcHeight)/2)).
			Then(Rotate(float64(rotation)))
	}

	// quarter turns swap the width and height of the source
	transpose := (abs(rotation)+90)%180 == 0

	inWidth := srcWidth
	inHeight := srcHeight

	if transpose {
		inWidth, inHeight = srcHeight, srcWidth
	}

	if inWidth != dstWidth || inHeight != dstHeight {
		scaleX := float64(dstWidth) / float64(inWidth)
		scaleY := float64(dstHeight) / float64(inHeight)

		if maintainAspect {
			s := math.Max(scaleX, scaleY)
			t = t.Then(Scale(s, s))
		} else {
			t = t.Then(Scale(scaleX, scaleY))
		}
	}

	if rotation != 0 {
		t = t.Then(Translate(float64(dstWidth)/2, float64(dstHeight)/2))
	}

	return t
}

// PreviewToModel returns the transform from preview pixels down into model
// input pixels, stretching the preview to the model input size
func PreviewToModel(previewWidth, previewHeight, modelWidth, modelHeight int) Affine {
	return TransformationMatrix(previewWidth, previewHeight, modelWidth,
		modelHeight, 0, false)
}

// ModelToPreview returns the inverse of PreviewToModel, used to map
// detections back onto the preview for display
func ModelToPreview(previewWidth, previewHeight, modelWidth, modelHeight int) (Affine, error) {
	return PreviewToModel(previewWidth, previewHeight, modelWidth, modelHeight).Invert()
}

// FillScale returns the scale factor needed for a camera image of
// imageWidth x imageHeight, rotated by rotation degrees for display, to fill
// a preview of previewWidth x previewHeight
func FillScale(imageWidth, imageHeight, previewWidth, previewHeight, rotation int) float64 {

	upright := rotation%180 == 0

	a := imageWidth
	b := imageHeight

	if !upright {
		a, b = imageHeight, imageWidth
	}

	return math.Max(
		float64(previewHeight)/float64(a),
		float64(previewWidth)/float64(b),
	)
}

// abs returns the absolute value of an int
func abs(v int) int {
	if v < 0 {
		return -v
	}

	return v
}

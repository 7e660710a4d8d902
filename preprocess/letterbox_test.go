package preprocess

import (
	"testing"
)

func TestLetterbox(t *testing.T) {

	tests := []struct {
		srcWidth      int
		srcHeight     int
		dstWidth      int
		dstHeight     int
		expectedXPad  int
		expectedYPad  int
		expectedScale float32
	}{
		{1280, 720, 640, 640, 0, 140, 0.50},
		{800, 1000, 640, 640, 64, 0, 0.64},
		{800, 800, 640, 640, 0, 0, 0.8},
		{720, 960, 640, 640, 80, 0, 0.6666667},
	}

	for _, tc := range tests {
		lb := NewLetterbox(tc.srcWidth, tc.srcHeight, tc.dstWidth, tc.dstHeight)
		xPad, yPad := lb.Padding()

		if xPad != tc.expectedXPad || yPad != tc.expectedYPad {
			t.Errorf("src (%d, %d): expected padding (%d, %d), got (%d, %d)",
				tc.srcWidth, tc.srcHeight, tc.expectedXPad, tc.expectedYPad, xPad, yPad)
		}

		if absDiff(lb.Scale(), tc.expectedScale) > 1e-6 {
			t.Errorf("src (%d, %d): expected scale %.4f, got %.4f",
				tc.srcWidth, tc.srcHeight, tc.expectedScale, lb.Scale())
		}

		// the bottom right preview corner lands on the inner edge of the padding
		x, y := lb.Transform().Apply(float32(tc.srcWidth), float32(tc.srcHeight))
		wantX := float32(tc.dstWidth - tc.expectedXPad)
		wantY := float32(tc.dstHeight - tc.expectedYPad)

		if absDiff(x, wantX) > 1 || absDiff(y, wantY) > 1 {
			t.Errorf("src (%d, %d): corner mapped to (%.2f, %.2f), expected (%.2f, %.2f)",
				tc.srcWidth, tc.srcHeight, x, y, wantX, wantY)
		}

		inv, err := lb.Inverse()

		if err != nil {
			t.Fatalf("src (%d, %d): unexpected error %v", tc.srcWidth, tc.srcHeight, err)
		}

		px, py := inv.Apply(x, y)

		if absDiff(px, float32(tc.srcWidth)) > 1e-2 || absDiff(py, float32(tc.srcHeight)) > 1e-2 {
			t.Errorf("src (%d, %d): inverse gave (%.2f, %.2f)", tc.srcWidth, tc.srcHeight, px, py)
		}
	}
}

func TestLetterboxInner(t *testing.T) {

	w, h := NewLetterbox(1280, 720, 640, 640).Inner()

	if w != 640 || h != 360 {
		t.Errorf("expected inner 640x360, got %dx%d", w, h)
	}
}

func absDiff(a, b float32) float32 {
	if a > b {
		return a - b
	}
	return b - a
}

package postprocess

import (
	"math/rand"
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
)

// randomBox returns a box with corners inside a 640x640 image
func randomBox(r *rand.Rand) Box {
	x1 := r.Float32() * 640
	y1 := r.Float32() * 640
	x2 := r.Float32() * 640
	y2 := r.Float32() * 640

	return Box{
		XMin: math32.Min(x1, x2),
		YMin: math32.Min(y1, y2),
		XMax: math32.Max(x1, x2),
		YMax: math32.Max(y1, y2),
	}
}

func TestIoU(t *testing.T) {

	tests := []struct {
		name string
		a, b Box
		want float32
	}{
		{"identical", Box{0, 0, 10, 10}, Box{0, 0, 10, 10}, 1},
		{"quarter overlap", Box{0, 0, 10, 10}, Box{5, 5, 15, 15}, 25.0 / 175.0},
		{"disjoint", Box{0, 0, 10, 10}, Box{20, 20, 30, 30}, 0},
		{"touching edges", Box{0, 0, 10, 10}, Box{10, 0, 20, 10}, 0},
		{"contained", Box{0, 0, 10, 10}, Box{0, 0, 5, 10}, 0.5},
		{"both zero area", Box{5, 5, 5, 5}, Box{5, 5, 5, 5}, 0},
		{"zero width and zero height", Box{0, 0, 0, 10}, Box{0, 0, 10, 0}, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, IoU(tc.a, tc.b), 1e-6)
		})
	}
}

func TestIoUSymmetric(t *testing.T) {
	r := rand.New(rand.NewSource(1))

	for i := 0; i < 1000; i++ {
		a := randomBox(r)
		b := randomBox(r)

		assert.Equal(t, IoU(a, b), IoU(b, a), "boxes %v and %v", a, b)
	}
}

func TestIoUSelf(t *testing.T) {
	r := rand.New(rand.NewSource(2))

	for i := 0; i < 1000; i++ {
		a := randomBox(r)

		if a.Area() <= 0 {
			continue
		}

		assert.Equal(t, float32(1), IoU(a, a), "box %v", a)
	}
}

func TestIoUNaN(t *testing.T) {
	nan := math32.NaN()
	iou := IoU(Box{nan, 0, 10, 10}, Box{0, 0, 10, 10})

	assert.False(t, iou > 0.5)
	assert.False(t, math32.IsNaN(iou))
}

package preprocess

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// ErrSingular is returned when inverting a transform that collapses the
// plane and so has no inverse
var ErrSingular = errors.New("affine transform is not invertible")

// singularEpsilon is the determinant magnitude below which a transform is
// treated as singular
const singularEpsilon = 1e-12

// Affine is a 2D affine transform held as a 3x3 homogeneous matrix.  The
// zero value is the identity transform
type Affine struct {
	m *mat.Dense
}

// NewAffine returns the transform mapping (x, y) to
// (a*x + b*y + tx, c*x + d*y + ty)
func NewAffine(a, b, c, d, tx, ty float64) Affine {
	return Affine{
		m: mat.NewDense(3, 3, []float64{
			a, b, tx,
			c, d, ty,
			0, 0, 1,
		}),
	}
}

// Identity returns the identity transform
func Identity() Affine {
	return NewAffine(1, 0, 0, 1, 0, 0)
}

// Scale returns a transform scaling by sx and sy about the origin
func Scale(sx, sy float64) Affine {
	return NewAffine(sx, 0, 0, sy, 0, 0)
}

// Translate returns a transform shifting by tx and ty
func Translate(tx, ty float64) Affine {
	return NewAffine(1, 0, 0, 1, tx, ty)
}

// Rotate returns a transform rotating clockwise in image coordinates (y
// pointing down) by the given degrees about the origin.  Quarter turns are
// exact
func Rotate(degrees float64) Affine {

	var sin, cos float64

	switch math.Mod(math.Mod(degrees, 360)+360, 360) {
	case 0:
		sin, cos = 0, 1
	case 90:
		sin, cos = 1, 0
	case 180:
		sin, cos = 0, -1
	case 270:
		sin, cos = -1, 0
	default:
		rad := degrees * math.Pi / 180
		sin, cos = math.Sin(rad), math.Cos(rad)
	}

	return NewAffine(cos, -sin, sin, cos, 0, 0)
}

// matrix returns the backing matrix, treating the zero value as identity
func (a Affine) matrix() *mat.Dense {
	if a.m == nil {
		return Identity().m
	}

	return a.m
}

// Then returns the transform that applies a followed by next
func (a Affine) Then(next Affine) Affine {

	var out mat.Dense
	out.Mul(next.matrix(), a.matrix())

	return Affine{m: &out}
}

// Det returns the determinant of the linear part of the transform
func (a Affine) Det() float64 {
	return mat.Det(a.matrix().Slice(0, 2, 0, 2))
}

// Invert returns the inverse transform or ErrSingular
func (a Affine) Invert() (Affine, error) {

	if math.Abs(a.Det()) < singularEpsilon {
		return Affine{}, ErrSingular
	}

	var inv mat.Dense

	if err := inv.Inverse(a.matrix()); err != nil {
		return Affine{}, fmt.Errorf("%w: %v", ErrSingular, err)
	}

	return Affine{m: &inv}, nil
}

// Apply maps the point (x, y) through the transform
func (a Affine) Apply(x, y float32) (float32, float32) {

	m := a.matrix()
	fx, fy := float64(x), float64(y)

	nx := m.At(0, 0)*fx + m.At(0, 1)*fy + m.At(0, 2)
	ny := m.At(1, 0)*fx + m.At(1, 1)*fy + m.At(1, 2)

	return float32(nx), float32(ny)
}

// Values returns the six free coefficients a, b, c, d, tx, ty
func (a Affine) Values() [6]float64 {

	m := a.matrix()

	return [6]float64{
		m.At(0, 0), m.At(0, 1),
		m.At(1, 0), m.At(1, 1),
		m.At(0, 2), m.At(1, 2),
	}
}

// String implements fmt.Stringer
func (a Affine) String() string {
	v := a.Values()
	return fmt.Sprintf("[%.4g %.4g %.4g; %.4g %.4g %.4g]", v[0], v[1], v[4], v[2], v[3], v[5])
}

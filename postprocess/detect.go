package postprocess

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"
)

var (
	// ErrShape is matched by a ShapeError using errors.Is
	ErrShape = errors.New("tensor shape mismatch")
	// ErrLabelLookup is matched by a LabelLookupError using errors.Is
	ErrLabelLookup = errors.New("label lookup failed")
)

// Box are the dimensions of the bounding box of a detected object in
// model input pixel units
type Box struct {
	XMin float32
	YMin float32
	XMax float32
	YMax float32
}

// Width returns the width of the box
func (b Box) Width() float32 {
	return b.XMax - b.XMin
}

// Height returns the height of the box
func (b Box) Height() float32 {
	return b.YMax - b.YMin
}

// Area returns the area of the box, which is zero or negative for a
// degenerate box
func (b Box) Area() float32 {
	return b.Width() * b.Height()
}

// hasNaN reports if any coordinate of the box is NaN
func (b Box) hasNaN() bool {
	return math32.IsNaN(b.XMin) || math32.IsNaN(b.YMin) ||
		math32.IsNaN(b.XMax) || math32.IsNaN(b.YMax)
}

// Detection defines the attributes of a single decoded candidate object
type Detection struct {
	// LabelID is the line number in the labels file the Model was trained on
	// defining the Class of the detected object
	LabelID int
	// LabelName is the resolved class name.  It is empty until resolved by
	// the Suppressor
	LabelName string
	// ClassScore is the highest class probability of the candidate
	ClassScore float32
	// Objectness is the confidence score that the box contains any object
	Objectness float32
	// Box is the bounding box of the object location
	Box Box
}

// LabelResolver is anything able to map a class ID to its name
type LabelResolver interface {
	LabelFor(id int) (string, bool)
}

// ShapeError is returned when a raw tensor does not have the length the
// Model output shape requires
type ShapeError struct {
	// Got is the length of the tensor given
	Got int
	// Want is the expected length
	Want int
	// RowSize is the number of values per candidate row
	RowSize int
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("tensor length %d does not match expected %d (row size %d)",
		e.Got, e.Want, e.RowSize)
}

// Is makes ShapeError match ErrShape
func (e *ShapeError) Is(target error) bool {
	return target == ErrShape
}

// LabelLookupError is returned when a detection's class ID has no entry in
// the label table
type LabelLookupError struct {
	LabelID int
}

func (e *LabelLookupError) Error() string {
	return fmt.Sprintf("no label for class id %d", e.LabelID)
}

// Is makes LabelLookupError match ErrLabelLookup
func (e *LabelLookupError) Is(target error) bool {
	return target == ErrLabelLookup
}

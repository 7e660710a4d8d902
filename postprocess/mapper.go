package postprocess

import (
	"image"

	"github.com/chewxy/math32"
	clipper "github.com/ctessum/go.clipper"
)

// clipScale is the fixed point scale applied to coordinates given to the
// integer based polygon clipper
const clipScale = 1024

// Transformer maps a point from one coordinate space to another
type Transformer interface {
	Apply(x, y float32) (float32, float32)
}

// Mapper maps detections from model input space into display space for
// rendering.  Mapped boxes are not used for counting
type Mapper struct {
	// Viewport is the display area boxes are clipped to.  The zero value
	// disables clipping
	Viewport image.Rectangle
}

// Map applies the transform to the detections without clipping
func Map(dets []Detection, t Transformer) []Detection {
	return Mapper{}.Map(dets, t)
}

// Map applies the transform to the four corners of each detection's box
// and takes the axis aligned bounding box of the resulting quadrilateral.
// Labels and scores are copied unchanged.  When a Viewport is set, the
// quadrilateral is clipped to it first and boxes falling wholly outside of
// it are dropped
func (m Mapper) Map(dets []Detection, t Transformer) []Detection {

	out := make([]Detection, 0, len(dets))

	for _, det := range dets {
		quad := transformCorners(det.Box, t)

		box, ok := m.bound(quad)

		if !ok {
			continue
		}

		det.Box = box
		out = append(out, det)
	}

	return out
}

// transformCorners returns the transformed corner points of the box
func transformCorners(b Box, t Transformer) [4][2]float32 {

	var quad [4][2]float32

	corners := [4][2]float32{
		{b.XMin, b.YMin},
		{b.XMax, b.YMin},
		{b.XMax, b.YMax},
		{b.XMin, b.YMax},
	}

	for i, c := range corners {
		quad[i][0], quad[i][1] = t.Apply(c[0], c[1])
	}

	return quad
}

// boundPoints returns the axis aligned bounding box of the points
func boundPoints(pts [][2]float32) Box {

	box := Box{
		XMin: pts[0][0], YMin: pts[0][1],
		XMax: pts[0][0], YMax: pts[0][1],
	}

	for _, p := range pts[1:] {
		box.XMin = math32.Min(box.XMin, p[0])
		box.YMin = math32.Min(box.YMin, p[1])
		box.XMax = math32.Max(box.XMax, p[0])
		box.YMax = math32.Max(box.YMax, p[1])
	}

	return box
}

// bound returns the bounding box of the quadrilateral within the viewport
// and false when nothing of it is visible
func (m Mapper) bound(quad [4][2]float32) (Box, bool) {

	box := boundPoints(quad[:])

	if m.Viewport.Empty() {
		return box, true
	}

	vp := Box{
		XMin: float32(m.Viewport.Min.X),
		YMin: float32(m.Viewport.Min.Y),
		XMax: float32(m.Viewport.Max.X),
		YMax: float32(m.Viewport.Max.Y),
	}

	// wholly inside
	if box.XMin >= vp.XMin && box.YMin >= vp.YMin &&
		box.XMax <= vp.XMax && box.YMax <= vp.YMax {
		return box, true
	}

	// wholly outside
	if box.XMin > vp.XMax || box.XMax < vp.XMin ||
		box.YMin > vp.YMax || box.YMax < vp.YMin {
		return Box{}, false
	}

	clipped, ok := clipQuad(quad, m.Viewport)

	if !ok {
		// degenerate quadrilaterals have no area to clip so restrict the
		// bounding box instead
		return Box{
			XMin: clamp(box.XMin, vp.XMin, vp.XMax),
			YMin: clamp(box.YMin, vp.YMin, vp.YMax),
			XMax: clamp(box.XMax, vp.XMin, vp.XMax),
			YMax: clamp(box.YMax, vp.YMin, vp.YMax),
		}, true
	}

	return boundPoints(clipped), true
}

// clipQuad intersects the quadrilateral with the viewport rectangle and
// returns the vertices of the intersection
func clipQuad(quad [4][2]float32, vp image.Rectangle) ([][2]float32, bool) {

	var subject clipper.Path

	for _, p := range quad {
		subject = append(subject, &clipper.IntPoint{
			X: clipper.CInt(math32.Round(p[0] * clipScale)),
			Y: clipper.CInt(math32.Round(p[1] * clipScale)),
		})
	}

	clip := clipper.Path{
		{X: clipper.CInt(vp.Min.X * clipScale), Y: clipper.CInt(vp.Min.Y * clipScale)},
		{X: clipper.CInt(vp.Max.X * clipScale), Y: clipper.CInt(vp.Min.Y * clipScale)},
		{X: clipper.CInt(vp.Max.X * clipScale), Y: clipper.CInt(vp.Max.Y * clipScale)},
		{X: clipper.CInt(vp.Min.X * clipScale), Y: clipper.CInt(vp.Max.Y * clipScale)},
	}

	c := clipper.NewClipper(clipper.IoNone)
	c.AddPath(subject, clipper.PtSubject, true)
	c.AddPath(clip, clipper.PtClip, true)

	solution, ok := c.Execute1(clipper.CtIntersection, clipper.PftNonZero,
		clipper.PftNonZero)

	if !ok || len(solution) == 0 {
		return nil, false
	}

	var pts [][2]float32

	for _, path := range solution {
		for _, pt := range path {
			pts = append(pts, [2]float32{
				float32(pt.X) / clipScale,
				float32(pt.Y) / clipScale,
			})
		}
	}

	if len(pts) == 0 {
		return nil, false
	}

	return pts, true
}

package hui

import (
	"fmt"

	"github.com/solarlune/resolv"
	"github.com/vovakirdan/hui-playground/internal/core"
)

// ShapeKind selects the collision geometry of a Shape.
type ShapeKind uint8

const (
	KindPoint ShapeKind = iota
	KindBox
	KindDisc

	numKinds
)

func (k ShapeKind) String() string {
	switch k {
	case KindPoint:
		return "point"
	case KindBox:
		return "box"
	case KindDisc:
		return "disc"
	}
	return fmt.Sprintf("ShapeKind(%d)", k)
}

// Shape is a Body with collision geometry. Boxes are centered on the body
// position and rotate with its angle.
type Shape struct {
	Body

	Kind   ShapeKind
	Size   Vec2
	Radius float64

	// Restitution is the fraction of normal velocity kept after a World
	// contact (0 stops, 1 bounces fully).
	Restitution float64

	// Layer and Color make the shape draw itself every frame. A nil Layer
	// draws nothing.
	Layer core.Surface
	Color core.Color

	// Contact flags, refreshed by the World every substep.
	OnGround  bool
	OnWall    bool
	OnCeiling bool

	world *World
	obj   *resolv.Object
}

// NewPoint returns a shape without extent.
func NewPoint(x, y float64) *Shape {
	s := &Shape{Kind: KindPoint}
	s.init(V(x, y), Zero)
	return s
}

// NewBox returns a w by h box centered on (x, y).
func NewBox(x, y, w, h float64) *Shape {
	s := &Shape{Kind: KindBox, Size: V(w, h)}
	s.init(V(x, y), Zero)
	return s
}

// NewDisc returns a disc of radius r centered on (x, y).
func NewDisc(x, y, r float64) *Shape {
	s := &Shape{Kind: KindDisc, Radius: r}
	s.init(V(x, y), Zero)
	return s
}

func (s *Shape) W() float64 { return s.Size.X }
func (s *Shape) H() float64 { return s.Size.Y }

func (s *Shape) radius() float64 {
	if s.Kind == KindDisc {
		return s.Radius
	}
	return 0
}

// Corners returns the four box corners in world space, clockwise from the
// top-left. Discs and points return their bounding square.
func (s *Shape) Corners() [4]Vec2 {
	half := s.Size.Scale(0.5)
	angle := s.Angle()
	if s.Kind != KindBox {
		half = V(s.radius(), s.radius())
		angle = 0
	}
	pos := s.Pos()
	return [4]Vec2{
		pos.Add(V(-half.X, -half.Y).Rotate(angle)),
		pos.Add(V(half.X, -half.Y).Rotate(angle)),
		pos.Add(V(half.X, half.Y).Rotate(angle)),
		pos.Add(V(-half.X, half.Y).Rotate(angle)),
	}
}

// Axes returns the two face normals of a box.
func (s *Shape) Axes() [2]Vec2 {
	x := Polar(s.Angle(), 1)
	return [2]Vec2{x, x.Perp()}
}

// Contains reports whether p lies inside the shape, edges included.
func (s *Shape) Contains(p Vec2) bool {
	switch s.Kind {
	case KindBox:
		lp := s.LocalPos(p).Abs()
		return lp.X <= s.Size.X/2 && lp.Y <= s.Size.Y/2
	case KindDisc:
		return s.Pos().Distance(p) <= s.Radius
	}
	return s.Pos() == p
}

// AABB returns the axis-aligned bounds of the shape.
func (s *Shape) AABB() BoundingBox {
	if s.Kind == KindBox {
		c := s.Corners()
		return BoundsOf(c[:]...)
	}
	r := V(s.radius(), s.radius())
	return BoundingBox{Min: s.Pos().Sub(r), Max: s.Pos().Add(r)}
}

// Tick integrates the shape unless a World owns it.
func (s *Shape) Tick(dt float64) {
	if s.world != nil {
		return
	}
	s.Move(dt)
}

// Draw fills the shape onto its Layer.
func (s *Shape) Draw(float64) {
	if s.Layer == nil {
		return
	}
	s.trace(s.Layer, s.Color, true)
}

// DrawDebug outlines the shape and its heading.
func (s *Shape) DrawDebug(dst core.Surface) {
	c := core.ColorRed
	if s.OnGround || s.OnWall || s.OnCeiling {
		c = core.ColorBrightYellow
	}
	s.trace(dst, c, false)
}

func (s *Shape) trace(dst core.Surface, c core.Color, fill bool) {
	dst.Save()
	defer dst.Restore()

	pos := s.Pos()
	dst.Translate(pos.X, pos.Y)
	dst.Rotate(s.Angle())
	switch s.Kind {
	case KindBox:
		if fill {
			dst.FillRect(-s.Size.X/2, -s.Size.Y/2, s.Size.X, s.Size.Y, c)
		} else {
			dst.StrokeRect(-s.Size.X/2, -s.Size.Y/2, s.Size.X, s.Size.Y, c)
		}
	case KindDisc:
		if fill {
			dst.FillCircle(0, 0, s.Radius, c)
		} else {
			dst.StrokeCircle(0, 0, s.Radius, c)
			dst.Line(0, 0, s.Radius, 0, c)
		}
	default:
		dst.FillRect(-0.5, -0.5, 1, 1, c)
	}
}

func (s *Shape) String() string {
	switch s.Kind {
	case KindBox:
		return fmt.Sprintf("<hui:box pos=%v size=%v>", s.Pos(), s.Size)
	case KindDisc:
		return fmt.Sprintf("<hui:disc pos=%v r=%g>", s.Pos(), s.Radius)
	}
	return fmt.Sprintf("<hui:point pos=%v>", s.Pos())
}

package hui

import (
	"fmt"
	"math"
)

// Vec2 is an immutable 2D vector. Every method returns a new value.
type Vec2 struct {
	X, Y float64
}

// V is shorthand for Vec2{x, y}.
func V(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// Zero is the zero vector.
var Zero = Vec2{}

// Polar returns the vector of the given length pointing at angle theta.
func Polar(theta, length float64) Vec2 {
	sin, cos := math.Sincos(theta)
	return Vec2{cos * length, sin * length}
}

func (v Vec2) String() string {
	return fmt.Sprintf("(%g, %g)", v.X, v.Y)
}

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Move returns v translated by (dx, dy).
func (v Vec2) Move(dx, dy float64) Vec2 { return Vec2{v.X + dx, v.Y + dy} }

// To returns the vector pointing from v to o.
func (v Vec2) To(o Vec2) Vec2 { return o.Sub(v) }

func (v Vec2) Scale(f float64) Vec2 { return Vec2{v.X * f, v.Y * f} }

// Times multiplies componentwise.
func (v Vec2) Times(o Vec2) Vec2 { return Vec2{v.X * o.X, v.Y * o.Y} }

// Div divides both components by f. Division by zero yields the zero vector.
func (v Vec2) Div(f float64) Vec2 {
	if f == 0 {
		return Zero
	}
	return Vec2{v.X / f, v.Y / f}
}

// DivVec divides componentwise; a zero divisor component yields 0 for that component.
func (v Vec2) DivVec(o Vec2) Vec2 {
	var r Vec2
	if o.X != 0 {
		r.X = v.X / o.X
	}
	if o.Y != 0 {
		r.Y = v.Y / o.Y
	}
	return r
}

// ScaleFrom scales v relative to origin.
func (v Vec2) ScaleFrom(origin Vec2, f float64) Vec2 {
	return origin.Add(v.Sub(origin).Scale(f))
}

func (v Vec2) Neg() Vec2 { return Vec2{-v.X, -v.Y} }
func (v Vec2) Abs() Vec2 { return Vec2{math.Abs(v.X), math.Abs(v.Y)} }

func (v Vec2) Dot(o Vec2) float64 { return v.X*o.X + v.Y*o.Y }

// Cross returns the z component of the 3D cross product.
func (v Vec2) Cross(o Vec2) float64 { return v.X*o.Y - v.Y*o.X }

func (v Vec2) Len() float64 { return math.Hypot(v.X, v.Y) }

// Len2 returns the squared length.
func (v Vec2) Len2() float64 { return v.X*v.X + v.Y*v.Y }

func (v Vec2) IsZero() bool { return v.X == 0 && v.Y == 0 }

// Norm returns v scaled to the given length (1 if omitted).
// The zero vector normalizes to the zero vector.
func (v Vec2) Norm(length ...float64) Vec2 {
	f := 1.0
	if len(length) > 0 {
		f = length[0]
	}
	l := v.Len()
	if l == 0 {
		return Zero
	}
	return v.Scale(f / l)
}

// Rotate rotates v by theta radians around the origin.
func (v Vec2) Rotate(theta float64) Vec2 {
	sin, cos := math.Sincos(theta)
	return Vec2{v.X*cos - v.Y*sin, v.X*sin + v.Y*cos}
}

// RotateAround rotates v by theta radians around pivot.
func (v Vec2) RotateAround(pivot Vec2, theta float64) Vec2 {
	return v.Sub(pivot).Rotate(theta).Add(pivot)
}

// Perp returns v rotated by a quarter turn.
func (v Vec2) Perp() Vec2 { return Vec2{-v.Y, v.X} }

// Project projects v onto o. Projecting onto the zero vector uses (1, 1).
func (v Vec2) Project(o Vec2) Vec2 {
	if o.IsZero() {
		o = Vec2{1, 1}
	}
	return o.Scale(v.Dot(o) / o.Len2())
}

// SignedProj returns the scalar projection of v onto the direction of o.
func (v Vec2) SignedProj(o Vec2) float64 {
	return v.Dot(o.Norm())
}

func (v Vec2) Min(o Vec2) Vec2 { return Vec2{math.Min(v.X, o.X), math.Min(v.Y, o.Y)} }
func (v Vec2) Max(o Vec2) Vec2 { return Vec2{math.Max(v.X, o.X), math.Max(v.Y, o.Y)} }

// SignedIsoMin keeps, per component, the value with the smaller magnitude.
func (v Vec2) SignedIsoMin(o Vec2) Vec2 {
	return Vec2{absMin(v.X, o.X), absMin(v.Y, o.Y)}
}

// SignedIsoMax keeps, per component, the value with the larger magnitude.
func (v Vec2) SignedIsoMax(o Vec2) Vec2 {
	return Vec2{absMax(v.X, o.X), absMax(v.Y, o.Y)}
}

func absMin(a, b float64) float64 {
	if math.Abs(a) <= math.Abs(b) {
		return a
	}
	return b
}

func absMax(a, b float64) float64 {
	if math.Abs(a) >= math.Abs(b) {
		return a
	}
	return b
}

// Sign returns the componentwise sign (-1, 0 or 1).
func (v Vec2) Sign() Vec2 { return Vec2{Sign(v.X), Sign(v.Y)} }

func (v Vec2) Distance(o Vec2) float64 { return v.Sub(o).Len() }

// DirTo returns the unit vector pointing from v towards o.
func (v Vec2) DirTo(o Vec2) Vec2 { return o.Sub(v).Norm() }

// Angle returns the heading of v in radians.
func (v Vec2) Angle() float64 { return math.Atan2(v.Y, v.X) }

// AngleTo returns the heading from v towards o.
func (v Vec2) AngleTo(o Vec2) float64 { return o.Sub(v).Angle() }

// AngleBetween returns the signed angle that rotates v onto o, in (-pi, pi].
func (v Vec2) AngleBetween(o Vec2) float64 {
	return math.Atan2(v.Cross(o), v.Dot(o))
}

// Lerp interpolates between v and o. The endpoints are exact.
func (v Vec2) Lerp(o Vec2, t float64) Vec2 {
	return Vec2{Lerp(v.X, o.X, t), Lerp(v.Y, o.Y, t)}
}

// Querp interpolates with quadratic in-out easing.
func (v Vec2) Querp(o Vec2, t float64) Vec2 {
	return v.Lerp(o, easeFraction(t))
}

// MoveTowards steps v towards target by at most maxStep without overshooting.
func (v Vec2) MoveTowards(target Vec2, maxStep float64) Vec2 {
	d := target.Sub(v)
	l := d.Len()
	if l <= maxStep || l == 0 {
		return target
	}
	return v.Add(d.Scale(maxStep / l))
}

// Sum adds all vectors.
func Sum(vs ...Vec2) Vec2 {
	var s Vec2
	for _, v := range vs {
		s = s.Add(v)
	}
	return s
}

// Avg returns the mean of vs, or the zero vector for no input.
func Avg(vs ...Vec2) Vec2 {
	return Sum(vs...).Div(float64(len(vs)))
}

// MinOf returns the componentwise minimum of vs.
func MinOf(vs ...Vec2) Vec2 {
	if len(vs) == 0 {
		return Zero
	}
	m := vs[0]
	for _, v := range vs[1:] {
		m = m.Min(v)
	}
	return m
}

// MaxOf returns the componentwise maximum of vs.
func MaxOf(vs ...Vec2) Vec2 {
	if len(vs) == 0 {
		return Zero
	}
	m := vs[0]
	for _, v := range vs[1:] {
		m = m.Max(v)
	}
	return m
}

// BoundingBox is an axis-aligned box given by its min and max corners.
type BoundingBox struct {
	Min, Max Vec2
}

// BoundsOf returns the smallest box containing every point.
func BoundsOf(pts ...Vec2) BoundingBox {
	return BoundingBox{Min: MinOf(pts...), Max: MaxOf(pts...)}
}

func (b BoundingBox) Left() float64   { return b.Min.X }
func (b BoundingBox) Right() float64  { return b.Max.X }
func (b BoundingBox) Top() float64    { return b.Min.Y }
func (b BoundingBox) Bottom() float64 { return b.Max.Y }
func (b BoundingBox) Size() Vec2      { return b.Max.Sub(b.Min) }
func (b BoundingBox) Center() Vec2    { return b.Min.Lerp(b.Max, 0.5) }

// Contains reports whether p lies inside b, edges included.
func (b BoundingBox) Contains(p Vec2) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X && p.Y >= b.Min.Y && p.Y <= b.Max.Y
}

// Overlaps reports whether the two boxes share any area.
func (b BoundingBox) Overlaps(o BoundingBox) bool {
	return b.Min.X < o.Max.X && o.Min.X < b.Max.X && b.Min.Y < o.Max.Y && o.Min.Y < b.Max.Y
}

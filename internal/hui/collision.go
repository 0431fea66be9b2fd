package hui

import "math"

// Contact is the result of a narrow-phase test between shapes A and B.
// MTV points from A towards B: moving B by MTV (or A by -MTV) separates them.
type Contact struct {
	Collided bool
	MTV      Vec2
	Normal   Vec2 // unit direction of MTV
	Depth    float64
}

type collideFunc func(a, b *Shape) Contact

// collisionTable dispatches on the pair of shape kinds. Points behave as
// discs of radius zero.
var collisionTable [numKinds][numKinds]collideFunc

func init() {
	collisionTable = [numKinds][numKinds]collideFunc{
		KindPoint: {KindPoint: discDisc, KindBox: discBox, KindDisc: discDisc},
		KindBox:   {KindPoint: flipped(discBox), KindBox: boxBox, KindDisc: flipped(discBox)},
		KindDisc:  {KindPoint: discDisc, KindBox: discBox, KindDisc: discDisc},
	}
}

// flipped runs f with swapped operands and reorients the result.
func flipped(f collideFunc) collideFunc {
	return func(a, b *Shape) Contact {
		c := f(b, a)
		c.MTV = c.MTV.Neg()
		c.Normal = c.Normal.Neg()
		return c
	}
}

func hit(normal Vec2, depth float64) Contact {
	return Contact{Collided: true, MTV: normal.Scale(depth), Normal: normal, Depth: depth}
}

// Collide tests a against b.
func Collide(a, b *Shape) Contact {
	if a == nil || b == nil || a.Kind >= numKinds || b.Kind >= numKinds {
		return Contact{}
	}
	return collisionTable[a.Kind][b.Kind](a, b)
}

// Touches reports whether s overlaps o.
func (s *Shape) Touches(o *Shape) bool {
	return Collide(s, o).Collided
}

// discDisc collides iff the center distance is below the sum of radii.
func discDisc(a, b *Shape) Contact {
	d := b.Pos().Sub(a.Pos())
	dist := d.Len()
	sum := a.radius() + b.radius()
	if dist >= sum {
		return Contact{}
	}
	n := V(1, 0)
	if dist > 0 {
		n = d.Scale(1 / dist)
	}
	return hit(n, sum-dist)
}

// discBox is a closest-point test in the box's local frame.
func discBox(a, b *Shape) Contact {
	r := a.radius()
	local := b.LocalPos(a.Pos())
	half := b.Size.Scale(0.5)
	closest := V(Clamp(local.X, -half.X, half.X), Clamp(local.Y, -half.Y, half.Y))

	var n Vec2
	var depth float64
	if closest == local {
		// Center inside the box: leave through the nearest face.
		px := half.X - math.Abs(local.X)
		py := half.Y - math.Abs(local.Y)
		if px < py {
			n = V(-signNonZero(local.X), 0)
			depth = px + r
		} else {
			n = V(0, -signNonZero(local.Y))
			depth = py + r
		}
	} else {
		delta := local.Sub(closest)
		dist := delta.Len()
		if dist >= r {
			return Contact{}
		}
		n = delta.Scale(-1 / dist)
		depth = r - dist
	}
	return hit(n.Rotate(b.Angle()), depth)
}

func signNonZero(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}

// project returns the extent of the corners along axis.
func project(corners [4]Vec2, axis Vec2) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, c := range corners {
		p := c.Dot(axis)
		lo = math.Min(lo, p)
		hi = math.Max(hi, p)
	}
	return lo, hi
}

// boxBox applies the separating axis theorem on the two face normals of
// each box. The first separating axis ends the test. On equal overlaps the
// first axis tried wins, so the result is stable but not canonical.
func boxBox(a, b *Shape) Contact {
	ca, cb := a.Corners(), b.Corners()
	aa, ab := a.Axes(), b.Axes()
	axes := [4]Vec2{aa[0], aa[1], ab[0], ab[1]}

	best := math.Inf(1)
	var bestAxis Vec2
	for _, axis := range axes {
		loA, hiA := project(ca, axis)
		loB, hiB := project(cb, axis)
		overlap := math.Min(hiA, hiB) - math.Max(loA, loB)
		if overlap <= 0 {
			return Contact{}
		}
		// One interval inside the other: the shape must also clear the nearer end.
		if (loA <= loB && hiB <= hiA) || (loB <= loA && hiA <= hiB) {
			overlap += math.Min(math.Abs(loA-loB), math.Abs(hiA-hiB))
		}
		if overlap < best {
			best = overlap
			bestAxis = axis
		}
	}

	if b.Pos().Sub(a.Pos()).Dot(bestAxis) < 0 {
		bestAxis = bestAxis.Neg()
	}
	return hit(bestAxis, best)
}

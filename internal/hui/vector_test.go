package hui

import (
	"math"
	"testing"
)

const eps = 1e-9

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func nearVec(a, b Vec2) bool {
	return near(a.X, b.X) && near(a.Y, b.Y)
}

func TestNorm(t *testing.T) {
	tests := []Vec2{V(3, 4), V(-1, 0), V(0.001, -2000), V(1e-8, 1e-8)}
	for _, v := range tests {
		if l := v.Norm().Len(); math.Abs(l-1) > eps {
			t.Errorf("%v.Norm().Len() = %v, expected 1", v, l)
		}
	}

	z := Zero.Norm()
	if z != Zero || math.IsNaN(z.X) || math.IsNaN(z.Y) {
		t.Errorf("Zero.Norm() = %v, expected zero vector", z)
	}

	if got := V(3, 4).Norm(10); !nearVec(got, V(6, 8)) {
		t.Errorf("Norm(10) = %v, expected (6, 8)", got)
	}
}

func TestLerpEndpointsExact(t *testing.T) {
	pairs := [][2]float64{{0, 1}, {-3.7, 12.1}, {0.1, 0.2}, {1e9, -1e-9}}
	for _, p := range pairs {
		a, b := p[0], p[1]
		if got := Lerp(a, b, 0); got != a {
			t.Errorf("Lerp(%v, %v, 0) = %v", a, b, got)
		}
		if got := Lerp(a, b, 1); got != b {
			t.Errorf("Lerp(%v, %v, 1) = %v", a, b, got)
		}

		va, vb := V(a, b), V(b, a)
		if got := va.Lerp(vb, 0); got != va {
			t.Errorf("%v.Lerp(%v, 0) = %v", va, vb, got)
		}
		if got := va.Lerp(vb, 1); got != vb {
			t.Errorf("%v.Lerp(%v, 1) = %v", va, vb, got)
		}
	}
}

func TestDivByZero(t *testing.T) {
	if got := V(1, 2).Div(0); got != Zero {
		t.Errorf("Div(0) = %v, expected zero vector", got)
	}
	if got := V(4, 2).DivVec(V(2, 0)); got != V(2, 0) {
		t.Errorf("DivVec = %v, expected (2, 0)", got)
	}
}

func TestProject(t *testing.T) {
	tests := []struct {
		name     string
		v, onto  Vec2
		expected Vec2
	}{
		{"onto x axis", V(3, 4), V(1, 0), V(3, 0)},
		{"onto scaled axis", V(3, 4), V(0, 5), V(0, 4)},
		{"onto zero falls back to diagonal", V(2, 0), Zero, V(1, 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.Project(tt.onto); !nearVec(got, tt.expected) {
				t.Errorf("Project = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestRotate(t *testing.T) {
	if got := V(1, 0).Rotate(math.Pi / 2); !nearVec(got, V(0, 1)) {
		t.Errorf("Rotate(pi/2) = %v", got)
	}
	if got := V(2, 1).RotateAround(V(1, 1), math.Pi); !nearVec(got, V(0, 1)) {
		t.Errorf("RotateAround = %v", got)
	}
	if got := V(1, 2).Perp(); got != V(-2, 1) {
		t.Errorf("Perp = %v", got)
	}
}

func TestAngles(t *testing.T) {
	if got := V(0, 1).Angle(); !near(got, math.Pi/2) {
		t.Errorf("Angle = %v", got)
	}
	if got := V(1, 0).AngleBetween(V(0, -1)); !near(got, -math.Pi/2) {
		t.Errorf("AngleBetween = %v", got)
	}
	if got := V(1, 1).AngleTo(V(1, 5)); !near(got, math.Pi/2) {
		t.Errorf("AngleTo = %v", got)
	}
}

func TestVectorHelpers(t *testing.T) {
	if got := V(-2, 3).SignedIsoMin(V(1, -5)); got != V(1, 3) {
		t.Errorf("SignedIsoMin = %v", got)
	}
	if got := V(-2, 3).SignedIsoMax(V(1, -5)); got != V(-2, -5) {
		t.Errorf("SignedIsoMax = %v", got)
	}
	if got := V(-2, 0).Sign(); got != V(-1, 0) {
		t.Errorf("Sign = %v", got)
	}
	if got := V(0, 0).MoveTowards(V(10, 0), 3); got != V(3, 0) {
		t.Errorf("MoveTowards = %v", got)
	}
	if got := V(0, 0).MoveTowards(V(1, 0), 3); got != V(1, 0) {
		t.Errorf("MoveTowards should not overshoot, got %v", got)
	}
	if got := Avg(V(0, 0), V(2, 4)); got != V(1, 2) {
		t.Errorf("Avg = %v", got)
	}
	if got := Avg(); got != Zero {
		t.Errorf("Avg() = %v", got)
	}
}

func TestBoundingBox(t *testing.T) {
	b := BoundsOf(V(1, 5), V(-2, 3), V(4, -1))
	if b.Left() != -2 || b.Right() != 4 || b.Top() != -1 || b.Bottom() != 5 {
		t.Errorf("BoundsOf = %+v", b)
	}
	if !b.Contains(V(0, 0)) || b.Contains(V(5, 0)) {
		t.Error("Contains gave wrong answer")
	}
	if !b.Overlaps(BoundingBox{Min: V(3, 4), Max: V(10, 10)}) {
		t.Error("boxes should overlap")
	}
}

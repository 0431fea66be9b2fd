package hui

import (
	"math"
	"testing"
)

func TestBodySemiImplicitEuler(t *testing.T) {
	tests := []struct {
		name string
		run  func(b *Body)
	}{
		{"ten frames of 0.1s", func(b *Body) {
			for i := 0; i < 10; i++ {
				b.Move(0.1)
			}
		}},
		{"one frame of 1s with clamp lifted", func(b *Body) {
			b.MaxDelta = 1
			b.Move(1.0)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBody(0, 0, 0, 0)
			b.Force = V(0, 100)
			tt.run(b)

			st := b.Simulated()
			if !nearVec(st.Vel, V(0, 100)) {
				t.Errorf("Vel = %v, expected (0, 100)", st.Vel)
			}
			// Sum of h*(100*i*h) for i = 1..100.
			if math.Abs(st.Pos.Y-50.5) > 1e-6 || st.Pos.X != 0 {
				t.Errorf("Pos = %v, expected (0, 50.5)", st.Pos)
			}
			// The readout trails by at most one substep (49.5 after 99 steps).
			if b.Y() < 49.5-1e-6 || b.Y() > 50.5+1e-6 {
				t.Errorf("interpolated Y = %v, expected within [49.5, 50.5]", b.Y())
			}
		})
	}
}

func TestBodyClampsLargeDelta(t *testing.T) {
	b := NewBody(0, 0, 10, 0)
	b.Move(5)
	// Only 0.1s (10 substeps) is simulated.
	if x := b.Simulated().Pos.X; !near(x, 1) {
		t.Errorf("X = %v, expected 1 after clamped frame", x)
	}
}

func TestBodyInterpolates(t *testing.T) {
	b := NewBody(0, 0, 10, 0)
	b.Move(0.015)
	// One substep takes x from 0 to 0.1; the leftover half step places
	// the readout halfway between the two samples.
	if !near(b.X(), 0.05) {
		t.Errorf("X = %v, expected 0.05 (halfway between 0 and 0.1)", b.X())
	}
}

func TestBodyTeleport(t *testing.T) {
	b := NewBody(0, 0, 10, 0)
	b.Move(0.015)
	b.SetPos(V(100, 100))
	if b.Pos() != V(100, 100) {
		t.Fatalf("Pos after SetPos = %v", b.Pos())
	}

	b.SetVel(Zero)
	b.Move(0.001)
	if b.Pos() != V(100, 100) {
		t.Errorf("teleported body drifted to %v", b.Pos())
	}

	b.SetX(5)
	b.SetVY(3)
	if b.X() != 5 || b.Y() != 100 || b.VY() != 3 {
		t.Errorf("component setters gave pos=%v vel=%v", b.Pos(), b.Vel())
	}
}

func TestStaticBody(t *testing.T) {
	b := NewBody(1, 2, 50, 0)
	b.Static = true
	b.Force = V(0, 100)
	b.Move(0.1)
	if b.Pos() != V(1, 2) {
		t.Errorf("static body moved to %v", b.Pos())
	}

	// Turning static off integrates from the held state.
	b.Static = false
	b.Move(0.01)
	if x := b.Simulated().Pos.X; x <= 1 {
		t.Errorf("X = %v, expected movement after leaving static", x)
	}
}

func TestBodyAngular(t *testing.T) {
	b := NewBody(0, 0, 0, 0)
	b.SetAngularVel(math.Pi)
	for i := 0; i < 10; i++ {
		b.Move(0.1)
	}
	if a := b.Simulated().Angle; !near(a, math.Pi) {
		t.Errorf("Angle = %v, expected pi", a)
	}
}

func TestBodySpeedAndAcc(t *testing.T) {
	b := NewBody(0, 0, 3, 4)
	if b.Speed() != 5 {
		t.Errorf("Speed = %v", b.Speed())
	}
	b.SetSpeed(10)
	if !nearVec(b.Vel(), V(6, 8)) {
		t.Errorf("Vel after SetSpeed = %v", b.Vel())
	}

	b.Mass = 2
	b.SetAcc(V(0, 5))
	if b.Force != V(0, 10) || b.Acc() != V(0, 5) {
		t.Errorf("Force = %v, Acc = %v", b.Force, b.Acc())
	}
}

func TestLocalPos(t *testing.T) {
	b := NewBody(10, 10, 0, 0)
	b.SetAngle(math.Pi / 2)
	if got := b.LocalPos(V(10, 15)); !nearVec(got, V(5, 0)) {
		t.Errorf("LocalPos = %v, expected (5, 0)", got)
	}
}

package hui

import (
	"math"
	"testing"
)

func TestWorldGravityFall(t *testing.T) {
	w := NewWorld(100, 100)
	d := w.AddDisc(50, 10, 2, Dynamic)

	for i := 0; i < 6; i++ {
		w.Step(0.05)
	}
	if d.VY() <= 0 || d.Y() <= 10 {
		t.Errorf("disc should fall, pos=%v vel=%v", d.Pos(), d.Vel())
	}
	if d.X() != 50 {
		t.Errorf("disc drifted sideways to %v", d.X())
	}
}

func TestWorldRestsOnGround(t *testing.T) {
	w := NewWorld(100, 100)
	ground := w.AddBox(50, 95, 100, 10, Static)
	box := w.AddBox(50, 80, 10, 10, Dynamic)

	for i := 0; i < 120; i++ {
		w.Step(1.0 / 60)
	}

	if ground.Pos() != V(50, 95) {
		t.Errorf("static ground moved to %v", ground.Pos())
	}
	// Box bottom should rest on the ground top at y=90.
	if bottom := box.Y() + 5; math.Abs(bottom-90) > 0.5 {
		t.Errorf("box bottom at %v, expected about 90", bottom)
	}
	if !box.OnGround {
		t.Error("resting box should be on ground")
	}
	if box.OnWall || box.OnCeiling {
		t.Errorf("unexpected contacts: wall=%v ceiling=%v", box.OnWall, box.OnCeiling)
	}
}

func TestWorldBoundary(t *testing.T) {
	w := NewWorld(60, 40, WithGravity(Zero))
	w.SetBoundary(true)
	d := w.AddDisc(50, 20, 3, Dynamic)
	d.SetVel(V(200, 0))

	for i := 0; i < 60; i++ {
		w.Step(1.0 / 60)
	}
	if d.X() > 60 {
		t.Errorf("disc left the world: x=%v", d.X())
	}

	w.SetBoundary(false)
	if len(w.Shapes()) != 1 {
		t.Errorf("Shapes = %d after boundary off, expected 1", len(w.Shapes()))
	}
}

func TestWorldBounce(t *testing.T) {
	w := NewWorld(100, 100, WithGravity(Zero))
	w.AddBox(80, 50, 10, 40, Static)
	d := w.AddDisc(60, 50, 2, Dynamic)
	d.Restitution = 1
	d.SetVel(V(100, 0))

	sawWall := false
	for i := 0; i < 30; i++ {
		w.Step(1.0 / 60)
		sawWall = sawWall || d.OnWall
	}
	if d.VX() >= 0 {
		t.Errorf("disc should bounce back, vel=%v", d.Vel())
	}
	if !near(math.Abs(d.VX()), 100) {
		t.Errorf("elastic bounce should keep speed, vel=%v", d.Vel())
	}
	if !sawWall {
		t.Error("disc should have reported a wall contact")
	}
}

func TestWorldDynamicPairSplitsPush(t *testing.T) {
	w := NewWorld(100, 100, WithGravity(Zero))
	a := w.AddBox(45, 50, 10, 10, Dynamic)
	b := w.AddBox(53, 50, 10, 10, Dynamic)

	// Second step lets the readout catch up with the resolved sample.
	w.Step(1.0 / 60)
	w.Step(1.0 / 60)

	if gap := b.X() - a.X(); gap < 10-1e-6 {
		t.Errorf("boxes still overlap, centers %v apart", gap)
	}
	if !near(a.X()+b.X(), 98) {
		t.Errorf("equal masses should move symmetrically: %v, %v", a.X(), b.X())
	}
}

func TestWorldOwnsShapeTick(t *testing.T) {
	w := NewWorld(100, 100)
	d := w.AddDisc(10, 10, 1, Dynamic)
	d.Tick(1)
	if d.Pos() != V(10, 10) {
		t.Error("shape in a world should not integrate itself")
	}

	w.Remove(d)
	if _, ok := w.TypeOf(d); ok {
		t.Error("removed shape still in world")
	}
	d.SetVel(V(10, 0))
	d.Tick(0.05)
	if d.Simulated().Pos.X <= 10 {
		t.Error("detached shape should integrate itself again")
	}
}

func TestGameWorldIntegration(t *testing.T) {
	g, _ := newTestGame()
	w := NewWorld(g.Size())
	g.AttachWorld(w)
	d := g.NewDisc(10, 2, 1)
	w.Add(d, Dynamic)

	g.Step(0, 0.05)
	if d.Y() <= 2 {
		t.Errorf("attached world should move shapes, y=%v", d.Y())
	}

	g.Remove(d)
	g.Step(0.05, 0.05)
	if len(w.Shapes()) != 0 {
		t.Error("removing a shape from the game should detach it from the world")
	}
}

func TestClassifyContact(t *testing.T) {
	tests := []struct {
		push                  Vec2
		ground, wall, ceiling bool
	}{
		{V(0, -1), true, false, false},
		{V(0, 1), false, false, true},
		{V(1, 0), false, true, false},
		{V(-1, 0), false, true, false},
		{V(1, -1), false, false, false},
	}
	for _, tt := range tests {
		s := NewBox(0, 0, 1, 1)
		classify(s, tt.push)
		if s.OnGround != tt.ground || s.OnWall != tt.wall || s.OnCeiling != tt.ceiling {
			t.Errorf("push %v: ground=%v wall=%v ceiling=%v", tt.push, s.OnGround, s.OnWall, s.OnCeiling)
		}
	}
}

func TestWorldDetachRestoresStatic(t *testing.T) {
	tests := []struct {
		name   string
		before bool
		typ    BodyType
	}{
		{"pinned shape added as dynamic", true, Dynamic},
		{"free shape added as static", false, Static},
		{"pinned shape added as static", true, Static},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := NewWorld(100, 100)
			s := NewDisc(50, 50, 2)
			s.Static = tt.before

			w.Add(s, tt.typ)
			if s.Static != (tt.typ == Static) {
				t.Errorf("in world: Static = %v", s.Static)
			}

			// Moving to another world goes through the same restore.
			other := NewWorld(100, 100)
			other.Add(s, tt.typ)
			other.Remove(s)
			if s.Static != tt.before {
				t.Errorf("after Remove: Static = %v, want %v", s.Static, tt.before)
			}

			w.Add(s, tt.typ)
			s.Release()
			if s.Static != tt.before {
				t.Errorf("after Release: Static = %v, want %v", s.Static, tt.before)
			}
		})
	}
}

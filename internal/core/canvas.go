package core

import "math"

// Glyphs used when rasterizing shapes into cells.
const (
	FillGlyph   = '█'
	StrokeGlyph = '•'
)

// transform is a 2D affine matrix in canvas order:
// x' = a*x + c*y + e, y' = b*x + d*y + f.
type transform struct {
	a, b, c, d, e, f float64
}

func identity() transform {
	return transform{a: 1, d: 1}
}

func (t transform) apply(x, y float64) (float64, float64) {
	return t.a*x + t.c*y + t.e, t.b*x + t.d*y + t.f
}

// scale is the geometric mean of the axis scales. Degenerate matrices
// report 1 so callers never divide by zero.
func (t transform) scale() float64 {
	det := math.Abs(t.a*t.d - t.b*t.c)
	if det == 0 || math.IsNaN(det) || math.IsInf(det, 0) {
		return 1
	}
	return math.Sqrt(det)
}

// inverse returns the inverse matrix. A degenerate matrix (zero scale)
// has no inverse; ok is false then.
func (t transform) inverse() (transform, bool) {
	det := t.a*t.d - t.b*t.c
	if det == 0 {
		return transform{}, false
	}
	return transform{
		a: t.d / det,
		b: -t.b / det,
		c: -t.c / det,
		d: t.a / det,
		e: (t.c*t.f - t.d*t.e) / det,
		f: (t.b*t.e - t.a*t.f) / det,
	}, true
}

// Save pushes the current transform.
func (s *Screen) Save() {
	s.stack = append(s.stack, s.xf)
}

// Restore pops the last saved transform. Unbalanced calls are ignored.
func (s *Screen) Restore() {
	if len(s.stack) == 0 {
		return
	}
	s.xf = s.stack[len(s.stack)-1]
	s.stack = s.stack[:len(s.stack)-1]
}

// ResetTransform sets the current transform to identity. The saved stack is kept.
func (s *Screen) ResetTransform() {
	s.xf = identity()
}

// Translate moves the origin by (dx, dy) in the current frame.
func (s *Screen) Translate(dx, dy float64) {
	t := &s.xf
	t.e += t.a*dx + t.c*dy
	t.f += t.b*dx + t.d*dy
}

// Rotate rotates the current frame by theta radians (clockwise on screen,
// since y grows downwards).
func (s *Screen) Rotate(theta float64) {
	sin, cos := math.Sincos(theta)
	t := s.xf
	s.xf.a = t.a*cos + t.c*sin
	s.xf.b = t.b*cos + t.d*sin
	s.xf.c = -t.a*sin + t.c*cos
	s.xf.d = -t.b*sin + t.d*cos
}

// Scale scales the current frame.
func (s *Screen) Scale(sx, sy float64) {
	s.xf.a *= sx
	s.xf.b *= sx
	s.xf.c *= sy
	s.xf.d *= sy
}

// plot writes a glyph at a world-space position (already transformed).
func (s *Screen) plot(wx, wy float64, r rune, c Color) {
	if math.IsNaN(wx) || math.IsNaN(wy) {
		return
	}
	s.SetCell(int(math.Floor(wx)), int(math.Floor(wy/CellAspect)), r, c)
}

// fillRegion rasterizes a local-space region bounded by (x0,y0)-(x1,y1)
// by testing each covered cell center against inside.
func (s *Screen) fillRegion(x0, y0, x1, y1 float64, c Color, inside func(lx, ly float64) bool) {
	// Shapes smaller than a cell still show up as one glyph.
	if !s.scanRegion(x0, y0, x1, y1, FillGlyph, c, inside) {
		wx, wy := s.xf.apply((x0+x1)/2, (y0+y1)/2)
		s.plot(wx, wy, FillGlyph, c)
	}
}

// scanRegion visits the on-screen cells under the region's bounding box
// and draws r where inside holds. It reports whether any cell was drawn.
func (s *Screen) scanRegion(x0, y0, x1, y1 float64, r rune, c Color, inside func(lx, ly float64) bool) bool {
	inv, ok := s.xf.inverse()
	if !ok {
		return false
	}

	minX, minY, maxX, maxY := s.worldBounds(x0, y0, x1, y1)
	col0 := max(int(math.Floor(minX)), 0)
	col1 := min(int(math.Ceil(maxX)), s.width-1)
	row0 := max(int(math.Floor(minY/CellAspect)), 0)
	row1 := min(int(math.Ceil(maxY/CellAspect)), s.height-1)

	drawn := false
	for row := row0; row <= row1; row++ {
		for col := col0; col <= col1; col++ {
			lx, ly := inv.apply(float64(col)+0.5, (float64(row)+0.5)*CellAspect)
			if inside(lx, ly) {
				s.SetCell(col, row, r, c)
				drawn = true
			}
		}
	}
	return drawn
}

// worldBounds returns the world-space box around a transformed local box.
func (s *Screen) worldBounds(x0, y0, x1, y1 float64) (minX, minY, maxX, maxY float64) {
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)
	for _, p := range [4][2]float64{{x0, y0}, {x1, y0}, {x0, y1}, {x1, y1}} {
		wx, wy := s.xf.apply(p[0], p[1])
		minX, maxX = math.Min(minX, wx), math.Max(maxX, wx)
		minY, maxY = math.Min(minY, wy), math.Max(maxY, wy)
	}
	return minX, minY, maxX, maxY
}

// offscreen reports whether a world-space box misses every cell.
func (s *Screen) offscreen(minX, minY, maxX, maxY float64) bool {
	w, h := s.Size()
	return maxX < 0 || maxY < 0 || minX >= w || minY >= h
}

// FillRect fills a rectangle whose top-left corner is (x, y).
func (s *Screen) FillRect(x, y, w, h float64, c Color) {
	x0, x1 := math.Min(x, x+w), math.Max(x, x+w)
	y0, y1 := math.Min(y, y+h), math.Max(y, y+h)
	s.fillRegion(x0, y0, x1, y1, c, func(lx, ly float64) bool {
		return lx >= x0 && lx <= x1 && ly >= y0 && ly <= y1
	})
}

// StrokeRect draws the outline of a rectangle whose top-left corner is (x, y).
func (s *Screen) StrokeRect(x, y, w, h float64, c Color) {
	s.localLine(x, y, x+w, y, c)
	s.localLine(x+w, y, x+w, y+h, c)
	s.localLine(x+w, y+h, x, y+h, c)
	s.localLine(x, y+h, x, y, c)
}

// FillCircle fills a circle centered at (x, y).
func (s *Screen) FillCircle(x, y, r float64, c Color) {
	r = math.Abs(r)
	s.fillRegion(x-r, y-r, x+r, y+r, c, func(lx, ly float64) bool {
		dx, dy := lx-x, ly-y
		return dx*dx+dy*dy <= r*r
	})
}

// StrokeCircle draws the outline of a circle centered at (x, y).
// Rings too long to step point by point are scanned cell by cell over the
// visible part of the screen instead.
func (s *Screen) StrokeCircle(x, y, r float64, c Color) {
	r = math.Abs(r)
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return
	}
	if s.offscreen(s.worldBounds(x-r, y-r, x+r, y+r)) {
		return
	}

	w, h := s.Size()
	steps := int(math.Ceil(2*math.Pi*r*s.xf.scale()*2)) + 8
	if limit := int(4*(w+h)) + 8; steps > limit {
		tol := 1 / s.xf.scale()
		s.scanRegion(x-r, y-r, x+r, y+r, StrokeGlyph, c, func(lx, ly float64) bool {
			return math.Abs(math.Hypot(lx-x, ly-y)-r) <= tol
		})
		return
	}

	for i := 0; i < steps; i++ {
		theta := 2 * math.Pi * float64(i) / float64(steps)
		sin, cos := math.Sincos(theta)
		wx, wy := s.xf.apply(x+r*cos, y+r*sin)
		s.plot(wx, wy, StrokeGlyph, c)
	}
}

// Line draws a line between two points in the current frame.
func (s *Screen) Line(x1, y1, x2, y2 float64, c Color) {
	s.localLine(x1, y1, x2, y2, c)
}

func (s *Screen) localLine(x1, y1, x2, y2 float64, c Color) {
	wx1, wy1 := s.xf.apply(x1, y1)
	wx2, wy2 := s.xf.apply(x2, y2)
	wx1, wy1, wx2, wy2, ok := s.clipLine(wx1, wy1, wx2, wy2)
	if !ok {
		return
	}
	length := math.Hypot(wx2-wx1, wy2-wy1)
	steps := int(math.Ceil(length*2)) + 1
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		s.plot(wx1+(wx2-wx1)*t, wy1+(wy2-wy1)*t, StrokeGlyph, c)
	}
}

// clipLine trims a world-space segment to the screen, padded by one cell,
// using Liang-Barsky. ok is false when nothing of the segment is visible.
func (s *Screen) clipLine(x1, y1, x2, y2 float64) (cx1, cy1, cx2, cy2 float64, ok bool) {
	for _, v := range [4]float64{x1, y1, x2, y2} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, 0, 0, 0, false
		}
	}

	w, h := s.Size()
	minX, maxX := -1.0, w+1
	minY, maxY := -CellAspect, h+CellAspect
	dx, dy := x2-x1, y2-y1
	t0, t1 := 0.0, 1.0
	for _, edge := range [4][2]float64{
		{-dx, x1 - minX},
		{dx, maxX - x1},
		{-dy, y1 - minY},
		{dy, maxY - y1},
	} {
		p, q := edge[0], edge[1]
		if p == 0 {
			if q < 0 {
				return 0, 0, 0, 0, false
			}
			continue
		}
		t := q / p
		if p < 0 {
			t0 = math.Max(t0, t)
		} else {
			t1 = math.Min(t1, t)
		}
		if t0 > t1 {
			return 0, 0, 0, 0, false
		}
	}
	return x1 + dx*t0, y1 + dy*t0, x1 + dx*t1, y1 + dy*t1, true
}

// Text writes text starting at (x, y) in the current frame. Text is never
// rotated; only its anchor point is transformed.
func (s *Screen) Text(x, y float64, text string, c Color) {
	wx, wy := s.xf.apply(x, y)
	if math.IsNaN(wx) || math.IsNaN(wy) {
		return
	}
	col := int(math.Floor(wx))
	row := int(math.Floor(wy / CellAspect))
	i := 0
	for _, r := range text {
		s.SetCell(col+i, row, r, c)
		i++
	}
}

// Compile-time check that Screen is a drawable surface.
var _ Surface = (*Screen)(nil)

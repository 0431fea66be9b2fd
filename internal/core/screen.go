package core

import (
	"strings"
)

// Cell is a single character position on the screen.
// A zero Rune marks a transparent glyph; a ColorDefault Bg marks a
// transparent background.
type Cell struct {
	Rune  rune
	Color Color
	Bg    Color
}

// Screen is a 2D character buffer for rendering sketch graphics.
// It decouples drawing from the terminal, allowing sketches to draw with
// simple shape operations while the platform handles actual display.
//
// Screen implements Surface. Cell-level helpers (Set, DrawText)
// address characters directly and ignore the transform stack.
type Screen struct {
	width  int
	height int
	cells  [][]Cell

	xf    transform
	stack []transform
}

// NewScreen creates a new screen buffer with the given dimensions.
func NewScreen(width, height int) *Screen {
	s := &Screen{
		width:  width,
		height: height,
		xf:     identity(),
	}
	s.allocate()
	s.Clear()
	return s
}

// allocate creates the underlying cell storage.
func (s *Screen) allocate() {
	s.cells = make([][]Cell, s.height)
	for y := range s.cells {
		s.cells[y] = make([]Cell, s.width)
	}
}

// Width returns the screen width in characters.
func (s *Screen) Width() int {
	return s.width
}

// Height returns the screen height in characters.
func (s *Screen) Height() int {
	return s.height
}

// Size returns the drawable extent in world units.
func (s *Screen) Size() (float64, float64) {
	return float64(s.width), float64(s.height) * CellAspect
}

// Clear makes every cell transparent.
func (s *Screen) Clear() {
	for y := range s.cells {
		for x := range s.cells[y] {
			s.cells[y][x] = Cell{}
		}
	}
}

// Flood paints the background of every cell with c, keeping glyphs.
func (s *Screen) Flood(c Color) {
	for y := range s.cells {
		for x := range s.cells[y] {
			s.cells[y][x].Bg = c
		}
	}
}

// Set places a rune at the given position.
// Out-of-bounds coordinates are silently ignored.
func (s *Screen) Set(x, y int, r rune) {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return
	}
	s.cells[y][x].Rune = r
}

// SetCell places a rune with a color at the given position.
func (s *Screen) SetCell(x, y int, r rune, c Color) {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return
	}
	s.cells[y][x].Rune = r
	s.cells[y][x].Color = c
}

// Get returns the rune at the given position.
// Returns space for out-of-bounds coordinates and transparent cells.
func (s *Screen) Get(x, y int) rune {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return ' '
	}
	if r := s.cells[y][x].Rune; r != 0 {
		return r
	}
	return ' '
}

// GetCell returns the full cell at the given position.
func (s *Screen) GetCell(x, y int) Cell {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return Cell{}
	}
	return s.cells[y][x]
}

// DrawText writes a string horizontally starting at (x, y).
// Characters that extend beyond screen bounds are clipped.
func (s *Screen) DrawText(x, y int, text string) {
	i := 0
	for _, r := range text {
		s.Set(x+i, y, r)
		i++
	}
}

// Composite draws src over this screen. Only *Screen sources of any size
// are supported; cells outside this screen are clipped.
func (s *Screen) Composite(src Surface) {
	o, ok := src.(*Screen)
	if !ok || o == s {
		return
	}
	h := min(s.height, o.height)
	w := min(s.width, o.width)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := o.cells[y][x]
			if c.Rune != 0 {
				s.cells[y][x].Rune = c.Rune
				s.cells[y][x].Color = c.Color
			}
			if c.Bg != ColorDefault {
				s.cells[y][x].Bg = c.Bg
			}
		}
	}
}

// String converts the screen buffer to a plain string without colors.
// Each row is joined with newlines.
func (s *Screen) String() string {
	var sb strings.Builder
	sb.Grow(s.width*s.height + s.height) // Pre-allocate for efficiency

	for y := 0; y < s.height; y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}
		sb.WriteString(s.Row(y))
	}
	return sb.String()
}

// Row returns a copy of the specified row as a string.
func (s *Screen) Row(y int) string {
	if y < 0 || y >= s.height {
		return strings.Repeat(" ", s.width)
	}
	row := make([]rune, s.width)
	for x, c := range s.cells[y] {
		if c.Rune == 0 {
			row[x] = ' '
		} else {
			row[x] = c.Rune
		}
	}
	return string(row)
}

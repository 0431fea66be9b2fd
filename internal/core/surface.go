package core

// Surface is a drawable layer in world coordinates.
//
// Coordinates are floats; implementations map them onto their own
// resolution. Drawing state (translation, rotation, scale) is a stack
// managed with Save and Restore, mirroring a 2D canvas context.
type Surface interface {
	// Size returns the drawable extent in world units.
	Size() (w, h float64)

	Clear()
	Flood(c Color)

	Save()
	Restore()
	Translate(dx, dy float64)
	Rotate(theta float64)
	Scale(sx, sy float64)
	ResetTransform()

	FillRect(x, y, w, h float64, c Color)
	StrokeRect(x, y, w, h float64, c Color)
	FillCircle(x, y, r float64, c Color)
	StrokeCircle(x, y, r float64, c Color)
	Line(x1, y1, x2, y2 float64, c Color)
	Text(x, y float64, text string, c Color)

	// Composite draws src on top of this surface. Transparent parts of src
	// leave the destination untouched.
	Composite(src Surface)
}

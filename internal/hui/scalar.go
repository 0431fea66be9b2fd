package hui

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/tanema/gween/ease"
)

// ErrOperandKind is returned when an operation receives operands it cannot
// combine, such as a scalar and a vector.
var ErrOperandKind = errors.New("hui: mismatched operand kinds")

// OperandError describes a call with mismatched operand kinds.
type OperandError struct {
	Op    string
	Kinds []string
}

func (e *OperandError) Error() string {
	return fmt.Sprintf("hui: %s can only be used on two numbers or two vectors, got %v", e.Op, e.Kinds)
}

func (e *OperandError) Unwrap() error { return ErrOperandKind }

// Lerp linearly interpolates between a and b. Lerp(a, b, 0) == a and
// Lerp(a, b, 1) == b exactly.
func Lerp(a, b, t float64) float64 {
	return a*(1-t) + b*t
}

// Querp interpolates between a and b with quadratic in-out easing.
func Querp(a, b, t float64) float64 {
	return Lerp(a, b, easeFraction(t))
}

// easeFraction maps t in [0, 1] onto the in-out quadratic curve. The curve
// is evaluated in float32, so interior results carry about 7 significant
// digits. The endpoints stay exact.
func easeFraction(t float64) float64 {
	switch {
	case t <= 0:
		return 0
	case t >= 1:
		return 1
	}
	return float64(ease.InOutQuad(float32(t), 0, 1, 1))
}

// MoveTowards steps a towards b by at most delta without overshooting.
func MoveTowards(a, b, delta float64) float64 {
	step := math.Min(math.Abs(b-a), delta)
	return a + Sign(b-a)*step
}

// Clamp limits value to [min, max].
func Clamp(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// Wrap folds a value that left [min, max] back in from the opposite side.
// A single fold is applied, which is enough for per-frame movement.
func Wrap(value, min, max float64) float64 {
	switch {
	case value > max:
		return min + (value - max)
	case value < min:
		return max - (min - value)
	}
	return value
}

// Sign returns -1, 0 or 1.
func Sign(v float64) float64 {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	}
	return 0
}

// operand normalizes a dynamic operand into either a scalar or a vector.
func operand(v any) (s float64, vec Vec2, isVec bool, ok bool) {
	switch x := v.(type) {
	case float64:
		return x, Zero, false, true
	case float32:
		return float64(x), Zero, false, true
	case int:
		return float64(x), Zero, false, true
	case Vec2:
		return 0, x, true, true
	case *Vec2:
		if x != nil {
			return 0, *x, true, true
		}
	}
	return 0, Zero, false, false
}

func kindOf(v any) string {
	if _, _, isVec, ok := operand(v); ok {
		if isVec {
			return "vector"
		}
		return "number"
	}
	return fmt.Sprintf("%T", v)
}

// binary applies fs or fv depending on whether both operands are scalars
// or both are vectors.
func binary(op string, a, b any, fs func(a, b float64) float64, fv func(a, b Vec2) Vec2) (any, error) {
	sa, va, aVec, aok := operand(a)
	sb, vb, bVec, bok := operand(b)
	if !aok || !bok || aVec != bVec {
		return nil, &OperandError{Op: op, Kinds: []string{kindOf(a), kindOf(b)}}
	}
	if aVec {
		return fv(va, vb), nil
	}
	return fs(sa, sb), nil
}

// LerpAny interpolates two numbers or two vectors.
func LerpAny(a, b any, t float64) (any, error) {
	return binary("lerp", a, b,
		func(a, b float64) float64 { return Lerp(a, b, t) },
		func(a, b Vec2) Vec2 { return a.Lerp(b, t) })
}

// QuerpAny is the eased form of LerpAny.
func QuerpAny(a, b any, t float64) (any, error) {
	return binary("querp", a, b,
		func(a, b float64) float64 { return Querp(a, b, t) },
		func(a, b Vec2) Vec2 { return a.Querp(b, t) })
}

// MoveTowardsAny steps a number or a vector towards a target of the same kind.
func MoveTowardsAny(a, b any, delta float64) (any, error) {
	return binary("move_towards", a, b,
		func(a, b float64) float64 { return MoveTowards(a, b, delta) },
		func(a, b Vec2) Vec2 { return a.MoveTowards(b, delta) })
}

// SignAny returns the sign of a number or the componentwise sign of a vector.
func SignAny(v any) (any, error) {
	s, vec, isVec, ok := operand(v)
	if !ok {
		return nil, &OperandError{Op: "sign", Kinds: []string{kindOf(v)}}
	}
	if isVec {
		return vec.Sign(), nil
	}
	return Sign(s), nil
}

// Rand is a seeded source for the random helpers. A nil *Rand falls back to
// the global math/rand source.
type Rand struct {
	r *rand.Rand
}

// NewRand returns a deterministic source for seed.
func NewRand(seed int64) *Rand {
	return &Rand{r: rand.New(rand.NewSource(seed))}
}

func (r *Rand) float() float64 {
	if r == nil || r.r == nil {
		return rand.Float64()
	}
	return r.r.Float64()
}

// Rnd returns a value in [0, 1).
func (r *Rand) Rnd() float64 { return r.float() }

// Rndr returns a value in [min, max).
func (r *Rand) Rndr(min, max float64) float64 {
	return min + r.float()*(max-min)
}

// Rndi returns floor(Rndr(min, max)).
func (r *Rand) Rndi(min, max int) int {
	return int(math.Floor(r.Rndr(float64(min), float64(max))))
}

// RndDir returns a random unit vector.
func (r *Rand) RndDir() Vec2 {
	return Polar(r.Rndr(0, 2*math.Pi), 1)
}

// Hex formats a color as #rrggbb. Components are floored and clamped to a byte.
func Hex(r, g, b float64) string {
	c := func(v float64) int { return int(Clamp(math.Floor(v), 0, 255)) }
	return fmt.Sprintf("#%02x%02x%02x", c(r), c(g), c(b))
}

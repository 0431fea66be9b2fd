package hui

import "fmt"

// keyState holds the edge flags of a key that is down or was released
// this frame.
type keyState struct {
	justPressed  bool
	justReleased bool
}

// Input is the per-frame keyboard and mouse state queried by sketches.
// Key names follow the browser KeyboardEvent.key convention ("a",
// "ArrowLeft", " ", "Enter"); mouse buttons are "m0", "m1" and "m2".
type Input struct {
	keys  map[string]keyState
	Mouse Vec2
}

// NewInput returns an empty input state.
func NewInput() *Input {
	return &Input{keys: make(map[string]keyState)}
}

var keyAliases = map[string]string{
	"Space":    " ",
	"Spacebar": " ",
	"Esc":      "Escape",
	"Up":       "ArrowUp",
	"Down":     "ArrowDown",
	"Left":     "ArrowLeft",
	"Right":    "ArrowRight",
}

func canonicalKey(key string) string {
	if k, ok := keyAliases[key]; ok {
		return k
	}
	return key
}

// MouseKey returns the key name of mouse button n.
func MouseKey(n int) string {
	return fmt.Sprintf("m%d", n)
}

// Press records a key going down. Pressing a key that is already down
// (auto-repeat) clears its edge flags.
func (in *Input) Press(key string) {
	key = canonicalKey(key)
	if _, held := in.keys[key]; held {
		in.keys[key] = keyState{}
		return
	}
	in.keys[key] = keyState{justPressed: true}
}

// Release records a key going up. The key stays visible as just released
// until the next Decay.
func (in *Input) Release(key string) {
	key = canonicalKey(key)
	in.keys[key] = keyState{justReleased: true}
}

// IsPressed reports whether key is down.
func (in *Input) IsPressed(key string) bool {
	st, ok := in.keys[canonicalKey(key)]
	return ok && !st.justReleased
}

// JustPressed reports whether key went down this frame.
func (in *Input) JustPressed(key string) bool {
	return in.keys[canonicalKey(key)].justPressed
}

// JustReleased reports whether key went up this frame.
func (in *Input) JustReleased(key string) bool {
	return in.keys[canonicalKey(key)].justReleased
}

// AxisPressed returns -1 if neg is down, +1 if pos is down, 0 for both or neither.
func (in *Input) AxisPressed(neg, pos string) float64 {
	var v float64
	if in.IsPressed(neg) {
		v--
	}
	if in.IsPressed(pos) {
		v++
	}
	return v
}

// DirPressed combines two axes into a direction (not normalized).
func (in *Input) DirPressed(up, down, left, right string) Vec2 {
	return V(in.AxisPressed(left, right), in.AxisPressed(up, down))
}

// Held returns the names of all keys currently down.
func (in *Input) Held() []string {
	var out []string
	for k, st := range in.keys {
		if !st.justReleased {
			out = append(out, k)
		}
	}
	return out
}

// Decay ages the edge flags at the end of a frame: released keys are
// forgotten and just-pressed keys become held.
func (in *Input) Decay() {
	for k, st := range in.keys {
		if st.justReleased {
			delete(in.keys, k)
			continue
		}
		if st.justPressed {
			in.keys[k] = keyState{}
		}
	}
}

// Reset forgets every key, as when the window loses focus.
func (in *Input) Reset() {
	clear(in.keys)
}

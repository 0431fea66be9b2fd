package tui

import (
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/hui-playground/internal/core"
	"github.com/vovakirdan/hui-playground/internal/hui"
)

// keyNames maps Bubble Tea key strings to the key names sketches query.
var keyNames = map[string]string{
	"up":        "ArrowUp",
	"down":      "ArrowDown",
	"left":      "ArrowLeft",
	"right":     "ArrowRight",
	"enter":     "Enter",
	"esc":       "Escape",
	"tab":       "Tab",
	"backspace": "Backspace",
	"delete":    "Delete",
	"home":      "Home",
	"end":       "End",
	"pgup":      "PageUp",
	"pgdown":    "PageDown",
	"space":     " ",
	" ":         " ",
}

// KeyName returns the sketch-facing name of a key, or "" for keys that
// are not forwarded (modifier combinations).
func KeyName(msg tea.KeyMsg) string {
	s := msg.String()
	if name, ok := keyNames[s]; ok {
		return name
	}
	if n, ok := strings.CutPrefix(s, "f"); ok {
		if _, err := strconv.Atoi(n); err == nil {
			return "F" + n
		}
	}
	if msg.Type == tea.KeyRunes && !msg.Alt && len(msg.Runes) == 1 {
		return string(msg.Runes)
	}
	return ""
}

// MouseButton returns the hui button number of a mouse event, or -1.
func MouseButton(msg tea.MouseMsg) int {
	switch msg.Button {
	case tea.MouseButtonLeft:
		return 0
	case tea.MouseButtonMiddle:
		return 1
	case tea.MouseButtonRight:
		return 2
	}
	return -1
}

// MousePos converts a cell position to world coordinates at the cell center row.
func MousePos(msg tea.MouseMsg) hui.Vec2 {
	return hui.V(float64(msg.X), float64(msg.Y)*core.CellAspect+core.CellAspect/2)
}

// holdTracker synthesizes key releases. Terminals only report key presses
// (repeated while a key is held), so a key counts as released once it
// has not been reported for the hold duration.
type holdTracker struct {
	hold time.Duration
	seen map[string]time.Time
}

func newHoldTracker(hold time.Duration) *holdTracker {
	return &holdTracker{hold: hold, seen: make(map[string]time.Time)}
}

func (h *holdTracker) press(in *hui.Input, key string, now time.Time) {
	in.Press(key)
	h.seen[key] = now
}

// expire releases keys not reported since now-hold.
func (h *holdTracker) expire(in *hui.Input, now time.Time) {
	for key, t := range h.seen {
		if now.Sub(t) >= h.hold {
			in.Release(key)
			delete(h.seen, key)
		}
	}
}

func (h *holdTracker) reset() {
	clear(h.seen)
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionHistory
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab", "h":
		return MenuActionHistory
	}

	return MenuActionNone
}

package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/hui-playground/internal/hui"
)

func TestKeyName(t *testing.T) {
	tests := []struct {
		name string
		msg  tea.KeyMsg
		want string
	}{
		{"up arrow", tea.KeyMsg{Type: tea.KeyUp}, "ArrowUp"},
		{"left arrow", tea.KeyMsg{Type: tea.KeyLeft}, "ArrowLeft"},
		{"space", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, " "},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, "Enter"},
		{"escape", tea.KeyMsg{Type: tea.KeyEsc}, "Escape"},
		{"rune", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}}, "r"},
		{"function key", tea.KeyMsg{Type: tea.KeyF5}, "F5"},
		{"alt rune", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}, Alt: true}, ""},
		{"ctrl combo", tea.KeyMsg{Type: tea.KeyCtrlA}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KeyName(tt.msg); got != tt.want {
				t.Errorf("KeyName(%q) = %q, want %q", tt.msg.String(), got, tt.want)
			}
		})
	}
}

func TestMouseButton(t *testing.T) {
	tests := []struct {
		button tea.MouseButton
		want   int
	}{
		{tea.MouseButtonLeft, 0},
		{tea.MouseButtonMiddle, 1},
		{tea.MouseButtonRight, 2},
		{tea.MouseButtonNone, -1},
		{tea.MouseButtonWheelUp, -1},
	}

	for _, tt := range tests {
		if got := MouseButton(tea.MouseMsg{Button: tt.button}); got != tt.want {
			t.Errorf("MouseButton(%v) = %d, want %d", tt.button, got, tt.want)
		}
	}
}

func TestMousePosUsesCellCenter(t *testing.T) {
	p := MousePos(tea.MouseMsg{X: 10, Y: 3})
	if p.X != 10 || p.Y != 7 {
		t.Errorf("MousePos = %v, want (10, 7)", p)
	}
}

func TestHoldTrackerReleasesStaleKeys(t *testing.T) {
	in := hui.NewInput()
	h := newHoldTracker(200 * time.Millisecond)
	t0 := time.Now()

	h.press(in, "a", t0)
	h.press(in, "b", t0)
	in.Decay()

	// Auto-repeat keeps "a" alive.
	h.press(in, "a", t0.Add(150*time.Millisecond))
	h.expire(in, t0.Add(250*time.Millisecond))

	if !in.IsPressed("a") {
		t.Error("repeated key released early")
	}
	if !in.JustReleased("b") {
		t.Error("stale key not released")
	}

	h.expire(in, t0.Add(time.Second))
	if !in.JustReleased("a") {
		t.Error("key not released after repeats stopped")
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	tests := []struct {
		key  string
		msg  tea.KeyMsg
		want MenuAction
	}{
		{"up", tea.KeyMsg{Type: tea.KeyUp}, MenuActionUp},
		{"j", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}}, MenuActionDown},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, MenuActionSelect},
		{"tab", tea.KeyMsg{Type: tea.KeyTab}, MenuActionHistory},
		{"esc", tea.KeyMsg{Type: tea.KeyEsc}, MenuActionBack},
		{"q", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}, MenuActionQuit},
		{"x", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}}, MenuActionNone},
	}

	for _, tt := range tests {
		if got := MapKeyToMenuAction(tt.msg); got != tt.want {
			t.Errorf("MapKeyToMenuAction(%s) = %v, want %v", tt.key, got, tt.want)
		}
	}
}

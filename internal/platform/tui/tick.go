// Package tui provides the Bubble Tea integration for the hui playground.
// It drives hui.Game frames from tick messages, maps terminal input onto
// hui.Input and renders the composited screen.
package tui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a frame. Each Model owns one tick chain;
// ticks from another chain are dropped.
type TickMsg struct {
	At    time.Time
	chain uint64
}

var chains atomic.Uint64

func newChain() uint64 {
	return chains.Add(1)
}

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int, chain uint64) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{At: t, chain: chain}
	})
}

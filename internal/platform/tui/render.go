package tui

import (
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/vovakirdan/hui-playground/internal/core"
)

type colorPair struct {
	fg, bg core.Color
}

// styles caches one lipgloss style per foreground/background pair. SSH
// sessions render concurrently, hence the lock.
var styles = struct {
	sync.RWMutex
	m map[colorPair]lipgloss.Style
}{m: make(map[colorPair]lipgloss.Style)}

func styleFor(p colorPair) lipgloss.Style {
	styles.RLock()
	st, ok := styles.m[p]
	styles.RUnlock()
	if ok {
		return st
	}

	st = lipgloss.NewStyle()
	if code := p.fg.ANSI(); code != "" {
		st = st.Foreground(lipgloss.Color(code))
	}
	if code := p.bg.ANSI(); code != "" {
		st = st.Background(lipgloss.Color(code))
	}

	styles.Lock()
	styles.m[p] = st
	styles.Unlock()
	return st
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same colors to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			cell := s.GetCell(x, y)
			start := colorPair{cell.Color, cell.Bg}

			// Collect consecutive cells with the same colors
			var run strings.Builder
			for x < s.Width() {
				cell = s.GetCell(x, y)
				if (colorPair{cell.Color, cell.Bg}) != start {
					break
				}
				if cell.Rune == 0 {
					run.WriteRune(' ')
				} else {
					run.WriteRune(cell.Rune)
				}
				x++
			}

			if start == (colorPair{}) {
				sb.WriteString(run.String())
				continue
			}
			sb.WriteString(styleFor(start).Render(run.String()))
		}
	}
	return sb.String()
}

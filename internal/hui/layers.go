package hui

// LayerStack holds the fixed layers and any custom layers of a game.
// Composite order is bg, mg, custom layers in creation order, fg, ui and,
// while debug is on, the debug layer.
type LayerStack struct {
	BG, MG, FG, UI Surface
	Debug          Surface

	custom []Surface
	alloc  func() Surface
}

func newLayerStack(alloc func() Surface) *LayerStack {
	return &LayerStack{
		BG:    alloc(),
		MG:    alloc(),
		FG:    alloc(),
		UI:    alloc(),
		Debug: alloc(),
		alloc: alloc,
	}
}

// Add creates a custom layer composited between mg and fg.
func (l *LayerStack) Add() Surface {
	s := l.alloc()
	l.custom = append(l.custom, s)
	return s
}

// All returns the layers in composite order, without the debug layer.
func (l *LayerStack) All() []Surface {
	out := make([]Surface, 0, 4+len(l.custom))
	out = append(out, l.BG, l.MG)
	out = append(out, l.custom...)
	return append(out, l.FG, l.UI)
}

// composite draws every layer onto dst.
func (l *LayerStack) composite(dst Surface, debug bool) {
	dst.Clear()
	for _, s := range l.All() {
		dst.Composite(s)
	}
	if debug {
		dst.Composite(l.Debug)
	}
}

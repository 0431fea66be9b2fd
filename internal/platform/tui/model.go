package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/hui-playground/internal/config"
	"github.com/vovakirdan/hui-playground/internal/core"
	"github.com/vovakirdan/hui-playground/internal/hui"
	"github.com/vovakirdan/hui-playground/internal/registry"
	"github.com/vovakirdan/hui-playground/internal/storage"
)

// play is the mutable state of a running sketch. Model is passed by value,
// so everything that changes between frames lives behind this pointer.
type play struct {
	sketch registry.Sketch
	game   *hui.Game
	screen *core.Screen
	keys   *holdTracker

	start time.Time
	last  time.Time
	saved bool
	round Round
}

// Round marks where the current round began, so a saved run counts only
// the frames, faults and time of its own round.
type Round struct {
	Frames uint64
	Faults int
	Start  time.Time
}

// Model is the Bubble Tea model for running a sketch.
type Model struct {
	id     string
	store  *storage.Store
	cfg    config.Config
	rt     core.RuntimeConfig
	logger *log.Logger
	state  *play
	chain  uint64

	// embedded models return to a parent menu on Esc instead of quitting.
	embedded   bool
	quitting   bool
	backToMenu bool
}

// NewModel creates a model running sketch.
func NewModel(sketch registry.Sketch, store *storage.Store, cfg config.Config, rt core.RuntimeConfig, logger *log.Logger) Model {
	if rt.Seed == 0 {
		rt.Seed = time.Now().UnixNano()
	}
	if logger == nil {
		logger = log.New(os.Stderr)
	}
	m := Model{
		id:     sketch.ID(),
		store:  store,
		cfg:    cfg,
		rt:     rt,
		logger: logger,
		chain:  newChain(),
	}
	m.state = m.build(sketch)
	return m
}

// build creates a fresh game sized to the runtime config and sets sketch up on it.
func (m Model) build(sketch registry.Sketch) *play {
	w, h := max(m.rt.ScreenW, 1), max(m.rt.ScreenH, 1)
	screen := core.NewScreen(w, h)
	game := hui.New(screen, func() hui.Surface { return core.NewScreen(w, h) },
		hui.WithLogger(m.logger.With("sketch", sketch.ID())),
		hui.WithSeed(m.rt.Seed),
		hui.WithDebug(m.rt.Debug || m.cfg.Engine.Debug),
	)
	sketch.Setup(game, m.cfg)

	now := time.Now()
	return &play{
		sketch: sketch,
		game:   game,
		screen: screen,
		keys:   newHoldTracker(time.Duration(m.cfg.Terminal.KeyHold * float64(time.Second))),
		start:  now,
		last:   now,
		round:  Round{Start: now},
	}
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.rt.TickRate, m.chain)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, nil

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case tea.BlurMsg:
		m.state.game.Input.Reset()
		m.state.keys.reset()
		return m, nil

	case TickMsg:
		if msg.chain != m.chain {
			return m, nil
		}
		return m.handleTick(msg.At)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.finish()
		m.quitting = true
		return m, tea.Quit
	case "esc":
		m.finish()
		if m.embedded {
			m.backToMenu = true
			return m, nil
		}
		m.quitting = true
		return m, tea.Quit
	case "f1":
		m.state.game.ToggleDebug()
		return m, nil
	case "ctrl+s":
		m.saveScreenshot()
		return m, nil
	}

	if name := KeyName(msg); name != "" {
		m.state.keys.press(m.state.game.Input, name, time.Now())
	}
	return m, nil
}

// handleMouse forwards mouse position and button state to the game input.
func (m Model) handleMouse(msg tea.MouseMsg) {
	if !m.cfg.Terminal.Mouse {
		return
	}
	in := m.state.game.Input
	in.Mouse = MousePos(msg)

	b := MouseButton(msg)
	if b < 0 {
		return
	}
	switch msg.Action {
	case tea.MouseActionPress:
		in.Press(hui.MouseKey(b))
	case tea.MouseActionRelease:
		in.Release(hui.MouseKey(b))
	}
}

// handleResize rebuilds the sketch for the new terminal size.
// The run so far is recorded first.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	if msg.Width == m.rt.ScreenW && msg.Height == m.rt.ScreenH {
		return m, nil
	}
	m.finish()
	m.rt.ScreenW = msg.Width
	m.rt.ScreenH = msg.Height

	sketch, err := registry.Create(m.id)
	if err != nil {
		m.logger.Error("cannot recreate sketch", "sketch", m.id, "error", err)
		return m, nil
	}
	m.state = m.build(sketch)
	return m, nil
}

// handleTick steps one frame.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	if m.quitting || m.backToMenu {
		return m, nil
	}
	st := m.state
	dt := now.Sub(st.last).Seconds()
	if dt < 0 {
		dt = 0
	}
	prev := Round{Frames: st.game.Diagnostics().Frames, Faults: st.game.FaultCount(), Start: st.last}
	st.last = now

	st.keys.expire(st.game.Input, now)
	st.game.Step(now.Sub(st.start).Seconds(), dt)

	if sc, ok := st.sketch.(registry.Scorer); ok {
		switch {
		case sc.Over() && !st.saved:
			m.saveRun()
		case !sc.Over() && st.saved:
			// A new round began during this frame.
			st.round = prev
			st.saved = false
		}
	}

	return m, tickCmd(m.rt.TickRate, m.chain)
}

// finish records the current run unless it was already saved.
func (m Model) finish() {
	st := m.state
	if st.saved || st.game.Diagnostics().Frames == st.round.Frames {
		return
	}
	m.saveRun()
}

// saveRun stores the run so far. Saving is best effort.
func (m Model) saveRun() {
	st := m.state
	st.saved = true
	if m.store == nil {
		return
	}

	run := RunRecord(st.sketch, st.game, st.round, st.last, m.rt.Seed)
	if _, err := m.store.SaveRun(run); err != nil {
		m.logger.Warn("could not save run", "sketch", m.id, "error", err)
	}
}

// RunRecord summarizes the round that began at since and ran until now.
func RunRecord(sketch registry.Sketch, game *hui.Game, since Round, now time.Time, seed int64) storage.Run {
	frames := int(game.Diagnostics().Frames - since.Frames)
	seconds := now.Sub(since.Start).Seconds()
	run := storage.Run{
		SketchID: sketch.ID(),
		Frames:   frames,
		Seconds:  seconds,
		Faults:   game.FaultCount() - since.Faults,
		Seed:     seed,
	}
	if seconds > 0 {
		run.AvgFPS = float64(frames) / seconds
	}
	if sc, ok := sketch.(registry.Scorer); ok {
		run.Score = sc.Score()
	}
	return run
}

// saveScreenshot saves the current screen to a file.
func (m Model) saveScreenshot() {
	dir := config.ExpandHome("~/.hui/screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("could not create screenshot directory", "error", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.id, timestamp))
	if err := os.WriteFile(path, []byte(m.state.screen.String()), 0o600); err != nil {
		m.logger.Warn("could not save screenshot", "error", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	return RenderScreen(m.state.screen)
}

// Game returns the running game.
func (m Model) Game() *hui.Game {
	return m.state.game
}

// IsQuitting returns true if the user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if the user requested to go back to the menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run starts the Bubble Tea program for sketch.
func Run(sketch registry.Sketch, store *storage.Store, cfg config.Config, rt core.RuntimeConfig, logger *log.Logger) error {
	model := NewModel(sketch, store, cfg, rt, logger)

	opts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithReportFocus()}
	if cfg.Terminal.Mouse {
		opts = append(opts, tea.WithMouseAllMotion())
	}

	_, err := tea.NewProgram(model, opts...).Run()
	return err
}

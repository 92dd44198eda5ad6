// Package knob provides a TUI knob driven by terminal mouse events.
//
// Terminal cells are treated as 4x8 point rectangles so that a knob twice
// as wide as it is tall is round, and a pointer's cell maps to the point at
// the center of that cell.
package knob

import (
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/alkime/knob/internal/tui/style"
	core "github.com/alkime/knob/pkg/knob"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	cellWidth  = 4
	cellHeight = 8

	frameInterval = 16 * time.Millisecond
)

var lastID atomic.Int64

// SetValueMsg sets the value programmatically.
type SetValueMsg struct {
	Value    float64
	Animated bool
}

// ResetMsg returns the knob to its default value.
type ResetMsg struct {
	Animated bool
}

// ConfigureMsg replaces the knob configuration.
type ConfigureMsg struct {
	Config core.Config
}

// ConfigErrorMsg reports a rejected ConfigureMsg.
type ConfigErrorMsg struct {
	Err error
}

// ValueChangedMsg is emitted when the user commits a value.
// Old is the value before the first change handled in the same update.
type ValueChangedMsg struct {
	core.ValueChange
}

// FrameMsg advances the rotation animation.
type FrameMsg struct {
	id    int64
	frame int
}

// recorder collects tracker callbacks made during one Update.
type recorder struct {
	changes     []core.ValueChange
	transitions []core.Transition
}

func (r *recorder) ValueChanged(vc core.ValueChange) { r.changes = append(r.changes, vc) }
func (r *recorder) Transition(tr core.Transition)    { r.transitions = append(r.transitions, tr) }

// Model is a knob component.
type Model struct {
	id       int64
	tracker  *core.Tracker
	rec      *recorder
	obs      core.Observers
	clicks   *clickTracker
	keys     KeyMap
	theme    style.KnobTheme
	now      func() time.Time
	logger   *slog.Logger
	duration time.Duration
	step     float64

	// placement on screen, in cells
	x, y       int
	cols, rows int

	disabled bool
	taps     int

	display   float64
	rot       core.Rotation
	rotStart  time.Time
	animating bool
	frame     int
}

// Option customizes a Model.
type Option func(*settings)

type settings struct {
	observers []core.Observer
	value     *float64
	keys      KeyMap
	theme     style.KnobTheme
	now       func() time.Time
	logger    *slog.Logger
	duration  time.Duration
	step      float64
}

// WithObserver attaches an observer to the tracker.
func WithObserver(o core.Observer) Option {
	return func(s *settings) { s.observers = append(s.observers, o) }
}

// WithValue sets the initial value.
func WithValue(v float64) Option {
	return func(s *settings) { s.value = &v }
}

// WithKeyMap replaces the key bindings.
func WithKeyMap(k KeyMap) Option {
	return func(s *settings) { s.keys = k }
}

// WithTheme replaces the knob styles.
func WithTheme(t style.KnobTheme) Option {
	return func(s *settings) { s.theme = t }
}

// WithClock replaces time.Now for tap counting and animation.
func WithClock(now func() time.Time) Option {
	return func(s *settings) { s.now = now }
}

// WithLogger sets the logger handed to the tracker.
func WithLogger(l *slog.Logger) Option {
	return func(s *settings) { s.logger = l }
}

// WithDuration sets how long animated rotations take.
func WithDuration(d time.Duration) Option {
	return func(s *settings) { s.duration = d }
}

// WithStep sets the keyboard step as a fraction of the value range.
func WithStep(f float64) Option {
	return func(s *settings) { s.step = f }
}

// New creates a knob cols cells wide and rows cells tall.
func New(cfg core.Config, cols, rows int, opts ...Option) (Model, error) {
	s := settings{
		keys:     DefaultKeyMap(),
		theme:    style.DefaultKnobTheme(),
		now:      time.Now,
		logger:   slog.Default(),
		duration: core.DefaultRotationDuration,
		step:     0.05,
	}
	for _, opt := range opts {
		opt(&s)
	}

	rec := &recorder{}
	obs := append(core.Observers{rec}, s.observers...)

	trOpts := []core.Option{
		core.WithBounds(bounds(cols, rows)),
		core.WithLogger(s.logger),
	}
	if s.value != nil {
		trOpts = append(trOpts, core.WithValue(*s.value))
	}

	tracker, err := core.New(cfg, obs, trOpts...)
	if err != nil {
		return Model{}, err
	}

	*rec = recorder{}

	return Model{
		id:       lastID.Add(1),
		tracker:  tracker,
		rec:      rec,
		obs:      obs,
		clicks:   newClickTracker(multiClickTime, multiClickDistance),
		keys:     s.keys,
		theme:    s.theme,
		now:      s.now,
		logger:   s.logger,
		duration: s.duration,
		step:     s.step,
		cols:     cols,
		rows:     rows,
		display:  tracker.Angle(),
	}, nil
}

func bounds(cols, rows int) core.Bounds {
	return core.Bounds{Width: float64(cols * cellWidth), Height: float64(rows * cellHeight)}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// SetOrigin places the knob's top-left cell at screen column x, row y.
func (m Model) SetOrigin(x, y int) Model {
	m.x, m.y = x, y
	return m
}

// SetSize resizes the knob.
func (m Model) SetSize(cols, rows int) Model {
	m.cols, m.rows = cols, rows
	m.tracker.SetBounds(bounds(cols, rows))

	return m
}

// SetDisabled enables or disables input. Disabling cancels a drag.
func (m Model) SetDisabled(disabled bool) (Model, tea.Cmd) {
	m.disabled = disabled
	if disabled {
		m.tracker.Cancel()
	}

	return m.flush()
}

// Disabled reports whether input is ignored.
func (m Model) Disabled() bool { return m.disabled }

// Value returns the current value.
func (m Model) Value() float64 { return m.tracker.Value() }

// Config returns the active configuration.
func (m Model) Config() core.Config { return m.tracker.Config() }

// Snapshot returns the tracker state.
func (m Model) Snapshot() core.Snapshot { return m.tracker.Snapshot() }

// Dial exposes the tracker as a read-only dial.
func (m Model) Dial() *core.Tracker { return m.tracker }

// DisplayAngle is the angle currently drawn, which lags the tracker while
// a rotation animates.
func (m Model) DisplayAngle() float64 { return m.display }

// Animating reports whether a rotation is in progress.
func (m Model) Animating() bool { return m.animating }

// Size returns the knob size in cells.
func (m Model) Size() (cols, rows int) { return m.cols, m.rows }

// KeyMap returns the key bindings.
func (m Model) KeyMap() KeyMap { return m.keys }

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case FrameMsg:
		return m.advance(msg)

	case SetValueMsg:
		m.tracker.SetValue(msg.Value, msg.Animated)

	case ResetMsg:
		m.tracker.Reset(msg.Animated)

	case ConfigureMsg:
		if err := m.tracker.Configure(msg.Config); err != nil {
			return m, func() tea.Msg { return ConfigErrorMsg{Err: err} }
		}

	case tea.BlurMsg:
		m.tracker.Cancel()

	case tea.MouseMsg:
		if m.disabled {
			return m, nil
		}

		m.handleMouse(msg)

	case tea.KeyMsg:
		if m.disabled {
			return m, nil
		}

		m.handleKey(msg)
	}

	return m.flush()
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	pos := cell{X: msg.X, Y: msg.Y}
	touch := core.Touch{Point: m.point(pos), TapCount: m.taps}

	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonLeft:
			if !m.contains(pos) {
				return
			}

			m.taps = m.clicks.record(pos, m.now())
			touch.TapCount = m.taps
			m.tracker.Begin(touch)

		case tea.MouseButtonWheelUp:
			if m.contains(pos) {
				m.nudge(1)
			}

		case tea.MouseButtonWheelDown:
			if m.contains(pos) {
				m.nudge(-1)
			}
		}

	case tea.MouseActionMotion:
		if m.tracker.Tracking() {
			m.tracker.Continue(touch)
		}

	case tea.MouseActionRelease:
		if m.tracker.Tracking() {
			m.tracker.End(&touch)
		}
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.tracker.Cancel()

	case m.tracker.Tracking():
		// keyboard changes wait until the drag ends

	case key.Matches(msg, m.keys.Increase):
		m.nudge(1)

	case key.Matches(msg, m.keys.Decrease):
		m.nudge(-1)

	case key.Matches(msg, m.keys.Reset):
		m.commit(m.tracker.Config().Default)

	case key.Matches(msg, m.keys.CycleStyle):
		cfg := m.tracker.Config()
		cfg.Style = cfg.Style.Next()
		m.configure(cfg)

	case key.Matches(msg, m.keys.ToggleContinuous):
		cfg := m.tracker.Config()
		cfg.Continuous = !cfg.Continuous
		m.configure(cfg)
	}
}

func (m *Model) nudge(dir float64) {
	if m.tracker.Tracking() {
		return
	}

	lo, hi := m.tracker.Range()
	m.commit(m.tracker.Value() + dir*m.step*(hi-lo))
}

// commit sets a value on behalf of the user, which unlike SetValueMsg is
// reported to observers.
func (m *Model) commit(v float64) {
	old := m.tracker.Value()
	m.tracker.SetValue(v, true)

	if nv := m.tracker.Value(); nv != old {
		m.obs.ValueChanged(core.ValueChange{Old: old, New: nv})
	}
}

func (m *Model) configure(cfg core.Config) {
	if err := m.tracker.Configure(cfg); err != nil {
		m.logger.Warn("Knob rejected configuration", "error", err)
	}
}

// flush turns the callbacks recorded during this update into commands.
func (m Model) flush() (Model, tea.Cmd) {
	var cmds []tea.Cmd

	for _, tr := range m.rec.transitions {
		var cmd tea.Cmd
		m, cmd = m.animate(tr)
		cmds = append(cmds, cmd)
	}

	if n := len(m.rec.changes); n > 0 {
		vc := core.ValueChange{Old: m.rec.changes[0].Old, New: m.rec.changes[n-1].New}
		cmds = append(cmds, func() tea.Msg { return ValueChangedMsg{vc} })
	}

	*m.rec = recorder{}

	return m, tea.Batch(cmds...)
}

func (m Model) animate(tr core.Transition) (Model, tea.Cmd) {
	m.frame++

	if !tr.Animated || m.duration <= 0 {
		m.display = tr.NewAngle
		m.animating = false

		return m, nil
	}

	// Start from what is on screen, which differs from tr.OldAngle when a
	// rotation was still running.
	tr.OldAngle = m.display
	m.rot = core.NewRotation(tr, m.duration)
	m.rotStart = m.now()
	m.animating = true

	return m, m.tick()
}

func (m Model) advance(msg FrameMsg) (Model, tea.Cmd) {
	if msg.id != m.id || msg.frame != m.frame || !m.animating {
		return m, nil
	}

	elapsed := m.now().Sub(m.rotStart)
	m.display = m.rot.At(elapsed)

	if m.rot.Done(elapsed) {
		m.animating = false
		return m, nil
	}

	return m, m.tick()
}

func (m Model) tick() tea.Cmd {
	id, frame := m.id, m.frame

	return tea.Tick(frameInterval, func(time.Time) tea.Msg {
		return FrameMsg{id: id, frame: frame}
	})
}

// point maps a screen cell to the center of that cell in knob coordinates.
func (m Model) point(c cell) core.Point {
	return core.Point{
		X: float64((c.X-m.x)*cellWidth + cellWidth/2),
		Y: float64((c.Y-m.y)*cellHeight + cellHeight/2),
	}
}

func (m Model) contains(c cell) bool {
	return c.X >= m.x && c.X < m.x+m.cols && c.Y >= m.y && c.Y < m.y+m.rows
}

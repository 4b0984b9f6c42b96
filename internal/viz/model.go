package viz

import (
	"io"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/tradenet/internal/ingest"
	"github.com/san-kum/tradenet/internal/interact"
	"github.com/san-kum/tradenet/internal/layout"
	"github.com/san-kum/tradenet/internal/render"
	"github.com/san-kum/tradenet/internal/watch"
)

const (
	sidebarWidth = 40
	minCols      = 10
	minRows      = 5

	zoomStep = 1.25
	panStep  = 8.0
)

// FrameMsg is one animation tick for the graph adopted at Epoch.
type FrameMsg struct {
	Epoch interact.Epoch
	At    time.Time
}

// ReloadMsg carries freshly loaded results after the watched file changed.
type ReloadMsg struct {
	Results []ingest.Result
	Err     error
}

// Options configures a Model.
type Options struct {
	Results   []ingest.Result
	Selected  int
	Params    layout.Params
	Style     render.Style
	Hit       interact.HitParams
	PinHints  bool
	FrameRate int
	Theme     string
	Logger    *slog.Logger

	// Watcher, when set, triggers Reload on every change.
	Watcher *watch.Watcher
	Reload  func() ([]ingest.Result, error)
}

// Model is the Bubble Tea model hosting one interaction session.
type Model struct {
	session *interact.Session
	sub     *interact.Subscription
	canvas  *render.Canvas

	results  []ingest.Result
	selected int
	pinHints bool

	frame     time.Duration
	tickEpoch interact.Epoch

	width, height int
	theme         Theme
	showHelp      bool
	err           error

	watcher *watch.Watcher
	reload  func() ([]ingest.Result, error)
	logger  *slog.Logger
}

func NewModel(opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	rate := opts.FrameRate
	if rate <= 0 {
		rate = 60
	}
	theme, _ := GetTheme(opts.Theme)
	if opts.Style == (render.Style{}) {
		opts.Style = render.BrailleStyle()
	}
	if opts.Hit == (interact.HitParams{}) {
		opts.Hit = interact.DefaultHitParams()
	}

	m := Model{
		session: interact.NewSession(opts.Params,
			interact.WithLogger(logger),
			interact.WithStyle(opts.Style),
			interact.WithHitParams(opts.Hit),
		),
		canvas:   render.NewCanvas(minCols, minRows),
		results:  opts.Results,
		pinHints: opts.PinHints,
		frame:    time.Second / time.Duration(rate),
		theme:    theme,
		watcher:  opts.Watcher,
		reload:   opts.Reload,
		logger:   logger,
	}
	m.resize(minCols+sidebarWidth, minRows)
	m.sel(opts.Selected)
	if m.session.Animating() {
		m.tickEpoch = m.session.Epoch()
	}
	return m
}

// sel adopts result i, wrapping around the list.
func (m *Model) sel(i int) {
	if n := len(m.results); n > 0 {
		m.selected = ((i % n) + n) % n
		g, warnings := m.results[m.selected].Network.Build(m.pinHints)
		m.session.Adopt(g, warnings)
	} else {
		m.selected = 0
		m.session.Adopt(nil, nil)
	}
	m.sub = m.session.Subscribe()
}

func (m *Model) resize(width, height int) {
	m.width, m.height = width, height
	cols := max(width-sidebarWidth, minCols)
	rows := max(height, minRows)
	if m.canvas.Width != cols || m.canvas.Height != rows {
		m.canvas = render.NewCanvas(cols, rows)
	}
	w, h := m.canvas.PixelSize()
	m.session.Resize(float64(w), float64(h))
}

// animate starts a frame chain for the current epoch unless one is running.
func (m *Model) animate() tea.Cmd {
	epoch := m.session.Epoch()
	if !m.session.Animating() || m.tickEpoch == epoch {
		return nil
	}
	m.tickEpoch = epoch
	return m.tick(epoch)
}

func (m Model) tick(epoch interact.Epoch) tea.Cmd {
	return tea.Tick(m.frame, func(t time.Time) tea.Msg {
		return FrameMsg{Epoch: epoch, At: t}
	})
}

func (m Model) waitForChange() tea.Cmd {
	if m.watcher == nil || m.reload == nil {
		return nil
	}
	changed, reload := m.watcher.Changed(), m.reload
	return func() tea.Msg {
		if _, ok := <-changed; !ok {
			return nil
		}
		results, err := reload()
		return ReloadMsg{Results: results, Err: err}
	}
}

func (m Model) Init() tea.Cmd {
	var frames tea.Cmd
	if m.tickEpoch != 0 {
		frames = m.tick(m.tickEpoch)
	}
	return tea.Batch(frames, m.waitForChange())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case FrameMsg:
		if !m.session.Frame(msg.Epoch) {
			return m, nil
		}
		if m.session.Animating() {
			return m, m.tick(msg.Epoch)
		}
		m.tickEpoch = 0
		return m, nil

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case ReloadMsg:
		if msg.Err != nil {
			m.err = msg.Err
			m.logger.Warn("reload failed", "error", msg.Err)
		} else {
			m.err = nil
			m.results = msg.Results
			m.sel(min(m.selected, max(len(m.results)-1, 0)))
			m.logger.Info("results reloaded", "results", len(m.results))
		}
		return m, tea.Batch(m.animate(), m.waitForChange())

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	t := m.session.Transform()
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		m.sub.Release()
		m.session.Close()
		return m, tea.Quit
	case "n", "tab":
		m.sel(m.selected + 1)
		return m, m.animate()
	case "p", "shift+tab":
		m.sel(m.selected - 1)
		return m, m.animate()
	case "+", "=":
		m.session.SetTransform(t.ZoomBy(zoomStep))
	case "-", "_":
		m.session.SetTransform(t.ZoomBy(1 / zoomStep))
	case "left":
		m.session.SetTransform(t.PanBy(panStep, 0))
	case "right":
		m.session.SetTransform(t.PanBy(-panStep, 0))
	case "up":
		m.session.SetTransform(t.PanBy(0, panStep))
	case "down":
		m.session.SetTransform(t.PanBy(0, -panStep))
	case "0":
		m.session.SetTransform(render.Identity())
	case "c":
		m.session.Recenter()
		return m, m.animate()
	case "l":
		st := m.session.Style()
		st.Labels = !st.Labels
		m.session.SetStyle(st)
	case "t":
		m.theme = m.theme.next()
	case "?":
		m.showHelp = !m.showHelp
	}
	return m, nil
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	t := m.session.Transform()
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.session.SetTransform(t.ZoomBy(zoomStep))
		return m, nil
	case tea.MouseButtonWheelDown:
		m.session.SetTransform(t.ZoomBy(1 / zoomStep))
		return m, nil
	}
	if msg.X < 0 || msg.Y < 0 || msg.X >= m.canvas.Width || msg.Y >= m.canvas.Height {
		m.sub.Leave()
		return m, nil
	}
	m.sub.Move(cellCenter(msg.X, msg.Y))
	return m, nil
}

// cellCenter maps a terminal cell to the dot at its center.
func cellCenter(col, row int) render.Pixel {
	return render.Pixel{X: float64(col*2) + 1, Y: float64(row*4) + 2}
}

func (m Model) Session() *interact.Session { return m.session }
func (m Model) Selected() int              { return m.selected }
func (m Model) Theme() Theme               { return m.theme }
func (m Model) Err() error                 { return m.err }

package viz

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/ballpit/internal/dynamo"
	"github.com/san-kum/ballpit/internal/metrics"
	"github.com/san-kum/ballpit/internal/sandbox"
)

const (
	defaultCols     = 80
	defaultRows     = 24
	historyCapacity = 600
	statsWidth      = 45
	canvasPadX      = 2
	canvasPadY      = 1
	sliderStep      = 0.05
	maxPending      = 256
)

type TickMsg time.Time

// LiveOptions configures the terminal sandbox.
type LiveOptions struct {
	// Scale is world units per braille sub-pixel.
	Scale  float64
	FPS    int
	Theme  string
	Input  sandbox.FrameInput
	GIF    string
	Logger *slog.Logger
	// Clock supplies pointer timestamps. Defaults to time.Now.
	Clock func() time.Time
}

// Model is the bubbletea model of the live sandbox. It owns the world and
// feeds it one FrameInput per tick.
type Model struct {
	world   *sandbox.World
	opts    LiveOptions
	log     *slog.Logger
	theme   Theme
	canvas  *Canvas
	input   sandbox.FrameInput
	initial sandbox.FrameInput
	start   time.Time

	pending []sandbox.PointerEvent
	held    sandbox.Button

	frame         *dynamo.Frame
	running       bool
	showHelp      bool
	faults        int
	popHistory    []float64
	energyHistory []float64
	recorder      *Recorder
	recording     bool
	status        string
}

func NewModel(world *sandbox.World, opts LiveOptions) Model {
	if opts.Scale <= 0 {
		opts.Scale = 6
	}
	if opts.FPS <= 0 {
		opts.FPS = 60
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.GIF == "" {
		opts.GIF = "ballpit.gif"
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	m := Model{
		world:         world,
		opts:          opts,
		log:           logger,
		theme:         GetTheme(opts.Theme),
		input:         opts.Input,
		initial:       opts.Input,
		start:         opts.Clock(),
		running:       true,
		popHistory:    make([]float64, 0, historyCapacity),
		energyHistory: make([]float64, 0, historyCapacity),
		recorder:      NewRecorder(opts.Scale),
	}
	m.resize(defaultCols, defaultRows)
	m.frame = world.Snapshot()
	return m
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.opts.FPS), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

// Update handles input events and steps the world on every tick.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width-statsWidth-2*canvasPadX-1, msg.Height-2*canvasPadY)
	case tea.MouseMsg:
		m.mouse(tea.MouseEvent(msg))
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			if m.recording {
				m.saveGIF()
			}
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.world.Reset()
			m.input = m.initial
			m.input.Bounds = m.bounds()
			m.popHistory = m.popHistory[:0]
			m.energyHistory = m.energyHistory[:0]
			m.faults = 0
			m.frame = m.world.Snapshot()
		case "c":
			n := m.world.ClearAll()
			m.log.Info("cleared", slog.Int("bodies", n))
			m.frame = m.world.Snapshot()
		case "n":
			if !m.running {
				m.step()
			}
		case "+", "=":
			m.input.TimeSlider = clampSlider(m.input.TimeSlider + sliderStep)
		case "-", "_":
			m.input.TimeSlider = clampSlider(m.input.TimeSlider - sliderStep)
		case "g":
			m.input.GravitySlider = clampSlider(m.input.GravitySlider + sliderStep)
		case "G":
			m.input.GravitySlider = clampSlider(m.input.GravitySlider - sliderStep)
		case "t":
			m.theme = NextTheme(m.theme)
		case "s":
			if m.recording {
				m.saveGIF()
				m.recording = false
			} else {
				m.recorder.Reset()
				m.recording = true
				m.status = ""
			}
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if m.running {
			m.step()
		}
		return m, m.tick()
	}
	return m, nil
}

// step feeds the queued pointer events to the world.
func (m *Model) step() {
	in := m.input
	in.Events = m.pending
	in.Bounds = m.bounds()
	rep := m.world.Step(in)
	m.pending = nil
	m.faults += len(rep.Faults)

	m.frame = m.world.Snapshot()
	m.popHistory = appendCapped(m.popHistory, float64(len(m.frame.Bodies)))
	m.energyHistory = appendCapped(m.energyHistory, metrics.TotalKinetic(m.frame))
	if m.recording {
		m.recorder.Capture(m.frame)
	}
}

func appendCapped(h []float64, v float64) []float64 {
	h = append(h, v)
	if len(h) > historyCapacity {
		h = h[1:]
	}
	return h
}

func clampSlider(v float64) float64 {
	return max(0, min(1, v))
}

// mouse translates a terminal mouse event into a pointer event in world
// coordinates. Terminals that report releases without a button get the
// button that was last pressed.
func (m *Model) mouse(ev tea.MouseEvent) {
	pos := m.toWorld(ev.X, ev.Y)
	at := m.opts.Clock().Sub(m.start)

	var pe sandbox.PointerEvent
	switch ev.Action {
	case tea.MouseActionPress:
		var b sandbox.Button
		switch ev.Button {
		case tea.MouseButtonLeft:
			b = sandbox.Left
		case tea.MouseButtonRight:
			b = sandbox.Right
		default:
			return
		}
		m.held = b
		pe = sandbox.PressAt(b, pos.X, pos.Y, at)
	case tea.MouseActionRelease:
		b := m.held
		switch ev.Button {
		case tea.MouseButtonLeft:
			b = sandbox.Left
		case tea.MouseButtonRight:
			b = sandbox.Right
		}
		m.held = sandbox.NoButton
		pe = sandbox.ReleaseAt(b, pos.X, pos.Y, at)
	case tea.MouseActionMotion:
		if !m.running && len(m.pending) > 0 && m.pending[len(m.pending)-1].Kind == sandbox.Move {
			m.pending = m.pending[:len(m.pending)-1]
		}
		pe = sandbox.MoveTo(pos.X, pos.Y, at)
	default:
		return
	}
	if len(m.pending) >= maxPending {
		m.pending = m.pending[1:]
	}
	m.pending = append(m.pending, pe)
}

// toWorld maps a terminal cell to the centre of its braille block in world
// units.
func (m *Model) toWorld(x, y int) dynamo.Vec2 {
	col := x - canvasPadX
	row := y - canvasPadY
	return dynamo.Vec2{
		X: (float64(col)*2 + 1) * m.opts.Scale,
		Y: (float64(row)*4 + 2) * m.opts.Scale,
	}
}

func (m *Model) toCanvas(p dynamo.Vec2) (int, int) {
	return int(p.X / m.opts.Scale), int(p.Y / m.opts.Scale)
}

func (m *Model) resize(cols, rows int) {
	cols = max(cols, 10)
	rows = max(rows, 5)
	m.canvas = NewCanvas(cols, rows)
	m.input.Bounds = m.bounds()
}

// bounds is the world size covered by the canvas.
func (m *Model) bounds() dynamo.Bounds {
	return dynamo.Bounds{
		Width:  float64(m.canvas.PixelWidth()) * m.opts.Scale,
		Height: float64(m.canvas.PixelHeight()) * m.opts.Scale,
	}
}

func (m *Model) saveGIF() {
	f, err := os.Create(m.opts.GIF)
	if err != nil {
		m.status = err.Error()
		m.log.Error("gif", slog.Any("err", err))
		return
	}
	defer f.Close()
	if err := m.recorder.Encode(f); err != nil {
		m.status = err.Error()
		m.log.Error("gif", slog.Any("err", err))
		return
	}
	m.status = fmt.Sprintf("saved %d frames to %s", m.recorder.Len(), m.opts.GIF)
	m.log.Info("gif saved", slog.String("path", m.opts.GIF), slog.Int("frames", m.recorder.Len()))
}

func (m *Model) draw() {
	m.canvas.Clear()
	f := m.frame
	if f == nil {
		return
	}
	for _, b := range f.Bodies {
		x, y := m.toCanvas(b.Pos)
		r := int(b.Radius / m.opts.Scale)
		color := b.Color.Hex()
		if b.Special || r <= 1 {
			m.canvas.FillCircle(x, y, max(r, 1), color)
		} else {
			m.canvas.DrawCircle(x, y, r, color)
		}
		if b.Dragged {
			px, py := m.toCanvas(f.Pointer)
			m.canvas.DrawLine(x, y, px, py, string(m.theme.Text))
		}
	}
	if f.Field {
		px, py := m.toCanvas(f.Pointer)
		color := m.theme.Pull
		if f.Pushing {
			color = m.theme.Push
		}
		m.canvas.DrawCircle(px, py, 3, string(color))
	}
}

// View renders the canvas beside the stats panel.
func (m Model) View() string {
	m.draw()
	canvasView := canvasStyle.Render(m.canvas.Render(m.theme.Primary))

	var s strings.Builder
	s.WriteString(GradientText("BALLPIT", m.theme.Primary, m.theme.Secondary) + "\n\n")
	frameIdx := 0
	if m.frame != nil {
		frameIdx = m.frame.Index
	}
	if m.recording {
		s.WriteString(StatusRecording.Render("● REC") + "  ")
	}
	if m.running {
		s.WriteString(StatusRunning.Render(AnimatedSpinner(frameIdx)+" RUNNING") + "\n\n")
	} else {
		s.WriteString(StatusPaused.Render("PAUSED") + "\n\n")
	}

	if len(m.popHistory) > 1 {
		chart := asciigraph.Plot(m.popHistory, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Population"))
		s.WriteString(graphStyle.Render(chart) + "\n")
	}

	cfg := m.input.FrameConfig()
	row := func(label, value string) {
		s.WriteString(labelStyle.Render(label) + valueStyle.Render(value) + "\n")
	}
	row("Frame", fmt.Sprintf("%d", frameIdx))
	row("Bodies", fmt.Sprintf("%d", m.world.Len()))
	row("Spawn rate", fmt.Sprintf("%.4f", m.world.SpawnRate()))
	energy := 0.0
	if len(m.energyHistory) > 0 {
		energy = m.energyHistory[len(m.energyHistory)-1]
	}
	row("Kinetic", fmt.Sprintf("%.0f", energy))
	s.WriteString(labelStyle.Render("") + SparklineChart(m.energyHistory, 24) + "\n")
	row("Time", SliderBar(m.input.TimeSlider, 12)+fmt.Sprintf(" %.2fx", cfg.TimeScale))
	row("Gravity", SliderBar(m.input.GravitySlider, 12)+fmt.Sprintf(" %.2fx", cfg.GravityScale))
	polarity := lipgloss.NewStyle().Foreground(m.theme.Pull).Render("PULL")
	if m.world.Pushing() {
		polarity = lipgloss.NewStyle().Foreground(m.theme.Push).Render("PUSH")
	}
	row("Field", polarity)
	if m.faults > 0 {
		row("Faults", lipgloss.NewStyle().Foreground(m.theme.Warning).Render(fmt.Sprintf("%d", m.faults)))
	}
	if m.status != "" {
		s.WriteString("\n" + valueStyle.Render(m.status) + "\n")
	}

	s.WriteString(helpStyle.Render(Separator(statsWidth-6) + "\nSP:Pause R:Reset C:Clear Q:Quit\n+/-:Time g/G:Gravity ?:Help"))
	statsView := statsStyle.Render(s.String())
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)
	if m.showHelp {
		return `
╔══════════════════════════════════════╗
║           KEYBOARD SHORTCUTS         ║
╠══════════════════════════════════════╣
║  Left click  - Drag ball / spawn     ║
║  Double click- Clear area            ║
║  Right hold  - Force field (toggles) ║
║  Space       - Pause/Resume          ║
║  N           - Step once when paused ║
║  R           - Reset                 ║
║  C           - Clear all balls       ║
║  + / -       - Time scale            ║
║  g / G       - Gravity scale         ║
║  S           - Toggle GIF recording  ║
║  T           - Cycle themes          ║
║  Q           - Quit                  ║
╚══════════════════════════════════════╝
` + "\n" + mainView
	}
	return mainView
}

// RunLive runs the terminal sandbox until the user quits.
func RunLive(world *sandbox.World, opts LiveOptions) error {
	p := tea.NewProgram(NewModel(world, opts), tea.WithAltScreen(), tea.WithMouseAllMotion())
	_, err := p.Run()
	return err
}

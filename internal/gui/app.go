package gui

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/ballpit/internal/dynamo"
	"github.com/san-kum/ballpit/internal/gui/widget"
	"github.com/san-kum/ballpit/internal/metrics"
	"github.com/san-kum/ballpit/internal/sandbox"
)

var (
	ColBg      = rl.NewColor(10, 10, 10, 255)
	ColAccent  = rl.NewColor(180, 180, 180, 255)
	ColSelect  = rl.NewColor(255, 255, 255, 255)
	ColText    = rl.NewColor(140, 140, 140, 255)
	ColTextDim = rl.NewColor(60, 60, 60, 255)
	ColPanel   = rl.NewColor(25, 25, 25, 220)
	ColPush    = rl.NewColor(255, 140, 0, 90)
	ColPull    = rl.NewColor(0, 170, 255, 90)
)

const (
	panelX, panelY = 20, 20
	panelW, panelH = 260, 120
	sliderW        = 200
	sliderH        = 12
	maxTelemetry   = 300
)

// Options configures the window.
type Options struct {
	Width, Height int
	FPS           int
	Input         sandbox.FrameInput
	Logger        *slog.Logger
}

// App is the raylib front end. Each frame it polls the mouse, turns the
// poll into pointer events and slider values, steps the world and draws the
// snapshot.
type App struct {
	World     *sandbox.World
	Input     sandbox.FrameInput
	TimeCtl   *widget.Slider
	GravCtl   *widget.Slider
	Running   bool
	Frame     *dynamo.Frame
	Telemetry []float64
	Faults    int

	initial sandbox.FrameInput
	tracker widget.Tracker
	log     *slog.Logger
}

// initWindow opens a resizable window and disables the default exit key.
func initWindow(opts Options) {
	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(int32(opts.Width), int32(opts.Height), "ballpit")
	rl.SetTargetFPS(int32(opts.FPS))
	rl.SetExitKey(0)
}

func NewApp(world *sandbox.World, opts Options) *App {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	a := &App{
		World:   world,
		Input:   opts.Input,
		initial: opts.Input,
		Running: true,
		log:     logger,
		TimeCtl: &widget.Slider{
			Label: "time", X: panelX + 40, Y: panelY + 36, W: sliderW, H: sliderH,
			Value: opts.Input.TimeSlider,
		},
		GravCtl: &widget.Slider{
			Label: "gravity", X: panelX + 40, Y: panelY + 76, W: sliderW, H: sliderH,
			Value: opts.Input.GravitySlider,
		},
		Telemetry: make([]float64, 0, maxTelemetry),
	}
	a.Frame = world.Snapshot()
	return a
}

// Run opens the window and blocks until it is closed.
func Run(world *sandbox.World, opts Options) error {
	if opts.Width <= 0 || opts.Height <= 0 {
		return fmt.Errorf("window size %dx%d: %w", opts.Width, opts.Height, dynamo.ErrDegenerateBounds)
	}
	if opts.FPS <= 0 {
		opts.FPS = 60
	}
	initWindow(opts)
	defer rl.CloseWindow()

	app := NewApp(world, opts)
	app.log.Info("window opened", slog.Int("width", opts.Width), slog.Int("height", opts.Height))
	app.RunLoop()
	return nil
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() {
		if !a.Update() {
			return
		}
		a.Draw()
	}
}

func overPanel(p dynamo.Vec2) bool {
	return p.X >= panelX && p.X <= panelX+panelW && p.Y >= panelY && p.Y <= panelY+panelH
}

// Update polls input and advances the world. It returns false when the
// user asked to quit.
func (a *App) Update() bool {
	if rl.IsKeyPressed(rl.KeyQ) {
		return false
	}
	if rl.IsKeyPressed(rl.KeySpace) {
		a.Running = !a.Running
	}
	if rl.IsKeyPressed(rl.KeyR) {
		a.World.Reset()
		a.Input = a.initial
		a.TimeCtl.Value = a.Input.TimeSlider
		a.GravCtl.Value = a.Input.GravitySlider
		a.Telemetry = a.Telemetry[:0]
		a.Faults = 0
	}
	if rl.IsKeyPressed(rl.KeyC) {
		n := a.World.ClearAll()
		a.log.Info("cleared", slog.Int("bodies", n))
	}

	mp := rl.GetMousePosition()
	pos := dynamo.Vec2{X: float64(mp.X), Y: float64(mp.Y)}
	pressed := rl.IsMouseButtonPressed(rl.MouseButtonLeft)
	down := rl.IsMouseButtonDown(rl.MouseButtonLeft)
	a.TimeCtl.Update(pos, pressed, down)
	a.GravCtl.Update(pos, pressed, down)
	a.Input.TimeSlider = a.TimeCtl.Value
	a.Input.GravitySlider = a.GravCtl.Value

	overUI := overPanel(pos) || a.TimeCtl.Active() || a.GravCtl.Active()
	at := time.Duration(rl.GetTime() * float64(time.Second))
	events := a.tracker.Poll(pos, widget.Buttons{
		Left:  down,
		Right: rl.IsMouseButtonDown(rl.MouseButtonRight),
	}, at, overUI)

	if !a.Running {
		a.Frame = a.World.Snapshot()
		return true
	}

	in := a.Input
	in.Events = events
	in.Bounds = dynamo.Bounds{Width: float64(rl.GetScreenWidth()), Height: float64(rl.GetScreenHeight())}
	rep := a.World.Step(in)
	a.Faults += len(rep.Faults)
	a.Frame = a.World.Snapshot()

	a.Telemetry = append(a.Telemetry, metrics.TotalKinetic(a.Frame))
	if len(a.Telemetry) > maxTelemetry {
		a.Telemetry = a.Telemetry[1:]
	}
	return true
}

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(ColBg)
	a.drawBodies()
	a.DrawHUD()
	rl.EndDrawing()
}

func (a *App) DrawHUD() {
	rl.DrawRectangleRec(rl.Rectangle{X: panelX, Y: panelY, Width: panelW, Height: panelH}, ColPanel)
	rl.DrawText("ballpit", panelX+10, panelY+8, 20, ColSelect)

	cfg := a.Input.FrameConfig()
	a.drawSlider(a.TimeCtl, fmt.Sprintf("time %.2fx", cfg.TimeScale))
	a.drawSlider(a.GravCtl, fmt.Sprintf("gravity %.2fx", cfg.GravityScale))

	w, h := int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight())
	status, col := "RUNNING", ColSelect
	if !a.Running {
		status, col = "PAUSED", ColTextDim
	}
	rl.DrawText(status, w-120, 24, 16, col)

	polarity := "PULL"
	if a.World.Pushing() {
		polarity = "PUSH"
	}
	info := fmt.Sprintf("%d balls  spawn %.4f  field %s", a.World.Len(), a.World.SpawnRate(), polarity)
	if a.Faults > 0 {
		info += fmt.Sprintf("  faults %d", a.Faults)
	}
	rl.DrawText(info, panelX, panelY+panelH+10, 14, ColText)

	a.DrawTelemetry(panelX, h-90, 300, 60)
	rl.DrawText("[SPACE] PAUSE  [R] RESET  [C] CLEAR  [Q] QUIT", w-430, h-30, 14, ColTextDim)
	rl.DrawText(fmt.Sprintf("%d FPS", rl.GetFPS()), panelX, h-24, 14, ColTextDim)
}

// DrawTelemetry plots the kinetic energy history as a line strip.
func (a *App) DrawTelemetry(x, y, width, height int32) {
	if len(a.Telemetry) < 2 {
		return
	}
	lo, hi := a.Telemetry[0], a.Telemetry[0]
	for _, v := range a.Telemetry {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	if hi == lo {
		hi = lo + 1
	}

	points := make([]rl.Vector2, len(a.Telemetry))
	for i, v := range a.Telemetry {
		px := float32(x) + float32(i)/float32(len(a.Telemetry))*float32(width)
		norm := (v - lo) / (hi - lo)
		py := float32(y+height) - float32(norm)*float32(height)
		points[i] = rl.NewVector2(px, py)
	}
	rl.DrawLineStrip(points, ColAccent)
	rl.DrawText(fmt.Sprintf("KE: %.2e", a.Telemetry[len(a.Telemetry)-1]), x+width+10, y+height-10, 14, ColText)
}

package automation

import (
	"context"
	"fmt"
	"os"
	"sort"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/ballpit/internal/config"
	"github.com/san-kum/ballpit/internal/dynamo"
	"github.com/san-kum/ballpit/internal/experiment"
	"github.com/san-kum/ballpit/internal/sandbox"
)

// Scenario is a scripted sequence of pointer events and slider changes
// replayed against a headless world.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Preset      string         `yaml:"preset"`
	Seed        int64          `yaml:"seed"`
	Frames      int            `yaml:"frames"`
	FPS         int            `yaml:"fps"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep fires at a frame. Slider and bounds values stay in effect
// until a later step changes them.
type ScenarioStep struct {
	Frame        int      `yaml:"frame"`
	Events       []Event  `yaml:"events"`
	TimeScale    *float64 `yaml:"time_scale"`
	GravityScale *float64 `yaml:"gravity_scale"`
	Width        *float64 `yaml:"width"`
	Height       *float64 `yaml:"height"`
}

type Event struct {
	Kind   string  `yaml:"kind"`
	Button string  `yaml:"button"`
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	// OffsetMs shifts the event timestamp within its frame.
	OffsetMs float64 `yaml:"offset_ms"`
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseScenario(data)
}

func ParseScenario(data []byte) (*Scenario, error) {
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, err
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return &sc, nil
}

func (s *Scenario) Validate() error {
	if s.FPS <= 0 {
		s.FPS = config.DefaultFPS
	}
	sort.SliceStable(s.Steps, func(i, j int) bool { return s.Steps[i].Frame < s.Steps[j].Frame })
	for i, st := range s.Steps {
		if st.Frame < 1 {
			return fmt.Errorf("step %d: frame must be at least 1, got %d", i+1, st.Frame)
		}
		for j, ev := range st.Events {
			if _, err := ev.pointerEvent(0); err != nil {
				return fmt.Errorf("step %d event %d: %w", i+1, j+1, err)
			}
		}
	}
	if s.Frames <= 0 && len(s.Steps) > 0 {
		s.Frames = s.Steps[len(s.Steps)-1].Frame
	}
	return nil
}

func (e Event) pointerEvent(at time.Duration) (sandbox.PointerEvent, error) {
	ev := sandbox.PointerEvent{
		Pos: dynamo.Vec2{X: e.X, Y: e.Y},
		At:  at + time.Duration(e.OffsetMs*float64(time.Millisecond)),
	}
	switch e.Kind {
	case "press":
		ev.Kind = sandbox.Press
	case "release":
		ev.Kind = sandbox.Release
	case "move":
		ev.Kind = sandbox.Move
	default:
		return ev, fmt.Errorf("unknown event kind %q", e.Kind)
	}
	switch e.Button {
	case "left":
		ev.Button = sandbox.Left
	case "right":
		ev.Button = sandbox.Right
	case "":
		if ev.Kind != sandbox.Move {
			return ev, fmt.Errorf("%s event needs a button", e.Kind)
		}
	default:
		return ev, fmt.Errorf("unknown button %q", e.Button)
	}
	return ev, nil
}

// FrameTime is the timestamp of a frame at the scenario frame rate.
func (s *Scenario) FrameTime(frame int) time.Duration {
	fps := s.FPS
	if fps <= 0 {
		fps = config.DefaultFPS
	}
	return time.Duration(frame) * time.Second / time.Duration(fps)
}

// Frame implements experiment.Input. It only reads the scenario, so one
// scenario can drive many concurrent runs.
func (s *Scenario) Frame(index int, base sandbox.FrameInput) sandbox.FrameInput {
	in := base
	in.Events = nil
	for _, st := range s.Steps {
		if st.Frame > index {
			break
		}
		if st.TimeScale != nil {
			in.TimeSlider = dynamo.SliderFromTimeScale(*st.TimeScale)
		}
		if st.GravityScale != nil {
			in.GravitySlider = dynamo.SliderFromGravityScale(*st.GravityScale)
		}
		if st.Width != nil {
			in.Bounds.Width = *st.Width
		}
		if st.Height != nil {
			in.Bounds.Height = *st.Height
		}
		if st.Frame == index {
			for _, e := range st.Events {
				if ev, err := e.pointerEvent(s.FrameTime(index)); err == nil {
					in.Events = append(in.Events, ev)
				}
			}
		}
	}
	return in
}

// Config resolves the run config: defaults, then the scenario preset, then
// the scenario's own seed and frame count.
func (s *Scenario) Config() (*config.Config, error) {
	cfg := config.DefaultConfig()
	if s.Preset != "" {
		cfg = config.GetPreset(s.Preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s", s.Preset)
		}
	}
	if s.Seed != 0 {
		cfg.Seed = s.Seed
	}
	if s.Frames > 0 {
		cfg.Frames = s.Frames
	}
	cfg.FPS = s.FPS
	return cfg, cfg.Validate()
}

// RunScenario replays the scenario on cfg, or on the scenario's own config
// when cfg is nil.
func RunScenario(ctx context.Context, s *Scenario, cfg *config.Config) (*experiment.Result, error) {
	if cfg == nil {
		var err error
		if cfg, err = s.Config(); err != nil {
			return nil, err
		}
	}
	exp := experiment.New(experiment.Config{
		Name:    s.Name,
		Frames:  cfg.Frames,
		Options: cfg.Options(),
		Frame:   cfg.FrameConfig(),
	})
	exp.SetInput(s)
	exp.UseDefaultMetrics()

	res, err := exp.Run(ctx)
	if err != nil {
		return res, fmt.Errorf("scenario %s: %w", s.Name, err)
	}
	return res, nil
}

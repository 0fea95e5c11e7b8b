package viz

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/ballpit/internal/dynamo"
	"github.com/san-kum/ballpit/internal/sandbox"
)

type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time { return c.now }

func quietWorld() *sandbox.World {
	opts := sandbox.DefaultOptions()
	opts.Spawn.Rate = 0
	opts.Spawn.MinRate = 0
	return sandbox.New(opts)
}

func newTestModel(t *testing.T) (Model, *fakeClock) {
	t.Helper()
	clock := &fakeClock{now: time.Unix(0, 0)}
	in := sandbox.InputFor(dynamo.DefaultFrameConfig())
	m := NewModel(quietWorld(), LiveOptions{Scale: 5, Input: in, Clock: clock.Now})
	return m, clock
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

func TestBoundsFollowCanvas(t *testing.T) {
	m, _ := newTestModel(t)
	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})

	cols := 100 - statsWidth - 2*canvasPadX - 1
	rows := 30 - 2*canvasPadY
	b := m.bounds()
	if b.Width != float64(cols*2)*5 || b.Height != float64(rows*4)*5 {
		t.Errorf("unexpected bounds %+v for %dx%d cells", b, cols, rows)
	}
	if m.input.Bounds != b {
		t.Errorf("expected input bounds %+v, got %+v", b, m.input.Bounds)
	}
}

func TestClickSpawnsAtPointer(t *testing.T) {
	m, _ := newTestModel(t)
	m = update(t, m, tea.MouseMsg{X: 12, Y: 6, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if len(m.pending) != 1 {
		t.Fatalf("expected 1 pending event, got %d", len(m.pending))
	}
	want := m.toWorld(12, 6)
	if m.pending[0].Pos != want {
		t.Errorf("expected pointer %v, got %v", want, m.pending[0].Pos)
	}

	m = update(t, m, TickMsg(time.Now()))
	if m.world.Len() != 1 {
		t.Fatalf("expected 1 body, got %d", m.world.Len())
	}
	if len(m.pending) != 0 {
		t.Errorf("expected pending events to be consumed")
	}
	b := m.frame.Bodies[0]
	if d := b.Pos.Dist(want); d > 10 {
		t.Errorf("body spawned %.2f from pointer", d)
	}
	if len(m.popHistory) != 1 || m.popHistory[0] != 1 {
		t.Errorf("expected population history [1], got %v", m.popHistory)
	}
}

func TestReleaseWithoutButtonUsesHeld(t *testing.T) {
	m, _ := newTestModel(t)
	m = update(t, m, tea.MouseMsg{X: 5, Y: 5, Action: tea.MouseActionPress, Button: tea.MouseButtonRight})
	m = update(t, m, tea.MouseMsg{X: 5, Y: 5, Action: tea.MouseActionRelease, Button: tea.MouseButtonNone})
	if len(m.pending) != 2 {
		t.Fatalf("expected 2 events, got %d", len(m.pending))
	}
	if m.pending[1].Kind != sandbox.Release || m.pending[1].Button != sandbox.Right {
		t.Errorf("expected right release, got %v %v", m.pending[1].Kind, m.pending[1].Button)
	}
	if m.held != sandbox.NoButton {
		t.Errorf("expected no held button, got %v", m.held)
	}
}

func TestDoubleClickUsesClock(t *testing.T) {
	m, clock := newTestModel(t)
	press := tea.MouseMsg{X: 20, Y: 8, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
	release := tea.MouseMsg{X: 20, Y: 8, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft}

	m = update(t, m, press)
	m = update(t, m, release)
	m = update(t, m, TickMsg(time.Now()))
	if m.world.Len() != 1 {
		t.Fatalf("expected 1 body, got %d", m.world.Len())
	}

	clock.now = clock.now.Add(100 * time.Millisecond)
	m = update(t, m, press)
	m = update(t, m, release)
	m = update(t, m, TickMsg(time.Now()))
	if m.frame.Events.Cleared != 1 {
		t.Errorf("expected 1 cleared body, got %d", m.frame.Events.Cleared)
	}
}

func TestPauseStopsStepping(t *testing.T) {
	m, _ := newTestModel(t)
	m = update(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	if m.running {
		t.Fatal("expected paused")
	}
	before := m.world.Frame()
	m = update(t, m, TickMsg(time.Now()))
	if m.world.Frame() != before {
		t.Errorf("expected frame %d, got %d", before, m.world.Frame())
	}
	m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'n'}})
	if m.world.Frame() != before+1 {
		t.Errorf("expected single step to frame %d, got %d", before+1, m.world.Frame())
	}
}

func TestPausedMotionCoalesces(t *testing.T) {
	m, _ := newTestModel(t)
	m.running = false
	for x := 0; x < 5; x++ {
		m = update(t, m, tea.MouseMsg{X: 10 + x, Y: 5, Action: tea.MouseActionMotion})
	}
	if len(m.pending) != 1 {
		t.Fatalf("expected 1 coalesced move, got %d", len(m.pending))
	}
	if m.pending[0].Pos != m.toWorld(14, 5) {
		t.Errorf("expected latest pointer, got %v", m.pending[0].Pos)
	}
}

func TestSliderKeys(t *testing.T) {
	m, _ := newTestModel(t)
	start := m.input.TimeSlider
	m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'+'}})
	if got := m.input.TimeSlider; got <= start {
		t.Errorf("expected time slider above %.3f, got %.3f", start, got)
	}
	for i := 0; i < 40; i++ {
		m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'G'}})
	}
	if m.input.GravitySlider != 0 {
		t.Errorf("expected gravity slider clamped to 0, got %.3f", m.input.GravitySlider)
	}
}

func TestClearAndReset(t *testing.T) {
	m, _ := newTestModel(t)
	for i := 0; i < 3; i++ {
		if _, err := m.world.Spawn(dynamo.Vec2{X: float64(100 + 90*i), Y: 100}); err != nil {
			t.Fatal(err)
		}
	}
	m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'c'}})
	if m.world.Len() != 0 {
		t.Errorf("expected empty world, got %d", m.world.Len())
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'+'}})
	m = update(t, m, TickMsg(time.Now()))
	m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	if m.world.Frame() != 0 {
		t.Errorf("expected frame 0 after reset, got %d", m.world.Frame())
	}
	if m.input.TimeSlider != m.initial.TimeSlider {
		t.Errorf("expected time slider restored")
	}
	if len(m.popHistory) != 0 {
		t.Errorf("expected history cleared")
	}
}

func TestViewShowsPanel(t *testing.T) {
	m, _ := newTestModel(t)
	if _, err := m.world.Spawn(dynamo.Vec2{X: 100, Y: 100}); err != nil {
		t.Fatal(err)
	}
	m = update(t, m, TickMsg(time.Now()))
	m = update(t, m, TickMsg(time.Now()))
	view := m.View()
	for _, want := range []string{"Bodies", "Gravity", "PUSH"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected view to contain %q", want)
		}
	}
}

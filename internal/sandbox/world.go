package sandbox

import (
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"time"

	"github.com/san-kum/ballpit/internal/dynamo"
	"github.com/san-kum/ballpit/internal/physics"
)

const (
	PhaseInput     = "input"
	PhaseDrag      = "drag"
	PhaseSpawn     = "spawn"
	PhaseDespawn   = "despawn"
	PhaseIntegrate = "integrate"
	PhaseCollide   = "collide"
	PhaseField     = "field"
	PhaseMerge     = "merge"
	PhaseExplode   = "explode"
)

type Options struct {
	Seed   int64
	Tuning physics.Tuning
	Spawn  SpawnConfig

	DoubleClick   time.Duration
	ClearRadius   float64
	DespawnMargin float64

	Logger *slog.Logger
}

func DefaultOptions() Options {
	return Options{
		Seed:          1,
		Tuning:        physics.DefaultTuning(),
		Spawn:         DefaultSpawnConfig(),
		DoubleClick:   300 * time.Millisecond,
		ClearRadius:   100,
		DespawnMargin: 100,
	}
}

// StepReport summarizes one call to Step.
type StepReport struct {
	Frame  int
	Events dynamo.FrameEvents
	Faults []error
}

// World is the body arena. It is not safe for concurrent use; one goroutine
// owns it and reads snapshots between steps.
type World struct {
	opts   Options
	tuning physics.Tuning
	spawn  *SpawnPolicy
	rng    *rand.Rand
	log    *slog.Logger

	bodies  []*physics.Body
	removed []bool
	inserts []*physics.Body
	nextID  uint64

	frame int
	cfg   dynamo.FrameConfig
	last  dynamo.FrameEvents

	pointer   dynamo.Vec2
	rightHeld bool
	pushing   bool
	selected  *physics.Body
	lastClick time.Duration
	clicked   bool
}

func New(opts Options) *World {
	def := DefaultOptions()
	if opts.DoubleClick <= 0 {
		opts.DoubleClick = def.DoubleClick
	}
	if opts.ClearRadius <= 0 {
		opts.ClearRadius = def.ClearRadius
	}
	if opts.DespawnMargin <= 0 {
		opts.DespawnMargin = def.DespawnMargin
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &World{
		opts:    opts,
		tuning:  opts.Tuning,
		spawn:   NewSpawnPolicy(opts.Spawn),
		rng:     rand.New(rand.NewSource(opts.Seed)),
		log:     logger,
		cfg:     dynamo.DefaultFrameConfig(),
		pushing: true,
	}
}

func (w *World) Len() int               { return len(w.bodies) }
func (w *World) Frame() int             { return w.frame }
func (w *World) Pushing() bool          { return w.pushing }
func (w *World) SpawnRate() float64     { return w.spawn.Rate() }
func (w *World) Tuning() physics.Tuning { return w.tuning }

// Selected returns the ID of the body being dragged.
func (w *World) Selected() (uint64, bool) {
	if w.selected == nil {
		return 0, false
	}
	return w.selected.ID, true
}

// Body returns the live body with the given ID.
func (w *World) Body(id uint64) (*physics.Body, bool) {
	for _, b := range w.bodies {
		if b.ID == id {
			return b, true
		}
	}
	return nil, false
}

func (w *World) newID() uint64 {
	w.nextID++
	return w.nextID
}

// Add inserts a body built by the caller. The body gets a fresh ID.
func (w *World) Add(b *physics.Body) (uint64, error) {
	if err := b.Validate(); err != nil {
		return 0, err
	}
	if len(w.bodies) >= w.opts.Spawn.Cap {
		return 0, dynamo.ErrPopulationCap
	}
	b.ID = w.newID()
	w.bodies = append(w.bodies, b)
	w.removed = append(w.removed, false)
	return b.ID, nil
}

// Spawn creates a random ball centred at pos.
func (w *World) Spawn(pos dynamo.Vec2) (uint64, error) {
	if len(w.bodies)+len(w.inserts) >= w.opts.Spawn.Cap {
		return 0, dynamo.ErrPopulationCap
	}
	b := physics.NewBall(w.newID(), pos, w.rng, w.tuning)
	w.inserts = append(w.inserts, b)
	w.commit()
	return b.ID, nil
}

// ClearAll removes every body and returns how many were removed.
func (w *World) ClearAll() int {
	n := len(w.bodies)
	clear(w.bodies)
	w.bodies = w.bodies[:0]
	w.removed = w.removed[:0]
	w.inserts = w.inserts[:0]
	w.selected = nil
	return n
}

// Reset clears the population and restores the initial spawn rate and
// field polarity.
func (w *World) Reset() {
	w.ClearAll()
	w.spawn.Reset()
	w.pushing = true
	w.rightHeld = false
	w.clicked = false
	w.frame = 0
	w.last = dynamo.FrameEvents{}
}

// Step advances the world by one frame.
func (w *World) Step(in FrameInput) StepReport {
	w.frame++
	w.cfg = in.FrameConfig()
	rep := StepReport{Frame: w.frame}

	w.guard(PhaseInput, &rep, func() { w.handleInput(in.Events, &rep) })
	w.commit()
	w.guard(PhaseDrag, &rep, w.updateDrag)
	w.guard(PhaseSpawn, &rep, func() { w.spawnTick(&rep) })
	w.commit()
	w.guard(PhaseDespawn, &rep, func() { w.despawn(&rep) })
	w.commit()
	w.guard(PhaseIntegrate, &rep, func() { w.integrate(&rep) })
	w.guard(PhaseCollide, &rep, func() { w.collide(&rep) })
	w.guard(PhaseField, &rep, w.applyField)
	w.guard(PhaseMerge, &rep, func() { w.merge(&rep) })
	w.commit()
	w.guard(PhaseExplode, &rep, func() { w.explode(&rep) })
	w.commit()

	rep.Events.Faults = len(rep.Faults)
	w.last = rep.Events
	return rep
}

// Snapshot copies the population for rendering.
func (w *World) Snapshot() *dynamo.Frame {
	f := &dynamo.Frame{
		Index:   w.frame,
		Config:  w.cfg,
		Bodies:  make([]dynamo.BodyView, len(w.bodies)),
		Pointer: w.pointer,
		Pushing: w.pushing,
		Field:   w.rightHeld,
		Events:  w.last,
	}
	for i, b := range w.bodies {
		f.Bodies[i] = b.View()
	}
	return f
}

// guard runs one phase and turns a panic into a fault so the frame always
// completes.
func (w *World) guard(phase string, rep *StepReport, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			w.fault(rep, &dynamo.PhaseError{
				Phase:   phase,
				Frame:   w.frame,
				Wrapped: fmt.Errorf("panic: %v", r),
			})
		}
	}()
	fn()
}

func (w *World) fault(rep *StepReport, err *dynamo.PhaseError) {
	rep.Faults = append(rep.Faults, err)
	attrs := []any{
		slog.String("phase", err.Phase),
		slog.Int("frame", err.Frame),
		slog.Any("err", err.Wrapped),
	}
	if err.Other != 0 {
		attrs = append(attrs, slog.String("pair", fmt.Sprintf("%d,%d", err.Body, err.Other)))
	} else if err.Body != 0 {
		attrs = append(attrs, slog.Uint64("body", err.Body))
	}
	w.log.Warn("physics fault", attrs...)
}

package sandbox

import (
	"log/slog"

	"github.com/san-kum/ballpit/internal/dynamo"
	"github.com/san-kum/ballpit/internal/physics"
)

func (w *World) handleInput(events []PointerEvent, rep *StepReport) {
	for _, ev := range events {
		w.pointer = ev.Pos
		switch ev.Kind {
		case Press:
			switch ev.Button {
			case Left:
				w.leftPress(ev, rep)
			case Right:
				w.pushing = !w.pushing
				w.rightHeld = true
			}
		case Release:
			if ev.Button == Right {
				w.rightHeld = false
			}
			if w.selected != nil {
				w.selected.EndDrag()
				w.selected = nil
			}
		}
	}
}

func (w *World) leftPress(ev PointerEvent, rep *StepReport) {
	if w.clicked && ev.At-w.lastClick < w.opts.DoubleClick {
		r2 := w.opts.ClearRadius * w.opts.ClearRadius
		for i, b := range w.bodies {
			if !w.removed[i] && b.Pos.DistSq(ev.Pos) <= r2 {
				w.remove(i)
				rep.Events.Cleared++
			}
		}
	}
	w.lastClick = ev.At
	w.clicked = true

	for i, b := range w.bodies {
		if !w.removed[i] && b.Contains(ev.Pos) {
			if w.selected != nil && w.selected != b {
				w.selected.EndDrag()
			}
			w.selected = b
			b.StartDrag(ev.Pos)
			return
		}
	}

	if len(w.bodies)+len(w.inserts) >= w.opts.Spawn.Cap {
		w.log.Debug("click spawn skipped", slog.Int("frame", w.frame), slog.Any("err", dynamo.ErrPopulationCap))
		return
	}
	w.inserts = append(w.inserts, physics.NewBall(w.newID(), ev.Pos, w.rng, w.tuning))
	rep.Events.Spawned++
}

func (w *World) updateDrag() {
	if w.selected != nil {
		w.selected.UpdateDrag(w.pointer, w.tuning)
	}
}

func (w *World) spawnTick(rep *StepReport) {
	if !w.spawn.Roll(w.rng) {
		return
	}
	if len(w.bodies)+len(w.inserts) >= w.opts.Spawn.Cap {
		return
	}
	x := float64(w.rng.Intn(int(w.cfg.Bounds.Width) + 1))
	b := physics.NewBall(w.newID(), dynamo.Vec2{X: x, Y: w.opts.Spawn.Height}, w.rng, w.tuning)
	if r := w.spawn.Radius(w.rng); r > 0 {
		if err := b.SetRadius(float64(r)); err != nil {
			w.fault(rep, &dynamo.PhaseError{Phase: PhaseSpawn, Frame: w.frame, Body: b.ID, Wrapped: err})
			return
		}
	}
	w.inserts = append(w.inserts, b)
	w.spawn.Spawned()
	rep.Events.Spawned++
}

func (w *World) despawn(rep *StepReport) {
	limit := w.cfg.Bounds.Height + w.opts.DespawnMargin
	for i, b := range w.bodies {
		if b.Pos.Y > limit {
			w.remove(i)
			rep.Events.Despawned++
		}
	}
}

func (w *World) integrate(rep *StepReport) {
	for _, b := range w.bodies {
		if err := b.Integrate(w.cfg, w.tuning); err != nil {
			w.fault(rep, &dynamo.PhaseError{Phase: PhaseIntegrate, Frame: w.frame, Body: b.ID, Wrapped: err})
		}
	}
}

func (w *World) collide(rep *StepReport) {
	n := len(w.bodies)
	passes := physics.RelaxationPasses(n)
	for pass := 0; pass < passes; pass++ {
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				a, b := w.bodies[i], w.bodies[j]
				if _, err := physics.Collide(a, b, w.tuning, w.rng); err != nil {
					w.fault(rep, &dynamo.PhaseError{Phase: PhaseCollide, Frame: w.frame, Body: a.ID, Other: b.ID, Wrapped: err})
				}
			}
		}
	}
}

func (w *World) applyField() {
	if w.rightHeld {
		physics.ApplyField(w.bodies, w.pointer, w.pushing, w.tuning)
	}
}

// merge scans every pair once. An absorbed body is skipped for the rest of
// the scan, and the survivor keeps absorbing with its grown radius.
func (w *World) merge(rep *StepReport) {
	for i, a := range w.bodies {
		if w.removed[i] {
			continue
		}
		for j := i + 1; j < len(w.bodies); j++ {
			b := w.bodies[j]
			if w.removed[j] || !physics.CanMerge(a, b, w.tuning) {
				continue
			}
			if err := physics.Absorb(a, b, w.tuning); err != nil {
				w.fault(rep, &dynamo.PhaseError{Phase: PhaseMerge, Frame: w.frame, Body: a.ID, Other: b.ID, Wrapped: err})
				continue
			}
			w.remove(j)
			rep.Events.Merged++
		}
	}
}

func (w *World) explode(rep *StepReport) {
	for i, b := range w.bodies {
		if !physics.ShouldExplode(b, w.cfg.Bounds) {
			continue
		}
		frags, err := physics.Explode(b, w.tuning, w.rng, w.newID)
		if err != nil {
			w.fault(rep, &dynamo.PhaseError{Phase: PhaseExplode, Frame: w.frame, Body: b.ID, Wrapped: err})
			continue
		}
		w.remove(i)
		w.inserts = append(w.inserts, frags...)
		rep.Events.Exploded++
		rep.Events.Fragments += len(frags)
	}
}

func (w *World) remove(i int) {
	w.removed[i] = true
}

// commit applies pending removals and insertions. Insertions past the
// population cap are discarded.
func (w *World) commit() {
	old := len(w.bodies)
	kept := w.bodies[:0]
	for i, b := range w.bodies {
		if w.removed[i] {
			if b == w.selected {
				w.selected = nil
			}
			continue
		}
		kept = append(kept, b)
	}
	clear(w.bodies[len(kept):old])
	kept = append(kept, w.inserts...)

	if limit := w.opts.Spawn.Cap; len(kept) > limit {
		dropped := kept[limit:]
		for _, b := range dropped {
			if b == w.selected {
				w.selected = nil
			}
		}
		w.log.Debug("population cap reached",
			slog.Int("frame", w.frame),
			slog.Int("dropped", len(dropped)),
			slog.Any("err", dynamo.ErrPopulationCap))
		clear(dropped)
		kept = kept[:limit]
	}

	w.bodies = kept
	clear(w.inserts)
	w.inserts = w.inserts[:0]
	w.removed = w.removed[:0]
	for range w.bodies {
		w.removed = append(w.removed, false)
	}
}

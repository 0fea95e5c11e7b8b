// Package physics implements the per-body and per-pair rules of the ball sandbox.
//
// Bodies are circles with mass proportional to area (r²). The package holds
// no population state: the sandbox owns the arena and calls these rules in
// a fixed phase order each frame.
//
//   - [Body.Integrate]: gravity, damping, speed clamp, rest snapping, walls
//   - [Body.StartDrag], [Body.UpdateDrag], [Body.EndDrag]: pointer dragging
//   - [Collide]: impulse response plus soft positional correction for one pair
//   - [ApplyField]: radial push/pull from a focal point
//   - [CanMerge], [Absorb]: volume-conserving merge of resting bodies
//   - [Explode]: fragmentation of special bodies
//
// Merges conserve r³ while mass follows r². The two models disagree on
// purpose; tuning depends on both.
package physics

// Package sandbox owns the body population and advances it one frame at a
// time. A frame runs fixed phases in order: pointer input, drag, spawn,
// despawn, integration, collision relaxation, force field, merge and
// explosion. Removals and insertions requested during a phase are held
// aside and applied between phases, so indices stay stable while a phase
// scans the population.
//
// Faults inside a phase are reported per body or per pair and never stop
// the frame.
package sandbox

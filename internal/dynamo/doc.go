// Package dynamo provides the shared primitives of the ball sandbox.
//
// The package defines the value types and contracts that the physics rules,
// the sandbox world and every front end agree on:
//
//   - [Vec2]: 2D vector in world space (pixels, pixels/frame)
//   - [RGB]: body colour
//   - [Bounds]: play area size, which may change between frames
//   - [FrameConfig]: per-frame scalars (time scale, gravity scale, bounds)
//   - [Frame]: read-only snapshot handed to renderers and metrics
//   - [Metric], [Observer]: per-frame consumers of snapshots
//
// # Example
//
//	cfg := dynamo.FrameConfig{
//		TimeScale:    dynamo.TimeScaleFromSlider(0.5),
//		GravityScale: dynamo.GravityScaleFromSlider(0.2),
//		Bounds:       dynamo.Bounds{Width: 1200, Height: 800},
//	}.Normalized()
//
// # Thread Safety
//
// Snapshots are plain values and may be handed to another goroutine once the
// frame that produced them has completed. Nothing in this package is mutated
// concurrently by the sandbox.
package dynamo

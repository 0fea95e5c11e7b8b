package sandbox_test

import (
	"math"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/ballpit/internal/dynamo"
	"github.com/san-kum/ballpit/internal/physics"
	"github.com/san-kum/ballpit/internal/sandbox"
)

var _ = Describe("World", func() {
	var (
		w     *sandbox.World
		frame dynamo.FrameConfig
	)

	step := func(events ...sandbox.PointerEvent) sandbox.StepReport {
		in := sandbox.InputFor(frame)
		in.Events = events
		return w.Step(in)
	}

	add := func(x, y, r float64, special bool) uint64 {
		b := physics.NewBody(0, dynamo.Vec2{X: x, Y: y}, r)
		b.Special = special
		id, err := w.Add(b)
		Expect(err).NotTo(HaveOccurred())
		return id
	}

	BeforeEach(func() {
		opts := sandbox.DefaultOptions()
		opts.Spawn.Rate = 0
		w = sandbox.New(opts)
		frame = dynamo.FrameConfig{TimeScale: 1, GravityScale: 1, Bounds: dynamo.Bounds{Width: 1200, Height: 800}}
	})

	Describe("spawn policy", func() {
		It("reaches the floor rate after 300 spawns", func() {
			p := sandbox.NewSpawnPolicy(sandbox.DefaultSpawnConfig())
			for i := 0; i < 300; i++ {
				p.Spawned()
			}
			Expect(p.Rate()).To(Equal(0.02))
		})

		It("keeps spawning under the cap and never above it", func() {
			opts := sandbox.DefaultOptions()
			opts.Spawn.Rate = 1
			opts.Spawn.Cap = 25
			w = sandbox.New(opts)
			for i := 0; i < 60; i++ {
				step()
				Expect(w.Len()).To(BeNumerically("<=", 25))
			}
			Expect(w.Len()).To(BeNumerically(">", 0))
		})
	})

	Describe("explosions", func() {
		It("replaces a special body on the floor with 8 half-size fragments", func() {
			parent := add(600, 770, 30, true)
			rep := step()

			Expect(rep.Events.Exploded).To(Equal(1))
			Expect(w.Len()).To(Equal(8))
			_, alive := w.Body(parent)
			Expect(alive).To(BeFalse())
			for _, v := range w.Snapshot().Bodies {
				Expect(v.Radius).To(Equal(15.0))
				Expect(v.Special).To(BeFalse())
				Expect(v.Color).To(Equal(physics.Red))
				speed := v.Vel.Len()
				Expect(speed).To(BeNumerically(">=", 5))
				Expect(speed).To(BeNumerically("<=", 10))
			}
		})

		It("leaves ordinary bodies on the floor alone", func() {
			add(600, 770, 30, false)
			step()
			Expect(w.Len()).To(Equal(1))
		})
	})

	Describe("double click", func() {
		It("clears bodies near the second click before handling it", func() {
			add(500, 790, 10, false)
			add(560, 790, 10, false)
			far := add(900, 790, 10, false)

			step(sandbox.PressAt(sandbox.Left, 900, 790, 0))
			step(sandbox.ReleaseAt(sandbox.Left, 900, 790, 50*time.Millisecond))
			rep := step(sandbox.PressAt(sandbox.Left, 530, 700, 250*time.Millisecond))

			Expect(rep.Events.Cleared).To(Equal(2))
			_, ok := w.Body(far)
			Expect(ok).To(BeTrue())
		})
	})

	Describe("merging", func() {
		It("conserves volume for resting overlapping bodies", func() {
			add(300, 780, 20, false)
			add(315, 780, 20, false)
			rep := step()

			Expect(rep.Events.Merged).To(Equal(1))
			Expect(w.Len()).To(Equal(1))
			r := w.Snapshot().Bodies[0].Radius
			Expect(r * r * r).To(BeNumerically("~", 16000, 1e-6))
		})

		It("does not merge bodies that only touch", func() {
			add(300, 780, 20, false)
			add(330, 780, 20, false)
			step()
			Expect(w.Len()).To(Equal(2))
		})
	})

	Describe("long runs", func() {
		It("completes every frame without faults", func() {
			opts := sandbox.DefaultOptions()
			opts.Seed = 42
			opts.Spawn.Rate = 0.5
			w = sandbox.New(opts)
			for i := 0; i < 600; i++ {
				rep := step()
				Expect(rep.Faults).To(BeEmpty())
			}
			for _, v := range w.Snapshot().Bodies {
				Expect(math.IsNaN(v.Pos.X)).To(BeFalse())
				Expect(v.Mass).To(Equal(v.Radius * v.Radius))
			}
		})

		It("follows a resize between frames", func() {
			add(1100, 400, 20, false)
			frame.Bounds = dynamo.Bounds{Width: 400, Height: 300}
			step()
			v := w.Snapshot().Bodies[0]
			Expect(v.Pos.X + v.Radius).To(BeNumerically("<=", 400))
			Expect(w.Snapshot().Config.Bounds).To(Equal(frame.Bounds))
		})
	})
})

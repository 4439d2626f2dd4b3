package engine_test

import (
	"io"
	"log/slog"
	"math/rand"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/phaseviz/internal/config"
	"github.com/san-kum/phaseviz/internal/engine"
	"github.com/san-kum/phaseviz/internal/render"
)

var _ = Describe("Engine lifecycle", func() {
	var (
		surface *render.ImageSurface
		loop    *engine.ManualLoop
		motion  *engine.MotionSwitch
		bus     *engine.EventBus
		eng     *engine.Engine
		now     time.Duration
	)

	pump := func(n int) {
		for i := 0; i < n; i++ {
			loop.Pump(now)
			now += 20 * time.Millisecond
		}
	}

	BeforeEach(func() {
		surface = render.NewImageSurface(64, 48, 1)
		loop = engine.NewManualLoop()
		motion = engine.NewMotionSwitch(false)
		bus = engine.NewEventBus()
		now = 0

		cfg := config.DefaultConfig()
		cfg.NumEntities = 16
		cfg.TargetFPS = 50

		var err error
		eng, err = engine.New(engine.Host{
			Surface: surface,
			Loop:    loop,
			Motion:  motion,
			Events:  bus,
			Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
			Rand:    rand.New(rand.NewSource(42)),
		}, cfg)
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		eng.Destroy()
	})

	It("starts in Ready with an allocated surface", func() {
		Expect(eng.State()).To(Equal(engine.Ready))
		Expect(surface.Image()).NotTo(BeNil())
		Expect(loop.Pending()).To(BeZero())
	})

	Context("once visible", func() {
		BeforeEach(func() {
			eng.OnVisible()
		})

		It("runs and draws frames", func() {
			pump(10)
			Expect(eng.State()).To(Equal(engine.Running))
			Expect(eng.Draws()).To(Equal(10))
		})

		It("toggles between Running and Paused", func() {
			eng.Stop()
			Expect(eng.State()).To(Equal(engine.Paused))
			eng.Start()
			Expect(eng.State()).To(Equal(engine.Running))
			Expect(loop.Pending()).To(Equal(1))
		})

		It("ignores further visibility signals", func() {
			eng.Stop()
			eng.OnVisible()
			Expect(eng.State()).To(Equal(engine.Paused))
		})

		It("paints particles onto the raster", func() {
			pump(3)
			img := surface.Image()
			Expect(img).NotTo(BeNil())
			lit := 0
			b := img.Bounds()
			for y := b.Min.Y; y < b.Max.Y; y++ {
				for x := b.Min.X; x < b.Max.X; x++ {
					if img.RGBAAt(x, y).G > 40 {
						lit++
					}
				}
			}
			Expect(lit).To(BeNumerically(">", 0))
		})

		It("survives a zero-size resize", func() {
			pump(2)
			draws := eng.Draws()
			surface.SetSize(0, 0)
			Expect(bus.Resize).NotTo(Panic())
			pump(3)
			Expect(eng.Draws()).To(Equal(draws))
			Expect(surface.Image()).To(BeNil())
		})
	})

	Context("with reduced motion", func() {
		It("renders a single static frame and never schedules", func() {
			motion.Set(true)
			eng.OnVisible()
			pump(5)
			Expect(eng.Static()).To(BeTrue())
			Expect(eng.Draws()).To(Equal(1))
			Expect(loop.Pending()).To(BeZero())
		})
	})

	Describe("Destroy", func() {
		It("is terminal and removes listeners", func() {
			eng.OnVisible()
			eng.Destroy()
			Expect(eng.State()).To(Equal(engine.Destroyed))
			Expect(bus.Listeners()).To(BeZero())
			Expect(motion.Subscribers()).To(BeZero())
			Expect(loop.Pending()).To(BeZero())

			eng.Start()
			Expect(eng.State()).To(Equal(engine.Destroyed))
		})
	})

	Describe("a nil handle", func() {
		It("accepts every call", func() {
			var nilEng *engine.Engine
			Expect(func() {
				nilEng.OnVisible()
				nilEng.Start()
				nilEng.Stop()
				nilEng.Reset()
				nilEng.SetParameter(3)
				nilEng.OnPointerClick(1, 2)
				nilEng.OnResize()
				nilEng.Destroy()
			}).NotTo(Panic())
		})
	})
})

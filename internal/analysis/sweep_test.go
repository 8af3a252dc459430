package analysis

import (
	"context"
	"errors"
	"math"
	"sync/atomic"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/bifurcation/internal/dynamo"
	"github.com/san-kum/bifurcation/internal/maps"
)

var _ = Describe("Sweep", func() {
	var (
		ctx context.Context
		cfg SweepConfig
	)

	BeforeEach(func() {
		ctx = context.Background()
		cfg = SweepConfig{Map: maps.Logistic.Map(), X0: 0.5, Skip: 100, Samples: 7}
	})

	It("keeps batch boundaries in parameter order", func() {
		rs := []float64{2.9, 3.1, 3.3, 3.5, 3.7}
		points, err := Sweep(ctx, cfg, rs, 3)
		Expect(err).NotTo(HaveOccurred())
		Expect(points).To(HaveLen(5 * cfg.Samples))

		for i, r := range rs {
			batch := points[i*cfg.Samples : (i+1)*cfg.Samples]
			Expect(batch).To(Equal(cfg.Sample(r)))
		}
	})

	DescribeTable("matches the sequential sweep for any worker count",
		func(workers int) {
			rs, err := Linspace(2.8, 4.0, 97)
			Expect(err).NotTo(HaveOccurred())

			sequential, err := Sweep(ctx, cfg, rs, 1)
			Expect(err).NotTo(HaveOccurred())
			parallel, err := Sweep(ctx, cfg, rs, workers)
			Expect(err).NotTo(HaveOccurred())

			Expect(parallel).To(HaveLen(len(sequential)))
			for i := range sequential {
				Expect(math.Float64bits(parallel[i].State)).To(Equal(math.Float64bits(sequential[i].State)))
				Expect(parallel[i].Param).To(Equal(sequential[i].Param))
			}
		},
		Entry("2 workers", 2),
		Entry("3 workers", 3),
		Entry("8 workers", 8),
		Entry("more workers than parameters", 500),
	)

	It("returns an empty result for an empty parameter sequence", func() {
		points, err := Sweep(ctx, cfg, nil, 4)
		Expect(err).NotTo(HaveOccurred())
		Expect(points).To(BeEmpty())
	})

	It("returns an empty result when no samples are requested", func() {
		cfg.Samples = 0
		points, err := Sweep(ctx, cfg, []float64{3.0, 3.5}, 2)
		Expect(err).NotTo(HaveOccurred())
		Expect(points).To(BeEmpty())
	})

	It("passes non-finite states through", func() {
		cfg.X0 = 5
		points, err := Sweep(ctx, cfg, []float64{4.0}, 1)
		Expect(err).NotTo(HaveOccurred())
		Expect(points).To(HaveLen(cfg.Samples))
		Expect(points[len(points)-1].IsFinite()).To(BeFalse())
	})

	Context("with an invalid configuration", func() {
		It("rejects zero workers before doing any work", func() {
			calls := 0
			cfg.Map = dynamo.MapFunc{Label: "count", Fn: func(x, r float64) float64 {
				calls++
				return x
			}}
			_, err := Sweep(ctx, cfg, []float64{1, 2}, 0)
			Expect(err).To(MatchError(dynamo.ErrInvalidConfig))
			Expect(calls).To(BeZero())
		})

		It("rejects a missing map", func() {
			cfg.Map = nil
			_, err := Sweep(ctx, cfg, []float64{1}, 1)
			Expect(err).To(MatchError(dynamo.ErrInvalidConfig))
		})
	})

	Context("when the map fails", func() {
		BeforeEach(func() {
			cfg.Map = dynamo.MapFunc{Label: "fragile", Fn: func(x, r float64) float64 {
				if r > 3.4 {
					panic("domain error")
				}
				return r * x * (1 - x)
			}}
		})

		It("aborts the sweep with the failing parameter", func() {
			rs := []float64{3.0, 3.2, 3.5, 3.1}
			points, err := Sweep(ctx, cfg, rs, 2)
			Expect(points).To(BeNil())
			Expect(errors.Is(err, dynamo.ErrMapPanic)).To(BeTrue())

			var sweepErr *dynamo.SweepError
			Expect(errors.As(err, &sweepErr)).To(BeTrue())
			Expect(sweepErr.Index).To(Equal(2))
			Expect(sweepErr.Param).To(Equal(3.5))
			Expect(sweepErr.Cause).To(Equal("domain error"))
		})

		It("waits for every worker before returning", func() {
			var running atomic.Int32
			cfg.Map = dynamo.MapFunc{Label: "slow", Fn: func(x, r float64) float64 {
				running.Add(1)
				defer running.Add(-1)
				if r > 3.4 {
					panic("domain error")
				}
				time.Sleep(time.Millisecond)
				return r * x * (1 - x)
			}}
			cfg.Skip, cfg.Samples = 5, 5

			rs := []float64{3.5, 3.0, 3.1, 3.2, 3.3, 3.0, 3.1, 3.2}
			_, err := Sweep(ctx, cfg, rs, 4)
			Expect(err).To(MatchError(dynamo.ErrMapPanic))
			Expect(running.Load()).To(BeZero())
		})

		It("fails the same way sequentially", func() {
			_, err := Sweep(ctx, cfg, []float64{3.5}, 1)
			Expect(err).To(MatchError(dynamo.ErrMapPanic))
		})
	})

	It("stops when the context is canceled", func() {
		canceled, cancel := context.WithCancel(ctx)
		cancel()
		_, err := Sweep(canceled, cfg, []float64{3.0, 3.1}, 2)
		Expect(err).To(MatchError(context.Canceled))
	})
})

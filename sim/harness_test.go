package sim_test

import (
	"context"
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/cockroachdb/errors"
	"github.com/sarchlab/bpsim/pattern"
	"github.com/sarchlab/bpsim/predictor"
	"github.com/sarchlab/bpsim/sim"
)

var _ = Describe("Harness", func() {
	var harness *sim.Harness

	BeforeEach(func() {
		config := sim.DefaultConfig()
		config.Workers = 4
		harness = sim.NewHarness(config)
	})

	It("should return results in pattern order", func() {
		loop, err := pattern.Loop(5, 1600)
		Expect(err).NotTo(HaveOccurred())
		random, err := pattern.Random(pattern.NewRand(1), 9600)
		Expect(err).NotTo(HaveOccurred())
		always, err := pattern.Constant(true, 100)
		Expect(err).NotTo(HaveOccurred())

		harness.AddPattern(random)
		harness.AddPatterns([]pattern.Pattern{loop, always})
		Expect(harness.Patterns()).To(HaveLen(3))

		results, err := harness.RunAll(context.Background())
		Expect(err).NotTo(HaveOccurred())
		Expect(results).To(HaveLen(3))
		Expect(results[0].Pattern).To(Equal("random"))
		Expect(results[1].Pattern).To(Equal("loop(k=5)"))
		Expect(results[2].Pattern).To(Equal("always-taken"))
		Expect(results[1].Correct).To(Equal(uint64(7999)))
	})

	It("should match sequential runs", func() {
		var patterns []pattern.Pattern
		for seed := int64(0); seed < 16; seed++ {
			p, err := pattern.Random(pattern.NewRand(seed), 2000)
			Expect(err).NotTo(HaveOccurred())
			patterns = append(patterns, p)
		}
		harness.AddPatterns(patterns)

		results, err := harness.RunAll(context.Background())
		Expect(err).NotTo(HaveOccurred())

		for i, p := range patterns {
			expected, err := sim.Run(p, predictor.KindSaturating2Bit)
			Expect(err).NotTo(HaveOccurred())
			Expect(results[i]).To(Equal(expected))
		}
	})

	It("should fail the batch on an empty pattern", func() {
		harness.AddPattern(pattern.Pattern{Name: "ok", Outcomes: []bool{true, true}})
		harness.AddPattern(pattern.Pattern{Name: "empty"})

		results, err := harness.RunAll(context.Background())
		Expect(errors.Is(err, sim.ErrInvalidInput)).To(BeTrue())
		Expect(results).To(BeNil())
	})

	It("should stop when the context is cancelled", func() {
		harness.AddPattern(pattern.Pattern{Name: "ok", Outcomes: []bool{true}})

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := harness.RunAll(ctx)
		Expect(errors.Is(err, context.Canceled)).To(BeTrue())
	})
})

var _ = Describe("Trials", func() {
	randomGen := func(n int) sim.Generator {
		return func(rng *rand.Rand) (pattern.Pattern, error) {
			return pattern.Random(rng, n)
		}
	}

	It("should converge to 50% on random patterns", func() {
		summary, err := sim.RunTrials(context.Background(), sim.TrialConfig{
			Trials: 200,
			Seed:   1234,
		}, randomGen(10000))
		Expect(err).NotTo(HaveOccurred())
		Expect(summary.Trials).To(Equal(200))
		Expect(summary.Pattern).To(Equal("random"))
		Expect(summary.Predictor).To(Equal(predictor.DefaultKind))
		Expect(summary.Mean).To(BeNumerically("~", 0.5, 0.02))
		Expect(summary.CILow).To(BeNumerically("<", summary.Mean))
		Expect(summary.CIHigh).To(BeNumerically(">", summary.Mean))
		Expect(summary.CIHigh - summary.CILow).To(BeNumerically("<", 0.04))
	})

	It("should be reproducible from the seed", func() {
		cfg := sim.TrialConfig{Trials: 10, Seed: 99, Workers: 3}
		a, err := sim.RunTrials(context.Background(), cfg, randomGen(1000))
		Expect(err).NotTo(HaveOccurred())
		b, err := sim.RunTrials(context.Background(), cfg, randomGen(1000))
		Expect(err).NotTo(HaveOccurred())
		Expect(a.Accuracies).To(Equal(b.Accuracies))
		Expect(a.Mean).To(Equal(b.Mean))
	})

	It("should reject zero trials", func() {
		_, err := sim.RunTrials(context.Background(), sim.TrialConfig{}, randomGen(10))
		Expect(errors.Is(err, sim.ErrInvalidInput)).To(BeTrue())
	})

	It("should propagate generator errors", func() {
		_, err := sim.RunTrials(context.Background(), sim.TrialConfig{Trials: 3}, randomGen(0))
		Expect(errors.Is(err, sim.ErrInvalidInput)).To(BeTrue())
	})

	Describe("Summarize", func() {
		It("should compute mean and spread", func() {
			s, err := sim.Summarize("x", []float64{0.4, 0.6})
			Expect(err).NotTo(HaveOccurred())
			Expect(s.Mean).To(BeNumerically("~", 0.5, 1e-12))
			Expect(s.StdDev).To(BeNumerically("~", 0.1414213562, 1e-9))
			Expect(s.StdErr).To(BeNumerically("~", 0.1, 1e-9))
			Expect(s.CIHigh - s.Mean).To(BeNumerically("~", 0.1959964, 1e-6))
		})

		It("should handle a single trial", func() {
			s, err := sim.Summarize("x", []float64{0.7})
			Expect(err).NotTo(HaveOccurred())
			Expect(s.StdDev).To(Equal(0.0))
			Expect(s.CILow).To(Equal(s.CIHigh))
		})

		It("should reject no trials", func() {
			_, err := sim.Summarize("x", nil)
			Expect(errors.Is(err, sim.ErrInvalidInput)).To(BeTrue())
		})
	})
})

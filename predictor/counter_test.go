package predictor_test

import (
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/cockroachdb/errors"
	"github.com/sarchlab/bpsim/predictor"
)

var _ = Describe("SaturatingCounter", func() {
	var c *predictor.SaturatingCounter

	BeforeEach(func() {
		c = predictor.NewSaturatingCounter()
	})

	Describe("Prediction", func() {
		It("should start weakly not taken", func() {
			Expect(c.State()).To(Equal(predictor.WeaklyNotTaken))
			Expect(c.Predict()).To(BeFalse())
		})

		It("should not change state when predicting", func() {
			for i := 0; i < 10; i++ {
				Expect(c.Predict()).To(BeFalse())
			}
			Expect(c.State()).To(Equal(predictor.WeaklyNotTaken))

			c.Update(true)
			for i := 0; i < 10; i++ {
				Expect(c.Predict()).To(BeTrue())
			}
			Expect(c.State()).To(Equal(predictor.WeaklyTaken))
		})

		It("should learn taken pattern", func() {
			for i := 0; i < 10; i++ {
				c.Update(true)
			}
			Expect(c.State()).To(Equal(predictor.StronglyTaken))
			Expect(c.Predict()).To(BeTrue())
		})

		It("should learn not-taken pattern", func() {
			for i := 0; i < 10; i++ {
				c.Update(false)
			}
			Expect(c.State()).To(Equal(predictor.StronglyNotTaken))
			Expect(c.Predict()).To(BeFalse())
		})
	})

	Describe("2-bit saturating counter", func() {
		It("should require 2 mispredictions to leave strongly taken", func() {
			c = predictor.NewSaturatingCounterAt(predictor.StronglyTaken)

			// One not-taken -> still predicts taken (at 2)
			c.Update(false)
			Expect(c.State()).To(Equal(predictor.WeaklyTaken))
			Expect(c.Predict()).To(BeTrue())

			// Another not-taken -> now predicts not taken (at 1)
			c.Update(false)
			Expect(c.State()).To(Equal(predictor.WeaklyNotTaken))
			Expect(c.Predict()).To(BeFalse())
		})

		It("should require 2 mispredictions to leave strongly not taken", func() {
			c = predictor.NewSaturatingCounterAt(predictor.StronglyNotTaken)

			c.Update(true)
			Expect(c.State()).To(Equal(predictor.WeaklyNotTaken))
			Expect(c.Predict()).To(BeFalse())

			c.Update(true)
			Expect(c.State()).To(Equal(predictor.WeaklyTaken))
			Expect(c.Predict()).To(BeTrue())
		})

		It("should saturate at both ends", func() {
			c = predictor.NewSaturatingCounterAt(predictor.StronglyTaken)
			c.Update(true)
			Expect(c.State()).To(Equal(predictor.StronglyTaken))

			c = predictor.NewSaturatingCounterAt(predictor.StronglyNotTaken)
			c.Update(false)
			Expect(c.State()).To(Equal(predictor.StronglyNotTaken))
		})

		It("should stay in range under random updates", func() {
			rng := rand.New(rand.NewSource(7))
			for i := 0; i < 10000; i++ {
				c.Update(rng.Intn(2) == 1)
				Expect(c.State().Valid()).To(BeTrue())
				Expect(c.Predict()).To(Equal(c.State() >= predictor.WeaklyTaken))
			}
		})

		It("should clamp an out-of-range initial state", func() {
			c = predictor.NewSaturatingCounterAt(predictor.State(9))
			Expect(c.State()).To(Equal(predictor.StronglyTaken))
		})
	})

	Describe("Reset", func() {
		It("should return to the initial state", func() {
			c.Update(true)
			c.Update(true)
			c.Reset()
			Expect(c.State()).To(Equal(predictor.InitialState))
		})
	})
})

var _ = Describe("State", func() {
	DescribeTable("transitions",
		func(s, inc, dec predictor.State) {
			Expect(s.Inc()).To(Equal(inc))
			Expect(s.Dec()).To(Equal(dec))
		},
		Entry("strongly not taken", predictor.StronglyNotTaken, predictor.WeaklyNotTaken, predictor.StronglyNotTaken),
		Entry("weakly not taken", predictor.WeaklyNotTaken, predictor.WeaklyTaken, predictor.StronglyNotTaken),
		Entry("weakly taken", predictor.WeaklyTaken, predictor.StronglyTaken, predictor.WeaklyNotTaken),
		Entry("strongly taken", predictor.StronglyTaken, predictor.StronglyTaken, predictor.WeaklyTaken),
	)

	It("should clamp out-of-range states before stepping", func() {
		Expect(predictor.State(9).Inc()).To(Equal(predictor.StronglyTaken))
		Expect(predictor.State(9).Dec()).To(Equal(predictor.WeaklyTaken))
	})

	It("should name each state", func() {
		Expect(predictor.WeaklyTaken.String()).To(Equal("WeaklyTaken"))
		Expect(predictor.State(7).String()).To(Equal("State(7)"))
	})
})

var _ = Describe("Kind", func() {
	It("should build a fresh 2-bit counter", func() {
		p, err := predictor.New(predictor.KindSaturating2Bit)
		Expect(err).NotTo(HaveOccurred())
		Expect(p.Predict()).To(BeFalse())
	})

	It("should reject unknown kinds", func() {
		_, err := predictor.New(predictor.Kind("tournament"))
		Expect(errors.Is(err, predictor.ErrUnknownKind)).To(BeTrue())
	})

	It("should parse kind names", func() {
		k, err := predictor.ParseKind(" 2BIT ")
		Expect(err).NotTo(HaveOccurred())
		Expect(k).To(Equal(predictor.KindSaturating2Bit))

		k, err = predictor.ParseKind("")
		Expect(err).NotTo(HaveOccurred())
		Expect(k).To(Equal(predictor.DefaultKind))

		_, err = predictor.ParseKind("gshare")
		Expect(errors.Is(err, predictor.ErrUnknownKind)).To(BeTrue())
	})
})

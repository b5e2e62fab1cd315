package trail_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/dblpend/internal/trail"
)

func pt(x float64) trail.Point { return trail.Point{X: x, Y: -x} }

func collect(b *trail.Buffer) []trail.Segment {
	var out []trail.Segment
	for s := range b.Segments() {
		out = append(out, s)
	}
	return out
}

var _ = Describe("Buffer", func() {
	Describe("construction", func() {
		It("rejects non-positive capacities", func() {
			for _, c := range []int{0, -1, -400} {
				b, err := trail.New(c)
				Expect(err).To(MatchError(trail.ErrCapacity))
				Expect(b).To(BeNil())
			}
		})

		It("panics in MustNew for a bad capacity", func() {
			Expect(func() { trail.MustNew(0) }).To(Panic())
		})

		It("starts empty", func() {
			b := trail.MustNew(400)
			Expect(b.Len()).To(Equal(0))
			Expect(b.Cap()).To(Equal(400))
			_, ok := b.Latest()
			Expect(ok).To(BeFalse())
			Expect(collect(b)).To(BeEmpty())
		})
	})

	Describe("traversal", func() {
		It("yields newest-first adjacent pairs", func() {
			b := trail.MustNew(8)
			b.Push(pt(1))
			b.Push(pt(2))
			b.Push(pt(3))

			var pairs [][2]trail.Point
			b.Visit(func(newer, older trail.Point, _ float64) {
				pairs = append(pairs, [2]trail.Point{newer, older})
			})
			Expect(pairs).To(Equal([][2]trail.Point{
				{pt(3), pt(2)},
				{pt(2), pt(1)},
			}))
		})

		It("yields no segments for a single sample", func() {
			b := trail.MustNew(4)
			b.Push(pt(1))
			Expect(collect(b)).To(BeEmpty())
			Expect(b.Len()).To(Equal(1))
		})

		It("matches Visit and is restartable", func() {
			b := trail.MustNew(16)
			for i := 0; i < 23; i++ {
				b.Push(pt(float64(i)))
			}
			var visited []trail.Segment
			b.Visit(func(newer, older trail.Point, w float64) {
				visited = append(visited, trail.Segment{Newer: newer, Older: older, Weight: w})
			})
			Expect(collect(b)).To(Equal(visited))
			Expect(collect(b)).To(Equal(visited))
		})

		It("stops early when the consumer breaks", func() {
			b := trail.MustNew(16)
			for i := 0; i < 10; i++ {
				b.Push(pt(float64(i)))
			}
			n := 0
			for range b.Segments() {
				n++
				if n == 3 {
					break
				}
			}
			Expect(n).To(Equal(3))
		})

		It("fades weights from 1 toward the oldest segment", func() {
			b := trail.MustNew(10)
			for i := 0; i < 10; i++ {
				b.Push(pt(float64(i)))
			}
			segs := collect(b)
			Expect(segs).To(HaveLen(9))
			Expect(segs[0].Weight).To(Equal(1.0))
			Expect(segs[8].Weight).To(BeNumerically("~", 1.0/3.0, 1e-15))
			for i := 1; i < len(segs); i++ {
				Expect(segs[i].Weight).To(BeNumerically("<", segs[i-1].Weight))
			}
			Expect(segs[5].Weight).To(BeNumerically("~", math.Sqrt(4.0/9.0), 1e-15))
		})
	})

	Describe("capacity", func() {
		DescribeTable("keeps exactly the last capacity points",
			func(capacity, extra int) {
				b := trail.MustNew(capacity)
				total := capacity + extra
				for i := 0; i < total; i++ {
					b.Push(pt(float64(i)))
				}
				Expect(b.Len()).To(Equal(capacity))

				var got []trail.Point
				for p := range b.Points() {
					got = append(got, p)
				}
				Expect(got).To(HaveLen(capacity))
				for i, p := range got {
					Expect(p).To(Equal(pt(float64(total - 1 - i))))
				}
				Expect(collect(b)).To(HaveLen(capacity - 1))
			},
			Entry("exactly full", 5, 0),
			Entry("one over", 5, 1),
			Entry("wrapped several times", 5, 17),
			Entry("capacity one", 1, 3),
			Entry("reference size", 400, 1234),
		)

		It("never reads unwritten slots while filling", func() {
			b := trail.MustNew(6)
			for i := 1; i <= 4; i++ {
				b.Push(pt(float64(i)))
			}
			for p := range b.Points() {
				Expect(p).NotTo(Equal(trail.Point{}))
			}
			Expect(collect(b)).To(HaveLen(3))
		})
	})

	Describe("Reset", func() {
		It("drops every sample", func() {
			b := trail.MustNew(4)
			for i := 1; i <= 6; i++ {
				b.Push(pt(float64(i)))
			}
			b.Reset()
			Expect(b.Len()).To(Equal(0))
			Expect(collect(b)).To(BeEmpty())

			b.Push(pt(9))
			latest, ok := b.Latest()
			Expect(ok).To(BeTrue())
			Expect(latest).To(Equal(pt(9)))
		})
	})

	Describe("Bounds", func() {
		It("covers every retained sample", func() {
			b := trail.MustNew(3)
			b.Push(trail.Point{X: 100, Y: 100})
			b.Push(trail.Point{X: -1, Y: 2})
			b.Push(trail.Point{X: 3, Y: -4})
			b.Push(trail.Point{X: 0.5, Y: 0.5})

			r := b.Bounds()
			Expect(r.Min).To(Equal(trail.Point{X: -1, Y: -4}))
			Expect(r.Max).To(Equal(trail.Point{X: 3, Y: 2}))
		})
	})
})

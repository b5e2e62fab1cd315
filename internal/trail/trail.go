// Package trail records the recent path of the lower pendulum mass in a
// fixed-capacity ring so renderers can draw a fading tail.
package trail

import (
	"errors"
	"fmt"
	"iter"
	"math"

	"github.com/jbeda/geom"
)

// ErrCapacity is returned by New for a capacity below one.
var ErrCapacity = errors.New("trail: capacity must be positive")

// Point is one recorded sample.
type Point = geom.Coord

// Segment joins two consecutive samples. Weight fades from 1 for the newest
// segment toward 0 for the oldest.
type Segment struct {
	Newer, Older Point
	Weight       float64
}

// Buffer is a ring of the most recent samples. Once full, each Push
// overwrites the oldest sample. A Buffer is not safe for concurrent use.
type Buffer struct {
	samples []Point
	next    int
	count   int
}

func New(capacity int) (*Buffer, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrCapacity, capacity)
	}
	return &Buffer{samples: make([]Point, capacity)}, nil
}

// MustNew is like New but panics on an invalid capacity.
func MustNew(capacity int) *Buffer {
	b, err := New(capacity)
	if err != nil {
		panic(err)
	}
	return b
}

// Push records p, dropping the oldest sample when the buffer is full.
func (b *Buffer) Push(p Point) {
	b.samples[b.next] = p
	b.next = (b.next + 1) % len(b.samples)
	if b.count < len(b.samples) {
		b.count++
	}
}

// Len returns the number of valid samples.
func (b *Buffer) Len() int { return b.count }

// Cap returns the fixed capacity.
func (b *Buffer) Cap() int { return len(b.samples) }

// Reset forgets every sample without releasing storage.
func (b *Buffer) Reset() {
	b.next = 0
	b.count = 0
}

// at returns the i-th newest sample; i must be below count.
func (b *Buffer) at(i int) Point {
	n := len(b.samples)
	return b.samples[(b.next-1-i+n)%n]
}

// Weight is the fade applied to segment i (0 = newest) of a trail holding
// count samples: sqrt((count-1-i)/(count-1)).
func Weight(i, count int) float64 {
	if count < 2 {
		return 0
	}
	return math.Sqrt(float64(count-1-i) / float64(count-1))
}

// Visit calls fn for each pair of consecutive samples from newest to
// oldest, count-1 times in total.
func (b *Buffer) Visit(fn func(newer, older Point, weight float64)) {
	for i := 0; i+1 < b.count; i++ {
		fn(b.at(i), b.at(i+1), Weight(i, b.count))
	}
}

// Segments returns the Visit sequence as an iterator. Each range over it
// starts again from the newest sample.
func (b *Buffer) Segments() iter.Seq[Segment] {
	return func(yield func(Segment) bool) {
		for i := 0; i+1 < b.count; i++ {
			if !yield(Segment{Newer: b.at(i), Older: b.at(i + 1), Weight: Weight(i, b.count)}) {
				return
			}
		}
	}
}

// Points yields the valid samples from newest to oldest.
func (b *Buffer) Points() iter.Seq[Point] {
	return func(yield func(Point) bool) {
		for i := 0; i < b.count; i++ {
			if !yield(b.at(i)) {
				return
			}
		}
	}
}

// Latest returns the newest sample, or false when the buffer is empty.
func (b *Buffer) Latest() (Point, bool) {
	if b.count == 0 {
		return Point{}, false
	}
	return b.at(0), true
}

// Bounds returns the smallest rectangle holding every valid sample. It is
// the zero Rect when the buffer is empty.
func (b *Buffer) Bounds() geom.Rect {
	if b.count == 0 {
		return geom.Rect{}
	}
	first := b.at(0)
	r := geom.Rect{Min: first, Max: first}
	for i := 1; i < b.count; i++ {
		r.ExpandToContainCoord(b.at(i))
	}
	return r
}

// SPDX-License-Identifier: MIT

// Package odometer enumerates fixed-length tuples of non-negative integers
// with every coordinate in 0..=Bound, in odometer order: coordinate 0 is the
// lowest-order digit, it advances every step and carries into coordinate 1
// once it exceeds Bound, and so on. The sequence ends when the most
// significant coordinate exceeds Bound.
//
// Enumeration is a pure function of an index (Decode), so a space can be
// split into contiguous ranges and walked by independent workers, or resumed
// from any index, without shared iterator state. Cursor is the allocation-free
// sequential walker over one such range.
//
// A space with Dims coordinates has (Bound+1)^Dims tuples. Dims == 0 yields
// exactly one (empty) tuple, and Bound == 0 yields exactly one all-zero tuple.
package odometer

import (
	"errors"
	"fmt"
	"math/bits"
)

var (
	// ErrNegativeBound is returned for Bound < 0.
	ErrNegativeBound = errors.New("odometer: bound must be >= 0")

	// ErrNegativeDims is returned for Dims < 0.
	ErrNegativeDims = errors.New("odometer: dims must be >= 0")

	// ErrSpaceTooLarge is returned when (Bound+1)^Dims does not fit in uint64.
	ErrSpaceTooLarge = errors.New("odometer: space size overflows uint64")

	// ErrIndexOutOfRange is returned by Decode for index >= Len, by Encode for
	// coordinates outside 0..=Bound, and by Seek for an index outside
	// [Lo, Hi] of the cursor's range (Hi itself is accepted).
	// Decode and Encode also return it for a tuple length other than Dims.
	ErrIndexOutOfRange = errors.New("odometer: index out of range")
)

// Space describes all tuples of length Dims over 0..=Bound. Build it with New;
// the zero Space is empty.
type Space struct {
	dims  int
	bound int
	size  uint64
	radix uint64
}

// Range is a half-open index interval [Lo, Hi).
type Range struct {
	Lo, Hi uint64
}

// Len returns Hi − Lo.
func (r Range) Len() uint64 { return r.Hi - r.Lo }

// New validates dims and bound and precomputes the space size.
//
// Errors:
//   - ErrNegativeDims, ErrNegativeBound.
//   - ErrSpaceTooLarge when (bound+1)^dims overflows uint64.
func New(dims, bound int) (Space, error) {
	if dims < 0 {
		return Space{}, fmt.Errorf("dims=%d: %w", dims, ErrNegativeDims)
	}
	if bound < 0 {
		return Space{}, fmt.Errorf("bound=%d: %w", bound, ErrNegativeBound)
	}
	radix := uint64(bound) + 1
	size := uint64(1)
	var (
		hi uint64
		i  int
	)
	for i = 0; i < dims; i++ {
		hi, size = bits.Mul64(size, radix)
		if hi != 0 {
			return Space{}, fmt.Errorf("(%d+1)^%d: %w", bound, dims, ErrSpaceTooLarge)
		}
	}

	return Space{dims: dims, bound: bound, size: size, radix: radix}, nil
}

// Dims returns the tuple length.
func (s Space) Dims() int { return s.dims }

// Bound returns the inclusive upper limit of every coordinate.
func (s Space) Bound() int { return s.bound }

// Len returns the number of tuples, (Bound+1)^Dims.
func (s Space) Len() uint64 { return s.size }

// Decode writes the tuple at position index into dst (len(dst) must equal
// Dims) and returns dst. It is the inverse of Encode.
func (s Space) Decode(index uint64, dst []int) ([]int, error) {
	if len(dst) != s.dims {
		return nil, fmt.Errorf("len(dst)=%d dims=%d: %w", len(dst), s.dims, ErrIndexOutOfRange)
	}
	if index >= s.size {
		return nil, fmt.Errorf("index=%d len=%d: %w", index, s.size, ErrIndexOutOfRange)
	}
	var i int
	for i = 0; i < s.dims; i++ {
		dst[i] = int(index % s.radix)
		index /= s.radix
	}

	return dst, nil
}

// Encode returns the index of tuple t. Coordinates must lie in 0..=Bound.
func (s Space) Encode(t []int) (uint64, error) {
	if len(t) != s.dims {
		return 0, fmt.Errorf("len(t)=%d dims=%d: %w", len(t), s.dims, ErrIndexOutOfRange)
	}
	var (
		idx uint64
		i   int
	)
	for i = s.dims - 1; i >= 0; i-- {
		if t[i] < 0 || t[i] > s.bound {
			return 0, fmt.Errorf("t[%d]=%d: %w", i, t[i], ErrIndexOutOfRange)
		}
		idx = idx*s.radix + uint64(t[i])
	}

	return idx, nil
}

// Split partitions [0, Len) into at most n contiguous, non-empty ranges of
// near-equal length, in increasing order. n < 1 is treated as 1. An empty
// space yields no ranges.
func (s Space) Split(n int) []Range {
	if s.size == 0 {
		return nil
	}
	if n < 1 {
		n = 1
	}
	parts := uint64(n)
	if parts > s.size {
		parts = s.size
	}
	out := make([]Range, 0, parts)
	chunk, rem := s.size/parts, s.size%parts
	var (
		lo, hi uint64
		i      uint64
	)
	for i = 0; i < parts; i++ {
		hi = lo + chunk
		if i < rem {
			hi++
		}
		out = append(out, Range{Lo: lo, Hi: hi})
		lo = hi
	}

	return out
}

// Cursor walks a Range of a Space sequentially. It owns its tuple buffer;
// Tuple() is valid until the next call to Next or Seek.
type Cursor struct {
	space   Space
	rng     Range
	tuple   []int
	index   uint64
	started bool
}

// Cursor returns a cursor over the whole space, positioned before index 0.
func (s Space) Cursor() *Cursor {
	return s.RangeCursor(Range{Lo: 0, Hi: s.size})
}

// RangeCursor returns a cursor over r (clamped to the space), positioned
// before r.Lo.
func (s Space) RangeCursor(r Range) *Cursor {
	if r.Hi > s.size {
		r.Hi = s.size
	}
	if r.Lo > r.Hi {
		r.Lo = r.Hi
	}
	c := &Cursor{space: s, rng: r, tuple: make([]int, s.dims)}
	c.reset(r.Lo)

	return c
}

// Seek repositions the cursor so that the next call to Next yields index.
// Seeking to the range end is allowed (Next then returns false).
func (c *Cursor) Seek(index uint64) error {
	if index < c.rng.Lo || index > c.rng.Hi {
		return fmt.Errorf("seek %d outside [%d,%d]: %w", index, c.rng.Lo, c.rng.Hi, ErrIndexOutOfRange)
	}
	c.reset(index)

	return nil
}

func (c *Cursor) reset(index uint64) {
	c.index = index
	c.started = false
	if index < c.space.size {
		_, _ = c.space.Decode(index, c.tuple) // index in range, len(tuple) == dims
	}
}

// Next advances to the next tuple; it returns false once the range is exhausted.
func (c *Cursor) Next() bool {
	if !c.started {
		c.started = true
		return c.index < c.rng.Hi
	}
	if c.index+1 >= c.rng.Hi {
		c.index = c.rng.Hi
		return false
	}
	c.index++
	c.advance()

	return true
}

// advance increments the odometer: bump coordinate 0 and carry while a
// coordinate exceeds the bound.
func (c *Cursor) advance() {
	var i int
	for i = 0; i < len(c.tuple); i++ {
		c.tuple[i]++
		if c.tuple[i] <= c.space.bound {
			return
		}
		c.tuple[i] = 0
	}
}

// Tuple returns the current tuple. The slice is reused by the cursor.
func (c *Cursor) Tuple() []int { return c.tuple }

// Index returns the enumeration index of the current tuple.
func (c *Cursor) Index() uint64 { return c.index }

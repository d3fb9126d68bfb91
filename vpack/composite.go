package vpack

import "math"

// MaxCount is the largest count that fits the 2-byte count prefix.
const MaxCount = math.MaxUint16

// Count implements serialization of an element count as a fixed 2-byte
// unsigned value. Writing a count larger than MaxCount records
// ErrCountOverflow instead of silently truncating it.
func Count(n *int, buf *Buffer) {
	var c uint16
	if buf.Mode == Serialize {
		if *n < 0 || *n > MaxCount {
			buf.Fail(ErrCountOverflow)
			return
		}
		c = uint16(*n)
	}
	UInt16(&c, buf)
	*n = int(c)
}

// Fixed serializes exactly n items of a slice whose length is known to both
// sides and is not itself written. When deserializing the slice is allocated
// with n items (left nil when n is zero); when serializing n must match the
// slice length.
func Fixed[T any](list *[]T, n int, fn PackFn[T], buf *Buffer) {
	switch buf.Mode {
	case Serialize:
		if n != len(*list) {
			buf.Fail(ErrLengthMismatch)
			return
		}
	case Deserialize:
		if n < 0 {
			buf.Fail(ErrLengthMismatch)
			return
		}
		if n == 0 {
			*list = nil
			return
		}
		*list = make([]T, n)
	}
	for index := range *list {
		if buf.Err != nil {
			return
		}
		var item = &(*list)[index]
		fn(item, buf)
	}
}

// Slice is a helper for serialization a slice of some type, given its
// serialization function. It starts by reading/writing the 2-byte count of the
// slice, then uses the provided serialization function to serialize each
// individual item in the slice.
//
// minSize is the smallest encoded size of one item; it is used to reject a
// corrupt count before allocating.
func Slice[T any](list *[]T, minSize int, fn PackFn[T], buf *Buffer) {
	var size = len(*list)
	Count(&size, buf)
	if !buf.Expect(size * minSize) {
		return
	}
	Fixed(list, size, fn, buf)
}

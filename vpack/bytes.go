package vpack

import "errors"

var (
	// ErrTruncated means the data ended before a field it was expected to hold.
	ErrTruncated = errors.New("vpack: truncated data")

	// ErrCountOverflow means a slice was too long for its 2-byte count.
	ErrCountOverflow = errors.New("vpack: count does not fit in 16 bits")

	// ErrLengthMismatch means a fixed-length slice did not have the length
	// both sides agreed on.
	ErrLengthMismatch = errors.New("vpack: slice length does not match fixed length")
)

// PackFn is a generic serialization function that can be used either to
// serialize or deserialize data, depending on the buffer's mode.
type PackFn[T any] func(data *T, buffer *Buffer)

func ToBytes[T any](obj *T, fn PackFn[T]) ([]byte, error) {
	buf := NewWriter()
	fn(obj, buf)
	if buf.Err != nil {
		return nil, buf.Err
	}
	return buf.Data, nil
}

func FromBytes[T any](data []byte, fn PackFn[T]) (*T, error) {
	var obj T
	if err := FromBytesInto(data, &obj, fn); err != nil {
		return nil, err
	}
	return &obj, nil
}

func FromBytesInto[T any](data []byte, obj *T, fn PackFn[T]) error {
	buf := NewReader(data)
	fn(obj, buf)
	return buf.Err
}

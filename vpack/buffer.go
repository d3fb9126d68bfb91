package vpack

import "fmt"

type Mode int

const (
	Serialize Mode = iota
	Deserialize
)

// Buffer is a byte buffer used to serialize data into, or
// deserialize data from, depending on the mode.
//
// Pos is the single read cursor. Every read advances it by exactly the number
// of bytes consumed, so the offset of a field is always "wherever the previous
// field ended".
type Buffer struct {
	Data []byte
	Pos  int   // reading position; not used for writing
	Err  error // first error hit; once set, reads return zero values
	Mode Mode
}

// NewReader prepares a Buffer for deserializing data from
// the backing byte buffer. The caller owns the data.
func NewReader(data []byte) *Buffer {
	return &Buffer{
		Data: data,
		Mode: Deserialize,
	}
}

// NewWriter prepares a buffer for serializing data into.
// The backing buffer is owned by Buffer, but when
// serialization is done, the caller may use it.
func NewWriter() *Buffer {
	return NewWriterSize(64)
}

// NewWriterSize is like NewWriter but preallocates room for size bytes.
func NewWriterSize(size int) *Buffer {
	return &Buffer{
		Data: make([]byte, 0, size),
		Mode: Serialize,
	}
}

func (b *Buffer) Reading() bool {
	return b.Mode == Deserialize
}

func (b *Buffer) ReadingDone() bool {
	return b.Pos >= len(b.Data)
}

// Remaining is the number of unread bytes after the cursor.
func (b *Buffer) Remaining() int {
	if b.Pos >= len(b.Data) {
		return 0
	}
	return len(b.Data) - b.Pos
}

// Fail records err unless an earlier error is already recorded.
func (b *Buffer) Fail(err error) {
	if b.Err == nil {
		b.Err = err
	}
}

// Expect checks, when reading, that at least n more bytes are available. It
// lets callers reject an impossible count before allocating for it. When
// writing it always succeeds.
func (b *Buffer) Expect(n int) bool {
	if b.Err != nil {
		return false
	}
	if b.Mode == Serialize {
		return true
	}
	if n < 0 || n > b.Remaining() {
		b.truncated(n)
		return false
	}
	return true
}

func (b *Buffer) WriteBytes(newData ...byte) {
	b.Data = append(b.Data, newData...)
}

// ReadBytes does not expand the buffer to fit the required size.
// Instead, if there's not enough data left, it records ErrTruncated and
// returns n zero bytes without moving the cursor.
func (b *Buffer) ReadBytes(n int) []byte {
	if b.Err != nil {
		return make([]byte, n)
	}
	if n > b.Remaining() { // unhappy case
		b.truncated(n)
		return make([]byte, n)
	}
	start := b.Pos
	end := b.Pos + n
	b.Pos = end
	return b.Data[start:end]
}

func (b *Buffer) truncated(n int) {
	b.Fail(fmt.Errorf("%w: need %d bytes at offset %d, have %d", ErrTruncated, n, b.Pos, b.Remaining()))
}

package vpack

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type other struct {
	Kind uint16
	Flag uint8
}

func packOther(self *other, buf *Buffer) {
	UInt16(&self.Kind, buf)
	Byte(&self.Flag, buf)
}

type something struct {
	U16  uint16
	I32  int32
	F32  float32
	B    byte
	List []other
	Tail []uint16
}

func packSomething(self *something, buf *Buffer) {
	UInt16(&self.U16, buf)
	Int32(&self.I32, buf)
	Float32(&self.F32, buf)
	Byte(&self.B, buf)
	Slice(&self.List, 3, packOther, buf)
	Fixed(&self.Tail, 2, UInt16, buf)
}

func TestPackingThings(t *testing.T) {
	obj1 := something{
		U16: 43222,
		I32: -7,
		F32: 12.25,
		B:   2,
		List: []other{
			{Kind: 10},
			{Kind: 3, Flag: 1},
		},
		Tail: []uint16{5, 6},
	}

	data, err := ToBytes(&obj1, packSomething)
	require.NoError(t, err)
	assert.Len(t, data, 2+4+4+1+2+3*2+2*2)

	obj2, err := FromBytes(data, packSomething)
	require.NoError(t, err)
	assert.Equal(t, obj1, *obj2)
}

func TestLittleEndianLayout(t *testing.T) {
	buf := NewWriter()
	var u uint16 = 0x0102
	var i int32 = -2
	var f float32 = 1.5
	UInt16(&u, buf)
	Int32(&i, buf)
	Float32(&f, buf)
	require.NoError(t, buf.Err)

	assert.Equal(t, []byte{0x02, 0x01}, buf.Data[0:2])
	assert.Equal(t, []byte{0xfe, 0xff, 0xff, 0xff}, buf.Data[2:6])
	assert.Equal(t, math.Float32bits(1.5), LittleEndian.Uint32(buf.Data[6:10]))
}

func TestTruncatedRead(t *testing.T) {
	buf := NewReader([]byte{1, 0, 9})
	var a, b uint16
	UInt16(&a, buf)
	require.NoError(t, buf.Err)
	assert.Equal(t, uint16(1), a)

	UInt16(&b, buf)
	require.Error(t, buf.Err)
	assert.True(t, errors.Is(buf.Err, ErrTruncated))
	assert.Equal(t, uint16(0), b)
	assert.Equal(t, 2, buf.Pos, "a failed read must not move the cursor")

	// the first error sticks
	var c byte
	Byte(&c, buf)
	assert.ErrorIs(t, buf.Err, ErrTruncated)
}

func TestSliceRejectsImpossibleCount(t *testing.T) {
	// count says 0xffff items but there is nothing behind it
	_, err := FromBytes([]byte{0xff, 0xff}, func(s *something, buf *Buffer) {
		Slice(&s.List, 3, packOther, buf)
	})
	assert.ErrorIs(t, err, ErrTruncated)
}

func TestCountOverflow(t *testing.T) {
	long := make([]uint16, MaxCount+1)
	_, err := ToBytes(&long, func(l *[]uint16, buf *Buffer) {
		Slice(l, UInt16Size, UInt16, buf)
	})
	assert.ErrorIs(t, err, ErrCountOverflow)
}

func TestFixedLengthMismatch(t *testing.T) {
	list := []uint16{1, 2, 3}
	_, err := ToBytes(&list, func(l *[]uint16, buf *Buffer) {
		Fixed(l, 2, UInt16, buf)
	})
	assert.ErrorIs(t, err, ErrLengthMismatch)
}

func TestVersion(t *testing.T) {
	w := NewWriter()
	Version(3, w)
	r := NewReader(w.Data)
	assert.Equal(t, uint16(3), Version(4, r))
	assert.NoError(t, r.Err)
	assert.True(t, r.ReadingDone())
}

func TestExpect(t *testing.T) {
	r := NewReader(make([]byte, 4))
	assert.True(t, r.Expect(4))
	assert.False(t, r.Expect(5))
	assert.ErrorIs(t, r.Err, ErrTruncated)

	w := NewWriter()
	assert.True(t, w.Expect(1<<20))
}

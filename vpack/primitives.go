package vpack

import (
	"encoding/binary"
	"math"
)

// LittleEndian is the byte order of every multi-byte value this package
// writes. It is fixed regardless of the host architecture.
var LittleEndian = binary.LittleEndian

// Width of the fixed size primitives, in bytes.
const (
	ByteSize    = 1
	UInt16Size  = 2
	UInt32Size  = 4
	Float32Size = 4
)

// UInt16 implements fixed size serialization of uint16.
func UInt16(n *uint16, buf *Buffer) {
	if buf.Mode == Serialize {
		buf.Data = LittleEndian.AppendUint16(buf.Data, *n)
	} else {
		slice := buf.ReadBytes(UInt16Size)
		*n = LittleEndian.Uint16(slice)
	}
}

// UInt32 implements fixed size serialization of uint32.
func UInt32(n *uint32, buf *Buffer) {
	if buf.Mode == Serialize {
		buf.Data = LittleEndian.AppendUint32(buf.Data, *n)
	} else {
		slice := buf.ReadBytes(UInt32Size)
		*n = LittleEndian.Uint32(slice)
	}
}

// Int32 implements fixed size serialization of int32 as two's complement.
func Int32(n *int32, buf *Buffer) {
	var u = uint32(*n)
	UInt32(&u, buf)
	*n = int32(u)
}

// Float32 implements fixed size serialization of an IEEE-754 single.
func Float32(f *float32, buf *Buffer) {
	// Float32bits and Float32frombits are just transmute casts that should cost nothing
	var u = math.Float32bits(*f)
	UInt32(&u, buf)
	*f = math.Float32frombits(u)
}

// Byte implements serialization for a single byte
func Byte(b *byte, buf *Buffer) {
	if buf.Mode == Serialize {
		buf.WriteBytes(*b)
	} else {
		*b = buf.ReadBytes(ByteSize)[0]
	}
}

// Enum8 implements serialization for a byte based enum type.
func Enum8[T ~uint8](e *T, buf *Buffer) {
	var b = byte(*e)
	Byte(&b, buf)
	*e = T(b)
}

// Version writes the current version when serializing. When deserializing it
// returns whatever version is stored; comparing it against current is left to
// the caller.
func Version(current uint16, buf *Buffer) uint16 {
	var v = current
	UInt16(&v, buf)
	return v
}

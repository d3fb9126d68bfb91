/*
Package vpack implements a small scheme for fixed-layout binary serialization
and deserialization of plain data into and from byte buffers.

It is the building block of the saplings save file, but it's general purpose
enough that it can be used for any hand-laid binary record.

# Serialization Buffer and Mode

The basic building block is a `Buffer` struct that has a backing buffer (a byte
slice), a read cursor, a sticky error and a Mode, which can be either Serialize
or Deserialize.

This allows the "serialization" function to fulfill the role of both reading and
writing (serialization and deserialization) at the same time.

A serialization function takes a pointer to an object (to be (de)serialized) and
a pointer to a Buffer.

If the buffer is in serialization mode, the function writes the binary
representation of the object to the buffer. If the buffer is in deserialization
mode, the function reads from the buffer into the object passed.

As a user of this package, you almost never have to worry about checking the
mode in your own serialization code. At the high level, you just list the fields
you want to serialize and what function to use to serialize them.

This allows the serialization and deserialization of complex objects to be
robust: just serialize the relevant fields in order, and you're guaranteed that
deserialization will happen in exactly the same order. No field offset is ever
computed by hand; each one is wherever the cursor stopped after the previous
field.

# Byte order and widths

Everything is fixed width and little-endian: UInt16 and Count take 2 bytes,
UInt32, Int32 and Float32 take 4, Byte takes 1. There are no varints, no
length prefixes other than the explicit Count, and no padding.

# Errors

Reading past the end of the data never panics. The first failed read records
ErrTruncated (wrapped with the offset) in Buffer.Err; every read after that
returns zero values. Check Err once at the end.

Example:

	type Sample struct {
	    Kind   uint16
	    Weight float32
	    Tags   []uint16
	}

	func PackSample(s *Sample, buf *vpack.Buffer) {
	    vpack.UInt16(&s.Kind, buf)
	    vpack.Float32(&s.Weight, buf)
	    vpack.Slice(&s.Tags, vpack.UInt16Size, vpack.UInt16, buf)
	}

	data, err := vpack.ToBytes(&sample, PackSample)
	back, err := vpack.FromBytes(data, PackSample)
*/
package vpack

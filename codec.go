package saplings

import (
	"fmt"

	"go.hasen.dev/saplings/vpack"
)

// Codec encodes and decodes save files of one format version.
type Codec struct {
	Version uint16
}

// DefaultCodec reads and writes the current FormatVersion.
var DefaultCodec = Codec{Version: FormatVersion}

// Decoded is the result of a successful Decode.
type Decoded struct {
	Snapshot *Snapshot

	// Version as stored in the file.
	Version uint16

	// Mismatch is set when Version differs from the codec's version. The
	// snapshot was still read with the codec's layout.
	Mismatch *VersionMismatchError

	// Trailing counts unread bytes after the last collectable.
	Trailing int
}

// Encode serializes s. It only fails when s cannot be represented, e.g. more
// than 65535 curves.
func (c Codec) Encode(s *Snapshot) ([]byte, error) {
	buf := vpack.NewWriterSize(s.EncodedSize())
	vpack.Version(c.Version, buf)
	packSnapshot(s, nil, buf)
	if buf.Err != nil {
		return nil, fmt.Errorf("saplings: encode: %w", buf.Err)
	}
	return buf.Data, nil
}

// Decode parses data written by Encode. layout describes the live reward
// tables: the number of powerup slots and the piece counts are not stored.
//
// Decoding is all or nothing: on error no snapshot is returned.
func (c Codec) Decode(data []byte, layout RewardLayout) (*Decoded, error) {
	buf := vpack.NewReader(data)
	stored := vpack.Version(c.Version, buf)
	var s Snapshot
	packSnapshot(&s, &layout, buf)
	if buf.Err != nil {
		return nil, fmt.Errorf("saplings: decode: %w", buf.Err)
	}

	d := &Decoded{
		Snapshot: &s,
		Version:  stored,
		Trailing: buf.Remaining(),
	}
	if stored != c.Version {
		d.Mismatch = &VersionMismatchError{Stored: stored, Current: c.Version}
	}
	return d, nil
}

// packSnapshot lists every field in file order. layout is only consulted when
// reading.
func packSnapshot(s *Snapshot, layout *RewardLayout, buf *vpack.Buffer) {
	vpack.Float32(&s.CloudSize, buf)
	vpack.Float32(&s.PlantHeight, buf)
	vpack.Float32(&s.PlantSaturation, buf)
	packCurves(&s.Curves, buf)
	vpack.Int32(&s.NextStemHeight, buf)
	packStems(&s.Stems, buf)
	vpack.Float32(&s.TimeUntilDeath, buf)
	packPowerups(&s.Powerups, layout, buf)
	packCollectables(&s.Collectables, layout, buf)
}

func packPoint(p *Point, buf *vpack.Buffer) {
	vpack.Float32(&p.X, buf)
	vpack.Float32(&p.Y, buf)
}

func packBezier(b *Bezier, buf *vpack.Buffer) {
	for i := range b {
		packPoint(&b[i], buf)
	}
}

// packCurves writes the count, then every segment id, then every curve's
// control points. The two arrays are not interleaved.
func packCurves(curves *[]Curve, buf *vpack.Buffer) {
	var n = len(*curves)
	vpack.Count(&n, buf)
	if !buf.Expect(n * curveSize) {
		return
	}
	if buf.Reading() {
		*curves = sized[Curve](n)
	}
	list := *curves
	for i := range list {
		vpack.UInt16(&list[i].Segment, buf)
	}
	for i := range list {
		packBezier(&list[i].Points, buf)
	}
}

// packStems writes the count, then the fixed 7-byte records, then the control
// points, then the flower growth states, all in stem order.
func packStems(stems *[]Stem, buf *vpack.Buffer) {
	var n = len(*stems)
	vpack.Count(&n, buf)
	if !buf.Expect(n * stemSize) {
		return
	}
	if buf.Reading() {
		*stems = sized[Stem](n)
	}
	list := *stems
	for i := range list {
		vpack.Enum8(&list[i].Line, buf)
		vpack.UInt16(&list[i].Height, buf)
		vpack.Float32(&list[i].Length, buf)
	}
	for i := range list {
		packBezier(&list[i].Points, buf)
	}
	for i := range list {
		vpack.Float32(&list[i].FlowerGrowth, buf)
	}
}

// packPowerups writes every slot of the powerup table without a count. When
// reading, the slot count and piece counts come from layout.
func packPowerups(powerups *[]Powerup, layout *RewardLayout, buf *vpack.Buffer) {
	if buf.Reading() {
		*powerups = sized[Powerup](len(layout.PowerupPieces))
	}
	for i := range *powerups {
		p := &(*powerups)[i]
		pieces := len(p.Pieces)
		if buf.Reading() {
			pieces = layout.PowerupPieces[i]
		}
		vpack.Float32(&p.TimeRemaining, buf)
		vpack.UInt16(&p.Quantity, buf)
		vpack.Fixed(&p.Pieces, pieces, vpack.UInt16, buf)
		if buf.Err != nil {
			return
		}
	}
}

// packCollectables writes the count of stored collectables followed by each
// one's index, quantity and piece quantities.
func packCollectables(collectables *[]Collectable, layout *RewardLayout, buf *vpack.Buffer) {
	vpack.Slice(collectables, collectHeadSize, func(c *Collectable, buf *vpack.Buffer) {
		vpack.UInt16(&c.Index, buf)
		vpack.UInt16(&c.Quantity, buf)
		pieces := len(c.Pieces)
		if buf.Reading() {
			if buf.Err != nil {
				return
			}
			if int(c.Index) >= len(layout.CollectablePieces) {
				buf.Fail(fmt.Errorf("%w: index %d, table has %d", ErrUnknownCollectable, c.Index, len(layout.CollectablePieces)))
				return
			}
			pieces = layout.CollectablePieces[c.Index]
		}
		vpack.Fixed(&c.Pieces, pieces, vpack.UInt16, buf)
	}, buf)
}

// sized allocates n items, leaving the slice nil when there are none.
func sized[T any](n int) []T {
	if n == 0 {
		return nil
	}
	return make([]T, n)
}

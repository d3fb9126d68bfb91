package saplings

import (
	"fmt"

	"go.hasen.dev/generic"

	"go.hasen.dev/saplings/vpack"
)

// Staging mirrors the plant geometry the growth simulation produces between
// saves, already packed in save-file form. The simulation stores each curve
// and stem as it is created and removes stems as they die; Capture turns the
// staged bytes back into records at save time.
//
// The zero value is ready to use. Staging is not safe for concurrent use.
type Staging struct {
	segments    []byte // 2 bytes per curve
	curvePoints []byte // bezierSize per curve
	stemPoints  []byte // bezierSize per stem

	awarded []uint16
	seen    map[uint16]struct{}
}

// StoreCurve appends one curve segment.
func (st *Staging) StoreCurve(segment uint16, points Bezier) {
	w := &vpack.Buffer{Data: st.segments, Mode: vpack.Serialize}
	vpack.UInt16(&segment, w)
	st.segments = w.Data

	st.curvePoints = appendBezier(st.curvePoints, &points)
}

// StoreStem appends the control points of a new stem.
func (st *Staging) StoreStem(points Bezier) {
	st.stemPoints = appendBezier(st.stemPoints, &points)
}

// RemoveStem cuts stem i out of the staged points. Later stems move down one
// slot, keeping their relative order.
func (st *Staging) RemoveStem(i int) error {
	if i < 0 || i >= st.StemCount() {
		return fmt.Errorf("%w: %d of %d", ErrStemIndex, i, st.StemCount())
	}
	start := i * bezierSize
	st.stemPoints = append(st.stemPoints[:start], st.stemPoints[start+bezierSize:]...)
	return nil
}

// StoreCollectable records that the collectable at index was awarded, so the
// next save includes it. Repeated awards are recorded once.
func (st *Staging) StoreCollectable(index uint16) {
	generic.InitMap(&st.seen)
	if _, ok := st.seen[index]; ok {
		return
	}
	st.seen[index] = struct{}{}
	st.awarded = append(st.awarded, index)
}

// Reset drops all staged curves and stems. Awarded collectables are kept.
func (st *Staging) Reset() {
	st.segments = nil
	st.curvePoints = nil
	st.stemPoints = nil
}

// Restore replaces the staged geometry and awards with those of a loaded
// snapshot.
func (st *Staging) Restore(s *Snapshot) {
	st.Reset()
	for _, c := range s.Curves {
		st.StoreCurve(c.Segment, c.Points)
	}
	for _, stem := range s.Stems {
		st.StoreStem(stem.Points)
	}
	st.awarded = nil
	st.seen = nil
	for _, c := range s.Collectables {
		st.StoreCollectable(c.Index)
	}
}

func (st *Staging) CurveCount() int {
	return len(st.segments) / vpack.UInt16Size
}

func (st *Staging) StemCount() int {
	return len(st.stemPoints) / bezierSize
}

// Curves unpacks the staged curves in the order they were stored.
func (st *Staging) Curves() []Curve {
	n := st.CurveCount()
	curves := sized[Curve](n)
	segs := vpack.NewReader(st.segments)
	pts := vpack.NewReader(st.curvePoints)
	for i := range curves {
		vpack.UInt16(&curves[i].Segment, segs)
		packBezier(&curves[i].Points, pts)
	}
	return curves
}

// StemPoints unpacks the staged stem control points in stem order.
func (st *Staging) StemPoints() []Bezier {
	var points []Bezier
	// staged bytes always hold whole beziers, so this cannot fail
	_ = vpack.FromBytesInto(st.stemPoints, &points, func(list *[]Bezier, buf *vpack.Buffer) {
		vpack.Fixed(list, st.StemCount(), packBezier, buf)
	})
	return points
}

// StemBytes returns a copy of the staged stem points exactly as they will be
// written.
func (st *Staging) StemBytes() []byte {
	return append([]byte(nil), st.stemPoints...)
}

// Awarded returns the awarded collectable indices in award order.
func (st *Staging) Awarded() []uint16 {
	return append([]uint16(nil), st.awarded...)
}

func appendBezier(data []byte, b *Bezier) []byte {
	w := &vpack.Buffer{Data: data, Mode: vpack.Serialize}
	packBezier(b, w)
	return w.Data
}

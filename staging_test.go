package saplings

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStagingAddThenRemoveStem(t *testing.T) {
	var never, added Staging
	for i := 0; i < 3; i++ {
		never.StoreStem(line(float32(i), 0, 1))
		added.StoreStem(line(float32(i), 0, 1))
	}

	added.StoreStem(line(100, 100, 1))
	require.Equal(t, 4, added.StemCount())
	require.NoError(t, added.RemoveStem(3))

	assert.Equal(t, never.StemBytes(), added.StemBytes())
	assert.Equal(t, never.StemPoints(), added.StemPoints())
}

func TestStagingRemoveStemKeepsOrder(t *testing.T) {
	var st Staging
	a, b, c := line(1, 1, 1), line(2, 2, 1), line(3, 3, 1)
	st.StoreStem(a)
	st.StoreStem(b)
	st.StoreStem(c)

	require.NoError(t, st.RemoveStem(1))
	assert.Equal(t, []Bezier{a, c}, st.StemPoints())

	require.NoError(t, st.RemoveStem(0))
	assert.Equal(t, []Bezier{c}, st.StemPoints())

	require.NoError(t, st.RemoveStem(0))
	assert.Zero(t, st.StemCount())
	assert.Empty(t, st.StemBytes())
}

func TestStagingRemoveStemOutOfRange(t *testing.T) {
	var st Staging
	st.StoreStem(line(0, 0, 1))
	assert.ErrorIs(t, st.RemoveStem(1), ErrStemIndex)
	assert.ErrorIs(t, st.RemoveStem(-1), ErrStemIndex)
	assert.Equal(t, 1, st.StemCount())
}

func TestStagingCurves(t *testing.T) {
	var st Staging
	st.StoreCurve(2, line(0, 0, 1))
	st.StoreCurve(9, line(5, 5, 0.5))

	assert.Equal(t, 2, st.CurveCount())
	assert.Equal(t, []Curve{
		{Segment: 2, Points: line(0, 0, 1)},
		{Segment: 9, Points: line(5, 5, 0.5)},
	}, st.Curves())

	st.Reset()
	assert.Zero(t, st.CurveCount())
	assert.Nil(t, st.Curves())
}

func TestStagingCollectables(t *testing.T) {
	var st Staging
	st.StoreCollectable(4)
	st.StoreCollectable(1)
	st.StoreCollectable(4)
	assert.Equal(t, []uint16{4, 1}, st.Awarded())

	st.StoreStem(line(0, 0, 1))
	st.Reset()
	assert.Equal(t, []uint16{4, 1}, st.Awarded(), "reset keeps awards")
}

func TestStagingRestore(t *testing.T) {
	snap := sampleSnapshot()
	var st Staging
	st.StoreCurve(1, line(9, 9, 9))
	st.StoreCollectable(2)

	st.Restore(snap)
	assert.Equal(t, snap.Curves, st.Curves())
	require.Equal(t, len(snap.Stems), st.StemCount())
	for i, p := range st.StemPoints() {
		assert.Equal(t, snap.Stems[i].Points, p)
	}
	assert.Equal(t, []uint16{4, 0, 3}, st.Awarded())
}

package saplings

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCloud float32

func (c fakeCloud) Size() float32 { return float32(c) }

type fakePlant struct {
	height, saturation, death float32
	next                      int32
	stems                     []StemState
}

func (p *fakePlant) Height() float32             { return p.height }
func (p *fakePlant) Saturation() float32         { return p.saturation }
func (p *fakePlant) NextStemHeight() int32       { return p.next }
func (p *fakePlant) TimeUntilStemDeath() float32 { return p.death }
func (p *fakePlant) Stems() []StemState          { return p.stems }

type fakeInventory struct {
	powerups     []Powerup
	collectables []Collectable
}

func (inv *fakeInventory) Powerups() []Powerup { return inv.powerups }

func (inv *fakeInventory) Collectable(index uint16) (Collectable, bool) {
	if int(index) >= len(inv.collectables) {
		return Collectable{}, false
	}
	return inv.collectables[index], true
}

func (inv *fakeInventory) Layout() RewardLayout {
	var l RewardLayout
	for _, p := range inv.powerups {
		l.PowerupPieces = append(l.PowerupPieces, len(p.Pieces))
	}
	for _, c := range inv.collectables {
		l.CollectablePieces = append(l.CollectablePieces, len(c.Pieces))
	}
	return l
}

func newFakes() (fakeCloud, *fakePlant, *fakeInventory, *Staging) {
	plant := &fakePlant{
		height: 20, saturation: 0.5, death: 9, next: 6,
		stems: []StemState{
			{Line: LineCurrent, Height: 3, Length: 1.5, FlowerGrowth: 0.25},
			{Line: LineLower, Height: 1, Length: 2, FlowerGrowth: -4},
		},
	}
	inv := &fakeInventory{
		powerups: []Powerup{
			{TimeRemaining: 5, Quantity: 1, Pieces: []uint16{1, 2}},
			{Pieces: []uint16{0, 0, 0}},
		},
		collectables: []Collectable{
			{Quantity: 0, Pieces: []uint16{0}},
			{Quantity: 2, Pieces: []uint16{1, 3}},
			{Quantity: 0, Pieces: []uint16{0, 0, 0}},
		},
	}
	st := &Staging{}
	st.StoreCurve(0, line(0, 0, 1))
	st.StoreStem(line(1, 0, 1))
	st.StoreStem(line(2, 0, 1))
	st.StoreCollectable(1)
	return fakeCloud(1.25), plant, inv, st
}

func TestCaptureRoundTrip(t *testing.T) {
	cloud, plant, inv, st := newFakes()

	snap, err := Capture(cloud, plant, inv, st)
	require.NoError(t, err)

	assert.Equal(t, float32(1.25), snap.CloudSize)
	assert.Equal(t, int32(6), snap.NextStemHeight)
	require.Len(t, snap.Stems, 2)
	assert.Equal(t, line(2, 0, 1), snap.Stems[1].Points)
	assert.Equal(t, LineLower, snap.Stems[1].Line)
	require.Len(t, snap.Collectables, 1)
	assert.Equal(t, uint16(1), snap.Collectables[0].Index)

	data, err := DefaultCodec.Encode(snap)
	require.NoError(t, err)
	d, err := DefaultCodec.Decode(data, inv.Layout())
	require.NoError(t, err)
	assert.Equal(t, snap, d.Snapshot)
}

func TestCaptureCopiesPieces(t *testing.T) {
	cloud, plant, inv, st := newFakes()
	snap, err := Capture(cloud, plant, inv, st)
	require.NoError(t, err)

	snap.Powerups[0].Pieces[0] = 99
	snap.Collectables[0].Pieces[0] = 99
	assert.Equal(t, uint16(1), inv.powerups[0].Pieces[0])
	assert.Equal(t, uint16(1), inv.collectables[1].Pieces[0])
}

func TestCaptureStemMismatch(t *testing.T) {
	cloud, plant, inv, st := newFakes()
	require.NoError(t, st.RemoveStem(0))

	_, err := Capture(cloud, plant, inv, st)
	assert.ErrorIs(t, err, ErrStemMismatch)
}

func TestCaptureUnknownCollectable(t *testing.T) {
	cloud, plant, inv, st := newFakes()
	st.StoreCollectable(7)

	_, err := Capture(cloud, plant, inv, st)
	assert.ErrorIs(t, err, ErrUnknownCollectable)
}

package saplings

import "fmt"

// Cloud is the rain cloud that waters the plant.
type Cloud interface {
	Size() float32
}

// StemState is what the growth simulation knows about one stem, besides its
// geometry (which lives in Staging).
type StemState struct {
	Line         LineFlag
	Height       uint16
	Length       float32
	FlowerGrowth float32
}

// Plant is the growth-curve producer.
type Plant interface {
	Height() float32
	Saturation() float32
	NextStemHeight() int32
	TimeUntilStemDeath() float32
	// Stems lists the living stems in the same order they were staged.
	Stems() []StemState
}

// Inventory is the reward manager.
type Inventory interface {
	// Powerups returns every slot of the powerup table.
	Powerups() []Powerup
	// Collectable returns the collectable at index, false if the table has no
	// such entry.
	Collectable(index uint16) (Collectable, bool)
	Layout() RewardLayout
}

// Capture builds a Snapshot from the live collaborators and the staged
// geometry. It only reads from them.
func Capture(cloud Cloud, plant Plant, inv Inventory, st *Staging) (*Snapshot, error) {
	states := plant.Stems()
	points := st.StemPoints()
	if len(states) != len(points) {
		return nil, fmt.Errorf("%w: plant has %d stems, %d staged", ErrStemMismatch, len(states), len(points))
	}

	s := &Snapshot{
		Scalars: Scalars{
			CloudSize:       cloud.Size(),
			PlantHeight:     plant.Height(),
			PlantSaturation: plant.Saturation(),
			NextStemHeight:  plant.NextStemHeight(),
			TimeUntilDeath:  plant.TimeUntilStemDeath(),
		},
		Curves: st.Curves(),
	}

	s.Stems = sized[Stem](len(states))
	for i, state := range states {
		s.Stems[i] = Stem{
			Line:         state.Line,
			Height:       state.Height,
			Length:       state.Length,
			Points:       points[i],
			FlowerGrowth: state.FlowerGrowth,
		}
	}

	powerups := inv.Powerups()
	s.Powerups = sized[Powerup](len(powerups))
	for i, p := range powerups {
		p.Pieces = clonePieces(p.Pieces)
		s.Powerups[i] = p
	}

	for _, index := range st.Awarded() {
		c, ok := inv.Collectable(index)
		if !ok {
			return nil, fmt.Errorf("%w: awarded index %d", ErrUnknownCollectable, index)
		}
		c.Index = index
		c.Pieces = clonePieces(c.Pieces)
		s.Collectables = append(s.Collectables, c)
	}
	return s, nil
}

func clonePieces(p []uint16) []uint16 {
	if len(p) == 0 {
		return nil
	}
	return append([]uint16(nil), p...)
}

package saplings

import "fmt"

// FormatVersion is the version written at the head of every save file.
const FormatVersion uint16 = 1

// Point is one 2D control point.
type Point struct {
	X float32 `yaml:"x"`
	Y float32 `yaml:"y"`
}

// Bezier holds the 4 control points of one cubic curve segment.
type Bezier [4]Point

// Scalars are the fixed-width values that carry no count.
type Scalars struct {
	CloudSize       float32 `yaml:"cloud_size"`
	PlantHeight     float32 `yaml:"plant_height"`
	PlantSaturation float32 `yaml:"plant_saturation"`
	NextStemHeight  int32   `yaml:"next_stem_height"`
	TimeUntilDeath  float32 `yaml:"time_until_death"`
}

// Curve is one segment of the plant's main curve line.
type Curve struct {
	Segment uint16 `yaml:"segment"`
	Points  Bezier `yaml:"points,flow"`
}

// LineFlag tells which curve line a stem grows from.
type LineFlag uint8

const (
	LineCurrent LineFlag = iota
	LinePrevious
	LineLower
)

func (f LineFlag) String() string {
	switch f {
	case LineCurrent:
		return "current"
	case LinePrevious:
		return "previous"
	case LineLower:
		return "lower"
	}
	return fmt.Sprintf("line(%d)", uint8(f))
}

// Stem is one plant stem with its flower.
//
// FlowerGrowth is positive for a flower's size, negative for a growth counter
// and zero for a bud.
type Stem struct {
	Line         LineFlag `yaml:"line"`
	Height       uint16   `yaml:"height"`
	Length       float32  `yaml:"length"`
	Points       Bezier   `yaml:"points,flow"`
	FlowerGrowth float32  `yaml:"flower_growth"`
}

// Powerup is one slot of the powerup table. Every slot is saved.
type Powerup struct {
	TimeRemaining float32  `yaml:"time_remaining"`
	Quantity      uint16   `yaml:"quantity"`
	Pieces        []uint16 `yaml:"pieces,flow"`
}

// Collectable is one awarded entry of the collectable table. Only awarded
// collectables are saved, each with its table index.
type Collectable struct {
	Index    uint16   `yaml:"index"`
	Quantity uint16   `yaml:"quantity"`
	Pieces   []uint16 `yaml:"pieces,flow"`
}

// Snapshot is the full state eligible for persistence at a point in time.
type Snapshot struct {
	Scalars      `yaml:",inline"`
	Curves       []Curve       `yaml:"curves"`
	Stems        []Stem        `yaml:"stems"`
	Powerups     []Powerup     `yaml:"powerups"`
	Collectables []Collectable `yaml:"collectables"`
}

// RewardLayout is the shape of the live reward tables. The save file does not
// store it, so the decoder has to be told.
type RewardLayout struct {
	// PowerupPieces has one entry per powerup slot: its number of pieces.
	PowerupPieces []int `yaml:"powerup_pieces"`
	// CollectablePieces is indexed by collectable index: its number of pieces.
	CollectablePieces []int `yaml:"collectable_pieces"`
}

// Record widths, in bytes.
const (
	headerSize      = 2
	countSize       = 2
	bezierSize      = 4 * 2 * 4
	curveSize       = 2 + bezierSize
	stemRecordSize  = 1 + 2 + 4
	stemSize        = stemRecordSize + bezierSize + 4
	powerupHeadSize = 4 + 2
	collectHeadSize = 2 + 2
	pieceSize       = 2
)

// EncodedSize returns the exact number of bytes Encode produces for s.
func (s *Snapshot) EncodedSize() int {
	n := headerSize
	n += 4 + 4 + 4 // cloud size, height, saturation
	n += countSize + len(s.Curves)*curveSize
	n += 4 // next stem height
	n += countSize + len(s.Stems)*stemSize
	n += 4 // time until death
	for _, p := range s.Powerups {
		n += powerupHeadSize + len(p.Pieces)*pieceSize
	}
	n += countSize
	for _, c := range s.Collectables {
		n += collectHeadSize + len(c.Pieces)*pieceSize
	}
	return n
}

/*
Package saplings saves and loads the state of a growing plant: its scalar
growth values, the curve segments of its main line, its stems and flowers, the
cloud watering it, and the reward inventory.

Everything goes into one flat binary file with a fixed field order. There is no
self-describing framing and no checksum; each field starts where the previous
one ended. Encoding and decoding both walk the same pack functions over a
single vpack.Buffer cursor, so the two directions cannot disagree about an
offset.

# File layout

All values are little-endian. N is the curve count, M the stem count, C the
collectable count.

	formatVersion      u16
	cloudSize          f32
	plantHeight        f32
	plantSaturation    f32
	curveCount N       u16
	segmentId[N]       u16 each
	curvePoint[N]      4 x (f32 x, f32 y) each
	nextStemHeight     i32
	stemCount M        u16
	stemRecord[M]      u8 lineFlag, u16 height, f32 length
	stemCurvePoint[M]  4 x (f32 x, f32 y) each
	flowerGrowth[M]    f32 each
	timeUntilDeath     f32
	powerup[P]         f32 timeRemaining, u16 quantity, u16 piece quantities
	collectableCount C u16
	collectable[C]     u16 index, u16 quantity, u16 piece quantities

P, the size of the powerup table, is not stored, and neither are piece counts.
Decode takes them from a RewardLayout supplied by the live reward tables.
Powerups are written for every slot; collectables only once awarded.

# Versions

The version is checked but never acted upon. A file with another version is
decoded with the current layout and the difference is reported in
Decoded.Mismatch.

# Saving

Store writes the whole encoded buffer to a temporary file and renames it over
the save file, so a failed save leaves the previous file in place. A missing
save file on Load is a first run, not an error.

Example:

	st := &saplings.Staging{}
	st.StoreCurve(0, curve)
	st.StoreStem(stemCurve)

	snap, err := saplings.Capture(cloud, plant, inventory, st)
	if err != nil {
	    return err
	}
	store := saplings.NewStore(filepath.Join(dir, saplings.DefaultFileName))
	if err := store.Save(ctx, snap); err != nil {
	    return err
	}

	loaded, err := store.Load(inventory.Layout())
	if err != nil {
	    return err
	}
	if loaded != nil {
	    st.Restore(loaded.Snapshot)
	    // push loaded.Snapshot back into the plant, cloud and inventory
	}
*/
package saplings

package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"go.hasen.dev/saplings"
	"go.hasen.dev/saplings/internal/backup"
)

var testLayout = saplings.RewardLayout{
	PowerupPieces:     []int{2},
	CollectablePieces: []int{1, 3},
}

func testSnapshot() *saplings.Snapshot {
	return &saplings.Snapshot{
		Scalars: saplings.Scalars{CloudSize: 1, PlantHeight: 8, TimeUntilDeath: 4},
		Curves:  []saplings.Curve{{Segment: 2, Points: saplings.Bezier{{0, 0}, {1, 1}, {2, 1}, {3, 0}}}},
		Stems: []saplings.Stem{
			{Line: saplings.LinePrevious, Height: 2, Length: 1.5, FlowerGrowth: -1},
		},
		Powerups:     []saplings.Powerup{{TimeRemaining: 10, Quantity: 1, Pieces: []uint16{1, 0}}},
		Collectables: []saplings.Collectable{{Index: 1, Quantity: 2, Pieces: []uint16{0, 1, 2}}},
	}
}

func TestInspect(t *testing.T) {
	data, err := saplings.DefaultCodec.Encode(testSnapshot())
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, inspect(&out, data, saplings.DefaultCodec, testLayout, false))

	var report inspectReport
	require.NoError(t, yaml.Unmarshal(out.Bytes(), &report))
	assert.Equal(t, saplings.FormatVersion, report.Version)
	assert.Equal(t, len(data), report.Bytes)
	assert.Equal(t, 1, report.Counts["stems"])
	assert.Equal(t, testSnapshot(), report.Snapshot)
}

func TestInspectSummaryAndMismatch(t *testing.T) {
	data, err := saplings.Codec{Version: 7}.Encode(testSnapshot())
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, inspect(&out, data, saplings.DefaultCodec, testLayout, true))
	assert.Contains(t, out.String(), "version_mismatch:")
	assert.NotContains(t, out.String(), "snapshot:")
}

func TestVerify(t *testing.T) {
	data, err := saplings.DefaultCodec.Encode(testSnapshot())
	require.NoError(t, err)
	assert.NoError(t, verify(data, saplings.DefaultCodec, testLayout))

	assert.ErrorIs(t, verify(data[:len(data)-1], saplings.DefaultCodec, testLayout), saplings.ErrTruncatedData)
	assert.Error(t, verify(append(data, 0), saplings.DefaultCodec, testLayout))
	assert.ErrorIs(t, verify(data, saplings.Codec{Version: 2}, testLayout), saplings.ErrVersionMismatch)
}

func TestRestore(t *testing.T) {
	dir := t.TempDir()
	savePath := filepath.Join(dir, saplings.DefaultFileName)
	rot := backup.New(filepath.Join(dir, "backups"), 0)
	store := saplings.NewStore(savePath, saplings.WithArchiver(rot))
	ctx := context.Background()

	old := testSnapshot()
	require.NoError(t, store.Save(ctx, old))
	newer := testSnapshot()
	newer.PlantHeight = 99
	require.NoError(t, store.Save(ctx, newer))

	entries, err := rot.List(saplings.DefaultFileName)
	require.NoError(t, err)
	require.Len(t, entries, 1, "only the first save existed when the second ran")

	require.NoError(t, restore(ctx, store, saplings.DefaultCodec, entries[0].Path, testLayout))

	d, err := store.Load(testLayout)
	require.NoError(t, err)
	assert.Equal(t, old, d.Snapshot)

	entries, err = rot.List(saplings.DefaultFileName)
	require.NoError(t, err)
	assert.Len(t, entries, 2, "restore archives the file it replaces")
}

func TestRestoreRejectsCorruptBackup(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.zst")
	require.NoError(t, os.WriteFile(path, []byte("nope"), 0o644))
	store := saplings.NewStore(filepath.Join(dir, saplings.DefaultFileName))
	assert.Error(t, restore(context.Background(), store, saplings.DefaultCodec, path, testLayout))
}

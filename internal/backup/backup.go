// Package backup keeps zstd-compressed copies of the save file as it was
// before each overwrite.
package backup

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/klauspost/compress/zstd"
)

const (
	ext        = ".zst"
	timeLayout = "20060102T150405.000000000"
)

// Rotator archives save files into Dir and keeps the newest Keep of them.
type Rotator struct {
	Dir  string
	Keep int

	now func() time.Time
}

// Entry is one archived save.
type Entry struct {
	Name    string
	Path    string
	SavedAt time.Time
	Size    int64 // compressed
}

func New(dir string, keep int) *Rotator {
	return &Rotator{Dir: dir, Keep: keep, now: time.Now}
}

// Archive compresses the file at path into the backup directory, then drops
// the oldest backups beyond Keep. A missing file has nothing to archive.
func (r *Rotator) Archive(path string) error {
	in, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}
	defer in.Close()

	if err := os.MkdirAll(r.Dir, 0o755); err != nil {
		return err
	}
	name := filepath.Base(path) + "-" + r.now().UTC().Format(timeLayout) + ext
	dst := filepath.Join(r.Dir, name)
	if err := compressTo(dst, in); err != nil {
		_ = os.Remove(dst)
		return fmt.Errorf("backup %s: %w", path, err)
	}
	return r.prune(filepath.Base(path))
}

// List returns the backups of the save file named base, newest first.
func (r *Rotator) List(base string) ([]Entry, error) {
	dirents, err := os.ReadDir(r.Dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	prefix := base + "-"
	var out []Entry
	for _, de := range dirents {
		name := de.Name()
		if de.IsDir() || !strings.HasPrefix(name, prefix) || !strings.HasSuffix(name, ext) {
			continue
		}
		stamp := strings.TrimSuffix(strings.TrimPrefix(name, prefix), ext)
		at, err := time.Parse(timeLayout, stamp)
		if err != nil {
			continue
		}
		e := Entry{Name: name, Path: filepath.Join(r.Dir, name), SavedAt: at}
		if fi, err := de.Info(); err == nil {
			e.Size = fi.Size()
		}
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SavedAt.After(out[j].SavedAt) })
	return out, nil
}

// Restore returns the decompressed contents of a backup.
func Restore(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return nil, err
	}
	defer dec.Close()

	b, err := io.ReadAll(bufio.NewReader(dec))
	if err != nil {
		return nil, fmt.Errorf("zstd decode: %w", err)
	}
	return b, nil
}

func (r *Rotator) prune(base string) error {
	if r.Keep <= 0 {
		return nil
	}
	entries, err := r.List(base)
	if err != nil {
		return err
	}
	for _, e := range entries[min(r.Keep, len(entries)):] {
		if err := os.Remove(e.Path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}
	return nil
}

func compressTo(dst string, src io.Reader) error {
	f, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return err
	}
	if _, err := io.Copy(enc, src); err != nil {
		_ = enc.Close()
		return err
	}
	if err := enc.Close(); err != nil {
		return err
	}
	return f.Close()
}

package saplings

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// DefaultFileName is the save file name used inside a data directory.
const DefaultFileName = "saplings.data"

// Archiver keeps a copy of the save file about to be overwritten.
type Archiver interface {
	Archive(path string) error
}

// Journal records every successful save.
type Journal interface {
	Record(ctx context.Context, info SaveInfo) error
}

// SaveInfo describes one successful save.
type SaveInfo struct {
	Path         string
	SavedAt      time.Time
	Version      uint16
	Bytes        int
	Curves       int
	Stems        int
	Powerups     int
	Collectables int
}

// Store saves snapshots to, and loads them from, a single file. It allows one
// save or load at a time.
type Store struct {
	path     string
	codec    Codec
	log      Logger
	archiver Archiver
	journal  Journal
	now      func() time.Time

	mu sync.Mutex
}

type Option func(*Store)

func WithCodec(c Codec) Option {
	return func(s *Store) { s.codec = c }
}

func WithLogger(l Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.log = l
		}
	}
}

func WithArchiver(a Archiver) Option {
	return func(s *Store) { s.archiver = a }
}

func WithJournal(j Journal) Option {
	return func(s *Store) { s.journal = j }
}

func NewStore(path string, opts ...Option) *Store {
	s := &Store{
		path:  path,
		codec: DefaultCodec,
		log:   noopLogger{},
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) Path() string {
	return s.path
}

// Save encodes snap and replaces the save file with it. The file is either
// fully replaced or left as it was.
func (s *Store) Save(ctx context.Context, snap *Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.codec.Encode(snap)
	if err != nil {
		return err
	}

	if s.archiver != nil {
		if err := s.archiver.Archive(s.path); err != nil {
			s.log.Warn("saplings: archive previous save failed", "path", s.path, "err", err)
		}
	}

	if err := writeFileAtomic(s.path, data); err != nil {
		s.log.Error("saplings: save failed", "path", s.path, "err", err)
		return fmt.Errorf("%w: %s: %w", ErrWriteFailure, s.path, err)
	}
	s.log.Debug("saplings: saved", "path", s.path, "bytes", len(data),
		"curves", len(snap.Curves), "stems", len(snap.Stems), "collectables", len(snap.Collectables))

	if s.journal != nil {
		info := SaveInfo{
			Path:         s.path,
			SavedAt:      s.now(),
			Version:      s.codec.Version,
			Bytes:        len(data),
			Curves:       len(snap.Curves),
			Stems:        len(snap.Stems),
			Powerups:     len(snap.Powerups),
			Collectables: len(snap.Collectables),
		}
		if err := s.journal.Record(ctx, info); err != nil {
			s.log.Warn("saplings: journal save failed", "path", s.path, "err", err)
		}
	}
	return nil
}

// Load reads and decodes the save file. A missing file is a first run: Load
// returns nil and no error, and the caller keeps its default state.
func (s *Store) Load(layout RewardLayout) (*Decoded, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.log.Info("saplings: no save file found", "path", s.path)
			return nil, nil
		}
		return nil, fmt.Errorf("saplings: read save: %w", err)
	}
	s.log.Debug("saplings: loading", "path", s.path, "bytes", len(data))

	d, err := s.codec.Decode(data, layout)
	if err != nil {
		s.log.Error("saplings: load failed", "path", s.path, "err", err)
		return nil, err
	}
	if d.Mismatch != nil {
		s.log.Warn("saplings: file version has changed", "path", s.path,
			"stored", d.Mismatch.Stored, "current", d.Mismatch.Current)
	}
	if d.Trailing > 0 {
		s.log.Warn("saplings: unread bytes after save data", "path", s.path, "bytes", d.Trailing)
	}
	return d, nil
}

func writeFileAtomic(path string, b []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	f, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmp := f.Name()
	if _, err := f.Write(b); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}

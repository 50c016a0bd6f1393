package store

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/dgraph-io/badger/v4"

	"github.com/hailam/chesscore/internal/board"
)

var (
	// ErrNotFound is returned when a key has no stored value.
	ErrNotFound = errors.New("not found")
	// ErrCorrupt is returned when a stored magic set fails its checksum.
	ErrCorrupt = errors.New("checksum mismatch")
)

// MagicSet is a stored set of magic entries for one slider class.
type MagicSet struct {
	Slider   string          `json:"slider"`
	Entries  [64]board.Magic `json:"entries"`
	Checksum uint64          `json:"checksum"`
	SavedAt  time.Time       `json:"saved_at"`
}

// PerftRecord is a stored perft result.
type PerftRecord struct {
	FEN        string            `json:"fen"`
	Depth      int               `json:"depth"`
	Nodes      uint64            `json:"nodes"`
	Divide     map[string]uint64 `json:"divide,omitempty"`
	Elapsed    time.Duration     `json:"elapsed"`
	RecordedAt time.Time         `json:"recorded_at"`
}

// Store wraps BadgerDB for persistent storage
type Store struct {
	db *badger.DB
}

// Open opens (or creates) a store in dir.
func Open(dir string) (*Store, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil // Disable logging

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open store %s: %w", dir, err)
	}

	return &Store{db: db}, nil
}

// OpenDefault opens the store in the platform data directory.
func OpenDefault() (*Store, error) {
	dbDir, err := GetDatabaseDir()
	if err != nil {
		return nil, err
	}
	return Open(dbDir)
}

// OpenDir opens the store in dir, or in the per-user database directory
// when dir is DefaultDir.
func OpenDir(dir string) (*Store, error) {
	if dir == DefaultDir {
		return OpenDefault()
	}
	return Open(dir)
}

// Close closes the database
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func magicKey(slider board.Slider) []byte {
	return []byte("magics/" + slider.String())
}

func perftPrefix(fen string) []byte {
	return fmt.Appendf(nil, "perft/%016x/", xxhash.Sum64String(fen))
}

func perftKey(fen string, depth int) []byte {
	return fmt.Appendf(perftPrefix(fen), "%02d", depth)
}

// magicChecksum digests every field of every entry.
func magicChecksum(entries [64]board.Magic) uint64 {
	d := xxhash.New()
	buf := make([]byte, 0, 21)
	for _, m := range entries {
		buf = buf[:0]
		buf = binary.LittleEndian.AppendUint64(buf, uint64(m.Mask))
		buf = binary.LittleEndian.AppendUint64(buf, m.Magic)
		buf = append(buf, m.Shift)
		buf = binary.LittleEndian.AppendUint32(buf, m.Offset)
		d.Write(buf)
	}
	return d.Sum64()
}

func (s *Store) put(key []byte, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, data)
	})
}

func (s *Store) get(key []byte, v any) error {
	return s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("%s: %w", key, ErrNotFound)
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, v)
		})
	})
}

// SaveMagics stores the entries of one slider class.
func (s *Store) SaveMagics(slider board.Slider, entries [64]board.Magic) error {
	return s.put(magicKey(slider), MagicSet{
		Slider:   slider.String(),
		Entries:  entries,
		Checksum: magicChecksum(entries),
		SavedAt:  time.Now(),
	})
}

// LoadMagics loads the entries of one slider class.
func (s *Store) LoadMagics(slider board.Slider) ([64]board.Magic, error) {
	var set MagicSet
	if err := s.get(magicKey(slider), &set); err != nil {
		return [64]board.Magic{}, err
	}
	if magicChecksum(set.Entries) != set.Checksum {
		return [64]board.Magic{}, fmt.Errorf("%s magics: %w", slider, ErrCorrupt)
	}
	return set.Entries, nil
}

// SavePerft stores a perft result, replacing any earlier one for the same
// position and depth.
func (s *Store) SavePerft(rec PerftRecord) error {
	if rec.RecordedAt.IsZero() {
		rec.RecordedAt = time.Now()
	}
	return s.put(perftKey(rec.FEN, rec.Depth), rec)
}

// LoadPerft loads the perft result for fen at depth.
func (s *Store) LoadPerft(fen string, depth int) (PerftRecord, error) {
	var rec PerftRecord
	err := s.get(perftKey(fen, depth), &rec)
	return rec, err
}

// ListPerft returns every stored result for fen, shallowest first.
func (s *Store) ListPerft(fen string) ([]PerftRecord, error) {
	var records []PerftRecord
	prefix := perftPrefix(fen)

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var rec PerftRecord
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &rec)
			})
			if err != nil {
				return err
			}
			// Skip other positions sharing the digest.
			if rec.FEN == fen {
				records = append(records, rec)
			}
		}
		return nil
	})

	return records, err
}

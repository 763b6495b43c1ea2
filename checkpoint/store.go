// Package checkpoint - BadgerDB store of partial lifts.
//
// Records are JSON values under "lift/<run>/<label>" keys; Best scans one
// label across runs.
package checkpoint

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"

	"github.com/katalvlaran/armlift/arm"
)

// Sentinel errors for checkpoint operations.
var (
	// ErrNotFound indicates a missing record.
	ErrNotFound = errors.New("checkpoint: record not found")
	// ErrNoPath indicates a Config without a path outside in-memory mode.
	ErrNoPath = errors.New("checkpoint: path is required for a persistent store")
)

const keyPrefix = "lift/"

// Config configures a Store.
type Config struct {
	// Path is the database directory, ignored when InMemory is set.
	Path     string
	InMemory bool
	// SyncWrites makes every Save durable before returning.
	SyncWrites bool
	// Logger receives BadgerDB messages; discarded when nil.
	Logger *slog.Logger
}

// Record is one saved partial lift.
type Record struct {
	RunID    uuid.UUID `json:"run_id"`
	Label    string    `json:"label"`
	Instance int       `json:"instance"`
	TourLen  int       `json:"tour_len"`
	Frontier int       `json:"frontier"`
	CumLoss  float64   `json:"cum_loss"`
	Solved   bool      `json:"solved"`
	Path     []uint64  `json:"path"`
	SavedAt  time.Time `json:"saved_at"`
}

// NewRecord packs path into a record.
func NewRecord(run uuid.UUID, label string, tourLen int, path []arm.Config, cumLoss float64) Record {
	raw := make([]uint64, len(path))
	for i, c := range path {
		raw[i] = uint64(c)
	}
	return Record{
		RunID:    run,
		Label:    label,
		TourLen:  tourLen,
		Frontier: len(path) - 1,
		CumLoss:  cumLoss,
		Solved:   len(path) == tourLen,
		Path:     raw,
	}
}

// Configs unpacks the path.
func (r Record) Configs() []arm.Config {
	out := make([]arm.Config, len(r.Path))
	for i, v := range r.Path {
		out[i] = arm.Config(v)
	}
	return out
}

// Better reports whether r is a better partial lift than o: further
// frontier, then smaller loss.
func (r Record) Better(o Record) bool {
	if r.Frontier != o.Frontier {
		return r.Frontier > o.Frontier
	}
	return r.CumLoss < o.CumLoss
}

// Store is a checkpoint database. It is safe for concurrent use.
type Store struct {
	db *badger.DB
}

// Open opens (creating if needed) the store described by cfg.
func Open(cfg Config) (*Store, error) {
	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if cfg.Path == "" {
			return nil, ErrNoPath
		}
		if err := os.MkdirAll(cfg.Path, 0o750); err != nil {
			return nil, fmt.Errorf("checkpoint: create %s: %w", cfg.Path, err)
		}
		opts = badger.DefaultOptions(cfg.Path)
	}
	opts = opts.WithSyncWrites(cfg.SyncWrites).WithNumVersionsToKeep(1)
	if cfg.Logger != nil {
		opts = opts.WithLogger(&badgerLogger{log: cfg.Logger})
	} else {
		opts = opts.WithLogger(nil)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("checkpoint: open: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the database.
func (s *Store) Close() error { return s.db.Close() }

func key(run uuid.UUID, label string) []byte {
	return []byte(keyPrefix + run.String() + "/" + label)
}

// Save stores r under (r.RunID, r.Label), replacing any previous record.
// SavedAt is set to the current time when zero.
func (s *Store) Save(r Record) error {
	if r.SavedAt.IsZero() {
		r.SavedAt = time.Now().UTC()
	}
	val, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("checkpoint: encode: %w", err)
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key(r.RunID, r.Label), val)
	})
}

// Load returns the record of (run, label).
func (s *Store) Load(run uuid.UUID, label string) (Record, error) {
	var r Record
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key(run, label))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("%w: %s/%s", ErrNotFound, run, label)
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &r)
		})
	})
	return r, err
}

// List returns every record, optionally restricted to one label ("" for all).
func (s *Store) List(label string) ([]Record, error) {
	var out []Record
	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte(keyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			if label != "" && !strings.HasSuffix(string(item.Key()), "/"+label) {
				continue
			}
			var r Record
			if err := item.Value(func(val []byte) error {
				return json.Unmarshal(val, &r)
			}); err != nil {
				return fmt.Errorf("checkpoint: decode %s: %w", item.Key(), err)
			}
			if label == "" || r.Label == label {
				out = append(out, r)
			}
		}
		return nil
	})
	return out, err
}

// Best returns the best record for label across runs.
func (s *Store) Best(label string) (Record, error) {
	all, err := s.List(label)
	if err != nil {
		return Record{}, err
	}
	if len(all) == 0 {
		return Record{}, fmt.Errorf("%w: label %q", ErrNotFound, label)
	}
	best := all[0]
	for _, r := range all[1:] {
		if r.Better(best) {
			best = r
		}
	}
	return best, nil
}

// Delete removes the record of (run, label); deleting a missing record is not an error.
func (s *Store) Delete(run uuid.UUID, label string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(key(run, label))
	})
}

// badgerLogger adapts slog to badger.Logger.
type badgerLogger struct {
	log *slog.Logger
}

func (l *badgerLogger) Errorf(format string, args ...any) {
	l.log.Error(strings.TrimSpace(fmt.Sprintf(format, args...)))
}

func (l *badgerLogger) Warningf(format string, args ...any) {
	l.log.Warn(strings.TrimSpace(fmt.Sprintf(format, args...)))
}

func (l *badgerLogger) Infof(format string, args ...any) {
	l.log.Info(strings.TrimSpace(fmt.Sprintf(format, args...)))
}

func (l *badgerLogger) Debugf(format string, args ...any) {
	l.log.Debug(strings.TrimSpace(fmt.Sprintf(format, args...)))
}

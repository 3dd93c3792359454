// Package history records finished searches in a badger database. Records
// hold public metadata only; secrets, mnemonics and passwords are never stored.
package history

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"

	"github.com/Amr-9/crat/pkg/generator"
)

const recordPrefix = "search:"

// ErrNotFound is returned by Get for an unknown id.
var ErrNotFound = errors.New("history record not found")

// Record describes one finished search.
type Record struct {
	ID            string        `json:"id"`
	Chain         string        `json:"chain"`
	Address       string        `json:"address"`
	Pattern       string        `json:"pattern"`
	Position      string        `json:"position"`
	CaseSensitive bool          `json:"case_sensitive"`
	Attempts      uint64        `json:"attempts"`
	Elapsed       time.Duration `json:"elapsed"`
	Encrypted     bool          `json:"encrypted"`
	File          string        `json:"file"`
	CreatedAt     time.Time     `json:"created_at"`
}

// NewRecord builds a record for a completed search.
func NewRecord(req generator.SearchRequest, res generator.Result, file string, encrypted bool) Record {
	return Record{
		ID:            uuid.NewString(),
		Chain:         res.Chain.String(),
		Address:       res.Address,
		Pattern:       req.Pattern,
		Position:      req.Position.String(),
		CaseSensitive: req.CaseSensitive,
		Attempts:      res.TotalAttempts,
		Elapsed:       res.Elapsed,
		Encrypted:     encrypted,
		File:          file,
		CreatedAt:     time.Now().UTC(),
	}
}

// Store is a badger backed history.
type Store struct {
	db *badger.DB
}

// Open opens or creates the store at path. An empty path keeps the
// history in memory.
func Open(path string) (*Store, error) {
	opts := badger.DefaultOptions(path)
	if path == "" {
		opts = opts.WithInMemory(true)
	}
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open history: %w", err)
	}
	if path != "" {
		hideFile(path)
	}
	return &Store{db: db}, nil
}

// Close releases the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// key orders records by creation time; ties are broken by id.
func key(r Record) []byte {
	k := make([]byte, 0, len(recordPrefix)+8+len(r.ID))
	k = append(k, recordPrefix...)
	k = binary.BigEndian.AppendUint64(k, uint64(r.CreatedAt.UnixNano()))
	return append(k, r.ID...)
}

// Put stores a record. A missing ID or timestamp is filled in.
func (s *Store) Put(r Record) (Record, error) {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}
	value, err := json.Marshal(r)
	if err != nil {
		return Record{}, fmt.Errorf("encode record: %w", err)
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set(key(r), value); err != nil {
			return err
		}
		return txn.Set(idKey(r.ID), key(r))
	})
	if err != nil {
		return Record{}, fmt.Errorf("store record: %w", err)
	}
	return r, nil
}

func idKey(id string) []byte {
	return []byte("id:" + id)
}

// Get loads one record by id.
func (s *Store) Get(id string) (Record, error) {
	var r Record
	err := s.db.View(func(txn *badger.Txn) error {
		ref, err := txn.Get(idKey(id))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return ErrNotFound
			}
			return err
		}
		recordKey, err := ref.ValueCopy(nil)
		if err != nil {
			return err
		}
		item, err := txn.Get(recordKey)
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &r)
		})
	})
	if err != nil {
		return Record{}, err
	}
	return r, nil
}

// List returns up to limit records, newest first. A limit of 0 returns all.
func (s *Store) List(limit int) ([]Record, error) {
	var records []Record

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true
		opts.Prefix = []byte(recordPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		// Reverse iteration starts from the largest key with the prefix.
		seek := append([]byte(recordPrefix), 0xFF)
		for it.Seek(seek); it.ValidForPrefix(opts.Prefix); it.Next() {
			var r Record
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &r)
			})
			if err != nil {
				return fmt.Errorf("decode record: %w", err)
			}
			records = append(records, r)
			if limit > 0 && len(records) == limit {
				break
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

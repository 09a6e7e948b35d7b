// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package atomstore

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/natefinch/atomic"
	"github.com/tidwall/jsonc"

	"github.com/bureau-foundation/atomtracker/lib/atom"
)

var (
	// ErrNotFound is returned when an update names an unknown ID.
	ErrNotFound = errors.New("atom not found")

	// ErrInvalid is returned for records the store refuses to keep.
	ErrInvalid = errors.New("invalid atom")
)

// Options configures a Store.
type Options struct {
	// DataFile, when set, is loaded at open and rewritten atomically
	// after every mutation. Empty keeps the collection in memory only.
	DataFile string

	// SeedFile is a JSON-with-comments array of atoms loaded when
	// DataFile is unset or does not exist yet. Seed IDs are kept when
	// present and generated otherwise.
	SeedFile string

	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// Store is the reference atom collection. Records keep insertion
// order; the tracker client does its own sorting. Safe for concurrent
// use.
type Store struct {
	mutex    sync.Mutex
	records  []atom.Record
	dataFile string
	logger   *slog.Logger
}

// Open creates a Store, loading existing data or seed records.
func Open(options Options) (*Store, error) {
	logger := options.Logger
	if logger == nil {
		logger = slog.Default()
	}
	store := &Store{dataFile: options.DataFile, logger: logger}

	if options.DataFile != "" {
		records, err := readRecords(options.DataFile)
		switch {
		case err == nil:
			store.records = records
			logger.Info("loaded atoms", "path", options.DataFile, "count", len(records))
			return store, nil
		case !errors.Is(err, os.ErrNotExist):
			return nil, err
		}
	}

	if options.SeedFile != "" {
		records, err := readRecords(options.SeedFile)
		if err != nil {
			return nil, err
		}
		for index := range records {
			if records[index].ID == "" {
				records[index].ID = uuid.NewString()
			}
			if err := validate(records[index]); err != nil {
				return nil, fmt.Errorf("seed %s record %d: %w", options.SeedFile, index, err)
			}
		}
		if err := store.persist(records); err != nil {
			return nil, err
		}
		store.records = records
		logger.Info("seeded atoms", "path", options.SeedFile, "count", len(records))
	}

	return store, nil
}

// List returns every atom in insertion order.
func (store *Store) List() []atom.Record {
	store.mutex.Lock()
	defer store.mutex.Unlock()
	return slices.Clone(store.records)
}

// Len returns the number of atoms.
func (store *Store) Len() int {
	store.mutex.Lock()
	defer store.mutex.Unlock()
	return len(store.records)
}

// Create assigns an ID to record and stores it.
func (store *Store) Create(record atom.Record) (atom.Record, error) {
	if err := validate(record); err != nil {
		return atom.Record{}, err
	}
	record.ID = uuid.NewString()

	store.mutex.Lock()
	defer store.mutex.Unlock()

	updated := append(slices.Clone(store.records), record)
	if err := store.persist(updated); err != nil {
		return atom.Record{}, err
	}
	store.records = updated
	return record, nil
}

// Update replaces the atom with the given ID. The record's own ID
// field is ignored in favor of id.
func (store *Store) Update(id string, record atom.Record) (atom.Record, error) {
	if err := validate(record); err != nil {
		return atom.Record{}, err
	}
	record.ID = id

	store.mutex.Lock()
	defer store.mutex.Unlock()

	index := slices.IndexFunc(store.records, func(existing atom.Record) bool {
		return existing.ID == id
	})
	if index < 0 {
		return atom.Record{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	updated := slices.Clone(store.records)
	updated[index] = record
	if err := store.persist(updated); err != nil {
		return atom.Record{}, err
	}
	store.records = updated
	return record, nil
}

// persist writes records to the data file, if one is configured.
// Called with the mutex held, before the in-memory swap, so a failed
// write leaves memory and disk in agreement.
func (store *Store) persist(records []atom.Record) error {
	if store.dataFile == "" {
		return nil
	}
	if records == nil {
		records = []atom.Record{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding atoms: %w", err)
	}
	if err := atomic.WriteFile(store.dataFile, bytes.NewReader(append(data, '\n'))); err != nil {
		return fmt.Errorf("writing %s: %w", store.dataFile, err)
	}
	return nil
}

// readRecords loads a JSON (comments and trailing commas allowed)
// array of atoms.
func readRecords(path string) ([]atom.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var records []atom.Record
	if err := json.Unmarshal(jsonc.ToJSON(data), &records); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return records, nil
}

func validate(record atom.Record) error {
	if strings.TrimSpace(record.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalid)
	}
	if !record.Status.Valid() {
		return fmt.Errorf("%w: unknown status %q", ErrInvalid, record.Status)
	}
	return nil
}

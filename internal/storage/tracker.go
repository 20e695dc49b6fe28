package storage

import (
	"encoding/json"
	"fmt"

	"github.com/mitchellh/hashstructure/v2"

	"github.com/habitline/habitline/internal/backup"
	"github.com/habitline/habitline/internal/constants"
	"github.com/habitline/habitline/internal/logger"
	"github.com/habitline/habitline/internal/migration"
	"github.com/habitline/habitline/internal/models"
	"github.com/habitline/habitline/internal/streak"
)

// TrackerStore is the typed layer over the blob store. Loading runs the
// migration engine and persists the canonical result immediately, so the
// store is never left in a pre-migration state; a backup of the old blob is
// taken first. Saving fingerprints the state and skips writes when nothing
// changed.
type TrackerStore struct {
	kv           KV
	fingerprints map[string]uint64
}

func NewTrackerStore(kv KV) *TrackerStore {
	return &TrackerStore{
		kv:           kv,
		fingerprints: make(map[string]uint64),
	}
}

// Path exposes the backing file path for diagnostics.
func (s *TrackerStore) Path() string {
	return s.kv.Path()
}

func (s *TrackerStore) Close() error {
	return s.kv.Close()
}

// LoadHabits loads the flat habit store (tasks + logs), normalizing
// defensively and writing back if normalization changed anything.
func (s *TrackerStore) LoadHabits() (models.HabitState, error) {
	raw, found, err := s.kv.Get(constants.HabitStoreKey)
	if err != nil {
		return models.HabitState{}, err
	}

	var blob []byte
	if found {
		blob = []byte(raw)
	}
	state, changed := migration.DecodeHabitState(blob)
	if !changed {
		s.remember(constants.HabitStoreKey, state)
	}

	if changed && found {
		logger.Info("Normalized habit store on load")
		s.backupBefore()
		if err := s.SaveHabits(state); err != nil {
			return models.HabitState{}, fmt.Errorf("failed to persist normalized state: %w", err)
		}
	}
	return state, nil
}

// SaveHabits persists the habit state unless it is identical to what was
// last loaded or saved.
func (s *TrackerStore) SaveHabits(state models.HabitState) error {
	return s.save(constants.HabitStoreKey, state)
}

// LoadTrace loads the day-record store, migrating legacy schemas forward and
// applying the day-boundary rollover. Both conditions force an immediate
// write-back of the canonical shape; a rollover additionally recomputes the
// cached streaks, restoring the streak invariant for the new day.
func (s *TrackerStore) LoadTrace(today string) (models.TraceState, error) {
	raw, found, err := s.kv.Get(constants.TraceStoreKey)
	if err != nil {
		return models.TraceState{}, err
	}

	var blob []byte
	if found {
		blob = []byte(raw)
	}
	res := migration.DetectAndMigrate(blob)
	state := res.State

	rolled := migration.ResetDayStatuses(&state, today)
	if rolled {
		streak.RecalculateAll(&state, today)
	}

	if !res.Migrated && !rolled {
		s.remember(constants.TraceStoreKey, state)
	}

	if res.Migrated || rolled {
		if res.Migrated {
			logger.Info("Migrated trace store", "from", res.Detected.String())
		}
		if found {
			s.backupBefore()
		}
		if err := s.SaveTrace(state); err != nil {
			return models.TraceState{}, fmt.Errorf("failed to persist migrated state: %w", err)
		}
	}
	return state, nil
}

// SaveTrace persists the trace state unless it is unchanged.
func (s *TrackerStore) SaveTrace(state models.TraceState) error {
	return s.save(constants.TraceStoreKey, state)
}

func (s *TrackerStore) save(key string, state interface{}) error {
	hash, hashErr := hashstructure.Hash(state, hashstructure.FormatV2, nil)
	if hashErr == nil {
		if prev, ok := s.fingerprints[key]; ok && prev == hash {
			logger.Debug("Skipping save, state unchanged", "key", key)
			return nil
		}
	}

	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to serialize state: %w", err)
	}
	if err := s.kv.Set(key, string(raw)); err != nil {
		return err
	}
	if hashErr == nil {
		s.fingerprints[key] = hash
	}
	return nil
}

func (s *TrackerStore) remember(key string, state interface{}) {
	if hash, err := hashstructure.Hash(state, hashstructure.FormatV2, nil); err == nil {
		s.fingerprints[key] = hash
	}
}

// backupBefore snapshots the store file before a structural rewrite. Failure
// is logged, not fatal: losing a backup is better than blocking a load.
func (s *TrackerStore) backupBefore() {
	mgr := backup.NewManager(s.kv.Path())
	if _, err := mgr.Create(); err != nil {
		logger.Warn("Pre-migration backup failed", "error", err)
	}
}

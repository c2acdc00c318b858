package driven

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/alorle/tvdesk/internal/library"
)

const (
	settingsBucket = "settings"
	settingsKey    = "library"
)

// LibraryBoltDBRepository implements the SettingsRepository port using BoltDB.
// The settings are stored as one JSON document.
type LibraryBoltDBRepository struct {
	db *bbolt.DB
}

// NewLibraryBoltDBRepository creates a new BoltDB-backed settings repository.
// It initializes the required bucket if it doesn't exist.
func NewLibraryBoltDBRepository(db *bbolt.DB) (*LibraryBoltDBRepository, error) {
	if db == nil {
		return nil, errors.New("db cannot be nil")
	}

	err := db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(settingsBucket))
		return err
	})
	if err != nil {
		return nil, err
	}

	return &LibraryBoltDBRepository{db: db}, nil
}

// Load returns the stored settings, or library.Default() if none were saved.
func (r *LibraryBoltDBRepository) Load(ctx context.Context) (library.Settings, error) {
	if err := ctx.Err(); err != nil {
		return library.Settings{}, err
	}

	settings := library.Default()

	err := r.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(settingsBucket))
		if bucket == nil {
			return errors.New("settings bucket not found")
		}

		data := bucket.Get([]byte(settingsKey))
		if data == nil {
			return nil
		}

		var stored library.Settings
		if err := json.Unmarshal(data, &stored); err != nil {
			return fmt.Errorf("decoding settings: %w", err)
		}
		settings = stored.Normalize()
		return nil
	})

	return settings, err
}

// Save replaces the stored settings.
func (r *LibraryBoltDBRepository) Save(ctx context.Context, s library.Settings) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(s)
	if err != nil {
		return err
	}

	return r.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(settingsBucket))
		if bucket == nil {
			return errors.New("settings bucket not found")
		}
		return bucket.Put([]byte(settingsKey), data)
	})
}

// Ping checks if the database is accessible.
func (r *LibraryBoltDBRepository) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return r.db.View(func(tx *bbolt.Tx) error {
		if tx.Bucket([]byte(settingsBucket)) == nil {
			return errors.New("settings bucket not found")
		}
		return nil
	})
}

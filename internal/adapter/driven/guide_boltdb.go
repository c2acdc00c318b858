package driven

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/alorle/tvdesk/internal/epg"
)

const (
	epgBucket = "epg"
	guideKey  = "guide"
)

// GuideBoltDBRepository implements the GuideRepository port using BoltDB.
type GuideBoltDBRepository struct {
	db *bbolt.DB
}

// NewGuideBoltDBRepository creates a new BoltDB-backed guide repository.
// It initializes the required bucket if it doesn't exist.
func NewGuideBoltDBRepository(db *bbolt.DB) (*GuideBoltDBRepository, error) {
	if db == nil {
		return nil, errors.New("db cannot be nil")
	}

	err := db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(epgBucket))
		return err
	})
	if err != nil {
		return nil, err
	}

	return &GuideBoltDBRepository{db: db}, nil
}

// Save replaces the stored guide.
func (r *GuideBoltDBRepository) Save(ctx context.Context, g epg.Guide) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(g)
	if err != nil {
		return err
	}

	return r.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(epgBucket))
		if bucket == nil {
			return errors.New("epg bucket not found")
		}
		return bucket.Put([]byte(guideKey), data)
	})
}

// Load returns the stored guide or epg.ErrGuideNotFound.
func (r *GuideBoltDBRepository) Load(ctx context.Context) (epg.Guide, error) {
	if err := ctx.Err(); err != nil {
		return epg.Guide{}, err
	}

	var g epg.Guide

	err := r.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(epgBucket))
		if bucket == nil {
			return errors.New("epg bucket not found")
		}

		data := bucket.Get([]byte(guideKey))
		if data == nil {
			return epg.ErrGuideNotFound
		}

		if err := json.Unmarshal(data, &g); err != nil {
			return fmt.Errorf("decoding guide: %w", err)
		}
		if g.Programs == nil {
			g.Programs = map[string][]epg.Program{}
		}
		return nil
	})

	return g, err
}

// Clear removes the stored guide.
func (r *GuideBoltDBRepository) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return r.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(epgBucket))
		if bucket == nil {
			return errors.New("epg bucket not found")
		}
		return bucket.Delete([]byte(guideKey))
	})
}

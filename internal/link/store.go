package link

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/serroba/linkshort/internal/storage"
	"go.uber.org/zap"
)

// Store owns the two-table layout: a primary table keyed by identifier and a
// reference index keyed by "{ref_id}:{created_at_micros}". Every cross-table
// mutation runs inside exactly one write transaction; the engine's isolation
// is the sole mechanism keeping check-then-act sequences race-free.
type Store struct {
	db     storage.Engine
	logger *zap.Logger

	mu        sync.Mutex
	lastMicro int64
}

// NewStore creates a link store on top of an engine whose tables were created
// at open time (PrimaryTable and RefIndexTable).
func NewStore(db storage.Engine, logger *zap.Logger) *Store {
	return &Store{db: db, logger: logger}
}

// CreateParams describes a record to insert. ShortURL is built by the caller
// from its configured base URL; the store never computes it.
type CreateParams struct {
	ID          string
	OriginalURL string
	ShortURL    string
	RefID       string
}

// Create inserts a new record under params.ID, rejecting taken identifiers
// with ErrConflict. The uniqueness check and both inserts happen in one write
// transaction, so two concurrent writers can never both pass the check.
func (s *Store) Create(_ context.Context, params CreateParams) (Record, error) {
	if params.ID == "" {
		return Record{}, fmt.Errorf("%w: empty identifier", ErrConflict)
	}

	record := Record{
		ID:          params.ID,
		OriginalURL: params.OriginalURL,
		ShortURL:    params.ShortURL,
		RefID:       params.RefID,
		CreatedAt:   s.nextCreatedAt(),
	}

	payload, err := json.Marshal(record)
	if err != nil {
		return Record{}, fmt.Errorf("encode record: %w", err)
	}

	err = s.db.Update(func(tx storage.Tx) error {
		primary, err := tx.Table(PrimaryTable)
		if err != nil {
			return err
		}

		if primary.Get([]byte(record.ID)) != nil {
			return ErrConflict
		}

		if err := primary.Put([]byte(record.ID), payload); err != nil {
			return err
		}

		if record.RefID == "" {
			return nil
		}

		index, err := tx.Table(RefIndexTable)
		if err != nil {
			return err
		}

		return index.Put(record.IndexKey(), payload)
	})
	if err != nil {
		return Record{}, err
	}

	return record, nil
}

// GetByID looks up a record by identifier. A stored value that no longer
// decodes is reported as ErrCorruptRecord rather than silently hidden.
func (s *Store) GetByID(_ context.Context, id string) (Record, error) {
	var record Record

	err := s.db.View(func(tx storage.Tx) error {
		primary, err := tx.Table(PrimaryTable)
		if err != nil {
			return err
		}

		raw := primary.Get([]byte(id))
		if raw == nil {
			return ErrNotFound
		}

		if err := json.Unmarshal(raw, &record); err != nil {
			return fmt.Errorf("%w: %s", ErrCorruptRecord, id)
		}

		return nil
	})
	if err != nil {
		return Record{}, err
	}

	return record, nil
}

// List returns one page of records, oldest first, for the given owner. With
// an empty refID it walks the entire primary table in identifier order
// instead - a full-table scan, kept deliberately.
//
// Pagination skips and takes raw index entries; entries that fail to decode
// are dropped from the result without back-filling, so a page may come back
// shorter than limit.
func (s *Store) List(_ context.Context, refID string, page, limit int) ([]Record, error) {
	if page < 1 {
		page = 1
	}

	offset := (page - 1) * limit
	records := make([]Record, 0, limit)

	err := s.db.View(func(tx storage.Tx) error {
		table, lo, hi, err := s.listRange(tx, refID)
		if err != nil {
			return err
		}

		seen := 0
		taken := 0

		return table.Scan(lo, hi, func(key, value []byte) error {
			if seen < offset {
				seen++

				return nil
			}

			if taken == limit {
				return storage.ErrStop
			}
			taken++

			var record Record
			if err := json.Unmarshal(value, &record); err != nil {
				s.logger.Warn("dropping undecodable record from listing",
					zap.ByteString("key", key),
					zap.Error(err),
				)

				return nil
			}

			records = append(records, record)

			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	return records, nil
}

func (s *Store) listRange(tx storage.Tx, refID string) (storage.Table, []byte, []byte, error) {
	if refID == "" {
		table, err := tx.Table(PrimaryTable)

		return table, nil, nil, err
	}

	table, err := tx.Table(RefIndexTable)

	return table, indexLowerBound(refID), indexUpperBound(refID), err
}

// Delete removes a record and, for owned records, its index entry in one
// write transaction.
//
// The ownership gate only engages when the requester supplies a claim: a
// mismatched claim and a claim against an unowned record both fail with
// ErrForbidden, while an empty requester deletes unconditionally.
func (s *Store) Delete(_ context.Context, id, requesterRef string) error {
	return s.db.Update(func(tx storage.Tx) error {
		primary, err := tx.Table(PrimaryTable)
		if err != nil {
			return err
		}

		raw := primary.Get([]byte(id))
		if raw == nil {
			return ErrNotFound
		}

		var record Record
		if err := json.Unmarshal(raw, &record); err != nil {
			return fmt.Errorf("%w: %s", ErrCorruptRecord, id)
		}

		if requesterRef != "" && record.RefID != requesterRef {
			return ErrForbidden
		}

		if err := primary.Delete([]byte(id)); err != nil {
			return err
		}

		if record.RefID == "" {
			return nil
		}

		index, err := tx.Table(RefIndexTable)
		if err != nil {
			return err
		}

		return index.Delete(record.IndexKey())
	})
}

// nextCreatedAt returns a UTC timestamp with microsecond resolution, strictly
// increasing within the process so same-owner index keys never collide.
func (s *Store) nextCreatedAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()

	micro := time.Now().UnixMicro()
	if micro <= s.lastMicro {
		micro = s.lastMicro + 1
	}
	s.lastMicro = micro

	return time.UnixMicro(micro).UTC()
}

package repo

import (
	"context"
	"fmt"

	"github.com/beka-birhanu/vinom-maze/domain"
	"github.com/beka-birhanu/vinom-maze/service/i"
	"github.com/dgraph-io/badger/v3"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const (
	layoutKeyFmt = "layout:%s"
	seedKeyFmt   = "seed:%dx%d:%d"
)

var _ i.LayoutRepo = &BadgerLayoutRepo{}

// BadgerLayoutRepo stores encoded maze records in an embedded badger database.
// Each record is stored under its ID with a secondary seed key pointing to it.
type BadgerLayoutRepo struct {
	db      *badger.DB
	encoder i.RecordEncoder
}

// NewBadgerLayoutRepo opens the badger database at path. An empty path keeps
// the database in memory.
func NewBadgerLayoutRepo(path string, encoder i.RecordEncoder) (*BadgerLayoutRepo, error) {
	dbOpts := badger.DefaultOptions(path)
	dbOpts.Logger = nil
	dbOpts.MetricsEnabled = false
	if path == "" {
		dbOpts.InMemory = true
	}

	db, err := badger.Open(dbOpts)
	if err != nil {
		return nil, errors.Wrap(err, "opening badger layout store")
	}

	return &BadgerLayoutRepo{
		db:      db,
		encoder: encoder,
	}, nil
}

// Close flushes and closes the database.
func (r *BadgerLayoutRepo) Close() error {
	return r.db.Close()
}

// Save inserts or updates a maze record in the repository. A seed already
// owned by another record yields domain.ErrDuplicateLayout.
func (r *BadgerLayoutRepo) Save(ctx context.Context, record *domain.MazeRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	payload, err := r.encoder.MarshalRecord(record)
	if err != nil {
		return errors.Wrap(err, "encoding layout")
	}

	key := seedKey(record.Rows, record.Columns, record.Seed)
	err = r.db.Update(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		switch {
		case err == nil:
			owner, err := item.ValueCopy(nil)
			if err != nil {
				return err
			}
			if string(owner) != record.ID.String() {
				return errors.Wrapf(domain.ErrDuplicateLayout, "seed key %s held by %s", key, owner)
			}
		case err != badger.ErrKeyNotFound:
			return err
		}

		if err := txn.Set(layoutKey(record.ID), payload); err != nil {
			return err
		}
		return txn.Set(key, []byte(record.ID.String()))
	})
	if err == badger.ErrConflict {
		// Another transaction wrote the seed key after this one read it.
		return errors.Wrapf(domain.ErrDuplicateLayout, "seed key %s written concurrently", key)
	}
	return errors.Wrap(err, "saving layout")
}

// ByID retrieves a maze record by its ID.
func (r *BadgerLayoutRepo) ByID(ctx context.Context, id uuid.UUID) (*domain.MazeRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var record *domain.MazeRecord
	err := r.db.View(func(txn *badger.Txn) error {
		var err error
		record, err = r.load(txn, layoutKey(id))
		return err
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}

// BySeed retrieves the maze record generated for the given dimensions and seed.
func (r *BadgerLayoutRepo) BySeed(ctx context.Context, rows, columns int, seed int64) (*domain.MazeRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var record *domain.MazeRecord
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(seedKey(rows, columns, seed))
		if err == badger.ErrKeyNotFound {
			return domain.ErrLayoutNotFound
		}
		if err != nil {
			return errors.Wrap(err, "reading seed index")
		}

		rawID, err := item.ValueCopy(nil)
		if err != nil {
			return errors.Wrap(err, "reading seed index")
		}
		id, err := uuid.ParseBytes(rawID)
		if err != nil {
			return errors.Wrapf(err, "seed index holds invalid id %q", rawID)
		}

		record, err = r.load(txn, layoutKey(id))
		return err
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}

// load decodes the record stored under key.
func (r *BadgerLayoutRepo) load(txn *badger.Txn, key []byte) (*domain.MazeRecord, error) {
	item, err := txn.Get(key)
	if err == badger.ErrKeyNotFound {
		return nil, domain.ErrLayoutNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "reading layout")
	}

	var record *domain.MazeRecord
	err = item.Value(func(val []byte) error {
		var err error
		record, err = r.encoder.UnmarshalRecord(val)
		return err
	})
	if err != nil {
		return nil, errors.Wrap(err, "decoding layout")
	}
	return record, nil
}

func layoutKey(id uuid.UUID) []byte {
	return []byte(fmt.Sprintf(layoutKeyFmt, id))
}

func seedKey(rows, columns int, seed int64) []byte {
	return []byte(fmt.Sprintf(seedKeyFmt, rows, columns, seed))
}

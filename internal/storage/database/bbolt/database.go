package bbolt

import (
	"bytes"
	"context"
	"fmt"

	"github.com/LeJamon/tokendex/internal/storage/database"
	"go.etcd.io/bbolt"
)

type DB struct {
	db     *bbolt.DB
	bucket []byte
}

func NewDB(db *bbolt.DB, bucket []byte) *DB {
	return &DB{
		db:     db,
		bucket: bucket,
	}
}

func (b *DB) bucketOf(tx *bbolt.Tx) (*bbolt.Bucket, error) {
	bucket := tx.Bucket(b.bucket)
	if bucket == nil {
		return nil, fmt.Errorf("bucket %s not found", string(b.bucket))
	}
	return bucket, nil
}

func (b *DB) Read(ctx context.Context, key []byte) ([]byte, error) {
	if b.db == nil {
		return nil, database.ErrDBClosed
	}

	var value []byte
	err := b.db.View(func(tx *bbolt.Tx) error {
		bucket, err := b.bucketOf(tx)
		if err != nil {
			return err
		}

		raw := bucket.Get(key)
		if raw == nil {
			return database.ErrKeyNotFound
		}

		// bbolt values are only valid inside the transaction
		value = make([]byte, len(raw))
		copy(value, raw)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return value, nil
}

// Batch runs every operation in a single bbolt read-write transaction.
func (b *DB) Batch(ctx context.Context, ops []database.BatchOperation) error {
	if b.db == nil {
		return database.ErrDBClosed
	}

	return b.db.Update(func(tx *bbolt.Tx) error {
		bucket, err := b.bucketOf(tx)
		if err != nil {
			return err
		}

		for _, op := range ops {
			switch op.Type {
			case database.BatchPut:
				if err := bucket.Put(op.Key, op.Value); err != nil {
					return err
				}
			case database.BatchDelete:
				if err := bucket.Delete(op.Key); err != nil {
					return err
				}
			default:
				return fmt.Errorf("unknown batch operation type: %d", op.Type)
			}
		}
		return nil
	})
}

type Iterator struct {
	tx      *bbolt.Tx
	cursor  *bbolt.Cursor
	start   []byte
	end     []byte
	key     []byte
	value   []byte
	started bool
	err     error
}

func (b *DB) Iterator(ctx context.Context, start, end []byte) (database.Iterator, error) {
	if b.db == nil {
		return nil, database.ErrDBClosed
	}

	tx, err := b.db.Begin(false)
	if err != nil {
		return nil, err
	}

	bucket, err := b.bucketOf(tx)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	return &Iterator{
		tx:     tx,
		cursor: bucket.Cursor(),
		start:  start,
		end:    end,
	}, nil
}

func (it *Iterator) Next() bool {
	if it.err != nil {
		return false
	}

	if !it.started {
		it.started = true
		if it.start == nil {
			it.key, it.value = it.cursor.First()
		} else {
			it.key, it.value = it.cursor.Seek(it.start)
		}
	} else {
		it.key, it.value = it.cursor.Next()
	}

	if it.key == nil {
		return false
	}
	if it.end != nil && bytes.Compare(it.key, it.end) >= 0 {
		it.key, it.value = nil, nil
		return false
	}
	return true
}

func (it *Iterator) Key() []byte {
	if it.key == nil {
		return nil
	}
	keyCopy := make([]byte, len(it.key))
	copy(keyCopy, it.key)
	return keyCopy
}

func (it *Iterator) Value() []byte {
	if it.value == nil {
		return nil
	}
	valueCopy := make([]byte, len(it.value))
	copy(valueCopy, it.value)
	return valueCopy
}

func (it *Iterator) Error() error {
	return it.err
}

func (it *Iterator) Close() error {
	if it.tx != nil {
		err := it.tx.Rollback()
		it.tx = nil
		return err
	}
	return nil
}

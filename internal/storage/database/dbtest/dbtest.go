// Package dbtest holds the behaviour every database.DB backend must share.
package dbtest

import (
	"context"
	"fmt"
	"testing"

	"github.com/LeJamon/tokendex/internal/storage/database"
	"github.com/stretchr/testify/require"
)

// Put writes one key through Batch
func Put(t *testing.T, db database.DB, key, value string) {
	t.Helper()
	op := database.BatchOperation{Type: database.BatchPut, Key: []byte(key), Value: []byte(value)}
	require.NoError(t, db.Batch(context.Background(), []database.BatchOperation{op}))
}

// Del removes one key through Batch
func Del(t *testing.T, db database.DB, key string) {
	t.Helper()
	op := database.BatchOperation{Type: database.BatchDelete, Key: []byte(key)}
	require.NoError(t, db.Batch(context.Background(), []database.BatchOperation{op}))
}

// Run exercises a backend. open must return a fresh, empty database.
func Run(t *testing.T, open func(t *testing.T) database.DB) {
	ctx := context.Background()

	t.Run("Put Overwrite Delete", func(t *testing.T) {
		db := open(t)

		_, err := db.Read(ctx, []byte("missing"))
		require.ErrorIs(t, err, database.ErrKeyNotFound)

		Put(t, db, "k", "v1")
		got, err := db.Read(ctx, []byte("k"))
		require.NoError(t, err)
		require.Equal(t, []byte("v1"), got)

		Put(t, db, "k", "v2")
		got, err = db.Read(ctx, []byte("k"))
		require.NoError(t, err)
		require.Equal(t, []byte("v2"), got)

		Del(t, db, "k")
		_, err = db.Read(ctx, []byte("k"))
		require.ErrorIs(t, err, database.ErrKeyNotFound)
	})

	t.Run("Read Returns A Copy", func(t *testing.T) {
		db := open(t)
		Put(t, db, "k", "value")

		got, err := db.Read(ctx, []byte("k"))
		require.NoError(t, err)
		got[0] = 'X'

		again, err := db.Read(ctx, []byte("k"))
		require.NoError(t, err)
		require.Equal(t, []byte("value"), again)
	})

	t.Run("Batch Operations", func(t *testing.T) {
		db := open(t)
		Put(t, db, "stale", "x")

		ops := make([]database.BatchOperation, 0, 11)
		for i := 0; i < 10; i++ {
			ops = append(ops, database.BatchOperation{
				Type:  database.BatchPut,
				Key:   []byte(fmt.Sprintf("batch-%02d", i)),
				Value: []byte(fmt.Sprintf("value-%d", i)),
			})
		}
		ops = append(ops, database.BatchOperation{Type: database.BatchDelete, Key: []byte("stale")})
		require.NoError(t, db.Batch(ctx, ops))

		for i := 0; i < 10; i++ {
			got, err := db.Read(ctx, []byte(fmt.Sprintf("batch-%02d", i)))
			require.NoError(t, err)
			require.Equal(t, []byte(fmt.Sprintf("value-%d", i)), got)
		}
		_, err := db.Read(ctx, []byte("stale"))
		require.ErrorIs(t, err, database.ErrKeyNotFound)
	})

	t.Run("Iterator", func(t *testing.T) {
		db := open(t)
		for _, k := range []string{"a", "b", "c", "d"} {
			Put(t, db, k, "v"+k)
		}

		it, err := db.Iterator(ctx, []byte("b"), []byte("d"))
		require.NoError(t, err)
		defer it.Close()

		var keys []string
		for it.Next() {
			keys = append(keys, string(it.Key()))
			require.Equal(t, "v"+string(it.Key()), string(it.Value()))
		}
		require.NoError(t, it.Error())
		require.Equal(t, []string{"b", "c"}, keys)
	})

	t.Run("Iterator Open Bounds", func(t *testing.T) {
		db := open(t)
		for _, k := range []string{"a", "b", "c"} {
			Put(t, db, k, "v"+k)
		}

		it, err := db.Iterator(ctx, []byte("b"), nil)
		require.NoError(t, err)
		defer it.Close()

		var keys []string
		for it.Next() {
			keys = append(keys, string(it.Key()))
		}
		require.NoError(t, it.Error())
		require.Equal(t, []string{"b", "c"}, keys)
	})
}

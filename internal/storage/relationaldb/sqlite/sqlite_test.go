package sqlite_test

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/LeJamon/tokendex/internal/core/tx"
	"github.com/LeJamon/tokendex/internal/core/tx/amm"
	"github.com/LeJamon/tokendex/internal/core/tx/token"
	"github.com/LeJamon/tokendex/internal/storage/relationaldb"
	_ "github.com/LeJamon/tokendex/internal/storage/relationaldb/sqlite"
	jtx "github.com/LeJamon/tokendex/internal/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func openJournal(t *testing.T) *relationaldb.SQLJournal {
	t.Helper()
	path := filepath.Join(t.TempDir(), "events.db")
	j, err := relationaldb.Open(context.Background(), relationaldb.SQLiteConfig(path))
	require.NoError(t, err)
	t.Cleanup(func() { j.Close() })
	return j
}

func TestAppendAndRead(t *testing.T) {
	ctx := context.Background()
	j := openJournal(t)
	alice := jtx.NewAccount("alice")

	seq1, err := j.Append(ctx, token.MintSingleEvent{Account: alice.ID, AssetID: 1, Amount: 10})
	require.NoError(t, err)
	seq2, err := j.Append(ctx, amm.Withdrawn{Caller: alice.ID, AmountA: 3, AmountB: 4, LPBurned: 5})
	require.NoError(t, err)
	assert.Greater(t, seq2, seq1)

	records, err := j.Events(ctx, 0, 10)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, seq1, records[0].Seq)
	assert.Equal(t, token.EventMintSingle, records[0].Type)
	assert.Equal(t, amm.EventWithdrawn, records[1].Type)
	assert.Contains(t, string(records[1].Payload), `"lp_burned":5`)
	assert.False(t, records[0].CreatedAt.IsZero())

	after, err := j.Events(ctx, seq1, 10)
	require.NoError(t, err)
	require.Len(t, after, 1)
	assert.Equal(t, seq2, after[0].Seq)

	n, err := j.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}

func TestEventsLimit(t *testing.T) {
	ctx := context.Background()
	j := openJournal(t)
	alice := jtx.NewAccount("alice")

	for i := uint64(0); i < 5; i++ {
		require.NoError(t, j.Publish(token.MintSingleEvent{Account: alice.ID, AssetID: i, Amount: i}))
	}

	records, err := j.Events(ctx, 0, 3)
	require.NoError(t, err)
	assert.Len(t, records, 3)

	_, err = j.Events(ctx, 0, 0)
	assert.ErrorIs(t, err, relationaldb.ErrInvalidQueryLimit)
}

func TestClosedJournal(t *testing.T) {
	j := openJournal(t)
	require.NoError(t, j.Close())
	require.NoError(t, j.Close())

	err := j.Publish(token.MintSingleEvent{})
	assert.ErrorIs(t, err, relationaldb.ErrJournalClosed)
	_, err = j.Count(context.Background())
	assert.ErrorIs(t, err, relationaldb.ErrJournalClosed)
}

// TestJournalAsEngineSink checks that only committed transactions reach the journal.
func TestJournalAsEngineSink(t *testing.T) {
	ctx := context.Background()
	j := openJournal(t)
	env := jtx.NewTestEnv(t, jtx.WithEventSink(j))
	alice := jtx.NewAccount("alice")
	bob := jtx.NewAccount("bob")

	env.Mint(alice, 1, 100)
	jtx.RequireTxSuccess(t, env.Submit(alice, token.NewTransfer(bob.ID, 1, 40)))
	jtx.RequireTxFail(t, env.Submit(alice, token.NewTransfer(bob.ID, 1, 400)), tx.TecINSUFFICIENT_BALANCE)

	records, err := j.Events(ctx, 0, 10)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, token.EventMintSingle, records[0].Type)
	assert.Equal(t, token.EventTransferSingle, records[1].Type)
}

func TestManagerHealth(t *testing.T) {
	j := openJournal(t)
	m := relationaldb.NewManager(j)

	require.NoError(t, m.CheckHealth(context.Background()))
	healthy, err := m.Healthy()
	assert.True(t, healthy)
	assert.NoError(t, err)

	require.NoError(t, m.Close())
	require.Error(t, m.CheckHealth(context.Background()))
	healthy, _ = m.Healthy()
	assert.False(t, healthy)
}

func TestAppendReturnsOwnSequence(t *testing.T) {
	ctx := context.Background()
	j := openJournal(t)
	alice := jtx.NewAccount("alice")

	const writers = 8
	seqs := make([]int64, writers)
	var g errgroup.Group
	for i := 0; i < writers; i++ {
		i := i
		g.Go(func() error {
			seq, err := j.Append(ctx, token.MintSingleEvent{Account: alice.ID, AssetID: uint64(i), Amount: 1})
			seqs[i] = seq
			return err
		})
	}
	require.NoError(t, g.Wait())

	records, err := j.Events(ctx, 0, writers)
	require.NoError(t, err)
	require.Len(t, records, writers)

	bySeq := make(map[int64]string, writers)
	for _, rec := range records {
		bySeq[rec.Seq] = string(rec.Payload)
	}
	for i, seq := range seqs {
		payload, ok := bySeq[seq]
		require.True(t, ok, "sequence %d not stored", seq)
		assert.Contains(t, payload, fmt.Sprintf(`"asset_id":%d,`, i))
	}
}

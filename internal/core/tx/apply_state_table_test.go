package tx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyStateTableIsolation(t *testing.T) {
	base := newMapView()
	base.data[testKeylet(1).Key] = []byte("old")

	table := NewApplyStateTable(base)
	require.NoError(t, table.Update(testKeylet(1), []byte("new")))
	require.NoError(t, table.Insert(testKeylet(2), []byte("fresh")))

	got, err := table.Read(testKeylet(1))
	require.NoError(t, err)
	assert.Equal(t, []byte("new"), got)

	// base untouched until commit
	assert.Equal(t, []byte("old"), base.data[testKeylet(1).Key])
	_, ok := base.data[testKeylet(2).Key]
	assert.False(t, ok)
}

func TestApplyStateTableInsertExisting(t *testing.T) {
	base := newMapView()
	base.data[testKeylet(1).Key] = []byte("old")

	table := NewApplyStateTable(base)
	assert.Error(t, table.Insert(testKeylet(1), []byte("again")))
	assert.Error(t, table.Update(testKeylet(9), []byte("missing")))
	assert.Error(t, table.Erase(testKeylet(9)))
}

func TestApplyStateTableChanges(t *testing.T) {
	base := newMapView()
	base.data[testKeylet(1).Key] = []byte("keep")
	base.data[testKeylet(2).Key] = []byte("drop")
	base.data[testKeylet(3).Key] = []byte("same")

	table := NewApplyStateTable(base)
	_, err := table.Read(testKeylet(1))
	require.NoError(t, err)
	require.NoError(t, table.Erase(testKeylet(2)))
	require.NoError(t, table.Update(testKeylet(3), []byte("same")))
	require.NoError(t, table.Insert(testKeylet(5), []byte("b")))
	require.NoError(t, table.Insert(testKeylet(4), []byte("a")))

	// insert then erase leaves nothing behind
	require.NoError(t, table.Insert(testKeylet(6), []byte("tmp")))
	require.NoError(t, table.Erase(testKeylet(6)))

	changes := table.Changes()
	require.Len(t, changes, 3)
	assert.Equal(t, testKeylet(2).Key, changes[0].Keylet.Key)
	assert.True(t, changes[0].IsErase())
	assert.Equal(t, testKeylet(4).Key, changes[1].Keylet.Key)
	assert.Equal(t, testKeylet(5).Key, changes[2].Keylet.Key)

	exists, err := table.Exists(testKeylet(2))
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestApplyStateTableReinsertAfterErase(t *testing.T) {
	base := newMapView()
	base.data[testKeylet(1).Key] = []byte("v1")

	table := NewApplyStateTable(base)
	require.NoError(t, table.Erase(testKeylet(1)))
	require.NoError(t, table.Insert(testKeylet(1), []byte("v2")))

	changes := table.Changes()
	require.Len(t, changes, 1)
	assert.Equal(t, []byte("v2"), changes[0].Data)
}

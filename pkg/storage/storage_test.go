package storage

import (
	"path/filepath"
	"testing"

	"github.com/segmentio/ksuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ssargent/bindb/pkg/codec"
)

func setupStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "store"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleDatabase(t *testing.T) []byte {
	t.Helper()
	buf, err := codec.NewEncoder().
		Text(42, "Hello World").
		List(7, []uint32{43, 44}).
		Bytes()
	require.NoError(t, err)
	return buf
}

func TestStore_PutGetLoad(t *testing.T) {
	s := setupStore(t)
	raw := sampleDatabase(t)

	id, decoded, err := s.Put(raw)
	require.NoError(t, err)
	assert.NotEqual(t, ksuid.Nil, id)
	assert.Equal(t, 2, decoded.Len())

	got, err := s.Get(id)
	require.NoError(t, err)
	assert.Equal(t, raw, got)

	db, err := s.Load(id)
	require.NoError(t, err)
	v, ok := db.Get("42")
	require.True(t, ok)
	assert.Equal(t, codec.Text("Hello World"), v)
}

func TestStore_PutRejectsMalformed(t *testing.T) {
	s := setupStore(t)

	_, _, err := s.Put([]byte{byte(codec.TypeInt32), 1, 0, 0, 0, 1})
	require.Error(t, err)
	assert.ErrorIs(t, err, codec.ErrTruncatedInput)

	ids, err := s.List()
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestStore_NotFound(t *testing.T) {
	s := setupStore(t)
	missing := ksuid.New()

	_, err := s.Get(missing)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.Load(missing)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, s.Delete(missing), ErrNotFound)
}

func TestStore_ListAndDelete(t *testing.T) {
	s := setupStore(t)

	stored := make(map[ksuid.KSUID]bool)
	for i := 0; i < 3; i++ {
		id, _, err := s.Put(sampleDatabase(t))
		require.NoError(t, err)
		stored[id] = true
	}

	ids, err := s.List()
	require.NoError(t, err)
	require.Len(t, ids, 3)
	for _, id := range ids {
		assert.True(t, stored[id], "unexpected id %s", id)
	}

	require.NoError(t, s.Delete(ids[0]))

	ids, err = s.List()
	require.NoError(t, err)
	assert.Len(t, ids, 2)
}

func TestStore_Reopen(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "store")
	s, err := Open(dir, nil)
	require.NoError(t, err)

	id, _, err := s.Put(sampleDatabase(t))
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = Open(dir, nil)
	require.NoError(t, err)
	defer s.Close()

	db, err := s.Load(id)
	require.NoError(t, err)
	assert.Equal(t, []string{"42", "7"}, db.Keys())
}

package history

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Amr-9/crat/pkg/generator"
)

func openMemory(t *testing.T) *Store {
	t.Helper()
	s, err := Open("")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestPutGet(t *testing.T) {
	s := openMemory(t)

	req, err := generator.NewSearchRequest("ace", generator.End, true, generator.Solana)
	require.NoError(t, err)
	res := generator.Result{
		Chain:         generator.Solana,
		Address:       "9xQeWvG816bUx9EPjHmaT23yvVM2ZWbrrpZb9PusVace",
		Secret:        "must-not-be-stored",
		TotalAttempts: 4242,
		Elapsed:       3 * time.Second,
	}

	stored, err := s.Put(NewRecord(req, res, "ace_solana_crat.txt", true))
	require.NoError(t, err)
	assert.NotEmpty(t, stored.ID)

	got, err := s.Get(stored.ID)
	require.NoError(t, err)
	assert.Equal(t, "solana", got.Chain)
	assert.Equal(t, "end", got.Position)
	assert.True(t, got.CaseSensitive)
	assert.Equal(t, uint64(4242), got.Attempts)
	assert.Equal(t, 3*time.Second, got.Elapsed)
	assert.True(t, got.Encrypted)
	assert.Equal(t, res.Address, got.Address)
	assert.True(t, stored.CreatedAt.Equal(got.CreatedAt))
}

func TestGetUnknown(t *testing.T) {
	s := openMemory(t)
	_, err := s.Get("nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListNewestFirst(t *testing.T) {
	s := openMemory(t)
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, addr := range []string{"first", "second", "third"} {
		_, err := s.Put(Record{Address: addr, CreatedAt: base.Add(time.Duration(i) * time.Minute)})
		require.NoError(t, err)
	}

	all, err := s.List(0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "third", all[0].Address)
	assert.Equal(t, "second", all[1].Address)
	assert.Equal(t, "first", all[2].Address)

	two, err := s.List(2)
	require.NoError(t, err)
	require.Len(t, two, 2)
	assert.Equal(t, "third", two[0].Address)
}

func TestListEmpty(t *testing.T) {
	s := openMemory(t)
	records, err := s.List(0)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestPersistsAcrossReopen(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "history")

	s, err := Open(dir)
	require.NoError(t, err)
	stored, err := s.Put(Record{Chain: "bitcoin", Address: "1abc"})
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = Open(dir)
	require.NoError(t, err)
	defer s.Close()

	got, err := s.Get(stored.ID)
	require.NoError(t, err)
	assert.Equal(t, "1abc", got.Address)
}

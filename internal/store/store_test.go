package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scholarnet/research-network-service/internal/domain"
)

func sampleRecords() []domain.PaperRecord {
	return []domain.PaperRecord{
		{
			ID:            "p1",
			Title:         "First",
			Year:          2020,
			CitationCount: 3,
			Authors: []domain.Author{
				{ID: "a1", Name: "Ada"},
			},
			ReferenceIDs: []string{"p2"},
		},
		{
			ID:    "p2",
			Title: "Second",
			Year:  2021,
		},
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "papers.json")

	require.NoError(t, New(sampleRecords()).Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, sampleRecords(), loaded.Records())
	assert.Equal(t, 2, loaded.Len())
}

func TestSaveCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "papers.json")

	require.NoError(t, New(sampleRecords()).Save(path))

	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestSaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "papers.json")

	require.NoError(t, New(sampleRecords()).Save(path))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "papers.json", entries[0].Name())
}

func TestSaveOverwritesExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "papers.json")

	require.NoError(t, New(sampleRecords()).Save(path))
	require.NoError(t, New(sampleRecords()[:1]).Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1, loaded.Len())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.json"))

	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

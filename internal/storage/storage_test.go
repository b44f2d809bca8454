package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStage_RemovesFileOnCleanup(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir, false)

	path, cleanup, err := store.Stage(context.Background(), strings.NewReader("%PDF-1.4 test"), "notes.pdf")
	require.NoError(t, err)
	require.FileExists(t, path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4 test", string(data))

	cleanup()
	assert.NoFileExists(t, path)
}

func TestStage_ArchivesOnCleanup(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir, true)

	path, cleanup, err := store.Stage(context.Background(), strings.NewReader("content"), "lecture 3.pdf")
	require.NoError(t, err)

	cleanup()
	assert.NoFileExists(t, path)

	entries, err := os.ReadDir(filepath.Join(dir, "archive"))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Contains(t, entries[0].Name(), "lecture 3.pdf")
}

func TestStage_UniqueNames(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir, false)

	p1, c1, err := store.Stage(context.Background(), strings.NewReader("a"), "same.pdf")
	require.NoError(t, err)
	defer c1()
	p2, c2, err := store.Stage(context.Background(), strings.NewReader("b"), "same.pdf")
	require.NoError(t, err)
	defer c2()

	assert.NotEqual(t, p1, p2)
}

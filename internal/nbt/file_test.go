package nbt

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-theft-craft/voxelstore/internal/tag"
)

func TestWriteToFileThenParseFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "save.dat")

	root := tag.CompoundOf(
		tag.Entry{Key: "level", Value: tag.IntOf(7)},
	)
	n := New("root", root)

	require.NoError(t, WriteToFile(n, path))

	back, err := ParseFromFile(path)
	require.NoError(t, err)
	require.Equal(t, "root", back.Name())
	require.EqualValues(t, 7, back.Root().Get("level").GetInt())
}

func TestParseFromFileMissingFails(t *testing.T) {
	_, err := ParseFromFile(filepath.Join(t.TempDir(), "missing.dat"))
	require.Error(t, err)
}

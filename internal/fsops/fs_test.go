package fsops

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRealFS_Exists(t *testing.T) {
	fs := NewRealFS()
	tmpDir := t.TempDir()

	t.Run("existing file", func(t *testing.T) {
		testFile := filepath.Join(tmpDir, "exists.txt")
		require.NoError(t, os.WriteFile(testFile, []byte("test"), 0644))

		exists, err := fs.Exists(testFile)
		require.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("non-existing file", func(t *testing.T) {
		exists, err := fs.Exists(filepath.Join(tmpDir, "does-not-exist.txt"))
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("existing directory with marker", func(t *testing.T) {
		exists, err := fs.Exists(tmpDir + "/")
		require.NoError(t, err)
		assert.True(t, exists)
	})
}

func TestRealFS_ReadDir(t *testing.T) {
	fs := NewRealFS()
	tmpDir := t.TempDir()

	require.NoError(t, os.Mkdir(filepath.Join(tmpDir, "sub"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "b.txt"), nil, 0644))
	require.NoError(t, os.Symlink(filepath.Join(tmpDir, "sub"), filepath.Join(tmpDir, "link")))
	require.NoError(t, os.Symlink(filepath.Join(tmpDir, "missing"), filepath.Join(tmpDir, "dangling")))

	entries, err := fs.ReadDir(tmpDir)
	require.NoError(t, err)

	got := make(map[string]bool)
	for _, e := range entries {
		got[e.Name] = e.IsDir
	}
	assert.Equal(t, map[string]bool{
		"sub":      true,
		"b.txt":    false,
		"link":     true,
		"dangling": false,
	}, got)
}

func TestRealFS_ReadDir_Missing(t *testing.T) {
	fs := NewRealFS()
	_, err := fs.ReadDir(filepath.Join(t.TempDir(), "nope"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestRealFS_MkdirAll(t *testing.T) {
	fs := NewRealFS()
	tmpDir := t.TempDir()

	nested := filepath.Join(tmpDir, "a", "b", "c") + "/"
	require.NoError(t, fs.MkdirAll(nested))
	require.NoError(t, fs.MkdirAll(nested), "MkdirAll should be idempotent")

	info, err := os.Stat(nested)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestMemFS_WriteReadRemove(t *testing.T) {
	fs := NewMemFS()

	require.NoError(t, fs.MkdirAll("/w"))
	require.NoError(t, fs.WriteFile("/w/a.txt", []byte("hello")))

	data, err := fs.ReadFile("/w/a.txt")
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))

	require.NoError(t, fs.Remove("/w/a.txt"))
	exists, err := fs.Exists("/w/a.txt")
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = fs.ReadFile("/w/a.txt")
	assert.Error(t, err)
}

func TestMemFS_RemoveTree(t *testing.T) {
	fs := NewMemFS()
	mem := fs.Afero()

	require.NoError(t, mem.MkdirAll("/w/top/mid/deep", 0755))
	require.NoError(t, afero.WriteFile(mem, "/w/top/a.txt", []byte("a"), 0644))
	require.NoError(t, afero.WriteFile(mem, "/w/top/mid/b.txt", []byte("b"), 0644))
	require.NoError(t, afero.WriteFile(mem, "/w/top/mid/deep/c.txt", []byte("c"), 0644))
	require.NoError(t, afero.WriteFile(mem, "/w/keep.txt", []byte("k"), 0644))

	require.NoError(t, fs.RemoveTree("/w/top/"))

	for _, p := range []string{"/w/top", "/w/top/mid", "/w/top/mid/deep/c.txt"} {
		exists, err := fs.Exists(p)
		require.NoError(t, err)
		assert.False(t, exists, p)
	}
	exists, err := fs.Exists("/w/keep.txt")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestRealFS_RemoveTree(t *testing.T) {
	fs := NewRealFS()
	tmpDir := t.TempDir()
	top := filepath.Join(tmpDir, "top")

	require.NoError(t, os.MkdirAll(filepath.Join(top, "x", "y"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(top, "x", "y", "f"), []byte("f"), 0644))

	require.NoError(t, fs.RemoveTree(top))
	_, err := os.Stat(top)
	assert.True(t, os.IsNotExist(err))
}

func TestMemFS_CopyFile(t *testing.T) {
	fs := NewMemFS()
	mem := fs.Afero()
	require.NoError(t, afero.WriteFile(mem, "/src/data.bin", []byte{0, 1, 2, 255}, 0600))

	t.Run("creates parent directories", func(t *testing.T) {
		require.NoError(t, fs.CopyFile("/src/data.bin", "/dst/nested/data.bin"))

		data, err := afero.ReadFile(mem, "/dst/nested/data.bin")
		require.NoError(t, err)
		assert.Equal(t, []byte{0, 1, 2, 255}, data)

		info, err := mem.Stat("/dst/nested/data.bin")
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
	})

	t.Run("overwrites destination", func(t *testing.T) {
		require.NoError(t, afero.WriteFile(mem, "/dst/over.bin", []byte("old content here"), 0644))
		require.NoError(t, fs.CopyFile("/src/data.bin", "/dst/over.bin"))

		data, err := afero.ReadFile(mem, "/dst/over.bin")
		require.NoError(t, err)
		assert.Equal(t, []byte{0, 1, 2, 255}, data)
	})

	t.Run("rejects directory source", func(t *testing.T) {
		assert.Error(t, fs.CopyFile("/src/", "/dst/copy"))
	})

	t.Run("missing source", func(t *testing.T) {
		assert.Error(t, fs.CopyFile("/src/none", "/dst/none"))
	})
}

func TestMemFS_Rename(t *testing.T) {
	fs := NewMemFS()
	mem := fs.Afero()
	require.NoError(t, afero.WriteFile(mem, "/a/old.txt", []byte("x"), 0644))

	require.NoError(t, fs.Rename("/a/old.txt", "/a/new.txt"))

	exists, _ := fs.Exists("/a/old.txt")
	assert.False(t, exists)
	exists, _ = fs.Exists("/a/new.txt")
	assert.True(t, exists)
}

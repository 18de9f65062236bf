// Package fsops provides the disk operations the reconciliation engine needs.
//
// Every disk access in diredit goes through the FS interface. The default
// implementation is backed by an afero filesystem, so the same code runs
// against the real OS filesystem and against an in-memory one in tests.
//
// Paths passed to FS are key-form paths as produced by the pathkey package.
// A trailing directory marker is accepted and ignored.
//
// Key features:
//   - Directory listing that reports whether each entry is a directory
//   - Bottom-up recursive removal
//   - Byte-for-byte file copy that creates missing parent directories
package fsops

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/danieljhkim/diredit/internal/pathkey"
)

// DirEntry is one child of a listed directory.
type DirEntry struct {
	Name  string
	IsDir bool
}

// FS provides an abstraction for filesystem operations.
type FS interface {
	// ReadDir lists the children of a directory.
	ReadDir(path string) ([]DirEntry, error)

	// Stat returns file info, following symlinks.
	Stat(path string) (os.FileInfo, error)

	// Exists checks if a path exists without following symlinks.
	Exists(path string) (bool, error)

	// MkdirAll creates a directory and all parent directories.
	MkdirAll(path string) error

	// WriteFile writes data to a file, creating or truncating it.
	WriteFile(path string, data []byte) error

	// ReadFile reads the entire contents of a file.
	ReadFile(path string) ([]byte, error)

	// Remove removes a file or empty directory.
	Remove(path string) error

	// RemoveTree removes a directory by deleting files first and then the
	// emptied directories from the deepest up.
	RemoveTree(path string) error

	// Rename moves a file or directory.
	Rename(oldpath, newpath string) error

	// CopyFile copies file contents from src to dst.
	CopyFile(src, dst string) error
}

const (
	dirPerm  os.FileMode = 0755
	filePerm os.FileMode = 0644
)

// AferoFS implements FS on top of an afero filesystem.
type AferoFS struct {
	fs afero.Fs
}

// New wraps an afero filesystem.
func New(fs afero.Fs) *AferoFS {
	return &AferoFS{fs: fs}
}

// NewRealFS creates an FS backed by the operating system.
func NewRealFS() *AferoFS {
	return New(afero.NewOsFs())
}

// NewMemFS creates an FS backed by memory.
func NewMemFS() *AferoFS {
	return New(afero.NewMemMapFs())
}

// Afero exposes the underlying afero filesystem.
func (a *AferoFS) Afero() afero.Fs {
	return a.fs
}

func native(p string) string {
	return pathkey.ToOS(pathkey.Trim(p))
}

// ReadDir lists the children of a directory. Symlinks report the type of
// their target; a dangling symlink is listed as a file.
func (a *AferoFS) ReadDir(path string) ([]DirEntry, error) {
	dir := native(path)
	infos, err := afero.ReadDir(a.fs, dir)
	if err != nil {
		return nil, err
	}

	entries := make([]DirEntry, 0, len(infos))
	for _, info := range infos {
		isDir := info.IsDir()
		if info.Mode()&os.ModeSymlink != 0 {
			if target, err := a.fs.Stat(filepath.Join(dir, info.Name())); err == nil {
				isDir = target.IsDir()
			}
		}
		entries = append(entries, DirEntry{Name: info.Name(), IsDir: isDir})
	}
	return entries, nil
}

// Stat returns file info, following symlinks.
func (a *AferoFS) Stat(path string) (os.FileInfo, error) {
	return a.fs.Stat(native(path))
}

// Exists checks if a path exists.
func (a *AferoFS) Exists(path string) (bool, error) {
	_, err := a.lstat(native(path))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, err
}

func (a *AferoFS) lstat(p string) (os.FileInfo, error) {
	if l, ok := a.fs.(afero.Lstater); ok {
		info, _, err := l.LstatIfPossible(p)
		return info, err
	}
	return a.fs.Stat(p)
}

// MkdirAll creates a directory and all parent directories.
func (a *AferoFS) MkdirAll(path string) error {
	return a.fs.MkdirAll(native(path), dirPerm)
}

// WriteFile writes data to a file, creating or truncating it.
func (a *AferoFS) WriteFile(path string, data []byte) error {
	return afero.WriteFile(a.fs, native(path), data, filePerm)
}

// ReadFile reads the entire contents of a file.
func (a *AferoFS) ReadFile(path string) ([]byte, error) {
	return afero.ReadFile(a.fs, native(path))
}

// Remove removes a file or empty directory.
func (a *AferoFS) Remove(path string) error {
	return a.fs.Remove(native(path))
}

// RemoveTree removes path and everything below it. Files are removed as the
// walk reaches them; directories are removed afterwards, deepest first.
func (a *AferoFS) RemoveTree(path string) error {
	root := native(path)

	var dirs []string
	err := afero.Walk(a.fs, root, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			dirs = append(dirs, p)
			return nil
		}
		if err := a.fs.Remove(p); err != nil {
			return fmt.Errorf("failed to remove %s: %w", p, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	for i := len(dirs) - 1; i >= 0; i-- {
		if err := a.fs.Remove(dirs[i]); err != nil {
			return fmt.Errorf("failed to remove directory %s: %w", dirs[i], err)
		}
	}
	return nil
}

// Rename moves a file or directory.
func (a *AferoFS) Rename(oldpath, newpath string) error {
	return a.fs.Rename(native(oldpath), native(newpath))
}

// CopyFile copies a single file from src to dst, creating the parent of dst
// if needed. The destination keeps the source's permission bits.
func (a *AferoFS) CopyFile(src, dst string) error {
	srcPath, dstPath := native(src), native(dst)

	srcInfo, err := a.fs.Stat(srcPath)
	if err != nil {
		return fmt.Errorf("failed to stat source: %w", err)
	}
	if srcInfo.IsDir() {
		return fmt.Errorf("cannot copy directory %q as a file", src)
	}

	srcFile, err := a.fs.Open(srcPath)
	if err != nil {
		return fmt.Errorf("failed to open source: %w", err)
	}
	defer func() {
		_ = srcFile.Close()
	}()

	if err := a.fs.MkdirAll(filepath.Dir(dstPath), dirPerm); err != nil {
		return fmt.Errorf("failed to create parent directory: %w", err)
	}

	dstFile, err := a.fs.OpenFile(dstPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, srcInfo.Mode().Perm())
	if err != nil {
		return fmt.Errorf("failed to create destination: %w", err)
	}
	defer func() {
		_ = dstFile.Close()
	}()

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		return fmt.Errorf("failed to copy file contents: %w", err)
	}

	return dstFile.Sync()
}

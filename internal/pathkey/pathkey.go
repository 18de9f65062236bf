// Package pathkey converts filesystem paths into directory keys.
//
// A key is the platform-independent form of a path used to index listing
// snapshots: forward slashes, always a leading slash and never a trailing one
// (except for the root itself). Two spellings of the same directory, such as
// "C:\src\" and "C:/src", map to the same key.
//
// Entry paths built with Join keep a trailing slash for directories so that a
// path alone tells whether it names a directory.
package pathkey

import (
	"fmt"
	"path"
	"path/filepath"
	"runtime"
	"strings"
)

// Root is the key of the filesystem root.
const Root = "/"

// Normalize converts a path in any separator style into a key.
func Normalize(p string) string {
	p = strings.ReplaceAll(p, "\\", "/")
	return path.Clean("/" + p)
}

// FromOS resolves p against the process working directory and returns its key.
func FromOS(p string) (string, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %q: %w", p, err)
	}
	return Normalize(abs), nil
}

// ToOS converts a key or entry path back into a native path.
// A trailing slash is preserved.
func ToOS(key string) string {
	if runtime.GOOS == "windows" && hasDrive(key) {
		key = key[1:]
	}
	return filepath.FromSlash(key)
}

// Join appends an entry name to a directory key.
func Join(key, name string) string {
	if key == Root {
		return Root + name
	}
	return key + "/" + name
}

// IsDir reports whether an entry path names a directory.
func IsDir(p string) bool {
	return strings.HasSuffix(p, "/")
}

// Trim removes the directory marker from an entry path.
func Trim(p string) string {
	if p == Root {
		return p
	}
	return strings.TrimSuffix(p, "/")
}

// IsRoot reports whether key is a filesystem root ("/" or a drive like "/C:").
func IsRoot(key string) bool {
	return key == Root || (hasDrive(key) && len(key) == 3)
}

// Parent returns the key of the directory containing key.
// The parent of a root is the root itself.
func Parent(key string) string {
	if IsRoot(key) {
		return key
	}
	return path.Dir(key)
}

// Dir returns the key of the directory holding an entry path.
func Dir(p string) string {
	return path.Dir(Trim(p))
}

// Base returns the last element of an entry path, keeping the directory marker.
func Base(p string) string {
	base := path.Base(Trim(p))
	if IsDir(p) {
		return base + "/"
	}
	return base
}

func hasDrive(key string) bool {
	return len(key) >= 3 && key[0] == '/' && key[2] == ':' &&
		((key[1] >= 'a' && key[1] <= 'z') || (key[1] >= 'A' && key[1] <= 'Z'))
}

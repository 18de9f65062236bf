package engine

import (
	"path/filepath"
	"strings"

	"github.com/danieljhkim/diredit/internal/pathkey"
)

// resolveKey resolves a user-provided path (absolute, relative, or containing
// "..") against the working directory key and returns its directory key.
func resolveKey(userPath, cwd string) string {
	if userPath == "" {
		return cwd
	}
	if filepath.IsAbs(userPath) || strings.HasPrefix(userPath, "/") {
		return pathkey.Normalize(userPath)
	}
	return pathkey.Normalize(cwd + "/" + userPath)
}

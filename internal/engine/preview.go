package engine

import (
	"bytes"
	"fmt"

	"go.uber.org/zap"

	"github.com/danieljhkim/diredit/internal/entry"
	"github.com/danieljhkim/diredit/internal/pathkey"
)

const (
	previewMaxBytes = 16 * 1024
	previewMaxLines = 200
)

// Preview shows path read-only. Directories are listed with the sentinel
// identifier so the counter is untouched; files show their first lines.
// A new preview replaces the previous one. When previews are disabled it
// returns nil.
func (e *Engine) Preview(path string) (*Preview, error) {
	if !e.previewEnabled {
		return nil, nil
	}
	target := resolveKey(path, e.cwd)

	info, err := e.fs.Stat(target)
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", target, err)
	}

	p := &Preview{IsDir: info.IsDir()}
	if p.IsDir {
		p.Path = pathkey.Join(target, "")
		p.Text, err = e.lister.Text(target, true)
		if err != nil {
			return nil, err
		}
	} else {
		p.Path = target
		data, err := e.fs.ReadFile(target)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", target, err)
		}
		p.Text, p.Truncated = head(data)
	}

	if e.preview != nil && e.preview.Path != p.Path {
		e.previews.Delete(e.preview.Path)
	}
	e.previews.Load(p.Path, p.Text)
	e.preview = p

	e.log.Debug("preview", zap.String("path", p.Path), zap.Bool("dir", p.IsDir))
	return p, nil
}

// CurrentPreview returns the outstanding preview, or nil.
func (e *Engine) CurrentPreview() *Preview {
	return e.preview
}

// ClosePreview tears down the outstanding preview, if any.
func (e *Engine) ClosePreview() {
	if e.preview == nil {
		return
	}
	e.previews.Delete(e.preview.Path)
	e.preview = nil
}

// TogglePreview enables or disables previews and returns the new state.
// Disabling closes the outstanding preview.
func (e *Engine) TogglePreview() bool {
	e.previewEnabled = !e.previewEnabled
	if !e.previewEnabled {
		e.ClosePreview()
	}
	return e.previewEnabled
}

// cursorMoved follows the cursor with the outstanding preview.
func (e *Engine) cursorMoved(key, line string) (*Preview, error) {
	if e.preview == nil || !e.previewEnabled {
		return nil, nil
	}
	target, err := e.Select(key, line)
	if err != nil {
		return nil, err
	}
	if target == e.preview.Path {
		return e.preview, nil
	}
	return e.Preview(target)
}

// head returns at most previewMaxLines lines and previewMaxBytes bytes of data.
func head(data []byte) (string, bool) {
	truncated := false
	if len(data) > previewMaxBytes {
		data = data[:previewMaxBytes]
		truncated = true
	}
	if n := bytes.Count(data, []byte("\n")); n > previewMaxLines {
		lines := entry.SplitLines(string(data))
		return entry.JoinLines(lines[:previewMaxLines]), true
	}
	return string(data), truncated
}

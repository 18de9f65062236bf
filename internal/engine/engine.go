// Package engine provides the orchestration layer of diredit.
//
// The engine sits between the editor host (the CLI) and the reconciliation
// packages. It owns the snapshot store and the listing documents, and runs
// every host event through a single-threaded queue so that a save always
// finishes, or is cancelled, before the next event is looked at.
//
// Key components:
//   - Engine: explicit context object replacing process-wide state
//   - Open/Change/Close: listing buffer lifecycle
//   - Save: resolve, conflict check, confirm, apply, refresh
//   - Preview: read-only view of the entry under the cursor
package engine

import (
	"context"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/danieljhkim/diredit/internal/buffer"
	"github.com/danieljhkim/diredit/internal/clock"
	"github.com/danieljhkim/diredit/internal/config"
	"github.com/danieljhkim/diredit/internal/fsops"
	"github.com/danieljhkim/diredit/internal/lister"
	"github.com/danieljhkim/diredit/internal/pathkey"
	"github.com/danieljhkim/diredit/internal/state"
)

// Prompter asks the user a yes/no question.
type Prompter interface {
	// Confirm shows message and, when non-empty, details. It returns true
	// for yes.
	Confirm(ctx context.Context, message string, details []string) (bool, error)
}

// Options configures a new Engine.
type Options struct {
	// FS is the disk provider
	FS fsops.FS

	// Prompt confirms saves and discarding edits
	Prompt Prompter

	// Host receives refreshed listings; defaults to the engine's documents
	Host buffer.Host

	// Settings are the user settings
	Settings config.Settings

	// Logger is the base logger; nil disables logging
	Logger *zap.Logger

	// CWD is the initial working directory key
	CWD string

	// Clock times plan application; defaults to the system clock
	Clock clock.Clock
}

// Engine orchestrates all diredit operations.
// It is the main API surface called by the CLI.
type Engine struct {
	fs       fsops.FS
	store    *state.Store
	lister   *lister.Lister
	buffers  *buffer.Documents
	previews *buffer.Documents
	host     buffer.Host
	prompt   Prompter
	settings config.Settings
	log      *zap.Logger
	clock    clock.Clock

	cwd            string
	preview        *Preview
	previewEnabled bool
	confirming     atomic.Bool

	tasks     chan task
	done      chan struct{}
	outcomeFn func(Outcome)
}

// New creates a new Engine with the given dependencies.
func New(opts Options) *Engine {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	store := state.NewStore()
	buffers := buffer.NewDocuments(false)

	host := opts.Host
	if host == nil {
		host = buffers
	}
	clk := opts.Clock
	if clk == nil {
		clk = clock.System{}
	}
	cwd := opts.CWD
	if cwd == "" {
		cwd = pathkey.Root
	}

	return &Engine{
		fs:             opts.FS,
		store:          store,
		lister:         lister.New(opts.FS, store, log.Named("lister")),
		buffers:        buffers,
		previews:       buffer.NewDocuments(true),
		host:           host,
		prompt:         opts.Prompt,
		settings:       opts.Settings,
		log:            log.Named("engine"),
		clock:          clk,
		cwd:            pathkey.Normalize(cwd),
		previewEnabled: true,
		tasks:          make(chan task, 64),
		done:           make(chan struct{}),
	}
}

// CWD returns the working directory key.
func (e *Engine) CWD() string {
	return e.cwd
}

// Key resolves a user path against the working directory.
func (e *Engine) Key(path string) string {
	return resolveKey(path, e.cwd)
}

// Store exposes the snapshot store.
func (e *Engine) Store() *state.Store {
	return e.store
}

// Buffers exposes the editable listing documents.
func (e *Engine) Buffers() *buffer.Documents {
	return e.buffers
}

// Previews exposes the read-only preview documents.
func (e *Engine) Previews() *buffer.Documents {
	return e.previews
}

// pushText stores refreshed text in the documents and forwards it to the host.
func (e *Engine) pushText(key, text string) {
	e.buffers.Load(key, text)
	if e.host == buffer.Host(e.buffers) {
		return
	}
	if err := e.host.SetText(key, text); err != nil {
		e.log.Warn("failed to push listing to host", zap.String("dir", key), zap.Error(err))
	}
}

package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/danieljhkim/diredit/internal/engine"
	"github.com/danieljhkim/diredit/internal/entry"
	"github.com/danieljhkim/diredit/internal/pathkey"
)

var editYes bool

var editCmd = &cobra.Command{
	Use:   "edit [dir...]",
	Short: "Edit directory listings in your editor",
	Long: `Open the listing of each directory in your editor.

When the editor exits, every changed listing is compared with the directory
it came from. The resulting creates, copies, moves and deletes are checked
for conflicts and shown for confirmation before anything is touched.

Lines can be moved between listings: a line cut from one directory and
pasted into another is a move, a line duplicated into another is a copy.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runEdit(cmd, args, editYes)
	},
}

// runEdit opens dirs and runs editor sessions until the edits are saved,
// nothing changed, or the user gives up.
func runEdit(cmd *cobra.Command, dirs []string, assumeYes bool) error {
	if len(dirs) == 0 {
		dirs = []string{"."}
	}

	prompt := newPrompter(cmd, assumeYes)
	eng, settings, err := newEngine(cmd, prompt)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	go func() {
		_ = eng.Run(ctx)
	}()

	s := &session{eng: eng, editor: settings.Editor, prompt: prompt, icons: settings.NerdFont}
	for _, dir := range dirs {
		if _, err := s.open(ctx, dir); err != nil {
			return err
		}
	}
	defer s.closeAll(ctx)

	return s.editLoop(ctx)
}

// session is one interactive run against an engine whose event queue is
// running.
type session struct {
	eng    *engine.Engine
	editor string
	prompt engine.Prompter
	icons  bool

	// keys of the open listings, in the order they were opened
	keys []string
}

func (s *session) open(ctx context.Context, dir string) (string, error) {
	out, err := s.eng.Dispatch(ctx, engine.Event{Kind: engine.Opened, Key: dir})
	if err != nil {
		return "", err
	}
	for _, k := range s.keys {
		if k == out.Key {
			_, _ = s.eng.Dispatch(ctx, engine.Event{Kind: engine.Closed, Key: out.Key})
			return out.Key, nil
		}
	}
	s.keys = append(s.keys, out.Key)
	return out.Key, nil
}

func (s *session) close(ctx context.Context, key string) error {
	if _, err := s.eng.Dispatch(ctx, engine.Event{Kind: engine.Closed, Key: key}); err != nil {
		return err
	}
	s.keys = lo.Without(s.keys, key)
	return nil
}

func (s *session) closeAll(ctx context.Context) {
	for _, key := range s.keys {
		_, _ = s.eng.Dispatch(ctx, engine.Event{Kind: engine.Closed, Key: key})
	}
	s.keys = nil
}

// editLoop edits every open listing and saves. A conflicting or declined
// save can be edited again.
func (s *session) editLoop(ctx context.Context) error {
	for {
		changed, err := s.editOnce(ctx)
		if err != nil {
			return err
		}
		if len(changed) == 0 && !s.eng.Store().HasEdits() {
			PrintInfo("No changes.")
			return nil
		}

		key := s.keys[0]
		if len(changed) > 0 {
			key = changed[len(changed)-1]
		}
		out, err := s.eng.Dispatch(ctx, engine.Event{Kind: engine.Saved, Key: key, Text: s.text(key)})
		switch {
		case err == nil:
			return s.reportSave(out.Save)
		case errors.Is(err, engine.ErrConflict):
			PrintConflicts(out.Save.Plan)
		case errors.Is(err, engine.ErrCancelled):
			PrintWarning("Save cancelled, nothing was changed.")
		default:
			return err
		}

		if s.prompt == nil {
			return err
		}
		again, perr := s.prompt.Confirm(ctx, "Edit again?", nil)
		if perr != nil {
			return perr
		}
		if !again {
			return err
		}
	}
}

// editOnce writes the open listings to temporary files, runs the editor on
// them, and posts a Changed event for every listing that came back
// different. It returns the keys that changed.
func (s *session) editOnce(ctx context.Context) ([]string, error) {
	if len(s.keys) == 0 {
		return nil, fmt.Errorf("%w: nothing to edit", engine.ErrNoBuffer)
	}

	dir, err := os.MkdirTemp("", "diredit-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer func() {
		_ = os.RemoveAll(dir)
	}()

	files := make([]string, len(s.keys))
	before := make([]string, len(s.keys))
	for i, key := range s.keys {
		before[i] = s.text(key)
		files[i] = filepath.Join(dir, tempName(i, key))
		if err := os.WriteFile(files[i], []byte(before[i]+"\n"), 0600); err != nil {
			return nil, fmt.Errorf("failed to write listing: %w", err)
		}
	}

	if err := runEditor(ctx, s.editor, files); err != nil {
		return nil, err
	}

	var changed []string
	for i, key := range s.keys {
		data, err := os.ReadFile(files[i])
		if err != nil {
			return nil, fmt.Errorf("failed to read listing back: %w", err)
		}
		after := entry.JoinLines(entry.SplitLines(string(data)))
		if after == before[i] {
			continue
		}
		if _, err := s.eng.Dispatch(ctx, engine.Event{Kind: engine.Changed, Key: key, Text: after}); err != nil {
			return nil, err
		}
		changed = append(changed, key)
	}
	return changed, nil
}

func (s *session) text(key string) string {
	return readBuffer(s.eng, key)
}

// reportSave prints the outcome of a save and the refreshed listings.
func (s *session) reportSave(result *engine.SaveResult) error {
	PrintReport(result.Report)
	for _, key := range result.Closed {
		PrintWarning(fmt.Sprintf("Closed %s: the directory no longer exists", pathkey.ToOS(key)))
		s.keys = lo.Without(s.keys, key)
	}
	for _, key := range s.keys {
		PrintSection(pathkey.ToOS(key))
		printListing(entry.SplitLines(s.text(key)), key, s.icons)
	}

	if result.Report != nil && !result.Report.OK() {
		return fmt.Errorf("%s failed", PrintCount(len(result.Report.Failed), "operation", "operations"))
	}
	return nil
}

var unsafeName = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// tempName names the temporary file of the i-th listing after its directory.
func tempName(i int, key string) string {
	base := strings.Trim(unsafeName.ReplaceAllString(key, "_"), "_")
	if base == "" {
		base = "root"
	}
	return fmt.Sprintf("%02d-%s.diredit", i+1, base)
}

// runEditor runs the editor command on files, attached to the terminal.
// The command may carry arguments, as in "code --wait".
func runEditor(ctx context.Context, editor string, files []string) error {
	fields := strings.Fields(editor)
	if len(fields) == 0 {
		return errors.New("no editor configured: set editor in config.yaml or $EDITOR")
	}

	c := exec.CommandContext(ctx, fields[0], append(fields[1:], files...)...)
	c.Stdin = os.Stdin
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr
	if err := c.Run(); err != nil {
		return fmt.Errorf("editor %q failed: %w", fields[0], err)
	}
	return nil
}

func init() {
	editCmd.Flags().BoolVarP(&editYes, "yes", "y", false, "Apply changes without asking for confirmation")
}

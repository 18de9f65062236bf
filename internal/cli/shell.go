package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/diredit/internal/engine"
	"github.com/danieljhkim/diredit/internal/entry"
	"github.com/danieljhkim/diredit/internal/pathkey"
)

var shellYes bool

const shellHelp = `Commands:
  ls                   show the open listings
  open <dir>           open a listing
  close <dir>          close a listing
  cd <dir>             change the working directory
  up [dir]             open the parent of dir (default: working directory)
  pwd                  print the working directory
  edit                 edit the open listings and save
  plan                 show what the pending edits would do
  select <n> [dir]     print the path on line n of a listing
  preview <path>       preview a path
  cursor <n> [dir]     move the cursor to line n; an open preview follows it
  toggle               enable or disable previews
  quit                 leave the shell`

var shellCmd = &cobra.Command{
	Use:   "shell [dir...]",
	Short: "Browse and edit directories interactively",
	Long: `Start an interactive session. Listings stay open between edits so
identifiers stay stable, and lines can be moved between open listings.

` + shellHelp,
	RunE: func(cmd *cobra.Command, args []string) error {
		in := newStdinPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
		var prompt engine.Prompter = in
		if shellYes {
			prompt = nil
		}

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
		for _, dir := range args {
			if _, err := s.open(ctx, dir); err != nil {
				return err
			}
		}
		defer s.closeAll(ctx)

		return s.repl(ctx, in)
	},
}

// repl reads commands until quit or end of input. Command errors are
// printed and the loop carries on.
func (s *session) repl(ctx context.Context, in *stdinPrompter) error {
	for {
		_, _ = fmt.Fprintf(in.out, "%s> ", pathkey.ToOS(s.eng.CWD()))
		line, err := in.readLine()
		if errors.Is(err, io.EOF) {
			_, _ = fmt.Fprintln(in.out)
			return nil
		}
		if err != nil {
			return err
		}

		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		if fields[0] == "quit" || fields[0] == "q" || fields[0] == "exit" {
			return nil
		}
		if err := s.run(ctx, fields[0], fields[1:]); err != nil {
			PrintError(err.Error())
		}
	}
}

func (s *session) run(ctx context.Context, name string, args []string) error {
	arg := func(i int, def string) string {
		if i < len(args) {
			return args[i]
		}
		return def
	}

	switch name {
	case "help", "?":
		PrintInfo(shellHelp)
	case "ls":
		if len(s.keys) == 0 {
			PrintEmptyState("No open listings.")
		}
		for _, key := range s.keys {
			PrintSection(pathkey.ToOS(key))
			printListing(entry.SplitLines(s.text(key)), key, s.icons)
		}
	case "open":
		key, err := s.open(ctx, arg(0, "."))
		if err != nil {
			return err
		}
		printListing(entry.SplitLines(s.text(key)), key, s.icons)
	case "close":
		return s.close(ctx, s.eng.Key(arg(0, ".")))
	case "cd":
		if _, err := s.eng.Dispatch(ctx, engine.Event{Kind: engine.DirChanged, Key: arg(0, ".")}); err != nil {
			return err
		}
	case "pwd":
		PrintInfo(pathkey.ToOS(s.eng.CWD()))
	case "up":
		key, _, err := s.eng.Parent(s.eng.Key(arg(0, ".")))
		if err != nil {
			return err
		}
		s.track(key)
		printListing(entry.SplitLines(s.text(key)), key, s.icons)
	case "edit":
		return s.editLoop(ctx)
	case "plan":
		plan, err := s.eng.Plan()
		if errors.Is(err, engine.ErrNoChanges) {
			PrintInfo("No changes.")
			return nil
		}
		return printPlan(plan, nil, err)
	case "select":
		path, err := s.lineTarget(args)
		if err != nil {
			return err
		}
		PrintInfo(pathkey.ToOS(path))
	case "preview":
		if len(args) == 0 {
			return errors.New("usage: preview <path>")
		}
		p, err := s.eng.Preview(args[0])
		if err != nil {
			return err
		}
		printPreview(p, s.icons)
	case "cursor":
		line, key, err := s.line(args)
		if err != nil {
			return err
		}
		out, err := s.eng.Dispatch(ctx, engine.Event{Kind: engine.CursorMoved, Key: key, Line: line})
		if err != nil {
			return err
		}
		if out.Preview != nil {
			printPreview(out.Preview, s.icons)
		}
	case "toggle":
		if s.eng.TogglePreview() {
			PrintInfo("Preview enabled.")
		} else {
			PrintInfo("Preview disabled.")
		}
	default:
		return fmt.Errorf("unknown command %q (try help)", name)
	}
	return nil
}

// track records key as open after the engine opened it outside of s.open.
func (s *session) track(key string) {
	for _, k := range s.keys {
		if k == key {
			_ = s.eng.Close(key)
			return
		}
	}
	s.keys = append(s.keys, key)
}

// line returns line n (1-based) of the listing named by args[1], or of the
// working directory.
func (s *session) line(args []string) (string, string, error) {
	if len(args) == 0 {
		return "", "", errors.New("missing line number")
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 {
		return "", "", fmt.Errorf("invalid line number %q", args[0])
	}

	key := s.eng.CWD()
	if len(args) > 1 {
		key = s.eng.Key(args[1])
	}
	if !s.eng.Buffers().Has(key) {
		return "", "", fmt.Errorf("%w: %s", engine.ErrNoBuffer, pathkey.ToOS(key))
	}

	lines := entry.SplitLines(s.text(key))
	if n > len(lines) {
		return "", "", fmt.Errorf("%w: line %d", engine.ErrNoEntry, n)
	}
	return lines[n-1], key, nil
}

func (s *session) lineTarget(args []string) (string, error) {
	line, key, err := s.line(args)
	if err != nil {
		return "", err
	}
	return s.eng.Select(key, line)
}

func init() {
	shellCmd.Flags().BoolVarP(&shellYes, "yes", "y", false, "Apply changes without asking for confirmation")
}

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/danieljhkim/diredit/internal/engine"
	"github.com/danieljhkim/diredit/internal/entry"
	"github.com/danieljhkim/diredit/internal/planner"
)

var (
	applyYes    bool
	applyDryRun bool
)

// planJSON is the --json shape of a plan and its outcome.
type planJSON struct {
	Operations []opJSON           `json:"operations"`
	Conflicts  []planner.Conflict `json:"conflicts,omitempty"`
	Failed     []opJSON           `json:"failed,omitempty"`
	Applied    bool               `json:"applied"`
}

type opJSON struct {
	Type  string `json:"type"`
	Src   string `json:"src,omitempty"`
	Path  string `json:"path"`
	Error string `json:"error,omitempty"`
}

var applyCmd = &cobra.Command{
	Use:   "apply <dir>=<file>...",
	Short: "Apply edited listings read from files",
	Long: `Apply edited listings without an editor.

Each argument pairs a directory with a file holding its edited listing, as
printed by 'diredit ls' and then changed. Use - as the file to read standard
input. All listings are diffed together, so a line may move between them.

Identifiers only mean something to the listings of one 'diredit ls' call.
Print every listing you intend to apply with a single call naming the same
directories; a listing printed by a separate call is rejected.`,
	Example: `  diredit ls src=listing.txt
  $EDITOR listing.txt
  diredit apply src=listing.txt --dry-run

  diredit ls .=top.txt src=src.txt
  $EDITOR top.txt src.txt
  diredit apply .=top.txt src=src.txt`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pairs, err := parseApplyArgs(args)
		if err != nil {
			return err
		}

		// stdin feeds the listing when "-" is used, so it cannot answer prompts.
		assumeYes := applyYes || applyDryRun || usesStdin(pairs)
		eng, _, err := newEngine(cmd, newPrompter(cmd, assumeYes))
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		keys, err := openListings(eng, lo.Map(pairs, func(p applyPair, _ int) string { return p.dir }))
		if err != nil {
			return err
		}
		texts := make([]string, len(pairs))
		for i, p := range pairs {
			if texts[i], err = readListing(cmd.InOrStdin(), p.file); err != nil {
				return err
			}
			if err := eng.CheckListing(keys[i], texts[i]); err != nil {
				return fmt.Errorf("%w: print every listing with a single 'diredit ls' call", err)
			}
		}
		for i := range pairs {
			if err := eng.Change(keys[i], texts[i]); err != nil {
				return err
			}
		}
		lastKey, lastText := keys[len(keys)-1], texts[len(texts)-1]

		if applyDryRun {
			plan, err := eng.Plan()
			if errors.Is(err, engine.ErrNoChanges) {
				PrintInfo("No changes.")
				return nil
			}
			return printPlan(plan, nil, err)
		}

		result, err := eng.Save(ctx, lastKey, lastText)
		if result == nil {
			return err
		}
		return printPlan(result.Plan, result.Report, err)
	},
}

type applyPair struct {
	dir  string
	file string
}

func parseApplyArgs(args []string) ([]applyPair, error) {
	pairs := make([]applyPair, 0, len(args))
	stdinUsed := false
	for _, arg := range args {
		dir, file, ok := strings.Cut(arg, "=")
		if !ok || dir == "" || file == "" {
			return nil, fmt.Errorf("invalid argument %q: expected <dir>=<file>", arg)
		}
		if file == "-" {
			if stdinUsed {
				return nil, errors.New("standard input can only be used once")
			}
			stdinUsed = true
		}
		pairs = append(pairs, applyPair{dir: dir, file: file})
	}
	return pairs, nil
}

func usesStdin(pairs []applyPair) bool {
	for _, p := range pairs {
		if p.file == "-" {
			return true
		}
	}
	return false
}

func readListing(stdin io.Reader, file string) (string, error) {
	var data []byte
	var err error
	if file == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(file)
	}
	if err != nil {
		return "", fmt.Errorf("failed to read listing %s: %w", file, err)
	}
	return entry.JoinLines(entry.SplitLines(string(data))), nil
}

// printPlan prints a plan, its conflicts and, when it was applied, the
// report. err is the error from planning or saving and is returned as is.
func printPlan(plan *planner.Plan, report *engine.ApplyReport, err error) error {
	if jsonOutput {
		out := planJSON{
			Operations: toOpJSON(plan.Operations()),
			Conflicts:  plan.Conflicts,
			Applied:    report != nil,
		}
		if report != nil {
			for _, f := range report.Failed {
				op := toOpJSON([]planner.Operation{f.Op})[0]
				op.Error = f.Err.Error()
				out.Failed = append(out.Failed, op)
			}
		}
		if jerr := outputJSON(out); jerr != nil {
			return jerr
		}
		return err
	}

	if plan.HasConflicts() {
		PrintConflicts(plan)
		return err
	}
	if errors.Is(err, engine.ErrCancelled) {
		PrintWarning("Cancelled, nothing was changed.")
		return err
	}

	ops := plan.Operations()
	if report == nil {
		if len(ops) == 0 {
			PrintInfo("No changes.")
			return err
		}
		PrintSection("Plan")
		PrintInfo(fmt.Sprintf("Would apply %s", PrintCount(len(ops), "operation", "operations")))
		PrintOperations(ops, 1)
		return err
	}

	PrintOperations(report.Applied, 0)
	PrintReport(report)
	if err == nil && !report.OK() {
		return fmt.Errorf("%s failed", PrintCount(len(report.Failed), "operation", "operations"))
	}
	return err
}

func toOpJSON(ops []planner.Operation) []opJSON {
	out := make([]opJSON, 0, len(ops))
	for _, op := range ops {
		out = append(out, opJSON{Type: op.Type, Src: op.Src, Path: op.Path})
	}
	return out
}

func init() {
	applyCmd.Flags().BoolVarP(&applyYes, "yes", "y", false, "Apply changes without asking for confirmation")
	applyCmd.Flags().BoolVar(&applyDryRun, "dry-run", false, "Show what would be applied without applying")
}

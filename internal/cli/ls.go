package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/danieljhkim/diredit/internal/engine"
	"github.com/danieljhkim/diredit/internal/entry"
	"github.com/danieljhkim/diredit/internal/pathkey"
)

var lsIcons bool

// Nerd-font glyphs used with --icons
const (
	iconDir    = "\uf07b"
	iconParent = "\uf062"
	iconFile   = "\uf15b"
)

var iconByExt = map[string]string{
	".go":   "\ue627",
	".md":   "\uf48a",
	".json": "\ue60b",
	".yaml": "\ue6a8",
	".yml":  "\ue6a8",
	".sh":   "\uf489",
	".txt":  "\uf15c",
}

// listingJSON is the --json shape of a listing.
type listingJSON struct {
	Dir     string      `json:"dir"`
	Entries []entryJSON `json:"entries"`
}

type entryJSON struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	IsDir bool   `json:"isDir"`
}

var lsCmd = &cobra.Command{
	Use:   "ls [dir[=file]...]",
	Short: "Print the listing of one or more directories",
	Long: `Print the listing of each directory exactly as it is shown for editing.

Each line is an identifier followed by the entry name. Directories come first
and end with "/"; the parent directory is the "/000 ../" line.

Identifiers are shared by every listing printed by one call, so lines can be
moved between them and given back to 'diredit apply'. Name the same
directories in both calls. A <dir>=<file> argument writes that listing to
file instead of standard output.`,
	Example: `  diredit ls
  diredit ls .=top.txt src=src.txt
  $EDITOR top.txt src.txt
  diredit apply .=top.txt src=src.txt`,
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, settings, err := newEngine(cmd, nil)
		if err != nil {
			return err
		}

		targets, err := parseLsArgs(args)
		if err != nil {
			return err
		}
		keys, err := openListings(eng, lo.Map(targets, func(t lsTarget, _ int) string { return t.dir }))
		if err != nil {
			return err
		}
		defer func() {
			for _, key := range lo.Uniq(keys) {
				_ = eng.Close(key)
			}
		}()

		var shown []string
		for i, t := range targets {
			if t.file == "" {
				shown = append(shown, keys[i])
				continue
			}
			text, err := eng.Buffers().Read(keys[i])
			if err != nil {
				return err
			}
			if err := os.WriteFile(t.file, []byte(text+"\n"), 0644); err != nil {
				return fmt.Errorf("failed to write listing %s: %w", t.file, err)
			}
		}

		if jsonOutput {
			listings := lo.Map(shown, func(key string, _ int) listingJSON {
				lines := entry.SplitLines(readBuffer(eng, key))
				return listingJSON{
					Dir: key,
					Entries: lo.Map(entry.DecodeAll(lines, key), func(e entry.Entry, _ int) entryJSON {
						return entryJSON{ID: e.ID, Name: e.Name, IsDir: e.IsDir}
					}),
				}
			})
			if len(listings) == 1 {
				return outputJSON(listings[0])
			}
			return outputJSON(listings)
		}

		for _, key := range shown {
			if len(shown) > 1 {
				PrintSection(pathkey.ToOS(key))
			}
			printListing(entry.SplitLines(readBuffer(eng, key)), key, lsIcons || settings.NerdFont)
		}
		return nil
	},
}

// lsTarget is a directory to list and, optionally, the file to write to.
type lsTarget struct {
	dir  string
	file string
}

func parseLsArgs(args []string) ([]lsTarget, error) {
	if len(args) == 0 {
		return []lsTarget{{dir: "."}}, nil
	}
	targets := make([]lsTarget, 0, len(args))
	for _, arg := range args {
		dir, file, found := strings.Cut(arg, "=")
		if dir == "" || (found && file == "") {
			return nil, fmt.Errorf("invalid argument %q: expected <dir> or <dir>=<file>", arg)
		}
		targets = append(targets, lsTarget{dir: dir, file: file})
	}
	return targets, nil
}

func readBuffer(eng *engine.Engine, key string) string {
	text, err := eng.Buffers().Read(key)
	if err != nil {
		return ""
	}
	return text
}

// printListing prints listing lines with the identifier dimmed and
// directories colored.
func printListing(lines []string, key string, icons bool) {
	for _, e := range entry.DecodeAll(lines, key) {
		_, _ = idColor.Fprint(stdout, e.ID)
		_, _ = fmt.Fprint(stdout, " ")
		if icons {
			_, _ = fmt.Fprint(stdout, iconFor(e)+" ")
		}
		if e.IsDir {
			_, _ = dirColor.Fprintln(stdout, e.Name)
			continue
		}
		_, _ = fmt.Fprintln(stdout, e.Name)
	}
}

func iconFor(e entry.Entry) string {
	switch {
	case e.IsParent():
		return iconParent
	case e.IsDir:
		return iconDir
	}
	if dot := strings.LastIndex(e.Name, "."); dot > 0 {
		if icon, ok := iconByExt[strings.ToLower(e.Name[dot:])]; ok {
			return icon
		}
	}
	return iconFile
}

func init() {
	lsCmd.Flags().BoolVar(&lsIcons, "icons", false, "Decorate entries with nerd-font icons")
}

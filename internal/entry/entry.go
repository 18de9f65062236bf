// Package entry encodes directory entries as editable text lines.
//
// Each line carries a hidden identifier followed by the entry name:
//
//	/007 notes.txt
//	/008 src/
//
// Because the identifier travels inside the line, cutting, pasting and
// reordering lines in an ordinary editor keeps each entry's identity. The
// identifier "/000" is a sentinel meaning the line has no identity (the parent
// entry and preview rows). A line without a recognizable identifier prefix,
// such as one the user just typed, decodes with an empty identifier.
package entry

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/danieljhkim/diredit/internal/pathkey"
)

// Sentinel is the identifier of lines that are never tracked.
const Sentinel = "/000"

// ParentName is the display name of the synthetic parent-directory entry.
const ParentName = "../"

// ParentLine is the line prepended to every non-root listing.
const ParentLine = Sentinel + " " + ParentName

var idPattern = regexp.MustCompile(`^/\d{3,}$`)

// Entry is a decoded listing line.
type Entry struct {
	// ID is the identifier token, the Sentinel, or "" when the line has none.
	ID string

	// Name is the display name; directories end with "/".
	Name string

	// Dir is the key of the listing the line was read from.
	Dir string

	// IsDir reports whether Name ends with "/".
	IsDir bool
}

// Decode parses a line read from the listing of dir. It never fails: any
// string decodes to an Entry, falling back to an empty identifier.
func Decode(line, dir string) Entry {
	id := ""
	name := line
	if first, rest, found := strings.Cut(line, " "); found && idPattern.MatchString(first) {
		id, name = first, rest
	} else if !found && idPattern.MatchString(line) {
		id, name = line, ""
	}
	name = strings.TrimSpace(name)

	return Entry{
		ID:    id,
		Name:  name,
		Dir:   dir,
		IsDir: strings.HasSuffix(name, "/"),
	}
}

// Encode renders an identifier and name as a listing line.
func Encode(id, name string) string {
	return id + " " + name
}

// FormatID renders a counter value as an identifier token. Values above 999
// widen the token rather than wrapping around.
func FormatID(n int) string {
	return fmt.Sprintf("/%03d", n)
}

// Trackable reports whether the entry carries a real identity.
func (e Entry) Trackable() bool {
	return e.ID != "" && e.ID != Sentinel
}

// Blank reports whether the line had no name.
func (e Entry) Blank() bool {
	return e.Name == ""
}

// IsParent reports whether the entry refers to the parent or current directory.
func (e Entry) IsParent() bool {
	switch e.Name {
	case "..", "../", ".", "./":
		return true
	}
	return false
}

// Path returns the absolute key-form path of the entry.
func (e Entry) Path() string {
	return pathkey.Join(e.Dir, e.Name)
}

// Line re-encodes the entry.
func (e Entry) Line() string {
	if e.ID == "" {
		return e.Name
	}
	return Encode(e.ID, e.Name)
}

// DecodeAll decodes every line of a listing.
func DecodeAll(lines []string, dir string) []Entry {
	entries := make([]Entry, 0, len(lines))
	for _, line := range lines {
		entries = append(entries, Decode(line, dir))
	}
	return entries
}

// SplitLines splits buffer text into lines, accepting "\n" and "\r\n".
// A single trailing newline does not produce an extra empty line.
func SplitLines(text string) []string {
	if text == "" {
		return []string{}
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.TrimSuffix(text, "\n")
	return strings.Split(text, "\n")
}

// JoinLines joins lines with the line terminator used for listings.
func JoinLines(lines []string) string {
	return strings.Join(lines, "\n")
}

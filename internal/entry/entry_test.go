package entry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name string
		line string
		want Entry
	}{
		{
			name: "file with identifier",
			line: "/007 notes.txt",
			want: Entry{ID: "/007", Name: "notes.txt", Dir: "/home"},
		},
		{
			name: "directory with identifier",
			line: "/012 src/",
			want: Entry{ID: "/012", Name: "src/", Dir: "/home", IsDir: true},
		},
		{
			name: "sentinel parent",
			line: "/000 ../",
			want: Entry{ID: Sentinel, Name: "../", Dir: "/home", IsDir: true},
		},
		{
			name: "typed line without identifier",
			line: "newfile.txt",
			want: Entry{ID: "", Name: "newfile.txt", Dir: "/home"},
		},
		{
			name: "name containing spaces",
			line: "/003 my file.txt",
			want: Entry{ID: "/003", Name: "my file.txt", Dir: "/home"},
		},
		{
			name: "typed name with spaces and no identifier",
			line: "my file.txt",
			want: Entry{ID: "", Name: "my file.txt", Dir: "/home"},
		},
		{
			name: "malformed identifier falls back",
			line: "/07 a.txt",
			want: Entry{ID: "", Name: "/07 a.txt", Dir: "/home"},
		},
		{
			name: "letters in identifier fall back",
			line: "/0a7 a.txt",
			want: Entry{ID: "", Name: "/0a7 a.txt", Dir: "/home"},
		},
		{
			name: "widened identifier",
			line: "/1000 big.txt",
			want: Entry{ID: "/1000", Name: "big.txt", Dir: "/home"},
		},
		{
			name: "surrounding whitespace trimmed",
			line: "/004   spaced.txt  ",
			want: Entry{ID: "/004", Name: "spaced.txt", Dir: "/home"},
		},
		{
			name: "identifier only",
			line: "/005",
			want: Entry{ID: "/005", Name: "", Dir: "/home"},
		},
		{
			name: "empty line",
			line: "",
			want: Entry{ID: "", Name: "", Dir: "/home"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Decode(tt.line, "/home"))
		})
	}
}

func TestEncodeDecodeIdentity(t *testing.T) {
	line := Encode("/042", "dir/")
	assert.Equal(t, "/042 dir/", line)

	e := Decode(line, "/x")
	assert.Equal(t, line, e.Line())
	assert.Equal(t, "/x/dir/", e.Path())
}

func TestFormatID(t *testing.T) {
	assert.Equal(t, "/001", FormatID(1))
	assert.Equal(t, "/999", FormatID(999))
	assert.Equal(t, "/1000", FormatID(1000))
}

func TestTrackable(t *testing.T) {
	assert.True(t, Decode("/001 a", "/").Trackable())
	assert.False(t, Decode("/000 a", "/").Trackable())
	assert.False(t, Decode("a", "/").Trackable())
}

func TestIsParent(t *testing.T) {
	for _, name := range []string{"..", "../", ".", "./"} {
		assert.True(t, Decode(name, "/").IsParent(), name)
	}
	assert.False(t, Decode("..foo", "/").IsParent())
}

func TestSplitLines(t *testing.T) {
	assert.Equal(t, []string{}, SplitLines(""))
	assert.Equal(t, []string{"a", "b"}, SplitLines("a\nb\n"))
	assert.Equal(t, []string{"a", "b"}, SplitLines("a\r\nb"))
	assert.Equal(t, []string{"a", "", "b"}, SplitLines("a\n\nb"))
	assert.Equal(t, "a\nb", JoinLines([]string{"a", "b"}))
}

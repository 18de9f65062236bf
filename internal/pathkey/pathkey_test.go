package pathkey

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "already normalized", in: "/home/user", want: "/home/user"},
		{name: "trailing slash", in: "/home/user/", want: "/home/user"},
		{name: "backslashes", in: `C:\src\proj\`, want: "/C:/src/proj"},
		{name: "forward drive path", in: "C:/src/proj", want: "/C:/src/proj"},
		{name: "root", in: "/", want: "/"},
		{name: "empty", in: "", want: "/"},
		{name: "double slashes", in: "//a//b", want: "/a/b"},
		{name: "dot segments", in: "/a/./b/../c", want: "/a/c"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.in); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalize_SameDirectorySameKey(t *testing.T) {
	spellings := []string{`C:\work\dir`, `C:\work\dir\`, "C:/work/dir", "C:/work/dir/"}
	want := Normalize(spellings[0])
	for _, s := range spellings[1:] {
		if got := Normalize(s); got != want {
			t.Errorf("Normalize(%q) = %q, want %q", s, got, want)
		}
	}
}

func TestJoin(t *testing.T) {
	if got := Join("/", "etc/"); got != "/etc/" {
		t.Errorf("Join(/, etc/) = %q", got)
	}
	if got := Join("/a/b", "c.txt"); got != "/a/b/c.txt" {
		t.Errorf("Join(/a/b, c.txt) = %q", got)
	}
}

func TestIsRoot(t *testing.T) {
	tests := map[string]bool{
		"/":       true,
		"/C:":     true,
		"/c:":     true,
		"/C:/x":   false,
		"/home":   false,
		"/ab":     false,
		"/1:":     false,
		"/home/x": false,
	}
	for key, want := range tests {
		if got := IsRoot(key); got != want {
			t.Errorf("IsRoot(%q) = %v, want %v", key, got, want)
		}
	}
}

func TestParentAndDir(t *testing.T) {
	if got := Parent("/a/b"); got != "/a" {
		t.Errorf("Parent(/a/b) = %q", got)
	}
	if got := Parent("/a"); got != "/" {
		t.Errorf("Parent(/a) = %q", got)
	}
	if got := Parent("/"); got != "/" {
		t.Errorf("Parent(/) = %q", got)
	}
	if got := Dir("/a/b/"); got != "/a" {
		t.Errorf("Dir(/a/b/) = %q", got)
	}
	if got := Dir("/a/b.txt"); got != "/a" {
		t.Errorf("Dir(/a/b.txt) = %q", got)
	}
}

func TestBaseAndTrim(t *testing.T) {
	if got := Base("/a/b/"); got != "b/" {
		t.Errorf("Base(/a/b/) = %q", got)
	}
	if got := Base("/a/b.txt"); got != "b.txt" {
		t.Errorf("Base(/a/b.txt) = %q", got)
	}
	if got := Trim("/a/b/"); got != "/a/b" {
		t.Errorf("Trim(/a/b/) = %q", got)
	}
	if got := Trim("/"); got != "/" {
		t.Errorf("Trim(/) = %q", got)
	}
	if !IsDir("/a/") || IsDir("/a") {
		t.Error("IsDir mismatch")
	}
}

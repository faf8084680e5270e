package fsutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestWriteFileAtomic(t *testing.T) {
	dir := t.TempDir()
	dest := filepath.Join(dir, "nested", "out.json")

	if err := WriteFileAtomic(dest, []byte("first"), 0o644); err != nil {
		t.Fatalf("WriteFileAtomic error: %v", err)
	}
	if err := WriteFileAtomic(dest, []byte("second"), 0o644); err != nil {
		t.Fatalf("overwrite error: %v", err)
	}
	b, err := os.ReadFile(dest)
	if err != nil || string(b) != "second" {
		t.Fatalf("content = %q, %v", b, err)
	}

	entries, _ := os.ReadDir(filepath.Dir(dest))
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".tmp-") {
			t.Errorf("temp file left behind: %s", e.Name())
		}
	}
}

func TestDirName(t *testing.T) {
	tests := []struct {
		name     string
		title    string
		fallback string
		want     string
	}{
		{"colon and slash", "Talk: part 1/2", "id", "Talk part 1 2"},
		{"collapse whitespace", "  lots \t of\n space.  ", "id", "lots of space"},
		{"keeps case", "élan Vital", "id", "élan Vital"},
		{"empty title", "", "dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"nothing usable", " ?*... ", "dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"both empty", "", "", ""},
		{"reserved name", "con", "id", "_con"},
		{"reserved with ext", "NUL.txt", "id", "_NUL.txt"},
		{"control runes", "a\x00b\x7fc", "id", "a b c"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DirName(tt.title, tt.fallback); got != tt.want {
				t.Errorf("DirName(%q, %q) = %q; want %q", tt.title, tt.fallback, got, tt.want)
			}
		})
	}
}

func TestDirName_CapsRunes(t *testing.T) {
	got := DirName(strings.Repeat("é", 300), "id")
	if n := utf8.RuneCountInString(got); n != maxDirNameRunes {
		t.Errorf("rune count = %d; want %d", n, maxDirNameRunes)
	}
	if !utf8.ValidString(got) {
		t.Errorf("truncated name is not valid UTF-8")
	}

	// pas de point final après troncature
	got = DirName(strings.Repeat("a", maxDirNameRunes-1)+". tail", "id")
	if strings.HasSuffix(got, ".") || strings.HasSuffix(got, " ") {
		t.Errorf("DirName kept trailing dot/space: %q", got)
	}
}

func TestFileBase(t *testing.T) {
	tests := map[string]string{
		"dQw4w9WgXcQ": "dQw4w9WgXcQ",
		"a/b":         "a_b",
		"x:y?":        "x_y_",
		"":            "untitled",
	}
	for in, want := range tests {
		if got := FileBase(in); got != want {
			t.Errorf("FileBase(%q) = %q; want %q", in, got, want)
		}
	}
}

func TestOutputPath(t *testing.T) {
	got := OutputPath("out", "My: video", "dQw4w9WgXcQ.sentence", ".json")
	want := filepath.Join("out", "My video", "dQw4w9WgXcQ.sentence.json")
	if got != want {
		t.Errorf("OutputPath = %q; want %q", got, want)
	}
	if got := OutputPath("out", "", "a/b", ".txt"); got != filepath.Join("out", "a_b.txt") {
		t.Errorf("OutputPath without subdir = %q", got)
	}
	if got := OutputPath("out", "???", "id.total", ".txt"); got != filepath.Join("out", "id.total.txt") {
		t.Errorf("OutputPath with unusable subdir = %q", got)
	}
}

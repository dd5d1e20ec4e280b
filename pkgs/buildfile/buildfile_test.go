package buildfile

import (
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"runtime"
	"testing"
	"time"
)

type upper struct{}

func (upper) Suffix() string { return ".txt" }

func (upper) Substitute(data []byte) []byte { return bytes.ToUpper(data) }

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}

func TestCandidates(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "b.txt"), "")
	writeFile(t, filepath.Join(dir, "a.txt"), "")
	writeFile(t, filepath.Join(dir, "c.txt.bak"), "")
	writeFile(t, filepath.Join(dir, "Makefile"), "")
	if err := os.Mkdir(filepath.Join(dir, "dir.txt"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir(filepath.Join(dir, "sub"), 0755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, filepath.Join(dir, "sub", "nested.txt"), "")

	got, err := Candidates(dir, ".txt")
	if err != nil {
		t.Fatalf("Candidates: %v", err)
	}
	want := []string{filepath.Join(dir, "a.txt"), filepath.Join(dir, "b.txt")}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Candidates = %v, want %v", got, want)
	}
}

func TestCandidatesMissingDir(t *testing.T) {
	if _, err := Candidates(filepath.Join(t.TempDir(), "missing"), ".txt"); err == nil {
		t.Fatal("Candidates on a missing dir returned nil error")
	}
}

func TestApply(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.txt")
	b := filepath.Join(dir, "b.txt")
	other := filepath.Join(dir, "other.md")
	writeFile(t, a, "hello")
	writeFile(t, b, "DONE")
	writeFile(t, other, "untouched")

	results, err := Apply(dir, upper{}, Options{})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	want := []Result{
		{Path: a, Size: 5, Changed: true},
		{Path: b, Size: 4, Changed: false},
	}
	if !reflect.DeepEqual(results, want) {
		t.Fatalf("Apply results = %+v, want %+v", results, want)
	}
	if got := readFile(t, a); got != "HELLO" {
		t.Fatalf("a.txt = %q, want %q", got, "HELLO")
	}
	if got := readFile(t, other); got != "untouched" {
		t.Fatalf("other.md = %q, want untouched", got)
	}
	if got := Changed(results); len(got) != 1 || got[0].Path != a {
		t.Fatalf("Changed = %+v, want only %s", got, a)
	}
}

func TestApplyDryRun(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.txt")
	writeFile(t, a, "hello")

	results, err := Apply(dir, upper{}, Options{DryRun: true})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if len(results) != 1 || !results[0].Changed {
		t.Fatalf("Apply results = %+v, want one changed file", results)
	}
	if got := readFile(t, a); got != "hello" {
		t.Fatalf("dry run modified a.txt: %q", got)
	}
}

func TestApplyUnchangedKeepsModTime(t *testing.T) {
	dir := t.TempDir()
	b := filepath.Join(dir, "b.txt")
	writeFile(t, b, "DONE")
	old := time.Now().Add(-time.Hour).Truncate(time.Second)
	if err := os.Chtimes(b, old, old); err != nil {
		t.Fatal(err)
	}

	if _, err := Apply(dir, upper{}, Options{}); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	info, err := os.Stat(b)
	if err != nil {
		t.Fatal(err)
	}
	if !info.ModTime().Equal(old) {
		t.Fatalf("mod time = %v, want %v", info.ModTime(), old)
	}
}

func TestApplyKeepsPermissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("permission bits are not preserved on windows")
	}
	dir := t.TempDir()
	a := filepath.Join(dir, "a.txt")
	writeFile(t, a, "hello")
	if err := os.Chmod(a, 0600); err != nil {
		t.Fatal(err)
	}

	if _, err := Apply(dir, upper{}, Options{}); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	info, err := os.Stat(a)
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Fatalf("perm = %v, want %v", perm, os.FileMode(0600))
	}
}

func TestApplyEmptyDir(t *testing.T) {
	results, err := Apply(t.TempDir(), upper{}, Options{})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("Apply results = %+v, want none", results)
	}
}

func TestApplyMissingDir(t *testing.T) {
	if _, err := Apply(filepath.Join(t.TempDir(), "missing"), upper{}, Options{}); err == nil {
		t.Fatal("Apply on a missing dir returned nil error")
	}
}

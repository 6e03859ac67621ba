package driver

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestResolveTargetExplicitFile(t *testing.T) {
	path := writeSpec(t, t.TempDir(), "anything.txt", "x\n")
	got, err := ResolveTarget(path)
	if err != nil {
		t.Fatal(err)
	}
	if got != path {
		t.Errorf("expected %q, got %q", path, got)
	}
}

func TestResolveTargetMissingArg(t *testing.T) {
	if _, err := ResolveTarget(filepath.Join(t.TempDir(), "nope.bs")); err == nil {
		t.Fatalf("expected an error for a nonexistent argument")
	}
}

func TestResolveTargetSourceFileWins(t *testing.T) {
	dir := t.TempDir()
	writeSpec(t, dir, "other.bs", "x\n")
	source := writeSpec(t, dir, "source", "x\n")

	got, err := ResolveTarget(dir)
	if err != nil {
		t.Fatal(err)
	}
	if got != source {
		t.Errorf("expected the source file %q, got %q", source, got)
	}
}

func TestResolveTargetUniqueBsFile(t *testing.T) {
	dir := t.TempDir()
	spec := writeSpec(t, dir, "index.bs", "x\n")
	writeSpec(t, dir, "notes.txt", "x\n")

	got, err := ResolveTarget(dir)
	if err != nil {
		t.Fatal(err)
	}
	if got != spec {
		t.Errorf("expected %q, got %q", spec, got)
	}
}

func TestResolveTargetNoCandidates(t *testing.T) {
	_, err := ResolveTarget(t.TempDir())
	if err == nil || !strings.Contains(err.Error(), "pass a filename") {
		t.Errorf("expected a no-candidates error, got %v", err)
	}
}

func TestResolveTargetAmbiguous(t *testing.T) {
	dir := t.TempDir()
	writeSpec(t, dir, "a.bs", "x\n")
	writeSpec(t, dir, "b.bs", "x\n")

	_, err := ResolveTarget(dir)
	if err == nil || !strings.Contains(err.Error(), "multiple .bs files") {
		t.Errorf("expected an ambiguity error, got %v", err)
	}
}

func TestResolveTargetIgnoresSubdirectories(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "sub.bs"), 0o755); err != nil {
		t.Fatal(err)
	}
	spec := writeSpec(t, dir, "real.bs", "x\n")

	got, err := ResolveTarget(dir)
	if err != nil {
		t.Fatal(err)
	}
	if got != spec {
		t.Errorf("expected %q, got %q", spec, got)
	}
}

package env

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestMerge(t *testing.T) {
	got := Merge(
		Vars{"A": "1", "B": "2"},
		Vars{"B": "overridden", "C": "3"},
	)
	want := Vars{"A": "1", "B": "overridden", "C": "3"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Merge mismatch (-want +got):\n%s", diff)
	}
}

func TestLookup(t *testing.T) {
	vars := Vars{"FIRST": "", "SECOND": "  ", "THIRD": "value"}
	if got := vars.Lookup("FIRST", "SECOND", "THIRD"); got != "value" {
		t.Errorf("Lookup = %q, want %q", got, "value")
	}
	if got := vars.Lookup("MISSING"); got != "" {
		t.Errorf("Lookup missing = %q, want empty", got)
	}
}

func TestLoadEnvFiles(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) {
		t.Helper()
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	write("base.env", "TOKEN=base\nEXTRA=kept\n")
	write("override.env", "TOKEN=override\n")

	got, err := LoadEnvFiles(dir, []string{"base.env", "", "override.env"})
	if err != nil {
		t.Fatalf("LoadEnvFiles: %v", err)
	}
	want := Vars{"TOKEN": "override", "EXTRA": "kept"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("LoadEnvFiles mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadEnvFilesMissing(t *testing.T) {
	if _, err := LoadEnvFiles(t.TempDir(), []string{"absent.env"}); err == nil {
		t.Error("LoadEnvFiles with missing file: want error")
	}
}

package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/totelabel/pkg/errors"
)

func TestCacheDir(t *testing.T) {
	// Clear XDG_CACHE_HOME to test default behavior
	oldXdg := os.Getenv("XDG_CACHE_HOME")
	os.Unsetenv("XDG_CACHE_HOME")
	defer func() {
		if oldXdg != "" {
			os.Setenv("XDG_CACHE_HOME", oldXdg)
		}
	}()

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}

	home, _ := os.UserHomeDir()
	expected := filepath.Join(home, ".cache", appName)
	if dir != expected {
		t.Errorf("cacheDir() = %q, want %q", dir, expected)
	}
	if !strings.Contains(dir, ".cache") {
		t.Errorf("cacheDir() = %q, should contain '.cache'", dir)
	}
}

func TestCacheDirXDG(t *testing.T) {
	customCache := "/tmp/custom-cache"
	oldXdg := os.Getenv("XDG_CACHE_HOME")
	os.Setenv("XDG_CACHE_HOME", customCache)
	defer func() {
		if oldXdg != "" {
			os.Setenv("XDG_CACHE_HOME", oldXdg)
		} else {
			os.Unsetenv("XDG_CACHE_HOME")
		}
	}()

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}

	expected := filepath.Join(customCache, appName)
	if dir != expected {
		t.Errorf("cacheDir() with XDG_CACHE_HOME = %q, want %q", dir, expected)
	}
}

func TestCollectInputsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "totes.csv")
	if err := os.WriteFile(path, []byte("TOTE ID\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	inputs, err := collectInputs(path)
	if err != nil {
		t.Fatalf("collectInputs() error: %v", err)
	}
	if len(inputs) != 1 || inputs[0] != path {
		t.Errorf("collectInputs() = %v, want [%s]", inputs, path)
	}
}

func TestCollectInputsDirectory(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.csv", "a.csv", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	inputs, err := collectInputs(dir)
	if err != nil {
		t.Fatalf("collectInputs() error: %v", err)
	}
	if len(inputs) != 2 {
		t.Fatalf("collectInputs() = %v, want 2 CSV files", inputs)
	}
	// Glob results are sorted, so runs are deterministic.
	if filepath.Base(inputs[0]) != "a.csv" || filepath.Base(inputs[1]) != "b.csv" {
		t.Errorf("collectInputs() = %v, want sorted [a.csv b.csv]", inputs)
	}
}

func TestCollectInputsGlob(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"export-1.csv", "export-2.csv", "other.csv"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	inputs, err := collectInputs(filepath.Join(dir, "export-*.csv"))
	if err != nil {
		t.Fatalf("collectInputs() error: %v", err)
	}
	if len(inputs) != 2 {
		t.Errorf("collectInputs() = %v, want 2 matches", inputs)
	}
}

func TestCollectInputsEmptyDirectory(t *testing.T) {
	_, err := collectInputs(t.TempDir())
	if errors.GetCode(err) != errors.ErrCodeNotFound {
		t.Errorf("expected not-found code, got %v", err)
	}
	// An empty directory is an input problem like a missing file.
	if got := errors.ExitCode(err); got != 2 {
		t.Errorf("ExitCode() = %d, want 2", got)
	}
}

func TestCollectInputsMissing(t *testing.T) {
	_, err := collectInputs(filepath.Join(t.TempDir(), "nope.csv"))
	if errors.GetCode(err) != errors.ErrCodeFileNotFound {
		t.Errorf("expected file-not-found code, got %v", err)
	}
}

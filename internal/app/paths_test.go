package app

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultDBPathUsesFitlogDir(t *testing.T) {
	path, err := DefaultDBPath()
	if err != nil {
		t.Skipf("no user config dir: %v", err)
	}
	if !strings.HasSuffix(path, filepath.Join("fitlog", "fitlog.db")) {
		t.Fatalf("unexpected default path %q", path)
	}
}

func TestEnsureDBDirCreatesParent(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "dir", "fitlog.db")
	if err := EnsureDBDir(path); err != nil {
		t.Fatalf("ensure db dir: %v", err)
	}
	if info, err := os.Stat(filepath.Dir(path)); err != nil || !info.IsDir() {
		t.Fatalf("expected directory to exist, err=%v", err)
	}
}

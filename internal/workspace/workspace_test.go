package workspace

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFind_InStartDir(t *testing.T) {
	root := t.TempDir()
	beads := filepath.Join(root, DirName)
	if err := os.Mkdir(beads, 0o755); err != nil {
		t.Fatal(err)
	}

	got, err := Find(root)
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if got != beads {
		t.Errorf("Find = %q, want %q", got, beads)
	}
}

func TestFind_WalksUpward(t *testing.T) {
	root := t.TempDir()
	beads := filepath.Join(root, DirName)
	nested := filepath.Join(root, "a", "b", "c")
	if err := os.Mkdir(beads, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	got, err := Find(nested)
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if got != beads {
		t.Errorf("Find = %q, want %q", got, beads)
	}
}

func TestFind_IgnoresPlainFile(t *testing.T) {
	// A file named .beads is not a workspace marker.
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, DirName), nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Find(root); err == nil {
		t.Error("Find found a plain file, want error")
	}
}

func TestFind_NotFound(t *testing.T) {
	if _, err := Find(t.TempDir()); err == nil {
		t.Error("Find in empty tree returned nil error")
	}
}

func TestPaths(t *testing.T) {
	dir := filepath.Join("ws", DirName)
	if got, want := SocketPath(dir), filepath.Join(dir, "bd.sock"); got != want {
		t.Errorf("SocketPath = %q, want %q", got, want)
	}
	if got, want := SnapshotPath(dir), filepath.Join(dir, "issues.jsonl"); got != want {
		t.Errorf("SnapshotPath = %q, want %q", got, want)
	}
}

// Package workspace locates the reserved .beads directory that holds a
// workspace's daemon socket and snapshot file.
package workspace

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// DirName is the reserved subdirectory at or above a workspace root.
	DirName = ".beads"
	// SocketName is the daemon's unix socket file inside DirName.
	SocketName = "bd.sock"
	// SnapshotName is the JSONL export file inside DirName.
	SnapshotName = "issues.jsonl"
)

// Find walks upward from start until it finds a directory containing
// DirName, and returns the path of that DirName directory. It stops at the
// filesystem root.
func Find(start string) (string, error) {
	cur, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", start, err)
	}
	for {
		candidate := filepath.Join(cur, DirName)
		if fi, err := os.Stat(candidate); err == nil && fi.IsDir() {
			return candidate, nil
		}
		parent := filepath.Dir(cur)
		if parent == cur {
			return "", fmt.Errorf("no %s directory found at or above %s", DirName, start)
		}
		cur = parent
	}
}

// SocketPath returns the daemon socket path inside a .beads directory.
func SocketPath(beadsDir string) string {
	return filepath.Join(beadsDir, SocketName)
}

// SnapshotPath returns the snapshot file path inside a .beads directory.
func SnapshotPath(beadsDir string) string {
	return filepath.Join(beadsDir, SnapshotName)
}

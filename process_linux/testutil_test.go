//go:build linux

package process_linux

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"
)

// writeStat creates <root>/<pid>/stat with the given content.
func writeStat(t *testing.T, root string, pid int, content string) {
	t.Helper()
	dir := filepath.Join(root, strconv.Itoa(pid))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", dir, err)
	}
	if err := os.WriteFile(filepath.Join(dir, "stat"), []byte(content), 0o644); err != nil {
		t.Fatalf("write stat for %d: %v", pid, err)
	}
}

//go:build linux

package process_linux

import (
	"errors"
	"os"
	"testing"

	"ptyslave/process"
)

func TestParentPID_CurrentProcess(t *testing.T) {
	ppid, err := ParentPID(Self())
	if err != nil {
		t.Fatalf("ParentPID(self) error: %v", err)
	}
	if int(ppid) != os.Getppid() {
		t.Errorf("ParentPID(self) = %d, want %d", ppid, os.Getppid())
	}
}

func TestParentPID_InvalidPID(t *testing.T) {
	_, err := ParentPID(-1)
	if !errors.Is(err, process.ErrProcessNotFound) {
		t.Errorf("ParentPID(-1) error = %v, want ErrProcessNotFound", err)
	}
}

func TestAncestry(t *testing.T) {
	root := t.TempDir()
	writeStat(t, root, 300, "300 (vim) S 200 300 100 34817")
	writeStat(t, root, 200, "200 (bash) S 100 200 100 34817")
	writeStat(t, root, 100, "100 (login) S 1 100 100 34817")
	writeStat(t, root, 1, "1 (systemd) S 0 1 1 0")

	r := NewRecordReader(root)

	tests := []struct {
		name  string
		pid   process.ProcessID
		depth int
		want  []process.ProcessID
	}{
		{"self only", 300, 0, []process.ProcessID{300}},
		{"two hops", 300, 2, []process.ProcessID{300, 200, 100}},
		{"reaches init", 300, 10, []process.ProcessID{300, 200, 100, 1}},
		{"starts at init", 1, 3, []process.ProcessID{1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chain, err := r.Ancestry(tt.pid, tt.depth)
			if err != nil {
				t.Fatalf("Ancestry(%d, %d) error: %v", tt.pid, tt.depth, err)
			}
			if len(chain) != len(tt.want) {
				t.Fatalf("Ancestry(%d, %d) returned %d records, want %d", tt.pid, tt.depth, len(chain), len(tt.want))
			}
			for i, rec := range chain {
				if rec.PID != tt.want[i] {
					t.Errorf("chain[%d].PID = %d, want %d", i, rec.PID, tt.want[i])
				}
			}
		})
	}
}

func TestAncestry_VanishedParent(t *testing.T) {
	root := t.TempDir()
	writeStat(t, root, 300, "300 (vim) S 200 300 100 34817")

	chain, err := NewRecordReader(root).Ancestry(300, 2)
	if err != nil {
		t.Fatalf("Ancestry error: %v", err)
	}
	if len(chain) != 1 {
		t.Errorf("Ancestry returned %d records, want 1", len(chain))
	}
}

func TestAncestry_MissingStart(t *testing.T) {
	_, err := NewRecordReader(t.TempDir()).Ancestry(300, 2)
	if !errors.Is(err, process.ErrProcessNotFound) {
		t.Errorf("Ancestry error = %v, want ErrProcessNotFound", err)
	}
}

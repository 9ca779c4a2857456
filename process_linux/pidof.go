//go:build linux

package process_linux

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"ptyslave/process"
)

// ListByName returns the records of all processes whose comm or exe basename
// equals name, lowest pid first. Matching is case-sensitive (like pidof).
// Comm is capped at process.MaxCommLength bytes, so longer names only match
// through the exe link.
func (r *RecordReader) ListByName(name string) ([]process.ProcessRecord, error) {
	if name == "" {
		return nil, errors.New("empty name")
	}

	entries, err := os.ReadDir(r.procRoot)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", r.procRoot, err)
	}

	selfPID := os.Getpid()
	var out []process.ProcessRecord

	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		pid, err := strconv.Atoi(e.Name())
		if err != nil || pid <= 0 {
			continue // not a PID dir
		}
		if pid == selfPID {
			continue // skip ourselves
		}

		// The process may exit between ReadDir and here.
		record, err := r.Read(process.ProcessID(pid))
		if err != nil {
			continue
		}
		if record.Comm == name {
			out = append(out, record)
			continue
		}

		// Resolve /proc/<pid>/exe symlink; may fail if zombie or permission
		exe, _ := os.Readlink(filepath.Join(r.procRoot, e.Name(), "exe"))
		if exe != "" && filepath.Base(exe) == name {
			out = append(out, record)
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].PID < out[j].PID })
	return out, nil
}

// ListByName returns the records of processes named name from /proc
func ListByName(name string) ([]process.ProcessRecord, error) {
	return defaultReader.ListByName(name)
}

//go:build linux

package process_linux

import (
	"os"

	"ptyslave/process"
)

// Self returns the pid of the calling process
func Self() process.ProcessID {
	return process.ProcessID(os.Getpid())
}

// ParentPID returns the parent pid of pid as recorded in /proc
func ParentPID(pid process.ProcessID) (process.ProcessID, error) {
	return defaultReader.ParentPID(pid)
}

// ParentPID returns the parent pid of pid
func (r *RecordReader) ParentPID(pid process.ProcessID) (process.ProcessID, error) {
	record, err := r.Read(pid)
	if err != nil {
		return 0, err
	}
	return record.PPID, nil
}

// Ancestry returns the record of pid followed by at most depth ancestors.
// The walk stops early at init (pid 1), at a pid whose parent is 0 or itself,
// or when an ancestor exits between reads; only the first read may fail.
func (r *RecordReader) Ancestry(pid process.ProcessID, depth int) ([]process.ProcessRecord, error) {
	record, err := r.Read(pid)
	if err != nil {
		return nil, err
	}

	chain := []process.ProcessRecord{record}
	for i := 0; i < depth; i++ {
		if record.PID <= 1 || record.PPID <= 0 || record.PPID == record.PID {
			break
		}
		parent, err := r.Read(record.PPID)
		if err != nil {
			r.log.Debugln("Ancestry stopped at", record.PPID, err)
			break
		}
		chain = append(chain, parent)
		record = parent
	}
	return chain, nil
}

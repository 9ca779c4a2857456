package process

import "fmt"

// MaxCommLength is the longest command name the kernel reports (TASK_COMM_LEN - 1).
const MaxCommLength = 15

// ProcessID represents a unique identifier for a process
type ProcessID int

// ProcessRecord is a snapshot of the leading fields of /proc/[pid]/stat.
// A record is never updated; read the pid again to observe newer state.
type ProcessRecord struct {
	PID     ProcessID    // Process ID
	Comm    string       // Command name, at most MaxCommLength bytes
	State   ProcessState // Process state (R, S, D, Z, etc.)
	PPID    ProcessID    // Parent Process ID
	PGRP    ProcessID    // Process group ID
	Session ProcessID    // Session ID
	TTYNr   uint32       // Packed device number of the controlling terminal
}

// HasTerminal reports whether the kernel recorded a controlling terminal.
func (r ProcessRecord) HasTerminal() bool {
	return r.TTYNr != 0
}

func (r ProcessRecord) String() string {
	return fmt.Sprintf("pid=%d comm=%q state=%s ppid=%d pgrp=%d session=%d tty_nr=%#x",
		r.PID, r.Comm, r.State, r.PPID, r.PGRP, r.Session, r.TTYNr)
}

//go:build linux

package pty_linux

import (
	"fmt"
	"path/filepath"
	"strconv"

	"ptyslave/process"
	"ptyslave/process_linux"

	"github.com/Moonlight-Companies/gologger/coloransi"
	"github.com/Moonlight-Companies/gologger/logger"
)

// MaxParentHops is how many ancestors are tried after the process itself.
// Further up the tree the terminal is less likely to be the one the process
// renders to, so the walk stops here.
const MaxParentHops = 2

// RecordSource reads process records
type RecordSource interface {
	Read(pid process.ProcessID) (process.ProcessRecord, error)
}

// DirectorySource lists the directories that hold pty slave nodes
type DirectorySource interface {
	SlaveDirectories() ([]string, error)
}

// Resolver finds the pty slave device file of a process
type Resolver struct {
	records       RecordSource
	directories   DirectorySource
	deviceID      func(path string) (uint64, error)
	maxParentHops int
	log           *logger.Logger
}

// NewResolver creates a Resolver reading records from records and pty slave
// directories from directories
func NewResolver(records RecordSource, directories DirectorySource) *Resolver {
	return &Resolver{
		records:       records,
		directories:   directories,
		deviceID:      deviceID,
		maxParentHops: MaxParentHops,
		log:           logger.NewLogger(coloransi.Color(coloransi.ColorPurple, coloransi.ColorOrange, "pty-resolver")),
	}
}

var defaultResolver = NewResolver(process_linux.NewRecordReader(process_linux.DefaultProcRoot), defaultDriverTable)

// Resolve finds the pty slave of pid using /proc and /proc/tty/drivers
func Resolve(pid process.ProcessID) (string, bool, error) {
	return defaultResolver.Resolve(pid)
}

// Resolve returns the path of the pty slave pid is attached to. When pid's
// own terminal has no matching node, its parent and grandparent are tried.
//
// found is false with a nil error when no pty was found; that is a normal
// outcome for daemons. Errors reading a record (process.ErrProcessNotFound,
// process.ErrMalformedRecord) end the search and are returned as is.
func (r *Resolver) Resolve(pid process.ProcessID) (path string, found bool, err error) {
	var dirs []string
	current := pid

	for depth := 0; ; depth++ {
		record, err := r.records.Read(current)
		if err != nil {
			return "", false, err
		}

		if depth == 0 {
			dirs, err = r.directories.SlaveDirectories()
			if err != nil {
				return "", false, fmt.Errorf("pty slave directories: %w", err)
			}
		}

		if path, ok := r.match(record, dirs); ok {
			r.log.Debugln("Resolved pid", pid, "to", path, "at depth", depth)
			return path, true, nil
		}

		if depth >= r.maxParentHops {
			break
		}
		if record.PPID <= 0 || record.PPID == record.PID {
			r.log.Debugln("Pid", record.PID, "has no parent to try")
			break
		}
		current = record.PPID
	}

	r.log.Debugln("No pty slave for pid", pid)
	return "", false, nil
}

// match looks for <dir>/<minor> in each directory, in order, whose st_rdev
// equals the record's tty_nr. Comparing the full tty_nr rather than the minor
// keeps another driver's node with the same minor from matching.
func (r *Resolver) match(record process.ProcessRecord, dirs []string) (string, bool) {
	if !record.HasTerminal() {
		r.log.Debugln("Pid", record.PID, "has no controlling terminal")
		return "", false
	}

	minor := strconv.FormatUint(uint64(MinorDeviceNumber(record.TTYNr)), 10)
	for _, dir := range dirs {
		candidate := filepath.Join(dir, minor)
		id, err := r.deviceID(candidate)
		if err != nil {
			continue
		}
		if id == uint64(record.TTYNr) {
			return candidate, true
		}
		r.log.Debugln("Skipping", candidate, "rdev", fmt.Sprintf("%#x", id), "tty_nr", fmt.Sprintf("%#x", record.TTYNr))
	}
	return "", false
}

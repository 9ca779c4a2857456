//go:build linux

package pty_linux

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"sync"

	"github.com/Moonlight-Companies/gologger/coloransi"
	"github.com/Moonlight-Companies/gologger/logger"
)

const (
	// DefaultDriversPath is the kernel's table of registered tty drivers
	DefaultDriversPath = "/proc/tty/drivers"

	// PtySlaveDriverName is the name the pty slave driver registers under
	PtySlaveDriverName = "pty_slave"
)

// driverPattern matches "<name> <base path> <major> <minors> <type>".
// Names may contain spaces, so the name is matched lazily up to the first
// run of spaces followed by a /dev/ path.
var driverPattern = regexp.MustCompile(`^((?:\S| )+?) +(/dev/\S+) `)

// DriverTableEntry is one row of /proc/tty/drivers
type DriverTableEntry struct {
	Name     string // Driver name, e.g. "pty_slave"
	BasePath string // Device node or directory, e.g. "/dev/pts"
}

// ParseDrivers reads a tty drivers table. Lines that do not carry a /dev/
// path are skipped.
func ParseDrivers(r io.Reader) ([]DriverTableEntry, error) {
	var entries []DriverTableEntry
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		m := driverPattern.FindStringSubmatch(scanner.Text())
		if m == nil {
			continue
		}
		entries = append(entries, DriverTableEntry{Name: m[1], BasePath: m[2]})
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}

// DriverTable lists the pty slave directories registered in a drivers file.
// The first successful read is kept for the lifetime of the table; the kernel
// does not change its driver registrations while we run.
type DriverTable struct {
	path string
	log  *logger.Logger

	mu     sync.Mutex
	loaded bool
	dirs   []string
}

// NewDriverTable creates a DriverTable over the drivers file at path
func NewDriverTable(path string) *DriverTable {
	if path == "" {
		path = DefaultDriversPath
	}
	return &DriverTable{
		path: path,
		log:  logger.NewLogger(coloransi.Color(coloransi.ColorOrange, coloransi.ColorPurple, "tty-drivers")),
	}
}

var defaultDriverTable = NewDriverTable(DefaultDriversPath)

// SlaveDirectories returns the pty slave directories of /proc/tty/drivers
func SlaveDirectories() ([]string, error) {
	return defaultDriverTable.SlaveDirectories()
}

// SlaveDirectories returns the base paths of every pty_slave driver in table
// order. Later calls return the same slice, which callers must not modify.
// An empty result is not an error. Read failures are returned and retried on
// the next call.
func (t *DriverTable) SlaveDirectories() ([]string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.loaded {
		return t.dirs, nil
	}

	file, err := os.Open(t.path)
	if err != nil {
		return nil, fmt.Errorf("open tty drivers: %w", err)
	}
	defer file.Close()

	entries, err := ParseDrivers(file)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", t.path, err)
	}

	dirs := []string{}
	for _, entry := range entries {
		if entry.Name == PtySlaveDriverName {
			dirs = append(dirs, entry.BasePath)
		}
	}

	if len(dirs) == 0 {
		t.log.Warn("No ", PtySlaveDriverName, " driver registered in ", t.path)
	} else {
		t.log.Debugln("Pty slave directories:", dirs)
	}

	t.dirs = dirs
	t.loaded = true
	return t.dirs, nil
}

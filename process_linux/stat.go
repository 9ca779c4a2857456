//go:build linux

package process_linux

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"regexp"
	"strconv"

	"ptyslave/process"

	"github.com/Moonlight-Companies/gologger/coloransi"
	"github.com/Moonlight-Companies/gologger/logger"
)

// DefaultProcRoot is where procfs is mounted.
const DefaultProcRoot = "/proc"

// statPattern matches the leading fields of /proc/[pid]/stat.
// The comm bound must stay at process.MaxCommLength: a name such as "a) S 1"
// would otherwise let the match end early and shift every following field.
var statPattern = regexp.MustCompile(
	`^([-+]?\d+) ` +
		`\((.{0,` + strconv.Itoa(process.MaxCommLength) + `})\) ` +
		`(.) ` +
		`([-+]?\d+) ` +
		`([-+]?\d+) ` +
		`([-+]?\d+) ` +
		`([-+]?\d+)`)

// RecordReader reads process records from a procfs tree
type RecordReader struct {
	procRoot string
	log      *logger.Logger
}

// NewRecordReader creates a RecordReader rooted at procRoot (usually DefaultProcRoot)
func NewRecordReader(procRoot string) *RecordReader {
	if procRoot == "" {
		procRoot = DefaultProcRoot
	}
	return &RecordReader{
		procRoot: procRoot,
		log:      logger.NewLogger(coloransi.Color(coloransi.ColorPurple, coloransi.ColorOrange, "proc-record")),
	}
}

var defaultReader = NewRecordReader(DefaultProcRoot)

// ReadRecord reads the record of pid from /proc
func ReadRecord(pid process.ProcessID) (process.ProcessRecord, error) {
	return defaultReader.Read(pid)
}

// Read opens <procRoot>/<pid>/stat and parses it.
// A missing or unreadable file yields process.ErrProcessNotFound.
func (r *RecordReader) Read(pid process.ProcessID) (process.ProcessRecord, error) {
	statPath := filepath.Join(r.procRoot, strconv.Itoa(int(pid)), "stat")
	data, err := os.ReadFile(statPath)
	if err != nil {
		r.log.Debugln("Failed to read", statPath, err)
		return process.ProcessRecord{}, fmt.Errorf("pid %d: %w: %v", pid, process.ErrProcessNotFound, err)
	}

	record, err := ParseRecord(data)
	if err != nil {
		return process.ProcessRecord{}, fmt.Errorf("pid %d: %w", pid, err)
	}
	return record, nil
}

// ParseRecord parses the leading seven fields of a /proc/[pid]/stat record.
// Fields after tty_nr are ignored.
func ParseRecord(data []byte) (process.ProcessRecord, error) {
	m := statPattern.FindSubmatch(data)
	if m == nil {
		return process.ProcessRecord{}, fmt.Errorf("%w: unexpected stat layout", process.ErrMalformedRecord)
	}

	var ids [4]int
	for i, field := range [][]byte{m[1], m[4], m[5], m[6]} {
		n, err := strconv.Atoi(string(field))
		if err != nil {
			return process.ProcessRecord{}, fmt.Errorf("%w: %v", process.ErrMalformedRecord, err)
		}
		ids[i] = n
	}

	ttyNr, err := parseTTYNr(string(m[7]))
	if err != nil {
		return process.ProcessRecord{}, err
	}

	return process.ProcessRecord{
		PID:     process.ProcessID(ids[0]),
		Comm:    string(m[2]),
		State:   process.ProcessState(m[3]),
		PPID:    process.ProcessID(ids[1]),
		PGRP:    process.ProcessID(ids[2]),
		Session: process.ProcessID(ids[3]),
		TTYNr:   ttyNr,
	}, nil
}

// parseTTYNr accepts both the signed form the kernel prints (%d) and the
// unsigned 32-bit form, keeping the low 32 bits.
func parseTTYNr(field string) (uint32, error) {
	n, err := strconv.ParseInt(field, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: tty_nr: %v", process.ErrMalformedRecord, err)
	}
	if n < math.MinInt32 || n > math.MaxUint32 {
		return 0, fmt.Errorf("%w: tty_nr %d out of range", process.ErrMalformedRecord, n)
	}
	return uint32(n), nil
}

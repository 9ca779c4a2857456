//go:build linux

// Package pty_linux maps a process to the pty slave device it is attached to.
package pty_linux

import (
	"golang.org/x/sys/unix"
)

// MinorDeviceNumber extracts the minor number from a tty_nr value.
// The kernel keeps minor bits 0-7 in bits 0-7 and minor bits 8-19 in bits 20-31.
func MinorDeviceNumber(ttyNr uint32) uint32 {
	return (ttyNr & 0xFF) + ((ttyNr & 0xFFF00000) >> 12)
}

// MajorDeviceNumber extracts the major number (bits 8-19) from a tty_nr value
func MajorDeviceNumber(ttyNr uint32) uint32 {
	return (ttyNr >> 8) & 0xFFF
}

// deviceID returns st_rdev of the node at path
func deviceID(path string) (uint64, error) {
	var st unix.Stat_t
	if err := unix.Stat(path, &st); err != nil {
		return 0, err
	}
	return uint64(st.Rdev), nil
}

package process

import "testing"

func TestProcessRecordHasTerminal(t *testing.T) {
	tests := []struct {
		name  string
		ttyNr uint32
		want  bool
	}{
		{"no terminal", 0, false},
		{"pts/0", 0x8800, true},
		{"tty1", 0x0401, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := ProcessRecord{PID: 42, TTYNr: tt.ttyNr}
			if got := r.HasTerminal(); got != tt.want {
				t.Errorf("HasTerminal() with tty_nr %#x = %v, want %v", tt.ttyNr, got, tt.want)
			}
		})
	}
}

func TestProcessStateIsAlive(t *testing.T) {
	tests := []struct {
		state ProcessState
		want  bool
	}{
		{ProcessRunning, true},
		{ProcessSleeping, true},
		{ProcessStopped, true},
		{ProcessIdle, true},
		{ProcessZombie, false},
		{ProcessDead, false},
	}

	for _, tt := range tests {
		if got := tt.state.IsAlive(); got != tt.want {
			t.Errorf("ProcessState(%q).IsAlive() = %v, want %v", tt.state, got, tt.want)
		}
	}
}

func TestProcessRecordString(t *testing.T) {
	r := ProcessRecord{PID: 42, Comm: "bash", State: ProcessSleeping, PPID: 1, PGRP: 42, Session: 42, TTYNr: 34816}
	want := `pid=42 comm="bash" state=S ppid=1 pgrp=42 session=42 tty_nr=0x8800`
	if got := r.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

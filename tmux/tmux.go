// Package tmux lists the tmux clients that display the pane this program runs in.
package tmux

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"ptyslave/process"

	"github.com/Moonlight-Companies/gologger/coloransi"
	"github.com/Moonlight-Companies/gologger/logger"
)

// PaneEnv is set by tmux for every process started inside a pane
const PaneEnv = "TMUX_PANE"

var (
	// ErrNotInTmux is returned when the current process does not run inside a tmux pane.
	ErrNotInTmux = errors.New("not running inside tmux")

	// ErrNoServer is returned when no tmux server answers on the socket.
	ErrNoServer = errors.New("no tmux server running")
)

// Pane returns the pane id (e.g. "%3") this process runs in
func Pane() (string, bool) {
	pane := os.Getenv(PaneEnv)
	return pane, pane != ""
}

// IsUsed reports whether this process runs inside tmux
func IsUsed() bool {
	_, ok := Pane()
	return ok
}

// Client runs tmux commands against one server
type Client struct {
	binary string
	socket string
	log    *logger.Logger
}

// NewClient creates a Client. An empty binary means "tmux" from PATH; an
// empty socket means the default server.
func NewClient(binary, socket string) *Client {
	if binary == "" {
		binary = "tmux"
	}
	return &Client{
		binary: binary,
		socket: socket,
		log:    logger.NewLogger(coloransi.Color(coloransi.Red, coloransi.ColorOrange, "tmux")),
	}
}

// Clients returns the pids of the clients displaying the current pane
func (c *Client) Clients(ctx context.Context) ([]process.ProcessID, error) {
	pane, ok := Pane()
	if !ok {
		return nil, ErrNotInTmux
	}

	out, err := c.run(ctx, "list-clients", "-F", "#{client_pid}", "-t", pane)
	if err != nil {
		return nil, err
	}
	return parseClientPIDs(out)
}

// ClientTTYsByPID maps each client displaying the current pane to its tty
func (c *Client) ClientTTYsByPID(ctx context.Context) (map[process.ProcessID]string, error) {
	pane, ok := Pane()
	if !ok {
		return nil, ErrNotInTmux
	}

	out, err := c.run(ctx, "list-clients", "-F", "#{client_pid},#{client_tty}", "-t", pane)
	if err != nil {
		return nil, err
	}
	return parseClientTTYs(out)
}

func (c *Client) run(ctx context.Context, args ...string) (string, error) {
	var allArgs []string
	if c.socket != "" {
		allArgs = append(allArgs, "-L", c.socket)
	}
	allArgs = append(allArgs, args...)

	cmd := exec.CommandContext(ctx, c.binary, allArgs...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	c.log.Debugln("Running", c.binary, strings.Join(allArgs, " "))
	if err := cmd.Run(); err != nil {
		return "", wrapError(err, stderr.String(), args)
	}
	return stdout.String(), nil
}

// wrapError maps tmux failures to ErrNoServer where the message says so.
func wrapError(err error, stderr string, args []string) error {
	stderr = strings.TrimSpace(stderr)

	if strings.Contains(stderr, "no server running") ||
		strings.Contains(stderr, "error connecting to") ||
		strings.Contains(stderr, "server exited unexpectedly") {
		return ErrNoServer
	}

	if stderr != "" {
		return fmt.Errorf("tmux %s: %s", strings.Join(args, " "), stderr)
	}
	return fmt.Errorf("tmux %s: %w", strings.Join(args, " "), err)
}

// parseClientPIDs parses one pid per line
func parseClientPIDs(output string) ([]process.ProcessID, error) {
	var pids []process.ProcessID
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		pid, err := strconv.Atoi(line)
		if err != nil {
			return nil, fmt.Errorf("tmux client pid %q: %w", line, err)
		}
		pids = append(pids, process.ProcessID(pid))
	}
	return pids, nil
}

// parseClientTTYs parses "pid,tty" lines. The tty is everything after the
// first comma.
func parseClientTTYs(output string) (map[process.ProcessID]string, error) {
	ttys := make(map[process.ProcessID]string)
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		pidField, tty, ok := strings.Cut(line, ",")
		if !ok {
			return nil, fmt.Errorf("tmux client line %q: missing tty", line)
		}
		pid, err := strconv.Atoi(pidField)
		if err != nil {
			return nil, fmt.Errorf("tmux client pid %q: %w", pidField, err)
		}
		ttys[process.ProcessID(pid)] = tty
	}
	return ttys, nil
}

//go:build linux

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"sort"
	"time"

	"ptyslave/config"
	"ptyslave/process"
	"ptyslave/process_linux"
	"ptyslave/pty_linux"
	"ptyslave/tmux"

	"github.com/Moonlight-Companies/gologger/coloransi"
	"github.com/Moonlight-Companies/gologger/logger"
	psprocess "github.com/shirou/gopsutil/v3/process"
)

const (
	exitError    = 1
	exitNotFound = 2
)

func main() {
	pidFlag := flag.Int("pid", os.Getppid(), "Process ID to resolve (default: the calling shell)")
	configFlag := flag.String("config", "", "Path to a yaml config file")
	nameFlag := flag.String("name", "", "Resolve every process with this command name instead of -pid")
	tmuxFlag := flag.Bool("tmux", false, "Resolve the ttys of the tmux clients showing the current pane")
	explainFlag := flag.Bool("explain", false, "Print every process the search looks at")
	flag.Parse()

	log := logger.NewLogger(coloransi.Color(coloransi.ColorPurple, coloransi.ColorOrange, "ptyslave"))

	cfg := config.Default()
	if *configFlag != "" {
		loaded, err := config.Load(*configFlag)
		if err != nil {
			fmt.Printf("Error loading config %s: %v\n", *configFlag, err)
			os.Exit(exitError)
		}
		cfg = loaded
	}

	records := process_linux.NewRecordReader(cfg.Proc.Root)
	resolver := pty_linux.NewResolver(records, pty_linux.NewDriverTable(cfg.Proc.TTYDrivers))

	if *tmuxFlag {
		os.Exit(resolveTmuxClients(log, cfg, resolver))
	}

	if *nameFlag != "" {
		os.Exit(resolveByName(log, records, resolver, *nameFlag))
	}

	pid := process.ProcessID(*pidFlag)
	if *explainFlag {
		explain(records, pid)
	}

	path, found, err := resolver.Resolve(pid)
	if err != nil {
		fmt.Printf("Error resolving pid %d: %v\n", pid, err)
		os.Exit(exitError)
	}
	if !found {
		log.Infoln("No pty slave found for pid", pid)
		os.Exit(exitNotFound)
	}

	fmt.Println(path)
}

// resolveTmuxClients prints "<client pid> <client tty> <resolved pty>" for
// every tmux client showing the current pane.
func resolveTmuxClients(log *logger.Logger, cfg *config.Config, resolver *pty_linux.Resolver) int {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	ttys, err := tmux.NewClient(cfg.Tmux.Binary, cfg.Tmux.Socket).ClientTTYsByPID(ctx)
	if errors.Is(err, tmux.ErrNotInTmux) || errors.Is(err, tmux.ErrNoServer) {
		log.Warn("tmux unavailable: ", err)
		return exitNotFound
	}
	if err != nil {
		fmt.Printf("Error listing tmux clients: %v\n", err)
		return exitError
	}

	pids := make([]process.ProcessID, 0, len(ttys))
	for pid := range ttys {
		pids = append(pids, pid)
	}
	sort.Slice(pids, func(i, j int) bool { return pids[i] < pids[j] })

	for _, pid := range pids {
		path, found, err := resolver.Resolve(pid)
		switch {
		case err != nil:
			log.Warn("Client ", pid, ": ", err)
			path = "-"
		case !found:
			path = "-"
		}
		fmt.Printf("%d\t%s\t%s\n", pid, ttys[pid], path)
	}
	return 0
}

// resolveByName prints "<pid> <resolved pty>" for every process named name.
func resolveByName(log *logger.Logger, records *process_linux.RecordReader, resolver *pty_linux.Resolver, name string) int {
	matches, err := records.ListByName(name)
	if err != nil {
		fmt.Printf("Error listing processes: %v\n", err)
		return exitError
	}
	if len(matches) == 0 {
		log.Infoln("No process named", name)
		return exitNotFound
	}

	for _, record := range matches {
		path, found, err := resolver.Resolve(record.PID)
		if err != nil {
			// Exited since the listing.
			log.Debugln("Skipping pid", record.PID, err)
			continue
		}
		if !found {
			path = "-"
		}
		fmt.Printf("%d\t%s\n", record.PID, path)
	}
	return 0
}

// explain prints the records the resolver will walk, with the full command
// line that the 15 byte comm field cuts off.
func explain(records *process_linux.RecordReader, pid process.ProcessID) {
	chain, err := records.Ancestry(pid, pty_linux.MaxParentHops)
	if err != nil {
		fmt.Printf("Error reading pid %d: %v\n", pid, err)
		return
	}

	for depth, record := range chain {
		cmdline := record.Comm
		if p, err := psprocess.NewProcess(int32(record.PID)); err == nil {
			if full, err := p.Cmdline(); err == nil && full != "" {
				cmdline = full
			}
		}
		fmt.Printf("%d\tpid=%d\tppid=%d\ttty=%d:%d\t%s\n",
			depth, record.PID, record.PPID,
			pty_linux.MajorDeviceNumber(record.TTYNr), pty_linux.MinorDeviceNumber(record.TTYNr),
			cmdline)
	}
}

// main.go - CUSS entry point: CLI parsing and task wiring

/*
 ██▓ ███▄    █ ▄▄▄█████▓ █    ██  ██▓▄▄▄█████▓ ██▓ ▒█████   ███▄    █    ▓█████  ███▄    █   ▄████  ██▓ ███▄    █ ▓█████
▓██▒ ██ ▀█   █ ▓  ██▒ ▓▒ ██  ▓██▒▓██▒▓  ██▒ ▓▒▓██▒▒██▒  ██▒ ██ ▀█   █    ▓█   ▀  ██ ▀█   █  ██▒ ▀█▒▓██▒ ██ ▀█   █ ▓█   ▀
▒██▒▓██  ▀█ ██▒▒ ▓██░ ▒░▓██  ▒██░▒██▒▒ ▓██░ ▒░▒██▒▒██░  ██▒▓██  ▀█ ██▒   ▒███   ▓██  ▀█ ██▒▒██░▄▄▄░▒██▒▓██  ▀█ ██▒▒███
░██░▓██▒  ▐▌██▒░ ▓██▓ ░ ▓▓█  ░██░░██░░ ▓██▓ ░ ░██░▒██   ██░▓██▒  ▐▌██▒   ▒▓█  ▄ ▓██▒  ▐▌██▒░▓█  ██▓░██░▓██▒  ▐▌██▒▒▓█  ▄
░██░▒██░   ▓██░  ▒██▒ ░ ▒▒█████▓ ░██░  ▒██▒ ░ ░██░░ ████▓▒░▒██░   ▓██░   ░▒████▒▒██░   ▓██░░▒▓███▀▒░██░▒██░   ▓██░░▒████▒
░▓  ░ ▒░   ▒ ▒   ▒ ░░   ░▒▓▒ ▒ ▒ ░▓    ▒ ░░   ░▓  ░ ▒░▒░▒░ ░ ▒░   ▒ ▒    ░░ ▒░ ░░ ▒░   ▒ ▒  ░▒   ▒ ░▓  ░ ▒░   ▒ ▒ ░░ ▒░ ░
 ▒ ░░ ░░   ░ ▒░    ░    ░░▒░ ░ ░  ▒ ░    ░     ▒ ░  ░ ▒ ▒░ ░ ░░   ░ ▒░    ░ ░  ░░ ░░   ░ ▒░  ░   ░  ▒ ░░ ░░   ░ ▒░ ░ ░  ░
 ▒ ░   ░   ░ ░   ░       ░░░ ░ ░  ▒ ░  ░       ▒ ░░ ░ ░ ▒     ░   ░ ░       ░      ░   ░ ░ ░ ░   ░  ▒ ░   ░   ░ ░    ░
 ░           ░             ░      ░            ░      ░ ░           ░       ░  ░         ░       ░  ░           ░    ░  ░

(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionEngine
Buy me a coffee: https://ko-fi.com/intuition/tip

License: GPLv3 or later
*/

package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"
)

func boilerPlate() {
	fmt.Println("\n\033[38;2;255;20;147m ██▓ ███▄    █ ▄▄▄█████▓ █    ██  ██▓▄▄▄█████▓ ██▓ ▒█████   ███▄    █    ▓█████  ███▄    █   ▄████  ██▓ ███▄    █ ▓█████\033[0m\n\033[38;2;255;50;147m▓██▒ ██ ▀█   █ ▓  ██▒ ▓▒ ██  ▓██▒▓██▒▓  ██▒ ▓▒▓██▒▒██▒  ██▒ ██ ▀█   █    ▓█   ▀  ██ ▀█   █  ██▒ ▀█▒▓██▒ ██ ▀█   █ ▓█   ▀\033[0m\n\033[38;2;255;80;147m▒██▒▓██  ▀█ ██▒▒ ▓██░ ▒░▓██  ▒██░▒██▒▒ ▓██░ ▒░▒██▒▒██░  ██▒▓██  ▀█ ██▒   ▒███   ▓██  ▀█ ██▒▒██░▄▄▄░▒██▒▓██  ▀█ ██▒▒███\033[0m\n\033[38;2;255;110;147m░██░▓██▒  ▐▌██▒░ ▓██▓ ░ ▓▓█  ░██░░██░░ ▓██▓ ░ ░██░▒██   ██░▓██▒  ▐▌██▒   ▒▓█  ▄ ▓██▒  ▐▌██▒░▓█  ██▓░██░▓██▒  ▐▌██▒▒▓█  ▄\033[0m\n\033[38;2;255;140;147m░██░▒██░   ▓██░  ▒██▒ ░ ▒▒█████▓ ░██░  ▒██▒ ░ ░██░░ ████▓▒░▒██░   ▓██░   ░▒████▒▒██░   ▓██░░▒▓███▀▒░██░▒██░   ▓██░░▒████▒\033[0m\n\033[38;2;255;170;147m░▓  ░ ▒░   ▒ ▒   ▒ ░░   ░▒▓▒ ▒ ▒ ░▓    ▒ ░░   ░▓  ░ ▒░▒░▒░ ░ ▒░   ▒ ▒    ░░ ▒░ ░░ ▒░   ▒ ▒  ░▒   ▒ ░▓  ░ ▒░   ▒ ▒ ░░ ▒░ ░\033[0m\n\033[38;2;255;200;147m ▒ ░░ ░░   ░ ▒░    ░    ░░▒░ ░ ░  ▒ ░    ░     ▒ ░  ░ ▒ ▒░ ░ ░░   ░ ▒░    ░ ░  ░░ ░░   ░ ▒░  ░   ░  ▒ ░░ ░░   ░ ▒░ ░ ░  ░\033[0m\n\033[38;2;255;230;147m ▒ ░   ░   ░ ░   ░       ░░░ ░ ░  ▒ ░  ░       ▒ ░░ ░ ░ ▒     ░   ░ ░       ░      ░   ░ ░ ░ ░   ░  ▒ ░   ░   ░ ░    ░\033[0m\n\033[38;2;255;255;147m ░           ░             ░      ░            ░      ░ ░           ░       ░  ░         ░       ░  ░           ░    ░  ░\033[0m")
	fmt.Println("\nCompletely Useless System Simulator — a monitor and execution driver for the CUP core.")
	fmt.Println("(c) 2024 - 2026 Zayn Otley")
	fmt.Println("https://github.com/IntuitionAmiga/IntuitionEngine")
	fmt.Println("Buy me a coffee: https://ko-fi.com/intuition/tip")
	fmt.Println("License: GPLv3 or later")
}

// breakpointList accumulates repeated -b/--break-point occurrences as a
// flag.Value, since the standard library has no repeatable-flag type.
type breakpointList struct {
	addrs []uint32
}

func (b *breakpointList) String() string {
	if b == nil {
		return ""
	}
	parts := make([]string, len(b.addrs))
	for i, a := range b.addrs {
		parts[i] = fmt.Sprintf("%#x", a)
	}
	return strings.Join(parts, ",")
}

func (b *breakpointList) Set(s string) error {
	v, err := strconv.ParseUint(s, 0, 32)
	if err != nil {
		return fmt.Errorf("invalid breakpoint address %q: %w", s, err)
	}
	b.addrs = append(b.addrs, uint32(v))
	return nil
}

type config struct {
	memoryImage string
	breakpoints breakpointList
	help        bool
}

func parseArgs(args []string) (*config, error) {
	fs := flag.NewFlagSet("cuss", flag.ContinueOnError)
	cfg := &config{}

	fs.StringVar(&cfg.memoryImage, "m", "", "path to a memory image")
	fs.StringVar(&cfg.memoryImage, "memory-image", "", "path to a memory image")
	fs.BoolVar(&cfg.help, "h", false, "show usage")
	fs.BoolVar(&cfg.help, "help", false, "show usage")
	fs.Var(&cfg.breakpoints, "b", "add a breakpoint at addr (repeatable)")
	fs.Var(&cfg.breakpoints, "break-point", "add a breakpoint at addr (repeatable)")

	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: cuss -m=<path> [-b=<addr> ...]")
		fmt.Fprintln(os.Stderr, "\n  -h, --help              show this message")
		fmt.Fprintln(os.Stderr, "  -m, --memory-image=PATH memory image to load (required)")
		fmt.Fprintln(os.Stderr, "  -b, --break-point=ADDR  add a breakpoint at addr (repeatable, up to 16)")
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if cfg.help {
		return cfg, nil
	}
	if cfg.memoryImage == "" {
		fs.Usage()
		return nil, fmt.Errorf("missing required -m/--memory-image")
	}
	return cfg, nil
}

func main() {
	boilerPlate()

	cfg, err := parseArgs(os.Args[1:])
	if err != nil {
		NewLogger(LevelError).Error("invalid command line: %v", err)
		os.Exit(1)
	}
	if cfg.help {
		fmt.Println("Usage: cuss -m=<path> [-b=<addr> ...]")
		return
	}

	log := NewLogger(LevelInfo)

	mem := NewMemory()
	if err := mem.LoadImage(cfg.memoryImage); err != nil {
		log.Error("failed to load memory image %s: %v", cfg.memoryImage, err)
		os.Exit(1)
	}

	cpu := NewCPU(mem)
	for _, addr := range cfg.breakpoints.addrs {
		if err := cpu.AddBreakpoint(addr); err != nil {
			log.Error("failed to add startup breakpoint %#08x: %v", addr, err)
			os.Exit(1)
		}
	}

	exec := NewExecutor(cpu, log)

	io, err := NewTerminalIOProvider()
	if err != nil {
		log.Error("failed to initialize terminal: %v", err)
		os.Exit(1)
	}
	defer io.Close()

	mon := NewMonitor(cpu, exec, io, log)

	var g errgroup.Group
	g.Go(exec.Run)
	g.Go(func() error {
		defer func() { _ = cpu.SetState(Quitting) }()
		return mon.Run()
	})

	if err := g.Wait(); err != nil {
		log.Error("session ended with error: %v", err)
		os.Exit(1)
	}
}

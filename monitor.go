// monitor.go - interactive command REPL for the CUP core

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

/*
monitor.go - Command Monitor for the CUP Core

Monitor runs on its own task, reading whole lines from an IOProvider and
dispatching the small fixed command set. It only mutates CPU state
(registers, PC, breakpoints, run-state) through CPU's exported methods
and the Executor's Step, and only single-steps while the Executor is not
concurrently running: doStep refuses unless the CPU is Paused or at a
Breakpoint.

The repeat command "." re-issues the last non-empty command that was not
itself a repeat: entering "." repeatedly keeps replaying the same original
command rather than replaying the previous "." invocation, matching the
reference monitor's prev_inp bookkeeping, which only updates when the
current turn is not itself a replay. Empty lines and "." entries never
replace the remembered command.
*/

package main

import (
	"fmt"
	"strconv"
	"strings"
)

type Monitor struct {
	cpu  *CPU
	exec *Executor
	io   IOProvider
	log  *Logger
}

// NewMonitor binds a Monitor to cpu/exec, driven by io.
func NewMonitor(cpu *CPU, exec *Executor, io IOProvider, log *Logger) *Monitor {
	return &Monitor{cpu: cpu, exec: exec, io: io, log: log}
}

// Run is the Monitor's main loop. It returns when the user quits, on
// EOF, or on an unrecoverable I/O error.
func (m *Monitor) Run() error {
	if err := m.io.WriteString("                *** CUSS Monitor ***\n"); err != nil {
		return err
	}
	if err := m.io.WriteString("(Enter 'help' to see the available commands.)\n"); err != nil {
		return err
	}

	var input, prevInput string
	repeating := false

	for {
		var eof bool
		var err error

		if repeating {
			input = prevInput
			repeating = false
		} else {
			if c := strings.TrimSpace(input); c != "" && c != "." {
				prevInput = input
			}
			if err := m.io.WriteString("CUSS > "); err != nil {
				return err
			}
			input, eof, err = m.io.ReadLine()
			if err != nil {
				return err
			}
		}

		if eof {
			_ = m.cpu.SetState(Quitting)
			return nil
		}

		cmd := strings.TrimSpace(input)

		switch {
		case cmd == ".":
			if prevInput == "" {
				m.writeErr("No previous command.")
			} else {
				repeating = true
			}

		case cmd == "?" || cmd == "help":
			m.printUsage()

		case cmd == "dis":
			m.disassemble()

		case cmd == "exit" || cmd == "quit":
			_ = m.cpu.SetState(Quitting)
			return nil

		case cmd == "reg":
			m.printRegisters()

		case cmd == "step":
			m.doStep()

		case cmd == "run":
			m.doRun()

		case strings.HasPrefix(cmd, "break "):
			m.doBreak(strings.TrimSpace(strings.TrimPrefix(cmd, "break ")))

		case strings.HasPrefix(cmd, "clear "):
			m.doClear(strings.TrimSpace(strings.TrimPrefix(cmd, "clear ")))

		case cmd == "":
			// re-prompt

		default:
			m.writeErr("Unknown command.")
		}
	}
}

func (m *Monitor) writeErr(msg string) {
	_ = m.io.WriteString(fmt.Sprintf("ERROR: %s\n", msg))
}

func (m *Monitor) printUsage() {
	_ = m.io.WriteString("Commands:\n")
	_ = m.io.WriteString("  .: Repeat last command.\n")
	_ = m.io.WriteString("  ?, help: Show available commands.\n")
	_ = m.io.WriteString("  dis: Disassemble code.\n")
	_ = m.io.WriteString("  exit, quit: Exit CUSS.\n")
	_ = m.io.WriteString("  reg: Print out register-values.\n")
	_ = m.io.WriteString("  step: Execute the next instruction.\n")
	_ = m.io.WriteString("  run: Set the CPU running continuously.\n")
	_ = m.io.WriteString("  break <addr>: Add a breakpoint at addr.\n")
	_ = m.io.WriteString("  clear <addr>: Remove the breakpoint at addr.\n")
}

func (m *Monitor) disassemble() {
	pc := m.cpu.GetPC()
	insn, err := m.cpu.mem.GetWord(pc)
	if err != nil {
		m.writeErr(fmt.Sprintf("Error reading instruction: %v", err))
		return
	}
	_ = m.io.WriteString(fmt.Sprintf("  %08x: %s\n", pc, Disassemble(insn)))
}

func (m *Monitor) printRegisters() {
	var b strings.Builder
	for i := 0; i < NumRegisters; i++ {
		if i%8 == 0 {
			if i != 0 {
				b.WriteString("\n")
			}
			fmt.Fprintf(&b, "[r%02d-r%02d]:", i, i+7)
		}
		v, _ := m.cpu.GetRegister(uint8(i))
		fmt.Fprintf(&b, " %08x", v)
	}
	b.WriteString("\n")
	_ = m.io.WriteString(b.String())
}

func (m *Monitor) doStep() {
	switch m.cpu.State() {
	case Paused, Breakpoint:
	default:
		m.writeErr("Cannot single-step while running.")
		return
	}
	if err := m.exec.Step(); err != nil {
		m.writeErr(fmt.Sprintf("Error executing instruction: %v", err))
		return
	}
	m.disassemble()
}

func (m *Monitor) doRun() {
	if m.cpu.State() == Running {
		m.writeErr("Already running.")
		return
	}
	if err := m.cpu.SetState(Running); err != nil {
		m.writeErr(err.Error())
	}
}

func (m *Monitor) doBreak(arg string) {
	addr, err := strconv.ParseUint(arg, 0, 32)
	if err != nil {
		m.writeErr(fmt.Sprintf("Bad address: %s", arg))
		return
	}
	if err := m.cpu.AddBreakpoint(uint32(addr)); err != nil {
		m.writeErr(err.Error())
	}
}

func (m *Monitor) doClear(arg string) {
	addr, err := strconv.ParseUint(arg, 0, 32)
	if err != nil {
		m.writeErr(fmt.Sprintf("Bad address: %s", arg))
		return
	}
	if err := m.cpu.RemoveBreakpoint(uint32(addr)); err != nil {
		m.writeErr(err.Error())
	}
}

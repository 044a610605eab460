// executor.go - fetch-execute loop driving the CUP core

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
executor.go - Execution Driver for the CUP Core

Executor owns the single goroutine that ever advances the program
counter: it fetches the word at PC, decodes and executes it via ops.go,
and loops. Before every fetch it checks the breakpoint table — a hit
there moves the CPU into Breakpoint and parks the loop on StateCond
until the Monitor goroutine resumes it. An execution failure moves the
CPU into Error and ends the loop, returning that failure. Step() lets
the Monitor drive exactly one instruction without spinning up the loop
at all; it is what the monitor's "step" command calls. Both Run and
Step go through fetchAndExecute for the fetch-decode-execute cycle.
*/

package main

type Executor struct {
	cpu *CPU
	log *Logger
}

// NewExecutor binds an Executor to cpu, logging through log.
func NewExecutor(cpu *CPU, log *Logger) *Executor {
	return &Executor{cpu: cpu, log: log}
}

// Run is the Executor's main loop. It returns nil once the CPU reaches
// Quitting, or the error of the first execution fault (after moving the
// CPU into Error), waking on StateCond whenever it is parked in Paused or
// Breakpoint. Intended to run in its own goroutine for the lifetime of
// the program; main supervises it via errgroup.
func (e *Executor) Run() error {
	for {
		e.cpu.StateMu.Lock()
		for e.cpu.state == Paused || e.cpu.state == Breakpoint {
			e.cpu.StateCond.Wait()
		}
		state := e.cpu.state
		e.cpu.StateMu.Unlock()

		if state == Quitting {
			return nil
		}
		if state == Error {
			e.cpu.StateMu.Lock()
			e.cpu.StateCond.Wait()
			e.cpu.StateMu.Unlock()
			continue
		}

		pc := e.cpu.GetPC()
		if e.cpu.AtBreakpoint(pc) {
			e.log.Info("breakpoint hit at %#08x", pc)
			e.cpu.setInternalState(Breakpoint)
			continue
		}

		if err := e.fetchAndExecute(pc); err != nil {
			e.log.Error("execution fault: %v", err)
			e.cpu.setInternalState(Error)
			return err
		}
	}
}

// Step executes exactly one instruction unconditionally — unlike the
// main loop, it does not check the breakpoint table before the fetch,
// so a step from a breakpointed address always makes progress. After
// executing, it parks the CPU in Breakpoint if the new PC lands on a
// breakpoint, or Paused otherwise, matching §4.4's single-step contract.
func (e *Executor) Step() error {
	pc := e.cpu.GetPC()
	if err := e.fetchAndExecute(pc); err != nil {
		e.log.Error("execution fault: %v", err)
		e.cpu.setInternalState(Error)
		return err
	}
	if e.cpu.AtBreakpoint(e.cpu.GetPC()) {
		e.cpu.setInternalState(Breakpoint)
	} else {
		e.cpu.setInternalState(Paused)
	}
	return nil
}

// fetchAndExecute performs one fetch-decode-execute cycle at pc, leaving
// the CPU with its PC already advanced by executeOp on success.
func (e *Executor) fetchAndExecute(pc uint32) error {
	insn, err := e.cpu.mem.GetWord(pc)
	if err != nil {
		return err
	}
	return executeOp(e.cpu, pc, insn)
}

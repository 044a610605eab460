package main

import (
	"bytes"
	"strings"
	"testing"
)

func newTestMonitor(t *testing.T, script string) (*Monitor, *CPU, *bytes.Buffer) {
	t.Helper()
	mem := NewMemory()
	cpu := NewCPU(mem)
	exec := NewExecutor(cpu, NewLogger(LevelError))
	out := &bytes.Buffer{}
	io := NewScriptIOProvider(strings.NewReader(script), out)
	return NewMonitor(cpu, exec, io, NewLogger(LevelError)), cpu, out
}

// TestMonitorUnknownCommand verifies an unrecognised command produces the
// reference monitor's exact error text.
func TestMonitorUnknownCommand(t *testing.T) {
	mon, _, out := newTestMonitor(t, "bogus\nquit\n")
	if err := mon.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !strings.Contains(out.String(), "ERROR: Unknown command.\n") {
		t.Fatalf("output = %q, expected Unknown command error", out.String())
	}
}

// TestMonitorRepeatWithNoPriorCommand verifies "." with nothing to
// repeat prints the reference monitor's exact error text.
func TestMonitorRepeatWithNoPriorCommand(t *testing.T) {
	mon, _, out := newTestMonitor(t, ".\nquit\n")
	if err := mon.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !strings.Contains(out.String(), "ERROR: No previous command.\n") {
		t.Fatalf("output = %q, expected No previous command error", out.String())
	}
}

// TestMonitorRepeatReplaysLastNonRepeatCommand verifies repeated "."
// entries keep replaying the same original command, not the previous
// "." invocation.
func TestMonitorRepeatReplaysLastNonRepeatCommand(t *testing.T) {
	mon, _, out := newTestMonitor(t, "reg\n.\n.\nquit\n")
	if err := mon.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	regBlocks := strings.Count(out.String(), "[r00-r07]:")
	if regBlocks != 3 {
		t.Fatalf("register dump appeared %d times, expected 3 (one explicit + two repeats)", regBlocks)
	}
}

// TestMonitorRegFormat verifies the register dump matches the reference
// monitor's header/value layout exactly.
func TestMonitorRegFormat(t *testing.T) {
	mon, _, out := newTestMonitor(t, "reg\nquit\n")
	if err := mon.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	want := "[r00-r07]: 00000000"
	if !strings.Contains(out.String(), want) {
		t.Fatalf("output = %q, expected to contain %q", out.String(), want)
	}
}

// TestMonitorStepDisassemblesNewPC verifies "step" advances the PC and
// prints the disassembly of the instruction now under the cursor.
func TestMonitorStepDisassemblesNewPC(t *testing.T) {
	mon, cpu, out := newTestMonitor(t, "step\nquit\n")
	_ = cpu.mem.SetWord(0, 0x00)

	if err := mon.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !strings.Contains(out.String(), "00000004:") {
		t.Fatalf("output = %q, expected disassembly at PC=4", out.String())
	}
}

// TestMonitorBreakAndClear verifies break/clear add and remove entries
// in the CPU's breakpoint table.
func TestMonitorBreakAndClear(t *testing.T) {
	mon, cpu, _ := newTestMonitor(t, "break 0x10\nclear 0x10\nquit\n")
	if err := mon.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if cpu.AtBreakpoint(0x10) {
		t.Fatal("breakpoint at 0x10 still present after clear")
	}
}

// TestMonitorClearMissingBreakpoint verifies clearing an address with no
// breakpoint reports BreakpointNotFound rather than succeeding silently.
func TestMonitorClearMissingBreakpoint(t *testing.T) {
	mon, _, out := newTestMonitor(t, "clear 0x20\nquit\n")
	if err := mon.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !strings.Contains(out.String(), "ERROR:") {
		t.Fatalf("output = %q, expected a BreakpointNotFound error", out.String())
	}
}

// TestMonitorEOFQuits verifies EOF from the input provider terminates
// the Monitor the same way an explicit "quit" would.
func TestMonitorEOFQuits(t *testing.T) {
	mon, cpu, _ := newTestMonitor(t, "reg\n")
	if err := mon.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if cpu.State() != Quitting {
		t.Fatalf("state after EOF = %s, expected Quitting", cpu.State())
	}
}

// TestMonitorRunRejectsWhenAlreadyRunning verifies "run" is a no-op
// (with an error) if the CPU is already Running.
func TestMonitorRunRejectsWhenAlreadyRunning(t *testing.T) {
	mon, cpu, out := newTestMonitor(t, "run\nquit\n")
	if err := cpu.SetState(Running); err != nil {
		t.Fatalf("SetState(Running): %v", err)
	}
	if err := mon.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !strings.Contains(out.String(), "ERROR: Already running.") {
		t.Fatalf("output = %q, expected Already running error", out.String())
	}
}

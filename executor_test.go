package main

import (
	"testing"
	"time"
)

const opNOP = uint32(0x00)<<26 | 0x00 // SLLR r0, r0, r0 by 0

func newRunningExecutor(t *testing.T) (*CPU, *Executor) {
	t.Helper()
	mem := NewMemory()
	cpu := NewCPU(mem)
	ex := NewExecutor(cpu, NewLogger(LevelError))
	return cpu, ex
}

// TestExecutorStopsAtBreakpoint verifies the Executor transitions to
// Breakpoint before executing the instruction at a breakpointed address,
// per the "check precedes fetch" contract.
func TestExecutorStopsAtBreakpoint(t *testing.T) {
	cpu, ex := newRunningExecutor(t)
	for addr := uint32(0); addr < 16; addr += 4 {
		if err := cpu.mem.SetWord(addr, opNOP); err != nil {
			t.Fatalf("SetWord: %v", err)
		}
	}
	if err := cpu.AddBreakpoint(8); err != nil {
		t.Fatalf("AddBreakpoint: %v", err)
	}

	done := make(chan error, 1)
	go func() { done <- ex.Run() }()

	if err := cpu.SetState(Running); err != nil {
		t.Fatalf("SetState(Running): %v", err)
	}

	deadline := time.After(2 * time.Second)
	for {
		if cpu.State() == Breakpoint {
			break
		}
		select {
		case <-deadline:
			t.Fatal("Executor did not reach Breakpoint state in time")
		case <-time.After(time.Millisecond):
		}
	}

	if cpu.GetPC() != 8 {
		t.Fatalf("PC at breakpoint = %#08x, expected 8", cpu.GetPC())
	}

	if err := cpu.SetState(Quitting); err != nil {
		t.Fatalf("SetState(Quitting): %v", err)
	}
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Executor.Run returned error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Executor.Run did not return after Quitting")
	}
}

// TestExecutorQuitTerminatesImmediately verifies a CPU set to Quitting
// from Paused makes the Executor's loop return without executing
// anything further.
func TestExecutorQuitTerminatesImmediately(t *testing.T) {
	cpu, ex := newRunningExecutor(t)
	done := make(chan error, 1)
	go func() { done <- ex.Run() }()

	if err := cpu.SetState(Quitting); err != nil {
		t.Fatalf("SetState(Quitting): %v", err)
	}

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Executor.Run returned error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Executor.Run did not return after Quitting from Paused")
	}
}

// TestExecutorStepUnconditionalAtBreakpoint verifies Step executes
// through a breakpointed address rather than refusing to progress.
func TestExecutorStepUnconditionalAtBreakpoint(t *testing.T) {
	cpu, ex := newRunningExecutor(t)
	_ = cpu.mem.SetWord(0, opNOP)
	_ = cpu.AddBreakpoint(0)

	if err := ex.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if cpu.GetPC() != 4 {
		t.Fatalf("PC after Step = %#08x, expected 4", cpu.GetPC())
	}
	if cpu.State() != Paused {
		t.Fatalf("state after Step = %s, expected Paused", cpu.State())
	}
}

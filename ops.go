// ops.go - CUP operation execution: dispatch, semantics, flag computation

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
ops.go - Operation Executor for the CUP Core

Dispatch is on the primary opcode (op0), with op0=0x00 further dispatched
on the secondary opcode (op1). Every branch of the dispatch either sets a
new PC and returns success, or returns a *CussError describing why the
instruction could not execute (BadInstruction, BadRegister...). The caller
(Executor, in executor.go) is responsible for turning a failure into the
CPU's Error run-state.

Arithmetic wraps at 32 bits. ADDF, SUBF and ADDI compute a 33-bit
intermediate so Carry/Overflow reflect the true result rather than the
truncated one. The other flag-setting variants (shifts, logicals, MULF,
DIVF) set only Negative and Zero; they never set Carry or Overflow.
*/

package main

import "fmt"

func signExtend16(v uint16) uint32 {
	return uint32(int32(int16(v)))
}

func signExtend21(v uint32) uint32 {
	v &= 0x1FFFFF
	if v&0x100000 != 0 {
		v |= 0xFFE00000
	}
	return v
}

func signExtend26(v uint32) uint32 {
	v &= 0x3FFFFFF
	if v&0x2000000 != 0 {
		v |= 0xFC000000
	}
	return v
}

// executeOp executes the single instruction insn, fetched from pc, against
// cpu. On success it sets the CPU's new PC (and any flags/registers/EPR the
// instruction defines) and returns nil. On failure it returns a
// *CussError and leaves the PC untouched; the caller maps this to Error.
func executeOp(cpu *CPU, pc uint32, insn uint32) error {
	d := decode(insn)

	switch d.op0 {
	case 0x00:
		return executeRType(cpu, pc, d)
	case 0x01:
		ra, _ := cpu.GetRegister(d.ra)
		return finishLogical(cpu, pc, d.rt, ra&uint32(d.imm16))
	case 0x02:
		ra, _ := cpu.GetRegister(d.ra)
		return finishLogical(cpu, pc, d.rt, ra|uint32(d.imm16))
	case 0x03:
		ra, _ := cpu.GetRegister(d.ra)
		return finishLogical(cpu, pc, d.rt, ra^uint32(d.imm16))
	case 0x04:
		ra, _ := cpu.GetRegister(d.ra)
		sum, carry, ovf := addWithFlags(ra, signExtend16(d.imm16))
		cpu.SetFlags(sum&0x80000000 != 0, ovf, carry, sum == 0)
		if err := cpu.SetRegister(d.rt, sum); err != nil {
			return err
		}
		return cpu.SetPC(pc + 4)
	case 0x05:
		return cpu.SetPC(pc + signExtend26(d.imm26)<<2)
	case 0x06:
		if err := cpu.SetRegister(LinkReg, pc+4); err != nil {
			return err
		}
		return cpu.SetPC(pc + signExtend26(d.imm26)<<2)
	case 0x07, 0x08, 0x09, 0x0A:
		return executeFlagBranch(cpu, pc, d)
	case 0x0B:
		rt, _ := cpu.GetRegister(d.rt)
		ra, _ := cpu.GetRegister(d.ra)
		if rt != ra {
			return cpu.SetPC(pc + signExtend16(d.imm16)<<2)
		}
		return cpu.SetPC(pc + 4)
	case 0x0C:
		rt, _ := cpu.GetRegister(d.rt)
		ra, _ := cpu.GetRegister(d.ra)
		if rt > ra {
			return cpu.SetPC(pc + signExtend16(d.imm16)<<2)
		}
		return cpu.SetPC(pc + 4)
	case 0x0D:
		if err := cpu.SetRegister(d.rt, uint32(d.imm16)<<16); err != nil {
			return err
		}
		return cpu.SetPC(pc + 4)
	case 0x0E, 0x0F, 0x10, 0x11, 0x12:
		return executeLoad(cpu, pc, d)
	case 0x13, 0x14, 0x15:
		return executeStore(cpu, pc, d)
	default:
		return newErr("executeOp", ErrBadInstruction, fmt.Sprintf("op0=%#02x", d.op0))
	}
}

func finishLogical(cpu *CPU, pc uint32, rt uint8, result uint32) error {
	cpu.SetFlags(result&0x80000000 != 0, false, false, result == 0)
	if err := cpu.SetRegister(rt, result); err != nil {
		return err
	}
	return cpu.SetPC(pc + 4)
}

func executeFlagBranch(cpu *CPU, pc uint32, d decoded) error {
	neg, ovf, car, zer := cpu.GetFlags()
	var taken bool
	switch d.op0 {
	case 0x07:
		taken = neg
	case 0x08:
		taken = ovf
	case 0x09:
		taken = car
	case 0x0A:
		taken = zer
	}
	rt, _ := cpu.GetRegister(d.rt)
	if taken {
		return cpu.SetPC(rt + signExtend21(d.imm21)<<2)
	}
	return cpu.SetPC(pc + 4)
}

func executeLoad(cpu *CPU, pc uint32, d decoded) error {
	ra, _ := cpu.GetRegister(d.ra)
	addr := ra + signExtend16(d.imm16)

	var val uint32
	switch d.op0 {
	case 0x0E:
		w, err := cpu.mem.GetWord(addr)
		if err != nil {
			return err
		}
		val = w
	case 0x0F:
		h, err := cpu.mem.GetHalf(addr)
		if err != nil {
			return err
		}
		val = uint32(int32(int16(h)))
	case 0x10:
		h, err := cpu.mem.GetHalf(addr)
		if err != nil {
			return err
		}
		val = uint32(h)
	case 0x11:
		b, err := cpu.mem.GetByte(addr)
		if err != nil {
			return err
		}
		val = uint32(int32(int8(b)))
	case 0x12:
		b, err := cpu.mem.GetByte(addr)
		if err != nil {
			return err
		}
		val = uint32(b)
	}

	if err := cpu.SetRegister(d.rt, val); err != nil {
		return err
	}
	return cpu.SetPC(pc + 4)
}

func executeStore(cpu *CPU, pc uint32, d decoded) error {
	ra, _ := cpu.GetRegister(d.ra)
	rt, _ := cpu.GetRegister(d.rt)
	addr := ra + signExtend16(d.imm16)

	var err error
	switch d.op0 {
	case 0x13:
		err = cpu.mem.SetWord(addr, rt)
	case 0x14:
		err = cpu.mem.SetHalf(addr, uint16(rt))
	case 0x15:
		err = cpu.mem.SetByte(addr, uint8(rt))
	}
	if err != nil {
		return err
	}
	return cpu.SetPC(pc + 4)
}

// addWithFlags computes a+b with a 33-bit intermediate so Carry reflects
// unsigned overflow and Overflow reflects signed overflow independently.
func addWithFlags(a, b uint32) (sum uint32, carry, overflow bool) {
	wide := uint64(a) + uint64(b)
	sum = uint32(wide)
	carry = wide > 0xFFFFFFFF
	signA := a&0x80000000 != 0
	signB := b&0x80000000 != 0
	signSum := sum&0x80000000 != 0
	overflow = (signA == signB) && (signSum != signA)
	return
}

func subWithFlags(a, b uint32) (diff uint32, carry, overflow bool) {
	return addWithFlags(a, ^b+1)
}

func executeRType(cpu *CPU, pc uint32, d decoded) error {
	ra, _ := cpu.GetRegister(d.ra)
	rb, _ := cpu.GetRegister(d.rb)

	switch d.op1 {
	case 0x00, 0x01:
		result := ra << (rb & 0x1F)
		if d.op1 == 0x01 {
			cpu.SetFlags(result&0x80000000 != 0, false, false, result == 0)
		}
		return finishReg(cpu, pc, d.rt, result)

	case 0x02, 0x03:
		result := ra >> (rb & 0x1F)
		if d.op1 == 0x03 {
			cpu.SetFlags(result&0x80000000 != 0, false, false, result == 0)
		}
		return finishReg(cpu, pc, d.rt, result)

	case 0x04, 0x05:
		result := uint32(int32(ra) >> (rb & 0x1F))
		if d.op1 == 0x05 {
			cpu.SetFlags(result&0x80000000 != 0, false, false, result == 0)
		}
		return finishReg(cpu, pc, d.rt, result)

	case 0x06, 0x07:
		result := ra << d.imm5
		if d.op1 == 0x07 {
			cpu.SetFlags(result&0x80000000 != 0, false, false, result == 0)
		}
		return finishReg(cpu, pc, d.rt, result)

	case 0x08, 0x09:
		result := ra >> d.imm5
		if d.op1 == 0x09 {
			cpu.SetFlags(result&0x80000000 != 0, false, false, result == 0)
		}
		return finishReg(cpu, pc, d.rt, result)

	case 0x0A, 0x0B:
		result := uint32(int32(ra) >> d.imm5)
		if d.op1 == 0x0B {
			cpu.SetFlags(result&0x80000000 != 0, false, false, result == 0)
		}
		return finishReg(cpu, pc, d.rt, result)

	case 0x0C, 0x0D:
		result := ra & rb
		if d.op1 == 0x0D {
			cpu.SetFlags(result&0x80000000 != 0, false, false, result == 0)
		}
		return finishReg(cpu, pc, d.rt, result)

	case 0x0E, 0x0F:
		result := ra | rb
		if d.op1 == 0x0F {
			cpu.SetFlags(result&0x80000000 != 0, false, false, result == 0)
		}
		return finishReg(cpu, pc, d.rt, result)

	case 0x10, 0x11:
		result := ^ra
		if d.op1 == 0x11 {
			cpu.SetFlags(result&0x80000000 != 0, false, false, result == 0)
		}
		return finishReg(cpu, pc, d.rt, result)

	case 0x12, 0x13:
		result := ra ^ rb
		if d.op1 == 0x13 {
			cpu.SetFlags(result&0x80000000 != 0, false, false, result == 0)
		}
		return finishReg(cpu, pc, d.rt, result)

	case 0x14, 0x15:
		sum, carry, ovf := addWithFlags(ra, rb)
		if d.op1 == 0x15 {
			cpu.SetFlags(sum&0x80000000 != 0, ovf, carry, sum == 0)
		}
		return finishReg(cpu, pc, d.rt, sum)

	case 0x16, 0x17:
		diff, carry, ovf := subWithFlags(ra, rb)
		if d.op1 == 0x17 {
			cpu.SetFlags(diff&0x80000000 != 0, ovf, carry, diff == 0)
		}
		return finishReg(cpu, pc, d.rt, diff)

	case 0x18, 0x19:
		wide := uint64(ra) * uint64(rb)
		lo := uint32(wide)
		hi := uint32(wide >> 32)
		if d.op1 == 0x19 {
			cpu.SetFlags(lo&0x80000000 != 0, false, false, wide == 0)
		}
		cpu.SetEPR(hi)
		return finishReg(cpu, pc, d.rt, lo)

	case 0x1A, 0x1B:
		if rb == 0 {
			return newErr("executeRType", ErrBadInstruction, "DIV by zero")
		}
		dividend := uint64(cpu.GetEPR())<<32 | uint64(ra)
		wideQuo := dividend / uint64(rb)
		if wideQuo > 0xFFFFFFFF {
			return newErr("executeRType", ErrBadInstruction, "DIV quotient overflow")
		}
		quo := uint32(wideQuo)
		rem := uint32(dividend % uint64(rb))
		if d.op1 == 0x1B {
			cpu.SetFlags(quo&0x80000000 != 0, false, false, quo == 0)
		}
		cpu.SetEPR(rem)
		return finishReg(cpu, pc, d.rt, quo)

	case 0x1C:
		if err := cpu.SetRegister(d.rt, cpu.GetEPR()); err != nil {
			return err
		}
		return cpu.SetPC(pc + 4)

	case 0x1D:
		cpu.SetEPR(ra)
		return cpu.SetPC(pc + 4)

	case 0x1E:
		return cpu.SetPC(ra + (rb << d.imm5))

	case 0x1F:
		if err := cpu.SetRegister(LinkReg, pc+4); err != nil {
			return err
		}
		return cpu.SetPC(ra + (rb << d.imm5))

	default:
		return newErr("executeRType", ErrBadInstruction, fmt.Sprintf("op1=%#02x", d.op1))
	}
}

func finishReg(cpu *CPU, pc uint32, rt uint8, result uint32) error {
	if err := cpu.SetRegister(rt, result); err != nil {
		return err
	}
	return cpu.SetPC(pc + 4)
}

// decode.go - CUP instruction field extraction and disassembly

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

// decode.go - field extraction and disassembly for the 32-bit CUP encoding.
//
// Field layout (bits 31..0, MSB first): op0(6) rt(5) ra(5) rb(5) imm5(5) op1(6)
// for R-type; op0(6) rt(5) ra(5) imm16(16) for I-type; op0(6) rt(5) imm21(21)
// for flag branches; op0(6) imm26(26) for jumps.

package main

import "fmt"

type decoded struct {
	op0   uint8
	op1   uint8
	rt    uint8
	ra    uint8
	rb    uint8
	imm5  uint8
	imm16 uint16
	imm21 uint32
	imm26 uint32
}

func decode(insn uint32) decoded {
	return decoded{
		op0:   uint8((insn >> 26) & 0x3F),
		op1:   uint8(insn & 0x3F),
		rt:    uint8((insn >> 21) & 0x1F),
		ra:    uint8((insn >> 16) & 0x1F),
		rb:    uint8((insn >> 11) & 0x1F),
		imm5:  uint8((insn >> 6) & 0x1F),
		imm16: uint16(insn & 0xFFFF),
		imm21: insn & 0x1FFFFF,
		imm26: insn & 0x3FFFFFF,
	}
}

var rtypeMnemonics = map[uint8]string{
	0x00: "SLLR", 0x01: "SLRF", 0x02: "SRLR", 0x03: "SRRF",
	0x04: "SRAR", 0x05: "SRAS", 0x06: "SLLI", 0x07: "SLIF",
	0x08: "SRLI", 0x09: "SRIF", 0x0A: "SRAI", 0x0B: "SRAJ",
	0x0C: "ANDR", 0x0D: "ADRF", 0x0E: "ORRR", 0x0F: "ORRF",
	0x10: "NOTR", 0x11: "NOTF", 0x12: "XORR", 0x13: "XORF",
	0x14: "ADDR", 0x15: "ADDF", 0x16: "SUBR", 0x17: "SUBF",
	0x18: "MULR", 0x19: "MULF", 0x1A: "DIVR", 0x1B: "DIVF",
	0x1C: "RDEP", 0x1D: "WREP", 0x1E: "JMPR", 0x1F: "JALR",
}

// Disassemble returns the mnemonic text for any 32-bit instruction word.
// Unrecognised op0/op1 combinations render as "????" rather than erroring:
// disassembly must never fail on the data under the cursor.
func Disassemble(insn uint32) string {
	d := decode(insn)

	if d.op0 == 0x00 {
		name, ok := rtypeMnemonics[d.op1]
		if !ok {
			return "????"
		}
		switch d.op1 {
		case 0x00, 0x01, 0x02, 0x03, 0x04, 0x05, 0x0C, 0x0D, 0x0E, 0x0F, 0x12, 0x13, 0x14, 0x15, 0x16, 0x17, 0x18, 0x19, 0x1A, 0x1B:
			return fmt.Sprintf("%s r%d, r%d, r%d", name, d.rt, d.ra, d.rb)
		case 0x06, 0x07, 0x08, 0x09, 0x0A, 0x0B:
			return fmt.Sprintf("%s r%d, r%d, %d", name, d.rt, d.ra, d.imm5)
		case 0x10, 0x11:
			return fmt.Sprintf("%s r%d, r%d", name, d.rt, d.ra)
		case 0x1C:
			return fmt.Sprintf("%s r%d", name, d.rt)
		case 0x1D:
			return fmt.Sprintf("%s r%d", name, d.ra)
		case 0x1E, 0x1F:
			return fmt.Sprintf("%s r%d, r%d, %d", name, d.ra, d.rb, d.imm5)
		}
		return "????"
	}

	switch d.op0 {
	case 0x01:
		return fmt.Sprintf("ANDI r%d, r%d, %04x", d.rt, d.ra, d.imm16)
	case 0x02:
		return fmt.Sprintf("ORRI r%d, r%d, %04x", d.rt, d.ra, d.imm16)
	case 0x03:
		return fmt.Sprintf("XORI r%d, r%d, %04x", d.rt, d.ra, d.imm16)
	case 0x04:
		return fmt.Sprintf("ADDI r%d, r%d, %04x", d.rt, d.ra, d.imm16)
	case 0x05:
		return fmt.Sprintf("JMPI %08x", d.imm26)
	case 0x06:
		return fmt.Sprintf("JALI %08x", d.imm26)
	case 0x07:
		return fmt.Sprintf("BRNR r%d, %08x", d.rt, d.imm21)
	case 0x08:
		return fmt.Sprintf("BROR r%d, %08x", d.rt, d.imm21)
	case 0x09:
		return fmt.Sprintf("BRCR r%d, %08x", d.rt, d.imm21)
	case 0x0A:
		return fmt.Sprintf("BRZR r%d, %08x", d.rt, d.imm21)
	case 0x0B:
		return fmt.Sprintf("BRNE r%d, r%d, %04x", d.rt, d.ra, d.imm16)
	case 0x0C:
		return fmt.Sprintf("BRGT r%d, r%d, %04x", d.rt, d.ra, d.imm16)
	case 0x0D:
		return fmt.Sprintf("LDUI r%d, %04x", d.rt, d.imm16)
	case 0x0E:
		return fmt.Sprintf("LDWD r%d, r%d, %04x", d.rt, d.ra, d.imm16)
	case 0x0F:
		return fmt.Sprintf("LDHS r%d, r%d, %04x", d.rt, d.ra, d.imm16)
	case 0x10:
		return fmt.Sprintf("LDHU r%d, r%d, %04x", d.rt, d.ra, d.imm16)
	case 0x11:
		return fmt.Sprintf("LDBS r%d, r%d, %04x", d.rt, d.ra, d.imm16)
	case 0x12:
		return fmt.Sprintf("LDBU r%d, r%d, %04x", d.rt, d.ra, d.imm16)
	case 0x13:
		return fmt.Sprintf("STWD r%d, r%d, %04x", d.rt, d.ra, d.imm16)
	case 0x14:
		return fmt.Sprintf("STHW r%d, r%d, %04x", d.rt, d.ra, d.imm16)
	case 0x15:
		return fmt.Sprintf("STSB r%d, r%d, %04x", d.rt, d.ra, d.imm16)
	default:
		return "????"
	}
}

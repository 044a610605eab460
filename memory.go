// memory.go - Physical memory for the CUP core

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
memory.go - Physical Memory for the CUP Core

This module implements the flat physical memory backing a CUP simulation: a
contiguous 1MiB byte-addressable store with little-endian byte/half-word/word
access and a loader for the CUSS memory-image format.

Core Features:

    1MiB of main memory allocated as a contiguous block.
    Byte, half-word and word get/set with little-endian encoding.
    Bounds checking on every access; out-of-range addresses fail with BadAddress.
    An image loader that reads (base, length, payload) sections until EOF.

Concurrency:

    A sync.RWMutex protects all accesses: the Executor writes while Running,
    the Monitor reads while the Executor is blocked in Paused/Breakpoint.
*/

package main

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"sync"
)

const (
	MemorySize = 1 << 20 // 2^20 bytes (1 MiB)
	WordSize   = 4
	HalfSize   = 2
)

// Memory is the flat physical address space of a CUP core.
type Memory struct {
	/*
		Memory implements the flat byte-addressable store backing a CUP
		simulation. It maintains a contiguous 1MiB block and enforces
		bounds checking on every access.

		Thread safety is enforced via a read/write mutex: the Executor
		holds it only for the duration of a single access, never across
		an instruction.
	*/

	bytes []byte
	mutex sync.RWMutex
}

// NewMemory allocates a zeroed 1MiB physical memory.
func NewMemory() *Memory {
	return &Memory{bytes: make([]byte, MemorySize)}
}

// Valid reports whether addr is a valid physical address, and whether the
// n-byte access starting at addr lies fully within bounds.
func (m *Memory) Valid(addr uint32, n uint32) bool {
	if n == 0 {
		return addr < MemorySize
	}
	end := uint64(addr) + uint64(n)
	return addr < MemorySize && end <= MemorySize
}

func (m *Memory) GetByte(addr uint32) (uint8, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	if !m.Valid(addr, 1) {
		return 0, newErr("GetByte", ErrBadAddress, fmt.Sprintf("addr=%#08x", addr))
	}
	return m.bytes[addr], nil
}

func (m *Memory) SetByte(addr uint32, v uint8) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if !m.Valid(addr, 1) {
		return newErr("SetByte", ErrBadAddress, fmt.Sprintf("addr=%#08x", addr))
	}
	m.bytes[addr] = v
	return nil
}

func (m *Memory) GetHalf(addr uint32) (uint16, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	if !m.Valid(addr, HalfSize) {
		return 0, newErr("GetHalf", ErrBadAddress, fmt.Sprintf("addr=%#08x", addr))
	}
	return binary.LittleEndian.Uint16(m.bytes[addr : addr+HalfSize]), nil
}

func (m *Memory) SetHalf(addr uint32, v uint16) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if !m.Valid(addr, HalfSize) {
		return newErr("SetHalf", ErrBadAddress, fmt.Sprintf("addr=%#08x", addr))
	}
	binary.LittleEndian.PutUint16(m.bytes[addr:addr+HalfSize], v)
	return nil
}

func (m *Memory) GetWord(addr uint32) (uint32, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	if !m.Valid(addr, WordSize) {
		return 0, newErr("GetWord", ErrBadAddress, fmt.Sprintf("addr=%#08x", addr))
	}
	return binary.LittleEndian.Uint32(m.bytes[addr : addr+WordSize]), nil
}

func (m *Memory) SetWord(addr uint32, v uint32) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if !m.Valid(addr, WordSize) {
		return newErr("SetWord", ErrBadAddress, fmt.Sprintf("addr=%#08x", addr))
	}
	binary.LittleEndian.PutUint32(m.bytes[addr:addr+WordSize], v)
	return nil
}

// Reset clears the entire memory to zero bytes.
func (m *Memory) Reset() {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	for i := range m.bytes {
		m.bytes[i] = 0
	}
}

// LoadImage reads a CUSS memory-image file: a sequence of sections, each an
// 8-byte little-endian (base, length) header followed by exactly length
// bytes of payload, copied verbatim into memory starting at base. The file
// ends at a section boundary; EOF exactly at a header start is success.
func (m *Memory) LoadImage(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return wrapErr("LoadImage", ErrIoError, path, err)
	}
	defer f.Close()
	r := bufio.NewReader(f)

	header := make([]byte, 8)
	for {
		n, err := io.ReadFull(r, header)
		if err == io.EOF && n == 0 {
			return nil
		}
		if err == io.ErrUnexpectedEOF {
			return newErr("LoadImage", ErrTruncatedSection, fmt.Sprintf("%s: truncated section header (%d bytes)", path, n))
		}
		if err != nil {
			return wrapErr("LoadImage", ErrIoError, path, err)
		}

		base := binary.LittleEndian.Uint32(header[0:4])
		length := binary.LittleEndian.Uint32(header[4:8])

		if !m.Valid(base, length) {
			return newErr("LoadImage", ErrOutOfBoundsSection,
				fmt.Sprintf("%s: section base=%#08x length=%d exceeds memory", path, base, length))
		}

		payload := make([]byte, length)
		if length > 0 {
			n, err := io.ReadFull(r, payload)
			if err == io.ErrUnexpectedEOF || (err == io.EOF && uint32(n) != length) {
				return newErr("LoadImage", ErrTruncatedSection,
					fmt.Sprintf("%s: truncated payload (got %d of %d bytes)", path, n, length))
			}
			if err != nil {
				return wrapErr("LoadImage", ErrIoError, path, err)
			}
		}

		m.mutex.Lock()
		copy(m.bytes[base:base+length], payload)
		m.mutex.Unlock()
	}
}

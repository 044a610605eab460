// errors.go - Error taxonomy for the CUSS core

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

import "fmt"

// ErrorKind classifies a CussError so callers can branch on failure category
// without string-matching the message.
type ErrorKind int

const (
	ErrBadAddress ErrorKind = iota
	ErrBadRegister
	ErrUnalignedPC
	ErrBadInstruction
	ErrTruncatedSection
	ErrOutOfBoundsSection
	ErrIoError
	ErrBreakpointTableFull
	ErrBreakpointNotFound
	ErrBadState
)

func (k ErrorKind) String() string {
	switch k {
	case ErrBadAddress:
		return "BadAddress"
	case ErrBadRegister:
		return "BadRegister"
	case ErrUnalignedPC:
		return "UnalignedPC"
	case ErrBadInstruction:
		return "BadInstruction"
	case ErrTruncatedSection:
		return "TruncatedSection"
	case ErrOutOfBoundsSection:
		return "OutOfBoundsSection"
	case ErrIoError:
		return "IoError"
	case ErrBreakpointTableFull:
		return "BreakpointTableFull"
	case ErrBreakpointNotFound:
		return "BreakpointNotFound"
	case ErrBadState:
		return "BadState"
	default:
		return "Unknown"
	}
}

// CussError is the single error type returned by every fallible core
// operation (Memory, CPU state, Executor, loader). It carries enough
// structure for a caller to branch on Kind and enough text for a human
// to read straight off the monitor prompt.
type CussError struct {
	Kind   ErrorKind
	Op     string
	Detail string
	Err    error
}

func (e *CussError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %s: %v", e.Op, e.Kind, e.Detail, e.Err)
	}
	return fmt.Sprintf("%s: %s: %s", e.Op, e.Kind, e.Detail)
}

func (e *CussError) Unwrap() error {
	return e.Err
}

func newErr(op string, kind ErrorKind, detail string) *CussError {
	return &CussError{Op: op, Kind: kind, Detail: detail}
}

func wrapErr(op string, kind ErrorKind, detail string, err error) *CussError {
	return &CussError{Op: op, Kind: kind, Detail: detail, Err: err}
}

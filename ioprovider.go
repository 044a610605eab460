// ioprovider.go - Monitor I/O providers: interactive terminal and scripted input

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
ioprovider.go - Line I/O for the Monitor

IOProvider abstracts the Monitor's terminal so it can be driven by a real
interactive tty (TerminalIOProvider) or by a plain reader/writer pair
(ScriptIOProvider, used by every test and by non-interactive script
replay). Only TerminalIOProvider touches the host terminal state.
*/

package main

import (
	"bufio"
	"io"
	"os"
	"strings"
	"sync"
	"syscall"

	"golang.org/x/term"
)

// IOProvider is everything the Monitor needs from its input/output channel.
type IOProvider interface {
	// ReadLine blocks for one line of input. eof is true at end of input
	// with no further lines available; err reports any other failure.
	ReadLine() (line string, eof bool, err error)
	WriteString(s string) error
	Close() error
}

// TerminalIOProvider drives an interactive controlling terminal in raw
// mode, doing its own line editing (backspace, Ctrl-D-as-EOF) the way
// the reference monitor's line discipline expects, rather than delegating
// to the host's cooked-mode tty driver.
type TerminalIOProvider struct {
	fd       int
	oldState *term.State
	out      io.Writer

	mu     sync.Mutex
	closed bool
}

// NewTerminalIOProvider puts stdin into raw mode and returns a provider
// bound to stdin/stdout.
func NewTerminalIOProvider() (*TerminalIOProvider, error) {
	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return nil, wrapErr("NewTerminalIOProvider", ErrIoError, "term.MakeRaw", err)
	}
	return &TerminalIOProvider{fd: fd, oldState: oldState, out: os.Stdout}, nil
}

// ReadLine reads raw bytes from the terminal, applying backspace editing
// and translating CR to LF, until a full line or EOF is available.
func (p *TerminalIOProvider) ReadLine() (string, bool, error) {
	var line []byte
	buf := make([]byte, 1)

	for {
		n, err := syscall.Read(p.fd, buf)
		if n > 0 {
			b := buf[0]
			switch {
			case b == '\r' || b == '\n':
				_, _ = p.out.Write([]byte("\r\n"))
				return string(line), false, nil
			case b == 0x7F || b == 0x08:
				if len(line) > 0 {
					line = line[:len(line)-1]
					_, _ = p.out.Write([]byte("\b \b"))
				}
			case b == 0x04: // Ctrl-D
				return string(line), true, nil
			default:
				line = append(line, b)
				_, _ = p.out.Write([]byte{b})
			}
			continue
		}
		if err == syscall.EAGAIN || err == syscall.EWOULDBLOCK {
			continue
		}
		if err == io.EOF || n == 0 {
			return string(line), true, nil
		}
		if err != nil {
			return "", false, wrapErr("ReadLine", ErrIoError, "syscall.Read", err)
		}
	}
}

func (p *TerminalIOProvider) WriteString(s string) error {
	_, err := p.out.Write([]byte(s))
	if err != nil {
		return wrapErr("WriteString", ErrIoError, "stdout", err)
	}
	return nil
}

// Close restores the terminal's prior cooked-mode state.
func (p *TerminalIOProvider) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	p.closed = true
	if p.oldState != nil {
		return term.Restore(p.fd, p.oldState)
	}
	return nil
}

// ScriptIOProvider drives the Monitor from an arbitrary reader/writer
// pair with no terminal semantics: used by every test and by
// non-interactive batch replay of monitor commands.
type ScriptIOProvider struct {
	scanner *bufio.Scanner
	out     io.Writer
}

// NewScriptIOProvider wraps r/w as a non-terminal IOProvider.
func NewScriptIOProvider(r io.Reader, w io.Writer) *ScriptIOProvider {
	return &ScriptIOProvider{scanner: bufio.NewScanner(r), out: w}
}

func (p *ScriptIOProvider) ReadLine() (string, bool, error) {
	if !p.scanner.Scan() {
		if err := p.scanner.Err(); err != nil {
			return "", false, wrapErr("ReadLine", ErrIoError, "scan", err)
		}
		return "", true, nil
	}
	return strings.TrimRight(p.scanner.Text(), "\r"), false, nil
}

func (p *ScriptIOProvider) WriteString(s string) error {
	_, err := p.out.Write([]byte(s))
	if err != nil {
		return wrapErr("WriteString", ErrIoError, "writer", err)
	}
	return nil
}

func (p *ScriptIOProvider) Close() error { return nil }

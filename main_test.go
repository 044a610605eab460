package main

import "testing"

// TestParseArgsRequiresMemoryImage verifies -m/--memory-image is
// mandatory when -h/--help is not given.
func TestParseArgsRequiresMemoryImage(t *testing.T) {
	if _, err := parseArgs([]string{}); err == nil {
		t.Fatal("parseArgs with no flags succeeded, expected missing -m error")
	}
}

// TestParseArgsHelpBypassesMemoryImage verifies -h short-circuits the
// required-flag check.
func TestParseArgsHelpBypassesMemoryImage(t *testing.T) {
	cfg, err := parseArgs([]string{"-h"})
	if err != nil {
		t.Fatalf("parseArgs(-h): %v", err)
	}
	if !cfg.help {
		t.Fatal("cfg.help = false, expected true")
	}
}

// TestParseArgsAcceptsLongAndShortForms verifies -m and --memory-image
// are equivalent aliases for the same flag.
func TestParseArgsAcceptsLongAndShortForms(t *testing.T) {
	cfg, err := parseArgs([]string{"--memory-image=/tmp/image.bin"})
	if err != nil {
		t.Fatalf("parseArgs: %v", err)
	}
	if cfg.memoryImage != "/tmp/image.bin" {
		t.Fatalf("memoryImage = %q, expected /tmp/image.bin", cfg.memoryImage)
	}

	cfg, err = parseArgs([]string{"-m=/tmp/image.bin"})
	if err != nil {
		t.Fatalf("parseArgs: %v", err)
	}
	if cfg.memoryImage != "/tmp/image.bin" {
		t.Fatalf("memoryImage = %q, expected /tmp/image.bin", cfg.memoryImage)
	}
}

// TestParseArgsRepeatableBreakpoints verifies each -b occurrence adds
// one more breakpoint address, in order.
func TestParseArgsRepeatableBreakpoints(t *testing.T) {
	cfg, err := parseArgs([]string{"-m=/tmp/i.bin", "-b=0x10", "-b=32", "--break-point=020"})
	if err != nil {
		t.Fatalf("parseArgs: %v", err)
	}
	want := []uint32{0x10, 32, 16} // "020" is base-0 octal => 16
	if len(cfg.breakpoints.addrs) != len(want) {
		t.Fatalf("breakpoints = %v, expected %v", cfg.breakpoints.addrs, want)
	}
	for i, a := range want {
		if cfg.breakpoints.addrs[i] != a {
			t.Fatalf("breakpoints[%d] = %#x, expected %#x", i, cfg.breakpoints.addrs[i], a)
		}
	}
}

// TestParseArgsRejectsBadBreakpointLiteral verifies a non-numeric -b
// argument is a parse error rather than a silently-ignored breakpoint.
func TestParseArgsRejectsBadBreakpointLiteral(t *testing.T) {
	if _, err := parseArgs([]string{"-m=/tmp/i.bin", "-b=not-a-number"}); err == nil {
		t.Fatal("parseArgs with bad breakpoint literal succeeded, expected error")
	}
}

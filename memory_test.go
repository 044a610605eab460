package main

import "testing"

// TestMemoryRoundTripWord verifies that a word written at an address reads
// back unchanged, and that its low byte matches little-endian encoding.
func TestMemoryRoundTripWord(t *testing.T) {
	m := NewMemory()

	if err := m.SetWord(0x1000, 0x12345678); err != nil {
		t.Fatalf("SetWord: %v", err)
	}
	got, err := m.GetWord(0x1000)
	if err != nil {
		t.Fatalf("GetWord: %v", err)
	}
	if got != 0x12345678 {
		t.Fatalf("GetWord() = %#08x, expected 0x12345678", got)
	}

	b, err := m.GetByte(0x1000)
	if err != nil {
		t.Fatalf("GetByte: %v", err)
	}
	if b != 0x78 {
		t.Fatalf("GetByte() = %#02x, expected 0x78 (little-endian)", b)
	}
}

// TestMemoryHalfWord verifies half-word access and its little-endian layout.
func TestMemoryHalfWord(t *testing.T) {
	m := NewMemory()

	if err := m.SetHalf(0x40, 0xBEEF); err != nil {
		t.Fatalf("SetHalf: %v", err)
	}
	got, err := m.GetHalf(0x40)
	if err != nil {
		t.Fatalf("GetHalf: %v", err)
	}
	if got != 0xBEEF {
		t.Fatalf("GetHalf() = %#04x, expected 0xBEEF", got)
	}
}

// TestMemoryBadAddress verifies that out-of-bounds accesses fail with
// ErrBadAddress rather than panicking.
func TestMemoryBadAddress(t *testing.T) {
	m := NewMemory()

	if _, err := m.GetByte(MemorySize); err == nil {
		t.Fatal("GetByte at MemorySize succeeded, expected BadAddress")
	}
	if _, err := m.GetWord(MemorySize - 1); err == nil {
		t.Fatal("GetWord straddling the end succeeded, expected BadAddress")
	}
	if err := m.SetWord(MemorySize-WordSize, 0); err != nil {
		t.Fatalf("SetWord at last valid word address failed: %v", err)
	}
}

// TestMemoryReset verifies that Reset zeroes every byte.
func TestMemoryReset(t *testing.T) {
	m := NewMemory()
	_ = m.SetWord(0x100, 0xFFFFFFFF)
	m.Reset()
	got, _ := m.GetWord(0x100)
	if got != 0 {
		t.Fatalf("GetWord() after Reset = %#08x, expected 0", got)
	}
}

// TestMemoryLoadImageRoundTrip verifies the section-loader contract: a
// header followed by exactly length bytes of payload, EOF at a section
// boundary is success.
func TestMemoryLoadImageRoundTrip(t *testing.T) {
	path := writeTempImage(t, []imageSection{
		{base: 0x00, payload: []byte{0xDE, 0xAD, 0xBE, 0xEF}},
		{base: 0x10, payload: []byte{0x01, 0x02}},
	})

	m := NewMemory()
	if err := m.LoadImage(path); err != nil {
		t.Fatalf("LoadImage: %v", err)
	}

	w, _ := m.GetWord(0x00)
	if w != 0xEFBEADDE {
		t.Fatalf("GetWord(0) = %#08x, expected 0xEFBEADDE", w)
	}
	h, _ := m.GetHalf(0x10)
	if h != 0x0201 {
		t.Fatalf("GetHalf(0x10) = %#04x, expected 0x0201", h)
	}
}

// TestMemoryLoadImageTruncatedPayload verifies a truncated payload fails
// with ErrTruncatedSection rather than silently loading a short section.
func TestMemoryLoadImageTruncatedPayload(t *testing.T) {
	path := writeTempRaw(t, append(leU32(0), append(leU32(8), []byte{1, 2, 3}...)...))

	m := NewMemory()
	err := m.LoadImage(path)
	if err == nil {
		t.Fatal("LoadImage with truncated payload succeeded, expected error")
	}
	var ce *CussError
	if !asCussError(err, &ce) || ce.Kind != ErrTruncatedSection {
		t.Fatalf("LoadImage error = %v, expected ErrTruncatedSection", err)
	}
}

// TestMemoryLoadImageOutOfBounds verifies a section that would write past
// the end of memory fails with ErrOutOfBoundsSection.
func TestMemoryLoadImageOutOfBounds(t *testing.T) {
	path := writeTempImage(t, []imageSection{
		{base: MemorySize - 2, payload: []byte{1, 2, 3, 4}},
	})

	m := NewMemory()
	err := m.LoadImage(path)
	if err == nil {
		t.Fatal("LoadImage with out-of-bounds section succeeded, expected error")
	}
	var ce *CussError
	if !asCussError(err, &ce) || ce.Kind != ErrOutOfBoundsSection {
		t.Fatalf("LoadImage error = %v, expected ErrOutOfBoundsSection", err)
	}
}

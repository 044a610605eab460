package main

import (
	"encoding/binary"
	"errors"
	"os"
	"testing"
)

// imageSection describes one section of a memory-image file for test
// construction: base address plus raw payload bytes.
type imageSection struct {
	base    uint32
	payload []byte
}

func leU32(v uint32) []byte {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, v)
	return b
}

// writeTempImage serialises sections into the CUSS memory-image format
// (8-byte little-endian header + payload, repeated) and returns the path
// of the temp file holding it.
func writeTempImage(t *testing.T, sections []imageSection) string {
	t.Helper()
	var buf []byte
	for _, s := range sections {
		buf = append(buf, leU32(s.base)...)
		buf = append(buf, leU32(uint32(len(s.payload)))...)
		buf = append(buf, s.payload...)
	}
	return writeTempRaw(t, buf)
}

// writeTempRaw writes arbitrary bytes to a temp file and returns its path.
func writeTempRaw(t *testing.T, data []byte) string {
	t.Helper()
	f, err := os.CreateTemp(t.TempDir(), "cuss-image-*.bin")
	if err != nil {
		t.Fatalf("CreateTemp: %v", err)
	}
	defer f.Close()
	if _, err := f.Write(data); err != nil {
		t.Fatalf("Write: %v", err)
	}
	return f.Name()
}

// asCussError unwraps err looking for a *CussError, mirroring errors.As
// without requiring every test to repeat the boilerplate.
func asCussError(err error, target **CussError) bool {
	return errors.As(err, target)
}

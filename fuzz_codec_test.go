package bitmask

import (
	"strings"
	"testing"
)

// FuzzBinaryRoundTrip exercises the binary and text codecs with arbitrary bytes.
// Goal: no panics; every byte string roundtrips through both encodings.
func FuzzBinaryRoundTrip(f *testing.F) {
	f.Add([]byte{})
	f.Add([]byte{0x00})
	f.Add([]byte{0x20})
	f.Add([]byte{0xff, 0x01})
	f.Add(make([]byte, 64))

	f.Fuzz(func(t *testing.T, data []byte) {
		m := FromBinary(data)
		if m.Len() != 8*len(data) {
			t.Fatalf("length mismatch: %d bits for %d bytes", m.Len(), len(data))
		}

		encoded := m.Bytes()
		if len(encoded) != len(data) {
			t.Fatalf("roundtrip length mismatch: %d vs %d", len(encoded), len(data))
		}
		for i := range data {
			if encoded[i] != data[i] {
				t.Fatalf("roundtrip byte mismatch at %d: %02x vs %02x", i, encoded[i], data[i])
			}
		}

		if len(data) == 0 {
			return
		}

		text := m.String()
		parsed, err := FromBitString(text, false)
		if err != nil {
			t.Fatalf("FromBitString failed on %q: %v", text, err)
		}
		if !parsed.Equal(m) {
			t.Fatalf("text roundtrip mismatch: %s vs %s", parsed, m)
		}
	})
}

// FuzzBitString feeds arbitrary text to the parser. Goal: no panics; accepted input
// renders back identically.
func FuzzBitString(f *testing.F) {
	f.Add("01001001")
	f.Add("0000011000110000")
	f.Add("foo")
	f.Add("010")
	f.Add("")

	f.Fuzz(func(t *testing.T, text string) {
		m, err := FromBitString(text, false)
		if err != nil {
			return
		}
		if strings.Trim(text, "01") != "" || len(text)%8 != 0 {
			t.Fatalf("malformed input %q was accepted", text)
		}
		if got := m.String(); got != text {
			t.Fatalf("roundtrip mismatch: %q vs %q", got, text)
		}
	})
}

package numeric_test

import (
	"encoding/hex"
	"testing"

	"github.com/coachpo/pgnumeric/errs"
	"github.com/coachpo/pgnumeric/numeric"
)

func TestPackGolden(t *testing.T) {
	cases := []struct {
		in   string
		hex  string
		size int
	}{
		{"NaN", "00c0", 2},
		{"Infinity", "00d0", 2},
		{"-Infinity", "00f0", 2},
		{"1.5", "808001008813", 6},
		{"-12345.678", "81a1010029097c1a", 8},
		// dscale 64 exceeds the short header and forces the long form
		{"1e-64", "4000f0ff0100", 6},
	}
	for _, tc := range cases {
		n := mustParse(t, tc.in)
		got := n.Pack()
		if hex.EncodeToString(got) != tc.hex {
			t.Errorf("Pack(%s) = %x, want %s", tc.in, got, tc.hex)
		}
		if n.PackedSize() != tc.size {
			t.Errorf("PackedSize(%s) = %d, want %d", tc.in, n.PackedSize(), tc.size)
		}
	}
}

func TestPackUnpackRoundTrip(t *testing.T) {
	literals := []string{
		"0", "0.00", "1.5", "-1.5", "9999.9999", "-12345.678",
		"120000", "0.001", "12345678901234567890.123456789",
		"1e300", "1e-300", "-1e300",
		"NaN", "Infinity", "-Infinity",
	}
	for _, s := range literals {
		n := mustParse(t, s)
		packed := n.Pack()
		if len(packed) != n.PackedSize() {
			t.Errorf("Pack(%s) wrote %d bytes, PackedSize says %d", s, len(packed), n.PackedSize())
		}
		back, err := numeric.Unpack(packed)
		if err != nil {
			t.Errorf("Unpack(Pack(%s)): %v", s, err)
			continue
		}
		if back.String() != s && back.String() != n.String() {
			t.Errorf("round trip %s = %s", s, back)
		}
		if back.Scale() != n.Scale() {
			t.Errorf("round trip %s lost scale: %d != %d", s, back.Scale(), n.Scale())
		}
	}
}

func TestAppendPackedConcatenation(t *testing.T) {
	vals := []string{"1.5", "NaN", "-12345.678", "1e-64"}
	var buf []byte
	for _, s := range vals {
		buf = mustParse(t, s).AppendPacked(buf)
	}
	for _, s := range vals {
		n := mustParse(t, s)
		size := n.PackedSize()
		back, err := numeric.Unpack(buf[:size])
		if err != nil {
			t.Fatalf("Unpack slice for %s: %v", s, err)
		}
		if !back.IsNaN() && !back.Equal(n) {
			t.Errorf("sliced %s decoded as %s", s, back)
		}
		buf = buf[size:]
	}
	if len(buf) != 0 {
		t.Errorf("%d trailing bytes", len(buf))
	}
}

func TestUnpackRejectsMalformedInput(t *testing.T) {
	cases := []struct {
		name string
		hex  string
	}{
		{"empty", ""},
		{"one byte", "80"},
		{"odd length", "808001"},
		{"special with payload", "00c00000"},
		{"unknown special", "00e0"},
		{"digit out of range", "00801027"},
		{"long header cut short", "0000"},
	}
	for _, tc := range cases {
		b, err := hex.DecodeString(tc.hex)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := numeric.Unpack(b); err == nil {
			t.Errorf("%s: Unpack succeeded", tc.name)
		} else {
			wantCode(t, err, errs.CodeInvalidArgument)
		}
	}
}

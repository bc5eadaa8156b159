package numeric_test

import (
	"testing"

	"github.com/coachpo/pgnumeric/errs"
)

func TestPower(t *testing.T) {
	cases := []struct {
		base, exp, want string
	}{
		{"2", "10", "1024.0000000000000"},
		{"2", "-2", "0.2500000000000000"},
		{"10", "20", "100000000000000000000"},
		{"1.01", "365", "37.783434332887159"},
		{"2", "0.5", "1.4142135623730950"},
		{"9", "0.5", "3.0000000000000000"},
		{"-8", "3", "-512.00000000000000"},
		{"-8", "-3", "-0.001953125000000000"},
		{"0.5", "-10", "1024.0000000000000"},
		{"2.5", "3.5", "24.705294220065464"},
		{"0", "0", "1.0000000000000000"},
		{"123", "1", "123.00000000000000"},
		{"10", "-13", "0.00000000000010000000000000000"},
		{"-2", "2", "4.0000000000000000"},
	}
	for _, tc := range cases {
		base, exp := mustParse(t, tc.base), mustParse(t, tc.exp)
		got, err := base.Power(exp)
		if err != nil {
			t.Errorf("Power(%s, %s): %v", tc.base, tc.exp, err)
			continue
		}
		if got.String() != tc.want {
			t.Errorf("Power(%s, %s) = %s, want %s", tc.base, tc.exp, got, tc.want)
		}
	}
}

func TestPowerErrors(t *testing.T) {
	cases := []struct {
		base, exp string
		code      errs.Code
	}{
		{"0", "-1", errs.CodeInvalidArgument},
		{"0", "-Infinity", errs.CodeInvalidArgument},
		{"-8", "0.5", errs.CodeInvalidArgument},
		{"-2.5", "3.000001", errs.CodeInvalidArgument},
		{"10", "200000", errs.CodeOverflow},
	}
	for _, tc := range cases {
		base, exp := mustParse(t, tc.base), mustParse(t, tc.exp)
		if _, err := base.Power(exp); err == nil {
			t.Errorf("Power(%s, %s) succeeded", tc.base, tc.exp)
		} else {
			wantCode(t, err, tc.code)
		}
	}
}

func TestPowerSpecials(t *testing.T) {
	cases := []struct {
		base, exp, want string
	}{
		{"NaN", "0", "1"},
		{"1", "NaN", "1"},
		{"NaN", "2", "NaN"},
		{"2", "NaN", "NaN"},
		{"NaN", "NaN", "NaN"},
		{"-1", "Infinity", "1"},
		{"-1", "-Infinity", "1"},
		{"2", "Infinity", "Infinity"},
		{"2", "-Infinity", "0"},
		{"0.5", "Infinity", "0"},
		{"0.5", "-Infinity", "Infinity"},
		{"Infinity", "2", "Infinity"},
		{"Infinity", "-2", "0"},
		{"-Infinity", "3", "-Infinity"},
		{"-Infinity", "2", "Infinity"},
		{"-Infinity", "-1", "0"},
		{"Infinity", "0", "1"},
	}
	for _, tc := range cases {
		base, exp := mustParse(t, tc.base), mustParse(t, tc.exp)
		got, err := base.Power(exp)
		if err != nil {
			t.Errorf("Power(%s, %s): %v", tc.base, tc.exp, err)
			continue
		}
		if got.String() != tc.want {
			t.Errorf("Power(%s, %s) = %s, want %s", tc.base, tc.exp, got, tc.want)
		}
	}
}

func TestPowerUnderflowToZero(t *testing.T) {
	// The magnitude is far below the smallest representable scale, so the
	// result collapses to zero at the maximum display scale.
	got, err := mustParse(t, "10").Power(mustParse(t, "-200000"))
	if err != nil {
		t.Fatalf("Power(10, -200000): %v", err)
	}
	if !got.IsZero() {
		t.Fatalf("Power(10, -200000) = %s, want 0", got)
	}
	if got.Scale() != 1000 {
		t.Errorf("underflow scale = %d, want 1000", got.Scale())
	}
}

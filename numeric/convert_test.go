package numeric_test

import (
	"math"
	"testing"

	"github.com/coachpo/pgnumeric/errs"
	"github.com/coachpo/pgnumeric/numeric"
)

func TestInt64(t *testing.T) {
	cases := []struct {
		in   string
		want int64
	}{
		{"0", 0},
		{"42", 42},
		{"-42", -42},
		{"2.5", 3},
		{"-2.5", -3},
		{"2.4", 2},
		{"9223372036854775807", math.MaxInt64},
		{"-9223372036854775808", math.MinInt64},
		{"9223372036854775806.6", math.MaxInt64},
	}
	for _, tc := range cases {
		got, err := mustParse(t, tc.in).Int64()
		if err != nil {
			t.Errorf("Int64(%s): %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("Int64(%s) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestInt64OutOfRange(t *testing.T) {
	bad := []string{
		"9223372036854775808", "-9223372036854775809",
		"9223372036854775807.5", "1e30",
	}
	for _, s := range bad {
		if _, err := mustParse(t, s).Int64(); err == nil {
			t.Errorf("Int64(%s) succeeded", s)
		} else {
			wantCode(t, err, errs.CodeOutOfRange)
		}
	}
}

func TestIntConversionsRejectSpecials(t *testing.T) {
	for _, s := range []string{"NaN", "Infinity", "-Infinity"} {
		n := mustParse(t, s)
		if _, err := n.Int64(); err == nil {
			t.Errorf("Int64(%s) succeeded", s)
		} else {
			wantCode(t, err, errs.CodeOutOfRange)
		}
		if _, err := n.Int32(); err == nil {
			t.Errorf("Int32(%s) succeeded", s)
		}
		if _, err := n.Uint64(); err == nil {
			t.Errorf("Uint64(%s) succeeded", s)
		}
		if _, _, err := n.Int128(); err == nil {
			t.Errorf("Int128(%s) succeeded", s)
		}
	}
}

func TestInt32Int16(t *testing.T) {
	if got, err := mustParse(t, "-2147483648").Int32(); err != nil || got != math.MinInt32 {
		t.Errorf("Int32(min) = %d, %v", got, err)
	}
	if _, err := mustParse(t, "2147483648").Int32(); err == nil {
		t.Error("Int32(2^31) succeeded")
	}
	if got, err := mustParse(t, "32767.4").Int16(); err != nil || got != math.MaxInt16 {
		t.Errorf("Int16(32767.4) = %d, %v", got, err)
	}
	if _, err := mustParse(t, "32767.5").Int16(); err == nil {
		t.Error("Int16(32767.5) succeeded")
	}
}

func TestUint64(t *testing.T) {
	if got, err := mustParse(t, "18446744073709551615").Uint64(); err != nil || got != math.MaxUint64 {
		t.Errorf("Uint64(max) = %d, %v", got, err)
	}
	if _, err := mustParse(t, "18446744073709551616").Uint64(); err == nil {
		t.Error("Uint64(2^64) succeeded")
	}
	if _, err := mustParse(t, "-1").Uint64(); err == nil {
		t.Error("Uint64(-1) succeeded")
	}
	if got, err := mustParse(t, "0.4").Uint64(); err != nil || got != 0 {
		t.Errorf("Uint64(0.4) = %d, %v", got, err)
	}
}

func TestInt128RoundTrip(t *testing.T) {
	cases := []string{
		"0", "1", "-1", "170141183460469231731687303715884105727",
		"-170141183460469231731687303715884105728",
		"12345678901234567890123456789",
	}
	for _, s := range cases {
		hi, lo, err := mustParse(t, s).Int128()
		if err != nil {
			t.Errorf("Int128(%s): %v", s, err)
			continue
		}
		wantString(t, numeric.FromInt128(hi, lo), s)
	}
	if _, _, err := mustParse(t, "170141183460469231731687303715884105728").Int128(); err == nil {
		t.Error("Int128(2^127) succeeded")
	} else {
		wantCode(t, err, errs.CodeOutOfRange)
	}
}

func TestFromInt(t *testing.T) {
	wantString(t, numeric.FromInt64(math.MinInt64), "-9223372036854775808")
	wantString(t, numeric.FromInt64(0), "0")
	wantString(t, numeric.FromUint64(math.MaxUint64), "18446744073709551615")
	wantString(t, numeric.FromInt32(-1000000), "-1000000")
	wantString(t, numeric.FromInt16(math.MinInt16), "-32768")
	wantString(t, numeric.FromInt128(0, 7), "7")
	wantString(t, numeric.FromInt128(-1, math.MaxUint64), "-1")
}

func TestFloat64(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"0", 0},
		{"1.5", 1.5},
		{"-2.25", -2.25},
		{"0.1", 0.1},
		{"12345678901234567890", 12345678901234567890},
	}
	for _, tc := range cases {
		got, err := mustParse(t, tc.in).Float64()
		if err != nil {
			t.Errorf("Float64(%s): %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("Float64(%s) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestFloat64Specials(t *testing.T) {
	if got, err := mustParse(t, "NaN").Float64(); err != nil || !math.IsNaN(got) {
		t.Errorf("Float64(NaN) = %v, %v", got, err)
	}
	if got, err := mustParse(t, "Infinity").Float64(); err != nil || !math.IsInf(got, 1) {
		t.Errorf("Float64(Infinity) = %v, %v", got, err)
	}
	if got, err := mustParse(t, "-Infinity").Float64(); err != nil || !math.IsInf(got, -1) {
		t.Errorf("Float64(-Infinity) = %v, %v", got, err)
	}
}

func TestFloat64Overflow(t *testing.T) {
	if _, err := mustParse(t, "1e400").Float64(); err == nil {
		t.Error("Float64(1e400) succeeded")
	} else {
		wantCode(t, err, errs.CodeOutOfRange)
	}
}

func TestFloat32(t *testing.T) {
	if got, err := mustParse(t, "1.5").Float32(); err != nil || got != 1.5 {
		t.Errorf("Float32(1.5) = %v, %v", got, err)
	}
	if _, err := mustParse(t, "1e40").Float32(); err == nil {
		t.Error("Float32(1e40) succeeded")
	}
	if _, err := mustParse(t, "1e40").Float64(); err != nil {
		t.Error("1e40 should still fit a float64")
	}
}

func TestFromFloat(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{1.5, "1.5"},
		{-2.25, "-2.25"},
		{0.1, "0.1"},
		{1e20, "100000000000000000000"},
	}
	for _, tc := range cases {
		wantString(t, numeric.FromFloat64(tc.in), tc.want)
	}

	if n := numeric.FromFloat64(math.NaN()); !n.IsNaN() {
		t.Errorf("FromFloat64(NaN) = %s", n)
	}
	if n := numeric.FromFloat64(math.Inf(-1)); !n.IsInf(-1) {
		t.Errorf("FromFloat64(-Inf) = %s", n)
	}
	wantString(t, numeric.FromFloat32(0.1), "0.1")
	if n := numeric.FromFloat32(float32(math.Inf(1))); !n.IsInf(1) {
		t.Errorf("FromFloat32(+Inf) = %s", n)
	}
}

package numeric_test

import (
	"testing"

	"github.com/coachpo/pgnumeric/errs"
)

func TestMul(t *testing.T) {
	cases := []struct {
		x, y, want string
	}{
		{"12.34", "5.6", "69.104"},
		{"99999999", "99999999", "9999999800000001"},
		{"0.001", "0.001", "0.000001"},
		{"-7.77", "8.8", "-68.376"},
		{"12345.678", "0", "0.000"},
		{"9999.9999", "9999.9999", "99999998.00000001"},
	}
	for _, tc := range cases {
		x, y := mustParse(t, tc.x), mustParse(t, tc.y)
		got, err := x.Mul(y)
		if err != nil {
			t.Errorf("%s * %s: %v", tc.x, tc.y, err)
			continue
		}
		if got.String() != tc.want {
			t.Errorf("%s * %s = %s, want %s", tc.x, tc.y, got, tc.want)
		}
	}
}

func TestMulSpecials(t *testing.T) {
	cases := []struct {
		x, y, want string
	}{
		{"NaN", "5", "NaN"},
		{"5", "NaN", "NaN"},
		{"Infinity", "0", "NaN"},
		{"0", "-Infinity", "NaN"},
		{"Infinity", "2", "Infinity"},
		{"Infinity", "-2", "-Infinity"},
		{"-Infinity", "-Infinity", "Infinity"},
		{"-Infinity", "3", "-Infinity"},
	}
	for _, tc := range cases {
		x, y := mustParse(t, tc.x), mustParse(t, tc.y)
		got, err := x.Mul(y)
		if err != nil {
			t.Errorf("%s * %s: %v", tc.x, tc.y, err)
			continue
		}
		if got.String() != tc.want {
			t.Errorf("%s * %s = %s, want %s", tc.x, tc.y, got, tc.want)
		}
	}
}

func TestMulOverflow(t *testing.T) {
	// 1e100000 is storable, its square is not.
	big := mustParse(t, "1e100000")
	_, err := big.Mul(big)
	if err == nil {
		t.Fatal("squaring 1e100000 succeeded, want overflow")
	}
	wantCode(t, err, errs.CodeOverflow)
}

func TestMulKeepsFullPrecision(t *testing.T) {
	x := mustParse(t, "1.000000000000000000000000000001")
	y := mustParse(t, "1.000000000000000000000000000001")
	got, err := x.Mul(y)
	if err != nil {
		t.Fatal(err)
	}
	want := mustParse(t, "1.000000000000000000000000000002000000000000000000000000000001")
	if !got.Equal(want) {
		t.Errorf("exact product lost precision: %s", got)
	}
}

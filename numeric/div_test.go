package numeric_test

import (
	"testing"

	"github.com/coachpo/pgnumeric/errs"
)

func TestDiv(t *testing.T) {
	cases := []struct {
		x, y, want string
	}{
		{"1", "3", "0.33333333333333333333"},
		{"10", "4", "2.5000000000000000"},
		{"12345.678", "100", "123.4567800000000000"},
		{"-7", "1.25", "-5.6000000000000000"},
		{"0.0", "3", "0.00000000000000000000"},
		{"100000000000000000000", "7", "14285714285714285714"},
		{"999999", "0.001", "999999000.00000000"},
	}
	for _, tc := range cases {
		x, y := mustParse(t, tc.x), mustParse(t, tc.y)
		got, err := x.Div(y)
		if err != nil {
			t.Errorf("%s / %s: %v", tc.x, tc.y, err)
			continue
		}
		if got.String() != tc.want {
			t.Errorf("%s / %s = %s, want %s", tc.x, tc.y, got, tc.want)
		}
	}
}

func TestDivScale(t *testing.T) {
	cases := []struct {
		x, y  string
		scale int
		round bool
		want  string
	}{
		{"7", "3", 2, true, "2.33"},
		{"7", "3", 2, false, "2.33"},
		{"2", "3", 4, true, "0.6667"},
		{"2", "3", 4, false, "0.6666"},
		{"12345", "7", -2, true, "1800"},
		{"1", "8", 5, false, "0.12500"},
		{"-7", "3", 2, true, "-2.33"},
		{"-7", "3", 2, false, "-2.33"},
	}
	for _, tc := range cases {
		x, y := mustParse(t, tc.x), mustParse(t, tc.y)
		got, err := x.DivScale(y, tc.scale, tc.round)
		if err != nil {
			t.Errorf("DivScale(%s, %s, %d, %v): %v", tc.x, tc.y, tc.scale, tc.round, err)
			continue
		}
		if got.String() != tc.want {
			t.Errorf("DivScale(%s, %s, %d, %v) = %s, want %s", tc.x, tc.y, tc.scale, tc.round, got, tc.want)
		}
	}
}

func TestDivTrunc(t *testing.T) {
	cases := []struct {
		x, y, want string
	}{
		{"8", "3", "2"},
		{"-8", "3", "-2"},
		{"8", "-3", "-2"},
		{"10.00", "3.0", "3"},
	}
	for _, tc := range cases {
		x, y := mustParse(t, tc.x), mustParse(t, tc.y)
		got, err := x.DivTrunc(y)
		if err != nil {
			t.Errorf("DivTrunc(%s, %s): %v", tc.x, tc.y, err)
			continue
		}
		if got.String() != tc.want {
			t.Errorf("DivTrunc(%s, %s) = %s, want %s", tc.x, tc.y, got, tc.want)
		}
	}
}

func TestMod(t *testing.T) {
	cases := []struct {
		x, y, want string
	}{
		{"5", "3", "2"},
		{"-5", "3", "-2"},
		{"5", "-3", "2"},
		{"5.7", "2", "1.7"},
		{"10.00", "3", "1.00"},
		{"0.00", "7", "0.00"},
	}
	for _, tc := range cases {
		x, y := mustParse(t, tc.x), mustParse(t, tc.y)
		got, err := x.Mod(y)
		if err != nil {
			t.Errorf("%s %% %s: %v", tc.x, tc.y, err)
			continue
		}
		if got.String() != tc.want {
			t.Errorf("%s %% %s = %s, want %s", tc.x, tc.y, got, tc.want)
		}
	}
}

func TestDivisionByZero(t *testing.T) {
	zero := mustParse(t, "0")
	for _, s := range []string{"1", "0", "-2.5", "Infinity", "-Infinity"} {
		n := mustParse(t, s)
		if _, err := n.Div(zero); err == nil {
			t.Errorf("%s / 0 succeeded", s)
		} else {
			wantCode(t, err, errs.CodeDivisionByZero)
		}
		if _, err := n.DivScale(zero, 2, true); err == nil {
			t.Errorf("DivScale(%s, 0) succeeded", s)
		} else {
			wantCode(t, err, errs.CodeDivisionByZero)
		}
		if _, err := n.DivTrunc(zero); err == nil {
			t.Errorf("DivTrunc(%s, 0) succeeded", s)
		} else {
			wantCode(t, err, errs.CodeDivisionByZero)
		}
	}
	if _, err := mustParse(t, "5").Mod(zero); err == nil {
		t.Error("5 % 0 succeeded")
	} else {
		wantCode(t, err, errs.CodeDivisionByZero)
	}
	if _, err := mustParse(t, "Infinity").Mod(zero); err == nil {
		t.Error("Infinity % 0 succeeded")
	} else {
		wantCode(t, err, errs.CodeDivisionByZero)
	}
}

func TestDivSpecials(t *testing.T) {
	cases := []struct {
		x, y, want string
	}{
		{"NaN", "2", "NaN"},
		{"2", "NaN", "NaN"},
		{"Infinity", "Infinity", "NaN"},
		{"Infinity", "2", "Infinity"},
		{"Infinity", "-2", "-Infinity"},
		{"-Infinity", "2", "-Infinity"},
		{"5", "Infinity", "0"},
		{"5", "-Infinity", "0"},
	}
	for _, tc := range cases {
		x, y := mustParse(t, tc.x), mustParse(t, tc.y)
		got, err := x.Div(y)
		if err != nil {
			t.Errorf("%s / %s: %v", tc.x, tc.y, err)
			continue
		}
		if got.String() != tc.want {
			t.Errorf("%s / %s = %s, want %s", tc.x, tc.y, got, tc.want)
		}
	}
}

func TestModSpecials(t *testing.T) {
	cases := []struct {
		x, y, want string
	}{
		{"NaN", "3", "NaN"},
		{"3", "NaN", "NaN"},
		{"Infinity", "3", "NaN"},
		{"-Infinity", "Infinity", "NaN"},
		{"5.5", "Infinity", "5.5"},
		{"-5.5", "-Infinity", "-5.5"},
	}
	for _, tc := range cases {
		x, y := mustParse(t, tc.x), mustParse(t, tc.y)
		got, err := x.Mod(y)
		if err != nil {
			t.Errorf("%s %% %s: %v", tc.x, tc.y, err)
			continue
		}
		if got.String() != tc.want {
			t.Errorf("%s %% %s = %s, want %s", tc.x, tc.y, got, tc.want)
		}
	}
}

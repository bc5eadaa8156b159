package numeric_test

import (
	"testing"

	"github.com/coachpo/pgnumeric/errs"
)

func TestSqrt(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"2", "1.414213562373095"},
		{"100", "10.000000000000000"},
		{"0.25", "0.50000000000000000"},
		{"2.0000", "1.414213562373095"},
		{"10000000000", "100000.00000000000"},
		{"0.0000000001", "0.000010000000000000000"},
		{"0", "0.000000000000000"},
		{"123456789.987654321", "11111.11110500000"},
	}
	for _, tc := range cases {
		got, err := mustParse(t, tc.in).Sqrt()
		if err != nil {
			t.Errorf("Sqrt(%s): %v", tc.in, err)
			continue
		}
		if got.String() != tc.want {
			t.Errorf("Sqrt(%s) = %s, want %s", tc.in, got, tc.want)
		}
	}
}

func TestSqrtToScale(t *testing.T) {
	cases := []struct {
		in    string
		scale int
		want  string
	}{
		{"2", 30, "1.414213562373095048801688724210"},
		{"10", 10, "3.1622776602"},
		{"2", 0, "1"},
		{"152.2756", 2, "12.34"},
	}
	for _, tc := range cases {
		got, err := mustParse(t, tc.in).SqrtToScale(tc.scale)
		if err != nil {
			t.Errorf("SqrtToScale(%s, %d): %v", tc.in, tc.scale, err)
			continue
		}
		if got.String() != tc.want {
			t.Errorf("SqrtToScale(%s, %d) = %s, want %s", tc.in, tc.scale, got, tc.want)
		}
	}
}

func TestSqrtRejectsNegative(t *testing.T) {
	for _, s := range []string{"-1", "-0.0001", "-Infinity"} {
		if _, err := mustParse(t, s).Sqrt(); err == nil {
			t.Errorf("Sqrt(%s) succeeded", s)
		} else {
			wantCode(t, err, errs.CodeInvalidArgument)
		}
	}
}

func TestSqrtSpecials(t *testing.T) {
	if got, err := mustParse(t, "NaN").Sqrt(); err != nil || !got.IsNaN() {
		t.Errorf("Sqrt(NaN) = %s, %v", got, err)
	}
	if got, err := mustParse(t, "Infinity").Sqrt(); err != nil || !got.IsInf(1) {
		t.Errorf("Sqrt(Infinity) = %s, %v", got, err)
	}
}

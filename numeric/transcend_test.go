package numeric_test

import (
	"testing"

	"github.com/coachpo/pgnumeric/errs"
	"github.com/coachpo/pgnumeric/numeric"
)

func TestExp(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"0", "1.0000000000000000"},
		{"1", "2.7182818284590452"},
		{"-1", "0.3678794411714423"},
		{"2.5", "12.182493960703473"},
		{"10", "22026.465794806717"},
		{"-10.5", "0.00002753644934974716"},
		{"0.00001", "1.0000100000500002"},
	}
	for _, tc := range cases {
		got, err := mustParse(t, tc.in).Exp()
		if err != nil {
			t.Errorf("Exp(%s): %v", tc.in, err)
			continue
		}
		if got.String() != tc.want {
			t.Errorf("Exp(%s) = %s, want %s", tc.in, got, tc.want)
		}
	}
}

func TestExpLargeArgument(t *testing.T) {
	got, err := mustParse(t, "100").Exp()
	if err != nil {
		t.Fatalf("Exp(100): %v", err)
	}
	wantString(t, got, "26881171418161354484126255515800135873611119")

	if _, err := mustParse(t, "6000").Exp(); err == nil {
		t.Error("Exp(6000) succeeded, want overflow")
	} else {
		wantCode(t, err, errs.CodeOverflow)
	}
}

func TestExpSpecials(t *testing.T) {
	if got, err := mustParse(t, "NaN").Exp(); err != nil || !got.IsNaN() {
		t.Errorf("Exp(NaN) = %s, %v", got, err)
	}
	if got, err := mustParse(t, "Infinity").Exp(); err != nil || !got.IsInf(1) {
		t.Errorf("Exp(Infinity) = %s, %v", got, err)
	}
	if got, err := mustParse(t, "-Infinity").Exp(); err != nil || !got.IsZero() {
		t.Errorf("Exp(-Infinity) = %s, %v", got, err)
	}
}

func TestLn(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"2", "0.6931471805599453"},
		{"10", "2.3025850929940457"},
		{"0.5", "-0.6931471805599453"},
		{"1", "0.0000000000000000"},
		{"2.718281828459045", "0.9999999999999999"},
		{"1000000", "13.815510557964274"},
		{"0.0001", "-9.2103403719761827"},
	}
	for _, tc := range cases {
		got, err := mustParse(t, tc.in).Ln()
		if err != nil {
			t.Errorf("Ln(%s): %v", tc.in, err)
			continue
		}
		if got.String() != tc.want {
			t.Errorf("Ln(%s) = %s, want %s", tc.in, got, tc.want)
		}
	}
}

func TestLnRejectsNonPositive(t *testing.T) {
	if _, err := mustParse(t, "0").Ln(); err == nil {
		t.Error("Ln(0) succeeded")
	} else {
		wantCode(t, err, errs.CodeInvalidArgument)
	}
	for _, s := range []string{"-1", "-0.5", "-Infinity"} {
		if _, err := mustParse(t, s).Ln(); err == nil {
			t.Errorf("Ln(%s) succeeded", s)
		} else {
			wantCode(t, err, errs.CodeInvalidArgument)
		}
	}
}

func TestLnSpecials(t *testing.T) {
	if got, err := mustParse(t, "NaN").Ln(); err != nil || !got.IsNaN() {
		t.Errorf("Ln(NaN) = %s, %v", got, err)
	}
	if got, err := mustParse(t, "Infinity").Ln(); err != nil || !got.IsInf(1) {
		t.Errorf("Ln(Infinity) = %s, %v", got, err)
	}
}

func TestLog(t *testing.T) {
	cases := []struct {
		base, num, want string
	}{
		{"10", "100", "2.0000000000000000"},
		{"10", "2", "0.3010299956639812"},
		{"2", "8", "3.0000000000000000"},
		{"2", "10", "3.3219280948873623"},
		{"0.5", "8", "-3.0000000000000000"},
		{"10", "0.001", "-3.0000000000000000"},
	}
	for _, tc := range cases {
		got, err := numeric.Log(mustParse(t, tc.base), mustParse(t, tc.num))
		if err != nil {
			t.Errorf("Log(%s, %s): %v", tc.base, tc.num, err)
			continue
		}
		if got.String() != tc.want {
			t.Errorf("Log(%s, %s) = %s, want %s", tc.base, tc.num, got, tc.want)
		}
	}
}

func TestLogEdgeCases(t *testing.T) {
	one := mustParse(t, "1")
	ten := mustParse(t, "10")

	// log base 1 divides by ln(1) = 0.
	if _, err := numeric.Log(one, ten); err == nil {
		t.Error("Log(1, 10) succeeded")
	} else {
		wantCode(t, err, errs.CodeDivisionByZero)
	}

	for _, bad := range []string{"0", "-2"} {
		if _, err := numeric.Log(ten, mustParse(t, bad)); err == nil {
			t.Errorf("Log(10, %s) succeeded", bad)
		} else {
			wantCode(t, err, errs.CodeInvalidArgument)
		}
		if _, err := numeric.Log(mustParse(t, bad), ten); err == nil {
			t.Errorf("Log(%s, 10) succeeded", bad)
		} else {
			wantCode(t, err, errs.CodeInvalidArgument)
		}
	}
}

func TestLogSpecials(t *testing.T) {
	inf := mustParse(t, "Infinity")
	ten := mustParse(t, "10")

	if got, err := numeric.Log(inf, inf); err != nil || !got.IsNaN() {
		t.Errorf("Log(Inf, Inf) = %s, %v", got, err)
	}
	if got, err := numeric.Log(inf, ten); err != nil || !got.IsZero() {
		t.Errorf("Log(Inf, 10) = %s, %v", got, err)
	}
	if got, err := numeric.Log(ten, inf); err != nil || !got.IsInf(1) {
		t.Errorf("Log(10, Inf) = %s, %v", got, err)
	}
	if got, err := numeric.Log(mustParse(t, "NaN"), ten); err != nil || !got.IsNaN() {
		t.Errorf("Log(NaN, 10) = %s, %v", got, err)
	}
}

func TestLog10(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"100", "2.0000000000000000"},
		{"2", "0.3010299956639812"},
		{"10000000000", "10.000000000000000"},
		{"0.00001", "-5.000000000000000"},
	}
	for _, tc := range cases {
		got, err := mustParse(t, tc.in).Log10()
		if err != nil {
			t.Errorf("Log10(%s): %v", tc.in, err)
			continue
		}
		if got.String() != tc.want {
			t.Errorf("Log10(%s) = %s, want %s", tc.in, got, tc.want)
		}
	}

	if _, err := mustParse(t, "-10").Log10(); err == nil {
		t.Error("Log10(-10) succeeded")
	} else {
		wantCode(t, err, errs.CodeInvalidArgument)
	}
}

package numeric_test

import (
	"testing"

	"github.com/coachpo/pgnumeric/errs"
	"github.com/coachpo/pgnumeric/numeric"
)

func mustParse(t *testing.T, s string) numeric.Numeric {
	t.Helper()
	n, err := numeric.Parse(s)
	if err != nil {
		t.Fatalf("Parse(%q): %v", s, err)
	}
	return n
}

func wantCode(t *testing.T, err error, code errs.Code) {
	t.Helper()
	if err == nil {
		t.Fatal("expected an error, got nil")
	}
	if got := errs.CodeOf(err); got != code {
		t.Fatalf("error code = %v, want %v (err: %v)", got, code, err)
	}
}

func wantString(t *testing.T, n numeric.Numeric, want string) {
	t.Helper()
	if got := n.String(); got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
}

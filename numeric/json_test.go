package numeric_test

import (
	"testing"

	"github.com/goccy/go-json"

	"github.com/coachpo/pgnumeric/numeric"
)

func TestMarshalJSON(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"1.50", "1.50"},
		{"-0.001", "-0.001"},
		{"120000", "120000"},
		{"NaN", `"NaN"`},
		{"Infinity", `"Infinity"`},
		{"-Infinity", `"-Infinity"`},
	}
	for _, tc := range cases {
		b, err := json.Marshal(mustParse(t, tc.in))
		if err != nil {
			t.Errorf("Marshal(%s): %v", tc.in, err)
			continue
		}
		if string(b) != tc.want {
			t.Errorf("Marshal(%s) = %s, want %s", tc.in, b, tc.want)
		}
	}
}

func TestUnmarshalJSON(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"1.50", "1.50"},
		{"-12345.678", "-12345.678"},
		{"1e3", "1000"},
		{`"2.75"`, "2.75"},
		{`"NaN"`, "NaN"},
		{`"-Infinity"`, "-Infinity"},
	}
	for _, tc := range cases {
		var n numeric.Numeric
		if err := json.Unmarshal([]byte(tc.in), &n); err != nil {
			t.Errorf("Unmarshal(%s): %v", tc.in, err)
			continue
		}
		wantString(t, n, tc.want)
	}
}

func TestUnmarshalJSONNullKeepsValue(t *testing.T) {
	n := mustParse(t, "42")
	if err := json.Unmarshal([]byte("null"), &n); err != nil {
		t.Fatal(err)
	}
	wantString(t, n, "42")
}

func TestUnmarshalJSONRejectsGarbage(t *testing.T) {
	var n numeric.Numeric
	if err := json.Unmarshal([]byte(`"pretzel"`), &n); err == nil {
		t.Error("Unmarshal(pretzel) succeeded")
	}
}

func TestJSONStructRoundTrip(t *testing.T) {
	type row struct {
		Amount  numeric.Numeric  `json:"amount"`
		Balance *numeric.Numeric `json:"balance,omitempty"`
	}
	in := row{Amount: mustParse(t, "99.95")}
	b, err := json.Marshal(in)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != `{"amount":99.95}` {
		t.Errorf("Marshal = %s", b)
	}

	var out row
	if err := json.Unmarshal([]byte(`{"amount":"3.14","balance":-7}`), &out); err != nil {
		t.Fatal(err)
	}
	wantString(t, out.Amount, "3.14")
	if out.Balance == nil {
		t.Fatal("balance not decoded")
	}
	wantString(t, *out.Balance, "-7")
}

func TestTextMarshaling(t *testing.T) {
	n := mustParse(t, "-0.50")
	b, err := n.MarshalText()
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "-0.50" {
		t.Errorf("MarshalText = %s", b)
	}
	var back numeric.Numeric
	if err := back.UnmarshalText([]byte(" 12.5 ")); err != nil {
		t.Fatal(err)
	}
	wantString(t, back, "12.5")
}

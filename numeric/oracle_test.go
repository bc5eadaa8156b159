package numeric_test

import (
	"math/big"
	"math/rand"
	"strconv"
	"strings"
	"testing"

	"github.com/coachpo/pgnumeric/internal/ratio"
)

// randLiteral produces a decimal literal with up to 13 integer digits and
// exactly scale fraction digits.
func randLiteral(rng *rand.Rand, scale int) string {
	units := rng.Int63n(10_000_000_000_000)
	s := strconv.FormatInt(units, 10)
	if scale > 0 {
		if len(s) <= scale {
			s = strings.Repeat("0", scale-len(s)+1) + s
		}
		dot := len(s) - scale
		s = s[:dot] + "." + s[dot:]
	}
	if rng.Intn(2) == 0 {
		s = "-" + s
	}
	return s
}

// The big.Rat oracle shares no code with the engine's digit arrays, so it
// catches carry and alignment bugs a same-family decimal cross-check could
// reproduce.
func TestArithmeticAgainstRationalOracle(t *testing.T) {
	rng := rand.New(rand.NewSource(421))
	for i := 0; i < 500; i++ {
		s1, s2 := rng.Intn(7), rng.Intn(7)
		lit1, lit2 := randLiteral(rng, s1), randLiteral(rng, s2)
		a, b := mustParse(t, lit1), mustParse(t, lit2)
		ra, ok := ratio.Parse(lit1)
		if !ok {
			t.Fatalf("oracle parse %q", lit1)
		}
		rb, ok := ratio.Parse(lit2)
		if !ok {
			t.Fatalf("oracle parse %q", lit2)
		}

		sum, err := a.Add(b)
		if err != nil {
			t.Fatalf("%s + %s: %v", lit1, lit2, err)
		}
		s := s1
		if s2 > s {
			s = s2
		}
		if want := ratio.FixedString(new(big.Rat).Add(ra, rb), s); sum.String() != want {
			t.Fatalf("%s + %s = %s, want %s", lit1, lit2, sum, want)
		}

		prod, err := a.Mul(b)
		if err != nil {
			t.Fatalf("%s * %s: %v", lit1, lit2, err)
		}
		if want := ratio.FixedString(new(big.Rat).Mul(ra, rb), s1+s2); prod.String() != want {
			t.Fatalf("%s * %s = %s, want %s", lit1, lit2, prod, want)
		}

		if !b.IsZero() {
			quo, err := a.DivScale(b, 12, false)
			if err != nil {
				t.Fatalf("%s / %s: %v", lit1, lit2, err)
			}
			if want := ratio.FixedString(new(big.Rat).Quo(ra, rb), 12); quo.String() != want {
				t.Fatalf("%s / %s = %s, want %s", lit1, lit2, quo, want)
			}
		}
	}
}

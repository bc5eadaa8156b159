package numeric

import (
	"math"
	"strings"

	"github.com/coachpo/pgnumeric/errs"
)

const opParse = "numeric.Parse"

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

// Parse converts a decimal string into a Numeric. The accepted grammar is an
// optional sign, decimal digits with at most one decimal point, and an
// optional e/E exponent, surrounded by optional whitespace. The special
// values NaN, Infinity and -Infinity are recognized case-insensitively, with
// inf accepted as an abbreviation.
func Parse(s string) (Numeric, error) {
	i, end := 0, len(s)
	for i < end && isSpace(s[i]) {
		i++
	}
	for end > i && isSpace(s[end-1]) {
		end--
	}
	if i == end {
		return Numeric{}, errs.InvalidSyntax(opParse, s)
	}

	switch rest := s[i:end]; {
	case strings.EqualFold(rest, "nan"):
		return numNaN, nil
	case strings.EqualFold(rest, "infinity"), strings.EqualFold(rest, "inf"),
		strings.EqualFold(rest, "+infinity"), strings.EqualFold(rest, "+inf"):
		return numPInf, nil
	case strings.EqualFold(rest, "-infinity"), strings.EqualFold(rest, "-inf"):
		return numNInf, nil
	}

	sign := signPos
	switch s[i] {
	case '+':
		i++
	case '-':
		sign = signNeg
		i++
	}

	haveDP := false
	if i < end && s[i] == '.' {
		haveDP = true
		i++
	}
	if i >= end || s[i] < '0' || s[i] > '9' {
		return Numeric{}, errs.InvalidSyntax(opParse, s)
	}

	// Collect decimal digits, padded on both sides so that regrouping into
	// base-10000 digits below can read four at a time without bounds checks.
	dec := make([]byte, decDigits, decDigits+(end-i)+decDigits)
	dweight := -1
	dscale := 0
scan:
	for i < end {
		switch c := s[i]; {
		case c >= '0' && c <= '9':
			dec = append(dec, c-'0')
			if haveDP {
				dscale++
			} else {
				dweight++
			}
			i++
		case c == '.':
			if haveDP {
				return Numeric{}, errs.InvalidSyntax(opParse, s)
			}
			haveDP = true
			i++
		default:
			break scan
		}
	}
	ddigits := len(dec) - decDigits
	for k := 0; k < decDigits-1; k++ {
		dec = append(dec, 0)
	}

	if i < end && (s[i] == 'e' || s[i] == 'E') {
		i++
		esign := 1
		if i < end && (s[i] == '+' || s[i] == '-') {
			if s[i] == '-' {
				esign = -1
			}
			i++
		}
		if i >= end || s[i] < '0' || s[i] > '9' {
			return Numeric{}, errs.InvalidSyntax(opParse, s)
		}
		ev := 0
		for i < end && s[i] >= '0' && s[i] <= '9' {
			ev = ev*10 + int(s[i]-'0')
			if ev >= math.MaxInt32/2 {
				return Numeric{}, errs.InvalidSyntax(opParse, s)
			}
			i++
		}
		ev *= esign
		// Shifting the decimal point cannot make dweight or dscale overflow
		// here; oversized results are caught by makeNumeric below.
		dweight += ev
		dscale -= ev
		if dscale < 0 {
			dscale = 0
		}
	}

	if i != end {
		return Numeric{}, errs.InvalidSyntax(opParse, s)
	}

	// Regroup the decimal digits into base-10000 digits. offset is the
	// number of decimal zeroes to insert before the first given digit so
	// that the first base-10000 digit is correctly aligned.
	var weight int
	if dweight >= 0 {
		weight = (dweight+1+decDigits-1)/decDigits - 1
	} else {
		weight = -((-dweight-1)/decDigits + 1)
	}
	offset := (weight+1)*decDigits - (dweight + 1)
	ndigits := (ddigits + offset + decDigits - 1) / decDigits

	digits := make([]int16, ndigits)
	k := decDigits - offset
	for d := 0; d < ndigits; d++ {
		digits[d] = int16(((int(dec[k])*10+int(dec[k+1]))*10+int(dec[k+2]))*10 + int(dec[k+3]))
		k += decDigits
	}

	v := variable{ndigits: ndigits, weight: weight, sign: sign, dscale: dscale, digits: digits}
	v.strip()
	return makeNumeric(&v, opParse)
}

// Package numeric implements arbitrary-precision decimal arithmetic with
// SQL NUMERIC semantics: exact base-10000 digit representation, display
// scales, NaN and signed infinities, and round-half-away-from-zero.
package numeric

// Numeric is an immutable arbitrary-precision decimal value. The zero value
// is the number 0. Values are safe for concurrent use.
type Numeric struct {
	sign   uint16
	weight int16
	dscale int16
	digits []int16
}

var (
	numZero = Numeric{}
	numOne  = Numeric{digits: []int16{1}}
	numNaN  = Numeric{sign: signNaN}
	numPInf = Numeric{sign: signPInf}
	numNInf = Numeric{sign: signNInf}
)

// Zero returns the number 0 with display scale 0.
func Zero() Numeric { return numZero }

// NaN returns the not-a-number value.
func NaN() Numeric { return numNaN }

// Inf returns positive infinity when sign >= 0, negative infinity otherwise.
func Inf(sign int) Numeric {
	if sign < 0 {
		return numNInf
	}
	return numPInf
}

func (n Numeric) isSpecial() bool {
	return n.sign == signNaN || n.sign == signPInf || n.sign == signNInf
}

// IsNaN reports whether n is the not-a-number value.
func (n Numeric) IsNaN() bool { return n.sign == signNaN }

// IsInf reports whether n is an infinity: positive infinity when sign > 0,
// negative infinity when sign < 0, either when sign == 0.
func (n Numeric) IsInf(sign int) bool {
	switch {
	case sign > 0:
		return n.sign == signPInf
	case sign < 0:
		return n.sign == signNInf
	default:
		return n.sign == signPInf || n.sign == signNInf
	}
}

// IsFinite reports whether n is neither NaN nor an infinity.
func (n Numeric) IsFinite() bool { return !n.isSpecial() }

// IsZero reports whether n is finite and equal to zero.
func (n Numeric) IsZero() bool {
	return !n.isSpecial() && len(n.digits) == 0
}

// Sign returns -1 for negative values, +1 for positive values and 0 for both
// zero and NaN. Infinities report their sign.
func (n Numeric) Sign() int {
	switch n.sign {
	case signNaN:
		return 0
	case signPInf:
		return 1
	case signNInf:
		return -1
	case signNeg:
		return -1
	default:
		if len(n.digits) == 0 {
			return 0
		}
		return 1
	}
}

// Weight returns the base-10000 exponent of the most significant digit.
func (n Numeric) Weight() int { return int(n.weight) }

// Scale returns the display scale: the number of decimal fraction digits
// shown when the value is formatted.
func (n Numeric) Scale() int { return int(n.dscale) }

// NDigits returns the number of stored base-10000 digits.
func (n Numeric) NDigits() int { return len(n.digits) }

// Digit returns the i-th base-10000 digit counting from the most significant,
// or 0 when i is out of range.
func (n Numeric) Digit(i int) int16 {
	if i < 0 || i >= len(n.digits) {
		return 0
	}
	return n.digits[i]
}

// alias exposes n as a variable sharing its digit storage. The result must be
// treated as read-only; engine functions never mutate their operands.
func (n Numeric) alias() variable {
	return variable{
		ndigits: len(n.digits),
		weight:  int(n.weight),
		sign:    n.sign,
		dscale:  int(n.dscale),
		digits:  n.digits,
	}
}

// writable exposes n as a variable with its own copy of the digit storage,
// suitable for in-place rounding or truncation.
func (n Numeric) writable() variable {
	v := n.alias()
	return v.clone()
}

// Neg returns -n. Negating zero or NaN returns the value unchanged.
func (n Numeric) Neg() Numeric {
	switch n.sign {
	case signNaN:
		return n
	case signPInf:
		return numNInf
	case signNInf:
		return numPInf
	}
	if len(n.digits) == 0 {
		return n
	}
	out := n
	if n.sign == signPos {
		out.sign = signNeg
	} else {
		out.sign = signPos
	}
	return out
}

// Abs returns the absolute value of n.
func (n Numeric) Abs() Numeric {
	switch n.sign {
	case signNInf:
		return numPInf
	case signNeg:
		out := n
		out.sign = signPos
		return out
	default:
		return n
	}
}

// Min returns the smaller of x and y under the sort ordering, where NaN
// counts as larger than every other value.
func Min(x, y Numeric) Numeric {
	if x.Cmp(y) <= 0 {
		return x
	}
	return y
}

// Max returns the larger of x and y under the sort ordering, where NaN
// counts as larger than every other value.
func Max(x, y Numeric) Numeric {
	if x.Cmp(y) >= 0 {
		return x
	}
	return y
}

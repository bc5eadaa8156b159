package numeric

import (
	"fmt"
	"math"
)

// string renders v in plain decimal notation with exactly v.dscale fraction
// digits.
func (v *variable) string() string {
	n := (v.weight + 1) * decDigits
	if n <= 0 {
		n = 1
	}
	buf := make([]byte, 0, n+v.dscale+decDigits+2)

	if v.sign == signNeg {
		buf = append(buf, '-')
	}

	var d int
	if v.weight < 0 {
		d = v.weight + 1
		buf = append(buf, '0')
	} else {
		for d = 0; d <= v.weight; d++ {
			dig := 0
			if d < v.ndigits {
				dig = int(v.digits[d])
			}
			// In the first digit, suppress extra leading decimal zeroes.
			putit := d > 0
			d1 := dig / 1000
			dig -= d1 * 1000
			putit = putit || d1 > 0
			if putit {
				buf = append(buf, byte('0'+d1))
			}
			d1 = dig / 100
			dig -= d1 * 100
			putit = putit || d1 > 0
			if putit {
				buf = append(buf, byte('0'+d1))
			}
			d1 = dig / 10
			dig -= d1 * 10
			putit = putit || d1 > 0
			if putit {
				buf = append(buf, byte('0'+d1))
			}
			buf = append(buf, byte('0'+dig))
		}
	}

	// Emit the fraction a whole base-10000 digit at a time, then cut the
	// excess back to dscale characters.
	if v.dscale > 0 {
		buf = append(buf, '.')
		frac := len(buf)
		for i := 0; i < v.dscale; i, d = i+decDigits, d+1 {
			dig := 0
			if d >= 0 && d < v.ndigits {
				dig = int(v.digits[d])
			}
			d1 := dig / 1000
			dig -= d1 * 1000
			buf = append(buf, byte('0'+d1))
			d1 = dig / 100
			dig -= d1 * 100
			buf = append(buf, byte('0'+d1))
			d1 = dig / 10
			dig -= d1 * 10
			buf = append(buf, byte('0'+d1))
			buf = append(buf, byte('0'+dig))
		}
		buf = buf[:frac+v.dscale]
	}

	return string(buf)
}

// String renders n in plain decimal notation with exactly Scale() fraction
// digits. Special values render as NaN, Infinity and -Infinity.
func (n Numeric) String() string {
	switch n.sign {
	case signNaN:
		return "NaN"
	case signPInf:
		return "Infinity"
	case signNInf:
		return "-Infinity"
	}
	v := n.alias()
	return v.string()
}

// SciString renders n in scientific notation with scale significand fraction
// digits, e.g. 1.2345e+03. Special values render as in String.
func (n Numeric) SciString(scale int) string {
	switch n.sign {
	case signNaN:
		return "NaN"
	case signPInf:
		return "Infinity"
	case signNInf:
		return "-Infinity"
	}
	if scale < MinDisplayScale {
		scale = MinDisplayScale
	}
	if scale > MaxDisplayScale {
		scale = MaxDisplayScale
	}

	// Choose the exponent so the significand lands in [1, 10), compensating
	// for leading decimal zeroes in the first base-10000 digit. Zero keeps
	// exponent 0 for consistency with other databases.
	exponent := 0
	if len(n.digits) > 0 {
		exponent = (int(n.weight) + 1) * decDigits
		exponent -= decDigits - int(math.Log10(float64(n.digits[0])))
	}

	denom := powerTenInt(exponent)
	v := n.alias()
	sig, _ := divVar(&v, &denom, scale, true) // divisor is a power of ten, never zero
	return fmt.Sprintf("%se%+03d", sig.string(), exponent)
}

// powerTenInt returns 10^exponent as a variable with a single base-10000
// digit and an exact display scale.
func powerTenInt(exponent int) variable {
	res := varOne.clone()

	if exponent < 0 {
		res.dscale = -exponent
	} else {
		res.dscale = 0
	}

	if exponent >= 0 {
		res.weight = exponent / decDigits
	} else {
		res.weight = (exponent+1)/decDigits - 1
	}

	for e := exponent - decDigits*res.weight; e > 0; e-- {
		res.digits[0] *= 10
	}
	return res
}

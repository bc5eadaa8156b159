package numeric

import "github.com/coachpo/pgnumeric/errs"

const (
	nbase     = 10000
	decDigits = 4
	halfNBase = 5000

	mulGuardDigits = 2
	divGuardDigits = 4

	// MaxPrecision is the largest precision a declared numeric type may carry.
	MaxPrecision = 1000
	// MaxDisplayScale is the largest display scale a value may carry.
	MaxDisplayScale = 1000
	// MinDisplayScale floors computed display scales.
	MinDisplayScale = 0
	// MaxResultScale caps the scale of computed results.
	MaxResultScale = MaxPrecision * 2
	// MinSigDigits is the minimum significant digit count guaranteed by
	// operations that choose their own result scale, such as division.
	MinSigDigits = 16

	maxStoredWeight = 0x7FFF
	maxStoredDscale = 0x3FFF
)

// Sign codes shared by the in-memory, packed, and wire representations.
const (
	signPos  uint16 = 0x0000
	signNeg  uint16 = 0x4000
	signNaN  uint16 = 0xC000
	signPInf uint16 = 0xD000
	signNInf uint16 = 0xF000
)

var roundPowers = [4]int{0, 1000, 100, 10}

// variable is the mutable working form of a numeric value. digits holds
// base-10000 digits, most significant first; weight is the power of 10000 of
// digits[0]; dscale counts displayed decimal fraction digits. The value is
// sum(digits[i] * 10000^(weight-i)), negated when sign is signNeg.
type variable struct {
	ndigits int
	weight  int
	sign    uint16
	dscale  int
	digits  []int16
}

func (v *variable) setZero(dscale int) {
	v.ndigits = 0
	v.weight = 0
	v.sign = signPos
	v.dscale = dscale
	v.digits = nil
}

// strip removes leading and trailing zero digits, normalising zero to a
// positive value of weight 0.
func (v *variable) strip() {
	d := v.digits
	n := v.ndigits
	i := 0
	for n > 0 && d[i] == 0 {
		i++
		v.weight--
		n--
	}
	for n > 0 && d[i+n-1] == 0 {
		n--
	}
	if n == 0 {
		v.sign = signPos
		v.weight = 0
	}
	v.digits = d[i : i+n]
	v.ndigits = n
}

// round rounds v half-away-from-zero to rscale decimal fraction digits and
// records rscale as the display scale. The receiver must own its digit slice.
func (v *variable) round(rscale int) {
	v.dscale = rscale

	// decimal digits wanted before the rounding point
	di := (v.weight+1)*decDigits + rscale
	if di < 0 {
		v.ndigits = 0
		v.weight = 0
		v.sign = signPos
		v.digits = nil
		return
	}

	ndigits := (di + decDigits - 1) / decDigits
	di %= decDigits

	if ndigits < v.ndigits || (ndigits == v.ndigits && di > 0) {
		digits := v.digits
		nd := ndigits
		k := ndigits
		carry := 0
		if di == 0 {
			if int(digits[k]) >= halfNBase {
				carry = 1
			}
		} else {
			// round within the boundary digit
			pow10 := roundPowers[di]
			k--
			extra := int(digits[k]) % pow10
			digits[k] -= int16(extra)
			if extra >= pow10/2 {
				p := pow10 + int(digits[k])
				if p >= nbase {
					p -= nbase
					carry = 1
				}
				digits[k] = int16(p)
			}
		}
		digits = digits[:nd]
		for carry > 0 {
			k--
			if k < 0 {
				// carry past the first digit grows the number
				grown := make([]int16, nd+1)
				grown[0] = int16(carry)
				copy(grown[1:], digits)
				digits = grown
				nd++
				v.weight++
				break
			}
			c := carry + int(digits[k])
			if c >= nbase {
				digits[k] = int16(c - nbase)
				carry = 1
			} else {
				digits[k] = int16(c)
				carry = 0
			}
		}
		v.digits = digits
		v.ndigits = nd
	}
}

// trunc truncates v toward zero to rscale decimal fraction digits and records
// rscale as the display scale. The receiver must own its digit slice.
func (v *variable) trunc(rscale int) {
	v.dscale = rscale

	di := (v.weight+1)*decDigits + rscale
	if di <= 0 {
		v.ndigits = 0
		v.weight = 0
		v.sign = signPos
		v.digits = nil
		return
	}

	ndigits := (di + decDigits - 1) / decDigits
	if ndigits <= v.ndigits {
		v.digits = v.digits[:ndigits]
		v.ndigits = ndigits
		di %= decDigits
		if di > 0 {
			pow10 := roundPowers[di]
			extra := int(v.digits[ndigits-1]) % pow10
			v.digits[ndigits-1] -= int16(extra)
		}
	}
}

func (v *variable) clone() variable {
	out := *v
	out.digits = make([]int16, len(v.digits))
	copy(out.digits, v.digits)
	return out
}

// Working constants. These are read-only: engine functions never mutate
// their operands.
var (
	varZero          = variable{}
	varOne           = variable{ndigits: 1, weight: 0, sign: signPos, dscale: 0, digits: []int16{1}}
	varTwo           = variable{ndigits: 1, weight: 0, sign: signPos, dscale: 0, digits: []int16{2}}
	varTen           = variable{ndigits: 1, weight: 0, sign: signPos, dscale: 0, digits: []int16{10}}
	varZeroPointNine = variable{ndigits: 1, weight: -1, sign: signPos, dscale: 1, digits: []int16{9000}}
	varOnePointOne   = variable{ndigits: 2, weight: 0, sign: signPos, dscale: 1, digits: []int16{1, 1000}}
)

// makeNumeric freezes v into an immutable Numeric, trimming zero digits at
// both ends and validating the storage bounds of weight and dscale.
func makeNumeric(v *variable, op string) (Numeric, error) {
	digits := v.digits
	weight := v.weight
	sign := v.sign
	n := v.ndigits

	i := 0
	for n > 0 && digits[i] == 0 {
		i++
		weight--
		n--
	}
	for n > 0 && digits[i+n-1] == 0 {
		n--
	}
	if n == 0 {
		weight = 0
		sign = signPos
	}

	if weight > maxStoredWeight || weight < -(maxStoredWeight+1) ||
		v.dscale < 0 || v.dscale > maxStoredDscale {
		return Numeric{}, errs.Overflow(op, "value overflows numeric format")
	}

	out := make([]int16, n)
	copy(out, digits[i:i+n])
	return Numeric{sign: sign, weight: int16(weight), dscale: int16(v.dscale), digits: out}, nil
}

package numeric

import (
	"math"

	"github.com/coachpo/pgnumeric/errs"
)

const opSqrt = "numeric.Sqrt"

// intFromDigits interprets d as a non-negative integer in base 10000. The
// returned variable aliases d and must be treated as read-only.
func intFromDigits(d []int16) variable {
	v := variable{ndigits: len(d), weight: len(d) - 1, sign: signPos, dscale: 0, digits: d}
	v.strip()
	return v
}

// shiftLeft returns v * nbase^blen. Integers carry their trailing zeroes in
// the weight, so this is a weight adjustment, not a digit copy.
func shiftLeft(v *variable, blen int) variable {
	out := *v
	if out.ndigits == 0 {
		return out
	}
	out.weight += blen
	return out
}

// sqrtVar computes the square root of arg to rscale fraction digits using
// the Karatsuba square root algorithm. rscale may be negative, implying
// rounding before the decimal point.
func sqrtVar(arg *variable, rscale int) (variable, error) {
	var res variable

	stat := cmpVar(arg, &varZero)
	if stat == 0 {
		res.setZero(rscale)
		return res, nil
	}
	if stat < 0 {
		return res, errs.InvalidArgument(opSqrt, "cannot take square root of a negative number")
	}

	// result weight is floor(arg.weight / 2)
	var resWeight int
	if arg.weight < 0 {
		resWeight = -((-arg.weight-1)/2 + 1)
	} else {
		resWeight = arg.weight / 2
	}

	// Number of base-10000 digits to compute. To ensure correct rounding,
	// compute at least one extra decimal digit; rscale is allowed to be
	// negative, but always produce at least one digit.
	var resNdigits int
	if rscale+1 >= 0 {
		resNdigits = resWeight + 1 + (rscale+decDigits)/decDigits
	} else {
		resNdigits = resWeight + 1 - (-rscale-1)/decDigits
	}
	resNdigits = max(resNdigits, 1)

	// Source digits logically required for that precision: every digit
	// before the decimal point, plus two per result digit after it (or
	// minus two per result digit rounded away before it).
	srcNdigits := arg.weight + 1 + (resNdigits-resWeight-1)*2
	srcNdigits = max(srcNdigits, 1)

	// From here on the input is treated as the integer formed by its first
	// srcNdigits digits, zero-padded as needed, and we compute the integer
	// square root and remainder:
	//
	//	SqrtRem(n = a3*b^3 + a2*b^2 + a1*b + a0):
	//		Let (s, r) = SqrtRem(a3*b + a2)
	//		Let (q, u) = DivRem(r*b + a1, 2*s)
	//		Let s = s*b + q
	//		Let r = u*b + a0 - q^2
	//		While r < 0: Let r = r + s, s = s - 1, r = r + s
	//		Return (s, r)
	//
	// computed bottom-up, with 64-bit arithmetic once at most four digits
	// remain.
	src := make([]int16, srcNdigits)
	copy(src, arg.digits[:min(arg.ndigits, srcNdigits)])

	// Split schedule: each level keeps the leading sizes[i+1] digits of its
	// parent and takes back two blocks of (sizes[i]-sizes[i+1])/2 digits.
	sizes := []int{srcNdigits}
	for n := srcNdigits; n > 4; {
		blen := n / 4
		n -= 2 * blen
		sizes = append(sizes, n)
	}

	// base case
	var a int64
	for i := 0; i < sizes[len(sizes)-1]; i++ {
		a = a*nbase + int64(src[i])
	}
	s64 := int64(math.Sqrt(float64(a)))
	// floating point may be off by one in either direction
	for s64*s64 > a {
		s64--
	}
	for (s64+1)*(s64+1) <= a {
		s64++
	}
	s := varFromInt64(s64)
	r := varFromInt64(a - s64*s64)

	for step := len(sizes) - 2; step >= 0; step-- {
		blen := (sizes[step] - sizes[step+1]) / 2
		off := sizes[step+1]

		a1 := intFromDigits(src[off : off+blen])
		a0 := intFromDigits(src[off+blen : off+2*blen])

		// (q, u) = DivRem(r*b + a1, 2*s)
		num := shiftLeft(&r, blen)
		num = addVar(&num, &a1)
		den := mulVar(&s, &varTwo, 0)
		q, err := divVar(&num, &den, 0, false)
		if err != nil {
			return res, err
		}
		t := mulVar(&den, &q, 0)
		u := subVar(&num, &t)

		// s = s*b + q
		sShift := shiftLeft(&s, blen)
		s = addVar(&sShift, &q)

		// r = u*b + a0 - q^2
		r = shiftLeft(&u, blen)
		r = addVar(&r, &a0)
		q2 := mulVar(&q, &q, 0)
		r = subVar(&r, &q2)

		// The quotient estimate can be high; walk the root down until the
		// remainder turns non-negative.
		for cmpVar(&r, &varZero) < 0 {
			r = addVar(&r, &s)
			s = subVar(&s, &varOne)
			r = addVar(&r, &s)
		}
	}

	// Reinterpret the integer root with the decimal point at resWeight and
	// round to the requested precision.
	s.weight = resWeight
	s.sign = signPos
	s.round(rscale)
	s.strip()
	return s, nil
}

// Sqrt returns the square root of n at a scale carrying at least
// MinSigDigits significant digits and no less than n's display scale.
func (n Numeric) Sqrt() (Numeric, error) {
	switch n.sign {
	case signNaN:
		return numNaN, nil
	case signPInf:
		return numPInf, nil
	case signNInf:
		return Numeric{}, errs.InvalidArgument(opSqrt, "cannot take square root of a negative number")
	}

	v := n.alias()

	// The result has at least sweight digits before the decimal point.
	sweight := v.weight*decDigits/2 + 1

	rscale := MinSigDigits - sweight
	rscale = max(rscale, v.dscale)
	rscale = max(rscale, MinDisplayScale)
	rscale = min(rscale, MaxDisplayScale)

	res, err := sqrtVar(&v, rscale)
	if err != nil {
		return Numeric{}, err
	}
	return makeNumeric(&res, opSqrt)
}

// SqrtToScale returns the square root of n rounded to scale digits after
// the decimal point. scale may be negative, rounding left of the point.
func (n Numeric) SqrtToScale(scale int) (Numeric, error) {
	switch n.sign {
	case signNaN:
		return numNaN, nil
	case signPInf:
		return numPInf, nil
	case signNInf:
		return Numeric{}, errs.InvalidArgument(opSqrt, "cannot take square root of a negative number")
	}

	v := n.alias()
	res, err := sqrtVar(&v, scale)
	if err != nil {
		return Numeric{}, err
	}
	return makeNumeric(&res, opSqrt)
}

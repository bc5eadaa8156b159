package numeric

import (
	"math"

	"github.com/coachpo/pgnumeric/errs"
)

const opPower = "numeric.Power"

// powerVarInt raises base to an integer power using binary exponentiation,
// varying the working scale to carry a fixed number of significant digits.
// expDscale is the display scale of the original exponent value.
func powerVarInt(base *variable, exp int64, expDscale int) (variable, error) {
	var res variable

	// Estimate the decimal weight of the result in floating point, choosing
	// f and p such that base ~= f * 10^p, so that
	// log10(result) ~= exp * (log10(f) + p). Crude overflow and underflow
	// exits happen here, before any expensive work.
	var f float64
	if base.ndigits != 0 {
		f = float64(base.digits[0])
		p := base.weight * decDigits

		for i := 1; i < base.ndigits && i*decDigits < 16; i++ {
			f = f*nbase + float64(base.digits[i])
			p -= decDigits
		}

		f = float64(exp) * (math.Log10(f) + float64(p))

		if f > 3*maxStoredWeight*decDigits {
			return res, errs.Overflow(opPower, "value overflows numeric format")
		}
		if f+1 < -MaxDisplayScale {
			res.setZero(MaxDisplayScale)
			return res, nil
		}
	}

	rscale := MinSigDigits - int(f)
	rscale = max(rscale, base.dscale)
	rscale = max(rscale, expDscale)
	rscale = max(rscale, MinDisplayScale)
	rscale = min(rscale, MaxDisplayScale)

	// common special cases and corner cases
	switch exp {
	case 0:
		// 0^0 is taken to be 1, as SQL:2003 requires
		res = varOne.clone()
		res.dscale = rscale
		return res, nil
	case 1:
		res = base.clone()
		res.round(rscale) // rounds, or adds trailing zeroes, to rscale
		return res, nil
	case -1:
		return divVar(&varOne, base, rscale, true)
	case 2:
		return mulVar(base, base, rscale), nil
	}

	if base.ndigits == 0 {
		if exp < 0 {
			return res, errs.DivisionByZero(opPower)
		}
		res.setZero(rscale)
		return res, nil
	}

	// The multiplications can introduce an error of up to about
	// log10(|exp|) digits, so work with that many extra (plus a margin).
	sigDigits := 1 + rscale + int(f)
	sigDigits = max(sigDigits, 0)
	sigDigits += int(math.Log(math.Abs(float64(exp)))) + 8

	neg := exp < 0
	mask := uint64(abs64(exp))

	baseProd := base.clone()
	if mask&1 == 1 {
		res = base.clone()
	} else {
		res = varOne.clone()
	}

	for mask >>= 1; mask > 0; mask >>= 1 {
		localRscale := sigDigits - 2*baseProd.weight*decDigits
		localRscale = min(localRscale, 2*baseProd.dscale)
		localRscale = max(localRscale, MinDisplayScale)

		baseProd = mulVar(&baseProd, &baseProd, localRscale)

		if mask&1 == 1 {
			localRscale = sigDigits - (baseProd.weight+res.weight)*decDigits
			localRscale = min(localRscale, baseProd.dscale+res.dscale)
			localRscale = max(localRscale, MinDisplayScale)

			res = mulVar(&baseProd, &res, localRscale)
		}

		// With |base| > 1 the weight doubles each iteration; once it
		// exceeds int16 storage the final result is certain to overflow
		// (or underflow when exp < 0), so stop early.
		if baseProd.weight > maxStoredWeight || res.weight > maxStoredWeight {
			if !neg {
				return variable{}, errs.Overflow(opPower, "value overflows numeric format")
			}
			res.setZero(0)
			neg = false
			break
		}
	}

	// compensate for the exponent sign and round to the requested scale
	if neg {
		return divVarFast(&varOne, &res, rscale, true)
	}
	res.round(rscale)
	return res, nil
}

// powerVar raises base to the power exp as e^(exp * ln(base)), delegating
// integer exponents that fit in int32 to powerVarInt.
func powerVar(base, exp *variable) (variable, error) {
	var res variable

	if exp.ndigits == 0 || exp.ndigits <= exp.weight+1 {
		// the exponent is an exact integer, but does it fit in int32?
		if expval, ok := int64FromVar(exp); ok &&
			expval >= math.MinInt32 && expval <= math.MaxInt32 {
			return powerVarInt(base, expval, exp.dscale)
		}
	}

	// Avoid ln(0). The exponent cannot be 0 here (powerVarInt handles it),
	// and callers have already rejected negative exponents on a zero base,
	// so the result is zero.
	if cmpVar(base, &varZero) == 0 {
		res.setZero(MinSigDigits)
		return res, nil
	}

	resSign := signPos
	b := base
	var absBase variable
	if base.sign == signNeg {
		// The exponent must be integral; the result sign then follows its
		// parity.
		if exp.ndigits > 0 && exp.ndigits > exp.weight+1 {
			return res, errs.InvalidArgument(opPower,
				"a negative number raised to a non-integer power yields a complex result")
		}
		if exp.ndigits > 0 && exp.ndigits == exp.weight+1 && exp.digits[exp.ndigits-1]&1 == 1 {
			resSign = signNeg
		}

		absBase = *base
		absBase.sign = signPos
		b = &absBase
	}

	// Decide the ln() scale by a low-precision first pass at around 8
	// significant digits: result = e^(exp * ln(base)), so its decimal
	// weight is about exp * ln(base) * log10(e). lnDweight may be as small
	// as -maxStoredDscale, so clamp the working scale.
	lnDweight := estimateLnDweight(b)

	localRscale := 8 - lnDweight
	localRscale = max(localRscale, MinDisplayScale)
	localRscale = min(localRscale, MaxDisplayScale)

	lnBase, err := lnVar(b, localRscale)
	if err != nil {
		return res, err
	}
	lnNum := mulVar(&lnBase, exp, localRscale)

	val := lnNum.float64Lossy()

	// Crude overflow/underflow test with a fuzz factor, so that expVar
	// makes the exact call for anything near the boundary.
	if math.Abs(val) > MaxResultScale*3.01 {
		if val > 0 {
			return res, errs.Overflow(opPower, "value overflows numeric format")
		}
		res.setZero(MaxDisplayScale)
		return res, nil
	}

	val *= 0.434294481903252 // approximate decimal weight of the result

	rscale := MinSigDigits - int(val)
	rscale = max(rscale, base.dscale)
	rscale = max(rscale, exp.dscale)
	rscale = max(rscale, MinDisplayScale)
	rscale = min(rscale, MaxDisplayScale)

	sigDigits := max(rscale+int(val), 0)

	// the real calculation, carrying 8 digits beyond what the result needs
	localRscale = sigDigits - lnDweight + 8
	localRscale = max(localRscale, MinDisplayScale)

	lnBase, err = lnVar(b, localRscale)
	if err != nil {
		return res, err
	}
	lnNum = mulVar(&lnBase, exp, localRscale)

	res, err = expVar(&lnNum, rscale)
	if err != nil {
		return res, err
	}

	if resSign == signNeg && res.ndigits > 0 {
		res.sign = signNeg
	}
	return res, nil
}

// Power returns n raised to the power y, following the POSIX pow rules for
// NaN, infinities, zero and one.
func (n Numeric) Power(y Numeric) (Numeric, error) {
	if n.isSpecial() || y.isSpecial() {
		// POSIX: NaN^0 = 1 and 1^NaN = 1; every other NaN case is NaN.
		if n.sign == signNaN {
			if !y.isSpecial() && y.IsZero() {
				return numOne, nil
			}
			return numNaN, nil
		}
		if y.sign == signNaN {
			if !n.isSpecial() && n.Cmp(numOne) == 0 {
				return numOne, nil
			}
			return numNaN, nil
		}

		// at least one input is infinite, but the error rules still apply
		sign1, sign2 := n.Sign(), y.Sign()
		if sign1 == 0 && sign2 < 0 {
			return Numeric{}, errs.InvalidArgument(opPower, "zero raised to a negative power is undefined")
		}
		if sign1 < 0 && !y.isIntegral() {
			return Numeric{}, errs.InvalidArgument(opPower,
				"a negative number raised to a non-integer power yields a complex result")
		}

		// x = +1 returns 1 for any y
		if sign1 > 0 && !n.isSpecial() && n.Cmp(numOne) == 0 {
			return numOne, nil
		}
		// y = 0 returns 1 for any x
		if sign2 == 0 && !y.isSpecial() {
			return numOne, nil
		}
		// x = 0 with y > 0 returns zero (negative zero is not supported)
		if sign1 == 0 && sign2 > 0 {
			return numZero, nil
		}

		if y.IsInf(0) {
			var absXGtOne bool
			if n.isSpecial() {
				absXGtOne = true // x is ±Inf
			} else {
				if n.Cmp(numOne.Neg()) == 0 {
					return numOne, nil // (-1)^±Inf = 1
				}
				absXGtOne = n.Abs().Cmp(numOne) > 0
			}
			// |x| > 1 with y = +Inf, or |x| < 1 with y = -Inf, diverges
			if absXGtOne == (sign2 > 0) {
				return numPInf, nil
			}
			return numZero, nil
		}

		if n.sign == signPInf {
			if sign2 > 0 {
				return numPInf, nil
			}
			return numZero, nil
		}

		// n is -Inf; negative exponents collapse to zero, positive ones
		// diverge with the sign following the exponent's parity
		if sign2 < 0 {
			return numZero, nil
		}
		if len(y.digits) > 0 && len(y.digits) == int(y.weight)+1 &&
			y.digits[len(y.digits)-1]&1 == 1 {
			return numNInf, nil
		}
		return numPInf, nil
	}

	// The SQL spec requires a specific error for these, rather than a
	// division-by-zero from the computation.
	sign1, sign2 := n.Sign(), y.Sign()
	if sign1 == 0 && sign2 < 0 {
		return Numeric{}, errs.InvalidArgument(opPower, "zero raised to a negative power is undefined")
	}
	if sign1 < 0 && !y.isIntegral() {
		return Numeric{}, errs.InvalidArgument(opPower,
			"a negative number raised to a non-integer power yields a complex result")
	}

	vb, ve := n.alias(), y.alias()
	res, err := powerVar(&vb, &ve)
	if err != nil {
		return Numeric{}, err
	}
	return makeNumeric(&res, opPower)
}

// isIntegral reports whether n has no fraction digits. Infinities count as
// integral; NaN does not.
func (n Numeric) isIntegral() bool {
	if n.isSpecial() {
		return n.sign != signNaN
	}
	return len(n.digits) == 0 || len(n.digits) <= int(n.weight)+1
}

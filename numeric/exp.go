package numeric

import (
	"math"
	"strconv"

	"github.com/coachpo/pgnumeric/errs"
)

const (
	opExp   = "numeric.Exp"
	opLn    = "numeric.Ln"
	opLog   = "numeric.Log"
	opLog10 = "numeric.Log10"
)

// float64Lossy converts v to float64 for weight and scale estimation.
// Overflow clamps to ±Inf and underflow to zero; exactness does not matter
// to the callers.
func (v *variable) float64Lossy() float64 {
	f, _ := strconv.ParseFloat(v.string(), 64)
	return f
}

// expVar computes e^arg to rscale fraction digits.
func expVar(arg *variable, rscale int) (variable, error) {
	var res variable

	x := arg.clone()

	// Estimate the result's decimal weight in floating point so a working
	// precision can be chosen.
	val := x.float64Lossy()

	// Guard against overflow/underflow; powerVar depends on this limit.
	if math.Abs(val) >= MaxResultScale*3 {
		if val > 0 {
			return res, errs.Overflow(opExp, "value overflows numeric format")
		}
		res.setZero(rscale)
		return res, nil
	}

	// decimal weight of the result = log10(e^x) = x * log10(e)
	dweight := int(val * 0.434294481903252)

	// Reduce x to the range -0.01 <= x <= 0.01 by dividing by 2^ndiv2 to
	// speed up Taylor series convergence. The overflow guard above bounds
	// |val| < 6000, so ndiv2 <= 20.
	ndiv2 := 0
	if math.Abs(val) > 0.01 {
		ndiv2 = 1
		val /= 2
		for math.Abs(val) > 0.01 {
			ndiv2++
			val /= 2
		}

		localRscale := x.dscale + ndiv2
		var err error
		x, err = divVarInt(&x, int64(1)<<ndiv2, 0, localRscale, true)
		if err != nil {
			return res, err
		}
	}

	// The final result has dweight+rscale+1 significant digits, and raising
	// the series result to 2^ndiv2 afterwards costs about log10(2^ndiv2)
	// digits of precision, so carry that many extra (plus a margin).
	sigDigits := 1 + dweight + rscale + int(float64(ndiv2)*0.301029995663981)
	sigDigits = max(sigDigits, 0) + 8

	localRscale := sigDigits - 1

	// exp(x) = 1 + x + x^2/2! + x^3/3! + ...
	//
	// Run the series until the terms fall below the working scale.
	res = addVar(&varOne, &x)

	elem := mulVar(&x, &x, localRscale)
	ni := int64(2)
	elem, err := divVarInt(&elem, ni, 0, localRscale, true)
	if err != nil {
		return res, err
	}

	for elem.ndigits != 0 {
		res = addVar(&res, &elem)

		elem = mulVar(&elem, &x, localRscale)
		ni++
		elem, err = divVarInt(&elem, ni, 0, localRscale, true)
		if err != nil {
			return res, err
		}
	}

	// Undo the range reduction by repeated squaring. The weight of the
	// result doubles with each multiplication, so the working scale can
	// shrink as we proceed.
	for ; ndiv2 > 0; ndiv2-- {
		localRscale = sigDigits - res.weight*2*decDigits
		localRscale = max(localRscale, MinDisplayScale)
		res = mulVar(&res, &res, localRscale)
	}

	res.round(rscale)
	return res, nil
}

// lnVar computes ln(arg) to rscale fraction digits.
func lnVar(arg *variable, rscale int) (variable, error) {
	var res variable

	cmp := cmpVar(arg, &varZero)
	if cmp == 0 {
		return res, errs.InvalidArgument(opLn, "cannot take logarithm of zero")
	}
	if cmp < 0 {
		return res, errs.InvalidArgument(opLn, "cannot take logarithm of a negative number")
	}

	x := arg.clone()
	fact := varTwo.clone()

	// Reduce the input to the range 0.9 < x < 1.1 with repeated square
	// roots. Each sqrt roughly halves the weight of x, so the working scale
	// can track the shrinking weight while keeping around rscale+6
	// significant digits.
	for cmpVar(&x, &varZeroPointNine) <= 0 {
		localRscale := rscale - x.weight*decDigits/2 + 8
		localRscale = max(localRscale, MinDisplayScale)
		var err error
		x, err = sqrtVar(&x, localRscale)
		if err != nil {
			return res, err
		}
		fact = mulVar(&fact, &varTwo, 0)
	}
	for cmpVar(&x, &varOnePointOne) >= 0 {
		localRscale := rscale - x.weight*decDigits/2 + 8
		localRscale = max(localRscale, MinDisplayScale)
		var err error
		x, err = sqrtVar(&x, localRscale)
		if err != nil {
			return res, err
		}
		fact = mulVar(&fact, &varTwo, 0)
	}

	// Use the Taylor series for 0.5 * ln((1+z)/(1-z)),
	//
	//	z + z^3/3 + z^5/5 + ...
	//
	// where z = (x-1)/(x+1) is in the range -0.053 .. 0.048 after the
	// range reduction above.
	localRscale := rscale + 8

	num := subVar(&x, &varOne)
	den := addVar(&x, &varOne)
	res, err := divVarFast(&num, &den, localRscale, true)
	if err != nil {
		return res, err
	}
	xx := res
	zz := mulVar(&res, &res, localRscale)

	ni := int64(1)
	for {
		ni += 2
		xx = mulVar(&xx, &zz, localRscale)
		elem, err := divVarInt(&xx, ni, 0, localRscale, true)
		if err != nil {
			return res, err
		}

		if elem.ndigits == 0 {
			break
		}

		res = addVar(&res, &elem)

		if elem.weight < res.weight-localRscale*2/decDigits {
			break
		}
	}

	// Compensate for the argument range reduction and round.
	return mulVar(&res, &fact, rscale), nil
}

// estimateLnDweight estimates the decimal weight of ln(v), used to pick
// working precisions before the real computation.
func estimateLnDweight(v *variable) int {
	if cmpVar(v, &varZeroPointNine) >= 0 && cmpVar(v, &varOnePointOne) <= 0 {
		// ln(v) has a (possibly very large) negative weight; estimate it
		// with ln(1+x) ~= x.
		x := subVar(v, &varOne)
		if x.ndigits > 0 {
			// weight of the most significant decimal digit of x
			return x.weight*decDigits + int(math.Log10(float64(x.digits[0])))
		}
		// x = 0, and ln(1) = 0 exactly, so no extra digits are needed
		return 0
	}

	// Estimate from the first couple of input digits; accurate whenever the
	// input is not too close to 1. With v ~= digits * 10^dweight,
	// ln(v) ~= ln(digits) + dweight * ln(10).
	if v.ndigits > 0 {
		digits := int(v.digits[0])
		dweight := v.weight * decDigits
		if v.ndigits > 1 {
			digits = digits*nbase + int(v.digits[1])
			dweight -= decDigits
		}

		lnEst := math.Log(float64(digits)) + float64(dweight)*2.302585092994046
		if lnEst != 0 {
			return int(math.Log10(math.Abs(lnEst)))
		}
	}
	return 0
}

// logVar computes log base->num, i.e. ln(num)/ln(base), choosing a scale
// that keeps MinSigDigits significant digits.
func logVar(base, num *variable) (variable, error) {
	lnBaseDweight := estimateLnDweight(base)
	lnNumDweight := estimateLnDweight(num)
	resultDweight := lnNumDweight - lnBaseDweight

	rscale := MinSigDigits - resultDweight
	rscale = max(rscale, base.dscale)
	rscale = max(rscale, num.dscale)
	rscale = max(rscale, MinDisplayScale)
	rscale = min(rscale, MaxDisplayScale)

	// Compute each logarithm with more significant digits than the final
	// result needs.
	lnBaseRscale := max(rscale+resultDweight-lnBaseDweight+8, MinDisplayScale)
	lnNumRscale := max(rscale+resultDweight-lnNumDweight+8, MinDisplayScale)

	lnBase, err := lnVar(base, lnBaseRscale)
	if err != nil {
		return variable{}, err
	}
	lnNum, err := lnVar(num, lnNumRscale)
	if err != nil {
		return variable{}, err
	}

	return divVarFast(&lnNum, &lnBase, rscale, true)
}

// Exp returns e raised to the power n at a scale carrying at least
// MinSigDigits significant digits.
func (n Numeric) Exp() (Numeric, error) {
	switch n.sign {
	case signNaN:
		return numNaN, nil
	case signPInf:
		return numPInf, nil
	case signNInf:
		return numZero, nil
	}

	v := n.alias()

	// approximate decimal weight of the result: n * log10(e)
	val := v.float64Lossy() * 0.434294481903252
	val = math.Max(val, -MaxResultScale)
	val = math.Min(val, MaxResultScale)

	rscale := MinSigDigits - int(val)
	rscale = max(rscale, v.dscale)
	rscale = max(rscale, MinDisplayScale)
	rscale = min(rscale, MaxDisplayScale)

	res, err := expVar(&v, rscale)
	if err != nil {
		return Numeric{}, err
	}
	return makeNumeric(&res, opExp)
}

// Ln returns the natural logarithm of n.
func (n Numeric) Ln() (Numeric, error) {
	switch n.sign {
	case signNaN:
		return numNaN, nil
	case signPInf:
		return numPInf, nil
	case signNInf:
		return Numeric{}, errs.InvalidArgument(opLn, "cannot take logarithm of a negative number")
	}

	v := n.alias()

	lnDweight := estimateLnDweight(&v)

	rscale := MinSigDigits - lnDweight
	rscale = max(rscale, v.dscale)
	rscale = max(rscale, MinDisplayScale)
	rscale = min(rscale, MaxDisplayScale)

	res, err := lnVar(&v, rscale)
	if err != nil {
		return Numeric{}, err
	}
	return makeNumeric(&res, opLn)
}

// Log returns the logarithm of num in the given base.
func Log(base, num Numeric) (Numeric, error) {
	if base.isSpecial() || num.isSpecial() {
		switch {
		case base.sign == signNaN || num.sign == signNaN:
			return numNaN, nil
		case base.Sign() < 0 || num.Sign() < 0:
			return Numeric{}, errs.InvalidArgument(opLog, "cannot take logarithm of a negative number")
		case base.Sign() == 0 || num.Sign() == 0:
			return Numeric{}, errs.InvalidArgument(opLog, "cannot take logarithm of zero")
		case base.sign == signPInf:
			if num.sign == signPInf {
				// log(Inf, Inf) reduces to Inf/Inf
				return numNaN, nil
			}
			return numZero, nil
		default:
			// num is +Inf with a finite positive base
			return numPInf, nil
		}
	}

	vb, vn := base.alias(), num.alias()
	res, err := logVar(&vb, &vn)
	if err != nil {
		return Numeric{}, err
	}
	return makeNumeric(&res, opLog)
}

// Log10 returns the base-10 logarithm of n.
func (n Numeric) Log10() (Numeric, error) {
	switch n.sign {
	case signNaN:
		return numNaN, nil
	case signPInf:
		return numPInf, nil
	case signNInf:
		return Numeric{}, errs.InvalidArgument(opLog10, "cannot take logarithm of a negative number")
	}

	switch n.Sign() {
	case -1:
		return Numeric{}, errs.InvalidArgument(opLog10, "cannot take logarithm of a negative number")
	case 0:
		return Numeric{}, errs.InvalidArgument(opLog10, "cannot take logarithm of zero")
	}

	ten := varTen
	v := n.alias()
	res, err := logVar(&ten, &v)
	if err != nil {
		return Numeric{}, err
	}
	return makeNumeric(&res, opLog10)
}

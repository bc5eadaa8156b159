package numeric

import (
	"math"

	"github.com/coachpo/pgnumeric/errs"
)

const (
	opDiv      = "numeric.Div"
	opDivScale = "numeric.DivScale"
	opDivTrunc = "numeric.DivTrunc"
	opMod      = "numeric.Mod"
)

// divVarInt divides v by the integer ival (scaled by nbase^ivalWeight) using
// short division, to rscale fraction digits. This is much faster than full
// long division when the divisor fits in an int.
func divVarInt(v *variable, ival int64, ivalWeight, rscale int, round bool) (variable, error) {
	var res variable

	if ival == 0 {
		return res, errs.DivisionByZero(opDiv)
	}

	if v.ndigits == 0 {
		res.setZero(rscale)
		return res, nil
	}

	// The weight figured here is correct if the emitted quotient has no
	// leading zero digits; otherwise strip fixes things up.
	var resSign uint16
	if v.sign == signPos {
		resSign = signPos
		if ival < 0 {
			resSign = signNeg
		}
	} else {
		resSign = signNeg
		if ival < 0 {
			resSign = signPos
		}
	}
	resWeight := v.weight - ivalWeight
	resNdigits := resWeight + 1 + (rscale+decDigits-1)/decDigits
	resNdigits = max(resNdigits, 1)
	if round {
		resNdigits++
	}

	var divisor uint64
	if ival > 0 {
		divisor = uint64(ival)
	} else {
		divisor = uint64(-ival)
	}

	// Short division, except that the divisor may exceed nbase. The carry
	// into each step is at most divisor-1, so the working value can reach
	// divisor*nbase - 1 and needs 64 bits once that exceeds uint32 range.
	digits := make([]int16, resNdigits)
	if divisor <= math.MaxUint32/nbase {
		d32 := uint32(divisor)
		carry := uint32(0)
		for i := 0; i < resNdigits; i++ {
			var dig uint32
			if i < v.ndigits {
				dig = uint32(v.digits[i])
			}
			carry = carry*nbase + dig
			digits[i] = int16(carry / d32)
			carry %= d32
		}
	} else {
		carry := uint64(0)
		for i := 0; i < resNdigits; i++ {
			var dig uint64
			if i < v.ndigits {
				dig = uint64(v.digits[i])
			}
			carry = carry*nbase + dig
			digits[i] = int16(carry / divisor)
			carry %= divisor
		}
	}

	res = variable{
		ndigits: resNdigits,
		weight:  resWeight,
		sign:    resSign,
		dscale:  0,
		digits:  digits,
	}
	if round {
		res.round(rscale)
	} else {
		res.trunc(rscale)
	}
	res.strip()
	return res, nil
}

// divVar computes v1 / v2 to rscale fraction digits using Knuth's long
// division (Algorithm D), delegating to divVarInt for one- and two-digit
// divisors. Every emitted digit is exact.
func divVar(v1, v2 *variable, rscale int, round bool) (variable, error) {
	var res variable

	if v2.ndigits == 0 || v2.digits[0] == 0 {
		return res, errs.DivisionByZero(opDiv)
	}

	if v2.ndigits <= 2 {
		idivisor := int64(v2.digits[0])
		idivisorWeight := v2.weight
		if v2.ndigits == 2 {
			idivisor = idivisor*nbase + int64(v2.digits[1])
			idivisorWeight--
		}
		if v2.sign == signNeg {
			idivisor = -idivisor
		}
		return divVarInt(v1, idivisor, idivisorWeight, rscale, round)
	}

	if v1.ndigits == 0 {
		res.setZero(rscale)
		return res, nil
	}

	var resSign uint16
	if v1.sign == v2.sign {
		resSign = signPos
	} else {
		resSign = signNeg
	}
	resWeight := v1.weight - v2.weight
	resNdigits := resWeight + 1 + (rscale+decDigits-1)/decDigits
	resNdigits = max(resNdigits, 1)
	if round {
		resNdigits++
	}

	// The working dividend normally needs resNdigits + v2.ndigits digits,
	// but at least v1.ndigits so all of v1 can be loaded. dividend[0] is an
	// extra position for the normalization carry, not counted in divNdigits.
	divNdigits := max(resNdigits+v2.ndigits, v1.ndigits)

	dividend := make([]int16, divNdigits+1)
	divisor := make([]int16, v2.ndigits+1)
	copy(dividend[1:], v1.digits)
	copy(divisor[1:], v2.digits)

	// Knuth requires the first divisor digit to be >= nbase/2; scale both
	// operands up by d to make it so.
	if divisor[1] < halfNBase {
		d := nbase / (int(divisor[1]) + 1)

		carry := 0
		for i := v2.ndigits; i > 0; i-- {
			carry += int(divisor[i]) * d
			divisor[i] = int16(carry % nbase)
			carry /= nbase
		}
		carry = 0
		// only v1.ndigits positions of the dividend can be nonzero here
		for i := v1.ndigits; i >= 0; i-- {
			carry += int(dividend[i]) * d
			dividend[i] = int16(carry % nbase)
			carry /= nbase
		}
	}

	divisor1 := int(divisor[1])
	divisor2 := int(divisor[2])

	// Each iteration computes the j'th quotient digit by dividing
	// dividend[j .. j+v2.ndigits] by the divisor.
	digits := make([]int16, resNdigits)
	for j := 0; j < resNdigits; j++ {
		next2digits := int(dividend[j])*nbase + int(dividend[j+1])

		// Trailing zeroes in the dividend fall out here.
		if next2digits == 0 {
			digits[j] = 0
			continue
		}

		// Estimate from the first two dividend digits; Knuth proves the
		// adjusted estimate is correct or at most one too large.
		var qhat int
		if int(dividend[j]) == divisor1 {
			qhat = nbase - 1
		} else {
			qhat = next2digits / divisor1
		}
		for divisor2*qhat > (next2digits-qhat*divisor1)*nbase+int(dividend[j+2]) {
			qhat--
		}

		if qhat > 0 {
			// Multiply the divisor by qhat and subtract from the working
			// dividend in one fused pass. qhat may still be one too large,
			// so the intermediate stays in [-nbase^2, nbase-1] and borrow
			// in [0, nbase].
			borrow := 0
			for i := v2.ndigits; i >= 0; i-- {
				tmp := int(dividend[j+i]) - borrow - int(divisor[i])*qhat
				borrow = (nbase - 1 - tmp) / nbase
				dividend[j+i] = int16(tmp + borrow*nbase)
			}

			// A borrow out of the top digit means qhat was one too large;
			// add the divisor back. The final carry cancels that borrow.
			if borrow > 0 {
				qhat--
				carry := 0
				for i := v2.ndigits; i >= 0; i-- {
					carry += int(dividend[j+i]) + int(divisor[i])
					if carry >= nbase {
						dividend[j+i] = int16(carry - nbase)
						carry = 1
					} else {
						dividend[j+i] = int16(carry)
						carry = 0
					}
				}
			}
		}

		digits[j] = int16(qhat)
	}

	res = variable{
		ndigits: resNdigits,
		weight:  resWeight,
		sign:    resSign,
		dscale:  0,
		digits:  digits,
	}
	if round {
		res.round(rscale)
	} else {
		res.trunc(rscale)
	}
	res.strip()
	return res, nil
}

// divVarFast computes v1 / v2 to rscale fraction digits, estimating each
// quotient digit in floating point and fixing mistakes in a final carry
// propagation pass. Individual digits can be off by one until that pass, so
// callers that inspect intermediate digits must use divVar instead. This is
// the workhorse of the transcendental functions, which request generous
// rscales.
func divVarFast(v1, v2 *variable, rscale int, round bool) (variable, error) {
	var res variable

	if v2.ndigits == 0 || v2.digits[0] == 0 {
		return res, errs.DivisionByZero(opDiv)
	}

	if v1.ndigits == 0 {
		res.setZero(rscale)
		return res, nil
	}

	var resSign uint16
	if v1.sign == v2.sign {
		resSign = signPos
	} else {
		resSign = signNeg
	}
	resWeight := v1.weight - v2.weight + 1
	divNdigits := resWeight + 1 + (rscale+decDigits-1)/decDigits
	divNdigits += divGuardDigits
	if divNdigits < divGuardDigits {
		divNdigits = divGuardDigits
	}

	// div starts as one zero digit followed by the dividend digits. Each
	// outer iteration replaces one position with a quotient digit; entries
	// accumulate signed values and are normalized only when they threaten
	// the int32 range the algorithm was designed around.
	div := make([]int64, divNdigits+1)
	for i := 0; i < min(divNdigits, v1.ndigits); i++ {
		div[i+1] = int64(v1.digits[i])
	}

	// Quotient digits are estimated from the leading four digits of the
	// running dividend and divisor in floating point; estimates are off by
	// at most about one.
	fdivisor := float64(v2.digits[0])
	for i := 1; i < 4; i++ {
		fdivisor *= nbase
		if i < v2.ndigits {
			fdivisor += float64(v2.digits[i])
		}
	}
	fdivisorInverse := 1.0 / fdivisor

	// maxdiv tracks the maximum possible |div[i]| divided by nbase-1; carry
	// values can reach INT32_MAX/nbase + 1, so normalization must happen
	// before entries exceed INT32_MAX - INT32_MAX/nbase - 1.
	maxdiv := int64(1)

	var qdigit int64
	var fdividend, fquotient float64
	for qi := 0; qi < divNdigits; qi++ {
		fdividend = float64(div[qi])
		for i := 1; i < 4; i++ {
			fdividend *= nbase
			if qi+i <= divNdigits {
				fdividend += float64(div[qi+i])
			}
		}
		fquotient = fdividend * fdivisorInverse
		if fquotient >= 0 {
			qdigit = int64(fquotient)
		} else {
			qdigit = int64(fquotient) - 1 // truncate towards -infinity
		}

		if qdigit != 0 {
			maxdiv += abs64(qdigit)
			if maxdiv > (math.MaxInt32-math.MaxInt32/nbase-1)/(nbase-1) {
				carry := int64(0)
				for i := divNdigits; i > qi; i-- {
					newdig := div[i] + carry
					if newdig < 0 {
						carry = -((-newdig - 1) / nbase) - 1
						newdig -= carry * nbase
					} else if newdig >= nbase {
						carry = newdig / nbase
						newdig -= carry * nbase
					} else {
						carry = 0
					}
					div[i] = newdig
				}
				div[qi] += carry
				maxdiv = 1

				// new info may change the quotient digit
				fdividend = float64(div[qi])
				for i := 1; i < 4; i++ {
					fdividend *= nbase
					if qi+i <= divNdigits {
						fdividend += float64(div[qi+i])
					}
				}
				fquotient = fdividend * fdivisorInverse
				if fquotient >= 0 {
					qdigit = int64(fquotient)
				} else {
					qdigit = int64(fquotient) - 1
				}
				maxdiv += abs64(qdigit)
			}

			if qdigit != 0 {
				istop := min(v2.ndigits, divNdigits-qi+1)
				for i := 0; i < istop; i++ {
					div[qi+i] -= qdigit * int64(v2.digits[i])
				}
			}
		}

		// The dividend digit being replaced may still be nonzero; fold it
		// into the next position.
		div[qi+1] += div[qi] * nbase
		div[qi] = qdigit
	}

	// Approximate and store the last quotient digit.
	fdividend = float64(div[divNdigits])
	for i := 1; i < 4; i++ {
		fdividend *= nbase
	}
	fquotient = fdividend * fdivisorInverse
	if fquotient >= 0 {
		qdigit = int64(fquotient)
	} else {
		qdigit = int64(fquotient) - 1
	}
	div[divNdigits] = qdigit

	// Some quotient digits may be -1 or nbase; a final carry propagation
	// pass normalizes them while storing the result.
	digits := make([]int16, divNdigits+1)
	carry := int64(0)
	for i := divNdigits; i >= 0; i-- {
		newdig := div[i] + carry
		if newdig < 0 {
			carry = -((-newdig - 1) / nbase) - 1
			newdig -= carry * nbase
		} else if newdig >= nbase {
			carry = newdig / nbase
			newdig -= carry * nbase
		} else {
			carry = 0
		}
		digits[i] = int16(newdig)
	}

	res = variable{
		ndigits: divNdigits + 1,
		weight:  resWeight,
		sign:    resSign,
		dscale:  0,
		digits:  digits,
	}
	if round {
		res.round(rscale)
	} else {
		res.trunc(rscale)
	}
	res.strip()
	return res, nil
}

func abs64(x int64) int64 {
	if x < 0 {
		return -x
	}
	return x
}

// selectDivScale picks a result scale for v1 / v2 that keeps at least
// MinSigDigits significant digits and no fewer fraction digits than either
// input displays.
func selectDivScale(v1, v2 *variable) int {
	// actual (normalized) weight and first digit of each input
	weight1, firstdigit1 := 0, int16(0)
	for i := 0; i < v1.ndigits; i++ {
		firstdigit1 = v1.digits[i]
		if firstdigit1 != 0 {
			weight1 = v1.weight - i
			break
		}
	}
	weight2, firstdigit2 := 0, int16(0)
	for i := 0; i < v2.ndigits; i++ {
		firstdigit2 = v2.digits[i]
		if firstdigit2 != 0 {
			weight2 = v2.weight - i
			break
		}
	}

	// Estimate the quotient weight; when the leading digits are equal,
	// assume v1 is the smaller.
	qweight := weight1 - weight2
	if firstdigit1 <= firstdigit2 {
		qweight--
	}

	rscale := MinSigDigits - qweight*decDigits
	rscale = max(rscale, v1.dscale)
	rscale = max(rscale, v2.dscale)
	rscale = max(rscale, MinDisplayScale)
	rscale = min(rscale, MaxDisplayScale)
	return rscale
}

// modVar computes v1 mod v2 as v1 - trunc(v1/v2)*v2, with the sign of v1.
func modVar(v1, v2 *variable) (variable, error) {
	q, err := divVar(v1, v2, 0, false)
	if err != nil {
		return variable{}, err
	}
	m := mulVar(v2, &q, v2.dscale+q.dscale)
	return subVar(v1, &m), nil
}

// Div returns n / y at a scale chosen by selectDivScale. Dividing infinity
// by infinity yields NaN; dividing a finite value by infinity yields zero.
func (n Numeric) Div(y Numeric) (Numeric, error) {
	if n.isSpecial() || y.isSpecial() {
		switch {
		case n.sign == signNaN || y.sign == signNaN:
			return numNaN, nil
		case n.IsInf(0):
			if y.isSpecial() {
				return numNaN, nil
			}
			// Inf / 0 raises an error rather than returning Inf.
			sign2 := y.Sign()
			if sign2 == 0 {
				return Numeric{}, errs.DivisionByZero(opDiv)
			}
			if (n.sign == signPInf) == (sign2 > 0) {
				return numPInf, nil
			}
			return numNInf, nil
		default:
			// n is finite and y is an infinity; the quotient is zero
			return numZero, nil
		}
	}

	if len(y.digits) == 0 {
		return Numeric{}, errs.DivisionByZero(opDiv)
	}

	v1, v2 := n.alias(), y.alias()
	rscale := selectDivScale(&v1, &v2)
	res, err := divVar(&v1, &v2, rscale, true)
	if err != nil {
		return Numeric{}, err
	}
	return makeNumeric(&res, opDiv)
}

// DivScale returns n / y with exactly scale fraction digits, rounded half
// away from zero when round is true and truncated toward zero otherwise. A
// negative scale resolves the quotient left of the decimal point.
func (n Numeric) DivScale(y Numeric, scale int, round bool) (Numeric, error) {
	if n.isSpecial() || y.isSpecial() {
		switch {
		case n.sign == signNaN || y.sign == signNaN:
			return numNaN, nil
		case n.IsInf(0):
			if y.isSpecial() {
				return numNaN, nil
			}
			sign2 := y.Sign()
			if sign2 == 0 {
				return Numeric{}, errs.DivisionByZero(opDivScale)
			}
			if (n.sign == signPInf) == (sign2 > 0) {
				return numPInf, nil
			}
			return numNInf, nil
		default:
			return numZero, nil
		}
	}

	if len(y.digits) == 0 {
		return Numeric{}, errs.DivisionByZero(opDivScale)
	}

	scale = max(scale, -(maxStoredWeight+1)*decDigits)
	scale = min(scale, maxStoredDscale)

	v1, v2 := n.alias(), y.alias()
	res, err := divVar(&v1, &v2, scale, round)
	if err != nil {
		return Numeric{}, err
	}
	if scale < 0 {
		res.dscale = 0
	}
	return makeNumeric(&res, opDivScale)
}

// DivTrunc returns n / y truncated toward zero to an integral value.
func (n Numeric) DivTrunc(y Numeric) (Numeric, error) {
	if n.isSpecial() || y.isSpecial() {
		switch {
		case n.sign == signNaN || y.sign == signNaN:
			return numNaN, nil
		case n.IsInf(0):
			if y.isSpecial() {
				return numNaN, nil
			}
			sign2 := y.Sign()
			if sign2 == 0 {
				return Numeric{}, errs.DivisionByZero(opDivTrunc)
			}
			if (n.sign == signPInf) == (sign2 > 0) {
				return numPInf, nil
			}
			return numNInf, nil
		default:
			return numZero, nil
		}
	}

	if len(y.digits) == 0 {
		return Numeric{}, errs.DivisionByZero(opDivTrunc)
	}

	v1, v2 := n.alias(), y.alias()
	res, err := divVar(&v1, &v2, 0, false)
	if err != nil {
		return Numeric{}, err
	}
	return makeNumeric(&res, opDivTrunc)
}

// Mod returns n mod y, with the sign of n. Taking an infinity modulo any
// nonzero value yields NaN, while a finite value modulo infinity is returned
// unchanged.
func (n Numeric) Mod(y Numeric) (Numeric, error) {
	if n.isSpecial() || y.isSpecial() {
		switch {
		case n.sign == signNaN || y.sign == signNaN:
			return numNaN, nil
		case n.IsInf(0):
			if y.Sign() == 0 {
				return Numeric{}, errs.DivisionByZero(opMod)
			}
			return numNaN, nil
		default:
			// n is finite and y is an infinity; n wins
			return n, nil
		}
	}

	if len(y.digits) == 0 {
		return Numeric{}, errs.DivisionByZero(opMod)
	}

	v1, v2 := n.alias(), y.alias()
	res, err := modVar(&v1, &v2)
	if err != nil {
		return Numeric{}, err
	}
	return makeNumeric(&res, opMod)
}

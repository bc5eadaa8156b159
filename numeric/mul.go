package numeric

import "math"

const opMul = "numeric.Mul"

// mulVar computes v1 * v2 rounded to rscale fraction digits. When rscale is
// the sum of the operand display scales the product is exact.
func mulVar(v1, v2 *variable, rscale int) variable {
	var res variable

	// Arrange for v1 to be the shorter of the two numbers; the inner loop
	// is much simpler than the outer one, and fewer outer iterations also
	// means fewer accumulator normalizations.
	if v1.ndigits > v2.ndigits {
		v1, v2 = v2, v1
	}

	if v1.ndigits == 0 || v2.ndigits == 0 {
		res.setZero(rscale)
		return res
	}

	var resSign uint16
	if v1.sign == v2.sign {
		resSign = signPos
	} else {
		resSign = signNeg
	}
	resWeight := v1.weight + v2.weight + 2

	// If the exact result would have more than rscale fraction digits,
	// truncate the computation with two guard digits; carries out of the
	// ignored positions propagate further only pathologically rarely.
	resNdigits := v1.ndigits + v2.ndigits + 1
	maxdigits := resWeight + 1 + (rscale+decDigits-1)/decDigits + mulGuardDigits
	resNdigits = min(resNdigits, maxdigits)

	if resNdigits < 3 {
		// All input digits will be ignored, so the result is zero.
		res.setZero(rscale)
		return res
	}

	// Accumulate products in an int32 array, normalizing carries only when
	// an entry could otherwise overflow. maxdig tracks the worst-case entry
	// value divided by nbase-1.
	dig := make([]int32, resNdigits)
	maxdig := int32(0)

	// Digit i1 of v1 and digit i2 of v2 contribute to digit i1+i2+2 of the
	// accumulator, so only digits with i1 <= resNdigits-3 matter.
	for i1 := min(v1.ndigits-1, resNdigits-3); i1 >= 0; i1-- {
		var1digit := int32(v1.digits[i1])
		if var1digit == 0 {
			continue
		}

		maxdig += var1digit
		if maxdig > (math.MaxInt32-math.MaxInt32/nbase)/(nbase-1) {
			carry := int32(0)
			for i := resNdigits - 1; i >= 0; i-- {
				newdig := dig[i] + carry
				if newdig >= nbase {
					carry = newdig / nbase
					newdig -= carry * nbase
				} else {
					carry = 0
				}
				dig[i] = newdig
			}
			maxdig = 1 + var1digit
		}

		i := i1 + min(v2.ndigits-1, resNdigits-i1-3) + 2
		for i2 := min(v2.ndigits-1, resNdigits-i1-3); i2 >= 0; i2-- {
			dig[i] += var1digit * int32(v2.digits[i2])
			i--
		}
	}

	// Final carry propagation pass, combined with storing the result digits.
	digits := make([]int16, resNdigits)
	carry := int32(0)
	for i := resNdigits - 1; i >= 0; i-- {
		newdig := dig[i] + carry
		if newdig >= nbase {
			carry = newdig / nbase
			newdig -= carry * nbase
		} else {
			carry = 0
		}
		digits[i] = int16(newdig)
	}

	res = variable{
		ndigits: resNdigits,
		weight:  resWeight,
		sign:    resSign,
		dscale:  0,
		digits:  digits,
	}
	res.round(rscale)
	res.strip()
	return res
}

// Mul returns n * y with an exact product scale. Multiplying an infinity by
// zero yields NaN.
func (n Numeric) Mul(y Numeric) (Numeric, error) {
	if n.isSpecial() || y.isSpecial() {
		switch {
		case n.sign == signNaN || y.sign == signNaN:
			return numNaN, nil
		case n.sign == signPInf:
			switch y.Sign() {
			case 0:
				return numNaN, nil
			case 1:
				return numPInf, nil
			default:
				return numNInf, nil
			}
		case n.sign == signNInf:
			switch y.Sign() {
			case 0:
				return numNaN, nil
			case 1:
				return numNInf, nil
			default:
				return numPInf, nil
			}
		case y.sign == signPInf:
			switch n.Sign() {
			case 0:
				return numNaN, nil
			case 1:
				return numPInf, nil
			default:
				return numNInf, nil
			}
		default:
			switch n.Sign() {
			case 0:
				return numNaN, nil
			case 1:
				return numNInf, nil
			default:
				return numPInf, nil
			}
		}
	}

	v1, v2 := n.alias(), y.alias()
	res := mulVar(&v1, &v2, v1.dscale+v2.dscale)
	return makeNumeric(&res, opMul)
}

package numeric

const (
	opAdd = "numeric.Add"
	opSub = "numeric.Sub"
)

// addAbs computes |v1| + |v2|. The result carries sign signPos; callers fix
// the sign afterwards.
func addAbs(v1, v2 *variable) variable {
	resWeight := max(v1.weight, v2.weight) + 1
	resDscale := max(v1.dscale, v2.dscale)

	// rscale here counts base-10000 fraction digits
	rscale1 := v1.ndigits - v1.weight - 1
	rscale2 := v2.ndigits - v2.weight - 1
	resRscale := max(rscale1, rscale2)

	resNdigits := resRscale + resWeight + 1
	if resNdigits <= 0 {
		resNdigits = 1
	}

	digits := make([]int16, resNdigits)
	carry := 0
	i1 := resRscale + v1.weight + 1
	i2 := resRscale + v2.weight + 1
	for i := resNdigits - 1; i >= 0; i-- {
		i1--
		i2--
		if i1 >= 0 && i1 < v1.ndigits {
			carry += int(v1.digits[i1])
		}
		if i2 >= 0 && i2 < v2.ndigits {
			carry += int(v2.digits[i2])
		}

		if carry >= nbase {
			digits[i] = int16(carry - nbase)
			carry = 1
		} else {
			digits[i] = int16(carry)
			carry = 0
		}
	}

	res := variable{
		ndigits: resNdigits,
		weight:  resWeight,
		sign:    signPos,
		dscale:  resDscale,
		digits:  digits,
	}
	res.strip()
	return res
}

// subAbs computes |v1| - |v2|. The caller must ensure |v1| > |v2|; the result
// carries sign signPos for the caller to fix.
func subAbs(v1, v2 *variable) variable {
	resWeight := v1.weight
	resDscale := max(v1.dscale, v2.dscale)

	rscale1 := v1.ndigits - v1.weight - 1
	rscale2 := v2.ndigits - v2.weight - 1
	resRscale := max(rscale1, rscale2)

	resNdigits := resRscale + resWeight + 1
	if resNdigits <= 0 {
		resNdigits = 1
	}

	digits := make([]int16, resNdigits)
	borrow := 0
	i1 := resRscale + v1.weight + 1
	i2 := resRscale + v2.weight + 1
	for i := resNdigits - 1; i >= 0; i-- {
		i1--
		i2--
		if i1 >= 0 && i1 < v1.ndigits {
			borrow += int(v1.digits[i1])
		}
		if i2 >= 0 && i2 < v2.ndigits {
			borrow -= int(v2.digits[i2])
		}

		if borrow < 0 {
			digits[i] = int16(borrow + nbase)
			borrow = -1
		} else {
			digits[i] = int16(borrow)
			borrow = 0
		}
	}

	res := variable{
		ndigits: resNdigits,
		weight:  resWeight,
		sign:    signPos,
		dscale:  resDscale,
		digits:  digits,
	}
	res.strip()
	return res
}

// addVar computes v1 + v2 for finite operands. The result is exact; its
// display scale is the larger of the operand scales.
func addVar(v1, v2 *variable) variable {
	var res variable
	if v1.sign == signPos {
		if v2.sign == signPos {
			res = addAbs(v1, v2)
			res.sign = signPos
			return res
		}
		switch cmpAbs(v1, v2) {
		case 0:
			res.setZero(max(v1.dscale, v2.dscale))
			return res
		case 1:
			res = subAbs(v1, v2)
			res.sign = signPos
			return res
		default:
			res = subAbs(v2, v1)
			res.sign = signNeg
			return res
		}
	}

	if v2.sign == signPos {
		switch cmpAbs(v1, v2) {
		case 0:
			res.setZero(max(v1.dscale, v2.dscale))
			return res
		case 1:
			res = subAbs(v1, v2)
			res.sign = signNeg
			return res
		default:
			res = subAbs(v2, v1)
			res.sign = signPos
			return res
		}
	}

	res = addAbs(v1, v2)
	res.sign = signNeg
	return res
}

// subVar computes v1 - v2 for finite operands. The result is exact; its
// display scale is the larger of the operand scales.
func subVar(v1, v2 *variable) variable {
	var res variable
	if v1.sign == signPos {
		if v2.sign == signNeg {
			res = addAbs(v1, v2)
			res.sign = signPos
			return res
		}
		switch cmpAbs(v1, v2) {
		case 0:
			res.setZero(max(v1.dscale, v2.dscale))
			return res
		case 1:
			res = subAbs(v1, v2)
			res.sign = signPos
			return res
		default:
			res = subAbs(v2, v1)
			res.sign = signNeg
			return res
		}
	}

	if v2.sign == signNeg {
		switch cmpAbs(v1, v2) {
		case 0:
			res.setZero(max(v1.dscale, v2.dscale))
			return res
		case 1:
			res = subAbs(v1, v2)
			res.sign = signNeg
			return res
		default:
			res = subAbs(v2, v1)
			res.sign = signPos
			return res
		}
	}

	res = addAbs(v1, v2)
	res.sign = signNeg
	return res
}

// Add returns x + y. Infinities of opposite sign yield NaN.
func (n Numeric) Add(y Numeric) (Numeric, error) {
	if n.isSpecial() || y.isSpecial() {
		switch {
		case n.sign == signNaN || y.sign == signNaN:
			return numNaN, nil
		case n.sign == signPInf:
			if y.sign == signNInf {
				return numNaN, nil
			}
			return numPInf, nil
		case n.sign == signNInf:
			if y.sign == signPInf {
				return numNaN, nil
			}
			return numNInf, nil
		case y.sign == signPInf:
			return numPInf, nil
		default:
			return numNInf, nil
		}
	}

	v1, v2 := n.alias(), y.alias()
	res := addVar(&v1, &v2)
	return makeNumeric(&res, opAdd)
}

// Sub returns n - y. Subtracting an infinity from an equal infinity yields
// NaN.
func (n Numeric) Sub(y Numeric) (Numeric, error) {
	if n.isSpecial() || y.isSpecial() {
		switch {
		case n.sign == signNaN || y.sign == signNaN:
			return numNaN, nil
		case n.sign == signPInf:
			if y.sign == signPInf {
				return numNaN, nil
			}
			return numPInf, nil
		case n.sign == signNInf:
			if y.sign == signNInf {
				return numNaN, nil
			}
			return numNInf, nil
		case y.sign == signPInf:
			return numNInf, nil
		default:
			return numPInf, nil
		}
	}

	v1, v2 := n.alias(), y.alias()
	res := subVar(&v1, &v2)
	return makeNumeric(&res, opSub)
}

package numeric

import "github.com/coachpo/pgnumeric/errs"

const (
	opRound    = "numeric.Round"
	opTrunc    = "numeric.Trunc"
	opCeil     = "numeric.Ceil"
	opFloor    = "numeric.Floor"
	opMinScale = "numeric.MinScale"
)

// Round returns n rounded half away from zero to scale fraction digits. A
// negative scale rounds at a position left of the decimal point. Special
// values are returned unchanged.
func (n Numeric) Round(scale int) (Numeric, error) {
	if n.isSpecial() {
		return n, nil
	}

	// Limit scale to the digit positions a value can actually occupy, with
	// one extra position for the most significant digit rounding up.
	scale = max(scale, -(maxStoredWeight+1)*decDigits)
	scale = min(scale, maxStoredDscale)

	v := n.writable()
	v.round(scale)

	// negative output dscale is not allowed
	if scale < 0 {
		v.dscale = 0
	}
	return makeNumeric(&v, opRound)
}

// Trunc returns n truncated toward zero to scale fraction digits. A negative
// scale truncates at a position left of the decimal point. Special values
// are returned unchanged.
func (n Numeric) Trunc(scale int) (Numeric, error) {
	if n.isSpecial() {
		return n, nil
	}

	scale = max(scale, -(maxStoredWeight+1)*decDigits)
	scale = min(scale, maxStoredDscale)

	v := n.writable()
	v.trunc(scale)

	if scale < 0 {
		v.dscale = 0
	}
	return makeNumeric(&v, opTrunc)
}

// Ceil returns the smallest integral value greater than or equal to n.
func (n Numeric) Ceil() (Numeric, error) {
	if n.isSpecial() {
		return n, nil
	}

	v := n.alias()
	tmp := v.clone()
	tmp.trunc(0)
	if v.sign == signPos && cmpVar(&v, &tmp) != 0 {
		tmp = addVar(&tmp, &varOne)
	}
	return makeNumeric(&tmp, opCeil)
}

// Floor returns the largest integral value less than or equal to n.
func (n Numeric) Floor() (Numeric, error) {
	if n.isSpecial() {
		return n, nil
	}

	v := n.alias()
	tmp := v.clone()
	tmp.trunc(0)
	if v.sign == signNeg && cmpVar(&v, &tmp) != 0 {
		tmp = subVar(&tmp, &varOne)
	}
	return makeNumeric(&tmp, opFloor)
}

// getMinScale returns the smallest display scale that still renders v
// exactly.
func getMinScale(v *variable) int {
	// The value is normally stripped so the last digit is nonzero, but scan
	// for it explicitly rather than looping forever on padding.
	lastDigitPos := v.ndigits - 1
	for lastDigitPos >= 0 && v.digits[lastDigitPos] == 0 {
		lastDigitPos--
	}

	if lastDigitPos < 0 {
		return 0 // all zeroes
	}

	minScale := (lastDigitPos - v.weight) * decDigits
	if minScale > 0 {
		// adjust for trailing decimal zeroes within the last digit
		for lastDigit := v.digits[lastDigitPos]; lastDigit%10 == 0; lastDigit /= 10 {
			minScale--
		}
	}
	return max(minScale, 0)
}

// MinScale returns the smallest display scale that renders n without losing
// digits. Special values have no meaningful scale and are rejected.
func (n Numeric) MinScale() (int, error) {
	if n.isSpecial() {
		return 0, errs.InvalidArgument(opMinScale, "cannot take the minimum scale of "+n.String())
	}
	v := n.alias()
	return getMinScale(&v), nil
}

// TrimScale returns n with its display scale reduced to the minimum that
// still renders the value exactly. Special values are returned unchanged.
func (n Numeric) TrimScale() Numeric {
	if n.isSpecial() {
		return n
	}
	v := n.alias()
	out := n
	out.dscale = int16(getMinScale(&v))
	return out
}

package numeric

import (
	"fmt"

	"github.com/coachpo/pgnumeric/errs"
)

const (
	opMakeTypmod  = "numeric.MakeTypmod"
	opApplyTypmod = "numeric.ApplyTypmod"
)

// Typmod is a precision/scale constraint packed in the format the wire
// protocol uses for numeric type modifiers. Unconstrained means no limit.
type Typmod int32

// Unconstrained is the typmod carrying no precision or scale limit.
const Unconstrained Typmod = -1

// typmodHeader offsets encoded typmods past the values reserved for
// "no modifier".
const typmodHeader = 4

// MakeTypmod packs precision and scale into a Typmod. Precision must lie in
// [1, MaxPrecision] and scale in [-MaxDisplayScale, MaxDisplayScale].
func MakeTypmod(precision, scale int) (Typmod, error) {
	if precision < 1 || precision > MaxPrecision {
		return Unconstrained, errs.InvalidArgument(opMakeTypmod,
			fmt.Sprintf("NUMERIC precision %d must be between 1 and %d", precision, MaxPrecision))
	}
	if scale < -MaxDisplayScale || scale > MaxDisplayScale {
		return Unconstrained, errs.InvalidArgument(opMakeTypmod,
			fmt.Sprintf("NUMERIC scale %d must be between %d and %d", scale, -MaxDisplayScale, MaxDisplayScale))
	}
	return Typmod((precision<<16)|(scale&0x7FF)) + typmodHeader, nil
}

// Valid reports whether t encodes a precision/scale constraint.
func (t Typmod) Valid() bool { return t >= typmodHeader }

// Precision returns the encoded precision, or 0 when t is unconstrained.
func (t Typmod) Precision() int {
	if !t.Valid() {
		return 0
	}
	return int(((t - typmodHeader) >> 16) & 0xFFFF)
}

// Scale returns the encoded scale, or 0 when t is unconstrained. The scale
// is sign-extended from its 11-bit encoding, so negative scales survive the
// round trip.
func (t Typmod) Scale() int {
	if !t.Valid() {
		return 0
	}
	return int(((t-typmodHeader)&0x7FF)^0x400) - 0x400
}

// String renders t the way a column declaration would.
func (t Typmod) String() string {
	if !t.Valid() {
		return "numeric"
	}
	return fmt.Sprintf("numeric(%d,%d)", t.Precision(), t.Scale())
}

// ParseTypmod parses a decimal string and applies the typmod constraint in
// one step, the way a constrained column coerces its input.
func ParseTypmod(s string, t Typmod) (Numeric, error) {
	n, err := Parse(s)
	if err != nil {
		return Numeric{}, err
	}
	return n.ApplyTypmod(t)
}

// ApplyTypmod rounds n to the typmod's scale and enforces its precision.
// NaN passes any constraint; an infinity fits none.
func (n Numeric) ApplyTypmod(t Typmod) (Numeric, error) {
	if !t.Valid() {
		return n, nil
	}
	precision, scale := t.Precision(), t.Scale()

	if n.isSpecial() {
		if n.sign == signNaN {
			return n, nil
		}
		return Numeric{}, errs.New(opApplyTypmod, errs.CodeOutOfRange,
			errs.WithMessage("numeric field overflow"),
			errs.WithDetail("detail", fmt.Sprintf(
				"A field with precision %d, scale %d cannot hold an infinite value.",
				precision, scale)))
	}

	maxdigits := precision - scale

	v := n.writable()
	v.round(scale)
	if v.dscale < 0 {
		v.dscale = 0
	}

	// The overflow check has to come after rounding, since rounding can
	// raise the weight.
	ddigits := (v.weight + 1) * decDigits
	if ddigits > maxdigits {
		for i := 0; i < v.ndigits; i++ {
			dig := v.digits[i]
			if dig != 0 {
				// adjust for high-order decimal zeroes in this digit
				switch {
				case dig < 10:
					ddigits -= 3
				case dig < 100:
					ddigits -= 2
				case dig < 1000:
					ddigits -= 1
				}
				if ddigits > maxdigits {
					limit := "1"
					if maxdigits > 0 {
						limit = fmt.Sprintf("10^%d", maxdigits)
					}
					return Numeric{}, errs.New(opApplyTypmod, errs.CodeOutOfRange,
						errs.WithMessage("numeric field overflow"),
						errs.WithDetail("detail", fmt.Sprintf(
							"A field with precision %d, scale %d must round to an absolute value less than %s.",
							precision, scale, limit)))
				}
				break
			}
			ddigits -= decDigits
		}
	}
	return makeNumeric(&v, opApplyTypmod)
}

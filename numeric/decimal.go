package numeric

import (
	"github.com/shopspring/decimal"

	"github.com/coachpo/pgnumeric/errs"
)

const opDecimal = "numeric.Decimal"

// FromDecimal converts a shopspring decimal into a Numeric. The display
// scale follows the decimal's exponent.
func FromDecimal(d decimal.Decimal) (Numeric, error) {
	return Parse(d.String())
}

// Decimal converts n into a shopspring decimal. NaN and the infinities
// have no decimal form.
func (n Numeric) Decimal() (decimal.Decimal, error) {
	if n.isSpecial() {
		return decimal.Decimal{}, errs.InvalidArgument(opDecimal, "cannot convert "+n.String()+" to decimal")
	}
	return decimal.NewFromString(n.String())
}

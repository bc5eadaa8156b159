package pgwire

import (
	"math/big"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5/pgtype"

	"github.com/coachpo/pgnumeric/errs"
	"github.com/coachpo/pgnumeric/numeric"
)

const (
	opNumericValue = "pgwire.NumericValue"
	opScanNumeric  = "pgwire.ScanNumeric"
)

// Value carries a nullable numeric through pgx v5. It satisfies
// pgtype.NumericValuer and pgtype.NumericScanner, so query arguments and
// scan targets of this type use the native numeric codec in both text and
// binary formats.
type Value struct {
	Numeric numeric.Numeric
	Valid   bool
}

// NewValue wraps a numeric in a non-null Value.
func NewValue(n numeric.Numeric) Value {
	return Value{Numeric: n, Valid: true}
}

// NumericValue implements pgtype.NumericValuer.
func (v Value) NumericValue() (pgtype.Numeric, error) {
	if !v.Valid {
		return pgtype.Numeric{}, nil
	}
	n := v.Numeric
	switch {
	case n.IsNaN():
		return pgtype.Numeric{NaN: true, Valid: true}, nil
	case n.IsInf(1):
		return pgtype.Numeric{InfinityModifier: pgtype.Infinity, Valid: true}, nil
	case n.IsInf(-1):
		return pgtype.Numeric{InfinityModifier: pgtype.NegativeInfinity, Valid: true}, nil
	}

	// The canonical text form carries exactly Scale() fraction digits, so
	// dropping the point yields the mantissa of value * 10^Scale().
	mantissa := strings.Replace(n.String(), ".", "", 1)
	bi, ok := new(big.Int).SetString(mantissa, 10)
	if !ok {
		return pgtype.Numeric{}, errs.New(opNumericValue, errs.CodeInternal,
			errs.WithMessage("unparseable mantissa"),
			errs.WithInput(n.String()))
	}
	return pgtype.Numeric{Int: bi, Exp: -int32(n.Scale()), Valid: true}, nil
}

// ScanNumeric implements pgtype.NumericScanner.
func (v *Value) ScanNumeric(src pgtype.Numeric) error {
	if !src.Valid {
		*v = Value{}
		return nil
	}
	switch {
	case src.NaN:
		*v = Value{Numeric: numeric.NaN(), Valid: true}
		return nil
	case src.InfinityModifier == pgtype.Infinity:
		*v = Value{Numeric: numeric.Inf(1), Valid: true}
		return nil
	case src.InfinityModifier == pgtype.NegativeInfinity:
		*v = Value{Numeric: numeric.Inf(-1), Valid: true}
		return nil
	}
	if src.Int == nil {
		return errs.New(opScanNumeric, errs.CodeInvalidArgument,
			errs.WithMessage("finite numeric without mantissa"))
	}

	lit := src.Int.String() + "e" + strconv.FormatInt(int64(src.Exp), 10)
	n, err := numeric.Parse(lit)
	if err != nil {
		return errs.New(opScanNumeric, errs.CodeOf(err),
			errs.WithMessage("numeric out of supported range"),
			errs.WithInput(lit),
			errs.WithCause(err))
	}
	*v = Value{Numeric: n, Valid: true}
	return nil
}

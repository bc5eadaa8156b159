package aggregate

import (
	"strconv"

	"github.com/coachpo/pgnumeric/errs"
	"github.com/coachpo/pgnumeric/internal/int128"
	"github.com/coachpo/pgnumeric/numeric"
)

const (
	opInt128New     = "aggregate.NewInt128Accumulator"
	opInt128Add     = "aggregate.Int128Add"
	opInt128Combine = "aggregate.Int128Combine"
)

// Int128Accumulator is the integer fast path of Accumulator. Inputs are
// shifted to a fixed declared scale and summed in a signed 128-bit
// integer, which is exact until an input or the running sum leaves that
// representation; Add then reports an overflow error and the caller falls
// back to the general State.
type Int128Accumulator struct {
	scale     int
	scaleUp   numeric.Numeric
	scaleDown numeric.Numeric

	n         int64
	sum       int128.Int128
	nanCount  int64
	pInfCount int64
	nInfCount int64
}

// NewInt128Accumulator returns a fast-path accumulator for inputs whose
// display scale never exceeds scale.
func NewInt128Accumulator(scale int) (*Int128Accumulator, error) {
	if scale < 0 || scale > numeric.MaxDisplayScale {
		return nil, errs.New(opInt128New, errs.CodeInvalidArgument,
			errs.WithMessage("accumulator scale out of range"),
			errs.WithInput(strconv.Itoa(scale)))
	}
	return &Int128Accumulator{
		scale:     scale,
		scaleUp:   numeric.MustParse("1e" + strconv.Itoa(scale)),
		scaleDown: numeric.MustParse("1e-" + strconv.Itoa(scale)),
	}, nil
}

// scaled converts v to its integer representation at the accumulator
// scale.
func (a *Int128Accumulator) scaled(v numeric.Numeric) (int128.Int128, error) {
	shifted, err := v.Mul(a.scaleUp)
	if err != nil {
		return int128.Int128{}, err
	}
	hi, lo, err := shifted.Int128()
	if err != nil {
		return int128.Int128{}, errs.New(opInt128Add, errs.CodeOverflow,
			errs.WithMessage("input exceeds 128-bit accumulator range"),
			errs.WithInput(v.String()),
			errs.WithCause(err))
	}
	return int128.FromParts(hi, lo), nil
}

// Add folds v into the running sum. An error means the fast path cannot
// represent the input or the new sum; the accumulator is left unchanged
// and the caller should migrate to a State.
func (a *Int128Accumulator) Add(v numeric.Numeric) error {
	switch {
	case v.IsNaN():
		a.nanCount++
		return nil
	case v.IsInf(1):
		a.pInfCount++
		return nil
	case v.IsInf(-1):
		a.nInfCount++
		return nil
	}
	if v.Scale() > a.scale {
		return errs.New(opInt128Add, errs.CodeOutOfRange,
			errs.WithMessage("input scale exceeds accumulator scale"),
			errs.WithInput(v.String()))
	}
	x, err := a.scaled(v)
	if err != nil {
		return err
	}
	sum, ok := a.sum.AddCheck(x)
	if !ok {
		return errs.New(opInt128Add, errs.CodeOverflow,
			errs.WithMessage("sum exceeds 128-bit accumulator range"))
	}
	a.sum = sum
	a.n++
	return nil
}

// Remove subtracts a previously added value. It reports false when the
// input does not fit the fast path, which a prior successful Add rules
// out.
func (a *Int128Accumulator) Remove(v numeric.Numeric) bool {
	switch {
	case v.IsNaN():
		a.nanCount--
		return true
	case v.IsInf(1):
		a.pInfCount--
		return true
	case v.IsInf(-1):
		a.nInfCount--
		return true
	}
	if v.Scale() > a.scale {
		return false
	}
	x, err := a.scaled(v)
	if err != nil {
		return false
	}
	sum, ok := a.sum.SubCheck(x)
	if !ok {
		return false
	}
	a.sum = sum
	a.n--
	return true
}

// Combine folds the partial aggregate other into a. The accumulators must
// share one scale.
func (a *Int128Accumulator) Combine(other *Int128Accumulator) error {
	if other.scale != a.scale {
		return errs.New(opInt128Combine, errs.CodeInvalidArgument,
			errs.WithMessage("accumulator scales differ"),
			errs.WithDetail("left", strconv.Itoa(a.scale)),
			errs.WithDetail("right", strconv.Itoa(other.scale)))
	}
	sum, ok := a.sum.AddCheck(other.sum)
	if !ok {
		return errs.New(opInt128Combine, errs.CodeOverflow,
			errs.WithMessage("sum exceeds 128-bit accumulator range"))
	}
	a.sum = sum
	a.n += other.n
	a.nanCount += other.nanCount
	a.pInfCount += other.pInfCount
	a.nInfCount += other.nInfCount
	return nil
}

// Count returns the number of accumulated inputs, non-finite ones included.
func (a *Int128Accumulator) Count() int64 {
	return a.n + a.nanCount + a.pInfCount + a.nInfCount
}

func (a *Int128Accumulator) total() (numeric.Numeric, error) {
	return numeric.FromInt128(a.sum.Hi(), a.sum.Lo()).Mul(a.scaleDown)
}

// Sum returns the running total at the accumulator scale, NaN when the
// aggregate saw no inputs.
func (a *Int128Accumulator) Sum() (numeric.Numeric, error) {
	if a.Count() == 0 {
		return numeric.NaN(), nil
	}
	if res, ok := foldSpecials(a.nanCount, a.pInfCount, a.nInfCount); ok {
		return res, nil
	}
	return a.total()
}

// Avg returns the mean of the accumulated values, NaN when the aggregate
// saw no inputs.
func (a *Int128Accumulator) Avg() (numeric.Numeric, error) {
	if a.Count() == 0 {
		return numeric.NaN(), nil
	}
	if res, ok := foldSpecials(a.nanCount, a.pInfCount, a.nInfCount); ok {
		return res, nil
	}
	total, err := a.total()
	if err != nil {
		return numeric.Numeric{}, err
	}
	return total.Div(numeric.FromInt64(a.n))
}

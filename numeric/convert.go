package numeric

import (
	"math"
	"strconv"

	"github.com/coachpo/pgnumeric/errs"
	"github.com/coachpo/pgnumeric/internal/int128"
)

const (
	opInt64      = "numeric.Int64"
	opInt32      = "numeric.Int32"
	opInt16      = "numeric.Int16"
	opUint64     = "numeric.Uint64"
	opInt128     = "numeric.Int128"
	opFloat64    = "numeric.Float64"
	opFloat32    = "numeric.Float32"
	opFromInt64  = "numeric.FromInt64"
	opFromUint64 = "numeric.FromUint64"
	opFromInt128 = "numeric.FromInt128"
)

// varFromUint64 builds a variable holding val with display scale 0.
func varFromUint64(val uint64) variable {
	var v variable
	if val == 0 {
		v.setZero(0)
		return v
	}
	v.sign = signPos

	var buf [5]int16 // a uint64 needs at most 20 decimal digits
	i := len(buf)
	for val > 0 {
		i--
		buf[i] = int16(val % nbase)
		val /= nbase
	}
	v.digits = append([]int16(nil), buf[i:]...)
	v.ndigits = len(v.digits)
	v.weight = v.ndigits - 1
	return v
}

func varFromInt64(val int64) variable {
	if val >= 0 {
		return varFromUint64(uint64(val))
	}
	v := varFromUint64(-uint64(val))
	v.sign = signNeg
	return v
}

// varFromInt128 builds a variable holding the signed 128-bit value x.
func varFromInt128(x int128.Int128) variable {
	var v variable
	if x.IsZero() {
		v.setZero(0)
		return v
	}
	v.sign = signPos
	if x.Sign() < 0 {
		v.sign = signNeg
	}

	var buf [10]int16 // an int128 needs at most 39 decimal digits
	i := len(buf)
	qhi, qlo, rem := x.QuoRemSmall(nbase)
	for {
		i--
		buf[i] = int16(rem)
		if qhi == 0 && qlo == 0 {
			break
		}
		qhi, qlo, rem = int128.FromParts(int64(qhi), qlo).QuoRemSmall(nbase)
	}
	v.digits = append([]int16(nil), buf[i:]...)
	v.ndigits = len(v.digits)
	v.weight = v.ndigits - 1
	return v
}

// int64FromVar converts v, rounded to the nearest integer, to an int64.
// ok is false when the value does not fit.
func int64FromVar(v *variable) (val int64, ok bool) {
	rounded := v.clone()
	rounded.round(0)
	rounded.strip()
	if rounded.ndigits == 0 {
		return 0, true
	}

	// Accumulate negatively so that the minimum int64 stays representable.
	// Stripped trailing zero digits still count toward the weight.
	val = -int64(rounded.digits[0])
	for i := 1; i <= rounded.weight; i++ {
		if val < math.MinInt64/nbase {
			return 0, false
		}
		val *= nbase
		if i < rounded.ndigits {
			d := int64(rounded.digits[i])
			if val < math.MinInt64+d {
				return 0, false
			}
			val -= d
		}
	}

	if rounded.sign != signNeg {
		if val == math.MinInt64 {
			return 0, false
		}
		val = -val
	}
	return val, true
}

func uint64FromVar(v *variable) (val uint64, ok bool) {
	rounded := v.clone()
	rounded.round(0)
	rounded.strip()
	if rounded.ndigits == 0 {
		return 0, true
	}
	if rounded.sign == signNeg {
		return 0, false
	}

	val = uint64(rounded.digits[0])
	for i := 1; i <= rounded.weight; i++ {
		if val > math.MaxUint64/nbase {
			return 0, false
		}
		val *= nbase
		if i < rounded.ndigits {
			d := uint64(rounded.digits[i])
			if val > math.MaxUint64-d {
				return 0, false
			}
			val += d
		}
	}
	return val, true
}

func int128FromVar(v *variable) (int128.Int128, bool) {
	rounded := v.clone()
	rounded.round(0)
	rounded.strip()
	if rounded.ndigits == 0 {
		return int128.Int128{}, true
	}

	val := int128.FromInt64(-int64(rounded.digits[0]))
	for i := 1; i <= rounded.weight; i++ {
		var ok bool
		val, ok = val.MulSmall(nbase)
		if !ok {
			return int128.Int128{}, false
		}
		if i < rounded.ndigits {
			val, ok = val.SubCheck(int128.FromInt64(int64(rounded.digits[i])))
			if !ok {
				return int128.Int128{}, false
			}
		}
	}

	if rounded.sign != signNeg {
		neg := val.Neg()
		if neg.Sign() < 0 {
			return int128.Int128{}, false
		}
		return neg, true
	}
	return val, true
}

func (n Numeric) toInt64(op, typ string, lo, hi int64) (int64, error) {
	if n.sign == signNaN {
		return 0, errs.OutOfRange(op, "cannot convert NaN to "+typ)
	}
	if n.isSpecial() {
		return 0, errs.OutOfRange(op, "cannot convert infinity to "+typ)
	}
	v := n.alias()
	val, ok := int64FromVar(&v)
	if !ok || val < lo || val > hi {
		return 0, errs.OutOfRange(op, typ+" out of range")
	}
	return val, nil
}

// Int64 returns n rounded to the nearest integer as an int64.
func (n Numeric) Int64() (int64, error) {
	return n.toInt64(opInt64, "bigint", math.MinInt64, math.MaxInt64)
}

// Int32 returns n rounded to the nearest integer as an int32.
func (n Numeric) Int32() (int32, error) {
	val, err := n.toInt64(opInt32, "integer", math.MinInt32, math.MaxInt32)
	return int32(val), err
}

// Int16 returns n rounded to the nearest integer as an int16.
func (n Numeric) Int16() (int16, error) {
	val, err := n.toInt64(opInt16, "smallint", math.MinInt16, math.MaxInt16)
	return int16(val), err
}

// Uint64 returns n rounded to the nearest integer as a uint64. Negative
// values are out of range.
func (n Numeric) Uint64() (uint64, error) {
	if n.sign == signNaN {
		return 0, errs.OutOfRange(opUint64, "cannot convert NaN to unsigned bigint")
	}
	if n.isSpecial() {
		return 0, errs.OutOfRange(opUint64, "cannot convert infinity to unsigned bigint")
	}
	v := n.alias()
	val, ok := uint64FromVar(&v)
	if !ok {
		return 0, errs.OutOfRange(opUint64, "unsigned bigint out of range")
	}
	return val, nil
}

// Int128 returns n rounded to the nearest integer as the two's complement
// halves of a signed 128-bit value.
func (n Numeric) Int128() (hi int64, lo uint64, err error) {
	if n.sign == signNaN {
		return 0, 0, errs.OutOfRange(opInt128, "cannot convert NaN to int128")
	}
	if n.isSpecial() {
		return 0, 0, errs.OutOfRange(opInt128, "cannot convert infinity to int128")
	}
	v := n.alias()
	x, ok := int128FromVar(&v)
	if !ok {
		return 0, 0, errs.OutOfRange(opInt128, "int128 out of range")
	}
	return x.Hi(), x.Lo(), nil
}

// Float64 returns the closest float64 to n. Infinities and NaN convert to
// their float counterparts; finite values beyond the float64 range are an
// error.
func (n Numeric) Float64() (float64, error) {
	switch n.sign {
	case signNaN:
		return math.NaN(), nil
	case signPInf:
		return math.Inf(1), nil
	case signNInf:
		return math.Inf(-1), nil
	}
	// The formatted value always parses; the only possible error is
	// ErrRange. Underflow keeps the rounded value.
	f, err := strconv.ParseFloat(n.String(), 64)
	if err != nil && math.IsInf(f, 0) {
		return 0, errs.OutOfRange(opFloat64, "value out of range: overflow")
	}
	return f, nil
}

// Float32 returns the closest float32 to n.
func (n Numeric) Float32() (float32, error) {
	switch n.sign {
	case signNaN:
		return float32(math.NaN()), nil
	case signPInf:
		return float32(math.Inf(1)), nil
	case signNInf:
		return float32(math.Inf(-1)), nil
	}
	f, err := strconv.ParseFloat(n.String(), 32)
	if err != nil && math.IsInf(f, 0) {
		return 0, errs.OutOfRange(opFloat32, "value out of range: overflow")
	}
	return float32(f), nil
}

// FromInt64 converts an int64 to a Numeric with display scale 0.
func FromInt64(val int64) Numeric {
	v := varFromInt64(val)
	n, _ := makeNumeric(&v, opFromInt64) // at most 5 digits, cannot overflow
	return n
}

// FromInt32 converts an int32 to a Numeric with display scale 0.
func FromInt32(val int32) Numeric { return FromInt64(int64(val)) }

// FromInt16 converts an int16 to a Numeric with display scale 0.
func FromInt16(val int16) Numeric { return FromInt64(int64(val)) }

// FromUint64 converts a uint64 to a Numeric with display scale 0.
func FromUint64(val uint64) Numeric {
	v := varFromUint64(val)
	n, _ := makeNumeric(&v, opFromUint64)
	return n
}

// FromInt128 converts the signed 128-bit value with the given two's
// complement halves to a Numeric with display scale 0.
func FromInt128(hi int64, lo uint64) Numeric {
	v := varFromInt128(int128.FromParts(hi, lo))
	n, _ := makeNumeric(&v, opFromInt128)
	return n
}

// FromFloat64 converts a float64 to a Numeric, keeping 15 significant
// digits the way the text form of a double does. NaN and infinities map to
// the numeric specials.
func FromFloat64(val float64) Numeric {
	if math.IsNaN(val) {
		return numNaN
	}
	if math.IsInf(val, 0) {
		if val < 0 {
			return numNInf
		}
		return numPInf
	}
	n, _ := Parse(strconv.FormatFloat(val, 'g', 15, 64))
	return n
}

// FromFloat32 converts a float32 to a Numeric, keeping 6 significant digits.
func FromFloat32(val float32) Numeric {
	f := float64(val)
	if math.IsNaN(f) {
		return numNaN
	}
	if math.IsInf(f, 0) {
		if f < 0 {
			return numNInf
		}
		return numPInf
	}
	n, _ := Parse(strconv.FormatFloat(f, 'g', 6, 32))
	return n
}

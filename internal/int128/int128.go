// Package int128 implements the minimal signed 128-bit integer arithmetic used
// for exact aggregate accumulation of 64-bit inputs.
package int128

import "math/bits"

// Int128 is a signed 128-bit integer in two's complement form.
type Int128 struct {
	hi int64
	lo uint64
}

// FromInt64 sign-extends v into an Int128.
func FromInt64(v int64) Int128 {
	hi := int64(0)
	if v < 0 {
		hi = -1
	}
	return Int128{hi: hi, lo: uint64(v)}
}

// FromParts assembles an Int128 from its raw two's complement halves.
func FromParts(hi int64, lo uint64) Int128 {
	return Int128{hi: hi, lo: lo}
}

// Hi returns the upper 64 bits.
func (x Int128) Hi() int64 { return x.hi }

// Lo returns the lower 64 bits.
func (x Int128) Lo() uint64 { return x.lo }

// IsZero reports whether x is zero.
func (x Int128) IsZero() bool { return x.hi == 0 && x.lo == 0 }

// Sign returns -1, 0, or +1 according to the sign of x.
func (x Int128) Sign() int {
	if x.hi < 0 {
		return -1
	}
	if x.hi == 0 && x.lo == 0 {
		return 0
	}
	return 1
}

// Neg returns -x. Negating the minimum value wraps, matching two's complement.
func (x Int128) Neg() Int128 {
	lo, borrow := bits.Sub64(0, x.lo, 0)
	hi, _ := bits.Sub64(0, uint64(x.hi), borrow)
	return Int128{hi: int64(hi), lo: lo}
}

// Add returns x + y with wraparound semantics.
func (x Int128) Add(y Int128) Int128 {
	lo, carry := bits.Add64(x.lo, y.lo, 0)
	hi, _ := bits.Add64(uint64(x.hi), uint64(y.hi), carry)
	return Int128{hi: int64(hi), lo: lo}
}

// Sub returns x - y with wraparound semantics.
func (x Int128) Sub(y Int128) Int128 {
	lo, borrow := bits.Sub64(x.lo, y.lo, 0)
	hi, _ := bits.Sub64(uint64(x.hi), uint64(y.hi), borrow)
	return Int128{hi: int64(hi), lo: lo}
}

// AddInt64 returns x + v.
func (x Int128) AddInt64(v int64) Int128 {
	return x.Add(FromInt64(v))
}

// SubInt64 returns x - v.
func (x Int128) SubInt64(v int64) Int128 {
	return x.Sub(FromInt64(v))
}

// Cmp compares x and y, returning -1, 0, or +1.
func (x Int128) Cmp(y Int128) int {
	if x.hi != y.hi {
		if x.hi < y.hi {
			return -1
		}
		return 1
	}
	if x.lo != y.lo {
		if x.lo < y.lo {
			return -1
		}
		return 1
	}
	return 0
}

// MulInt64 returns the full signed 128-bit product of a and b.
func MulInt64(a, b int64) Int128 {
	neg := false
	ua, ub := uint64(a), uint64(b)
	if a < 0 {
		neg = !neg
		ua = uint64(-a)
	}
	if b < 0 {
		neg = !neg
		ub = uint64(-b)
	}
	hi, lo := bits.Mul64(ua, ub)
	p := Int128{hi: int64(hi), lo: lo}
	if neg {
		p = p.Neg()
	}
	return p
}

// Int64 narrows x to int64, reporting whether the value fits.
func (x Int128) Int64() (int64, bool) {
	v := int64(x.lo)
	if (v >= 0 && x.hi == 0) || (v < 0 && x.hi == -1) {
		return v, true
	}
	return 0, false
}

// Abs returns |x| as unsigned halves. The minimum value maps onto its own
// two's complement magnitude, which is representable unsigned.
func (x Int128) Abs() (hi uint64, lo uint64) {
	v := x
	if x.hi < 0 {
		v = x.Neg()
	}
	return uint64(v.hi), v.lo
}

// QuoRemSmall divides |x| by the small positive divisor d, returning the
// unsigned quotient halves and remainder. Callers handle the sign separately.
func (x Int128) QuoRemSmall(d uint64) (qhi uint64, qlo uint64, rem uint64) {
	ahi, alo := x.Abs()
	qhi = ahi / d
	r := ahi % d
	qlo, rem = bits.Div64(r, alo, d)
	return qhi, qlo, rem
}

// MulSmall returns x * m for a small positive multiplier, reporting whether
// the product stays within the signed 128-bit range.
func (x Int128) MulSmall(m uint64) (Int128, bool) {
	neg := x.hi < 0
	ahi, alo := x.Abs()

	h2, l2 := bits.Mul64(ahi, m)
	if h2 != 0 {
		return Int128{}, false
	}
	carryHi, lo := bits.Mul64(alo, m)
	hi, carry := bits.Add64(l2, carryHi, 0)
	if carry != 0 {
		return Int128{}, false
	}

	// The magnitude must stay below 2^127, except that exactly 2^127 is
	// representable when the result is negative.
	if hi >= 1<<63 && !(neg && hi == 1<<63 && lo == 0) {
		return Int128{}, false
	}
	p := Int128{hi: int64(hi), lo: lo}
	if neg {
		p = p.Neg()
	}
	return p, true
}

// AddCheck returns x + y, reporting whether the sum stays within the signed
// 128-bit range.
func (x Int128) AddCheck(y Int128) (Int128, bool) {
	s := x.Add(y)
	if (x.hi < 0) == (y.hi < 0) && (s.hi < 0) != (x.hi < 0) {
		return Int128{}, false
	}
	return s, true
}

// SubCheck returns x - y, reporting whether the difference stays within the
// signed 128-bit range.
func (x Int128) SubCheck(y Int128) (Int128, bool) {
	d := x.Sub(y)
	if (x.hi < 0) != (y.hi < 0) && (d.hi < 0) != (x.hi < 0) {
		return Int128{}, false
	}
	return d, true
}

package numeric

import (
	"encoding/binary"
	"hash/fnv"
)

// cmpAbs compares the absolute values of v1 and v2, returning -1, 0 or 1.
func cmpAbs(v1, v2 *variable) int {
	return cmpAbsCommon(v1.digits, v1.ndigits, v1.weight, v2.digits, v2.ndigits, v2.weight)
}

func cmpAbsCommon(d1 []int16, n1, w1 int, d2 []int16, n2, w2 int) int {
	i1, i2 := 0, 0

	// Check any digits before the first common digit.
	for w1 > w2 && i1 < n1 {
		if d1[i1] != 0 {
			return 1
		}
		i1++
		w1--
	}
	for w2 > w1 && i2 < n2 {
		if d2[i2] != 0 {
			return -1
		}
		i2++
		w2--
	}

	if w1 == w2 {
		for i1 < n1 && i2 < n2 {
			stat := d1[i1] - d2[i2]
			i1++
			i2++
			if stat != 0 {
				if stat > 0 {
					return 1
				}
				return -1
			}
		}
	}

	// One side has run out of digits; any remaining nonzero digit makes the
	// other side larger.
	for i1 < n1 {
		if d1[i1] != 0 {
			return 1
		}
		i1++
	}
	for i2 < n2 {
		if d2[i2] != 0 {
			return -1
		}
		i2++
	}

	return 0
}

// cmpVar compares two finite values, returning -1, 0 or 1.
func cmpVar(v1, v2 *variable) int {
	if v1.ndigits == 0 {
		if v2.ndigits == 0 {
			return 0
		}
		if v2.sign == signNeg {
			return 1
		}
		return -1
	}
	if v2.ndigits == 0 {
		if v1.sign == signPos {
			return 1
		}
		return -1
	}

	if v1.sign == signPos {
		if v2.sign == signNeg {
			return 1
		}
		return cmpAbs(v1, v2)
	}

	if v2.sign == signPos {
		return -1
	}

	return cmpAbs(v2, v1)
}

// Cmp compares n and y under the sort ordering, returning -1, 0 or 1. All
// NaNs compare equal to each other and larger than every other value,
// including positive infinity; this gives a consistent total order rather
// than IEEE semantics.
func (n Numeric) Cmp(y Numeric) int {
	switch {
	case n.isSpecial():
		switch n.sign {
		case signNaN:
			if y.sign == signNaN {
				return 0
			}
			return 1
		case signPInf:
			switch y.sign {
			case signNaN:
				return -1
			case signPInf:
				return 0
			default:
				return 1
			}
		default: // -Inf
			if y.sign == signNInf {
				return 0
			}
			return -1
		}
	case y.isSpecial():
		if y.sign == signNInf {
			return 1
		}
		return -1 // y is NaN or +Inf
	default:
		vx, vy := n.alias(), y.alias()
		return cmpVar(&vx, &vy)
	}
}

// Equal reports whether n and y represent the same value, ignoring display
// scale. NaN equals NaN.
func (n Numeric) Equal(y Numeric) bool { return n.Cmp(y) == 0 }

// Hash returns a hash of n's value. Values that compare equal hash equal
// regardless of display scale; all special values hash to 0.
func (n Numeric) Hash() uint32 {
	if n.isSpecial() {
		return 0
	}

	// Skip zero digits at both ends so that equal values with different
	// stored paddings hash identically.
	digits := n.digits
	weight := int32(n.weight)
	start, stop := 0, len(digits)
	for start < stop && digits[start] == 0 {
		start++
		weight--
	}
	if start == stop {
		return ^uint32(0)
	}
	for digits[stop-1] == 0 {
		stop--
	}

	h := fnv.New32a()
	var b [2]byte
	for _, d := range digits[start:stop] {
		binary.BigEndian.PutUint16(b[:], uint16(d))
		h.Write(b[:])
	}
	return h.Sum32() ^ uint32(weight)
}

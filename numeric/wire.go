package numeric

import (
	"encoding/binary"

	"github.com/coachpo/pgnumeric/errs"
)

const opUnmarshalBinary = "numeric.UnmarshalBinary"

// MarshalBinary implements encoding.BinaryMarshaler using the external
// binary format: big-endian ndigits, weight, sign and dscale words followed
// by the base-10000 digits.
func (n Numeric) MarshalBinary() ([]byte, error) {
	return n.AppendBinary(make([]byte, 0, 8+2*len(n.digits)))
}

// AppendBinary implements encoding.BinaryAppender.
func (n Numeric) AppendBinary(b []byte) ([]byte, error) {
	b = binary.BigEndian.AppendUint16(b, uint16(len(n.digits)))
	b = binary.BigEndian.AppendUint16(b, uint16(n.weight))
	b = binary.BigEndian.AppendUint16(b, n.sign)
	b = binary.BigEndian.AppendUint16(b, uint16(n.dscale))
	for _, d := range n.digits {
		b = binary.BigEndian.AppendUint16(b, uint16(d))
	}
	return b, nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler. Field validation
// follows what a wire receiver must accept: any int16 weight, the five sign
// codes, scales within the storable mask, digits below the base. Hidden
// digits beyond the declared scale are truncated so the value round-trips.
func (n *Numeric) UnmarshalBinary(b []byte) error {
	if len(b) < 8 {
		return errs.InvalidArgument(opUnmarshalBinary, "invalid length in external numeric value")
	}
	ndigits := int(binary.BigEndian.Uint16(b[0:2]))
	if len(b) != 8+2*ndigits {
		return errs.InvalidArgument(opUnmarshalBinary, "invalid length in external numeric value")
	}
	weight := int16(binary.BigEndian.Uint16(b[2:4]))
	sign := binary.BigEndian.Uint16(b[4:6])
	switch sign {
	case signPos, signNeg, signNaN, signPInf, signNInf:
	default:
		return errs.InvalidArgument(opUnmarshalBinary, "invalid sign in external numeric value")
	}
	dscale := binary.BigEndian.Uint16(b[6:8])
	if dscale&maxStoredDscale != dscale {
		return errs.InvalidArgument(opUnmarshalBinary, "invalid scale in external numeric value")
	}

	digits := make([]int16, ndigits)
	for i := range digits {
		d := int16(binary.BigEndian.Uint16(b[8+2*i:]))
		if d < 0 || d >= nbase {
			return errs.InvalidArgument(opUnmarshalBinary, "invalid digit in external numeric value")
		}
		digits[i] = d
	}

	switch sign {
	case signNaN:
		*n = numNaN
		return nil
	case signPInf:
		*n = numPInf
		return nil
	case signNInf:
		*n = numNInf
		return nil
	}

	v := variable{
		ndigits: ndigits,
		weight:  int(weight),
		sign:    sign,
		dscale:  int(dscale),
		digits:  digits,
	}
	v.trunc(int(dscale))
	out, err := makeNumeric(&v, opUnmarshalBinary)
	if err != nil {
		return err
	}
	*n = out
	return nil
}

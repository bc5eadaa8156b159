package numeric

import (
	"encoding/binary"

	"github.com/coachpo/pgnumeric/errs"
)

const opUnpack = "numeric.Unpack"

// The packed storage form has a 2-byte header followed by the base-10000
// digits, 2 bytes each, all little-endian. Values with a display scale of at
// most 63 and a weight in [-64, 63] use the short header, which folds the
// sign, scale and weight into the header word. Everything else uses the long
// header, which spends a second word on the weight. NaN and the infinities
// are a bare special header.
const (
	packedShort   = 0x8000
	packedSpecial = 0xC000

	packedShortSignMask       = 0x2000
	packedShortDscaleMask     = 0x1F80
	packedShortDscaleShift    = 7
	packedShortDscaleMax      = packedShortDscaleMask >> packedShortDscaleShift
	packedShortWeightSignMask = 0x0040
	packedShortWeightMask     = 0x003F
	packedShortWeightMax      = packedShortWeightMask
	packedShortWeightMin      = -(packedShortWeightMask + 1)
)

func canBeShort(dscale, weight int) bool {
	return dscale <= packedShortDscaleMax &&
		weight >= packedShortWeightMin && weight <= packedShortWeightMax
}

// PackedSize returns the exact number of bytes AppendPacked will add.
func (n Numeric) PackedSize() int {
	if n.isSpecial() {
		return 2
	}
	if canBeShort(int(n.dscale), int(n.weight)) {
		return 2 + 2*len(n.digits)
	}
	return 4 + 2*len(n.digits)
}

// Pack encodes n in the packed storage form.
func (n Numeric) Pack() []byte {
	return n.AppendPacked(make([]byte, 0, n.PackedSize()))
}

// AppendPacked appends the packed storage form of n to dst. Values are
// already canonical (no leading or trailing zero digits), so this is a
// straight encode.
func (n Numeric) AppendPacked(dst []byte) []byte {
	switch n.sign {
	case signNaN, signPInf, signNInf:
		return binary.LittleEndian.AppendUint16(dst, n.sign)
	}

	weight, dscale := int(n.weight), int(n.dscale)
	if canBeShort(dscale, weight) {
		header := uint16(packedShort)
		if n.sign == signNeg {
			header |= packedShortSignMask
		}
		header |= uint16(dscale) << packedShortDscaleShift
		if weight < 0 {
			header |= packedShortWeightSignMask
		}
		header |= uint16(weight & packedShortWeightMask)
		dst = binary.LittleEndian.AppendUint16(dst, header)
	} else {
		dst = binary.LittleEndian.AppendUint16(dst, n.sign|uint16(dscale))
		dst = binary.LittleEndian.AppendUint16(dst, uint16(n.weight))
	}

	for _, d := range n.digits {
		dst = binary.LittleEndian.AppendUint16(dst, uint16(d))
	}
	return dst
}

// Unpack decodes a value produced by Pack or AppendPacked. The whole of b
// must belong to the value; use PackedSize on the encode side to slice
// concatenated values apart.
func Unpack(b []byte) (Numeric, error) {
	if len(b) < 2 || len(b)%2 != 0 {
		return Numeric{}, errs.InvalidArgument(opUnpack, "malformed packed numeric")
	}
	header := binary.LittleEndian.Uint16(b)

	if header&packedSpecial == packedSpecial {
		if len(b) != 2 {
			return Numeric{}, errs.InvalidArgument(opUnpack, "malformed packed numeric")
		}
		switch header {
		case signNaN:
			return numNaN, nil
		case signPInf:
			return numPInf, nil
		case signNInf:
			return numNInf, nil
		}
		return Numeric{}, errs.InvalidArgument(opUnpack, "invalid packed numeric header")
	}

	var v variable
	body := b[2:]
	if header&packedShort != 0 {
		v.sign = signPos
		if header&packedShortSignMask != 0 {
			v.sign = signNeg
		}
		v.dscale = int(header&packedShortDscaleMask) >> packedShortDscaleShift
		v.weight = int(header & packedShortWeightMask)
		if header&packedShortWeightSignMask != 0 {
			v.weight |= ^packedShortWeightMask
		}
	} else {
		if len(b) < 4 {
			return Numeric{}, errs.InvalidArgument(opUnpack, "malformed packed numeric")
		}
		v.sign = header & signNeg
		v.dscale = int(header & maxStoredDscale)
		v.weight = int(int16(binary.LittleEndian.Uint16(b[2:4])))
		body = b[4:]
	}

	v.ndigits = len(body) / 2
	v.digits = make([]int16, v.ndigits)
	for i := range v.digits {
		d := int16(binary.LittleEndian.Uint16(body[2*i:]))
		if d < 0 || d >= nbase {
			return Numeric{}, errs.InvalidArgument(opUnpack, "invalid digit in packed numeric")
		}
		v.digits[i] = d
	}
	return makeNumeric(&v, opUnpack)
}

package aggregate

import (
	"encoding/binary"

	"github.com/coachpo/pgnumeric/errs"
	"github.com/coachpo/pgnumeric/numeric"
)

const opUnmarshal = "aggregate.Unmarshal"

// Serialized state layout, big-endian: a one-byte flag set (bit 0 marks a
// sum of squares), the finite input count, each sum as a length-prefixed
// numeric wire value, then the scale bookkeeping and the non-finite input
// counters.
const stateFlagSumX2 = 0x01

func appendChunk(buf []byte, accum *numeric.SumAccum) ([]byte, error) {
	total, err := accum.Total()
	if err != nil {
		return nil, err
	}
	wire, err := total.MarshalBinary()
	if err != nil {
		return nil, err
	}
	buf = binary.BigEndian.AppendUint32(buf, uint32(len(wire)))
	return append(buf, wire...), nil
}

func marshalState(s *State, sumX2 *numeric.SumAccum) ([]byte, error) {
	var flags byte
	if sumX2 != nil {
		flags |= stateFlagSumX2
	}

	buf := make([]byte, 0, 64)
	buf = append(buf, flags)
	buf = binary.BigEndian.AppendUint64(buf, uint64(s.n))
	buf, err := appendChunk(buf, &s.sumX)
	if err != nil {
		return nil, err
	}
	if sumX2 != nil {
		buf, err = appendChunk(buf, sumX2)
		if err != nil {
			return nil, err
		}
	}
	buf = binary.BigEndian.AppendUint32(buf, uint32(s.maxScale))
	buf = binary.BigEndian.AppendUint64(buf, uint64(s.maxScaleCount))
	buf = binary.BigEndian.AppendUint64(buf, uint64(s.nanCount))
	buf = binary.BigEndian.AppendUint64(buf, uint64(s.pInfCount))
	buf = binary.BigEndian.AppendUint64(buf, uint64(s.nInfCount))
	return buf, nil
}

// MarshalBinary encodes the state for transfer between parallel workers.
func (s *State) MarshalBinary() ([]byte, error) {
	return marshalState(s, nil)
}

// MarshalBinary encodes the state, sum of squares included.
func (s *VarianceState) MarshalBinary() ([]byte, error) {
	return marshalState(&s.State, &s.sumX2)
}

type stateWire struct {
	flags byte
	n     int64
	sumX  numeric.Numeric
	sumX2 numeric.Numeric

	maxScale      int32
	maxScaleCount int64
	nanCount      int64
	pInfCount     int64
	nInfCount     int64
}

func malformed(msg string) error {
	return errs.New(opUnmarshal, errs.CodeInvalidSyntax, errs.WithMessage(msg))
}

func nextChunk(data []byte) (numeric.Numeric, []byte, error) {
	var v numeric.Numeric
	if len(data) < 4 {
		return v, nil, malformed("truncated aggregate state")
	}
	n := int(binary.BigEndian.Uint32(data))
	data = data[4:]
	if len(data) < n {
		return v, nil, malformed("truncated aggregate state")
	}
	if err := v.UnmarshalBinary(data[:n]); err != nil {
		return v, nil, err
	}
	if v.IsNaN() || v.IsInf(0) {
		return v, nil, malformed("non-finite sum in aggregate state")
	}
	return v, data[n:], nil
}

func decodeState(data []byte) (stateWire, error) {
	var w stateWire
	if len(data) < 1+8 {
		return w, malformed("truncated aggregate state")
	}
	w.flags = data[0]
	w.n = int64(binary.BigEndian.Uint64(data[1:]))
	data = data[9:]

	var err error
	w.sumX, data, err = nextChunk(data)
	if err != nil {
		return w, err
	}
	if w.flags&stateFlagSumX2 != 0 {
		w.sumX2, data, err = nextChunk(data)
		if err != nil {
			return w, err
		}
	}

	if len(data) != 4+4*8 {
		return w, malformed("invalid length in aggregate state")
	}
	w.maxScale = int32(binary.BigEndian.Uint32(data))
	w.maxScaleCount = int64(binary.BigEndian.Uint64(data[4:]))
	w.nanCount = int64(binary.BigEndian.Uint64(data[12:]))
	w.pInfCount = int64(binary.BigEndian.Uint64(data[20:]))
	w.nInfCount = int64(binary.BigEndian.Uint64(data[28:]))
	return w, nil
}

func (w *stateWire) state() State {
	var s State
	s.n = w.n
	s.maxScale = int(w.maxScale)
	s.maxScaleCount = w.maxScaleCount
	s.nanCount = w.nanCount
	s.pInfCount = w.pInfCount
	s.nInfCount = w.nInfCount
	s.sumX.Add(w.sumX)
	return s
}

// UnmarshalBinary replaces the state with one decoded from data.
func (s *State) UnmarshalBinary(data []byte) error {
	w, err := decodeState(data)
	if err != nil {
		return err
	}
	if w.flags&stateFlagSumX2 != 0 {
		return malformed("aggregate state kind mismatch")
	}
	*s = w.state()
	return nil
}

// UnmarshalBinary replaces the state with one decoded from data, which
// must carry a sum of squares.
func (s *VarianceState) UnmarshalBinary(data []byte) error {
	w, err := decodeState(data)
	if err != nil {
		return err
	}
	if w.flags&stateFlagSumX2 == 0 {
		return malformed("aggregate state kind mismatch")
	}
	s.State = w.state()
	s.sumX2 = numeric.SumAccum{}
	s.sumX2.Add(w.sumX2)
	return nil
}

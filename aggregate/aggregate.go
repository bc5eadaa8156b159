// Package aggregate implements running-state machinery for SQL aggregates
// over numeric values: SUM, AVG, VARIANCE and STDDEV in population and
// sample forms, with inverse transitions for sliding windows and
// combine/serialize support for parallel execution.
//
// Non-finite inputs are counted apart from the digit sums and folded back
// in when a result is produced: any NaN makes the result NaN, infinities
// of both signs make it NaN, and infinities of one sign make it that
// infinity. An aggregate that saw no inputs reports NaN, the library's
// stand-in for SQL NULL.
package aggregate

import (
	"github.com/coachpo/pgnumeric/numeric"
)

// Accumulator is the contract shared by the general-purpose state and the
// 128-bit integer fast path. Add folds one input value in. Remove undoes a
// previous Add and reports false when the state cannot guarantee an exact
// inverse, telling the caller to rebuild the aggregate from the remaining
// inputs. Count includes non-finite inputs.
type Accumulator interface {
	Add(v numeric.Numeric) error
	Remove(v numeric.Numeric) bool
	Count() int64
	Sum() (numeric.Numeric, error)
	Avg() (numeric.Numeric, error)
}

var (
	_ Accumulator = (*State)(nil)
	_ Accumulator = (*VarianceState)(nil)
	_ Accumulator = (*Int128Accumulator)(nil)
)

// NewAccumulator selects an Accumulator implementation: the 128-bit fast
// path when enabled and the declared input scale is usable, the general
// state otherwise.
func NewAccumulator(int128FastPath bool, scale int) Accumulator {
	if int128FastPath {
		if acc, err := NewInt128Accumulator(scale); err == nil {
			return acc
		}
	}
	return &State{}
}

// State accumulates numeric values for SUM and AVG. The zero value is an
// empty aggregate ready for use. A State must not be used concurrently;
// parallel workers each own one and meet through Combine or the binary
// serialization.
type State struct {
	n             int64
	sumX          numeric.SumAccum
	maxScale      int
	maxScaleCount int64
	nanCount      int64
	pInfCount     int64
	nInfCount     int64
}

// addSpecial counts a non-finite input, reporting whether v was one.
func (s *State) addSpecial(v numeric.Numeric) bool {
	switch {
	case v.IsNaN():
		s.nanCount++
	case v.IsInf(1):
		s.pInfCount++
	case v.IsInf(-1):
		s.nInfCount++
	default:
		return false
	}
	return true
}

// removeSpecial is the inverse of addSpecial.
func (s *State) removeSpecial(v numeric.Numeric) bool {
	switch {
	case v.IsNaN():
		s.nanCount--
	case v.IsInf(1):
		s.pInfCount--
	case v.IsInf(-1):
		s.nInfCount--
	default:
		return false
	}
	return true
}

// trackScale records v's display scale so Remove can tell whether the
// running maximum stays well defined.
func (s *State) trackScale(v numeric.Numeric) {
	switch {
	case v.Scale() > s.maxScale:
		s.maxScale = v.Scale()
		s.maxScaleCount = 1
	case v.Scale() == s.maxScale:
		s.maxScaleCount++
	}
}

// untrackScale undoes trackScale for one value. It reports false when v
// carries the maximum scale and is its last holder: the new maximum would
// be unknown, so the inverse transition must be refused.
func (s *State) untrackScale(v numeric.Numeric) bool {
	if v.Scale() == s.maxScale {
		if s.maxScaleCount > 1 || s.maxScale == 0 {
			s.maxScaleCount--
		} else {
			return false
		}
	}
	return true
}

// Add folds v into the running sum.
func (s *State) Add(v numeric.Numeric) error {
	if s.addSpecial(v) {
		return nil
	}
	s.trackScale(v)
	s.n++
	s.sumX.Add(v)
	return nil
}

// Remove undoes a previous Add of v. It reports false when the removal
// would leave the maximum-scale bookkeeping ambiguous; the caller must
// then rebuild the state from scratch.
func (s *State) Remove(v numeric.Numeric) bool {
	if s.removeSpecial(v) {
		return true
	}
	if !s.untrackScale(v) {
		return false
	}
	s.n--
	if s.n == 0 {
		s.sumX.Reset()
		return true
	}
	s.sumX.Add(v.Neg())
	return true
}

// Combine folds the partial aggregate other into s. other's value is
// unchanged, though its internal digit state may be renormalized in place.
func (s *State) Combine(other *State) {
	s.n += other.n
	s.nanCount += other.nanCount
	s.pInfCount += other.pInfCount
	s.nInfCount += other.nInfCount
	switch {
	case other.maxScale > s.maxScale:
		s.maxScale = other.maxScale
		s.maxScaleCount = other.maxScaleCount
	case other.maxScale == s.maxScale:
		s.maxScaleCount += other.maxScaleCount
	}
	s.sumX.Combine(&other.sumX)
}

// Count returns the number of accumulated inputs, non-finite ones included.
func (s *State) Count() int64 {
	return s.n + s.nanCount + s.pInfCount + s.nInfCount
}

// foldSpecials resolves the non-finite counters, reporting whether they
// decide the result on their own.
func foldSpecials(nan, pInf, nInf int64) (numeric.Numeric, bool) {
	switch {
	case nan > 0:
		return numeric.NaN(), true
	case pInf > 0 && nInf > 0:
		return numeric.NaN(), true
	case pInf > 0:
		return numeric.Inf(1), true
	case nInf > 0:
		return numeric.Inf(-1), true
	}
	return numeric.Numeric{}, false
}

// Sum returns the running total, NaN when the aggregate saw no inputs.
func (s *State) Sum() (numeric.Numeric, error) {
	if s.Count() == 0 {
		return numeric.NaN(), nil
	}
	if res, ok := foldSpecials(s.nanCount, s.pInfCount, s.nInfCount); ok {
		return res, nil
	}
	return s.sumX.Total()
}

// Avg returns the mean of the accumulated values, NaN when the aggregate
// saw no inputs.
func (s *State) Avg() (numeric.Numeric, error) {
	if s.Count() == 0 {
		return numeric.NaN(), nil
	}
	if res, ok := foldSpecials(s.nanCount, s.pInfCount, s.nInfCount); ok {
		return res, nil
	}
	total, err := s.sumX.Total()
	if err != nil {
		return numeric.Numeric{}, err
	}
	return total.Div(numeric.FromInt64(s.n))
}

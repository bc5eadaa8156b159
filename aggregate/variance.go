package aggregate

import (
	"github.com/coachpo/pgnumeric/numeric"
)

// VarianceState accumulates the running sum of squares alongside the
// running sum, supporting VARIANCE and STDDEV on top of SUM and AVG. The
// zero value is an empty aggregate ready for use.
type VarianceState struct {
	State
	sumX2 numeric.SumAccum
}

// Add folds v and its square into the running sums.
func (s *VarianceState) Add(v numeric.Numeric) error {
	if s.addSpecial(v) {
		return nil
	}
	x2, err := v.Mul(v)
	if err != nil {
		return err
	}
	s.trackScale(v)
	s.n++
	s.sumX.Add(v)
	s.sumX2.Add(x2)
	return nil
}

// Remove undoes a previous Add of v, reporting false when the state cannot
// guarantee an exact inverse.
func (s *VarianceState) Remove(v numeric.Numeric) bool {
	if s.removeSpecial(v) {
		return true
	}
	x2, err := v.Mul(v)
	if err != nil {
		return false
	}
	if !s.untrackScale(v) {
		return false
	}
	s.n--
	if s.n == 0 {
		s.sumX.Reset()
		s.sumX2.Reset()
		return true
	}
	s.sumX.Add(v.Neg())
	s.sumX2.Add(x2.Neg())
	return true
}

// Combine folds the partial aggregate other into s.
func (s *VarianceState) Combine(other *VarianceState) {
	s.State.Combine(&other.State)
	s.sumX2.Combine(&other.sumX2)
}

// stat computes variance or standard deviation in sample or population
// form using the N*sumX2 - sumX*sumX formulation. Any non-finite input
// makes the statistic NaN, as does an input count too small to define it.
func (s *VarianceState) stat(sample, stddev bool) (numeric.Numeric, error) {
	if s.Count() == 0 {
		return numeric.NaN(), nil
	}
	if s.nanCount > 0 || s.pInfCount > 0 || s.nInfCount > 0 {
		return numeric.NaN(), nil
	}
	if sample && s.n <= 1 {
		return numeric.NaN(), nil
	}

	vN := numeric.FromInt64(s.n)
	sumX, err := s.sumX.Total()
	if err != nil {
		return numeric.Numeric{}, err
	}
	sumX2, err := s.sumX2.Total()
	if err != nil {
		return numeric.Numeric{}, err
	}

	t1, err := vN.Mul(sumX2)
	if err != nil {
		return numeric.Numeric{}, err
	}
	t2, err := sumX.Mul(sumX)
	if err != nil {
		return numeric.Numeric{}, err
	}
	num, err := t1.Sub(t2)
	if err != nil {
		return numeric.Numeric{}, err
	}
	// Roundoff in the accumulated squares may drive the numerator slightly
	// negative when the true variance is zero.
	if num.Sign() <= 0 {
		return numeric.Zero(), nil
	}

	var den numeric.Numeric
	if sample {
		den, err = vN.Mul(numeric.FromInt64(s.n - 1))
	} else {
		den, err = vN.Mul(vN)
	}
	if err != nil {
		return numeric.Numeric{}, err
	}
	variance, err := num.Div(den)
	if err != nil || !stddev {
		return variance, err
	}
	return variance.SqrtToScale(variance.Scale())
}

// VarPop returns the population variance of the accumulated values.
func (s *VarianceState) VarPop() (numeric.Numeric, error) { return s.stat(false, false) }

// VarSamp returns the sample variance, NaN when fewer than two finite
// values were accumulated.
func (s *VarianceState) VarSamp() (numeric.Numeric, error) { return s.stat(true, false) }

// StddevPop returns the population standard deviation.
func (s *VarianceState) StddevPop() (numeric.Numeric, error) { return s.stat(false, true) }

// StddevSamp returns the sample standard deviation, NaN when fewer than
// two finite values were accumulated.
func (s *VarianceState) StddevSamp() (numeric.Numeric, error) { return s.stat(true, true) }

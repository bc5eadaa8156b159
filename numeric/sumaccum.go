package numeric

const opSumTotal = "numeric.SumTotal"

// SumAccum accumulates values for SUM-style aggregates without carrying on
// every addition. Positive and negative inputs collect in separate int32
// digit arrays, so each Add is a plain per-digit integer add; carries
// propagate only once nbase-1 additions have piled up, which is when a slot
// could overflow int32.
//
// The zero value is an empty accumulator ready for use. It is not safe for
// concurrent use.
type SumAccum struct {
	ndigits        int
	weight         int
	dscale         int
	numUncarried   int
	haveCarrySpace bool
	posDigits      []int32
	negDigits      []int32
}

func (a *SumAccum) carry() {
	if a.numUncarried == 0 {
		return
	}

	// The weight always leaves one digit of headroom at the top, so the
	// final carry cannot run off the array.
	var newdig int32
	carry := int32(0)
	for i := a.ndigits - 1; i >= 0; i-- {
		newdig = a.posDigits[i] + carry
		if newdig >= nbase {
			carry = newdig / nbase
			newdig -= carry * nbase
		} else {
			carry = 0
		}
		a.posDigits[i] = newdig
	}
	// did the carry use up the reserved top digit?
	if newdig > 0 {
		a.haveCarrySpace = false
	}

	carry = 0
	newdig = 0
	for i := a.ndigits - 1; i >= 0; i-- {
		newdig = a.negDigits[i] + carry
		if newdig >= nbase {
			carry = newdig / nbase
			newdig -= carry * nbase
		} else {
			carry = 0
		}
		a.negDigits[i] = newdig
	}
	if newdig > 0 {
		a.haveCarrySpace = false
	}

	a.numUncarried = 0
}

// rescale widens the accumulator so val's digits land inside it, keeping
// the weight one above what the inputs need so a carry out of the top input
// digit has somewhere to go.
func (a *SumAccum) rescale(val *variable) {
	oldWeight, oldNdigits := a.weight, a.ndigits
	accumWeight, accumNdigits := oldWeight, oldNdigits

	if val.weight >= accumWeight {
		accumWeight = val.weight + 1
		accumNdigits += accumWeight - oldWeight
	} else if !a.haveCarrySpace {
		// a previous carry() used up the reserved digit
		accumWeight++
		accumNdigits++
	}

	// is the new value wider on the right?
	accumRscale := accumNdigits - accumWeight - 1
	valRscale := val.ndigits - val.weight - 1
	if valRscale > accumRscale {
		accumNdigits += valRscale - accumRscale
	}

	if accumNdigits != oldNdigits || accumWeight != oldWeight {
		weightdiff := accumWeight - oldWeight

		newPos := make([]int32, accumNdigits)
		newNeg := make([]int32, accumNdigits)
		copy(newPos[weightdiff:], a.posDigits)
		copy(newNeg[weightdiff:], a.negDigits)

		a.posDigits = newPos
		a.negDigits = newNeg
		a.weight = accumWeight
		a.ndigits = accumNdigits
		a.haveCarrySpace = true
	}

	if val.dscale > a.dscale {
		a.dscale = val.dscale
	}
}

func (a *SumAccum) addVariable(val *variable) {
	if a.numUncarried == nbase-1 {
		a.carry()
	}
	a.rescale(val)

	digits := a.posDigits
	if val.sign == signNeg {
		digits = a.negDigits
	}

	i := a.weight - val.weight
	for _, d := range val.digits[:val.ndigits] {
		digits[i] += int32(d)
		i++
	}
	a.numUncarried++
}

// Add accumulates val into the running sum. val must be finite; callers
// track NaN and infinity inputs separately.
func (a *SumAccum) Add(val Numeric) {
	if val.isSpecial() {
		panic("numeric: cannot accumulate " + val.String())
	}
	v := val.alias()
	a.addVariable(&v)
}

func (a *SumAccum) finalVar() variable {
	var res variable
	if a.ndigits == 0 {
		res.setZero(0)
		return res
	}
	a.carry()

	pos := variable{
		ndigits: a.ndigits,
		weight:  a.weight,
		sign:    signPos,
		dscale:  a.dscale,
		digits:  make([]int16, a.ndigits),
	}
	neg := pos
	neg.sign = signNeg
	neg.digits = make([]int16, a.ndigits)

	for i, d := range a.posDigits {
		pos.digits[i] = int16(d)
	}
	for i, d := range a.negDigits {
		neg.digits[i] = int16(d)
	}

	res = addVar(&pos, &neg)
	res.strip()
	return res
}

// Total returns the current sum. The accumulator stays usable; further
// additions continue from the same state.
func (a *SumAccum) Total() (Numeric, error) {
	v := a.finalVar()
	return makeNumeric(&v, opSumTotal)
}

// Combine folds the running total of other into a. Only other's value is
// taken; its internal digit state may be renormalized in place.
func (a *SumAccum) Combine(other *SumAccum) {
	v := other.finalVar()
	a.addVariable(&v)
}

// Reset clears the accumulator back to zero while keeping its buffers.
func (a *SumAccum) Reset() {
	a.dscale = 0
	for i := range a.posDigits {
		a.posDigits[i] = 0
	}
	for i := range a.negDigits {
		a.negDigits[i] = 0
	}
	a.numUncarried = 0
}

// Clone returns an independent copy of the accumulator state.
func (a *SumAccum) Clone() *SumAccum {
	c := *a
	c.posDigits = append([]int32(nil), a.posDigits...)
	c.negDigits = append([]int32(nil), a.negDigits...)
	return &c
}

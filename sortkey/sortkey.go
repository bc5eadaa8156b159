// Package sortkey abbreviates numeric values into single machine words so
// sort loops can compare cheap int64 keys and fall back to full comparison
// only on ties. An Abbreviator additionally tracks the key cardinality with
// a HyperLogLog sketch, so callers can abandon abbreviation on inputs where
// it cannot pay off.
package sortkey

import (
	"github.com/coachpo/pgnumeric/internal/hll"
	"github.com/coachpo/pgnumeric/numeric"
)

// Key is an abbreviated numeric value. Keys order the same way as the
// values they came from under Compare; equal keys are inconclusive and the
// caller must fall back to numeric.Cmp.
type Key int64

// Special-value keys. The NaN key is the smallest value and the negative
// infinity key the largest because keys are negated relative to the values;
// Compare inverts them back into the numeric total order.
const (
	keyNaN  Key = -1 << 63
	keyPInf Key = -(1<<63 - 1)
	keyNInf Key = 1<<63 - 1
)

// Convert abbreviates v into a Key.
//
// A finite key packs the weight (offset by 44) into the top byte and the
// first four base-10000 digits below it, then negates positive values.
// Values with weight outside [-44, 83] collapse onto 0 or the maximum and
// resolve on the fallback path, as do values sharing their first four
// digits.
func Convert(v numeric.Numeric) Key {
	if v.IsNaN() {
		return keyNaN
	}
	if v.IsInf(1) {
		return keyPInf
	}
	if v.IsInf(-1) {
		return keyNInf
	}

	weight := v.Weight()
	var key int64
	switch {
	case v.NDigits() == 0 || weight < -44:
		key = 0
	case weight > 83:
		key = 1<<63 - 1
	default:
		key = int64(weight+44) << 56
		key |= int64(v.Digit(0)) << 42
		key |= int64(v.Digit(1)) << 28
		key |= int64(v.Digit(2)) << 14
		key |= int64(v.Digit(3))
	}

	// the abbreviation is negated relative to the original
	if v.Sign() >= 0 {
		key = -key
	}
	return Key(key)
}

// Compare orders two keys consistently with the numeric total order of the
// values behind them. A zero result means the keys tie and the full values
// must be compared.
func Compare(x, y Key) int {
	// intentionally backwards: the abbreviation is negated
	if x < y {
		return 1
	}
	if x > y {
		return -1
	}
	return 0
}

// Options tune when an Abbreviator reports that abbreviation should be
// abandoned. The zero value selects the defaults.
type Options struct {
	// MinRows is the sorted-set size below which abbreviation never aborts.
	MinRows int
	// MinKeys is the number of converted inputs below which abbreviation
	// never aborts.
	MinKeys int64
	// StopEstimatingAbove ends cardinality tracking once the estimate
	// passes this many distinct keys, at which point abbreviation is sure
	// to break even.
	StopEstimatingAbove float64
	// TargetRatio is the number of inputs each distinct key must cover
	// before abbreviation is considered wasted effort.
	TargetRatio float64
}

func (o Options) withDefaults() Options {
	if o.MinRows == 0 {
		o.MinRows = 10000
	}
	if o.MinKeys == 0 {
		o.MinKeys = 10000
	}
	if o.StopEstimatingAbove == 0 {
		o.StopEstimatingAbove = 100000
	}
	if o.TargetRatio == 0 {
		o.TargetRatio = 10000
	}
	return o
}

// Abbreviator converts values to keys while sketching how many distinct
// keys the input produces. It is not safe for concurrent use.
type Abbreviator struct {
	opts       Options
	inputCount int64
	estimating bool
	card       *hll.State
}

// New returns an Abbreviator with default thresholds.
func New() *Abbreviator {
	return NewWithOptions(Options{})
}

// NewWithOptions returns an Abbreviator with the given thresholds.
func NewWithOptions(opts Options) *Abbreviator {
	return &Abbreviator{
		opts:       opts.withDefaults(),
		estimating: true,
		card:       hll.New(10),
	}
}

// Key abbreviates v and feeds the cardinality sketch.
func (a *Abbreviator) Key(v numeric.Numeric) Key {
	key := Convert(v)
	a.inputCount++
	if a.estimating {
		a.card.Add(hashKey(key))
	}
	return key
}

// InputCount returns how many values have been abbreviated.
func (a *Abbreviator) InputCount() int64 { return a.inputCount }

// ShouldAbort reports whether abbreviation should be abandoned for a sort
// currently holding rowCount tuples. Once enough rows and keys have been
// seen, it aborts when the key cardinality is so low that most comparisons
// tie and fall back to full comparison anyway.
func (a *Abbreviator) ShouldAbort(rowCount int) bool {
	if rowCount < a.opts.MinRows || a.inputCount < a.opts.MinKeys || !a.estimating {
		return false
	}

	card := a.card.Estimate()

	// Past this many distinct keys abbreviation breaks even on any
	// workload; stop spending cycles on estimation.
	if card > a.opts.StopEstimatingAbove {
		a.estimating = false
		return false
	}

	// Target a minimum of one distinct key per TargetRatio inputs. The
	// half-row fudge lets single-valued inputs abort at the first check.
	return card < float64(a.inputCount)/a.opts.TargetRatio+0.5
}

func hashKey(key Key) uint32 {
	return mix32(uint32(key) ^ uint32(uint64(key)>>32))
}

// mix32 is the 32-bit murmur finalizer, enough mixing for cardinality
// sketching.
func mix32(x uint32) uint32 {
	x ^= x >> 16
	x *= 0x85ebca6b
	x ^= x >> 13
	x *= 0xc2b2ae35
	x ^= x >> 16
	return x
}

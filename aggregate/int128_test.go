package aggregate

import (
	"math"
	"testing"

	"github.com/coachpo/pgnumeric/errs"
	"github.com/coachpo/pgnumeric/numeric"
)

func TestInt128AccumulatorScaleValidation(t *testing.T) {
	if _, err := NewInt128Accumulator(-1); !errs.IsCode(err, errs.CodeInvalidArgument) {
		t.Fatalf("negative scale: got %v", err)
	}
	if _, err := NewInt128Accumulator(numeric.MaxDisplayScale + 1); err == nil {
		t.Fatalf("oversized scale accepted")
	}
	if _, err := NewInt128Accumulator(0); err != nil {
		t.Fatalf("scale 0: %v", err)
	}
}

func TestInt128AccumulatorRejectsFinerInput(t *testing.T) {
	acc, err := NewInt128Accumulator(2)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	addAll(t, acc, "1.25")
	err = acc.Add(numeric.MustParse("0.125"))
	if !errs.IsCode(err, errs.CodeOutOfRange) {
		t.Fatalf("finer input: got %v", err)
	}
	// The failed Add must leave the accumulator unchanged.
	if got, want := mustSum(t, acc), numeric.MustParse("1.25"); got.Cmp(want) != 0 {
		t.Fatalf("sum after refused add: got %s", got)
	}
	if acc.Count() != 1 {
		t.Fatalf("count after refused add: got %d", acc.Count())
	}
}

func TestInt128AccumulatorOverflowSignalsFallback(t *testing.T) {
	acc, err := NewInt128Accumulator(0)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	huge := numeric.FromInt128(math.MaxInt64, math.MaxUint64)
	if err := acc.Add(huge); err != nil {
		t.Fatalf("first add: %v", err)
	}
	if err := acc.Add(huge); !errs.IsCode(err, errs.CodeOverflow) {
		t.Fatalf("second add: got %v", err)
	}
	if got := mustSum(t, acc); got.Cmp(huge) != 0 {
		t.Fatalf("sum after overflow: got %s", got)
	}

	// An input too wide for the representation is refused up front.
	wide, err := huge.Mul(numeric.MustParse("10"))
	if err != nil {
		t.Fatalf("widen: %v", err)
	}
	fresh, _ := NewInt128Accumulator(0)
	if err := fresh.Add(wide); !errs.IsCode(err, errs.CodeOverflow) {
		t.Fatalf("wide input: got %v", err)
	}
}

func TestInt128AccumulatorRemoveBounds(t *testing.T) {
	acc, err := NewInt128Accumulator(0)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	addAll(t, acc, "5", "2")
	if acc.Remove(numeric.FromInt128(math.MinInt64, 1)) {
		t.Fatalf("underflowing remove accepted")
	}
	if got, want := mustSum(t, acc), numeric.MustParse("7"); got.Cmp(want) != 0 {
		t.Fatalf("sum after refused remove: got %s", got)
	}
	if !acc.Remove(numeric.MustParse("2")) {
		t.Fatalf("in-range remove refused")
	}
	if got, want := mustSum(t, acc), numeric.MustParse("5"); got.Cmp(want) != 0 {
		t.Fatalf("sum after remove: got %s", got)
	}
	if got := acc.Count(); got != 1 {
		t.Fatalf("count after remove: got %d", got)
	}
	// Removing the last value empties the aggregate, whose sum is NaN.
	if !acc.Remove(numeric.MustParse("5")) {
		t.Fatalf("final remove refused")
	}
	if got := mustSum(t, acc); !got.IsNaN() {
		t.Fatalf("sum of emptied aggregate: got %s", got)
	}
}

func TestInt128AccumulatorCombine(t *testing.T) {
	left, err := NewInt128Accumulator(2)
	if err != nil {
		t.Fatalf("new left: %v", err)
	}
	right, err := NewInt128Accumulator(2)
	if err != nil {
		t.Fatalf("new right: %v", err)
	}
	addAll(t, left, "1.25", "2.50")
	addAll(t, right, "3.75", "NaN")

	if err := left.Combine(right); err != nil {
		t.Fatalf("combine: %v", err)
	}
	if got := mustSum(t, left); !got.IsNaN() {
		t.Fatalf("combined sum with NaN: got %s", got)
	}
	if got, want := left.Count(), int64(4); got != want {
		t.Fatalf("combined count: got %d want %d", got, want)
	}

	other, err := NewInt128Accumulator(3)
	if err != nil {
		t.Fatalf("new other: %v", err)
	}
	if err := left.Combine(other); !errs.IsCode(err, errs.CodeInvalidArgument) {
		t.Fatalf("scale mismatch: got %v", err)
	}
}

func TestInt128AccumulatorSumScale(t *testing.T) {
	acc, err := NewInt128Accumulator(3)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	addAll(t, acc, "1.5", "2")
	got := mustSum(t, acc)
	if got.String() != "3.500" {
		t.Fatalf("sum renders at the declared scale: got %s", got)
	}
}

func TestNewAccumulatorSelection(t *testing.T) {
	if _, ok := NewAccumulator(true, 3).(*Int128Accumulator); !ok {
		t.Fatalf("fast path not selected")
	}
	if _, ok := NewAccumulator(false, 3).(*State); !ok {
		t.Fatalf("general state not selected")
	}
	if _, ok := NewAccumulator(true, -1).(*State); !ok {
		t.Fatalf("invalid scale must fall back to the general state")
	}
}

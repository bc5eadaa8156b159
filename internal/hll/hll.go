// Package hll implements the HyperLogLog cardinality estimator used to
// decide whether abbreviated sort keys pay for themselves.
package hll

import (
	"math"
	"math/bits"
)

const pow2_32 = 4294967296.0

// State estimates the cardinality of a stream of 32-bit hashes with
// 2^bwidth single-byte registers.
type State struct {
	registerWidth uint8
	nRegisters    int
	alphaMM       float64
	registers     []uint8
}

// New creates an estimator with 2^bwidth registers. bwidth must lie between
// 4 and 16 inclusive.
func New(bwidth uint8) *State {
	if bwidth < 4 || bwidth > 16 {
		panic("hll: bit width must be between 4 and 16 inclusive")
	}
	m := 1 << bwidth

	// alpha corrects the systematic multiplicative bias of the raw
	// estimator for each register count.
	var alpha float64
	switch m {
	case 16:
		alpha = 0.673
	case 32:
		alpha = 0.697
	case 64:
		alpha = 0.709
	default:
		alpha = 0.7213 / (1.0 + 1.079/float64(m))
	}

	return &State{
		registerWidth: bwidth,
		nRegisters:    m,
		alphaMM:       alpha * float64(m) * float64(m),
		registers:     make([]uint8, m),
	}
}

// Add folds one hash into the estimator. The top registerWidth bits pick
// the register; the rank of the remaining bits feeds it.
func (s *State) Add(hash uint32) {
	index := hash >> (32 - s.registerWidth)
	count := rho(hash<<s.registerWidth, 32-s.registerWidth)
	if count > s.registers[index] {
		s.registers[index] = count
	}
}

// rho returns the position of the leftmost set bit of x, counting from 1,
// capped at b+1 when the top b bits are all zero.
func rho(x uint32, b uint8) uint8 {
	j := uint8(bits.LeadingZeros32(x)) + 1
	if j > b+1 {
		j = b + 1
	}
	return j
}

// Estimate returns the current cardinality estimate.
func (s *State) Estimate() float64 {
	sum := 0.0
	for _, r := range s.registers {
		sum += 1.0 / math.Pow(2.0, float64(r))
	}

	// the raw estimate, E in the HyperLogLog paper
	result := s.alphaMM / sum

	if result <= 2.5*float64(s.nRegisters) {
		// small range correction
		zeros := 0
		for _, r := range s.registers {
			if r == 0 {
				zeros++
			}
		}
		if zeros != 0 {
			result = float64(s.nRegisters) * math.Log(float64(s.nRegisters)/float64(zeros))
		}
	} else if result > pow2_32/30.0 {
		// large range correction
		result = -pow2_32 * math.Log(1.0-result/pow2_32)
	}

	return result
}

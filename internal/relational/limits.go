package relational

import "math"

// Limits bounds the exponential routines. A zero field means unbounded.
type Limits struct {
	// MaxSubsets caps attribute subsets enumerated by key search and FD projection.
	MaxSubsets uint64
	// MaxFDs caps the size of a rule-based F⁺.
	MaxFDs int
	// MaxSplits caps the number of BCNF split steps.
	MaxSplits int
}

// DefaultLimits allow universes of up to 20 attributes.
var DefaultLimits = Limits{
	MaxSubsets: 1 << 20,
	MaxFDs:     200_000,
	MaxSplits:  1024,
}

// subsetCount returns 2^n - 1, saturating at MaxUint64.
func subsetCount(n int) uint64 {
	if n >= 64 {
		return math.MaxUint64
	}
	return (uint64(1) << uint(n)) - 1
}

func (l Limits) checkSubsets(n int) error {
	need := subsetCount(n)
	if l.MaxSubsets != 0 && need > l.MaxSubsets {
		return &LimitError{Resource: "subset", Limit: l.MaxSubsets, Need: need}
	}
	return nil
}

func (l Limits) checkFDs(n int) error {
	if l.MaxFDs != 0 && n > l.MaxFDs {
		return &LimitError{Resource: "dependency", Limit: uint64(l.MaxFDs)}
	}
	return nil
}

func (l Limits) checkSplits(n int) error {
	if l.MaxSplits != 0 && n > l.MaxSplits {
		return &LimitError{Resource: "split", Limit: uint64(l.MaxSplits)}
	}
	return nil
}

package model

// PriceRange tracks the set of price values relevant for threshold
// matching within one block, plus a half-open boundary carried over from
// the previous block's closing price (spec.md §3, §4.2).
//
// There is no original_source file for this type (crates/model/src/price.rs
// was not part of the retrieved pack); the semantics below follow spec.md's
// prose description directly; worked examples are in §8 scenario 1 and the
// half-open boundary invariant.
type PriceRange struct {
	hasValue      bool
	low, high     float64
	lowInclusive  bool
	highInclusive bool
}

// Extend folds a newly observed price into the range.
func (r *PriceRange) Extend(p float64) {
	if !r.hasValue {
		r.hasValue = true
		r.low, r.high = p, p
		r.lowInclusive, r.highInclusive = true, true
		return
	}
	if p < r.low {
		r.low = p
		r.lowInclusive = true
	}
	if p > r.high {
		r.high = p
		r.highInclusive = true
	}
}

// ExcludeBound removes exactly the given value from the range's boundary,
// turning an inclusive bound into an exclusive one. It is a no-op for any
// value that is not currently one of the range's bounds. Used once per
// finalize with the previous block's closing price, just folded in via
// Extend: it is then either a bound (made exclusive, which empties a
// single-point range) or strictly inside the range, where this is a no-op.
func (r *PriceRange) ExcludeBound(p float64) {
	if !r.hasValue {
		return
	}
	if p == r.low {
		r.lowInclusive = false
	}
	if p == r.high {
		r.highInclusive = false
	}
}

// IsEmpty reports whether the range contains no price at all: either no
// value was ever extended into it, or it collapsed to a single excluded
// point (low == high and that point is excluded).
func (r *PriceRange) IsEmpty() bool {
	if !r.hasValue {
		return true
	}
	if r.low == r.high {
		return !r.lowInclusive || !r.highInclusive
	}
	return false
}

// Contains reports whether p falls within the range, honoring the
// half-open boundary.
func (r *PriceRange) Contains(p float64) bool {
	if r.IsEmpty() {
		return false
	}
	if p < r.low || p > r.high {
		return false
	}
	if p == r.low && !r.lowInclusive {
		return false
	}
	if p == r.high && !r.highInclusive {
		return false
	}
	return true
}

// LowHigh returns the range's numeric bounds and whether any value was ever
// extended into it. The bounds are a superset of Contains: a caller doing a
// coarse pre-filter (e.g. a SQL BETWEEN) on LowHigh must still re-check
// Contains for the exact half-open semantics.
func (r *PriceRange) LowHigh() (low, high float64, ok bool) {
	return r.low, r.high, r.hasValue
}

// Reset empties the range, as done once per block before folding in that
// block's trades (spec.md §4.2 step 1).
func (r *PriceRange) Reset() {
	*r = PriceRange{}
}

package model

import "math"

// SubscriptionMode controls whether a subscription survives its first match.
type SubscriptionMode int

const (
	// ModeOnce auto-deletes the subscription on its first successful match.
	ModeOnce SubscriptionMode = iota
	// ModeRepeat leaves the subscription in place after a match.
	ModeRepeat
)

// SubscriptionModeFromInt decodes the topic_type column: 0=once, 1=repeat.
func SubscriptionModeFromInt(i int) (SubscriptionMode, bool) {
	switch i {
	case 0:
		return ModeOnce, true
	case 1:
		return ModeRepeat, true
	default:
		return 0, false
	}
}

// ToInt encodes the mode back to the topic_type column value.
func (m SubscriptionMode) ToInt() int {
	return int(m)
}

func (m SubscriptionMode) String() string {
	if m == ModeOnce {
		return "once"
	}
	return "repeat"
}

// TopicKind discriminates the Topic union.
type TopicKind int

const (
	TopicOrderFulfilled TopicKind = iota
	TopicPriceThreshold
)

// Topic is either OrderFulfilled or a PriceThreshold on a specific asset
// pair. PriceThreshold equality (and hashing, via Key) compares the
// threshold bitwise as a float64 so NaN never silently collapses distinct
// thresholds together.
type Topic struct {
	Kind           TopicKind
	AmountAsset    Asset // PriceThreshold only
	PriceAsset     Asset // PriceThreshold only
	PriceThreshold float64
}

// OrderFulfilledTopic constructs the order-execution topic.
func OrderFulfilledTopic() Topic {
	return Topic{Kind: TopicOrderFulfilled}
}

// PriceThresholdTopic constructs a price-threshold topic.
func PriceThresholdTopic(amountAsset, priceAsset Asset, threshold float64) Topic {
	return Topic{
		Kind:           TopicPriceThreshold,
		AmountAsset:    amountAsset,
		PriceAsset:     priceAsset,
		PriceThreshold: threshold,
	}
}

// Equal compares two topics using bitwise float equality for the threshold,
// matching the original PriceThreshold Hash/Eq impl (Eq ignores that f64 is
// not normally Eq; Hash uses to_bits()).
func (t Topic) Equal(other Topic) bool {
	if t.Kind != other.Kind {
		return false
	}
	if t.Kind == TopicOrderFulfilled {
		return true
	}
	return t.AmountAsset == other.AmountAsset &&
		t.PriceAsset == other.PriceAsset &&
		math.Float64bits(t.PriceThreshold) == math.Float64bits(other.PriceThreshold)
}

// Key returns a value usable as a map key with the same equality semantics
// as Equal (Go maps can't key on a struct holding a plain float64 combined
// with a bitwise-NaN-safe comparison, so threshold is pre-converted to its
// bit pattern).
type TopicKey struct {
	Kind           TopicKind
	AmountAsset    Asset
	PriceAsset     Asset
	ThresholdBits  uint64
}

func (t Topic) Key() TopicKey {
	return TopicKey{
		Kind:          t.Kind,
		AmountAsset:   t.AmountAsset,
		PriceAsset:    t.PriceAsset,
		ThresholdBits: math.Float64bits(t.PriceThreshold),
	}
}

package blockchain

import "testing"

// Mirrors crates/push-notifications-processor/src/source/prices.rs's
// test_aggregator: a block's range carries the previous block's closing
// price as a boundary, but excludes it so the same price doesn't
// re-trigger a threshold it already crossed.
func TestPriceAggregator_CarriesExclusiveBoundaryAcrossBlocks(t *testing.T) {
	agg := newPriceAggregator(4.5)

	agg.reset()
	agg.update(4)
	agg.update(5)
	agg.finalize()

	block1 := agg.rangeValue()
	if !block1.Contains(5.0) {
		t.Fatalf("block1 range should contain 5.0 inclusively")
	}
	if !block1.Contains(4.0) {
		t.Fatalf("block1 range should contain 4.0 inclusively")
	}

	agg.reset()
	agg.update(6)
	agg.finalize()

	block2 := agg.rangeValue()
	if block2.Contains(5.0) {
		t.Fatalf("block2 range should exclude 5.0, the previous block's closing price")
	}
	if !block2.Contains(6.0) {
		t.Fatalf("block2 range should contain 6.0 inclusively")
	}
}

func TestPriceAggregator_NoTradesYieldsEmptyRange(t *testing.T) {
	agg := newPriceAggregator(10)

	agg.reset()
	agg.finalize()

	r := agg.rangeValue()
	if !r.IsEmpty() {
		t.Fatalf("expected empty range when no trades observed and prev price excluded")
	}
}

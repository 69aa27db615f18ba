package blockchain

import "github.com/wavesplatform/push-notifications/internal/model"

// priceAggregator tracks one asset pair's price range across the current
// block plus the half-open boundary carried from the previous block's
// closing price (crates/push-notifications-processor/src/source/prices.rs's
// aggregator module).
type priceAggregator struct {
	prevBlockPrice float64
	latestPrice    float64
	currentRange   model.PriceRange
}

func newPriceAggregator(lastKnownPrice float64) *priceAggregator {
	return &priceAggregator{prevBlockPrice: lastKnownPrice, latestPrice: lastKnownPrice}
}

// reset empties the range at the start of a new block.
func (a *priceAggregator) reset() {
	a.currentRange = model.PriceRange{}
}

// update folds a trade price observed in the current block into the range.
func (a *priceAggregator) update(price float64) {
	a.currentRange.Extend(price)
	a.latestPrice = price
}

// finalize closes out the block: the previous block's closing price is
// folded into the range (it's where prices started from), but when it ends
// up as a boundary it must not itself re-trigger a threshold that already
// fired when that price was the current price.
func (a *priceAggregator) finalize() {
	a.currentRange.Extend(a.prevBlockPrice)
	a.currentRange.ExcludeBound(a.prevBlockPrice)
	a.prevBlockPrice = a.latestPrice
}

func (a *priceAggregator) rangeValue() model.PriceRange {
	return a.currentRange
}

package model

import "time"

// EventKind discriminates Event.
type EventKind int

const (
	EventOrderExecuted EventKind = iota
	EventPriceChanged
)

// Event is the tagged union produced by the blockchain/order ingesters and
// consumed by the event processor (spec.md §3; crates/model/src/event.rs).
type Event struct {
	Kind EventKind

	// OrderExecuted fields.
	OrderType  OrderType
	Side       OrderSide
	AssetPair  AssetPair
	Execution  OrderExecution
	Address    Address

	// PriceChanged fields.
	PriceRange PriceRange

	Timestamp time.Time
}

// NewOrderExecutedEvent builds an OrderExecuted event.
func NewOrderExecutedEvent(orderType OrderType, side OrderSide, pair AssetPair, execution OrderExecution, addr Address, ts time.Time) Event {
	return Event{
		Kind:      EventOrderExecuted,
		OrderType: orderType,
		Side:      side,
		AssetPair: pair,
		Execution: execution,
		Address:   addr,
		Timestamp: ts,
	}
}

// NewPriceChangedEvent builds a PriceChanged event.
func NewPriceChangedEvent(pair AssetPair, r PriceRange, ts time.Time) Event {
	return Event{
		Kind:       EventPriceChanged,
		AssetPair:  pair,
		PriceRange: r,
		Timestamp:  ts,
	}
}

// Package orders ingests the Matcher's Redis Streams order-update feed and
// turns Filled/PartiallyFilled orders into OrderExecuted events
// (original_source/src/lib/source/orders.rs).
package orders

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/wavesplatform/push-notifications/internal/model"
	"github.com/wavesplatform/push-notifications/internal/waves"
)

// envelope is the Redis stream message body: "T":"osu" carries a batch of
// order updates under "o", timestamped by the matcher under "_".
type envelope struct {
	Type      string        `json:"T"`
	Timestamp int64         `json:"_"`
	Orders    []orderUpdate `json:"o"`
}

const envelopeTypeOrdersUpdated = "osu"

// orderUpdate is one order's state after a match. Field names mirror the
// matcher's single-letter wire encoding exactly (see the struct tags).
type orderUpdate struct {
	OrderID                   string          `json:"i"`
	OwnerAddress              string          `json:"o"`
	AmountAsset               string          `json:"A"`
	PriceAsset                string          `json:"P"`
	Side                      string          `json:"S"` // "buy" | "sell"
	OrderType                 string          `json:"T"` // "limit" | "market"
	Amount                    decimal.Decimal `json:"a"`
	Status                    string          `json:"s"` // "Filled" | "PartiallyFilled" | "Cancelled"
	FilledAmountAccumulated   decimal.Decimal `json:"q"`
	EventTimestamp            int64           `json:"Z"`
}

const (
	statusFilled          = "Filled"
	statusPartiallyFilled = "PartiallyFilled"
	statusCancelled       = "Cancelled"
)

// parseEnvelope decodes one Redis stream message, returning its order
// updates and the matcher's own timestamp for the batch. An envelope of any
// other type decodes to an empty order list rather than an
// error, matching the original's forward-compatible handling of feed
// variants it doesn't yet know about.
func parseEnvelope(raw []byte) ([]orderUpdate, time.Time, error) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, time.Time{}, fmt.Errorf("decode order envelope: %w", err)
	}
	ts := time.UnixMilli(env.Timestamp).UTC()
	if env.Type != envelopeTypeOrdersUpdated {
		return nil, ts, nil
	}
	return env.Orders, ts, nil
}

// eventFromOrderUpdate converts one order update into an OrderExecuted
// event, or returns ok=false for a Cancelled order, which carries no
// notification.
func eventFromOrderUpdate(order orderUpdate) (model.Event, bool, error) {
	var execution model.OrderExecution
	switch order.Status {
	case statusFilled:
		execution = model.FullExecution()
	case statusPartiallyFilled:
		if order.Amount.IsZero() {
			return model.Event{}, false, fmt.Errorf("order %s: partially filled with zero total amount", order.OrderID)
		}
		pct, _ := order.FilledAmountAccumulated.Mul(decimal.NewFromInt(100)).Div(order.Amount).Float64()
		execution = model.PartialExecution(pct)
	case statusCancelled:
		return model.Event{}, false, nil
	default:
		return model.Event{}, false, fmt.Errorf("order %s: unrecognized status %q", order.OrderID, order.Status)
	}

	var side model.OrderSide
	switch order.Side {
	case "buy":
		side = model.OrderSideBuy
	case "sell":
		side = model.OrderSideSell
	default:
		return model.Event{}, false, fmt.Errorf("order %s: unrecognized side %q", order.OrderID, order.Side)
	}

	var orderType model.OrderType
	switch order.OrderType {
	case "limit":
		orderType = model.OrderTypeLimit
	case "market":
		orderType = model.OrderTypeMarket
	default:
		return model.Event{}, false, fmt.Errorf("order %s: unrecognized order type %q", order.OrderID, order.OrderType)
	}

	amountAsset, err := waves.DecodeAssetID(order.AmountAsset)
	if err != nil {
		return model.Event{}, false, fmt.Errorf("order %s: %w", order.OrderID, err)
	}
	priceAsset, err := waves.DecodeAssetID(order.PriceAsset)
	if err != nil {
		return model.Event{}, false, fmt.Errorf("order %s: %w", order.OrderID, err)
	}
	owner, err := waves.DecodeAddress(order.OwnerAddress)
	if err != nil {
		return model.Event{}, false, fmt.Errorf("order %s: %w", order.OrderID, err)
	}

	event := model.NewOrderExecutedEvent(
		orderType, side,
		model.AssetPair{AmountAsset: amountAsset, PriceAsset: priceAsset},
		execution, owner,
		time.UnixMilli(order.EventTimestamp).UTC(),
	)
	return event, true, nil
}

// EventProcessor is the collaborator that matches an event against stored
// subscriptions and enqueues notifications.
type EventProcessor interface {
	ProcessEvent(ctx context.Context, event model.Event) error
}

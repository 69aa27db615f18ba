package model

import "time"

// MessageKind discriminates Message.
type MessageKind int

const (
	MessageOrderExecuted MessageKind = iota
	MessagePriceThresholdReached
)

// Message is the pre-localization content extracted from a matched event:
// asset tickers rather than raw asset ids, since the localizer interpolates
// human-readable names into the template (crates/model/src/message.rs).
type Message struct {
	Kind MessageKind

	// OrderExecuted fields.
	OrderType         OrderType
	Side              OrderSide
	AmountAssetTicker string
	PriceAssetTicker  string
	Execution         OrderExecution

	// PriceThresholdReached fields.
	Threshold float64 // decimals already applied

	Timestamp time.Time
}

// LocalizedMessage is the title/body pair produced by running a Message
// through the translation templates for a device's locale.
type LocalizedMessage struct {
	NotificationTitle string
	NotificationBody  string
}

// PreparedMessage is a LocalizedMessage addressed to one device, ready to be
// enqueued for delivery.
type PreparedMessage struct {
	Device      Device
	Message     LocalizedMessage
	Data        *MessageData // nil only if the event kind has no data payload
	CollapseKey *string
}

// MessageDataType is the JSON discriminant of MessageData, serialized under
// the "type" key.
type MessageDataType string

const (
	DataOrderPartiallyExecuted MessageDataType = "order_partially_executed"
	DataOrderExecuted          MessageDataType = "order_executed"
	DataPriceThresholdReached  MessageDataType = "price_threshold_reached"
)

// MessageData is the structured payload delivered alongside the
// notification title/body, letting the client app deep-link without
// re-parsing the localized text. It always carries amount_asset_id,
// price_asset_id and address regardless of Type (the FCM gateway sends a
// non-null data object for every push, per spec.md §4.7).
type MessageData struct {
	Type           MessageDataType `json:"type"`
	AmountAssetID  string          `json:"amount_asset_id"`
	PriceAssetID   string          `json:"price_asset_id"`
	Address        string          `json:"address"`
}

// NewOrderExecutedData builds the data payload for a fully or partially
// filled order, per execution kind.
func NewOrderExecutedData(execution OrderExecution, amountAssetID, priceAssetID, address string) MessageData {
	t := DataOrderExecuted
	if execution.Kind == ExecutionPartial {
		t = DataOrderPartiallyExecuted
	}
	return MessageData{
		Type:          t,
		AmountAssetID: amountAssetID,
		PriceAssetID:  priceAssetID,
		Address:       address,
	}
}

// NewPriceThresholdData builds the data payload for a crossed threshold.
func NewPriceThresholdData(amountAssetID, priceAssetID, address string) MessageData {
	return MessageData{
		Type:          DataPriceThresholdReached,
		AmountAssetID: amountAssetID,
		PriceAssetID:  priceAssetID,
		Address:       address,
	}
}

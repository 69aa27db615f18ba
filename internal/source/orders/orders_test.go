package orders

import (
	"testing"

	"github.com/wavesplatform/push-notifications/internal/model"
)

// Fixtures are taken from the matcher's real order-update stream
// (original_source/src/lib/source/orders.rs's test_orders_deserialize).

const cancelledEnvelope = `{
	"T": "osu",
	"_": 1673428863604,
	"o": [ {
		"i": "JX4G8f5ehPyUPfH12DRevvjCGSP7LaRcy9ToddLdqKL",
		"o": "3Q6pToUA28zJbMJUfB5xoGgfqqni11H7NPq",
		"A": "WAVES",
		"P": "GwT5y18jcrrppAuj5VkfnHLG8WRf3TNzmhREQkY4pzd8",
		"S": "sell",
		"T": "limit",
		"a": "1.0",
		"s": "Cancelled",
		"q": "0.0",
		"Z": 1673428862976
	} ]
}`

const fillEnvelope = `{
	"T": "osu",
	"_": 1673428865504,
	"o": [ {
		"i": "DbGrYjRnRazkajgYHpekfB72EHBmmQjVPrgpLSJb3MTq",
		"o": "3Q6pToUA28zJbMJUfB5xoGgfqqni11H7NPq",
		"A": "WAVES",
		"P": "GwT5y18jcrrppAuj5VkfnHLG8WRf3TNzmhREQkY4pzd8",
		"S": "buy",
		"T": "limit",
		"a": "1.0",
		"s": "Filled",
		"q": "1.0",
		"Z": 1673428865504
	}, {
		"i": "GR6WbwBxs6q8MXqLaz8a53epGKuqxBaM8fF9RDD5NiLW",
		"o": "3Q6ujVDbX57oLsXxifqfTcycgb4S8U3DLFz",
		"A": "WAVES",
		"P": "GwT5y18jcrrppAuj5VkfnHLG8WRf3TNzmhREQkY4pzd8",
		"S": "sell",
		"T": "limit",
		"a": "5.0",
		"s": "PartiallyFilled",
		"q": "1.0",
		"Z": 1673428865504
	} ]
}`

func TestParseEnvelope_OrdersUpdated(t *testing.T) {
	updates, ts, err := parseEnvelope([]byte(cancelledEnvelope))
	if err != nil {
		t.Fatalf("parseEnvelope: %v", err)
	}
	if len(updates) != 1 {
		t.Fatalf("expected 1 order update, got %d", len(updates))
	}
	if ts.UnixMilli() != 1673428863604 {
		t.Fatalf("unexpected envelope timestamp: %v", ts)
	}
}

func TestParseEnvelope_UnsupportedType(t *testing.T) {
	updates, _, err := parseEnvelope([]byte(`{"T": "something-else", "_": 1, "o": []}`))
	if err != nil {
		t.Fatalf("parseEnvelope: %v", err)
	}
	if len(updates) != 0 {
		t.Fatalf("expected no order updates for an unrecognized envelope type")
	}
}

func TestEventFromOrderUpdate_Cancelled(t *testing.T) {
	updates, _, err := parseEnvelope([]byte(cancelledEnvelope))
	if err != nil {
		t.Fatalf("parseEnvelope: %v", err)
	}
	_, ok, err := eventFromOrderUpdate(updates[0])
	if err != nil {
		t.Fatalf("eventFromOrderUpdate: %v", err)
	}
	if ok {
		t.Fatalf("a cancelled order should not produce an event")
	}
}

func TestEventFromOrderUpdate_Filled(t *testing.T) {
	updates, _, err := parseEnvelope([]byte(fillEnvelope))
	if err != nil {
		t.Fatalf("parseEnvelope: %v", err)
	}
	if len(updates) != 2 {
		t.Fatalf("expected 2 order updates, got %d", len(updates))
	}

	event, ok, err := eventFromOrderUpdate(updates[0])
	if err != nil {
		t.Fatalf("eventFromOrderUpdate: %v", err)
	}
	if !ok {
		t.Fatalf("a filled order should produce an event")
	}
	if event.Kind != model.EventOrderExecuted {
		t.Fatalf("expected an OrderExecuted event, got %v", event.Kind)
	}
	if event.Side != model.OrderSideBuy {
		t.Fatalf("expected side buy, got %v", event.Side)
	}
	if event.Execution.Kind != model.ExecutionFull {
		t.Fatalf("expected full execution, got %v", event.Execution.Kind)
	}
	if !event.AssetPair.AmountAsset.IsWaves() {
		t.Fatalf("expected WAVES amount asset")
	}
}

func TestEventFromOrderUpdate_PartiallyFilled(t *testing.T) {
	updates, _, err := parseEnvelope([]byte(fillEnvelope))
	if err != nil {
		t.Fatalf("parseEnvelope: %v", err)
	}

	event, ok, err := eventFromOrderUpdate(updates[1])
	if err != nil {
		t.Fatalf("eventFromOrderUpdate: %v", err)
	}
	if !ok {
		t.Fatalf("a partially filled order should produce an event")
	}
	if event.Execution.Kind != model.ExecutionPartial {
		t.Fatalf("expected partial execution, got %v", event.Execution.Kind)
	}
	if event.Execution.Percentage != 20.0 {
		t.Fatalf("expected 20%% filled (1.0 of 5.0), got %v", event.Execution.Percentage)
	}
	if event.Side != model.OrderSideSell {
		t.Fatalf("expected side sell, got %v", event.Side)
	}
}

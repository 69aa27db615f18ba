package model

import (
	"encoding/json"
	"testing"
)

func TestMessageData_JSON_OrderExecuted(t *testing.T) {
	data := NewOrderExecutedData(OrderExecution{Kind: ExecutionFull}, "WAVES", "USDN", "3P...")

	raw, err := json.Marshal(data)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded map[string]string
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	want := map[string]string{
		"type":            "order_executed",
		"amount_asset_id": "WAVES",
		"price_asset_id":  "USDN",
		"address":         "3P...",
	}
	for k, v := range want {
		if decoded[k] != v {
			t.Errorf("field %q = %q, want %q", k, decoded[k], v)
		}
	}
}

func TestMessageData_JSON_OrderPartiallyExecuted(t *testing.T) {
	data := NewOrderExecutedData(OrderExecution{Kind: ExecutionPartial, Percentage: 20}, "WAVES", "USDN", "3P...")

	raw, err := json.Marshal(data)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded map[string]string
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded["type"] != "order_partially_executed" {
		t.Errorf("type = %q, want order_partially_executed", decoded["type"])
	}
}

func TestMessageData_JSON_PriceThresholdReached(t *testing.T) {
	data := NewPriceThresholdData("WAVES", "USDN", "3P...")

	raw, err := json.Marshal(data)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded map[string]string
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded["type"] != "price_threshold_reached" {
		t.Errorf("type = %q, want price_threshold_reached", decoded["type"])
	}
}

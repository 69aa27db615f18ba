package model

import "testing"

func TestSubscriptionMode_RoundTrip(t *testing.T) {
	for _, mode := range []SubscriptionMode{ModeOnce, ModeRepeat} {
		decoded, ok := SubscriptionModeFromInt(mode.ToInt())
		if !ok {
			t.Fatalf("SubscriptionModeFromInt(%d) reported unknown", mode.ToInt())
		}
		if decoded != mode {
			t.Errorf("round trip of %v produced %v", mode, decoded)
		}
	}
}

func TestSubscriptionModeFromInt_RejectsUnknownValues(t *testing.T) {
	if _, ok := SubscriptionModeFromInt(2); ok {
		t.Fatal("expected SubscriptionModeFromInt(2) to report unknown")
	}
	if _, ok := SubscriptionModeFromInt(-1); ok {
		t.Fatal("expected SubscriptionModeFromInt(-1) to report unknown")
	}
}

func TestSubscriptionMode_String(t *testing.T) {
	if ModeOnce.String() != "once" {
		t.Errorf("ModeOnce.String() = %q, want once", ModeOnce.String())
	}
	if ModeRepeat.String() != "repeat" {
		t.Errorf("ModeRepeat.String() = %q, want repeat", ModeRepeat.String())
	}
}

func TestTopic_Equal(t *testing.T) {
	waves := WavesAsset
	a := PriceThresholdTopic(waves, waves, 4.5)
	b := PriceThresholdTopic(waves, waves, 4.5)
	if !a.Equal(b) {
		t.Fatal("expected identical price thresholds to be equal")
	}

	c := PriceThresholdTopic(waves, waves, 5.0)
	if a.Equal(c) {
		t.Fatal("expected different thresholds to be unequal")
	}

	order1 := OrderFulfilledTopic()
	order2 := OrderFulfilledTopic()
	if !order1.Equal(order2) {
		t.Fatal("expected order-fulfilled topics to always be equal")
	}
	if order1.Equal(a) {
		t.Fatal("expected different topic kinds to be unequal")
	}
}

func TestTopic_Key_DistinguishesThresholdBits(t *testing.T) {
	waves := WavesAsset
	a := PriceThresholdTopic(waves, waves, 4.5).Key()
	b := PriceThresholdTopic(waves, waves, 4.5).Key()
	if a != b {
		t.Fatal("expected identical topics to produce identical keys")
	}

	c := PriceThresholdTopic(waves, waves, 4.50001).Key()
	if a == c {
		t.Fatal("expected distinct thresholds to produce distinct keys")
	}
}

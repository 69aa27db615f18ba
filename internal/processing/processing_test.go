package processing

import (
	"context"
	"testing"
	"time"

	"github.com/wavesplatform/push-notifications/internal/model"
	"github.com/wavesplatform/push-notifications/internal/processing/localize"
)

type fakeTickers map[string]string

func (f fakeTickers) Ticker(_ context.Context, a model.Asset) (string, bool, error) {
	t, ok := f[a.ID()]
	return t, ok, nil
}

func fixtureLocalizer() localize.Localizer {
	resp := localize.KeysResponse{
		Keys: []localize.Key{
			{KeyName: localize.PlatformStrings{Web: "priceAlertTitle"}, Translations: []localize.Translation{{LanguageISO: "en", Translation: "Price alert"}}},
			{KeyName: localize.PlatformStrings{Web: "priceAlertMessage"}, Translations: []localize.Translation{{LanguageISO: "en", Translation: "[%s:pair] crossed [%s:value]"}}},
		},
	}
	return localize.NewLocalizer(localize.BuildTranslationMap(resp))
}

func TestMakeMessage_PriceThreshold(t *testing.T) {
	tickers := fakeTickers{"WAVES": "WAVES", "usdn-id": "USDN"}
	p := NewEventProcessor(nil, tickers, fixtureLocalizer())

	event := model.NewPriceChangedEvent(
		model.AssetPair{AmountAsset: model.WavesAsset, PriceAsset: model.NewIssuedAsset("usdn-id")},
		func() model.PriceRange { var r model.PriceRange; r.Extend(1.5); return r }(),
		time.Unix(0, 0),
	)
	topic := model.PriceThresholdTopic(event.AssetPair.AmountAsset, event.AssetPair.PriceAsset, 1.5)

	msg, err := p.makeMessage(context.Background(), event, topic)
	if err != nil {
		t.Fatalf("makeMessage: %v", err)
	}
	if msg.Kind != model.MessagePriceThresholdReached {
		t.Fatalf("expected a price-threshold message, got %v", msg.Kind)
	}
	if msg.AmountAssetTicker != "WAVES" || msg.PriceAssetTicker != "USDN" {
		t.Fatalf("unexpected tickers: %+v", msg)
	}
}

func TestMakeMessage_UnknownCombinationIsFatal(t *testing.T) {
	p := NewEventProcessor(nil, fakeTickers{}, fixtureLocalizer())

	event := model.NewPriceChangedEvent(model.AssetPair{}, model.PriceRange{}, time.Unix(0, 0))
	topic := model.OrderFulfilledTopic()

	if _, err := p.makeMessage(context.Background(), event, topic); err == nil {
		t.Fatalf("expected an error for a PriceChanged event matched against an OrderFulfilled topic")
	}
}

func TestAssetTicker_FallsBackToRawID(t *testing.T) {
	p := NewEventProcessor(nil, fakeTickers{}, fixtureLocalizer())

	ticker, err := p.assetTicker(context.Background(), model.NewIssuedAsset("unknown-id"))
	if err != nil {
		t.Fatalf("assetTicker: %v", err)
	}
	if ticker != "unknown-id" {
		t.Fatalf("expected fallback to the raw asset id, got %q", ticker)
	}
}

func TestLocalize_FallsBackToEnglish(t *testing.T) {
	p := NewEventProcessor(nil, fakeTickers{}, fixtureLocalizer())

	msg := model.Message{Kind: model.MessagePriceThresholdReached, Threshold: 1.5, AmountAssetTicker: "WAVES", PriceAssetTicker: "USDN"}
	lm, err := p.localize(msg, model.Locale{Lang: "fr"})
	if err != nil {
		t.Fatalf("localize: %v", err)
	}
	if lm.NotificationTitle != "Price alert" {
		t.Fatalf("expected the English fallback title, got %q", lm.NotificationTitle)
	}
}

func TestLocalize_NoFallbackIsFatal(t *testing.T) {
	p := NewEventProcessor(nil, fakeTickers{}, localize.NewLocalizer(localize.BuildTranslationMap(localize.KeysResponse{})))

	msg := model.Message{Kind: model.MessagePriceThresholdReached}
	if _, err := p.localize(msg, model.Locale{Lang: "fr"}); err == nil {
		t.Fatalf("expected an error when neither the device locale nor English has a translation")
	}
}

func TestMakeMetadata(t *testing.T) {
	device := model.Device{Address: model.NewAddress("3Q6pToUA28zJbMJUfB5xoGgfqqni11H7NPq")}
	event := model.NewOrderExecutedEvent(
		model.OrderTypeLimit, model.OrderSideBuy,
		model.AssetPair{AmountAsset: model.WavesAsset, PriceAsset: model.NewIssuedAsset("usdn-id")},
		model.PartialExecution(20), device.Address, time.Unix(0, 0),
	)

	data := makeMetadata(event, device)
	if data.Type != model.DataOrderPartiallyExecuted {
		t.Fatalf("expected a partially-executed data type, got %v", data.Type)
	}
	if data.Address != device.Address.AsBase58String() {
		t.Fatalf("unexpected address: %q", data.Address)
	}
}

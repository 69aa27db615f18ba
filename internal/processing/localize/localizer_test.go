package localize

import (
	"testing"
	"time"

	"github.com/wavesplatform/push-notifications/internal/model"
)

func fixtureLocalizer() Localizer {
	resp := KeysResponse{
		Keys: []Key{
			{KeyName: PlatformStrings{Web: keyOrderFilledTitle}, Translations: []Translation{{LanguageISO: "en", Translation: "Order filled"}}},
			{KeyName: PlatformStrings{Web: keyOrderFilledMsg}, Translations: []Translation{{LanguageISO: "en", Translation: "Your [%s:side] order for [%s:pair] filled"}}},
			{KeyName: PlatformStrings{Web: keyOrderPartFilledMsg}, Translations: []Translation{{LanguageISO: "en", Translation: "Your [%s:side] order for [%s:pair] partially filled"}}},
			{KeyName: PlatformStrings{Web: keyPriceAlertTitle}, Translations: []Translation{{LanguageISO: "en", Translation: "Price alert"}}},
			{KeyName: PlatformStrings{Web: keyPriceAlertMsg}, Translations: []Translation{{LanguageISO: "en", Translation: "[%s:pair] crossed [%s:value]"}}},
			{KeyName: PlatformStrings{Web: keyBuy}, Translations: []Translation{{LanguageISO: "en", Translation: "buy"}}},
			{KeyName: PlatformStrings{Web: keySell}, Translations: []Translation{{LanguageISO: "en", Translation: "sell"}}},
		},
	}
	return NewLocalizer(BuildTranslationMap(resp))
}

func TestLocalizer_OrderExecuted(t *testing.T) {
	l := fixtureLocalizer()
	msg := model.Message{
		Kind:              model.MessageOrderExecuted,
		Side:              model.OrderSideBuy,
		Execution:         model.FullExecution(),
		AmountAssetTicker: "WAVES",
		PriceAssetTicker:  "USDN",
		Timestamp:         time.Unix(0, 0),
	}

	out, ok := l.Localize(msg, "en")
	if !ok {
		t.Fatalf("expected a translation to be found")
	}
	if out.NotificationTitle != "Order filled" {
		t.Fatalf("unexpected title: %q", out.NotificationTitle)
	}
	if out.NotificationBody != "Your buy order for WAVES / USDN filled" {
		t.Fatalf("unexpected body: %q", out.NotificationBody)
	}
}

func TestLocalizer_PartialExecutionUsesDifferentBodyKey(t *testing.T) {
	l := fixtureLocalizer()
	msg := model.Message{
		Kind:              model.MessageOrderExecuted,
		Side:              model.OrderSideSell,
		Execution:         model.PartialExecution(42),
		AmountAssetTicker: "WAVES",
		PriceAssetTicker:  "USDN",
	}

	out, ok := l.Localize(msg, "en")
	if !ok {
		t.Fatalf("expected a translation to be found")
	}
	if out.NotificationBody != "Your sell order for WAVES / USDN partially filled" {
		t.Fatalf("unexpected body: %q", out.NotificationBody)
	}
}

func TestLocalizer_PriceThreshold(t *testing.T) {
	l := fixtureLocalizer()
	msg := model.Message{
		Kind:              model.MessagePriceThresholdReached,
		AmountAssetTicker: "WAVES",
		PriceAssetTicker:  "USDN",
		Threshold:         1.5,
	}

	out, ok := l.Localize(msg, "en")
	if !ok {
		t.Fatalf("expected a translation to be found")
	}
	if out.NotificationTitle != "Price alert" {
		t.Fatalf("unexpected title: %q", out.NotificationTitle)
	}
	if out.NotificationBody != "WAVES / USDN crossed 1.5" {
		t.Fatalf("unexpected body: %q", out.NotificationBody)
	}
}

func TestLocalizer_MissingTranslationReportsNotOK(t *testing.T) {
	l := NewLocalizer(BuildTranslationMap(KeysResponse{}))
	msg := model.Message{Kind: model.MessagePriceThresholdReached}

	if _, ok := l.Localize(msg, "en"); ok {
		t.Fatalf("expected ok=false when no translations are loaded")
	}
}

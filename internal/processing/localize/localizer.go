package localize

import (
	"fmt"

	"github.com/wavesplatform/push-notifications/internal/model"
)

const (
	keyOrderFilledTitle   = "orderFilledTitle"
	keyOrderFilledMsg     = "orderFilledMessage"
	keyOrderPartFilledMsg = "orderPartFilledMessage"
	keyPriceAlertTitle    = "priceAlertTitle"
	keyPriceAlertMsg      = "priceAlertMessage"
	keyBuy                = "buy"
	keySell               = "sell"
)

// Localizer renders a Message into notification text for one language,
// using the Lokalise-sourced template translations
// (src/lib/localization/repo.rs's Repo::localize).
type Localizer struct {
	translations TranslationMap
}

// NewLocalizer wraps a fetched translation set.
func NewLocalizer(translations TranslationMap) Localizer {
	return Localizer{translations: translations}
}

// Localize renders message in lang, or returns ok=false if any of the
// templates this message needs has no translation in lang.
func (l Localizer) Localize(message model.Message, lang string) (result model.LocalizedMessage, ok bool) {
	translate := func(key string) (string, bool) { return l.translations.Translate(key, lang) }

	titleKey := keyPriceAlertTitle
	bodyKey := keyPriceAlertMsg
	var sideKey string
	hasSide := false
	if message.Kind == model.MessageOrderExecuted {
		titleKey = keyOrderFilledTitle
		bodyKey = keyOrderFilledMsg
		if message.Execution.Kind == model.ExecutionPartial {
			bodyKey = keyOrderPartFilledMsg
		}
		hasSide = true
		if message.Side == model.OrderSideBuy {
			sideKey = keyBuy
		} else {
			sideKey = keySell
		}
	}

	side := ""
	if hasSide {
		var found bool
		side, found = translate(sideKey)
		if !found {
			return model.LocalizedMessage{}, false
		}
	}

	title, found := translate(titleKey)
	if !found {
		return model.LocalizedMessage{}, false
	}
	body, found := translate(bodyKey)
	if !found {
		return model.LocalizedMessage{}, false
	}

	value := ""
	if message.Kind == model.MessagePriceThresholdReached {
		value = fmt.Sprintf("%v", message.Threshold)
	}

	subst := map[string]string{
		"":           "",
		"amountToken": message.AmountAssetTicker,
		"priceToken":  message.PriceAssetTicker,
		"pair":        message.AmountAssetTicker + " / " + message.PriceAssetTicker,
		"side":        side,
		"value":       value,
		// Neither the event nor Message carries a date/time field yet; the
		// original leaves these as literal "?" placeholders too.
		"date": "?",
		"time": "?",
	}

	return model.LocalizedMessage{
		NotificationTitle: interpolate(title, subst),
		NotificationBody:  interpolate(body, subst),
	}, true
}

// Package topic parses and formats the push:// topic URLs used by the
// subscription API surface (crates/push-notifications-api/src/topic.rs).
package topic

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/wavesplatform/push-notifications/internal/model"
	"github.com/wavesplatform/push-notifications/internal/waves"
)

// Sentinel errors returned by Parse. Use errors.Is to match them; the
// unknown-kind case additionally carries the offending string via wrapping.
var (
	ErrUnknownScheme     = errors.New("unknown scheme, only 'push' is allowed")
	ErrUnknownTopicKind  = errors.New("unknown topic kind, only 'orders' and 'price_threshold' are allowed")
	ErrInvalidAmountAsset = errors.New("invalid or missing amount asset")
	ErrInvalidPriceAsset  = errors.New("invalid or missing price asset")
	ErrInvalidThreshold   = errors.New("invalid or missing threshold value")
)

// Parse decodes a topic URL into a Topic and its subscription mode.
//
//	push://orders[?oneshot]
//	push://price_threshold/<amount_asset>/<price_asset>/<threshold>[?oneshot]
func Parse(topicURL string) (model.Topic, model.SubscriptionMode, error) {
	u, err := url.Parse(topicURL)
	if err != nil {
		return model.Topic{}, 0, fmt.Errorf("parse topic url: %w", err)
	}
	if u.Scheme != "push" {
		return model.Topic{}, 0, ErrUnknownScheme
	}

	mode := model.ModeRepeat
	if _, ok := u.Query()["oneshot"]; ok {
		mode = model.ModeOnce
	}

	switch u.Host {
	case "orders":
		return model.OrderFulfilledTopic(), mode, nil
	case "price_threshold":
		t, err := parsePriceThreshold(u.Path)
		if err != nil {
			return model.Topic{}, 0, err
		}
		return t, mode, nil
	default:
		return model.Topic{}, 0, fmt.Errorf("%w: %q", ErrUnknownTopicKind, u.Host)
	}
}

func parsePriceThreshold(path string) (model.Topic, error) {
	segments := strings.Split(strings.Trim(path, "/"), "/")
	get := func(i int) (string, bool) {
		if i >= len(segments) || segments[i] == "" {
			return "", false
		}
		return segments[i], true
	}

	amountRaw, ok := get(0)
	if !ok {
		return model.Topic{}, ErrInvalidAmountAsset
	}
	amountAsset, err := waves.DecodeAssetID(amountRaw)
	if err != nil {
		return model.Topic{}, ErrInvalidAmountAsset
	}

	priceRaw, ok := get(1)
	if !ok {
		return model.Topic{}, ErrInvalidPriceAsset
	}
	priceAsset, err := waves.DecodeAssetID(priceRaw)
	if err != nil {
		return model.Topic{}, ErrInvalidPriceAsset
	}

	thresholdRaw, ok := get(2)
	if !ok {
		return model.Topic{}, ErrInvalidThreshold
	}
	threshold, err := strconv.ParseFloat(thresholdRaw, 64)
	if err != nil {
		return model.Topic{}, ErrInvalidThreshold
	}

	return model.PriceThresholdTopic(amountAsset, priceAsset, threshold), nil
}

// Build formats a Topic and subscription mode back into its canonical URL.
func Build(t model.Topic, mode model.SubscriptionMode) string {
	var base string
	switch t.Kind {
	case model.TopicOrderFulfilled:
		base = "push://orders"
	case model.TopicPriceThreshold:
		base = fmt.Sprintf("push://price_threshold/%s/%s/%s",
			waves.EncodeAssetID(t.AmountAsset),
			waves.EncodeAssetID(t.PriceAsset),
			formatThreshold(t.PriceThreshold))
	}
	if mode == model.ModeOnce {
		base += "?oneshot"
	}
	return base
}

func formatThreshold(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

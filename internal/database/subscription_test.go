package database

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wavesplatform/push-notifications/internal/apperr"
	"github.com/wavesplatform/push-notifications/internal/model"
)

var (
	testAmountAsset = model.NewIssuedAsset("8cwrggsqQREpCLkPwZcD2xMwChi1MLaP7rofenGZ5Xuc")
	testPriceAsset  = model.WavesAsset
)

func TestCheckLimits_TotalLimitExceeded(t *testing.T) {
	addr := model.NewAddress("3PGSLWrfGDWJ6dEKZFxaANTX8mVjKoHyytC")
	existing := []SubscriptionRow{
		{UID: 1, Topic: model.OrderFulfilledTopic(), Mode: model.ModeRepeat},
	}
	requests := []SubscriptionRequest{
		{Topic: model.PriceThresholdTopic(testAmountAsset, testPriceAsset, 1.0), Mode: model.ModeOnce},
	}
	cfg := SubscribeConfig{MaxSubscriptionsPerAddressPerPair: 10, MaxSubscriptionsPerAddressTotal: 1}

	err := checkLimits(addr, existing, requests, cfg)
	assert.Error(t, err)
	var limitErr *apperr.LimitExceeded
	assert.ErrorAs(t, err, &limitErr)
}

func TestCheckLimits_PerPairLimitExceeded(t *testing.T) {
	addr := model.NewAddress("3PGSLWrfGDWJ6dEKZFxaANTX8mVjKoHyytC")
	existing := []SubscriptionRow{
		{UID: 1, Topic: model.PriceThresholdTopic(testAmountAsset, testPriceAsset, 1.0), Mode: model.ModeRepeat},
	}
	requests := []SubscriptionRequest{
		{Topic: model.PriceThresholdTopic(testAmountAsset, testPriceAsset, 2.0), Mode: model.ModeOnce},
	}
	cfg := SubscribeConfig{MaxSubscriptionsPerAddressPerPair: 1, MaxSubscriptionsPerAddressTotal: 50}

	err := checkLimits(addr, existing, requests, cfg)
	assert.Error(t, err)
}

func TestCheckLimits_WithinLimits(t *testing.T) {
	addr := model.NewAddress("3PGSLWrfGDWJ6dEKZFxaANTX8mVjKoHyytC")
	existing := []SubscriptionRow{
		{UID: 1, Topic: model.OrderFulfilledTopic(), Mode: model.ModeRepeat},
	}
	requests := []SubscriptionRequest{
		{Topic: model.PriceThresholdTopic(testAmountAsset, testPriceAsset, 1.0), Mode: model.ModeOnce},
	}
	cfg := SubscribeConfig{MaxSubscriptionsPerAddressPerPair: 10, MaxSubscriptionsPerAddressTotal: 50}

	assert.NoError(t, checkLimits(addr, existing, requests, cfg))
}

func TestCheckLimits_SameThresholdTwiceCountsOnce(t *testing.T) {
	addr := model.NewAddress("3PGSLWrfGDWJ6dEKZFxaANTX8mVjKoHyytC")
	existing := []SubscriptionRow{
		{UID: 1, Topic: model.PriceThresholdTopic(testAmountAsset, testPriceAsset, 1.0), Mode: model.ModeOnce},
	}
	requests := []SubscriptionRequest{
		// Same topic as existing (update-in-place candidate), must not count
		// twice against the per-pair limit.
		{Topic: model.PriceThresholdTopic(testAmountAsset, testPriceAsset, 1.0), Mode: model.ModeRepeat},
	}
	cfg := SubscribeConfig{MaxSubscriptionsPerAddressPerPair: 1, MaxSubscriptionsPerAddressTotal: 50}

	assert.NoError(t, checkLimits(addr, existing, requests, cfg))
}

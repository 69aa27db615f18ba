// Package processing matches an Event against stored subscriptions,
// localizes the resulting notification per device, and enqueues it for
// delivery — all within one database transaction per event
// (crates/processing/src/processing.rs's MessagePump).
package processing

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wavesplatform/push-notifications/internal/apperr"
	"github.com/wavesplatform/push-notifications/internal/database"
	"github.com/wavesplatform/push-notifications/internal/model"
	"github.com/wavesplatform/push-notifications/internal/processing/localize"
)

const fallbackLang = "en"

// TickerResolver resolves an asset id to its human-readable ticker,
// implemented by processing/asset.RemoteGateway.
type TickerResolver interface {
	Ticker(ctx context.Context, a model.Asset) (ticker string, found bool, err error)
}

// EventProcessor matches one event against subscriptions and enqueues the
// resulting notifications. Wrap it in a Dispatcher so only one goroutine
// ever calls ProcessEvent even when multiple sources feed events.
type EventProcessor struct {
	pool          *pgxpool.Pool
	subscriptions database.SubscriptionRepo
	devices       database.DeviceRepo
	messages      database.Queue
	assets        TickerResolver
	localizer     localize.Localizer
}

// NewEventProcessor wires a processor against its collaborators.
func NewEventProcessor(pool *pgxpool.Pool, assets TickerResolver, localizer localize.Localizer) *EventProcessor {
	return &EventProcessor{
		pool:      pool,
		assets:    assets,
		localizer: localizer,
	}
}

// ProcessEvent matches event against subscriptions and enqueues every
// resulting notification, in one transaction. In the processor binary it is
// called only from Dispatcher.Run's goroutine; ingesters go through
// Dispatcher.ProcessEvent, which queues the event on a channel and blocks
// until this call's result comes back.
func (p *EventProcessor) ProcessEvent(ctx context.Context, event model.Event) error {
	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return apperr.NewTransient("begin event transaction", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // no-op after Commit

	subscriptions, err := p.subscriptions.Matching(ctx, tx, event)
	if err != nil {
		return err
	}

	for _, sub := range subscriptions {
		isOneshot := sub.Mode == model.ModeOnce

		msg, err := p.makeMessage(ctx, event, sub.Topic)
		if err != nil {
			return err
		}

		devices, err := p.devices.Subscribers(ctx, tx, sub.Subscriber)
		if err != nil {
			return err
		}

		for _, device := range devices {
			localized, err := p.localize(msg, device.Locale)
			if err != nil {
				return err
			}
			meta := makeMetadata(event, device)
			prepared := model.PreparedMessage{
				Device:  device,
				Message: localized,
				Data:    &meta,
			}
			if err := p.messages.Enqueue(ctx, tx, prepared); err != nil {
				return err
			}
		}

		if isOneshot {
			if err := p.subscriptions.CompleteOneshot(ctx, tx, sub); err != nil {
				return err
			}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return apperr.NewTransient("commit event transaction", err)
	}
	return nil
}

func (p *EventProcessor) makeMessage(ctx context.Context, event model.Event, topic model.Topic) (model.Message, error) {
	switch {
	case event.Kind == model.EventOrderExecuted && topic.Kind == model.TopicOrderFulfilled:
		amountTicker, err := p.assetTicker(ctx, event.AssetPair.AmountAsset)
		if err != nil {
			return model.Message{}, err
		}
		priceTicker, err := p.assetTicker(ctx, event.AssetPair.PriceAsset)
		if err != nil {
			return model.Message{}, err
		}
		return model.Message{
			Kind:              model.MessageOrderExecuted,
			OrderType:         event.OrderType,
			Side:              event.Side,
			AmountAssetTicker: amountTicker,
			PriceAssetTicker:  priceTicker,
			Execution:         event.Execution,
			Timestamp:         event.Timestamp,
		}, nil

	case event.Kind == model.EventPriceChanged && topic.Kind == model.TopicPriceThreshold:
		amountTicker, err := p.assetTicker(ctx, event.AssetPair.AmountAsset)
		if err != nil {
			return model.Message{}, err
		}
		priceTicker, err := p.assetTicker(ctx, event.AssetPair.PriceAsset)
		if err != nil {
			return model.Message{}, err
		}
		return model.Message{
			Kind:              model.MessagePriceThresholdReached,
			AmountAssetTicker: amountTicker,
			PriceAssetTicker:  priceTicker,
			Threshold:         topic.PriceThreshold,
			Timestamp:         event.Timestamp,
		}, nil

	default:
		return model.Message{}, apperr.NewFatal("make message", fmt.Errorf("unrecognized combination of event kind %v and topic kind %v", event.Kind, topic.Kind))
	}
}

func makeMetadata(event model.Event, device model.Device) model.MessageData {
	addr := device.Address.AsBase58String()
	switch event.Kind {
	case model.EventOrderExecuted:
		return model.NewOrderExecutedData(event.Execution, event.AssetPair.AmountAsset.ID(), event.AssetPair.PriceAsset.ID(), addr)
	default: // EventPriceChanged
		return model.NewPriceThresholdData(event.AssetPair.AmountAsset.ID(), event.AssetPair.PriceAsset.ID(), addr)
	}
}

func (p *EventProcessor) assetTicker(ctx context.Context, a model.Asset) (string, error) {
	ticker, found, err := p.assets.Ticker(ctx, a)
	if err != nil {
		return "", err
	}
	if !found {
		return a.ID(), nil
	}
	return ticker, nil
}

// localize renders msg for locale.Lang, falling back to English and then
// treating a missing fallback as fatal: the operator is expected to keep an
// "en" translation for every key, always (crates/processing/src/processing.rs's
// MessagePump::localize).
func (p *EventProcessor) localize(msg model.Message, locale model.Locale) (model.LocalizedMessage, error) {
	if lm, ok := p.localizer.Localize(msg, locale.Lang); ok {
		return lm, nil
	}
	lm, ok := p.localizer.Localize(msg, fallbackLang)
	if !ok {
		return model.LocalizedMessage{}, apperr.NewFatal("localize message", fmt.Errorf("missing %q fallback translation for message kind %v", fallbackLang, msg.Kind))
	}
	return lm, nil
}

// Package blockchain ingests the Waves blockchain-updates gRPC stream,
// aggregates matcher trade prices per asset pair into PriceChanged events,
// and hands them to the event processor
// (original_source/.../source/blockchain_updates.rs,
// crates/push-notifications-processor/src/source/prices.rs).
package blockchain

import (
	"context"

	"google.golang.org/grpc"

	"github.com/wavesplatform/push-notifications/internal/core"
	"github.com/wavesplatform/push-notifications/internal/model"
	"github.com/wavesplatform/push-notifications/internal/processing/asset"
)

// EventProcessor is the collaborator that matches an event against stored
// subscriptions and enqueues notifications.
type EventProcessor interface {
	ProcessEvent(ctx context.Context, event model.Event) error
}

// Config selects where the source starts reading from and what it talks to.
type Config struct {
	BlockchainUpdatesURL string
	DataServiceURL       string
	MatcherAddress       model.Address
	StartingHeight       *int32 // nil means "resolve from the Data Service"
}

// Source reads the blockchain-updates stream and turns matcher trades into
// PriceChanged events.
type Source struct {
	conn         *grpc.ClientConn
	client       *client
	processor    EventProcessor
	matcher      model.Address
	aggregators  map[model.AssetPair]*priceAggregator
	startHeight  int32
	logger       core.ILogger
}

// New connects to the blockchain-updates endpoint, loads the initial set of
// asset pairs and starting height from the Data Service, and preloads their
// tickers.
func New(ctx context.Context, cfg Config, processor EventProcessor, assets *asset.RemoteGateway, logger core.ILogger) (*Source, error) {
	ds := newDataService(cfg.DataServiceURL)

	pairs, err := ds.loadPairs(ctx)
	if err != nil {
		return nil, err
	}

	startHeight := int32(0)
	if cfg.StartingHeight != nil {
		startHeight = *cfg.StartingHeight
		logger.Info("starting height configured explicitly", "height", startHeight)
	} else {
		startHeight, err = ds.loadCurrentBlockchainHeight(ctx, cfg.MatcherAddress)
		if err != nil {
			return nil, err
		}
		logger.Info("resolved starting height from data service", "height", startHeight)
	}

	aggregators := make(map[model.AssetPair]*priceAggregator, len(pairs))
	uniqueAssets := make(map[model.Asset]struct{})
	for _, p := range pairs {
		aggregators[p.pair] = newPriceAggregator(p.lastPrice)
		uniqueAssets[p.pair.AmountAsset] = struct{}{}
		uniqueAssets[p.pair.PriceAsset] = struct{}{}
	}
	assetList := make([]model.Asset, 0, len(uniqueAssets))
	for a := range uniqueAssets {
		assetList = append(assetList, a)
	}
	if err := assets.Preload(ctx, assetList); err != nil {
		return nil, err
	}

	conn, grpcClient, err := connect(ctx, cfg.BlockchainUpdatesURL)
	if err != nil {
		return nil, err
	}

	return &Source{
		conn:        conn,
		client:      grpcClient,
		processor:   processor,
		matcher:     cfg.MatcherAddress,
		aggregators: aggregators,
		startHeight: startHeight,
		logger:      logger,
	}, nil
}

// Close releases the gRPC connection.
func (s *Source) Close() error {
	return s.conn.Close()
}

// Run streams updates until ctx is cancelled or the stream fails.
func (s *Source) Run(ctx context.Context) error {
	items, err := s.client.stream(ctx, s.startHeight)
	if err != nil {
		return err
	}

	for item := range items {
		if item.err != nil {
			return item.err
		}
		if item.update.append == nil {
			// Rollback: this service makes no attempt to compensate for
			// already-sent notifications about reverted trades.
			continue
		}
		if err := s.processBlock(ctx, item.update.append); err != nil {
			return err
		}
	}
	return nil
}

func (s *Source) processBlock(ctx context.Context, block *appendBlock) error {
	for _, agg := range s.aggregators {
		agg.reset()
	}

	for _, tx := range block.transactions {
		if tx.sender != s.matcher {
			continue
		}
		price := tx.price()
		agg, ok := s.aggregators[tx.assetPair]
		if !ok {
			agg = newPriceAggregator(price)
			s.aggregators[tx.assetPair] = agg
		}
		agg.update(price)
	}

	for _, agg := range s.aggregators {
		agg.finalize()
	}

	for pair, agg := range s.aggregators {
		r := agg.rangeValue()
		if r.IsEmpty() {
			continue
		}
		event := model.NewPriceChangedEvent(pair, r, block.timestamp)
		if err := s.processor.ProcessEvent(ctx, event); err != nil {
			return err
		}
	}
	return nil
}

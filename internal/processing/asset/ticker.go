// Package asset resolves an Asset id to its human-readable ticker through
// the Assets Service, caching results for a day so every notification does
// not pay a round trip for well-known assets (crates/processing/src/asset.rs's
// RemoteGateway/CachedLoader).
package asset

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/wavesplatform/push-notifications/internal/apperr"
	"github.com/wavesplatform/push-notifications/internal/model"
	httpclient "github.com/wavesplatform/push-notifications/pkg/http"
)

// tickerTTL matches the original's TimedCache::with_lifespan(60*60*24).
const tickerTTL = 24 * time.Hour

const cacheSize = 4096

type assetInfo struct {
	ticker *string // nil means the Assets Service has no ticker for this asset
}

// RemoteGateway resolves asset tickers via the Assets Service HTTP API,
// behind a TTL cache keyed by asset id.
type RemoteGateway struct {
	client *httpclient.Client
	cache  *lru.LRU[string, assetInfo]
}

// NewRemoteGateway builds a gateway against the Assets Service at baseURL.
func NewRemoteGateway(baseURL string) *RemoteGateway {
	return &RemoteGateway{
		client: httpclient.NewClient(baseURL, 10*time.Second, nil),
		cache:  lru.NewLRU[string, assetInfo](cacheSize, nil, tickerTTL),
	}
}

// Preload warms the cache for a batch of assets in one request, used once at
// startup for every asset pair the price aggregator already knows about.
func (g *RemoteGateway) Preload(ctx context.Context, assets []model.Asset) error {
	_, err := g.load(ctx, assets)
	return err
}

// Ticker returns an asset's ticker, or (empty, false) if the Assets Service
// has none for it. Callers fall back to the raw asset id in that case
// (crates/processing/src/processing.rs's asset_ticker).
func (g *RemoteGateway) Ticker(ctx context.Context, a model.Asset) (string, bool, error) {
	if info, ok := g.cache.Get(a.ID()); ok {
		if info.ticker == nil {
			return "", false, nil
		}
		return *info.ticker, true, nil
	}
	infos, err := g.load(ctx, []model.Asset{a})
	if err != nil {
		return "", false, err
	}
	info := infos[0]
	if info.ticker == nil {
		return "", false, nil
	}
	return *info.ticker, true, nil
}

type assetsServiceResponse struct {
	Data []struct {
		Data *struct {
			Ticker *string `json:"ticker"`
		} `json:"data"`
	} `json:"data"`
}

func (g *RemoteGateway) load(ctx context.Context, assets []model.Asset) ([]assetInfo, error) {
	if len(assets) == 0 {
		return nil, nil
	}
	ids := make([]string, len(assets))
	for i, a := range assets {
		ids[i] = a.ID()
	}
	body, err := g.client.Get(ctx, buildAssetsPath(ids), map[string]string{"format": "full"})
	if err != nil {
		return nil, apperr.NewTransient("load asset tickers", err)
	}
	var resp assetsServiceResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, apperr.NewTransient("decode assets response", err)
	}
	if len(resp.Data) != len(assets) {
		return nil, apperr.NewFatal("load asset tickers", fmt.Errorf("assets service returned %d entries for %d requested assets", len(resp.Data), len(assets)))
	}
	infos := make([]assetInfo, len(assets))
	for i, item := range resp.Data {
		if item.Data == nil {
			infos[i] = assetInfo{}
			continue
		}
		infos[i] = assetInfo{ticker: item.Data.Ticker}
	}
	for i, a := range assets {
		g.cache.Add(a.ID(), infos[i])
	}
	return infos, nil
}

// buildAssetsPath encodes every asset id as a repeated ids[] query
// parameter, the Assets Service's documented batch-lookup form.
func buildAssetsPath(ids []string) string {
	path := "/v1/assets?"
	for i, id := range ids {
		if i > 0 {
			path += "&"
		}
		path += "ids%5B%5D=" + id
	}
	return path
}

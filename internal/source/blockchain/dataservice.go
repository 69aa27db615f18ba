package blockchain

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/wavesplatform/push-notifications/internal/apperr"
	"github.com/wavesplatform/push-notifications/internal/model"
	httpclient "github.com/wavesplatform/push-notifications/pkg/http"
)

// dataService is a thin client over the Data Service's pairs and exchange-
// transaction-history endpoints, used once at startup to seed the price
// aggregators and to resolve a starting block height
// (original_source/.../source/data_service.rs).
type dataService struct {
	client *httpclient.Client
}

func newDataService(baseURL string) *dataService {
	return &dataService{client: httpclient.NewClient(baseURL, 10*time.Second, nil)}
}

type pairsResponse struct {
	Items []struct {
		AmountAsset string `json:"amountAsset"`
		PriceAsset  string `json:"priceAsset"`
		Data        struct {
			LastPrice float64 `json:"lastPrice"`
		} `json:"data"`
	} `json:"items"`
}

type seedPair struct {
	pair      model.AssetPair
	lastPrice float64
}

// loadPairs returns every known asset pair with its last traded price, used
// to seed one price aggregator per pair.
func (d *dataService) loadPairs(ctx context.Context) ([]seedPair, error) {
	body, err := d.client.Get(ctx, "/pairs", nil)
	if err != nil {
		return nil, apperr.NewTransient("load pairs from data service", err)
	}
	var resp pairsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, apperr.NewTransient("decode data service pairs response", err)
	}
	pairs := make([]seedPair, 0, len(resp.Items))
	for _, item := range resp.Items {
		pairs = append(pairs, seedPair{
			pair: model.AssetPair{
				AmountAsset: model.AssetFromID(item.AmountAsset),
				PriceAsset:  model.AssetFromID(item.PriceAsset),
			},
			lastPrice: item.Data.LastPrice,
		})
	}
	return pairs, nil
}

type exchangeTxHistoryResponse struct {
	Items []struct {
		Data struct {
			Height int32 `json:"height"`
		} `json:"data"`
	} `json:"items"`
}

// loadCurrentBlockchainHeight returns the height of the matcher's most
// recent Exchange transaction, used as the starting height when the
// operator has not pinned one explicitly.
func (d *dataService) loadCurrentBlockchainHeight(ctx context.Context, matcherAddress model.Address) (int32, error) {
	body, err := d.client.Get(ctx, "/transactions/exchange", map[string]string{
		"sender": matcherAddress.AsBase58String(),
		"sort":   "desc",
		"limit":  "1",
	})
	if err != nil {
		return 0, apperr.NewTransient("load current blockchain height", err)
	}
	var resp exchangeTxHistoryResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return 0, apperr.NewTransient("decode data service exchange tx response", err)
	}
	if len(resp.Items) == 0 {
		return 0, apperr.NewFatal("load current blockchain height", fmt.Errorf("no exchange transactions from the matcher in data service"))
	}
	return resp.Items[0].Data.Height, nil
}

package blockchain

import (
	"context"
	"math"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/wavesplatform/push-notifications/internal/model"
	"github.com/wavesplatform/push-notifications/internal/pb"
)

// update is this package's decoded form of one gRPC SubscribeEvent: either
// an appended block/microblock or a rollback. Rollbacks carry no fields this
// service reads (spec.md §4.2 Non-goals: rollback compensation).
type update struct {
	append *appendBlock // nil for a rollback
}

type appendBlock struct {
	timestamp    time.Time // block timestamp, or wall-clock time for a microblock
	transactions []exchangeTx
}

// exchangeTx is one Exchange transaction's trade, priced with the fixed
// 8-decimal scale the matcher always uses (see price()).
type exchangeTx struct {
	sender    model.Address
	assetPair model.AssetPair
	rawPrice  int64
}

const priceDecimals = 8

// price returns the trade price as a real number, dividing out the fixed
// 8-decimal scale every matcher price uses on the wire.
func (t exchangeTx) price() float64 {
	return float64(t.rawPrice) / math.Pow10(priceDecimals)
}

// client wraps the generated gRPC stub with the connection dial and
// subscribe call this service needs (original_source/src/lib/source/
// blockchain_updates.rs's BlockchainUpdatesClient).
type client struct {
	api pb.BlockchainUpdatesApiClient
}

// connect dials the blockchain-updates gRPC endpoint.
func connect(ctx context.Context, url string) (*grpc.ClientConn, *client, error) {
	conn, err := grpc.NewClient(url, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, nil, err
	}
	return conn, &client{api: pb.NewBlockchainUpdatesApiClient(conn)}, nil
}

// stream opens the update subscription starting at fromHeight and decodes
// every message as it arrives, sending results on the returned channel
// until ctx is cancelled or the stream ends.
func (c *client) stream(ctx context.Context, fromHeight int32) (<-chan streamItem, error) {
	sub, err := c.api.Subscribe(ctx, &pb.SubscribeRequest{FromHeight: fromHeight})
	if err != nil {
		return nil, err
	}

	out := make(chan streamItem, 1)
	go func() {
		defer close(out)
		for {
			event, err := sub.Recv()
			if err != nil {
				select {
				case out <- streamItem{err: err}:
				case <-ctx.Done():
				}
				return
			}
			if event.Update == nil {
				continue
			}
			upd, err := convertUpdate(event.Update)
			if err != nil {
				select {
				case out <- streamItem{err: err}:
				case <-ctx.Done():
				}
				return
			}
			select {
			case out <- streamItem{update: upd}:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}

type streamItem struct {
	update *update
	err    error
}

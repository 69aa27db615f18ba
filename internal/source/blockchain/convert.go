package blockchain

import (
	"fmt"
	"time"

	"github.com/wavesplatform/push-notifications/internal/model"
	"github.com/wavesplatform/push-notifications/internal/pb"
	"github.com/wavesplatform/push-notifications/internal/waves"
)

// convertUpdate decodes a gRPC BlockchainUpdated message into this
// package's update type (original_source/src/lib/source/
// blockchain_updates.rs's convert module).
func convertUpdate(src *pb.BlockchainUpdated) (*update, error) {
	switch {
	case src.Append != nil:
		return convertAppend(src.Append)
	case src.Rollback != nil:
		return &update{}, nil
	default:
		return nil, fmt.Errorf("failed to parse blockchain update: neither append nor rollback set")
	}
}

func convertAppend(ap *pb.Append) (*update, error) {
	var timestamp time.Time
	var transactions []*pb.SignedTransaction

	switch {
	case ap.Block != nil:
		if ap.Block.Header != nil {
			timestamp = time.UnixMilli(ap.Block.Header.Timestamp).UTC()
		}
		transactions = ap.Block.Transactions
	case ap.MicroBlock != nil && ap.MicroBlock.MicroBlock != nil:
		// Microblocks carry no timestamp of their own; using wall-clock time
		// here differs from the real microblock timestamp by a negligible
		// margin, which is acceptable for notification purposes.
		timestamp = time.Now().UTC()
		transactions = ap.MicroBlock.MicroBlock.Transactions
	default:
		return nil, fmt.Errorf("failed to parse blockchain update: append body is neither a block nor a microblock")
	}

	if timestamp.IsZero() {
		timestamp = time.Now().UTC()
	}

	if len(transactions) != len(ap.TransactionsMetadata) {
		return nil, fmt.Errorf("failed to parse blockchain update: %d transactions but %d metadata entries", len(transactions), len(ap.TransactionsMetadata))
	}

	exchangeTxs := make([]exchangeTx, 0, len(transactions))
	for i, tx := range transactions {
		meta := ap.TransactionsMetadata[i]
		converted, ok, err := convertExchangeTx(tx, meta)
		if err != nil {
			return nil, err
		}
		if ok {
			exchangeTxs = append(exchangeTxs, converted)
		}
	}

	return &update{append: &appendBlock{timestamp: timestamp, transactions: exchangeTxs}}, nil
}

// convertExchangeTx extracts a trade out of a signed transaction, returning
// ok=false for every transaction that isn't an Exchange (the vast
// majority).
func convertExchangeTx(tx *pb.SignedTransaction, meta *pb.TransactionMetadata) (exchangeTx, bool, error) {
	if meta == nil || meta.Exchange == nil {
		return exchangeTx{}, false, nil
	}
	if tx.WavesTransaction == nil {
		return exchangeTx{}, false, fmt.Errorf("failed to parse blockchain update: exchange transaction has no Waves transaction body")
	}
	data := tx.WavesTransaction.Exchange
	if data == nil {
		return exchangeTx{}, false, fmt.Errorf("failed to parse blockchain update: exchange metadata without exchange transaction data")
	}
	if len(data.Orders) == 0 || data.Orders[0].AssetPair == nil {
		return exchangeTx{}, false, fmt.Errorf("failed to parse blockchain update: exchange transaction missing asset pair")
	}
	pair := data.Orders[0].AssetPair

	return exchangeTx{
		sender: waves.AddressFromRawBytes(meta.SenderAddress),
		assetPair: model.AssetPair{
			AmountAsset: waves.AssetFromRawID(pair.AmountAssetID),
			PriceAsset:  waves.AssetFromRawID(pair.PriceAssetID),
		},
		rawPrice: data.Price,
	}, true, nil
}

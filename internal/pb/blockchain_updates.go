// Package pb holds hand-authored, protoc-gen-go-grpc-shaped bindings for the
// subset of the Waves blockchain-updates gRPC API this service consumes
// (waves.events.grpc.BlockchainUpdatesApi, as imported by
// original_source/src/lib/source/blockchain_updates.rs's
// waves_protobuf_schemas::waves::events::grpc module). Only the messages and
// fields actually read by internal/source/blockchain are modeled; this is
// not a full schema mirror.
package pb

import (
	"context"

	"google.golang.org/grpc"
)

// SubscribeRequest asks the node to stream updates starting at FromHeight.
// ToHeight of 0 means "stream indefinitely".
type SubscribeRequest struct {
	FromHeight int32
	ToHeight   int32
}

// SubscribeEvent is one item of the update stream.
type SubscribeEvent struct {
	Update *BlockchainUpdated
}

// BlockchainUpdated is either an Append or a Rollback at Height.
type BlockchainUpdated struct {
	Height int32
	ID     []byte

	Append   *Append   // nil if this is a rollback
	Rollback *Rollback // nil if this is an append
}

// Append carries one block or microblock and the metadata of its
// transactions.
type Append struct {
	Block               *Block          // nil for a microblock append
	MicroBlock          *SignedMicroBlock // nil for a full-block append
	TransactionIDs      [][]byte
	TransactionsMetadata []*TransactionMetadata
}

// Block is a full, signed block.
type Block struct {
	Header       *BlockHeader
	Transactions []*SignedTransaction
}

// BlockHeader carries the fields this package reads out of a full block.
type BlockHeader struct {
	Timestamp int64 // unix millis
}

// SignedMicroBlock wraps a MicroBlock with the block id it extends into.
type SignedMicroBlock struct {
	TotalBlockID []byte
	MicroBlock   *MicroBlock
}

// MicroBlock is an unconfirmed block extension; it carries no timestamp of
// its own.
type MicroBlock struct {
	Transactions []*SignedTransaction
}

// Rollback identifies the block id being rolled back to.
type Rollback struct {
	BlockID []byte
}

// TransactionMetadata carries the decoded, type-specific metadata the node
// computed for a transaction; only Exchange metadata is modeled.
type TransactionMetadata struct {
	SenderAddress []byte
	Exchange      *ExchangeMetadata // nil unless this transaction is an Exchange
}

// ExchangeMetadata is a marker: its presence on TransactionMetadata.Exchange
// is what identifies the transaction as an Exchange transaction.
type ExchangeMetadata struct{}

// SignedTransaction wraps a signed, verified transaction.
type SignedTransaction struct {
	WavesTransaction *Transaction // nil if this is an Ethereum-style transaction, which this service ignores
}

// Transaction is a decoded Waves transaction body; only the Exchange variant
// is modeled.
type Transaction struct {
	Timestamp int64
	Exchange  *ExchangeTransactionData // nil unless Data is the Exchange variant
}

// ExchangeTransactionData is the body of an Exchange transaction: a trade
// matching one buy and one sell order.
type ExchangeTransactionData struct {
	Amount int64
	Price  int64
	Orders []*Order
}

// Order is one side of an Exchange transaction.
type Order struct {
	AssetPair *OrderAssetPair
}

// OrderAssetPair names the two assets traded, empty AmountAssetID/PriceAssetID
// meaning WAVES.
type OrderAssetPair struct {
	AmountAssetID []byte
	PriceAssetID  []byte
}

// BlockchainUpdatesApiClient is the subset of the generated gRPC client this
// service calls.
type BlockchainUpdatesApiClient interface {
	Subscribe(ctx context.Context, in *SubscribeRequest, opts ...grpc.CallOption) (BlockchainUpdatesApi_SubscribeClient, error)
}

// BlockchainUpdatesApi_SubscribeClient is the server-streaming response
// handle for Subscribe, shaped like protoc-gen-go-grpc's generated
// <Service>_<Method>Client interface.
type BlockchainUpdatesApi_SubscribeClient interface {
	Recv() (*SubscribeEvent, error)
	grpc.ClientStream
}

type blockchainUpdatesApiClient struct {
	cc grpc.ClientConnInterface
}

// NewBlockchainUpdatesApiClient builds a client bound to an established
// connection, matching the generated New<Service>Client constructor shape.
func NewBlockchainUpdatesApiClient(cc grpc.ClientConnInterface) BlockchainUpdatesApiClient {
	return &blockchainUpdatesApiClient{cc: cc}
}

const subscribeMethod = "/waves.events.grpc.BlockchainUpdatesApi/Subscribe"

func (c *blockchainUpdatesApiClient) Subscribe(ctx context.Context, in *SubscribeRequest, opts ...grpc.CallOption) (BlockchainUpdatesApi_SubscribeClient, error) {
	stream, err := c.cc.NewStream(ctx, &grpc.StreamDesc{StreamName: "Subscribe", ServerStreams: true}, subscribeMethod, opts...)
	if err != nil {
		return nil, err
	}
	x := &blockchainUpdatesApiSubscribeClient{stream}
	if err := x.ClientStream.SendMsg(in); err != nil {
		return nil, err
	}
	if err := x.ClientStream.CloseSend(); err != nil {
		return nil, err
	}
	return x, nil
}

type blockchainUpdatesApiSubscribeClient struct {
	grpc.ClientStream
}

func (x *blockchainUpdatesApiSubscribeClient) Recv() (*SubscribeEvent, error) {
	m := new(SubscribeEvent)
	if err := x.ClientStream.RecvMsg(m); err != nil {
		return nil, err
	}
	return m, nil
}

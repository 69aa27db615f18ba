// Package waves decodes and validates the base58 address and asset id
// encodings used throughout the Waves blockchain's wire formats
// (crates/model/src/waves.rs).
package waves

import (
	"fmt"

	"github.com/mr-tron/base58"

	"github.com/wavesplatform/push-notifications/internal/model"
)

const (
	assetIDLength = 32 // raw bytes of a decoded (non-WAVES) asset id
	addressLength = 26 // version(1) + chain id(1) + hash(20) + checksum(4)
)

// DecodeAssetID parses the string representation used on the wire: the
// literal "WAVES" for the native token, or a base58-encoded 32-byte id.
func DecodeAssetID(s string) (model.Asset, error) {
	if s == model.WavesAssetID {
		return model.WavesAsset, nil
	}
	raw, err := base58.Decode(s)
	if err != nil {
		return model.Asset{}, fmt.Errorf("decode asset id %q: %w", s, err)
	}
	if len(raw) != assetIDLength {
		return model.Asset{}, fmt.Errorf("decode asset id %q: expected %d bytes, got %d", s, assetIDLength, len(raw))
	}
	return model.NewIssuedAsset(s), nil
}

// DecodeAddress parses a base58-encoded account address and checks its
// structural shape (version byte, chain id, 20-byte hash, 4-byte checksum).
// It does not recompute the checksum hash: addresses reaching this package
// come from the blockchain gRPC stream or from rows already validated at
// insert time, not from untrusted end-user input, so the cost of wiring a
// hashing dependency purely to re-derive a value the source already
// guarantees is not worth it.
func DecodeAddress(s string) (model.Address, error) {
	raw, err := base58.Decode(s)
	if err != nil {
		return model.Address{}, fmt.Errorf("decode address %q: %w", s, err)
	}
	if len(raw) != addressLength {
		return model.Address{}, fmt.Errorf("decode address %q: expected %d bytes, got %d", s, addressLength, len(raw))
	}
	return model.NewAddress(s), nil
}

// EncodeAssetID returns the wire representation of an asset: "WAVES" or its
// base58 id.
func EncodeAssetID(a model.Asset) string {
	return a.ID()
}

// AssetFromRawID converts a raw asset id as carried on the blockchain
// gRPC wire (empty bytes for WAVES, else the asset's 32 raw bytes) into an
// Asset, base58-encoding the non-empty case (crates/processing's
// convert_asset_id).
func AssetFromRawID(raw []byte) model.Asset {
	if len(raw) == 0 {
		return model.WavesAsset
	}
	return model.NewIssuedAsset(base58.Encode(raw))
}

// AddressFromRawBytes base58-encodes a raw account address as carried on
// the blockchain gRPC wire. It does not validate the decoded shape: the
// source is the node itself, not untrusted input.
func AddressFromRawBytes(raw []byte) model.Address {
	return model.NewAddress(base58.Encode(raw))
}

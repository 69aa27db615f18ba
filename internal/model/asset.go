// Package model holds the domain types shared across the notification
// pipeline: addresses, assets, subscriptions, events and the price-range
// state tracked per asset pair.
package model

// WavesAssetID is the id reserved for the native token.
const WavesAssetID = "WAVES"

// Asset is the native token (WAVES) or an issued asset identified by a
// base58 id. The zero value is WAVES.
type Asset struct {
	issued bool
	id     string // base58 id, empty for WAVES
}

// WavesAsset is the native token.
var WavesAsset = Asset{}

// NewIssuedAsset returns an issued asset with the given base58 id. The id is
// not validated here; callers that parse it from untrusted input should use
// a base58 decoder first (see internal/waves).
func NewIssuedAsset(id string) Asset {
	if id == WavesAssetID {
		return WavesAsset
	}
	return Asset{issued: true, id: id}
}

// AssetFromID parses the string representation used throughout the external
// interfaces: "WAVES" or a base58 asset id.
func AssetFromID(id string) Asset {
	return NewIssuedAsset(id)
}

// ID returns the canonical string representation: "WAVES" or the base58 id.
func (a Asset) ID() string {
	if !a.issued {
		return WavesAssetID
	}
	return a.id
}

// IsWaves reports whether this is the native token.
func (a Asset) IsWaves() bool {
	return !a.issued
}

func (a Asset) String() string {
	return a.ID()
}

// AssetPair is an ordered pair of assets: (amount_asset, price_asset).
// Swapping the two produces a different, unequal pair.
type AssetPair struct {
	AmountAsset Asset
	PriceAsset  Asset
}

func (p AssetPair) String() string {
	return p.AmountAsset.String() + "/" + p.PriceAsset.String()
}

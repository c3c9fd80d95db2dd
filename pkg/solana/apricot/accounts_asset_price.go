package apricot

import (
	"github.com/pkg/errors"
)

const AssetPriceSize = 8 // price_in_usd

// AssetPrice is the price the program last recorded for a pool's asset.
type AssetPrice struct {
	PriceInUsd uint64
}

func (obj *AssetPrice) Unmarshal(data []byte) error {
	if len(data) < AssetPriceSize {
		return errors.Wrapf(ErrInvalidAccountData, "invalid asset price size: %d", len(data))
	}

	var offset int

	getUint64(data, &obj.PriceInUsd, &offset)

	return nil
}

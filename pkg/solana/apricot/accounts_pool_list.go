package apricot

import (
	"crypto/ed25519"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
)

const PoolListHeaderSize = (2 + // count
	6) // padding

// PoolList holds the mint of every pool, indexed by pool id.
type PoolList struct {
	Mints []ed25519.PublicKey
}

func (obj *PoolList) Unmarshal(data []byte) error {
	if len(data) < PoolListHeaderSize {
		return errors.Wrapf(ErrInvalidAccountData, "invalid pool list size: %d", len(data))
	}

	var offset int

	var count uint16
	getUint16(data, &count, &offset)
	offset += 6 // padding

	if len(data) < PoolListHeaderSize+int(count)*ed25519.PublicKeySize {
		return errors.Wrapf(ErrInvalidAccountData, "pool list too short for %d pools: %d", count, len(data))
	}

	obj.Mints = make([]ed25519.PublicKey, count)
	for i := range obj.Mints {
		getKey(data, &obj.Mints[i], &offset)
	}

	return nil
}

// Pools maps each listed mint onto a copy of r.
func (obj *PoolList) Pools(r *Registry) (*Registry, error) {
	if len(obj.Mints) > 256 {
		return nil, errors.Wrapf(ErrInvalidAccountData, "too many pools: %d", len(obj.Mints))
	}

	var err error
	for i, mint := range obj.Mints {
		r, err = r.WithPool(mint, uint8(i))
		if err != nil {
			return nil, errors.Wrapf(err, "pool %d (%s)", i, base58.Encode(mint))
		}
	}
	return r, nil
}

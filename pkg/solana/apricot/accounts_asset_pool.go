package apricot

import (
	"crypto/ed25519"
	"fmt"

	"github.com/holiman/uint256"
	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
)

const MaxCoinNameLength = 32

const AssetPoolSize = (MaxCoinNameLength + // coin_name
	32 + // mint_key
	1 + // pool_id

	16 + // deposit_amount
	8 + // deposit_index
	16 + // borrow_amount
	8 + // borrow_index
	8 + // last_update_time

	32 + // spl_key
	32 + // price_key
	32 + // pyth_price_key

	8 + // serum_next_cl_id
	2 + // ltv_1000x
	8 + // mint_decimal_mult

	8 + // base_rate
	8 + // multiplier1
	8 + // multiplier2
	8 + // kink
	8 + // borrow_rate
	8) // deposit_rate

// AssetPool is the state of a single lending pool. Amounts are in token base
// units.
type AssetPool struct {
	CoinName string
	Mint     ed25519.PublicKey
	PoolId   uint8

	DepositAmount  *uint256.Int
	DepositIndex   float64
	BorrowAmount   *uint256.Int
	BorrowIndex    float64
	LastUpdateTime uint64

	PoolToken ed25519.PublicKey
	Price     ed25519.PublicKey
	PythPrice ed25519.PublicKey

	SerumNextClientId     uint64
	Ltv1000x              uint16
	MintDecimalMultiplier uint64

	BaseRate    float64
	Multiplier1 float64
	Multiplier2 float64
	Kink        float64
	BorrowRate  float64
	DepositRate float64
}

func (obj *AssetPool) Unmarshal(data []byte) error {
	if len(data) < AssetPoolSize {
		return errors.Wrapf(ErrInvalidAccountData, "invalid asset pool size: %d", len(data))
	}

	var offset int

	getFixedString(data, &obj.CoinName, MaxCoinNameLength, &offset)
	getKey(data, &obj.Mint, &offset)
	getUint8(data, &obj.PoolId, &offset)

	getAmount(data, &obj.DepositAmount, &offset)
	getFloat64(data, &obj.DepositIndex, &offset)
	getAmount(data, &obj.BorrowAmount, &offset)
	getFloat64(data, &obj.BorrowIndex, &offset)
	getUint64(data, &obj.LastUpdateTime, &offset)

	getKey(data, &obj.PoolToken, &offset)
	getKey(data, &obj.Price, &offset)
	getKey(data, &obj.PythPrice, &offset)

	getUint64(data, &obj.SerumNextClientId, &offset)
	getUint16(data, &obj.Ltv1000x, &offset)
	getUint64(data, &obj.MintDecimalMultiplier, &offset)

	getFloat64(data, &obj.BaseRate, &offset)
	getFloat64(data, &obj.Multiplier1, &offset)
	getFloat64(data, &obj.Multiplier2, &offset)
	getFloat64(data, &obj.Kink, &offset)
	getFloat64(data, &obj.BorrowRate, &offset)
	getFloat64(data, &obj.DepositRate, &offset)

	return nil
}

func (obj *AssetPool) String() string {
	return fmt.Sprintf(
		"AssetPool{coin_name=%s,mint=%s,pool_id=%d,deposit_amount=%d,borrow_amount=%d,ltv_1000x=%d}",
		obj.CoinName,
		base58.Encode(obj.Mint),
		obj.PoolId,
		obj.DepositAmount,
		obj.BorrowAmount,
		obj.Ltv1000x,
	)
}

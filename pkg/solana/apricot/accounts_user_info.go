package apricot

import (
	"github.com/holiman/uint256"
	"github.com/pkg/errors"
)

const UserInfoHeaderSize = (2 + // page_id
	1 + // self_liquidation_threshold
	1 + // post_self_liquidation_ratio_target
	1 + // post_extern_liquidation_ratio_target
	1) // num_assets

const UserAssetInfoSize = (1 + // pool_id
	1 + // use_as_collateral
	16 + // deposit_amount
	8 + // deposit_index
	16 + // borrow_amount
	8) // borrow_index

// UserInfoHeader is the fixed prefix of a user info account.
type UserInfoHeader struct {
	PageId uint16

	SelfLiquidationThreshold         uint8
	PostSelfLiquidationRatioTarget   uint8
	PostExternLiquidationRatioTarget uint8

	NumAssets uint8
}

func (obj *UserInfoHeader) Unmarshal(data []byte) error {
	if len(data) < UserInfoHeaderSize {
		return ErrInvalidAccountData
	}

	var offset int

	getUint16(data, &obj.PageId, &offset)
	getUint8(data, &obj.SelfLiquidationThreshold, &offset)
	getUint8(data, &obj.PostSelfLiquidationRatioTarget, &offset)
	getUint8(data, &obj.PostExternLiquidationRatioTarget, &offset)
	getUint8(data, &obj.NumAssets, &offset)

	return nil
}

// IsActive reports whether the user has been added to a users page. Users
// that aren't must deposit with AddUserAndDeposit.
func (obj *UserInfoHeader) IsActive() bool {
	return obj.PageId != InvalidPageId
}

// UserAssetInfo is a user's position in one pool. Amounts are in token base
// units.
type UserAssetInfo struct {
	PoolId          uint8
	UseAsCollateral bool

	DepositAmount *uint256.Int
	DepositIndex  float64
	BorrowAmount  *uint256.Int
	BorrowIndex   float64
}

func (obj *UserAssetInfo) Unmarshal(data []byte) error {
	if len(data) < UserAssetInfoSize {
		return errors.Wrapf(ErrInvalidAccountData, "invalid user asset info size: %d", len(data))
	}

	var offset int

	var useAsCollateral uint8
	getUint8(data, &obj.PoolId, &offset)
	getUint8(data, &useAsCollateral, &offset)
	obj.UseAsCollateral = useAsCollateral != 0

	getAmount(data, &obj.DepositAmount, &offset)
	getFloat64(data, &obj.DepositIndex, &offset)
	getAmount(data, &obj.BorrowAmount, &offset)
	getFloat64(data, &obj.BorrowIndex, &offset)

	return nil
}

// UserInfo is a user info account with its per asset records.
type UserInfo struct {
	UserInfoHeader

	Assets []UserAssetInfo
}

func (obj *UserInfo) Unmarshal(data []byte) error {
	if err := obj.UserInfoHeader.Unmarshal(data); err != nil {
		return err
	}

	expected := UserInfoHeaderSize + int(obj.NumAssets)*UserAssetInfoSize
	if len(data) < expected {
		return errors.Wrapf(ErrInvalidAccountData, "user info too short for %d assets: %d", obj.NumAssets, len(data))
	}

	obj.Assets = make([]UserAssetInfo, obj.NumAssets)
	for i := range obj.Assets {
		offset := UserInfoHeaderSize + i*UserAssetInfoSize
		if err := obj.Assets[i].Unmarshal(data[offset:]); err != nil {
			return err
		}
	}

	return nil
}

// Asset returns the user's position in poolId.
func (obj *UserInfo) Asset(poolId uint8) (*UserAssetInfo, bool) {
	for i := range obj.Assets {
		if obj.Assets[i].PoolId == poolId {
			return &obj.Assets[i], true
		}
	}
	return nil, false
}

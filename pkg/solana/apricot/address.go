package apricot

import (
	"crypto/ed25519"

	"github.com/apricot-lend/apricot-go/pkg/solana"
)

// GetUserInfoAddress returns the account holding a wallet's positions and
// configuration.
func (r *Registry) GetUserInfoAddress(wallet ed25519.PublicKey) (ed25519.PublicKey, error) {
	return solana.CreateWithSeed(wallet, UserInfoSeed, r.Program)
}

// GetUserPagesStatsAddress returns the account counting free slots per
// users page.
func (r *Registry) GetUserPagesStatsAddress() (ed25519.PublicKey, error) {
	return solana.CreateWithSeed(r.BasePda, UserPagesStatsSeed, r.Program)
}

// GetUsersPageAddress returns the account listing the users on a page.
func (r *Registry) GetUsersPageAddress(pageId uint16) (ed25519.PublicKey, error) {
	return solana.CreateWithSeed(r.BasePda, UsersPageSeed(pageId), r.Program)
}

// GetPoolListAddress returns the account decoded by PoolList.
func (r *Registry) GetPoolListAddress() (ed25519.PublicKey, error) {
	return solana.CreateWithSeed(r.BasePda, PoolListSeed, r.Program)
}

// GetAssetPoolAddress returns the state account of a pool.
func (r *Registry) GetAssetPoolAddress(poolId uint8) (ed25519.PublicKey, error) {
	return solana.CreateWithSeed(r.BasePda, PoolSeed(poolId), r.Program)
}

// GetAssetPoolTokenAddress returns the token account holding a pool's
// liquidity. The account is owned by tokenProgram rather than the lending
// program.
func (r *Registry) GetAssetPoolTokenAddress(tokenProgram ed25519.PublicKey, poolId uint8) (ed25519.PublicKey, error) {
	return solana.CreateWithSeed(r.BasePda, PoolSeed(poolId), tokenProgram)
}

// GetAssetPriceAddress returns the account the program records a pool's
// price in. The account is decoded by AssetPrice.
func (r *Registry) GetAssetPriceAddress(poolId uint8) (ed25519.PublicKey, error) {
	return solana.CreateWithSeed(r.PricePda, PoolSeed(poolId), r.Program)
}

type poolAddresses struct {
	pool      ed25519.PublicKey
	poolToken ed25519.PublicKey
}

func (r *Registry) getPoolAddresses(poolId uint8) (*poolAddresses, error) {
	pool, err := r.GetAssetPoolAddress(poolId)
	if err != nil {
		return nil, err
	}

	poolToken, err := r.GetAssetPoolTokenAddress(r.TokenProgram, poolId)
	if err != nil {
		return nil, err
	}

	return &poolAddresses{
		pool:      pool,
		poolToken: poolToken,
	}, nil
}

package apricot

import (
	"testing"

	"github.com/mr-tron/base58"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddresses_Mainnet(t *testing.T) {
	r := DefaultRegistry()

	wallet := mustBase58Decode("7MtysQGohtvxjV53ffV3BumvNaF7DHMC47QwPsDUE98f")
	userInfo, err := r.GetUserInfoAddress(wallet)
	require.NoError(t, err)
	assert.Equal(t, "9m7fYpdLLCizqNzb7jqpvyFFhyQWQycXDnazGfiHDyLJ", base58.Encode(userInfo))

	userPagesStats, err := r.GetUserPagesStatsAddress()
	require.NoError(t, err)
	assert.Equal(t, "Ax9yypmuKuaYkZUX8hVPyMxqBeYv5AeRQywmLvraHRty", base58.Encode(userPagesStats))

	poolList, err := r.GetPoolListAddress()
	require.NoError(t, err)
	assert.Equal(t, "HWQeka9CsbxwL7UXHwH3igkVdPgZsqyotcurBV82xbiK", base58.Encode(poolList))

	for _, tc := range []struct {
		pageId   uint16
		expected string
	}{
		{0, "8MR838df1qFFEwj4E8EEPPSyT3LAB3hDbL7z9HmYx5cc"},
		{17, "9DmPMdUcdLsaQtf33sdHwkaJEfe1pKArYfJMSuEtNTWT"},
	} {
		usersPage, err := r.GetUsersPageAddress(tc.pageId)
		require.NoError(t, err)
		assert.Equal(t, tc.expected, base58.Encode(usersPage))
	}

	for _, tc := range []struct {
		poolId     uint8
		pool       string
		poolToken  string
		assetPrice string
	}{
		{
			poolId:     0,
			pool:       "7vqse2k3ys9bt4DKYAy9G7WxdB1mkcYYhctJ3UiMnoT",
			poolToken:  "J8Ya6C84e5pMi2TgBrpV7YMdYWEyiMbT3WayREiZr3Ta",
			assetPrice: "AohNVimNuYvwNK8aXAAkVsHpqxyybRdgJjJpHkydVn3r",
		},
		{
			poolId:     7,
			pool:       "8HhjyWVi68Vv5ytnMJ7VgVPHSqZHDA78287R2tK1HcuN",
			poolToken:  "AATcVBc2CHLYcwph7b31xoifJrpkWSRRuXtHi8PKUZf2",
			assetPrice: "CRWxybubb1pDJa5hs879mV8ijHmXYGx1izLAieap5VFy",
		},
		{
			poolId:     255,
			pool:       "DHaDPaScGutxpgFaLjRyG2bEWHUkfiWXKTGgEWSSb9Xe",
			poolToken:  "7KhuYFpfPs6pe3Km6anLrcBpjj3NjZ7mhqY6YRnaLr9c",
			assetPrice: "FFZ5xAPvC7zkiNwKRBAZ1XPDVd9D82M8Q2nYwYnyUYtw",
		},
	} {
		pool, err := r.GetAssetPoolAddress(tc.poolId)
		require.NoError(t, err)
		assert.Equal(t, tc.pool, base58.Encode(pool))

		poolToken, err := r.GetAssetPoolTokenAddress(r.TokenProgram, tc.poolId)
		require.NoError(t, err)
		assert.Equal(t, tc.poolToken, base58.Encode(poolToken))

		assetPrice, err := r.GetAssetPriceAddress(tc.poolId)
		require.NoError(t, err)
		assert.Equal(t, tc.assetPrice, base58.Encode(assetPrice))
	}
}

func TestAddresses_Deterministic(t *testing.T) {
	r := DefaultRegistry()
	wallet := generateKeys(t, 1)[0]

	first, err := r.GetUserInfoAddress(wallet)
	require.NoError(t, err)
	second, err := r.GetUserInfoAddress(wallet)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	seen := make(map[string]struct{})
	for i := 0; i < 256; i++ {
		pool, err := r.GetAssetPoolAddress(uint8(i))
		require.NoError(t, err)
		seen[base58.Encode(pool)] = struct{}{}

		poolToken, err := r.GetAssetPoolTokenAddress(r.TokenProgram, uint8(i))
		require.NoError(t, err)
		seen[base58.Encode(poolToken)] = struct{}{}
	}
	assert.Len(t, seen, 512)
}

func TestAddresses_AlternateTokenProgram(t *testing.T) {
	r := DefaultRegistry()
	tokenProgram := generateKeys(t, 1)[0]

	expected, err := r.GetAssetPoolTokenAddress(r.TokenProgram, 3)
	require.NoError(t, err)
	actual, err := r.GetAssetPoolTokenAddress(tokenProgram, 3)
	require.NoError(t, err)
	assert.NotEqual(t, expected, actual)
}

func TestAddresses_InvalidWallet(t *testing.T) {
	r := DefaultRegistry()

	_, err := r.GetUserInfoAddress(make([]byte, 31))
	assert.Error(t, err)
}

package apricot

import (
	"crypto/ed25519"
	"testing"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRegistry(t *testing.T) {
	r := DefaultRegistry()
	require.NoError(t, r.Validate())

	assert.Equal(t, "HidHf4DzeZj6F7BL37WP6YnTuhh4c4DTsdSTmiFaDtSf", base58.Encode(r.Program))
	assert.Equal(t, "JBSGCV1hPY3CTfpqDQqB4TzwnL9Mjv9ahrSGkpvnxSiM", base58.Encode(r.BasePda))
	assert.Equal(t, "BPLk2Nd5B9pggzD6i6upRqPFptLBCjQSwfKHjjLjFYNp", base58.Encode(r.PricePda))
	assert.Equal(t, "vmw4aLng87nsu7adSGvjzsdrN8BixFnSwtfttXx7N6T", base58.Encode(r.PoolSummaries))
	assert.Equal(t, "G1cmF3D5PAEAjnwdMFbcGQbnBmWNH7t4hv8cpmfHzS2V", base58.Encode(r.PriceSummaries))
	assert.Equal(t, "TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA", base58.Encode(r.TokenProgram))
	assert.Equal(t, "9NaBPcFZpHWj6p5sSbLSPEt85j5xev84Bq3HvhTNWq4c", base58.Encode(r.DexProgram))
	assert.EqualValues(t, 255, r.BasePdaBump)
	assert.EqualValues(t, 254, r.PricePdaBump)
}

func TestNewRegistryForProgram(t *testing.T) {
	// Deriving the mainnet program must reproduce the compiled in accounts
	derived, err := NewRegistryForProgram(PROGRAM_ID)
	require.NoError(t, err)

	expected := DefaultRegistry()
	assert.Equal(t, expected.Program, derived.Program)
	assert.Equal(t, expected.BasePda, derived.BasePda)
	assert.Equal(t, expected.BasePdaBump, derived.BasePdaBump)
	assert.Equal(t, expected.PricePda, derived.PricePda)
	assert.Equal(t, expected.PricePdaBump, derived.PricePdaBump)
	assert.Equal(t, expected.PoolSummaries, derived.PoolSummaries)
	assert.Equal(t, expected.PriceSummaries, derived.PriceSummaries)

	program := generateKeys(t, 1)[0]
	other, err := NewRegistryForProgram(program)
	require.NoError(t, err)
	require.NoError(t, other.Validate())
	assert.Equal(t, program, other.Program)
	assert.NotEqual(t, expected.BasePda, other.BasePda)
	assert.NotEqual(t, expected.PoolSummaries, other.PoolSummaries)

	_, err = NewRegistryForProgram(program[:31])
	assert.Equal(t, ErrInvalidAccount, errors.Cause(err))
}

func TestRegistry_Validate(t *testing.T) {
	r := DefaultRegistry()
	r.PriceSummaries = nil
	assert.Equal(t, ErrInvalidAccount, errors.Cause(r.Validate()))

	r = DefaultRegistry()
	r.DexProgram = make(ed25519.PublicKey, 33)
	assert.Equal(t, ErrInvalidAccount, errors.Cause(r.Validate()))
}

func TestRegistry_Pools(t *testing.T) {
	mints := generateKeys(t, 3)

	r := DefaultRegistry()
	_, err := r.PoolIdForMint(mints[0])
	assert.Equal(t, ErrUnknownPool, errors.Cause(err))

	withPools, err := r.WithPool(mints[0], 0)
	require.NoError(t, err)
	withPools, err = withPools.WithPool(mints[1], 7)
	require.NoError(t, err)

	poolId, err := withPools.PoolIdForMint(mints[1])
	require.NoError(t, err)
	assert.EqualValues(t, 7, poolId)

	poolId, err = withPools.PoolIdForMint(mints[0])
	require.NoError(t, err)
	assert.EqualValues(t, 0, poolId)

	// The original registry is untouched
	_, err = r.PoolIdForMint(mints[0])
	assert.Equal(t, ErrUnknownPool, errors.Cause(err))

	_, err = withPools.WithPool(mints[2], 7)
	assert.Equal(t, ErrInconsistentAccounts, errors.Cause(err))

	_, err = withPools.WithPool(mints[2][:8], 9)
	assert.Equal(t, ErrInvalidAccount, errors.Cause(err))
}

func generateKeys(t *testing.T, n int) []ed25519.PublicKey {
	keys := make([]ed25519.PublicKey, n)
	for i := 0; i < n; i++ {
		pub, _, err := ed25519.GenerateKey(nil)
		require.NoError(t, err)
		keys[i] = pub
	}
	return keys
}

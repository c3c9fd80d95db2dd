package solana

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountMeta(t *testing.T) {
	keys := generateKeys(t, 2)

	writable := NewAccountMeta(keys[0], true)
	assert.True(t, writable.IsWritable)
	assert.True(t, writable.IsSigner)

	readonly := NewReadonlyAccountMeta(keys[0], false)
	assert.False(t, readonly.IsWritable)
	assert.False(t, readonly.IsSigner)

	assert.True(t, writable.Equal(NewAccountMeta(keys[0], true)))
	assert.False(t, writable.Equal(readonly))
	assert.False(t, writable.Equal(NewAccountMeta(keys[1], true)))
}

func TestInstruction(t *testing.T) {
	keys := generateKeys(t, 4)

	ix := NewInstruction(
		keys[0],
		[]byte{1, 2, 3},
		NewReadonlyAccountMeta(keys[1], true),
		NewAccountMeta(keys[2], false),
		NewAccountMeta(keys[3], true),
	)

	assert.Equal(t, keys[0], ix.Program)
	assert.Len(t, ix.Accounts, 3)
	assert.Equal(t, []byte{1, 2, 3}, ix.Data)
	assert.EqualValues(t, keys[1], ix.Signers()[0])
	assert.EqualValues(t, keys[3], ix.Signers()[1])
	assert.Len(t, ix.Signers(), 2)

	same := NewInstruction(
		keys[0],
		[]byte{1, 2, 3},
		NewReadonlyAccountMeta(keys[1], true),
		NewAccountMeta(keys[2], false),
		NewAccountMeta(keys[3], true),
	)
	assert.True(t, ix.Equal(same))

	differentData := NewInstruction(keys[0], []byte{1, 2, 4}, ix.Accounts...)
	assert.False(t, ix.Equal(differentData))

	fewerAccounts := NewInstruction(keys[0], []byte{1, 2, 3}, ix.Accounts[:2]...)
	assert.False(t, ix.Equal(fewerAccounts))

	differentProgram := NewInstruction(keys[1], []byte{1, 2, 3}, ix.Accounts...)
	assert.False(t, ix.Equal(differentProgram))
}

func TestInstruction_SDKRoundTrip(t *testing.T) {
	keys := generateKeys(t, 3)

	ix := NewInstruction(
		keys[0],
		[]byte{0x11, 0xd2, 0x04, 0, 0, 0, 0, 0, 0, 7},
		NewReadonlyAccountMeta(keys[1], true),
		NewAccountMeta(keys[2], false),
	)

	sdk := ix.ToSDKInstruction()
	assert.EqualValues(t, keys[0], sdk.ProgramID.Bytes())
	require.Len(t, sdk.Accounts, 2)
	assert.EqualValues(t, keys[1], sdk.Accounts[0].PubKey.Bytes())
	assert.True(t, sdk.Accounts[0].IsSigner)
	assert.False(t, sdk.Accounts[0].IsWritable)
	assert.EqualValues(t, keys[2], sdk.Accounts[1].PubKey.Bytes())
	assert.False(t, sdk.Accounts[1].IsSigner)
	assert.True(t, sdk.Accounts[1].IsWritable)
	assert.Equal(t, ix.Data, sdk.Data)

	sdk.Data[0] = 0xff
	assert.EqualValues(t, 0x11, ix.Data[0])

	assert.True(t, ix.Equal(InstructionFromSDK(ix.ToSDKInstruction())))
}

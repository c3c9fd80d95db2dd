package solana

import (
	"crypto/ed25519"

	"github.com/blocto/solana-go-sdk/common"
	"github.com/blocto/solana-go-sdk/types"
)

// ToSDKInstruction converts the instruction for callers that build and
// submit transactions with github.com/blocto/solana-go-sdk.
func (i Instruction) ToSDKInstruction() types.Instruction {
	accounts := make([]types.AccountMeta, len(i.Accounts))
	for j, account := range i.Accounts {
		accounts[j] = types.AccountMeta{
			PubKey:     common.PublicKeyFromBytes(account.PublicKey),
			IsSigner:   account.IsSigner,
			IsWritable: account.IsWritable,
		}
	}

	data := make([]byte, len(i.Data))
	copy(data, i.Data)

	return types.Instruction{
		ProgramID: common.PublicKeyFromBytes(i.Program),
		Accounts:  accounts,
		Data:      data,
	}
}

// InstructionFromSDK is the inverse of ToSDKInstruction.
func InstructionFromSDK(ix types.Instruction) Instruction {
	accounts := make([]AccountMeta, len(ix.Accounts))
	for j, account := range ix.Accounts {
		accounts[j] = AccountMeta{
			PublicKey:  ed25519.PublicKey(account.PubKey.Bytes()),
			IsSigner:   account.IsSigner,
			IsWritable: account.IsWritable,
		}
	}

	data := make([]byte, len(ix.Data))
	copy(data, ix.Data)

	return Instruction{
		Program:  ed25519.PublicKey(ix.ProgramID.Bytes()),
		Accounts: accounts,
		Data:     data,
	}
}

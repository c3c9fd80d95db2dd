package apricot

import (
	"crypto/ed25519"

	"github.com/apricot-lend/apricot-go/pkg/solana"
)

const (
	UpdateUserAssetConfigInstructionArgsSize = (1 + // use_as_collateral
		1) // pool_id

	updateUserAssetConfigInstructionNumAccounts = 2
)

type UpdateUserAssetConfigInstructionArgs struct {
	UseAsCollateral bool
	PoolId          uint8
}

type updateUserAssetConfigInstructionWireArgs struct {
	UseAsCollateral uint8
	PoolId          uint8
}

type UpdateUserAssetConfigInstructionAccounts struct {
	Program ed25519.PublicKey

	Wallet   ed25519.PublicKey
	UserInfo ed25519.PublicKey
}

// NewUpdateUserAssetConfigInstruction toggles whether a deposit counts as
// collateral.
//
// The layout follows the reference client and has not been confirmed
// against the program's decoder.
func NewUpdateUserAssetConfigInstruction(
	accounts *UpdateUserAssetConfigInstructionAccounts,
	args *UpdateUserAssetConfigInstructionArgs,
) (solana.Instruction, error) {
	if accounts == nil {
		return solana.Instruction{}, errNilAccounts()
	}
	if args == nil {
		return solana.Instruction{}, errNilArgs()
	}

	err := checkKeys(
		namedKey{"program", accounts.Program},
		namedKey{"wallet", accounts.Wallet},
		namedKey{"user info", accounts.UserInfo},
	)
	if err != nil {
		return solana.Instruction{}, err
	}

	var offset int

	// Serialize instruction arguments
	data := make([]byte, commandSize+UpdateUserAssetConfigInstructionArgsSize)

	putCommand(data, CommandUpdateUserAssetConfig, &offset)
	putBool(data, args.UseAsCollateral, &offset)
	putUint8(data, args.PoolId, &offset)

	return solana.NewInstruction(
		accounts.Program,
		data,
		solana.NewReadonlyAccountMeta(accounts.Wallet, true),
		solana.NewAccountMeta(accounts.UserInfo, false),
	), nil
}

// UpdateUserAssetConfig derives the user info account of wallet.
func (r *Registry) UpdateUserAssetConfig(
	wallet ed25519.PublicKey,
	args *UpdateUserAssetConfigInstructionArgs,
) (solana.Instruction, error) {
	if args == nil {
		return solana.Instruction{}, errNilArgs()
	}

	if err := checkKeys(namedKey{"wallet", wallet}); err != nil {
		return solana.Instruction{}, err
	}

	userInfo, err := r.GetUserInfoAddress(wallet)
	if err != nil {
		return solana.Instruction{}, err
	}

	return NewUpdateUserAssetConfigInstruction(
		&UpdateUserAssetConfigInstructionAccounts{
			Program:  r.Program,
			Wallet:   wallet,
			UserInfo: userInfo,
		},
		args,
	)
}

// DecompileUpdateUserAssetConfigInstruction decodes an instruction built by NewUpdateUserAssetConfigInstruction.
func (r *Registry) DecompileUpdateUserAssetConfigInstruction(ix solana.Instruction) (*UpdateUserAssetConfigInstructionArgs, *UpdateUserAssetConfigInstructionAccounts, error) {
	err := r.checkInstruction(ix, CommandUpdateUserAssetConfig, UpdateUserAssetConfigInstructionArgsSize, updateUserAssetConfigInstructionNumAccounts, true)
	if err != nil {
		return nil, nil, err
	}

	var wire updateUserAssetConfigInstructionWireArgs
	if err := decodeArgs(ix.Data, &wire); err != nil {
		return nil, nil, err
	}

	args := &UpdateUserAssetConfigInstructionArgs{
		UseAsCollateral: wire.UseAsCollateral != 0,
		PoolId:          wire.PoolId,
	}

	accounts := &UpdateUserAssetConfigInstructionAccounts{
		Program:  ix.Program,
		Wallet:   ix.Accounts[0].PublicKey,
		UserInfo: ix.Accounts[1].PublicKey,
	}

	expected, err := NewUpdateUserAssetConfigInstruction(accounts, args)
	if err != nil {
		return nil, nil, err
	}
	if err := checkAccountFlags(ix, expected); err != nil {
		return nil, nil, err
	}

	return args, accounts, nil
}

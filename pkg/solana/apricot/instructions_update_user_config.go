package apricot

import (
	"crypto/ed25519"

	"github.com/apricot-lend/apricot-go/pkg/solana"
)

const (
	UpdateUserConfigInstructionArgsSize = (1 + // self_liquidation_threshold
		1 + // post_self_liquidation_ratio_target
		1) // post_extern_liquidation_ratio_target

	updateUserConfigInstructionNumAccounts = 2
)

// UpdateUserConfigInstructionArgs holds ratios as percentages. The program
// enforces their bounds.
type UpdateUserConfigInstructionArgs struct {
	SelfLiquidationThreshold         uint8
	PostSelfLiquidationRatioTarget   uint8
	PostExternLiquidationRatioTarget uint8
}

type UpdateUserConfigInstructionAccounts struct {
	Program ed25519.PublicKey

	Wallet   ed25519.PublicKey
	UserInfo ed25519.PublicKey
}

// NewUpdateUserConfigInstruction sets the user's liquidation thresholds.
//
// The layout follows the reference client and has not been confirmed
// against the program's decoder.
func NewUpdateUserConfigInstruction(
	accounts *UpdateUserConfigInstructionAccounts,
	args *UpdateUserConfigInstructionArgs,
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
	data := make([]byte, commandSize+UpdateUserConfigInstructionArgsSize)

	putCommand(data, CommandUpdateUserConfig, &offset)
	putUint8(data, args.SelfLiquidationThreshold, &offset)
	putUint8(data, args.PostSelfLiquidationRatioTarget, &offset)
	putUint8(data, args.PostExternLiquidationRatioTarget, &offset)

	return solana.NewInstruction(
		accounts.Program,
		data,
		solana.NewReadonlyAccountMeta(accounts.Wallet, true),
		solana.NewAccountMeta(accounts.UserInfo, false),
	), nil
}

// UpdateUserConfig derives the user info account of wallet.
func (r *Registry) UpdateUserConfig(
	wallet ed25519.PublicKey,
	args *UpdateUserConfigInstructionArgs,
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

	return NewUpdateUserConfigInstruction(
		&UpdateUserConfigInstructionAccounts{
			Program:  r.Program,
			Wallet:   wallet,
			UserInfo: userInfo,
		},
		args,
	)
}

// DecompileUpdateUserConfigInstruction decodes an instruction built by NewUpdateUserConfigInstruction.
func (r *Registry) DecompileUpdateUserConfigInstruction(ix solana.Instruction) (*UpdateUserConfigInstructionArgs, *UpdateUserConfigInstructionAccounts, error) {
	err := r.checkInstruction(ix, CommandUpdateUserConfig, UpdateUserConfigInstructionArgsSize, updateUserConfigInstructionNumAccounts, true)
	if err != nil {
		return nil, nil, err
	}

	var args UpdateUserConfigInstructionArgs
	if err := decodeArgs(ix.Data, &args); err != nil {
		return nil, nil, err
	}

	accounts := &UpdateUserConfigInstructionAccounts{
		Program:  ix.Program,
		Wallet:   ix.Accounts[0].PublicKey,
		UserInfo: ix.Accounts[1].PublicKey,
	}

	expected, err := NewUpdateUserConfigInstruction(accounts, &args)
	if err != nil {
		return nil, nil, err
	}
	if err := checkAccountFlags(ix, expected); err != nil {
		return nil, nil, err
	}

	return &args, accounts, nil
}

package apricot

import (
	"crypto/ed25519"

	"github.com/apricot-lend/apricot-go/pkg/solana"
)

const (
	WithdrawInstructionArgsSize = (1 + // withdraw_all
		8 + // amount
		1) // pool_id

	withdrawInstructionNumAccounts = 9
)

type WithdrawInstructionArgs struct {
	WithdrawAll bool
	Amount      uint64
	PoolId      uint8
}

type withdrawInstructionWireArgs struct {
	WithdrawAll uint8
	Amount      uint64
	PoolId      uint8
}

type WithdrawInstructionAccounts struct {
	Program ed25519.PublicKey

	Wallet         ed25519.PublicKey
	UserToken      ed25519.PublicKey
	UserInfo       ed25519.PublicKey
	AssetPool      ed25519.PublicKey
	AssetPoolToken ed25519.PublicKey
	PoolSummaries  ed25519.PublicKey
	PriceSummaries ed25519.PublicKey
	BasePda        ed25519.PublicKey
	TokenProgram   ed25519.PublicKey
}

// NewWithdrawInstruction moves a deposit out of a pool into the user's token
// account. Prices are read so the program can check the user stays
// collateralized.
func NewWithdrawInstruction(
	accounts *WithdrawInstructionAccounts,
	args *WithdrawInstructionArgs,
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
		namedKey{"user token", accounts.UserToken},
		namedKey{"user info", accounts.UserInfo},
		namedKey{"asset pool", accounts.AssetPool},
		namedKey{"asset pool token", accounts.AssetPoolToken},
		namedKey{"pool summaries", accounts.PoolSummaries},
		namedKey{"price summaries", accounts.PriceSummaries},
		namedKey{"base pda", accounts.BasePda},
		namedKey{"token program", accounts.TokenProgram},
	)
	if err != nil {
		return solana.Instruction{}, err
	}

	var offset int

	// Serialize instruction arguments
	data := make([]byte, commandSize+WithdrawInstructionArgsSize)

	putCommand(data, CommandWithdraw, &offset)
	putBool(data, args.WithdrawAll, &offset)
	putUint64(data, args.Amount, &offset)
	putUint8(data, args.PoolId, &offset)

	return solana.NewInstruction(
		accounts.Program,
		data,
		solana.NewReadonlyAccountMeta(accounts.Wallet, true),
		solana.NewAccountMeta(accounts.UserToken, false),
		solana.NewAccountMeta(accounts.UserInfo, false),
		solana.NewAccountMeta(accounts.AssetPool, false),
		solana.NewAccountMeta(accounts.AssetPoolToken, false),
		solana.NewAccountMeta(accounts.PoolSummaries, false),
		solana.NewReadonlyAccountMeta(accounts.PriceSummaries, false),
		solana.NewReadonlyAccountMeta(accounts.BasePda, false),
		solana.NewReadonlyAccountMeta(accounts.TokenProgram, false),
	), nil
}

// Withdraw builds a withdraw instruction for the registry's deployment.
func (r *Registry) Withdraw(
	wallet ed25519.PublicKey,
	userToken ed25519.PublicKey,
	args *WithdrawInstructionArgs,
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

	pool, err := r.getPoolAddresses(args.PoolId)
	if err != nil {
		return solana.Instruction{}, err
	}

	return NewWithdrawInstruction(
		&WithdrawInstructionAccounts{
			Program:        r.Program,
			Wallet:         wallet,
			UserToken:      userToken,
			UserInfo:       userInfo,
			AssetPool:      pool.pool,
			AssetPoolToken: pool.poolToken,
			PoolSummaries:  r.PoolSummaries,
			PriceSummaries: r.PriceSummaries,
			BasePda:        r.BasePda,
			TokenProgram:   r.TokenProgram,
		},
		args,
	)
}

// DecompileWithdrawInstruction decodes an instruction built by NewWithdrawInstruction.
func (r *Registry) DecompileWithdrawInstruction(ix solana.Instruction) (*WithdrawInstructionArgs, *WithdrawInstructionAccounts, error) {
	err := r.checkInstruction(ix, CommandWithdraw, WithdrawInstructionArgsSize, withdrawInstructionNumAccounts, true)
	if err != nil {
		return nil, nil, err
	}

	var wire withdrawInstructionWireArgs
	if err := decodeArgs(ix.Data, &wire); err != nil {
		return nil, nil, err
	}

	args := &WithdrawInstructionArgs{
		WithdrawAll: wire.WithdrawAll != 0,
		Amount:      wire.Amount,
		PoolId:      wire.PoolId,
	}

	accounts := &WithdrawInstructionAccounts{
		Program:        ix.Program,
		Wallet:         ix.Accounts[0].PublicKey,
		UserToken:      ix.Accounts[1].PublicKey,
		UserInfo:       ix.Accounts[2].PublicKey,
		AssetPool:      ix.Accounts[3].PublicKey,
		AssetPoolToken: ix.Accounts[4].PublicKey,
		PoolSummaries:  ix.Accounts[5].PublicKey,
		PriceSummaries: ix.Accounts[6].PublicKey,
		BasePda:        ix.Accounts[7].PublicKey,
		TokenProgram:   ix.Accounts[8].PublicKey,
	}

	expected, err := NewWithdrawInstruction(accounts, args)
	if err != nil {
		return nil, nil, err
	}
	if err := checkAccountFlags(ix, expected); err != nil {
		return nil, nil, err
	}

	return args, accounts, nil
}

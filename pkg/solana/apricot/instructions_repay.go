package apricot

import (
	"crypto/ed25519"

	"github.com/apricot-lend/apricot-go/pkg/solana"
)

const (
	RepayInstructionArgsSize = (1 + // repay_all
		8 + // amount
		1) // pool_id

	repayInstructionNumAccounts = 7
)

type RepayInstructionArgs struct {
	RepayAll bool
	Amount   uint64
	PoolId   uint8
}

type repayInstructionWireArgs struct {
	RepayAll uint8
	Amount   uint64
	PoolId   uint8
}

type RepayInstructionAccounts struct {
	Program ed25519.PublicKey

	Wallet         ed25519.PublicKey
	UserToken      ed25519.PublicKey
	UserInfo       ed25519.PublicKey
	AssetPool      ed25519.PublicKey
	AssetPoolToken ed25519.PublicKey
	PoolSummaries  ed25519.PublicKey
	TokenProgram   ed25519.PublicKey
}

// NewRepayInstruction pays down a borrow from the user's token account.
// When RepayAll is set the program ignores Amount and repays the full
// outstanding balance.
func NewRepayInstruction(
	accounts *RepayInstructionAccounts,
	args *RepayInstructionArgs,
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
		namedKey{"token program", accounts.TokenProgram},
	)
	if err != nil {
		return solana.Instruction{}, err
	}

	var offset int

	// Serialize instruction arguments
	data := make([]byte, commandSize+RepayInstructionArgsSize)

	putCommand(data, CommandRepay, &offset)
	putBool(data, args.RepayAll, &offset)
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
		solana.NewReadonlyAccountMeta(accounts.TokenProgram, false),
	), nil
}

// Repay builds a repay instruction for the registry's deployment.
func (r *Registry) Repay(
	wallet ed25519.PublicKey,
	userToken ed25519.PublicKey,
	args *RepayInstructionArgs,
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

	return NewRepayInstruction(
		&RepayInstructionAccounts{
			Program:        r.Program,
			Wallet:         wallet,
			UserToken:      userToken,
			UserInfo:       userInfo,
			AssetPool:      pool.pool,
			AssetPoolToken: pool.poolToken,
			PoolSummaries:  r.PoolSummaries,
			TokenProgram:   r.TokenProgram,
		},
		args,
	)
}

// DecompileRepayInstruction decodes an instruction built by NewRepayInstruction.
func (r *Registry) DecompileRepayInstruction(ix solana.Instruction) (*RepayInstructionArgs, *RepayInstructionAccounts, error) {
	err := r.checkInstruction(ix, CommandRepay, RepayInstructionArgsSize, repayInstructionNumAccounts, true)
	if err != nil {
		return nil, nil, err
	}

	var wire repayInstructionWireArgs
	if err := decodeArgs(ix.Data, &wire); err != nil {
		return nil, nil, err
	}

	args := &RepayInstructionArgs{
		RepayAll: wire.RepayAll != 0,
		Amount:   wire.Amount,
		PoolId:   wire.PoolId,
	}

	accounts := &RepayInstructionAccounts{
		Program:        ix.Program,
		Wallet:         ix.Accounts[0].PublicKey,
		UserToken:      ix.Accounts[1].PublicKey,
		UserInfo:       ix.Accounts[2].PublicKey,
		AssetPool:      ix.Accounts[3].PublicKey,
		AssetPoolToken: ix.Accounts[4].PublicKey,
		PoolSummaries:  ix.Accounts[5].PublicKey,
		TokenProgram:   ix.Accounts[6].PublicKey,
	}

	expected, err := NewRepayInstruction(accounts, args)
	if err != nil {
		return nil, nil, err
	}
	if err := checkAccountFlags(ix, expected); err != nil {
		return nil, nil, err
	}

	return args, accounts, nil
}

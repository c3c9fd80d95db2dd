package apricot

import (
	"crypto/ed25519"

	"github.com/apricot-lend/apricot-go/pkg/solana"
)

const (
	BorrowInstructionArgsSize = (8 + // amount
		1) // pool_id

	borrowInstructionNumAccounts = 9
)

type BorrowInstructionArgs struct {
	Amount uint64
	PoolId uint8
}

type BorrowInstructionAccounts struct {
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

// NewBorrowInstruction lends tokens from a pool against the user's
// collateral. Prices are read to check borrowing power.
func NewBorrowInstruction(
	accounts *BorrowInstructionAccounts,
	args *BorrowInstructionArgs,
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
	data := make([]byte, commandSize+BorrowInstructionArgsSize)

	putCommand(data, CommandBorrow, &offset)
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

// Borrow builds a borrow instruction for the registry's deployment.
func (r *Registry) Borrow(
	wallet ed25519.PublicKey,
	userToken ed25519.PublicKey,
	args *BorrowInstructionArgs,
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

	return NewBorrowInstruction(
		&BorrowInstructionAccounts{
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

// DecompileBorrowInstruction decodes an instruction built by NewBorrowInstruction.
func (r *Registry) DecompileBorrowInstruction(ix solana.Instruction) (*BorrowInstructionArgs, *BorrowInstructionAccounts, error) {
	err := r.checkInstruction(ix, CommandBorrow, BorrowInstructionArgsSize, borrowInstructionNumAccounts, true)
	if err != nil {
		return nil, nil, err
	}

	var args BorrowInstructionArgs
	if err := decodeArgs(ix.Data, &args); err != nil {
		return nil, nil, err
	}

	accounts := &BorrowInstructionAccounts{
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

	expected, err := NewBorrowInstruction(accounts, &args)
	if err != nil {
		return nil, nil, err
	}
	if err := checkAccountFlags(ix, expected); err != nil {
		return nil, nil, err
	}

	return &args, accounts, nil
}

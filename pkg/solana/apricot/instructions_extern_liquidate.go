package apricot

import (
	"crypto/ed25519"

	"github.com/apricot-lend/apricot-go/pkg/solana"
)

const (
	ExternLiquidateInstructionArgsSize = (8 + // min_collateral_amount
		8 + // repaid_borrow_amount
		1 + // collateral_pool_id
		1) // borrowed_pool_id

	externLiquidateInstructionNumAccounts = 12
)

type ExternLiquidateInstructionArgs struct {
	MinCollateralAmount uint64
	RepaidBorrowAmount  uint64
	CollateralPoolId    uint8
	BorrowedPoolId      uint8
}

type ExternLiquidateInstructionAccounts struct {
	Program ed25519.PublicKey

	LiquidatedWallet          ed25519.PublicKey
	LiquidatorWallet          ed25519.PublicKey
	UserInfo                  ed25519.PublicKey
	BasePda                   ed25519.PublicKey
	LiquidatorCollateralToken ed25519.PublicKey
	LiquidatorBorrowedToken   ed25519.PublicKey
	CollateralPool            ed25519.PublicKey
	CollateralPoolToken       ed25519.PublicKey
	BorrowedPool              ed25519.PublicKey
	BorrowedPoolToken         ed25519.PublicKey
	PoolSummaries             ed25519.PublicKey
	TokenProgram              ed25519.PublicKey
}

// NewExternLiquidateInstruction lets a third party repay part of an
// undercollateralized user's borrow in exchange for at least
// MinCollateralAmount of the user's collateral. UserInfo belongs to the
// liquidated wallet.
func NewExternLiquidateInstruction(
	accounts *ExternLiquidateInstructionAccounts,
	args *ExternLiquidateInstructionArgs,
) (solana.Instruction, error) {
	if accounts == nil {
		return solana.Instruction{}, errNilAccounts()
	}
	if args == nil {
		return solana.Instruction{}, errNilArgs()
	}

	err := checkKeys(
		namedKey{"program", accounts.Program},
		namedKey{"liquidated wallet", accounts.LiquidatedWallet},
		namedKey{"liquidator wallet", accounts.LiquidatorWallet},
		namedKey{"user info", accounts.UserInfo},
		namedKey{"base pda", accounts.BasePda},
		namedKey{"liquidator collateral token", accounts.LiquidatorCollateralToken},
		namedKey{"liquidator borrowed token", accounts.LiquidatorBorrowedToken},
		namedKey{"collateral pool", accounts.CollateralPool},
		namedKey{"collateral pool token", accounts.CollateralPoolToken},
		namedKey{"borrowed pool", accounts.BorrowedPool},
		namedKey{"borrowed pool token", accounts.BorrowedPoolToken},
		namedKey{"pool summaries", accounts.PoolSummaries},
		namedKey{"token program", accounts.TokenProgram},
	)
	if err != nil {
		return solana.Instruction{}, err
	}

	err = checkPoolPair(
		args.CollateralPoolId, accounts.CollateralPool, accounts.CollateralPoolToken,
		args.BorrowedPoolId, accounts.BorrowedPool, accounts.BorrowedPoolToken,
	)
	if err != nil {
		return solana.Instruction{}, err
	}

	var offset int

	// Serialize instruction arguments
	data := make([]byte, commandSize+ExternLiquidateInstructionArgsSize)

	putCommand(data, CommandExternLiquidate, &offset)
	putUint64(data, args.MinCollateralAmount, &offset)
	putUint64(data, args.RepaidBorrowAmount, &offset)
	putUint8(data, args.CollateralPoolId, &offset)
	putUint8(data, args.BorrowedPoolId, &offset)

	return solana.NewInstruction(
		accounts.Program,
		data,
		solana.NewReadonlyAccountMeta(accounts.LiquidatedWallet, false),
		solana.NewReadonlyAccountMeta(accounts.LiquidatorWallet, true),
		solana.NewAccountMeta(accounts.UserInfo, false),
		solana.NewReadonlyAccountMeta(accounts.BasePda, false),
		solana.NewAccountMeta(accounts.LiquidatorCollateralToken, false),
		solana.NewAccountMeta(accounts.LiquidatorBorrowedToken, false),
		solana.NewAccountMeta(accounts.CollateralPool, false),
		solana.NewAccountMeta(accounts.CollateralPoolToken, false),
		solana.NewAccountMeta(accounts.BorrowedPool, false),
		solana.NewAccountMeta(accounts.BorrowedPoolToken, false),
		solana.NewAccountMeta(accounts.PoolSummaries, false),
		solana.NewReadonlyAccountMeta(accounts.TokenProgram, false),
	), nil
}

// ExternLiquidate derives the liquidated user's info account and both pools.
// The liquidator supplies the token accounts on each side.
func (r *Registry) ExternLiquidate(
	liquidatedWallet ed25519.PublicKey,
	liquidatorWallet ed25519.PublicKey,
	liquidatorCollateralToken ed25519.PublicKey,
	liquidatorBorrowedToken ed25519.PublicKey,
	args *ExternLiquidateInstructionArgs,
) (solana.Instruction, error) {
	if args == nil {
		return solana.Instruction{}, errNilArgs()
	}

	if err := checkKeys(namedKey{"liquidated wallet", liquidatedWallet}); err != nil {
		return solana.Instruction{}, err
	}

	userInfo, err := r.GetUserInfoAddress(liquidatedWallet)
	if err != nil {
		return solana.Instruction{}, err
	}

	collateral, err := r.getPoolAddresses(args.CollateralPoolId)
	if err != nil {
		return solana.Instruction{}, err
	}

	borrowed, err := r.getPoolAddresses(args.BorrowedPoolId)
	if err != nil {
		return solana.Instruction{}, err
	}

	return NewExternLiquidateInstruction(
		&ExternLiquidateInstructionAccounts{
			Program:                   r.Program,
			LiquidatedWallet:          liquidatedWallet,
			LiquidatorWallet:          liquidatorWallet,
			UserInfo:                  userInfo,
			BasePda:                   r.BasePda,
			LiquidatorCollateralToken: liquidatorCollateralToken,
			LiquidatorBorrowedToken:   liquidatorBorrowedToken,
			CollateralPool:            collateral.pool,
			CollateralPoolToken:       collateral.poolToken,
			BorrowedPool:              borrowed.pool,
			BorrowedPoolToken:         borrowed.poolToken,
			PoolSummaries:             r.PoolSummaries,
			TokenProgram:              r.TokenProgram,
		},
		args,
	)
}

// DecompileExternLiquidateInstruction decodes an instruction built by NewExternLiquidateInstruction.
// Account permissions must match the builder's.
func (r *Registry) DecompileExternLiquidateInstruction(ix solana.Instruction) (*ExternLiquidateInstructionArgs, *ExternLiquidateInstructionAccounts, error) {
	err := r.checkInstruction(ix, CommandExternLiquidate, ExternLiquidateInstructionArgsSize, externLiquidateInstructionNumAccounts, true)
	if err != nil {
		return nil, nil, err
	}

	var args ExternLiquidateInstructionArgs
	if err := decodeArgs(ix.Data, &args); err != nil {
		return nil, nil, err
	}

	accounts := &ExternLiquidateInstructionAccounts{
		Program:                   ix.Program,
		LiquidatedWallet:          ix.Accounts[0].PublicKey,
		LiquidatorWallet:          ix.Accounts[1].PublicKey,
		UserInfo:                  ix.Accounts[2].PublicKey,
		BasePda:                   ix.Accounts[3].PublicKey,
		LiquidatorCollateralToken: ix.Accounts[4].PublicKey,
		LiquidatorBorrowedToken:   ix.Accounts[5].PublicKey,
		CollateralPool:            ix.Accounts[6].PublicKey,
		CollateralPoolToken:       ix.Accounts[7].PublicKey,
		BorrowedPool:              ix.Accounts[8].PublicKey,
		BorrowedPoolToken:         ix.Accounts[9].PublicKey,
		PoolSummaries:             ix.Accounts[10].PublicKey,
		TokenProgram:              ix.Accounts[11].PublicKey,
	}

	expected, err := NewExternLiquidateInstruction(accounts, &args)
	if err != nil {
		return nil, nil, err
	}
	if err := checkAccountFlags(ix, expected); err != nil {
		return nil, nil, err
	}

	return &args, accounts, nil
}

package apricot

import (
	"crypto/ed25519"

	"github.com/apricot-lend/apricot-go/pkg/solana"
)

const (
	SelfLiquidateInstructionArgsSize = (1 + // need_to_sell
		1 + // need_to_buy
		8 + // sell_collateral_amount
		8 + // buy_borrowed_amount
		1 + // collateral_pool_id
		1) // borrowed_pool_id

	selfLiquidateInstructionNumAccounts = 13
)

type SelfLiquidateInstructionArgs struct {
	NeedToSell           bool
	NeedToBuy            bool
	SellCollateralAmount uint64
	BuyBorrowedAmount    uint64
	CollateralPoolId     uint8
	BorrowedPoolId       uint8
}

type selfLiquidateInstructionWireArgs struct {
	NeedToSell           uint8
	NeedToBuy            uint8
	SellCollateralAmount uint64
	BuyBorrowedAmount    uint64
	CollateralPoolId     uint8
	BorrowedPoolId       uint8
}

type SelfLiquidateInstructionAccounts struct {
	Program ed25519.PublicKey

	Wallet              ed25519.PublicKey
	UserInfo            ed25519.PublicKey
	BasePda             ed25519.PublicKey
	CollateralPool      ed25519.PublicKey
	CollateralPoolToken ed25519.PublicKey
	BorrowedPool        ed25519.PublicKey
	BorrowedPoolToken   ed25519.PublicKey
	PoolSummaries       ed25519.PublicKey
	PriceSummaries      ed25519.PublicKey
	IntermediateToken   ed25519.PublicKey
	TokenProgram        ed25519.PublicKey
	DexProgram          ed25519.PublicKey
	RentSysvar          ed25519.PublicKey

	// Market accounts for the collateral leg followed by the borrowed leg,
	// passed through in order.
	RemainingAccounts []solana.AccountMeta
}

// NewSelfLiquidateInstruction sells a user's collateral on the dex to repay
// their borrow once they cross their self liquidation threshold. The wallet
// doesn't sign.
//
// The layout follows the reference client and has not been confirmed
// against the program's decoder.
func NewSelfLiquidateInstruction(
	accounts *SelfLiquidateInstructionAccounts,
	args *SelfLiquidateInstructionArgs,
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
		namedKey{"base pda", accounts.BasePda},
		namedKey{"collateral pool", accounts.CollateralPool},
		namedKey{"collateral pool token", accounts.CollateralPoolToken},
		namedKey{"borrowed pool", accounts.BorrowedPool},
		namedKey{"borrowed pool token", accounts.BorrowedPoolToken},
		namedKey{"pool summaries", accounts.PoolSummaries},
		namedKey{"price summaries", accounts.PriceSummaries},
		namedKey{"intermediate token", accounts.IntermediateToken},
		namedKey{"token program", accounts.TokenProgram},
		namedKey{"dex program", accounts.DexProgram},
		namedKey{"rent sysvar", accounts.RentSysvar},
	)
	if err != nil {
		return solana.Instruction{}, err
	}

	if err := checkAccountMetas("remaining accounts", accounts.RemainingAccounts); err != nil {
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
	data := make([]byte, commandSize+SelfLiquidateInstructionArgsSize)

	putCommand(data, CommandSelfLiquidate, &offset)
	putBool(data, args.NeedToSell, &offset)
	putBool(data, args.NeedToBuy, &offset)
	putUint64(data, args.SellCollateralAmount, &offset)
	putUint64(data, args.BuyBorrowedAmount, &offset)
	putUint8(data, args.CollateralPoolId, &offset)
	putUint8(data, args.BorrowedPoolId, &offset)

	metas := []solana.AccountMeta{
		solana.NewReadonlyAccountMeta(accounts.Wallet, false),
		solana.NewAccountMeta(accounts.UserInfo, false),
		solana.NewReadonlyAccountMeta(accounts.BasePda, false),
		solana.NewAccountMeta(accounts.CollateralPool, false),
		solana.NewAccountMeta(accounts.CollateralPoolToken, false),
		solana.NewAccountMeta(accounts.BorrowedPool, false),
		solana.NewAccountMeta(accounts.BorrowedPoolToken, false),
		solana.NewAccountMeta(accounts.PoolSummaries, false),
		solana.NewReadonlyAccountMeta(accounts.PriceSummaries, false),
		solana.NewAccountMeta(accounts.IntermediateToken, false),
		solana.NewReadonlyAccountMeta(accounts.TokenProgram, false),
		solana.NewReadonlyAccountMeta(accounts.DexProgram, false),
		solana.NewReadonlyAccountMeta(accounts.RentSysvar, false),
	}
	metas = append(metas, cloneAccountMetas(accounts.RemainingAccounts)...)

	return solana.NewInstruction(accounts.Program, data, metas...), nil
}

// SelfLiquidate builds a self liquidation of liquidatedWallet. dexAccounts
// are the market accounts for both legs of the swap.
func (r *Registry) SelfLiquidate(
	liquidatedWallet ed25519.PublicKey,
	intermediateToken ed25519.PublicKey,
	dexAccounts []solana.AccountMeta,
	args *SelfLiquidateInstructionArgs,
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

	return NewSelfLiquidateInstruction(
		&SelfLiquidateInstructionAccounts{
			Program:             r.Program,
			Wallet:              liquidatedWallet,
			UserInfo:            userInfo,
			BasePda:             r.BasePda,
			CollateralPool:      collateral.pool,
			CollateralPoolToken: collateral.poolToken,
			BorrowedPool:        borrowed.pool,
			BorrowedPoolToken:   borrowed.poolToken,
			PoolSummaries:       r.PoolSummaries,
			PriceSummaries:      r.PriceSummaries,
			IntermediateToken:   intermediateToken,
			TokenProgram:        r.TokenProgram,
			DexProgram:          r.DexProgram,
			RentSysvar:          r.RentSysvar,
			RemainingAccounts:   dexAccounts,
		},
		args,
	)
}

// DecompileSelfLiquidateInstruction decodes an instruction built by NewSelfLiquidateInstruction.
// Account permissions must match the builder's, and accounts past the fixed
// set are returned as RemainingAccounts.
func (r *Registry) DecompileSelfLiquidateInstruction(ix solana.Instruction) (*SelfLiquidateInstructionArgs, *SelfLiquidateInstructionAccounts, error) {
	err := r.checkInstruction(ix, CommandSelfLiquidate, SelfLiquidateInstructionArgsSize, selfLiquidateInstructionNumAccounts, false)
	if err != nil {
		return nil, nil, err
	}

	var wire selfLiquidateInstructionWireArgs
	if err := decodeArgs(ix.Data, &wire); err != nil {
		return nil, nil, err
	}

	args := &SelfLiquidateInstructionArgs{
		NeedToSell:           wire.NeedToSell != 0,
		NeedToBuy:            wire.NeedToBuy != 0,
		SellCollateralAmount: wire.SellCollateralAmount,
		BuyBorrowedAmount:    wire.BuyBorrowedAmount,
		CollateralPoolId:     wire.CollateralPoolId,
		BorrowedPoolId:       wire.BorrowedPoolId,
	}

	accounts := &SelfLiquidateInstructionAccounts{
		Program:             ix.Program,
		Wallet:              ix.Accounts[0].PublicKey,
		UserInfo:            ix.Accounts[1].PublicKey,
		BasePda:             ix.Accounts[2].PublicKey,
		CollateralPool:      ix.Accounts[3].PublicKey,
		CollateralPoolToken: ix.Accounts[4].PublicKey,
		BorrowedPool:        ix.Accounts[5].PublicKey,
		BorrowedPoolToken:   ix.Accounts[6].PublicKey,
		PoolSummaries:       ix.Accounts[7].PublicKey,
		PriceSummaries:      ix.Accounts[8].PublicKey,
		IntermediateToken:   ix.Accounts[9].PublicKey,
		TokenProgram:        ix.Accounts[10].PublicKey,
		DexProgram:          ix.Accounts[11].PublicKey,
		RentSysvar:          ix.Accounts[12].PublicKey,
		RemainingAccounts:   cloneAccountMetas(ix.Accounts[selfLiquidateInstructionNumAccounts:]),
	}

	expected, err := NewSelfLiquidateInstruction(accounts, args)
	if err != nil {
		return nil, nil, err
	}
	if err := checkAccountFlags(ix, expected); err != nil {
		return nil, nil, err
	}

	return args, accounts, nil
}

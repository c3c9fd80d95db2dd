package apricot

import (
	"crypto/ed25519"

	"github.com/apricot-lend/apricot-go/pkg/solana"
)

const (
	MarginSwapInstructionArgsSize = (1 + // need_to_sell
		1 + // need_to_buy
		8 + // sell_amount
		8 + // min_buy_amount
		1 + // sell_pool_id
		1) // buy_pool_id

	marginSwapInstructionNumAccounts = 13
)

type MarginSwapInstructionArgs struct {
	NeedToSell   bool
	NeedToBuy    bool
	SellAmount   uint64
	MinBuyAmount uint64
	SellPoolId   uint8
	BuyPoolId    uint8
}

type marginSwapInstructionWireArgs struct {
	NeedToSell   uint8
	NeedToBuy    uint8
	SellAmount   uint64
	MinBuyAmount uint64
	SellPoolId   uint8
	BuyPoolId    uint8
}

type MarginSwapInstructionAccounts struct {
	Program ed25519.PublicKey

	Wallet            ed25519.PublicKey
	UserInfo          ed25519.PublicKey
	BasePda           ed25519.PublicKey
	SellPool          ed25519.PublicKey
	SellPoolToken     ed25519.PublicKey
	BuyPool           ed25519.PublicKey
	BuyPoolToken      ed25519.PublicKey
	PoolSummaries     ed25519.PublicKey
	PriceSummaries    ed25519.PublicKey
	IntermediateToken ed25519.PublicKey
	TokenProgram      ed25519.PublicKey
	DexProgram        ed25519.PublicKey
	RentSysvar        ed25519.PublicKey

	// Market accounts for the sell leg followed by the buy leg, passed
	// through in order.
	RemainingAccounts []solana.AccountMeta
}

// NewMarginSwapInstruction swaps part of a user's deposit in one pool into
// another pool through the dex. It shares its account layout with self
// liquidation, except the wallet signs.
//
// The layout follows the reference client and has not been confirmed
// against the program's decoder.
func NewMarginSwapInstruction(
	accounts *MarginSwapInstructionAccounts,
	args *MarginSwapInstructionArgs,
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
		namedKey{"sell pool", accounts.SellPool},
		namedKey{"sell pool token", accounts.SellPoolToken},
		namedKey{"buy pool", accounts.BuyPool},
		namedKey{"buy pool token", accounts.BuyPoolToken},
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
		args.SellPoolId, accounts.SellPool, accounts.SellPoolToken,
		args.BuyPoolId, accounts.BuyPool, accounts.BuyPoolToken,
	)
	if err != nil {
		return solana.Instruction{}, err
	}

	var offset int

	// Serialize instruction arguments
	data := make([]byte, commandSize+MarginSwapInstructionArgsSize)

	putCommand(data, CommandMarginSwap, &offset)
	putBool(data, args.NeedToSell, &offset)
	putBool(data, args.NeedToBuy, &offset)
	putUint64(data, args.SellAmount, &offset)
	putUint64(data, args.MinBuyAmount, &offset)
	putUint8(data, args.SellPoolId, &offset)
	putUint8(data, args.BuyPoolId, &offset)

	metas := []solana.AccountMeta{
		solana.NewReadonlyAccountMeta(accounts.Wallet, true),
		solana.NewAccountMeta(accounts.UserInfo, false),
		solana.NewReadonlyAccountMeta(accounts.BasePda, false),
		solana.NewAccountMeta(accounts.SellPool, false),
		solana.NewAccountMeta(accounts.SellPoolToken, false),
		solana.NewAccountMeta(accounts.BuyPool, false),
		solana.NewAccountMeta(accounts.BuyPoolToken, false),
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

// MarginSwap builds a margin swap for wallet. dexAccounts are passed
// through after the fixed accounts.
func (r *Registry) MarginSwap(
	wallet ed25519.PublicKey,
	intermediateToken ed25519.PublicKey,
	dexAccounts []solana.AccountMeta,
	args *MarginSwapInstructionArgs,
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

	sell, err := r.getPoolAddresses(args.SellPoolId)
	if err != nil {
		return solana.Instruction{}, err
	}

	buy, err := r.getPoolAddresses(args.BuyPoolId)
	if err != nil {
		return solana.Instruction{}, err
	}

	return NewMarginSwapInstruction(
		&MarginSwapInstructionAccounts{
			Program:           r.Program,
			Wallet:            wallet,
			UserInfo:          userInfo,
			BasePda:           r.BasePda,
			SellPool:          sell.pool,
			SellPoolToken:     sell.poolToken,
			BuyPool:           buy.pool,
			BuyPoolToken:      buy.poolToken,
			PoolSummaries:     r.PoolSummaries,
			PriceSummaries:    r.PriceSummaries,
			IntermediateToken: intermediateToken,
			TokenProgram:      r.TokenProgram,
			DexProgram:        r.DexProgram,
			RentSysvar:        r.RentSysvar,
			RemainingAccounts: dexAccounts,
		},
		args,
	)
}

// DecompileMarginSwapInstruction decodes an instruction built by NewMarginSwapInstruction.
func (r *Registry) DecompileMarginSwapInstruction(ix solana.Instruction) (*MarginSwapInstructionArgs, *MarginSwapInstructionAccounts, error) {
	err := r.checkInstruction(ix, CommandMarginSwap, MarginSwapInstructionArgsSize, marginSwapInstructionNumAccounts, false)
	if err != nil {
		return nil, nil, err
	}

	var wire marginSwapInstructionWireArgs
	if err := decodeArgs(ix.Data, &wire); err != nil {
		return nil, nil, err
	}

	args := &MarginSwapInstructionArgs{
		NeedToSell:   wire.NeedToSell != 0,
		NeedToBuy:    wire.NeedToBuy != 0,
		SellAmount:   wire.SellAmount,
		MinBuyAmount: wire.MinBuyAmount,
		SellPoolId:   wire.SellPoolId,
		BuyPoolId:    wire.BuyPoolId,
	}

	accounts := &MarginSwapInstructionAccounts{
		Program:           ix.Program,
		Wallet:            ix.Accounts[0].PublicKey,
		UserInfo:          ix.Accounts[1].PublicKey,
		BasePda:           ix.Accounts[2].PublicKey,
		SellPool:          ix.Accounts[3].PublicKey,
		SellPoolToken:     ix.Accounts[4].PublicKey,
		BuyPool:           ix.Accounts[5].PublicKey,
		BuyPoolToken:      ix.Accounts[6].PublicKey,
		PoolSummaries:     ix.Accounts[7].PublicKey,
		PriceSummaries:    ix.Accounts[8].PublicKey,
		IntermediateToken: ix.Accounts[9].PublicKey,
		TokenProgram:      ix.Accounts[10].PublicKey,
		DexProgram:        ix.Accounts[11].PublicKey,
		RentSysvar:        ix.Accounts[12].PublicKey,
		RemainingAccounts: cloneAccountMetas(ix.Accounts[marginSwapInstructionNumAccounts:]),
	}

	expected, err := NewMarginSwapInstruction(accounts, args)
	if err != nil {
		return nil, nil, err
	}
	if err := checkAccountFlags(ix, expected); err != nil {
		return nil, nil, err
	}

	return args, accounts, nil
}

package apricot

import (
	"crypto/ed25519"

	"github.com/apricot-lend/apricot-go/pkg/solana"
)

const (
	DepositInstructionArgsSize = (8 + // amount
		1) // pool_id

	depositInstructionNumAccounts = 7
)

type DepositInstructionArgs struct {
	Amount uint64
	PoolId uint8
}

type DepositInstructionAccounts struct {
	Program ed25519.PublicKey

	Wallet         ed25519.PublicKey
	UserToken      ed25519.PublicKey
	UserInfo       ed25519.PublicKey
	AssetPool      ed25519.PublicKey
	AssetPoolToken ed25519.PublicKey
	PoolSummaries  ed25519.PublicKey
	TokenProgram   ed25519.PublicKey
}

// NewDepositInstruction moves tokens from the user's token account into a
// pool. The user must already be on a users page.
func NewDepositInstruction(
	accounts *DepositInstructionAccounts,
	args *DepositInstructionArgs,
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
	data := make([]byte, commandSize+DepositInstructionArgsSize)

	putCommand(data, CommandDeposit, &offset)
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

// Deposit builds a deposit instruction for the registry's deployment.
func (r *Registry) Deposit(
	wallet ed25519.PublicKey,
	userToken ed25519.PublicKey,
	args *DepositInstructionArgs,
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

	return NewDepositInstruction(
		&DepositInstructionAccounts{
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

// DecompileDepositInstruction decodes an instruction built by NewDepositInstruction.
// Account permissions must match the builder's.
func (r *Registry) DecompileDepositInstruction(ix solana.Instruction) (*DepositInstructionArgs, *DepositInstructionAccounts, error) {
	err := r.checkInstruction(ix, CommandDeposit, DepositInstructionArgsSize, depositInstructionNumAccounts, true)
	if err != nil {
		return nil, nil, err
	}

	var args DepositInstructionArgs
	if err := decodeArgs(ix.Data, &args); err != nil {
		return nil, nil, err
	}

	accounts := &DepositInstructionAccounts{
		Program:        ix.Program,
		Wallet:         ix.Accounts[0].PublicKey,
		UserToken:      ix.Accounts[1].PublicKey,
		UserInfo:       ix.Accounts[2].PublicKey,
		AssetPool:      ix.Accounts[3].PublicKey,
		AssetPoolToken: ix.Accounts[4].PublicKey,
		PoolSummaries:  ix.Accounts[5].PublicKey,
		TokenProgram:   ix.Accounts[6].PublicKey,
	}

	expected, err := NewDepositInstruction(accounts, &args)
	if err != nil {
		return nil, nil, err
	}
	if err := checkAccountFlags(ix, expected); err != nil {
		return nil, nil, err
	}

	return &args, accounts, nil
}

package apricot

import (
	"crypto/ed25519"

	"github.com/pkg/errors"

	"github.com/apricot-lend/apricot-go/pkg/solana"
)

const (
	AddUserAndDepositInstructionArgsSize = (2 + // page_id
		8 + // amount
		1) // pool_id

	addUserAndDepositInstructionNumAccounts = 10
)

type AddUserAndDepositInstructionArgs struct {
	PageId uint16
	Amount uint64
	PoolId uint8
}

type AddUserAndDepositInstructionAccounts struct {
	Program ed25519.PublicKey

	Wallet         ed25519.PublicKey
	UserToken      ed25519.PublicKey
	UserPagesStats ed25519.PublicKey
	UsersPage      ed25519.PublicKey
	UserInfo       ed25519.PublicKey
	AssetPool      ed25519.PublicKey
	AssetPoolToken ed25519.PublicKey
	PoolSummaries  ed25519.PublicKey
	SystemProgram  ed25519.PublicKey
	TokenProgram   ed25519.PublicKey
}

// NewAddUserAndDepositInstruction creates the user's info account, places
// the user on a users page and makes their first deposit. The wallet pays
// for the new account.
//
// The layout follows the reference client and has not been confirmed
// against the program's decoder.
func NewAddUserAndDepositInstruction(
	accounts *AddUserAndDepositInstructionAccounts,
	args *AddUserAndDepositInstructionArgs,
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
		namedKey{"user pages stats", accounts.UserPagesStats},
		namedKey{"users page", accounts.UsersPage},
		namedKey{"user info", accounts.UserInfo},
		namedKey{"asset pool", accounts.AssetPool},
		namedKey{"asset pool token", accounts.AssetPoolToken},
		namedKey{"pool summaries", accounts.PoolSummaries},
		namedKey{"system program", accounts.SystemProgram},
		namedKey{"token program", accounts.TokenProgram},
	)
	if err != nil {
		return solana.Instruction{}, err
	}

	if args.PageId == InvalidPageId {
		return solana.Instruction{}, errors.Wrapf(ErrInvalidPageId, "page %d", args.PageId)
	}

	var offset int

	// Serialize instruction arguments
	data := make([]byte, commandSize+AddUserAndDepositInstructionArgsSize)

	putCommand(data, CommandAddUserAndDeposit, &offset)
	putUint16(data, args.PageId, &offset)
	putUint64(data, args.Amount, &offset)
	putUint8(data, args.PoolId, &offset)

	return solana.NewInstruction(
		accounts.Program,
		data,
		solana.NewAccountMeta(accounts.Wallet, true),
		solana.NewAccountMeta(accounts.UserToken, false),
		solana.NewAccountMeta(accounts.UserPagesStats, false),
		solana.NewAccountMeta(accounts.UsersPage, false),
		solana.NewAccountMeta(accounts.UserInfo, false),
		solana.NewAccountMeta(accounts.AssetPool, false),
		solana.NewAccountMeta(accounts.AssetPoolToken, false),
		solana.NewAccountMeta(accounts.PoolSummaries, false),
		solana.NewReadonlyAccountMeta(accounts.SystemProgram, false),
		solana.NewReadonlyAccountMeta(accounts.TokenProgram, false),
	), nil
}

// AddUserAndDeposit builds the first deposit of a user. Callers typically
// pick the page with UserPagesStats.PageWithMostFreeSlots.
func (r *Registry) AddUserAndDeposit(
	wallet ed25519.PublicKey,
	userToken ed25519.PublicKey,
	args *AddUserAndDepositInstructionArgs,
) (solana.Instruction, error) {
	if args == nil {
		return solana.Instruction{}, errNilArgs()
	}

	if err := checkKeys(namedKey{"wallet", wallet}); err != nil {
		return solana.Instruction{}, err
	}

	userPagesStats, err := r.GetUserPagesStatsAddress()
	if err != nil {
		return solana.Instruction{}, err
	}

	usersPage, err := r.GetUsersPageAddress(args.PageId)
	if err != nil {
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

	return NewAddUserAndDepositInstruction(
		&AddUserAndDepositInstructionAccounts{
			Program:        r.Program,
			Wallet:         wallet,
			UserToken:      userToken,
			UserPagesStats: userPagesStats,
			UsersPage:      usersPage,
			UserInfo:       userInfo,
			AssetPool:      pool.pool,
			AssetPoolToken: pool.poolToken,
			PoolSummaries:  r.PoolSummaries,
			SystemProgram:  r.SystemProgram,
			TokenProgram:   r.TokenProgram,
		},
		args,
	)
}

// DecompileAddUserAndDepositInstruction decodes an instruction built by NewAddUserAndDepositInstruction.
func (r *Registry) DecompileAddUserAndDepositInstruction(ix solana.Instruction) (*AddUserAndDepositInstructionArgs, *AddUserAndDepositInstructionAccounts, error) {
	err := r.checkInstruction(ix, CommandAddUserAndDeposit, AddUserAndDepositInstructionArgsSize, addUserAndDepositInstructionNumAccounts, true)
	if err != nil {
		return nil, nil, err
	}

	var args AddUserAndDepositInstructionArgs
	if err := decodeArgs(ix.Data, &args); err != nil {
		return nil, nil, err
	}

	accounts := &AddUserAndDepositInstructionAccounts{
		Program:        ix.Program,
		Wallet:         ix.Accounts[0].PublicKey,
		UserToken:      ix.Accounts[1].PublicKey,
		UserPagesStats: ix.Accounts[2].PublicKey,
		UsersPage:      ix.Accounts[3].PublicKey,
		UserInfo:       ix.Accounts[4].PublicKey,
		AssetPool:      ix.Accounts[5].PublicKey,
		AssetPoolToken: ix.Accounts[6].PublicKey,
		PoolSummaries:  ix.Accounts[7].PublicKey,
		SystemProgram:  ix.Accounts[8].PublicKey,
		TokenProgram:   ix.Accounts[9].PublicKey,
	}

	expected, err := NewAddUserAndDepositInstruction(accounts, &args)
	if err != nil {
		return nil, nil, err
	}
	if err := checkAccountFlags(ix, expected); err != nil {
		return nil, nil, err
	}

	return &args, accounts, nil
}

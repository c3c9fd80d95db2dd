package apricot

import (
	"crypto/ed25519"

	"github.com/pkg/errors"

	"github.com/apricot-lend/apricot-go/pkg/solana"
)

const (
	WithdrawAndRemoveUserInstructionArgsSize = (1 + // withdraw_all
		8 + // amount
		1) // pool_id

	withdrawAndRemoveUserInstructionNumAccounts = 11
)

type WithdrawAndRemoveUserInstructionArgs struct {
	WithdrawAll bool
	Amount      uint64
	PoolId      uint8
}

type withdrawAndRemoveUserInstructionWireArgs struct {
	WithdrawAll uint8
	Amount      uint64
	PoolId      uint8
}

type WithdrawAndRemoveUserInstructionAccounts struct {
	Program ed25519.PublicKey

	Wallet         ed25519.PublicKey
	UserToken      ed25519.PublicKey
	UserPagesStats ed25519.PublicKey
	UsersPage      ed25519.PublicKey
	UserInfo       ed25519.PublicKey
	AssetPool      ed25519.PublicKey
	AssetPoolToken ed25519.PublicKey
	PoolSummaries  ed25519.PublicKey
	PriceSummaries ed25519.PublicKey
	BasePda        ed25519.PublicKey
	TokenProgram   ed25519.PublicKey
}

// NewWithdrawAndRemoveUserInstruction withdraws the user's last position and
// takes them off their users page.
//
// The layout follows the reference client and has not been confirmed
// against the program's decoder.
func NewWithdrawAndRemoveUserInstruction(
	accounts *WithdrawAndRemoveUserInstructionAccounts,
	args *WithdrawAndRemoveUserInstructionArgs,
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
		namedKey{"price summaries", accounts.PriceSummaries},
		namedKey{"base pda", accounts.BasePda},
		namedKey{"token program", accounts.TokenProgram},
	)
	if err != nil {
		return solana.Instruction{}, err
	}

	var offset int

	// Serialize instruction arguments
	data := make([]byte, commandSize+WithdrawAndRemoveUserInstructionArgsSize)

	putCommand(data, CommandWithdrawAndRemoveUser, &offset)
	putBool(data, args.WithdrawAll, &offset)
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
		solana.NewReadonlyAccountMeta(accounts.PriceSummaries, false),
		solana.NewReadonlyAccountMeta(accounts.BasePda, false),
		solana.NewReadonlyAccountMeta(accounts.TokenProgram, false),
	), nil
}

// WithdrawAndRemoveUser builds the instruction for a user on page pageId,
// as recorded in their UserInfoHeader.
func (r *Registry) WithdrawAndRemoveUser(
	wallet ed25519.PublicKey,
	userToken ed25519.PublicKey,
	pageId uint16,
	args *WithdrawAndRemoveUserInstructionArgs,
) (solana.Instruction, error) {
	if args == nil {
		return solana.Instruction{}, errNilArgs()
	}

	if err := checkKeys(namedKey{"wallet", wallet}); err != nil {
		return solana.Instruction{}, err
	}

	if pageId == InvalidPageId {
		return solana.Instruction{}, errors.Wrapf(ErrUserNotAdded, "page %d", pageId)
	}

	userPagesStats, err := r.GetUserPagesStatsAddress()
	if err != nil {
		return solana.Instruction{}, err
	}

	usersPage, err := r.GetUsersPageAddress(pageId)
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

	return NewWithdrawAndRemoveUserInstruction(
		&WithdrawAndRemoveUserInstructionAccounts{
			Program:        r.Program,
			Wallet:         wallet,
			UserToken:      userToken,
			UserPagesStats: userPagesStats,
			UsersPage:      usersPage,
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

// DecompileWithdrawAndRemoveUserInstruction decodes an instruction built by NewWithdrawAndRemoveUserInstruction.
func (r *Registry) DecompileWithdrawAndRemoveUserInstruction(ix solana.Instruction) (*WithdrawAndRemoveUserInstructionArgs, *WithdrawAndRemoveUserInstructionAccounts, error) {
	err := r.checkInstruction(ix, CommandWithdrawAndRemoveUser, WithdrawAndRemoveUserInstructionArgsSize, withdrawAndRemoveUserInstructionNumAccounts, true)
	if err != nil {
		return nil, nil, err
	}

	var wire withdrawAndRemoveUserInstructionWireArgs
	if err := decodeArgs(ix.Data, &wire); err != nil {
		return nil, nil, err
	}

	args := &WithdrawAndRemoveUserInstructionArgs{
		WithdrawAll: wire.WithdrawAll != 0,
		Amount:      wire.Amount,
		PoolId:      wire.PoolId,
	}

	accounts := &WithdrawAndRemoveUserInstructionAccounts{
		Program:        ix.Program,
		Wallet:         ix.Accounts[0].PublicKey,
		UserToken:      ix.Accounts[1].PublicKey,
		UserPagesStats: ix.Accounts[2].PublicKey,
		UsersPage:      ix.Accounts[3].PublicKey,
		UserInfo:       ix.Accounts[4].PublicKey,
		AssetPool:      ix.Accounts[5].PublicKey,
		AssetPoolToken: ix.Accounts[6].PublicKey,
		PoolSummaries:  ix.Accounts[7].PublicKey,
		PriceSummaries: ix.Accounts[8].PublicKey,
		BasePda:        ix.Accounts[9].PublicKey,
		TokenProgram:   ix.Accounts[10].PublicKey,
	}

	expected, err := NewWithdrawAndRemoveUserInstruction(accounts, args)
	if err != nil {
		return nil, nil, err
	}
	if err := checkAccountFlags(ix, expected); err != nil {
		return nil, nil, err
	}

	return args, accounts, nil
}

package apricot

import (
	"bytes"

	"github.com/pkg/errors"

	"github.com/apricot-lend/apricot-go/pkg/solana"
)

// Command is the leading byte of every instruction's data and selects the
// operation the program performs.
type Command uint8

const (
	CommandAddUserAndDeposit Command = iota + 0x10
	CommandDeposit
	CommandWithdraw
	CommandBorrow
	CommandRepay
	CommandExternLiquidate
	CommandSelfLiquidate
	CommandUpdateUserConfig
	CommandMarginSwap
	CommandUpdateUserAssetConfig
	CommandWithdrawAndRemoveUser

	CommandUnknown Command = 0xff
)

const commandSize = 1

func (c Command) String() string {
	switch c {
	case CommandAddUserAndDeposit:
		return "add_user_and_deposit"
	case CommandDeposit:
		return "deposit"
	case CommandWithdraw:
		return "withdraw"
	case CommandBorrow:
		return "borrow"
	case CommandRepay:
		return "repay"
	case CommandExternLiquidate:
		return "extern_liquidate"
	case CommandSelfLiquidate:
		return "self_liquidate"
	case CommandUpdateUserConfig:
		return "update_user_config"
	case CommandMarginSwap:
		return "margin_swap"
	case CommandUpdateUserAssetConfig:
		return "update_user_asset_config"
	case CommandWithdrawAndRemoveUser:
		return "withdraw_and_remove_user"
	}
	return "unknown"
}

// IsValid reports whether the command is one the program understands.
func (c Command) IsValid() bool {
	return c >= CommandAddUserAndDeposit && c <= CommandWithdrawAndRemoveUser
}

// GetCommand returns the command of an instruction targeting the registry's
// program.
func (r *Registry) GetCommand(ix solana.Instruction) (Command, error) {
	if !bytes.Equal(ix.Program, r.Program) {
		return CommandUnknown, solana.ErrIncorrectProgram
	}
	if len(ix.Data) == 0 {
		return CommandUnknown, errors.Wrap(ErrInvalidInstructionData, "missing data")
	}

	cmd := Command(ix.Data[0])
	if !cmd.IsValid() {
		return CommandUnknown, errors.Wrapf(ErrInvalidInstructionData, "unsupported command: 0x%x", ix.Data[0])
	}
	return cmd, nil
}

func (r *Registry) checkInstruction(ix solana.Instruction, cmd Command, argsSize, numAccounts int, exactAccounts bool) error {
	if !bytes.Equal(ix.Program, r.Program) {
		return solana.ErrIncorrectProgram
	}
	if len(ix.Data) == 0 || Command(ix.Data[0]) != cmd {
		return solana.ErrIncorrectInstruction
	}
	if len(ix.Data) != commandSize+argsSize {
		return errors.Wrapf(ErrInvalidInstructionData, "invalid instruction data size: %d", len(ix.Data))
	}

	if exactAccounts && len(ix.Accounts) != numAccounts {
		return errors.Errorf("invalid number of accounts: %d", len(ix.Accounts))
	}
	if !exactAccounts && len(ix.Accounts) < numAccounts {
		return errors.Errorf("invalid number of accounts: %d", len(ix.Accounts))
	}
	return nil
}

// checkAccountFlags rejects instructions whose account permissions differ
// from what the builder produces for the same accounts.
func checkAccountFlags(ix, expected solana.Instruction) error {
	if len(ix.Accounts) != len(expected.Accounts) {
		return errors.Errorf("invalid number of accounts: %d", len(ix.Accounts))
	}

	for i, account := range ix.Accounts {
		want := expected.Accounts[i]
		if account.IsSigner != want.IsSigner || account.IsWritable != want.IsWritable {
			return errors.Wrapf(
				ErrInvalidAccount,
				"account %d: expected signer=%t writable=%t, got signer=%t writable=%t",
				i, want.IsSigner, want.IsWritable, account.IsSigner, account.IsWritable,
			)
		}
	}
	return nil
}

package solana

import (
	"bytes"
	"crypto/ed25519"
	"errors"
)

var (
	ErrIncorrectProgram     = errors.New("incorrect program")
	ErrIncorrectInstruction = errors.New("incorrect instruction")
)

// AccountMeta references an account used by an instruction, along with the
// permissions the instruction requires on it.
type AccountMeta struct {
	PublicKey  ed25519.PublicKey
	IsSigner   bool
	IsWritable bool
}

// NewAccountMeta creates a new AccountMeta representing a writable
// account.
func NewAccountMeta(pub ed25519.PublicKey, isSigner bool) AccountMeta {
	return AccountMeta{
		PublicKey:  pub,
		IsSigner:   isSigner,
		IsWritable: true,
	}
}

// NewReadonlyAccountMeta creates a new AccountMeta representing a readonly
// account.
func NewReadonlyAccountMeta(pub ed25519.PublicKey, isSigner bool) AccountMeta {
	return AccountMeta{
		PublicKey:  pub,
		IsSigner:   isSigner,
		IsWritable: false,
	}
}

// Equal reports whether both metas reference the same key with the same
// permissions.
func (a AccountMeta) Equal(other AccountMeta) bool {
	return bytes.Equal(a.PublicKey, other.PublicKey) &&
		a.IsSigner == other.IsSigner &&
		a.IsWritable == other.IsWritable
}

// Instruction is a single program invocation. The order of Accounts is part
// of the program's interface.
type Instruction struct {
	Program  ed25519.PublicKey
	Accounts []AccountMeta
	Data     []byte
}

// NewInstruction creates a new instruction.
func NewInstruction(program ed25519.PublicKey, data []byte, accounts ...AccountMeta) Instruction {
	return Instruction{
		Program:  program,
		Data:     data,
		Accounts: accounts,
	}
}

// Signers returns the keys that must sign a transaction containing the
// instruction, in account order.
func (i Instruction) Signers() []ed25519.PublicKey {
	var signers []ed25519.PublicKey
	for _, account := range i.Accounts {
		if account.IsSigner {
			signers = append(signers, account.PublicKey)
		}
	}
	return signers
}

// Equal reports whether two instructions are byte-for-byte identical.
func (i Instruction) Equal(other Instruction) bool {
	if !bytes.Equal(i.Program, other.Program) || !bytes.Equal(i.Data, other.Data) {
		return false
	}

	if len(i.Accounts) != len(other.Accounts) {
		return false
	}
	for j := range i.Accounts {
		if !i.Accounts[j].Equal(other.Accounts[j]) {
			return false
		}
	}

	return true
}

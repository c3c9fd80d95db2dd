package apricot

import (
	"bytes"
	"crypto/ed25519"
	"encoding/binary"
	"fmt"
	"math"

	"github.com/holiman/uint256"
	"github.com/mr-tron/base58"
	"github.com/near/borsh-go"
	"github.com/pkg/errors"

	"github.com/apricot-lend/apricot-go/pkg/solana"
)

func putCommand(dst []byte, v Command, offset *int) {
	putUint8(dst, uint8(v), offset)
}

func putUint8(dst []byte, v uint8, offset *int) {
	dst[*offset] = v
	*offset += 1
}

func getUint8(src []byte, dst *uint8, offset *int) {
	*dst = src[*offset]
	*offset += 1
}

func putBool(dst []byte, v bool, offset *int) {
	if v {
		putUint8(dst, 1, offset)
	} else {
		putUint8(dst, 0, offset)
	}
}

func putUint16(dst []byte, v uint16, offset *int) {
	binary.LittleEndian.PutUint16(dst[*offset:], v)
	*offset += 2
}

func getUint16(src []byte, dst *uint16, offset *int) {
	*dst = binary.LittleEndian.Uint16(src[*offset:])
	*offset += 2
}

func putUint64(dst []byte, v uint64, offset *int) {
	binary.LittleEndian.PutUint64(dst[*offset:], v)
	*offset += 8
}

func getUint64(src []byte, dst *uint64, offset *int) {
	*dst = binary.LittleEndian.Uint64(src[*offset:])
	*offset += 8
}

func getFloat64(src []byte, dst *float64, offset *int) {
	*dst = math.Float64frombits(binary.LittleEndian.Uint64(src[*offset:]))
	*offset += 8
}

func getKey(src []byte, dst *ed25519.PublicKey, offset *int) {
	*dst = make([]byte, ed25519.PublicKeySize)
	copy(*dst, src[*offset:])
	*offset += ed25519.PublicKeySize
}

// getFixedString reads a zero padded string of length bytes.
func getFixedString(src []byte, dst *string, length int, offset *int) {
	value := src[*offset : *offset+length]
	if end := bytes.IndexByte(value, 0); end >= 0 {
		value = value[:end]
	}
	*dst = string(value)
	*offset += length
}

// getAmount reads a u128 fixed point amount and scales it down to token base
// units. The fractional part is dropped.
func getAmount(src []byte, dst **uint256.Int, offset *int) {
	var lo, hi uint64
	getUint64(src, &lo, offset)
	getUint64(src, &hi, offset)

	amount := new(uint256.Int).SetUint64(hi)
	amount.Lsh(amount, 64)
	amount.Or(amount, new(uint256.Int).SetUint64(lo))
	*dst = amount.Div(amount, uint256.NewInt(AmountMultiplier))
}

// decodeArgs reads the fixed width arguments that follow the command byte.
// The caller is expected to have checked the data size. Flags are decoded
// into uint8 fields so any nonzero value reads as set.
func decodeArgs(data []byte, dst interface{}) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Wrap(ErrInvalidInstructionData, fmt.Sprintf("%v", r))
		}
	}()

	if err := borsh.Deserialize(dst, data[commandSize:]); err != nil {
		return errors.Wrap(ErrInvalidInstructionData, err.Error())
	}
	return nil
}

func errNilAccounts() error {
	return errors.Wrap(ErrInvalidAccount, "nil accounts")
}

func errNilArgs() error {
	return errors.Wrap(ErrInvalidInstructionData, "nil args")
}

type namedKey struct {
	name string
	key  ed25519.PublicKey
}

func checkKeys(keys ...namedKey) error {
	for _, k := range keys {
		if len(k.key) != ed25519.PublicKeySize {
			return errors.Wrapf(ErrInvalidAccount, "%s: expected %d byte key, got %d", k.name, ed25519.PublicKeySize, len(k.key))
		}
	}
	return nil
}

func checkAccountMetas(name string, metas []solana.AccountMeta) error {
	for i, meta := range metas {
		if len(meta.PublicKey) != ed25519.PublicKeySize {
			return errors.Wrapf(ErrInvalidAccount, "%s[%d]: expected %d byte key, got %d", name, i, ed25519.PublicKeySize, len(meta.PublicKey))
		}
	}
	return nil
}

func cloneAccountMetas(metas []solana.AccountMeta) []solana.AccountMeta {
	cloned := make([]solana.AccountMeta, len(metas))
	for i, meta := range metas {
		cloned[i] = solana.AccountMeta{
			PublicKey:  append(ed25519.PublicKey(nil), meta.PublicKey...),
			IsSigner:   meta.IsSigner,
			IsWritable: meta.IsWritable,
		}
	}
	return cloned
}

// checkPoolPair rejects account sets where the pool accounts disagree with
// the pool ids they were supplied for.
func checkPoolPair(
	firstId uint8, firstPool, firstPoolToken ed25519.PublicKey,
	secondId uint8, secondPool, secondPoolToken ed25519.PublicKey,
) error {
	samePool := bytes.Equal(firstPool, secondPool)
	samePoolToken := bytes.Equal(firstPoolToken, secondPoolToken)

	if firstId == secondId && (!samePool || !samePoolToken) {
		return errors.Wrapf(ErrInconsistentAccounts, "pool %d supplied with different accounts", firstId)
	}
	if firstId != secondId && (samePool || samePoolToken) {
		return errors.Wrapf(ErrInconsistentAccounts, "pools %d and %d share an account", firstId, secondId)
	}
	return nil
}

func mustBase58Decode(value string) []byte {
	decoded, err := base58.Decode(value)
	if err != nil {
		panic(err)
	}
	return decoded
}

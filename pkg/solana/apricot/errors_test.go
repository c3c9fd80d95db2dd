package apricot

import (
	"bytes"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apricot-lend/apricot-go/pkg/solana"
)

func TestProgramError(t *testing.T) {
	assert.EqualValues(t, 0x1000, ErrIncorrectBasePda)
	assert.EqualValues(t, 0x1012, ErrIncorrectPricePda)
	assert.EqualValues(t, 0x2005, ErrWrongDataSize)
	assert.EqualValues(t, 0x3003, ErrWalletDidNotSign)
	assert.EqualValues(t, 0x3007, ErrInsufficientFees)
	assert.EqualValues(t, 0x4000, ErrDepositLessThanMinimum)
	assert.EqualValues(t, 0x4014, ErrAssetNotUsedAsCollateral)

	assert.Equal(t, "lending program error 0x4004: not enough borrowing power", ErrInsufficientBorrowPower.Error())
	assert.Equal(t, "unknown lending program error: 0x5000", ProgramError(0x5000).Error())

	for code := range programErrorMessages {
		assert.True(t, code.IsKnown())
		assert.NotEqual(t, ErrorCategoryUnknown, code.Category(), code.Error())
	}
	assert.Len(t, programErrorMessages, 19+6+8+21)

	assert.False(t, ProgramError(0x1013).IsKnown())
	assert.False(t, ProgramError(0).IsKnown())
}

func TestProgramError_Category(t *testing.T) {
	for _, tc := range []struct {
		code     ProgramError
		expected ErrorCategory
	}{
		{ErrIncorrectUserInfo, ErrorCategoryAccount},
		{ErrMissingAmount, ErrorCategoryData},
		{ErrNoAvailableSlots, ErrorCategoryInternal},
		{ErrLiquidationNotReached, ErrorCategoryUser},
		{ProgramError(0x1fff), ErrorCategoryAccount},
		{ProgramError(0x0001), ErrorCategoryUnknown},
		{ProgramError(0x5000), ErrorCategoryUnknown},
	} {
		assert.Equal(t, tc.expected, tc.code.Category(), tc.code.Error())
	}

	assert.Equal(t, "account", ErrorCategoryAccount.String())
	assert.Equal(t, "user", ErrorCategoryUser.String())
	assert.Equal(t, "unknown", ErrorCategoryUnknown.String())
}

func TestProgramErrorFromTransactionError(t *testing.T) {
	d := json.NewDecoder(bytes.NewBufferString(`{"InstructionError":[1,{"Custom":16391}]}`))
	d.UseNumber()

	var raw interface{}
	require.NoError(t, d.Decode(&raw))

	txErr, err := solana.ParseTransactionError(raw)
	require.NoError(t, err)

	code, ok := ProgramErrorFromTransactionError(txErr)
	require.True(t, ok)
	assert.Equal(t, ErrLiquidationNotReached, code)
	assert.Equal(t, ErrorCategoryUser, code.Category())

	code, ok = ProgramErrorFromError(errors.Wrap(txErr, "failed to submit"))
	require.True(t, ok)
	assert.Equal(t, ErrLiquidationNotReached, code)

	_, ok = ProgramErrorFromTransactionError(solana.NewTransactionError(solana.TransactionErrorBlockhashNotFound))
	assert.False(t, ok)

	_, ok = ProgramErrorFromTransactionError(nil)
	assert.False(t, ok)
}

func TestProgramErrorFromError(t *testing.T) {
	code, ok := ProgramErrorFromError(errors.New("Transaction simulation failed: Error processing Instruction 0: custom program error: 0x3001"))
	require.True(t, ok)
	assert.Equal(t, ErrNoAvailableSlots, code)

	code, ok = ProgramErrorFromError(errors.Wrap(ErrSwapBoughtLessThanMin, "margin swap"))
	require.True(t, ok)
	assert.Equal(t, ErrSwapBoughtLessThanMin, code)

	// Codes outside the table are still surfaced
	code, ok = ProgramErrorFromError(fmt.Errorf("custom program error: 0x%x", 0x4100))
	require.True(t, ok)
	assert.False(t, code.IsKnown())

	_, ok = ProgramErrorFromError(errors.New("blockhash not found"))
	assert.False(t, ok)

	_, ok = ProgramErrorFromError(nil)
	assert.False(t, ok)
}

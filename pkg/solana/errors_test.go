package solana

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ybbus/jsonrpc"
)

func decodeRaw(t *testing.T, s string) interface{} {
	d := json.NewDecoder(bytes.NewBufferString(s))
	d.UseNumber()

	var raw interface{}
	require.NoError(t, d.Decode(&raw))
	return raw
}

func TestParse(t *testing.T) {
	e, err := ParseTransactionError(decodeRaw(t, `{"InstructionError":[2,{"Custom":16388}]}`))
	assert.NoError(t, err)

	assert.Equal(t, TransactionErrorInstructionError, e.ErrorKey())
	assert.NotNil(t, e.InstructionError())
	assert.Equal(t, 2, e.InstructionError().Index)
	assert.Equal(t, InstructionErrorCustom, e.InstructionError().ErrorKey())
	require.NotNil(t, e.CustomError())
	assert.Equal(t, CustomError(0x4004), *e.CustomError())

	e, err = ParseTransactionError(decodeRaw(t, `{"InstructionError":[0,"InvalidArgument"]}`))
	assert.NoError(t, err)

	assert.Equal(t, TransactionErrorInstructionError, e.ErrorKey())
	assert.NotNil(t, e.InstructionError())
	assert.Equal(t, 0, e.InstructionError().Index)
	assert.Equal(t, InstructionErrorInvalidArgument, e.InstructionError().ErrorKey())
	assert.Nil(t, e.CustomError())

	e, err = ParseTransactionError(decodeRaw(t, `"DuplicateSignature"`))
	assert.NoError(t, err)

	assert.Equal(t, TransactionErrorDuplicateSignature, e.ErrorKey())
	assert.Nil(t, e.InstructionError())
	assert.Nil(t, e.CustomError())

	e, err = ParseTransactionError(nil)
	assert.NoError(t, err)
	assert.Nil(t, e)

	_, err = ParseTransactionError(decodeRaw(t, `{"InstructionError":[0,"InvalidArgument"],"Other":1}`))
	assert.Error(t, err)
}

func TestParseRPCError(t *testing.T) {
	e, err := ParseRPCError(nil)
	assert.NoError(t, err)
	assert.Nil(t, e)

	e, err = ParseRPCError(&jsonrpc.RPCError{
		Code:    -32002,
		Message: "Transaction simulation failed: Error processing Instruction 0: custom program error: 0x1003",
		Data: map[string]interface{}{
			"err": decodeRaw(t, `{"InstructionError":[0,{"Custom":4099}]}`),
		},
	})
	require.NoError(t, err)
	require.NotNil(t, e.CustomError())
	assert.Equal(t, CustomError(0x1003), *e.CustomError())

	_, err = ParseRPCError(&jsonrpc.RPCError{Code: -32000, Data: "not a map"})
	assert.Error(t, err)
}

func TestTransactionError_Error(t *testing.T) {
	e := NewTransactionError(TransactionErrorDuplicateSignature)
	assert.Equal(t, TransactionErrorDuplicateSignature, e.ErrorKey())
	assert.Equal(t, "DuplicateSignature", e.Error())
	assert.Nil(t, e.CustomError())

	e, err := ParseTransactionError(decodeRaw(t, `{"InstructionError":[3,{"Custom":3}]}`))
	require.NoError(t, err)
	assert.Equal(t, "Error processing Instruction 3: custom program error: 0x3", e.Error())

	e, err = ParseTransactionError(decodeRaw(t, `{"InstructionError":[1,{"InvalidSeeds":null}]}`))
	require.NoError(t, err)
	assert.Equal(t, InstructionErrorInvalidSeeds, e.InstructionError().ErrorKey())
	assert.Nil(t, e.CustomError())

	for _, invalid := range []string{
		`{"InstructionError":[0]}`,
		`{"InstructionError":["x","InvalidArgument"]}`,
		`{"InstructionError":[0,{"Custom":"abc"}]}`,
		`{"InstructionError":[0,{}]}`,
		`{}`,
		`12`,
	} {
		_, err = ParseTransactionError(decodeRaw(t, invalid))
		assert.Error(t, err, invalid)
	}
}

func TestCustomErrorMessage(t *testing.T) {
	assert.Equal(t, "custom program error: 0x4007", CustomError(0x4007).Error())

	for _, tc := range []struct {
		msg      string
		expected CustomError
		ok       bool
	}{
		{"custom program error: 0x1004", 0x1004, true},
		{"Transaction simulation failed: Error processing Instruction 0: custom program error: 0x400a", 0x400a, true},
		{"custom program error: 0x2000 then custom program error: 0x3001 (retry)", 0x3001, true},
		{"invalid account data for instruction", 0, false},
		{"custom program error: 0x", 0, false},
	} {
		actual, ok := ParseCustomErrorMessage(tc.msg)
		assert.Equal(t, tc.ok, ok, tc.msg)
		assert.Equal(t, tc.expected, actual, tc.msg)
	}
}

func TestParseJSONNumber(t *testing.T) {
	tc := []interface{}{
		"1",
		1.0,
		json.Number("1"),
	}
	for i, c := range tc {
		v, err := parseJSONNumber(c)
		assert.NoError(t, err)
		assert.Equal(t, 1, v, i)
	}
}

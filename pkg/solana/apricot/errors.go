package apricot

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/apricot-lend/apricot-go/pkg/solana"
)

// ProgramError is a custom error code returned by the lending program. The
// high nibble of the code selects its ErrorCategory.
type ProgramError uint32

// Supplied accounts
const (
	ErrIncorrectBasePda ProgramError = iota + 0x1000
	ErrIncorrectUserPagesStats
	ErrIncorrectUsersPage
	ErrIncorrectUserInfo
	ErrIncorrectAssetPool
	ErrIncorrectAssetPrice
	ErrIncorrectAssetPoolToken
	ErrIncorrectUserAssetInfo
	ErrMissingActiveAccounts
	ErrIncorrectIntermediateToken
	ErrIncorrectSellMarket
	ErrIncorrectBuyMarket
	ErrIncorrectDexProgram
	ErrIncorrectAdmin
	ErrIncorrectIntermediateTokenOwner
	ErrIncorrectPoolList
	ErrIncorrectPoolSummaries
	ErrIncorrectPriceSummaries
	ErrIncorrectPricePda
)

// Instruction data
const (
	ErrMissingPageId ProgramError = iota + 0x2000
	ErrPageIdTooLarge
	ErrMissingAmount
	ErrMissingMintSeed
	ErrMissingActiveMintSeed
	ErrWrongDataSize
)

// Internal bookkeeping
const (
	ErrAccountAlreadyAdded ProgramError = iota + 0x3000
	ErrNoAvailableSlots
	ErrAccountNotAdded
	ErrWalletDidNotSign
	ErrMaximumNumPoolsReached
	ErrUserHasNoSuchAsset
	ErrNeedAtLeastBuyOrSell
	ErrInsufficientFees
)

// User policy
const (
	ErrDepositLessThanMinimum ProgramError = iota + 0x4000
	ErrInsufficientDeposit
	ErrPoolNoFreeFunds
	ErrPleaseWithdrawAll
	ErrInsufficientBorrowPower
	ErrCannotRepayMoreThanDebt
	ErrWithdrawalBelowMinCollateralRatio
	ErrLiquidationNotReached
	ErrLiquidatorAskedTooMuchCollateral
	ErrNotEnoughDebtForLiquidation
	ErrNotEnoughCollateralForLiquidation
	ErrExceedsLiquidationLimit
	ErrSelfLiquidationThresholdTooSmall
	ErrPostSelfLiquidationTargetTooSmall
	ErrPostExternLiquidationTargetTooSmall
	ErrSelfLiquidationNotReached
	ErrSelfLiquidationTargetExceeded
	ErrSelfLiquidationHighSlippage
	ErrMaxNumAssetsReached
	ErrSwapBoughtLessThanMin
	ErrAssetNotUsedAsCollateral
)

type ErrorCategory uint8

const (
	ErrorCategoryUnknown ErrorCategory = iota
	ErrorCategoryAccount
	ErrorCategoryData
	ErrorCategoryInternal
	ErrorCategoryUser
)

func (c ErrorCategory) String() string {
	switch c {
	case ErrorCategoryAccount:
		return "account"
	case ErrorCategoryData:
		return "data"
	case ErrorCategoryInternal:
		return "internal"
	case ErrorCategoryUser:
		return "user"
	}
	return "unknown"
}

var programErrorMessages = map[ProgramError]string{
	ErrIncorrectBasePda:                "incorrect base pda account",
	ErrIncorrectUserPagesStats:         "incorrect user pages stats account",
	ErrIncorrectUsersPage:              "incorrect users page account",
	ErrIncorrectUserInfo:               "incorrect user info account",
	ErrIncorrectAssetPool:              "incorrect asset pool account",
	ErrIncorrectAssetPrice:             "incorrect asset price account",
	ErrIncorrectAssetPoolToken:         "incorrect asset pool token account",
	ErrIncorrectUserAssetInfo:          "incorrect user asset info account",
	ErrMissingActiveAccounts:           "missing active accounts",
	ErrIncorrectIntermediateToken:      "incorrect intermediate token account",
	ErrIncorrectSellMarket:             "incorrect sell market account",
	ErrIncorrectBuyMarket:              "incorrect buy market account",
	ErrIncorrectDexProgram:             "incorrect dex program account",
	ErrIncorrectAdmin:                  "incorrect admin account",
	ErrIncorrectIntermediateTokenOwner: "incorrect intermediate token account owner",
	ErrIncorrectPoolList:               "incorrect pool list account",
	ErrIncorrectPoolSummaries:          "incorrect pool summaries account",
	ErrIncorrectPriceSummaries:         "incorrect price summaries account",
	ErrIncorrectPricePda:               "incorrect price pda account",

	ErrMissingPageId:         "missing page id",
	ErrPageIdTooLarge:        "page id too large",
	ErrMissingAmount:         "missing amount",
	ErrMissingMintSeed:       "missing pool seed",
	ErrMissingActiveMintSeed: "missing active pool seed",
	ErrWrongDataSize:         "wrong instruction data size",

	ErrAccountAlreadyAdded:    "user already added, use deposit",
	ErrNoAvailableSlots:       "not enough available slots on the chosen users page",
	ErrAccountNotAdded:        "user not added, use add user and deposit",
	ErrWalletDidNotSign:       "wallet did not sign",
	ErrMaximumNumPoolsReached: "maximum number of pools reached",
	ErrUserHasNoSuchAsset:     "user has no position in the pool",
	ErrNeedAtLeastBuyOrSell:   "swap needs at least one of sell or buy",
	ErrInsufficientFees:       "insufficient fees",

	ErrDepositLessThanMinimum:              "deposit is less than the minimum required",
	ErrInsufficientDeposit:                 "cannot withdraw more than the deposit",
	ErrPoolNoFreeFunds:                     "pool does not have enough free funds",
	ErrPleaseWithdrawAll:                   "remaining deposit would fall below the minimum, withdraw all instead",
	ErrInsufficientBorrowPower:             "not enough borrowing power",
	ErrCannotRepayMoreThanDebt:             "cannot repay more than the debt",
	ErrWithdrawalBelowMinCollateralRatio:   "withdrawal would drop the collateral ratio below the minimum",
	ErrLiquidationNotReached:               "user has not reached the liquidation threshold",
	ErrLiquidatorAskedTooMuchCollateral:    "liquidator asked for too much collateral",
	ErrNotEnoughDebtForLiquidation:         "liquidator tried to repay more than the user owes",
	ErrNotEnoughCollateralForLiquidation:   "liquidator asked for more collateral than the user has",
	ErrExceedsLiquidationLimit:             "liquidation would leave the collateral ratio too high",
	ErrSelfLiquidationThresholdTooSmall:    "self liquidation threshold too small",
	ErrPostSelfLiquidationTargetTooSmall:   "post self liquidation target ratio too small",
	ErrPostExternLiquidationTargetTooSmall: "post extern liquidation target ratio too small",
	ErrSelfLiquidationNotReached:           "self liquidation threshold not reached",
	ErrSelfLiquidationTargetExceeded:       "self liquidation target exceeded",
	ErrSelfLiquidationHighSlippage:         "self liquidation slippage too high",
	ErrMaxNumAssetsReached:                 "maximum number of assets reached",
	ErrSwapBoughtLessThanMin:               "swap bought less than the minimum",
	ErrAssetNotUsedAsCollateral:            "asset not used as collateral",
}

func (e ProgramError) Error() string {
	msg, ok := programErrorMessages[e]
	if !ok {
		return fmt.Sprintf("unknown lending program error: 0x%x", uint32(e))
	}
	return fmt.Sprintf("lending program error 0x%x: %s", uint32(e), msg)
}

// IsKnown reports whether the code is one the program is known to return.
func (e ProgramError) IsKnown() bool {
	_, ok := programErrorMessages[e]
	return ok
}

func (e ProgramError) Category() ErrorCategory {
	switch e >> 12 {
	case 0x1:
		return ErrorCategoryAccount
	case 0x2:
		return ErrorCategoryData
	case 0x3:
		return ErrorCategoryInternal
	case 0x4:
		return ErrorCategoryUser
	}
	return ErrorCategoryUnknown
}

// ProgramErrorFromTransactionError extracts the lending program's code from
// a failed transaction. The code is returned as is, including codes this
// package doesn't know about.
func ProgramErrorFromTransactionError(txErr *solana.TransactionError) (ProgramError, bool) {
	if txErr == nil {
		return 0, false
	}

	code := txErr.CustomError()
	if code == nil {
		return 0, false
	}
	return ProgramError(*code), true
}

// ProgramErrorFromError extracts the lending program's code from any error
// whose message carries a custom program error, such as a simulation
// failure surfaced by an RPC client.
func ProgramErrorFromError(err error) (ProgramError, bool) {
	if err == nil {
		return 0, false
	}

	var pe ProgramError
	if errors.As(err, &pe) {
		return pe, true
	}

	var txErr *solana.TransactionError
	if errors.As(err, &txErr) {
		return ProgramErrorFromTransactionError(txErr)
	}

	code, ok := solana.ParseCustomErrorMessage(err.Error())
	if !ok {
		return 0, false
	}
	return ProgramError(code), true
}

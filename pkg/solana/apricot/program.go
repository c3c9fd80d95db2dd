package apricot

import (
	"crypto/ed25519"

	"github.com/pkg/errors"
)

var (
	ErrInvalidProgram         = errors.New("invalid program id")
	ErrInvalidInstructionData = errors.New("unexpected instruction data")
	ErrInvalidAccount         = errors.New("invalid account")
	ErrInvalidAccountData     = errors.New("unexpected account data")
	ErrInvalidPageId          = errors.New("invalid users page id")
	ErrInconsistentAccounts   = errors.New("inconsistent accounts")
	ErrUnknownPool            = errors.New("unknown pool")
	ErrUserNotAdded           = errors.New("user not added to a users page")
)

var (
	PROGRAM_ADDRESS = mustBase58Decode("HidHf4DzeZj6F7BL37WP6YnTuhh4c4DTsdSTmiFaDtSf")
	PROGRAM_ID      = ed25519.PublicKey(PROGRAM_ADDRESS)
)

var (
	SYSTEM_PROGRAM_ID    = ed25519.PublicKey(mustBase58Decode("11111111111111111111111111111111"))
	SPL_TOKEN_PROGRAM_ID = ed25519.PublicKey(mustBase58Decode("TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA"))
	SERUM_PROGRAM_ID     = ed25519.PublicKey(mustBase58Decode("9NaBPcFZpHWj6p5sSbLSPEt85j5xev84Bq3HvhTNWq4c"))

	SYSVAR_RENT_PUBKEY = ed25519.PublicKey(mustBase58Decode("SysvarRent111111111111111111111111111111111"))
)

// Mainnet deployment accounts
var (
	basePdaAddress        = mustBase58Decode("JBSGCV1hPY3CTfpqDQqB4TzwnL9Mjv9ahrSGkpvnxSiM")
	pricePdaAddress       = mustBase58Decode("BPLk2Nd5B9pggzD6i6upRqPFptLBCjQSwfKHjjLjFYNp")
	poolSummariesAddress  = mustBase58Decode("vmw4aLng87nsu7adSGvjzsdrN8BixFnSwtfttXx7N6T")
	priceSummariesAddress = mustBase58Decode("G1cmF3D5PAEAjnwdMFbcGQbnBmWNH7t4hv8cpmfHzS2V")
)

const (
	basePdaBump  uint8 = 255
	pricePdaBump uint8 = 254
)

const (
	// InvalidPageId is the page id recorded for users that aren't on any
	// users page.
	InvalidPageId uint16 = 65535

	// AmountMultiplier scales the fixed point amounts stored in pool and
	// user accounts.
	AmountMultiplier = 1 << 24
)

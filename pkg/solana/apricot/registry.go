package apricot

import (
	"bytes"
	"crypto/ed25519"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"

	"github.com/apricot-lend/apricot-go/pkg/solana"
)

var (
	basePdaSeed  = []byte("2")
	pricePdaSeed = []byte("PRICE")
)

// Registry holds the fixed accounts of a lending program deployment. Every
// address derivation and instruction builder reads from it. A Registry must
// not be modified once constructed, and is safe for concurrent use.
type Registry struct {
	Program ed25519.PublicKey

	// BasePda is the base of every derived protocol account. Its bump is
	// informational only.
	BasePda     ed25519.PublicKey
	BasePdaBump uint8

	// PricePda is the base of the per-pool price accounts. Its bump is
	// informational only.
	PricePda     ed25519.PublicKey
	PricePdaBump uint8

	PoolSummaries  ed25519.PublicKey
	PriceSummaries ed25519.PublicKey

	TokenProgram  ed25519.PublicKey
	SystemProgram ed25519.PublicKey
	DexProgram    ed25519.PublicKey
	RentSysvar    ed25519.PublicKey

	// mint (base58) -> pool id
	pools map[string]uint8
}

// DefaultRegistry returns the registry of the mainnet deployment.
func DefaultRegistry() *Registry {
	return &Registry{
		Program: PROGRAM_ID,

		BasePda:     basePdaAddress,
		BasePdaBump: basePdaBump,

		PricePda:     pricePdaAddress,
		PricePdaBump: pricePdaBump,

		PoolSummaries:  poolSummariesAddress,
		PriceSummaries: priceSummariesAddress,

		TokenProgram:  SPL_TOKEN_PROGRAM_ID,
		SystemProgram: SYSTEM_PROGRAM_ID,
		DexProgram:    SERUM_PROGRAM_ID,
		RentSysvar:    SYSVAR_RENT_PUBKEY,

		pools: make(map[string]uint8),
	}
}

// NewRegistryForProgram derives the registry of a deployment of the lending
// program at an arbitrary address. The base and price PDAs are program
// addresses, and the global summaries hang off the base PDA.
func NewRegistryForProgram(program ed25519.PublicKey) (*Registry, error) {
	if err := checkKeys(namedKey{"program", program}); err != nil {
		return nil, err
	}

	basePda, baseBump, err := solana.FindProgramAddressAndBump(program, basePdaSeed)
	if err != nil {
		return nil, errors.Wrap(err, "error deriving base pda")
	}

	pricePda, priceBump, err := solana.FindProgramAddressAndBump(program, pricePdaSeed)
	if err != nil {
		return nil, errors.Wrap(err, "error deriving price pda")
	}

	poolSummaries, err := solana.CreateWithSeed(basePda, PoolSummariesSeed, program)
	if err != nil {
		return nil, errors.Wrap(err, "error deriving pool summaries")
	}

	priceSummaries, err := solana.CreateWithSeed(basePda, PriceSummariesSeed, program)
	if err != nil {
		return nil, errors.Wrap(err, "error deriving price summaries")
	}

	r := DefaultRegistry()
	r.Program = program
	r.BasePda = basePda
	r.BasePdaBump = baseBump
	r.PricePda = pricePda
	r.PricePdaBump = priceBump
	r.PoolSummaries = poolSummaries
	r.PriceSummaries = priceSummaries
	return r, nil
}

// Validate checks every account in the registry is a well formed key.
func (r *Registry) Validate() error {
	return checkKeys(
		namedKey{"program", r.Program},
		namedKey{"base pda", r.BasePda},
		namedKey{"price pda", r.PricePda},
		namedKey{"pool summaries", r.PoolSummaries},
		namedKey{"price summaries", r.PriceSummaries},
		namedKey{"token program", r.TokenProgram},
		namedKey{"system program", r.SystemProgram},
		namedKey{"dex program", r.DexProgram},
		namedKey{"rent sysvar", r.RentSysvar},
	)
}

// WithPool returns a copy of the registry that maps mint to poolId.
func (r *Registry) WithPool(mint ed25519.PublicKey, poolId uint8) (*Registry, error) {
	if err := checkKeys(namedKey{"mint", mint}); err != nil {
		return nil, err
	}

	encoded := base58.Encode(mint)
	for existingMint, existingId := range r.pools {
		if existingId == poolId && existingMint != encoded {
			return nil, errors.Wrapf(ErrInconsistentAccounts, "pool %d already mapped to %s", poolId, existingMint)
		}
	}

	cloned := *r
	cloned.pools = make(map[string]uint8, len(r.pools)+1)
	for k, v := range r.pools {
		cloned.pools[k] = v
	}
	cloned.pools[encoded] = poolId
	return &cloned, nil
}

// PoolIdForMint returns the pool that holds the given mint.
func (r *Registry) PoolIdForMint(mint ed25519.PublicKey) (uint8, error) {
	poolId, ok := r.pools[base58.Encode(mint)]
	if !ok {
		return 0, errors.Wrapf(ErrUnknownPool, "no pool for mint %s", base58.Encode(mint))
	}
	return poolId, nil
}

// IsProgram reports whether key is the registry's lending program.
func (r *Registry) IsProgram(key ed25519.PublicKey) bool {
	return bytes.Equal(r.Program, key)
}

package apricot

import (
	"crypto/ed25519"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

const (
	ProgramIdConfigEnvName      = "APRICOT_PROGRAM_ID"
	BasePdaConfigEnvName        = "APRICOT_BASE_PDA"
	PricePdaConfigEnvName       = "APRICOT_PRICE_PDA"
	PoolSummariesConfigEnvName  = "APRICOT_POOL_SUMMARIES"
	PriceSummariesConfigEnvName = "APRICOT_PRICE_SUMMARIES"
	TokenProgramIdConfigEnvName = "APRICOT_TOKEN_PROGRAM_ID"
	DexProgramIdConfigEnvName   = "APRICOT_DEX_PROGRAM_ID"
)

// RegistryConfig overrides the mainnet registry. Every key is a base58
// encoded account, and empty values keep the default.
type RegistryConfig struct {
	ProgramId      string `mapstructure:"program_id"`
	BasePda        string `mapstructure:"base_pda"`
	PricePda       string `mapstructure:"price_pda"`
	PoolSummaries  string `mapstructure:"pool_summaries"`
	PriceSummaries string `mapstructure:"price_summaries"`
	TokenProgramId string `mapstructure:"token_program_id"`
	DexProgramId   string `mapstructure:"dex_program_id"`

	// Pools is a list rather than a map because viper lower cases map keys,
	// which would corrupt base58 mints.
	Pools []PoolConfig `mapstructure:"pools"`
}

type PoolConfig struct {
	Mint string `mapstructure:"mint"`
	Id   uint8  `mapstructure:"id"`
}

func bindEnv(v *viper.Viper) {
	_ = v.BindEnv("program_id", ProgramIdConfigEnvName)
	_ = v.BindEnv("base_pda", BasePdaConfigEnvName)
	_ = v.BindEnv("price_pda", PricePdaConfigEnvName)
	_ = v.BindEnv("pool_summaries", PoolSummariesConfigEnvName)
	_ = v.BindEnv("price_summaries", PriceSummariesConfigEnvName)
	_ = v.BindEnv("token_program_id", TokenProgramIdConfigEnvName)
	_ = v.BindEnv("dex_program_id", DexProgramIdConfigEnvName)
}

// LoadRegistry builds a registry from v, which may already hold values read
// from a config file. Environment variables take precedence over the file.
func LoadRegistry(v *viper.Viper, log *logrus.Entry) (*Registry, error) {
	bindEnv(v)

	var config RegistryConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, errors.Wrap(err, "error unmarshalling registry config")
	}

	return NewRegistryFromConfig(&config, log)
}

// NewRegistryFromConfig applies config on top of the mainnet registry. When
// only the program is overridden, the remaining accounts are derived from it.
func NewRegistryFromConfig(config *RegistryConfig, log *logrus.Entry) (*Registry, error) {
	log = log.WithField("method", "NewRegistryFromConfig")

	r := DefaultRegistry()

	if len(config.ProgramId) > 0 {
		program, err := decodeConfigKey("program_id", config.ProgramId)
		if err != nil {
			return nil, err
		}

		if !r.IsProgram(program) {
			r, err = NewRegistryForProgram(program)
			if err != nil {
				return nil, err
			}

			log.WithFields(logrus.Fields{
				"program":         base58.Encode(r.Program),
				"base_pda":        base58.Encode(r.BasePda),
				"price_pda":       base58.Encode(r.PricePda),
				"pool_summaries":  base58.Encode(r.PoolSummaries),
				"price_summaries": base58.Encode(r.PriceSummaries),
			}).Debug("derived registry for program")
		}
	}

	overrides := []struct {
		name  string
		value string
		dst   *ed25519.PublicKey
	}{
		{"base_pda", config.BasePda, &r.BasePda},
		{"price_pda", config.PricePda, &r.PricePda},
		{"pool_summaries", config.PoolSummaries, &r.PoolSummaries},
		{"price_summaries", config.PriceSummaries, &r.PriceSummaries},
		{"token_program_id", config.TokenProgramId, &r.TokenProgram},
		{"dex_program_id", config.DexProgramId, &r.DexProgram},
	}
	for _, override := range overrides {
		if len(override.value) == 0 {
			continue
		}

		key, err := decodeConfigKey(override.name, override.value)
		if err != nil {
			return nil, err
		}
		*override.dst = key

		log.WithField(override.name, override.value).Debug("overriding registry account")
	}

	for _, pool := range config.Pools {
		mint, err := decodeConfigKey("pools.mint", pool.Mint)
		if err != nil {
			log.WithError(err).WithField("pool", pool.Id).Warn("invalid pool mint")
			return nil, err
		}

		r, err = r.WithPool(mint, pool.Id)
		if err != nil {
			return nil, err
		}
	}

	if err := r.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid registry config")
	}
	return r, nil
}

func decodeConfigKey(name, value string) (ed25519.PublicKey, error) {
	decoded, err := base58.Decode(value)
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidAccount, "%s: %v", name, err)
	}
	if len(decoded) != ed25519.PublicKeySize {
		return nil, errors.Wrapf(ErrInvalidAccount, "%s: expected %d byte key, got %d", name, ed25519.PublicKeySize, len(decoded))
	}
	return decoded, nil
}

// Package configpkg provides parsing functionality for environment variables.
package configpkg

import (
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// Config stores all configuration of the application.
//
// The values are read by viper from a config file or environement variables.
type Config struct {
	DBDriver                 string        `mapstructure:"DB_DRIVER"`
	DBSource                 string        `mapstructure:"DB_SOURCE"`
	MigrationPath            string        `mapstructure:"MIGRATION_PATH"`
	ServerAddress            string        `mapstructure:"SERVER_ADDRESS"`
	RedisAddress             string        `mapstructure:"REDIS_ADDRESS"`
	ConfirmationCodeLifetime time.Duration `mapstructure:"CONFIRMATION_CODE_LIFETIME"`
	SweeperInterval          time.Duration `mapstructure:"SWEEPER_INTERVAL"`
	PendencyMaxAge           time.Duration `mapstructure:"PENDENCY_MAX_AGE"`
	MinimumDeposit           string        `mapstructure:"MINIMUM_DEPOSIT"`
	DefaultCheckingLimit     string        `mapstructure:"DEFAULT_CHECKING_LIMIT"`
	DefaultCheckingFeeRate   string        `mapstructure:"DEFAULT_CHECKING_FEE_RATE"`
	DefaultSavingsYield      string        `mapstructure:"DEFAULT_SAVINGS_YIELD"`
	Environement             string        `mapstructure:"GO_ENV"`
}

// Load read configuration from file or environment variables.
func Load(path string) (Config, error) {
	var c Config

	viper.AddConfigPath(path)
	viper.SetConfigName("app")
	viper.SetConfigType("env")

	viper.AutomaticEnv()

	err := viper.ReadInConfig()
	if err != nil {
		return c, err
	}

	err = viper.Unmarshal(&c)
	if err != nil {
		return c, err
	}

	// The code lifetime and the sweeper age are independent knobs. A max age
	// shorter than the code lifetime lets the sweeper discard a pendency
	// whose code is still confirmable.
	if c.PendencyMaxAge < c.ConfirmationCodeLifetime {
		log.Warn().
			Dur("pendency_max_age", c.PendencyMaxAge).
			Dur("confirmation_code_lifetime", c.ConfirmationCodeLifetime).
			Msg("pendency max age is shorter than the confirmation code lifetime")
	}

	return c, nil
}

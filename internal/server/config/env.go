package config

import (
	"errors"
	"io/fs"
	"time"

	"github.com/dmitrijs2005/dailydiet/internal/flagx"
	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
)

const defaultEnvFile = ".env"

// EnvConfig mirrors Config for environment decoding. Variables that are not
// set leave the corresponding field untouched.
type EnvConfig struct {
	EndpointAddrHTTP        string        `env:"DAILYDIET_ADDR"`
	DatabaseDSN             string        `env:"DAILYDIET_DATABASE_DSN"`
	SecretKey               string        `env:"DAILYDIET_SECRET_KEY"`
	SessionValidityDuration time.Duration `env:"DAILYDIET_SESSION_TTL"`
	PasswordHashCost        int           `env:"DAILYDIET_BCRYPT_COST"`
	LogLevel                string        `env:"DAILYDIET_LOG_LEVEL"`
	InMemory                bool          `env:"DAILYDIET_IN_MEMORY"`
}

// parseEnv loads an optional dotenv file and overlays DAILYDIET_* variables.
//
// The dotenv path comes from -env; without it ".env" in the working directory
// is used when present. A file named explicitly but missing, or an
// unparseable variable, panics.
func parseEnv(config *Config, args []string) {
	loadEnvFile(flagx.EnvFileFlag(args))

	e := &EnvConfig{
		EndpointAddrHTTP:        config.EndpointAddrHTTP,
		DatabaseDSN:             config.DatabaseDSN,
		SecretKey:               config.SecretKey,
		SessionValidityDuration: config.SessionValidityDuration,
		PasswordHashCost:        config.PasswordHashCost,
		LogLevel:                config.LogLevel,
		InMemory:                config.InMemory,
	}

	if err := envdecode.Decode(e); err != nil {
		if errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
			return
		}
		panic(err)
	}

	config.EndpointAddrHTTP = e.EndpointAddrHTTP
	config.DatabaseDSN = e.DatabaseDSN
	config.SecretKey = e.SecretKey
	config.SessionValidityDuration = e.SessionValidityDuration
	config.PasswordHashCost = e.PasswordHashCost
	config.LogLevel = e.LogLevel
	config.InMemory = e.InMemory
}

func loadEnvFile(path string) {
	if path == "" {
		if err := godotenv.Load(defaultEnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			panic(err)
		}
		return
	}
	if err := godotenv.Load(path); err != nil {
		panic(err)
	}
}

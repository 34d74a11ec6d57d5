package config

import (
	"flag"
	"time"

	"github.com/dmitrijs2005/dailydiet/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":3333")
//	-d string   PostgreSQL DSN
//	-s string   session cookie HMAC secret
//	-t int      session validity, hours
//	-b int      bcrypt cost
//	-l string   log level
//	-m          in-memory store (use -m=false to disable explicitly)
//
// Only these flags are considered; -c/-config and -env belong to other loaders.
func parseFlags(config *Config, args []string) {
	args = flagx.FilterArgs(args, []string{"-a", "-d", "-s", "-t", "-b", "-l", "-m"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")

	sessionValidityDuration := fs.Int("t", int(config.SessionValidityDuration.Hours()), "session_validity_duration (in hours)")

	fs.IntVar(&config.PasswordHashCost, "b", config.PasswordHashCost, "bcrypt cost")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")
	fs.BoolVar(&config.InMemory, "m", config.InMemory, "keep data in memory")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	if isFlagSet(fs, "t") {
		config.SessionValidityDuration = time.Duration(*sessionValidityDuration) * time.Hour
	}
}

func isFlagSet(fs *flag.FlagSet, name string) bool {
	set := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}

package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/bookstore/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8000")
//	-k string   database driver: postgres or sqlite
//	-d string   database DSN (overrides DB_* settings)
//	-s string   session signing secret
//	-t int      session idle timeout, minutes
//	-r string   Redis address for the session store (empty: in-memory store)
//	-l string   log level
//
// os.Args is filtered through flagx.FilterArgs first so flags owned by other
// parsers (-c, admin subcommand flags) do not trip this one.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-k", "-d", "-s", "-t", "-r", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.HTTPAddr, "a", config.HTTPAddr, "address and port to run server")
	fs.StringVar(&config.DBDriver, "k", config.DBDriver, "database driver (postgres|sqlite)")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SessionSecret, "s", config.SessionSecret, "session signing secret")

	idle := fs.Int("t", int(config.SessionIdleTimeout.Minutes()), "session idle timeout (in minutes)")

	fs.StringVar(&config.RedisAddr, "r", config.RedisAddr, "redis address for sessions")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level (debug|info|warn|error)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			config.SessionIdleTimeout = time.Duration(*idle) * time.Minute
		}
	})
}

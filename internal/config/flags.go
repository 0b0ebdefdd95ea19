package config

import (
	"flag"
	"os"

	"github.com/miltrack/miltrack/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-b string   path to the backend configuration file
//	-d string   PostgreSQL DSN for the identity store
//	-m string   MongoDB URI for the document store
//	-debug      enable development features
//
// The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-b", "-d", "-m", "-debug"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.BackendConfigFile, "b", cfg.BackendConfigFile, "path to the backend configuration file")
	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "PostgreSQL DSN for the identity store")
	fs.StringVar(&cfg.MongoURI, "m", cfg.MongoURI, "MongoDB URI for the document store")
	fs.BoolVar(&cfg.Debug, "debug", cfg.Debug, "enable development features")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}

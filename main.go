package main

import (
	"log"
	"os"

	"github.com/abiiranathan/filesearch/cli"
	"github.com/abiiranathan/filesearch/search"
	"github.com/abiiranathan/filesearch/server"
)

// Default configuration for the CLI
var config = &cli.DefaultConfig

func startServer(store *search.Store) error {
	return server.Run(config, store)
}

func main() {
	log.SetPrefix("[filesearch]: ")
	log.SetFlags(log.Lshortfile)

	// Overlay the config file and environment before the flags are defined,
	// so that flags take precedence.
	if err := cli.LoadConfig(config, os.Getenv(cli.EnvConfigFile)); err != nil {
		log.Fatalln(err)
	}

	cmd := cli.DefineFlags(config, startServer)
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

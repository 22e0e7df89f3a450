package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/cronkite-edu/cronkite/internal/cli"
)

func main() {
	// Credentials are commonly supplied via a local .env in development;
	// a missing file is fine.
	_ = godotenv.Load()

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/roach88/matchtrack/internal/cli"
)

func main() {
	_ = godotenv.Load()

	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.GetExitCode(err))
	}
}

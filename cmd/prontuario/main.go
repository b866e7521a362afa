package main

import (
	"fmt"
	"os"

	"github.com/btxtech/prontuario/internal/cli"
	"github.com/btxtech/prontuario/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(cli.ExitCommandError)
	}

	cmd := cli.NewRootCommand(cfg)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(cli.GetExitCode(err))
	}
}

package main

import (
	"fmt"
	"os"

	"shieldwallet/cmd/shieldctl/commands"
	"shieldwallet/internal/domain"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, domain.UserMessage(err))
		os.Exit(1)
	}
}

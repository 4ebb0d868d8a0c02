package main

import (
	"fmt"
	"os"

	"github.com/kiosk404/promptloom/internal/loomctl/cmd"
)

func main() {
	command := cmd.NewDefaultLoomCtlCommand()
	if err := command.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

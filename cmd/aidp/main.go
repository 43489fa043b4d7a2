// Package main is the entry point for the aidp CLI.
package main

import (
	"fmt"
	"os"

	"github.com/thoreinstein/aidp/cmd/aidp/commands"
	aidperrors "github.com/thoreinstein/aidp/internal/errors"
)

func main() {
	err := commands.Execute()
	if err == nil {
		return
	}

	var exitErr *aidperrors.ExitError
	if aidperrors.As(err, &exitErr) {
		// A nil Err means the code belongs to the launched child process;
		// it already printed whatever it had to say.
		if exitErr.Err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", exitErr.Err)
		}
		if exitErr.Suggestion != "" {
			fmt.Fprintf(os.Stderr, "Suggestion: %s\n", exitErr.Suggestion)
		}
		os.Exit(exitErr.Code)
	}

	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(aidperrors.ExitUser)
}

// Package main is the entry point for the msggen CLI.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/rosjs/msggen/internal/cmd"
	oerrors "github.com/rosjs/msggen/internal/errors"
)

func main() {
	rootCmd := cmd.NewRootCmd()

	if err := rootCmd.Execute(); err != nil {
		var exitErr *oerrors.ExitError
		if errors.As(err, &exitErr) {
			if !exitErr.Printed {
				fmt.Fprintln(os.Stderr, err)
			}
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(oerrors.ExitCodeFromError(err))
	}
}

// Package main is the entrypoint for the headcount CLI.
package main

import (
	"fmt"
	"os"

	"github.com/tmorling/headcount/cmd"
	"github.com/tmorling/headcount/internal/reportstore"
)

func main() {
	cmd.SetStoreManager(reportstore.Manager)

	err := cmd.Execute()
	reportstore.CloseStores()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

package main

import (
	"fmt"
	"os"

	"github.com/aroproduction/commviz/cmd/commviz/commands"
	"github.com/aroproduction/commviz/internal/errors"
)

func main() {
	if err := commands.NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		for _, hint := range errors.GetAllHints(err) {
			fmt.Fprintln(os.Stderr, "Hint:", hint)
		}
		os.Exit(1)
	}
}

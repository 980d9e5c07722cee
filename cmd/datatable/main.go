// Command datatable renders and serves sortable HTML tables described by a
// YAML or TOML config.
package main

import (
	"fmt"
	"os"

	"github.com/go-drift/datatable/cmd/datatable/cmd"
)

func main() {
	if err := cmd.NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(cmd.ExitCode(err))
	}
}

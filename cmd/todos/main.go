// Command todos runs the todo list HTTP API.
//
//	todos serve     start the HTTP server (default)
//	todos migrate   apply database migrations and exit
//
// All configuration comes from TODOS_* environment variables; see
// internal/config.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "todos",
		Short:         "Todo list REST API backed by PostgreSQL",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}

	root.AddCommand(newServeCommand(), newMigrateCommand())

	return root
}

package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/planhaus/planhaus/internal/interfaces/cli/migrate"
	"github.com/planhaus/planhaus/internal/interfaces/cli/server"
	"github.com/planhaus/planhaus/internal/interfaces/cli/worker"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "planhaus",
		Short: "Planhaus - construction house plans storefront",
		Long:  `Planhaus serves the house plans catalog, checkout and payment flows, order downloads, and the admin back office, plus database migration tooling.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		worker.NewCommand(),
		migrate.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

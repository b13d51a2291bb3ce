package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/assetflow/assetflow/internal/interfaces/cli/history"
	"github.com/assetflow/assetflow/internal/interfaces/cli/migrate"
	"github.com/assetflow/assetflow/internal/interfaces/cli/server"
	"github.com/assetflow/assetflow/internal/interfaces/cli/token"
	"github.com/assetflow/assetflow/internal/interfaces/cli/worker"
)

//	@title						Assetflow API
//	@version					1.0
//	@description				Asset lifecycle, allocation and shared review API.
//	@BasePath					/
//	@securityDefinitions.apikey	Bearer
//	@in							header
//	@name						Authorization
//	@description				Type "Bearer" followed by a space and the access token.

func main() {
	rootCmd := &cobra.Command{
		Use:   "assetflow",
		Short: "Assetflow - asset lifecycle and allocation engine",
		Long:  `Assetflow runs the asset status API, allocation, shared client reviews and the maintenance worker.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
		worker.NewCommand(),
		history.NewCommand(),
		token.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// @title						Reelpop API
// @version					1.0
// @description				Product photo to video generation with plan quotas and Stripe billing.
// @BasePath					/
// @securityDefinitions.apikey	Bearer
// @in							header
// @name						Authorization
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/reelpop-inc/reelpop/internal/interfaces/cli/migrate"
	"github.com/reelpop-inc/reelpop/internal/interfaces/cli/server"
	"github.com/reelpop-inc/reelpop/internal/shared/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "reelpop",
		Short: "Reelpop - product videos from product photos",
		Long:  `Reelpop turns product photos into short marketing videos, with plan quotas and Stripe billing.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
		&cobra.Command{
			Use:   "version",
			Short: "Print version information",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Println(version.String())
			},
		},
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

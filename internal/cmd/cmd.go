package cmd

import (
	"filegate/internal/cmd/hash"
	quickserve "filegate/internal/cmd/quick-serve"
	"filegate/internal/cmd/serve"
	"filegate/internal/cmd/users"
	"filegate/internal/cmd/version"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "filegate",
	Short: "Serve a folder through a group scoped web file manager",
}

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(serve.ServeCmd)
	rootCmd.AddCommand(quickserve.QuickServeCmd)
	rootCmd.AddCommand(version.VersionCmd)
	rootCmd.AddCommand(hash.HashCmd)
	rootCmd.AddCommand(users.UsersCmd)
}

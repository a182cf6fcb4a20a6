//go:build unix

package cmd

import (
	reloadserver "filegate/internal/cmd/reload-server"
)

func init() {
	rootCmd.AddCommand(reloadserver.ReloadConfigCmd)
}

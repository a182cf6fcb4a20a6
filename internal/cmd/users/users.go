package users

import (
	"filegate/internal/server/access"
	serverConfig "filegate/internal/server/config"
	"filegate/internal/util"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var (
	configPath string
	accessPath string
)

func accessConfigPath() (string, error) {
	if accessPath != "" {
		return accessPath, nil
	}
	if configPath == "" {
		return serverConfig.Default.Files.AccessConfig, nil
	}

	config := serverConfig.Default
	if err := serverConfig.Decode(&config, configPath); err != nil {
		return "", err
	}
	return config.Files.AccessConfig, nil
}

func orDash(list []string) string {
	if len(list) == 0 {
		return "-"
	}
	return strings.Join(list, ",")
}

// Table lists every identity of c with what it may do.
func Table(c *access.Config) *util.Table {
	table := util.NewTable("USER", "GROUPS", "LEVEL", "FOLDERS", "SUPERADMIN", "LOGIN")
	for _, user := range c.Users() {
		groups := c.UserGroups(user)
		var folders []string
		for _, g := range groups {
			folders = append(folders, c.GroupFolderList(g)...)
		}
		if len(groups) > 0 && len(folders) == 0 {
			folders = []string{"<root>"}
		}
		_, login := c.Accounts[user]

		table.AddRow(user, orDash(groups), c.AccessLevel(user), orDash(folders), c.IsSuperadmin(user), login)
	}
	return table
}

var UsersCmd = &cobra.Command{
	Use:   "users",
	Short: "List users of the access config with their groups, levels and folders",
	Args:  cobra.NoArgs,
	Run: func(_ *cobra.Command, _ []string) {
		path, err := accessConfigPath()
		if err != nil {
			fmt.Fprintln(os.Stderr, "Decode config file failed")
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}

		c, err := access.Decode(path)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Decode access config failed")
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}

		Table(c).Print(os.Stdout)
	},
}

func init() {
	UsersCmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to server config file")
	UsersCmd.Flags().StringVarP(&accessPath, "access", "a", "", "Path to access config file, overrides --config")
}

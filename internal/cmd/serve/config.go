package serve

import (
	serverConfig "filegate/internal/server/config"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var defaultConfigPaths = []string{
	"server.toml",
	"filegate.toml",
	"~/.config/filegate/server.toml",
	"/etc/filegate/server.toml",
}

const iternalDefaultConfigPath = "<DEFAULT>"

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}

func findConfigFile() string {
	for _, path := range defaultConfigPaths {
		path = expandHome(path)
		if _, err := os.Stat(path); err == nil {
			fmt.Printf("Found config file: %s\n", path)
			return path
		}
	}

	return iternalDefaultConfigPath
}

func findAndDecodeConfig() *serverConfig.Server {
	config := serverConfig.Default

	if configPath == iternalDefaultConfigPath {
		fmt.Println("No config file given, finding...")
		configPath = findConfigFile()
	}

	if configPath != iternalDefaultConfigPath {
		err := serverConfig.Decode(&config, configPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Decode config file failed")
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
	} else {
		fmt.Println("No config file found. Configed as all default.")
	}

	return &config
}

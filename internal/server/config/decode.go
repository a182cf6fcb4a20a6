package config

import (
	"errors"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

var ErrReDecodeDefaultConfig = errors.New("can not redecode default config")

// Decode reads path over config. Relative paths in the Files section are
// taken from the directory holding the config file.
func Decode(config *Server, path string) error {
	_, err := toml.DecodeFile(path, config)
	if err != nil {
		return err
	}

	config.filePath, err = filepath.Abs(path)
	if err != nil {
		return err
	}

	dir := filepath.Dir(config.filePath)
	for _, p := range []*string{
		&config.Files.Root,
		&config.Files.AccessConfig,
		&config.Files.HiddenFolders,
		&config.Files.AuditLog,
	} {
		if *p != "" && !filepath.IsAbs(*p) {
			*p = filepath.Join(dir, *p)
		}
	}
	return nil
}

// ReDecode reads the file old was decoded from again, on top of the defaults.
func ReDecode(old *Server) (Server, error) {
	if old.filePath == Default.filePath {
		return Server{}, ErrReDecodeDefaultConfig
	}

	config := Default
	err := Decode(&config, old.filePath)
	return config, err
}

package access

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

const DefaultAccessLevel = 1

var (
	ErrUserNotExists = errors.New("access: user not exists")
	ErrHashMismatch  = errors.New("access: password hash mismatch")
)

// Provider hands out the current access configuration. Implementations
// must not cache between calls, so edits apply on the next request.
type Provider interface {
	Load() *Config
}

type Config struct {
	Accounts          map[string]string
	Groups            map[string][]string
	GroupFolders      map[string][]string
	AccessLevels      map[string]int
	RestrictedFiles   map[string]struct{}
	RestrictedFolders map[string]struct{}
	Superadmin        string
}

type rawConfig struct {
	Accounts    map[string]string `toml:"accounts"`
	Credentials struct {
		Login    string `toml:"login"`
		Password string `toml:"password"`
	} `toml:"credentials"`
	Groups       map[string]any `toml:"groups"`
	GroupFolders map[string]any `toml:"group_folders"`
	AccessLevels map[string]any `toml:"access_levels"`
	Restrictions struct {
		RestrictedFiles   any `toml:"restricted_files"`
		RestrictedFolders any `toml:"restricted_folders"`
	} `toml:"restrictions"`
	FolderVisibility struct {
		Superadmin string `toml:"superadmin"`
	} `toml:"folder_visibility"`
}

// FileProvider decodes the TOML access file on every Load.
type FileProvider struct {
	Path string
}

func (p *FileProvider) Load() *Config {
	c, err := Decode(p.Path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.Warn().Err(err).Str("Path", p.Path).Msg("Decode access config failed")
		}
		return &Config{}
	}
	return c
}

// Static always returns the same config.
type Static struct {
	Config *Config
}

func (s Static) Load() *Config {
	if s.Config == nil {
		return &Config{}
	}
	return s.Config
}

func Decode(path string) (*Config, error) {
	var raw rawConfig
	if _, err := toml.DecodeFile(path, &raw); err != nil {
		return nil, err
	}
	return fromRaw(&raw), nil
}

func DecodeString(data string) (*Config, error) {
	var raw rawConfig
	if _, err := toml.Decode(data, &raw); err != nil {
		return nil, err
	}
	return fromRaw(&raw), nil
}

func fromRaw(raw *rawConfig) *Config {
	c := &Config{
		Accounts:          map[string]string{},
		Groups:            map[string][]string{},
		GroupFolders:      map[string][]string{},
		AccessLevels:      map[string]int{},
		RestrictedFiles:   map[string]struct{}{},
		RestrictedFolders: map[string]struct{}{},
		Superadmin:        strings.TrimSpace(raw.FolderVisibility.Superadmin),
	}

	for user, hash := range raw.Accounts {
		c.Accounts[strings.TrimSpace(user)] = hash
	}
	if len(raw.Accounts) == 0 && raw.Credentials.Login != "" {
		c.Accounts[strings.TrimSpace(raw.Credentials.Login)] = raw.Credentials.Password
	}

	for group, users := range raw.Groups {
		c.Groups[strings.TrimSpace(group)] = splitList(users)
	}
	for group, folders := range raw.GroupFolders {
		c.GroupFolders[strings.TrimSpace(group)] = splitList(folders)
	}
	for user, level := range raw.AccessLevels {
		c.AccessLevels[strings.TrimSpace(user)] = parseLevel(level)
	}

	for _, name := range splitList(raw.Restrictions.RestrictedFiles) {
		c.RestrictedFiles[strings.ToLower(name)] = struct{}{}
	}
	for _, name := range splitList(raw.Restrictions.RestrictedFolders) {
		c.RestrictedFolders[strings.ToUpper(name)] = struct{}{}
	}
	return c
}

// splitList accepts "a, b,c" as well as a TOML array.
func splitList(v any) (list []string) {
	var parts []string
	switch v := v.(type) {
	case string:
		parts = strings.Split(v, ",")
	case []any:
		for _, e := range v {
			parts = append(parts, fmt.Sprint(e))
		}
	case nil:
		return nil
	default:
		parts = []string{fmt.Sprint(v)}
	}

	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			list = append(list, p)
		}
	}
	return
}

func parseLevel(v any) int {
	switch v := v.(type) {
	case int64:
		return int(v)
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return n
		}
	}
	return DefaultAccessLevel
}

// UserGroups returns every group listing user, sorted by name.
func (c *Config) UserGroups(user string) (groups []string) {
	for group, users := range c.Groups {
		if slices.Contains(users, user) {
			groups = append(groups, group)
		}
	}
	slices.Sort(groups)
	return
}

func (c *Config) GroupFolderList(group string) []string {
	return c.GroupFolders[group]
}

func (c *Config) AccessLevel(user string) int {
	if level, ok := c.AccessLevels[user]; ok {
		return level
	}
	return DefaultAccessLevel
}

func (c *Config) IsRestrictedFile(name string) bool {
	_, ok := c.RestrictedFiles[strings.ToLower(strings.TrimSpace(name))]
	return ok
}

func (c *Config) IsRestrictedFolder(name string) bool {
	_, ok := c.RestrictedFolders[strings.ToUpper(strings.TrimSpace(name))]
	return ok
}

func (c *Config) IsSuperadmin(user string) bool {
	return c.Superadmin != "" && user == c.Superadmin
}

// Users lists every identity the config mentions anywhere.
func (c *Config) Users() []string {
	seen := map[string]struct{}{}
	for user := range c.Accounts {
		seen[user] = struct{}{}
	}
	for _, users := range c.Groups {
		for _, user := range users {
			seen[user] = struct{}{}
		}
	}
	for user := range c.AccessLevels {
		seen[user] = struct{}{}
	}
	if c.Superadmin != "" {
		seen[c.Superadmin] = struct{}{}
	}

	users := make([]string, 0, len(seen))
	for user := range seen {
		users = append(users, user)
	}
	slices.Sort(users)
	return users
}

func (c *Config) CheckPassword(user, password string) error {
	hash, ok := c.Accounts[user]
	if !ok {
		return ErrUserNotExists
	}

	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return ErrHashMismatch
	}
	return err
}

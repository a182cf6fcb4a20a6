package quickserve

import (
	"errors"
	serveCmd "filegate/internal/cmd/serve"
	"filegate/internal/server"
	"filegate/internal/server/access"
	serverConfig "filegate/internal/server/config"
	"filegate/internal/util"
	"filegate/version"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/thediveo/enumflag"
	"golang.org/x/crypto/bcrypt"
)

var randomPasswordRunes = []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%^&*")

const defaultUsername = "admin"

var (
	root     string
	stateDir string
	logLevel zerolog.Level = zerolog.InfoLevel
)

func exitWithError(code int, msg string, err error) {
	fmt.Fprintln(os.Stderr, msg)
	fmt.Fprintln(os.Stderr, err)
	os.Exit(code)
}

func configFiles(config *serverConfig.Server, c *cobra.Command) {
	if !c.Flags().Changed("root") {
		fmt.Fprintln(os.Stdout, "Warning: serving the working directory")
		workingDir, err := os.Getwd()
		if err != nil {
			exitWithError(1, "Unable to determine working directory", err)
		}
		root = workingDir
	}
	config.Files.Root = root

	if !c.Flags().Changed("state") {
		dir, err := os.MkdirTemp("", "filegate-")
		if err != nil {
			exitWithError(1, "Unable to create state directory", err)
		}
		stateDir = dir
	}
	config.Files.AccessConfig = ""
	config.Files.HiddenFolders = filepath.Join(stateDir, "hidden_folders.json")
	config.Files.AuditLog = filepath.Join(stateDir, "logs.txt")
	fmt.Fprintln(os.Stdout, "State directory: "+stateDir)
}

// parseArg reads [user[:password]@]address. The user becomes the only
// account and the superadmin.
func parseArg(config *serverConfig.Server, arg string) (username, password string) {
	arg = strings.TrimSpace(arg)
	username = defaultUsername

	if _, err := strconv.ParseUint(arg, 10, 16); err == nil {
		config.Listener.Address = ":" + arg
		return
	}

	if ok, _ := regexp.MatchString(`.*:?\/\/`, arg); !ok {
		arg = "//" + arg
	}

	parsedUrl, err := url.Parse(arg)
	if err != nil {
		exitWithError(2, "Parse url failed", err)
	}

	switch strings.ToLower(parsedUrl.Scheme) {
	case "http", "tcp", "":
		config.Listener.Network = "tcp"
	case "unix":
		config.Listener.Network = "unix"
	default:
		fmt.Fprintln(os.Stderr, "Unsupported listen network: '"+parsedUrl.Scheme+"'")
		os.Exit(2)
	}

	if name := parsedUrl.User.Username(); name != "" {
		username = name
	}
	password, _ = parsedUrl.User.Password()

	if parsedUrl.Scheme == "unix" {
		config.Listener.Address = parsedUrl.Path
	} else {
		hostname := parsedUrl.Hostname()
		if strings.Contains(hostname, ":") {
			// it's an ipv6 address
			hostname = "[" + hostname + "]"
		}
		if port := parsedUrl.Port(); port != "" {
			hostname += ":" + port
		} else {
			hostname += ":20001"
		}
		config.Listener.Address = hostname
	}
	return
}

// Access is the access config of a quick server: one superadmin at the
// highest level, no groups.
func Access(username, password string) (access.Static, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return access.Static{}, err
	}
	return access.Static{Config: &access.Config{
		Accounts:     map[string]string{username: string(hash)},
		AccessLevels: map[string]int{username: 3},
		Superadmin:   username,
	}}, nil
}

var QuickServeCmd = &cobra.Command{
	Use:   "quick-serve [address]",
	Short: "Serve a folder in just one command",
	Example: `  filegate quick-serve 20001
  filegate quick-serve username@:20001
  filegate quick-serve username:password@:20001
  filegate quick-serve http://username:password@[fe80::12:34]:20001
  filegate quick-serve unix://username:password@/run/unix.sock`,
	Args: cobra.MaximumNArgs(1),
	Run: func(c *cobra.Command, args []string) {
		util.SetupZerolog(false, logLevel)
		serveCmd.SetupGin()

		config := serverConfig.Default
		configFiles(&config, c)

		username, password := defaultUsername, ""
		if len(args) != 0 {
			username, password = parseArg(&config, args[0])
		}
		if password == "" {
			password = util.RandomString(10, randomPasswordRunes)
			fmt.Fprintln(os.Stdout, "Password for user '"+username+"' is '"+password+"'")
		}

		provider, err := Access(username, password)
		if err != nil {
			exitWithError(2, "Unable to generate password hash", err)
		}

		hub, err := server.NewHub()
		if err != nil {
			exitWithError(2, "Init server failed", err)
		}
		hub.Access = provider

		util.SetupSignalHandlers(util.SignalHandlers{
			Sigint:  hub.IssueShutdown,
			Sigterm: hub.IssueShutdown,
		})

		err = hub.Run(config)

		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			exitWithError(1, "Server stopped for error", err)
		}
	},
}

func init() {
	if version.IsDebug() {
		logLevel = zerolog.DebugLevel // default debug level in debug mode
	}

	QuickServeCmd.Flags().VarP(
		enumflag.New(&logLevel, "LEVEL", util.ZerologLevelIds, enumflag.EnumCaseInsensitive),
		"level", "l",
		"Sets logging level; can be 'trace', 'debug', 'info', 'warning', 'error', 'fatal', 'panic'")
	QuickServeCmd.Flags().StringVarP(&root, "root", "r", "", "Folder to serve")
	QuickServeCmd.Flags().StringVarP(&stateDir, "state", "s", "", "Folder for the hidden folder list and the audit log")
}

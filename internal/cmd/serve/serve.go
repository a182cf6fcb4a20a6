package serve

import (
	"errors"
	"filegate/internal/server"
	serverConfig "filegate/internal/server/config"
	"filegate/internal/util"
	"filegate/version"
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/thediveo/enumflag"
)

var (
	configPath string
	noLogTime  bool
	logLevel   zerolog.Level = zerolog.InfoLevel
)

var ServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the file manager server",
	Args:  cobra.NoArgs,
	Run: func(_ *cobra.Command, _ []string) {
		util.SetupZerolog(noLogTime, logLevel)
		SetupGin()

		config := findAndDecodeConfig()

		hub, err := server.NewHub()
		if err != nil {
			fmt.Fprintln(os.Stderr, "Init server failed")
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}

		if config.FilePath() != "" {
			hub.GetConfig = func() (serverConfig.Server, error) {
				return serverConfig.ReDecode(config)
			}
		}

		util.SetupSignalHandlers(util.SignalHandlers{
			Sighup:  hub.IssueReload,
			Sigint:  hub.IssueShutdown,
			Sigterm: hub.IssueShutdown,
			OnHandlerPanic: func(obj any) {
				log.Error().Any("Error", obj).Msg("Panic during signal handling")
			},
		})

		err = hub.Run(*config)

		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			fmt.Fprintln(os.Stderr, "Server stopped for error")
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	},
}

// SetupGin keeps gin quiet outside debug builds; requests are logged
// through zerolog.
func SetupGin() {
	if !version.IsDebug() {
		gin.SetMode(gin.ReleaseMode)
	}
}

func init() {
	if version.IsDebug() {
		logLevel = zerolog.DebugLevel // default debug level in debug mode
	}

	ServeCmd.Flags().StringVarP(&configPath, "config", "c", iternalDefaultConfigPath, "Path to config file")
	ServeCmd.Flags().BoolVarP(&noLogTime, "no-log-time", "", false, "Use log format without time")
	ServeCmd.Flags().VarP(
		enumflag.New(&logLevel, "LEVEL", util.ZerologLevelIds, enumflag.EnumCaseInsensitive),
		"level", "l",
		"Sets logging level; can be 'trace', 'debug', 'info', 'warning', 'error', 'fatal', 'panic'")
}

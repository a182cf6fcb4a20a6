package server

import (
	"context"
	"errors"
	"filegate/internal/server/access"
	"filegate/internal/server/audit"
	"filegate/internal/server/config"
	"filegate/internal/server/events"
	"filegate/internal/server/fileops"
	"filegate/internal/server/gate"
	"filegate/internal/server/hidden"
	"filegate/internal/server/session"
	"filegate/internal/server/storage"
	"filegate/internal/server/tree"
	"filegate/internal/server/webui"
	"filegate/internal/util"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type Server struct {
	httpServer http.Server
	engine     *gin.Engine
	conf       config.Server
	cacheId    string

	root     *storage.Root
	access   access.Provider
	gate     *gate.Gate
	tree     *tree.Builder
	ops      *fileops.Ops
	audit    *audit.Log
	events   *events.Broadcaster
	sessions *session.Store
	limiter  *session.Limiter
	webui    webui.Handler

	ctx  context.Context
	stop context.CancelFunc
}

// NewServer wires every component for c. A nil provider reads the access
// config file named in c on every request.
func NewServer(c config.Server, provider access.Provider) (s *Server, err error) {
	s = &Server{
		conf:    c,
		cacheId: util.RandomString(8, util.DefaultRandomStringRunes),
		access:  provider,
	}

	if c.Session.CookieName == "" {
		return nil, errors.New("session cookie name can not be empty")
	}

	s.root, err = storage.NewRoot(c.Files.Root)
	if err != nil {
		return nil, err
	}

	if s.access == nil {
		s.access = &access.FileProvider{Path: c.Files.AccessConfig}
	}

	if c.Events.Enable {
		s.events = events.NewBroadcaster()
	}

	if c.Files.AuditLog != "" {
		if err := os.MkdirAll(filepath.Dir(c.Files.AuditLog), 0o755); err != nil {
			log.Warn().Err(err).Str("Path", c.Files.AuditLog).Msg("Unable to create audit log folder")
		}
	}
	s.audit = &audit.Log{
		Path:      c.Files.AuditLog,
		YearShift: c.Files.AuditYearShift,
	}
	if s.events != nil {
		s.audit.Publish = s.events.Publish
	}

	store := &hidden.FileStore{Path: c.Files.HiddenFolders}
	s.gate = &gate.Gate{Root: s.root, Access: s.access}
	s.tree = &tree.Builder{Gate: s.gate, Hidden: store}
	s.ops = &fileops.Ops{Gate: s.gate, Hidden: store, Audit: s.audit}

	s.sessions, err = session.NewStore(c.Session.IdleTimeout)
	if err != nil {
		return nil, err
	}
	s.limiter = session.NewLimiter(c.Session.LoginAttempts, c.Session.LoginWindow)

	s.webui, err = webui.NewHandler(&c.Webui, s.cacheId)
	if err != nil {
		return nil, err
	}

	s.engine = s.routes()
	s.httpServer = http.Server{Handler: s.engine}

	s.ctx, s.stop = context.WithCancel(context.Background())

	log.Info().Str("Root", s.root.Path).Msg("Server ready")
	return
}

// keepSessions takes over the logins of old, which must no longer serve.
// The idle timeout follows the new config.
func (s *Server) keepSessions(old *Server) {
	old.sessions.SetIdleTimeout(s.conf.Session.IdleTimeout)
	s.sessions = old.sessions
}

func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) Run(c config.Listener) error {
	listener, tlsConfig, err := listen(c)
	if err != nil {
		return err
	}
	defer cleanListen(c)

	go s.sessions.CollectIdle(s.ctx, s.limiter)

	log.Warn().Str("Net", c.Network).Str("Addr", c.Address).Msg("Listening")
	if tlsConfig != nil {
		s.httpServer.TLSConfig = tlsConfig
		return s.httpServer.ServeTLS(listener, "", "")
	}
	return s.httpServer.Serve(listener)
}

// Shutdown stops the server in the background and reports the result to
// callback when it is not nil.
func (s *Server) Shutdown(callback func(error)) {
	go func() {
		s.close()
		err := s.httpServer.Shutdown(context.Background())
		if callback != nil {
			callback(err)
		}
	}()
}

func (s *Server) close() {
	s.stop()
	if s.events != nil {
		// hijacked connections are not covered by http.Server.Shutdown
		s.events.Close()
	}
}

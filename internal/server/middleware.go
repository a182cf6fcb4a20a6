package server

import (
	"errors"
	"filegate/internal/server/errrsp"
	"filegate/internal/server/metrics"
	"filegate/internal/server/session"
	"filegate/internal/util"
	"filegate/version"
	"fmt"
	"net"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const requestIdKey = "RequestId"

func (s *Server) logRequest(c *gin.Context) {
	start := time.Now()
	id := uuid.NewString()
	c.Set(requestIdKey, id)
	c.Header("X-Request-Id", id)
	c.Header("Server", "filegate/"+version.Version)

	c.Next()

	route := c.FullPath()
	if route == "" {
		route = "unmatched"
	}
	status := c.Writer.Status()
	metrics.RecordHTTPRequest(c.Request.Method, route, status, time.Since(start))
	log.Info().
		Str("Id", id).
		Str("Path", c.Request.RequestURI).
		Str("From", c.ClientIP()).
		Int("Code", status).
		Msg(c.Request.Method)
}

func (s *Server) checkPath(c *gin.Context) {
	if !util.IsUrlValid(c.Request.URL.Path) {
		s.webui.ServeError(c.Writer, http.StatusBadRequest, "invalid URL path")
		c.Abort()
		return
	}
	c.Next()
}

func (s *Server) catchPanic(c *gin.Context) {
	defer func() {
		if err := recover(); err != nil {
			s.serveRecover(c, err)
		}
	}()
	c.Next()
}

// Modified from gin's RecoveryFunc.
// Original copyright: Copyright 2014 Manu Martinez-Almeida. All rights reserved.
// Original license: MIT (https://raw.githubusercontent.com/gin-gonic/gin/master/LICENSE)
func (s *Server) serveRecover(c *gin.Context, err any) {
	req := c.Request

	// Check for a broken connection
	var brokenPipe bool
	if ne, ok := err.(*net.OpError); ok {
		var se *os.SyscallError
		if errors.As(ne, &se) {
			seStr := strings.ToLower(se.Error())
			if strings.Contains(seStr, "broken pipe") ||
				strings.Contains(seStr, "connection reset by peer") {
				brokenPipe = true
			}
		}
	}

	if brokenPipe {
		log.Warn().Str("From", req.RemoteAddr).Msg("Connection reset")
		// If the connection is dead, we can do nothing
		c.Abort()
		return
	}

	log.Error().Str("From", req.RemoteAddr).Str("Err", fmt.Sprint(err)).Msg("Panic")

	if !c.Writer.Written() {
		func() {
			defer func() {
				if err := recover(); err != nil {
					log.Warn().Str("From", req.RemoteAddr).Any("Err", err).Msg("Write failed")
				}
			}()
			errrsp.InternalServerError(s.webui.ServeError, c.Writer, err)
		}()
	}
	c.Abort()
}

// authenticate resolves the session cookie into the session context of
// the request. It never rejects; requireLogin does.
func (s *Server) authenticate(c *gin.Context) {
	sc := session.Context{}
	if key, err := c.Cookie(s.conf.Session.CookieName); err == nil && key != "" {
		if sess, err := s.sessions.Get(key); err == nil {
			sc = session.Context{Authenticated: true, User: sess.User}
		}
	}
	c.Request = c.Request.WithContext(session.WithContext(c.Request.Context(), sc))
	c.Next()
}

func (s *Server) requireLogin(api bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if session.FromContext(c.Request.Context()).Authenticated {
			c.Next()
			return
		}

		if api {
			c.AbortWithStatusJSON(http.StatusUnauthorized, errrsp.MoveResult{Error: "login required"})
		} else {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
		}
	}
}

func (s *Server) requireSuperadmin(c *gin.Context) {
	if !s.access.Load().IsSuperadmin(currentUser(c)) {
		c.AbortWithStatusJSON(http.StatusForbidden, errrsp.MoveResult{Error: "superadmin only"})
		return
	}
	c.Next()
}

func currentUser(c *gin.Context) string {
	return session.FromContext(c.Request.Context()).User
}

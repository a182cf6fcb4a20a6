package server

import (
	"errors"
	"filegate/internal/server/access"
	"filegate/internal/server/audit"
	"filegate/internal/server/errrsp"
	"filegate/internal/server/metrics"
	"filegate/internal/server/session"
	"fmt"
	"math"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const (
	msgBadCredentials = "Invalid login or password"
	msgTooManyLogins  = "Too many failed attempts. Try again in %d minutes."
)

func (s *Server) loginPage(c *gin.Context) {
	if session.FromContext(c.Request.Context()).Authenticated {
		c.Redirect(http.StatusFound, "/file-manager/")
		return
	}
	s.webui.ServeLogin(c.Writer, http.StatusOK, "", "")
}

func (s *Server) login(c *gin.Context) {
	key := session.ClientKey(c.ClientIP(), c.Request.UserAgent())
	login := strings.TrimSpace(c.PostForm("login"))
	password := c.PostForm("password")

	if !s.limiter.Allow(key) {
		metrics.RecordLogin("limited")
		log.Warn().Str("From", c.ClientIP()).Str("User", login).Msg("Login rate limited")
		minutes := int(math.Ceil(s.limiter.Window.Minutes()))
		s.webui.ServeLogin(c.Writer, http.StatusTooManyRequests, login, fmt.Sprintf(msgTooManyLogins, minutes))
		return
	}

	err := s.access.Load().CheckPassword(login, password)
	switch {
	case err == nil:
	case errors.Is(err, access.ErrUserNotExists), errors.Is(err, access.ErrHashMismatch):
		s.limiter.Fail(key)
		metrics.RecordLogin("failed")
		s.audit.Event(audit.LoginFailed, audit.F("login", login))
		log.Info().Str("From", c.ClientIP()).Str("User", login).Err(err).Msg("Login failed")
		s.webui.ServeLogin(c.Writer, http.StatusUnauthorized, login, msgBadCredentials)
		return
	default:
		log.Error().Err(err).Str("User", login).Msg("Auth error")
		errrsp.InternalServerError(s.webui.ServeError, c.Writer, err)
		return
	}

	sessionKey, err := s.sessions.New(login)
	if err != nil {
		log.Error().Err(err).Str("User", login).Msg("Unable to create session")
		errrsp.InternalServerError(s.webui.ServeError, c.Writer, err)
		return
	}
	s.limiter.Reset(key)
	metrics.RecordLogin("success")
	s.audit.Event(audit.LoginSuccess, audit.F("login", login))

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(s.conf.Session.CookieName, sessionKey, 0, "/", "", s.conf.Session.SecureCookie, true)
	c.Redirect(http.StatusSeeOther, "/file-manager/")
}

func (s *Server) logout(c *gin.Context) {
	if key, err := c.Cookie(s.conf.Session.CookieName); err == nil {
		s.sessions.Delete(key)
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(s.conf.Session.CookieName, "", -1, "/", "", s.conf.Session.SecureCookie, true)
	c.Redirect(http.StatusSeeOther, "/login")
}

package config

import "time"

type TLS struct {
	Enable   bool
	CertFile string
	KeyFile  string
}

type Listener struct {
	Address string
	Network string
	TLS     TLS
}

type Files struct {
	Root           string // the sandboxed file root
	AccessConfig   string // groups, levels, restrictions, accounts
	HiddenFolders  string
	AuditLog       string
	AuditYearShift int
}

type Session struct {
	CookieName    string
	SecureCookie  bool
	IdleTimeout   time.Duration
	LoginAttempts int
	LoginWindow   time.Duration
}

type Webui struct {
	ShowFileSize    bool
	CustomResources string
}

type Events struct {
	Enable bool
}

type Metrics struct {
	Enable bool
	Path   string
}

type Server struct {
	filePath string // internal, path to this config file
	Listener Listener
	Files    Files
	Session  Session
	Webui    Webui
	Events   Events
	Metrics  Metrics
}

func (s *Server) FilePath() string {
	return s.filePath
}

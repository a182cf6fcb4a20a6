package config

import "time"

var Default = Server{
	filePath: "",
	Listener: Listener{
		Address: ":20001",
		Network: "tcp",
		TLS: TLS{
			Enable:   false,
			CertFile: "/srv/ssl/cert",
			KeyFile:  "/srv/ssl/key",
		},
	},
	Files: Files{
		Root:           "files",
		AccessConfig:   "access.toml",
		HiddenFolders:  "hidden_folders.json",
		AuditLog:       "logs/logs.txt",
		AuditYearShift: 12,
	},
	Session: Session{
		CookieName:    "filegate_session",
		SecureCookie:  false,
		IdleTimeout:   2 * time.Hour,
		LoginAttempts: 5,
		LoginWindow:   300 * time.Second,
	},
	Webui: Webui{
		ShowFileSize: false,
	},
	Events: Events{
		Enable: true,
	},
	Metrics: Metrics{
		Enable: false,
		Path:   "/metrics",
	},
}

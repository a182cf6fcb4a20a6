package server

import (
	"errors"
	"filegate/internal/server/access"
	"filegate/internal/server/config"
	"net/http"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog/log"
)

type instance struct {
	server *Server
	olded  atomic.Bool
}

type Hub struct {
	GetConfig func() (config.Server, error)
	// Access replaces the access config file when set.
	Access access.Provider

	inst *instance

	exitErrorChan chan error

	lock            sync.Mutex
	reloadReentrant atomic.Bool
}

func NewHub() (h *Hub, err error) {
	h = &Hub{
		exitErrorChan: make(chan error, 1),
	}

	return
}

func (h *Hub) runInst(listener config.Listener, inst *instance) {
	err := inst.server.Run(listener)
	if inst.olded.Load() {
		if !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("Old server exit with error")
		}
	} else {
		h.exitErrorChan <- err
	}
}

func (h *Hub) Run(c config.Server) error {
	server, err := NewServer(c, h.Access)
	if err != nil {
		return err
	}
	inst := &instance{
		server: server,
	}
	h.inst = inst

	go h.runInst(c.Listener, inst)

	return <-h.exitErrorChan
}

func (h *Hub) IssueReload() {
	if h.GetConfig == nil {
		log.Warn().Msg("Reload is not supported")
		return
	}
	if !h.lock.TryLock() {
		log.Warn().Msg("Reload has been postponed: Server is in reloading")
		h.reloadReentrant.Store(true)
		return
	}
	log.Warn().Msg("Reloading")

	go h.doReload()
}

func (h *Hub) doReload() {
	defer func() {
		err := recover()
		if err != nil {
			log.Error().Any("Error", err).Msg("Panic during reloading")
		}

		h.lock.Unlock()
		if h.reloadReentrant.CompareAndSwap(true, false) {
			h.IssueReload()
		}
	}()

	conf, err := h.GetConfig()
	if err != nil {
		log.Error().Err(err).Msg("Reload failed: Unable to decode new config")
		return
	}

	server, err := NewServer(conf, h.Access)
	if err != nil {
		log.Error().Err(err).Msg("Reload failed: Unable to new server")
		return
	}

	oldinst := h.inst
	oldinst.olded.Store(true)
	// the new instance may listen on the same address
	closed := make(chan struct{})
	oldinst.server.Shutdown(func(err error) {
		if err != nil {
			log.Error().Err(err).Msg("Old server shutdown failed")
		}
		close(closed)
	})
	<-closed
	server.keepSessions(oldinst.server)

	newinst := &instance{
		server: server,
	}
	go h.runInst(conf.Listener, newinst)
	h.inst = newinst

	log.Warn().Msg("Reloaded")
}

func (h *Hub) IssueShutdown() {
	log.Warn().Msg("Shutting down")
	h.inst.server.Shutdown(nil)
}

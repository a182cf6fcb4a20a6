package webui

import (
	"embed"
	"filegate/internal/server/config"
	"filegate/internal/server/webui/templates"
	"io/fs"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
)

type Handler struct {
	ShowFileSize        bool
	customResourcesPath string
	cacheId             string
}

//go:embed resources/*
var builtinResources embed.FS

func NewHandler(c *config.Webui, cacheId string) (h Handler, err error) {
	h.cacheId = cacheId
	h.ShowFileSize = c.ShowFileSize
	if c.CustomResources != "" {
		h.customResourcesPath, err = filepath.Abs(c.CustomResources)
	}
	return
}

// Page is the frame every page shares for user.
func (w *Handler) Page(user string, groups []string) templates.Page {
	return templates.Page{
		CacheId:    w.cacheId,
		User:       user,
		Background: Background(groups),
	}
}

// Background is the per group background image, named after the first
// group of the user.
func Background(groups []string) string {
	if len(groups) == 0 {
		return "/assets/img/background_default.gif"
	}
	return "/assets/img/background_" + groups[0] + ".gif"
}

// ServeAssets serves name from the custom resources folder when it has
// the file, otherwise from the builtin resources.
func (w *Handler) ServeAssets(rsp http.ResponseWriter, req *http.Request, name string) {
	name = path.Clean("/" + name)

	if w.customResourcesPath != "" {
		p := filepath.Join(w.customResourcesPath, filepath.FromSlash(name))
		if fi, err := os.Stat(p); err == nil && !fi.IsDir() {
			http.ServeFile(rsp, req, p)
			return
		}
	}

	if strings.HasPrefix(name, "/js/") ||
		strings.HasPrefix(name, "/css/") ||
		strings.HasPrefix(name, "/img/") {
		if fi, err := fs.Stat(builtinResources, "resources"+name); err == nil && !fi.IsDir() {
			http.ServeFileFS(rsp, req, builtinResources, "resources"+name)
			return
		}
	}
	rsp.WriteHeader(http.StatusNotFound)
}

func (w *Handler) ServeError(rsp http.ResponseWriter, status int, msg string) {
	w.header(rsp)
	rsp.WriteHeader(status)
	templates.WriteError(rsp, templates.Page{CacheId: w.cacheId}, status, msg)
}

func (w *Handler) ServeLogin(rsp http.ResponseWriter, status int, login, msg string) {
	w.header(rsp)
	rsp.WriteHeader(status)
	templates.WriteLogin(rsp, templates.Page{CacheId: w.cacheId}, login, msg)
}

func (w *Handler) ServeManager(rsp http.ResponseWriter, p templates.Page, r templates.Rights, entries []templates.Entry, msg string) {
	w.header(rsp)
	rsp.WriteHeader(http.StatusOK)
	templates.WriteManager(rsp, p, r, entries, msg, w.ShowFileSize)
}

func (w *Handler) ServeView(rsp http.ResponseWriter, p templates.Page, file string, content []byte) {
	w.header(rsp)
	rsp.WriteHeader(http.StatusOK)
	templates.WriteView(rsp, p, file, RenderContent(content))
}

func (w *Handler) ServeForm(rsp http.ResponseWriter, p templates.Page, f templates.Form) {
	w.header(rsp)
	rsp.WriteHeader(http.StatusOK)
	templates.WriteFormPage(rsp, p, f)
}

func (w *Handler) header(rsp http.ResponseWriter) {
	rsp.Header().Set("Content-Type", "text/html; charset=utf-8")
	rsp.Header().Set("Cache-Control", "no-store")
}

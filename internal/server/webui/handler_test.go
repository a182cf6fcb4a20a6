package webui

import (
	"filegate/internal/server/config"
	"filegate/internal/server/tree"
	"filegate/internal/server/webui/templates"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHandler(t *testing.T, custom string) Handler {
	h, err := NewHandler(&config.Webui{ShowFileSize: true, CustomResources: custom}, "c4ch3")
	require.NoError(t, err)
	return h
}

func TestServeAssets(t *testing.T) {
	h := newHandler(t, "")

	rsp := httptest.NewRecorder()
	h.ServeAssets(rsp, httptest.NewRequest(http.MethodGet, "/assets/css/style.css", nil), "/css/style.css")
	assert.Equal(t, http.StatusOK, rsp.Code)
	assert.Contains(t, rsp.Body.String(), "body")

	for _, name := range []string{"/css", "/../handler.go", "/other/x", "/css/missing.css"} {
		rsp = httptest.NewRecorder()
		h.ServeAssets(rsp, httptest.NewRequest(http.MethodGet, "/assets/x", nil), name)
		assert.Equal(t, http.StatusNotFound, rsp.Code, name)
	}
}

func TestServeCustomAssets(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "img"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "img", "background_staff.gif"), []byte("GIF89a"), 0o644))
	h := newHandler(t, dir)

	rsp := httptest.NewRecorder()
	h.ServeAssets(rsp, httptest.NewRequest(http.MethodGet, "/assets/img/background_staff.gif", nil), "/img/background_staff.gif")
	assert.Equal(t, http.StatusOK, rsp.Code)
	assert.Equal(t, "GIF89a", rsp.Body.String())

	rsp = httptest.NewRecorder()
	h.ServeAssets(rsp, httptest.NewRequest(http.MethodGet, "/assets/js/app.js", nil), "/js/app.js")
	assert.Equal(t, http.StatusOK, rsp.Code, "falls back to builtin")
}

func TestBackground(t *testing.T) {
	assert.Equal(t, "/assets/img/background_default.gif", Background(nil))
	assert.Equal(t, "/assets/img/background_staff.gif", Background([]string{"staff", "zeta"}))
}

func TestEntries(t *testing.T) {
	yes := true
	nodes := []tree.Node{
		{Name: "docs", Type: tree.KindDir, Path: "/r/docs", Hidden: &yes, Children: []tree.Node{
			{Name: "a.txt", Type: tree.KindFile, Path: "/r/docs/a.txt", Size: 2048, MTime: time.Now()},
		}},
		{Name: "b.txt", Type: tree.KindFile, Path: "/r/b.txt", Size: 10},
	}

	entries := Entries(nodes)
	require.Len(t, entries, 2)
	assert.True(t, entries[0].IsDir)
	assert.True(t, entries[0].Hidden)
	require.Len(t, entries[0].Children, 1)
	assert.Equal(t, "2.0 KiB", entries[0].Children[0].Size)
	assert.Equal(t, "10 B", entries[1].Size)
	assert.False(t, entries[1].Hidden)
}

func TestServeManager(t *testing.T) {
	h := newHandler(t, "")
	entries := []templates.Entry{
		{Name: "<docs>", Path: "/r/docs & co", IsDir: true},
		{Name: "a.txt", Path: "/r/a.txt", Size: "1 B"},
	}

	render := func(r templates.Rights) string {
		rsp := httptest.NewRecorder()
		h.ServeManager(rsp, h.Page("alice", []string{"staff"}), r, entries, "oops <x>")
		assert.Equal(t, http.StatusOK, rsp.Code)
		return rsp.Body.String()
	}

	body := render(templates.Rights{Level: 1})
	assert.Contains(t, body, "&lt;docs&gt;")
	assert.Contains(t, body, "oops &lt;x&gt;")
	assert.Contains(t, body, "background_staff.gif")
	assert.Contains(t, body, "/file-view/?file=%2Fr%2Fa.txt")
	assert.NotContains(t, body, "/create-file/")
	assert.NotContains(t, body, "/delete-file/")
	assert.NotContains(t, body, "/toggle-folder-visibility/")
	assert.Contains(t, body, "1 B")

	body = render(templates.Rights{Level: 3, Superadmin: true})
	assert.Contains(t, body, "/create-file/?folder=%2Fr%2Fdocs+%26+co")
	assert.Contains(t, body, "/delete-folder/")
	assert.Contains(t, body, "/delete-file/")
	assert.Contains(t, body, "/toggle-folder-visibility/")
}

func TestServeView(t *testing.T) {
	h := newHandler(t, "")
	rsp := httptest.NewRecorder()
	h.ServeView(rsp, h.Page("alice", nil), "/r/notes.txt", []byte("<i>http://x.org/a.gif</i>"))

	body := rsp.Body.String()
	assert.Contains(t, body, "<h1>notes.txt</h1>")
	assert.Contains(t, body, `&lt;i&gt;<img src="http://x.org/a.gif" alt="Image">&lt;/i&gt;`)
	assert.True(t, strings.HasPrefix(rsp.Header().Get("Content-Type"), "text/html"))
}

func TestServeError(t *testing.T) {
	h := newHandler(t, "")
	rsp := httptest.NewRecorder()
	h.ServeError(rsp, http.StatusForbidden, "restricted")
	assert.Equal(t, http.StatusForbidden, rsp.Code)
	assert.Contains(t, rsp.Body.String(), "<h1>403</h1>")
	assert.Contains(t, rsp.Body.String(), "restricted")
}

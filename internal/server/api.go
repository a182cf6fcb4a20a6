package server

import (
	"errors"
	"filegate/internal/server/errrsp"
	"filegate/internal/server/events"
	internalerror "filegate/internal/server/internalError"
	"filegate/internal/server/tree"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

func queryEscape(v string) string {
	return url.QueryEscape(v)
}

func baseName(p string) string {
	return filepath.Base(p)
}

func (s *Server) apiTree(c *gin.Context) {
	user := currentUser(c)
	nodes, err := s.tree.ForUser(user)
	if err != nil {
		if internalerror.KindOf(err) != 0 {
			errrsp.JSON(c, err)
			return
		}
		log.Warn().Err(err).Str("User", user).Msg("Tree incomplete")
	}
	if nodes == nil {
		nodes = []tree.Node{}
	}
	c.JSON(http.StatusOK, nodes)
}

type moveRequest struct {
	File   string `json:"file"`
	Folder string `json:"folder"`
}

// apiMove answers the drag and drop move of the file manager. A source
// that no longer exists was moved by an earlier request and counts as done.
func (s *Server) apiMove(c *gin.Context) {
	var req moveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errrsp.JSON(c, internalerror.Client("bad request"))
		return
	}

	_, err := s.ops.MoveFile(currentUser(c), req.File, req.Folder)
	if err != nil {
		if internalerror.Is(err, internalerror.KindNotFound) && s.sourceGone(req.File) {
			c.JSON(http.StatusOK, errrsp.MoveResult{Success: true})
			return
		}
		errrsp.JSON(c, err)
		return
	}
	c.JSON(http.StatusOK, errrsp.MoveResult{Success: true})
}

func (s *Server) sourceGone(file string) bool {
	path, err := s.root.Resolve(file)
	if err != nil {
		return false
	}
	_, err = os.Lstat(path)
	return errors.Is(err, fs.ErrNotExist)
}

func (s *Server) apiEvents(c *gin.Context) {
	if err := events.Serve(c.Writer, c.Request, s.events); err != nil {
		log.Info().Err(err).Str("User", currentUser(c)).Msg("Event stream ended")
	}
}

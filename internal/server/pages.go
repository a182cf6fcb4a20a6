package server

import (
	"filegate/internal/server/errrsp"
	"filegate/internal/server/gate"
	internalerror "filegate/internal/server/internalError"
	"filegate/internal/server/webui"
	"filegate/internal/server/webui/templates"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

func (s *Server) page(user string) templates.Page {
	return s.webui.Page(user, s.access.Load().UserGroups(user))
}

func (s *Server) rights(user string) templates.Rights {
	c := s.access.Load()
	return templates.Rights{
		Level:      c.AccessLevel(user),
		Superadmin: c.IsSuperadmin(user),
	}
}

func toManager(c *gin.Context) {
	c.Redirect(http.StatusSeeOther, "/file-manager/")
}

func (s *Server) fileManager(c *gin.Context) {
	user := currentUser(c)
	msg := c.Query("error")

	nodes, err := s.tree.ForUser(user)
	if err != nil {
		if internalerror.KindOf(err) != 0 {
			msg = internalerror.Message(err)
		} else {
			// a partial tree is still worth showing
			log.Warn().Err(err).Str("User", user).Msg("Tree incomplete")
		}
	}

	s.webui.ServeManager(c.Writer, s.page(user), s.rights(user), webui.Entries(nodes), msg)
}

func (s *Server) fileView(c *gin.Context) {
	user := currentUser(c)
	path, content, err := s.ops.ReadFile(user, c.Query("file"))
	if err != nil {
		errrsp.Operation(c, err)
		return
	}
	s.webui.ServeView(c.Writer, s.page(user), path, content)
}

// form checks that user may apply op to target before showing f.
func (s *Server) form(c *gin.Context, target string, op gate.Op, f templates.Form) {
	user := currentUser(c)
	if _, err := s.gate.Authorize(user, target, op); err != nil {
		errrsp.Operation(c, err)
		return
	}
	s.webui.ServeForm(c.Writer, s.page(user), f)
}

func (s *Server) createFileForm(c *gin.Context) {
	folder := c.Query("folder")
	s.form(c, folder, gate.CreateFile, templates.Form{
		Title:  "New file",
		Action: "/create-file/?folder=" + queryEscape(folder),
		Submit: "Create",
		Fields: []templates.Field{{Label: "Name", Name: "filename"}},
		Text:   &templates.Field{Label: "Content", Name: "content"},
	})
}

func (s *Server) createFile(c *gin.Context) {
	_, err := s.ops.CreateFile(currentUser(c), c.Query("folder"), c.PostForm("filename"), c.PostForm("content"))
	if err != nil {
		errrsp.Operation(c, err)
		return
	}
	toManager(c)
}

func (s *Server) editFileForm(c *gin.Context) {
	user := currentUser(c)
	file := c.Query("file")
	path, content, err := s.ops.Content(user, file)
	if err != nil {
		errrsp.Operation(c, err)
		return
	}
	s.webui.ServeForm(c.Writer, s.page(user), templates.Form{
		Title:  "Edit " + baseName(path),
		Action: "/edit-file/?file=" + queryEscape(file),
		Submit: "Save",
		Text:   &templates.Field{Label: "Content", Name: "content", Value: string(content)},
	})
}

func (s *Server) editFile(c *gin.Context) {
	if err := s.ops.EditFile(currentUser(c), c.Query("file"), c.PostForm("content")); err != nil {
		errrsp.Operation(c, err)
		return
	}
	toManager(c)
}

func (s *Server) deleteFile(c *gin.Context) {
	if err := s.ops.DeleteFile(currentUser(c), c.Query("file")); err != nil {
		errrsp.Operation(c, err)
		return
	}
	toManager(c)
}

func (s *Server) createFolderForm(c *gin.Context) {
	folder := c.Query("folder")
	s.form(c, folder, gate.CreateFolder, templates.Form{
		Title:  "New folder",
		Action: "/create-folder/?folder=" + queryEscape(folder),
		Submit: "Create",
		Fields: []templates.Field{{Label: "Name", Name: "folder_name"}},
	})
}

func (s *Server) createFolder(c *gin.Context) {
	_, err := s.ops.CreateFolder(currentUser(c), c.Query("folder"), c.PostForm("folder_name"))
	if err != nil {
		errrsp.Operation(c, err)
		return
	}
	toManager(c)
}

func (s *Server) deleteFolder(c *gin.Context) {
	if err := s.ops.DeleteFolder(currentUser(c), c.Query("folder")); err != nil {
		errrsp.Operation(c, err)
		return
	}
	toManager(c)
}

func (s *Server) moveFileForm(c *gin.Context) {
	file := c.Query("file")
	s.form(c, file, gate.MoveSource, templates.Form{
		Title:  "Move " + baseName(file),
		Action: "/move-file/?file=" + queryEscape(file),
		Submit: "Move",
		Fields: []templates.Field{{Label: "Destination folder", Name: "destination"}},
	})
}

func (s *Server) moveFile(c *gin.Context) {
	_, err := s.ops.MoveFile(currentUser(c), c.Query("file"), c.PostForm("destination"))
	if err != nil {
		errrsp.Operation(c, err)
		return
	}
	toManager(c)
}

func (s *Server) toggleVisibility(c *gin.Context) {
	if _, err := s.ops.ToggleVisibility(currentUser(c), c.Query("folder")); err != nil {
		errrsp.Operation(c, err)
		return
	}
	toManager(c)
}

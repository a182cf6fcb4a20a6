package server

import (
	"filegate/internal/server/metrics"
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(s.logRequest, s.catchPanic, s.checkPath, s.authenticate)

	r.GET("/assets/*name", func(c *gin.Context) {
		s.webui.ServeAssets(c.Writer, c.Request, c.Param("name"))
	})
	if s.conf.Metrics.Enable {
		r.GET(s.conf.Metrics.Path, gin.WrapH(metrics.Handler()))
	}

	r.GET("/login", s.loginPage)
	r.POST("/login", s.login)
	r.POST("/logout", s.logout)

	pages := r.Group("/", s.requireLogin(false))
	{
		pages.GET("/", func(c *gin.Context) {
			c.Redirect(http.StatusFound, "/file-manager/")
		})
		pages.GET("/file-manager/", s.fileManager)
		pages.GET("/file-view/", s.fileView)
		pages.GET("/create-file/", s.createFileForm)
		pages.POST("/create-file/", s.createFile)
		pages.GET("/edit-file/", s.editFileForm)
		pages.POST("/edit-file/", s.editFile)
		pages.POST("/delete-file/", s.deleteFile)
		pages.GET("/create-folder/", s.createFolderForm)
		pages.POST("/create-folder/", s.createFolder)
		pages.POST("/delete-folder/", s.deleteFolder)
		pages.GET("/move-file/", s.moveFileForm)
		pages.POST("/move-file/", s.moveFile)
		pages.POST("/toggle-folder-visibility/", s.toggleVisibility)
	}

	api := r.Group("/api", s.requireLogin(true))
	{
		api.GET("/tree", s.apiTree)
		api.POST("/move", s.apiMove)
		if s.events != nil {
			api.GET("/events", s.requireSuperadmin, s.apiEvents)
		}
	}

	r.NoRoute(func(c *gin.Context) {
		s.webui.ServeError(c.Writer, http.StatusNotFound, "Not found")
	})
	return r
}

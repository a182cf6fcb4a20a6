package errrsp

import (
	internalerror "filegate/internal/server/internalError"
	"filegate/version"
	"fmt"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
)

type PageFunc func(rsp http.ResponseWriter, status int, msg string)

func InternalServerError(fun PageFunc, rsp http.ResponseWriter, err any) {
	if version.IsDebug() {
		fun(rsp, http.StatusInternalServerError, fmt.Sprint(err))
	} else {
		fun(rsp, http.StatusInternalServerError, "System busy")
	}
}

// Redirect sends a failed form action back to the file manager, which
// shows msg on top of the tree.
func Redirect(c *gin.Context, msg string) {
	c.Redirect(http.StatusSeeOther, "/file-manager/?"+url.Values{"error": {msg}}.Encode())
}

func Operation(c *gin.Context, err error) {
	Redirect(c, internalerror.Message(err))
}

type MoveResult struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

func JSON(c *gin.Context, err error) {
	c.JSON(internalerror.Status(err), MoveResult{Error: internalerror.Message(err)})
}

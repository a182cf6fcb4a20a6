package internalerror

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{Client("file not given"), http.StatusBadRequest},
		{Denied("restricted"), http.StatusForbidden},
		{NotFound("no such folder"), http.StatusNotFound},
		{Conflict("already exists"), http.StatusConflict},
		{IO("write file", os.ErrPermission), http.StatusInternalServerError},
		{errors.New("plain"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.want, Status(tt.err))
		})
	}
}

func TestKindOfWrapped(t *testing.T) {
	err := fmt.Errorf("move: %w", Conflict("target exists"))
	assert.Equal(t, KindConflict, KindOf(err))
	assert.True(t, Is(err, KindConflict))
	assert.False(t, Is(nil, KindConflict))
}

func TestIOKeepsUnderlyingText(t *testing.T) {
	err := IO("remove folder", os.ErrPermission)
	assert.Contains(t, err.Error(), os.ErrPermission.Error())
	assert.ErrorIs(t, err, os.ErrPermission)
}

package internalerror

import (
	"filegate/version"
	"fmt"
)

// WarpedError be used in some http response.
// It will hide specific error msg in release mode to client for security.
type WarpedError struct {
	origin error
}

func (w *WarpedError) Error() string {
	if version.IsDebug() {
		return w.origin.Error()
	} else {
		return "System busy"
	}
}

func (w *WarpedError) Unwrap() error {
	return w.origin
}

func Warp(obj any) error {
	if err, ok := obj.(error); ok {
		return &WarpedError{err}
	} else {
		return &WarpedError{fmt.Errorf("filegate.internalError: unknown error: %v", obj)}
	}
}

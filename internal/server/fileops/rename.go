package fileops

import (
	"io/fs"
	"os"
)

// renameChecked refuses to replace an existing target. The check and the
// rename are two steps, so a concurrent writer can still slip in between.
func renameChecked(src, dst string) error {
	if _, err := os.Lstat(dst); err == nil {
		return &os.LinkError{Op: "rename", Old: src, New: dst, Err: fs.ErrExist}
	}
	return os.Rename(src, dst)
}

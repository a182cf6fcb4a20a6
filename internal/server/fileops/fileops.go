package fileops

import (
	"errors"
	"filegate/internal/server/audit"
	"filegate/internal/server/gate"
	"filegate/internal/server/hidden"
	internalerror "filegate/internal/server/internalError"
	"filegate/internal/server/metrics"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
)

const (
	defaultExt = ".txt"
	filePerm   = 0o644
	folderPerm = 0o755
)

const (
	reasonMissingName  = "name not given"
	reasonBadName      = "invalid name"
	reasonFileExists   = "file already exists"
	reasonFolderExists = "folder already exists"
	reasonNotEmpty     = "folder is not empty"
	reasonRootFolder   = "forbidden: the root folder"
)

type Ops struct {
	Gate   *gate.Gate
	Hidden hidden.Store
	Audit  *audit.Log
}

func (o *Ops) done(op, user, target string, errp *error) {
	err := *errp
	if err == nil {
		metrics.RecordOperation(op, "ok")
		return
	}

	kind := internalerror.KindOf(err)
	if kind == 0 {
		// keep the taxonomy closed for callers
		err = internalerror.IO(op, err)
		*errp = err
		kind = internalerror.KindIO
	}
	metrics.RecordOperation(op, kind.String())

	switch kind {
	case internalerror.KindClient:
	case internalerror.KindIO:
		log.Warn().Err(err).Str("User", user).Str("Path", target).Str("Op", op).Msg("File operation failed")
	default:
		log.Debug().Err(err).Str("User", user).Str("Path", target).Str("Op", op).Msg("File operation refused")
	}
}

func checkName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", internalerror.Client(reasonMissingName)
	}
	if name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return "", internalerror.Client(reasonBadName)
	}
	return name, nil
}

// CreateFile writes a new file in folder. A name without extension gets ".txt".
func (o *Ops) CreateFile(user, folder, name, content string) (path string, err error) {
	defer o.done("create_file", user, folder, &err)

	if name, err = checkName(name); err != nil {
		return
	}
	if filepath.Ext(name) == "" {
		name += defaultExt
	}

	dir, err := o.Gate.Authorize(user, folder, gate.CreateFile)
	if err != nil {
		return
	}

	path = filepath.Join(dir, name)
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, filePerm)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return "", internalerror.Conflict(reasonFileExists)
		}
		return "", internalerror.IO("create file", err)
	}

	_, err = io.WriteString(f, content)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return "", internalerror.IO("write file", err)
	}

	o.Audit.Event(audit.Created, audit.F("user", user), audit.F("file", name))
	return
}

func (o *Ops) EditFile(user, file, content string) (err error) {
	defer o.done("edit_file", user, file, &err)

	path, err := o.Gate.Authorize(user, file, gate.EditFile)
	if err != nil {
		return
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_TRUNC, 0)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return internalerror.NotFound("not found")
		}
		return internalerror.IO("open file", err)
	}

	_, err = io.WriteString(f, content)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return internalerror.IO("write file", err)
	}

	o.Audit.Event(audit.Edited, audit.F("user", user), audit.F("file", filepath.Base(path)))
	return
}

func (o *Ops) DeleteFile(user, file string) (err error) {
	defer o.done("delete_file", user, file, &err)

	path, err := o.Gate.Authorize(user, file, gate.DeleteFile)
	if err != nil {
		return
	}

	if err = os.Remove(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return internalerror.NotFound("not found")
		}
		return internalerror.IO("delete file", err)
	}

	o.Audit.Event(audit.Deleted, audit.F("user", user), audit.F("file", filepath.Base(path)))
	return
}

func (o *Ops) CreateFolder(user, parent, name string) (path string, err error) {
	defer o.done("create_folder", user, parent, &err)

	if name, err = checkName(name); err != nil {
		return
	}

	dir, err := o.Gate.Authorize(user, parent, gate.CreateFolder)
	if err != nil {
		return
	}

	path = filepath.Join(dir, name)
	if err = os.Mkdir(path, folderPerm); err != nil {
		if errors.Is(err, fs.ErrExist) {
			return "", internalerror.Conflict(reasonFolderExists)
		}
		return "", internalerror.IO("create folder", err)
	}

	o.Audit.Event(audit.CreatedFolder, audit.F("user", user), audit.F("folder", name))
	return
}

// DeleteFolder removes an empty folder. A non-empty folder is a conflict
// and is left untouched.
func (o *Ops) DeleteFolder(user, folder string) (err error) {
	defer o.done("delete_folder", user, folder, &err)

	path, err := o.Gate.Authorize(user, folder, gate.DeleteFolder)
	if err != nil {
		return
	}
	if path == o.Gate.Root.Path {
		return internalerror.Denied(reasonRootFolder)
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return internalerror.IO("read folder", err)
	}
	if len(entries) != 0 {
		return internalerror.Conflict(reasonNotEmpty)
	}

	if err = os.Remove(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return internalerror.NotFound("not found")
		}
		return internalerror.IO("delete folder", err)
	}

	o.Audit.Event(audit.DeletedFolder, audit.F("user", user), audit.F("folder", filepath.Base(path)))
	return
}

// MoveFile moves file into the folder dest, keeping its name. It never
// overwrites a file already in dest.
func (o *Ops) MoveFile(user, file, dest string) (target string, err error) {
	defer o.done("move_file", user, file, &err)

	src, err := o.Gate.Authorize(user, file, gate.MoveSource)
	if err != nil {
		return
	}
	dir, err := o.Gate.Authorize(user, dest, gate.MoveDestination)
	if err != nil {
		return
	}

	target = filepath.Join(dir, filepath.Base(src))
	if target == src {
		return "", internalerror.Conflict(reasonFileExists)
	}

	if err = renameNoReplace(src, target); err != nil {
		switch {
		case errors.Is(err, fs.ErrExist):
			return "", internalerror.Conflict(reasonFileExists)
		case errors.Is(err, fs.ErrNotExist):
			return "", internalerror.NotFound("not found")
		default:
			return "", internalerror.IO("move file", err)
		}
	}

	o.Audit.Event(audit.Moved,
		audit.F("user", user),
		audit.F("file", filepath.Base(src)),
		audit.F("from", src),
		audit.F("to", target))
	return
}

// ToggleVisibility flips the hidden state of folder and returns the new state.
func (o *Ops) ToggleVisibility(user, folder string) (isHidden bool, err error) {
	defer o.done("toggle_visibility", user, folder, &err)

	path, err := o.Gate.Authorize(user, folder, gate.ToggleVisibility)
	if err != nil {
		return
	}
	rel, err := o.Gate.Root.Rel(path)
	if err != nil {
		return false, internalerror.Denied(gate.ReasonOutsideRoot)
	}
	if rel == "." {
		return false, internalerror.Denied(reasonRootFolder)
	}

	isHidden, err = hidden.Toggle(o.Hidden, rel)
	if err != nil {
		return false, internalerror.IO("save hidden folders", err)
	}
	log.Info().Str("User", user).Str("Folder", rel).Bool("Hidden", isHidden).Msg("Visibility changed")
	return
}

// ReadFile returns the content of file for viewing.
func (o *Ops) ReadFile(user, file string) (path string, content []byte, err error) {
	defer o.done("view_file", user, file, &err)

	path, err = o.Gate.Authorize(user, file, gate.View)
	if err != nil {
		return
	}

	content, err = os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil, internalerror.NotFound("not found")
		}
		return "", nil, internalerror.IO("read file", err)
	}

	o.Audit.Event(audit.Opened, audit.F("user", user), audit.F("file", filepath.Base(path)))
	return
}

// Content returns the content of file for the edit form. Unlike ReadFile
// it needs edit rights and is not audited.
func (o *Ops) Content(user, file string) (path string, content []byte, err error) {
	defer o.done("read_file", user, file, &err)

	path, err = o.Gate.Authorize(user, file, gate.EditFile)
	if err != nil {
		return
	}

	content, err = os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil, internalerror.NotFound("not found")
		}
		return "", nil, internalerror.IO("read file", err)
	}
	return
}

package gate

import (
	"errors"
	"filegate/internal/server/access"
	internalerror "filegate/internal/server/internalError"
	"filegate/internal/server/storage"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
)

type Op int

const (
	Browse Op = iota
	View
	CreateFile
	EditFile
	DeleteFile
	CreateFolder
	DeleteFolder
	MoveSource
	MoveDestination
	ToggleVisibility
)

var opNames = [...]string{
	Browse:           "browse",
	View:             "view",
	CreateFile:       "create_file",
	EditFile:         "edit_file",
	DeleteFile:       "delete_file",
	CreateFolder:     "create_folder",
	DeleteFolder:     "delete_folder",
	MoveSource:       "move_source",
	MoveDestination:  "move_destination",
	ToggleVisibility: "toggle_visibility",
}

func (o Op) String() string {
	if o < 0 || int(o) >= len(opNames) {
		return "unknown"
	}
	return opNames[o]
}

const (
	ReasonMissingPath        = "path not given"
	ReasonOutsideRoot        = "forbidden: outside root"
	ReasonRestricted         = "restricted"
	ReasonInsufficientAccess = "insufficient access"
	ReasonNoGroup            = "no group assigned"
	ReasonOutsideGroup       = "forbidden: outside group folders"
	ReasonNoVisibilityRights = "no rights to change visibility"
)

const (
	createLevel = 2
	deleteLevel = 3
)

type Gate struct {
	Root   *storage.Root
	Access access.Provider
}

// Authorize decides whether user may apply op to target. On success it
// returns the entry the caller must use for the filesystem call: target
// with its parent resolved, so removing or renaming a symlink acts on the
// link. Containment and scope hold for both the entry and what it points
// to. The access config is loaded once per call.
func (g *Gate) Authorize(user, target string, op Op) (string, error) {
	return g.authorize(g.Access.Load(), user, target, op)
}

func (g *Gate) authorize(c *access.Config, user, target string, op Op) (path string, err error) {
	if target == "" {
		return "", internalerror.Client(ReasonMissingPath)
	}

	entry := g.Root.Entry(target)
	path, err = g.Root.Resolve(target)
	if err != nil || !g.Root.Contains(entry) {
		return "", internalerror.Denied(ReasonOutsideRoot)
	}

	if err = checkType(path, op); err != nil {
		return "", err
	}

	if restricted(c, entry, op) || restricted(c, path, op) {
		return "", internalerror.Denied(ReasonRestricted)
	}

	if need := requiredLevel(op); need > 0 && c.AccessLevel(user) < need {
		return "", internalerror.Denied(ReasonInsufficientAccess)
	}

	if !c.IsSuperadmin(user) {
		var folders []string
		folders, err = g.scope(c, user)
		if err != nil {
			return "", err
		}
		if !within(folders, path) || !within(folders, entry) {
			return "", internalerror.Denied(ReasonOutsideGroup)
		}
	}

	if op == ToggleVisibility && !c.IsSuperadmin(user) {
		return "", internalerror.Denied(ReasonNoVisibilityRights)
	}
	return entry, nil
}

func checkType(path string, op Op) error {
	fi, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return internalerror.NotFound("not found")
		}
		return internalerror.IO("stat", err)
	}

	switch op {
	case Browse, CreateFile, CreateFolder, DeleteFolder, MoveDestination, ToggleVisibility:
		if !fi.IsDir() {
			return internalerror.NotFound("not a folder")
		}
	default:
		if fi.IsDir() {
			return internalerror.NotFound("not a file")
		}
	}
	return nil
}

func restricted(c *access.Config, path string, op Op) bool {
	name := filepath.Base(path)
	switch op {
	case EditFile, DeleteFile, MoveSource:
		return c.IsRestrictedFile(name)
	case DeleteFolder, CreateFile:
		return c.IsRestrictedFolder(name)
	}
	return false
}

func requiredLevel(op Op) int {
	switch op {
	case CreateFile, CreateFolder, MoveSource, MoveDestination:
		return createLevel
	case DeleteFile, DeleteFolder:
		return deleteLevel
	}
	return 0
}

// Scope returns the canonical folders user may reach. all is true for
// the superadmin, who may reach the whole root.
func (g *Gate) Scope(user string) (folders []string, all bool, err error) {
	c := g.Access.Load()
	if c.IsSuperadmin(user) {
		return []string{g.Root.Path}, true, nil
	}
	folders, err = g.scope(c, user)
	return
}

func (g *Gate) scope(c *access.Config, user string) ([]string, error) {
	groups := c.UserGroups(user)
	if len(groups) == 0 {
		return nil, internalerror.Denied(ReasonNoGroup)
	}

	seen := map[string]struct{}{}
	folders := []string{}
	add := func(p string) {
		if _, ok := seen[p]; !ok {
			seen[p] = struct{}{}
			folders = append(folders, p)
		}
	}

	for _, group := range groups {
		names := c.GroupFolderList(group)
		if len(names) == 0 {
			// a group without a folder entry is not narrowed
			add(g.Root.Path)
			continue
		}
		for _, name := range names {
			p, err := g.Root.Resolve(name)
			if err != nil {
				log.Warn().Str("Group", group).Str("Folder", name).Msg("Group folder outside root, ignored")
				continue
			}
			add(p)
		}
	}
	return folders, nil
}

func within(folders []string, path string) bool {
	for _, f := range folders {
		if storage.Within(f, path) {
			return true
		}
	}
	return false
}

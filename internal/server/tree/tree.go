package tree

import (
	"errors"
	"filegate/internal/server/gate"
	"filegate/internal/server/hidden"
	"filegate/internal/server/metrics"
	"filegate/internal/server/storage"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

type Kind string

const (
	KindDir  Kind = "dir"
	KindFile Kind = "file"
)

type Node struct {
	Name     string    `json:"name"`
	Type     Kind      `json:"type"`
	Path     string    `json:"path"`
	Children []Node    `json:"children,omitempty"`
	Hidden   *bool     `json:"is_hidden,omitempty"`
	Size     int64     `json:"size"`
	MTime    time.Time `json:"mtime"`
}

func (n Node) IsDir() bool {
	return n.Type == KindDir
}

type Builder struct {
	Gate   *gate.Gate
	Hidden hidden.Store
}

type walker struct {
	root       *storage.Root
	hidden     hidden.Set
	superadmin bool
	errs       []error
	ancestors  map[string]struct{}
}

// Build projects dir into an ordered tree as seen by user. Folders that
// cannot be listed come back empty; their errors are joined into the
// returned error next to the best effort nodes.
func (b *Builder) Build(dir, user string) ([]Node, error) {
	start := time.Now()
	defer func() { metrics.RecordTreeBuild(time.Since(start)) }()

	w := &walker{
		root:       b.Gate.Root,
		superadmin: b.Gate.Access.Load().IsSuperadmin(user),
		ancestors:  map[string]struct{}{},
	}

	var err error
	w.hidden, err = b.Hidden.ReadAll()
	if err != nil {
		log.Warn().Err(err).Msg("Read hidden folders failed")
		w.errs = append(w.errs, err)
	}

	nodes := w.walk(dir)
	return nodes, errors.Join(w.errs...)
}

// ForUser builds everything user may browse: the whole root for the
// superadmin, otherwise the merged top level of every allowed folder.
func (b *Builder) ForUser(user string) ([]Node, error) {
	folders, all, err := b.Gate.Scope(user)
	if err != nil {
		return nil, err
	}
	if all || slices.Contains(folders, b.Gate.Root.Path) {
		return b.Build(b.Gate.Root.Path, user)
	}

	var (
		nodes []Node
		errs  []error
		seen  = map[string]struct{}{}
	)

	// an allowed folder inside a hidden one stays out of sight
	set, err := b.Hidden.ReadAll()
	if err != nil {
		log.Warn().Err(err).Msg("Read hidden folders failed")
		errs = append(errs, err)
	}

	for _, folder := range outermost(folders) {
		if rel, err := b.Gate.Root.Rel(folder); err == nil && set.Covers(rel) {
			continue
		}
		sub, err := b.Build(folder, user)
		if err != nil {
			errs = append(errs, err)
		}
		for _, n := range sub {
			if _, ok := seen[n.Path]; ok {
				continue
			}
			seen[n.Path] = struct{}{}
			nodes = append(nodes, n)
		}
	}
	sortNodes(nodes)
	return nodes, errors.Join(errs...)
}

// outermost drops folders nested in another folder of the list.
func outermost(folders []string) (out []string) {
	for i, f := range folders {
		nested := false
		for j, g := range folders {
			if i != j && f != g && storage.Within(g, f) {
				nested = true
				break
			}
		}
		if !nested {
			out = append(out, f)
		}
	}
	return
}

func (w *walker) walk(dir string) []Node {
	f, err := os.Open(dir)
	if err != nil {
		log.Warn().Err(err).Str("Path", dir).Msg("Open dir failed")
		w.errs = append(w.errs, err)
		return []Node{}
	}
	defer f.Close()

	files, err := f.Readdir(-1)
	if err != nil {
		log.Warn().Err(err).Str("Path", dir).Msg("Read dir failed")
		w.errs = append(w.errs, err)
		return []Node{}
	}

	w.ancestors[dir] = struct{}{}
	defer delete(w.ancestors, dir)

	nodes := make([]Node, 0, len(files))
	for _, file := range files {
		path := filepath.Join(dir, file.Name())

		// follow symlink, but never out of the root
		realfile := file
		realpath := path
		if file.Mode().Type() == os.ModeSymlink {
			realpath, err = filepath.EvalSymlinks(path)
			if err != nil || !w.root.Contains(realpath) {
				log.Debug().Str("Path", path).Msg("Symlink skipped")
				continue
			}
			realfile, err = os.Stat(realpath)
			if err != nil {
				log.Warn().Err(err).Str("Path", path).Msg("Stat symlink failed")
				continue
			}
		}

		n := Node{
			Name:  file.Name(),
			Path:  path,
			Size:  realfile.Size(),
			MTime: realfile.ModTime(),
		}

		if !realfile.IsDir() {
			n.Type = KindFile
			nodes = append(nodes, n)
			continue
		}

		n.Type = KindDir
		rel, _ := w.root.Rel(path)
		isHidden := w.hidden.Has(rel)
		if isHidden && !w.superadmin {
			continue
		}
		if w.superadmin {
			n.Hidden = &isHidden
		}

		if _, loop := w.ancestors[realpath]; loop {
			n.Children = []Node{}
		} else {
			n.Children = w.walk(realpath)
			if realpath != path {
				rebase(n.Children, realpath, path)
			}
		}
		nodes = append(nodes, n)
	}

	sortNodes(nodes)
	return nodes
}

// rebase rewrites paths found through a symlinked folder so they stay
// under the link.
func rebase(nodes []Node, from, to string) {
	for i := range nodes {
		if rel, err := filepath.Rel(from, nodes[i].Path); err == nil {
			nodes[i].Path = filepath.Join(to, rel)
		}
		rebase(nodes[i].Children, from, to)
	}
}

func sortNodes(nodes []Node) {
	slices.SortFunc(nodes, func(a, b Node) int {
		if a.IsDir() != b.IsDir() {
			if a.IsDir() {
				return -1
			}
			return 1
		}
		if c := strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name)); c != 0 {
			return c
		}
		return strings.Compare(a.Name, b.Name)
	})
}

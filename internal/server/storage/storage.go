package storage

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

var (
	ErrOutsideRoot = errors.New("storage: path outside root")
	ErrNotDir      = errors.New("storage: root is not a directory")
)

// Root is the sandboxed file root. Path is absolute, symlink free,
// and ends with no separator.
type Root struct {
	Path string
}

func NewRoot(path string) (r *Root, err error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return
	}
	abs, err = filepath.EvalSymlinks(abs)
	if err != nil {
		return
	}

	fi, err := os.Stat(abs)
	if err != nil {
		return
	}
	if !fi.IsDir() {
		err = ErrNotDir
		return
	}

	r = &Root{Path: strings.TrimSuffix(abs, string(filepath.Separator))}
	if r.Path == "" {
		r.Path = string(filepath.Separator)
	}
	return
}

// Canonical returns p made absolute and cleaned, with symlinks resolved
// on its longest existing prefix. Relative paths are taken from the root.
func (r *Root) Canonical(p string) string {
	if !filepath.IsAbs(p) {
		p = filepath.Join(r.Path, p)
	}
	p = filepath.Clean(p)

	var rest []string
	cur := p
	for {
		resolved, err := filepath.EvalSymlinks(cur)
		if err == nil {
			return filepath.Join(append([]string{resolved}, rest...)...)
		}
		parent := filepath.Dir(cur)
		if parent == cur {
			return p
		}
		rest = append([]string{filepath.Base(cur)}, rest...)
		cur = parent
	}
}

// Entry returns p cleaned with only its parent resolved, so a symlink
// names the link itself and not its target. Relative paths are taken
// from the root.
func (r *Root) Entry(p string) string {
	if !filepath.IsAbs(p) {
		p = filepath.Join(r.Path, p)
	}
	p = filepath.Clean(p)

	dir, name := filepath.Split(p)
	if name == "" {
		return p
	}
	return filepath.Join(r.Canonical(dir), name)
}

// Contains compares component-wise, so a sibling such as "/srv/files2"
// is never inside "/srv/files".
func (r *Root) Contains(p string) bool {
	return Within(r.Path, p)
}

// Resolve canonicalizes p and checks it stays inside the root.
func (r *Root) Resolve(p string) (string, error) {
	c := r.Canonical(p)
	if !r.Contains(c) {
		return "", ErrOutsideRoot
	}
	return c, nil
}

// Rel returns the slash separated path of p relative to the root.
// The root itself is ".".
func (r *Root) Rel(p string) (string, error) {
	if !r.Contains(p) {
		return "", ErrOutsideRoot
	}
	rel, err := filepath.Rel(r.Path, p)
	if err != nil {
		return "", err
	}
	return filepath.ToSlash(rel), nil
}

// Within reports whether p equals base or lies below it. Both must be
// canonical.
func Within(base, p string) bool {
	if p == base {
		return true
	}
	if strings.HasSuffix(base, string(filepath.Separator)) {
		return strings.HasPrefix(p, base)
	}
	return strings.HasPrefix(p, base+string(filepath.Separator))
}

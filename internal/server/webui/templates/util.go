package templates

import (
	"net/url"
	"path/filepath"
)

type Page struct {
	CacheId    string
	User       string
	Background string
}

type Rights struct {
	Level      int
	Superadmin bool
}

func (r Rights) CanCreate() bool {
	return r.Level >= 2
}

func (r Rights) CanDelete() bool {
	return r.Level >= 3
}

type Entry struct {
	Name     string
	Path     string
	IsDir    bool
	Hidden   bool
	Size     string
	MTime    string
	Children []Entry
}

type Field struct {
	Label string
	Name  string
	Value string
}

// Form is a generic POST form. A non-nil Text becomes a textarea after
// the single line Fields.
type Form struct {
	Title  string
	Action string
	Submit string
	Fields []Field
	Text   *Field
}

func query(key, value string) string {
	return "?" + url.Values{key: {value}}.Encode()
}

func fileDisplayName(name string) string {
	if name == "" || name == "/" {
		return "/"
	}
	return filepath.Base(name)
}

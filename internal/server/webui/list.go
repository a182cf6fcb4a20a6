package webui

import (
	"filegate/internal/server/tree"
	"filegate/internal/server/webui/templates"

	"github.com/dustin/go-humanize"
)

// Entries converts the tree of a user into template entries.
func Entries(nodes []tree.Node) []templates.Entry {
	if len(nodes) == 0 {
		return nil
	}

	entries := make([]templates.Entry, 0, len(nodes))
	for _, n := range nodes {
		e := templates.Entry{
			Name:  n.Name,
			Path:  n.Path,
			IsDir: n.IsDir(),
			MTime: humanize.Time(n.MTime),
		}
		if n.IsDir() {
			e.Hidden = n.Hidden != nil && *n.Hidden
			e.Children = Entries(n.Children)
		} else {
			e.Size = humanize.IBytes(uint64(n.Size))
		}
		entries = append(entries, e)
	}
	return entries
}

package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRoot(t *testing.T) *Root {
	t.Helper()
	base := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(base, "files", "Science"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(base, "files2"), 0o755))
	r, err := NewRoot(filepath.Join(base, "files"))
	require.NoError(t, err)
	return r
}

func TestResolve(t *testing.T) {
	r := newRoot(t)
	sibling := filepath.Join(filepath.Dir(r.Path), "files2")

	tests := []struct {
		name string
		in   string
		ok   bool
	}{
		{"root itself", r.Path, true},
		{"child", filepath.Join(r.Path, "Science"), true},
		{"missing child", filepath.Join(r.Path, "Science", "new.txt"), true},
		{"relative", "Science", true},
		{"dot dot escape", filepath.Join(r.Path, "..", "files2"), false},
		{"relative escape", "../files2", false},
		{"sibling sharing prefix", sibling, false},
		{"system path", "/etc/passwd", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.Resolve(tt.in)
			if tt.ok {
				require.NoError(t, err)
				assert.True(t, Within(r.Path, got))
			} else {
				assert.ErrorIs(t, err, ErrOutsideRoot)
			}
		})
	}
}

func TestResolveSymlinkEscape(t *testing.T) {
	r := newRoot(t)
	outside := filepath.Join(filepath.Dir(r.Path), "files2")
	link := filepath.Join(r.Path, "Science", "escape")
	if err := os.Symlink(outside, link); err != nil {
		t.Skip("symlinks unsupported:", err)
	}

	_, err := r.Resolve(link)
	assert.ErrorIs(t, err, ErrOutsideRoot)

	_, err = r.Resolve(filepath.Join(link, "not-yet.txt"))
	assert.ErrorIs(t, err, ErrOutsideRoot)
}

func TestEntryKeepsLinkName(t *testing.T) {
	r := newRoot(t)
	science := filepath.Join(r.Path, "Science")
	if err := os.Symlink(science, filepath.Join(r.Path, "Lab")); err != nil {
		t.Skip("symlinks unsupported:", err)
	}

	assert.Equal(t, filepath.Join(r.Path, "Lab"), r.Entry("Lab"))
	assert.Equal(t, science, r.Canonical("Lab"))
	assert.Equal(t, filepath.Join(science, "a.txt"), r.Entry(filepath.Join(r.Path, "Lab", "a.txt")))
	assert.Equal(t, r.Path, r.Entry(filepath.Join(r.Path, "Science", "..")))
	assert.Equal(t, filepath.Join(filepath.Dir(r.Path), "files2"), r.Entry("../files2"))
}

func TestRel(t *testing.T) {
	r := newRoot(t)

	rel, err := r.Rel(filepath.Join(r.Path, "Science", "Labs"))
	require.NoError(t, err)
	assert.Equal(t, "Science/Labs", rel)

	rel, err = r.Rel(r.Path)
	require.NoError(t, err)
	assert.Equal(t, ".", rel)

	_, err = r.Rel(filepath.Dir(r.Path))
	assert.ErrorIs(t, err, ErrOutsideRoot)
}

func TestNewRootRejectsFile(t *testing.T) {
	f := filepath.Join(t.TempDir(), "plain.txt")
	require.NoError(t, os.WriteFile(f, nil, 0o644))

	_, err := NewRoot(f)
	assert.ErrorIs(t, err, ErrNotDir)
}

package tree

import (
	"filegate/internal/server/access"
	"filegate/internal/server/gate"
	"filegate/internal/server/hidden"
	internalerror "filegate/internal/server/internalError"
	"filegate/internal/server/storage"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const accessConfig = `
[groups]
g1 = "u, nested"
g2 = "u"
g3 = "nested"

[group_folders]
g1 = "Science"
g2 = "Archive"
g3 = "Science/Labs"

[folder_visibility]
superadmin = "root"
`

type fixture struct {
	root    *storage.Root
	builder *Builder
	store   *hidden.FileStore
}

func newFixture(t *testing.T, dirs, files []string) *fixture {
	t.Helper()
	base := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(base, "R"), 0o755))
	for _, d := range dirs {
		require.NoError(t, os.MkdirAll(filepath.Join(base, "R", d), 0o755))
	}
	for _, f := range files {
		require.NoError(t, os.WriteFile(filepath.Join(base, "R", f), []byte("x"), 0o644))
	}

	root, err := storage.NewRoot(filepath.Join(base, "R"))
	require.NoError(t, err)
	c, err := access.DecodeString(accessConfig)
	require.NoError(t, err)

	store := &hidden.FileStore{Path: filepath.Join(base, "hidden_folders.json")}
	return &fixture{
		root:    root,
		store:   store,
		builder: &Builder{Gate: &gate.Gate{Root: root, Access: access.Static{Config: c}}, Hidden: store},
	}
}

func names(nodes []Node) (list []string) {
	for _, n := range nodes {
		list = append(list, n.Name)
	}
	return
}

func find(nodes []Node, name string) *Node {
	for i := range nodes {
		if nodes[i].Name == name {
			return &nodes[i]
		}
	}
	return nil
}

func TestOrdering(t *testing.T) {
	f := newFixture(t, []string{"beta", "Alpha", "gamma"}, []string{"b.txt", "A.txt", "c.TXT"})

	nodes, err := f.builder.Build(f.root.Path, "u")
	require.NoError(t, err)
	assert.Equal(t, []string{"Alpha", "beta", "gamma", "A.txt", "b.txt", "c.TXT"}, names(nodes))

	alpha := find(nodes, "Alpha")
	require.NotNil(t, alpha)
	assert.Equal(t, KindDir, alpha.Type)
	assert.Equal(t, filepath.Join(f.root.Path, "Alpha"), alpha.Path)
	assert.Nil(t, alpha.Hidden)
}

func TestHiddenFolderDepth(t *testing.T) {
	f := newFixture(t, []string{"A/B", "C"}, []string{"A/B/deep.txt"})
	require.NoError(t, f.store.WriteAll(hidden.Set{"A": {}}))

	nodes, err := f.builder.Build(f.root.Path, "u")
	require.NoError(t, err)
	assert.Equal(t, []string{"C"}, names(nodes))

	nodes, err = f.builder.Build(f.root.Path, "root")
	require.NoError(t, err)
	a := find(nodes, "A")
	require.NotNil(t, a)
	require.NotNil(t, a.Hidden)
	assert.True(t, *a.Hidden)

	b := find(a.Children, "B")
	require.NotNil(t, b)
	require.NotNil(t, b.Hidden)
	assert.False(t, *b.Hidden)
	assert.Equal(t, []string{"deep.txt"}, names(b.Children))

	c := find(nodes, "C")
	require.NotNil(t, c)
	assert.False(t, *c.Hidden)
}

func TestNestedHiddenFolder(t *testing.T) {
	f := newFixture(t, []string{"A/B/C"}, nil)
	require.NoError(t, f.store.WriteAll(hidden.Set{"A/B": {}}))

	nodes, err := f.builder.Build(f.root.Path, "u")
	require.NoError(t, err)
	a := find(nodes, "A")
	require.NotNil(t, a)
	assert.Empty(t, a.Children)
}

func TestGroupUnion(t *testing.T) {
	f := newFixture(t,
		[]string{"Science/zeta", "Archive/Maps", "Other"},
		[]string{"Science/b.txt", "Archive/A.txt", "Archive/c.txt", "Other/x.txt"})

	nodes, err := f.builder.ForUser("u")
	require.NoError(t, err)
	assert.Equal(t, []string{"Maps", "zeta", "A.txt", "b.txt", "c.txt"}, names(nodes))
	assert.Nil(t, find(nodes, "Other"))

	nodes, err = f.builder.ForUser("root")
	require.NoError(t, err)
	assert.Equal(t, []string{"Archive", "Other", "Science"}, names(nodes))
}

func TestGroupUnionNestedFolders(t *testing.T) {
	f := newFixture(t, []string{"Science/Labs"}, []string{"Science/Labs/run.txt", "Science/notes.txt"})

	nodes, err := f.builder.ForUser("nested")
	require.NoError(t, err)
	assert.Equal(t, []string{"Labs", "notes.txt"}, names(nodes))
}

func TestHiddenGroupFolder(t *testing.T) {
	f := newFixture(t,
		[]string{"Science/Secret", "Archive"},
		[]string{"Science/plan.txt", "Archive/old.txt"})
	require.NoError(t, f.store.WriteAll(hidden.Set{"Science": {}}))

	nodes, err := f.builder.ForUser("u")
	require.NoError(t, err)
	assert.Equal(t, []string{"old.txt"}, names(nodes))

	nodes, err = f.builder.ForUser("nested")
	require.NoError(t, err)
	assert.Empty(t, nodes, "Science/Labs sits below the hidden folder")

	nodes, err = f.builder.ForUser("root")
	require.NoError(t, err)
	science := find(nodes, "Science")
	require.NotNil(t, science)
	assert.Equal(t, []string{"Secret", "plan.txt"}, names(science.Children))
}

func TestForUserWithoutGroup(t *testing.T) {
	f := newFixture(t, nil, nil)

	_, err := f.builder.ForUser("stranger")
	assert.Equal(t, internalerror.KindDenied, internalerror.KindOf(err))
}

func TestListingFailureIsReported(t *testing.T) {
	f := newFixture(t, []string{"A"}, nil)

	nodes, err := f.builder.Build(filepath.Join(f.root.Path, "missing"), "u")
	assert.Error(t, err)
	assert.Empty(t, nodes)
}

func TestHiddenStoreFailureStillBuilds(t *testing.T) {
	f := newFixture(t, []string{"A"}, nil)
	require.NoError(t, os.WriteFile(f.store.Path, []byte("not json"), 0o644))

	nodes, err := f.builder.Build(f.root.Path, "u")
	assert.Error(t, err)
	assert.Equal(t, []string{"A"}, names(nodes))
}

func TestSymlinkOutsideRootSkipped(t *testing.T) {
	f := newFixture(t, []string{"A"}, nil)
	outside := t.TempDir()
	if err := os.Symlink(outside, filepath.Join(f.root.Path, "escape")); err != nil {
		t.Skip("symlinks unsupported:", err)
	}

	nodes, err := f.builder.Build(f.root.Path, "root")
	require.NoError(t, err)
	assert.Equal(t, []string{"A"}, names(nodes))
}

func TestSymlinkLoop(t *testing.T) {
	f := newFixture(t, []string{"A"}, nil)
	if err := os.Symlink(f.root.Path, filepath.Join(f.root.Path, "A", "up")); err != nil {
		t.Skip("symlinks unsupported:", err)
	}

	nodes, err := f.builder.Build(f.root.Path, "root")
	require.NoError(t, err)
	a := find(nodes, "A")
	require.NotNil(t, a)
	up := find(a.Children, "up")
	require.NotNil(t, up)
	assert.Empty(t, up.Children)
}

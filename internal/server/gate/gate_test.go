package gate

import (
	"filegate/internal/server/access"
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
science = "alice, low, mid, high"
archive = "alice"
everything = "wide"

[group_folders]
science = "Science"
archive = "Archive"

[access_levels]
alice = 3
low = 1
mid = 2
high = 3
root = 1

[restrictions]
restricted_files = "secret.txt"
restricted_folders = "SYSTEM"

[folder_visibility]
superadmin = "root"
`

func newGate(t *testing.T) (*Gate, *storage.Root) {
	t.Helper()
	base := t.TempDir()
	for _, dir := range []string{"files/Science/system", "files/Science/Labs", "files/Archive", "files/Other", "files2"} {
		require.NoError(t, os.MkdirAll(filepath.Join(base, dir), 0o755))
	}
	for _, file := range []string{"files/Science/notes.txt", "files/Science/SECRET.TXT", "files/Archive/old.txt", "files/Other/x.txt", "files2/loot.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(base, file), []byte("data"), 0o644))
	}

	root, err := storage.NewRoot(filepath.Join(base, "files"))
	require.NoError(t, err)
	c, err := access.DecodeString(accessConfig)
	require.NoError(t, err)
	return &Gate{Root: root, Access: access.Static{Config: c}}, root
}

func reasonOf(err error) string {
	if e, ok := err.(*internalerror.Error); ok {
		return e.Reason
	}
	return ""
}

func TestContainment(t *testing.T) {
	g, root := newGate(t)
	outside := []string{
		filepath.Join(filepath.Dir(root.Path), "files2", "loot.txt"),
		filepath.Join(filepath.Dir(root.Path), "files2"),
		filepath.Join(root.Path, "..", "files2", "loot.txt"),
		"../files2",
		"/etc",
	}
	ops := []Op{Browse, View, CreateFile, EditFile, DeleteFile, CreateFolder, DeleteFolder, MoveSource, MoveDestination, ToggleVisibility}

	for _, user := range []string{"root", "high", "low", "nobody"} {
		for _, p := range outside {
			for _, op := range ops {
				_, err := g.Authorize(user, p, op)
				require.Error(t, err)
				assert.Equal(t, internalerror.KindDenied, internalerror.KindOf(err), "%s %s %s", user, p, op)
				assert.Equal(t, ReasonOutsideRoot, reasonOf(err))
			}
		}
	}
}

func TestMissingPath(t *testing.T) {
	g, _ := newGate(t)
	_, err := g.Authorize("alice", "", View)
	assert.Equal(t, internalerror.KindClient, internalerror.KindOf(err))
}

func TestThresholds(t *testing.T) {
	g, root := newGate(t)
	science := filepath.Join(root.Path, "Science")
	notes := filepath.Join(science, "notes.txt")

	tests := []struct {
		user   string
		target string
		op     Op
		allow  bool
	}{
		{"low", science, CreateFile, false},
		{"mid", science, CreateFile, true},
		{"high", science, CreateFile, true},
		{"low", science, CreateFolder, false},
		{"mid", science, CreateFolder, true},
		{"low", notes, MoveSource, false},
		{"mid", notes, MoveSource, true},
		{"low", science, MoveDestination, false},
		{"mid", science, MoveDestination, true},
		{"mid", notes, DeleteFile, false},
		{"high", notes, DeleteFile, true},
		{"mid", filepath.Join(science, "Labs"), DeleteFolder, false},
		{"high", filepath.Join(science, "Labs"), DeleteFolder, true},
		{"low", notes, View, true},
		{"low", notes, EditFile, true},
		{"low", science, Browse, true},
		{"root", notes, DeleteFile, false},
	}

	for _, tt := range tests {
		t.Run(tt.user+"/"+tt.op.String(), func(t *testing.T) {
			path, err := g.Authorize(tt.user, tt.target, tt.op)
			if tt.allow {
				require.NoError(t, err)
				assert.Equal(t, tt.target, path)
			} else {
				assert.Equal(t, internalerror.KindDenied, internalerror.KindOf(err))
				assert.Equal(t, ReasonInsufficientAccess, reasonOf(err))
			}
		})
	}
}

func TestRestrictedNames(t *testing.T) {
	g, root := newGate(t)
	secret := filepath.Join(root.Path, "Science", "SECRET.TXT")
	system := filepath.Join(root.Path, "Science", "system")

	for _, op := range []Op{EditFile, DeleteFile, MoveSource} {
		_, err := g.Authorize("high", secret, op)
		assert.Equal(t, ReasonRestricted, reasonOf(err), op.String())
	}

	_, err := g.Authorize("high", system, DeleteFolder)
	assert.Equal(t, ReasonRestricted, reasonOf(err))

	_, err = g.Authorize("high", system, CreateFile)
	assert.Equal(t, ReasonRestricted, reasonOf(err))

	_, err = g.Authorize("high", secret, View)
	assert.NoError(t, err)

	_, err = g.Authorize("high", system, CreateFolder)
	assert.NoError(t, err)
}

func TestExistenceAndType(t *testing.T) {
	g, root := newGate(t)
	science := filepath.Join(root.Path, "Science")

	tests := []struct {
		target string
		op     Op
	}{
		{filepath.Join(science, "missing.txt"), View},
		{filepath.Join(science, "missing"), DeleteFolder},
		{science, DeleteFile},
		{filepath.Join(science, "notes.txt"), DeleteFolder},
		{filepath.Join(science, "notes.txt"), MoveDestination},
		{filepath.Join(science, "notes.txt"), CreateFile},
	}

	for _, tt := range tests {
		_, err := g.Authorize("high", tt.target, tt.op)
		assert.Equal(t, internalerror.KindNotFound, internalerror.KindOf(err), "%s %s", tt.target, tt.op)
	}
}

func TestGroupScoping(t *testing.T) {
	g, root := newGate(t)

	_, err := g.Authorize("alice", filepath.Join(root.Path, "Archive", "old.txt"), View)
	assert.NoError(t, err)
	_, err = g.Authorize("alice", filepath.Join(root.Path, "Science", "notes.txt"), View)
	assert.NoError(t, err)

	_, err = g.Authorize("alice", filepath.Join(root.Path, "Other", "x.txt"), View)
	assert.Equal(t, ReasonOutsideGroup, reasonOf(err))

	_, err = g.Authorize("high", filepath.Join(root.Path, "Archive"), Browse)
	assert.Equal(t, ReasonOutsideGroup, reasonOf(err))

	_, err = g.Authorize("nobody", filepath.Join(root.Path, "Science"), Browse)
	assert.Equal(t, ReasonNoGroup, reasonOf(err))

	_, err = g.Authorize("wide", filepath.Join(root.Path, "Other", "x.txt"), View)
	assert.NoError(t, err, "group without folders reaches the whole root")

	_, err = g.Authorize("root", filepath.Join(root.Path, "Other", "x.txt"), View)
	assert.NoError(t, err)
}

func TestToggleVisibility(t *testing.T) {
	g, root := newGate(t)
	science := filepath.Join(root.Path, "Science")

	_, err := g.Authorize("root", science, ToggleVisibility)
	assert.NoError(t, err)

	_, err = g.Authorize("high", science, ToggleVisibility)
	assert.Equal(t, ReasonNoVisibilityRights, reasonOf(err))
}

func TestScope(t *testing.T) {
	g, root := newGate(t)

	folders, all, err := g.Scope("alice")
	require.NoError(t, err)
	assert.False(t, all)
	assert.ElementsMatch(t, []string{filepath.Join(root.Path, "Archive"), filepath.Join(root.Path, "Science")}, folders)

	folders, all, err = g.Scope("root")
	require.NoError(t, err)
	assert.True(t, all)
	assert.Equal(t, []string{root.Path}, folders)

	_, _, err = g.Scope("nobody")
	assert.Equal(t, ReasonNoGroup, reasonOf(err))
}

func TestSymlinkEntry(t *testing.T) {
	g, root := newGate(t)
	notes := filepath.Join(root.Path, "Science", "notes.txt")
	inside := filepath.Join(root.Path, "Science", "link.txt")
	if err := os.Symlink(notes, inside); err != nil {
		t.Skip("symlinks unsupported:", err)
	}
	require.NoError(t, os.Symlink(notes, filepath.Join(root.Path, "Other", "back.txt")))

	path, err := g.Authorize("high", inside, DeleteFile)
	require.NoError(t, err)
	assert.Equal(t, inside, path)

	// the link sits outside the group folder even though its target does not
	_, err = g.Authorize("high", filepath.Join(root.Path, "Other", "back.txt"), DeleteFile)
	assert.Equal(t, ReasonOutsideGroup, reasonOf(err))
}

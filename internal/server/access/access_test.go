package access

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const sample = `
[groups]
science = "alice, bob"
archive = ["alice", "carol"]

[group_folders]
science = "Science, Labs"
archive = "Archive"

[access_levels]
alice = 3
bob = "2"
carol = "lots"

[restrictions]
restricted_files = "Secret.txt, readme.md"
restricted_folders = "system"

[folder_visibility]
superadmin = "root"
`

func TestDecodeString(t *testing.T) {
	c, err := DecodeString(sample)
	require.NoError(t, err)

	assert.Equal(t, []string{"archive", "science"}, c.UserGroups("alice"))
	assert.Equal(t, []string{"science"}, c.UserGroups("bob"))
	assert.Empty(t, c.UserGroups("dave"))

	assert.Equal(t, []string{"Science", "Labs"}, c.GroupFolderList("science"))
	assert.Nil(t, c.GroupFolderList("nobody"))

	assert.Equal(t, 3, c.AccessLevel("alice"))
	assert.Equal(t, 2, c.AccessLevel("bob"))
	assert.Equal(t, DefaultAccessLevel, c.AccessLevel("carol"))
	assert.Equal(t, DefaultAccessLevel, c.AccessLevel("dave"))

	assert.True(t, c.IsRestrictedFile("SECRET.TXT"))
	assert.True(t, c.IsRestrictedFile("secret.txt"))
	assert.False(t, c.IsRestrictedFile("other.txt"))
	assert.True(t, c.IsRestrictedFolder("System"))
	assert.False(t, c.IsRestrictedFolder("Science"))

	assert.True(t, c.IsSuperadmin("root"))
	assert.False(t, c.IsSuperadmin("alice"))
	assert.Equal(t, []string{"alice", "bob", "carol", "root"}, c.Users())
}

func TestEmptyConfigDefaults(t *testing.T) {
	c, err := DecodeString("")
	require.NoError(t, err)

	assert.Empty(t, c.UserGroups("alice"))
	assert.Equal(t, DefaultAccessLevel, c.AccessLevel("alice"))
	assert.False(t, c.IsRestrictedFile("anything"))
	assert.False(t, c.IsSuperadmin(""))
}

func TestFileProviderRereads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "access.toml")
	p := &FileProvider{Path: path}

	assert.Equal(t, DefaultAccessLevel, p.Load().AccessLevel("alice"), "missing file")

	require.NoError(t, os.WriteFile(path, []byte("[access_levels]\nalice = 2\n"), 0o644))
	assert.Equal(t, 2, p.Load().AccessLevel("alice"))

	require.NoError(t, os.WriteFile(path, []byte("[access_levels]\nalice = 3\n"), 0o644))
	assert.Equal(t, 3, p.Load().AccessLevel("alice"))

	require.NoError(t, os.WriteFile(path, []byte("[access_levels\nbroken"), 0o644))
	assert.Equal(t, DefaultAccessLevel, p.Load().AccessLevel("alice"), "malformed file")
}

func TestCheckPassword(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.MinCost)
	require.NoError(t, err)

	c, err := DecodeString("[accounts]\nalice = \"" + string(hash) + "\"\n")
	require.NoError(t, err)

	assert.NoError(t, c.CheckPassword("alice", "hunter2"))
	assert.ErrorIs(t, c.CheckPassword("alice", "wrong"), ErrHashMismatch)
	assert.ErrorIs(t, c.CheckPassword("bob", "hunter2"), ErrUserNotExists)
}

func TestLegacyCredentials(t *testing.T) {
	c, err := DecodeString("[credentials]\nlogin = \"admin\"\npassword = \"hash\"\n")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"admin": "hash"}, c.Accounts)
}

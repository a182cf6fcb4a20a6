package util

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTablePrint(t *testing.T) {
	table := NewTable("NAME", "LEVEL").WithLeftPadding(1)
	table.AddRow("alice", 3)
	table.AddRow("bo", 1)

	var buf bytes.Buffer
	table.Print(&buf)
	assert.Equal(t, " NAME   LEVEL\n alice  3\n bo     1\n", buf.String())
}

func TestTablePrintHeaderOnly(t *testing.T) {
	var buf bytes.Buffer
	NewTable("USER", "GROUPS").Print(&buf)
	assert.Equal(t, "USER  GROUPS\n", buf.String())
}

func TestIsUrlValid(t *testing.T) {
	assert.True(t, IsUrlValid("/file-manager/"))
	assert.True(t, IsUrlValid("/a/..b"))
	assert.False(t, IsUrlValid(""))
	assert.False(t, IsUrlValid("relative"))
	assert.False(t, IsUrlValid("/a/../b"))
	assert.False(t, IsUrlValid("/a/.."))
}

func TestRandomString(t *testing.T) {
	s := RandomString(16, []rune("ab"))
	assert.Len(t, s, 16)
	assert.Regexp(t, "^[ab]+$", s)
	assert.NotEqual(t, RandomString(16, DefaultRandomStringRunes), RandomString(16, DefaultRandomStringRunes))
}

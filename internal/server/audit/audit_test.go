package audit

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedNow(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestShift(t *testing.T) {
	tests := []struct {
		in, want time.Time
		years    int
	}{
		{time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC), time.Date(2013, 6, 1, 10, 0, 0, 0, time.UTC), 12},
		{time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC), time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC), 0},
		{time.Date(2024, 2, 29, 8, 0, 0, 0, time.UTC), time.Date(2024, 2, 29, 8, 0, 0, 0, time.UTC).AddDate(0, 0, -365), 1},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Shift(tt.in, tt.years))
	}
}

func TestEventLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs.txt")
	l := &Log{
		Path:      path,
		YearShift: 12,
		Now:       fixedNow(time.Date(2025, 3, 4, 5, 6, 7, 0, time.UTC)),
	}

	l.Event(Created, F("user", "alice"), F("file", "notes.txt"))
	l.Event(LoginFailed, F("login", "mallory"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t,
		"[2013-03-04 05:06:07] CREATED: user='alice', file='notes.txt'\n"+
			"[2013-03-04 05:06:07] FAILED: login='mallory'\n",
		string(data))
}

func TestEventPublishes(t *testing.T) {
	var got []Entry
	l := &Log{
		Now:     fixedNow(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)),
		Publish: func(e Entry) { got = append(got, e) },
	}

	l.Event(Moved, F("user", "bob"), F("from", "a"), F("to", "b"))

	require.Len(t, got, 1)
	assert.Equal(t, Moved, got[0].Kind)
	assert.Equal(t, "[2025-01-01 00:00:00] MOVED: user='bob', from='a', to='b'", got[0].Line)
}

func TestEventSwallowsWriteFailure(t *testing.T) {
	l := &Log{Path: filepath.Join(t.TempDir(), "missing", "logs.txt")}
	assert.NotPanics(t, func() { l.Event(Deleted, F("user", "alice")) })

	var nilLog *Log
	assert.NotPanics(t, func() { nilLog.Event(Deleted) })
}

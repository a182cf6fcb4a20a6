package audit

import (
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	Created       = "CREATED"
	Edited        = "EDITED"
	Deleted       = "DELETED"
	CreatedFolder = "CREATED_FOLDER"
	DeletedFolder = "DELETED_FOLDER"
	Moved         = "MOVED"
	Opened        = "OPENED"
	LoginSuccess  = "SUCCESS"
	LoginFailed   = "FAILED"
)

const timeLayout = "2006-01-02 15:04:05"

type Field struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

func F(key, value string) Field {
	return Field{key, value}
}

type Entry struct {
	Time   time.Time `json:"time"`
	Kind   string    `json:"kind"`
	Fields []Field   `json:"fields"`
	Line   string    `json:"line"`
}

// Log appends one text line per event. The stamped time is the wall clock
// moved back YearShift years.
type Log struct {
	Path      string
	YearShift int
	Now       func() time.Time
	Publish   func(Entry)

	mu sync.Mutex
}

func Shift(t time.Time, years int) time.Time {
	s := t.AddDate(-years, 0, 0)
	if s.Day() != t.Day() {
		// Feb 29 has no counterpart in the target year
		return t.AddDate(0, 0, -365*years)
	}
	return s
}

func Format(t time.Time, kind string, fields []Field) string {
	var b strings.Builder
	b.WriteByte('[')
	b.WriteString(t.Format(timeLayout))
	b.WriteString("] ")
	b.WriteString(kind)
	b.WriteString(":")
	for i, f := range fields {
		if i != 0 {
			b.WriteByte(',')
		}
		b.WriteByte(' ')
		b.WriteString(f.Key)
		b.WriteString("='")
		b.WriteString(f.Value)
		b.WriteByte('\'')
	}
	b.WriteByte('\n')
	return b.String()
}

func (l *Log) now() time.Time {
	if l.Now != nil {
		return l.Now()
	}
	return time.Now()
}

// Event never fails; append errors only reach the diagnostic log.
func (l *Log) Event(kind string, fields ...Field) {
	if l == nil {
		return
	}

	t := Shift(l.now(), l.YearShift)
	line := Format(t, kind, fields)

	if l.Path != "" {
		l.append(line)
	}
	if l.Publish != nil {
		l.Publish(Entry{Time: t, Kind: kind, Fields: fields, Line: strings.TrimSuffix(line, "\n")})
	}
}

func (l *Log) append(line string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := os.OpenFile(l.Path, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0o644)
	if err != nil {
		log.Error().Err(err).Str("Path", l.Path).Msg("Open audit log failed")
		return
	}
	defer f.Close()

	if _, err = f.WriteString(line); err != nil {
		log.Error().Err(err).Str("Path", l.Path).Msg("Write audit log failed")
	}
}

package session

import (
	"context"
	"errors"
	"math/rand/v2"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sqids/sqids-go"
)

const (
	keyMinLength = 13
	keyRunes     = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	idleScanPeriod = time.Minute
)

var (
	ErrNoSession  = errors.New("session: not found")
	ErrBadSession = errors.New("session: malformed key")
)

type Session struct {
	User    string
	Created time.Time

	nonce    uint64
	lastSeen atomic.Int64
}

func (s *Session) touch(now time.Time) {
	s.lastSeen.Store(now.UnixNano())
}

func (s *Session) LastSeen() time.Time {
	return time.Unix(0, s.lastSeen.Load())
}

// Store keeps sessions in memory. Keys are sqids of (id, nonce) on a
// per-process shuffled alphabet; a key only matches with its nonce.
type Store struct {
	Now func() time.Time

	idleTimeout atomic.Int64
	ider        *sqids.Sqids
	sessions sync.Map
	last     atomic.Uint64
}

func randomAlphabet() string {
	s := []rune(keyRunes)
	rand.Shuffle(len(s), func(i, j int) {
		s[i], s[j] = s[j], s[i]
	})
	return string(s)
}

func NewStore(idleTimeout time.Duration) (s *Store, err error) {
	s = &Store{}
	s.SetIdleTimeout(idleTimeout)
	s.ider, err = sqids.New(sqids.Options{
		MinLength: keyMinLength,
		Alphabet:  randomAlphabet(),
	})
	return
}

// SetIdleTimeout changes the timeout of every stored session. Zero or
// less keeps sessions until logout.
func (s *Store) SetIdleTimeout(d time.Duration) {
	s.idleTimeout.Store(int64(d))
}

func (s *Store) IdleTimeout() time.Duration {
	return time.Duration(s.idleTimeout.Load())
}

func (s *Store) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *Store) New(user string) (key string, err error) {
	id := s.last.Add(1)
	sess := &Session{
		User:    user,
		Created: s.now(),
		nonce:   rand.Uint64() >> 1,
	}
	sess.touch(sess.Created)

	key, err = s.ider.Encode([]uint64{id, sess.nonce})
	if err != nil {
		return "", err
	}
	s.sessions.Store(id, sess)
	log.Info().Uint64("Id", id).Str("User", user).Msg("Session created")
	return
}

// Get returns the live session for key and marks it active.
func (s *Store) Get(key string) (*Session, error) {
	id, nonce, err := s.decode(key)
	if err != nil {
		return nil, err
	}

	v, ok := s.sessions.Load(id)
	if !ok {
		return nil, ErrNoSession
	}
	sess := v.(*Session)
	if sess.nonce != nonce {
		return nil, ErrNoSession
	}

	now := s.now()
	if idle := s.IdleTimeout(); idle > 0 && now.Sub(sess.LastSeen()) > idle {
		s.del(id)
		return nil, ErrNoSession
	}
	sess.touch(now)
	return sess, nil
}

func (s *Store) Delete(key string) {
	id, nonce, err := s.decode(key)
	if err != nil {
		return
	}
	if v, ok := s.sessions.Load(id); ok && v.(*Session).nonce == nonce {
		s.del(id)
	}
}

func (s *Store) decode(key string) (id, nonce uint64, err error) {
	result := s.ider.Decode(key)
	if len(result) != 2 {
		return 0, 0, ErrBadSession
	}
	return result[0], result[1], nil
}

func (s *Store) del(id uint64) {
	log.Info().Uint64("Id", id).Msg("Session destroyed")
	s.sessions.Delete(id)
}

// Count returns the number of stored sessions, idle ones included.
func (s *Store) Count() (n int) {
	s.sessions.Range(func(_, _ any) bool {
		n++
		return true
	})
	return
}

// Sweep drops every session idle longer than the idle timeout.
func (s *Store) Sweep() {
	idle := s.IdleTimeout()
	if idle <= 0 {
		return
	}
	now := s.now()
	s.sessions.Range(func(key, value any) bool {
		if now.Sub(value.(*Session).LastSeen()) > idle {
			s.del(key.(uint64))
		}
		return true
	})
}

// CollectIdle sweeps periodically until ctx is done. Ended limiter
// windows are pruned on the same tick.
func (s *Store) CollectIdle(ctx context.Context, limiters ...*Limiter) {
	ticker := time.NewTicker(idleScanPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep()
			for _, l := range limiters {
				l.Prune()
			}
		}
	}
}

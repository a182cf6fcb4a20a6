package session

import (
	"sync"
	"time"
)

type attempts struct {
	count int
	first time.Time
}

// Limiter counts failed logins per client key inside a fixed window.
type Limiter struct {
	Max    int
	Window time.Duration
	Now    func() time.Time

	mu      sync.Mutex
	clients map[string]*attempts
}

func NewLimiter(max int, window time.Duration) *Limiter {
	return &Limiter{
		Max:     max,
		Window:  window,
		clients: make(map[string]*attempts),
	}
}

func ClientKey(ip, userAgent string) string {
	return ip + "|" + userAgent
}

func (l *Limiter) now() time.Time {
	if l.Now != nil {
		return l.Now()
	}
	return time.Now()
}

// Allow reports whether key may try again.
func (l *Limiter) Allow(key string) bool {
	if l.Max <= 0 {
		return true
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	a, ok := l.clients[key]
	if !ok {
		return true
	}
	if l.now().Sub(a.first) > l.Window {
		delete(l.clients, key)
		return true
	}
	return a.count < l.Max
}

func (l *Limiter) Fail(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	a, ok := l.clients[key]
	if !ok || now.Sub(a.first) > l.Window {
		a = &attempts{first: now}
		l.clients[key] = a
	}
	a.count++
}

func (l *Limiter) Reset(key string) {
	l.mu.Lock()
	delete(l.clients, key)
	l.mu.Unlock()
}

// Prune forgets windows that have ended.
func (l *Limiter) Prune() {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	for key, a := range l.clients {
		if now.Sub(a.first) > l.Window {
			delete(l.clients, key)
		}
	}
}

package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/kova98/postboard/metrics"
	"github.com/kova98/postboard/page"
)

const SessionCookie = "postboard_sid"

// PageFactory builds and loads a fresh page for a new session.
type PageFactory func(ctx context.Context) (*page.Page, error)

// Sessions maps browser sessions to their pages.
type Sessions struct {
	mu      sync.Mutex
	pages   map[uuid.UUID]*page.Page
	newPage PageFactory
	ttl     time.Duration
	now     func() time.Time
}

func NewSessions(newPage PageFactory, ttl time.Duration) *Sessions {
	return &Sessions{
		pages:   make(map[uuid.UUID]*page.Page),
		newPage: newPage,
		ttl:     ttl,
		now:     time.Now,
	}
}

// Lookup returns the page of the request's session, or nil.
func (s *Sessions) Lookup(r *http.Request) *page.Page {
	cookie, err := r.Cookie(SessionCookie)
	if err != nil {
		return nil
	}
	id, err := uuid.Parse(cookie.Value)
	if err != nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pages[id]
}

// Open returns the request's page, creating a session and setting its cookie
// when the request has none.
func (s *Sessions) Open(w http.ResponseWriter, r *http.Request) (*page.Page, error) {
	if p := s.Lookup(r); p != nil {
		return p, nil
	}

	p, err := s.newPage(r.Context())
	if err != nil {
		return nil, err
	}
	id := uuid.New()

	s.mu.Lock()
	s.pages[id] = p
	metrics.Sessions.Set(float64(len(s.pages)))
	s.mu.Unlock()

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    id.String(),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	slog.Debug("session opened", "session", id)
	return p, nil
}

func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pages)
}

// Start evicts idle sessions every minute until ctx is done.
func (s *Sessions) Start(ctx context.Context) {
	ticker := time.NewTicker(1 * time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.evictIdle(); n > 0 {
				slog.Info("evicted idle sessions", "count", n)
			}
		}
	}
}

func (s *Sessions) evictIdle() int {
	cutoff := s.now().Add(-s.ttl)

	s.mu.Lock()
	var idle []*page.Page
	for id, p := range s.pages {
		if p.LastUsed().Before(cutoff) {
			idle = append(idle, p)
			delete(s.pages, id)
		}
	}
	metrics.Sessions.Set(float64(len(s.pages)))
	s.mu.Unlock()

	for _, p := range idle {
		p.Close()
	}
	return len(idle)
}

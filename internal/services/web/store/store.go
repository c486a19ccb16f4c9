// Package store holds process-wide site state: one session per visitor, and
// one navigation tab per browser tab within it.
package store

import (
	"container/list"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/louisbranch/showcase/internal/services/web/router"
)

const (
	// DefaultSessionTTL bounds how long an idle visitor session is kept.
	DefaultSessionTTL = 30 * time.Minute
	// DefaultMaxSessions caps live visitor sessions.
	DefaultMaxSessions = 10000
	// DefaultMaxTabs caps tabs per visitor session.
	DefaultMaxTabs = 16
)

// Tab is the navigation state of one browser tab.
type Tab struct {
	ID string

	mu       sync.Mutex
	router   *router.Router
	lastSeen time.Time
}

// Do runs fn with exclusive access to the tab router.
func (t *Tab) Do(fn func(*router.Router) error) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return fn(t.router)
}

// Session is one visitor. It owns the visitor's tabs.
type Session struct {
	ID string

	now     func() time.Time
	newID   func() string
	maxTabs int

	// lastSeen is guarded by the owning Store.
	lastSeen time.Time

	mu   sync.Mutex
	tabs map[string]*Tab
}

// Tab returns the tab with id and marks it seen.
func (s *Session) Tab(id string) (*Tab, bool) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	tab, ok := s.tabs[id]
	if !ok {
		return nil, false
	}
	tab.lastSeen = s.now()
	return tab, true
}

// OpenTab adds a tab around r. The least recently seen tab is dropped when
// the session is full.
func (s *Session) OpenTab(r *router.Router) (*Tab, error) {
	if r == nil {
		return nil, errors.New("router is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for len(s.tabs) >= s.maxTabs {
		s.dropOldestTabLocked()
	}
	tab := &Tab{ID: s.newID(), router: r, lastSeen: s.now()}
	s.tabs[tab.ID] = tab
	return tab, nil
}

// Tabs returns the number of open tabs.
func (s *Session) Tabs() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tabs)
}

func (s *Session) dropOldestTabLocked() {
	var oldest *Tab
	for _, tab := range s.tabs {
		if oldest == nil || tab.lastSeen.Before(oldest.lastSeen) {
			oldest = tab
		}
	}
	if oldest != nil {
		delete(s.tabs, oldest.ID)
	}
}

// Options configures a Store.
type Options struct {
	SessionTTL time.Duration
	// MaxSessions defaults to DefaultMaxSessions. When full, opening a
	// session evicts the least recently seen one.
	MaxSessions int
	// MaxTabs defaults to DefaultMaxTabs.
	MaxTabs int
	// Now defaults to time.Now.
	Now func() time.Time
	// NewID defaults to random UUIDs.
	NewID func() string
}

// Store owns visitor sessions. Sessions are kept in recency order, so
// expiry and eviction only touch the stale end.
type Store struct {
	ttl         time.Duration
	maxSessions int
	maxTabs     int
	now         func() time.Time
	newID       func() string

	mu       sync.Mutex
	sessions map[string]*list.Element
	// recency holds *Session, most recently seen first.
	recency *list.List
}

// New returns an empty store.
func New(opts Options) *Store {
	ttl := opts.SessionTTL
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	maxSessions := opts.MaxSessions
	if maxSessions <= 0 {
		maxSessions = DefaultMaxSessions
	}
	maxTabs := opts.MaxTabs
	if maxTabs <= 0 {
		maxTabs = DefaultMaxTabs
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	newID := opts.NewID
	if newID == nil {
		newID = func() string { return uuid.NewString() }
	}
	return &Store{
		ttl:         ttl,
		maxSessions: maxSessions,
		maxTabs:     maxTabs,
		now:         now,
		newID:       newID,
		sessions:    make(map[string]*list.Element),
		recency:     list.New(),
	}
}

// Session returns the live session for id and marks it seen.
func (s *Store) Session(id string) (*Session, bool) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	s.expireLocked(now)
	elem, ok := s.sessions[id]
	if !ok {
		return nil, false
	}
	session := elem.Value.(*Session)
	session.lastSeen = now
	s.recency.MoveToFront(elem)
	return session, true
}

// Open creates an empty visitor session.
func (s *Store) Open() (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	s.expireLocked(now)
	for s.recency.Len() >= s.maxSessions {
		s.removeLocked(s.recency.Back())
	}
	session := &Session{
		ID:       s.newID(),
		now:      s.now,
		newID:    s.newID,
		maxTabs:  s.maxTabs,
		lastSeen: now,
		tabs:     make(map[string]*Tab),
	}
	if elem, ok := s.sessions[session.ID]; ok {
		s.removeLocked(elem)
	}
	s.sessions[session.ID] = s.recency.PushFront(session)
	return session, nil
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expireLocked(s.now())
	return s.recency.Len()
}

// expireLocked drops idle sessions from the stale end of the recency list.
func (s *Store) expireLocked(now time.Time) {
	for elem := s.recency.Back(); elem != nil; elem = s.recency.Back() {
		if now.Sub(elem.Value.(*Session).lastSeen) <= s.ttl {
			return
		}
		s.removeLocked(elem)
	}
}

func (s *Store) removeLocked(elem *list.Element) {
	if elem == nil {
		return
	}
	session := s.recency.Remove(elem).(*Session)
	delete(s.sessions, session.ID)
}

package cart

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// sessionTTL is how long an idle cart survives before the janitor drops it.
const sessionTTL = 6 * time.Hour

type session struct {
	store    *Store
	lastSeen time.Time
}

// Manager maps session ids to carts. Sessions are minted on first use and
// expire after sitting idle; there is no persistence across restarts.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*session
}

func NewManager() *Manager {
	return &Manager{sessions: make(map[string]*session)}
}

// Get returns the cart for the given session id, minting a new session when
// the id is empty or unknown. The returned id is always valid.
func (m *Manager) Get(sessionID string) (string, *Store) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if sessionID != "" {
		if s, ok := m.sessions[sessionID]; ok {
			s.lastSeen = time.Now()
			return sessionID, s.store
		}
	}

	sessionID = uuid.New().String()
	s := &session{store: NewStore(), lastSeen: time.Now()}
	m.sessions[sessionID] = s
	return sessionID, s.store
}

// Sweep drops sessions idle longer than the TTL. Run it from a goroutine.
func (m *Manager) Sweep(interval time.Duration, stop <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			cutoff := time.Now().Add(-sessionTTL)
			m.mu.Lock()
			for id, s := range m.sessions {
				if s.lastSeen.Before(cutoff) {
					delete(m.sessions, id)
				}
			}
			m.mu.Unlock()
		case <-stop:
			return
		}
	}
}

// Len reports the number of live sessions.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

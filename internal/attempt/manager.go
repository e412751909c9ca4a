package attempt

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/mhasanmeet/quizvent/internal/quizerr"
	"github.com/rs/zerolog/log"
)

// Manager is the registry of active attempts. At most one attempt may be
// active per (student, quiz) pair at a time.
type Manager struct {
	mu     sync.RWMutex
	byID   map[string]*Attempt
	byPair map[string]string // "studentID:quizID" -> attempt id
}

func NewManager() *Manager {
	return &Manager{
		byID:   make(map[string]*Attempt),
		byPair: make(map[string]string),
	}
}

func pairKey(studentID, quizID uint) string {
	return fmt.Sprintf("%d:%d", studentID, quizID)
}

// Register adds an attempt to the registry, rejecting a second active
// attempt for the same (student, quiz) pair.
func (m *Manager) Register(a *Attempt) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := pairKey(a.StudentID(), a.QuizID())
	if _, exists := m.byPair[key]; exists {
		return quizerr.ErrAttemptActive
	}
	m.byID[a.ID()] = a
	m.byPair[key] = a.ID()
	return nil
}

func (m *Manager) Get(id string) (*Attempt, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	a, ok := m.byID[id]
	if !ok {
		return nil, quizerr.ErrAttemptNotFound
	}
	return a, nil
}

// Remove drops an attempt from the registry (after submission or abandon).
func (m *Manager) Remove(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	a, ok := m.byID[id]
	if !ok {
		return
	}
	delete(m.byID, id)
	delete(m.byPair, pairKey(a.StudentID(), a.QuizID()))
}

// TickAll advances every active attempt by one second and returns the ones
// whose timer just reached zero.
func (m *Manager) TickAll() []*Attempt {
	m.mu.RLock()
	attempts := make([]*Attempt, 0, len(m.byID))
	for _, a := range m.byID {
		attempts = append(attempts, a)
	}
	m.mu.RUnlock()

	var expired []*Attempt
	for _, a := range attempts {
		if a.Tick() {
			expired = append(expired, a)
		}
	}
	return expired
}

// Run drives the countdown of all active attempts, invoking onTimeout for
// each attempt whose timer expires. onTimeout runs in its own goroutine so a
// slow submission never stalls the clock of other attempts.
func (m *Manager) Run(ctx context.Context, onTimeout func(*Attempt)) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("Attempt ticker stopped")
			return
		case <-ticker.C:
			for _, a := range m.TickAll() {
				log.Info().Str("attemptID", a.ID()).Uint("quizID", a.QuizID()).Msg("Attempt timed out, triggering auto submission")
				go onTimeout(a)
			}
		}
	}
}

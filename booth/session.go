package booth

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/playlistx/photoboothbackend/models"
	"github.com/playlistx/photoboothbackend/quiz"
)

// Variant selects which booth flow a session runs.
type Variant string

const (
	VariantQuiz   Variant = "quiz"
	VariantRacing Variant = "racing"
)

// PhotosPerVariant returns how many photos the capture phase collects.
func PhotosPerVariant(v Variant) int {
	if v == VariantRacing {
		return 1
	}
	return 2
}

// Session is one visitor's pass through the booth.
type Session struct {
	ID        string
	Variant   Variant
	UserInfo  models.UserInfo
	Archetype quiz.Archetype
	Theme     quiz.RacingTheme
	StartedAt time.Time
}

// SessionManager holds the single active kiosk session. The booth serves one
// visitor at a time; beginning a new session replaces any previous one.
type SessionManager struct {
	mu      sync.Mutex
	current *Session
}

func NewSessionManager() *SessionManager {
	return &SessionManager{}
}

// Begin starts a fresh session for the given variant.
func (m *SessionManager) Begin(variant Variant) (*Session, error) {
	if variant != VariantQuiz && variant != VariantRacing {
		return nil, fmt.Errorf("unknown booth variant '%s'", variant)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = &Session{
		ID:        uuid.NewString(),
		Variant:   variant,
		StartedAt: time.Now(),
	}
	return m.current, nil
}

// Current returns the active session, or nil when the booth is idle.
func (m *SessionManager) Current() *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// SetUserInfo records the visitor's contact details on the active session.
func (m *SessionManager) SetUserInfo(info models.UserInfo) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil {
		return fmt.Errorf("no active session")
	}
	m.current.UserInfo = info
	return nil
}

// SetArchetype records the quiz outcome on the active session.
func (m *SessionManager) SetArchetype(a quiz.Archetype) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil {
		return fmt.Errorf("no active session")
	}
	if !quiz.IsValidArchetype(string(a)) {
		return fmt.Errorf("unknown archetype '%s'", a)
	}
	m.current.Archetype = a
	return nil
}

// SetTheme records the chosen racing theme on the active session.
func (m *SessionManager) SetTheme(t quiz.RacingTheme) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil {
		return fmt.Errorf("no active session")
	}
	if !quiz.IsValidTheme(string(t)) {
		return fmt.Errorf("unknown theme '%s'", t)
	}
	m.current.Theme = t
	return nil
}

// Reset clears the active session.
func (m *SessionManager) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = nil
}

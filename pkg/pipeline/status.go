package pipeline

import (
	"sync"

	"github.com/advisor-labs/readiness/internal/models"
)

// State is the orchestrator's position in the assessment state machine.
type State string

const (
	StatePending      State = "pending"
	StateIngesting    State = "ingesting"
	StateScoring      State = "scoring_dimensions"
	StateUseCases     State = "identifying_use_cases"
	StateSynthesising State = "synthesising"
	StateRoadmap      State = "building_roadmap"
	StateComplete     State = "complete"
	StateError        State = "error"
)

// Status is the externally visible record for one session. Progress is
// monotonically non-decreasing within a session.
type Status struct {
	SessionID string                   `json:"session_id"`
	State     State                    `json:"state"`
	Progress  int                      `json:"progress_pct"`
	Step      string                   `json:"current_step"`
	Report    *models.AssessmentReport `json:"report,omitempty"`
	Error     string                   `json:"error,omitempty"`
}

// PublicStatus collapses internal states into the three-valued contract the
// status endpoint exposes.
func (s Status) PublicStatus() string {
	switch s.State {
	case StateComplete:
		return "complete"
	case StateError:
		return "error"
	default:
		return "processing"
	}
}

// StatusStore holds per-session status records for polling. Sessions are
// isolated; concurrent readers and the single writer per session do not
// interfere.
type StatusStore struct {
	mu       sync.RWMutex
	sessions map[string]Status
}

func NewStatusStore() *StatusStore {
	return &StatusStore{
		sessions: make(map[string]Status),
	}
}

// Create registers a new session in the pending state.
func (st *StatusStore) Create(sessionID string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.sessions[sessionID] = Status{
		SessionID: sessionID,
		State:     StatePending,
		Step:      "Queued",
	}
}

// Get returns the session's status and whether the session exists.
func (st *StatusStore) Get(sessionID string) (Status, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	s, ok := st.sessions[sessionID]
	return s, ok
}

// Update moves a session to a new state and step. Progress never decreases;
// stale updates from out-of-order concurrent work are absorbed.
func (st *StatusStore) Update(sessionID string, state State, progress int, step string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	s, ok := st.sessions[sessionID]
	if !ok {
		return
	}
	s.State = state
	if progress > s.Progress {
		s.Progress = progress
	}
	s.Step = step
	st.sessions[sessionID] = s
}

// Complete stores the finished report and moves the session to its terminal
// success state.
func (st *StatusStore) Complete(sessionID string, report *models.AssessmentReport) {
	st.mu.Lock()
	defer st.mu.Unlock()
	s, ok := st.sessions[sessionID]
	if !ok {
		return
	}
	s.State = StateComplete
	s.Progress = 100
	s.Step = "Assessment complete"
	s.Report = report
	st.sessions[sessionID] = s
}

// Fail moves a session to the terminal error state with a human-readable
// message. No partial report is retained.
func (st *StatusStore) Fail(sessionID string, message string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	s, ok := st.sessions[sessionID]
	if !ok {
		return
	}
	s.State = StateError
	s.Step = "Assessment failed"
	s.Error = message
	s.Report = nil
	st.sessions[sessionID] = s
}

// Delete removes a session record, e.g. after its report is exported.
func (st *StatusStore) Delete(sessionID string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	delete(st.sessions, sessionID)
}

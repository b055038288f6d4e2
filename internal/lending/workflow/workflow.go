// internal/lending/workflow/workflow.go

// Package workflow implements the per-beneficiary session state machine:
// it sequences consumption updates, score computation and loan submission
// against the record store, enforces ordering invariants and surfaces
// failures as taxonomy errors.
package workflow

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"lendscore/internal/common/errors"
	"lendscore/internal/common/logger"
	"lendscore/internal/common/metrics"
	"lendscore/internal/lending/api"
	"lendscore/internal/lending/store"
	"lendscore/internal/models"
)

// State is the session's workflow state.
type State string

const (
	StateLoading    State = "loading"
	StateError      State = "error"
	StateUnscored   State = "unscored"
	StateScoring    State = "scoring"
	StateScored     State = "scored"
	StateSubmitting State = "submitting"
	StateSubmitted  State = "submitted"
)

// Operation names used in logs and metric labels.
const (
	opLoad              = "load"
	opUpdateConsumption = "update-consumption"
	opComputeScore      = "compute-score"
	opSubmitApplication = "submit-application"
	opListLoans         = "list-loans"
)

// Session drives the workflow for exactly one beneficiary. All state
// transitions are synchronous and atomic with respect to the session;
// remote calls are the only suspension points and run outside the lock.
// No data is shared across sessions.
type Session struct {
	id            string
	beneficiaryID string
	api           api.Client
	store         *store.RecordStore
	logger        logger.Logger

	mu        sync.Mutex
	state     State
	updating  bool // consumption update in flight
	lastScore *models.ScoreResult
}

// NewSession creates a session in the Loading state. Call Load to fetch
// the beneficiary before invoking any other operation.
func NewSession(beneficiaryID string, client api.Client, log logger.Logger) *Session {
	id := uuid.NewString()
	metrics.WorkflowSessionsActive.Inc()
	return &Session{
		id:            id,
		beneficiaryID: beneficiaryID,
		api:           client,
		store:         store.New(),
		logger: log.WithFields(map[string]interface{}{
			"sessionId":     id,
			"beneficiaryId": beneficiaryID,
		}),
		state: StateLoading,
	}
}

// Close ends the session and releases its record.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.store.Clear()
	s.lastScore = nil
	metrics.WorkflowSessionsActive.Dec()
}

// SessionID returns the session's unique identifier.
func (s *Session) SessionID() string { return s.id }

// BeneficiaryID returns the beneficiary this session is bound to.
func (s *Session) BeneficiaryID() string { return s.beneficiaryID }

// State returns the current workflow state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Beneficiary returns a copy of the current record store snapshot, nil
// before the first successful load.
func (s *Session) Beneficiary() *models.Beneficiary {
	return s.store.Current()
}

// Consumption returns the consumption sub-record with unset fields
// preserved for display and editing.
func (s *Session) Consumption() models.ConsumptionData {
	return s.store.CurrentConsumption()
}

// LastScore returns the most recent ScoreResult from this session, nil if
// none was computed here.
func (s *Session) LastScore() *models.ScoreResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastScore
}

// hasScoreLocked reports whether a credit score is known, either from the
// stored snapshot or from a score computed in this session. Callers hold
// s.mu.
func (s *Session) hasScoreLocked() bool {
	return s.store.HasScore() || s.lastScore != nil
}

// stateForSnapshot derives the Ready sub-state from score presence on a
// fresh server snapshot.
func stateForSnapshot(b *models.Beneficiary) State {
	if b.HasScore() {
		return StateScored
	}
	return StateUnscored
}

// observe records the outcome of one operation in logs and metrics.
func (s *Session) observe(op string, start time.Time, err error) {
	metrics.WorkflowOperationDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())

	if err == nil {
		metrics.WorkflowOperationsCompleted.WithLabelValues(op).Inc()
		s.logger.Info("operation completed", map[string]interface{}{
			"operation": op,
			"state":     string(s.State()),
		})
		return
	}

	stdErr := errors.Normalize(err)
	metrics.WorkflowOperationsFailed.WithLabelValues(op, string(stdErr.Code)).Inc()
	s.logger.Error("operation failed", map[string]interface{}{
		"operation": op,
		"state":     string(s.State()),
		"errorCode": string(stdErr.Code),
		"category":  errors.GetErrorCategory(stdErr.Code),
		"retryable": stdErr.Retryable,
		"details":   stdErr.Details,
	})
}

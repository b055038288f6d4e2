// internal/lending/workflow/operations.go
package workflow

import (
	"context"
	"fmt"
	"time"

	"lendscore/internal/common/errors"
	"lendscore/internal/common/validation"
	"lendscore/internal/models"
)

// Load fetches the beneficiary snapshot and enters the Ready sub-state
// matching score presence. On failure the session lands in Error; calling
// Load again is the retry path and re-enters Loading.
func (s *Session) Load(ctx context.Context) (b *models.Beneficiary, err error) {
	start := time.Now()
	defer func() { s.observe(opLoad, start, err) }()

	s.mu.Lock()
	if err = s.inFlightLocked(); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	s.state = StateLoading
	s.mu.Unlock()

	b, err = s.api.GetBeneficiary(ctx, s.beneficiaryID)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.state = StateError
		return nil, err
	}

	s.store.ApplySnapshot(b)
	s.state = stateForSnapshot(b)
	return b, nil
}

// UpdateConsumption saves the consumption sub-record. Fields left unset
// are sent as absent, never as zero. On success the store is refreshed
// from the server and the Ready sub-state recomputed from the snapshot;
// on failure nothing changes.
func (s *Session) UpdateConsumption(ctx context.Context, data models.ConsumptionData) (b *models.Beneficiary, err error) {
	start := time.Now()
	defer func() { s.observe(opUpdateConsumption, start, err) }()

	if err = validation.ValidateConsumption(data); err != nil {
		return nil, err
	}

	s.mu.Lock()
	if err = s.readyLocked(); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	s.updating = true
	s.mu.Unlock()

	b, err = s.api.UpdateConsumption(ctx, s.beneficiaryID, data)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.updating = false
	if err != nil {
		return nil, err
	}

	s.store.ApplySnapshot(b)
	if s.state == StateUnscored || s.state == StateScored {
		s.state = stateForSnapshot(b)
	}
	return b, nil
}

// ComputeScore triggers the remote score computation. Re-entrant: a
// Scored session may recalculate, replacing the prior ScoreResult. A
// duplicate request while one is already in flight is rejected without a
// network call. On failure the previous sub-state is restored untouched.
func (s *Session) ComputeScore(ctx context.Context) (result *models.ScoreResult, err error) {
	start := time.Now()
	defer func() { s.observe(opComputeScore, start, err) }()

	s.mu.Lock()
	if err = s.readyLocked(); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	prev := s.state
	s.state = StateScoring
	s.mu.Unlock()

	result, err = s.api.ComputeScore(ctx, s.beneficiaryID)
	if err != nil {
		s.mu.Lock()
		s.state = prev
		s.mu.Unlock()
		return nil, err
	}

	// Refresh-after-write: pick up the server-persisted score, risk band
	// and income category rather than patching them locally.
	fresh, refreshErr := s.api.GetBeneficiary(ctx, s.beneficiaryID)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastScore = result
	if refreshErr != nil {
		// The computation itself succeeded and its result is authoritative;
		// the stale snapshot will be replaced by the next refresh.
		s.logger.Warn("snapshot refresh after scoring failed", map[string]interface{}{
			"errorCode": string(errors.CodeOf(refreshErr)),
		})
	} else {
		s.store.ApplySnapshot(fresh)
	}
	s.state = StateScored
	return result, nil
}

// ApplyForLoan submits a loan application for the session's beneficiary.
// Precondition: a credit score must be present; when it is not, the
// operation fails with PRECONDITION_FAILED and no network call is made.
// A business-rule rejection reverts the session to Scored; transport
// failures do likewise.
func (s *Session) ApplyForLoan(ctx context.Context, amount float64, purpose string) (record *models.LoanApplicationRecord, err error) {
	start := time.Now()
	defer func() { s.observe(opSubmitApplication, start, err) }()

	s.mu.Lock()
	if err = s.inFlightLocked(); err != nil {
		s.mu.Unlock()
		return nil, err
	}

	b := s.store.Current()
	switch {
	case b == nil:
		err = errors.NewPreconditionError("no beneficiary loaded in this session")
	case s.state == StateSubmitted:
		err = errors.NewPreconditionError("a loan application was already submitted in this session")
	case !s.hasScoreLocked():
		err = errors.NewPreconditionError("credit score must be computed before applying for a loan")
	}
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}

	app := models.LoanApplication{
		BeneficiaryID: b.ID,
		LoanAmount:    amount,
		LoanPurpose:   purpose,
	}
	if err = validation.ValidateLoanApplication(app); err != nil {
		s.mu.Unlock()
		return nil, err
	}

	prev := s.state
	s.state = StateSubmitting
	s.mu.Unlock()

	record, err = s.api.SubmitLoanApplication(ctx, app)
	if err != nil {
		s.mu.Lock()
		s.state = prev
		s.mu.Unlock()
		return nil, err
	}

	if record.Status == models.LoanStatusRejected {
		s.mu.Lock()
		s.state = prev
		s.mu.Unlock()
		rejErr := errors.NewRejectedError(fmt.Sprintf("application %s rejected by the lending service", record.ID))
		rejErr.Metadata = map[string]interface{}{"application": record}
		return nil, rejErr
	}

	fresh, refreshErr := s.api.GetBeneficiary(ctx, s.beneficiaryID)

	s.mu.Lock()
	defer s.mu.Unlock()
	if refreshErr != nil {
		s.logger.Warn("snapshot refresh after submission failed", map[string]interface{}{
			"errorCode": string(errors.CodeOf(refreshErr)),
		})
	} else {
		s.store.ApplySnapshot(fresh)
	}
	s.state = StateSubmitted
	return record, nil
}

// ListLoans returns the submitted applications as the service reports
// them. Read-only; no state transition.
func (s *Session) ListLoans(ctx context.Context) (loans []models.LoanApplicationRecord, err error) {
	start := time.Now()
	defer func() { s.observe(opListLoans, start, err) }()
	loans, err = s.api.ListLoans(ctx)
	return loans, err
}

// inFlightLocked rejects a new operation while a remote mutating call is
// pending. At most one score computation and one submission may be in
// flight per session. Callers hold s.mu.
func (s *Session) inFlightLocked() error {
	switch {
	case s.state == StateScoring:
		return errors.NewInFlightError(opComputeScore)
	case s.state == StateSubmitting:
		return errors.NewInFlightError(opSubmitApplication)
	case s.updating:
		return errors.NewInFlightError(opUpdateConsumption)
	}
	return nil
}

// readyLocked requires a loaded session in a Ready sub-state with no
// pending mutating call. Callers hold s.mu.
func (s *Session) readyLocked() error {
	if err := s.inFlightLocked(); err != nil {
		return err
	}
	switch s.state {
	case StateLoading, StateError:
		return errors.NewPreconditionError("session is not loaded; call Load first")
	}
	return nil
}

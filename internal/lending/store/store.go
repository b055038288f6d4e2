// internal/lending/store/store.go

// Package store holds the in-memory source of truth for one beneficiary
// during a workflow session. It is populated and refreshed exclusively by
// the workflow controller from server snapshots; it never talks to the
// remote service itself.
package store

import (
	"sync"

	"lendscore/internal/models"
)

// RecordStore is the per-session beneficiary record. Snapshots replace
// the record wholesale; there is no partial merge, so the client can
// never diverge from server-derived fields such as score or risk band.
type RecordStore struct {
	mu     sync.RWMutex
	record *models.Beneficiary
}

func New() *RecordStore {
	return &RecordStore{}
}

// ApplySnapshot replaces the stored record with a freshly fetched server
// snapshot.
func (s *RecordStore) ApplySnapshot(b *models.Beneficiary) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if b == nil {
		s.record = nil
		return
	}
	cp := copyBeneficiary(b)
	s.record = &cp
}

// Current returns a copy of the stored beneficiary, or nil before the
// first successful load.
func (s *RecordStore) Current() *models.Beneficiary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.record == nil {
		return nil
	}
	cp := copyBeneficiary(s.record)
	return &cp
}

// CurrentConsumption returns the consumption sub-record for display and
// editing. Missing fields stay unset; they are never coerced to zero.
func (s *RecordStore) CurrentConsumption() models.ConsumptionData {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.record == nil || s.record.ConsumptionData == nil {
		return models.ConsumptionData{}
	}
	return copyConsumption(*s.record.ConsumptionData)
}

// HasScore reports whether the stored snapshot carries a credit score.
func (s *RecordStore) HasScore() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.record.HasScore()
}

// Clear drops the stored record, e.g. when a session ends.
func (s *RecordStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record = nil
}

func copyBeneficiary(b *models.Beneficiary) models.Beneficiary {
	cp := *b

	if b.ConsumptionData != nil {
		cd := copyConsumption(*b.ConsumptionData)
		cp.ConsumptionData = &cd
	}
	if b.CreditScore != nil {
		v := *b.CreditScore
		cp.CreditScore = &v
	}
	if b.RiskBand != nil {
		v := *b.RiskBand
		cp.RiskBand = &v
	}
	if b.IncomeCategory != nil {
		v := *b.IncomeCategory
		cp.IncomeCategory = &v
	}
	if b.RepaymentHistory != nil {
		cp.RepaymentHistory = make([]models.RepaymentRecord, len(b.RepaymentHistory))
		copy(cp.RepaymentHistory, b.RepaymentHistory)
	}
	return cp
}

func copyConsumption(c models.ConsumptionData) models.ConsumptionData {
	cp := models.ConsumptionData{}
	if c.ElectricityKWh != nil {
		v := *c.ElectricityKWh
		cp.ElectricityKWh = &v
	}
	if c.MobileRechargeMonthly != nil {
		v := *c.MobileRechargeMonthly
		cp.MobileRechargeMonthly = &v
	}
	if c.UtilityBillAvg != nil {
		v := *c.UtilityBillAvg
		cp.UtilityBillAvg = &v
	}
	return cp
}

// internal/models/loan.go
package models

import "time"

// Loan application statuses owned by the lending service.
const (
	LoanStatusPending  = "pending"
	LoanStatusApproved = "approved"
	LoanStatusRejected = "rejected"
)

// LoanApplication is the submission payload. The resulting identity and
// status belong to the remote system.
type LoanApplication struct {
	BeneficiaryID string  `json:"beneficiary_id"`
	LoanAmount    float64 `json:"loan_amount"`
	LoanPurpose   string  `json:"loan_purpose"`
}

// LoanApplicationRecord is a submitted application as the service reports
// it back.
type LoanApplicationRecord struct {
	ID            string     `json:"id"`
	BeneficiaryID string     `json:"beneficiary_id"`
	LoanAmount    float64    `json:"loan_amount"`
	LoanPurpose   string     `json:"loan_purpose"`
	Status        string     `json:"status"`
	CreatedAt     time.Time  `json:"created_at"`
	ProcessedAt   *time.Time `json:"processed_at,omitempty"`
}

// internal/lending/api/client.go
package api

import (
	"context"

	"lendscore/internal/models"
)

// Client is the remote lending-service contract consumed by the workflow
// core. Implementations are transport-specific; the workflow only depends
// on this interface.
type Client interface {
	// GetBeneficiary fetches the current server snapshot of one beneficiary.
	GetBeneficiary(ctx context.Context, id string) (*models.Beneficiary, error)

	// ListBeneficiaries returns all beneficiaries visible to the operator.
	ListBeneficiaries(ctx context.Context) ([]models.Beneficiary, error)

	// CreateBeneficiary registers a new beneficiary profile.
	CreateBeneficiary(ctx context.Context, input models.BeneficiaryCreate) (*models.Beneficiary, error)

	// UpdateConsumption saves consumption data and returns a fresh
	// beneficiary snapshot. Absent fields are omitted from the payload,
	// never coerced to zero.
	UpdateConsumption(ctx context.Context, id string, data models.ConsumptionData) (*models.Beneficiary, error)

	// ComputeScore triggers the remote score computation.
	ComputeScore(ctx context.Context, id string) (*models.ScoreResult, error)

	// SubmitLoanApplication submits a loan application. The returned record
	// carries the service's business decision in its status.
	SubmitLoanApplication(ctx context.Context, app models.LoanApplication) (*models.LoanApplicationRecord, error)

	// ListLoans returns the submitted loan applications, newest first as
	// the service orders them.
	ListLoans(ctx context.Context) ([]models.LoanApplicationRecord, error)

	// GetStats returns aggregate platform statistics.
	GetStats(ctx context.Context) (*models.PlatformStats, error)
}

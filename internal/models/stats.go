// internal/models/stats.go
package models

// PlatformStats is the aggregate reporting view exposed by the lending
// service.
type PlatformStats struct {
	TotalBeneficiaries int            `json:"total_beneficiaries"`
	TotalApplications  int            `json:"total_applications"`
	ApprovedLoans      int            `json:"approved_loans"`
	ApprovalRate       float64        `json:"approval_rate"`
	RiskDistribution   map[string]int `json:"risk_distribution"`
}

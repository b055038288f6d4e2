// internal/models/score.go
package models

// ScoreResult is the outcome of one remote score computation. It is held
// by the workflow session for display; only the score value itself is
// persisted on the beneficiary, and that happens server-side.
type ScoreResult struct {
	CreditScore     float64  `json:"credit_score"`
	RiskBand        string   `json:"risk_band"`
	IncomeCategory  string   `json:"income_category"`
	Explanation     string   `json:"explanation"`
	Recommendations []string `json:"recommendations"`
}

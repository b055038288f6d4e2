// internal/models/beneficiary.go
package models

import "time"

// Repayment record statuses as reported by the lending service.
const (
	RepaymentOnTime    = "on_time"
	RepaymentDelayed   = "delayed"
	RepaymentDefaulted = "defaulted"
)

// Beneficiary is the authoritative server snapshot of one loan applicant.
// Score, risk band and income category are server-derived; the client
// never computes or patches them locally.
type Beneficiary struct {
	ID               string            `json:"id"`
	Name             string            `json:"name"`
	Age              int               `json:"age"`
	BusinessType     string            `json:"business_type"`
	LoanAmount       float64           `json:"loan_amount"`
	LoanTenureMonths int               `json:"loan_tenure_months"`
	RepaymentHistory []RepaymentRecord `json:"repayment_history"`
	ConsumptionData  *ConsumptionData  `json:"consumption_data,omitempty"`
	CreditScore      *float64          `json:"credit_score,omitempty"`
	RiskBand         *string           `json:"risk_band,omitempty"`
	IncomeCategory   *string           `json:"income_category,omitempty"`
	CreatedAt        time.Time         `json:"created_at"`
}

// HasScore reports whether a credit score has been computed for this
// snapshot.
func (b *Beneficiary) HasScore() bool {
	return b != nil && b.CreditScore != nil
}

// ConsumptionData holds alternative-data consumption signals. Every field
// is independently optional; a nil pointer means "not recorded", which is
// distinct from a measured zero.
type ConsumptionData struct {
	ElectricityKWh        *float64 `json:"electricity_kwh,omitempty"`
	MobileRechargeMonthly *float64 `json:"mobile_recharge_monthly,omitempty"`
	UtilityBillAvg        *float64 `json:"utility_bill_avg,omitempty"`
}

// IsEmpty reports whether no consumption signal is recorded at all.
func (c ConsumptionData) IsEmpty() bool {
	return c.ElectricityKWh == nil && c.MobileRechargeMonthly == nil && c.UtilityBillAvg == nil
}

// RepaymentRecord is one historical repayment outcome. Read-only from the
// client's perspective.
type RepaymentRecord struct {
	LoanID      string    `json:"loan_id"`
	AmountPaid  float64   `json:"amount_paid"`
	PaymentDate time.Time `json:"payment_date"`
	Status      string    `json:"status"`
}

// BeneficiaryCreate is the payload for registering a new beneficiary.
type BeneficiaryCreate struct {
	Name             string           `json:"name"`
	Age              int              `json:"age"`
	BusinessType     string           `json:"business_type"`
	LoanAmount       float64          `json:"loan_amount"`
	LoanTenureMonths int              `json:"loan_tenure_months"`
	ConsumptionData  *ConsumptionData `json:"consumption_data,omitempty"`
}

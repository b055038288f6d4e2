// internal/lending/presentation/presentation_test.go
package presentation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func str(v string) *string { return &v }

func f64(v float64) *float64 { return &v }

func TestMapRisk(t *testing.T) {
	tests := []struct {
		name  string
		label *string
		want  RiskCategory
	}{
		{name: "absent label", label: nil, want: RiskUnknown},
		{name: "low risk band", label: str("Low Risk - High Need"), want: RiskLow},
		{name: "medium risk band", label: str("Medium Risk - Moderate Need"), want: RiskMedium},
		{name: "high risk band", label: str("High Risk - Volatile History"), want: RiskHigh},
		{name: "case insensitive", label: str("LOW RISK"), want: RiskLow},
		{name: "unrecognized label", label: str("Platinum Tier"), want: RiskUnknown},
		{name: "empty string", label: str(""), want: RiskUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MapRisk(tt.label))
		})
	}
}

func TestMapRepaymentStatus(t *testing.T) {
	tests := []struct {
		name   string
		status string
		want   RepaymentCategory
	}{
		{name: "on time", status: "on_time", want: RepaymentGood},
		{name: "delayed", status: "delayed", want: RepaymentLate},
		{name: "defaulted", status: "defaulted", want: RepaymentDefault},
		{name: "legacy missed maps to default", status: "missed", want: RepaymentDefault},
		{name: "mixed case with spaces", status: "  Defaulted ", want: RepaymentDefault},
		{name: "unknown status never renders clean", status: "something_else", want: RepaymentLate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MapRepaymentStatus(tt.status))
		})
	}
}

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		name   string
		amount float64
		want   string
	}{
		{name: "under a thousand", amount: 500, want: "₹500.00"},
		{name: "thousands", amount: 50000, want: "₹50,000.00"},
		{name: "lakhs", amount: 150000.5, want: "₹1,50,000.50"},
		{name: "crores", amount: 12345678.9, want: "₹1,23,45,678.90"},
		{name: "zero", amount: 0, want: "₹0.00"},
		{name: "negative", amount: -2500, want: "-₹2,500.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatCurrency(tt.amount))
		})
	}
}

func TestFormatScore(t *testing.T) {
	assert.Equal(t, "not computed", FormatScore(nil))
	assert.Equal(t, "72.0 / 100", FormatScore(f64(72)))
	assert.Equal(t, "68.5 / 100", FormatScore(f64(68.5)))
}

func TestFormatOptionalAmount(t *testing.T) {
	assert.Equal(t, "not recorded", FormatOptionalAmount(nil))
	assert.Equal(t, "0.00", FormatOptionalAmount(f64(0)), "a measured zero is not an absence")
	assert.Equal(t, "120.00", FormatOptionalAmount(f64(120)))
}

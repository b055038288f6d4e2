// internal/lending/presentation/presentation.go

// Package presentation maps server-issued labels to display categories
// and formats values for terminal output. Everything here is pure and
// total: any input string, including garbage, yields a category.
package presentation

import (
	"strconv"
	"strings"

	"lendscore/internal/models"
)

// RiskCategory is the display emphasis class for a risk band.
type RiskCategory string

const (
	RiskLow     RiskCategory = "low"
	RiskMedium  RiskCategory = "medium"
	RiskHigh    RiskCategory = "high"
	RiskUnknown RiskCategory = "unknown"
)

// RepaymentCategory is the display class for a repayment record status.
type RepaymentCategory string

const (
	RepaymentGood    RepaymentCategory = "on_time"
	RepaymentLate    RepaymentCategory = "delayed"
	RepaymentDefault RepaymentCategory = "defaulted"
)

// MapRisk categorizes a risk-band label by substring, case-insensitively.
// The service emits labels like "Low Risk - High Need"; an absent label
// maps to unknown.
func MapRisk(label *string) RiskCategory {
	if label == nil {
		return RiskUnknown
	}
	normalized := strings.ToLower(*label)
	switch {
	case strings.Contains(normalized, "low risk"):
		return RiskLow
	case strings.Contains(normalized, "medium risk"):
		return RiskMedium
	case strings.Contains(normalized, "high risk"):
		return RiskHigh
	default:
		return RiskUnknown
	}
}

// MapRepaymentStatus categorizes a repayment record status. Older service
// data uses "missed" where current data says "defaulted"; both land in
// the default category. Anything unrecognized is treated as delayed so it
// never renders as clean.
func MapRepaymentStatus(status string) RepaymentCategory {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case models.RepaymentOnTime:
		return RepaymentGood
	case models.RepaymentDefaulted, "missed":
		return RepaymentDefault
	default:
		return RepaymentLate
	}
}

// FormatCurrency renders an amount in rupees with Indian digit grouping
// (e.g. ₹1,50,000.50).
func FormatCurrency(amount float64) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}

	whole := strconv.FormatFloat(amount, 'f', 2, 64)
	intPart, fracPart, _ := strings.Cut(whole, ".")

	grouped := groupIndian(intPart)
	out := "₹" + grouped + "." + fracPart
	if negative {
		return "-" + out
	}
	return out
}

// groupIndian inserts Indian-system separators: last three digits, then
// groups of two.
func groupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	head := digits[:len(digits)-3]
	tail := digits[len(digits)-3:]

	var parts []string
	for len(head) > 2 {
		parts = append([]string{head[len(head)-2:]}, parts...)
		head = head[:len(head)-2]
	}
	parts = append([]string{head}, parts...)
	return strings.Join(parts, ",") + "," + tail
}

// FormatScore renders a credit score out of 100, "not computed" when
// absent.
func FormatScore(score *float64) string {
	if score == nil {
		return "not computed"
	}
	return strconv.FormatFloat(*score, 'f', 1, 64) + " / 100"
}

// FormatOptionalAmount renders an optional numeric signal, "not recorded"
// when unset. Zero is a measurement, not an absence.
func FormatOptionalAmount(v *float64) string {
	if v == nil {
		return "not recorded"
	}
	return strconv.FormatFloat(*v, 'f', 2, 64)
}

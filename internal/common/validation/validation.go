// internal/common/validation/validation.go
package validation

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"lendscore/internal/common/errors"
	"lendscore/internal/models"
)

// Outbound payload schemas. Checked client-side before any network call so
// malformed input surfaces as VALIDATION_FAILED without a round trip.

var consumptionSchema = map[string]interface{}{
	"type": "object",
	"properties": map[string]interface{}{
		"electricity_kwh": map[string]interface{}{
			"type":    "number",
			"minimum": 0,
		},
		"mobile_recharge_monthly": map[string]interface{}{
			"type":    "number",
			"minimum": 0,
		},
		"utility_bill_avg": map[string]interface{}{
			"type":    "number",
			"minimum": 0,
		},
	},
	"additionalProperties": false,
}

var loanApplicationSchema = map[string]interface{}{
	"type": "object",
	"properties": map[string]interface{}{
		"beneficiary_id": map[string]interface{}{
			"type":      "string",
			"minLength": 1,
		},
		"loan_amount": map[string]interface{}{
			"type":             "number",
			"minimum":          0,
			"exclusiveMinimum": true,
		},
		"loan_purpose": map[string]interface{}{
			"type":      "string",
			"minLength": 1,
		},
	},
	"required":             []interface{}{"beneficiary_id", "loan_amount", "loan_purpose"},
	"additionalProperties": false,
}

// ValidateConsumption checks a consumption update payload. Absent fields
// are valid; present fields must be non-negative numbers.
func ValidateConsumption(data models.ConsumptionData) error {
	return validate(consumptionSchema, data)
}

// ValidateLoanApplication checks a loan application payload.
func ValidateLoanApplication(app models.LoanApplication) error {
	return validate(loanApplicationSchema, app)
}

func validate(schema map[string]interface{}, document interface{}) error {
	schemaLoader := gojsonschema.NewGoLoader(schema)
	documentLoader := gojsonschema.NewGoLoader(document)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("schema validation error: %w", err)
	}

	if result.Valid() {
		return nil
	}

	details := make([]string, 0, len(result.Errors()))
	for _, fieldErr := range result.Errors() {
		details = append(details, fmt.Sprintf("%s: %s", fieldErr.Field(), fieldErr.Description()))
	}
	return errors.NewValidationError(strings.Join(details, "; "))
}

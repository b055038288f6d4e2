// internal/common/validation/validation_test.go
package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lendscore/internal/common/errors"
	"lendscore/internal/models"
)

func f64(v float64) *float64 { return &v }

func TestValidateConsumption(t *testing.T) {
	tests := []struct {
		name    string
		data    models.ConsumptionData
		wantErr bool
	}{
		{name: "all fields absent is valid", data: models.ConsumptionData{}, wantErr: false},
		{name: "single field", data: models.ConsumptionData{ElectricityKWh: f64(120)}, wantErr: false},
		{name: "measured zero is valid", data: models.ConsumptionData{MobileRechargeMonthly: f64(0)}, wantErr: false},
		{
			name: "all fields set",
			data: models.ConsumptionData{
				ElectricityKWh:        f64(120),
				MobileRechargeMonthly: f64(300),
				UtilityBillAvg:        f64(1500),
			},
			wantErr: false,
		},
		{name: "negative electricity", data: models.ConsumptionData{ElectricityKWh: f64(-5)}, wantErr: true},
		{name: "negative utility bill", data: models.ConsumptionData{UtilityBillAvg: f64(-0.01)}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateConsumption(tt.data)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, errors.ErrCodeValidation, errors.CodeOf(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateLoanApplication(t *testing.T) {
	valid := models.LoanApplication{
		BeneficiaryID: "ben-1",
		LoanAmount:    50000,
		LoanPurpose:   "working capital",
	}

	tests := []struct {
		name    string
		mutate  func(*models.LoanApplication)
		wantErr bool
	}{
		{name: "valid application", mutate: func(a *models.LoanApplication) {}, wantErr: false},
		{name: "missing beneficiary id", mutate: func(a *models.LoanApplication) { a.BeneficiaryID = "" }, wantErr: true},
		{name: "missing purpose", mutate: func(a *models.LoanApplication) { a.LoanPurpose = "" }, wantErr: true},
		{name: "zero amount", mutate: func(a *models.LoanApplication) { a.LoanAmount = 0 }, wantErr: true},
		{name: "negative amount", mutate: func(a *models.LoanApplication) { a.LoanAmount = -100 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := valid
			tt.mutate(&app)

			err := ValidateLoanApplication(app)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, errors.ErrCodeValidation, errors.CodeOf(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidationErrorNamesField(t *testing.T) {
	err := ValidateConsumption(models.ConsumptionData{ElectricityKWh: f64(-5)})
	require.Error(t, err)

	stdErr := errors.Normalize(err)
	assert.Contains(t, stdErr.Details, "electricity_kwh")
}

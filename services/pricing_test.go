package services

import (
	"testing"

	"care-pay/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetPricingRequiresPayeeAccount(t *testing.T) {
	db := setupTestDB(t)

	// no accounts at all: rejected for any fee values
	for _, fees := range [][2]int64{{1500, 2500}, {100, 100}, {50000, 50000}} {
		err := SetPricing(db, "dr-1", fees[0], fees[1])
		assert.ErrorIs(t, err, ErrNoPayeeAccount)
	}

	require.NoError(t, AddAccount(db, validBankAccount("dr-1", models.RoleDoctor)))
	assert.NoError(t, SetPricing(db, "dr-1", 1500, 2500))
}

func TestSetPricingBounds(t *testing.T) {
	db := setupTestDB(t)
	require.NoError(t, AddAccount(db, validBankAccount("dr-1", models.RoleDoctor)))

	tests := []struct {
		name      string
		online    int64
		inPerson  int64
		wantField string
	}{
		{"online below minimum", 99, 2500, "online_fee"},
		{"online above maximum", 50001, 2500, "online_fee"},
		{"in-person below minimum", 1500, 0, "in_person_fee"},
		{"in-person above maximum", 1500, 60000, "in_person_fee"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := SetPricing(db, "dr-1", tt.online, tt.inPerson)
			var validation *ValidationError
			require.ErrorAs(t, err, &validation)
			assert.Equal(t, tt.wantField, validation.Field)
		})
	}

	// bounds are inclusive
	assert.NoError(t, SetPricing(db, "dr-1", 100, 50000))
}

func TestPricingUpdateInPlace(t *testing.T) {
	db := setupTestDB(t)
	require.NoError(t, AddAccount(db, validBankAccount("dr-1", models.RoleDoctor)))

	require.NoError(t, SetPricing(db, "dr-1", 1500, 2500))
	require.NoError(t, SetPricing(db, "dr-1", 2000, 3000))

	pricing, err := GetPricing(db, "dr-1")
	require.NoError(t, err)
	assert.Equal(t, int64(2000), pricing.OnlineFee)
	assert.Equal(t, int64(3000), pricing.InPersonFee)

	var count int64
	db.Model(&models.DoctorPricing{}).Where("doctor_id = ?", "dr-1").Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestGetPricingUnsetIsZero(t *testing.T) {
	db := setupTestDB(t)

	pricing, err := GetPricing(db, "dr-unknown")
	require.NoError(t, err)
	assert.Zero(t, pricing.OnlineFee)
	assert.Zero(t, pricing.InPersonFee)
}

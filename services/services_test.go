package services

import (
	"fmt"
	"testing"

	"care-pay/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens a named in-memory sqlite database so every connection in
// gorm's pool sees the same data.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_busy_timeout=5000", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.Appointment{},
		&models.PayeeAccount{},
		&models.DoctorPricing{},
		&models.PaymentRequest{},
		&models.Transaction{},
		&models.Wallet{},
	)
	require.NoError(t, err)
	return db
}

func validBankAccount(ownerID, ownerRole string) *models.PayeeAccount {
	return &models.PayeeAccount{
		OwnerID:       ownerID,
		OwnerRole:     ownerRole,
		Kind:          models.AccountKindBank,
		BankName:      "Meezan Bank",
		AccountTitle:  "Ayesha Khan",
		AccountNumber: "1234567890",
		IBAN:          "PK12XXXX0000123456789012",
	}
}

func validWalletAccount(ownerID, ownerRole string) *models.PayeeAccount {
	return &models.PayeeAccount{
		OwnerID:      ownerID,
		OwnerRole:    ownerRole,
		Kind:         models.AccountKindWallet,
		ProviderName: "JazzCash",
		PhoneNumber:  "03001234567",
	}
}

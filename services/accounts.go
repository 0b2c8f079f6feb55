package services

import (
	"strings"
	"sync"

	"care-pay/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Per-owner locks serialize the capacity check against concurrent adds from
// the same owner (two browser tabs). The service runs as a single backend
// process, so an in-process lock is sufficient.
var ownerLocks sync.Map

func lockOwner(ownerID string) *sync.Mutex {
	mu, _ := ownerLocks.LoadOrStore(ownerID, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

// AddAccount validates and stores a payee account for a doctor or patient.
// Validation is field by field and stops at the first failing field. The
// 5-account cap is checked and the row inserted under the owner's lock.
func AddAccount(db *gorm.DB, account *models.PayeeAccount) error {
	switch account.Kind {
	case models.AccountKindBank:
		if err := validateBankAccount(account); err != nil {
			return err
		}
	case models.AccountKindWallet:
		if err := validateMobileWallet(account); err != nil {
			return err
		}
	default:
		return invalid("kind", "account type must be bank or mobile-wallet")
	}

	if account.OwnerRole != models.RoleDoctor && account.OwnerRole != models.RolePatient {
		return invalid("owner_role", "owner role must be doctor or patient")
	}

	mu := lockOwner(account.OwnerID)
	mu.Lock()
	defer mu.Unlock()

	return db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.PayeeAccount{}).
			Where("owner_id = ?", account.OwnerID).
			Count(&count).Error; err != nil {
			return err
		}
		if count >= models.MaxAccountsPerOwner {
			return ErrCapacityExceeded
		}

		if account.IsDefault {
			if err := tx.Model(&models.PayeeAccount{}).
				Where("owner_id = ?", account.OwnerID).
				Update("is_default", false).Error; err != nil {
				return err
			}
		}

		account.AccountID = uuid.New().String()
		return tx.Create(account).Error
	})
}

// RemoveAccount deletes one of the owner's accounts. Edits are modeled as a
// remove followed by a fresh add.
func RemoveAccount(db *gorm.DB, accountID, ownerID string) error {
	result := db.Where("account_id = ? AND owner_id = ?", accountID, ownerID).
		Delete(&models.PayeeAccount{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListAccounts returns all payee accounts held by the owner, oldest first.
func ListAccounts(db *gorm.DB, ownerID string) ([]models.PayeeAccount, error) {
	var accounts []models.PayeeAccount
	err := db.Where("owner_id = ?", ownerID).
		Order("created_at asc").
		Find(&accounts).Error
	return accounts, err
}

func countAccounts(db *gorm.DB, ownerID string) (int64, error) {
	var count int64
	err := db.Model(&models.PayeeAccount{}).
		Where("owner_id = ?", ownerID).
		Count(&count).Error
	return count, err
}

func validateBankAccount(account *models.PayeeAccount) error {
	if account.BankName == "" {
		return invalid("bank_name", "please select a bank")
	}
	if !contains(models.AllowedBanks, account.BankName) {
		return invalid("bank_name", "bank is not supported")
	}
	if account.AccountTitle == "" {
		return invalid("account_title", "please enter account title")
	}
	if len(account.AccountTitle) < 3 || len(account.AccountTitle) > 100 {
		return invalid("account_title", "account title must be 3 to 100 characters long")
	}
	if account.AccountNumber == "" {
		return invalid("account_number", "please enter account number")
	}
	if !isDigits(account.AccountNumber) || len(account.AccountNumber) < 10 || len(account.AccountNumber) > 20 {
		return invalid("account_number", "account number must be 10 to 20 digits")
	}
	if account.IBAN == "" {
		return invalid("iban", "please enter IBAN")
	}
	if len(account.IBAN) != 24 {
		return invalid("iban", "IBAN must be exactly 24 characters")
	}
	if !strings.HasPrefix(account.IBAN, "PK") {
		return invalid("iban", `IBAN must start with "PK" for Pakistan`)
	}
	return nil
}

func validateMobileWallet(account *models.PayeeAccount) error {
	if account.ProviderName == "" {
		return invalid("provider_name", "please select a wallet provider")
	}
	if !contains(models.AllowedWallets, account.ProviderName) {
		return invalid("provider_name", "wallet provider is not supported")
	}
	if account.PhoneNumber == "" {
		return invalid("phone_number", "please enter phone number")
	}
	if !isDigits(account.PhoneNumber) || len(account.PhoneNumber) != 11 {
		return invalid("phone_number", "phone number must be exactly 11 digits")
	}
	if !strings.HasPrefix(account.PhoneNumber, "03") {
		return invalid("phone_number", `phone number must start with "03"`)
	}
	return nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func contains(list []string, value string) bool {
	for _, v := range list {
		if v == value {
			return true
		}
	}
	return false
}

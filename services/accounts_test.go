package services

import (
	"fmt"
	"sync"
	"testing"

	"care-pay/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddBankAccount(t *testing.T) {
	db := setupTestDB(t)

	account := validBankAccount("dr-1", models.RoleDoctor)
	require.NoError(t, AddAccount(db, account))
	assert.NotEmpty(t, account.AccountID)

	accounts, err := ListAccounts(db, "dr-1")
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.Equal(t, "Meezan Bank", accounts[0].BankName)
}

func TestBankAccountValidationOrder(t *testing.T) {
	db := setupTestDB(t)

	tests := []struct {
		name      string
		mutate    func(*models.PayeeAccount)
		wantField string
	}{
		{"missing bank name", func(a *models.PayeeAccount) { a.BankName = "" }, "bank_name"},
		{"unknown bank", func(a *models.PayeeAccount) { a.BankName = "Gringotts" }, "bank_name"},
		{"short title", func(a *models.PayeeAccount) { a.AccountTitle = "ab" }, "account_title"},
		{"short account number", func(a *models.PayeeAccount) { a.AccountNumber = "123456789" }, "account_number"},
		{"non digit account number", func(a *models.PayeeAccount) { a.AccountNumber = "12345abcde" }, "account_number"},
		{"iban wrong length", func(a *models.PayeeAccount) { a.IBAN = "PK1XXXX000012345678901" }, "iban"},
		{"iban wrong prefix", func(a *models.PayeeAccount) { a.IBAN = "DE12XXXX0000123456789012" }, "iban"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			account := validBankAccount("dr-1", models.RoleDoctor)
			tt.mutate(account)

			err := AddAccount(db, account)
			var validation *ValidationError
			require.ErrorAs(t, err, &validation)
			assert.Equal(t, tt.wantField, validation.Field)
		})
	}

	// a bank that fails several fields reports only the first one
	account := validBankAccount("dr-1", models.RoleDoctor)
	account.BankName = ""
	account.AccountNumber = "bad"
	err := AddAccount(db, account)
	var validation *ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Equal(t, "bank_name", validation.Field)
}

func TestMobileWalletValidation(t *testing.T) {
	db := setupTestDB(t)

	account := validWalletAccount("pt-1", models.RolePatient)
	require.NoError(t, AddAccount(db, account))

	tests := []struct {
		name      string
		mutate    func(*models.PayeeAccount)
		wantField string
	}{
		{"missing provider", func(a *models.PayeeAccount) { a.ProviderName = "" }, "provider_name"},
		{"unknown provider", func(a *models.PayeeAccount) { a.ProviderName = "CashApp" }, "provider_name"},
		{"wrong prefix", func(a *models.PayeeAccount) { a.PhoneNumber = "13001234567" }, "phone_number"},
		{"too short", func(a *models.PayeeAccount) { a.PhoneNumber = "0300123456" }, "phone_number"},
		{"non digits", func(a *models.PayeeAccount) { a.PhoneNumber = "03001abc567" }, "phone_number"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wallet := validWalletAccount("pt-1", models.RolePatient)
			tt.mutate(wallet)

			err := AddAccount(db, wallet)
			var validation *ValidationError
			require.ErrorAs(t, err, &validation)
			assert.Equal(t, tt.wantField, validation.Field)
		})
	}
}

func TestAccountCapacity(t *testing.T) {
	db := setupTestDB(t)

	for i := 0; i < models.MaxAccountsPerOwner; i++ {
		account := validBankAccount("dr-cap", models.RoleDoctor)
		account.AccountNumber = fmt.Sprintf("123456789%d", i)
		require.NoError(t, AddAccount(db, account))
	}

	err := AddAccount(db, validBankAccount("dr-cap", models.RoleDoctor))
	assert.ErrorIs(t, err, ErrCapacityExceeded)

	// other owners are unaffected by a full neighbour
	require.NoError(t, AddAccount(db, validBankAccount("dr-other", models.RoleDoctor)))
}

func TestAccountCapacitySurvivesConcurrentAdds(t *testing.T) {
	db := setupTestDB(t)

	const attempts = 12
	var wg sync.WaitGroup
	errs := make(chan error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- AddAccount(db, validBankAccount("dr-race", models.RoleDoctor))
		}()
	}
	wg.Wait()
	close(errs)

	var capacityErrs int
	for err := range errs {
		if err != nil {
			assert.ErrorIs(t, err, ErrCapacityExceeded)
			capacityErrs++
		}
	}

	accounts, err := ListAccounts(db, "dr-race")
	require.NoError(t, err)
	assert.LessOrEqual(t, len(accounts), models.MaxAccountsPerOwner)
	assert.Equal(t, attempts-len(accounts), capacityErrs)
}

func TestRemoveAccount(t *testing.T) {
	db := setupTestDB(t)

	account := validBankAccount("dr-1", models.RoleDoctor)
	require.NoError(t, AddAccount(db, account))

	require.NoError(t, RemoveAccount(db, account.AccountID, "dr-1"))
	assert.ErrorIs(t, RemoveAccount(db, account.AccountID, "dr-1"), ErrNotFound)

	// an owner cannot remove someone else's account
	other := validBankAccount("dr-2", models.RoleDoctor)
	require.NoError(t, AddAccount(db, other))
	assert.ErrorIs(t, RemoveAccount(db, other.AccountID, "dr-1"), ErrNotFound)
}

func TestDefaultFlagMovesToNewAccount(t *testing.T) {
	db := setupTestDB(t)

	first := validBankAccount("dr-1", models.RoleDoctor)
	first.IsDefault = true
	require.NoError(t, AddAccount(db, first))

	second := validWalletAccount("dr-1", models.RoleDoctor)
	second.IsDefault = true
	require.NoError(t, AddAccount(db, second))

	accounts, err := ListAccounts(db, "dr-1")
	require.NoError(t, err)
	require.Len(t, accounts, 2)

	var defaults int
	for _, a := range accounts {
		if a.IsDefault {
			defaults++
			assert.Equal(t, second.AccountID, a.AccountID)
		}
	}
	assert.Equal(t, 1, defaults)
}

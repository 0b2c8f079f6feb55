package models

import "time"

const (
	RoleDoctor  = "doctor"
	RolePatient = "patient"

	AccountKindBank   = "bank"
	AccountKindWallet = "mobile-wallet"

	// MaxAccountsPerOwner caps the number of payee accounts an owner may hold.
	MaxAccountsPerOwner = 5
)

// AllowedBanks lists the banks a bank account may be registered under.
var AllowedBanks = []string{
	"HBL (Habib Bank Limited)",
	"UBL (United Bank Limited)",
	"MCB (Muslim Commercial Bank)",
	"NBP (National Bank of Pakistan)",
	"Allied Bank Limited",
	"Bank Alfalah",
	"Bank Al-Habib",
	"Meezan Bank",
	"Faysal Bank",
	"Standard Chartered Bank Pakistan",
	"JS Bank",
	"Askari Bank",
	"Soneri Bank",
	"Silk Bank",
	"Bank of Punjab",
}

// AllowedWallets lists the supported mobile wallet providers.
var AllowedWallets = []string{"JazzCash", "Easypaisa", "SadaPay", "NayaPay"}

// PayeeAccount is a bank account or mobile wallet owned by a doctor or
// patient. Accounts are never edited in place; an edit is a delete followed
// by a fresh add.
type PayeeAccount struct {
	AccountID     string    `json:"account_id" gorm:"primaryKey"`
	OwnerID       string    `json:"owner_id" gorm:"not null;index"`
	OwnerRole     string    `json:"owner_role" gorm:"not null"`
	Kind          string    `json:"kind" gorm:"not null"`
	BankName      string    `json:"bank_name"`
	AccountTitle  string    `json:"account_title"`
	AccountNumber string    `json:"account_number"`
	IBAN          string    `json:"iban"`
	ProviderName  string    `json:"provider_name"`
	PhoneNumber   string    `json:"phone_number"`
	IsDefault     bool      `json:"is_default" gorm:"default:false"`
	CreatedAt     time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// Label is the human readable payment method string recorded on
// transactions paid through this account.
func (a *PayeeAccount) Label() string {
	if a.Kind == AccountKindWallet {
		return a.ProviderName + " (" + a.PhoneNumber + ")"
	}
	return a.BankName
}

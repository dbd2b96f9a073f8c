package domain

import (
	"time"
)

// Account is a marketplace subaccount that can receive splits.
type Account struct {
	ID        string
	Name      string
	Email     string
	CpfCnpj   string
	WalletID  string // empty until the provider approves the subaccount
	CreatedAt time.Time
}

// HasWallet reports whether the account can be a split destination.
func (a *Account) HasWallet() bool {
	return a.WalletID != ""
}

// DisplayNamePrefixLength is how many id characters the fallback account name keeps.
const DisplayNamePrefixLength = 8

// FallbackAccountName is the name used when no signup link describes the account.
func FallbackAccountName(accountID string) string {
	prefix := []rune(accountID)
	if len(prefix) > DisplayNamePrefixLength {
		prefix = prefix[:DisplayNamePrefixLength]
	}
	return "Account " + string(prefix)
}

package domain

import (
	"strings"
	"time"
)

// SignupLink is a customer-facing link owned by an account.
type SignupLink struct {
	ID          string
	AccountID   string
	Description string
	Kind        ChargeType
	Active      bool
	UsesCount   int64
	CreatedAt   time.Time
}

// HasDescription reports whether the link can name its account.
func (l *SignupLink) HasDescription() bool {
	return strings.TrimSpace(l.Description) != ""
}

package domain

import (
	"fmt"
	"strings"
	"time"
)

// AllAccountsID is the scope marker for consolidated queries.
const AllAccountsID = "ALL_ACCOUNTS"

// DateLayout is the calendar-date format accepted in filters and emitted in reports.
const DateLayout = "2006-01-02"

// Scope selects either one account or every account.
type Scope struct {
	AccountID string
}

// AllAccounts returns the consolidated scope.
func AllAccounts() Scope {
	return Scope{AccountID: AllAccountsID}
}

// AccountScope returns a single-account scope.
func AccountScope(accountID string) Scope {
	return Scope{AccountID: accountID}
}

// IsAll reports whether the scope covers every account.
func (s Scope) IsAll() bool {
	return s.AccountID == AllAccountsID || s.AccountID == ""
}

// DateRange is an inclusive range. Nil bounds are open.
type DateRange struct {
	Start *time.Time
	End   *time.Time
}

// ParseDateRange parses YYYY-MM-DD bounds. The end bound covers its whole day.
func ParseDateRange(start, end string) (DateRange, error) {
	var r DateRange

	if s := strings.TrimSpace(start); s != "" {
		t, err := time.ParseInLocation(DateLayout, s, time.UTC)
		if err != nil {
			return DateRange{}, fmt.Errorf("%w: startDate %q", ErrInvalidDateRange, start)
		}
		r.Start = &t
	}

	if e := strings.TrimSpace(end); e != "" {
		t, err := time.ParseInLocation(DateLayout, e, time.UTC)
		if err != nil {
			return DateRange{}, fmt.Errorf("%w: endDate %q", ErrInvalidDateRange, end)
		}
		t = EndOfDay(t)
		r.End = &t
	}

	if r.Start != nil && r.End != nil && r.Start.After(*r.End) {
		return DateRange{}, fmt.Errorf("%w: startDate after endDate", ErrInvalidDateRange)
	}

	return r, nil
}

// EndOfDay returns the last representable instant of t's calendar day.
func EndOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location()).AddDate(0, 0, 1).Add(-time.Nanosecond)
}

// Contains reports whether t falls inside the range.
func (r DateRange) Contains(t time.Time) bool {
	if r.Start != nil && t.Before(*r.Start) {
		return false
	}
	if r.End != nil && t.After(*r.End) {
		return false
	}
	return true
}

// StartDate formats the start bound, or "" when open.
func (r DateRange) StartDate() string {
	if r.Start == nil {
		return ""
	}
	return r.Start.Format(DateLayout)
}

// EndDate formats the end bound, or "" when open.
func (r DateRange) EndDate() string {
	if r.End == nil {
		return ""
	}
	return r.End.Format(DateLayout)
}

// TransactionQuery selects ledger rows.
type TransactionQuery struct {
	Scope  Scope
	Range  DateRange
	Status *TransactionStatus
}

// Matches applies the query to an in-memory transaction.
// Ledger queries do the same filtering in SQL.
func (q TransactionQuery) Matches(tx *Transaction) bool {
	if !q.Scope.IsAll() && tx.AccountID != q.Scope.AccountID {
		return false
	}
	if q.Status != nil && tx.Status != *q.Status {
		return false
	}
	return q.Range.Contains(tx.CreatedAt)
}

package domain

// EnrichedTransaction is a transaction joined with its customer, charge type and account name.
// It only lives for the duration of a report request.
type EnrichedTransaction struct {
	Transaction
	Customer    Customer
	ChargeType  ChargeType
	AccountName string
}

package domain

import "errors"

var (
	// Split errors
	ErrSplitValueInvalid  = errors.New("split value must be positive")
	ErrInvalidAmount      = errors.New("amount must be positive")
	ErrInvalidPercentage  = errors.New("percentage must be greater than 0 and at most 100")
	ErrWalletNotAssigned  = errors.New("account has no wallet assigned")
	ErrInvalidDescription = errors.New("invalid charge description")
	ErrInvalidCharge      = errors.New("invalid charge request")

	// Account errors
	ErrAccountNotFound = errors.New("account not found")

	// Reconciliation errors
	ErrLedgerQueryFailed        = errors.New("ledger query failed")
	ErrRemoteGatewayUnavailable = errors.New("remote gateway unavailable")

	// Filter errors
	ErrInvalidDateRange  = errors.New("invalid date range")
	ErrInvalidStatus     = errors.New("invalid transaction status")
	ErrInvalidChargeType = errors.New("invalid charge type")
)

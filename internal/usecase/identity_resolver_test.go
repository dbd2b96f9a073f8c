package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/iho/splitledger/internal/domain"
	"github.com/iho/splitledger/internal/usecase"
	"github.com/iho/splitledger/internal/usecase/mocks"
)

func TestIdentityIndex_Resolve(t *testing.T) {
	conversions := mocks.NewMockConversionRepository(
		&domain.ConversionRecord{SubscriptionID: "sub_1", LinkAccountID: "acc-1", ChargeType: domain.ChargeTypeSingle, Customer: domain.Customer{Name: "First"}, ConvertedAt: day(1)},
		&domain.ConversionRecord{SubscriptionID: "sub_1", LinkAccountID: "acc-1", ChargeType: domain.ChargeTypeMonthly, Customer: domain.Customer{Name: "Again"}, ConvertedAt: day(2)},
		&domain.ConversionRecord{SubscriptionID: "", LinkAccountID: "acc-2", ChargeType: domain.ChargeTypeLinkCadastro, Customer: domain.Customer{Name: "Signup"}, ConvertedAt: day(3)},
	)
	resolver := usecase.NewIdentityResolver(conversions, nil, nopLogger)
	ix := resolver.Index(context.Background(), []*domain.Transaction{
		{ID: "sub_1", AccountID: "acc-2"},
		{ID: "pay_9", AccountID: "acc-3"},
	})
	assert.Equal(t, 1, conversions.Calls())

	tests := []struct {
		name     string
		tx       *domain.Transaction
		wantName string
		wantType domain.ChargeType
	}{
		{name: "exact match takes the latest record", tx: &domain.Transaction{ID: "sub_1", AccountID: "acc-2"}, wantName: "Again", wantType: domain.ChargeTypeMonthly},
		{name: "account fallback", tx: &domain.Transaction{ID: "pay_9", AccountID: "acc-2"}, wantName: "Signup", wantType: domain.ChargeTypeLinkCadastro},
		{name: "unknown", tx: &domain.Transaction{ID: "pay_9", AccountID: "acc-3"}, wantName: domain.UnknownValue, wantType: domain.ChargeTypeMonthly},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id := ix.Resolve(tt.tx)
			assert.Equal(t, tt.wantName, id.Customer.Name)
			assert.Equal(t, tt.wantType, id.ChargeType)
		})
	}
}

func TestResolveAccountName(t *testing.T) {
	assert.Equal(t, "Account abcdefgh", usecase.ResolveAccountName("abcdefghijkl", nil))
	assert.Equal(t, "Account abc", usecase.ResolveAccountName("abc", nil))

	links := []*domain.SignupLink{
		{AccountID: "a", Description: "Inactive newer", Active: false, CreatedAt: day(9)},
	}
	assert.Equal(t, "Inactive newer", usecase.ResolveAccountName("a", links), "inactive links still name the account")
}

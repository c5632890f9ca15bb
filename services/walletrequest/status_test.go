package walletrequest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeStatus(t *testing.T) {
	assert.Equal(t, StatusDeclined, NormalizeStatus("rejected"))
	assert.Equal(t, StatusDeclined, NormalizeStatus("cancelled"))
	assert.Equal(t, StatusPending, NormalizeStatus("pending"))
	assert.Equal(t, StatusSuccessful, NormalizeStatus("successful"))
}

func TestStatusTransitions(t *testing.T) {
	cases := []struct {
		from, to Status
		allowed  bool
	}{
		{StatusPending, StatusApproved, true},
		{StatusPending, StatusDeclined, true},
		{StatusPending, StatusSuccessful, false},
		{StatusApproved, StatusSuccessful, true},
		{StatusApproved, StatusDeclined, false},
		{StatusApproved, StatusPending, false},
		{StatusDeclined, StatusApproved, false},
		{StatusSuccessful, StatusApproved, false},
		{StatusSuccessful, StatusPending, false},
	}

	for _, c := range cases {
		assert.Equal(t, c.allowed, c.from.CanTransitionTo(c.to), "%s -> %s", c.from, c.to)
	}
}

func TestStatusTerminal(t *testing.T) {
	assert.False(t, StatusPending.Terminal())
	assert.False(t, StatusApproved.Terminal())
	assert.True(t, StatusDeclined.Terminal())
	assert.True(t, StatusSuccessful.Terminal())
}

func TestPaymentDetailsValidate(t *testing.T) {
	t.Run("empty method is allowed", func(t *testing.T) {
		assert.NoError(t, PaymentDetails{}.Validate())
	})

	t.Run("cash needs nothing else", func(t *testing.T) {
		assert.NoError(t, PaymentDetails{Method: PaymentMethodCash}.Validate())
	})

	t.Run("unknown method", func(t *testing.T) {
		assert.ErrorIs(t, PaymentDetails{Method: "crypto"}.Validate(), ErrInvalidMethod)
	})

	t.Run("mobile money requires provider and phone", func(t *testing.T) {
		assert.ErrorIs(t, PaymentDetails{Method: PaymentMethodMobileMoney}.Validate(), ErrMissingMethodInfo)
		assert.NoError(t, PaymentDetails{Method: PaymentMethodMobileMoney, Provider: "MTN", PhoneNumber: "0244000000"}.Validate())
	})

	t.Run("bank transfer requires bank and branch", func(t *testing.T) {
		assert.ErrorIs(t, PaymentDetails{Method: PaymentMethodBankTransfer, BankName: "GCB"}.Validate(), ErrMissingMethodInfo)
		assert.NoError(t, PaymentDetails{Method: PaymentMethodBankTransfer, BankName: "GCB", BranchName: "Tamale"}.Validate())
	})
}

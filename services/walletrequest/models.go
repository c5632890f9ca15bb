package walletrequest

import (
	"database/sql"

	"github.com/shopspring/decimal"
)

type PaymentMethod string

const (
	PaymentMethodCash         PaymentMethod = "cash"
	PaymentMethodMobileMoney  PaymentMethod = "mobile_money"
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodMobileMoney, PaymentMethodBankTransfer:
		return true
	}
	return false
}

// MaxRequestAmount bounds a single top-up request.
var MaxRequestAmount = decimal.NewFromInt(1_000_000)

const maxReasonLength = 500

// PaymentDetails carries the method-specific metadata supplied at
// creation or during review. Empty fields leave existing values alone.
type PaymentDetails struct {
	Method      PaymentMethod
	Provider    string
	PhoneNumber string
	BankName    string
	BranchName  string
}

// Validate enforces the conditional requirements: mobile money needs a
// provider and phone number, bank transfer a bank and branch name.
func (d PaymentDetails) Validate() error {
	if d.Method == "" {
		return nil
	}
	if !d.Method.Valid() {
		return ErrInvalidMethod
	}
	switch d.Method {
	case PaymentMethodMobileMoney:
		if d.Provider == "" || d.PhoneNumber == "" {
			return ErrMissingMethodInfo
		}
	case PaymentMethodBankTransfer:
		if d.BankName == "" || d.BranchName == "" {
			return ErrMissingMethodInfo
		}
	}
	return nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

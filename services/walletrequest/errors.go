package walletrequest

import "fmt"

var (
	ErrRequestNotFound   = fmt.Errorf("wallet request not found")
	ErrAppWalletMissing  = fmt.Errorf("app wallet is not configured")
	ErrInsufficientFunds = fmt.Errorf("insufficient funds in app wallet")
	ErrInvalidState      = fmt.Errorf("invalid request state")
	ErrNotOwner          = fmt.Errorf("only the requester may confirm receipt")
	ErrNotPrivileged     = fmt.Errorf("caller is not permitted to review requests")
	ErrInvalidAmount     = fmt.Errorf("amount must be a positive number not above 1,000,000")
	ErrInvalidMethod     = fmt.Errorf("unknown payment method")
	ErrMissingMethodInfo = fmt.Errorf("payment method details are incomplete")
	ErrReasonRequired    = fmt.Errorf("a rejection reason is required")
	ErrReasonTooLong     = fmt.Errorf("reason must not exceed 500 characters")
)

type WalletRequestError struct {
	ErrorObj  error
	RequestID string
	Other     []error
}

func (w *WalletRequestError) Error() string {
	return w.ErrorObj.Error()
}

func (w *WalletRequestError) Unwrap() error {
	return w.ErrorObj
}

func (w *WalletRequestError) ErrorOut() string {
	return fmt.Sprintf("%v: %v", w.ErrorObj.Error(), w.RequestID)
}

func NewWalletRequestError(err error, requestID string, e ...error) *WalletRequestError {
	return &WalletRequestError{
		ErrorObj:  err,
		RequestID: requestID,
		Other:     e,
	}
}

// stateError wraps ErrInvalidState with the transition that was refused.
func stateError(verb string, current Status) error {
	return fmt.Errorf("%w: cannot %s request with status %s", ErrInvalidState, verb, current)
}

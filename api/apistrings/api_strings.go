package apistrings

const (
	/// Basic User Related Strings
	UserNotFound              = "user or account does not exist"
	UserNotVerified           = "you have not verified your account yet"
	UserDetailsAlreadyCreated = "email or phone number already exists"
	InvalidPhone              = "invalid phone number, please use a standard phone number"
	InvalidPhonePassInput     = "please enter a valid phone number and password"
	IncorrectPhonePass        = "incorrect phone number or password"
	InvalidOTPInput           = "please enter the code that was sent to your phone"

	/// Core Functionality Error
	ServerError  = "a server error occurred, please try again later"
	NotPermitted = "you are not permitted to perform this action"
	InvalidID    = "entered ID is invalid"

	/// Wallet Request Related Strings
	RequestNotFound     = "wallet top-up request not found"
	InvalidTopUpInput   = "check 'amount' or 'payment_method' keys, invalid request"
	InvalidReviewAction = "review action must be 'approved' or 'declined'"
	OwnerOnlyConfirm    = "only the requester can confirm receipt"

	/// Registry Related Strings
	FarmerNotFound    = "farmer does not exist"
	SellerNotFound    = "seller does not exist"
	WarehouseNotFound = "warehouse does not exist"
	InvalidRegistry   = "check submitted fields, invalid request"

	/// Trading Related Strings
	PurchaseNotFound  = "purchase record does not exist"
	PickupNotFound    = "pickup record does not exist"
	MovementNotFound  = "stock movement does not exist"
	InvalidTradeInput = "check 'quantity_kg' or 'unit_price' keys, invalid request"
)

package errors

const (
	RequestImmutable  = 710
	InsufficientFloat = 711
)

const (
	RequestImmutableMessage  = "request has already been finalized"
	InsufficientFloatMessage = "operations wallet cannot cover this amount"
)

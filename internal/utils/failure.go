package utils

type ErrorType int

const (
	ErrInternal ErrorType = iota
	ErrBadInput
	ErrNotAllowed
	ErrNotFound
	ErrUnavailable
	ErrRateLimited
)

func (t ErrorType) String() string {
	switch t {
	case ErrBadInput:
		return "bad_input"
	case ErrNotAllowed:
		return "not_allowed"
	case ErrNotFound:
		return "not_found"
	case ErrUnavailable:
		return "unavailable"
	case ErrRateLimited:
		return "rate_limited"
	default:
		return "internal"
	}
}

// Failure is an error meant to be shown to the user as an error card.
type Failure struct {
	Type    ErrorType
	Message string
	// Usage is rendered as an example field on bad input.
	Usage  string
	Footer string
	Data   map[string]any
}

func (f Failure) Error() string {
	return f.Message
}

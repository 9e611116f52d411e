package service

// ValidationError is a client-side input problem. It is reported before any
// network call is made.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Field + " " + e.Reason
}

func required(field string) *ValidationError {
	return &ValidationError{Field: field, Reason: "is required"}
}

func atLeastOne(field string) *ValidationError {
	return &ValidationError{Field: field, Reason: "must be at least 1"}
}

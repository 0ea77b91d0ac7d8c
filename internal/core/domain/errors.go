package domain

// ExternalError reports a failed call to an upstream API. Status is the
// upstream HTTP status, or zero when no response was received.
type ExternalError struct {
	Status  int
	Message string
}

func (e *ExternalError) Error() string {
	return e.Message
}

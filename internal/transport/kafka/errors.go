package kafka

// PermanentError marks a message the consumer should drop instead of
// redeliver: retrying a poison assignment event can never succeed.
type PermanentError struct {
	Err error
}

func (e PermanentError) Error() string {
	if e.Err == nil {
		return "permanent error"
	}
	return e.Err.Error()
}

func (e PermanentError) Unwrap() error { return e.Err }

// Permanent wraps err so the claim loop marks the message and moves on.
func Permanent(err error) error {
	return PermanentError{Err: err}
}

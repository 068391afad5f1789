package forms

// ValidationError describes a form definition or response that does not fit
// the program's fields.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

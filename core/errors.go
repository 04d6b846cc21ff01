package core

// FieldError is used to indicate an error with a specific form or struct field.
type FieldError struct {
	Field string
	Error string
}

type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(err error, flds ...FieldError) error {
	return &ValidationError{err, flds}
}

func (err ValidationError) Error() string {
	if err.Err == nil {
		return ""
	}
	return err.Err.Error()
}

// FieldErrors flattens the per-field errors into a {field: message} map.
func (err ValidationError) FieldErrors() map[string]string {
	if err.Fields == nil {
		return nil
	}
	flds := make(map[string]string, len(err.Fields))
	for _, fErr := range err.Fields {
		flds[fErr.Field] = fErr.Error
	}
	return flds
}

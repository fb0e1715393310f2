package errors

import (
	"fmt"
	"slices"
	"strings"
)

// FieldError is one failed check on a named field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError collects field errors in the order they were found so the
// message is stable across runs. It converts to an InvalidArgument Error.
type ValidationError struct {
	Fields []FieldError `json:"fields"`
}

// Error lists every field error, grouped by field in first-seen order
func (v *ValidationError) Error() string {
	if len(v.Fields) == 0 {
		return "validation failed"
	}

	var order []string
	grouped := make(map[string][]string)
	for _, fe := range v.Fields {
		if _, seen := grouped[fe.Field]; !seen {
			order = append(order, fe.Field)
		}
		grouped[fe.Field] = append(grouped[fe.Field], fe.Message)
	}

	parts := make([]string, 0, len(order))
	for _, field := range order {
		parts = append(parts, fmt.Sprintf("%s: %s", field, strings.Join(grouped[field], ", ")))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// NewValidationError creates an empty validation error
func NewValidationError() *ValidationError {
	return &ValidationError{}
}

// AddFieldError records a message against field
func (v *ValidationError) AddFieldError(field, message string) {
	v.Fields = append(v.Fields, FieldError{Field: field, Message: message})
}

// AddFieldErrorf records a formatted message against field
func (v *ValidationError) AddFieldErrorf(field, format string, args ...any) {
	v.AddFieldError(field, fmt.Sprintf(format, args...))
}

// HasErrors reports whether any field failed
func (v *ValidationError) HasErrors() bool {
	return len(v.Fields) > 0
}

// HasField reports whether field failed at least one check
func (v *ValidationError) HasField(field string) bool {
	return slices.ContainsFunc(v.Fields, func(fe FieldError) bool { return fe.Field == field })
}

// ToError converts to an InvalidArgument Error whose validation_errors meta
// holds the field errors. Nil when nothing failed.
func (v *ValidationError) ToError() *Error {
	if !v.HasErrors() {
		return nil
	}

	return InvalidArgument(v.Error()).WithMeta("validation_errors", slices.Clone(v.Fields))
}

// ValidationBuilder accumulates field errors for a Validate method. Build
// returns nil when every check passed.
type ValidationBuilder struct {
	err *ValidationError
}

// NewValidationBuilder creates a new validation builder
func NewValidationBuilder() *ValidationBuilder {
	return &ValidationBuilder{err: NewValidationError()}
}

// Field records message against field
func (vb *ValidationBuilder) Field(field, message string) *ValidationBuilder {
	vb.err.AddFieldError(field, message)
	return vb
}

// Fieldf records a formatted message against field
func (vb *ValidationBuilder) Fieldf(field, format string, args ...any) *ValidationBuilder {
	vb.err.AddFieldErrorf(field, format, args...)
	return vb
}

// RequiredField records that field is missing
func (vb *ValidationBuilder) RequiredField(field string) *ValidationBuilder {
	return vb.Field(field, "is required")
}

// InvalidField records that field holds an unusable value
func (vb *ValidationBuilder) InvalidField(field, reason string) *ValidationBuilder {
	return vb.Fieldf(field, "is invalid: %s", reason)
}

// Build returns the collected errors as an InvalidArgument error, or nil
func (vb *ValidationBuilder) Build() error {
	if err := vb.err.ToError(); err != nil {
		return err
	}
	return nil
}

// ValidateRequired fails field when value is blank
func ValidateRequired(field, value string, vb *ValidationBuilder) {
	if strings.TrimSpace(value) == "" {
		vb.RequiredField(field)
	}
}

// ValidateRange fails field when value is outside [minValue, maxValue]
func ValidateRange(field string, value, minValue, maxValue int, vb *ValidationBuilder) {
	if value < minValue || value > maxValue {
		vb.Fieldf(field, "must be between %d and %d", minValue, maxValue)
	}
}

// ValidateEnum fails field when value is not one of allowed
func ValidateEnum(field, value string, allowed []string, vb *ValidationBuilder) {
	if !slices.Contains(allowed, value) {
		vb.Fieldf(field, "must be one of: %s", strings.Join(allowed, ", "))
	}
}

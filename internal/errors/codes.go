package errors

// Code represents an error code
type Code string

// Error codes shared with gRPC
const (
	CodeOK                 Code = "OK"
	CodeCanceled           Code = "CANCELED"
	CodeInvalidArgument    Code = "INVALID_ARGUMENT"
	CodeDeadlineExceeded   Code = "DEADLINE_EXCEEDED"
	CodeNotFound           Code = "NOT_FOUND"
	CodeAlreadyExists      Code = "ALREADY_EXISTS"
	CodeFailedPrecondition Code = "FAILED_PRECONDITION"
	CodeInternal           Code = "INTERNAL"
	CodeUnavailable        Code = "UNAVAILABLE"
	CodeUnimplemented      Code = "UNIMPLEMENTED"
)

// Document-level codes. A batch skips the document and keeps going.
const (
	CodeUnreadable         Code = "UNREADABLE"
	CodeMissingFrontMatter Code = "MISSING_FRONT_MATTER"
	CodeEmptyDocument      Code = "EMPTY_DOCUMENT"
)

// String returns the string representation of the code
func (c Code) String() string {
	return string(c)
}

// Skippable reports whether the code describes a single bad document
// rather than a failed batch
func (c Code) Skippable() bool {
	switch c {
	case CodeUnreadable, CodeMissingFrontMatter, CodeEmptyDocument:
		return true
	default:
		return false
	}
}

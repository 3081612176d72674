package apperrors

import (
	"errors"
	"fmt"
)

// Record store error kinds
var (
	// ErrDuplicateKey is returned when an explicit id collides with an existing row
	ErrDuplicateKey = errors.New("duplicate key")
	// ErrUnknownReference is returned when a foreign key target does not exist
	ErrUnknownReference = errors.New("unknown reference")
	// ErrInvalidArgument is returned when a value violates a constraint
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrDuplicateEnrollment is returned when a student is already enrolled in a course
	ErrDuplicateEnrollment = errors.New("duplicate enrollment")
	// ErrNotFound is returned when a lookup by key finds nothing
	ErrNotFound = errors.New("not found")
)

// Kind labels used in logs and metrics
const (
	KindDuplicateKey        = "duplicate_key"
	KindUnknownReference    = "unknown_reference"
	KindInvalidArgument     = "invalid_argument"
	KindDuplicateEnrollment = "duplicate_enrollment"
	KindNotFound            = "not_found"
	KindInternal            = "internal"
)

// Kind returns a stable label for the error kind carried by err
func Kind(err error) string {
	switch {
	case errors.Is(err, ErrDuplicateKey):
		return KindDuplicateKey
	case errors.Is(err, ErrUnknownReference):
		return KindUnknownReference
	case errors.Is(err, ErrInvalidArgument):
		return KindInvalidArgument
	case errors.Is(err, ErrDuplicateEnrollment):
		return KindDuplicateEnrollment
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	default:
		return KindInternal
	}
}

// NewDuplicateKeyError reports an id collision for the given entity
func NewDuplicateKeyError(entity string, id int64) error {
	return NewCustomError(ErrDuplicateKey, fmt.Sprintf("%s with id %d already exists", entity, id)).
		WithCode(KindDuplicateKey).
		WithDetails(map[string]interface{}{"entity": entity, "id": id})
}

// NewUnknownReferenceError reports a missing foreign key target
func NewUnknownReferenceError(entity string, id int64) error {
	return NewCustomError(ErrUnknownReference, fmt.Sprintf("referenced %s %d does not exist", entity, id)).
		WithCode(KindUnknownReference).
		WithDetails(map[string]interface{}{"entity": entity, "id": id})
}

// NewInvalidArgumentError reports a constraint violation on a single field
func NewInvalidArgumentError(field, message string) error {
	return NewCustomError(ErrInvalidArgument, fmt.Sprintf("%s: %s", field, message)).
		WithCode(KindInvalidArgument).
		WithDetails(map[string]interface{}{"field": field})
}

// NewDuplicateEnrollmentError reports an existing (student, course) pair
func NewDuplicateEnrollmentError(studentID, courseID int64) error {
	return NewCustomError(ErrDuplicateEnrollment,
		fmt.Sprintf("student %d is already enrolled in course %d", studentID, courseID)).
		WithCode(KindDuplicateEnrollment).
		WithDetails(map[string]interface{}{"studentId": studentID, "courseId": courseID})
}

// NewNotFoundError reports a failed lookup by key
func NewNotFoundError(entity string, id int64) error {
	return NewCustomError(ErrNotFound, fmt.Sprintf("%s %d not found", entity, id)).
		WithCode(KindNotFound).
		WithDetails(map[string]interface{}{"entity": entity, "id": id})
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Code    string
	Details map[string]interface{}
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}

// WithCode adds an error code
func (e *CustomError) WithCode(code string) *CustomError {
	e.Code = code
	return e
}

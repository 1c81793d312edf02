package models

import (
	"errors"
	"fmt"
)

// FieldValidationError reports a structured field (age, dateOfVisit,
// timeOfVisit, comments) that failed its rule.
type FieldValidationError struct {
	Value    any
	Param    string
	Expected string
}

func (e *FieldValidationError) Error() string {
	return fmt.Sprintf("Invalid Visitor class property: %s = %v , %s", e.Param, e.Value, e.Expected)
}

// NameValidationError reports a value that does not match the full-name pattern.
type NameValidationError struct {
	Value any
}

func (e *NameValidationError) Error() string {
	return fmt.Sprintf("Invalid full name: %v", e.Value)
}

type FileExistsError struct {
	Path string
}

func (e *FileExistsError) Error() string {
	return fmt.Sprintf("The file '%s' exists.", e.Path)
}

type WriteFailureError struct {
	Cause error
}

func (e *WriteFailureError) Error() string {
	return fmt.Sprintf("Error creating/writing to JSON file: %s", causeMessage(e.Cause))
}

func (e *WriteFailureError) Unwrap() error { return e.Cause }

type ReadFailureError struct {
	Cause error
}

func (e *ReadFailureError) Error() string {
	return fmt.Sprintf("Error when trying to read file : %s", causeMessage(e.Cause))
}

func (e *ReadFailureError) Unwrap() error { return e.Cause }

// ReconstructionError is returned when a stored file cannot be turned back
// into a Visitor.
type ReconstructionError struct {
	Cause error
}

func (e *ReconstructionError) Error() string {
	return fmt.Sprintf("Error when trying to return a Visitor object: %s", causeMessage(e.Cause))
}

func (e *ReconstructionError) Unwrap() error { return e.Cause }

func causeMessage(err error) string {
	if err == nil {
		return "unknown error"
	}
	return err.Error()
}

type ErrorKind string

const (
	KindNone                  ErrorKind = "ok"
	KindFieldValidation       ErrorKind = "field_validation"
	KindNameValidation        ErrorKind = "name_validation"
	KindFileExists            ErrorKind = "file_exists"
	KindWriteFailure          ErrorKind = "write_failure"
	KindReadFailure           ErrorKind = "read_failure"
	KindReconstructionFailure ErrorKind = "reconstruction_failure"
	KindOther                 ErrorKind = "other"
)

// KindOf classifies err by the first typed store error found in its chain.
func KindOf(err error) ErrorKind {
	var (
		fieldErr  *FieldValidationError
		nameErr   *NameValidationError
		existsErr *FileExistsError
		writeErr  *WriteFailureError
		readErr   *ReadFailureError
		recErr    *ReconstructionError
	)
	switch {
	case err == nil:
		return KindNone
	case errors.As(err, &fieldErr):
		return KindFieldValidation
	case errors.As(err, &nameErr):
		return KindNameValidation
	case errors.As(err, &existsErr):
		return KindFileExists
	case errors.As(err, &writeErr):
		return KindWriteFailure
	case errors.As(err, &readErr):
		return KindReadFailure
	case errors.As(err, &recErr):
		return KindReconstructionFailure
	}
	return KindOther
}

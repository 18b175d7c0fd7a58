package models

import "errors"

var (
	ErrDriverNotFound     = errors.New("driver not found")
	ErrEmailTaken         = errors.New("email already in use")
	ErrDriverNotAvailable = errors.New("driver is not available for a new load")
	ErrNoActiveLoad       = errors.New("driver has no load in progress")
	ErrNotOnLeave         = errors.New("driver is not on leave")
)

// InvalidDataError reports a field-level constraint violation on a driver
// record. The whole create/update is rejected, nothing is partially applied.
type InvalidDataError struct {
	Reason string
}

func (e *InvalidDataError) Error() string {
	return "invalid driver data: " + e.Reason
}

type InvalidHoursError struct {
	Reason string
}

func (e *InvalidHoursError) Error() string {
	return "invalid hours of service: " + e.Reason
}

type InvalidEndorsementTypeError struct {
	Code string
}

func (e *InvalidEndorsementTypeError) Error() string {
	return "invalid endorsement code: " + e.Code
}

type InvalidDocumentTypeError struct {
	FileType string
}

func (e *InvalidDocumentTypeError) Error() string {
	return "invalid document type: " + e.FileType
}

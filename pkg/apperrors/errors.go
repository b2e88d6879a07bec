package apperrors

import "errors"

var (
	ErrInvalidConfig   = errors.New("invalid configuration")
	ErrEmptyActivePool = errors.New("no active members to draw from")
	ErrFileNotFound    = errors.New("file not found")
	ErrHeaderMismatch  = errors.New("header mismatch")
	ErrQualityFailed   = errors.New("data quality checks did not pass")
)

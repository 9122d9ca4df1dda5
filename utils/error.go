package utils

import (
	"errors"
	"fmt"
)

var (
	ErrTemplateFormat = errors.New("template format error")
	ErrSheetNotFound  = errors.New("sheet not found")
	ErrColumnNotFound = errors.New("column not found")
	ErrInvalidCell    = errors.New("invalid cell value")
	ErrEmptyCatalog   = errors.New("catalog is empty")
)

// TemplateFormatError is the only failure surfaced by an analysis run.
// The cause is kept as free text for diagnostics, not for classification.
type TemplateFormatError struct {
	Cause error
}

func NewTemplateFormatError(cause error) *TemplateFormatError {
	return &TemplateFormatError{Cause: cause}
}

func (e *TemplateFormatError) Error() string {
	if e.Cause == nil {
		return ErrTemplateFormat.Error()
	}
	return fmt.Sprintf("%s: %v", ErrTemplateFormat.Error(), e.Cause)
}

func (e *TemplateFormatError) Unwrap() error {
	return e.Cause
}

func (e *TemplateFormatError) Is(target error) bool {
	return target == ErrTemplateFormat
}

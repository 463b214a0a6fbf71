package shared

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors. Typed errors below wrap one of these so callers can use errors.Is.
var (
	ErrMissingField      = errors.New("missing required field")
	ErrInvalidHabitat    = errors.New("invalid habitat")
	ErrUnknownModule     = errors.New("unknown module")
	ErrCellNotEditable   = errors.New("cell is not editable")
	ErrModuleNotAllowed  = errors.New("module not allowed in cell")
	ErrInvalidRuleTables = errors.New("invalid rule tables")
)

// DomainError is the base error type for all domain errors
type DomainError struct {
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func NewDomainError(message string) *DomainError {
	return &DomainError{Message: message}
}

// Validation error

type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// Catalog errors

type CatalogRecordError struct {
	*DomainError
	Index    int
	DataName string
	Fields   []string
}

func NewMissingFieldError(index int, dataName string, fields []string) *CatalogRecordError {
	name := dataName
	if name == "" {
		name = fmt.Sprintf("#%d", index)
	}
	return &CatalogRecordError{
		DomainError: NewDomainError(fmt.Sprintf("catalog record %s: missing required field(s) %s",
			name, strings.Join(fields, ", "))),
		Index:    index,
		DataName: dataName,
		Fields:   fields,
	}
}

func (e *CatalogRecordError) Unwrap() error {
	return ErrMissingField
}

// Habitat errors

type HabitatError struct {
	*DomainError
	cause error
}

func (e *HabitatError) Unwrap() error {
	return e.cause
}

func NewInvalidHabitatError(message string) *HabitatError {
	return &HabitatError{
		DomainError: NewDomainError("invalid habitat: " + message),
		cause:       ErrInvalidHabitat,
	}
}

type UnknownModuleError struct {
	*HabitatError
	Name        string
	Suggestions []string
}

func NewUnknownModuleError(name string, suggestions []string) *UnknownModuleError {
	msg := fmt.Sprintf("unknown module %q", name)
	if len(suggestions) > 0 {
		msg += fmt.Sprintf(" (did you mean %s?)", strings.Join(suggestions, ", "))
	}
	return &UnknownModuleError{
		HabitatError: &HabitatError{DomainError: NewDomainError(msg), cause: ErrUnknownModule},
		Name:         name,
		Suggestions:  suggestions,
	}
}

type CellError struct {
	*HabitatError
	Cell string
}

func NewCellNotEditableError(cell, reason string) *CellError {
	return &CellError{
		HabitatError: &HabitatError{
			DomainError: NewDomainError(fmt.Sprintf("cell %s is not editable: %s", cell, reason)),
			cause:       ErrCellNotEditable,
		},
		Cell: cell,
	}
}

func NewModuleNotAllowedError(cell, module, reason string) *CellError {
	return &CellError{
		HabitatError: &HabitatError{
			DomainError: NewDomainError(fmt.Sprintf("module %s cannot be placed in cell %s: %s", module, cell, reason)),
			cause:       ErrModuleNotAllowed,
		},
		Cell: cell,
	}
}

package diet

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrNotFound         = errors.New("not found")
	ErrConfiguration    = errors.New("diet: configuration error")
	ErrUpstream         = errors.New("diet: upstream service error")
	ErrSchemaValidation = errors.New("diet: schema validation error")
)

// ConfigurationError: falta credencial o cliente. Se devuelve sin tocar la red.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s: %s", ErrConfiguration, e.Reason)
}

func (e *ConfigurationError) Is(target error) bool { return target == ErrConfiguration }

// UpstreamServiceError: fallaron el modelo primario y el fallback.
// Err es el error del último intento (el del fallback).
type UpstreamServiceError struct {
	PrimaryModel  string
	FallbackModel string
	Err           error
}

func (e *UpstreamServiceError) Error() string {
	msg := "unknown error"
	if e.Err != nil {
		msg = e.Err.Error()
	}
	return fmt.Sprintf("%s: primary=%s fallback=%s: %s", ErrUpstream, e.PrimaryModel, e.FallbackModel, msg)
}

func (e *UpstreamServiceError) Is(target error) bool { return target == ErrUpstream }
func (e *UpstreamServiceError) Unwrap() error        { return e.Err }

// SchemaValidationError: la propuesta armada no cumple el contrato de salida.
type SchemaValidationError struct {
	Fields []string
	Err    error
}

func (e *SchemaValidationError) Error() string {
	if len(e.Fields) == 0 {
		return fmt.Sprintf("%s: %v", ErrSchemaValidation, e.Err)
	}
	return fmt.Sprintf("%s: invalid fields [%s]", ErrSchemaValidation, strings.Join(e.Fields, ", "))
}

func (e *SchemaValidationError) Is(target error) bool { return target == ErrSchemaValidation }
func (e *SchemaValidationError) Unwrap() error        { return e.Err }

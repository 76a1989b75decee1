// Package analysis defines the error taxonomy shared by all engines. Every
// anticipated failure carries exactly one Kind so the service boundary can
// map it to a status code without parsing error text.
package analysis

import (
	"errors"
	"fmt"
)

// Kind classifies an analysis failure. Every engine failure carries exactly
// one kind so the caller can map it to a user-facing message without parsing
// error text.
type Kind string

const (
	// KindMissingColumn means a referenced column is absent from the input table.
	KindMissingColumn Kind = "missing_column"
	// KindInsufficientData means too few valid rows, columns, or points survived
	// cleaning for the requested operation.
	KindInsufficientData Kind = "insufficient_data"
	// KindUnderdetermined means the OLS system has more parameters than data points.
	KindUnderdetermined Kind = "underdetermined_system"
	// KindInvalidParameter means an out-of-range or malformed configuration value.
	KindInvalidParameter Kind = "invalid_parameter"
	// KindModelFitFailed means numerical fitting did not converge to a usable model.
	KindModelFitFailed Kind = "model_fit_failed"
)

// Error is a categorized analysis failure. Engines return *Error for every
// anticipated failure; uncategorized errors never cross an engine boundary.
type Error struct {
	Kind Kind
	Msg  string
}

func (e *Error) Error() string {
	return string(e.Kind) + ": " + e.Msg
}

// Errorf builds an *Error with a formatted diagnostic.
func Errorf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// KindOf extracts the kind from an error chain. It returns the empty string
// for nil or uncategorized errors.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return ""
}

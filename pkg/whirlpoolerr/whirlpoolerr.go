// Package whirlpoolerr defines the fatal-precondition error used across the
// reconstruction pipeline. Inputs are assumed canonical: any
// violation aborts the run with a single-line message identifying the
// offending component and, where applicable, the slot and signature.
package whirlpoolerr

import "fmt"

// FatalError is a precondition violation that aborts the current run.
// It is never retried: the correct response is to fix the input and re-run.
type FatalError struct {
	Component string
	Slot      uint64
	Signature string
	Reason    string
}

func (e *FatalError) Error() string {
	if e.Signature != "" {
		return fmt.Sprintf("%s: slot=%d sig=%s: %s", e.Component, e.Slot, e.Signature, e.Reason)
	}
	if e.Slot != 0 {
		return fmt.Sprintf("%s: slot=%d: %s", e.Component, e.Slot, e.Reason)
	}
	return fmt.Sprintf("%s: %s", e.Component, e.Reason)
}

// Fatal constructs a FatalError for the given component.
func Fatal(component string, slot uint64, signature string, format string, args ...any) *FatalError {
	return &FatalError{
		Component: component,
		Slot:      slot,
		Signature: signature,
		Reason:    fmt.Sprintf(format, args...),
	}
}

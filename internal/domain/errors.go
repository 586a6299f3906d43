package domain

import "fmt"

// ValidationError marks a payload that is missing required fields. Messages
// failing validation are skipped, never retried.
type ValidationError struct {
	Entity string
	Field  string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: missing required field %q", e.Entity, e.Field)
}

// TransformError marks a payload that could not be mapped into its canonical
// shape. Treated like validation: the item is skipped, the batch continues.
type TransformError struct {
	Entity string
	Err    error
}

func (e *TransformError) Error() string {
	return fmt.Sprintf("transforming %s: %v", e.Entity, e.Err)
}

func (e *TransformError) Unwrap() error { return e.Err }

// StorageError marks a write failure, carrying the natural key of the row
// that could not be written.
type StorageError struct {
	Entity string
	Key    string
	Err    error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storing %s %q: %v", e.Entity, e.Key, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// TransportError marks an external API failure. It aborts the current
// sub-pull but not the overall sync run.
type TransportError struct {
	Resource string
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("fetching %s: %v", e.Resource, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

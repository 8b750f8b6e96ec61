package errors

import (
	"fmt"
)

// ConfigurationError occurs when a filter, dataset or pipeline expansion is
// constructed from an invalid specification. It surfaces at construction time
// so that configuration mistakes are caught before any pipeline runs.
type ConfigurationError struct{ Reason string }

// Error returns a textual representation of this ConfigurationError
func (e ConfigurationError) Error() string {
	return fmt.Sprintf("Invalid configuration: %s", e.Reason)
}

// PartitionLoadError occurs when a named partition's backing resource is
// unreadable or malformed
type PartitionLoadError struct {
	Key string
	Err error
}

// Error returns a textual representation of this PartitionLoadError
func (e PartitionLoadError) Error() string {
	return fmt.Sprintf("Unable to load partition %s: %v", e.Key, e.Err)
}

// Unwrap returns the underlying load failure
func (e PartitionLoadError) Unwrap() error {
	return e.Err
}

// MergeError occurs when a combine strategy cannot reconcile incompatible
// partition shapes
type MergeError struct {
	Key    string
	Reason string
}

// Error returns a textual representation of this MergeError
func (e MergeError) Error() string {
	return fmt.Sprintf("Unable to merge partition %s: %s", e.Key, e.Reason)
}

// EmptyEnumerationError occurs when a partition enumeration produces no
// partitions but at least one is required
type EmptyEnumerationError struct{ Source string }

// Error returns a textual representation of this EmptyEnumerationError
func (e EmptyEnumerationError) Error() string {
	return fmt.Sprintf("Enumeration of %s produced 0 partitions", e.Source)
}

// IncompatibleRowError occurs when a row's width does not match a Frame's
// column set
type IncompatibleRowError struct {
	Expected int
	Actual   int
}

// Error returns a textual representation of this IncompatibleRowError
func (e IncompatibleRowError) Error() string {
	return fmt.Sprintf("Row width %d is not compatible with a frame of %d columns", e.Actual, e.Expected)
}

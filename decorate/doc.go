// Package decorate provides function wrappers for partitioned keyed
// collections: splitting a collection into named partitions before invoking
// a wrapped function, concatenating partition-keyed outputs after invocation,
// and adapting keyed outputs to an ordered-sequence binding shape. Decorators
// add no side effects of their own and preserve the wrapped function's error
// behavior unchanged.
package decorate

package decorate

import (
	"context"
	"sort"

	"github.com/go-parti/parti/errors"
)

// A Collection is a keyed collection of records
type Collection map[string]interface{}

// A Partitioned is a set of named partitions of a Collection
type Partitioned map[string]Collection

// A CollectionFunc consumes one Collection and produces another. It is the
// per-partition arity for wrapped functions.
type CollectionFunc func(ctx context.Context, c Collection) (Collection, error)

// A PartitionedFunc consumes a full partition set at once. It is the
// set arity for wrapped functions.
type PartitionedFunc func(ctx context.Context, p Partitioned) (Partitioned, error)

// Split partitions a Collection into named sub-collections according to a
// PartitionRule
func Split(rule PartitionRule, c Collection) (Partitioned, error) {
	out := make(Partitioned)
	for key, value := range c {
		name, err := rule(key)
		if err != nil {
			return nil, err
		}
		part, ok := out[name]
		if !ok {
			part = make(Collection)
			out[name] = part
		}
		part[key] = value
	}
	return out, nil
}

// Concat merges a set of partition-keyed collections into one aggregate
// Collection. A record key appearing in more than one partition is a merge
// error: silently keeping either copy would corrupt downstream aggregates.
func Concat(p Partitioned) (Collection, error) {
	out := make(Collection)
	for _, name := range sortedNames(p) {
		for key, value := range p[name] {
			if _, exists := out[key]; exists {
				return nil, errors.MergeError{Key: name, Reason: "record key " + key + " appears in more than one partition"}
			}
			out[key] = value
		}
	}
	return out, nil
}

// SplitIntoPartitions wraps fn so that, before invocation, its input
// collection is partitioned according to the rule and fn is invoked once per
// partition. The result holds fn's output per partition name. Errors from fn
// propagate unmodified.
func SplitIntoPartitions(rule PartitionRule, fn CollectionFunc) func(ctx context.Context, c Collection) (Partitioned, error) {
	return func(ctx context.Context, c Collection) (Partitioned, error) {
		parts, err := Split(rule, c)
		if err != nil {
			return nil, err
		}
		out := make(Partitioned, len(parts))
		for _, name := range sortedNames(parts) {
			result, err := fn(ctx, parts[name])
			if err != nil {
				return nil, err
			}
			out[name] = result
		}
		return out, nil
	}
}

// SplitIntoPartitionSet wraps fn so that its input collection is partitioned
// according to the rule and fn is invoked once with the whole partition set.
// Errors from fn propagate unmodified.
func SplitIntoPartitionSet(rule PartitionRule, fn PartitionedFunc) func(ctx context.Context, c Collection) (Partitioned, error) {
	return func(ctx context.Context, c Collection) (Partitioned, error) {
		parts, err := Split(rule, c)
		if err != nil {
			return nil, err
		}
		return fn(ctx, parts)
	}
}

// ConcatPartitions wraps fn so that, after invocation, its partition-keyed
// outputs are merged into one aggregate collection. Errors from fn propagate
// unmodified.
func ConcatPartitions(fn func(ctx context.Context, c Collection) (Partitioned, error)) CollectionFunc {
	return func(ctx context.Context, c Collection) (Collection, error) {
		parts, err := fn(ctx, c)
		if err != nil {
			return nil, err
		}
		return Concat(parts)
	}
}

// ListOutput adapts fn's keyed output into the ordered-sequence shape
// expected by output binding contracts, ordering records by key. Errors from
// fn propagate unmodified.
func ListOutput(fn CollectionFunc) func(ctx context.Context, c Collection) ([]interface{}, error) {
	return func(ctx context.Context, c Collection) ([]interface{}, error) {
		out, err := fn(ctx, c)
		if err != nil {
			return nil, err
		}
		keys := make([]string, 0, len(out))
		for key := range out {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		values := make([]interface{}, len(keys))
		for i, key := range keys {
			values[i] = out[key]
		}
		return values, nil
	}
}

func sortedNames(p Partitioned) []string {
	names := make([]string, 0, len(p))
	for name := range p {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

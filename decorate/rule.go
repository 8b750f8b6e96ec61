package decorate

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cespare/xxhash/v2"

	parti "github.com/go-parti/parti"
	"github.com/go-parti/parti/errors"
)

// A PartitionRule assigns a record to a named partition based on its key.
// Rules must be pure so that splitting is deterministic.
type PartitionRule func(key string) (string, error)

// ByKeyPrefix returns a PartitionRule which names partitions after the part
// of each record key before the first occurrence of the separator. A key
// without the separator forms a partition of its own. An empty separator is
// a configuration error.
func ByKeyPrefix(separator string) (PartitionRule, error) {
	if separator == "" {
		return nil, errors.ConfigurationError{Reason: "key prefix separator must not be empty"}
	}
	return func(key string) (string, error) {
		if idx := strings.Index(key, separator); idx >= 0 {
			return key[:idx], nil
		}
		return key, nil
	}, nil
}

// ByFilter returns a PartitionRule which assigns each record to the first
// named filter matching its key, trying filters in partition-name order. A
// key matching no filter is an error at split time. An empty filter set is a
// configuration error.
func ByFilter(partitions map[string]parti.Filter) (PartitionRule, error) {
	if len(partitions) == 0 {
		return nil, errors.ConfigurationError{Reason: "filter partitioning requires at least one named filter"}
	}
	names := make([]string, 0, len(partitions))
	for name, f := range partitions {
		if f == nil {
			return nil, errors.ConfigurationError{Reason: fmt.Sprintf("partition %s has a nil filter", name)}
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return func(key string) (string, error) {
		for _, name := range names {
			if partitions[name](key) {
				return name, nil
			}
		}
		return "", fmt.Errorf("key %q matched no partition filter", key)
	}, nil
}

// ByHash returns a PartitionRule which distributes records across n buckets
// by hashing their keys. A non-positive bucket count is a configuration
// error.
func ByHash(n int) (PartitionRule, error) {
	if n <= 0 {
		return nil, errors.ConfigurationError{Reason: fmt.Sprintf("bucket count %d must be positive", n)}
	}
	return func(key string) (string, error) {
		return fmt.Sprintf("part-%03d", xxhash.Sum64String(key)%uint64(n)), nil
	}, nil
}

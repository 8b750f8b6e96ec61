package glob

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"

	parti "github.com/go-parti/parti"
	"github.com/go-parti/parti/errors"
)

// DataSource enumerates partition keys by matching a glob pattern against
// the local filesystem. Matches are sorted so that enumeration order is
// deterministic for an unchanged backing store. An optional Filter narrows
// the enumeration.
type DataSource struct {
	pattern string
	filter  parti.Filter
}

// CreateDataSource is a factory for glob DataSources. A malformed pattern is
// a configuration error. The filter may be nil.
func CreateDataSource(pattern string, filter parti.Filter) (*DataSource, error) {
	if _, err := filepath.Match(pattern, ""); err != nil {
		return nil, errors.ConfigurationError{Reason: fmt.Sprintf("glob %q is malformed: %v", pattern, err)}
	}
	return &DataSource{pattern: pattern, filter: filter}, nil
}

// Pattern returns the glob pattern backing this DataSource
func (s *DataSource) Pattern() string {
	return s.pattern
}

// Enumerate matches the glob against the filesystem and returns the matching
// paths as partition keys, filtered and sorted. Zero matches is not an error
// here; datasets decide whether an empty enumeration is acceptable.
func (s *DataSource) Enumerate(ctx context.Context) ([]string, error) {
	matches, err := filepath.Glob(s.pattern)
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(matches))
	for _, path := range matches {
		if s.filter != nil && !s.filter(path) {
			continue
		}
		keys = append(keys, path)
	}
	sort.Strings(keys)
	return keys, nil
}

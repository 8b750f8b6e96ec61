package memory

import (
	"context"
	"fmt"
)

// DataSource is a fixed, in-memory enumeration of partition keys, with an
// optional map of values to serve as the loader. Useful for tests and for
// pipelines whose partition set is declared statically.
type DataSource struct {
	keys   []string
	values map[string]interface{}
}

// CreateDataSource is a factory for in-memory DataSources with a static key
// enumeration
func CreateDataSource(keys ...string) *DataSource {
	owned := make([]string, len(keys))
	copy(owned, keys)
	return &DataSource{keys: owned}
}

// CreateDataSourceFromMap is a factory for in-memory DataSources which also
// serve partition values. Keys enumerate in the given order.
func CreateDataSourceFromMap(keys []string, values map[string]interface{}) *DataSource {
	ds := CreateDataSource(keys...)
	ds.values = values
	return ds
}

// Enumerate returns the static partition keys of this DataSource
func (s *DataSource) Enumerate(ctx context.Context) ([]string, error) {
	keys := make([]string, len(s.keys))
	copy(keys, s.keys)
	return keys, nil
}

// Load returns the in-memory value for a partition key
func (s *DataSource) Load(ctx context.Context, key string) (interface{}, error) {
	if s.values == nil {
		return nil, fmt.Errorf("data source has no values")
	}
	value, ok := s.values[key]
	if !ok {
		return nil, fmt.Errorf("no value for partition key %s", key)
	}
	return value, nil
}

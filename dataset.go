package parti

import "context"

// A PartitionEnumerator produces the set of partition keys backing a Dataset.
// Enumeration happens at read (or pipeline-build) time, so implementations may
// discover partitions dynamically, but the returned order must be
// deterministic for an unchanged backing store.
type PartitionEnumerator interface {
	Enumerate(ctx context.Context) ([]string, error) // Enumerate returns partition keys in a deterministic order
}

// A PartitionLoader loads the backing value for a single partition key.
// Loaders do not own the backing resource and must be safe to call once per
// key per read.
type PartitionLoader interface {
	Load(ctx context.Context, key string) (interface{}, error) // Load produces the value backing a single partition
}

// A Combiner merges loaded partition values into one aggregate. Combine is
// called once per partition, in enumeration order, threading the aggregate
// through each call. Zero produces the aggregate for an empty enumeration.
type Combiner interface {
	Zero() interface{}                                                           // Zero returns the empty aggregate
	Combine(agg interface{}, key string, value interface{}) (interface{}, error) // Combine merges one loaded partition into the aggregate
}

// A Dataset is a lazily-loaded logical artifact assembled from one or more
// partitions. Load is idempotent: repeated reads with an unchanged backing
// store yield an equal result. Datasets in this library have no write path.
type Dataset interface {
	Load(ctx context.Context) (interface{}, error) // Load assembles and returns the full artifact
	Describe() map[string]interface{}              // Describe reports the dataset's configuration for logs and errors
}

package dataset

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/semaphore"

	parti "github.com/go-parti/parti"
	"github.com/go-parti/parti/errors"
	"github.com/go-parti/parti/internal/pcache"
	"github.com/go-parti/parti/logging"
)

// Conf configures a Concatenated dataset
type Conf struct {
	Filter             parti.Filter // Narrows the enumeration before loading. Nil keeps every key.
	RequireNonEmpty    bool         // Makes an empty (post-filter) enumeration a configuration error instead of yielding the combiner's zero aggregate
	MaxConcurrentLoads int          // Upper bound on partitions loaded at once. 0 or 1 loads sequentially.
	Cache              pcache.Cache // Optional read-through cache for loaded partition values
	LogLevel           int          // Log level for load reporting. Defaults to logging.InfoLevel.
}

// Concatenated is a Dataset which lazily loads every partition produced by an
// enumerator and merges the loaded values into one aggregate using a combine
// strategy. A read propagates the first load or merge failure immediately;
// no partial aggregate is ever returned. Reads are idempotent for an
// unchanged backing store. There is no write path.
type Concatenated struct {
	enum     parti.PartitionEnumerator
	loader   parti.PartitionLoader
	combiner parti.Combiner
	conf     *Conf
	log      *logrus.Entry
}

// CreateConcatenated is a factory for Concatenated datasets. A nil
// enumerator, loader or combiner is a configuration error.
func CreateConcatenated(enum parti.PartitionEnumerator, loader parti.PartitionLoader, combiner parti.Combiner, conf *Conf) (*Concatenated, error) {
	if conf == nil {
		conf = &Conf{}
	}
	if conf.LogLevel == 0 {
		conf.LogLevel = logging.InfoLevel
	}
	if enum == nil {
		return nil, errors.ConfigurationError{Reason: "concatenated dataset requires a partition enumerator"}
	}
	if loader == nil {
		return nil, errors.ConfigurationError{Reason: "concatenated dataset requires a partition loader"}
	}
	if combiner == nil {
		return nil, errors.ConfigurationError{Reason: "concatenated dataset requires a combine strategy"}
	}
	return &Concatenated{
		enum:     enum,
		loader:   loader,
		combiner: combiner,
		conf:     conf,
		log:      logging.CreateLogger("dataset", conf.LogLevel),
	}, nil
}

// Load enumerates, loads and combines every partition of this dataset
func (d *Concatenated) Load(ctx context.Context) (interface{}, error) {
	keys, err := d.enum.Enumerate(ctx)
	if err != nil {
		return nil, err
	}
	if d.conf.Filter != nil {
		filtered := keys[:0]
		for _, key := range keys {
			if d.conf.Filter(key) {
				filtered = append(filtered, key)
			}
		}
		keys = filtered
	}
	if len(keys) == 0 {
		if d.conf.RequireNonEmpty {
			return nil, errors.EmptyEnumerationError{Source: d.describeSource()}
		}
		return d.combiner.Zero(), nil
	}
	values, err := d.loadAll(ctx, keys)
	if err != nil {
		return nil, err
	}
	agg := d.combiner.Zero()
	for i, key := range keys {
		agg, err = d.combiner.Combine(agg, key, values[i])
		if err != nil {
			return nil, err
		}
	}
	d.log.WithFields(logrus.Fields{"partitions": len(keys)}).Info("Loaded concatenated dataset")
	return agg, nil
}

// loadAll loads each partition, sequentially by default or under a semaphore
// when concurrent loads are configured. The first failure wins, chosen by
// enumeration order so that errors are deterministic.
func (d *Concatenated) loadAll(ctx context.Context, keys []string) ([]interface{}, error) {
	values := make([]interface{}, len(keys))
	if d.conf.MaxConcurrentLoads <= 1 {
		for i, key := range keys {
			value, err := d.loadOne(ctx, key)
			if err != nil {
				return nil, err
			}
			values[i] = value
		}
		return values, nil
	}
	loadErrors := make([]error, len(keys))
	sem := semaphore.NewWeighted(int64(d.conf.MaxConcurrentLoads))
	var wg sync.WaitGroup
	for i := range keys {
		if err := sem.Acquire(ctx, 1); err != nil {
			return nil, err
		}
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			defer sem.Release(1)
			values[i], loadErrors[i] = d.loadOne(ctx, keys[i])
		}(i)
	}
	wg.Wait()
	for _, err := range loadErrors {
		if err != nil {
			return nil, err
		}
	}
	return values, nil
}

// loadOne loads a single partition, consulting the cache when one is
// configured
func (d *Concatenated) loadOne(ctx context.Context, key string) (interface{}, error) {
	if d.conf.Cache != nil {
		if value, err := d.conf.Cache.Get(key); err == nil {
			return value, nil
		}
	}
	value, err := d.loader.Load(ctx, key)
	if err != nil {
		return nil, errors.PartitionLoadError{Key: key, Err: err}
	}
	if d.conf.Cache != nil {
		d.conf.Cache.Add(key, value)
	}
	return value, nil
}

// Describe reports the dataset's configuration for logs and errors
func (d *Concatenated) Describe() map[string]interface{} {
	return map[string]interface{}{
		"source":               d.describeSource(),
		"require_non_empty":    d.conf.RequireNonEmpty,
		"max_concurrent_loads": d.conf.MaxConcurrentLoads,
		"cached":               d.conf.Cache != nil,
		"log_level":            logging.LogLevelToString(d.conf.LogLevel),
	}
}

func (d *Concatenated) describeSource() string {
	if described, ok := d.enum.(interface{ Pattern() string }); ok {
		return described.Pattern()
	}
	return "partition enumeration"
}

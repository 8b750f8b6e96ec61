package dataset

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	parti "github.com/go-parti/parti"
	"github.com/go-parti/parti/errors"
	"github.com/go-parti/parti/filter"
	"github.com/go-parti/parti/logging"
)

// LoadLastConf configures a LoadLast dataset
type LoadLastConf struct {
	BackDate string // Caps the selection at a fixed YYYY-MM-DD date. Empty selects the newest partition outright.
}

// LoadLast is a Dataset which selects the single newest partition by the
// date embedded in each key, and loads only that one. Keys without a
// detectable date never qualify.
type LoadLast struct {
	enum     parti.PartitionEnumerator
	loader   parti.PartitionLoader
	backDate time.Time
	log      *logrus.Entry
}

// CreateLoadLast is a factory for LoadLast datasets
func CreateLoadLast(enum parti.PartitionEnumerator, loader parti.PartitionLoader, conf *LoadLastConf) (*LoadLast, error) {
	if enum == nil {
		return nil, errors.ConfigurationError{Reason: "load-last dataset requires a partition enumerator"}
	}
	if loader == nil {
		return nil, errors.ConfigurationError{Reason: "load-last dataset requires a partition loader"}
	}
	if conf == nil {
		conf = &LoadLastConf{}
	}
	d := &LoadLast{
		enum:   enum,
		loader: loader,
		log:    logging.CreateLogger("dataset", logging.InfoLevel),
	}
	if conf.BackDate != "" {
		backDate, err := time.Parse("2006-01-02", conf.BackDate)
		if err != nil {
			return nil, errors.ConfigurationError{Reason: "back date " + conf.BackDate + " is not a 2006-01-02 date"}
		}
		d.backDate = backDate
	}
	return d, nil
}

// Load selects and loads the newest eligible partition
func (d *LoadLast) Load(ctx context.Context) (interface{}, error) {
	keys, err := d.enum.Enumerate(ctx)
	if err != nil {
		return nil, err
	}
	var newest string
	var newestDate time.Time
	found := false
	for _, key := range keys {
		date, ok := filter.DateKey(key)
		if !ok {
			continue
		}
		if !d.backDate.IsZero() && date.After(d.backDate) {
			continue
		}
		// ties resolve to the lexically greater key, for determinism
		if !found || date.After(newestDate) || (date.Equal(newestDate) && key > newest) {
			newest, newestDate, found = key, date, true
		}
	}
	if !found {
		return nil, errors.EmptyEnumerationError{Source: "load-last selection"}
	}
	value, err := d.loader.Load(ctx, newest)
	if err != nil {
		return nil, errors.PartitionLoadError{Key: newest, Err: err}
	}
	d.log.WithField("key", newest).Info("Loaded newest partition")
	return value, nil
}

// Describe reports the dataset's configuration for logs and errors
func (d *LoadLast) Describe() map[string]interface{} {
	desc := map[string]interface{}{"selection": "newest"}
	if !d.backDate.IsZero() {
		desc["back_date"] = d.backDate.Format("2006-01-02")
	}
	return desc
}

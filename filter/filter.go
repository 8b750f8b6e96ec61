package filter

import (
	"fmt"
	"path/filepath"
	"regexp"
	"time"

	"github.com/hashicorp/go-multierror"

	parti "github.com/go-parti/parti"
	"github.com/go-parti/parti/errors"
	"github.com/go-parti/parti/internal/util"
)

// dateLayout is the layout for date bounds in filter specifications
const dateLayout = "2006-01-02"

// Pattern returns a Filter which matches partition keys against a regular
// expression. An invalid expression is a configuration error.
func Pattern(expr string) (parti.Filter, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, errors.ConfigurationError{Reason: fmt.Sprintf("pattern %q does not compile: %v", expr, err)}
	}
	return func(key string) bool {
		return re.MatchString(key)
	}, nil
}

// Glob returns a Filter which matches the base name of partition keys against
// a shell-style glob pattern. An invalid pattern is a configuration error.
func Glob(pattern string) (parti.Filter, error) {
	if _, err := filepath.Match(pattern, ""); err != nil {
		return nil, errors.ConfigurationError{Reason: fmt.Sprintf("glob %q is malformed: %v", pattern, err)}
	}
	return func(key string) bool {
		matched, _ := filepath.Match(pattern, filepath.Base(key))
		return matched
	}, nil
}

// DateRange returns a Filter which matches partition keys whose embedded date
// falls within [start, end], inclusive. Bounds use the YYYY-MM-DD layout.
// Keys without a detectable date never match. Unparseable or inverted bounds
// are configuration errors.
func DateRange(start string, end string) (parti.Filter, error) {
	var merr *multierror.Error
	from, err := time.Parse(dateLayout, start)
	if err != nil {
		merr = multierror.Append(merr, fmt.Errorf("start bound %q is not a %s date", start, dateLayout))
	}
	until, err := time.Parse(dateLayout, end)
	if err != nil {
		merr = multierror.Append(merr, fmt.Errorf("end bound %q is not a %s date", end, dateLayout))
	}
	if merr != nil {
		return nil, errors.ConfigurationError{Reason: util.FormatMultiError(merr.Errors)}
	}
	if from.After(until) {
		return nil, errors.ConfigurationError{Reason: fmt.Sprintf("date range is inverted: %s is after %s", start, end)}
	}
	return between(from, until), nil
}

// A Scale is the unit in which a trailing Window is measured
type Scale int

const (
	// Days measures a Window in days
	Days Scale = iota
	// Months measures a Window in months
	Months
	// Years measures a Window in years
	Years
)

// Window returns a Filter which matches partition keys whose embedded date
// falls within the trailing window of the given length ending at end,
// inclusive at both bounds. A non-positive length is a configuration error.
func Window(end time.Time, scale Scale, length int) (parti.Filter, error) {
	if length <= 0 {
		return nil, errors.ConfigurationError{Reason: fmt.Sprintf("window length %d must be positive", length)}
	}
	var start time.Time
	switch scale {
	case Days:
		start = end.AddDate(0, 0, -length)
	case Months:
		start = end.AddDate(0, -length, 0)
	case Years:
		start = end.AddDate(-length, 0, 0)
	default:
		return nil, errors.ConfigurationError{Reason: fmt.Sprintf("unknown window scale %d", scale)}
	}
	return between(start, end), nil
}

func between(start time.Time, end time.Time) parti.Filter {
	return func(key string) bool {
		d, ok := DateKey(key)
		if !ok {
			return false
		}
		return !d.Before(start) && !d.After(end)
	}
}

// Not returns a Filter which inverts another Filter for every key
func Not(f parti.Filter) parti.Filter {
	return func(key string) bool {
		return !f(key)
	}
}

// All returns a Filter which matches keys matched by every given Filter.
// With no filters it matches every key.
func All(filters ...parti.Filter) parti.Filter {
	return func(key string) bool {
		for _, f := range filters {
			if !f(key) {
				return false
			}
		}
		return true
	}
}

// Any returns a Filter which matches keys matched by at least one given
// Filter. With no filters it matches no key.
func Any(filters ...parti.Filter) parti.Filter {
	return func(key string) bool {
		for _, f := range filters {
			if f(key) {
				return true
			}
		}
		return false
	}
}

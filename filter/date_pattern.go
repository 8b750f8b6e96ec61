package filter

import (
	"regexp"
	"time"
)

// Keys embed dates in a handful of conventional shapes: a four-digit year,
// month and day separated by "/", "-", "_" or nothing, or a two-digit year
// and month in the same separator variants. Patterns are tried full-date
// first for each separator, and the last match within a key wins, so
// "backfill/2022/01/15.csv" resolves to 2022-01-15 even when the key also
// contains other digit runs.
type datePattern struct {
	re     *regexp.Regexp
	layout string
}

var datePatterns = compileDatePatterns()

func compileDatePatterns() []datePattern {
	separators := []string{"/", "-", "_", ""}
	patterns := make([]datePattern, 0, len(separators)*2)
	for _, sep := range separators {
		patterns = append(patterns, datePattern{
			re:     regexp.MustCompile(`\d{4}` + regexp.QuoteMeta(sep) + `\d{2}` + regexp.QuoteMeta(sep) + `\d{2}`),
			layout: "2006" + sep + "01" + sep + "02",
		})
		patterns = append(patterns, datePattern{
			re:     regexp.MustCompile(`\d{2}` + regexp.QuoteMeta(sep) + `\d{2}`),
			layout: "06" + sep + "01",
		})
	}
	return patterns
}

// DateKey returns the last date embedded in a partition key, along with
// whether any date was detected at all
func DateKey(key string) (time.Time, bool) {
	for _, p := range datePatterns {
		matches := p.re.FindAllString(key, -1)
		if len(matches) == 0 {
			continue
		}
		t, err := time.Parse(p.layout, matches[len(matches)-1])
		if err != nil {
			// a digit run can match a pattern without being a real
			// date (e.g. month 13); try the next pattern
			continue
		}
		return t, true
	}
	return time.Time{}, false
}

package dataset

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/go-parti/parti/errors"
)

// Path templates may carry two placeholders: {date_path} for a date embedded
// in the directory structure and {date_file} for a date embedded in the file
// name. Anything else inside braces is rejected at construction.
const (
	datePathPlaceholder = "{date_path}"
	dateFilePlaceholder = "{date_file}"
)

var placeholderPattern = regexp.MustCompile(`\{(.*?)\}`)

// VersionConf configures a VersionedPath
type VersionConf struct {
	PathFormat      string        // Go time layout for {date_path}, e.g. 2006/01/02
	FileFormat      string        // Go time layout for {date_file}, e.g. 20060102
	BackDate        string        // Pins the reference day to a fixed YYYY-MM-DD date instead of the current day. Empty means no pinning.
	StartingWeekday *time.Weekday // Snaps the reference day back to the most recent occurrence of this weekday. Nil disables snapping.
}

// VersionedPath resolves date placeholders in a path template against a
// reference day, so that one catalog entry can address a daily or weekly
// versioned file layout
type VersionedPath struct {
	template string
	conf     *VersionConf
	backDate time.Time
}

// CreateVersionedPath is a factory for VersionedPaths. Unknown placeholders,
// placeholders without a configured format, and malformed back-dates are
// configuration errors.
func CreateVersionedPath(template string, conf *VersionConf) (*VersionedPath, error) {
	if conf == nil {
		conf = &VersionConf{}
	}
	if conf.StartingWeekday != nil && (*conf.StartingWeekday < time.Sunday || *conf.StartingWeekday > time.Saturday) {
		return nil, errors.ConfigurationError{Reason: fmt.Sprintf("starting weekday %d is not a weekday", *conf.StartingWeekday)}
	}
	for _, match := range placeholderPattern.FindAllStringSubmatch(template, -1) {
		switch "{" + match[1] + "}" {
		case datePathPlaceholder:
			if conf.PathFormat == "" {
				return nil, errors.ConfigurationError{Reason: "PathFormat must be provided when the path contains {date_path}"}
			}
		case dateFilePlaceholder:
			if conf.FileFormat == "" {
				return nil, errors.ConfigurationError{Reason: "FileFormat must be provided when the path contains {date_file}"}
			}
		default:
			return nil, errors.ConfigurationError{Reason: fmt.Sprintf("placeholder {%s} is not allowed in the path", match[1])}
		}
	}
	vp := &VersionedPath{template: template, conf: conf}
	if conf.BackDate != "" {
		backDate, err := time.Parse("2006-01-02", conf.BackDate)
		if err != nil {
			return nil, errors.ConfigurationError{Reason: fmt.Sprintf("back date %q is not a 2006-01-02 date", conf.BackDate)}
		}
		vp.backDate = backDate
	}
	return vp, nil
}

// Resolve formats the template's placeholders against the reference day
// derived from now: the back-date when one is pinned, snapped back to the
// configured starting weekday when one is set
func (v *VersionedPath) Resolve(now time.Time) string {
	day := v.referenceDay(now)
	resolved := v.template
	if v.conf.PathFormat != "" {
		resolved = strings.ReplaceAll(resolved, datePathPlaceholder, day.Format(v.conf.PathFormat))
	}
	if v.conf.FileFormat != "" {
		resolved = strings.ReplaceAll(resolved, dateFilePlaceholder, day.Format(v.conf.FileFormat))
	}
	return resolved
}

func (v *VersionedPath) referenceDay(now time.Time) time.Time {
	day := now
	if !v.backDate.IsZero() {
		day = v.backDate
	}
	if v.conf.StartingWeekday != nil {
		diff := (int(day.Weekday()) - int(*v.conf.StartingWeekday) + 7) % 7
		day = day.AddDate(0, 0, -diff)
	}
	return day
}

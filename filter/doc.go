// Package filter provides factories for partition-key predicates: date
// ranges, regular expressions, globs and boolean composition. All factories
// validate their specification at construction time, so that a malformed
// filter surfaces as a configuration error before any key is ever tested.
package filter

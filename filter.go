package parti

// A Filter is a pure predicate over partition keys. Filters must be free of
// side effects so that they are safely reusable across many keys and callers,
// and so that repeated evaluation of the same key always yields the same
// answer. Factories for common filters live in the filter package.
type Filter func(key string) bool

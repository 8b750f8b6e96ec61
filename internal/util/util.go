package util

import (
	"fmt"
)

// FormatMultiError formats multierrors for logging and error messages
func FormatMultiError(merrs []error) string {
	var msg = ""
	for i := 0; i < len(merrs); i++ {
		msg += fmt.Sprintf("%+v\n", merrs[i])
	}
	return msg
}

// IdentifierSafe returns true iff a partition key can be embedded verbatim
// in a generated node or output name
func IdentifierSafe(key string) bool {
	if len(key) == 0 {
		return false
	}
	for _, r := range key {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '.' || r == '_' || r == '-':
		default:
			return false
		}
	}
	return true
}

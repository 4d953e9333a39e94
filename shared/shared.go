package shared

import (
	"fmt"
	"strconv"
	"strings"

	"taskorganizer/shared/failure"
)

const cacheKeySeparator = ":"

// BuildCacheKey joins key parts with a colon, e.g. "limiter:10.0.0.1:curl".
func BuildCacheKey(parts ...string) string {
	return strings.Join(parts, cacheKeySeparator)
}

// ParseID parses a path identifier, rejecting anything that is not a base-10 integer.
func ParseID(raw, field string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		msg := fmt.Sprintf("%s must be an integer", field)

		return 0, failure.Validation(msg, failure.FieldError{Field: field, Message: msg}) //nolint:wrapcheck
	}

	return id, nil
}

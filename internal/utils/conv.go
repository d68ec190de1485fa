package utils

import (
	"strconv"
	"strings"

	"recipeshare/internal/apperr"
)

// ParseID parses a positive decimal identifier.
func ParseID(s string) (uint, error) {
	id, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
	if err != nil || id == 0 {
		return 0, apperr.InvalidInput("Invalid id")
	}
	return uint(id), nil
}

package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/taskgraph-api/internal/constants"
)

// GetLimitParam extracts the "limit" query parameter. It returns 0, meaning
// "use the default", when the parameter is absent or not a positive number,
// and caps larger values at the maximum page size.
func GetLimitParam(c *gin.Context) int {
	limit, err := strconv.Atoi(c.Query("limit"))
	if err != nil || limit <= 0 {
		return 0
	}
	if limit > constants.MaxLogLimit {
		return constants.MaxLogLimit
	}
	return limit
}

// ParseID parses a generated entity id from a path or query value.
func ParseID(s string) (uint64, bool) {
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}

// OptionalID parses an optional id query parameter. ok is false only when
// the parameter is present and malformed.
func OptionalID(c *gin.Context, key string) (id *uint64, ok bool) {
	raw, present := c.GetQuery(key)
	if !present || raw == "" {
		return nil, true
	}
	v, valid := ParseID(raw)
	if !valid {
		return nil, false
	}
	return &v, true
}

package api

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// paginationParams reads page/page_size query values with the same
// defaults every listing uses. Bad values fall back rather than error.
func paginationParams(ctx *gin.Context) (limit int32, offset int32) {
	page := int64(1)
	size := int64(20)

	if raw := ctx.Query("page"); raw != "" {
		if parsed, err := strconv.ParseInt(raw, 10, 32); err == nil && parsed > 0 {
			page = parsed
		}
	}
	if raw := ctx.Query("page_size"); raw != "" {
		if parsed, err := strconv.ParseInt(raw, 10, 32); err == nil && parsed > 0 && parsed <= 100 {
			size = parsed
		}
	}

	return int32(size), int32((page - 1) * size)
}

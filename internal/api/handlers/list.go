package handlers

import (
	"strconv"

	"procureflow-api-server/internal/aggregate"

	"github.com/gin-gonic/gin"
)

const defaultPageSize = 10

// listQuery pulls the shared filter/pagination parameters off a list
// request. Status/priority/department default to the "All" wildcard.
func listQuery(c *gin.Context) (aggregate.Filter, int, int) {
	filter := aggregate.Filter{
		Search:     c.Query("search"),
		Status:     c.DefaultQuery("status", aggregate.Wildcard),
		Priority:   c.DefaultQuery("priority", aggregate.Wildcard),
		Department: c.DefaultQuery("department", aggregate.Wildcard),
	}
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		page = 1
	}
	pageSize, err := strconv.Atoi(c.DefaultQuery("pageSize", strconv.Itoa(defaultPageSize)))
	if err != nil || pageSize < 1 {
		pageSize = defaultPageSize
	}
	return filter, page, pageSize
}

func listResponse(items interface{}, total, start, end int) gin.H {
	return gin.H{
		"items": items,
		"total": total,
		"start": start,
		"end":   end,
	}
}

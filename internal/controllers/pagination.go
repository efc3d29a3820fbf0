package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"fleet_booking/internal/workflow"
)

const (
	defaultPage  = 1
	defaultLimit = 10
)

type pageParams struct {
	Page  int
	Limit int
}

type paginationMeta struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

// parsePageParams reads page/limit from the query string. Missing values
// default to page=1, limit=10; anything non-numeric or non-positive is a
// validation error.
func parsePageParams(c *gin.Context) (pageParams, error) {
	p := pageParams{Page: defaultPage, Limit: defaultLimit}

	if raw := c.Query("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page <= 0 {
			return p, workflow.Validation("page must be a positive integer")
		}
		p.Page = page
	}
	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit <= 0 {
			return p, workflow.Validation("limit must be a positive integer")
		}
		p.Limit = limit
	}
	return p, nil
}

func (p pageParams) offset() int {
	return (p.Page - 1) * p.Limit
}

func newPaginationMeta(p pageParams, total int64) paginationMeta {
	return paginationMeta{
		Page:  p.Page,
		Limit: p.Limit,
		Total: total,
		Pages: pageCount(total, p.Limit),
	}
}

// pageCount is ceil(total/limit).
func pageCount(total int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}

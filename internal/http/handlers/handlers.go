// Package handlers provides HTTP handler implementations for the public API.
//
// This file wires the handler set to its service dependencies and holds the
// small request helpers shared across endpoints.
package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-vitamins-backend/internal/utils"
)

// Handlers groups HTTP endpoints for recommendations, the product catalog,
// orders, and the survey. It depends on abstract service interfaces to keep
// transport concerns separate from business logic.
type Handlers struct {
	recSvc    RecommendationService
	prodSvc   ProductService
	orderSvc  OrderService
	surveySvc SurveyService
}

// New constructs and returns a Handlers instance bound to the given services.
func New(recSvc RecommendationService, prodSvc ProductService, orderSvc OrderService, surveySvc SurveyService) *Handlers {
	return &Handlers{recSvc: recSvc, prodSvc: prodSvc, orderSvc: orderSvc, surveySvc: surveySvc}
}

// userID extracts the user id from Gin context (set by upstream middleware).
// If absent, it falls back to "X-User-ID" header (tests use it), and finally
// to "demo-user". It never touches c.Request if it's nil.
func userID(c *gin.Context) string {
	if v, ok := c.Get("userID"); ok {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	if c != nil && c.Request != nil {
		if h := strings.TrimSpace(c.GetHeader("X-User-ID")); h != "" {
			return h
		}
	}
	return "demo-user"
}

// Pagination carries pagination metadata for list responses.
type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
}

// clampPagination parses and bounds page and page_size query params to sane
// defaults and limits, returning (page, pageSize).
func clampPagination(c *gin.Context) (page, pageSize int) {
	const (
		defaultPage     = 1
		defaultPageSize = 20
		maxPageSize     = 100
	)
	page = utils.AtoiDefault(c.Query("page"), defaultPage)
	if page < 1 {
		page = 1
	}
	pageSize = utils.AtoiDefault(c.Query("page_size"), defaultPageSize)
	if pageSize < 1 {
		pageSize = 1
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return
}

package dto

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

var errInvalidPagination = errors.New("invalid pagination parameters")

// PaginationRequest is the validated page window: pageSize 1-100,
// pageNumber 1-based.
type PaginationRequest struct {
	PageSize   int
	PageNumber int
}

// PaginationFromQuery parses pageSize/pageNumber query parameters.
func PaginationFromQuery(c *gin.Context) (PaginationRequest, error) {
	pageSize, err := strconv.Atoi(c.DefaultQuery("pageSize", strconv.Itoa(DefaultPageSize)))
	if err != nil || pageSize < 1 || pageSize > MaxPageSize {
		return PaginationRequest{}, errInvalidPagination
	}

	pageNumber, err := strconv.Atoi(c.DefaultQuery("pageNumber", "1"))
	if err != nil || pageNumber < 1 {
		return PaginationRequest{}, errInvalidPagination
	}

	return PaginationRequest{PageSize: pageSize, PageNumber: pageNumber}, nil
}

// Page is a paginated response envelope.
type Page[T any] struct {
	Total int64 `json:"total"`
	Items []T   `json:"items"`
}

package dto

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

const (
	SortDirAsc  = "ASC"
	SortDirDesc = "DESC"
)

type QueryParams struct {
	Page    int    `json:"page"     validate:"omitempty,min=0"`
	Limit   int    `json:"limit"    validate:"omitempty,min=0"`
	SortBy  string `json:"sort_by"  validate:"omitempty"`
	SortDir string `json:"sort_dir" validate:"omitempty,oneof=ASC DESC"`
}

// Apply writes ordering and pagination onto the request query.
//
//	q := dto.QueryParams{SortBy: "created_at", SortDir: dto.SortDirDesc, Limit: 20}
//	q.Apply(values) // order=created_at.desc&limit=20
//
// Page is only honoured together with Limit.
func (q *QueryParams) Apply(values url.Values) {
	if q.SortBy != "" {
		dir := strings.ToUpper(q.SortDir)
		if dir != SortDirDesc {
			dir = SortDirAsc
		}

		values.Set("order", fmt.Sprintf("%s.%s", q.SortBy, strings.ToLower(dir)))
	}

	if q.Limit > 0 {
		values.Set("limit", strconv.Itoa(q.Limit))

		if q.Page > 0 {
			values.Set("offset", strconv.Itoa((q.Page-1)*q.Limit))
		}
	}
}

// Newest orders by creation time, newest first.
func Newest() QueryParams {
	return QueryParams{SortBy: "created_at", SortDir: SortDirDesc}
}

// Oldest orders by creation time, oldest first.
func Oldest() QueryParams {
	return QueryParams{SortBy: "created_at", SortDir: SortDirAsc}
}

package server

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"todolist/internal/db/models"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// parsePageable reads page, size and sort query parameters. sort is
// "field" or "field,desc"; fields go through the per-resource column
// whitelist so only known columns ever reach the ORDER BY clause.
func parsePageable(r *http.Request, sortColumns map[string]string, defaultSort string) (models.Pageable, error) {
	page := models.Pageable{
		Page:       0,
		Size:       defaultPageSize,
		SortColumn: sortColumns[defaultSort],
	}

	if raw := r.URL.Query().Get("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return page, fmt.Errorf("invalid page value: %s", raw)
		}
		page.Page = n
	}

	if raw := r.URL.Query().Get("size"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return page, fmt.Errorf("invalid size value: %s", raw)
		}
		if n > maxPageSize {
			n = maxPageSize
		}
		page.Size = n
	}

	if raw := r.URL.Query().Get("sort"); raw != "" {
		field := raw
		if name, direction, found := strings.Cut(raw, ","); found {
			field = name
			switch strings.ToLower(direction) {
			case "asc":
			case "desc":
				page.SortDesc = true
			default:
				return page, fmt.Errorf("invalid sort direction: %s", direction)
			}
		}

		column, ok := sortColumns[field]
		if !ok {
			return page, fmt.Errorf("unknown sort field: %s", field)
		}
		page.SortColumn = column
	}

	return page, nil
}

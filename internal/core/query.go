package core

import (
	"fmt"
	"strconv"

	"github.com/rbeckert/forum/internal/httperr"
	"github.com/rbeckert/forum/internal/validator"
)

// Short-form aliases accepted on every list endpoint.
var queryAliases = []validator.AliasPair{
	{From: "s", To: "sort_by"},
	{From: "o", To: "order"},
	{From: "a", To: "author"},
	{From: "t", To: "topic"},
	{From: "l", To: "limit"},
	{From: "p", To: "page"},
}

func stringValue(obj map[string]any, key string) (string, bool) {
	value, ok := obj[key]
	if !ok {
		return "", false
	}
	str, ok := value.(string)
	return str, ok
}

// readPagination extracts validated limit/page values. A page without a
// limit is rejected here, before any query runs. Zero means "not supplied".
func readPagination(query map[string]any) (limit int64, page int64, err error) {
	limitStr, hasLimit := stringValue(query, "limit")
	pageStr, hasPage := stringValue(query, "page")

	if hasPage && !hasLimit {
		return 0, 0, httperr.BadRequestf("Bad request. Can't give paginated response if no limit is defined in query")
	}

	if hasLimit {
		limit, err = strconv.ParseInt(limitStr, 10, 64)
		if err != nil {
			return 0, 0, httperr.BadRequestf("Bad request. Unexpected value for limit in query.")
		}
	}
	if hasPage {
		page, err = strconv.ParseInt(pageStr, 10, 64)
		if err != nil {
			return 0, 0, httperr.BadRequestf("Bad request. Unexpected value for page in query.")
		}
	}

	return limit, page, nil
}

// orderBy builds the ORDER BY clause from an allow-listed sort column and
// direction, always appending the primary key as tiebreaker so pagination
// stays stable across pages when the sort key ties.
func orderBy(query map[string]any, columns map[string]string, defaultColumn, defaultOrder, tiebreaker string) string {
	sortBy := defaultColumn
	if s, ok := stringValue(query, "sort_by"); ok {
		sortBy = s
	}

	order := defaultOrder
	if o, ok := stringValue(query, "order"); ok {
		order = o
	}
	direction := "DESC"
	if order == "asc" {
		direction = "ASC"
	}

	return fmt.Sprintf("%s %s, %s ASC", columns[sortBy], direction, tiebreaker)
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}

// requireNumeric reads a numeric value that must be present in a JSON
// payload, such as inc_votes.
func requireNumeric(payload map[string]any, key string) (int64, error) {
	switch v := payload[key].(type) {
	case float64:
		return int64(v), nil
	case int:
		return int64(v), nil
	case int64:
		return v, nil
	case string:
		if number, err := strconv.ParseFloat(v, 64); err == nil {
			return int64(number), nil
		}
	}
	return 0, httperr.BadRequestf("Bad request. The value of %s must be a number.", key)
}

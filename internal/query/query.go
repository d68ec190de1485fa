// Package query turns recipe list requests into a filter plus a page window.
//
// All present clauses are ANDed: the search clause (title OR any
// ingredient, case-insensitive substring), a lower bound on the average
// rating and an upper bound on preparation time. Results are ordered by
// recipe id ascending so page boundaries are stable between calls.
package query

import (
	"math"
	"net/url"
	"strconv"
	"strings"

	"recipeshare/internal/apperr"
	"recipeshare/internal/models"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100

	DefaultTopLimit = 5
	MaxTopLimit     = 50
)

type RecipeFilter struct {
	Search             string
	MinRating          *float64
	MaxPreparationTime *float64
}

type Page struct {
	Number int
	Limit  int
}

// Offset is (Number-1)*Limit, saturating at math.MaxInt so a huge page
// lands past the last row instead of wrapping negative.
func (p Page) Offset() int {
	if p.Number <= 1 || p.Limit <= 0 {
		return 0
	}
	if p.Number-1 > math.MaxInt/p.Limit {
		return math.MaxInt
	}
	return (p.Number - 1) * p.Limit
}

type RecipeQuery struct {
	Filter RecipeFilter
	Page   Page
}

// ParseRecipeQuery reads search, rating, preparationTime, page and limit.
// A missing or unparsable page falls back to 1 and anything below 1 is
// raised to 1. limit must be a positive integer when given and is capped
// at MaxLimit.
func ParseRecipeQuery(values url.Values) (RecipeQuery, error) {
	q := RecipeQuery{
		Filter: RecipeFilter{Search: strings.TrimSpace(values.Get("search"))},
		Page:   Page{Number: DefaultPage, Limit: DefaultLimit},
	}

	if raw := values.Get("page"); raw != "" {
		if n, err := strconv.Atoi(strings.TrimSpace(raw)); err == nil && n > 1 {
			q.Page.Number = n
		}
	}

	if raw := values.Get("limit"); raw != "" {
		n, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil || n <= 0 {
			return RecipeQuery{}, apperr.InvalidInput("limit must be a positive integer")
		}
		q.Page.Limit = min(n, MaxLimit)
	}

	var err error
	if q.Filter.MinRating, err = parseBound(values, "rating"); err != nil {
		return RecipeQuery{}, err
	}
	if q.Filter.MaxPreparationTime, err = parseBound(values, "preparationTime"); err != nil {
		return RecipeQuery{}, err
	}
	return q, nil
}

func parseBound(values url.Values, key string) (*float64, error) {
	raw := strings.TrimSpace(values.Get(key))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, apperr.InvalidInput(key + " must be a number")
	}
	return &v, nil
}

// ParseTopLimit reads the limit for the top-rated listing, clamped to
// [1, MaxTopLimit].
func ParseTopLimit(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n <= 0 {
		return DefaultTopLimit
	}
	return min(n, MaxTopLimit)
}

// TotalPages is ceil(total/limit). No matches means zero pages.
func TotalPages(total int64, limit int) int {
	if limit <= 0 || total <= 0 {
		return 0
	}
	pages := total / int64(limit)
	if total%int64(limit) != 0 {
		pages++
	}
	return int(pages)
}

// EscapeLike escapes LIKE metacharacters so the search term matches literally.
func EscapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

// LikePattern wraps the escaped term for a substring ILIKE.
func (f RecipeFilter) LikePattern() string {
	return "%" + EscapeLike(f.Search) + "%"
}

// Matches evaluates the filter against a single recipe. Stores without a
// query language use it to apply the same semantics as the SQL scope.
func (f RecipeFilter) Matches(r *models.Recipe) bool {
	if f.Search != "" && !matchesSearch(r, strings.ToLower(f.Search)) {
		return false
	}
	if f.MinRating != nil && r.AverageRating < *f.MinRating {
		return false
	}
	if f.MaxPreparationTime != nil && float64(r.PreparationTime) > *f.MaxPreparationTime {
		return false
	}
	return true
}

func matchesSearch(r *models.Recipe, term string) bool {
	if strings.Contains(strings.ToLower(r.Title), term) {
		return true
	}
	for _, ing := range r.Ingredients {
		if strings.Contains(strings.ToLower(ing), term) {
			return true
		}
	}
	return false
}

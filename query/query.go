// Package query derives the filtered, sorted and paginated page shown for
// an entity list.
package query

import (
	"slices"
	"strings"
	"time"

	"golang.org/x/text/cases"
)

// All is the category filter that lets every record through.
const All = "All"

type Direction string

const (
	Ascending  Direction = "ascending"
	Descending Direction = "descending"
)

// ParseDirection accepts "asc"/"desc" shorthands. Anything else is ascending.
func ParseDirection(s string) Direction {
	switch strings.ToLower(s) {
	case "desc", "descending":
		return Descending
	default:
		return Ascending
	}
}

// Spec is the per-entity configuration of a list view.
type Spec[T any] struct {
	PageSize     int
	SearchFields []func(T) string
	Category     func(T) string
	SortKeys     map[string]func(T) any
}

// Request is one view state to evaluate.
type Request struct {
	Search    string    `form:"search" json:"search"`
	Category  string    `form:"category" json:"category"`
	SortKey   string    `form:"sort" json:"sort"`
	Direction Direction `form:"direction" json:"direction"`
	Page      int       `form:"page" json:"page"`
}

// Page is the projection handed to the renderer.
type Page[T any] struct {
	Items      []T `json:"items"`
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	TotalPages int `json:"totalPages"`
	Total      int `json:"total"`
}

// Run filters, sorts and paginates items. items is never modified.
func Run[T any](spec Spec[T], items []T, req Request) Page[T] {
	filtered := Filter(spec, items, req.Search, req.Category)
	Sort(spec, filtered, req.SortKey, req.Direction)
	return Paginate(filtered, req.Page, spec.PageSize)
}

var folder = cases.Fold()

func fold(s string) string {
	return folder.String(s)
}

// Filter keeps records matching the search term on any search field and the
// category exactly. Empty search and All (or empty) category match everything.
func Filter[T any](spec Spec[T], items []T, search, category string) []T {
	term := fold(search)
	out := make([]T, 0, len(items))
	for _, it := range items {
		if !matchesCategory(spec, it, category) {
			continue
		}
		if !matchesSearch(spec, it, term) {
			continue
		}
		out = append(out, it)
	}
	return out
}

func matchesCategory[T any](spec Spec[T], it T, category string) bool {
	if category == "" || category == All || spec.Category == nil {
		return true
	}
	return spec.Category(it) == category
}

func matchesSearch[T any](spec Spec[T], it T, term string) bool {
	if term == "" || len(spec.SearchFields) == 0 {
		return true
	}
	for _, field := range spec.SearchFields {
		if strings.Contains(fold(field(it)), term) {
			return true
		}
	}
	return false
}

// Sort orders items in place by key. The sort is stable, and a falsy value
// on either side compares equal, so such records keep their relative order
// to their neighbours. An unknown key leaves the order unchanged.
func Sort[T any](spec Spec[T], items []T, key string, dir Direction) {
	get, ok := spec.SortKeys[key]
	if !ok {
		return
	}
	slices.SortStableFunc(items, func(a, b T) int {
		c := Compare(get(a), get(b))
		if dir == Descending {
			return -c
		}
		return c
	})
}

// Compare orders two sort values. Falsy values (nil, "", 0, false, zero
// time) tie with anything.
func Compare(a, b any) int {
	if falsy(a) || falsy(b) {
		return 0
	}
	switch x := a.(type) {
	case string:
		if y, ok := b.(string); ok {
			return strings.Compare(x, y)
		}
	case time.Time:
		if y, ok := b.(time.Time); ok {
			return x.Compare(y)
		}
	}
	fa, aok := number(a)
	fb, bok := number(b)
	if aok && bok {
		switch {
		case fa < fb:
			return -1
		case fa > fb:
			return 1
		}
	}
	return 0
}

func falsy(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case string:
		return x == ""
	case bool:
		return !x
	case time.Time:
		return x.IsZero()
	}
	if f, ok := number(v); ok {
		return f == 0
	}
	return false
}

func number(v any) (float64, bool) {
	switch x := v.(type) {
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	case float64:
		return x, true
	case bool:
		if x {
			return 1, true
		}
		return 0, true
	}
	return 0, false
}

// LastPage is ceil(total/pageSize).
func LastPage(total, pageSize int) int {
	if pageSize <= 0 || total <= 0 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}

// ClampPage keeps page within [1, last]. With no records the page is 1.
func ClampPage(page, total, pageSize int) int {
	last := LastPage(total, pageSize)
	if page > last {
		page = last
	}
	if page < 1 {
		page = 1
	}
	return page
}

// Paginate slices out the clamped page.
func Paginate[T any](items []T, page, pageSize int) Page[T] {
	if pageSize <= 0 {
		pageSize = len(items)
		if pageSize == 0 {
			pageSize = 1
		}
	}
	page = ClampPage(page, len(items), pageSize)
	start := (page - 1) * pageSize
	end := min(start+pageSize, len(items))
	if start > end {
		start = end
	}
	return Page[T]{
		Items:      items[start:end],
		Page:       page,
		PageSize:   pageSize,
		TotalPages: LastPage(len(items), pageSize),
		Total:      len(items),
	}
}

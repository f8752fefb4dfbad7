package query

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type dish struct {
	ID       int64
	Name     string
	Category string
	Price    float64
}

var dishSpec = Spec[dish]{
	PageSize:     2,
	SearchFields: []func(dish) string{func(d dish) string { return d.Name }, func(d dish) string { return d.Category }},
	Category:     func(d dish) string { return d.Category },
	SortKeys: map[string]func(dish) any{
		"id":    func(d dish) any { return d.ID },
		"name":  func(d dish) any { return d.Name },
		"price": func(d dish) any { return d.Price },
	},
}

func dishes() []dish {
	return []dish{
		{1, "Pizza", "Fast Food", 12.99},
		{2, "Burger", "Fast Food", 8.99},
		{3, "Sushi", "Japanese", 22.99},
		{4, "Pasta", "Italian", 0},
		{5, "Sushi Roll", "Japanese", 18.99},
	}
}

func ids(items []dish) []int64 {
	out := make([]int64, len(items))
	for i, d := range items {
		out[i] = d.ID
	}
	return out
}

func TestFilterSearchIsCaseInsensitiveAcrossFields(t *testing.T) {
	got := Filter(dishSpec, dishes(), "JAPAN", All)
	assert.Equal(t, []int64{3, 5}, ids(got))

	got = Filter(dishSpec, dishes(), "sUsHi", "")
	assert.Equal(t, []int64{3, 5}, ids(got))
}

func TestFilterAndSearchCommute(t *testing.T) {
	items := dishes()
	for _, term := range []string{"", "s", "pi", "roll", "zzz"} {
		for _, cat := range []string{All, "Fast Food", "Japanese", "Italian"} {
			a := Filter(dishSpec, Filter(dishSpec, items, "", cat), term, All)
			b := Filter(dishSpec, Filter(dishSpec, items, term, All), "", cat)
			assert.Equal(t, ids(a), ids(b), "term=%q cat=%q", term, cat)
		}
	}
}

func TestSortIsStableAndFalsyTies(t *testing.T) {
	items := dishes()
	Sort(dishSpec, items, "price", Ascending)
	// Pasta has price 0 and ties with everything; the rest is ordered around it.
	assert.Equal(t, []int64{2, 1, 3, 4, 5}, ids(items))

	items = dishes()
	Sort(dishSpec, items, "name", Descending)
	assert.Equal(t, []int64{5, 3, 1, 4, 2}, ids(items))

	items = dishes()
	Sort(dishSpec, items, "unknown", Ascending)
	assert.Equal(t, []int64{1, 2, 3, 4, 5}, ids(items))
}

func TestCompare(t *testing.T) {
	now := time.Now()
	assert.Equal(t, 0, Compare(nil, 5))
	assert.Equal(t, 0, Compare("", "a"))
	assert.Equal(t, 0, Compare(0.0, 3.0))
	assert.Equal(t, -1, Compare("a", "b"))
	assert.Equal(t, 1, Compare(int64(9), int64(2)))
	assert.Equal(t, -1, Compare(now, now.Add(time.Hour)))
	assert.Equal(t, 0, Compare(time.Time{}, now))
}

func TestPaginateClamps(t *testing.T) {
	items := dishes()

	p := Paginate(items, 0, 2)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 3, p.TotalPages)
	assert.Equal(t, []int64{1, 2}, ids(p.Items))

	p = Paginate(items, -4, 2)
	assert.Equal(t, 1, p.Page)

	p = Paginate(items, 99, 2)
	assert.Equal(t, 3, p.Page)
	assert.Equal(t, []int64{5}, ids(p.Items))

	for page := -2; page < 10; page++ {
		p := Paginate(items, page, 2)
		assert.LessOrEqual(t, p.Page, LastPage(len(items), 2))
		assert.GreaterOrEqual(t, p.Page, 1)
	}
}

func TestPaginateEmpty(t *testing.T) {
	p := Paginate([]dish{}, 3, 5)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 0, p.TotalPages)
	assert.Empty(t, p.Items)
}

func TestRunDoesNotReorderInput(t *testing.T) {
	items := dishes()
	p := Run(dishSpec, items, Request{SortKey: "name", Direction: Ascending, Page: 1})
	require.Len(t, p.Items, 2)
	assert.Equal(t, "Burger", p.Items[0].Name)
	assert.Equal(t, []int64{1, 2, 3, 4, 5}, ids(items))
}

func TestStateResetsPageOnSearchAndCategory(t *testing.T) {
	s := NewState("id")
	s.SetPage(3)
	s.SetSearch("pi")
	assert.Equal(t, 1, s.Request().Page)

	s.SetPage(2)
	s.SetSearch("pi")
	assert.Equal(t, 2, s.Request().Page, "same term keeps the page")

	s.SetCategory("Japanese")
	assert.Equal(t, 1, s.Request().Page)

	s.RequestSort("id")
	assert.Equal(t, Descending, s.Request().Direction)
	s.RequestSort("id")
	assert.Equal(t, Ascending, s.Request().Direction)
	s.RequestSort("name")
	assert.Equal(t, Ascending, s.Request().Direction)

	s.SetPage(1)
	s.Next(5, 2)
	s.Next(5, 2)
	s.Next(5, 2)
	assert.Equal(t, 3, s.Request().Page)
	s.Prev(5, 2)
	assert.Equal(t, 2, s.Request().Page)
}

package query

// State is the view cursor of one list screen. Changing the search term or
// category sends the user back to the first page.
type State struct {
	req Request
}

func NewState(sortKey string) *State {
	return &State{req: Request{Category: All, SortKey: sortKey, Direction: Ascending, Page: 1}}
}

func (s *State) Request() Request {
	return s.req
}

func (s *State) SetSearch(term string) {
	if term != s.req.Search {
		s.req.Search = term
		s.req.Page = 1
	}
}

func (s *State) SetCategory(category string) {
	if category == "" {
		category = All
	}
	if category != s.req.Category {
		s.req.Category = category
		s.req.Page = 1
	}
}

// RequestSort sorts by key ascending, or flips the direction when key is
// already the sort key and ascending.
func (s *State) RequestSort(key string) {
	dir := Ascending
	if s.req.SortKey == key && s.req.Direction == Ascending {
		dir = Descending
	}
	s.req.SortKey = key
	s.req.Direction = dir
}

func (s *State) SetPage(page int) {
	s.req.Page = page
}

// Next and Prev move one page, clamped against total records.
func (s *State) Next(total, pageSize int) {
	s.req.Page = ClampPage(ClampPage(s.req.Page, total, pageSize)+1, total, pageSize)
}

func (s *State) Prev(total, pageSize int) {
	s.req.Page = ClampPage(s.req.Page-1, total, pageSize)
}

package paging

// Finder runs a search over the full collection of records.
type Finder[T any] func(records []T) (index int, found bool, err error)

// Item is a record on the displayed page.
type Item[T any] struct {
	Record      T    `json:"record"`
	Index       int  `json:"index"`
	Highlighted bool `json:"highlighted"`
}

// View is the displayed page of a session.
type View[T any] struct {
	Page       int       `json:"page"`
	PerPage    int       `json:"per_page"`
	TotalPages int       `json:"total_pages"`
	Total      int       `json:"total"`
	State      State     `json:"state"`
	Match      *Match    `json:"match,omitempty"`
	Items      []Item[T] `json:"items"`
}

// Session holds the page and search state for one collection of records.
// The highlight is transient: it only exists while the session is Found and
// the active page is the page of the match.
type Session[T any] struct {
	records []T
	perPage int
	page    int
	state   State
	match   Match
	err     error
}

// NewSession constructs an idle session displaying the first page.
func NewSession[T any](records []T, perPage int) *Session[T] {
	return &Session[T]{
		records: records,
		perPage: max(perPage, 1),
		page:    1,
		state:   Idle,
	}
}

// State returns the current state of the session.
func (s *Session[T]) State() State {
	return s.state
}

// Page returns the active page number.
func (s *Session[T]) Page() int {
	return s.page
}

// PerPage returns the number of records per page.
func (s *Session[T]) PerPage() int {
	return s.perPage
}

// Len returns the number of records in the session.
func (s *Session[T]) Len() int {
	return len(s.records)
}

// Match returns the match while the session is Found.
func (s *Session[T]) Match() (Match, bool) {
	if s.state != Found {
		return Match{}, false
	}
	return s.match, true
}

// Err returns the reason the last query was rejected while the session
// is Invalid.
func (s *Session[T]) Err() error {
	if s.state != Invalid {
		return nil
	}
	return s.err
}

// Begin marks a search as started and drops any previous result.
func (s *Session[T]) Begin() {
	s.state = Searching
	s.match = Match{}
	s.err = nil
}

// Complete records the outcome of a search. A match moves the session to the
// page holding the record. No match or a rejected query leaves the page as is.
// An index that doesn't resolve to a record is treated as no match.
func (s *Session[T]) Complete(index int, found bool, err error) State {
	switch {
	case err != nil:
		s.state = Invalid
		s.err = err

	case !found || index < 0 || index >= len(s.records):
		s.state = NotFound

	default:
		s.match = Resolve(index, s.perPage)
		s.page = s.match.Page
		s.state = Found
	}

	return s.state
}

// Search runs the finder over the records and completes the search with
// its outcome.
func (s *Session[T]) Search(find Finder[T]) State {
	s.Begin()
	return s.Complete(find(s.records))
}

// SetPage changes the active page. Moving away from the page of a match
// clears the highlight and returns the session to Idle.
func (s *Session[T]) SetPage(page int) {
	page = clamp(page, s.perPage, len(s.records))
	if page == s.page {
		return
	}

	s.page = page
	if s.state == Found && s.match.Page != page {
		s.reset()
	}
}

// Next moves to the following page if there is one.
func (s *Session[T]) Next() {
	s.SetPage(s.page + 1)
}

// Prev moves to the previous page if there is one.
func (s *Session[T]) Prev() {
	s.SetPage(s.page - 1)
}

// SetPerPage changes the page size. A match stays highlighted on its newly
// resolved page, otherwise the first record of the active page stays visible.
func (s *Session[T]) SetPerPage(perPage int) {
	perPage = max(perPage, 1)
	if perPage == s.perPage {
		return
	}

	first, _ := Bounds(s.page, s.perPage, len(s.records))
	s.perPage = perPage

	if s.state == Found {
		s.match = Resolve(s.match.Index, perPage)
		s.page = s.match.Page
		return
	}

	s.page = clamp(first/perPage+1, perPage, len(s.records))
}

// Clear drops the search result. It is used when the query is cleared or
// edited.
func (s *Session[T]) Clear() {
	s.reset()
}

// Reload replaces the records, for instance once a refetch completes. A
// match whose index no longer resolves to a record becomes NotFound.
func (s *Session[T]) Reload(records []T) {
	s.records = records
	s.page = clamp(s.page, s.perPage, len(records))

	if s.state == Found && s.match.Index >= len(records) {
		s.match = Match{}
		s.state = NotFound
	}
}

// View returns the active page with the matched record flagged.
func (s *Session[T]) View() View[T] {
	start, end := Bounds(s.page, s.perPage, len(s.records))

	v := View[T]{
		Page:       s.page,
		PerPage:    s.perPage,
		TotalPages: TotalPages(len(s.records), s.perPage),
		Total:      len(s.records),
		State:      s.state,
		Items:      make([]Item[T], 0, end-start),
	}

	if m, ok := s.Match(); ok {
		v.Match = &m
	}

	for i := start; i < end; i++ {
		v.Items = append(v.Items, Item[T]{
			Record:      s.records[i],
			Index:       i,
			Highlighted: s.highlighted(i),
		})
	}

	return v
}

// highlighted reports whether the record at index renders highlighted.
func (s *Session[T]) highlighted(index int) bool {
	return s.state == Found && s.match.Page == s.page && s.match.Index == index
}

func (s *Session[T]) reset() {
	s.state = Idle
	s.match = Match{}
	s.err = nil
}

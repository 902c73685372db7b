package forecast

import (
	"cmp"
	"fmt"
	"slices"
)

// SortOrder orders the working list by temperature
type SortOrder string

const (
	SortNone SortOrder = "none"
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// ParseSortOrder accepts none/asc/desc (and the sort-asc/sort-desc select values)
func ParseSortOrder(value string) (SortOrder, error) {
	switch value {
	case "", "none":
		return SortNone, nil
	case "asc", "sort-asc":
		return SortAsc, nil
	case "desc", "sort-desc":
		return SortDesc, nil
	default:
		return SortNone, fmt.Errorf("unknown sort order %q", value)
	}
}

// FilterKind selects a subset of the original list
type FilterKind string

const (
	FilterNone        FilterKind = "none"
	FilterRain        FilterKind = "rain"
	FilterHighestTemp FilterKind = "highest-temp"
)

// ParseFilterKind accepts none/rain/highest-temp (and the filter-rain select value)
func ParseFilterKind(value string) (FilterKind, error) {
	switch value {
	case "", "none":
		return FilterNone, nil
	case "rain", "filter-rain":
		return FilterRain, nil
	case "highest-temp", "highestTemp":
		return FilterHighestTemp, nil
	default:
		return FilterNone, fmt.Errorf("unknown filter %q", value)
	}
}

// Navigation is a relative page move
type Navigation string

const (
	NavFirst Navigation = "first"
	NavPrev  Navigation = "prev"
	NavNext  Navigation = "next"
	NavLast  Navigation = "last"
)

const DefaultPageSize = 10

// ViewState is the active transformation over the original list
type ViewState struct {
	SortOrder SortOrder  `json:"sort_order"`
	Filter    FilterKind `json:"filter"`
	PageIndex int        `json:"page_index"`
	PageSize  int        `json:"page_size"`
}

// Store holds the pristine fetch result, the working (filtered/sorted) copy and
// the view parameters. The working list is always re-derived from the original,
// so filter and sort compose: a filter is applied first, then the active sort.
// Store is not safe for concurrent use; the owning session serialises access.
type Store struct {
	original List
	working  List
	view     ViewState
}

// NewStore creates an empty store; pageSize <= 0 falls back to DefaultPageSize
func NewStore(pageSize int) *Store {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Store{
		original: List{},
		working:  List{},
		view:     defaultView(pageSize),
	}
}

func defaultView(pageSize int) ViewState {
	return ViewState{
		SortOrder: SortNone,
		Filter:    FilterNone,
		PageIndex: 1,
		PageSize:  pageSize,
	}
}

// Seed replaces all state with a fresh fetch result and resets the view
func (s *Store) Seed(list List) {
	s.original = list.Clone()
	if s.original == nil {
		s.original = List{}
	}
	s.view = defaultView(s.view.PageSize)
	s.rederive()
}

// ApplySort sorts the current filter result by temperature (stable) and resets to page 1
func (s *Store) ApplySort(order SortOrder) {
	s.view.SortOrder = order
	s.rederive()
	s.view.PageIndex = 1
}

// ApplyFilter recomputes the working list from the original and resets to page 1
func (s *Store) ApplyFilter(kind FilterKind) {
	s.view.Filter = kind
	s.rederive()
	s.view.PageIndex = 1
}

// Page moves to page n (clamped to the valid range) and returns its slice
func (s *Store) Page(n int) List {
	s.view.PageIndex = clamp(n, 1, s.TotalPages())
	return s.CurrentPage()
}

// Navigate moves relative to the current page
func (s *Store) Navigate(nav Navigation) List {
	switch nav {
	case NavFirst:
		return s.Page(1)
	case NavPrev:
		return s.Page(s.view.PageIndex - 1)
	case NavNext:
		return s.Page(s.view.PageIndex + 1)
	case NavLast:
		return s.Page(s.TotalPages())
	default:
		return s.CurrentPage()
	}
}

// CurrentPage returns a copy of the slice for the current page index
func (s *Store) CurrentPage() List {
	start := (s.view.PageIndex - 1) * s.view.PageSize
	if start >= len(s.working) {
		return List{}
	}
	end := min(start+s.view.PageSize, len(s.working))
	return s.working[start:end].Clone()
}

// TotalPages is ceil(len(working)/pageSize), never less than 1
func (s *Store) TotalPages() int {
	pages := (len(s.working) + s.view.PageSize - 1) / s.view.PageSize
	return max(pages, 1)
}

func (s *Store) View() ViewState {
	return s.view
}

// Working returns a copy of the working list
func (s *Store) Working() List {
	return s.working.Clone()
}

// Original returns a copy of the original list
func (s *Store) Original() List {
	return s.original.Clone()
}

func (s *Store) Len() int {
	return len(s.working)
}

func (s *Store) rederive() {
	working := filterEntries(s.original, s.view.Filter)
	switch s.view.SortOrder {
	case SortAsc:
		slices.SortStableFunc(working, func(a, b Entry) int {
			return cmp.Compare(a.Temperature, b.Temperature)
		})
	case SortDesc:
		slices.SortStableFunc(working, func(a, b Entry) int {
			return cmp.Compare(b.Temperature, a.Temperature)
		})
	}
	s.working = working
}

func filterEntries(source List, kind FilterKind) List {
	switch kind {
	case FilterRain:
		out := List{}
		for _, e := range source {
			if e.IsRainy() {
				out = append(out, e)
			}
		}
		return out
	case FilterHighestTemp:
		out := List{}
		if len(source) == 0 {
			return out
		}
		highest := source[0].Temperature
		for _, e := range source[1:] {
			highest = max(highest, e.Temperature)
		}
		for _, e := range source {
			if e.Temperature == highest {
				out = append(out, e)
			}
		}
		return out
	default:
		return source.Clone()
	}
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}

// Package listview models an admin list page as a reducer over explicit
// actions: loading rows, searching, filtering and removing confirmed deletes.
package listview

import (
	"strings"
)

type Phase int

const (
	Idle Phase = iota
	Loading
	Loaded
	Failed
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Loaded:
		return "loaded"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// FilterAll disables a filter, as does the empty value.
const FilterAll = "all"

// Item is a row the page can search and filter.
type Item interface {
	ItemID() string
	// SearchText returns the fields the search box matches against.
	SearchText() []string
	// FilterValue returns the row's value for a filter key, or "" when the key does not apply.
	FilterValue(key string) string
}

// Page is the full state of one list page. Reduce never mutates its input.
type Page[T Item] struct {
	Phase    Phase
	Items    []T
	Filtered []T
	Search   string
	Filters  map[string]string
	Err      error
}

// Empty reports whether a loaded page has no visible rows.
func (p Page[T]) Empty() bool {
	return p.Phase == Loaded && len(p.Filtered) == 0
}

type Action interface {
	action()
}

type Load struct{}

type LoadedItems[T Item] struct {
	Items []T
}

type LoadFailed struct {
	Err error
}

type SetSearch struct {
	Text string
}

type SetFilter struct {
	Key   string
	Value string
}

// DeleteConfirmed removes a row after the server acknowledged the delete.
type DeleteConfirmed struct {
	ID string
}

func (Load) action() {}
func (LoadedItems[T]) action() {}
func (LoadFailed) action() {}
func (SetSearch) action() {}
func (SetFilter) action() {}
func (DeleteConfirmed) action() {}

// Reduce returns the page that results from applying a to p.
func Reduce[T Item](p Page[T], a Action) Page[T] {
	switch a := a.(type) {
	case Load:
		p.Phase = Loading
		p.Err = nil
		return p
	case LoadedItems[T]:
		p.Phase = Loaded
		p.Err = nil
		p.Items = append([]T(nil), a.Items...)
	case LoadFailed:
		p.Phase = Failed
		p.Err = a.Err
		return p
	case SetSearch:
		p.Search = a.Text
	case SetFilter:
		filters := make(map[string]string, len(p.Filters)+1)
		for k, v := range p.Filters {
			filters[k] = v
		}
		if a.Value == "" || a.Value == FilterAll {
			delete(filters, a.Key)
		} else {
			filters[a.Key] = a.Value
		}
		p.Filters = filters
	case DeleteConfirmed:
		items := make([]T, 0, len(p.Items))
		for _, item := range p.Items {
			if item.ItemID() != a.ID {
				items = append(items, item)
			}
		}
		p.Items = items
	default:
		return p
	}
	p.Filtered = filter(p.Items, p.Search, p.Filters)
	return p
}

func filter[T Item](items []T, search string, filters map[string]string) []T {
	needle := strings.ToLower(strings.TrimSpace(search))
	out := make([]T, 0, len(items))
	for _, item := range items {
		if needle != "" && !matchesSearch(item, needle) {
			continue
		}
		if !matchesFilters(item, filters) {
			continue
		}
		out = append(out, item)
	}
	return out
}

func matchesSearch(item Item, needle string) bool {
	for _, text := range item.SearchText() {
		if strings.Contains(strings.ToLower(text), needle) {
			return true
		}
	}
	return false
}

func matchesFilters(item Item, filters map[string]string) bool {
	for key, want := range filters {
		if !strings.EqualFold(item.FilterValue(key), want) {
			return false
		}
	}
	return true
}

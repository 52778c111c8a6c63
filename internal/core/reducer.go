package core

import "slices"

// Action is a state transition applied to a SearchRequest by Reduce.
type Action interface {
	apply(SearchRequest) SearchRequest
}

type (
	// SetPage moves to page Index.
	SetPage struct{ Index int }

	// SetPageSize changes the page size and returns to the first page.
	SetPageSize struct{ Size int }

	// SetCriteria replaces the filter criteria. The page resets to 0 only if
	// something actually changed.
	SetCriteria struct {
		CategoryIDs []string
		Type        string
		StartTime   string
		EndTime     string
	}

	// ToggleSort cycles Field through unset, asc, desc and back to unset.
	ToggleSort struct{ Field SortField }

	// Reset restores the defaults.
	Reset struct{}
)

// NewSearchRequest returns the default request: first page, default size,
// no criteria and no ordering.
func NewSearchRequest() SearchRequest {
	index, size := 0, DefaultPageSize
	return SearchRequest{PageIndex: &index, PageSize: &size}
}

// Reduce returns the request that results from applying a to r. r is not
// modified.
func Reduce(r SearchRequest, a Action) SearchRequest {
	return a.apply(clone(r))
}

func (a SetPage) apply(r SearchRequest) SearchRequest {
	r.PageIndex = intPtr(a.Index)
	return r
}

func (a SetPageSize) apply(r SearchRequest) SearchRequest {
	r.PageSize = intPtr(a.Size)
	r.PageIndex = intPtr(0)
	return r
}

func (a SetCriteria) apply(r SearchRequest) SearchRequest {
	changed := !slices.Equal(r.CategoryIDs, a.CategoryIDs) ||
		r.Type != a.Type ||
		r.StartTime != a.StartTime ||
		r.EndTime != a.EndTime
	if !changed {
		return r
	}
	r.CategoryIDs = slices.Clone(a.CategoryIDs)
	r.Type = a.Type
	r.StartTime = a.StartTime
	r.EndTime = a.EndTime
	r.PageIndex = intPtr(0)
	return r
}

func (a ToggleSort) apply(r SearchRequest) SearchRequest {
	for i, e := range r.OrderBy {
		if e.Key != string(a.Field) {
			continue
		}
		switch SortDirection(e.Direction) {
		case Asc:
			r.OrderBy[i].Direction = string(Desc)
		case Desc:
			r.OrderBy = slices.Delete(r.OrderBy, i, i+1)
		default:
			r.OrderBy[i].Direction = string(Asc)
		}
		if len(r.OrderBy) == 0 {
			r.OrderBy = nil
		}
		return r
	}
	r.OrderBy = append(r.OrderBy, OrderEntry{Key: string(a.Field), Direction: string(Asc)})
	return r
}

func (Reset) apply(SearchRequest) SearchRequest {
	return NewSearchRequest()
}

func clone(r SearchRequest) SearchRequest {
	if r.PageIndex != nil {
		r.PageIndex = intPtr(*r.PageIndex)
	}
	if r.PageSize != nil {
		r.PageSize = intPtr(*r.PageSize)
	}
	r.CategoryIDs = slices.Clone(r.CategoryIDs)
	r.OrderBy = slices.Clone(r.OrderBy)
	return r
}

func intPtr(v int) *int { return &v }

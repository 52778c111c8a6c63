package core

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"
)

// SortField names a sortable bill column.
type SortField string

// SortDirection is asc or desc. The empty direction means unordered.
type SortDirection string

const (
	SortByTime   SortField = "time"
	SortByAmount SortField = "amount"

	Asc  SortDirection = "asc"
	Desc SortDirection = "desc"
)

// DefaultPageSize is used by Reset and by clients that omit a size.
const DefaultPageSize = 10

// OrderTerm is one validated sort key.
type OrderTerm struct {
	Field     SortField
	Direction SortDirection
}

// OrderEntry is a raw orderBy pair as it appeared on the wire.
// Direction is empty when the JSON value was null or "".
type OrderEntry struct {
	Key       string
	Direction string
}

// OrderBy keeps the key order of the JSON object, which sets sort precedence.
type OrderBy []OrderEntry

func (o *OrderBy) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*o = nil
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return NewValidationError("orderBy", "orderBy must be an object")
	}
	var out OrderBy
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, _ := tok.(string)
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return err
		}
		entry := OrderEntry{Key: key}
		if !bytes.Equal(raw, []byte("null")) {
			var s string
			if err := json.Unmarshal(raw, &s); err != nil {
				// kept verbatim so validation reports it against the key
				s = string(raw)
			}
			entry.Direction = s
		}
		out = append(out, entry)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*o = out
	return nil
}

func (o OrderBy) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range o {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(e.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		if e.Direction == "" {
			buf.WriteString("null")
			continue
		}
		v, err := json.Marshal(e.Direction)
		if err != nil {
			return nil, err
		}
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Direction returns the direction recorded for key, or "".
func (o OrderBy) Direction(key SortField) string {
	for _, e := range o {
		if e.Key == string(key) {
			return e.Direction
		}
	}
	return ""
}

// SearchRequest is the body of POST /bills/search.
type SearchRequest struct {
	PageIndex   *int     `json:"pageIndex"`
	PageSize    *int     `json:"pageSize"`
	CategoryIDs []string `json:"categoryIds,omitempty"`
	Type        string   `json:"type,omitempty"`
	StartTime   string   `json:"startTime,omitempty"`
	EndTime     string   `json:"endTime,omitempty"`
	OrderBy     OrderBy  `json:"orderBy,omitempty"`
}

// BillQuery is the predicate shared by the page, count and sum queries.
// Nil and empty fields do not restrict.
type BillQuery struct {
	CategoryIDs []string
	Type        *BillType
	Start       *time.Time
	End         *time.Time
}

// WithType returns a copy of q restricted to t, replacing any type filter.
func (q BillQuery) WithType(t BillType) BillQuery {
	q.Type = &t
	return q
}

// Matches evaluates the predicate in memory.
func (q BillQuery) Matches(b Bill) bool {
	if len(q.CategoryIDs) > 0 {
		if b.CategoryID == nil {
			return false
		}
		found := false
		for _, id := range q.CategoryIDs {
			if id == *b.CategoryID {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if q.Type != nil && b.Type != *q.Type {
		return false
	}
	if q.Start != nil && b.Time.Before(*q.Start) {
		return false
	}
	if q.End != nil && b.Time.After(*q.End) {
		return false
	}
	return true
}

// SearchFilter is a validated SearchRequest.
type SearchFilter struct {
	PageIndex int
	PageSize  int
	Query     BillQuery
	OrderBy   []OrderTerm
}

// Offset is the number of matching rows skipped before the page.
func (f SearchFilter) Offset() int {
	return f.PageIndex * f.PageSize
}

// PageCount is ceil(count / pageSize); a zero page size yields zero pages.
func (f SearchFilter) PageCount(count int64) int {
	if f.PageSize <= 0 || count <= 0 {
		return 0
	}
	size := int64(f.PageSize)
	return int((count + size - 1) / size)
}

// Validate checks every field and reports all problems at once.
func (r SearchRequest) Validate() (SearchFilter, error) {
	var fe FieldErrors
	var f SearchFilter

	switch {
	case r.PageIndex == nil:
		fe.Add("pageIndex", "pageIndex is required")
	case *r.PageIndex < 0:
		fe.Add("pageIndex", "pageIndex must be >= 0")
	default:
		f.PageIndex = *r.PageIndex
	}
	switch {
	case r.PageSize == nil:
		fe.Add("pageSize", "pageSize is required")
	case *r.PageSize < 0:
		fe.Add("pageSize", "pageSize must be >= 0")
	default:
		f.PageSize = *r.PageSize
	}
	if f.PageSize > 0 && f.PageIndex > math.MaxInt/f.PageSize {
		fe.Add("pageIndex", "pageIndex is too large for pageSize")
	}

	f.Query.CategoryIDs = normalizeIDs(r.CategoryIDs)

	if strings.TrimSpace(r.Type) != "" {
		if t, ok := ParseBillType(r.Type); ok {
			f.Query.Type = &t
		} else {
			fe.Add("type", "type must be one of EXPENDITURE, REVENUE")
		}
	}

	if s := strings.TrimSpace(r.StartTime); s != "" {
		if t, err := ParseTime(s); err == nil {
			f.Query.Start = &t
		} else {
			fe.Add("startTime", "startTime must be an RFC 3339 timestamp or a YYYY-MM-DD date")
		}
	}
	if s := strings.TrimSpace(r.EndTime); s != "" {
		if t, err := ParseTime(s); err == nil {
			f.Query.End = &t
		} else {
			fe.Add("endTime", "endTime must be an RFC 3339 timestamp or a YYYY-MM-DD date")
		}
	}
	if f.Query.Start != nil && f.Query.End != nil && f.Query.End.Before(*f.Query.Start) {
		fe.Add("endTime", "endTime must not be before startTime")
	}

	seen := make(map[SortField]bool, len(r.OrderBy))
	for _, e := range r.OrderBy {
		field := SortField(e.Key)
		name := "orderBy." + e.Key
		if field != SortByTime && field != SortByAmount {
			fe.Add(name, "sort field must be one of time, amount")
			continue
		}
		if seen[field] {
			fe.Add(name, "duplicate sort field")
			continue
		}
		seen[field] = true
		switch dir := SortDirection(strings.ToLower(strings.TrimSpace(e.Direction))); dir {
		case "":
		case Asc, Desc:
			f.OrderBy = append(f.OrderBy, OrderTerm{Field: field, Direction: dir})
		default:
			fe.Add(name, fmt.Sprintf("sort direction must be asc, desc or null, got %s", e.Direction))
		}
	}

	if err := fe.Err(); err != nil {
		return SearchFilter{}, err
	}
	return f, nil
}

// normalizeIDs trims, drops blanks and de-duplicates while keeping order.
// A list of only blanks therefore does not restrict the category.
func normalizeIDs(ids []string) []string {
	if len(ids) == 0 {
		return nil
	}
	out := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

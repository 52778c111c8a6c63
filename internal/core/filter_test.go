package core

import (
	"encoding/json"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeRequest(t *testing.T, body string) SearchRequest {
	t.Helper()
	var r SearchRequest
	require.NoError(t, json.Unmarshal([]byte(body), &r))
	return r
}

func TestOrderByKeepsKeyOrder(t *testing.T) {
	r := decodeRequest(t, `{"pageIndex":0,"pageSize":5,"orderBy":{"amount":"desc","time":"asc"}}`)
	f, err := r.Validate()
	require.NoError(t, err)
	assert.Equal(t, []OrderTerm{{SortByAmount, Desc}, {SortByTime, Asc}}, f.OrderBy)

	r = decodeRequest(t, `{"pageIndex":0,"pageSize":5,"orderBy":{"time":"asc","amount":"desc"}}`)
	f, err = r.Validate()
	require.NoError(t, err)
	assert.Equal(t, []OrderTerm{{SortByTime, Asc}, {SortByAmount, Desc}}, f.OrderBy)
}

func TestOrderByNullAndEmptyAreUnordered(t *testing.T) {
	r := decodeRequest(t, `{"pageIndex":0,"pageSize":5,"orderBy":{"time":null,"amount":""}}`)
	f, err := r.Validate()
	require.NoError(t, err)
	assert.Empty(t, f.OrderBy)

	r = decodeRequest(t, `{"pageIndex":0,"pageSize":5,"orderBy":null}`)
	assert.Nil(t, r.OrderBy)
}

func TestOrderByMarshalRoundTrip(t *testing.T) {
	in := OrderBy{{Key: "amount", Direction: "asc"}, {Key: "time"}}
	b, err := json.Marshal(in)
	require.NoError(t, err)
	assert.JSONEq(t, `{"amount":"asc","time":null}`, string(b))
	assert.Equal(t, `{"amount":"asc","time":null}`, string(b))

	var out OrderBy
	require.NoError(t, json.Unmarshal(b, &out))
	assert.Equal(t, in, out)
}

func TestSearchRequestValidate(t *testing.T) {
	f, err := decodeRequest(t, `{
		"pageIndex": 2, "pageSize": 10,
		"categoryIds": ["a", " b ", "a", ""],
		"type": "revenue",
		"startTime": "2024-01-01", "endTime": "2024-01-31T23:59:59Z"
	}`).Validate()
	require.NoError(t, err)
	assert.Equal(t, 20, f.Offset())
	assert.Equal(t, []string{"a", "b"}, f.Query.CategoryIDs)
	require.NotNil(t, f.Query.Type)
	assert.Equal(t, Revenue, *f.Query.Type)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), *f.Query.Start)
	assert.Equal(t, time.Date(2024, 1, 31, 23, 59, 59, 0, time.UTC), *f.Query.End)

	f, err = decodeRequest(t, `{"pageIndex":0,"pageSize":0,"categoryIds":[]}`).Validate()
	require.NoError(t, err)
	assert.Nil(t, f.Query.CategoryIDs)
	assert.Nil(t, f.Query.Type)
}

func TestSearchRequestValidateErrors(t *testing.T) {
	cases := []struct {
		name   string
		body   string
		fields []string
	}{
		{"missing paging", `{}`, []string{"pageIndex", "pageSize"}},
		{"negative paging", `{"pageIndex":-1,"pageSize":-5}`, []string{"pageIndex", "pageSize"}},
		{"bad type", `{"pageIndex":0,"pageSize":1,"type":"GIFT"}`, []string{"type"}},
		{"bad start", `{"pageIndex":0,"pageSize":1,"startTime":"soon"}`, []string{"startTime"}},
		{"end before start", `{"pageIndex":0,"pageSize":1,"startTime":"2024-02-01","endTime":"2024-01-01"}`, []string{"endTime"}},
		{"unknown sort key", `{"pageIndex":0,"pageSize":1,"orderBy":{"name":"asc"}}`, []string{"orderBy.name"}},
		{"bad direction", `{"pageIndex":0,"pageSize":1,"orderBy":{"time":"up"}}`, []string{"orderBy.time"}},
		{"non string direction", `{"pageIndex":0,"pageSize":1,"orderBy":{"time":1}}`, []string{"orderBy.time"}},
		{"duplicate key", `{"pageIndex":0,"pageSize":1,"orderBy":{"time":"asc","time":"desc"}}`, []string{"orderBy.time"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := decodeRequest(t, tc.body).Validate()
			var ve *ValidationError
			require.True(t, errors.As(err, &ve), "expected validation error, got %v", err)
			for _, field := range tc.fields {
				_, ok := ve.Field(field)
				assert.True(t, ok, "missing field %s in %v", field, ve)
			}
		})
	}
}

func TestEqualBoundsAreValid(t *testing.T) {
	_, err := decodeRequest(t, `{"pageIndex":0,"pageSize":1,"startTime":"2024-01-01","endTime":"2024-01-01"}`).Validate()
	assert.NoError(t, err)
}

func TestPageCount(t *testing.T) {
	cases := []struct {
		size  int
		count int64
		want  int
	}{
		{10, 0, 0},
		{10, 1, 1},
		{10, 10, 1},
		{10, 11, 2},
		{3, 7, 3},
		{0, 7, 0},
	}
	for _, tc := range cases {
		f := SearchFilter{PageSize: tc.size}
		assert.Equal(t, tc.want, f.PageCount(tc.count), "size=%d count=%d", tc.size, tc.count)
	}
}

func TestBillQueryMatches(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC) }
	food := "food"
	b := Bill{Type: Expenditure, CategoryID: &food, Time: day(10)}
	uncategorized := Bill{Type: Expenditure, Time: day(10)}

	start, end := day(10), day(10)
	assert.True(t, BillQuery{Start: &start, End: &end}.Matches(b), "bounds are inclusive")
	assert.True(t, BillQuery{}.Matches(uncategorized))
	assert.False(t, BillQuery{CategoryIDs: []string{"food"}}.Matches(uncategorized))
	assert.True(t, BillQuery{CategoryIDs: []string{"rent", "food"}}.Matches(b))
	assert.False(t, BillQuery{}.WithType(Revenue).Matches(b))

	later := day(11)
	assert.False(t, BillQuery{Start: &later}.Matches(b))
}

func TestSearchRequestRejectsOverflowingOffset(t *testing.T) {
	idx, size := 1<<61, 6
	_, err := SearchRequest{PageIndex: &idx, PageSize: &size}.Validate()
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	_, ok := ve.Field("pageIndex")
	assert.True(t, ok)

	idx, size = math.MaxInt/1000, 1000
	f, err := SearchRequest{PageIndex: &idx, PageSize: &size}.Validate()
	require.NoError(t, err)
	assert.Positive(t, f.Offset())

	idx, size = math.MaxInt, 0
	_, err = SearchRequest{PageIndex: &idx, PageSize: &size}.Validate()
	assert.NoError(t, err)
}

func TestBlankCategoryIDsDoNotRestrict(t *testing.T) {
	f, err := decodeRequest(t, `{"pageIndex":0,"pageSize":5,"categoryIds":["", "  "]}`).Validate()
	require.NoError(t, err)
	assert.Nil(t, f.Query.CategoryIDs)
}

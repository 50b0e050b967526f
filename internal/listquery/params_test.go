package listquery

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseStateDefaults(t *testing.T) {
	st := ParseState(url.Values{}, DocumentSchema, 10, false)
	assert.Equal(t, NewState(DocumentSchema.DefaultSort, 10), st)
}

func TestParseStateRoundTrip(t *testing.T) {
	st := NewState(DocumentSchema.DefaultSort, 25).
		WithSearch("A1").
		WithFilters(Filters{DateFrom: "2024-03-01", DateTo: "2024-03-31", Organization: "Клиника"}).
		ToggleSort(FieldPatientName, true).
		WithPage(2)

	got := ParseState(st.Values(), DocumentSchema, 10, true)
	assert.Equal(t, st, got)
}

func TestParseStateSortGate(t *testing.T) {
	v := url.Values{ParamSort: {FieldPatientName}, ParamOrder: {"asc"}}

	st := ParseState(v, DocumentSchema, 10, false)
	assert.Equal(t, DocumentSchema.DefaultSort, st.Sort, "без права сортировка не меняется")

	st = ParseState(v, DocumentSchema, 10, true)
	assert.Equal(t, Sort{Field: FieldPatientName, Dir: Asc}, st.Sort)

	// файлы не сортируются по ФИО
	st = ParseState(v, FileSchema, 10, true)
	assert.Equal(t, FileSchema.DefaultSort, st.Sort)

	st = ParseState(url.Values{ParamOrder: {"asc"}}, FileSchema, 10, false)
	assert.Equal(t, Sort{Field: FieldCreatedAt, Dir: Asc}, st.Sort)
}

func TestParseStatePageSize(t *testing.T) {
	tests := []struct {
		raw  string
		want int
	}{
		{"all", All},
		{"50", 50},
		{"0", 10},
		{"-3", 10},
		{"abc", 10},
	}

	for _, tt := range tests {
		st := ParseState(url.Values{ParamPerPage: {tt.raw}}, FileSchema, 10, false)
		assert.Equal(t, tt.want, st.PageSize, "per_page=%q", tt.raw)
	}

	assert.Equal(t, "all", PageSizeParam(All))
	assert.Equal(t, "10", PageSizeParam(10))
	assert.Equal(t, "", PageSizeParam(0))
}

func TestStateValuesOmitsEmpty(t *testing.T) {
	st := NewState(Sort{}, 10)
	assert.Equal(t, "per_page=10", st.Query())
}

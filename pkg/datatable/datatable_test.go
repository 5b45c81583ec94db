package datatable

import (
	"net/url"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medevel/hospital-api/pkg/errors"
)

type row struct {
	ID       int
	Name     string
	DeptName string
	Created  string
	Notes    string
}

func testColumns() []Column[row] {
	return []Column[row]{
		{Name: "id", Kind: Plain, Value: func(r row) string { return strconv.Itoa(r.ID) },
			Compare: func(a, b row) int { return a.ID - b.ID }},
		{Name: "name", Kind: Plain, Value: func(r row) string { return r.Name }},
		{Name: "department", Kind: ForeignKeyName, Value: func(r row) string { return r.DeptName }},
		{Name: "created", Kind: Date, Value: func(r row) string { return r.Created }},
		{Name: "notes", Kind: Excluded, Value: func(r row) string { return r.Notes }},
	}
}

func testRows() []row {
	return []row{
		{ID: 1, Name: "Asha", DeptName: "Cardiology", Created: "2025-06-01", Notes: "alpha"},
		{ID: 2, Name: "Bennet", DeptName: "Neurology", Created: "2025-06-02", Notes: "beta"},
		{ID: 3, Name: "Carol", DeptName: "Cardiology", Created: "2025-06-03", Notes: "gamma"},
	}
}

func baseQuery() url.Values {
	return url.Values{
		"draw":             {"7"},
		"length":           {"10"},
		"start":            {"0"},
		"order[0][column]": {"0"},
		"order[0][dir]":    {"asc"},
	}
}

func TestParseRequest(t *testing.T) {
	req, err := ParseRequest(baseQuery())
	require.NoError(t, err)
	assert.Equal(t, Request{Draw: 7, Length: 10, SortColumn: 0}, req)
}

func TestParseRequestMalformed(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(url.Values)
	}{
		{"missing draw", func(q url.Values) { q.Del("draw") }},
		{"non-integer draw", func(q url.Values) { q.Set("draw", "x") }},
		{"missing length", func(q url.Values) { q.Del("length") }},
		{"zero length", func(q url.Values) { q.Set("length", "0") }},
		{"missing start", func(q url.Values) { q.Del("start") }},
		{"negative start", func(q url.Values) { q.Set("start", "-1") }},
		{"missing sort column", func(q url.Values) { q.Del("order[0][column]") }},
		{"non-integer sort column", func(q url.Values) { q.Set("order[0][column]", "first") }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := baseQuery()
			tt.mutate(q)
			_, err := ParseRequest(q)
			require.Error(t, err)
			assert.Equal(t, errors.ErrMalformedQuery, errors.CodeOf(err))
		})
	}
}

func TestPaginateEmptySearchKeepsEverything(t *testing.T) {
	req, _ := ParseRequest(baseQuery())
	res, err := Paginate(testRows(), testColumns(), req, DateRange{}, "")
	require.NoError(t, err)

	assert.Equal(t, 7, res.Draw)
	assert.Equal(t, 3, res.Total)
	assert.Equal(t, res.Total, res.Filtered)
	assert.Len(t, res.Records, 3)
}

func TestPaginateSearchPlainColumn(t *testing.T) {
	q := baseQuery()
	q.Set("search[value]", "ASH")
	req, _ := ParseRequest(q)

	res, err := Paginate(testRows(), testColumns(), req, DateRange{}, "")
	require.NoError(t, err)

	assert.Equal(t, 3, res.Total)
	assert.Equal(t, 1, res.Filtered)
	assert.Equal(t, "Asha", res.Records[0].Name)
	assert.LessOrEqual(t, res.Filtered, res.Total)
}

func TestPaginateSearchForeignKeyName(t *testing.T) {
	q := baseQuery()
	q.Set("search[value]", "cardio")
	req, _ := ParseRequest(q)

	res, err := Paginate(testRows(), testColumns(), req, DateRange{}, "")
	require.NoError(t, err)
	assert.Equal(t, 2, res.Filtered)
}

func TestPaginateSearchIgnoresDateAndExcludedColumns(t *testing.T) {
	q := baseQuery()
	q.Set("search[value]", "2025-06")
	req, _ := ParseRequest(q)

	res, err := Paginate(testRows(), testColumns(), req, DateRange{}, "")
	require.NoError(t, err)
	assert.Zero(t, res.Filtered)

	q.Set("search[value]", "gamma")
	req, _ = ParseRequest(q)
	res, err = Paginate(testRows(), testColumns(), req, DateRange{}, "")
	require.NoError(t, err)
	assert.Zero(t, res.Filtered)
}

func TestPaginateDateRange(t *testing.T) {
	req, _ := ParseRequest(baseQuery())

	tests := []struct {
		name   string
		filter DateRange
		want   int
	}{
		{"both bounds inclusive", DateRange{Start: "2025-06-01", End: "2025-06-02"}, 2},
		{"start only", DateRange{Start: "2025-06-02"}, 2},
		{"end only", DateRange{End: "2025-06-01"}, 1},
		{"no bounds", DateRange{}, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Paginate(testRows(), testColumns(), req, tt.filter, "created")
			require.NoError(t, err)
			assert.Equal(t, tt.want, res.Filtered)
		})
	}
}

func TestPaginateSortDescReversesAsc(t *testing.T) {
	q := baseQuery()
	q.Set("order[0][column]", "1")
	req, _ := ParseRequest(q)

	asc, err := Paginate(testRows(), testColumns(), req, DateRange{}, "")
	require.NoError(t, err)

	q.Set("order[0][dir]", "desc")
	req, _ = ParseRequest(q)
	desc, err := Paginate(testRows(), testColumns(), req, DateRange{}, "")
	require.NoError(t, err)

	require.Len(t, asc.Records, 3)
	for i := range asc.Records {
		assert.Equal(t, asc.Records[i].ID, desc.Records[len(desc.Records)-1-i].ID)
	}
}

func TestPaginateNumericCompare(t *testing.T) {
	rows := []row{{ID: 2, Name: "b"}, {ID: 100, Name: "c"}, {ID: 11, Name: "a"}}
	req, _ := ParseRequest(baseQuery())

	res, err := Paginate(rows, testColumns(), req, DateRange{}, "")
	require.NoError(t, err)
	assert.Equal(t, []int{2, 11, 100}, []int{res.Records[0].ID, res.Records[1].ID, res.Records[2].ID})
}

func TestPaginateOutOfRangeStart(t *testing.T) {
	q := baseQuery()
	q.Set("start", "10")
	q.Set("length", "5")
	req, _ := ParseRequest(q)

	res, err := Paginate(testRows(), testColumns(), req, DateRange{}, "")
	require.NoError(t, err)
	assert.Empty(t, res.Records)
	assert.Equal(t, 3, res.Filtered)
}

func TestPaginateOutOfRangeSortColumn(t *testing.T) {
	q := baseQuery()
	q.Set("order[0][column]", "9")
	req, _ := ParseRequest(q)

	_, err := Paginate(testRows(), testColumns(), req, DateRange{}, "")
	require.Error(t, err)
	assert.Equal(t, errors.ErrMalformedQuery, errors.CodeOf(err))
}

func TestPaginateIdempotent(t *testing.T) {
	q := baseQuery()
	q.Set("search[value]", "o")
	q.Set("order[0][column]", "2")
	req, _ := ParseRequest(q)

	first, err := Paginate(testRows(), testColumns(), req, DateRange{}, "")
	require.NoError(t, err)
	second, err := Paginate(testRows(), testColumns(), req, DateRange{}, "")
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestPaginateDoesNotReorderInput(t *testing.T) {
	rows := testRows()
	q := baseQuery()
	q.Set("order[0][dir]", "desc")
	req, _ := ParseRequest(q)

	_, err := Paginate(rows, testColumns(), req, DateRange{}, "")
	require.NoError(t, err)
	assert.Equal(t, 1, rows[0].ID)
	assert.Equal(t, 3, rows[2].ID)
}

func TestPaginateSlicing(t *testing.T) {
	q := baseQuery()
	q.Set("start", "1")
	q.Set("length", "1")
	req, _ := ParseRequest(q)

	res, err := Paginate(testRows(), testColumns(), req, DateRange{}, "")
	require.NoError(t, err)
	require.Len(t, res.Records, 1)
	assert.Equal(t, 2, res.Records[0].ID)
}

// Package datatable implements the server side of the DataTables list
// protocol shared by every list endpoint: free-text search, column
// sorting, paging, and an optional date-range filter over an in-memory
// collection. Tenant scoping is the caller's job; the engine only ever
// sees records the caller is allowed to show.
package datatable

import (
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/medevel/hospital-api/pkg/errors"
)

// ColumnKind decides how a column takes part in search and filtering.
type ColumnKind int

const (
	// Plain columns are matched by case-insensitive substring search.
	Plain ColumnKind = iota
	// ForeignKeyName columns search the referenced entity's display
	// name rather than the raw key.
	ForeignKeyName
	// Date columns never take part in free-text search; they are only
	// reachable through the date-range filter.
	Date
	// Excluded columns are sortable but invisible to search entirely.
	Excluded
)

// Column describes one orderable, searchable field of a record type.
// Value must return the search/sort key for the record; for Date
// columns it must be an ISO calendar date ("2006-01-02") so that
// lexicographic comparison is chronological. Compare, when set,
// overrides string ordering for sorting (used for numeric fields).
type Column[T any] struct {
	Name    string
	Kind    ColumnKind
	Value   func(T) string
	Compare func(a, b T) int
}

// Request carries the parsed DataTables query parameters.
type Request struct {
	Draw       int
	Start      int
	Length     int
	Search     string
	SortColumn int
	SortDesc   bool
}

// DateRange is an inclusive ISO-date interval; either bound may be
// empty, leaving that side open.
type DateRange struct {
	Start string
	End   string
}

func (r DateRange) isZero() bool {
	return r.Start == "" && r.End == ""
}

// Result is one page of records plus the protocol bookkeeping fields.
type Result[T any] struct {
	Draw     int `json:"draw"`
	Records  []T `json:"data"`
	Total    int `json:"recordsTotal"`
	Filtered int `json:"recordsFiltered"`
}

// ParseRequest extracts the DataTables parameters from query values.
// draw, length, start and the sort column index must be present and
// integral; the sort direction defaults to ascending.
func ParseRequest(q url.Values) (Request, error) {
	draw, err := requiredInt(q, "draw")
	if err != nil {
		return Request{}, err
	}
	length, err := requiredInt(q, "length")
	if err != nil {
		return Request{}, err
	}
	if length <= 0 {
		return Request{}, errors.New(errors.ErrMalformedQuery, "length must be positive")
	}
	start, err := requiredInt(q, "start")
	if err != nil {
		return Request{}, err
	}
	if start < 0 {
		return Request{}, errors.New(errors.ErrMalformedQuery, "start must not be negative")
	}
	sortCol, err := requiredInt(q, "order[0][column]")
	if err != nil {
		return Request{}, err
	}

	return Request{
		Draw:       draw,
		Start:      start,
		Length:     length,
		Search:     strings.TrimSpace(q.Get("search[value]")),
		SortColumn: sortCol,
		SortDesc:   strings.TrimSpace(q.Get("order[0][dir]")) == "desc",
	}, nil
}

// ParseDateRange reads an optional inclusive date-range filter from the
// two given query keys.
func ParseDateRange(q url.Values, startKey, endKey string) DateRange {
	return DateRange{
		Start: strings.TrimSpace(q.Get(startKey)),
		End:   strings.TrimSpace(q.Get(endKey)),
	}
}

func requiredInt(q url.Values, key string) (int, error) {
	raw := strings.TrimSpace(q.Get(key))
	if raw == "" {
		return 0, errors.New(errors.ErrMalformedQuery, key+" is required")
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.Wrap(errors.ErrMalformedQuery, key+" must be an integer", err)
	}
	return n, nil
}

// Paginate runs search, date filtering, sorting and slicing over the
// collection and returns one page plus total/filtered counts. The
// dateColumn names the column the dateFilter applies to; it is ignored
// when the filter has no bounds. Out-of-range start yields an empty
// page, not an error; an out-of-range sort index is a MalformedQuery.
func Paginate[T any](records []T, columns []Column[T], req Request, dateFilter DateRange, dateColumn string) (*Result[T], error) {
	if req.SortColumn < 0 || req.SortColumn >= len(columns) {
		return nil, errors.New(errors.ErrMalformedQuery, "sort column index out of range")
	}

	total := len(records)

	filtered := records
	if req.Search != "" {
		filtered = searchFilter(filtered, columns, req.Search)
	}
	if !dateFilter.isZero() {
		filtered = dateRangeFilter(filtered, columns, dateFilter, dateColumn)
	}

	page := make([]T, len(filtered))
	copy(page, filtered)
	sortRecords(page, columns[req.SortColumn], req.SortDesc)

	start := req.Start
	if start > len(page) {
		start = len(page)
	}
	end := start + req.Length
	if end > len(page) {
		end = len(page)
	}

	return &Result[T]{
		Draw:     req.Draw,
		Records:  page[start:end],
		Total:    total,
		Filtered: len(filtered),
	}, nil
}

// searchFilter keeps records where any searchable column contains the
// needle, case-insensitively. Date and Excluded columns never match.
func searchFilter[T any](records []T, columns []Column[T], needle string) []T {
	needle = strings.ToLower(needle)
	out := make([]T, 0, len(records))
	for _, rec := range records {
		for _, col := range columns {
			if col.Kind == Date || col.Kind == Excluded {
				continue
			}
			if strings.Contains(strings.ToLower(col.Value(rec)), needle) {
				out = append(out, rec)
				break
			}
		}
	}
	return out
}

func dateRangeFilter[T any](records []T, columns []Column[T], filter DateRange, dateColumn string) []T {
	var value func(T) string
	for _, col := range columns {
		if col.Name == dateColumn {
			value = col.Value
			break
		}
	}
	if value == nil {
		return records
	}

	out := make([]T, 0, len(records))
	for _, rec := range records {
		v := value(rec)
		if filter.Start != "" && v < filter.Start {
			continue
		}
		if filter.End != "" && v > filter.End {
			continue
		}
		out = append(out, rec)
	}
	return out
}

// sortRecords orders the page by the chosen column. The sort is stable,
// so records with equal keys keep their input order.
func sortRecords[T any](records []T, col Column[T], desc bool) {
	less := func(a, b T) bool {
		if col.Compare != nil {
			return col.Compare(a, b) < 0
		}
		return col.Value(a) < col.Value(b)
	}
	sort.SliceStable(records, func(i, j int) bool {
		if desc {
			return less(records[j], records[i])
		}
		return less(records[i], records[j])
	})
}

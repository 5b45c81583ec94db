// Package dateset implements an immutable sorted set of calendar dates,
// stored as ISO 8601 strings so lexicographic order equals chronological
// order. It backs the per-doctor unavailable-date list.
package dateset

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"sort"
	"time"
)

// Layout is the calendar-date format every entry must use.
const Layout = "2006-01-02"

var (
	// ErrExists is returned by Insert when the date is already a member.
	ErrExists = fmt.Errorf("date already exists in set")
	// ErrMissing is returned by Remove when the date is not a member.
	ErrMissing = fmt.Errorf("date does not exist in set")
)

// Set is a sorted, duplicate-free sequence of ISO calendar dates.
// The zero value is an empty, usable set. Mutating operations return
// a new Set; the receiver is never modified.
type Set struct {
	dates []string
}

// New builds a Set from the given dates, sorting and de-duplicating.
// Entries that are not valid ISO calendar dates are rejected.
func New(dates ...string) (Set, error) {
	s := Set{}
	for _, d := range dates {
		if _, err := time.Parse(Layout, d); err != nil {
			return Set{}, fmt.Errorf("invalid date %q: %w", d, err)
		}
		if _, ok := s.search(d); ok {
			continue
		}
		s = s.insertAt(d)
	}
	return s, nil
}

// search returns the insertion index for date and whether it is present.
func (s Set) search(date string) (int, bool) {
	i := sort.SearchStrings(s.dates, date)
	return i, i < len(s.dates) && s.dates[i] == date
}

func (s Set) insertAt(date string) Set {
	i, _ := s.search(date)
	out := make([]string, 0, len(s.dates)+1)
	out = append(out, s.dates[:i]...)
	out = append(out, date)
	out = append(out, s.dates[i:]...)
	return Set{dates: out}
}

// Insert returns a new Set containing date. ErrExists if already present.
func (s Set) Insert(date string) (Set, error) {
	if _, err := time.Parse(Layout, date); err != nil {
		return Set{}, fmt.Errorf("invalid date %q: %w", date, err)
	}
	if _, ok := s.search(date); ok {
		return Set{}, ErrExists
	}
	return s.insertAt(date), nil
}

// Remove returns a new Set without date. ErrMissing if not present.
func (s Set) Remove(date string) (Set, error) {
	i, ok := s.search(date)
	if !ok {
		return Set{}, ErrMissing
	}
	out := make([]string, 0, len(s.dates)-1)
	out = append(out, s.dates[:i]...)
	out = append(out, s.dates[i+1:]...)
	return Set{dates: out}, nil
}

// Contains reports membership of date.
func (s Set) Contains(date string) bool {
	_, ok := s.search(date)
	return ok
}

// Len returns the number of dates in the set.
func (s Set) Len() int {
	return len(s.dates)
}

// Dates returns the dates in ascending order. The returned slice is a copy.
func (s Set) Dates() []string {
	out := make([]string, len(s.dates))
	copy(out, s.dates)
	return out
}

// MarshalJSON encodes the set as a JSON array of date strings.
func (s Set) MarshalJSON() ([]byte, error) {
	if s.dates == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(s.dates)
}

// UnmarshalJSON decodes a JSON array of date strings, restoring the
// sorted-unique invariant regardless of the stored order.
func (s *Set) UnmarshalJSON(data []byte) error {
	var raw []string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	set, err := New(raw...)
	if err != nil {
		return err
	}
	*s = set
	return nil
}

// Value implements driver.Valuer so the set persists as a JSONB column.
func (s Set) Value() (driver.Value, error) {
	return s.MarshalJSON()
}

// Scan implements sql.Scanner.
func (s *Set) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*s = Set{}
		return nil
	case []byte:
		return s.UnmarshalJSON(v)
	case string:
		return s.UnmarshalJSON([]byte(v))
	default:
		return fmt.Errorf("unsupported type %T for date set", src)
	}
}

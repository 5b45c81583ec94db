package dateset

import (
	"encoding/json"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSortsAndDeduplicates(t *testing.T) {
	s, err := New("2025-06-03", "2025-06-01", "2025-06-02", "2025-06-01")
	require.NoError(t, err)

	assert.Equal(t, []string{"2025-06-01", "2025-06-02", "2025-06-03"}, s.Dates())
	assert.Equal(t, 3, s.Len())
}

func TestNewRejectsInvalidDate(t *testing.T) {
	_, err := New("2025-13-40")
	assert.Error(t, err)

	_, err = New("01/06/2025")
	assert.Error(t, err)
}

func TestInsert(t *testing.T) {
	s, err := New("2025-06-01", "2025-06-03")
	require.NoError(t, err)

	s2, err := s.Insert("2025-06-02")
	require.NoError(t, err)
	assert.Equal(t, []string{"2025-06-01", "2025-06-02", "2025-06-03"}, s2.Dates())

	// receiver untouched
	assert.Equal(t, []string{"2025-06-01", "2025-06-03"}, s.Dates())

	_, err = s2.Insert("2025-06-02")
	assert.ErrorIs(t, err, ErrExists)
}

func TestRemove(t *testing.T) {
	s, err := New("2025-06-01", "2025-06-02")
	require.NoError(t, err)

	s2, err := s.Remove("2025-06-01")
	require.NoError(t, err)
	assert.Equal(t, []string{"2025-06-02"}, s2.Dates())
	assert.True(t, s.Contains("2025-06-01"))

	_, err = s2.Remove("2025-06-01")
	assert.ErrorIs(t, err, ErrMissing)
}

func TestInsertRemoveRoundTrip(t *testing.T) {
	s, err := New("2025-06-01", "2025-06-05")
	require.NoError(t, err)

	s2, err := s.Insert("2025-06-03")
	require.NoError(t, err)
	s3, err := s2.Remove("2025-06-03")
	require.NoError(t, err)

	assert.Equal(t, s.Dates(), s3.Dates())
}

func TestSortedInvariantAfterMutations(t *testing.T) {
	s := Set{}
	for _, d := range []string{"2025-12-31", "2025-01-01", "2025-07-15", "2025-03-09"} {
		var err error
		s, err = s.Insert(d)
		require.NoError(t, err)
		assert.True(t, sort.StringsAreSorted(s.Dates()))
	}
}

func TestJSONRoundTrip(t *testing.T) {
	s, err := New("2025-06-02", "2025-06-01")
	require.NoError(t, err)

	data, err := json.Marshal(s)
	require.NoError(t, err)
	assert.JSONEq(t, `["2025-06-01","2025-06-02"]`, string(data))

	var back Set
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, s.Dates(), back.Dates())
}

func TestScanRestoresInvariant(t *testing.T) {
	var s Set
	require.NoError(t, s.Scan([]byte(`["2025-06-03","2025-06-01"]`)))
	assert.Equal(t, []string{"2025-06-01", "2025-06-03"}, s.Dates())

	require.NoError(t, s.Scan(nil))
	assert.Zero(t, s.Len())
}

func TestEmptySetMarshalsToArray(t *testing.T) {
	data, err := json.Marshal(Set{})
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

package get_page_bookings

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseQuery_SingleDateSetsBothBounds(t *testing.T) {
	req, err := parseQuery(1, 10, url.Values{"date": {"2026-03-09"}})

	require.NoError(t, err)
	require.NotNil(t, req.StartDate)
	require.NotNil(t, req.EndDate)
	expected := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)
	assert.True(t, req.StartDate.Equal(expected))
	assert.True(t, req.EndDate.Equal(expected))
}

func TestParseQuery_DateConflictsWithRange(t *testing.T) {
	_, err := parseQuery(1, 10, url.Values{
		"date":      {"2026-03-09"},
		"startDate": {"2026-03-01"},
	})

	assert.Error(t, err)
}

func TestParseQuery_RangeAndFilters(t *testing.T) {
	req, err := parseQuery(1, 10, url.Values{
		"startDate":       {"2026-03-01"},
		"endDate":         {"2026-03-31"},
		"status":          {"confirmed"},
		"includeInactive": {"true"},
	})

	require.NoError(t, err)
	require.NotNil(t, req.Status)
	assert.Equal(t, "confirmed", *req.Status)
	assert.True(t, req.IncludeInactive)
	require.NotNil(t, req.StartDate)
	require.NotNil(t, req.EndDate)
}

func TestParseQuery_ReversedRange(t *testing.T) {
	_, err := parseQuery(1, 10, url.Values{
		"startDate": {"2026-03-31"},
		"endDate":   {"2026-03-01"},
	})

	assert.Error(t, err)
}

func TestParseQuery_BadDate(t *testing.T) {
	_, err := parseQuery(1, 10, url.Values{"date": {"09.03.2026"}})

	assert.Error(t, err)
}

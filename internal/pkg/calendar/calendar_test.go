package calendar

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkingDays_NoHolidays(t *testing.T) {
	cal := New(nil)

	cases := []struct {
		year  int
		month time.Month
		want  int
	}{
		{2025, time.March, 24},    // 31 - 5 Sundays - Sat 1 & 8
		{2025, time.February, 22}, // 28 - 4 Sundays - Sat 1 & 8
		{2024, time.June, 23},     // 30 - 5 Sundays - Sat 1 & 8
	}
	for _, c := range cases {
		got, err := cal.WorkingDays(c.year, c.month)
		require.NoError(t, err)
		assert.Equal(t, c.want, got, "%d-%02d", c.year, c.month)
	}
}

func TestWorkingDays_Holidays(t *testing.T) {
	cal := New([]Holiday{
		{Date: "2025-03-14", Name: "Holi"},
		{Date: "2025-03-02", Name: "Falls on a Sunday"},
		{Date: "2025-04-18", Name: "Other month"},
		{Date: "not-a-date", Name: "ignored"},
	})

	got, err := cal.WorkingDays(2025, time.March)
	require.NoError(t, err)
	assert.Equal(t, 23, got)

	assert.True(t, cal.IsHoliday(time.Date(2025, 3, 14, 15, 0, 0, 0, time.UTC)))
	assert.Len(t, cal.Holidays(2025, time.March), 2)
}

func TestIsWorkingDay(t *testing.T) {
	cal := New(nil)

	cases := map[string]bool{
		"2025-03-01": false, // first Saturday
		"2025-03-08": false, // second Saturday
		"2025-03-15": true,  // third Saturday
		"2025-03-09": false, // Sunday
		"2025-03-10": true,
	}
	for date, want := range cases {
		d, _ := time.Parse(dateLayout, date)
		got, err := cal.IsWorkingDay(d)
		require.NoError(t, err)
		assert.Equal(t, want, got, date)
	}
}

func TestParseListAndLoadFile(t *testing.T) {
	list := ParseList("2025-01-26:Republic Day, 2025-08-15 ,,")
	require.Len(t, list, 2)
	assert.Equal(t, "Republic Day", list[0].Name)
	assert.Equal(t, "2025-08-15", list[1].Date)

	path := filepath.Join(t.TempDir(), "holidays.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"date":"2025-10-20","name":"Diwali"}]`), 0o644))
	holidays, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []Holiday{{Date: "2025-10-20", Name: "Diwali"}}, holidays)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	broken := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(broken, []byte(`{"date":`), 0o644))
	_, err = LoadFile(broken)
	assert.ErrorContains(t, err, "invalid holiday file")
}

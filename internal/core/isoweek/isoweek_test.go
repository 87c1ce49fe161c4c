package isoweek_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/warehouse-weeks/internal/core/isoweek"
)

func day(s string) time.Time {
	d, err := time.Parse(isoweek.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestStartAndEndOfWeek(t *testing.T) {
	tests := []struct {
		date      string
		wantStart string
		wantEnd   string
	}{
		{"2025-06-02", "2025-06-02", "2025-06-08"},
		{"2025-06-08", "2025-06-02", "2025-06-08"},
		{"2025-06-05", "2025-06-02", "2025-06-08"},
		{"2024-12-31", "2024-12-30", "2025-01-05"},
		{"2027-01-03", "2026-12-28", "2027-01-03"},
		{"2024-02-29", "2024-02-26", "2024-03-03"},
	}

	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			assert.Equal(t, day(tt.wantStart), isoweek.StartOfWeek(day(tt.date)))
			assert.Equal(t, day(tt.wantEnd), isoweek.EndOfWeek(day(tt.date)))
		})
	}
}

func TestStartOfWeek_IgnoresClock(t *testing.T) {
	rome, err := time.LoadLocation("Europe/Rome")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}

	late := time.Date(2025, 6, 8, 23, 30, 0, 0, rome)
	assert.Equal(t, day("2025-06-02"), isoweek.StartOfWeek(late))
}

func TestShiftWeek(t *testing.T) {
	assert.Equal(t, day("2025-06-09"), isoweek.ShiftWeek(day("2025-06-04"), 1))
	assert.Equal(t, day("2025-05-26"), isoweek.ShiftWeek(day("2025-06-04"), -1))
	assert.Equal(t, day("2025-06-02"), isoweek.ShiftWeek(day("2025-06-04"), 0))
	assert.Equal(t, day("2025-01-06"), isoweek.ShiftWeek(day("2024-12-31"), 1))
}

func TestToKey(t *testing.T) {
	tests := []struct {
		date string
		want string
	}{
		{"2025-06-02", "2025-W23"},
		{"2024-12-30", "2025-W01"},
		{"2027-01-03", "2026-W53"},
		{"2021-01-03", "2020-W53"},
		{"2021-01-04", "2021-W01"},
		{"2008-12-29", "2009-W01"},
		{"2010-01-03", "2009-W53"},
	}

	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			assert.Equal(t, tt.want, isoweek.ToKey(day(tt.date)).String())
		})
	}
}

func TestToKey_MatchesStandardLibrary(t *testing.T) {
	d := day("1999-11-01")
	end := day("2031-03-01")
	for ; d.Before(end); d = d.AddDate(0, 0, 1) {
		year, week := d.ISOWeek()
		got := isoweek.ToKey(d)
		require.Equal(t, isoweek.Key{Year: year, Week: week}, got, "date %s", d.Format(isoweek.DateLayout))
	}
}

func TestRoundTrip(t *testing.T) {
	d := day("1995-01-01")
	end := day("2035-12-31")
	for ; d.Before(end); d = d.AddDate(0, 0, 1) {
		week := isoweek.FromKey(isoweek.ToKey(d))
		require.Equal(t, isoweek.StartOfWeek(d), week.Start, "start for %s", d.Format(isoweek.DateLayout))
		require.Equal(t, isoweek.EndOfWeek(d), week.End, "end for %s", d.Format(isoweek.DateLayout))
		require.Equal(t, time.Monday, week.Start.Weekday())
		require.Equal(t, 6, isoweek.DaysBetween(week.Start, week.End))
	}
}

func TestParseKey(t *testing.T) {
	t.Run("Success: canonical form", func(t *testing.T) {
		k, err := isoweek.ParseKey("2025-W23")
		require.NoError(t, err)
		assert.Equal(t, isoweek.Key{Year: 2025, Week: 23}, k)
		assert.Equal(t, "2025-W23", k.String())
	})

	t.Run("Success: week 53 in a long year", func(t *testing.T) {
		k, err := isoweek.ParseKey("2026-w53")
		require.NoError(t, err)
		assert.Equal(t, day("2026-12-28"), isoweek.FromKey(k).Start)
	})

	for _, bad := range []string{"", "2025-23", "2025-W", "25-W01", "2025-W00", "2025-W53", "abcd-W01", "2025-Wx1"} {
		t.Run("Fail: "+bad, func(t *testing.T) {
			_, err := isoweek.ParseKey(bad)
			assert.ErrorIs(t, err, isoweek.ErrInvalidDate)
		})
	}
}

func TestParseDate(t *testing.T) {
	d, err := isoweek.ParseDate(" 2025-06-02 ")
	require.NoError(t, err)
	assert.Equal(t, day("2025-06-02"), d)

	_, err = isoweek.ParseDate("2025-02-30")
	assert.ErrorIs(t, err, isoweek.ErrInvalidDate)

	_, err = isoweek.ParseDate("02/06/2025")
	assert.ErrorIs(t, err, isoweek.ErrInvalidDate)
}

func TestWeeksInYear(t *testing.T) {
	assert.Equal(t, 52, isoweek.WeeksInYear(2025))
	assert.Equal(t, 53, isoweek.WeeksInYear(2026))
	assert.Equal(t, 53, isoweek.WeeksInYear(2020))
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "2 Jun – 8 Jun, 2025", isoweek.Format(isoweek.WeekOf(day("2025-06-04"))))
	assert.Equal(t, "30 Dec, 2024 – 5 Jan, 2025", isoweek.Format(isoweek.WeekOf(day("2025-01-01"))))
}

func TestWeekContains(t *testing.T) {
	w := isoweek.WeekOf(day("2025-06-04"))
	assert.True(t, w.Contains(day("2025-06-02")))
	assert.True(t, w.Contains(day("2025-06-08")))
	assert.False(t, w.Contains(day("2025-06-09")))
	assert.False(t, w.Contains(day("2025-06-01")))
}

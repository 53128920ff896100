/*
 * Copyright (c) 2021 ugradid community
 *
 * This program is free software: you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as published by
 * the Free Software Foundation, either version 3 of the License, or
 * (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU General Public License
 * along with this program. If not, see <https://www.gnu.org/licenses/>.
 */

package period

import (
	"encoding/json"
	"sort"
	"testing"
	"time"

	"github.com/rickb777/date/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ugradid/ugradid-period/calendar"
	"github.com/ugradid/ugradid-period/dayrange"
)

func d(year int, month time.Month, day int) date.Date {
	return date.New(year, month, day)
}

func p(first, last date.Date) Period {
	return MustNew(first, last)
}

func TestNew(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		period, err := New(d(2015, 1, 1), d(2015, 12, 31))
		require.NoError(t, err)
		assert.Equal(t, d(2015, 1, 1), period.First())
		assert.Equal(t, d(2015, 12, 31), period.Last())
		assert.Equal(t, 365, period.Size())
		assert.Equal(t, 365, period.Days())
	})
	t.Run("ok - single day", func(t *testing.T) {
		period, err := New(d(2016, 2, 29), d(2016, 2, 29))
		require.NoError(t, err)
		assert.Equal(t, 1, period.Size())
	})
	t.Run("error - first after last", func(t *testing.T) {
		_, err := New(d(2015, 1, 2), d(2015, 1, 1))
		assert.ErrorIs(t, err, ErrInvalidRange)
		assert.Contains(t, err.Error(), "2015-01-02")
	})
	t.Run("MustNew panics", func(t *testing.T) {
		assert.Panics(t, func() {
			MustNew(d(2015, 1, 2), d(2015, 1, 1))
		})
	})
}

func TestNew_RoundTrip(t *testing.T) {
	for _, period := range []Period{p(d(2015, 1, 1), d(2015, 1, 1)), p(d(1999, 12, 31), d(2000, 3, 1)), Forever()} {
		again, err := New(period.First(), period.Last())
		require.NoError(t, err)
		assert.True(t, again.Equal(period))
		assert.Equal(t, calendar.DaysBetween(period.First(), period.Last())+1, period.Size())
	}
}

func TestFromTime(t *testing.T) {
	period, err := FromTime(time.Date(2015, 3, 1, 23, 59, 0, 0, time.UTC), time.Date(2015, 3, 31, 0, 0, 1, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, p(d(2015, 3, 1), d(2015, 3, 31)), period)
}

func TestParseDates(t *testing.T) {
	period, err := ParseDates("2015-07-04", "2015-08-01")
	require.NoError(t, err)
	assert.Equal(t, p(d(2015, 7, 4), d(2015, 8, 1)), period)

	_, err = ParseDates("not-a-date", "2015-08-01")
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = ParseDates("2015-07-04", "")
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = ParseDates("2015-08-01", "2015-07-04")
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestParse(t *testing.T) {
	t.Run("ok - single spec", func(t *testing.T) {
		period, err := Parse("2015-3Q", "")
		require.NoError(t, err)
		assert.Equal(t, p(d(2015, 7, 1), d(2015, 9, 30)), period)
	})
	t.Run("ok - from and to", func(t *testing.T) {
		period, err := Parse("2014", "2015-1H")
		require.NoError(t, err)
		assert.Equal(t, p(d(2014, 1, 1), d(2015, 6, 30)), period)
	})
	t.Run("error - reversed", func(t *testing.T) {
		_, err := Parse("2015", "2014")
		assert.ErrorIs(t, err, ErrInvalidRange)
	})
	t.Run("error - unparseable", func(t *testing.T) {
		_, err := Parse("someday", "")
		assert.ErrorIs(t, err, ErrInvalidInput)
		_, err = Parse("2015", "someday")
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestParsePhrase(t *testing.T) {
	period, size, err := ParsePhrase("from 2014 to 2015-3Q per month")
	require.NoError(t, err)
	assert.Equal(t, p(d(2014, 1, 1), d(2015, 9, 30)), period)
	assert.Equal(t, calendar.Month, size)

	period, size, err = ParsePhrase("2015-11")
	require.NoError(t, err)
	assert.Equal(t, p(d(2015, 11, 1), d(2015, 11, 30)), period)
	assert.Equal(t, calendar.Irregular, size)

	_, _, err = ParsePhrase("2015 per decade")
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, _, err = ParsePhrase("2016 to 2015")
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestPeriod_MonthsAndYears(t *testing.T) {
	january := p(d(2015, 1, 1), d(2015, 1, 31))
	assert.InDelta(t, 31/30.436875, january.Months(), 1e-9)
	assert.InDelta(t, 1.0, january.MonthsWith(31), 1e-9)

	year := p(d(2015, 1, 1), d(2015, 12, 31))
	assert.InDelta(t, 365/365.2425, year.Years(), 1e-9)
	assert.InDelta(t, 1.0, year.YearsWith(365), 1e-9)
}

func TestPeriod_Compare(t *testing.T) {
	a := p(d(2015, 1, 1), d(2015, 1, 31))
	b := p(d(2015, 1, 1), d(2015, 12, 31))
	c := p(d(2015, 2, 1), d(2015, 2, 2))

	assert.Equal(t, 0, a.Compare(a))
	assert.Equal(t, -1, a.Compare(b), "same start sorts shorter first")
	assert.Equal(t, 1, b.Compare(a))
	assert.Equal(t, -1, b.Compare(c), "earlier start sorts first")
	assert.True(t, a.Less(b))
	assert.False(t, b.Less(a))
	assert.True(t, a.Equal(p(d(2015, 1, 1), d(2015, 1, 31))))

	periods := []Period{c, b, a}
	sort.Slice(periods, func(i, j int) bool {
		return periods[i].Less(periods[j])
	})
	assert.Equal(t, []Period{a, b, c}, periods)
}

func TestPeriod_CompareTo(t *testing.T) {
	a := p(d(2015, 1, 1), d(2015, 1, 31))
	b := p(d(2015, 2, 1), d(2015, 2, 28))

	result, ok := a.CompareTo(b)
	assert.True(t, ok)
	assert.Equal(t, -1, result)

	result, ok = b.CompareTo(&a)
	assert.True(t, ok)
	assert.Equal(t, 1, result)

	_, ok = a.CompareTo(42)
	assert.False(t, ok)
	_, ok = a.CompareTo("2015-01")
	assert.False(t, ok)
	_, ok = a.CompareTo((*Period)(nil))
	assert.False(t, ok)
}

func TestPeriod_Hash(t *testing.T) {
	a := p(d(2015, 1, 1), d(2015, 1, 31))
	same, _ := Parse("2015-01", "")
	other := p(d(2015, 1, 1), d(2015, 1, 30))

	assert.Equal(t, a.Hash(), same.Hash())
	assert.NotEqual(t, a.Hash(), other.Hash())

	set := map[uint64]Period{a.Hash(): a}
	assert.Contains(t, set, same.Hash())
}

func TestPeriod_Key(t *testing.T) {
	for _, period := range []Period{p(d(2015, 1, 1), d(2015, 1, 31)), p(d(1850, 6, 1), d(1901, 1, 1)), Forever()} {
		key := period.Key()
		parsed, err := ParseKey(key)
		require.NoError(t, err, key)
		assert.Equal(t, period, parsed)
	}
	assert.NotEqual(t, p(d(2015, 1, 1), d(2015, 1, 31)).Key(), p(d(2015, 1, 1), d(2015, 1, 30)).Key())

	t.Run("error - not base58", func(t *testing.T) {
		_, err := ParseKey("0OIl")
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
	t.Run("error - wrong length", func(t *testing.T) {
		_, err := ParseKey("2g")
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestPeriod_DayRange(t *testing.T) {
	period := p(d(2015, 1, 1), d(2015, 1, 31))
	r := period.DayRange()
	assert.Equal(t, 31, r.Len())

	back, err := FromDayRange(r)
	require.NoError(t, err)
	assert.Equal(t, period, back)

	_, err = FromDayRange(dayrange.Range{First: 5, Last: 1})
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestPeriod_All(t *testing.T) {
	period := p(d(2015, 12, 30), d(2016, 1, 2))
	expected := []date.Date{d(2015, 12, 30), d(2015, 12, 31), d(2016, 1, 1), d(2016, 1, 2)}

	collect := func() []date.Date {
		var days []date.Date
		for day := range period.All() {
			days = append(days, day)
		}
		return days
	}
	assert.Equal(t, expected, collect())
	assert.Equal(t, expected, collect(), "sequence can be iterated again")

	var first []date.Date
	for day := range period.All() {
		first = append(first, day)
		break
	}
	assert.Equal(t, expected[:1], first)
}

func TestPeriod_TradingDays(t *testing.T) {
	week := p(d(2015, 12, 21), d(2015, 12, 27))
	assert.Equal(t, 4, week.TradingDays(calendar.NewCalendar(d(2015, 12, 25))))
	assert.Equal(t, 5, week.TradingDays(nil))
}

func TestPeriod_String(t *testing.T) {
	tests := []struct {
		period   Period
		expected string
	}{
		{p(d(2015, 1, 1), d(2015, 12, 31)), "2015"},
		{p(d(2015, 7, 1), d(2015, 12, 31)), "2015-2H"},
		{p(d(2015, 7, 1), d(2015, 9, 30)), "2015-3Q"},
		{p(d(2016, 2, 1), d(2016, 2, 29)), "2016-02"},
		{p(d(2015, 7, 4), d(2015, 8, 1)), "2015-07-04 to 2015-08-01"},
		{p(d(2015, 7, 4), d(2015, 7, 4)), "2015-07-04 to 2015-07-04"},
		{p(d(2014, 1, 1), d(2015, 12, 31)), "2014-01-01 to 2015-12-31"},
		{p(d(2015, 11, 1), d(2015, 11, 15)), "2015-11-01 to 2015-11-15"},
		{Forever(), "1900-01-01 to 3000-12-31"},
	}
	for _, test := range tests {
		t.Run(test.expected, func(t *testing.T) {
			assert.Equal(t, test.expected, test.period.String())

			var parsed Period
			require.NoError(t, parsed.UnmarshalText([]byte(test.period.String())))
			assert.Equal(t, test.period, parsed)
		})
	}
}

func TestPeriod_JSON(t *testing.T) {
	type payload struct {
		Period Period `json:"period"`
	}
	bytes, err := json.Marshal(payload{Period: p(d(2015, 7, 1), d(2015, 9, 30))})
	require.NoError(t, err)
	assert.JSONEq(t, `{"period":"2015-3Q"}`, string(bytes))

	var decoded payload
	require.NoError(t, json.Unmarshal([]byte(`{"period":"2014-11 to 2015-02"}`), &decoded))
	assert.Equal(t, p(d(2014, 11, 1), d(2015, 2, 28)), decoded.Period)

	err = json.Unmarshal([]byte(`{"period":"2015 to 2014"}`), &decoded)
	assert.ErrorIs(t, err, ErrInvalidRange)
}

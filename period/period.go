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

// Package period contains the Period value type: an immutable, inclusive span of whole calendar days,
// its set algebra and its decomposition into calendar-aligned chunks.
package period

import (
	"cmp"
	"encoding/binary"
	"iter"
	"time"

	"github.com/rickb777/date/v2"
	"github.com/shengdoushi/base58"
	"github.com/spaolacci/murmur3"
	"github.com/ugradid/ugradid-period/calendar"
	"github.com/ugradid/ugradid-period/datespec"
	"github.com/ugradid/ugradid-period/dayrange"
)

const (
	// DaysPerMonth is the mean length of a Gregorian month.
	DaysPerMonth = 30.436875
	// DaysPerYear is the mean length of a Gregorian year.
	DaysPerYear = 365.2425
)

// epoch is day 0 of the day ranges handed to dayrange
var epoch = calendar.BeginningOfTime()

// Period is an inclusive span of calendar days. The zero value is not a valid Period, use New.
type Period struct {
	first date.Date
	last  date.Date
}

// Forever returns the span of commercial time, 1900-01-01 to 3000-12-31.
func Forever() Period {
	return Period{first: calendar.BeginningOfTime(), last: calendar.EndOfTime()}
}

// New creates a Period. It returns ErrInvalidRange when first is after last.
func New(first, last date.Date) (Period, error) {
	if first > last {
		return Period{}, newError(ErrInvalidRange, "first %s is after last %s", first, last)
	}
	return Period{first: first, last: last}, nil
}

// MustNew is like New but panics on an invalid range.
func MustNew(first, last date.Date) Period {
	p, err := New(first, last)
	if err != nil {
		panic(err)
	}
	return p
}

// FromTime creates a Period from the calendar days of first and last, in their own location.
func FromTime(first, last time.Time) (Period, error) {
	return New(date.NewAt(first), date.NewAt(last))
}

// ParseDates creates a Period from two ISO 8601 dates.
func ParseDates(first, last string) (Period, error) {
	f, err := date.ParseISO(first)
	if err != nil {
		return Period{}, newError(ErrInvalidInput, "first: %v", err)
	}
	l, err := date.ParseISO(last)
	if err != nil {
		return Period{}, newError(ErrInvalidInput, "last: %v", err)
	}
	return New(f, l)
}

// Parse creates a Period running from the first day of spec from to the last day of spec to.
// An empty to defaults to from, so Parse("2015-3Q", "") is the third quarter of 2015.
func Parse(from, to string) (Period, error) {
	if to == "" {
		to = from
	}
	first, err := datespec.Parse(from, datespec.From)
	if err != nil {
		return Period{}, newError(ErrInvalidInput, "%v", err)
	}
	last, err := datespec.Parse(to, datespec.To)
	if err != nil {
		return Period{}, newError(ErrInvalidInput, "%v", err)
	}
	return New(first, last)
}

// ParsePhrase parses "[from] X [to Y] [per Z]" into a Period and the requested chunk size,
// which is calendar.Irregular when the phrase has no "per" clause.
func ParsePhrase(text string) (Period, calendar.Chunk, error) {
	phrase, err := datespec.ParsePhrase(text)
	if err != nil {
		return Period{}, calendar.Irregular, newError(ErrInvalidInput, "%v", err)
	}
	p, err := Parse(phrase.From, phrase.To)
	if err != nil {
		return Period{}, calendar.Irregular, err
	}
	return p, phrase.Per, nil
}

// First returns the first day of the period.
func (p Period) First() date.Date {
	return p.first
}

// Last returns the last day of the period.
func (p Period) Last() date.Date {
	return p.last
}

// Size returns the number of days in the period, both ends included.
func (p Period) Size() int {
	return calendar.DaysBetween(p.first, p.last) + 1
}

// Days is an alias of Size.
func (p Period) Days() int {
	return p.Size()
}

// Months returns the length of the period in mean Gregorian months.
func (p Period) Months() float64 {
	return p.MonthsWith(DaysPerMonth)
}

// MonthsWith returns the length of the period in months of daysPerMonth days.
func (p Period) MonthsWith(daysPerMonth float64) float64 {
	return float64(p.Days()) / daysPerMonth
}

// Years returns the length of the period in mean Gregorian years.
func (p Period) Years() float64 {
	return p.YearsWith(DaysPerYear)
}

// YearsWith returns the length of the period in years of daysPerYear days.
func (p Period) YearsWith(daysPerYear float64) float64 {
	return float64(p.Days()) / daysPerYear
}

// Compare orders periods by first day, then by last day. It returns -1, 0 or +1.
func (p Period) Compare(o Period) int {
	if c := cmp.Compare(ordinal(p.first), ordinal(o.first)); c != 0 {
		return c
	}
	return cmp.Compare(ordinal(p.last), ordinal(o.last))
}

// CompareTo is Compare for arbitrary values. The bool is false when v is not a Period, the two are then incomparable.
func (p Period) CompareTo(v interface{}) (int, bool) {
	switch o := v.(type) {
	case Period:
		return p.Compare(o), true
	case *Period:
		if o == nil {
			return 0, false
		}
		return p.Compare(*o), true
	}
	return 0, false
}

// Equal reports whether both periods have the same first and last day.
func (p Period) Equal(o Period) bool {
	return p.Compare(o) == 0
}

// Less reports whether p sorts before o.
func (p Period) Less(o Period) bool {
	return p.Compare(o) < 0
}

// Hash returns a hash of the period, equal periods have equal hashes.
func (p Period) Hash() uint64 {
	return murmur3.Sum64(p.endpoints())
}

// Key returns a compact, reversible identifier of the period, see ParseKey.
func (p Period) Key() string {
	return base58.Encode(p.endpoints(), base58.BitcoinAlphabet)
}

// ParseKey restores the Period identified by key.
func ParseKey(key string) (Period, error) {
	data, err := base58.Decode(key, base58.BitcoinAlphabet)
	if err != nil {
		return Period{}, newError(ErrInvalidInput, "key '%s': %v", key, err)
	}
	if len(data) != 8 {
		return Period{}, newError(ErrInvalidInput, "key '%s': expected 8 bytes, got %d", key, len(data))
	}
	first := int(int32(binary.BigEndian.Uint32(data[:4])))
	last := int(int32(binary.BigEndian.Uint32(data[4:])))
	return New(fromOrdinal(first), fromOrdinal(last))
}

func (p Period) endpoints() []byte {
	data := make([]byte, 8)
	binary.BigEndian.PutUint32(data[:4], uint32(int32(ordinal(p.first))))
	binary.BigEndian.PutUint32(data[4:], uint32(int32(ordinal(p.last))))
	return data
}

// DayRange returns the period as a range of day numbers.
func (p Period) DayRange() dayrange.Range {
	return dayrange.New(ordinal(p.first), ordinal(p.last))
}

// FromDayRange converts a range of day numbers, as returned by DayRange, back to a Period.
func FromDayRange(r dayrange.Range) (Period, error) {
	return New(fromOrdinal(r.First), fromOrdinal(r.Last))
}

// All returns every day of the period in ascending order.
func (p Period) All() iter.Seq[date.Date] {
	return func(yield func(date.Date) bool) {
		for d := p.first; d <= p.last; d = calendar.NextDay(d) {
			if !yield(d) {
				return
			}
		}
	}
}

// TradingDays counts the days of the period that are trading days in cal.
func (p Period) TradingDays(cal *calendar.Calendar) int {
	count := 0
	for d := range p.All() {
		if cal.IsTradingDay(d) {
			count++
		}
	}
	return count
}

func ordinal(d date.Date) int {
	return calendar.DaysBetween(epoch, d)
}

func fromOrdinal(n int) date.Date {
	return calendar.AddDays(epoch, n)
}

// fromRange wraps a range that is already known to be valid
func fromRange(r dayrange.Range) Period {
	return Period{first: fromOrdinal(r.First), last: fromOrdinal(r.Last)}
}

func fromRanges(ranges []dayrange.Range) []Period {
	result := make([]Period, len(ranges))
	for i, r := range ranges {
		result[i] = fromRange(r)
	}
	return result
}

func toRanges(periods []Period) []dayrange.Range {
	result := make([]dayrange.Range, len(periods))
	for i, p := range periods {
		result[i] = p.DayRange()
	}
	return result
}

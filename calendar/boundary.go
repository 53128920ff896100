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

package calendar

import (
	"fmt"
	"time"

	"github.com/rickb777/date/v2"
)

// biweekAnchor is the Monday of ISO week 1 of 1970. Biweeks are the consecutive 14-day spans counted from it.
var biweekAnchor = date.New(1969, time.December, 29)

var (
	beginningOfTime = date.New(1900, time.January, 1)
	endOfTime       = date.New(3000, time.December, 31)
)

// BeginningOfTime is the earliest date of commercial interest.
func BeginningOfTime() date.Date {
	return beginningOfTime
}

// EndOfTime is the latest date of commercial interest.
func EndOfTime() date.Date {
	return endOfTime
}

// BeginningOf returns the first day of the chunk of kind c that contains d.
// It panics for Irregular, which has no calendar boundaries.
func BeginningOf(c Chunk, d date.Date) date.Date {
	year, month, day := d.Date()
	switch c {
	case Day:
		return d
	case Week:
		return AddDays(d, -isoWeekdayIndex(d))
	case Biweek:
		return AddDays(d, -floorMod(DaysBetween(biweekAnchor, d), 14))
	case Semimonth:
		if day <= 15 {
			return date.New(year, month, 1)
		}
		return date.New(year, month, 16)
	case Month:
		return date.New(year, month, 1)
	case Bimonth:
		return date.New(year, month-(month-1)%2, 1)
	case Quarter:
		return date.New(year, month-(month-1)%3, 1)
	case Half:
		return date.New(year, month-(month-1)%6, 1)
	case Year:
		return date.New(year, time.January, 1)
	case Irregular:
		panic("calendar: irregular chunk has no beginning")
	}
	panic(fmt.Sprintf("calendar: unknown chunk %d", int(c)))
}

// EndOf returns the last day of the chunk of kind c that contains d.
// It panics for Irregular, which has no calendar boundaries.
func EndOf(c Chunk, d date.Date) date.Date {
	year, month, day := d.Date()
	switch c {
	case Day:
		return d
	case Week:
		return AddDays(BeginningOf(Week, d), 6)
	case Biweek:
		return AddDays(BeginningOf(Biweek, d), 13)
	case Semimonth:
		if day <= 15 {
			return date.New(year, month, 15)
		}
		return lastOfMonth(year, month)
	case Month:
		return lastOfMonth(year, month)
	case Bimonth:
		return lastOfMonth(year, month-(month-1)%2+1)
	case Quarter:
		return lastOfMonth(year, month-(month-1)%3+2)
	case Half:
		return lastOfMonth(year, month-(month-1)%6+5)
	case Year:
		return date.New(year, time.December, 31)
	case Irregular:
		panic("calendar: irregular chunk has no end")
	}
	panic(fmt.Sprintf("calendar: unknown chunk %d", int(c)))
}

// IsBeginningOf reports whether d is the first day of a chunk of kind c.
func IsBeginningOf(c Chunk, d date.Date) bool {
	return BeginningOf(c, d) == d
}

// IsEndOf reports whether d is the last day of a chunk of kind c.
func IsEndOf(c Chunk, d date.Date) bool {
	return EndOf(c, d) == d
}

// NextDay returns the day after d.
func NextDay(d date.Date) date.Date {
	return AddDays(d, 1)
}

// PrevDay returns the day before d.
func PrevDay(d date.Date) date.Date {
	return AddDays(d, -1)
}

// AddDays moves d by n days, n may be negative.
func AddDays(d date.Date, n int) date.Date {
	return d + date.Date(n)
}

// DaysBetween returns b - a in days.
func DaysBetween(a, b date.Date) int {
	return int(b - a)
}

// QuarterOf returns the calendar quarter (1..4) of d.
func QuarterOf(d date.Date) int {
	return (int(d.Month())-1)/3 + 1
}

// HalfOf returns the calendar half (1..2) of d.
func HalfOf(d date.Date) int {
	return (int(d.Month())-1)/6 + 1
}

// BimonthOf returns the bimonth (1..6) of d.
func BimonthOf(d date.Date) int {
	return (int(d.Month())-1)/2 + 1
}

// isoWeekdayIndex is 0 for Monday up to 6 for Sunday.
func isoWeekdayIndex(d date.Date) int {
	return (int(d.Weekday()) + 6) % 7
}

func lastOfMonth(year int, month time.Month) date.Date {
	return PrevDay(date.New(year, month+1, 1))
}

func floorMod(n, m int) int {
	r := n % m
	if r < 0 {
		r += m
	}
	return r
}

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
	"time"

	"github.com/rickb777/date/v2"
)

// Calendar knows which days are trading days: weekdays that are not holidays.
// A Calendar is read-only after construction and safe for concurrent use.
type Calendar struct {
	holidays map[date.Date]struct{}
}

// NewCalendar creates a Calendar with the given holidays.
func NewCalendar(holidays ...date.Date) *Calendar {
	c := &Calendar{holidays: make(map[date.Date]struct{}, len(holidays))}
	for _, h := range holidays {
		c.holidays[h] = struct{}{}
	}
	return c
}

// IsHoliday reports whether d is a configured holiday.
func (c *Calendar) IsHoliday(d date.Date) bool {
	if c == nil {
		return false
	}
	_, ok := c.holidays[d]
	return ok
}

// IsTradingDay reports whether d is neither a weekend day nor a holiday.
// A nil Calendar only excludes weekends.
func (c *Calendar) IsTradingDay(d date.Date) bool {
	return !IsWeekend(d) && !c.IsHoliday(d)
}

// Holidays returns the number of configured holidays.
func (c *Calendar) Holidays() int {
	if c == nil {
		return 0
	}
	return len(c.holidays)
}

// IsWeekend reports whether d falls on a Saturday or Sunday.
func IsWeekend(d date.Date) bool {
	wd := d.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

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

// Package datespec resolves textual date specs such as "2014", "2014-11", "2015-3Q" or "this_month" to
// concrete calendar dates. A spec denotes a span of days; the Role decides whether its first or last day is used.
package datespec

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rickb777/date/v2"
	"github.com/ugradid/ugradid-period/calendar"
)

// ErrInvalidSpec is returned when a spec or phrase can not be resolved.
var ErrInvalidSpec = errors.New("invalid date spec")

// Role selects which end of a date spec is resolved.
type Role int

const (
	// From resolves a spec to its first day.
	From Role = iota
	// To resolves a spec to its last day.
	To
)

// todayFunc is replaced in tests to pin relative specs
var todayFunc = date.Today

var (
	yearPattern      = regexp.MustCompile(`^(\d{4})$`)
	monthPattern     = regexp.MustCompile(`^(\d{4})-(\d{1,2})$`)
	dayPattern       = regexp.MustCompile(`^(\d{4})-(\d{1,2})-(\d{1,2})$`)
	quarterPattern   = regexp.MustCompile(`^(\d{4})-(?:q([1-4])|([1-4])q)$`)
	halfPattern      = regexp.MustCompile(`^(\d{4})-(?:h([12])|([12])h)$`)
	weekPattern      = regexp.MustCompile(`^(\d{4})-w(\d{1,2})$`)
	semimonthPattern = regexp.MustCompile(`^(\d{4})-(\d{1,2})-(i|ii)$`)
	relativePattern  = regexp.MustCompile(`^(this|last|next)_([a-z]+)$`)
)

// Parse resolves spec to the first (From) or last (To) day it denotes.
func Parse(spec string, role Role) (date.Date, error) {
	first, last, err := Span(spec)
	if err != nil {
		return date.Zero, err
	}
	if role == To {
		return last, nil
	}
	return first, nil
}

// Span resolves spec to the first and last day it denotes.
func Span(spec string) (date.Date, date.Date, error) {
	s := strings.ToLower(strings.TrimSpace(spec))
	switch s {
	case "today":
		today := todayFunc()
		return today, today, nil
	case "yesterday":
		yesterday := calendar.PrevDay(todayFunc())
		return yesterday, yesterday, nil
	case "tomorrow":
		tomorrow := calendar.NextDay(todayFunc())
		return tomorrow, tomorrow, nil
	case "forever":
		return calendar.BeginningOfTime(), calendar.EndOfTime(), nil
	}

	if m := relativePattern.FindStringSubmatch(s); m != nil {
		return relative(spec, m[1], m[2])
	}
	if m := yearPattern.FindStringSubmatch(s); m != nil {
		return chunkOf(calendar.Year, date.New(atoi(m[1]), time.January, 1))
	}
	if m := monthPattern.FindStringSubmatch(s); m != nil {
		month, err := monthOf(spec, m[2])
		if err != nil {
			return date.Zero, date.Zero, err
		}
		return chunkOf(calendar.Month, date.New(atoi(m[1]), month, 1))
	}
	if m := dayPattern.FindStringSubmatch(s); m != nil {
		d, err := dayOf(spec, atoi(m[1]), m[2], m[3])
		if err != nil {
			return date.Zero, date.Zero, err
		}
		return d, d, nil
	}
	if m := quarterPattern.FindStringSubmatch(s); m != nil {
		q := atoi(m[2] + m[3])
		return chunkOf(calendar.Quarter, date.New(atoi(m[1]), time.Month(3*q-2), 1))
	}
	if m := halfPattern.FindStringSubmatch(s); m != nil {
		h := atoi(m[2] + m[3])
		return chunkOf(calendar.Half, date.New(atoi(m[1]), time.Month(6*h-5), 1))
	}
	if m := weekPattern.FindStringSubmatch(s); m != nil {
		monday, err := isoWeek(spec, atoi(m[1]), atoi(m[2]))
		if err != nil {
			return date.Zero, date.Zero, err
		}
		return chunkOf(calendar.Week, monday)
	}
	if m := semimonthPattern.FindStringSubmatch(s); m != nil {
		month, err := monthOf(spec, m[2])
		if err != nil {
			return date.Zero, date.Zero, err
		}
		day := 1
		if m[3] == "ii" {
			day = 16
		}
		return chunkOf(calendar.Semimonth, date.New(atoi(m[1]), month, day))
	}
	return date.Zero, date.Zero, errors.Wrapf(ErrInvalidSpec, "'%s'", spec)
}

func relative(spec string, which string, unit string) (date.Date, date.Date, error) {
	chunk, err := calendar.ParseChunk(unit)
	if err != nil || !chunk.Valid() {
		return date.Zero, date.Zero, errors.Wrapf(ErrInvalidSpec, "'%s': unknown unit '%s'", spec, unit)
	}
	anchor := todayFunc()
	switch which {
	case "last":
		anchor = calendar.PrevDay(calendar.BeginningOf(chunk, anchor))
	case "next":
		anchor = calendar.NextDay(calendar.EndOf(chunk, anchor))
	}
	return chunkOf(chunk, anchor)
}

func chunkOf(chunk calendar.Chunk, d date.Date) (date.Date, date.Date, error) {
	return calendar.BeginningOf(chunk, d), calendar.EndOf(chunk, d), nil
}

func monthOf(spec string, text string) (time.Month, error) {
	month := atoi(text)
	if month < 1 || month > 12 {
		return 0, errors.Wrapf(ErrInvalidSpec, "'%s': month out of range", spec)
	}
	return time.Month(month), nil
}

func dayOf(spec string, year int, monthText string, dayText string) (date.Date, error) {
	month, err := monthOf(spec, monthText)
	if err != nil {
		return date.Zero, err
	}
	first := date.New(year, month, 1)
	day := atoi(dayText)
	if day < 1 || day > calendar.EndOf(calendar.Month, first).Day() {
		return date.Zero, errors.Wrapf(ErrInvalidSpec, "'%s': day out of range", spec)
	}
	return date.New(year, month, day), nil
}

// isoWeek returns the Monday of ISO week w of year.
func isoWeek(spec string, year int, w int) (date.Date, error) {
	// January 4th is always in ISO week 1
	monday := calendar.AddDays(calendar.BeginningOf(calendar.Week, date.New(year, time.January, 4)), 7*(w-1))
	if isoYear, _ := monday.ISOWeek(); w < 1 || isoYear != year {
		return date.Zero, errors.Wrapf(ErrInvalidSpec, "'%s': week out of range", spec)
	}
	return monday, nil
}

// atoi is only applied to text matched by a digits-only group
func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

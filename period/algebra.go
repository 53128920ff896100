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
	"github.com/rickb777/date/v2"
	"github.com/ugradid/ugradid-period/dayrange"
)

// Contains reports whether d is one of the days of the period.
func (p Period) Contains(d date.Date) bool {
	return p.DayRange().Contains(ordinal(d))
}

// ContainsISO is Contains for an ISO 8601 date. It returns ErrInvalidInput when s is not a date.
func (p Period) ContainsISO(s string) (bool, error) {
	d, err := date.ParseISO(s)
	if err != nil {
		return false, newError(ErrInvalidInput, "%v", err)
	}
	return p.Contains(d), nil
}

// Overlaps reports whether the periods share at least one day. Adjacent periods do not overlap.
func (p Period) Overlaps(o Period) bool {
	return p.DayRange().Overlaps(o.DayRange())
}

// Contiguous reports whether o starts the day after p ends, or the other way around.
func (p Period) Contiguous(o Period) bool {
	return p.DayRange().Contiguous(o.DayRange())
}

// SubsetOf reports whether every day of p is in o.
func (p Period) SubsetOf(o Period) bool {
	return p.DayRange().SubsetOf(o.DayRange())
}

// ProperSubsetOf reports whether p is a subset of o and not equal to it.
func (p Period) ProperSubsetOf(o Period) bool {
	return p.DayRange().ProperSubsetOf(o.DayRange())
}

// SupersetOf reports whether p contains every day of o.
func (p Period) SupersetOf(o Period) bool {
	return p.DayRange().SupersetOf(o.DayRange())
}

// ProperSupersetOf reports whether p is a superset of o and not equal to it.
func (p Period) ProperSupersetOf(o Period) bool {
	return p.DayRange().ProperSupersetOf(o.DayRange())
}

// Intersection returns the days shared by both periods. The bool is false when they do not overlap.
func (p Period) Intersection(o Period) (Period, bool) {
	r, ok := p.DayRange().Intersection(o.DayRange())
	if !ok {
		return Period{}, false
	}
	return fromRange(r), true
}

// Union returns the period spanning both periods. The bool is false when a gap separates them,
// one Period can not represent two disjoint spans.
func (p Period) Union(o Period) (Period, bool) {
	r, ok := p.DayRange().Union(o.DayRange())
	if !ok {
		return Period{}, false
	}
	return fromRange(r), true
}

// Difference returns the parts of p that are not in o, in ascending order. It holds zero, one or two periods.
func (p Period) Difference(o Period) []Period {
	return fromRanges(p.DayRange().Difference(o.DayRange()))
}

// OverlapsAmong reports whether any two of periods overlap each other within p.
func (p Period) OverlapsAmong(periods []Period) bool {
	return p.DayRange().OverlapsWithin(toRanges(periods))
}

// SpannedBy reports whether periods together cover every day of p. They may overlap and extend beyond p.
func (p Period) SpannedBy(periods []Period) bool {
	return p.DayRange().SpannedBy(toRanges(periods))
}

// Gaps returns the maximal sub-periods of p not covered by any of periods, in ascending order.
func (p Period) Gaps(periods []Period) []Period {
	return fromRanges(p.DayRange().Gaps(toRanges(periods)))
}

// HasOverlaps reports whether any two of periods overlap.
func HasOverlaps(periods []Period) bool {
	return dayrange.HasOverlaps(toRanges(periods))
}

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

// Package dayrange implements set algebra on closed integer ranges [First, Last].
// Both endpoints are included, so a range with First == Last holds exactly one value.
package dayrange

import (
	"fmt"
	"sort"
)

// Range is a closed range of integers. First is never greater than Last.
type Range struct {
	First int
	Last  int
}

// New creates a Range. It panics when first > last, callers validate their endpoints first.
func New(first, last int) Range {
	if first > last {
		panic(fmt.Sprintf("illegal argument: first (%d) > last (%d)", first, last))
	}
	return Range{First: first, Last: last}
}

// Len returns the number of values in the range.
func (r Range) Len() int {
	return r.Last - r.First + 1
}

// Contains reports whether x lies within the range.
func (r Range) Contains(x int) bool {
	return r.First <= x && x <= r.Last
}

// ContainsRange reports whether every value of o lies within r.
func (r Range) ContainsRange(o Range) bool {
	return r.First <= o.First && o.Last <= r.Last
}

// Overlaps reports whether r and o share at least one value.
func (r Range) Overlaps(o Range) bool {
	return r.First <= o.Last && o.First <= r.Last
}

// Contiguous reports whether r and o are adjacent without sharing a value.
func (r Range) Contiguous(o Range) bool {
	return r.Last+1 == o.First || o.Last+1 == r.First
}

// SubsetOf reports whether r is contained in o.
func (r Range) SubsetOf(o Range) bool {
	return o.ContainsRange(r)
}

// ProperSubsetOf reports whether r is contained in o and differs from it.
func (r Range) ProperSubsetOf(o Range) bool {
	return r.SubsetOf(o) && r != o
}

// SupersetOf reports whether r contains o.
func (r Range) SupersetOf(o Range) bool {
	return r.ContainsRange(o)
}

// ProperSupersetOf reports whether r contains o and differs from it.
func (r Range) ProperSupersetOf(o Range) bool {
	return r.SupersetOf(o) && r != o
}

// Intersection returns the shared sub-range of r and o. The bool is false when they do not overlap.
func (r Range) Intersection(o Range) (Range, bool) {
	if !r.Overlaps(o) {
		return Range{}, false
	}
	return Range{First: maxInt(r.First, o.First), Last: minInt(r.Last, o.Last)}, true
}

// Union returns the range spanning r and o. The bool is false when a gap separates them.
func (r Range) Union(o Range) (Range, bool) {
	if !r.Overlaps(o) && !r.Contiguous(o) {
		return Range{}, false
	}
	return Range{First: minInt(r.First, o.First), Last: maxInt(r.Last, o.Last)}, true
}

// Difference returns the parts of r not covered by o, in ascending order.
func (r Range) Difference(o Range) []Range {
	if !r.Overlaps(o) {
		return []Range{r}
	}
	var result []Range
	if r.First < o.First {
		result = append(result, Range{First: r.First, Last: o.First - 1})
	}
	if o.Last < r.Last {
		result = append(result, Range{First: o.Last + 1, Last: r.Last})
	}
	return result
}

// Gaps returns the maximal sub-ranges of r that none of the given ranges cover, in ascending order.
// Ranges reaching outside r are clipped, overlaps among them are irrelevant.
func (r Range) Gaps(ranges []Range) []Range {
	var result []Range
	next := r.First
	for _, c := range r.clipped(ranges) {
		if c.First > next {
			result = append(result, Range{First: next, Last: c.First - 1})
		}
		if c.Last+1 > next {
			next = c.Last + 1
		}
	}
	if next <= r.Last {
		result = append(result, Range{First: next, Last: r.Last})
	}
	return result
}

// SpannedBy reports whether the given ranges together cover every value of r.
func (r Range) SpannedBy(ranges []Range) bool {
	return len(r.Gaps(ranges)) == 0
}

// OverlapsWithin reports whether any two of the given ranges overlap each other inside r.
func (r Range) OverlapsWithin(ranges []Range) bool {
	return HasOverlaps(r.clipped(ranges))
}

// HasOverlaps reports whether any two of the given ranges overlap.
func HasOverlaps(ranges []Range) bool {
	sorted := sortedCopy(ranges)
	for i := 1; i < len(sorted); i++ {
		// sorted on First, so any overlapping pair implies an overlapping neighbour
		if sorted[i-1].Overlaps(sorted[i]) {
			return true
		}
	}
	return false
}

// clipped returns the intersections of ranges with r, sorted by First.
func (r Range) clipped(ranges []Range) []Range {
	result := make([]Range, 0, len(ranges))
	for _, o := range ranges {
		if c, ok := r.Intersection(o); ok {
			result = append(result, c)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return less(result[i], result[j])
	})
	return result
}

func sortedCopy(ranges []Range) []Range {
	result := make([]Range, len(ranges))
	copy(result, ranges)
	sort.Slice(result, func(i, j int) bool {
		return less(result[i], result[j])
	})
	return result
}

func less(a, b Range) bool {
	if a.First != b.First {
		return a.First < b.First
	}
	return a.Last < b.Last
}

func (r Range) String() string {
	return fmt.Sprintf("[%d..%d]", r.First, r.Last)
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

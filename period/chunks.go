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
	"github.com/ugradid/ugradid-period/calendar"
)

// DefaultTolerancePct is the tolerance ChunkName applies to the long chunk kinds.
const DefaultTolerancePct = 10

// ChunkPolicy decides what Chunks does with the partial chunks at both ends of a period.
// The zero value drops both.
type ChunkPolicy struct {
	// PartialFirst keeps the leading chunk when the period does not start on a chunk boundary.
	PartialFirst bool
	// PartialLast keeps the trailing chunk, cut off at the last day of the period.
	PartialLast bool
	// RoundUpLast keeps the trailing chunk, extended to its chunk boundary. It takes precedence over PartialLast.
	RoundUpLast bool
	// Strict returns ErrChunkTooLarge instead of an empty result when the period is shorter than the smallest chunk of the size.
	Strict bool
}

// ChunkOption is used to configure a call to Chunks.
type ChunkOption func(policy *ChunkPolicy)

// WithPartialFirst keeps a partial leading chunk.
func WithPartialFirst() ChunkOption {
	return func(policy *ChunkPolicy) {
		policy.PartialFirst = true
	}
}

// WithPartialLast keeps a partial trailing chunk.
func WithPartialLast() ChunkOption {
	return func(policy *ChunkPolicy) {
		policy.PartialLast = true
	}
}

// WithRoundUpLast extends a partial trailing chunk to a whole chunk.
func WithRoundUpLast() ChunkOption {
	return func(policy *ChunkPolicy) {
		policy.RoundUpLast = true
	}
}

// WithStrict fails with ErrChunkTooLarge rather than returning no chunks when the period is shorter than the smallest chunk.
func WithStrict() ChunkOption {
	return func(policy *ChunkPolicy) {
		policy.Strict = true
	}
}

// WithPolicy replaces the whole policy. Options after it still apply.
func WithPolicy(policy ChunkPolicy) ChunkOption {
	return func(target *ChunkPolicy) {
		*target = policy
	}
}

// ChunkSym classifies the period by its calendar boundaries. It returns the coarsest kind of which the period is
// exactly one chunk, or calendar.Irregular. A single day is always calendar.Day.
func (p Period) ChunkSym() calendar.Chunk {
	if p.first == p.last {
		return calendar.Day
	}
	chunks := calendar.Chunks()
	for i := len(chunks) - 1; i >= 0; i-- {
		if p.isChunk(chunks[i]) {
			return chunks[i]
		}
	}
	return calendar.Irregular
}

func (p Period) isChunk(c calendar.Chunk) bool {
	if !calendar.IsBeginningOf(c, p.first) || !calendar.IsEndOf(c, p.last) {
		return false
	}
	lo, _ := c.MinDays()
	hi, _ := c.MaxDays()
	size := p.Size()
	return lo <= size && size <= hi
}

// DaysToChunk classifies a number of days, ignoring calendar boundaries. Day, Week, Biweek and Semimonth need an
// exact fit. The bounds of the longer kinds are widened by tolerancePct percent on both sides.
// Kinds are tried finest first, calendar.Irregular is returned when none fits.
func DaysToChunk(days int, tolerancePct int) calendar.Chunk {
	if tolerancePct < 0 {
		tolerancePct = 0
	}
	for _, c := range calendar.Chunks() {
		lo, _ := c.MinDays()
		hi, _ := c.MaxDays()
		if isTolerant(c) {
			lo = lo * (100 - tolerancePct) / 100
			hi = hi * (100 + tolerancePct) / 100
		}
		if lo <= days && days <= hi {
			return c
		}
	}
	return calendar.Irregular
}

func isTolerant(c calendar.Chunk) bool {
	switch c {
	case calendar.Day, calendar.Week, calendar.Biweek, calendar.Semimonth:
		return false
	case calendar.Month, calendar.Bimonth, calendar.Quarter, calendar.Half, calendar.Year:
		return true
	case calendar.Irregular:
		return false
	}
	return false
}

// ChunkName returns the display label of the period's length, e.g. "Quarter" for 91 days. See DaysToChunk.
func (p Period) ChunkName() string {
	return p.ChunkNameWith(DefaultTolerancePct)
}

// ChunkNameWith is ChunkName with an explicit tolerance.
func (p Period) ChunkNameWith(tolerancePct int) string {
	return DaysToChunk(p.Size(), tolerancePct).Name()
}

// ChunkContaining returns the chunk of kind c that holds d.
func ChunkContaining(d date.Date, c calendar.Chunk) (Period, error) {
	if !c.Valid() {
		return Period{}, newError(ErrInvalidChunk, "no chunk of kind %s", c)
	}
	return containing(c, d), nil
}

// shorterThan reports whether p has fewer days than the smallest chunk of kind c.
func (p Period) shorterThan(c calendar.Chunk) bool {
	lo, err := c.MinDays()
	return err == nil && p.Size() < lo
}

func containing(c calendar.Chunk, d date.Date) Period {
	return Period{first: calendar.BeginningOf(c, d), last: calendar.EndOf(c, d)}
}

// ChunksNamed is Chunks with the chunk size given by name, e.g. "quarter".
func (p Period) ChunksNamed(name string, opts ...ChunkOption) ([]Period, error) {
	size, err := calendar.ParseChunk(name)
	if err != nil {
		return nil, err
	}
	return p.Chunks(size, opts...)
}

// Chunks divides the period into consecutive, calendar-aligned chunks of the given size.
// Whole chunks inside the period are always returned. What happens to the partial chunks at both ends
// is decided by the options, by default they are dropped.
// A period inside a single chunk yields no chunks, itself (WithPartialFirst or WithPartialLast)
// or the enclosing chunk (WithRoundUpLast together with a partial option).
func (p Period) Chunks(size calendar.Chunk, opts ...ChunkOption) ([]Period, error) {
	if !size.Valid() {
		return nil, newError(ErrInvalidChunk, "can not divide a period into chunks of kind %s", size)
	}
	policy := ChunkPolicy{}
	for _, opt := range opts {
		opt(&policy)
	}

	enclosing := containing(size, p.first)
	if p.Equal(enclosing) {
		return []Period{p}, nil
	}
	if p.ProperSubsetOf(enclosing) {
		if !policy.PartialFirst && !policy.PartialLast {
			if policy.Strict && p.shorterThan(size) {
				return nil, newError(ErrChunkTooLarge, "%s does not fit a whole %s", p, size.Name())
			}
			return []Period{}, nil
		}
		if policy.RoundUpLast {
			return []Period{enclosing}, nil
		}
		return []Period{p}, nil
	}

	// p extends beyond the chunk containing its first day
	var result []Period
	if calendar.IsBeginningOf(size, p.first) || policy.PartialFirst {
		result = append(result, Period{first: p.first, last: enclosing.last})
	}
	start := calendar.NextDay(enclosing.last)
	for {
		chunk := containing(size, start)
		if chunk.last > p.last {
			break
		}
		result = append(result, chunk)
		start = calendar.NextDay(chunk.last)
	}
	if start <= p.last {
		switch {
		case policy.RoundUpLast:
			result = append(result, containing(size, start))
		case policy.PartialLast:
			result = append(result, Period{first: start, last: p.last})
		}
	}
	if len(result) == 0 && policy.Strict && p.shorterThan(size) {
		return nil, newError(ErrChunkTooLarge, "%s holds no whole %s", p, size.Name())
	}
	if result == nil {
		result = []Period{}
	}
	return result, nil
}

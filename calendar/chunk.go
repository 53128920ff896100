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
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidChunk is returned when a chunk name is not recognized or when the day bounds of Irregular are requested.
var ErrInvalidChunk = errors.New("invalid chunk")

// Chunk is a calendar-aligned subdivision unit. The regular kinds are ordered from Day (finest) to Year (coarsest).
type Chunk int

const (
	Day Chunk = iota
	Week
	Biweek
	Semimonth
	Month
	Bimonth
	Quarter
	Half
	Year
	// Irregular classifies a span that matches no other kind. It is not part of the Day..Year order.
	Irregular
)

// Chunks returns the regular chunk kinds, finest first.
func Chunks() []Chunk {
	return []Chunk{Day, Week, Biweek, Semimonth, Month, Bimonth, Quarter, Half, Year}
}

// ParseChunk resolves a chunk by its (case-insensitive) name.
func ParseChunk(name string) (Chunk, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "day":
		return Day, nil
	case "week":
		return Week, nil
	case "biweek":
		return Biweek, nil
	case "semimonth":
		return Semimonth, nil
	case "month":
		return Month, nil
	case "bimonth":
		return Bimonth, nil
	case "quarter":
		return Quarter, nil
	case "half":
		return Half, nil
	case "year":
		return Year, nil
	case "irregular":
		return Irregular, nil
	}
	return Irregular, fmt.Errorf("%w: unknown chunk '%s'", ErrInvalidChunk, name)
}

// Valid reports whether c is one of the regular kinds Day..Year.
func (c Chunk) Valid() bool {
	return c >= Day && c <= Year
}

// String returns the symbol of the chunk, e.g. "semimonth".
func (c Chunk) String() string {
	switch c {
	case Day:
		return "day"
	case Week:
		return "week"
	case Biweek:
		return "biweek"
	case Semimonth:
		return "semimonth"
	case Month:
		return "month"
	case Bimonth:
		return "bimonth"
	case Quarter:
		return "quarter"
	case Half:
		return "half"
	case Year:
		return "year"
	case Irregular:
		return "irregular"
	}
	return fmt.Sprintf("Chunk(%d)", int(c))
}

// Name returns the display label of the chunk. Irregular is labelled "Period".
func (c Chunk) Name() string {
	switch c {
	case Day:
		return "Day"
	case Week:
		return "Week"
	case Biweek:
		return "Bi-week"
	case Semimonth:
		return "Semi-month"
	case Month:
		return "Month"
	case Bimonth:
		return "Bi-month"
	case Quarter:
		return "Quarter"
	case Half:
		return "Half"
	case Year:
		return "Year"
	case Irregular:
		return "Period"
	}
	return "Period"
}

// MinDays returns the smallest number of days a chunk of this kind can span.
func (c Chunk) MinDays() (int, error) {
	lo, _, err := c.dayBounds()
	return lo, err
}

// MaxDays returns the largest number of days a chunk of this kind can span.
func (c Chunk) MaxDays() (int, error) {
	_, hi, err := c.dayBounds()
	return hi, err
}

func (c Chunk) dayBounds() (int, int, error) {
	switch c {
	case Day:
		return 1, 1, nil
	case Week:
		return 7, 7, nil
	case Biweek:
		return 14, 14, nil
	case Semimonth:
		// Feb 16..28 is the shortest second half of a month
		return 13, 16, nil
	case Month:
		return 28, 31, nil
	case Bimonth:
		return 59, 62, nil
	case Quarter:
		return 90, 92, nil
	case Half:
		return 181, 184, nil
	case Year:
		return 365, 366, nil
	case Irregular:
		return 0, 0, fmt.Errorf("%w: irregular has no day bounds", ErrInvalidChunk)
	}
	return 0, 0, fmt.Errorf("%w: %s", ErrInvalidChunk, c)
}

// MarshalText encodes the chunk as its symbol.
func (c Chunk) MarshalText() ([]byte, error) {
	if c != Irregular && !c.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidChunk, int(c))
	}
	return []byte(c.String()), nil
}

// UnmarshalText decodes a chunk symbol, see ParseChunk.
func (c *Chunk) UnmarshalText(text []byte) error {
	parsed, err := ParseChunk(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

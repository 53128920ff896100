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
	"fmt"
	"strings"

	"github.com/ugradid/ugradid-period/calendar"
)

const rangeSeparator = " to "

// String renders the period in its canonical form: "2015" for a whole year, "2015-2H", "2015-3Q" and "2015-07"
// for whole halves, quarters and months, otherwise "2015-07-04 to 2015-08-01".
func (p Period) String() string {
	year := p.first.Year()
	switch {
	case p.isWhole(calendar.Year):
		return fmt.Sprintf("%04d", year)
	case p.isWhole(calendar.Half):
		return fmt.Sprintf("%04d-%dH", year, calendar.HalfOf(p.first))
	case p.isWhole(calendar.Quarter):
		return fmt.Sprintf("%04d-%dQ", year, calendar.QuarterOf(p.first))
	case p.isWhole(calendar.Month):
		return fmt.Sprintf("%04d-%02d", year, int(p.first.Month()))
	}
	return p.first.String() + rangeSeparator + p.last.String()
}

// isWhole reports whether the period is exactly one chunk of kind c
func (p Period) isWhole(c calendar.Chunk) bool {
	return calendar.IsBeginningOf(c, p.first) && calendar.EndOf(c, p.first) == p.last
}

// MarshalText encodes the period in its canonical form.
func (p Period) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText decodes a single date spec ("2015-3Q") or two specs joined by " to ".
func (p *Period) UnmarshalText(text []byte) error {
	from, to, _ := strings.Cut(strings.TrimSpace(string(text)), rangeSeparator)
	parsed, err := Parse(from, to)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

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

package datespec

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/ugradid/ugradid-period/calendar"
)

// Phrase is the parsed form of "[from] X [to Y] [per Z]".
type Phrase struct {
	From string
	To   string
	// Per is Irregular when the phrase names no chunk size
	Per calendar.Chunk
}

// ParsePhrase splits text into its from spec, to spec and chunk size. The specs themselves are not resolved.
func ParsePhrase(text string) (Phrase, error) {
	phrase := Phrase{Per: calendar.Irregular}
	fields := strings.Fields(strings.ToLower(text))
	target := &phrase.From
	for i := 0; i < len(fields); i++ {
		switch fields[i] {
		case "from":
			target = &phrase.From
		case "to":
			target = &phrase.To
		case "per":
			if i+1 >= len(fields) {
				return Phrase{}, errors.Wrapf(ErrInvalidSpec, "'%s': missing chunk size after 'per'", text)
			}
			i++
			chunk, err := calendar.ParseChunk(fields[i])
			if err != nil || !chunk.Valid() {
				return Phrase{}, errors.Wrapf(ErrInvalidSpec, "'%s': unknown chunk size '%s'", text, fields[i])
			}
			phrase.Per = chunk
		default:
			if *target != "" {
				return Phrase{}, errors.Wrapf(ErrInvalidSpec, "'%s': unexpected '%s'", text, fields[i])
			}
			*target = fields[i]
		}
	}
	if phrase.From == "" {
		return Phrase{}, errors.Wrapf(ErrInvalidSpec, "'%s': missing from spec", text)
	}
	if phrase.To == "" {
		phrase.To = phrase.From
	}
	return phrase, nil
}

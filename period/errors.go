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
	"errors"
	"fmt"

	"github.com/ugradid/ugradid-period/calendar"
)

// ErrInvalidRange is returned when a period would end before it starts.
var ErrInvalidRange = errors.New("invalid period range")

// ErrInvalidInput is returned when an argument can not be resolved to a date.
var ErrInvalidInput = errors.New("invalid period input")

// ErrInvalidChunk is returned for Irregular or unknown chunk sizes.
var ErrInvalidChunk = calendar.ErrInvalidChunk

// ErrChunkTooLarge is returned in strict mode when the period is shorter than the smallest chunk of the requested size.
var ErrChunkTooLarge = errors.New("chunk size too large for period")

type periodError struct {
	kind error
	msg  string
}

// Error returns the error message
func (err *periodError) Error() string {
	return fmt.Sprintf("%s: %s", err.kind, err.msg)
}

// Is checks if periodError matches the target error
func (err *periodError) Is(target error) bool {
	return errors.Is(target, err.kind)
}

func newError(kind error, format string, args ...interface{}) error {
	return &periodError{kind: kind, msg: fmt.Sprintf(format, args...)}
}

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

package reporting

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rickb777/date/v2"
	"github.com/ugradid/ugradid-period/calendar"
	"github.com/ugradid/ugradid-period/period"
)

// ErrNotFound is returned when no period is registered under a name.
var ErrNotFound = errors.New("named period not found")

// ErrNameConflict is returned when a name is already bound to a different period.
var ErrNameConflict = errors.New("name is bound to a different period")

// ErrInvalidName is returned for empty names.
var ErrInvalidName = errors.New("invalid period name")

// ErrInvalidOperation is returned by ParseOperation for unknown operations.
var ErrInvalidOperation = errors.New("invalid operation")

// Operation is a binary set operation on periods.
type Operation string

const (
	Intersection Operation = "intersection"
	Union        Operation = "union"
	Difference   Operation = "difference"
)

// ParseOperation resolves an operation by its (case-insensitive) name.
func ParseOperation(name string) (Operation, error) {
	op := Operation(strings.ToLower(strings.TrimSpace(name)))
	switch op {
	case Intersection, Union, Difference:
		return op, nil
	}
	return "", fmt.Errorf("%w: '%s'", ErrInvalidOperation, name)
}

// Description summarizes a period.
type Description struct {
	Period      period.Period  `json:"period" yaml:"period"`
	First       date.Date      `json:"first" yaml:"first"`
	Last        date.Date      `json:"last" yaml:"last"`
	Days        int            `json:"days" yaml:"days"`
	Months      float64        `json:"months" yaml:"months"`
	Years       float64        `json:"years" yaml:"years"`
	Chunk       calendar.Chunk `json:"chunk" yaml:"chunk"`
	ChunkName   string         `json:"chunkName" yaml:"chunkName"`
	TradingDays int            `json:"tradingDays" yaml:"tradingDays"`
	// Name is the registered name of the period, if any
	Name string `json:"name,omitempty" yaml:"name,omitempty"`
}

// NamedPeriod is a registry entry.
type NamedPeriod struct {
	Name   string        `json:"name" yaml:"name"`
	Period period.Period `json:"period" yaml:"period"`
}

// Service computes on periods with the configured tolerance, chunk policy and holidays.
type Service interface {
	// Describe summarizes p, including its registered name.
	Describe(p period.Period) (Description, error)
	// Chunks divides p. The configured chunk policy applies before opts.
	Chunks(p period.Period, size calendar.Chunk, opts ...period.ChunkOption) ([]period.Period, error)
	// Gaps returns the parts of p that covered leaves open.
	Gaps(p period.Period, covered []period.Period) []period.Period
	// Combine applies op to a and b. An absent result is an empty slice.
	Combine(op Operation, a, b period.Period) []period.Period
}

// Registry stores periods under a name.
type Registry interface {
	// Save binds name to p. Binding a name to a different period fails with ErrNameConflict unless overwrite is set.
	Save(name string, p period.Period, overwrite bool) error
	// Find returns the period bound to name or ErrNotFound.
	Find(name string) (period.Period, error)
	// Delete removes name or returns ErrNotFound.
	Delete(name string) error
	// List returns all entries ordered by name.
	List() ([]NamedPeriod, error)
	// NameOf returns the first name, in lexical order, bound to p or ErrNotFound.
	NameOf(p period.Period) (string, error)
}

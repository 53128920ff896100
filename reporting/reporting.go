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

	"github.com/rickb777/date/v2"
	"github.com/ugradid/ugradid-period/calendar"
	"github.com/ugradid/ugradid-period/core"
	"github.com/ugradid/ugradid-period/period"
	"github.com/ugradid/ugradid-period/reporting/log"
	"go.etcd.io/bbolt"
)

// Store runs bbolt transactions, it's implemented by the database engine.
type Store interface {
	Update(fn func(tx *bbolt.Tx) error) error
	View(fn func(tx *bbolt.Tx) error) error
}

// Reporting is the engine serving period computations and the named period registry.
type Reporting struct {
	config   Config
	store    Store
	calendar *calendar.Calendar
}

var _ Service = (*Reporting)(nil)
var _ Registry = (*Reporting)(nil)

// NewReportingInstance creates a new instance of the reporting engine, storing named periods in store.
func NewReportingInstance(store Store) *Reporting {
	return &Reporting{
		config: DefaultConfig(),
		store:  store,
	}
}

func (r *Reporting) Name() string {
	return moduleName
}

func (r *Reporting) Config() interface{} {
	return &r.config
}

// Configure validates the tolerance and loads the holiday calendar.
func (r *Reporting) Configure(_ core.ServerConfig) error {
	if r.config.Tolerance < 0 || r.config.Tolerance > 100 {
		return fmt.Errorf("tolerance must be between 0 and 100 percent, got %d", r.config.Tolerance)
	}
	holidays := make([]date.Date, 0, len(r.config.Holidays))
	for _, h := range r.config.Holidays {
		d, err := date.ParseISO(h)
		if err != nil {
			return fmt.Errorf("invalid holiday '%s': %w", h, err)
		}
		holidays = append(holidays, d)
	}
	r.calendar = calendar.NewCalendar(holidays...)
	log.Logger().Debugf("Loaded %d holidays", r.calendar.Holidays())
	return nil
}

// Start creates the registry buckets.
func (r *Reporting) Start() error {
	return r.store.Update(func(tx *bbolt.Tx) error {
		for _, name := range [][]byte{periodsBucket, keysBucket} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return err
			}
		}
		return nil
	})
}

// Shutdown does nothing, the database engine closes the store.
func (r *Reporting) Shutdown() error {
	return nil
}

// Describe summarizes p, including its registered name when a store is present.
func (r *Reporting) Describe(p period.Period) (Description, error) {
	desc := Description{
		Period:      p,
		First:       p.First(),
		Last:        p.Last(),
		Days:        p.Days(),
		Months:      p.Months(),
		Years:       p.Years(),
		Chunk:       p.ChunkSym(),
		ChunkName:   p.ChunkNameWith(r.config.Tolerance),
		TradingDays: p.TradingDays(r.calendar),
	}
	if r.store == nil {
		return desc, nil
	}
	name, err := r.NameOf(p)
	switch {
	case err == nil:
		desc.Name = name
	case !errors.Is(err, ErrNotFound):
		return Description{}, err
	}
	return desc, nil
}

// Chunks divides p. The configured chunk policy applies before opts.
func (r *Reporting) Chunks(p period.Period, size calendar.Chunk, opts ...period.ChunkOption) ([]period.Period, error) {
	all := append([]period.ChunkOption{period.WithPolicy(r.config.ChunkPolicy())}, opts...)
	chunks, err := p.Chunks(size, all...)
	if err != nil {
		return nil, err
	}
	log.Logger().Debugf("Divided %s into %d chunks of %s", p, len(chunks), size)
	return chunks, nil
}

// Gaps returns the parts of p that covered leaves open.
func (r *Reporting) Gaps(p period.Period, covered []period.Period) []period.Period {
	return p.Gaps(covered)
}

// Combine applies op to a and b. An absent result is an empty slice.
func (r *Reporting) Combine(op Operation, a, b period.Period) []period.Period {
	switch op {
	case Intersection:
		if i, ok := a.Intersection(b); ok {
			return []period.Period{i}
		}
	case Union:
		if u, ok := a.Union(b); ok {
			return []period.Period{u}
		}
	case Difference:
		return a.Difference(b)
	}
	return []period.Period{}
}

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
	"strings"

	"github.com/pkg/errors"
	"github.com/ugradid/ugradid-period/period"
	"github.com/ugradid/ugradid-period/reporting/log"
	"go.etcd.io/bbolt"
)

// periodsBucket maps name to the canonical text of the period
var periodsBucket = []byte("periods")

// keysBucket holds a nested bucket per Period.Key, listing the names bound to that period
var keysBucket = []byte("keys")

// errNotStarted is returned when the registry buckets are missing
var errNotStarted = errors.New("reporting registry not started")

// Save binds name to p. Binding a name to a different period fails with ErrNameConflict unless overwrite is set.
func (r *Reporting) Save(name string, p period.Period, overwrite bool) error {
	if strings.TrimSpace(name) == "" {
		return ErrInvalidName
	}
	return r.store.Update(func(tx *bbolt.Tx) error {
		periods, keys, err := registryBuckets(tx)
		if err != nil {
			return err
		}
		if existing := periods.Get([]byte(name)); existing != nil {
			old, err := decodePeriod(name, existing)
			if err != nil {
				return err
			}
			if old.Equal(p) {
				return nil
			}
			if !overwrite {
				return errors.Wrapf(ErrNameConflict, "'%s' is bound to %s", name, old)
			}
			if err := unindex(keys, old, name); err != nil {
				return err
			}
		}
		text, _ := p.MarshalText()
		if err := periods.Put([]byte(name), text); err != nil {
			return errors.Wrapf(err, "unable to store '%s'", name)
		}
		names, err := keys.CreateBucketIfNotExists([]byte(p.Key()))
		if err != nil {
			return errors.Wrapf(err, "unable to index '%s'", name)
		}
		if err := names.Put([]byte(name), []byte{}); err != nil {
			return errors.Wrapf(err, "unable to index '%s'", name)
		}
		log.Logger().Infof("Named period stored (name=%s, period=%s)", name, p)
		return nil
	})
}

// Find returns the period bound to name or ErrNotFound.
func (r *Reporting) Find(name string) (period.Period, error) {
	var result period.Period
	err := r.store.View(func(tx *bbolt.Tx) error {
		periods, _, err := registryBuckets(tx)
		if err != nil {
			return err
		}
		value := periods.Get([]byte(name))
		if value == nil {
			return errors.Wrapf(ErrNotFound, "'%s'", name)
		}
		result, err = decodePeriod(name, value)
		return err
	})
	return result, err
}

// Delete removes name or returns ErrNotFound.
func (r *Reporting) Delete(name string) error {
	return r.store.Update(func(tx *bbolt.Tx) error {
		periods, keys, err := registryBuckets(tx)
		if err != nil {
			return err
		}
		value := periods.Get([]byte(name))
		if value == nil {
			return errors.Wrapf(ErrNotFound, "'%s'", name)
		}
		old, err := decodePeriod(name, value)
		if err != nil {
			return err
		}
		if err := unindex(keys, old, name); err != nil {
			return err
		}
		if err := periods.Delete([]byte(name)); err != nil {
			return errors.Wrapf(err, "unable to delete '%s'", name)
		}
		log.Logger().Infof("Named period deleted (name=%s)", name)
		return nil
	})
}

// List returns all entries ordered by name.
func (r *Reporting) List() ([]NamedPeriod, error) {
	result := make([]NamedPeriod, 0)
	err := r.store.View(func(tx *bbolt.Tx) error {
		periods, _, err := registryBuckets(tx)
		if err != nil {
			return err
		}
		return periods.ForEach(func(k, v []byte) error {
			p, err := decodePeriod(string(k), v)
			if err != nil {
				return err
			}
			result = append(result, NamedPeriod{Name: string(k), Period: p})
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// NameOf returns the first name, in lexical order, bound to p or ErrNotFound.
func (r *Reporting) NameOf(p period.Period) (string, error) {
	var name string
	err := r.store.View(func(tx *bbolt.Tx) error {
		_, keys, err := registryBuckets(tx)
		if err != nil {
			return err
		}
		names := keys.Bucket([]byte(p.Key()))
		if names == nil {
			return errors.Wrapf(ErrNotFound, "%s", p)
		}
		first, _ := names.Cursor().First()
		if first == nil {
			return errors.Wrapf(ErrNotFound, "%s", p)
		}
		name = string(first)
		return nil
	})
	return name, err
}

func registryBuckets(tx *bbolt.Tx) (*bbolt.Bucket, *bbolt.Bucket, error) {
	periods := tx.Bucket(periodsBucket)
	keys := tx.Bucket(keysBucket)
	if periods == nil || keys == nil {
		return nil, nil, errNotStarted
	}
	return periods, keys, nil
}

// unindex removes name from the key index of p, dropping the nested bucket once it is empty
func unindex(keys *bbolt.Bucket, p period.Period, name string) error {
	key := []byte(p.Key())
	names := keys.Bucket(key)
	if names == nil {
		return nil
	}
	if err := names.Delete([]byte(name)); err != nil {
		return errors.Wrapf(err, "unable to unindex '%s'", name)
	}
	if first, _ := names.Cursor().First(); first != nil {
		return nil
	}
	return keys.DeleteBucket(key)
}

func decodePeriod(name string, value []byte) (period.Period, error) {
	var p period.Period
	if err := p.UnmarshalText(value); err != nil {
		return period.Period{}, errors.Wrapf(err, "corrupt registry entry '%s'", name)
	}
	return p, nil
}

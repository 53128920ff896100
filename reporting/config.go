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

import "github.com/ugradid/ugradid-period/period"

const moduleName = "reporting"

// Config holds the config for the reporting engine
type Config struct {
	// Tolerance is the percentage by which chunk names stretch the day bounds of the longer chunk kinds
	Tolerance    int      `koanf:"reporting.tolerance"`
	PartialFirst bool     `koanf:"reporting.chunks.partialfirst"`
	PartialLast  bool     `koanf:"reporting.chunks.partiallast"`
	RoundUpLast  bool     `koanf:"reporting.chunks.roundup"`
	Strict       bool     `koanf:"reporting.chunks.strict"`
	Holidays     []string `koanf:"reporting.holidays"`
}

// DefaultConfig returns a fresh Config filled with default values
func DefaultConfig() Config {
	return Config{
		Tolerance: period.DefaultTolerancePct,
	}
}

// ChunkPolicy returns the configured chunk policy.
func (c Config) ChunkPolicy() period.ChunkPolicy {
	return period.ChunkPolicy{
		PartialFirst: c.PartialFirst,
		PartialLast:  c.PartialLast,
		RoundUpLast:  c.RoundUpLast,
		Strict:       c.Strict,
	}
}

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

package cmd

import (
	"github.com/spf13/pflag"
	"github.com/ugradid/ugradid-period/db"
)

const (
	// ConfigFile is used as --database.file config flag
	ConfigFile = "database.file"
	// ConfigLockTimeout is used as --database.locktimeout config flag
	ConfigLockTimeout = "database.locktimeout"
)

// FlagSet returns the configuration flags for the period database
func FlagSet() *pflag.FlagSet {
	flags := pflag.NewFlagSet("database", pflag.ContinueOnError)

	defs := db.DefaultDatabaseConfig()
	flags.String(ConfigFile, defs.File, "File below <datadir>/db holding the named periods.")
	flags.Duration(ConfigLockTimeout, defs.LockTimeout,
		"How long a command waits for the database while a server holds it open.")

	return flags
}

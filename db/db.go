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

package db

import (
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/ugradid/ugradid-period/core"
	"github.com/ugradid/ugradid-period/db/log"
	"go.etcd.io/bbolt"
)

// boltDBFileMode holds the Unix file mode the created BBolt database files will have.
const boltDBFileMode = 0600

// defaultLockTimeout bounds the wait for the file lock held by a running server.
const defaultLockTimeout = time.Second

const (
	// ModuleName contains the name of this module
	ModuleName = "database"
)

// ErrNotOpen is returned when the database is used before Configure opened it.
var ErrNotOpen = errors.New("database is not open")

// Config holds the values for the database engine
type Config struct {
	File        string        `koanf:"database.file"`
	LockTimeout time.Duration `koanf:"database.locktimeout"`
}

// DefaultDatabaseConfig returns a Config with sane defaults
func DefaultDatabaseConfig() Config {
	return Config{
		File:        "period.db",
		LockTimeout: defaultLockTimeout,
	}
}

// Database holds references to database and needed config
type Database struct {
	*bbolt.DB
	config Config
}

// NewDatabaseInstance creates a new instance of the database engine.
func NewDatabaseInstance() *Database {
	return &Database{
		config: DefaultDatabaseConfig(),
	}
}

func (db *Database) Name() string {
	return ModuleName
}

func (db *Database) Config() interface{} {
	return &db.config
}

// Configure opens the database file below the data directory. Any wrong combination will return an error
func (db *Database) Configure(config core.ServerConfig) error {
	if db.config.File == "" {
		return errors.New("database file name is required")
	}
	if db.config.LockTimeout <= 0 {
		return fmt.Errorf("database lock timeout must be positive, got %s", db.config.LockTimeout)
	}

	dbFile := path.Join(config.Datadir, "db", db.config.File)
	if err := os.MkdirAll(filepath.Dir(dbFile), os.ModePerm); err != nil {
		return err
	}

	log.Logger().Infof("Open database %s", dbFile)

	var err error
	options := &bbolt.Options{Timeout: db.config.LockTimeout, FreelistType: bbolt.FreelistArrayType}
	if db.DB, err = bbolt.Open(dbFile, boltDBFileMode, options); err != nil {
		if errors.Is(err, bbolt.ErrTimeout) {
			return fmt.Errorf("database %s is locked, is a server running: %w", dbFile, err)
		}
		return err
	}

	return nil
}

// Start does nothing, the database is opened by Configure.
func (db *Database) Start() error {
	return nil
}

// Shutdown closes the database file.
func (db *Database) Shutdown() error {
	if db.DB == nil {
		return nil
	}
	log.Logger().Info("Closing database")
	err := db.DB.Close()
	db.DB = nil
	return err
}

// Update runs fn in a read-write transaction.
func (db *Database) Update(fn func(tx *bbolt.Tx) error) error {
	if db.DB == nil {
		return ErrNotOpen
	}
	return db.DB.Update(fn)
}

// View runs fn in a read-only transaction.
func (db *Database) View(fn func(tx *bbolt.Tx) error) error {
	if db.DB == nil {
		return ErrNotOpen
	}
	return db.DB.View(fn)
}

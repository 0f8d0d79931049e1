// Copyright 2026 The NFT-Gated Historical Archives authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package database provides persistent storage for the grant-funding
// pipeline: a sqlite metadata store for proposals, votes, projects,
// milestone proofs, treasury and component params, plus a badger-backed
// append-only archive of emitted domain events.
package database

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/asakaemmanuel414-sys/NFT-Gated-Historical-Archives/database/models"
	badger "github.com/dgraph-io/badger/v4"
	"github.com/glebarez/sqlite"
	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	"gorm.io/plugin/opentelemetry/tracing"
)

// Config contains the database configuration
type Config struct {
	Logger       *slog.Logger
	PromRegistry prometheus.Registerer
	// DataDir is the storage directory. Empty means fully in-memory
	// stores, useful for testing
	DataDir string
	// Tracing enables the gorm OpenTelemetry plugin
	Tracing bool
}

// Database wraps the metadata store and the event archive
type Database struct {
	logger   *slog.Logger
	metadata *gorm.DB
	eventDb  *badger.DB
	eventSeq *badger.Sequence
	dataDir  string
}

// New creates a new database instance with optional persistence using the
// provided data directory
func New(cfg *Config) (*Database, error) {
	if cfg == nil {
		cfg = &Config{}
	}
	logger := cfg.Logger
	if logger == nil {
		// Create logger to throw away logs
		// We do this so we don't have to add guards around every log operation
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	var metadataDb *gorm.DB
	var err error
	if cfg.DataDir == "" {
		// Use in-memory database when no data directory is specified, useful for testing
		// cache=shared allows multiple connections to share the same in-memory database
		metadataDb, err = gorm.Open(
			sqlite.Open("file::memory:?cache=shared"),
			&gorm.Config{
				Logger:                 gormlogger.Discard,
				SkipDefaultTransaction: true,
			},
		)
		if err != nil {
			return nil, err
		}
	} else {
		// Make sure that we can read data dir, and create if it doesn't exist
		if _, err := os.Stat(cfg.DataDir); err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("failed to read data dir: %w", err)
			}
			if err := os.MkdirAll(cfg.DataDir, fs.ModePerm); err != nil {
				return nil, fmt.Errorf("failed to create data dir: %w", err)
			}
		}
		metadataDbPath := filepath.Join(
			cfg.DataDir,
			"metadata.sqlite",
		)
		// WAL journal mode, disable sync on write
		metadataConnOpts := "_pragma=journal_mode(WAL)&_pragma=sync(OFF)"
		metadataDb, err = gorm.Open(
			sqlite.Open(
				fmt.Sprintf("file:%s?%s", metadataDbPath, metadataConnOpts),
			),
			&gorm.Config{
				Logger:                 gormlogger.Discard,
				SkipDefaultTransaction: true,
			},
		)
		if err != nil {
			return nil, err
		}
	}
	if cfg.Tracing {
		if err := metadataDb.Use(tracing.NewPlugin(tracing.WithoutMetrics())); err != nil {
			return nil, err
		}
	}
	eventDb, err := openEventDb(cfg.DataDir, logger)
	if err != nil {
		return nil, err
	}
	db := &Database{
		logger:   logger,
		metadata: metadataDb,
		eventDb:  eventDb,
		dataDir:  cfg.DataDir,
	}
	// Create table schemas
	for _, model := range models.MigrateModels {
		db.logger.Debug(fmt.Sprintf("creating table: %#v", model))
		if err := metadataDb.AutoMigrate(model); err != nil {
			return db, err
		}
	}
	db.eventSeq, err = eventDb.GetSequence(eventSeqKey, eventSeqBandwidth)
	if err != nil {
		return db, fmt.Errorf("failed to open event sequence: %w", err)
	}
	return db, nil
}

func openEventDb(dataDir string, logger *slog.Logger) (*badger.DB, error) {
	if dataDir == "" {
		badgerOpts := badger.DefaultOptions("").
			WithLogger(newBadgerLogger(logger)).
			// The default INFO logging is a bit verbose
			WithLoggingLevel(badger.WARNING).
			WithInMemory(true)
		return badger.Open(badgerOpts)
	}
	eventDir := filepath.Join(
		dataDir,
		"events",
	)
	badgerOpts := badger.DefaultOptions(eventDir).
		WithLogger(newBadgerLogger(logger)).
		WithLoggingLevel(badger.WARNING)
	return badger.Open(badgerOpts)
}

// DataDir returns the path to the data directory used for storage
func (d *Database) DataDir() string {
	return d.dataDir
}

// Logger returns the logger instance
func (d *Database) Logger() *slog.Logger {
	return d.logger
}

// Metadata returns the underlying metadata store instance
func (d *Database) Metadata() *gorm.DB {
	return d.metadata
}

// Transaction starts a new database transaction and returns a handle to it
func (d *Database) Transaction(readWrite bool) *Txn {
	return NewTxn(d, readWrite)
}

// Close cleans up the database connections
func (d *Database) Close() error {
	var err error
	if d.eventSeq != nil {
		err = errors.Join(err, d.eventSeq.Release())
	}
	if sqlDb, sqlErr := d.metadata.DB(); sqlErr == nil {
		err = errors.Join(err, sqlDb.Close())
	}
	if d.eventDb != nil {
		err = errors.Join(err, d.eventDb.Close())
	}
	return err
}

// badgerLogger adapts slog to the badger logging interface
type badgerLogger struct {
	logger *slog.Logger
}

func newBadgerLogger(logger *slog.Logger) *badgerLogger {
	return &badgerLogger{
		logger: logger.With("component", "eventdb"),
	}
}

func (b *badgerLogger) Errorf(format string, args ...any) {
	b.logger.Error(fmt.Sprintf(format, args...))
}

func (b *badgerLogger) Warningf(format string, args ...any) {
	b.logger.Warn(fmt.Sprintf(format, args...))
}

func (b *badgerLogger) Infof(format string, args ...any) {
	b.logger.Info(fmt.Sprintf(format, args...))
}

func (b *badgerLogger) Debugf(format string, args ...any) {
	b.logger.Debug(fmt.Sprintf(format, args...))
}

// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// BackendSQLite - name of the SQLite backend
const BackendSQLite = "sqlite"

const sqliteSchema = `CREATE TABLE IF NOT EXISTS kv (
	k BLOB PRIMARY KEY,
	v BLOB NOT NULL
) WITHOUT ROWID`

type sqliteBackend struct {
	db *sql.DB
}

// OpenSQLite - open or create a single table SQLite key/value file
func OpenSQLite(fileName string) (Backend, error) {
	db, err := sql.Open("sqlite3", fileName)
	if nil != err {
		return nil, fmt.Errorf("open sqlite: %s: %w", fileName, err)
	}

	if err := db.Ping(); nil != err {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %s: %w", fileName, err)
	}

	// one connection so the pragmas apply to every statement
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); nil != err {
			db.Close()
			return nil, fmt.Errorf("sqlite: %s: %w", pragma, err)
		}
	}

	if _, err := db.Exec(sqliteSchema); nil != err {
		db.Close()
		return nil, fmt.Errorf("sqlite schema: %w", err)
	}

	return &sqliteBackend{
		db: db,
	}, nil
}

func (s *sqliteBackend) Name() string {
	return BackendSQLite
}

func (s *sqliteBackend) Get(key []byte) ([]byte, error) {
	var value []byte
	err := s.db.QueryRow(`SELECT v FROM kv WHERE k = ?`, key).Scan(&value)
	if sql.ErrNoRows == err {
		return nil, nil
	}
	if nil != err {
		return nil, fmt.Errorf("sqlite get: %w", err)
	}
	if nil == value {
		value = []byte{}
	}
	return value, nil
}

func (s *sqliteBackend) Write(batch *Batch) error {
	tx, err := s.db.Begin()
	if nil != err {
		return fmt.Errorf("sqlite begin: %w", err)
	}

	batch.Replay(func(key []byte, value []byte) {
		if nil != err {
			return
		}
		if nil == value {
			_, err = tx.Exec(`DELETE FROM kv WHERE k = ?`, key)
		} else {
			_, err = tx.Exec(`INSERT INTO kv (k, v) VALUES (?, ?)
				ON CONFLICT(k) DO UPDATE SET v = excluded.v`, key, value)
		}
	})
	if nil != err {
		tx.Rollback()
		return fmt.Errorf("sqlite write: %w", err)
	}

	if err := tx.Commit(); nil != err {
		return fmt.Errorf("sqlite commit: %w", err)
	}
	return nil
}

func (s *sqliteBackend) Close() error {
	return s.db.Close()
}

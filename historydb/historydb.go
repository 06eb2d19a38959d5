// Copyright (c) 2026 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package historydb keeps the activity history of staking positions in sqlite.
package historydb

import (
	"context"
	"database/sql"
	"strings"

	sqlite3 "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
)

type HistoryDB struct {
	path          string
	db            *sql.DB
	stmtCache     *stmtCache
	driverVersion string
}

// New create or open history db at given path.
func New(path string) (historyDB *HistoryDB, err error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, errors.Wrap(err, "open history db")
	}
	defer func() {
		if historyDB == nil {
			db.Close()
		}
	}()
	// single writer; also keeps an in-memory db on one connection
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(historyTableSchema); err != nil {
		return nil, errors.Wrap(err, "create history schema")
	}

	driverVer, _, _ := sqlite3.Version()
	return &HistoryDB{
		path,
		db,
		newStmtCache(db),
		driverVer,
	}, nil
}

// NewMem create a history db in ram.
func NewMem() (*HistoryDB, error) {
	return New(":memory:")
}

// Close close the history db.
func (db *HistoryDB) Close() error {
	if err := db.stmtCache.Close(); err != nil {
		db.db.Close()
		return errors.Wrap(err, "close statements")
	}
	return db.db.Close()
}

func (db *HistoryDB) Path() string {
	return db.path
}

// DriverVersion returns the version of the underlying sqlite library.
func (db *HistoryDB) DriverVersion() string {
	return db.driverVersion
}

// Insert appends the events in one transaction and fills their Seq.
func (db *HistoryDB) Insert(events ...*Event) error {
	if len(events) == 0 {
		return nil
	}
	stmt, err := db.stmtCache.Prepare(insertHistory)
	if err != nil {
		return err
	}
	err = db.execInTx(func(tx *sql.Tx) error {
		txStmt := tx.Stmt(stmt)
		defer txStmt.Close()

		for _, ev := range events {
			// uint64 is stored bit for bit in the signed sqlite integer
			res, err := txStmt.Exec(
				ev.Principal,
				string(ev.Kind),
				int64(ev.BlockNumber),
				int64(ev.Amount),
				ev.RequestID,
				int64(ev.StakedAfter),
				ev.Tier,
			)
			if err != nil {
				return err
			}
			seq, err := res.LastInsertId()
			if err != nil {
				return err
			}
			ev.Seq = uint64(seq)
		}
		return nil
	})
	if err != nil {
		return errors.Wrap(err, "insert history")
	}
	metricsHandleInsert(events)
	return nil
}

// Filter returns the events matching filter, ordered by block then insertion.
func (db *HistoryDB) Filter(ctx context.Context, filter *Filter) ([]*Event, error) {
	if filter == nil {
		return db.query(ctx, selectHistory+" ORDER BY blockNumber ASC, seq ASC")
	}
	metricsHandleFilter(filter)

	var args []any
	stmt := selectHistory + " WHERE principal = ?"
	args = append(args, filter.Principal)

	if filter.Range != nil {
		args = append(args, int64(filter.Range.From))
		stmt += " AND blockNumber >= ?"
		if filter.Range.To >= filter.Range.From {
			args = append(args, int64(filter.Range.To))
			stmt += " AND blockNumber <= ?"
		}
	}
	if kinds := uniqueKinds(filter.Kinds); len(kinds) > 0 {
		stmt += " AND kind IN (?" + strings.Repeat(", ?", len(kinds)-1) + ")"
		for _, k := range kinds {
			args = append(args, string(k))
		}
	}

	if filter.Order == DESC {
		stmt += " ORDER BY blockNumber DESC, seq DESC"
	} else {
		stmt += " ORDER BY blockNumber ASC, seq ASC"
	}

	if filter.Options != nil {
		stmt += " LIMIT ?, ?"
		args = append(args, int64(filter.Options.Offset), int64(filter.Options.Limit))
	}
	return db.query(ctx, stmt, args...)
}

func (db *HistoryDB) query(ctx context.Context, query string, args ...any) ([]*Event, error) {
	stmt, err := db.stmtCache.Prepare(query)
	if err != nil {
		return nil, err
	}
	rows, err := stmt.QueryContext(ctx, args...)
	if err != nil {
		return nil, errors.Wrap(err, "query history")
	}
	defer rows.Close()

	var events []*Event
	for rows.Next() {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		var (
			seq         int64
			principal   string
			kind        string
			blockNumber int64
			amount      int64
			requestID   string
			stakedAfter int64
			tier        uint8
		)
		if err := rows.Scan(
			&seq,
			&principal,
			&kind,
			&blockNumber,
			&amount,
			&requestID,
			&stakedAfter,
			&tier,
		); err != nil {
			return nil, errors.Wrap(err, "scan history")
		}
		events = append(events, &Event{
			Seq:         uint64(seq),
			Principal:   principal,
			Kind:        Kind(kind),
			BlockNumber: uint64(blockNumber),
			Amount:      uint64(amount),
			RequestID:   requestID,
			StakedAfter: uint64(stakedAfter),
			Tier:        tier,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate history")
	}
	return events, nil
}

func (db *HistoryDB) execInTx(proc func(*sql.Tx) error) (err error) {
	tx, err := db.db.Begin()
	if err != nil {
		return err
	}
	if err := proc(tx); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}

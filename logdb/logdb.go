// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package logdb keeps the history of emitted economic events in sqlite.
package logdb

import (
	"context"
	"database/sql"
	"math/big"

	"github.com/holiman/uint256"
	sqlite3 "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"

	"github.com/vechain/econ/builtin/bounty"
	"github.com/vechain/econ/builtin/delegation"
	"github.com/vechain/econ/builtin/pricing"
	"github.com/vechain/econ/econ"
)

const (
	insertPrice  = "INSERT INTO price(time, oldPrice, newPrice) VALUES (?, ?, ?);"
	insertBounty = "INSERT INTO bounty(time, nodeID, validatorID, epoch, amount, recipient) VALUES (?, ?, ?, ?, ?, ?);"
	insertState  = "INSERT INTO delegation_state(time, delegationID, fromState, toState) VALUES (?, ?, ?, ?);"
)

type LogDB struct {
	path          string
	db            *sql.DB
	stmts         *stmtCache
	driverVersion string
}

// New create or open log db at given path.
func New(path string) (logDB *LogDB, err error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if logDB == nil {
			db.Close()
		}
	}()
	// a single connection keeps ":memory:" databases shared
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(priceTableSchema + bountyTableSchema + delegationTableSchema); err != nil {
		return nil, err
	}

	driverVer, _, _ := sqlite3.Version()
	return &LogDB{
		path:          path,
		db:            db,
		stmts:         newStmtCache(db),
		driverVersion: driverVer,
	}, nil
}

// NewMem create a log db in ram.
func NewMem() (*LogDB, error) {
	return New(":memory:")
}

// Close close the log db.
func (db *LogDB) Close() error {
	if err := db.stmts.Clear(); err != nil {
		db.db.Close()
		return err
	}
	return db.db.Close()
}

func (db *LogDB) Path() string {
	return db.path
}

func (db *LogDB) exec(table, query string, args ...any) error {
	stmt, err := db.stmts.Prepare(context.Background(), query)
	if err != nil {
		return errors.Wrapf(err, "prepare %s insert", table)
	}
	if _, err := stmt.Exec(args...); err != nil {
		return errors.Wrapf(err, "insert %s", table)
	}
	metricWrites().AddWithLabel(1, map[string]string{"table": table})
	return nil
}

func (db *LogDB) WritePriceChanged(ev *pricing.PriceChanged) error {
	return db.exec("price", insertPrice, ev.Time, ev.Old.Bytes(), ev.New.Bytes())
}

func (db *LogDB) WriteBountyPaid(ev *bounty.BountyPaid) error {
	return db.exec("bounty", insertBounty, ev.Time, ev.NodeID, ev.ValidatorID, ev.Epoch, ev.Amount.Bytes(), ev.To.Bytes())
}

func (db *LogDB) WriteStateChanged(ev *delegation.StateChanged) error {
	return db.exec("delegation_state", insertState, ev.Time, ev.ID, uint8(ev.From), uint8(ev.To))
}

// where appends the range, order and paging clauses of f.
func where(stmt string, args []any, f *Filter) (string, []any) {
	if f.Range != nil {
		args = append(args, f.Range.From)
		stmt += " AND time >= ? "
		if f.Range.To >= f.Range.From {
			args = append(args, f.Range.To)
			stmt += " AND time <= ? "
		}
	}
	if f.Order == DESC {
		stmt += " ORDER BY seq DESC "
	} else {
		stmt += " ORDER BY seq ASC "
	}
	if f.Options != nil {
		stmt += " limit ?, ? "
		args = append(args, f.Options.Offset, f.Options.Limit)
	}
	return stmt, args
}

func (db *LogDB) FilterPrices(ctx context.Context, filter *Filter) ([]*Price, error) {
	if filter == nil {
		filter = &Filter{}
	}
	metricsHandleFilter("price", filter)
	stmt, args := where("SELECT seq, time, oldPrice, newPrice FROM price WHERE 1", nil, filter)

	prepared, err := db.stmts.Prepare(ctx, stmt)
	if err != nil {
		return nil, err
	}
	rows, err := prepared.QueryContext(ctx, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var prices []*Price
	for rows.Next() {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		var (
			p              Price
			oldBuf, newBuf []byte
		)
		if err := rows.Scan(&p.Seq, &p.Time, &oldBuf, &newBuf); err != nil {
			return nil, err
		}
		p.Old = new256(oldBuf)
		p.New = new256(newBuf)
		prices = append(prices, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return prices, nil
}

func new256(b []byte) *uint256.Int {
	return new(uint256.Int).SetBytes(b)
}

func (db *LogDB) FilterBounties(ctx context.Context, filter *BountyFilter) ([]*Bounty, error) {
	if filter == nil {
		filter = &BountyFilter{}
	}
	metricsHandleFilter("bounty", &filter.Filter)
	var args []any
	stmt := "SELECT seq, time, nodeID, validatorID, epoch, amount, recipient FROM bounty WHERE 1"
	if filter.NodeID != nil {
		args = append(args, *filter.NodeID)
		stmt += " AND nodeID = ? "
	}
	stmt, args = where(stmt, args, &filter.Filter)

	prepared, err := db.stmts.Prepare(ctx, stmt)
	if err != nil {
		return nil, err
	}
	rows, err := prepared.QueryContext(ctx, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bounties []*Bounty
	for rows.Next() {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		var (
			b         Bounty
			amount    []byte
			recipient []byte
		)
		if err := rows.Scan(&b.Seq, &b.Time, &b.NodeID, &b.ValidatorID, &b.Epoch, &amount, &recipient); err != nil {
			return nil, err
		}
		b.Amount = new(big.Int).SetBytes(amount)
		b.Recipient = econ.BytesToAddress(recipient)
		bounties = append(bounties, &b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return bounties, nil
}

func (db *LogDB) FilterStateChanges(ctx context.Context, filter *StateChangeFilter) ([]*StateChange, error) {
	if filter == nil {
		filter = &StateChangeFilter{}
	}
	metricsHandleFilter("delegation_state", &filter.Filter)
	var args []any
	stmt := "SELECT seq, time, delegationID, fromState, toState FROM delegation_state WHERE 1"
	if filter.DelegationID != nil {
		args = append(args, *filter.DelegationID)
		stmt += " AND delegationID = ? "
	}
	stmt, args = where(stmt, args, &filter.Filter)

	prepared, err := db.stmts.Prepare(ctx, stmt)
	if err != nil {
		return nil, err
	}
	rows, err := prepared.QueryContext(ctx, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var changes []*StateChange
	for rows.Next() {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		var (
			c        StateChange
			from, to uint8
		)
		if err := rows.Scan(&c.Seq, &c.Time, &c.DelegationID, &from, &to); err != nil {
			return nil, err
		}
		c.From = delegation.State(from)
		c.To = delegation.State(to)
		changes = append(changes, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return changes, nil
}

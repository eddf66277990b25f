// Copyright 2025 Erst Users
// SPDX-License-Identifier: Apache-2.0

package db

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dotandev/xbfee/internal/errors"
	"github.com/dotandev/xbfee/internal/feepolicy"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS quotes (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	created_at INTEGER NOT NULL,
	policy     TEXT NOT NULL,
	version    TEXT NOT NULL DEFAULT '',
	tx_count   INTEGER NOT NULL,
	amount     INTEGER NOT NULL,
	tier       TEXT NOT NULL DEFAULT 'NONE',
	fee        INTEGER NOT NULL DEFAULT 0,
	error      TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_quotes_policy ON quotes(policy);
`

// QuoteRecord is one audited fee invocation. Error is set when the
// invocation failed, in which case Fee is zero.
type QuoteRecord struct {
	ID        int64
	Timestamp time.Time
	Policy    string
	Version   string
	TxCount   uint32
	Amount    uint32
	Tier      feepolicy.Tier
	Fee       uint32
	Error     string
}

// NewQuoteRecord captures the outcome of a quote attempt.
func NewQuoteRecord(policy string, txCount, amount uint32, q feepolicy.Quote, err error) QuoteRecord {
	rec := QuoteRecord{
		Timestamp: time.Now().UTC(),
		Policy:    policy,
		Version:   q.Version,
		TxCount:   txCount,
		Amount:    amount,
		Tier:      q.Tier,
		Fee:       q.Fee,
	}
	if err != nil {
		rec.Fee = 0
		rec.Error = err.Error()
	}
	return rec
}

type SearchParams struct {
	Policy     string
	Tier       string
	FailedOnly bool
	Limit      int
}

type Store struct {
	db *sql.DB
}

// InitDB opens (creating if needed) the quote log at path.
func InitDB(path string) (*Store, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, errors.WrapStoreFailed(fmt.Errorf("create directory: %w", err))
		}
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.WrapStoreFailed(err)
	}
	conn.SetMaxOpenConns(1)

	if _, err := conn.Exec(schema); err != nil {
		conn.Close()
		return nil, errors.WrapStoreFailed(fmt.Errorf("apply schema: %w", err))
	}

	return &Store{db: conn}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) RecordQuote(ctx context.Context, rec QuoteRecord) (int64, error) {
	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now().UTC()
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO quotes (created_at, policy, version, tx_count, amount, tier, fee, error)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.Timestamp.UnixNano(), rec.Policy, rec.Version, int64(rec.TxCount), int64(rec.Amount),
		rec.Tier.String(), int64(rec.Fee), rec.Error,
	)
	if err != nil {
		return 0, errors.WrapStoreFailed(err)
	}
	return res.LastInsertId()
}

// SearchQuotes returns matching records, newest first.
func (s *Store) SearchQuotes(ctx context.Context, params SearchParams) ([]QuoteRecord, error) {
	var (
		where []string
		args  []interface{}
	)

	if params.Policy != "" {
		where = append(where, "policy = ?")
		args = append(args, params.Policy)
	}
	if params.Tier != "" {
		tier, err := feepolicy.ParseTier(params.Tier)
		if err != nil {
			return nil, err
		}
		where = append(where, "tier = ?")
		args = append(args, tier.String())
	}
	if params.FailedOnly {
		where = append(where, "error != ''")
	}

	query := `SELECT id, created_at, policy, version, tx_count, amount, tier, fee, error FROM quotes`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY id DESC"
	if params.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, params.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.WrapStoreFailed(err)
	}
	defer rows.Close()

	var out []QuoteRecord
	for rows.Next() {
		var rec QuoteRecord
		var tier string
		var createdAt, txCount, amount, fee int64
		if err := rows.Scan(&rec.ID, &createdAt, &rec.Policy, &rec.Version, &txCount, &amount, &tier, &fee, &rec.Error); err != nil {
			return nil, errors.WrapStoreFailed(err)
		}
		if rec.Tier, err = feepolicy.ParseTier(tier); err != nil {
			return nil, errors.WrapStoreFailed(err)
		}
		rec.Timestamp = time.Unix(0, createdAt).UTC()
		rec.TxCount, rec.Amount, rec.Fee = uint32(txCount), uint32(amount), uint32(fee)
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.WrapStoreFailed(err)
	}
	return out, nil
}

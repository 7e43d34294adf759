// Package mysql is the database-backed history repository, for deployments
// where history must outlive the host's filesystem.
package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/go-sql-driver/mysql"

	"qrsecure/internal/history"
)

type Storage struct {
	db       *sql.DB
	capacity int
}

func New(dsn string, capacity int) (*Storage, error) {
	const op = "history.mysql.New"

	if capacity <= 0 {
		capacity = history.DefaultCapacity
	}

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{db: db, capacity: capacity}, nil
}

func (s *Storage) Capacity() int { return s.capacity }

func (s *Storage) Append(ctx context.Context, e history.Entry) error {
	const op = "history.mysql.Append"

	fields, err := json.Marshal(e.Fields)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO qr_history (id, created_at, qr_data_url, form_type, full_name, fields)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		e.ID, e.Timestamp, e.QRCodeURL, e.FormType, e.FullName, string(fields),
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	// Truncate the tail past capacity. MySQL cannot LIMIT inside NOT IN,
	// hence the derived table.
	_, err = tx.ExecContext(ctx,
		`DELETE FROM qr_history WHERE id NOT IN (
		     SELECT id FROM (
		         SELECT id FROM qr_history ORDER BY created_at DESC LIMIT ?
		     ) keep
		 )`, s.capacity,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *Storage) List(ctx context.Context) ([]history.Entry, error) {
	const op = "history.mysql.List"

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, created_at, qr_data_url, form_type, full_name, fields
		 FROM qr_history ORDER BY created_at DESC LIMIT ?`, s.capacity,
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var entries []history.Entry
	for rows.Next() {
		var e history.Entry
		var fields []byte
		if err := rows.Scan(&e.ID, &e.Timestamp, &e.QRCodeURL, &e.FormType, &e.FullName, &fields); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if len(fields) > 0 {
			if err := json.Unmarshal(fields, &e.Fields); err != nil {
				return nil, fmt.Errorf("%s: %w", op, err)
			}
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return entries, nil
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/danielhkuo/shopdesk/listpage"
	"github.com/danielhkuo/shopdesk/models"
	"github.com/danielhkuo/shopdesk/tabs"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrUnknownTable = errors.New("unknown table")
)

// Table describes how a list page reads one SQL table. Names come from
// this package, never from request input.
type Table struct {
	Name          string
	Columns       string
	SearchColumns []string
	OrderBy       string
	UpdatedColumn string // stamped by SetStatus when set
	scan          func(*sql.Rows) (models.Row, error)
}

// ListQuery is the resolved input of the data-fetch boundary
type ListQuery struct {
	Search string
	Status string // empty for all statuses
	Limit  int
	Offset int
}

// Store serves list pages and status aggregates
type Store struct {
	db     *sql.DB
	tables map[string]Table
}

func New(db *sql.DB) *Store {
	return &Store{
		db: db,
		tables: map[string]Table{
			InventoryTable.Name: InventoryTable,
			APIKeyTable.Name:    APIKeyTable,
			AppTable.Name:       AppTable,
		},
	}
}

func (s *Store) table(name string) (Table, error) {
	t, ok := s.tables[name]
	if !ok {
		return Table{}, fmt.Errorf("%w: %q", ErrUnknownTable, name)
	}
	return t, nil
}

// where builds the WHERE clause shared by List and CountByStatus
func where(t Table, search, status string) (string, []any) {
	var conds []string
	var args []any
	next := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}

	if search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		var ors []string
		for _, col := range t.SearchColumns {
			ors = append(ors, "LOWER("+col+") LIKE "+next(pattern))
		}
		if len(ors) > 0 {
			conds = append(conds, "("+strings.Join(ors, " OR ")+")")
		}
	}
	if status != "" {
		conds = append(conds, "status = "+next(status))
	}

	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// List returns one page of rows plus the total matching count
func (s *Store) List(ctx context.Context, tableName string, q ListQuery) (listpage.Result, error) {
	t, err := s.table(tableName)
	if err != nil {
		return listpage.Result{}, err
	}

	clause, args := where(t, q.Search, q.Status)

	var count int
	err = s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+t.Name+clause, args...).Scan(&count)
	if err != nil {
		return listpage.Result{}, fmt.Errorf("failed to count %s: %w", t.Name, err)
	}

	rows := []models.Row{}
	if count == 0 {
		return listpage.Result{Items: rows, Count: 0}, nil
	}

	limitArg := "$" + strconv.Itoa(len(args)+1)
	offsetArg := "$" + strconv.Itoa(len(args)+2)
	query := "SELECT " + t.Columns + " FROM " + t.Name + clause +
		" ORDER BY " + t.OrderBy + " LIMIT " + limitArg + " OFFSET " + offsetArg

	res, err := s.db.QueryContext(ctx, query, append(args, q.Limit, q.Offset)...)
	if err != nil {
		return listpage.Result{}, fmt.Errorf("failed to list %s: %w", t.Name, err)
	}
	defer res.Close()

	for res.Next() {
		row, err := t.scan(res)
		if err != nil {
			return listpage.Result{}, fmt.Errorf("failed to scan %s: %w", t.Name, err)
		}
		rows = append(rows, row)
	}
	if err := res.Err(); err != nil {
		return listpage.Result{}, fmt.Errorf("failed to list %s: %w", t.Name, err)
	}

	return listpage.Result{Items: rows, Count: count}, nil
}

// CountByStatus aggregates rows per status. The search term applies; the
// status filter does not, so every tab shows what selecting it would yield.
func (s *Store) CountByStatus(ctx context.Context, tableName, search string) (tabs.StatusCounts, error) {
	t, err := s.table(tableName)
	if err != nil {
		return tabs.StatusCounts{}, err
	}

	clause, args := where(t, search, "")
	res, err := s.db.QueryContext(ctx, "SELECT status, COUNT(*) FROM "+t.Name+clause+" GROUP BY status", args...)
	if err != nil {
		return tabs.StatusCounts{}, fmt.Errorf("failed to count %s by status: %w", t.Name, err)
	}
	defer res.Close()

	counts := tabs.StatusCounts{ByKey: map[string]int{}}
	for res.Next() {
		var status string
		var n int
		if err := res.Scan(&status, &n); err != nil {
			return tabs.StatusCounts{}, fmt.Errorf("failed to scan status count: %w", err)
		}
		counts.ByKey[status] = n
		counts.All += n
	}
	if err := res.Err(); err != nil {
		return tabs.StatusCounts{}, fmt.Errorf("failed to count %s by status: %w", t.Name, err)
	}
	return counts, nil
}

// SetStatus updates the status column of one row. Tables with an
// UpdatedColumn get it set to the current UTC time as well.
func (s *Store) SetStatus(ctx context.Context, tableName, id, status string) error {
	t, err := s.table(tableName)
	if err != nil {
		return err
	}

	query := "UPDATE " + t.Name + " SET status = $1 WHERE id = $2"
	args := []any{status, id}
	if t.UpdatedColumn != "" {
		query = "UPDATE " + t.Name + " SET status = $1, " + t.UpdatedColumn + " = $2 WHERE id = $3"
		args = []any{status, time.Now().UTC(), id}
	}

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update %s status: %w", t.Name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update %s status: %w", t.Name, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Package repository handles all interactions with the database.
//
// It contains raw SQL queries and methods to fetch, persist,
// or update data, abstracting SQL logic away from the service layer.
// Lookups that find nothing wrap pgx.ErrNoRows together with a
// "table:<name>" marker so sqlerr can render "<Entity> not found".
package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/deppfellow/campus-portal/internal/database"
	"github.com/deppfellow/campus-portal/internal/model"
	"github.com/jackc/pgx/v5"
)

// filter accumulates AND-ed WHERE conditions and their named arguments.
type filter struct {
	conds []string
	args  pgx.NamedArgs
}

func newFilter() *filter {
	return &filter{args: pgx.NamedArgs{}}
}

// add appends cond, binding value to @name.
func (f *filter) add(cond, name string, value any) *filter {
	f.conds = append(f.conds, cond)
	f.args[name] = value
	return f
}

// eq adds "column = @name" unless value is empty.
func (f *filter) eq(column, name, value string) *filter {
	if value == "" {
		return f
	}
	return f.add(fmt.Sprintf("%s = @%s", column, name), name, value)
}

// ilike adds a case-insensitive substring match unless value is empty.
func (f *filter) ilike(column, name, value string) *filter {
	if value == "" {
		return f
	}
	return f.add(fmt.Sprintf("%s ILIKE @%s", column, name), name, containsPattern(value))
}

func (f *filter) where() string {
	if len(f.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(f.conds, " AND ")
}

// paged returns the filter arguments plus @limit and @offset.
func (f *filter) paged(p model.Pagination) pgx.NamedArgs {
	args := make(pgx.NamedArgs, len(f.args)+2)
	for k, v := range f.args {
		args[k] = v
	}
	args["limit"] = p.Limit
	args["offset"] = p.Offset
	return args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern escapes LIKE wildcards in s and wraps it in %...%.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

func count(ctx context.Context, q database.Querier, sql string, args ...any) (int64, error) {
	var n int64
	if err := q.QueryRow(ctx, sql, args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// countBy runs a "SELECT <key> AS key, COUNT(*) AS count ... GROUP BY"
// query and flattens it into a map.
func countBy(ctx context.Context, q database.Querier, sql string, args ...any) (map[string]int64, error) {
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}

	buckets, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.CountBucket])
	if err != nil {
		return nil, err
	}

	return model.BucketsToMap(buckets), nil
}

// collect scans every row into T, returning an empty slice rather than nil.
func collect[T any](rows pgx.Rows, err error) ([]T, error) {
	if err != nil {
		return nil, err
	}

	items, err := pgx.CollectRows(rows, pgx.RowToStructByName[T])
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// collectOne scans exactly one row into T.
func collectOne[T any](rows pgx.Rows, err error) (*T, error) {
	if err != nil {
		return nil, err
	}

	item, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[T])
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// Guard inspects a row locked for update and returns an error to abort the
// mutation, for instance when the caller does not own the row.
type Guard[T any] func(current *T) error

// check runs g when set.
func (g Guard[T]) check(current *T) error {
	if g == nil {
		return nil
	}
	return g(current)
}

package main

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var errDatabaseUnavailable = errors.New("database unavailable")

// unavailablePool stands in for the pool when the database never came up.
// Every call fails with err.
type unavailablePool struct {
	err error
}

func (p unavailablePool) QueryRow(context.Context, string, ...any) pgx.Row {
	return errRow{err: p.err}
}

func (p unavailablePool) Query(context.Context, string, ...any) (pgx.Rows, error) {
	return nil, p.err
}

func (p unavailablePool) Exec(context.Context, string, ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, p.err
}

func (p unavailablePool) Ping(context.Context) error {
	return p.err
}

type errRow struct {
	err error
}

func (r errRow) Scan(...any) error { return r.err }

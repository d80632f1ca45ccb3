// Package mock contains utilities for tests.
package mock

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"regexp"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

// Connection is the mock version for database.Connection.
type Connection struct {
	db      *sql.DB
	SQLMock sqlmock.Sqlmock
}

func (m Connection) CreateContext(ctx context.Context) (context.Context, context.CancelFunc) {
	timeout := 5 * time.Second
	return context.WithTimeout(ctx, timeout)
}

func (m Connection) DB() *sql.DB {
	return m.db
}

func (m Connection) Close() {
	_ = m.DB().Close()
}

func MustCreateConnectionMock() Connection {
	db, mock, err := sqlmock.New()
	if err != nil {
		panic(err)
	}
	return Connection{
		db:      db,
		SQLMock: mock,
	}
}

type DBResultOption func(dbConn Connection)

func MockDBResults(dbConn Connection, opts ...DBResultOption) {
	for _, opt := range opts {
		opt(dbConn)
	}
}

// WithQueryResult expects the given query, matched literally, and returns the
// given rows.
func WithQueryResult(query string, rows *sqlmock.Rows) DBResultOption {
	return func(dbConn Connection) {
		dbConn.SQLMock.ExpectQuery(regexp.QuoteMeta(query)).WillReturnRows(rows)
	}
}

// WithQueryError expects the given query, matched literally, and fails it with
// the given error.
func WithQueryError(query string, err error) DBResultOption {
	return func(dbConn Connection) {
		dbConn.SQLMock.ExpectQuery(regexp.QuoteMeta(query)).WillReturnError(err)
	}
}

// WithExecResult expects the given statement, matched literally, and returns
// the given result.
func WithExecResult(query string, result driver.Result) DBResultOption {
	return func(dbConn Connection) {
		dbConn.SQLMock.ExpectExec(regexp.QuoteMeta(query)).WillReturnResult(result)
	}
}

package connectors

import (
	"context"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // golang postgres driver
	"github.com/jmoiron/sqlx"
	"github.com/samber/lo"
	_ "modernc.org/sqlite" // pure-go sqlite driver

	"card_market/pkg/logx"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "pgx"
)

// Database opens the score store. Driver is either DriverSQLite (DSN is a file
// path or ":memory:") or DriverPostgres (DSN is a postgres URL).
type Database struct {
	value           *sqlx.DB
	Driver          string
	DSN             string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
	init            sync.Once
}

func (d *Database) Client(ctx context.Context) *sqlx.DB {
	d.init.Do(func() {
		if d.Driver == DriverSQLite && d.DSN != ":memory:" {
			lo.Must0(os.MkdirAll(filepath.Dir(d.DSN), 0o755)) //nolint:mnd
		}

		d.value = lo.Must(sqlx.ConnectContext(ctx, d.Driver, d.DSN))

		d.value.SetMaxOpenConns(d.MaxOpenConns)
		d.value.SetMaxIdleConns(d.MaxIdleConns)
		d.value.SetConnMaxLifetime(d.ConnMaxLifetime)

		if d.Driver == DriverSQLite {
			// sqlite allows a single writer, WAL keeps readers unblocked.
			d.value.SetMaxOpenConns(1)
			lo.Must(d.value.ExecContext(ctx, "PRAGMA journal_mode=WAL;"))
		}

		logger(ctx).Info(
			"database connected",
			slog.String("driver", d.Driver),
			slog.String("database", d.name()),
		)
	})

	return d.value
}

func (d *Database) Close(ctx context.Context) {
	if err := d.value.Close(); err != nil {
		logger(ctx).Error("databaseClient.Close", logx.Error(err))
	}

	logger(ctx).Info(
		"database disconnected",
		slog.String("driver", d.Driver),
		slog.String("database", d.name()),
	)
}

func (d *Database) name() string {
	if d.Driver == DriverSQLite {
		return d.DSN
	}

	u, err := url.Parse(d.DSN)
	if err != nil {
		return ""
	}

	return strings.TrimPrefix(u.Path, "/")
}

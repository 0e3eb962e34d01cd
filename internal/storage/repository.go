package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"txnhistory/internal/core"
	"txnhistory/internal/log"

	_ "modernc.org/sqlite"
)

// DateLayout is how dates are stored in the transactions table
const DateLayout = "2006-01-02"

// ErrDatabaseNotFound is returned when opening a container that does not exist
var ErrDatabaseNotFound = errors.New("sqlite dataset not found")

type SQLiteRepository struct {
	db   *sql.DB
	path string
}

// NewSQLiteRepository opens or creates the container at dbPath and migrates it.
func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}
	return open(dbPath)
}

// OpenExisting opens a container that must already exist.
func OpenExisting(dbPath string) (*SQLiteRepository, error) {
	if _, err := os.Stat(dbPath); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrDatabaseNotFound, dbPath)
		}
		return nil, fmt.Errorf("stat database: %w", err)
	}
	return open(dbPath)
}

func open(dbPath string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db, path: dbPath}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Name implements dataset.Source
func (r *SQLiteRepository) Name() string {
	return "sqlite:" + r.path
}

// ListRecords implements dataset.Source. Rows come back ordered by date
// then insertion order; unreadable amounts load as zero.
func (r *SQLiteRepository) ListRecords(ctx context.Context) ([]core.Record, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, date, description, credit, debit, balance
		FROM transactions
		ORDER BY date ASC, id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	records := make([]core.Record, 0)
	for rows.Next() {
		var (
			id                     int64
			date, desc             string
			credit, debit, balance string
		)
		if err := rows.Scan(&id, &date, &desc, &credit, &debit, &balance); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}

		day, err := parseStoredDate(date)
		if err != nil {
			return nil, fmt.Errorf("transaction %d: %w", id, err)
		}
		records = append(records, core.Record{
			Date:        day,
			Description: desc,
			Credit:      core.AmountOrZero(credit),
			Debit:       core.AmountOrZero(debit),
			Balance:     core.AmountOrZero(balance),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}

	log.FromContext(ctx).WithComponent(log.ComponentStorage).DebugContext(ctx, "Transactions read from SQLite",
		log.FieldPath, r.path,
		log.FieldRecords, len(records))

	return records, nil
}

// Import replaces the stored transactions with records in a single
// transaction and returns how many were written. Re-importing the same
// statements leaves the container unchanged.
func (r *SQLiteRepository) Import(ctx context.Context, records []core.Record) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin import: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM transactions`); err != nil {
		return 0, fmt.Errorf("clear transactions: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO transactions (date, description, credit, debit, balance)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, rec := range records {
		if _, err := stmt.ExecContext(ctx,
			rec.Date.Format(DateLayout),
			rec.Description,
			rec.Credit.String(),
			rec.Debit.String(),
			rec.Balance.String(),
		); err != nil {
			return 0, fmt.Errorf("insert record %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit import: %w", err)
	}

	log.FromContext(ctx).WithComponent(log.ComponentStorage).InfoContext(ctx, "Transactions imported to SQLite",
		log.FieldPath, r.path,
		log.FieldRecords, len(records))

	return len(records), nil
}

// Count returns the number of stored transactions.
func (r *SQLiteRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM transactions`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count transactions: %w", err)
	}
	return n, nil
}

func parseStoredDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("unparseable date %q", s)
	}
	return t, nil
}

package source

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// DriverName is the database/sql driver used for "sql" sources.
const DriverName = "pgx"

const (
	defaultBookingsQuery = `SELECT booking_id, traveler_id, city, start_date, end_date, cost FROM bookings ORDER BY booking_id`

	defaultDestinationsQuery = `SELECT city, region, popularity_score FROM destinations`
)

// ReadSQL opens the database behind dsn and reads the rows of query.
func ReadSQL(ctx context.Context, dsn, query string) (*Table, error) {
	db, err := sql.Open(DriverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return QueryTable(ctx, db, query)
}

// QueryTable runs query on db and returns its rows keyed by normalized
// column name. NULL values read as blank cells.
func QueryTable(ctx context.Context, db *sql.DB, query string) (*Table, error) {
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to run query: %w", err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read columns: %w", err)
	}
	keys := make([]string, len(columns))
	for i, c := range columns {
		keys[i] = NormalizeHeader(c)
	}

	table := &Table{Source: "query", Rows: []Row{}}
	values := make([]sql.NullString, len(columns))
	dest := make([]any, len(columns))
	for i := range values {
		dest[i] = &values[i]
	}

	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("failed to scan row %d: %w", len(table.Rows)+1, err)
		}
		row := make(Row, len(keys))
		for i, key := range keys {
			row[key] = values[i].String
		}
		table.Rows = append(table.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}

	return table, nil
}

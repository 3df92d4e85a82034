package database

import (
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/mattn/go-sqlite3"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Question)

// ExportRow is one flattened photo_results row for the CSV/report path. The
// JSON columns are returned raw; the caller decodes them.
type ExportRow struct {
	ID            string
	PhotoPath     string
	SelectedTheme string
	UserInfo      string
	CreatedAt     string
	UpdatedAt     string
}

// OpenExportDB opens a read-only connection to the booth database for the
// export/report queries. Kept separate from the GORM handle so reporting
// tools (boothctl) can run against a live kiosk without a writer.
func OpenExportDB(dataSourceName string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?mode=ro", dataSourceName))
	if err != nil {
		return nil, fmt.Errorf("failed to open export database: %w", err)
	}
	return db, nil
}

// ListResultsForExport returns every photo result ordered most recent first.
func ListResultsForExport(db *sql.DB) ([]ExportRow, error) {
	queryBuilder := psql.Select("id", "photo_path", "selected_theme", "user_info", "created_at", "updated_at").
		From("photo_results").
		OrderBy("created_at DESC")

	sqlStr, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build SQL query for ListResultsForExport: %w", err)
	}

	rows, err := db.Query(sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query photo results for export: %w", err)
	}
	defer rows.Close()

	var results []ExportRow
	for rows.Next() {
		var r ExportRow
		if err := rows.Scan(&r.ID, &r.PhotoPath, &r.SelectedTheme, &r.UserInfo, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan export row: %w", err)
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating export rows: %w", err)
	}
	return results, nil
}

// CountResultsSince reports how many sessions completed after the given
// ISO-8601 timestamp. Used by the operator status view.
func CountResultsSince(db *sql.DB, sinceISO string) (int, error) {
	queryBuilder := psql.Select("COUNT(*)").
		From("photo_results").
		Where(sq.GtOrEq{"created_at": sinceISO})

	sqlStr, args, err := queryBuilder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build SQL query for CountResultsSince: %w", err)
	}

	var count int
	if err := db.QueryRow(sqlStr, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count photo results: %w", err)
	}
	return count, nil
}

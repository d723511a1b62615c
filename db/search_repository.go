package db

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"lookup-tracker/models"
)

// SQLiteSearchRepository implements the SearchRepository interface for SQLite
type SQLiteSearchRepository struct {
	db *sql.DB
	// SQLite allows one writer at a time; the mutex keeps concurrent inserts
	// from tripping over each other without blocking readers.
	writeMu sync.Mutex
}

// NewSQLiteSearchRepository creates a new SQLiteSearchRepository
func NewSQLiteSearchRepository(db *sql.DB) *SQLiteSearchRepository {
	return &SQLiteSearchRepository{db: db}
}

// Close closes the database connection
func (r *SQLiteSearchRepository) Close() error {
	return r.db.Close()
}

// CreatePhone appends a phone search row. CreatedAt defaults to the insert
// time when the caller leaves it zero.
func (r *SQLiteSearchRepository) CreatePhone(ctx context.Context, search *models.PhoneSearch) error {
	r.writeMu.Lock()
	defer r.writeMu.Unlock()

	if search.CreatedAt.IsZero() {
		search.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO phone_searches (masked_number, detected_region, detected_operator, manual_operator, requester_ip, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	result, err := r.db.ExecContext(ctx, query,
		search.MaskedNumber, search.DetectedRegion, search.DetectedOperator,
		search.ManualOperator, search.RequesterIP, search.CreatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert phone search: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read phone search id: %w", err)
	}
	search.ID = id

	return nil
}

// CreateIP appends an IP search row. CreatedAt defaults to the insert time
// when the caller leaves it zero.
func (r *SQLiteSearchRepository) CreateIP(ctx context.Context, search *models.IPSearch) error {
	r.writeMu.Lock()
	defer r.writeMu.Unlock()

	if search.CreatedAt.IsZero() {
		search.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO ip_searches (queried_ip, country, region, city, isp, latitude, longitude, lookup_mode, requester_ip, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	result, err := r.db.ExecContext(ctx, query,
		search.QueriedIP, search.Country, search.Region, search.City, search.ISP,
		search.Latitude, search.Longitude, string(search.LookupMode),
		search.RequesterIP, search.CreatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert ip search: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read ip search id: %w", err)
	}
	search.ID = id

	return nil
}

// CountByCountry groups stored searches of one kind by exact country string,
// ordered by count descending and country ascending on ties.
func (r *SQLiteSearchRepository) CountByCountry(ctx context.Context, kind models.SearchKind, limit int) ([]models.CountryCount, error) {
	var query string
	switch kind {
	case models.SearchKindPhone:
		query = `
			SELECT detected_region, COUNT(*) AS n FROM phone_searches
			GROUP BY detected_region
			ORDER BY n DESC, detected_region ASC
			LIMIT ?
		`
	case models.SearchKindIP:
		query = `
			SELECT country, COUNT(*) AS n FROM ip_searches
			GROUP BY country
			ORDER BY n DESC, country ASC
			LIMIT ?
		`
	default:
		return nil, fmt.Errorf("unknown search kind: %s", kind)
	}

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to count searches by country: %w", err)
	}
	defer rows.Close()

	counts := []models.CountryCount{}
	for rows.Next() {
		var c models.CountryCount
		if err := rows.Scan(&c.Country, &c.Count); err != nil {
			return nil, fmt.Errorf("error scanning country count: %w", err)
		}
		counts = append(counts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating country counts: %w", err)
	}

	return counts, nil
}

// FindRecent returns the newest events of both kinds merged by timestamp
// descending. When a phone and an IP event share a timestamp the phone event
// sorts first; the ordering has no deeper meaning but has to be stable.
func (r *SQLiteSearchRepository) FindRecent(ctx context.Context, limit int) ([]models.SearchEvent, error) {
	query := `
		SELECT kind, term, country, created_at FROM (
			SELECT 'phone' AS kind, masked_number AS term, detected_region AS country, created_at, 0 AS tiebreak FROM phone_searches
			UNION ALL
			SELECT 'ip' AS kind, queried_ip AS term, country, created_at, 1 AS tiebreak FROM ip_searches
		)
		ORDER BY created_at DESC, tiebreak ASC
		LIMIT ?
	`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to find recent searches: %w", err)
	}
	defer rows.Close()

	events := []models.SearchEvent{}
	for rows.Next() {
		var event models.SearchEvent
		var kind string
		var createdAt interface{}
		if err := rows.Scan(&kind, &event.SearchTerm, &event.Country, &createdAt); err != nil {
			return nil, fmt.Errorf("error scanning search event: %w", err)
		}
		occurredAt, err := parseTimestamp(createdAt)
		if err != nil {
			return nil, fmt.Errorf("error scanning search event timestamp: %w", err)
		}
		event.Kind = models.SearchKind(kind)
		event.OccurredAt = occurredAt
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating search events: %w", err)
	}

	return events, nil
}

// sqliteTimestampLayouts are the formats the driver writes TIMESTAMP values
// in, newest convention first.
var sqliteTimestampLayouts = []string{
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05",
	time.RFC3339Nano,
}

// parseTimestamp converts a scanned created_at value to time.Time. The column
// type declaration does not survive the UNION subquery in FindRecent, so the
// driver may hand the value back as a string rather than a time.Time.
func parseTimestamp(value interface{}) (time.Time, error) {
	switch v := value.(type) {
	case time.Time:
		return v, nil
	case string:
		return parseTimestampString(v)
	case []byte:
		return parseTimestampString(string(v))
	default:
		return time.Time{}, fmt.Errorf("unexpected timestamp type %T", value)
	}
}

func parseTimestampString(s string) (time.Time, error) {
	for _, layout := range sqliteTimestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparsable timestamp %q", s)
}

// CountByKind returns the total number of stored searches of one kind.
func (r *SQLiteSearchRepository) CountByKind(ctx context.Context, kind models.SearchKind) (int, error) {
	var query string
	switch kind {
	case models.SearchKindPhone:
		query = `SELECT COUNT(*) FROM phone_searches`
	case models.SearchKindIP:
		query = `SELECT COUNT(*) FROM ip_searches`
	default:
		return 0, fmt.Errorf("unknown search kind: %s", kind)
	}

	var count int
	if err := r.db.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count searches: %w", err)
	}

	return count, nil
}

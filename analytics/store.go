package analytics

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "modernc.org/sqlite"
)

// Store provides database operations for page-view analytics.
type Store struct {
	db *sql.DB
}

// NewStore creates a new analytics store at dbPath.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open analytics db: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		return nil, fmt.Errorf("enable WAL: %w", err)
	}

	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS page_views (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			tenant TEXT NOT NULL,
			path TEXT NOT NULL,
			visitor_hash TEXT NOT NULL,
			timestamp DATETIME NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_page_views_tenant ON page_views(tenant);
		CREATE INDEX IF NOT EXISTS idx_page_views_timestamp ON page_views(timestamp);

		CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
	`)
	return err
}

// GetSetting returns a setting value, or empty string when unset.
func (s *Store) GetSetting(key string) (string, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

// SetSetting upserts a setting value.
func (s *Store) SetSetting(key, value string) error {
	_, err := s.db.Exec(`INSERT OR REPLACE INTO settings (key, value) VALUES (?, ?)`, key, value)
	return err
}

// Record stores one page view for a tenant. The visitor IP is hashed with
// the installation salt before it touches the database.
func (s *Store) Record(tenant, path, ip string) error {
	_, err := s.db.Exec(`INSERT INTO page_views (tenant, path, visitor_hash, timestamp) VALUES (?, ?, ?, ?)`,
		tenant, path, HashVisitor(ip), time.Now().UTC())
	return err
}

// Summary aggregates a tenant's traffic over the trailing number of days.
type Summary struct {
	Views    int64       `json:"views"`
	Visitors int64       `json:"visitors"`
	TopPaths []PathCount `json:"topPaths"`
}

// PathCount is one row of the per-path breakdown.
type PathCount struct {
	Path  string `json:"path"`
	Views int64  `json:"views"`
}

// TenantSummary computes views, unique visitors, and the top paths for a
// tenant over the trailing days.
func (s *Store) TenantSummary(tenant string, days int) (Summary, error) {
	if days <= 0 {
		days = 30
	}
	cutoff := time.Now().UTC().AddDate(0, 0, -days)

	var sum Summary
	err := s.db.QueryRow(`SELECT COUNT(*), COUNT(DISTINCT visitor_hash) FROM page_views WHERE tenant = ? AND timestamp >= ?`,
		tenant, cutoff).Scan(&sum.Views, &sum.Visitors)
	if err != nil {
		return Summary{}, err
	}

	rows, err := s.db.Query(`SELECT path, COUNT(*) AS n FROM page_views WHERE tenant = ? AND timestamp >= ? GROUP BY path ORDER BY n DESC LIMIT 10`,
		tenant, cutoff)
	if err != nil {
		return Summary{}, err
	}
	defer rows.Close()
	for rows.Next() {
		var pc PathCount
		if err := rows.Scan(&pc.Path, &pc.Views); err != nil {
			return Summary{}, err
		}
		sum.TopPaths = append(sum.TopPaths, pc)
	}
	return sum, rows.Err()
}

// DeleteOlderThan removes views past the retention horizon and returns the
// number of rows deleted.
func (s *Store) DeleteOlderThan(days int) (int64, error) {
	cutoff := time.Now().UTC().AddDate(0, 0, -days)
	res, err := s.db.Exec(`DELETE FROM page_views WHERE timestamp < ?`, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// StartCleanupScheduler deletes views older than retentionDays on the given
// interval. The returned func stops the scheduler.
func (s *Store) StartCleanupScheduler(retentionDays int, interval time.Duration) func() {
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if _, err := s.DeleteOlderThan(retentionDays); err != nil {
					log.Printf("analytics: cleanup: %v", err)
				}
			case <-done:
				return
			}
		}
	}()
	return func() { close(done) }
}

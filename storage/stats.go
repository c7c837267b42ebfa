package storage

import (
	"fmt"
	"time"
)

// DailyStats represents statistics for a single day
type DailyStats struct {
	Date            string `json:"date"`
	TotalInsertions int    `json:"totalInsertions"`
	SuccessCount    int    `json:"successCount"`
	FailureCount    int    `json:"failureCount"`
}

// OverallStats represents overall statistics
type OverallStats struct {
	TotalInsertions int     `json:"totalInsertions"`
	SuccessCount    int     `json:"successCount"`
	FailureCount    int     `json:"failureCount"`
	AvgInjectionMs  float64 `json:"avgInjectionMs"`
	MaxInjectionMs  int64   `json:"maxInjectionMs"`
	TotalCharacters int64   `json:"totalCharacters"`
}

const overallColumns = `
	COUNT(*) as total_insertions,
	COALESCE(SUM(CASE WHEN success = 1 THEN 1 ELSE 0 END), 0) as success_count,
	COALESCE(SUM(CASE WHEN success = 0 THEN 1 ELSE 0 END), 0) as failure_count,
	COALESCE(AVG(injection_latency_ms), 0) as avg_injection_ms,
	COALESCE(MAX(injection_latency_ms), 0) as max_injection_ms,
	COALESCE(SUM(CASE WHEN success = 1 THEN LENGTH(text) ELSE 0 END), 0) as total_characters
`

// GetDailyStats retrieves statistics grouped by UTC date for the last N days
func (db *DB) GetDailyStats(days int) ([]DailyStats, error) {
	query := `
		SELECT
			DATE(timestamp) as date,
			COUNT(*) as total_insertions,
			SUM(CASE WHEN success = 1 THEN 1 ELSE 0 END) as success_count,
			SUM(CASE WHEN success = 0 THEN 1 ELSE 0 END) as failure_count
		FROM insertions
		WHERE timestamp >= datetime('now', '-' || ? || ' days')
		GROUP BY DATE(timestamp)
		ORDER BY date DESC
	`

	rows, err := db.conn.Query(query, days)
	if err != nil {
		return nil, fmt.Errorf("failed to query daily stats: %w", err)
	}
	defer rows.Close()

	var stats []DailyStats
	for rows.Next() {
		var s DailyStats
		if err := rows.Scan(&s.Date, &s.TotalInsertions, &s.SuccessCount, &s.FailureCount); err != nil {
			return nil, fmt.Errorf("failed to scan daily stats: %w", err)
		}
		stats = append(stats, s)
	}

	return stats, rows.Err()
}

// GetOverallStats retrieves overall statistics for the last N days
func (db *DB) GetOverallStats(days int) (*OverallStats, error) {
	query := `SELECT ` + overallColumns + `
		FROM insertions
		WHERE timestamp >= datetime('now', '-' || ? || ' days')
	`

	stats, err := db.scanOverall(query, days)
	if err != nil {
		return nil, fmt.Errorf("failed to query overall stats: %w", err)
	}
	return stats, nil
}

// GetStatsForDateRange retrieves overall stats for [start, end]
func (db *DB) GetStatsForDateRange(start, end time.Time) (*OverallStats, error) {
	query := `SELECT ` + overallColumns + `
		FROM insertions
		WHERE timestamp >= ? AND timestamp <= ?
	`

	stats, err := db.scanOverall(query, start.UTC().Format(timeLayout), end.UTC().Format(timeLayout))
	if err != nil {
		return nil, fmt.Errorf("failed to query date range stats: %w", err)
	}
	return stats, nil
}

func (db *DB) scanOverall(query string, args ...any) (*OverallStats, error) {
	var stats OverallStats
	err := db.conn.QueryRow(query, args...).Scan(
		&stats.TotalInsertions,
		&stats.SuccessCount,
		&stats.FailureCount,
		&stats.AvgInjectionMs,
		&stats.MaxInjectionMs,
		&stats.TotalCharacters,
	)
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

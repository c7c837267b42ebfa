package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// ErrNotFound is returned when a row does not exist
var ErrNotFound = errors.New("insertion not found")

// timeLayout is a format SQLite date functions understand; stored in UTC
const timeLayout = "2006-01-02 15:04:05.000"

// Insertion is one accelerator press as recorded in history
type Insertion struct {
	ID                 int64     `json:"id"`
	Timestamp          time.Time `json:"timestamp"`
	Text               string    `json:"text"`
	Accelerator        string    `json:"accelerator"`
	Method             string    `json:"method"`
	InjectionLatencyMs int64     `json:"injectionLatencyMs"`
	Success            bool      `json:"success"`
	ErrorMessage       string    `json:"errorMessage,omitempty"`
}

// SaveInsertion saves an insertion and sets its ID
func (db *DB) SaveInsertion(ins *Insertion) error {
	query := `
		INSERT INTO insertions (
			timestamp, text, accelerator, method, injection_latency_ms,
			success, error_message
		) VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	var errorMessage sql.NullString
	if ins.ErrorMessage != "" {
		errorMessage = sql.NullString{String: ins.ErrorMessage, Valid: true}
	}

	result, err := db.conn.Exec(query,
		ins.Timestamp.UTC().Format(timeLayout), ins.Text, ins.Accelerator, ins.Method, ins.InjectionLatencyMs,
		ins.Success, errorMessage,
	)
	if err != nil {
		return fmt.Errorf("failed to save insertion: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert ID: %w", err)
	}

	ins.ID = id
	return nil
}

// GetInsertions retrieves insertions newest first with pagination
func (db *DB) GetInsertions(limit, offset int) ([]Insertion, error) {
	query := `
		SELECT
			id, timestamp, text, accelerator, method, injection_latency_ms,
			success, error_message
		FROM insertions
		ORDER BY timestamp DESC, id DESC
		LIMIT ? OFFSET ?
	`

	rows, err := db.conn.Query(query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query insertions: %w", err)
	}
	defer rows.Close()

	var insertions []Insertion
	for rows.Next() {
		var ins Insertion
		var errorMessage sql.NullString

		err := rows.Scan(
			&ins.ID, &ins.Timestamp, &ins.Text, &ins.Accelerator, &ins.Method,
			&ins.InjectionLatencyMs, &ins.Success, &errorMessage,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan insertion: %w", err)
		}

		if errorMessage.Valid {
			ins.ErrorMessage = errorMessage.String
		}

		insertions = append(insertions, ins)
	}

	return insertions, rows.Err()
}

// DeleteInsertion deletes an insertion by ID
func (db *DB) DeleteInsertion(id int64) error {
	result, err := db.conn.Exec(`DELETE FROM insertions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete insertion: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

// GetInsertionCount returns the total number of insertions
func (db *DB) GetInsertionCount() (int, error) {
	var count int
	err := db.conn.QueryRow("SELECT COUNT(*) FROM insertions").Scan(&count)
	return count, err
}

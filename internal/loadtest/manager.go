package loadtest

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/jaysuzi5/api-load-tester/internal/migrations"
)

// Manager handles run history persistence
type Manager struct {
	db *sql.DB
}

// NewManager opens the run history database and applies migrations
func NewManager(dbPath string) (*Manager, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	m := &Manager{db: db}

	if err := migrations.Run(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return m, nil
}

// Close closes the database connection
func (m *Manager) Close() error {
	return m.db.Close()
}

// CreateRun inserts a new run record and sets run.ID
func (m *Manager) CreateRun(run *Run) error {
	result, err := m.db.Exec(`
		INSERT INTO load_test_runs
		(url, total_requests, workers, started_at, status)
		VALUES (?, ?, ?, ?, ?)
	`, run.URL, run.TotalRequests, run.Workers, run.StartedAt, run.Status)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	run.ID = id
	return nil
}

// UpdateRun writes the final state of a run record
func (m *Manager) UpdateRun(run *Run) error {
	_, err := m.db.Exec(`
		UPDATE load_test_runs
		SET completed_at = ?, status = ?, success_count = ?, failure_count = ?,
		    elapsed_ms = ?, transactions_per_minute = ?, error_message = ?
		WHERE id = ?
	`, run.CompletedAt, run.Status, run.SuccessCount, run.FailureCount,
		run.ElapsedMs, run.TPM, run.ErrorMessage, run.ID)
	if err != nil {
		return fmt.Errorf("failed to update run: %w", err)
	}
	return nil
}

// GetRun retrieves a run by ID
func (m *Manager) GetRun(id int64) (*Run, error) {
	run := &Run{}
	err := m.db.QueryRow(`
		SELECT id, url, total_requests, workers, started_at, completed_at, status,
		       success_count, failure_count, elapsed_ms, transactions_per_minute,
		       COALESCE(error_message, '')
		FROM load_test_runs WHERE id = ?
	`, id).Scan(&run.ID, &run.URL, &run.TotalRequests, &run.Workers,
		&run.StartedAt, &run.CompletedAt, &run.Status,
		&run.SuccessCount, &run.FailureCount, &run.ElapsedMs, &run.TPM,
		&run.ErrorMessage)
	if err != nil {
		return nil, err
	}
	return run, nil
}

// ListRuns returns the most recent runs, newest first
func (m *Manager) ListRuns(limit int) ([]*Run, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := m.db.Query(`
		SELECT id, url, total_requests, workers, started_at, completed_at, status,
		       success_count, failure_count, elapsed_ms, transactions_per_minute,
		       COALESCE(error_message, '')
		FROM load_test_runs
		ORDER BY started_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		run := &Run{}
		err := rows.Scan(&run.ID, &run.URL, &run.TotalRequests, &run.Workers,
			&run.StartedAt, &run.CompletedAt, &run.Status,
			&run.SuccessCount, &run.FailureCount, &run.ElapsedMs, &run.TPM,
			&run.ErrorMessage)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}

	return runs, rows.Err()
}

// DeleteRuns removes all run history
func (m *Manager) DeleteRuns() error {
	_, err := m.db.Exec("DELETE FROM load_test_runs")
	if err != nil {
		return fmt.Errorf("failed to clear run history: %w", err)
	}
	return nil
}

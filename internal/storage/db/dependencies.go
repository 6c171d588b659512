package db

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"a3mm/internal/domain"
)

// SaveDependencies replaces the cached dependency list for a mod
func (d *DB) SaveDependencies(modID string, deps []domain.Dependency, fetchedAt time.Time) (err error) {
	tx, err := d.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for _, table := range []string{"dependency_cache", "dependency_fetches"} {
		if _, err = tx.Exec("DELETE FROM "+table+" WHERE mod_id = ?", modID); err != nil {
			return fmt.Errorf("clearing cached dependencies: %w", err)
		}
	}
	if _, err = tx.Exec("INSERT INTO dependency_fetches (mod_id, fetched_at) VALUES (?, ?)", modID, fetchedAt.Unix()); err != nil {
		return fmt.Errorf("saving dependency fetch: %w", err)
	}
	for i, dep := range deps {
		if _, err = tx.Exec(`
			INSERT INTO dependency_cache (mod_id, position, dep_id, dep_name)
			VALUES (?, ?, ?, ?)
		`, modID, i, dep.ID, dep.Name); err != nil {
			return fmt.Errorf("saving dependency %s: %w", dep.ID, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("committing dependencies: %w", err)
	}
	return nil
}

// GetDependencies returns the cached dependency list for a mod if it was
// fetched at or after notBefore. The bool reports a cache hit.
func (d *DB) GetDependencies(modID string, notBefore time.Time) ([]domain.Dependency, bool, error) {
	var fetchedAt int64
	err := d.QueryRow("SELECT fetched_at FROM dependency_fetches WHERE mod_id = ?", modID).Scan(&fetchedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("getting dependency fetch: %w", err)
	}
	if fetchedAt < notBefore.Unix() {
		return nil, false, nil
	}

	rows, err := d.Query(`
		SELECT dep_id, dep_name
		FROM dependency_cache
		WHERE mod_id = ?
		ORDER BY position
	`, modID)
	if err != nil {
		return nil, false, fmt.Errorf("querying dependencies: %w", err)
	}
	defer rows.Close()

	deps := []domain.Dependency{}
	for rows.Next() {
		var dep domain.Dependency
		if err := rows.Scan(&dep.ID, &dep.Name); err != nil {
			return nil, false, fmt.Errorf("scanning dependency: %w", err)
		}
		deps = append(deps, dep)
	}
	if err := rows.Err(); err != nil {
		return nil, false, fmt.Errorf("iterating dependencies: %w", err)
	}

	return deps, true, nil
}

// ClearDependencies drops every cached dependency list
func (d *DB) ClearDependencies() error {
	if _, err := d.Exec("DELETE FROM dependency_cache; DELETE FROM dependency_fetches;"); err != nil {
		return fmt.Errorf("clearing dependency cache: %w", err)
	}
	return nil
}

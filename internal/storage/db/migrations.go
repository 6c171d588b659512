package db

import "fmt"

func (d *DB) migrate() error {
	// Create migrations table if it doesn't exist
	if _, err := d.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`); err != nil {
		return fmt.Errorf("creating migrations table: %w", err)
	}

	var version int
	err := d.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations").Scan(&version)
	if err != nil {
		return fmt.Errorf("getting schema version: %w", err)
	}

	migrations := []func(*DB) error{
		migrateV1,
		migrateV2,
	}

	for i := version; i < len(migrations); i++ {
		if err := migrations[i](d); err != nil {
			return fmt.Errorf("migration %d: %w", i+1, err)
		}
		if _, err := d.Exec("INSERT INTO schema_migrations (version) VALUES (?)", i+1); err != nil {
			return fmt.Errorf("recording migration %d: %w", i+1, err)
		}
	}

	return nil
}

func (d *DB) execAll(statements []string) error {
	for _, stmt := range statements {
		if _, err := d.Exec(stmt); err != nil {
			head := stmt
			if len(head) > 50 {
				head = head[:50]
			}
			return fmt.Errorf("executing %q: %w", head, err)
		}
	}
	return nil
}

// migrateV1 adds the Workshop dependency cache
func migrateV1(d *DB) error {
	return d.execAll([]string{
		`CREATE TABLE dependency_fetches (
			mod_id TEXT PRIMARY KEY,
			fetched_at INTEGER NOT NULL
		)`,
		`CREATE TABLE dependency_cache (
			mod_id TEXT NOT NULL REFERENCES dependency_fetches(mod_id) ON DELETE CASCADE,
			position INTEGER NOT NULL,
			dep_id TEXT NOT NULL,
			dep_name TEXT NOT NULL,
			PRIMARY KEY(mod_id, position)
		)`,
	})
}

// migrateV2 adds launch history
func migrateV2(d *DB) error {
	return d.execAll([]string{
		`CREATE TABLE launches (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			preset TEXT NOT NULL,
			executable TEXT NOT NULL,
			mod_ids TEXT NOT NULL DEFAULT '',
			args TEXT NOT NULL DEFAULT '',
			launched_at INTEGER NOT NULL
		)`,
		`CREATE INDEX idx_launches_launched_at ON launches(launched_at)`,
	})
}

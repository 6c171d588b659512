package db

import (
	"fmt"
	"strings"
	"time"

	"a3mm/internal/domain"
)

const argSeparator = "\n"

// Launch is one recorded game start
type Launch struct {
	ID         int64
	Preset     string
	Executable string
	ModIDs     []string
	Args       []string
	LaunchedAt time.Time
}

// RecordLaunch stores a launch and sets its ID
func (d *DB) RecordLaunch(l *Launch) error {
	res, err := d.Exec(`
		INSERT INTO launches (preset, executable, mod_ids, args, launched_at)
		VALUES (?, ?, ?, ?, ?)
	`, l.Preset, l.Executable,
		strings.Join(l.ModIDs, domain.ModArgSeparator),
		strings.Join(l.Args, argSeparator),
		l.LaunchedAt.Unix())
	if err != nil {
		return fmt.Errorf("recording launch: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("getting launch id: %w", err)
	}
	l.ID = id
	return nil
}

// RecentLaunches returns up to limit launches, newest first
func (d *DB) RecentLaunches(limit int) ([]Launch, error) {
	rows, err := d.Query(`
		SELECT id, preset, executable, mod_ids, args, launched_at
		FROM launches
		ORDER BY launched_at DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying launches: %w", err)
	}
	defer rows.Close()

	var launches []Launch
	for rows.Next() {
		var (
			l          Launch
			modIDs     string
			args       string
			launchedAt int64
		)
		if err := rows.Scan(&l.ID, &l.Preset, &l.Executable, &modIDs, &args, &launchedAt); err != nil {
			return nil, fmt.Errorf("scanning launch: %w", err)
		}
		l.ModIDs = splitNonEmpty(modIDs, domain.ModArgSeparator)
		l.Args = splitNonEmpty(args, argSeparator)
		l.LaunchedAt = time.Unix(launchedAt, 0)
		launches = append(launches, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating launches: %w", err)
	}

	return launches, nil
}

func splitNonEmpty(s, sep string) []string {
	if s == "" {
		return []string{}
	}
	return strings.Split(s, sep)
}

package store

import "time"

// InsertEvent appends an event to the journal.
func (db *DB) InsertEvent(kind, detail string) error {
	_, err := db.Exec(`
		INSERT INTO events (kind, detail, created_at)
		VALUES (?, ?, ?)`,
		kind, detail, time.Now().UnixMilli())
	return err
}

// ListEvents returns the most recent events, newest first.
func (db *DB) ListEvents(limit int) ([]Event, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := db.Query(`
		SELECT id, kind, detail, created_at
		FROM events
		ORDER BY created_at DESC, id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var events []Event
	for rows.Next() {
		var e Event
		if err := rows.Scan(&e.ID, &e.Kind, &e.Detail, &e.CreatedAt); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// PruneEvents deletes journal entries older than the cutoff, returning
// how many were removed.
func (db *DB) PruneEvents(before time.Time) (int64, error) {
	res, err := db.Exec(`DELETE FROM events WHERE created_at < ?`, before.UnixMilli())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

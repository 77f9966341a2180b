package store

import "time"

// InsertInvocation records one control command in the audit trail.
func (db *DB) InsertInvocation(inv *Invocation) error {
	_, err := db.Exec(`
		INSERT INTO invocations (invocation_id, command, args, ok, message, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		inv.InvocationID, inv.Command, inv.Args, inv.Ok, inv.Message, time.Now().UnixMilli())
	return err
}

// ListInvocations returns the most recent audited commands, newest
// first.
func (db *DB) ListInvocations(limit int) ([]Invocation, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := db.Query(`
		SELECT id, invocation_id, command, args, ok, message, created_at
		FROM invocations
		ORDER BY created_at DESC, id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var invs []Invocation
	for rows.Next() {
		var inv Invocation
		if err := rows.Scan(&inv.ID, &inv.InvocationID, &inv.Command, &inv.Args, &inv.Ok, &inv.Message, &inv.CreatedAt); err != nil {
			return nil, err
		}
		invs = append(invs, inv)
	}
	return invs, rows.Err()
}

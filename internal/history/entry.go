package history

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/FluidXR/sinodroid/internal/adb"
)

// DefaultRecent is how many Wi-Fi addresses are remembered for the UI.
const DefaultRecent = 5

// Connection is a Wi-Fi address that adb connected to successfully.
type Connection struct {
	Address     string    `json:"address"`
	ConnectedAt time.Time `json:"connectedAt"`
}

// RecordConnection stores addr as the most recent successful connection.
func (h *DB) RecordConnection(ctx context.Context, addr string) error {
	_, err := h.db.ExecContext(ctx,
		`INSERT INTO connections (address, connected_at) VALUES (?, ?)
		 ON CONFLICT(address) DO UPDATE SET connected_at = excluded.connected_at`,
		addr, time.Now().UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("record connection: %w", err)
	}
	return nil
}

// RecentConnections returns up to limit addresses, newest first.
func (h *DB) RecentConnections(ctx context.Context, limit int) ([]Connection, error) {
	if limit <= 0 {
		limit = DefaultRecent
	}
	rows, err := h.db.QueryContext(ctx,
		`SELECT address, connected_at FROM connections ORDER BY connected_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query connections: %w", err)
	}
	defer rows.Close()

	var conns []Connection
	for rows.Next() {
		var c Connection
		var ts int64
		if err := rows.Scan(&c.Address, &ts); err != nil {
			return nil, fmt.Errorf("scan connection: %w", err)
		}
		c.ConnectedAt = time.Unix(0, ts)
		conns = append(conns, c)
	}
	return conns, rows.Err()
}

// ForgetConnection removes addr from the history.
func (h *DB) ForgetConnection(ctx context.Context, addr string) error {
	if _, err := h.db.ExecContext(ctx, `DELETE FROM connections WHERE address = ?`, addr); err != nil {
		return fmt.Errorf("forget connection: %w", err)
	}
	return nil
}

// RecordInvocation implements adb.Recorder.
func (h *DB) RecordInvocation(ctx context.Context, inv adb.Invocation) error {
	args, err := json.Marshal(inv.Args)
	if err != nil {
		return fmt.Errorf("marshal args: %w", err)
	}
	_, err = h.db.ExecContext(ctx,
		`INSERT INTO invocations (id, program, args, exit_code, error, started_at, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		inv.ID, inv.Program, string(args), inv.ExitCode, inv.Err,
		inv.StartedAt.UnixNano(), inv.Duration.Milliseconds(),
	)
	if err != nil {
		return fmt.Errorf("record invocation: %w", err)
	}
	return nil
}

// RecentInvocations returns up to limit invocations, newest first.
func (h *DB) RecentInvocations(ctx context.Context, limit int) ([]adb.Invocation, error) {
	rows, err := h.db.QueryContext(ctx,
		`SELECT id, program, args, exit_code, error, started_at, duration_ms
		 FROM invocations ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query invocations: %w", err)
	}
	defer rows.Close()

	var invs []adb.Invocation
	for rows.Next() {
		var (
			inv      adb.Invocation
			args     string
			started  int64
			duration int64
		)
		if err := rows.Scan(&inv.ID, &inv.Program, &args, &inv.ExitCode, &inv.Err, &started, &duration); err != nil {
			return nil, fmt.Errorf("scan invocation: %w", err)
		}
		if err := json.Unmarshal([]byte(args), &inv.Args); err != nil {
			return nil, fmt.Errorf("decode args: %w", err)
		}
		inv.StartedAt = time.Unix(0, started)
		inv.Duration = time.Duration(duration) * time.Millisecond
		invs = append(invs, inv)
	}
	return invs, rows.Err()
}

// PruneInvocations deletes invocations older than cutoff.
func (h *DB) PruneInvocations(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := h.db.ExecContext(ctx, `DELETE FROM invocations WHERE started_at < ?`, cutoff.UnixNano())
	if err != nil {
		return 0, fmt.Errorf("prune invocations: %w", err)
	}
	return res.RowsAffected()
}

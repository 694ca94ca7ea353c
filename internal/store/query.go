package store

import (
	"fmt"
	"strings"
)

const (
	defaultLimit = 50
	maxLimit     = 500
)

const baseSnapshotsSelect = `SELECT id, collected_at, metrics, degraded
FROM snapshots`

const countSnapshotsSelect = "SELECT COUNT(*) FROM snapshots"

// limits returns the effective limit and offset.
func (q *SnapshotQuery) limits() (limit, offset int) {
	limit = q.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return limit, max(q.Offset, 0)
}

// ToSQL builds the WHERE clause, ORDER BY, LIMIT, and OFFSET for a snapshot
// history query. It returns two SQL strings (one for the data query, one for
// the count query) and the positional parameters. Results are newest first.
func (q *SnapshotQuery) ToSQL() (dataSQL, countSQL string, args []any) {
	var conditions []string
	paramIdx := 1

	if q.Since != nil {
		conditions = append(conditions, fmt.Sprintf("collected_at >= $%d", paramIdx))
		args = append(args, *q.Since)
		paramIdx++
	}

	if q.Until != nil {
		conditions = append(conditions, fmt.Sprintf("collected_at < $%d", paramIdx))
		args = append(args, *q.Until)
	}

	var whereClause string
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	limit, offset := q.limits()

	dataSQL = fmt.Sprintf(
		"%s%s ORDER BY collected_at DESC LIMIT %d OFFSET %d",
		baseSnapshotsSelect, whereClause, limit, offset,
	)

	countSQL = countSnapshotsSelect + whereClause

	return dataSQL, countSQL, args
}

package store

// Snapshot queries.
const (
	queryInsertSnapshot = `
		INSERT INTO snapshots (collected_at, metrics, degraded)
		VALUES ($1, $2, $3)
		RETURNING id`

	queryInsertSnapshotWithID = `
		INSERT INTO snapshots (id, collected_at, metrics, degraded)
		VALUES ($1, $2, $3, $4)`

	queryLatestSnapshot = `
		SELECT id, collected_at, metrics, degraded
		FROM snapshots
		ORDER BY collected_at DESC
		LIMIT 1`

	queryPruneSnapshots = `
		DELETE FROM snapshots WHERE collected_at < $1`
)

// Poll run queries.
const (
	queryInsertPollRun = `
		INSERT INTO poll_runs DEFAULT VALUES
		RETURNING id`

	queryCompletePollRun = `
		UPDATE poll_runs SET
			completed_at       = now(),
			status             = $2,
			error_text         = NULLIF($3, ''),
			degraded_endpoints = $4
		WHERE id = $1`

	queryListPollRuns = `
		SELECT id, started_at, completed_at, status,
			COALESCE(error_text, ''), degraded_endpoints
		FROM poll_runs
		ORDER BY started_at DESC
		LIMIT $1`

	queryMarkStalePollRunsCrashed = `
		UPDATE poll_runs SET
			status       = 'crashed',
			completed_at = now()
		WHERE status = 'running' AND started_at < $1`

	queryDeleteOldPollRuns = `
		DELETE FROM poll_runs WHERE started_at < now() - interval '30 days'`
)

package sqlite

const schemaSQL = `
CREATE TABLE IF NOT EXISTS liked_submissions (
	id TEXT PRIMARY KEY,
	data TEXT NOT NULL,
	liked INTEGER NOT NULL DEFAULT 1,
	position INTEGER NOT NULL,
	updated_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_liked_submissions_position ON liked_submissions(position);
`

const (
	selectAllSQL = `SELECT id, data, liked FROM liked_submissions ORDER BY position, id`

	upsertSQL = `
INSERT INTO liked_submissions (id, data, liked, position, updated_at)
VALUES (?, ?, ?, (SELECT COALESCE(MAX(position), 0) + 1 FROM liked_submissions), ?)
ON CONFLICT(id) DO UPDATE SET
	data = excluded.data,
	liked = excluded.liked,
	updated_at = excluded.updated_at`

	insertAtSQL = `
INSERT INTO liked_submissions (id, data, liked, position, updated_at)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
	data = excluded.data,
	liked = excluded.liked,
	position = excluded.position,
	updated_at = excluded.updated_at`

	deleteAllSQL = `DELETE FROM liked_submissions`

	countSQL = `SELECT COUNT(*) FROM liked_submissions`
)

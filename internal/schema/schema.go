package schema

// DDL initializes the session recording schema. Statements are idempotent
// so the schema can be applied on every start.
const DDL = `
CREATE TABLE IF NOT EXISTS sessions (
	id         TEXT PRIMARY KEY,
	source     TEXT NOT NULL,
	started_at TIMESTAMP NOT NULL,
	ended_at   TIMESTAMP
);

CREATE TABLE IF NOT EXISTS samples (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	session_id  TEXT NOT NULL REFERENCES sessions(id),
	ts          TIMESTAMP NOT NULL,
	heart_rate  INTEGER NOT NULL,
	temperature REAL NOT NULL,
	oxygen      INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_samples_session_ts ON samples(session_id, ts);
`

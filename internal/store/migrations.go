package store

// migration holds a single schema migration with its target version and SQL.
type migration struct {
	version int
	sql     string
}

// migrations is the ordered list of schema migrations.
// Each migration's version must be sequential starting from 1.
var migrations = []migration{
	{
		version: 1,
		sql: `
CREATE TABLE IF NOT EXISTS schema_version (
	version INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS tasks (
	id          TEXT PRIMARY KEY,
	title       TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	due_date    DATETIME,
	completed   INTEGER NOT NULL DEFAULT 0 CHECK(completed IN (0, 1)),
	created_at  DATETIME NOT NULL,
	updated_at  DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS notifications (
	id         TEXT PRIMARY KEY,
	message    TEXT NOT NULL,
	task_id    TEXT NOT NULL DEFAULT '',
	type       TEXT NOT NULL DEFAULT 'info',
	read       INTEGER NOT NULL DEFAULT 0 CHECK(read IN (0, 1)),
	created_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_tasks_completed ON tasks(completed);
CREATE INDEX IF NOT EXISTS idx_tasks_created ON tasks(created_at);
CREATE INDEX IF NOT EXISTS idx_notifications_read ON notifications(read);
CREATE INDEX IF NOT EXISTS idx_notifications_created ON notifications(created_at);
CREATE INDEX IF NOT EXISTS idx_notifications_task_id ON notifications(task_id);

INSERT INTO schema_version (version) VALUES (1);
`,
	},
	{
		version: 2,
		sql: `
CREATE TABLE IF NOT EXISTS long_term_memory (
	id            TEXT PRIMARY KEY,
	content       TEXT NOT NULL,
	category      TEXT NOT NULL DEFAULT '',
	created_at    DATETIME NOT NULL,
	last_accessed DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS short_term_memory (
	id         TEXT PRIMARY KEY,
	content    TEXT NOT NULL,
	category   TEXT NOT NULL DEFAULT '',
	created_at DATETIME NOT NULL,
	expires_at DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS academic_info (
	id         TEXT PRIMARY KEY,
	subject    TEXT NOT NULL,
	content    TEXT NOT NULL,
	type       TEXT NOT NULL DEFAULT '',
	created_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_long_term_accessed ON long_term_memory(last_accessed);
CREATE INDEX IF NOT EXISTS idx_short_term_expires ON short_term_memory(expires_at);
CREATE INDEX IF NOT EXISTS idx_short_term_created ON short_term_memory(created_at);
CREATE INDEX IF NOT EXISTS idx_academic_subject ON academic_info(subject);

INSERT INTO schema_version (version) VALUES (2);
`,
	},
}

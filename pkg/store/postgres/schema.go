package postgres

import "context"

// migrate creates the schema if it does not exist. The unique indexes
// carry the write-time invariants: one email per person, one
// relationship per (from, to, kind) triple.
func (s *Store) migrate(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS people (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT,
		role TEXT NOT NULL DEFAULT '',
		department TEXT NOT NULL DEFAULT '',
		location TEXT NOT NULL DEFAULT '',
		expertise TEXT[] NOT NULL DEFAULT '{}',
		comm_preference TEXT NOT NULL DEFAULT '',
		notes TEXT NOT NULL DEFAULT '',
		attributes JSONB,
		created_at TIMESTAMPTZ NOT NULL,
		last_interaction TIMESTAMPTZ
	);
	CREATE UNIQUE INDEX IF NOT EXISTS idx_people_email
		ON people(LOWER(email)) WHERE email IS NOT NULL AND email <> '';
	CREATE INDEX IF NOT EXISTS idx_people_department ON people(department);

	CREATE TABLE IF NOT EXISTS relationships (
		from_id TEXT NOT NULL REFERENCES people(id),
		to_id TEXT NOT NULL REFERENCES people(id),
		kind TEXT NOT NULL,
		bidirectional BOOLEAN NOT NULL DEFAULT FALSE,
		strength DOUBLE PRECISION,
		context TEXT NOT NULL DEFAULT '',
		frequency TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL,
		PRIMARY KEY (from_id, to_id, kind),
		CHECK (from_id <> to_id),
		CHECK (strength IS NULL OR (strength >= 0 AND strength <= 1))
	);
	CREATE INDEX IF NOT EXISTS idx_relationships_to ON relationships(to_id);

	CREATE TABLE IF NOT EXISTS interactions (
		id TEXT PRIMARY KEY,
		person_id TEXT NOT NULL REFERENCES people(id),
		kind TEXT NOT NULL,
		topic TEXT NOT NULL DEFAULT '',
		outcome TEXT NOT NULL DEFAULT '',
		notes TEXT NOT NULL DEFAULT '',
		participants TEXT[] NOT NULL DEFAULT '{}',
		occurred_at TIMESTAMPTZ NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_interactions_person ON interactions(person_id);
	CREATE INDEX IF NOT EXISTS idx_interactions_occurred ON interactions(occurred_at);
	`

	_, err := s.pool.Exec(ctx, schema)
	return err
}

package sqlite

import "database/sql"

// migrations contains the SQL statements to set up the database schema.
// These run on startup to ensure tables exist.
// The unique index on (user_id, title, artist) backs the domain rule that
// one user never holds the same album twice, owned or wishlisted.
const schema = `
CREATE TABLE IF NOT EXISTS users (
    id TEXT PRIMARY KEY,
    username TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    created_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS albums (
    id TEXT PRIMARY KEY,
    user_id TEXT NOT NULL,
    title TEXT NOT NULL,
    artist TEXT NOT NULL,
    pub_date TEXT,
    genre TEXT NOT NULL DEFAULT 'OTHER',
    rating INTEGER NOT NULL DEFAULT 0,
    add_date TEXT NOT NULL,
    owned INTEGER NOT NULL,
    FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_albums_identity ON albums(user_id, title, artist);
CREATE INDEX IF NOT EXISTS idx_albums_user_owned ON albums(user_id, owned);
`

// runMigrations executes the schema setup.
func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}

package db

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

const SchemaSQL = `
CREATE TABLE IF NOT EXISTS models (
    id INTEGER PRIMARY KEY,
    name TEXT NOT NULL UNIQUE,
    updated_at TEXT
);

CREATE TABLE IF NOT EXISTS features (
    model_id INTEGER NOT NULL,
    feature TEXT NOT NULL,
    key TEXT NOT NULL,
    count INTEGER NOT NULL,
    PRIMARY KEY (model_id, feature, key)
);

CREATE TABLE IF NOT EXISTS classifications (
    id TEXT PRIMARY KEY,
    unknown TEXT,
    candidate_a TEXT,
    candidate_b TEXT,
    scores_a TEXT,
    scores_b TEXT,
    votes_a INTEGER,
    votes_b INTEGER,
    winner TEXT,
    created_at TEXT
);
`

func Open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec(SchemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return db, nil
}

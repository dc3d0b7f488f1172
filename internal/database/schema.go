package database

import (
	"context"
	"database/sql"
)

// schema holds the table definitions.  Statements are idempotent so
// EnsureSchema can run on every start.  Foreign keys on shows are
// RESTRICT: a venue or artist cannot be dropped while shows reference
// it, matching the delete policy enforced in the repositories.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS venues (
		id                  BIGINT AUTO_INCREMENT PRIMARY KEY,
		name                VARCHAR(255) NOT NULL,
		city                VARCHAR(120) NOT NULL,
		state               VARCHAR(120) NOT NULL,
		address             VARCHAR(120) NOT NULL,
		phone               VARCHAR(120) NOT NULL,
		image_link          VARCHAR(500) NOT NULL,
		facebook_link       VARCHAR(120) NOT NULL,
		website_link        VARCHAR(120) NOT NULL DEFAULT '',
		genres              TEXT NOT NULL,
		seeking_talent      BOOLEAN NOT NULL DEFAULT FALSE,
		seeking_description VARCHAR(500) NOT NULL DEFAULT '',
		INDEX idx_venues_city_state (city, state)
	)`,
	`CREATE TABLE IF NOT EXISTS artists (
		id                  BIGINT AUTO_INCREMENT PRIMARY KEY,
		name                VARCHAR(255) NOT NULL,
		city                VARCHAR(120) NOT NULL,
		state               VARCHAR(120) NOT NULL,
		phone               VARCHAR(120) NOT NULL,
		image_link          VARCHAR(500) NOT NULL,
		facebook_link       VARCHAR(120) NOT NULL,
		website_link        VARCHAR(120) NOT NULL DEFAULT '',
		genres              TEXT NOT NULL,
		seeking_talent      BOOLEAN NOT NULL DEFAULT FALSE,
		seeking_description VARCHAR(500) NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS shows (
		id         BIGINT AUTO_INCREMENT PRIMARY KEY,
		artist_id  BIGINT NOT NULL,
		venue_id   BIGINT NOT NULL,
		start_time DATETIME NOT NULL,
		INDEX idx_shows_venue (venue_id, start_time),
		INDEX idx_shows_artist (artist_id, start_time),
		CONSTRAINT fk_shows_artist FOREIGN KEY (artist_id) REFERENCES artists (id) ON DELETE RESTRICT,
		CONSTRAINT fk_shows_venue  FOREIGN KEY (venue_id)  REFERENCES venues (id)  ON DELETE RESTRICT
	)`,
}

// EnsureSchema creates the three tables when they do not exist yet.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

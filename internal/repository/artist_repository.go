package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/fyyur/fyyur/internal/model"
)

// ArtistRepo manages persistence for artists.  It mirrors VenueRepo;
// artists have the same listing attributes minus the street address.
type ArtistRepo struct {
	db *sql.DB
}

// NewArtistRepo constructs an ArtistRepo with the given DB handle.
func NewArtistRepo(db *sql.DB) *ArtistRepo {
	return &ArtistRepo{db: db}
}

const artistColumns = `id, name, city, state, phone, image_link, facebook_link, website_link, genres, seeking_talent, seeking_description`

// Create inserts a new artist and assigns the generated ID back to the
// artist struct.
func (r *ArtistRepo) Create(ctx context.Context, a *model.Artist) error {
	genres, err := encodeGenres(a.Genres)
	if err != nil {
		return err
	}
	const q = `INSERT INTO artists (name, city, state, phone, image_link, facebook_link, website_link, genres, seeking_talent, seeking_description)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q,
		a.Name, a.City, a.State, a.Phone,
		a.ImageLink, a.FacebookLink, a.WebsiteLink,
		genres, a.SeekingTalent, a.SeekingDescription,
	)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	a.ID = id
	return nil
}

// GetByID retrieves an artist by its ID.  It returns ErrArtistNotFound
// if there is no matching row.
func (r *ArtistRepo) GetByID(ctx context.Context, id int64) (*model.Artist, error) {
	const q = `SELECT ` + artistColumns + ` FROM artists WHERE id = ?`
	a, err := scanArtist(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrArtistNotFound
		}
		return nil, err
	}
	return a, nil
}

// ListAll returns every artist ordered by id ascending.
func (r *ArtistRepo) ListAll(ctx context.Context) ([]model.Artist, error) {
	const q = `SELECT ` + artistColumns + ` FROM artists ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var result []model.Artist
	for rows.Next() {
		a, err := scanArtist(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Update rewrites every mutable column of the artist identified by
// a.ID.  It returns ErrArtistNotFound when no such row exists.
func (r *ArtistRepo) Update(ctx context.Context, a *model.Artist) error {
	genres, err := encodeGenres(a.Genres)
	if err != nil {
		return err
	}
	const q = `UPDATE artists
	           SET name = ?, city = ?, state = ?, phone = ?, image_link = ?, facebook_link = ?, website_link = ?, genres = ?, seeking_talent = ?, seeking_description = ?
	           WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q,
		a.Name, a.City, a.State, a.Phone,
		a.ImageLink, a.FacebookLink, a.WebsiteLink,
		genres, a.SeekingTalent, a.SeekingDescription,
		a.ID,
	)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n > 0 {
		return nil
	}
	var one int
	if err := r.db.QueryRowContext(ctx, `SELECT 1 FROM artists WHERE id = ? LIMIT 1`, a.ID).Scan(&one); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrArtistNotFound
		}
		return err
	}
	return nil
}

// Delete removes an artist provided no shows reference it.  The check
// and the delete run in one transaction.  It returns ErrArtistNotFound
// when the artist does not exist and ErrConflict when shows still
// reference it.
func (r *ArtistRepo) Delete(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()
	var one int
	err = tx.QueryRowContext(ctx, `SELECT 1 FROM artists WHERE id = ? LIMIT 1`, id).Scan(&one)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = ErrArtistNotFound
		}
		return err
	}
	var refs int
	if err = tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM shows WHERE artist_id = ?`, id).Scan(&refs); err != nil {
		return err
	}
	if refs > 0 {
		err = ErrConflict
		return err
	}
	_, err = tx.ExecContext(ctx, `DELETE FROM artists WHERE id = ?`, id)
	return err
}

// CountUpcomingShows returns the number of shows by this artist that
// start after the given instant.
func (r *ArtistRepo) CountUpcomingShows(ctx context.Context, id int64, now time.Time) (int, error) {
	const q = `SELECT COUNT(*) FROM shows WHERE artist_id = ? AND start_time > ?`
	var n int
	if err := r.db.QueryRowContext(ctx, q, id, now.UTC()).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func scanArtist(s scanner) (*model.Artist, error) {
	var a model.Artist
	var genres string
	err := s.Scan(
		&a.ID, &a.Name, &a.City, &a.State, &a.Phone,
		&a.ImageLink, &a.FacebookLink, &a.WebsiteLink,
		&genres, &a.SeekingTalent, &a.SeekingDescription,
	)
	if err != nil {
		return nil, err
	}
	if a.Genres, err = decodeGenres(genres); err != nil {
		return nil, err
	}
	return &a, nil
}

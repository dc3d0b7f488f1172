package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/fyyur/fyyur/internal/model"
)

// VenueRepo manages persistence for venues.
type VenueRepo struct {
	db *sql.DB
}

// NewVenueRepo constructs a VenueRepo with the given DB handle.
func NewVenueRepo(db *sql.DB) *VenueRepo {
	return &VenueRepo{db: db}
}

const venueColumns = `id, name, city, state, address, phone, image_link, facebook_link, website_link, genres, seeking_talent, seeking_description`

// Create inserts a new venue and assigns the generated ID back to the
// venue struct.  The caller is expected to have validated required
// fields already; the database enforces NOT NULL as a backstop.
func (r *VenueRepo) Create(ctx context.Context, v *model.Venue) error {
	genres, err := encodeGenres(v.Genres)
	if err != nil {
		return err
	}
	const q = `INSERT INTO venues (name, city, state, address, phone, image_link, facebook_link, website_link, genres, seeking_talent, seeking_description)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q,
		v.Name, v.City, v.State, v.Address, v.Phone,
		v.ImageLink, v.FacebookLink, v.WebsiteLink,
		genres, v.SeekingTalent, v.SeekingDescription,
	)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	v.ID = id
	return nil
}

// GetByID retrieves a venue by its ID.  It returns ErrVenueNotFound if
// there is no matching row.
func (r *VenueRepo) GetByID(ctx context.Context, id int64) (*model.Venue, error) {
	const q = `SELECT ` + venueColumns + ` FROM venues WHERE id = ?`
	v, err := scanVenue(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrVenueNotFound
		}
		return nil, err
	}
	return v, nil
}

// ListAll returns every venue ordered by city, state and id.  The
// explicit ORDER BY keeps the grouped listing deterministic; the
// source-of-truth order within a location group is id ascending.
func (r *VenueRepo) ListAll(ctx context.Context) ([]model.Venue, error) {
	const q = `SELECT ` + venueColumns + ` FROM venues ORDER BY city, state, id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var result []model.Venue
	for rows.Next() {
		v, err := scanVenue(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Update rewrites every mutable column of the venue identified by
// v.ID.  It returns ErrVenueNotFound when no such row exists.  An
// update that changes nothing is still a success.
func (r *VenueRepo) Update(ctx context.Context, v *model.Venue) error {
	genres, err := encodeGenres(v.Genres)
	if err != nil {
		return err
	}
	const q = `UPDATE venues
	           SET name = ?, city = ?, state = ?, address = ?, phone = ?, image_link = ?, facebook_link = ?, website_link = ?, genres = ?, seeking_talent = ?, seeking_description = ?
	           WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q,
		v.Name, v.City, v.State, v.Address, v.Phone,
		v.ImageLink, v.FacebookLink, v.WebsiteLink,
		genres, v.SeekingTalent, v.SeekingDescription,
		v.ID,
	)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n > 0 {
		return nil
	}
	// Zero rows affected means either the row is missing or the values
	// were already identical.  Distinguish the two.
	var one int
	if err := r.db.QueryRowContext(ctx, `SELECT 1 FROM venues WHERE id = ? LIMIT 1`, v.ID).Scan(&one); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrVenueNotFound
		}
		return err
	}
	return nil
}

// Delete removes a venue provided no shows reference it.  The check
// and the delete run in one transaction so a show created concurrently
// cannot be orphaned.  It returns ErrVenueNotFound when the venue does
// not exist and ErrConflict when shows still reference it.
func (r *VenueRepo) Delete(ctx context.Context, id int64) error {
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
	err = tx.QueryRowContext(ctx, `SELECT 1 FROM venues WHERE id = ? LIMIT 1`, id).Scan(&one)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = ErrVenueNotFound
		}
		return err
	}
	var refs int
	if err = tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM shows WHERE venue_id = ?`, id).Scan(&refs); err != nil {
		return err
	}
	if refs > 0 {
		err = ErrConflict
		return err
	}
	_, err = tx.ExecContext(ctx, `DELETE FROM venues WHERE id = ?`, id)
	return err
}

// CountUpcomingShows returns the number of shows at this venue that
// start after the given instant.
func (r *VenueRepo) CountUpcomingShows(ctx context.Context, id int64, now time.Time) (int, error) {
	const q = `SELECT COUNT(*) FROM shows WHERE venue_id = ? AND start_time > ?`
	var n int
	if err := r.db.QueryRowContext(ctx, q, id, now.UTC()).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanVenue(s scanner) (*model.Venue, error) {
	var v model.Venue
	var genres string
	err := s.Scan(
		&v.ID, &v.Name, &v.City, &v.State, &v.Address, &v.Phone,
		&v.ImageLink, &v.FacebookLink, &v.WebsiteLink,
		&genres, &v.SeekingTalent, &v.SeekingDescription,
	)
	if err != nil {
		return nil, err
	}
	if v.Genres, err = decodeGenres(genres); err != nil {
		return nil, err
	}
	return &v, nil
}

package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/fyyur/fyyur/internal/model"
)

// ShowRepo manages persistence for shows.  Show creation verifies both
// foreign keys inside the insert transaction so a show can never be
// committed against a missing artist or venue, even if the submission
// races a delete.
type ShowRepo struct {
	db *sql.DB
}

// NewShowRepo constructs a ShowRepo with the given DB handle.
func NewShowRepo(db *sql.DB) *ShowRepo {
	return &ShowRepo{db: db}
}

// Create inserts a new show after verifying that the referenced artist
// and venue exist.  It returns ErrArtistNotFound or ErrVenueNotFound
// when a reference does not resolve; in that case nothing is written.
func (r *ShowRepo) Create(ctx context.Context, s *model.Show) error {
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
	err = tx.QueryRowContext(ctx, `SELECT 1 FROM artists WHERE id = ? LIMIT 1`, s.ArtistID).Scan(&one)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = ErrArtistNotFound
		}
		return err
	}
	err = tx.QueryRowContext(ctx, `SELECT 1 FROM venues WHERE id = ? LIMIT 1`, s.VenueID).Scan(&one)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = ErrVenueNotFound
		}
		return err
	}
	var res sql.Result
	res, err = tx.ExecContext(ctx,
		`INSERT INTO shows (artist_id, venue_id, start_time) VALUES (?, ?, ?)`,
		s.ArtistID, s.VenueID, s.StartTime.UTC(),
	)
	if err != nil {
		return err
	}
	var id int64
	id, err = res.LastInsertId()
	if err != nil {
		return err
	}
	s.ID = id
	return nil
}

// GetByID retrieves a show by its ID.  It returns ErrShowNotFound if
// there is no matching row.
func (r *ShowRepo) GetByID(ctx context.Context, id int64) (*model.Show, error) {
	const q = `SELECT id, artist_id, venue_id, start_time FROM shows WHERE id = ?`
	var s model.Show
	err := r.db.QueryRowContext(ctx, q, id).Scan(&s.ID, &s.ArtistID, &s.VenueID, &s.StartTime)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrShowNotFound
		}
		return nil, err
	}
	return &s, nil
}

// ListAll returns every show ordered by start time ascending, id as a
// tiebreaker.
func (r *ShowRepo) ListAll(ctx context.Context) ([]model.Show, error) {
	const q = `SELECT id, artist_id, venue_id, start_time FROM shows ORDER BY start_time, id`
	return r.list(ctx, q)
}

// ListByVenue returns every show hosted at the given venue ordered by
// start time ascending.
func (r *ShowRepo) ListByVenue(ctx context.Context, venueID int64) ([]model.Show, error) {
	const q = `SELECT id, artist_id, venue_id, start_time FROM shows WHERE venue_id = ? ORDER BY start_time, id`
	return r.list(ctx, q, venueID)
}

// ListByArtist returns every show performed by the given artist ordered
// by start time ascending.
func (r *ShowRepo) ListByArtist(ctx context.Context, artistID int64) ([]model.Show, error) {
	const q = `SELECT id, artist_id, venue_id, start_time FROM shows WHERE artist_id = ? ORDER BY start_time, id`
	return r.list(ctx, q, artistID)
}

func (r *ShowRepo) list(ctx context.Context, q string, args ...any) ([]model.Show, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var result []model.Show
	for rows.Next() {
		var s model.Show
		if err := rows.Scan(&s.ID, &s.ArtistID, &s.VenueID, &s.StartTime); err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

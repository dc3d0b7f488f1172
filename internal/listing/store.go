// Package listing implements the query, aggregation and form-intake
// core of the application: it builds the read-models the HTML pages
// consume and drives create/update/delete operations against a
// pluggable store.  The MySQL repositories satisfy the store
// interfaces in production; an in-memory store backs tests and the
// STORE=memory development mode.
package listing

import (
	"context"
	"time"

	"github.com/fyyur/fyyur/internal/model"
	"github.com/fyyur/fyyur/internal/repository"
)

// The MySQL repositories must satisfy the store contracts.
var (
	_ VenueStore  = (*repository.VenueRepo)(nil)
	_ ArtistStore = (*repository.ArtistRepo)(nil)
	_ ShowStore   = (*repository.ShowRepo)(nil)
)

// VenueStore is the persistence contract for venues.
type VenueStore interface {
	Create(ctx context.Context, v *model.Venue) error
	GetByID(ctx context.Context, id int64) (*model.Venue, error)
	ListAll(ctx context.Context) ([]model.Venue, error)
	Update(ctx context.Context, v *model.Venue) error
	Delete(ctx context.Context, id int64) error
	CountUpcomingShows(ctx context.Context, id int64, now time.Time) (int, error)
}

// ArtistStore is the persistence contract for artists.
type ArtistStore interface {
	Create(ctx context.Context, a *model.Artist) error
	GetByID(ctx context.Context, id int64) (*model.Artist, error)
	ListAll(ctx context.Context) ([]model.Artist, error)
	Update(ctx context.Context, a *model.Artist) error
	Delete(ctx context.Context, id int64) error
	CountUpcomingShows(ctx context.Context, id int64, now time.Time) (int, error)
}

// ShowStore is the persistence contract for shows.  Create must verify
// both foreign keys and refuse to write a show whose artist or venue
// does not exist.
type ShowStore interface {
	Create(ctx context.Context, s *model.Show) error
	GetByID(ctx context.Context, id int64) (*model.Show, error)
	ListAll(ctx context.Context) ([]model.Show, error)
	ListByVenue(ctx context.Context, venueID int64) ([]model.Show, error)
	ListByArtist(ctx context.Context, artistID int64) ([]model.Show, error)
}

package listing

import (
	"time"

	"github.com/fyyur/fyyur/internal/model"
)

// Area groups the venues of one (city, state) location.  Areas are
// ordered by city then state; venues within an area by id ascending.
type Area struct {
	City   string
	State  string
	Venues []VenueSummary
}

// VenueSummary is the per-venue line of the grouped listing.
type VenueSummary struct {
	ID            int64
	Name          string
	UpcomingShows int
}

// ArtistSummary is the per-artist line of the artists index.
type ArtistSummary struct {
	ID   int64
	Name string
}

// SearchResults carries the outcome of a name search over venues or
// artists: the number of matches and one hit per matching entity, in
// id-ascending order.
type SearchResults struct {
	Count int
	Data  []SearchHit
}

// SearchHit is one matching entity with its upcoming show count.
type SearchHit struct {
	ID            int64
	Name          string
	UpcomingShows int
}

// ShowRow is one line of the joined shows listing.  Both foreign keys
// are resolved to names so the page can render clickable rows.
type ShowRow struct {
	ID              int64
	VenueID         int64
	VenueName       string
	ArtistID        int64
	ArtistName      string
	ArtistImageLink string
	StartTime       time.Time
}

// VenueShow is a show attached to a venue page, resolved to the
// performing artist.
type VenueShow struct {
	ArtistID        int64
	ArtistName      string
	ArtistImageLink string
	StartTime       time.Time
}

// ArtistShow is a show attached to an artist page, resolved to the
// hosting venue.
type ArtistShow struct {
	VenueID        int64
	VenueName      string
	VenueImageLink string
	StartTime      time.Time
}

// VenueDetail is the read-model for the single venue page.
type VenueDetail struct {
	Venue              model.Venue
	PastShows          []VenueShow
	UpcomingShows      []VenueShow
	PastShowsCount     int
	UpcomingShowsCount int
}

// ArtistDetail is the read-model for the single artist page.
type ArtistDetail struct {
	Artist             model.Artist
	PastShows          []ArtistShow
	UpcomingShows      []ArtistShow
	PastShowsCount     int
	UpcomingShowsCount int
}

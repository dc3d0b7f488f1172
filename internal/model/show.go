package model

import "time"

// Show binds one artist to one venue at a start time.  Both foreign
// keys must reference existing rows; the repository enforces this at
// creation time.  Shows have no edit or delete path of their own, but
// they block deletion of the venue and artist they reference.
//
// Fields:
//  ID        – primary key identifier.
//  ArtistID  – artist performing the show.
//  VenueID   – venue hosting the show.
//  StartTime – when the show begins (UTC).
type Show struct {
	ID        int64     // shows.id
	ArtistID  int64     // shows.artist_id
	VenueID   int64     // shows.venue_id
	StartTime time.Time // shows.start_time
}

// Upcoming reports whether the show starts after the given instant.
// Listing pages and search results count shows through this single
// definition so the upcoming/past split is consistent everywhere.
func (s Show) Upcoming(now time.Time) bool {
	return s.StartTime.After(now)
}

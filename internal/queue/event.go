// Package queue defines message payloads exchanged over the message broker.
package queue

// ListingCreatedEvent is published when a venue, artist or show is
// successfully created.  It carries enough information for downstream
// consumers to log or notify without querying the primary database.
type ListingCreatedEvent struct {
	Kind      string `json:"kind"` // "venue", "artist" or "show"
	ID        int64  `json:"id"`
	Name      string `json:"name,omitempty"` // entity name; empty for shows
	City      string `json:"city,omitempty"`
	State     string `json:"state,omitempty"`
	ArtistID  int64  `json:"artist_id,omitempty"` // set for shows
	VenueID   int64  `json:"venue_id,omitempty"`  // set for shows
	StartTime string `json:"start_time,omitempty"`
	CreatedAt string `json:"created_at"`
}

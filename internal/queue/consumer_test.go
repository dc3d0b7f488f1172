package queue

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormatEventLineVenue(t *testing.T) {
	line := FormatEventLine(ListingCreatedEvent{
		Kind:      "venue",
		ID:        3,
		Name:      "The Musical Hop",
		City:      "San Francisco",
		State:     "CA",
		CreatedAt: "2035-06-15T20:00:00Z",
	})
	require.Equal(t,
		"[2035-06-15T20:00:00Z] venue listed | id=3 | name=\"The Musical Hop\" | location=\"San Francisco, CA\"\n",
		line)
}

func TestFormatEventLineShow(t *testing.T) {
	line := FormatEventLine(ListingCreatedEvent{
		Kind:      "show",
		ID:        7,
		ArtistID:  4,
		VenueID:   1,
		StartTime: "2035-06-15T20:00:00Z",
		CreatedAt: "2035-06-14T09:30:00Z",
	})
	require.Equal(t,
		"[2035-06-14T09:30:00Z] Show listed | show_id=7 | artist_id=4 | venue_id=1 | starts=2035-06-15T20:00:00Z\n",
		line)
}

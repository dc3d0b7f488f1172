package model

// Venue represents a place that hosts shows.  A venue can have many
// shows booked against it.  This struct corresponds to a row in the
// `venues` table; the genres list is stored as a JSON array so that
// the order chosen on the submission form survives a round trip.
//
// Fields:
//  ID                 – primary key identifier.
//  Name               – display name of the venue.
//  City, State        – location used for the grouped listing.
//  Address            – street address.
//  Phone              – contact phone number.
//  ImageLink          – URL of the venue image.
//  FacebookLink       – URL of the venue's Facebook page.
//  WebsiteLink        – optional URL of the venue's own site.
//  Genres             – ordered list of genres the venue books.
//  SeekingTalent      – whether the venue is currently looking for artists.
//  SeekingDescription – optional blurb shown when seeking talent.
type Venue struct {
	ID                 int64    // venues.id
	Name               string   // venues.name
	City               string   // venues.city
	State              string   // venues.state
	Address            string   // venues.address
	Phone              string   // venues.phone
	ImageLink          string   // venues.image_link
	FacebookLink       string   // venues.facebook_link
	WebsiteLink        string   // venues.website_link (optional)
	Genres             []string // venues.genres (JSON array, order preserved)
	SeekingTalent      bool     // venues.seeking_talent
	SeekingDescription string   // venues.seeking_description (optional)
}

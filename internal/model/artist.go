package model

// Artist represents a performer that can be booked for shows.  This
// struct corresponds to a row in the `artists` table.  Artists carry
// the same listing attributes as venues minus the street address.
type Artist struct {
	ID                 int64    // artists.id
	Name               string   // artists.name
	City               string   // artists.city
	State              string   // artists.state
	Phone              string   // artists.phone
	ImageLink          string   // artists.image_link
	FacebookLink       string   // artists.facebook_link
	WebsiteLink        string   // artists.website_link (optional)
	Genres             []string // artists.genres (JSON array, order preserved)
	SeekingTalent      bool     // artists.seeking_talent
	SeekingDescription string   // artists.seeking_description (optional)
}

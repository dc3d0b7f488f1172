package listing

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// ValidationError reports the form fields that were missing or could
// not be parsed.  It is returned before any store call is made, so a
// validation failure never leaves partial state behind.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid form submission: %s", strings.Join(e.Fields, ", "))
}

// VenueForm holds the decoded fields of a venue create/edit submission.
type VenueForm struct {
	Name               string
	City               string
	State              string
	Address            string
	Phone              string
	ImageLink          string
	FacebookLink       string
	WebsiteLink        string
	Genres             []string
	SeekingTalent      bool
	SeekingDescription string
}

// ParseVenueForm decodes a venue submission.  All required fields must
// be present and non-blank; website_link, genres and the seeking pair
// are optional.  seeking_talent follows the checkbox convention: key
// present means true, key absent means false.
func ParseVenueForm(values url.Values) (*VenueForm, error) {
	f := &VenueForm{
		Name:               strings.TrimSpace(values.Get("name")),
		City:               strings.TrimSpace(values.Get("city")),
		State:              strings.TrimSpace(values.Get("state")),
		Address:            strings.TrimSpace(values.Get("address")),
		Phone:              strings.TrimSpace(values.Get("phone")),
		ImageLink:          strings.TrimSpace(values.Get("image_link")),
		FacebookLink:       strings.TrimSpace(values.Get("facebook_link")),
		WebsiteLink:        strings.TrimSpace(values.Get("website_link")),
		Genres:             values["genres"],
		SeekingTalent:      values.Has("seeking_talent"),
		SeekingDescription: strings.TrimSpace(values.Get("seeking_description")),
	}
	var missing []string
	for _, rf := range []struct{ name, value string }{
		{"name", f.Name},
		{"city", f.City},
		{"state", f.State},
		{"address", f.Address},
		{"phone", f.Phone},
		{"image_link", f.ImageLink},
		{"facebook_link", f.FacebookLink},
	} {
		if rf.value == "" {
			missing = append(missing, rf.name)
		}
	}
	if len(missing) > 0 {
		return nil, &ValidationError{Fields: missing}
	}
	return f, nil
}

// ArtistForm holds the decoded fields of an artist create/edit
// submission.  Artists have no street address; everything else matches
// VenueForm.
type ArtistForm struct {
	Name               string
	City               string
	State              string
	Phone              string
	ImageLink          string
	FacebookLink       string
	WebsiteLink        string
	Genres             []string
	SeekingTalent      bool
	SeekingDescription string
}

// ParseArtistForm decodes an artist submission with the same rules as
// ParseVenueForm.
func ParseArtistForm(values url.Values) (*ArtistForm, error) {
	f := &ArtistForm{
		Name:               strings.TrimSpace(values.Get("name")),
		City:               strings.TrimSpace(values.Get("city")),
		State:              strings.TrimSpace(values.Get("state")),
		Phone:              strings.TrimSpace(values.Get("phone")),
		ImageLink:          strings.TrimSpace(values.Get("image_link")),
		FacebookLink:       strings.TrimSpace(values.Get("facebook_link")),
		WebsiteLink:        strings.TrimSpace(values.Get("website_link")),
		Genres:             values["genres"],
		SeekingTalent:      values.Has("seeking_talent"),
		SeekingDescription: strings.TrimSpace(values.Get("seeking_description")),
	}
	var missing []string
	for _, rf := range []struct{ name, value string }{
		{"name", f.Name},
		{"city", f.City},
		{"state", f.State},
		{"phone", f.Phone},
		{"image_link", f.ImageLink},
		{"facebook_link", f.FacebookLink},
	} {
		if rf.value == "" {
			missing = append(missing, rf.name)
		}
	}
	if len(missing) > 0 {
		return nil, &ValidationError{Fields: missing}
	}
	return f, nil
}

// ShowForm holds the decoded fields of a show create submission.
type ShowForm struct {
	ArtistID  int64
	VenueID   int64
	StartTime time.Time
}

// startTimeLayouts are the accepted formats for the start_time field:
// the form placeholder format, the HTML datetime-local format (with
// and without seconds) and RFC 3339.
var startTimeLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	time.RFC3339,
}

// ParseShowForm decodes a show submission.  Both ids must be positive
// integers and the start time must parse under one of the accepted
// layouts; anything else is a validation error.
func ParseShowForm(values url.Values) (*ShowForm, error) {
	var bad []string
	f := &ShowForm{}

	artistID, err := strconv.ParseInt(strings.TrimSpace(values.Get("artist_id")), 10, 64)
	if err != nil || artistID <= 0 {
		bad = append(bad, "artist_id")
	}
	f.ArtistID = artistID

	venueID, err := strconv.ParseInt(strings.TrimSpace(values.Get("venue_id")), 10, 64)
	if err != nil || venueID <= 0 {
		bad = append(bad, "venue_id")
	}
	f.VenueID = venueID

	raw := strings.TrimSpace(values.Get("start_time"))
	if raw == "" {
		bad = append(bad, "start_time")
	} else {
		parsed := false
		for _, layout := range startTimeLayouts {
			if t, err := time.Parse(layout, raw); err == nil {
				f.StartTime = t.UTC()
				parsed = true
				break
			}
		}
		if !parsed {
			bad = append(bad, "start_time")
		}
	}

	if len(bad) > 0 {
		return nil, &ValidationError{Fields: bad}
	}
	return f, nil
}

// Genres is the canonical genre list offered by the create and edit
// forms.  Submissions are not restricted to it; it only feeds the
// multi-select widget.
func Genres() []string {
	return []string{
		"Alternative", "Blues", "Classical", "Country", "Electronic",
		"Folk", "Funk", "Hip-Hop", "Heavy Metal", "Instrumental",
		"Jazz", "Musical Theatre", "Pop", "Punk", "R&B", "Reggae",
		"Rock n Roll", "Soul", "Other",
	}
}

// States is the state-code list offered by the create and edit forms.
func States() []string {
	return []string{
		"AL", "AK", "AZ", "AR", "CA", "CO", "CT", "DE", "DC", "FL",
		"GA", "HI", "ID", "IL", "IN", "IA", "KS", "KY", "LA", "ME",
		"MT", "NE", "NV", "NH", "NJ", "NM", "NY", "NC", "ND", "OH",
		"OK", "OR", "MD", "MA", "MI", "MN", "MS", "MO", "PA", "RI",
		"SC", "SD", "TN", "TX", "UT", "VT", "VA", "WA", "WV", "WI", "WY",
	}
}

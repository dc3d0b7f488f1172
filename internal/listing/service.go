package listing

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/fyyur/fyyur/internal/model"
	"github.com/fyyur/fyyur/internal/repository"
)

// ErrReferential indicates that a stored show references an artist or
// venue that no longer resolves.  The foreign-key checks at creation
// time should make this impossible; when it happens anyway the read
// fails loudly instead of silently dropping the row.
var ErrReferential = errors.New("dangling show reference")

// Service builds the read-models for every page and drives mutations
// through the store interfaces.  It holds no per-request state; each
// operation acquires whatever transactional scope it needs from the
// store and releases it on every exit path.
type Service struct {
	venues  VenueStore
	artists ArtistStore
	shows   ShowStore
	log     *zap.Logger
	now     func() time.Time
}

// NewService constructs a Service over the given stores.
func NewService(venues VenueStore, artists ArtistStore, shows ShowStore, log *zap.Logger) *Service {
	return &Service{
		venues:  venues,
		artists: artists,
		shows:   shows,
		log:     log,
		now:     time.Now,
	}
}

// VenueAreas partitions all venues by (city, state).  Areas are
// returned ordered by city then state, venues within an area by id
// ascending, so two renders of an unchanged database produce the same
// page.
func (s *Service) VenueAreas(ctx context.Context) ([]Area, error) {
	venues, err := s.venues.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	now := s.now()
	index := make(map[[2]string]int)
	var areas []Area
	for _, v := range venues {
		count, err := s.venues.CountUpcomingShows(ctx, v.ID, now)
		if err != nil {
			return nil, err
		}
		key := [2]string{v.City, v.State}
		i, ok := index[key]
		if !ok {
			i = len(areas)
			index[key] = i
			areas = append(areas, Area{City: v.City, State: v.State})
		}
		areas[i].Venues = append(areas[i].Venues, VenueSummary{
			ID:            v.ID,
			Name:          v.Name,
			UpcomingShows: count,
		})
	}
	sort.SliceStable(areas, func(i, j int) bool {
		if areas[i].City != areas[j].City {
			return areas[i].City < areas[j].City
		}
		return areas[i].State < areas[j].State
	})
	for i := range areas {
		vs := areas[i].Venues
		sort.Slice(vs, func(a, b int) bool { return vs[a].ID < vs[b].ID })
	}
	return areas, nil
}

// SearchVenues returns every venue whose name contains the term under
// case-insensitive comparison, with its upcoming show count.  An empty
// term matches everything.  Hits come back in id-ascending order.
func (s *Service) SearchVenues(ctx context.Context, term string) (*SearchResults, error) {
	venues, err := s.venues.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	now := s.now()
	needle := strings.ToLower(term)
	results := &SearchResults{Data: []SearchHit{}}
	for _, v := range venues {
		if !strings.Contains(strings.ToLower(v.Name), needle) {
			continue
		}
		count, err := s.venues.CountUpcomingShows(ctx, v.ID, now)
		if err != nil {
			return nil, err
		}
		results.Data = append(results.Data, SearchHit{ID: v.ID, Name: v.Name, UpcomingShows: count})
	}
	sort.Slice(results.Data, func(i, j int) bool { return results.Data[i].ID < results.Data[j].ID })
	results.Count = len(results.Data)
	return results, nil
}

// SearchArtists is SearchVenues over artist names.
func (s *Service) SearchArtists(ctx context.Context, term string) (*SearchResults, error) {
	artists, err := s.artists.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	now := s.now()
	needle := strings.ToLower(term)
	results := &SearchResults{Data: []SearchHit{}}
	for _, a := range artists {
		if !strings.Contains(strings.ToLower(a.Name), needle) {
			continue
		}
		count, err := s.artists.CountUpcomingShows(ctx, a.ID, now)
		if err != nil {
			return nil, err
		}
		results.Data = append(results.Data, SearchHit{ID: a.ID, Name: a.Name, UpcomingShows: count})
	}
	sort.Slice(results.Data, func(i, j int) bool { return results.Data[i].ID < results.Data[j].ID })
	results.Count = len(results.Data)
	return results, nil
}

// VenueDetail loads one venue with its shows split into past and
// upcoming, each resolved to the performing artist.
func (s *Service) VenueDetail(ctx context.Context, id int64) (*VenueDetail, error) {
	venue, err := s.venues.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	shows, err := s.shows.ListByVenue(ctx, id)
	if err != nil {
		return nil, err
	}
	now := s.now()
	detail := &VenueDetail{Venue: *venue, PastShows: []VenueShow{}, UpcomingShows: []VenueShow{}}
	for _, sh := range shows {
		artist, err := s.artists.GetByID(ctx, sh.ArtistID)
		if err != nil {
			return nil, s.danglingShow(err, sh)
		}
		row := VenueShow{
			ArtistID:        artist.ID,
			ArtistName:      artist.Name,
			ArtistImageLink: artist.ImageLink,
			StartTime:       sh.StartTime,
		}
		if sh.Upcoming(now) {
			detail.UpcomingShows = append(detail.UpcomingShows, row)
		} else {
			detail.PastShows = append(detail.PastShows, row)
		}
	}
	detail.PastShowsCount = len(detail.PastShows)
	detail.UpcomingShowsCount = len(detail.UpcomingShows)
	return detail, nil
}

// ArtistDetail loads one artist with its shows split into past and
// upcoming, each resolved to the hosting venue.
func (s *Service) ArtistDetail(ctx context.Context, id int64) (*ArtistDetail, error) {
	artist, err := s.artists.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	shows, err := s.shows.ListByArtist(ctx, id)
	if err != nil {
		return nil, err
	}
	now := s.now()
	detail := &ArtistDetail{Artist: *artist, PastShows: []ArtistShow{}, UpcomingShows: []ArtistShow{}}
	for _, sh := range shows {
		venue, err := s.venues.GetByID(ctx, sh.VenueID)
		if err != nil {
			return nil, s.danglingShow(err, sh)
		}
		row := ArtistShow{
			VenueID:        venue.ID,
			VenueName:      venue.Name,
			VenueImageLink: venue.ImageLink,
			StartTime:      sh.StartTime,
		}
		if sh.Upcoming(now) {
			detail.UpcomingShows = append(detail.UpcomingShows, row)
		} else {
			detail.PastShows = append(detail.PastShows, row)
		}
	}
	detail.PastShowsCount = len(detail.PastShows)
	detail.UpcomingShowsCount = len(detail.UpcomingShows)
	return detail, nil
}

// Artists returns the id/name index of all artists.
func (s *Service) Artists(ctx context.Context) ([]ArtistSummary, error) {
	artists, err := s.artists.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]ArtistSummary, 0, len(artists))
	for _, a := range artists {
		result = append(result, ArtistSummary{ID: a.ID, Name: a.Name})
	}
	return result, nil
}

// Shows returns the joined listing of every show, ordered by start
// time.  A show whose artist or venue no longer resolves fails the
// whole listing with ErrReferential.
func (s *Service) Shows(ctx context.Context) ([]ShowRow, error) {
	shows, err := s.shows.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	rows := make([]ShowRow, 0, len(shows))
	for _, sh := range shows {
		venue, err := s.venues.GetByID(ctx, sh.VenueID)
		if err != nil {
			return nil, s.danglingShow(err, sh)
		}
		artist, err := s.artists.GetByID(ctx, sh.ArtistID)
		if err != nil {
			return nil, s.danglingShow(err, sh)
		}
		rows = append(rows, ShowRow{
			ID:              sh.ID,
			VenueID:         venue.ID,
			VenueName:       venue.Name,
			ArtistID:        artist.ID,
			ArtistName:      artist.Name,
			ArtistImageLink: artist.ImageLink,
			StartTime:       sh.StartTime,
		})
	}
	return rows, nil
}

// CreateVenue validates the form and inserts a new venue, returning it
// with the assigned id.
func (s *Service) CreateVenue(ctx context.Context, f *VenueForm) (*model.Venue, error) {
	v := &model.Venue{
		Name:               f.Name,
		City:               f.City,
		State:              f.State,
		Address:            f.Address,
		Phone:              f.Phone,
		ImageLink:          f.ImageLink,
		FacebookLink:       f.FacebookLink,
		WebsiteLink:        f.WebsiteLink,
		Genres:             f.Genres,
		SeekingTalent:      f.SeekingTalent,
		SeekingDescription: f.SeekingDescription,
	}
	if err := s.venues.Create(ctx, v); err != nil {
		s.log.Error("venue create failed", zap.String("name", f.Name), zap.Error(err))
		return nil, err
	}
	s.log.Info("venue created", zap.Int64("venue_id", v.ID), zap.String("name", v.Name))
	return v, nil
}

// UpdateVenue applies the form to an existing venue.
func (s *Service) UpdateVenue(ctx context.Context, id int64, f *VenueForm) (*model.Venue, error) {
	v, err := s.venues.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	v.Name = f.Name
	v.City = f.City
	v.State = f.State
	v.Address = f.Address
	v.Phone = f.Phone
	v.ImageLink = f.ImageLink
	v.FacebookLink = f.FacebookLink
	v.WebsiteLink = f.WebsiteLink
	v.Genres = f.Genres
	v.SeekingTalent = f.SeekingTalent
	v.SeekingDescription = f.SeekingDescription
	if err := s.venues.Update(ctx, v); err != nil {
		s.log.Error("venue update failed", zap.Int64("venue_id", id), zap.Error(err))
		return nil, err
	}
	return v, nil
}

// DeleteVenue removes a venue.  Deletion is rejected with ErrConflict
// from the store while shows still reference the venue.
func (s *Service) DeleteVenue(ctx context.Context, id int64) error {
	if err := s.venues.Delete(ctx, id); err != nil {
		s.log.Warn("venue delete failed", zap.Int64("venue_id", id), zap.Error(err))
		return err
	}
	s.log.Info("venue deleted", zap.Int64("venue_id", id))
	return nil
}

// CreateArtist validates the form and inserts a new artist, returning
// it with the assigned id.
func (s *Service) CreateArtist(ctx context.Context, f *ArtistForm) (*model.Artist, error) {
	a := &model.Artist{
		Name:               f.Name,
		City:               f.City,
		State:              f.State,
		Phone:              f.Phone,
		ImageLink:          f.ImageLink,
		FacebookLink:       f.FacebookLink,
		WebsiteLink:        f.WebsiteLink,
		Genres:             f.Genres,
		SeekingTalent:      f.SeekingTalent,
		SeekingDescription: f.SeekingDescription,
	}
	if err := s.artists.Create(ctx, a); err != nil {
		s.log.Error("artist create failed", zap.String("name", f.Name), zap.Error(err))
		return nil, err
	}
	s.log.Info("artist created", zap.Int64("artist_id", a.ID), zap.String("name", a.Name))
	return a, nil
}

// UpdateArtist applies the form to an existing artist.
func (s *Service) UpdateArtist(ctx context.Context, id int64, f *ArtistForm) (*model.Artist, error) {
	a, err := s.artists.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	a.Name = f.Name
	a.City = f.City
	a.State = f.State
	a.Phone = f.Phone
	a.ImageLink = f.ImageLink
	a.FacebookLink = f.FacebookLink
	a.WebsiteLink = f.WebsiteLink
	a.Genres = f.Genres
	a.SeekingTalent = f.SeekingTalent
	a.SeekingDescription = f.SeekingDescription
	if err := s.artists.Update(ctx, a); err != nil {
		s.log.Error("artist update failed", zap.Int64("artist_id", id), zap.Error(err))
		return nil, err
	}
	return a, nil
}

// DeleteArtist removes an artist.  Deletion is rejected with
// ErrConflict from the store while shows still reference the artist.
func (s *Service) DeleteArtist(ctx context.Context, id int64) error {
	if err := s.artists.Delete(ctx, id); err != nil {
		s.log.Warn("artist delete failed", zap.Int64("artist_id", id), zap.Error(err))
		return err
	}
	s.log.Info("artist deleted", zap.Int64("artist_id", id))
	return nil
}

// CreateShow inserts a new show.  The store rejects the insert when
// either foreign key does not resolve, so a failed submission never
// persists a show.
func (s *Service) CreateShow(ctx context.Context, f *ShowForm) (*model.Show, error) {
	sh := &model.Show{
		ArtistID:  f.ArtistID,
		VenueID:   f.VenueID,
		StartTime: f.StartTime,
	}
	if err := s.shows.Create(ctx, sh); err != nil {
		s.log.Error("show create failed",
			zap.Int64("artist_id", f.ArtistID),
			zap.Int64("venue_id", f.VenueID),
			zap.Error(err))
		return nil, err
	}
	s.log.Info("show created",
		zap.Int64("show_id", sh.ID),
		zap.Int64("artist_id", sh.ArtistID),
		zap.Int64("venue_id", sh.VenueID))
	return sh, nil
}

// danglingShow converts a not-found error during show resolution into
// ErrReferential.  Any other store failure passes through unchanged.
func (s *Service) danglingShow(err error, sh model.Show) error {
	if !errors.Is(err, repository.ErrArtistNotFound) && !errors.Is(err, repository.ErrVenueNotFound) {
		return err
	}
	s.log.Error("show references missing row",
		zap.Int64("show_id", sh.ID),
		zap.Int64("artist_id", sh.ArtistID),
		zap.Int64("venue_id", sh.VenueID),
		zap.Error(err))
	return fmt.Errorf("%w: show %d: %v", ErrReferential, sh.ID, err)
}

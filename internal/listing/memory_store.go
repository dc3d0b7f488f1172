package listing

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/fyyur/fyyur/internal/model"
	"github.com/fyyur/fyyur/internal/repository"
)

// MemoryStore keeps all three tables in process memory behind one
// mutex.  It honors the same contracts as the MySQL repositories,
// including ErrConflict on referenced deletes and the foreign-key
// check on show creation, so it can back tests and the STORE=memory
// development mode interchangeably with the real store.
type MemoryStore struct {
	mu           sync.RWMutex
	venues       map[int64]model.Venue
	artists      map[int64]model.Artist
	shows        map[int64]model.Show
	nextVenueID  int64
	nextArtistID int64
	nextShowID   int64
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		venues:       make(map[int64]model.Venue),
		artists:      make(map[int64]model.Artist),
		shows:        make(map[int64]model.Show),
		nextVenueID:  1,
		nextArtistID: 1,
		nextShowID:   1,
	}
}

// VenueStore exposes the venue table view of the store.
func (m *MemoryStore) VenueStore() VenueStore { return memVenues{m} }

// ArtistStore exposes the artist table view of the store.
func (m *MemoryStore) ArtistStore() ArtistStore { return memArtists{m} }

// ShowStore exposes the show table view of the store.
func (m *MemoryStore) ShowStore() ShowStore { return memShows{m} }

type memVenues struct{ *MemoryStore }

func (m memVenues) Create(ctx context.Context, v *model.Venue) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	v.ID = m.nextVenueID
	m.nextVenueID++
	m.venues[v.ID] = cloneVenue(*v)
	return nil
}

func (m memVenues) GetByID(ctx context.Context, id int64) (*model.Venue, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.venues[id]
	if !ok {
		return nil, repository.ErrVenueNotFound
	}
	v = cloneVenue(v)
	return &v, nil
}

func (m memVenues) ListAll(ctx context.Context) ([]model.Venue, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]model.Venue, 0, len(m.venues))
	for _, v := range m.venues {
		result = append(result, cloneVenue(v))
	}
	// Same order as the SQL layer: city, state, id.
	sort.Slice(result, func(i, j int) bool {
		if result[i].City != result[j].City {
			return result[i].City < result[j].City
		}
		if result[i].State != result[j].State {
			return result[i].State < result[j].State
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

func (m memVenues) Update(ctx context.Context, v *model.Venue) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.venues[v.ID]; !ok {
		return repository.ErrVenueNotFound
	}
	m.venues[v.ID] = cloneVenue(*v)
	return nil
}

func (m memVenues) Delete(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.venues[id]; !ok {
		return repository.ErrVenueNotFound
	}
	for _, s := range m.shows {
		if s.VenueID == id {
			return repository.ErrConflict
		}
	}
	delete(m.venues, id)
	return nil
}

func (m memVenues) CountUpcomingShows(ctx context.Context, id int64, now time.Time) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	n := 0
	for _, s := range m.shows {
		if s.VenueID == id && s.Upcoming(now) {
			n++
		}
	}
	return n, nil
}

type memArtists struct{ *MemoryStore }

func (m memArtists) Create(ctx context.Context, a *model.Artist) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	a.ID = m.nextArtistID
	m.nextArtistID++
	m.artists[a.ID] = cloneArtist(*a)
	return nil
}

func (m memArtists) GetByID(ctx context.Context, id int64) (*model.Artist, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	a, ok := m.artists[id]
	if !ok {
		return nil, repository.ErrArtistNotFound
	}
	a = cloneArtist(a)
	return &a, nil
}

func (m memArtists) ListAll(ctx context.Context) ([]model.Artist, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]model.Artist, 0, len(m.artists))
	for _, a := range m.artists {
		result = append(result, cloneArtist(a))
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m memArtists) Update(ctx context.Context, a *model.Artist) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.artists[a.ID]; !ok {
		return repository.ErrArtistNotFound
	}
	m.artists[a.ID] = cloneArtist(*a)
	return nil
}

func (m memArtists) Delete(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.artists[id]; !ok {
		return repository.ErrArtistNotFound
	}
	for _, s := range m.shows {
		if s.ArtistID == id {
			return repository.ErrConflict
		}
	}
	delete(m.artists, id)
	return nil
}

func (m memArtists) CountUpcomingShows(ctx context.Context, id int64, now time.Time) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	n := 0
	for _, s := range m.shows {
		if s.ArtistID == id && s.Upcoming(now) {
			n++
		}
	}
	return n, nil
}

type memShows struct{ *MemoryStore }

func (m memShows) Create(ctx context.Context, s *model.Show) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.artists[s.ArtistID]; !ok {
		return repository.ErrArtistNotFound
	}
	if _, ok := m.venues[s.VenueID]; !ok {
		return repository.ErrVenueNotFound
	}
	s.ID = m.nextShowID
	m.nextShowID++
	m.shows[s.ID] = *s
	return nil
}

func (m memShows) GetByID(ctx context.Context, id int64) (*model.Show, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.shows[id]
	if !ok {
		return nil, repository.ErrShowNotFound
	}
	return &s, nil
}

func (m memShows) ListAll(ctx context.Context) ([]model.Show, error) {
	return m.listWhere(func(model.Show) bool { return true })
}

func (m memShows) ListByVenue(ctx context.Context, venueID int64) ([]model.Show, error) {
	return m.listWhere(func(s model.Show) bool { return s.VenueID == venueID })
}

func (m memShows) ListByArtist(ctx context.Context, artistID int64) ([]model.Show, error) {
	return m.listWhere(func(s model.Show) bool { return s.ArtistID == artistID })
}

func (m memShows) listWhere(keep func(model.Show) bool) ([]model.Show, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []model.Show
	for _, s := range m.shows {
		if keep(s) {
			result = append(result, s)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].StartTime.Equal(result[j].StartTime) {
			return result[i].StartTime.Before(result[j].StartTime)
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

// cloneVenue copies the genres slice so callers cannot mutate stored
// rows through a shared backing array.
func cloneVenue(v model.Venue) model.Venue {
	v.Genres = append([]string(nil), v.Genres...)
	return v
}

func cloneArtist(a model.Artist) model.Artist {
	a.Genres = append([]string(nil), a.Genres...)
	return a
}

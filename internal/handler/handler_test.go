package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/fyyur/fyyur/internal/handler"
	"github.com/fyyur/fyyur/internal/listing"
	"github.com/fyyur/fyyur/internal/router"
	"github.com/fyyur/fyyur/internal/view"
)

func newTestServer(t *testing.T) (*echo.Echo, *listing.Service) {
	t.Helper()
	mem := listing.NewMemoryStore()
	svc := listing.NewService(mem.VenueStore(), mem.ArtistStore(), mem.ShowStore(), zap.NewNop())
	h := handler.New(svc, zap.NewNop(), "")

	renderer, err := view.New()
	require.NoError(t, err)

	e := echo.New()
	e.Renderer = renderer
	e.HTTPErrorHandler = handler.NewHTTPErrorHandler(zap.NewNop())
	router.RegisterRoutes(e, h)
	router.RegisterVenues(e, h)
	router.RegisterArtists(e, h)
	router.RegisterShows(e, h)
	return e, svc
}

func postForm(e *echo.Echo, path string, values url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	w := httptest.NewRecorder()
	e.ServeHTTP(w, req)
	return w
}

func get(e *echo.Echo, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	e.ServeHTTP(w, req)
	return w
}

func venueValues(name string) url.Values {
	return url.Values{
		"name":          {name},
		"city":          {"San Francisco"},
		"state":         {"CA"},
		"address":       {"1015 Folsom Street"},
		"phone":         {"123-123-1234"},
		"genres":        {"Jazz", "Reggae"},
		"image_link":    {"https://example.com/venue.jpg"},
		"facebook_link": {"https://facebook.com/venue"},
	}
}

func artistValues(name string) url.Values {
	return url.Values{
		"name":          {name},
		"city":          {"San Francisco"},
		"state":         {"CA"},
		"phone":         {"326-123-5000"},
		"image_link":    {"https://example.com/artist.jpg"},
		"facebook_link": {"https://facebook.com/artist"},
	}
}

func flashOf(w *httptest.ResponseRecorder) string {
	for _, ck := range w.Result().Cookies() {
		if ck.Name == "fyyur_flash" {
			msg, _ := url.QueryUnescape(ck.Value)
			return msg
		}
	}
	return ""
}

func TestHealth(t *testing.T) {
	e, _ := newTestServer(t)
	w := get(e, "/healthz")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "ok", w.Body.String())
}

func TestCreateVenueSuccess(t *testing.T) {
	e, svc := newTestServer(t)

	w := postForm(e, "/venues/create", venueValues("The Musical Hop"))
	require.Equal(t, http.StatusSeeOther, w.Code)
	require.Equal(t, "/", w.Header().Get(echo.HeaderLocation))
	require.Equal(t, "Venue The Musical Hop was successfully listed!", flashOf(w))

	res, err := svc.SearchVenues(context.Background(), "musical hop")
	require.NoError(t, err)
	require.Equal(t, 1, res.Count)
}

func TestCreateVenueMissingNameInsertsNothing(t *testing.T) {
	e, svc := newTestServer(t)

	values := venueValues("")
	w := postForm(e, "/venues/create", values)
	require.Equal(t, http.StatusSeeOther, w.Code)
	require.Equal(t, "/venues/create", w.Header().Get(echo.HeaderLocation))
	require.Contains(t, flashOf(w), "name")

	res, err := svc.SearchVenues(context.Background(), "")
	require.NoError(t, err)
	require.Equal(t, 0, res.Count, "validation failure must not insert a row")
}

func TestEditVenueValidationFlashSaysUpdated(t *testing.T) {
	e, _ := newTestServer(t)
	postForm(e, "/venues/create", venueValues("The Musical Hop"))

	w := postForm(e, "/venues/1/edit", venueValues(""))
	require.Equal(t, http.StatusSeeOther, w.Code)
	require.Equal(t, "/venues/1/edit", w.Header().Get(echo.HeaderLocation))
	flash := flashOf(w)
	require.Contains(t, flash, "could not be updated")
	require.Contains(t, flash, "name")
	require.NotContains(t, flash, "could not be listed")
}

func TestVenuesPageGroupsByLocation(t *testing.T) {
	e, _ := newTestServer(t)
	postForm(e, "/venues/create", venueValues("The Musical Hop"))

	w := get(e, "/venues")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	require.Contains(t, body, "San Francisco, CA")
	require.Contains(t, body, "The Musical Hop")
}

func TestSearchVenuesRoute(t *testing.T) {
	e, _ := newTestServer(t)
	postForm(e, "/venues/create", venueValues("The Musical Hop"))

	w := postForm(e, "/venues/search", url.Values{"search_term": {"hop"}})
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	require.Contains(t, body, "1 result")
	require.Contains(t, body, "The Musical Hop")

	w = postForm(e, "/venues/search", url.Values{"search_term": {"xyz"}})
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "0 results")
}

func TestShowVenueNotFound(t *testing.T) {
	e, _ := newTestServer(t)
	w := get(e, "/venues/999")
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Contains(t, w.Body.String(), "404")
}

func TestDeleteVenue(t *testing.T) {
	e, svc := newTestServer(t)
	postForm(e, "/venues/create", venueValues("The Musical Hop"))

	req := httptest.NewRequest(http.MethodDelete, "/venues/1", nil)
	w := httptest.NewRecorder()
	e.ServeHTTP(w, req)
	require.Equal(t, http.StatusNoContent, w.Code)

	res, err := svc.SearchVenues(context.Background(), "")
	require.NoError(t, err)
	require.Equal(t, 0, res.Count)
}

func TestDeleteVenueWithShowsConflicts(t *testing.T) {
	e, svc := newTestServer(t)
	postForm(e, "/venues/create", venueValues("The Musical Hop"))
	postForm(e, "/artists/create", artistValues("Guns N Petals"))

	start := time.Now().Add(48 * time.Hour).UTC().Format("2006-01-02 15:04:05")
	w := postForm(e, "/shows/create", url.Values{
		"artist_id":  {"1"},
		"venue_id":   {"1"},
		"start_time": {start},
	})
	require.Equal(t, http.StatusSeeOther, w.Code)
	require.Equal(t, "Show was successfully listed!", flashOf(w))

	req := httptest.NewRequest(http.MethodDelete, "/venues/1", nil)
	rw := httptest.NewRecorder()
	e.ServeHTTP(rw, req)
	require.Equal(t, http.StatusConflict, rw.Code)

	// The venue is still there.
	res, err := svc.SearchVenues(context.Background(), "hop")
	require.NoError(t, err)
	require.Equal(t, 1, res.Count)
}

func TestCreateShowDanglingArtistRejected(t *testing.T) {
	e, svc := newTestServer(t)
	postForm(e, "/venues/create", venueValues("The Musical Hop"))

	w := postForm(e, "/shows/create", url.Values{
		"artist_id":  {"42"},
		"venue_id":   {"1"},
		"start_time": {"2035-06-15 20:00:00"},
	})
	require.Equal(t, http.StatusSeeOther, w.Code)
	require.Equal(t, "/shows/create", w.Header().Get(echo.HeaderLocation))
	require.Contains(t, flashOf(w), "could not be listed")

	rows, err := svc.Shows(context.Background())
	require.NoError(t, err)
	require.Empty(t, rows)
}

func TestShowsListingPage(t *testing.T) {
	e, _ := newTestServer(t)
	postForm(e, "/venues/create", venueValues("The Musical Hop"))
	postForm(e, "/artists/create", artistValues("Guns N Petals"))
	postForm(e, "/shows/create", url.Values{
		"artist_id":  {"1"},
		"venue_id":   {"1"},
		"start_time": {"2035-06-15 20:00:00"},
	})

	w := get(e, "/shows")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	require.Contains(t, body, "The Musical Hop")
	require.Contains(t, body, "Guns N Petals")
	require.Contains(t, body, "Jun 15, 2035")
}

func TestEditArtistFormLoadsStoredValues(t *testing.T) {
	e, _ := newTestServer(t)
	postForm(e, "/artists/create", artistValues("Guns N Petals"))

	w := get(e, "/artists/1/edit")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `value="Guns N Petals"`)

	w = get(e, "/artists/99/edit")
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestEditArtistSubmission(t *testing.T) {
	e, _ := newTestServer(t)
	postForm(e, "/artists/create", artistValues("Guns N Petals"))

	w := postForm(e, "/artists/1/edit", artistValues("Guns N Roses"))
	require.Equal(t, http.StatusSeeOther, w.Code)
	require.Equal(t, "/artists/1", w.Header().Get(echo.HeaderLocation))

	w = get(e, "/artists/1")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "Guns N Roses")
	require.NotContains(t, w.Body.String(), "Guns N Petals")
}

func TestEditVenueSubmission(t *testing.T) {
	e, _ := newTestServer(t)
	postForm(e, "/venues/create", venueValues("Old Name"))

	w := postForm(e, "/venues/1/edit", venueValues("New Name"))
	require.Equal(t, http.StatusSeeOther, w.Code)
	require.Equal(t, "/venues/1", w.Header().Get(echo.HeaderLocation))

	w = get(e, "/venues/1")
	require.Contains(t, w.Body.String(), "New Name")
}

func TestArtistsIndex(t *testing.T) {
	e, _ := newTestServer(t)
	for i, name := range []string{"Guns N Petals", "Matt Quevado", "The Wild Sax Band"} {
		w := postForm(e, "/artists/create", artistValues(name))
		require.Equal(t, http.StatusSeeOther, w.Code, "artist %d", i+1)
	}

	w := get(e, "/artists")
	require.Equal(t, http.StatusOK, w.Code)
	for i, name := range []string{"Guns N Petals", "Matt Quevado", "The Wild Sax Band"} {
		require.Contains(t, w.Body.String(), name)
		require.Contains(t, w.Body.String(), "/artists/"+strconv.Itoa(i+1))
	}
}

func TestSearchArtistsRoute(t *testing.T) {
	e, _ := newTestServer(t)
	for _, name := range []string{"Guns N Petals", "Matt Quevado", "The Wild Sax Band"} {
		postForm(e, "/artists/create", artistValues(name))
	}

	w := postForm(e, "/artists/search", url.Values{"search_term": {"band"}})
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "1 result")
	require.Contains(t, w.Body.String(), "The Wild Sax Band")
}

func TestFlashShownOnceThenCleared(t *testing.T) {
	e, _ := newTestServer(t)
	w := postForm(e, "/venues/create", venueValues("The Musical Hop"))
	flash := flashOf(w)
	require.NotEmpty(t, flash)

	// Follow the redirect carrying the flash cookie.
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "fyyur_flash", Value: url.QueryEscape(flash)})
	rw := httptest.NewRecorder()
	e.ServeHTTP(rw, req)
	require.Equal(t, http.StatusOK, rw.Code)
	require.Contains(t, rw.Body.String(), "successfully listed")

	// The page response clears the cookie.
	for _, ck := range rw.Result().Cookies() {
		if ck.Name == "fyyur_flash" {
			require.Empty(t, ck.Value)
			require.Negative(t, ck.MaxAge)
		}
	}
}

package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fyyur/fyyur/internal/listing"
	"github.com/fyyur/fyyur/internal/metrics"
	"github.com/fyyur/fyyur/internal/queue"
	"github.com/fyyur/fyyur/internal/repository"
)

// Artists handles GET /artists and renders the id/name index.
func (h *Handler) Artists(c echo.Context) error {
	artists, err := h.svc.Artists(c.Request().Context())
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "pages/artists.html", echo.Map{
		"Flash":   takeFlash(c),
		"Artists": artists,
	})
}

// SearchArtists handles POST /artists/search: a case-insensitive
// substring search over artist names.
func (h *Handler) SearchArtists(c echo.Context) error {
	term := c.FormValue("search_term")
	results, err := h.svc.SearchArtists(c.Request().Context(), term)
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "pages/search_artists.html", echo.Map{
		"Flash":      takeFlash(c),
		"SearchTerm": term,
		"Results":    results,
	})
}

// ShowArtist handles GET /artists/:id and renders the artist page with
// its past and upcoming shows.
func (h *Handler) ShowArtist(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	detail, err := h.svc.ArtistDetail(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrArtistNotFound) {
			return echo.ErrNotFound
		}
		return err
	}
	return c.Render(http.StatusOK, "pages/show_artist.html", echo.Map{
		"Flash":  takeFlash(c),
		"Detail": detail,
	})
}

// NewArtistForm handles GET /artists/create and renders the empty form.
func (h *Handler) NewArtistForm(c echo.Context) error {
	return c.Render(http.StatusOK, "forms/new_artist.html", echo.Map{
		"Flash":  takeFlash(c),
		"Genres": listing.Genres(),
		"States": listing.States(),
	})
}

// CreateArtist handles POST /artists/create.
func (h *Handler) CreateArtist(c echo.Context) error {
	values, err := c.FormParams()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed form")
	}
	f, err := listing.ParseArtistForm(values)
	if err != nil {
		var verr *listing.ValidationError
		if errors.As(err, &verr) {
			metrics.ValidationFailures.WithLabelValues("artist").Inc()
			setFlash(c, validationFlash("Artist", "listed", verr))
			return c.Redirect(http.StatusSeeOther, "/artists/create")
		}
		return err
	}
	a, err := h.svc.CreateArtist(c.Request().Context(), f)
	if err != nil {
		metrics.PersistenceFailures.WithLabelValues("artist").Inc()
		setFlash(c, "An error occurred. Artist "+f.Name+" could not be listed.")
		return c.Redirect(http.StatusSeeOther, "/")
	}
	h.publishCreated(queue.ListingCreatedEvent{
		Kind: "artist", ID: a.ID, Name: a.Name, City: a.City, State: a.State,
	})
	setFlash(c, "Artist "+a.Name+" was successfully listed!")
	return c.Redirect(http.StatusSeeOther, "/")
}

// DeleteArtist handles DELETE /artists/:id.  Deletion is rejected with
// 409 while shows still reference the artist.
func (h *Handler) DeleteArtist(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	if err := h.svc.DeleteArtist(c.Request().Context(), id); err != nil {
		switch {
		case errors.Is(err, repository.ErrArtistNotFound):
			return echo.ErrNotFound
		case errors.Is(err, repository.ErrConflict):
			return c.String(http.StatusConflict, "Artist still has shows listed and cannot be deleted.")
		default:
			metrics.PersistenceFailures.WithLabelValues("artist").Inc()
			return err
		}
	}
	setFlash(c, "Artist deleted.")
	return c.NoContent(http.StatusNoContent)
}

// EditArtistForm handles GET /artists/:id/edit.  The form is populated
// from a lookup by id so editing always starts from the stored row.
func (h *Handler) EditArtistForm(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	detail, err := h.svc.ArtistDetail(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrArtistNotFound) {
			return echo.ErrNotFound
		}
		return err
	}
	return c.Render(http.StatusOK, "forms/edit_artist.html", echo.Map{
		"Flash":  takeFlash(c),
		"Artist": detail.Artist,
		"Genres": listing.Genres(),
		"States": listing.States(),
	})
}

// EditArtist handles POST /artists/:id/edit and applies the submitted
// form to the stored artist.
func (h *Handler) EditArtist(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	values, err := c.FormParams()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed form")
	}
	f, err := listing.ParseArtistForm(values)
	if err != nil {
		var verr *listing.ValidationError
		if errors.As(err, &verr) {
			metrics.ValidationFailures.WithLabelValues("artist").Inc()
			setFlash(c, validationFlash("Artist", "updated", verr))
			return c.Redirect(http.StatusSeeOther, "/artists/"+c.Param("id")+"/edit")
		}
		return err
	}
	a, err := h.svc.UpdateArtist(c.Request().Context(), id, f)
	if err != nil {
		if errors.Is(err, repository.ErrArtistNotFound) {
			return echo.ErrNotFound
		}
		metrics.PersistenceFailures.WithLabelValues("artist").Inc()
		setFlash(c, "An error occurred. Artist "+f.Name+" could not be updated.")
		return c.Redirect(http.StatusSeeOther, "/artists/"+c.Param("id")+"/edit")
	}
	setFlash(c, "Artist "+a.Name+" was successfully updated!")
	return c.Redirect(http.StatusSeeOther, "/artists/"+c.Param("id"))
}

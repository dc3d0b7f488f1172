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

// Venues handles GET /venues and renders the listing grouped by
// (city, state).
func (h *Handler) Venues(c echo.Context) error {
	areas, err := h.svc.VenueAreas(c.Request().Context())
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "pages/venues.html", echo.Map{
		"Flash": takeFlash(c),
		"Areas": areas,
	})
}

// SearchVenues handles POST /venues/search: a case-insensitive
// substring search over venue names.
func (h *Handler) SearchVenues(c echo.Context) error {
	term := c.FormValue("search_term")
	results, err := h.svc.SearchVenues(c.Request().Context(), term)
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "pages/search_venues.html", echo.Map{
		"Flash":      takeFlash(c),
		"SearchTerm": term,
		"Results":    results,
	})
}

// ShowVenue handles GET /venues/:id and renders the venue page with
// its past and upcoming shows.
func (h *Handler) ShowVenue(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	detail, err := h.svc.VenueDetail(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrVenueNotFound) {
			return echo.ErrNotFound
		}
		return err
	}
	return c.Render(http.StatusOK, "pages/show_venue.html", echo.Map{
		"Flash":  takeFlash(c),
		"Detail": detail,
	})
}

// NewVenueForm handles GET /venues/create and renders the empty form.
func (h *Handler) NewVenueForm(c echo.Context) error {
	return c.Render(http.StatusOK, "forms/new_venue.html", echo.Map{
		"Flash":  takeFlash(c),
		"Genres": listing.Genres(),
		"States": listing.States(),
	})
}

// CreateVenue handles POST /venues/create.  Validation failures send
// the user back to the form; persistence failures flash the generic
// error; success flashes the listing confirmation and goes home.
func (h *Handler) CreateVenue(c echo.Context) error {
	values, err := c.FormParams()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed form")
	}
	f, err := listing.ParseVenueForm(values)
	if err != nil {
		var verr *listing.ValidationError
		if errors.As(err, &verr) {
			metrics.ValidationFailures.WithLabelValues("venue").Inc()
			setFlash(c, validationFlash("Venue", "listed", verr))
			return c.Redirect(http.StatusSeeOther, "/venues/create")
		}
		return err
	}
	v, err := h.svc.CreateVenue(c.Request().Context(), f)
	if err != nil {
		metrics.PersistenceFailures.WithLabelValues("venue").Inc()
		setFlash(c, "An error occurred. Venue "+f.Name+" could not be listed.")
		return c.Redirect(http.StatusSeeOther, "/")
	}
	h.publishCreated(queue.ListingCreatedEvent{
		Kind: "venue", ID: v.ID, Name: v.Name, City: v.City, State: v.State,
	})
	setFlash(c, "Venue "+v.Name+" was successfully listed!")
	return c.Redirect(http.StatusSeeOther, "/")
}

// DeleteVenue handles DELETE /venues/:id.  Deletion is rejected with
// 409 while shows still reference the venue.
func (h *Handler) DeleteVenue(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	if err := h.svc.DeleteVenue(c.Request().Context(), id); err != nil {
		switch {
		case errors.Is(err, repository.ErrVenueNotFound):
			return echo.ErrNotFound
		case errors.Is(err, repository.ErrConflict):
			return c.String(http.StatusConflict, "Venue still has shows listed and cannot be deleted.")
		default:
			metrics.PersistenceFailures.WithLabelValues("venue").Inc()
			return err
		}
	}
	setFlash(c, "Venue deleted.")
	return c.NoContent(http.StatusNoContent)
}

// EditVenueForm handles GET /venues/:id/edit and renders the form
// pre-filled from the stored venue.
func (h *Handler) EditVenueForm(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	v, err := h.svc.VenueDetail(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrVenueNotFound) {
			return echo.ErrNotFound
		}
		return err
	}
	return c.Render(http.StatusOK, "forms/edit_venue.html", echo.Map{
		"Flash":  takeFlash(c),
		"Venue":  v.Venue,
		"Genres": listing.Genres(),
		"States": listing.States(),
	})
}

// EditVenue handles POST /venues/:id/edit and applies the submitted
// form to the stored venue.
func (h *Handler) EditVenue(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	values, err := c.FormParams()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed form")
	}
	f, err := listing.ParseVenueForm(values)
	if err != nil {
		var verr *listing.ValidationError
		if errors.As(err, &verr) {
			metrics.ValidationFailures.WithLabelValues("venue").Inc()
			setFlash(c, validationFlash("Venue", "updated", verr))
			return c.Redirect(http.StatusSeeOther, "/venues/"+c.Param("id")+"/edit")
		}
		return err
	}
	v, err := h.svc.UpdateVenue(c.Request().Context(), id, f)
	if err != nil {
		if errors.Is(err, repository.ErrVenueNotFound) {
			return echo.ErrNotFound
		}
		metrics.PersistenceFailures.WithLabelValues("venue").Inc()
		setFlash(c, "An error occurred. Venue "+f.Name+" could not be updated.")
		return c.Redirect(http.StatusSeeOther, "/venues/"+c.Param("id")+"/edit")
	}
	setFlash(c, "Venue "+v.Name+" was successfully updated!")
	return c.Redirect(http.StatusSeeOther, "/venues/"+c.Param("id"))
}

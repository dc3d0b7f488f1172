package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/fyyur/fyyur/internal/listing"
	"github.com/fyyur/fyyur/internal/metrics"
	"github.com/fyyur/fyyur/internal/queue"
	"github.com/fyyur/fyyur/internal/repository"
)

// Shows handles GET /shows and renders the joined listing.
func (h *Handler) Shows(c echo.Context) error {
	rows, err := h.svc.Shows(c.Request().Context())
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "pages/shows.html", echo.Map{
		"Flash": takeFlash(c),
		"Shows": rows,
	})
}

// NewShowForm handles GET /shows/create and renders the empty form.
func (h *Handler) NewShowForm(c echo.Context) error {
	return c.Render(http.StatusOK, "forms/new_show.html", echo.Map{
		"Flash": takeFlash(c),
	})
}

// CreateShow handles POST /shows/create.  A show submission naming an
// artist or venue that does not exist is rejected without persisting
// anything.
func (h *Handler) CreateShow(c echo.Context) error {
	values, err := c.FormParams()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed form")
	}
	f, err := listing.ParseShowForm(values)
	if err != nil {
		var verr *listing.ValidationError
		if errors.As(err, &verr) {
			metrics.ValidationFailures.WithLabelValues("show").Inc()
			setFlash(c, validationFlash("Show", "listed", verr))
			return c.Redirect(http.StatusSeeOther, "/shows/create")
		}
		return err
	}
	s, err := h.svc.CreateShow(c.Request().Context(), f)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrArtistNotFound):
			setFlash(c, "An error occurred. Show could not be listed: no artist with that ID.")
			return c.Redirect(http.StatusSeeOther, "/shows/create")
		case errors.Is(err, repository.ErrVenueNotFound):
			setFlash(c, "An error occurred. Show could not be listed: no venue with that ID.")
			return c.Redirect(http.StatusSeeOther, "/shows/create")
		default:
			metrics.PersistenceFailures.WithLabelValues("show").Inc()
			setFlash(c, "An error occurred. Show could not be listed.")
			return c.Redirect(http.StatusSeeOther, "/")
		}
	}
	h.publishCreated(queue.ListingCreatedEvent{
		Kind:      "show",
		ID:        s.ID,
		ArtistID:  s.ArtistID,
		VenueID:   s.VenueID,
		StartTime: s.StartTime.UTC().Format(time.RFC3339),
	})
	setFlash(c, "Show was successfully listed!")
	return c.Redirect(http.StatusSeeOther, "/")
}

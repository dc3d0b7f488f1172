// Package handler contains the HTTP handlers for every page of the
// site.  Handlers decode form input, call the listing service, choose
// a flash message and either render a page or redirect; all shaping of
// page data happens in the listing read-models.
package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/fyyur/fyyur/internal/listing"
	"github.com/fyyur/fyyur/internal/queue"
	queue_publisher "github.com/fyyur/fyyur/internal/service"
)

// Handler carries the dependencies shared by all routes.
type Handler struct {
	svc     *listing.Service
	log     *zap.Logger
	amqpURL string // empty disables listing events
}

// New constructs a Handler over the listing service.
func New(svc *listing.Service, log *zap.Logger, amqpURL string) *Handler {
	return &Handler{svc: svc, log: log, amqpURL: amqpURL}
}

// Health is a simple health-check endpoint used by load balancers to
// verify that the service is running.
func Health(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

// Home handles GET / and renders the landing page.
func (h *Handler) Home(c echo.Context) error {
	return c.Render(http.StatusOK, "pages/home.html", echo.Map{"Flash": takeFlash(c)})
}

// paramID parses the :id route parameter.  A non-numeric id renders
// the 404 page rather than a 400: the URL simply names no resource.
func paramID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.ErrNotFound
	}
	return id, nil
}

// publishCreated fires a listing.created event without blocking the
// request.  Publish failures are logged by the publisher and ignored;
// the row is already committed.
func (h *Handler) publishCreated(ev queue.ListingCreatedEvent) {
	if h.amqpURL == "" {
		return
	}
	ev.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	url := h.amqpURL
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = queue_publisher.PublishListingCreated(ctx, url, ev)
	}()
}

package router // package router defines how HTTP routes are registered for the site

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/fyyur/fyyur/internal/handler"
)

// RegisterRoutes registers the landing page and the operational
// endpoints on the provided Echo instance.
func RegisterRoutes(e *echo.Echo, h *handler.Handler) {
	e.GET("/", h.Home)
	// Health check for load balancers and monitoring systems.
	e.GET("/healthz", handler.Health)
	// Prometheus metrics scrape endpoint.
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
}

// RegisterVenues registers every venue route: the grouped listing,
// search, detail, create, edit and delete.
func RegisterVenues(e *echo.Echo, h *handler.Handler) {
	e.GET("/venues", h.Venues)
	e.POST("/venues/search", h.SearchVenues)
	e.GET("/venues/create", h.NewVenueForm)
	e.POST("/venues/create", h.CreateVenue)
	e.GET("/venues/:id", h.ShowVenue)
	e.DELETE("/venues/:id", h.DeleteVenue)
	e.GET("/venues/:id/edit", h.EditVenueForm)
	e.POST("/venues/:id/edit", h.EditVenue)
}

// RegisterArtists registers every artist route, mirroring the venue
// routes.
func RegisterArtists(e *echo.Echo, h *handler.Handler) {
	e.GET("/artists", h.Artists)
	e.POST("/artists/search", h.SearchArtists)
	e.GET("/artists/create", h.NewArtistForm)
	e.POST("/artists/create", h.CreateArtist)
	e.GET("/artists/:id", h.ShowArtist)
	e.DELETE("/artists/:id", h.DeleteArtist)
	e.GET("/artists/:id/edit", h.EditArtistForm)
	e.POST("/artists/:id/edit", h.EditArtist)
}

// RegisterShows registers the joined shows listing and the create
// form.  Shows have no edit or delete routes.
func RegisterShows(e *echo.Echo, h *handler.Handler) {
	e.GET("/shows", h.Shows)
	e.GET("/shows/create", h.NewShowForm)
	e.POST("/shows/create", h.CreateShow)
}

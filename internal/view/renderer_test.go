package view

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewParsesEveryTemplate(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	for _, name := range []string{
		"pages/home.html",
		"pages/venues.html",
		"pages/search_venues.html",
		"pages/show_venue.html",
		"pages/artists.html",
		"pages/search_artists.html",
		"pages/show_artist.html",
		"pages/shows.html",
		"forms/new_venue.html",
		"forms/edit_venue.html",
		"forms/new_artist.html",
		"forms/edit_artist.html",
		"forms/new_show.html",
		"errors/404.html",
		"errors/500.html",
	} {
		require.Contains(t, r.pages, name)
	}
}

func TestRenderUnknownTemplate(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	var buf bytes.Buffer
	err = r.Render(&buf, "pages/no_such_page.html", nil, nil)
	require.Error(t, err)
	require.Contains(t, err.Error(), "no_such_page")
}

func TestRenderHome(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	var buf bytes.Buffer
	err = r.Render(&buf, "pages/home.html", map[string]any{"Flash": "Venue X was successfully listed!"}, nil)
	require.NoError(t, err)
	require.Contains(t, buf.String(), "Fyyur")
	require.Contains(t, buf.String(), "successfully listed!")
}

func TestFormatDatetime(t *testing.T) {
	ts := time.Date(2035, 6, 15, 20, 0, 0, 0, time.UTC)
	require.Equal(t, "Fri Jun 15, 2035 8:00 PM", formatDatetime(ts))
}

func TestContains(t *testing.T) {
	genres := []string{"Jazz", "Reggae"}
	require.True(t, contains(genres, "Jazz"))
	require.False(t, contains(genres, "Rock n Roll"))
	require.False(t, contains(nil, "Jazz"))
}

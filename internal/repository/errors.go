// Package repository contains the MySQL data access layer for venues,
// artists and shows.  This file defines sentinel errors shared across
// the repositories so that higher layers can distinguish failure
// scenarios with errors.Is instead of string matching.
package repository

import "errors"

// ErrVenueNotFound indicates that a venue lookup by id matched no row.
// Handlers translate this into the 404 page.
var ErrVenueNotFound = errors.New("venue not found")

// ErrArtistNotFound indicates that an artist lookup by id matched no row.
var ErrArtistNotFound = errors.New("artist not found")

// ErrShowNotFound indicates that a show lookup by id matched no row.
var ErrShowNotFound = errors.New("show not found")

// ErrConflict is returned when a delete cannot proceed because shows
// still reference the venue or artist.  Deletion is rejected rather
// than cascaded; the caller must remove the shows first.
var ErrConflict = errors.New("conflict")

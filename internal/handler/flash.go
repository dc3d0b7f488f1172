package handler

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/fyyur/fyyur/internal/listing"
)

// flashCookie is the one-shot message cookie: a mutation sets it, the
// next rendered page displays and clears it.
const flashCookie = "fyyur_flash"

// setFlash stores a message to be shown on the next rendered page.
func setFlash(c echo.Context, msg string) {
	c.SetCookie(&http.Cookie{
		Name:     flashCookie,
		Value:    url.QueryEscape(msg),
		Path:     "/",
		HttpOnly: true,
	})
}

// takeFlash returns the pending flash message, if any, and clears it.
func takeFlash(c echo.Context) string {
	ck, err := c.Cookie(flashCookie)
	if err != nil || ck.Value == "" {
		return ""
	}
	c.SetCookie(&http.Cookie{
		Name:     flashCookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
	msg, err := url.QueryUnescape(ck.Value)
	if err != nil {
		return ""
	}
	return msg
}

// validationFlash words the flash shown when a submission is missing
// required fields.  The verb is "listed" for create forms and
// "updated" for edit forms.
func validationFlash(entity, verb string, verr *listing.ValidationError) string {
	return "An error occurred. " + entity + " could not be " + verb + ". Please check: " +
		strings.Join(verr.Fields, ", ") + "."
}

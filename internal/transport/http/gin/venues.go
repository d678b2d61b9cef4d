package httpgin

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/kirinyoku/fyyur/internal/forms"
	redisrepo "github.com/kirinyoku/fyyur/internal/repository/redis"
	"github.com/kirinyoku/fyyur/internal/service/query"
)

func (h *handlers) listVenues(c *gin.Context) {
	areas, err := h.catalog.VenueAreas(c.Request.Context())
	if err != nil {
		h.serverError(c, err)
		return
	}

	h.render(c, http.StatusOK, "venues.html", gin.H{"Areas": areas})
}

func (h *handlers) searchVenues(c *gin.Context) {
	term := c.PostForm("search_term")

	results, err := h.catalog.SearchVenues(c.Request.Context(), term)
	if err != nil {
		h.serverError(c, err)
		return
	}

	h.render(c, http.StatusOK, "search_venues.html", gin.H{
		"Results":    results,
		"SearchTerm": term,
	})
}

func (h *handlers) showVenue(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.notFound(c)
		return
	}

	venue, err := h.catalog.VenueDetail(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, query.ErrVenueNotFound) {
			h.notFound(c)
			return
		}
		h.serverError(c, err)
		return
	}

	h.render(c, http.StatusOK, "show_venue.html", gin.H{"Venue": venue})
}

func (h *handlers) newVenueForm(c *gin.Context) {
	h.render(c, http.StatusOK, "new_venue.html", gin.H{
		"Form":   forms.VenueForm{Token: forms.NewToken()},
		"Result": forms.Result{},
	})
}

func (h *handlers) createVenue(c *gin.Context) {
	var f forms.VenueForm
	if err := c.ShouldBind(&f); err != nil {
		_ = c.Error(err)
	}

	res := forms.ValidateVenue(&f)
	if !res.OK() {
		h.invalid(c, "new_venue.html", gin.H{"Form": f}, res)
		return
	}

	if !h.claim(c, f.Token) {
		return
	}

	if _, err := h.booking.CreateVenue(c.Request.Context(), f.Venue()); err != nil {
		_ = c.Error(err)
		h.release(c, f.Token)
		h.flash(c, redisrepo.FlashError, fmt.Sprintf("An error occurred. Venue %s could not be listed.", f.Name))
	} else {
		h.flash(c, redisrepo.FlashInfo, fmt.Sprintf("Venue %s was successfully listed!", f.Name))
	}

	h.render(c, http.StatusOK, "home.html", nil)
}

// deleteVenue always answers 204; failures are only logged.
func (h *handlers) deleteVenue(c *gin.Context) {
	if id, ok := parseID(c, "id"); ok {
		if err := h.booking.DeleteVenue(c.Request.Context(), id); err != nil {
			_ = c.Error(err)
		}
	} else {
		_ = c.Error(fmt.Errorf("invalid venue id %q", c.Param("id")))
	}

	c.Status(http.StatusNoContent)
}

func (h *handlers) editVenueForm(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.notFound(c)
		return
	}

	venue, err := h.catalog.Venue(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, query.ErrVenueNotFound) {
			h.notFound(c)
			return
		}
		h.serverError(c, err)
		return
	}

	h.render(c, http.StatusOK, "edit_venue.html", gin.H{
		"ID":     id,
		"Form":   forms.VenueFormFrom(*venue),
		"Result": forms.Result{},
	})
}

func (h *handlers) updateVenue(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.notFound(c)
		return
	}

	var f forms.VenueForm
	if err := c.ShouldBind(&f); err != nil {
		_ = c.Error(err)
	}

	res := forms.ValidateVenueEdit(&f)
	if !res.OK() {
		h.invalid(c, "edit_venue.html", gin.H{"ID": id, "Form": f}, res)
		return
	}

	if err := h.booking.UpdateVenue(c.Request.Context(), id, f.Update()); err != nil {
		_ = c.Error(err)
		h.flash(c, redisrepo.FlashError, fmt.Sprintf("An error occurred. Venue %s could not be updated.", f.Name))
	} else {
		h.flash(c, redisrepo.FlashInfo, fmt.Sprintf("Venue %s was successfully updated!", f.Name))
	}

	c.Redirect(http.StatusSeeOther, "/venues/"+strconv.FormatInt(id, 10))
}

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

func (h *handlers) listArtists(c *gin.Context) {
	artists, err := h.catalog.Artists(c.Request.Context())
	if err != nil {
		h.serverError(c, err)
		return
	}

	h.render(c, http.StatusOK, "artists.html", gin.H{"Artists": artists})
}

func (h *handlers) searchArtists(c *gin.Context) {
	term := c.PostForm("search_term")

	results, err := h.catalog.SearchArtists(c.Request.Context(), term)
	if err != nil {
		h.serverError(c, err)
		return
	}

	h.render(c, http.StatusOK, "search_artists.html", gin.H{
		"Results":    results,
		"SearchTerm": term,
	})
}

func (h *handlers) showArtist(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.notFound(c)
		return
	}

	artist, err := h.catalog.ArtistDetail(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, query.ErrArtistNotFound) {
			h.notFound(c)
			return
		}
		h.serverError(c, err)
		return
	}

	h.render(c, http.StatusOK, "show_artist.html", gin.H{"Artist": artist})
}

func (h *handlers) newArtistForm(c *gin.Context) {
	h.render(c, http.StatusOK, "new_artist.html", gin.H{
		"Form":   forms.ArtistForm{Token: forms.NewToken()},
		"Result": forms.Result{},
	})
}

func (h *handlers) createArtist(c *gin.Context) {
	var f forms.ArtistForm
	if err := c.ShouldBind(&f); err != nil {
		_ = c.Error(err)
	}

	res := forms.ValidateArtist(&f)
	if !res.OK() {
		h.invalid(c, "new_artist.html", gin.H{"Form": f}, res)
		return
	}

	if !h.claim(c, f.Token) {
		return
	}

	if _, err := h.booking.CreateArtist(c.Request.Context(), f.Artist()); err != nil {
		_ = c.Error(err)
		h.release(c, f.Token)
		h.flash(c, redisrepo.FlashError, fmt.Sprintf("An error occurred. Artist %s could not be listed.", f.Name))
	} else {
		h.flash(c, redisrepo.FlashInfo, fmt.Sprintf("Artist %s was successfully listed!", f.Name))
	}

	h.render(c, http.StatusOK, "home.html", nil)
}

// deleteArtist always answers 204; failures are only logged.
func (h *handlers) deleteArtist(c *gin.Context) {
	if id, ok := parseID(c, "id"); ok {
		if err := h.booking.DeleteArtist(c.Request.Context(), id); err != nil {
			_ = c.Error(err)
		}
	} else {
		_ = c.Error(fmt.Errorf("invalid artist id %q", c.Param("id")))
	}

	c.Status(http.StatusNoContent)
}

func (h *handlers) editArtistForm(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.notFound(c)
		return
	}

	artist, err := h.catalog.Artist(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, query.ErrArtistNotFound) {
			h.notFound(c)
			return
		}
		h.serverError(c, err)
		return
	}

	h.render(c, http.StatusOK, "edit_artist.html", gin.H{
		"ID":     id,
		"Form":   forms.ArtistFormFrom(*artist),
		"Result": forms.Result{},
	})
}

func (h *handlers) updateArtist(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.notFound(c)
		return
	}

	var f forms.ArtistForm
	if err := c.ShouldBind(&f); err != nil {
		_ = c.Error(err)
	}

	res := forms.ValidateArtistEdit(&f)
	if !res.OK() {
		h.invalid(c, "edit_artist.html", gin.H{"ID": id, "Form": f}, res)
		return
	}

	if err := h.booking.UpdateArtist(c.Request.Context(), id, f.Update()); err != nil {
		_ = c.Error(err)
		h.flash(c, redisrepo.FlashError, fmt.Sprintf("An error occurred. Artist %s could not be updated.", f.Name))
	} else {
		h.flash(c, redisrepo.FlashInfo, fmt.Sprintf("Artist %s was successfully updated!", f.Name))
	}

	c.Redirect(http.StatusSeeOther, "/artists/"+strconv.FormatInt(id, 10))
}

package httpgin

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kirinyoku/fyyur/internal/forms"
	redisrepo "github.com/kirinyoku/fyyur/internal/repository/redis"
)

func (h *handlers) listShows(c *gin.Context) {
	shows, err := h.catalog.Shows(c.Request.Context())
	if err != nil {
		h.serverError(c, err)
		return
	}

	h.render(c, http.StatusOK, "shows.html", gin.H{"Shows": shows})
}

func (h *handlers) newShowForm(c *gin.Context) {
	f := forms.NewShowForm(h.catalog.Now())
	f.Token = forms.NewToken()

	h.render(c, http.StatusOK, "new_show.html", gin.H{
		"Form":   f,
		"Result": forms.Result{},
	})
}

func (h *handlers) createShow(c *gin.Context) {
	var f forms.ShowForm
	if err := c.ShouldBind(&f); err != nil {
		_ = c.Error(err)
	}

	res := forms.ValidateShow(&f)
	if !res.OK() {
		h.invalid(c, "new_show.html", gin.H{"Form": f}, res)
		return
	}

	show, err := f.Show(h.catalog.Location())
	if err != nil {
		res.Errors = append(res.Errors, forms.FieldError{Field: "start_time", Message: "Not a valid datetime value."})
		h.invalid(c, "new_show.html", gin.H{"Form": f}, res)
		return
	}

	if !h.claim(c, f.Token) {
		return
	}

	if _, err := h.booking.CreateShow(c.Request.Context(), show); err != nil {
		_ = c.Error(err)
		h.release(c, f.Token)
		h.flash(c, redisrepo.FlashError, "An error occurred. Show could not be listed.")
	} else {
		h.flash(c, redisrepo.FlashInfo, "Show was successfully listed!")
	}

	h.render(c, http.StatusOK, "home.html", nil)
}

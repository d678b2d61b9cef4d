package httpgin

import (
	"embed"
	"html/template"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kirinyoku/fyyur/internal/forms"
	redisrepo "github.com/kirinyoku/fyyur/internal/repository/redis"
	"github.com/kirinyoku/fyyur/internal/viewmodel"
)

//go:embed templates
var templateFS embed.FS

const (
	dateMedium = "Mon 01, 02, 2006 3:04PM"
	dateFull   = "Monday January, 2, 2006 at 3:04PM"
)

// templateFuncs are available to every page.
var templateFuncs = template.FuncMap{
	"datetime":     formatDatetime,
	"join":         strings.Join,
	"contains":     slices.Contains[[]string, string],
	"stateChoices": func() []string { return forms.States },
	"genreChoices": func() []string { return forms.Genres },
}

func parseTemplates() *template.Template {
	return template.Must(
		template.New("").
			Funcs(templateFuncs).
			ParseFS(templateFS, "templates/*/*.html"),
	)
}

// formatDatetime renders a start time produced by the view models. format
// is "medium", "full" or a Go layout. Values it cannot read pass through.
func formatDatetime(value, format string) string {
	t, err := time.Parse(viewmodel.StartTimeLayout, value)
	if err != nil {
		return value
	}

	switch format {
	case "full":
		return t.Format(dateFull)
	case "medium", "":
		return t.Format(dateMedium)
	default:
		return t.Format(format)
	}
}

// render executes the named page after attaching the session's pending
// flash messages.
func (h *handlers) render(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}

	data["Flashes"] = h.popFlashes(c)
	c.HTML(status, name, data)
}

func (h *handlers) flash(c *gin.Context, category, msg string) {
	if h.flashes == nil {
		return
	}

	err := h.flashes.Push(c.Request.Context(), sessionID(c), redisrepo.Flash{
		Category: category,
		Message:  msg,
	})
	if err != nil {
		h.logger.Warn("flash push failed", "error", err, "request_id", requestID(c))
	}
}

func (h *handlers) popFlashes(c *gin.Context) []redisrepo.Flash {
	if h.flashes == nil {
		return nil
	}

	out, err := h.flashes.Pop(c.Request.Context(), sessionID(c))
	if err != nil {
		h.logger.Warn("flash pop failed", "error", err, "request_id", requestID(c))
		return nil
	}

	return out
}

// invalid re-renders a rejected form with its field errors and a summary
// flash.
func (h *handlers) invalid(c *gin.Context, page string, data gin.H, res forms.Result) {
	h.flash(c, redisrepo.FlashError, "Failed due to the following validation error(s) : "+res.Summary())
	data["Result"] = res
	h.render(c, http.StatusBadRequest, page, data)
}

func (h *handlers) notFound(c *gin.Context) {
	h.render(c, http.StatusNotFound, "404.html", nil)
}

// serverError logs err through the access log and renders the 500 page.
func (h *handlers) serverError(c *gin.Context, err error) {
	_ = c.Error(err)
	h.render(c, http.StatusInternalServerError, "500.html", nil)
}

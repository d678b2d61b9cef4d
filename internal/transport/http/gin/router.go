package httpgin

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kirinyoku/fyyur/internal/domain"
	redisrepo "github.com/kirinyoku/fyyur/internal/repository/redis"
	"github.com/kirinyoku/fyyur/internal/viewmodel"
)

// Catalog is the read side used by the pages.
type Catalog interface {
	Now() time.Time
	Location() *time.Location
	VenueAreas(ctx context.Context) ([]viewmodel.VenueArea, error)
	SearchVenues(ctx context.Context, term string) (viewmodel.SearchResults, error)
	Venue(ctx context.Context, id int64) (*domain.Venue, error)
	VenueDetail(ctx context.Context, id int64) (*viewmodel.VenueDetail, error)
	Artists(ctx context.Context) ([]viewmodel.SearchHit, error)
	SearchArtists(ctx context.Context, term string) (viewmodel.SearchResults, error)
	Artist(ctx context.Context, id int64) (*domain.Artist, error)
	ArtistDetail(ctx context.Context, id int64) (*viewmodel.ArtistDetail, error)
	Shows(ctx context.Context) ([]viewmodel.ShowRow, error)
}

// Booking is the write side used by the forms.
type Booking interface {
	CreateVenue(ctx context.Context, v domain.Venue) (int64, error)
	UpdateVenue(ctx context.Context, id int64, u domain.VenueUpdate) error
	DeleteVenue(ctx context.Context, id int64) error
	CreateArtist(ctx context.Context, a domain.Artist) (int64, error)
	UpdateArtist(ctx context.Context, id int64, u domain.ArtistUpdate) error
	DeleteArtist(ctx context.Context, id int64) error
	CreateShow(ctx context.Context, s domain.Show) (int64, error)
}

type Flashes interface {
	Push(ctx context.Context, sessionID string, f redisrepo.Flash) error
	Pop(ctx context.Context, sessionID string) ([]redisrepo.Flash, error)
}

type SubmissionGuard interface {
	Claim(ctx context.Context, token string) (bool, error)
	Release(ctx context.Context, token string) error
}

// Deps wires the router. Flashes, Limiter and Guard are optional.
type Deps struct {
	Catalog     Catalog
	Booking     Booking
	Flashes     Flashes
	Limiter     Limiter
	Guard       SubmissionGuard
	Logger      *slog.Logger
	CORSOrigins []string
}

type handlers struct {
	catalog Catalog
	booking Booking
	flashes Flashes
	limiter Limiter
	guard   SubmissionGuard
	logger  *slog.Logger
}

func NewRouter(d Deps, middlewares ...gin.HandlerFunc) *gin.Engine {
	logger := d.Logger
	if logger == nil {
		logger = slog.Default()
	}

	h := &handlers{
		catalog: d.Catalog,
		booking: d.Booking,
		flashes: d.Flashes,
		limiter: d.Limiter,
		guard:   d.Guard,
		logger:  logger,
	}

	r := gin.New()
	r.SetHTMLTemplate(parseTemplates())

	r.Use(Metrics(), LoggingMiddleware(logger), RequestIDMiddleware(), h.Recovery(), SessionMiddleware())
	if m := CORS(d.CORSOrigins); m != nil {
		r.Use(m)
	}
	for _, m := range middlewares {
		if m != nil {
			r.Use(m)
		}
	}

	// health
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", metricsHandler())

	r.GET("/", h.home)

	limited := h.RateLimit()

	venues := r.Group("/venues")
	{
		venues.GET("", h.listVenues)
		venues.POST("/search", h.searchVenues)
		venues.GET("/create", h.newVenueForm)
		venues.POST("/create", limited, h.createVenue)
		venues.GET("/:id", h.showVenue)
		venues.DELETE("/:id", limited, h.deleteVenue)
		venues.GET("/:id/edit", h.editVenueForm)
		venues.POST("/:id/edit", limited, h.updateVenue)
	}

	artists := r.Group("/artists")
	{
		artists.GET("", h.listArtists)
		artists.POST("/search", h.searchArtists)
		artists.GET("/create", h.newArtistForm)
		artists.POST("/create", limited, h.createArtist)
		artists.GET("/:id", h.showArtist)
		artists.DELETE("/:id", limited, h.deleteArtist)
		artists.GET("/:id/edit", h.editArtistForm)
		artists.POST("/:id/edit", limited, h.updateArtist)
	}

	shows := r.Group("/shows")
	{
		shows.GET("", h.listShows)
		shows.GET("/create", h.newShowForm)
		shows.POST("/create", limited, h.createShow)
	}

	r.NoRoute(h.notFound)

	return r
}

func (h *handlers) home(c *gin.Context) {
	h.render(c, http.StatusOK, "home.html", nil)
}

// --- Helpers ---

// parseID reads a positive numeric path parameter.
func parseID(c *gin.Context, name string) (int64, bool) {
	v, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || v <= 0 {
		return 0, false
	}
	return v, true
}

// claim reserves a form token so a double submit is stored once. It
// reports false when the request has already been answered.
func (h *handlers) claim(c *gin.Context, token string) bool {
	if h.guard == nil || token == "" {
		return true
	}

	ok, err := h.guard.Claim(c.Request.Context(), token)
	if err != nil {
		h.logger.Warn("submission guard unavailable", "error", err, "request_id", requestID(c))
		return true
	}

	if !ok {
		h.flash(c, redisrepo.FlashError, "This form has already been submitted.")
		c.Redirect(http.StatusSeeOther, "/")
		return false
	}

	return true
}

func (h *handlers) release(c *gin.Context, token string) {
	if h.guard == nil || token == "" {
		return
	}

	if err := h.guard.Release(c.Request.Context(), token); err != nil {
		h.logger.Warn("submission guard release failed", "error", err, "request_id", requestID(c))
	}
}

package httpgin

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kirinyoku/fyyur/internal/domain"
	redisrepo "github.com/kirinyoku/fyyur/internal/repository/redis"
	"github.com/kirinyoku/fyyur/internal/service/admin"
	"github.com/kirinyoku/fyyur/internal/service/query"
	"github.com/kirinyoku/fyyur/internal/viewmodel"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var testNow = time.Date(2024, time.March, 10, 15, 30, 0, 0, time.UTC)

type fakeCatalog struct {
	venues  []domain.VenueSummary
	artists []domain.ArtistSummary
	shows   []domain.ShowDetails
	panic  bool
}

func (f *fakeCatalog) Now() time.Time           { return testNow }
func (f *fakeCatalog) Location() *time.Location { return time.UTC }

func (f *fakeCatalog) VenueAreas(context.Context) ([]viewmodel.VenueArea, error) {
	return viewmodel.GroupVenuesByCityState(f.venues), nil
}

func (f *fakeCatalog) SearchVenues(_ context.Context, term string) (viewmodel.SearchResults, error) {
	var hits []domain.VenueSummary
	for _, v := range f.venues {
		if strings.Contains(strings.ToLower(v.Name), strings.ToLower(term)) {
			hits = append(hits, v)
		}
	}
	return viewmodel.BuildSearchResults(term, viewmodel.VenueHits(hits)), nil
}

func (f *fakeCatalog) Venue(_ context.Context, id int64) (*domain.Venue, error) {
	for _, v := range f.venues {
		if v.ID == id {
			return &domain.Venue{ID: v.ID, Name: v.Name, City: v.City, State: v.State, Genres: []string{"Jazz"}}, nil
		}
	}
	return nil, query.ErrVenueNotFound
}

func (f *fakeCatalog) VenueDetail(ctx context.Context, id int64) (*viewmodel.VenueDetail, error) {
	v, err := f.Venue(ctx, id)
	if err != nil {
		return nil, err
	}

	var shows []domain.ShowDetails
	for _, s := range f.shows {
		if s.VenueID == id {
			shows = append(shows, s)
		}
	}

	d := viewmodel.BuildVenueDetail(*v, shows, testNow)
	return &d, nil
}

func (f *fakeCatalog) Artists(context.Context) ([]viewmodel.SearchHit, error) {
	return []viewmodel.SearchHit{{ID: 1, Name: "Guns N Petals"}}, nil
}

func (f *fakeCatalog) SearchArtists(_ context.Context, term string) (viewmodel.SearchResults, error) {
	var hits []domain.ArtistSummary
	for _, a := range f.artists {
		if strings.Contains(strings.ToLower(a.Name), strings.ToLower(term)) {
			hits = append(hits, a)
		}
	}
	return viewmodel.BuildSearchResults(term, viewmodel.ArtistHits(hits)), nil
}

func (f *fakeCatalog) Artist(_ context.Context, id int64) (*domain.Artist, error) {
	if id != 1 {
		return nil, query.ErrArtistNotFound
	}
	return &domain.Artist{ID: 1, Name: "Guns N Petals", City: "San Francisco", State: "CA", Genres: []string{"Rock n Roll"}, SeekingVenue: true}, nil
}

func (f *fakeCatalog) ArtistDetail(ctx context.Context, id int64) (*viewmodel.ArtistDetail, error) {
	a, err := f.Artist(ctx, id)
	if err != nil {
		return nil, err
	}
	var shows []domain.ShowDetails
	for _, s := range f.shows {
		if s.ArtistID == id {
			shows = append(shows, s)
		}
	}

	d := viewmodel.BuildArtistDetail(*a, shows, testNow)
	return &d, nil
}

func (f *fakeCatalog) Shows(context.Context) ([]viewmodel.ShowRow, error) {
	if f.panic {
		panic("boom")
	}
	return viewmodel.BuildShowListing(f.shows, time.UTC), nil
}

type fakeBooking struct {
	mu             sync.Mutex
	err            error
	venues         []domain.Venue
	updates        map[int64]domain.VenueUpdate
	deleted        []int64
	artists        []domain.Artist
	artistUpdates  map[int64]domain.ArtistUpdate
	deletedArtists []int64
	shows          []domain.Show
}

func (f *fakeBooking) CreateVenue(_ context.Context, v domain.Venue) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return 0, f.err
	}
	f.venues = append(f.venues, v)
	return int64(len(f.venues)), nil
}

func (f *fakeBooking) UpdateVenue(_ context.Context, id int64, u domain.VenueUpdate) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	if f.updates == nil {
		f.updates = map[int64]domain.VenueUpdate{}
	}
	f.updates[id] = u
	return nil
}

func (f *fakeBooking) DeleteVenue(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, id)
	return f.err
}

func (f *fakeBooking) CreateArtist(_ context.Context, a domain.Artist) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return 0, f.err
	}
	f.artists = append(f.artists, a)
	return int64(len(f.artists)), nil
}

func (f *fakeBooking) UpdateArtist(_ context.Context, id int64, u domain.ArtistUpdate) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	if f.artistUpdates == nil {
		f.artistUpdates = map[int64]domain.ArtistUpdate{}
	}
	f.artistUpdates[id] = u
	return nil
}

func (f *fakeBooking) DeleteArtist(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletedArtists = append(f.deletedArtists, id)
	return f.err
}

func (f *fakeBooking) CreateShow(_ context.Context, s domain.Show) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return 0, f.err
	}
	f.shows = append(f.shows, s)
	return int64(len(f.shows)), nil
}

type memFlashes struct {
	mu   sync.Mutex
	byID map[string][]redisrepo.Flash
}

func (m *memFlashes) Push(_ context.Context, sid string, f redisrepo.Flash) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.byID == nil {
		m.byID = map[string][]redisrepo.Flash{}
	}
	m.byID[sid] = append(m.byID[sid], f)
	return nil
}

func (m *memFlashes) Pop(_ context.Context, sid string) ([]redisrepo.Flash, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := m.byID[sid]
	delete(m.byID, sid)
	return out, nil
}

type denyLimiter struct{}

func (denyLimiter) Allow(context.Context, string) (bool, time.Duration, error) {
	return false, 1500 * time.Millisecond, nil
}

type onceGuard struct {
	mu   sync.Mutex
	used map[string]bool
}

func (g *onceGuard) Claim(_ context.Context, token string) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.used == nil {
		g.used = map[string]bool{}
	}
	if g.used[token] {
		return false, nil
	}
	g.used[token] = true
	return true, nil
}

func (g *onceGuard) Release(_ context.Context, token string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.used, token)
	return nil
}

type fixture struct {
	router  *gin.Engine
	catalog *fakeCatalog
	booking *fakeBooking
	guard   *onceGuard
}

func newFixture(t *testing.T, opts ...func(*Deps)) *fixture {
	t.Helper()

	f := &fixture{
		catalog: &fakeCatalog{
			venues: []domain.VenueSummary{
				{ID: 1, Name: "The Musical Hop", City: "San Francisco", State: "CA"},
				{ID: 2, Name: "The Dueling Pianos Bar", City: "New York", State: "NY"},
				{ID: 3, Name: "Park Square Live Music & Coffee", City: "San Francisco", State: "CA", UpcomingShows: 1},
			},
			artists: []domain.ArtistSummary{
				{ID: 1, Name: "Guns N Petals"},
				{ID: 2, Name: "Matt Quevedo"},
				{ID: 3, Name: "The Wild Sax Band", UpcomingShows: 3},
			},
			shows: []domain.ShowDetails{
				{
					Show:       domain.Show{ID: 1, StartTime: time.Date(2019, time.May, 21, 21, 30, 0, 0, time.UTC), VenueID: 1, ArtistID: 1},
					VenueName:  "The Musical Hop",
					ArtistName: "Guns N Petals",
				},
			},
		},
		booking: &fakeBooking{},
		guard:   &onceGuard{},
	}

	deps := Deps{
		Catalog: f.catalog,
		Booking: f.booking,
		Flashes: &memFlashes{},
		Guard:   f.guard,
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, o := range opts {
		o(&deps)
	}

	f.router = NewRouter(deps)
	return f
}

func (f *fixture) do(method, target string, form url.Values) *httptest.ResponseRecorder {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}

	req := httptest.NewRequest(method, target, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func venueForm() url.Values {
	return url.Values{
		"name":          {"The Dueling Pianos Bar"},
		"city":          {"New York"},
		"state":         {"NY"},
		"address":       {"335 Delancey Street"},
		"phone":         {"914-003-1132"},
		"genres":        {"Classical", "R&B", "Hip-Hop"},
		"facebook_link": {"https://www.facebook.com/theduelingpianos"},
		"form_token":    {"token-1"},
	}
}

func TestHealthz(t *testing.T) {
	f := newFixture(t)

	w := f.do(http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestHomeSetsSessionCookie(t *testing.T) {
	f := newFixture(t)

	w := f.do(http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Set-Cookie"), sessionCookie+"=")
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestListVenuesGroupsByArea(t *testing.T) {
	f := newFixture(t)

	w := f.do(http.MethodGet, "/venues", nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.Contains(t, body, "San Francisco, CA")
	assert.Contains(t, body, "New York, NY")
	assert.Contains(t, body, `href="/venues/3"`)
	assert.Equal(t, 1, strings.Count(body, "San Francisco, CA"))
}

func TestSearchVenues(t *testing.T) {
	f := newFixture(t)

	w := f.do(http.MethodPost, "/venues/search", url.Values{"search_term": {"Hop"}})
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.Contains(t, body, `Number of search results for "Hop": 1`)
	assert.Contains(t, body, "The Musical Hop")
	assert.NotContains(t, body, "Park Square")
}

func TestShowVenue(t *testing.T) {
	f := newFixture(t)

	w := f.do(http.MethodGet, "/venues/1", nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.Contains(t, body, "0 Upcoming Shows")
	assert.Contains(t, body, "1 Past Show")
	assert.Contains(t, body, "Tuesday May, 21, 2019 at 9:30PM")
}

func TestNotFoundPages(t *testing.T) {
	f := newFixture(t)

	for _, target := range []string{"/venues/42", "/venues/abc", "/venues/42/edit", "/artists/9", "/nowhere"} {
		w := f.do(http.MethodGet, target, nil)
		assert.Equal(t, http.StatusNotFound, w.Code, target)
		assert.Contains(t, w.Body.String(), "Not Found", target)
	}
}

func TestPanicRendersServerError(t *testing.T) {
	f := newFixture(t)
	f.catalog.panic = true

	w := f.do(http.MethodGet, "/shows", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Internal Server Error")
}

func TestCreateVenue(t *testing.T) {
	t.Run("valid form is stored and flashed", func(t *testing.T) {
		f := newFixture(t)

		w := f.do(http.MethodPost, "/venues/create", venueForm())
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Venue The Dueling Pianos Bar was successfully listed!")

		require.Len(t, f.booking.venues, 1)
		assert.Equal(t, []string{"Classical", "R&B", "Hip-Hop"}, f.booking.venues[0].Genres)
	})

	t.Run("missing name re-renders the form", func(t *testing.T) {
		f := newFixture(t)

		form := venueForm()
		form.Del("name")

		w := f.do(http.MethodPost, "/venues/create", form)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "This field is required.")
		assert.Contains(t, w.Body.String(), `value="335 Delancey Street"`)
		assert.Contains(t, w.Body.String(), "Failed due to the following validation error(s) : name: This field is required.")
		assert.Empty(t, f.booking.venues)
	})

	t.Run("persistence failure flashes an error", func(t *testing.T) {
		f := newFixture(t)
		f.booking.err = errors.New("connection refused")

		w := f.do(http.MethodPost, "/venues/create", venueForm())
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "An error occurred. Venue The Dueling Pianos Bar could not be listed.")

		ok, err := f.guard.Claim(context.Background(), "token-1")
		require.NoError(t, err)
		assert.True(t, ok, "token is released after a failed write")
	})

	t.Run("duplicate submission is stored once", func(t *testing.T) {
		f := newFixture(t)

		first := f.do(http.MethodPost, "/venues/create", venueForm())
		require.Equal(t, http.StatusOK, first.Code)

		second := f.do(http.MethodPost, "/venues/create", venueForm())
		assert.Equal(t, http.StatusSeeOther, second.Code)
		assert.Equal(t, "/", second.Header().Get("Location"))
		assert.Len(t, f.booking.venues, 1)
	})
}

func TestUpdateVenueRedirectsToDetail(t *testing.T) {
	f := newFixture(t)

	form := url.Values{
		"name":   {"The Musical Hop"},
		"city":   {"San Francisco"},
		"state":  {"CA"},
		"genres": {"Jazz", "Folk"},
	}

	w := f.do(http.MethodPost, "/venues/1/edit", form)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/venues/1", w.Header().Get("Location"))
	assert.Equal(t, []string{"Jazz", "Folk"}, f.booking.updates[1].Genres)
}

func TestEditVenueFormIsPrefilled(t *testing.T) {
	f := newFixture(t)

	w := f.do(http.MethodGet, "/venues/3/edit", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `value="Park Square Live Music &amp; Coffee"`)
	assert.Contains(t, w.Body.String(), `<option value="Jazz" selected>`)
}

func TestDeleteVenueAlwaysNoContent(t *testing.T) {
	f := newFixture(t)

	w := f.do(http.MethodDelete, "/venues/2", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())
	assert.Equal(t, []int64{2}, f.booking.deleted)

	f.booking.err = admin.ErrVenueNotFound
	w = f.do(http.MethodDelete, "/venues/99", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = f.do(http.MethodDelete, "/venues/abc", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func artistForm() url.Values {
	return url.Values{
		"name":                {"The Wild Sax Band"},
		"city":                {"San Francisco"},
		"state":               {"CA"},
		"phone":               {"432-325-5432"},
		"genres":              {"Jazz", "Classical"},
		"seeking_venue":       {"y"},
		"seeking_description": {"Any jazz club in the Bay Area."},
		"form_token":          {"token-a"},
	}
}

func TestCreateArtist(t *testing.T) {
	t.Run("valid form is stored and flashed", func(t *testing.T) {
		f := newFixture(t)

		w := f.do(http.MethodPost, "/artists/create", artistForm())
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Artist The Wild Sax Band was successfully listed!")

		require.Len(t, f.booking.artists, 1)
		got := f.booking.artists[0]
		assert.Equal(t, []string{"Jazz", "Classical"}, got.Genres)
		assert.True(t, got.SeekingVenue)
		assert.Equal(t, "Any jazz club in the Bay Area.", got.SeekingDescription)
	})

	t.Run("missing state re-renders the form", func(t *testing.T) {
		f := newFixture(t)

		form := artistForm()
		form.Del("state")

		w := f.do(http.MethodPost, "/artists/create", form)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Failed due to the following validation error(s) : state: This field is required.")
		assert.Contains(t, w.Body.String(), `value="432-325-5432"`)
		assert.Empty(t, f.booking.artists)
	})

	t.Run("persistence failure flashes an error", func(t *testing.T) {
		f := newFixture(t)
		f.booking.err = errors.New("connection refused")

		w := f.do(http.MethodPost, "/artists/create", artistForm())
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "An error occurred. Artist The Wild Sax Band could not be listed.")

		ok, err := f.guard.Claim(context.Background(), "token-a")
		require.NoError(t, err)
		assert.True(t, ok, "token is released after a failed write")
	})
}

func TestSearchArtists(t *testing.T) {
	f := newFixture(t)

	w := f.do(http.MethodPost, "/artists/search", url.Values{"search_term": {"band"}})
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.Contains(t, body, `Number of search results for "band": 1`)
	assert.Contains(t, body, `<a href="/artists/3">The Wild Sax Band</a>`)
	assert.NotContains(t, body, "Guns N Petals")
}

func TestShowArtist(t *testing.T) {
	f := newFixture(t)

	w := f.do(http.MethodGet, "/artists/1", nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.Contains(t, body, "Guns N Petals")
	assert.Contains(t, body, "Currently seeking performance venues")
	assert.Contains(t, body, "0 Upcoming Shows")
	assert.Contains(t, body, "1 Past Show")
	assert.Contains(t, body, "The Musical Hop")
	assert.Contains(t, body, "Tuesday May, 21, 2019 at 9:30PM")
}

func TestUpdateArtist(t *testing.T) {
	t.Run("valid edit redirects to detail", func(t *testing.T) {
		f := newFixture(t)

		form := url.Values{
			"name":   {"Guns N Petals"},
			"city":   {"Oakland"},
			"state":  {"CA"},
			"genres": {"Rock n Roll", "Blues"},
		}

		w := f.do(http.MethodPost, "/artists/1/edit", form)
		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/artists/1", w.Header().Get("Location"))
		assert.Equal(t, "Oakland", f.booking.artistUpdates[1].City)
		assert.Equal(t, []string{"Rock n Roll", "Blues"}, f.booking.artistUpdates[1].Genres)
	})

	t.Run("failed update still redirects", func(t *testing.T) {
		f := newFixture(t)
		f.booking.err = admin.ErrArtistNotFound

		form := url.Values{"name": {"Ghost"}, "city": {"Reno"}, "state": {"NV"}, "genres": {"Jazz"}}

		w := f.do(http.MethodPost, "/artists/8/edit", form)
		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/artists/8", w.Header().Get("Location"))
	})

	t.Run("invalid phone re-renders the form", func(t *testing.T) {
		f := newFixture(t)

		form := url.Values{"name": {"Guns N Petals"}, "city": {"Oakland"}, "state": {"CA"}, "genres": {"Jazz"}, "phone": {"555"}}

		w := f.do(http.MethodPost, "/artists/1/edit", form)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Failed due to the following validation error(s) : phone:")
		assert.Contains(t, w.Body.String(), `action="/artists/1/edit"`)
		assert.Empty(t, f.booking.artistUpdates)
	})
}

func TestEditArtistFormIsPrefilled(t *testing.T) {
	f := newFixture(t)

	w := f.do(http.MethodGet, "/artists/1/edit", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `value="Guns N Petals"`)
	assert.Contains(t, w.Body.String(), `<option value="Rock n Roll" selected>`)
	assert.Contains(t, w.Body.String(), `<option value="CA" selected>`)
}

func TestDeleteArtistAlwaysNoContent(t *testing.T) {
	f := newFixture(t)

	w := f.do(http.MethodDelete, "/artists/3", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())
	assert.Equal(t, []int64{3}, f.booking.deletedArtists)

	f.booking.err = admin.ErrArtistNotFound
	w = f.do(http.MethodDelete, "/artists/99", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())

	w = f.do(http.MethodDelete, "/artists/abc", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, []int64{3, 99}, f.booking.deletedArtists)
}

func TestCreateShow(t *testing.T) {
	f := newFixture(t)

	form := url.Values{
		"artist_id":  {"1"},
		"venue_id":   {"1"},
		"start_time": {"2035-04-01 20:00:00"},
	}

	w := f.do(http.MethodPost, "/shows/create", form)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Show was successfully listed!")
	require.Len(t, f.booking.shows, 1)
	assert.True(t, f.booking.shows[0].StartTime.Equal(time.Date(2035, time.April, 1, 20, 0, 0, 0, time.UTC)))

	form.Set("venue_id", "")
	w = f.do(http.MethodPost, "/shows/create", form)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Len(t, f.booking.shows, 1)
}

func TestNewShowFormDefaultsToNow(t *testing.T) {
	f := newFixture(t)

	w := f.do(http.MethodGet, "/shows/create", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `value="2024-03-10 15:30:00"`)
}

func TestRateLimitedPost(t *testing.T) {
	f := newFixture(t, func(d *Deps) { d.Limiter = denyLimiter{} })

	w := f.do(http.MethodPost, "/venues/create", venueForm())
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "2", w.Header().Get("Retry-After"))
	assert.Empty(t, f.booking.venues)

	w = f.do(http.MethodGet, "/venues", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRateLimitedDeleteHasNoBody(t *testing.T) {
	f := newFixture(t, func(d *Deps) { d.Limiter = denyLimiter{} })

	for _, target := range []string{"/venues/2", "/artists/3"} {
		w := f.do(http.MethodDelete, target, nil)
		assert.Equal(t, http.StatusTooManyRequests, w.Code, target)
		assert.Equal(t, "2", w.Header().Get("Retry-After"), target)
		assert.Empty(t, w.Body.String(), target)
	}
	assert.Empty(t, f.booking.deleted)
	assert.Empty(t, f.booking.deletedArtists)
}

func TestFormatDatetime(t *testing.T) {
	assert.Equal(t, "Tue 05, 21, 2019 9:30PM", formatDatetime("2019-05-21 21:30:00", "medium"))
	assert.Equal(t, "Tuesday May, 21, 2019 at 9:30PM", formatDatetime("2019-05-21 21:30:00", "full"))
	assert.Equal(t, "not a date", formatDatetime("not a date", "full"))
}

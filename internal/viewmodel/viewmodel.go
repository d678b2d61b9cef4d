// Package viewmodel shapes query results into the structures the HTML
// templates render. Everything here is pure and safe to call concurrently.
package viewmodel

import (
	"time"

	"github.com/kirinyoku/fyyur/internal/domain"
)

// StartTimeLayout is how show start times are handed to templates.
const StartTimeLayout = "2006-01-02 15:04:05"

type VenueRef struct {
	ID               int64
	Name             string
	NumUpcomingShows int
}

type VenueArea struct {
	City   string
	State  string
	Venues []VenueRef
}

// GroupVenuesByCityState buckets venues by (city, state). Areas keep the
// order in which they first appear and venues keep their input order.
func GroupVenuesByCityState(summaries []domain.VenueSummary) []VenueArea {
	type area struct{ city, state string }

	index := make(map[area]int)
	out := make([]VenueArea, 0)

	for _, s := range summaries {
		k := area{city: s.City, state: s.State}

		i, ok := index[k]
		if !ok {
			i = len(out)
			index[k] = i
			out = append(out, VenueArea{City: s.City, State: s.State})
		}

		out[i].Venues = append(out[i].Venues, VenueRef{
			ID:               s.ID,
			Name:             s.Name,
			NumUpcomingShows: s.UpcomingShows,
		})
	}

	return out
}

// Companion selects which side of a show a detail page lists.
type Companion int

const (
	// CompanionArtist lists the performing artist, used on venue pages.
	CompanionArtist Companion = iota
	// CompanionVenue lists the hosting venue, used on artist pages.
	CompanionVenue
)

type ShowEntry struct {
	VenueID         int64
	VenueName       string
	VenueImageLink  string
	ArtistID        int64
	ArtistName      string
	ArtistImageLink string
	StartTime       string
}

type ShowSplit struct {
	Past     []ShowEntry
	Upcoming []ShowEntry
}

// SplitShowsByTime partitions shows into past and upcoming relative to now.
// Start times are rendered in now's location.
func SplitShowsByTime(shows []domain.ShowDetails, now time.Time, side Companion) ShowSplit {
	split := ShowSplit{
		Past:     make([]ShowEntry, 0),
		Upcoming: make([]ShowEntry, 0),
	}

	for _, s := range shows {
		e := ShowEntry{StartTime: s.StartTime.In(now.Location()).Format(StartTimeLayout)}

		switch side {
		case CompanionVenue:
			e.VenueID = s.VenueID
			e.VenueName = s.VenueName
			e.VenueImageLink = s.VenueImageLink
		default:
			e.ArtistID = s.ArtistID
			e.ArtistName = s.ArtistName
			e.ArtistImageLink = s.ArtistImageLink
		}

		if domain.IsUpcoming(s.StartTime, now) {
			split.Upcoming = append(split.Upcoming, e)
		} else {
			split.Past = append(split.Past, e)
		}
	}

	return split
}

type VenueDetail struct {
	ID                 int64
	Name               string
	Genres             []string
	Address            string
	City               string
	State              string
	Phone              string
	Website            string
	FacebookLink       string
	SeekingTalent      bool
	SeekingDescription string
	ImageLink          string
	PastShows          []ShowEntry
	UpcomingShows      []ShowEntry
	PastShowsCount     int
	UpcomingShowsCount int
}

func BuildVenueDetail(v domain.Venue, shows []domain.ShowDetails, now time.Time) VenueDetail {
	split := SplitShowsByTime(shows, now, CompanionArtist)

	return VenueDetail{
		ID:                 v.ID,
		Name:               v.Name,
		Genres:             nonNil(v.Genres),
		Address:            v.Address,
		City:               v.City,
		State:              v.State,
		Phone:              v.Phone,
		Website:            v.Website,
		FacebookLink:       v.FacebookLink,
		SeekingTalent:      v.SeekingTalent,
		SeekingDescription: v.SeekingDescription,
		ImageLink:          v.ImageLink,
		PastShows:          split.Past,
		UpcomingShows:      split.Upcoming,
		PastShowsCount:     len(split.Past),
		UpcomingShowsCount: len(split.Upcoming),
	}
}

type ArtistDetail struct {
	ID                 int64
	Name               string
	Genres             []string
	City               string
	State              string
	Phone              string
	Website            string
	FacebookLink       string
	SeekingVenue       bool
	SeekingDescription string
	ImageLink          string
	PastShows          []ShowEntry
	UpcomingShows      []ShowEntry
	PastShowsCount     int
	UpcomingShowsCount int
}

func BuildArtistDetail(a domain.Artist, shows []domain.ShowDetails, now time.Time) ArtistDetail {
	split := SplitShowsByTime(shows, now, CompanionVenue)

	return ArtistDetail{
		ID:                 a.ID,
		Name:               a.Name,
		Genres:             nonNil(a.Genres),
		City:               a.City,
		State:              a.State,
		Phone:              a.Phone,
		Website:            a.Website,
		FacebookLink:       a.FacebookLink,
		SeekingVenue:       a.SeekingVenue,
		SeekingDescription: a.SeekingDescription,
		ImageLink:          a.ImageLink,
		PastShows:          split.Past,
		UpcomingShows:      split.Upcoming,
		PastShowsCount:     len(split.Past),
		UpcomingShowsCount: len(split.Upcoming),
	}
}

type SearchHit struct {
	ID               int64
	Name             string
	NumUpcomingShows int
}

type SearchResults struct {
	SearchTerm string
	Count      int
	Data       []SearchHit
}

func BuildSearchResults(term string, hits []SearchHit) SearchResults {
	if hits == nil {
		hits = make([]SearchHit, 0)
	}

	return SearchResults{
		SearchTerm: term,
		Count:      len(hits),
		Data:       hits,
	}
}

func VenueHits(summaries []domain.VenueSummary) []SearchHit {
	out := make([]SearchHit, 0, len(summaries))
	for _, s := range summaries {
		out = append(out, SearchHit{ID: s.ID, Name: s.Name, NumUpcomingShows: s.UpcomingShows})
	}
	return out
}

func ArtistHits(summaries []domain.ArtistSummary) []SearchHit {
	out := make([]SearchHit, 0, len(summaries))
	for _, s := range summaries {
		out = append(out, SearchHit{ID: s.ID, Name: s.Name, NumUpcomingShows: s.UpcomingShows})
	}
	return out
}

type ShowRow struct {
	VenueID         int64
	VenueName       string
	ArtistID        int64
	ArtistName      string
	ArtistImageLink string
	StartTime       string
}

// BuildShowListing flattens shows for the /shows page, formatting start
// times in loc.
func BuildShowListing(shows []domain.ShowDetails, loc *time.Location) []ShowRow {
	if loc == nil {
		loc = time.UTC
	}

	out := make([]ShowRow, 0, len(shows))
	for _, s := range shows {
		out = append(out, ShowRow{
			VenueID:         s.VenueID,
			VenueName:       s.VenueName,
			ArtistID:        s.ArtistID,
			ArtistName:      s.ArtistName,
			ArtistImageLink: s.ArtistImageLink,
			StartTime:       s.StartTime.In(loc).Format(StartTimeLayout),
		})
	}

	return out
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

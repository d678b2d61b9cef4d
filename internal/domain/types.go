package domain

import (
	"time"
)

type Venue struct {
	ID                 int64
	Name               string
	City               string
	State              string
	Address            string
	Phone              string
	Genres             []string
	ImageLink          string
	Website            string
	SeekingTalent      bool
	SeekingDescription string
	FacebookLink       string
}

type Artist struct {
	ID                 int64
	Name               string
	City               string
	State              string
	Phone              string
	Genres             []string
	ImageLink          string
	FacebookLink       string
	Website            string
	SeekingVenue       bool
	SeekingDescription string
}

// VenueUpdate holds the venue fields that may change after creation.
type VenueUpdate struct {
	Name         string
	City         string
	State        string
	Phone        string
	Genres       []string
	FacebookLink string
}

// ArtistUpdate holds the artist fields that may change after creation.
type ArtistUpdate struct {
	Name         string
	City         string
	State        string
	Phone        string
	Genres       []string
	FacebookLink string
}

type Show struct {
	ID        int64
	StartTime time.Time
	VenueID   int64
	ArtistID  int64
}

// ShowDetails is a show joined with the display fields of both sides.
type ShowDetails struct {
	Show
	VenueName       string
	VenueImageLink  string
	ArtistName      string
	ArtistImageLink string
}

type VenueSummary struct {
	ID            int64
	Name          string
	City          string
	State         string
	UpcomingShows int
}

type ArtistSummary struct {
	ID            int64
	Name          string
	UpcomingShows int
}

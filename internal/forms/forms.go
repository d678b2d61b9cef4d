// Package forms binds and validates the HTML forms of the directory.
// Every field is a string so that binding never fails; conversion happens
// after validation.
package forms

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kirinyoku/fyyur/internal/domain"
)

// NewToken returns a fresh one-time token for the hidden form_token field.
func NewToken() string {
	return uuid.NewString()
}

type VenueForm struct {
	Name               string   `form:"name" validate:"required,max=120"`
	City               string   `form:"city" validate:"required,max=120"`
	State              string   `form:"state" validate:"required,us_state"`
	Address            string   `form:"address" validate:"required,max=120"`
	Phone              string   `form:"phone" validate:"omitempty,phone"`
	Genres             []string `form:"genres" validate:"required,min=1,dive,genre"`
	FacebookLink       string   `form:"facebook_link" validate:"omitempty,url"`
	ImageLink          string   `form:"image_link" validate:"omitempty,url,max=500"`
	Website            string   `form:"website" validate:"omitempty,url,max=120"`
	SeekingTalent      string   `form:"seeking_talent"`
	SeekingDescription string   `form:"seeking_description" validate:"max=500"`
	Token              string   `form:"form_token"`
}

// ValidateVenue checks every field submitted on the create form.
func ValidateVenue(f *VenueForm) Result {
	f.trim()
	return check(f)
}

// ValidateVenueEdit checks only the fields the edit form can change.
func ValidateVenueEdit(f *VenueForm) Result {
	f.trim()
	return check(editFields{
		Name:         f.Name,
		City:         f.City,
		State:        f.State,
		Phone:        f.Phone,
		Genres:       f.Genres,
		FacebookLink: f.FacebookLink,
	})
}

func (f *VenueForm) trim() {
	f.Name = strings.TrimSpace(f.Name)
	f.City = strings.TrimSpace(f.City)
	f.State = strings.TrimSpace(f.State)
	f.Address = strings.TrimSpace(f.Address)
	f.Phone = strings.TrimSpace(f.Phone)
	f.FacebookLink = strings.TrimSpace(f.FacebookLink)
	f.ImageLink = strings.TrimSpace(f.ImageLink)
	f.Website = strings.TrimSpace(f.Website)
}

func (f VenueForm) Seeking() bool {
	return truthy(f.SeekingTalent)
}

func (f *VenueForm) Venue() domain.Venue {
	return domain.Venue{
		Name:               f.Name,
		City:               f.City,
		State:              f.State,
		Address:            f.Address,
		Phone:              f.Phone,
		Genres:             f.Genres,
		ImageLink:          f.ImageLink,
		Website:            f.Website,
		SeekingTalent:      f.Seeking(),
		SeekingDescription: f.SeekingDescription,
		FacebookLink:       f.FacebookLink,
	}
}

func (f *VenueForm) Update() domain.VenueUpdate {
	return domain.VenueUpdate{
		Name:         f.Name,
		City:         f.City,
		State:        f.State,
		Phone:        f.Phone,
		Genres:       f.Genres,
		FacebookLink: f.FacebookLink,
	}
}

// VenueFormFrom prefills the edit form.
func VenueFormFrom(v domain.Venue) VenueForm {
	f := VenueForm{
		Name:               v.Name,
		City:               v.City,
		State:              v.State,
		Address:            v.Address,
		Phone:              v.Phone,
		Genres:             v.Genres,
		FacebookLink:       v.FacebookLink,
		ImageLink:          v.ImageLink,
		Website:            v.Website,
		SeekingDescription: v.SeekingDescription,
	}
	if v.SeekingTalent {
		f.SeekingTalent = "y"
	}
	return f
}

type ArtistForm struct {
	Name               string   `form:"name" validate:"required,max=120"`
	City               string   `form:"city" validate:"required,max=120"`
	State              string   `form:"state" validate:"required,us_state"`
	Phone              string   `form:"phone" validate:"omitempty,phone"`
	Genres             []string `form:"genres" validate:"required,min=1,dive,genre"`
	FacebookLink       string   `form:"facebook_link" validate:"omitempty,url"`
	ImageLink          string   `form:"image_link" validate:"omitempty,url,max=500"`
	Website            string   `form:"website" validate:"omitempty,url,max=120"`
	SeekingVenue       string   `form:"seeking_venue"`
	SeekingDescription string   `form:"seeking_description" validate:"max=500"`
	Token              string   `form:"form_token"`
}

func ValidateArtist(f *ArtistForm) Result {
	f.trim()
	return check(f)
}

func ValidateArtistEdit(f *ArtistForm) Result {
	f.trim()
	return check(editFields{
		Name:         f.Name,
		City:         f.City,
		State:        f.State,
		Phone:        f.Phone,
		Genres:       f.Genres,
		FacebookLink: f.FacebookLink,
	})
}

func (f *ArtistForm) trim() {
	f.Name = strings.TrimSpace(f.Name)
	f.City = strings.TrimSpace(f.City)
	f.State = strings.TrimSpace(f.State)
	f.Phone = strings.TrimSpace(f.Phone)
	f.FacebookLink = strings.TrimSpace(f.FacebookLink)
	f.ImageLink = strings.TrimSpace(f.ImageLink)
	f.Website = strings.TrimSpace(f.Website)
}

func (f ArtistForm) Seeking() bool {
	return truthy(f.SeekingVenue)
}

func (f *ArtistForm) Artist() domain.Artist {
	return domain.Artist{
		Name:               f.Name,
		City:               f.City,
		State:              f.State,
		Phone:              f.Phone,
		Genres:             f.Genres,
		ImageLink:          f.ImageLink,
		FacebookLink:       f.FacebookLink,
		Website:            f.Website,
		SeekingVenue:       f.Seeking(),
		SeekingDescription: f.SeekingDescription,
	}
}

func (f *ArtistForm) Update() domain.ArtistUpdate {
	return domain.ArtistUpdate{
		Name:         f.Name,
		City:         f.City,
		State:        f.State,
		Phone:        f.Phone,
		Genres:       f.Genres,
		FacebookLink: f.FacebookLink,
	}
}

func ArtistFormFrom(a domain.Artist) ArtistForm {
	f := ArtistForm{
		Name:               a.Name,
		City:               a.City,
		State:              a.State,
		Phone:              a.Phone,
		Genres:             a.Genres,
		FacebookLink:       a.FacebookLink,
		ImageLink:          a.ImageLink,
		Website:            a.Website,
		SeekingDescription: a.SeekingDescription,
	}
	if a.SeekingVenue {
		f.SeekingVenue = "y"
	}
	return f
}

// editFields mirrors the subset of venue and artist fields that can be
// changed after creation.
type editFields struct {
	Name         string   `form:"name" validate:"required,max=120"`
	City         string   `form:"city" validate:"required,max=120"`
	State        string   `form:"state" validate:"required,us_state"`
	Phone        string   `form:"phone" validate:"omitempty,phone"`
	Genres       []string `form:"genres" validate:"required,min=1,dive,genre"`
	FacebookLink string   `form:"facebook_link" validate:"omitempty,url"`
}

type ShowForm struct {
	ArtistID  string `form:"artist_id" validate:"required,number,max=18"`
	VenueID   string `form:"venue_id" validate:"required,number,max=18"`
	StartTime string `form:"start_time" validate:"required,showtime"`
	Token     string `form:"form_token"`
}

// NewShowForm returns an empty show form whose start time defaults to now.
func NewShowForm(now time.Time) ShowForm {
	return ShowForm{StartTime: now.Format("2006-01-02 15:04:05")}
}

func ValidateShow(f *ShowForm) Result {
	f.ArtistID = strings.TrimSpace(f.ArtistID)
	f.VenueID = strings.TrimSpace(f.VenueID)
	f.StartTime = strings.TrimSpace(f.StartTime)
	return check(f)
}

// Show converts a validated form. Times without a zone are read in loc.
func (f *ShowForm) Show(loc *time.Location) (domain.Show, error) {
	const op = "forms.ShowForm.Show"

	venueID, err := strconv.ParseInt(f.VenueID, 10, 64)
	if err != nil {
		return domain.Show{}, fmt.Errorf("%s: venue_id: %w", op, err)
	}

	artistID, err := strconv.ParseInt(f.ArtistID, 10, 64)
	if err != nil {
		return domain.Show{}, fmt.Errorf("%s: artist_id: %w", op, err)
	}

	if loc == nil {
		loc = time.UTC
	}

	start, err := parseShowTime(f.StartTime, loc)
	if err != nil {
		return domain.Show{}, fmt.Errorf("%s: start_time: %w", op, err)
	}

	return domain.Show{
		StartTime: start,
		VenueID:   venueID,
		ArtistID:  artistID,
	}, nil
}

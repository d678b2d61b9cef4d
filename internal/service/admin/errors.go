package admin

import (
	"errors"
)

var (
	ErrVenueNotFound        = errors.New("venue not found")
	ErrArtistNotFound       = errors.New("artist not found")
	ErrUnknownVenueOrArtist = errors.New("venue or artist does not exist")
)

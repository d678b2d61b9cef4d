// Package seed loads the sample directory shipped with the binary and dumps
// stored venues and artists in the same CSV layout.
package seed

import (
	"context"
	"embed"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/kirinyoku/fyyur/internal/domain"
)

//go:embed fixtures/*.csv
var fixtures embed.FS

var (
	venueColumns  = []string{"name", "city", "state", "address", "phone", "genres", "facebook_link", "image_link", "website", "seeking_talent", "seeking_description"}
	artistColumns = []string{"name", "city", "state", "phone", "genres", "facebook_link", "image_link", "website", "seeking_venue", "seeking_description"}
	showColumns   = []string{"venue", "artist", "start_time"}
)

var ErrBadReference = errors.New("show references a row that does not exist")

// Sink receives the parsed records. The admin service satisfies it.
type Sink interface {
	CreateVenue(ctx context.Context, v domain.Venue) (int64, error)
	CreateArtist(ctx context.Context, a domain.Artist) (int64, error)
	CreateShow(ctx context.Context, s domain.Show) (int64, error)
}

// ShowRef is a show whose venue and artist are 1-based row numbers in the
// venue and artist fixtures.
type ShowRef struct {
	VenueRow  int
	ArtistRow int
	StartTime time.Time
}

type Stats struct {
	Venues  int
	Artists int
	Shows   int
}

// Load writes the embedded fixtures to sink. Shows are attached to the IDs
// the sink assigned, so the target does not need to be empty.
func Load(ctx context.Context, sink Sink) (Stats, error) {
	const op = "seed.Load"

	var st Stats

	venues, err := readFixture("venues.csv", ParseVenues)
	if err != nil {
		return st, fmt.Errorf("%s: %w", op, err)
	}
	artists, err := readFixture("artists.csv", ParseArtists)
	if err != nil {
		return st, fmt.Errorf("%s: %w", op, err)
	}
	shows, err := readFixture("shows.csv", ParseShows)
	if err != nil {
		return st, fmt.Errorf("%s: %w", op, err)
	}

	venueIDs := make([]int64, 0, len(venues))
	for _, v := range venues {
		id, err := sink.CreateVenue(ctx, v)
		if err != nil {
			return st, fmt.Errorf("%s: venue %q: %w", op, v.Name, err)
		}
		venueIDs = append(venueIDs, id)
		st.Venues++
	}

	artistIDs := make([]int64, 0, len(artists))
	for _, a := range artists {
		id, err := sink.CreateArtist(ctx, a)
		if err != nil {
			return st, fmt.Errorf("%s: artist %q: %w", op, a.Name, err)
		}
		artistIDs = append(artistIDs, id)
		st.Artists++
	}

	for i, ref := range shows {
		if ref.VenueRow < 1 || ref.VenueRow > len(venueIDs) || ref.ArtistRow < 1 || ref.ArtistRow > len(artistIDs) {
			return st, fmt.Errorf("%s: show %d: %w", op, i+1, ErrBadReference)
		}

		_, err := sink.CreateShow(ctx, domain.Show{
			StartTime: ref.StartTime,
			VenueID:   venueIDs[ref.VenueRow-1],
			ArtistID:  artistIDs[ref.ArtistRow-1],
		})
		if err != nil {
			return st, fmt.Errorf("%s: show %d: %w", op, i+1, err)
		}
		st.Shows++
	}

	return st, nil
}

func readFixture[T any](name string, parse func(io.Reader) ([]T, error)) ([]T, error) {
	f, err := fixtures.Open("fixtures/" + name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	out, err := parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return out, nil
}

func ParseVenues(r io.Reader) ([]domain.Venue, error) {
	return parseRows(r, venueColumns, func(row record) (domain.Venue, error) {
		seeking, err := row.bool("seeking_talent")
		if err != nil {
			return domain.Venue{}, err
		}
		return domain.Venue{
			Name:               row.get("name"),
			City:               row.get("city"),
			State:              row.get("state"),
			Address:            row.get("address"),
			Phone:              row.get("phone"),
			Genres:             domain.ParseGenres(row.get("genres")),
			FacebookLink:       row.get("facebook_link"),
			ImageLink:          row.get("image_link"),
			Website:            row.get("website"),
			SeekingTalent:      seeking,
			SeekingDescription: row.get("seeking_description"),
		}, nil
	})
}

func ParseArtists(r io.Reader) ([]domain.Artist, error) {
	return parseRows(r, artistColumns, func(row record) (domain.Artist, error) {
		seeking, err := row.bool("seeking_venue")
		if err != nil {
			return domain.Artist{}, err
		}
		return domain.Artist{
			Name:               row.get("name"),
			City:               row.get("city"),
			State:              row.get("state"),
			Phone:              row.get("phone"),
			Genres:             domain.ParseGenres(row.get("genres")),
			FacebookLink:       row.get("facebook_link"),
			ImageLink:          row.get("image_link"),
			Website:            row.get("website"),
			SeekingVenue:       seeking,
			SeekingDescription: row.get("seeking_description"),
		}, nil
	})
}

func ParseShows(r io.Reader) ([]ShowRef, error) {
	return parseRows(r, showColumns, func(row record) (ShowRef, error) {
		venue, err := strconv.Atoi(row.get("venue"))
		if err != nil {
			return ShowRef{}, fmt.Errorf("venue: %w", err)
		}
		artist, err := strconv.Atoi(row.get("artist"))
		if err != nil {
			return ShowRef{}, fmt.Errorf("artist: %w", err)
		}
		start, err := time.Parse(time.RFC3339, row.get("start_time"))
		if err != nil {
			return ShowRef{}, fmt.Errorf("start_time: %w", err)
		}
		return ShowRef{VenueRow: venue, ArtistRow: artist, StartTime: start}, nil
	})
}

// DumpVenues writes venues in the layout ParseVenues reads.
func DumpVenues(w io.Writer, venues []domain.Venue) error {
	rows := make([][]string, 0, len(venues))
	for _, v := range venues {
		rows = append(rows, []string{
			v.Name, v.City, v.State, v.Address, v.Phone,
			domain.SerializeGenres(v.Genres),
			v.FacebookLink, v.ImageLink, v.Website,
			strconv.FormatBool(v.SeekingTalent), v.SeekingDescription,
		})
	}
	return writeRows(w, "seed.DumpVenues", venueColumns, rows)
}

// DumpArtists writes artists in the layout ParseArtists reads.
func DumpArtists(w io.Writer, artists []domain.Artist) error {
	rows := make([][]string, 0, len(artists))
	for _, a := range artists {
		rows = append(rows, []string{
			a.Name, a.City, a.State, a.Phone,
			domain.SerializeGenres(a.Genres),
			a.FacebookLink, a.ImageLink, a.Website,
			strconv.FormatBool(a.SeekingVenue), a.SeekingDescription,
		})
	}
	return writeRows(w, "seed.DumpArtists", artistColumns, rows)
}

func writeRows(w io.Writer, op string, header []string, rows [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

type record struct {
	index  map[string]int
	fields []string
}

func (r record) get(col string) string {
	i, ok := r.index[col]
	if !ok || i >= len(r.fields) {
		return ""
	}
	return strings.TrimSpace(r.fields[i])
}

func (r record) bool(col string) (bool, error) {
	v := r.get(col)
	if v == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s: %w", col, err)
	}
	return b, nil
}

// parseRows maps columns by header name, so column order is free and
// unknown columns are ignored. Every required column must be present.
func parseRows[T any](r io.Reader, required []string, build func(record) (T, error)) ([]T, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, h := range header {
		index[strings.TrimSpace(h)] = i
	}
	for _, col := range required {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("header: missing column %q", col)
		}
	}

	var out []T
	for line := 2; ; line++ {
		fields, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		v, err := build(record{index: index, fields: fields})
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		out = append(out, v)
	}

	return out, nil
}

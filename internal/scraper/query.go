package scraper

import (
	"fmt"

	mapset "github.com/deckarep/golang-set/v2"
)

// WorkLocation is the site's numeric code for where the work happens.
type WorkLocation string

const (
	OnSite WorkLocation = "1"
	Remote WorkLocation = "2"
	Hybrid WorkLocation = "3"
)

// workLocationOrder fixes the code-join order regardless of how the set was
// built, so the same query always produces the same URL.
var workLocationOrder = []WorkLocation{OnSite, Remote, Hybrid}

// ParseWorkLocation maps a config name to its code.
func ParseWorkLocation(name string) (WorkLocation, error) {
	switch name {
	case "on_site", "onsite":
		return OnSite, nil
	case "remote":
		return Remote, nil
	case "hybrid":
		return Hybrid, nil
	default:
		return "", fmt.Errorf("unknown work location %q (want on_site, remote or hybrid)", name)
	}
}

// SearchQuery describes one search. It is immutable once constructed.
type SearchQuery struct {
	Keywords      string
	RecencyDays   int
	Location      string
	GeoID         string
	WorkLocations mapset.Set[WorkLocation]
}

// NewSearchQuery validates and builds a query. The work-location set must be
// non-empty and the recency window non-negative.
func NewSearchQuery(keywords string, recencyDays int, location, geoID string, workLocations ...WorkLocation) (SearchQuery, error) {
	if recencyDays < 0 {
		return SearchQuery{}, fmt.Errorf("recency days must be >= 0, got %d", recencyDays)
	}
	if len(workLocations) == 0 {
		return SearchQuery{}, fmt.Errorf("at least one work location is required")
	}
	return SearchQuery{
		Keywords:      keywords,
		RecencyDays:   recencyDays,
		Location:      location,
		GeoID:         geoID,
		WorkLocations: mapset.NewSet(workLocations...),
	}, nil
}

// Params is the request-parameter translation of a SearchQuery.
type Params struct {
	Keywords         string `json:"keywords"`
	Seconds          int    `json:"n_seconds"`
	Location         string `json:"location"`
	GeoID            string `json:"geo_id"`
	WorkLocationCode string `json:"work_location"`
}

// Params translates the query into request parameters. It is a pure
// function: the recency window becomes seconds and the work-location set
// becomes a comma-joined code string in fixed enum order.
func (q SearchQuery) Params() Params {
	return Params{
		Keywords:         q.Keywords,
		Seconds:          daysToSeconds(q.RecencyDays),
		Location:         q.Location,
		GeoID:            q.GeoID,
		WorkLocationCode: joinWorkLocations(q.WorkLocations),
	}
}

func daysToSeconds(days int) int {
	return days * 24 * 3600
}

func joinWorkLocations(set mapset.Set[WorkLocation]) string {
	code := ""
	for _, wl := range workLocationOrder {
		if set == nil || !set.Contains(wl) {
			continue
		}
		if code != "" {
			code += ","
		}
		code += string(wl)
	}
	return code
}

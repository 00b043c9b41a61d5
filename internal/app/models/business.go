package models

import (
	"bytes"
	"strconv"

	"github.com/goccy/go-json"
)

// BusinessID accepts both string and numeric identifiers from the API.
type BusinessID string

func (id *BusinessID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = BusinessID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = BusinessID(n.String())
	return nil
}

func (id BusinessID) String() string { return string(id) }

// Business is a business record as served by the recommendations API.
type Business struct {
	ID       BusinessID `json:"id"`
	Name     string     `json:"name"`
	Category string     `json:"category"`
	Ranking  float64    `json:"ranking"`
	ImageURL string     `json:"image_url,omitempty"`
	Lat      *float64   `json:"lat,omitempty"`
	Lng      *float64   `json:"lng,omitempty"`
}

// HasCoordinates reports whether both coordinates are present and non-zero.
func (b Business) HasCoordinates() bool {
	return b.Lat != nil && b.Lng != nil && *b.Lat != 0 && *b.Lng != 0
}

// RankingLabel formats the ranking in its shortest form ("4.5", "4").
func (b Business) RankingLabel() string {
	return FormatRanking(b.Ranking)
}

func FormatRanking(r float64) string {
	return strconv.FormatFloat(r, 'f', -1, 64)
}

// Coordinates is a [lat, lng] pair.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// BusinessPage is one page of the full business listing.
type BusinessPage struct {
	Businesses  []Business `json:"businesses"`
	TotalPages  int        `json:"total_pages"`
	CurrentPage int        `json:"current_page"`
}

// Rating is a single star rating submitted for a business.
type Rating struct {
	BusinessID BusinessID `json:"negocio_id"`
	Score      int        `json:"puntuacion"`
}

const (
	MinScore = 1
	MaxScore = 5
)

func (r Rating) Valid() bool {
	return r.BusinessID != "" && r.Score >= MinScore && r.Score <= MaxScore
}

// RecommendationType selects the query parameter sent to the recommendations endpoint.
type RecommendationType string

const (
	ByUserID   RecommendationType = "user_id"
	BySearch   RecommendationType = "search"
	ByCategory RecommendationType = "category"
)

// ParseRecommendationType maps unknown values to ByUserID.
func ParseRecommendationType(s string) RecommendationType {
	switch RecommendationType(s) {
	case BySearch, ByCategory:
		return RecommendationType(s)
	default:
		return ByUserID
	}
}

// PopularQuery is the query value that asks for the generic popular list.
const PopularQuery = "popular"

package view

import (
	"net/url"
	"strings"

	"github.com/FACorreiaa/negocios-templui/internal/app/models"
)

const (
	PlaceholderImage = "https://via.placeholder.com/300x200"

	NoRecommendationsMessage = "Inicia sesión o valora negocios para recibir recomendaciones personalizadas."
	RecommendationsFailed    = "No se pudieron cargar las recomendaciones."
	BusinessesFailed         = "No se pudieron cargar los negocios."
)

// RatingScale is the set of values a visitor can give a business.
var RatingScale = []int{1, 2, 3, 4, 5}

type RatingControl struct {
	BusinessID string
	Values     []int
}

// Card describes one business card.
type Card struct {
	ID        string
	Name      string
	Category  string
	ImageSrc  string
	ImageAlt  string
	Stars     Stars
	Ranking   string
	DetailURL string
	Rating    RatingControl
}

// CardGrid is the full content of a card container: either cards or a
// single placeholder message, never nothing.
type CardGrid struct {
	Cards       []Card
	Placeholder string
}

func (g CardGrid) Empty() bool { return len(g.Cards) == 0 }

// BusinessCards maps records to cards in input order.
func BusinessCards(list []models.Business, imageBase string) CardGrid {
	if len(list) == 0 {
		return CardGrid{Placeholder: NoRecommendationsMessage}
	}
	cards := make([]Card, 0, len(list))
	for _, b := range list {
		cards = append(cards, Card{
			ID:        b.ID.String(),
			Name:      b.Name,
			Category:  b.Category,
			ImageSrc:  ImageSrc(imageBase, b.ImageURL),
			ImageAlt:  "Imagen de " + b.Name,
			Stars:     StarsFor(b.Ranking),
			Ranking:   b.RankingLabel(),
			DetailURL: DetailURL(b.ID),
			Rating:    RatingControl{BusinessID: b.ID.String(), Values: RatingScale},
		})
	}
	return CardGrid{Cards: cards}
}

// MessageGrid is a grid holding only msg, used for failures.
func MessageGrid(msg string) CardGrid {
	return CardGrid{Placeholder: msg}
}

// DetailURL links to the business detail page.
func DetailURL(id models.BusinessID) string {
	return "/negocio/" + url.PathEscape(id.String())
}

// ImageSrc resolves a stored image reference against base. Absolute URLs are
// kept, and a missing reference falls back to the placeholder image.
func ImageSrc(base, ref string) string {
	if ref == "" {
		return PlaceholderImage
	}
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") || strings.HasPrefix(ref, "//") {
		return ref
	}
	if base == "" {
		return ref
	}
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(ref, "/")
}

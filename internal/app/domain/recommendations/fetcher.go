package recommendations

import (
	"context"
	"math/rand/v2"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/text/unicode/norm"

	"github.com/FACorreiaa/negocios-templui/internal/app/models"
	"github.com/FACorreiaa/negocios-templui/internal/app/observability/metrics"
)

// Bounds used to place businesses that arrive without coordinates.
const (
	MinLat = 9.71
	MaxLat = 9.72
	MinLng = -75.13
	MaxLng = -75.12
)

type Source string

const (
	SourcePrimary Source = "primary"
	SourcePopular Source = "popular"
	SourceNone    Source = "none"
)

// Upstream is the part of the business API the fetcher needs.
type Upstream interface {
	Recommendations(ctx context.Context, kind models.RecommendationType, query string) ([]models.Business, error)
	PopularBusinesses(ctx context.Context) ([]models.Business, error)
}

// Result is the list to display and where it came from. Businesses is empty
// when Source is SourceNone.
type Result struct {
	Businesses []models.Business
	Source     Source
}

type Fetcher struct {
	api    Upstream
	logger *zap.Logger
	rnd    func() float64
}

func NewFetcher(api Upstream, logger *zap.Logger) *Fetcher {
	return &Fetcher{api: api, logger: logger, rnd: rand.Float64}
}

// GetRecommendations asks for the personalised list and falls back to the
// popular list, then to nothing. Every returned list is enriched.
func (f *Fetcher) GetRecommendations(ctx context.Context, query string, kind models.RecommendationType) Result {
	if query == "" {
		query = models.PopularQuery
	}

	result := f.fetch(ctx, query, kind)
	metrics.Inc(ctx, metrics.Get().RecommendationSource, "source", string(result.Source), "type", string(kind))
	return result
}

func (f *Fetcher) fetch(ctx context.Context, query string, kind models.RecommendationType) Result {
	list, err := f.api.Recommendations(ctx, kind, query)
	if err == nil {
		return Result{Businesses: Enrich(list, f.rnd), Source: SourcePrimary}
	}
	f.logger.Warn("Recommendations unavailable, trying popular businesses",
		zap.String("type", string(kind)),
		zap.String("query", query),
		zap.Error(err))

	list, err = f.api.PopularBusinesses(ctx)
	if err == nil {
		return Result{Businesses: Enrich(list, f.rnd), Source: SourcePopular}
	}
	f.logger.Error("Popular businesses unavailable", zap.Error(err))
	return Result{Source: SourceNone}
}

// Enrich returns a copy of list where every missing or zero coordinate is
// replaced by a random point inside the default area. Order is kept.
func Enrich(list []models.Business, rnd func() float64) []models.Business {
	out := make([]models.Business, len(list))
	for i, b := range list {
		if b.Lat == nil || *b.Lat == 0 {
			lat := MinLat + rnd()*(MaxLat-MinLat)
			b.Lat = &lat
		}
		if b.Lng == nil || *b.Lng == 0 {
			lng := MinLng + rnd()*(MaxLng-MinLng)
			b.Lng = &lng
		}
		out[i] = b
	}
	return out
}

// NormalizeTerm trims a typed search term and puts it in NFC form.
func NormalizeTerm(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

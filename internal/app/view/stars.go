package view

import (
	"math"
	"strings"

	"github.com/FACorreiaa/negocios-templui/internal/app/models"
)

const (
	FullStar = "★"
	HalfStar = "½"
)

// Stars is the visual form of a ranking: Full whole stars and an optional
// half star.
type Stars struct {
	Full int
	Half bool
}

// StarsFor uses the integer part of r; any fractional part adds a half star.
// Values are never rounded. Rankings above models.MaxScore show MaxScore
// full stars.
func StarsFor(r float64) Stars {
	if math.IsNaN(r) || r <= 0 {
		return Stars{}
	}
	if r >= models.MaxScore {
		return Stars{Full: models.MaxScore}
	}
	whole := math.Floor(r)
	return Stars{Full: int(whole), Half: r != whole}
}

func (s Stars) String() string {
	var b strings.Builder
	if s.Full > 0 {
		b.WriteString(strings.Repeat(FullStar, min(s.Full, models.MaxScore)))
	}
	if s.Half {
		b.WriteString(HalfStar)
	}
	return b.String()
}

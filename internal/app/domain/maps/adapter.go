package maps

import (
	"fmt"
	"strings"
	"sync"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/FACorreiaa/negocios-templui/internal/app/models"
	"github.com/FACorreiaa/negocios-templui/internal/pkg/config"
)

// MarkersEvent is the client event that carries marker updates.
const MarkersEvent = "map:markers"

type TileLayer struct {
	URL         string `json:"url"`
	Attribution string `json:"attribution"`
}

type Marker struct {
	Lat      float64 `json:"lat"`
	Lng      float64 `json:"lng"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
}

// Instance is the state of one live map widget.
type Instance struct {
	ID             string             `json:"id"`
	Center         models.Coordinates `json:"center"`
	Zoom           int                `json:"zoom"`
	Tiles          TileLayer          `json:"tiles"`
	Markers        []Marker           `json:"markers"`
	InvalidateSize bool               `json:"invalidateSize"`
}

// MarkerUpdate replaces the markers of instance InstanceID on the client.
type MarkerUpdate struct {
	InstanceID string   `json:"instanceId"`
	Markers    []Marker `json:"markers"`
}

// Adapter owns at most one live map instance.
type Adapter struct {
	mu       sync.Mutex
	center   models.Coordinates
	zoom     int
	tiles    TileLayer
	current  *Instance
	disposed int
}

func NewAdapter(cfg config.MapConfig) *Adapter {
	return &Adapter{
		center: models.Coordinates{Lat: cfg.CenterLat, Lng: cfg.CenterLng},
		zoom:   cfg.Zoom,
		tiles:  TileLayer{URL: cfg.TileURL, Attribution: cfg.Attribution},
	}
}

// InitMap disposes the current instance, if any, and creates a new one
// centred at center, or at the configured default when center is nil.
func (a *Adapter) InitMap(center *models.Coordinates) (Instance, bool) {
	if a == nil {
		return Instance{}, false
	}
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.current != nil {
		a.current = nil
		a.disposed++
	}
	c := a.center
	if center != nil {
		c = *center
	}
	a.current = &Instance{
		ID:             uuid.NewString(),
		Center:         c,
		Zoom:           a.zoom,
		Tiles:          a.tiles,
		Markers:        []Marker{},
		InvalidateSize: true,
	}
	return a.current.snapshot(), true
}

// AddMarkersToMap clears every marker of the current instance and adds one
// per business with both coordinates. Without an instance it does nothing.
func (a *Adapter) AddMarkersToMap(list []models.Business) (MarkerUpdate, bool) {
	if a == nil {
		return MarkerUpdate{}, false
	}
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.current == nil {
		return MarkerUpdate{}, false
	}
	markers := make([]Marker, 0, len(list))
	for _, b := range list {
		if !b.HasCoordinates() {
			continue
		}
		markers = append(markers, Marker{Lat: *b.Lat, Lng: *b.Lng, Name: b.Name, Category: b.Category})
	}
	a.current.Markers = markers
	return MarkerUpdate{InstanceID: a.current.ID, Markers: append([]Marker(nil), markers...)}, true
}

// Current returns a copy of the live instance.
func (a *Adapter) Current() (Instance, bool) {
	if a == nil {
		return Instance{}, false
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.current == nil {
		return Instance{}, false
	}
	return a.current.snapshot(), true
}

// Disposed counts instances replaced by InitMap.
func (a *Adapter) Disposed() int {
	if a == nil {
		return 0
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.disposed
}

func (i *Instance) snapshot() Instance {
	cp := *i
	cp.Markers = append([]Marker(nil), i.Markers...)
	return cp
}

// TriggerHeader encodes update as an HX-Trigger header value. Browsers read
// header bytes as Latin-1, so every non-ASCII rune is sent as a \u escape.
func TriggerHeader(update MarkerUpdate) (string, error) {
	payload, err := json.Marshal(map[string]MarkerUpdate{MarkersEvent: update})
	if err != nil {
		return "", err
	}
	return asciiJSON(payload), nil
}

// asciiJSON rewrites non-ASCII runes of encoded JSON as \uXXXX escapes,
// using surrogate pairs outside the BMP. Non-ASCII bytes only occur inside
// JSON strings, so the result decodes to the same value.
func asciiJSON(payload []byte) string {
	var b strings.Builder
	b.Grow(len(payload))
	for _, r := range string(payload) {
		if r < utf8.RuneSelf {
			b.WriteRune(r)
			continue
		}
		if r1, r2 := utf16.EncodeRune(r); r1 != utf8.RuneError {
			fmt.Fprintf(&b, `\u%04x\u%04x`, r1, r2)
			continue
		}
		fmt.Fprintf(&b, `\u%04x`, r)
	}
	return b.String()
}

// ConfigJSON encodes the instance for the map container's data attribute.
func ConfigJSON(instance Instance) (string, error) {
	payload, err := json.Marshal(instance)
	if err != nil {
		return "", err
	}
	return string(payload), nil
}

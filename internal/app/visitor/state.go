// Package visitor holds the UI state owned by one browser session: the map
// widget, the chat transcript and the request sequence counters.
package visitor

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/FACorreiaa/negocios-templui/internal/app/domain/maps"
	"github.com/FACorreiaa/negocios-templui/internal/app/models"
	"github.com/FACorreiaa/negocios-templui/internal/app/sequence"
	"github.com/FACorreiaa/negocios-templui/internal/pkg/cache"
	"github.com/FACorreiaa/negocios-templui/internal/pkg/config"
)

const (
	contextKey = "visitor_state"
	pageKey    = "visitor_page"

	// PageHeader carries the id of the page load an HTMX request comes from.
	PageHeader = "X-Page-Id"

	// MaxPages is how many page loads keep their own map and sequence state.
	MaxPages = 8
	// MaxTranscriptMessages bounds the stored chat history.
	MaxTranscriptMessages = 100
)

// State is shared by every tab of one browser. Map and Sequence belong to
// the default page, used by requests that name no page load.
type State struct {
	ID       string
	Map      *maps.Adapter
	Chat     *Transcript
	Sequence *sequence.Guard

	mapCfg config.MapConfig
	mu     sync.Mutex
	pages  map[string]*Page
	order  []string
}

// Page is the map instance and request ordering of one page load.
type Page struct {
	ID       string
	Map      *maps.Adapter
	Sequence *sequence.Guard
}

// Store keeps visitor state for StateTTL after last use.
type Store struct {
	states *cache.UnifiedCache[*State]
	mapCfg config.MapConfig
}

func NewStore(cfg *config.Config, logger *zap.Logger) *Store {
	return &Store{
		states: cache.NewUnifiedCache[*State](cfg.StateTTL, "visitors", logger),
		mapCfg: cfg.Map,
	}
}

// For returns the state of visitor id, creating it on first use.
func (s *Store) For(id string) *State {
	return s.states.GetOrCreate(id, func() *State {
		return &State{
			ID:       id,
			Map:      maps.NewAdapter(s.mapCfg),
			Chat:     &Transcript{},
			Sequence: sequence.NewGuard(),
			mapCfg:   s.mapCfg,
			pages:    make(map[string]*Page),
		}
	})
}

func (s *Store) Size() int { return s.states.Size() }

// Metrics reports hit/miss counts of the state cache.
func (s *Store) Metrics() cache.CacheMetrics { return s.states.GetMetrics() }

// Attach stores state on the request context.
func Attach(c *gin.Context, state *State) {
	c.Set(contextKey, state)
}

// FromContext returns the visitor state, or nil when none was attached.
// Every State accessor below tolerates a nil receiver.
func FromContext(c *gin.Context) *State {
	v, ok := c.Get(contextKey)
	if !ok {
		return nil
	}
	state, _ := v.(*State)
	return state
}

// NewPage registers a page load with its own map and sequence state. The
// oldest page is forgotten once MaxPages are live.
func (s *State) NewPage() *Page {
	if s == nil {
		return nil
	}
	page := &Page{
		ID:       uuid.NewString(),
		Map:      maps.NewAdapter(s.mapCfg),
		Sequence: sequence.NewGuard(),
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pages == nil {
		s.pages = make(map[string]*Page)
	}
	s.pages[page.ID] = page
	s.order = append(s.order, page.ID)
	for len(s.order) > MaxPages {
		delete(s.pages, s.order[0])
		s.order = s.order[1:]
	}
	return page
}

// Page returns page load id, or the default page when id is empty or unknown.
func (s *State) Page(id string) *Page {
	if s == nil {
		return nil
	}
	if id != "" {
		s.mu.Lock()
		page, ok := s.pages[id]
		s.mu.Unlock()
		if ok {
			return page
		}
	}
	return &Page{Map: s.Map, Sequence: s.Sequence}
}

// OpenPage starts a new page load and makes it the request's page.
func OpenPage(c *gin.Context) *Page {
	page := FromContext(c).NewPage()
	c.Set(pageKey, page)
	return page
}

// CurrentPage returns the page opened by this request, else the one named
// by the PageHeader.
func CurrentPage(c *gin.Context) *Page {
	if v, ok := c.Get(pageKey); ok {
		if page, ok := v.(*Page); ok {
			return page
		}
	}
	return FromContext(c).Page(c.GetHeader(PageHeader))
}

func (p *Page) PageID() string {
	if p == nil {
		return ""
	}
	return p.ID
}

func (p *Page) MapAdapter() *maps.Adapter {
	if p == nil {
		return nil
	}
	return p.Map
}

func (p *Page) Issue(target sequence.Target) uint64 {
	if p == nil || p.Sequence == nil {
		return 0
	}
	return p.Sequence.Issue(target)
}

func (p *Page) IsLatest(target sequence.Target, ticket uint64) bool {
	if p == nil || p.Sequence == nil {
		return true
	}
	return p.Sequence.IsLatest(target, ticket)
}

func (s *State) MapAdapter() *maps.Adapter {
	if s == nil {
		return nil
	}
	return s.Map
}

func (s *State) Transcript() *Transcript {
	if s == nil {
		return nil
	}
	return s.Chat
}

// Issue returns a ticket for target. Without state every ticket is latest.
func (s *State) Issue(target sequence.Target) uint64 {
	if s == nil {
		return 0
	}
	return s.Sequence.Issue(target)
}

func (s *State) IsLatest(target sequence.Target, ticket uint64) bool {
	if s == nil {
		return true
	}
	return s.Sequence.IsLatest(target, ticket)
}

// Transcript is the chat history plus panel visibility. Only the last
// MaxTranscriptMessages are kept.
type Transcript struct {
	mu       sync.Mutex
	open     bool
	messages []models.ChatMessage
}

// Append adds msgs in order and returns them as stored.
func (t *Transcript) Append(msgs ...models.ChatMessage) []models.ChatMessage {
	if t == nil {
		return msgs
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	now := time.Now()
	for i := range msgs {
		if msgs[i].SentAt.IsZero() {
			msgs[i].SentAt = now
		}
	}
	t.messages = append(t.messages, msgs...)
	if over := len(t.messages) - MaxTranscriptMessages; over > 0 {
		t.messages = append([]models.ChatMessage(nil), t.messages[over:]...)
	}
	return msgs
}

func (t *Transcript) Messages() []models.ChatMessage {
	if t == nil {
		return nil
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]models.ChatMessage(nil), t.messages...)
}

// Toggle flips panel visibility and returns the new state.
func (t *Transcript) Toggle() bool {
	if t == nil {
		return false
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.open = !t.open
	return t.open
}

func (t *Transcript) Close() {
	if t == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.open = false
}

func (t *Transcript) IsOpen() bool {
	if t == nil {
		return false
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.open
}

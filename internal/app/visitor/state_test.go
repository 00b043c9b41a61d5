package visitor

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/negocios-templui/internal/app/models"
	"github.com/FACorreiaa/negocios-templui/internal/app/sequence"
	"github.com/FACorreiaa/negocios-templui/internal/pkg/config"
)

func TestStoreFor(t *testing.T) {
	store := NewStore(&config.Config{StateTTL: time.Minute, Map: config.MapConfig{Zoom: 13}}, nil)

	a := store.For("v1")
	b := store.For("v1")
	c := store.For("v2")
	assert.Same(t, a, b)
	assert.NotSame(t, a, c)
	require.NotNil(t, a.Map)
	require.NotNil(t, a.Chat)
	require.NotNil(t, a.Sequence)
	assert.Equal(t, 2, store.Size())
}

func TestTranscript(t *testing.T) {
	tr := &Transcript{}
	assert.False(t, tr.IsOpen())
	assert.True(t, tr.Toggle())
	assert.False(t, tr.Toggle())
	tr.Toggle()
	tr.Close()
	assert.False(t, tr.IsOpen())

	tr.Append(models.ChatMessage{Sender: models.SenderUser, Text: "hola"})
	tr.Append(models.ChatMessage{Sender: models.SenderBot, Text: "hi"})
	msgs := tr.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, "hola", msgs[0].Text)
	assert.Equal(t, "hi", msgs[1].Text)
	assert.False(t, msgs[0].SentAt.IsZero())

	msgs[0].Text = "changed"
	assert.Equal(t, "hola", tr.Messages()[0].Text)
}

func TestNilStateIsSafe(t *testing.T) {
	var s *State
	assert.NotPanics(t, func() {
		assert.Nil(t, s.MapAdapter())
		assert.Nil(t, s.Transcript())
		ticket := s.Issue(sequence.Businesses)
		assert.True(t, s.IsLatest(sequence.Businesses, ticket))
		s.Transcript().Append(models.ChatMessage{Text: "x"})
		assert.False(t, s.Transcript().IsOpen())
	})
}

func TestPagesKeepSeparateMaps(t *testing.T) {
	store := NewStore(&config.Config{StateTTL: time.Minute, Map: config.MapConfig{Zoom: 13}}, nil)
	s := store.For("v1")

	first := s.NewPage()
	second := s.NewPage()
	require.NotEqual(t, first.ID, second.ID)

	a, ok := first.MapAdapter().InitMap(nil)
	require.True(t, ok)
	_, ok = second.MapAdapter().InitMap(nil)
	require.True(t, ok)

	current, ok := s.Page(first.ID).MapAdapter().Current()
	require.True(t, ok)
	assert.Equal(t, a.ID, current.ID)
	assert.Zero(t, first.MapAdapter().Disposed())

	ticket := first.Issue(sequence.Recommendations)
	second.Issue(sequence.Recommendations)
	assert.True(t, first.IsLatest(sequence.Recommendations, ticket), "another tab does not make a request stale")
}

func TestPageFallsBackToDefault(t *testing.T) {
	s := NewStore(&config.Config{StateTTL: time.Minute}, nil).For("v1")

	for _, id := range []string{"", "unknown"} {
		page := s.Page(id)
		require.NotNil(t, page)
		assert.Empty(t, page.PageID())
		assert.Same(t, s.Map, page.MapAdapter())
		assert.Same(t, s.Sequence, page.Sequence)
	}
}

func TestOldestPageIsForgotten(t *testing.T) {
	s := NewStore(&config.Config{StateTTL: time.Minute}, nil).For("v1")

	oldest := s.NewPage()
	for i := 0; i < MaxPages; i++ {
		s.NewPage()
	}

	assert.Same(t, s.Map, s.Page(oldest.ID).MapAdapter())
}

func TestTranscriptIsCapped(t *testing.T) {
	tr := &Transcript{}
	for i := 0; i < MaxTranscriptMessages+10; i++ {
		tr.Append(models.ChatMessage{Text: strconv.Itoa(i)})
	}

	msgs := tr.Messages()
	require.Len(t, msgs, MaxTranscriptMessages)
	assert.Equal(t, "10", msgs[0].Text)
	assert.Equal(t, strconv.Itoa(MaxTranscriptMessages+9), msgs[len(msgs)-1].Text)
}

func TestNilPageIsSafe(t *testing.T) {
	var s *State
	assert.NotPanics(t, func() {
		page := s.NewPage()
		assert.Nil(t, page)
		assert.Nil(t, s.Page("x"))
		assert.Empty(t, page.PageID())
		assert.Nil(t, page.MapAdapter())
		ticket := page.Issue(sequence.Businesses)
		assert.True(t, page.IsLatest(sequence.Businesses, ticket))
	})
}

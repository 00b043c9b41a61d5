package apiclient

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/negocios-templui/internal/app/models"
	"github.com/FACorreiaa/negocios-templui/internal/pkg/config"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := New(config.UpstreamConfig{
		BaseURL:         srv.URL,
		Timeout:         2 * time.Second,
		BreakerFailures: 3,
		BreakerTimeout:  time.Minute,
	}, nil)
	require.NoError(t, err)
	return c
}

func TestRecommendations(t *testing.T) {
	t.Run("sends the type as query parameter name", func(t *testing.T) {
		var gotQuery string
		c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/recomendaciones", r.URL.Path)
			gotQuery = r.URL.RawQuery
			_, _ = io.WriteString(w, `[{"id":"B1","name":"El Fogon","category":"Restaurantes","ranking":4.5,"lat":9.712,"lng":-75.127},{"id":7,"name":"La Cueva","category":"Bares","ranking":4}]`)
		}))

		list, err := c.Recommendations(context.Background(), models.ByCategory, "Bares")
		require.NoError(t, err)
		assert.Equal(t, "category=Bares", gotQuery)
		require.Len(t, list, 2)
		assert.Equal(t, models.BusinessID("B1"), list[0].ID)
		assert.Equal(t, models.BusinessID("7"), list[1].ID)
		assert.True(t, list[0].HasCoordinates())
		assert.False(t, list[1].HasCoordinates())
	})

	t.Run("non-success status is an API error", func(t *testing.T) {
		c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = io.WriteString(w, `{"error":"boom"}`)
		}))

		_, err := c.Recommendations(context.Background(), models.ByUserID, "u1")
		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusInternalServerError, apiErr.Status)
		assert.Equal(t, "boom", apiErr.Message)
	})

	t.Run("undecodable body is malformed", func(t *testing.T) {
		c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.WriteString(w, `{"not":"a list"}`)
		}))

		_, err := c.Recommendations(context.Background(), models.ByUserID, "u1")
		assert.ErrorIs(t, err, ErrMalformed)
	})
}

func TestTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	c, err := New(config.UpstreamConfig{BaseURL: srv.URL, Timeout: time.Second}, nil)
	require.NoError(t, err)

	_, err = c.PopularBusinesses(context.Background())
	assert.ErrorIs(t, err, ErrTransport)
}

func TestBreakerOpensAfterConsecutiveServerErrors(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))

	for i := 0; i < 3; i++ {
		_, err := c.PopularBusinesses(context.Background())
		require.Error(t, err)
	}
	_, err := c.PopularBusinesses(context.Background())
	assert.ErrorIs(t, err, ErrTransport)
	assert.Equal(t, int32(3), calls.Load())
}

func TestBusinesses(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/todos_los_negocios", r.URL.Path)
		assert.Equal(t, "3", r.URL.Query().Get("page"))
		assert.Equal(t, "12", r.URL.Query().Get("limit"))
		_, _ = io.WriteString(w, `{"businesses":[{"id":"B9","name":"Parque","category":"Sitios Turisticos","ranking":4.7}],"total_pages":3,"current_page":3}`)
	}))

	page, err := c.Businesses(context.Background(), 3, 12)
	require.NoError(t, err)
	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, 3, page.CurrentPage)
	require.Len(t, page.Businesses, 1)
	assert.Equal(t, "Parque", page.Businesses[0].Name)
}

func TestRate(t *testing.T) {
	t.Run("posts business id and score", func(t *testing.T) {
		c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/api/valorar", r.URL.Path)
			var body map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "B1", body["negocio_id"])
			assert.EqualValues(t, 5, body["puntuacion"])
			_, _ = io.WriteString(w, `{"message":"Valoración guardada"}`)
		}))

		msg, err := c.Rate(context.Background(), models.Rating{BusinessID: "B1", Score: 5})
		require.NoError(t, err)
		assert.Equal(t, "Valoración guardada", msg)
	})

	t.Run("duplicate vote carries the server error", func(t *testing.T) {
		c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = io.WriteString(w, `{"error":"Ya valoraste este negocio"}`)
		}))

		_, err := c.Rate(context.Background(), models.Rating{BusinessID: "B1", Score: 5})
		require.Error(t, err)
		assert.Equal(t, "Ya valoraste este negocio", UserMessage(err, "fallback"))
	})
}

func TestChat(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"type":"negocios","data":[{"_id":"X1","nombre":"X","categoria":"Bares","promedio_ranking":3.5,"imagen_url":"img/x.png"}]}`)
	}))

	reply, err := c.Chat(context.Background(), "bares")
	require.NoError(t, err)
	assert.True(t, reply.HasBusinesses())
	assert.Equal(t, "X", reply.Data[0].Name)
	assert.InDelta(t, 3.5, reply.Data[0].Ranking, 1e-9)
}

func TestLoginRelaysSessionCookies(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "session", Value: "abc", Path: "/"})
		_, _ = io.WriteString(w, `{"message":"Inicio de sesión exitoso","user_id":"u-42"}`)
	}))

	res, err := c.Login(context.Background(), "a@b.co", "pw")
	require.NoError(t, err)
	assert.Equal(t, "u-42", res.UserID)
	require.Len(t, res.Cookies, 1)
	assert.Equal(t, "session", res.Cookies[0].Name)
}

func TestSessionCookiesAreForwarded(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie("session")
		if assert.NoError(t, err) {
			assert.Equal(t, "abc", cookie.Value)
		}
		_, _ = io.WriteString(w, `{"message":"ok"}`)
	}))

	ctx := WithSession(context.Background(), []*http.Cookie{{Name: "session", Value: "abc"}})
	_, err := c.Rate(ctx, models.Rating{BusinessID: "B1", Score: 3})
	require.NoError(t, err)
}

func TestRegisterFailure(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = io.WriteString(w, `{"error":"El correo ya está registrado"}`)
	}))

	err := c.Register(context.Background(), "Ana", "a@b.co", "pw")
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrTransport))
	assert.Equal(t, "El correo ya está registrado", UserMessage(err, ""))
}

func TestPopularBusinessesSurvivesCallerCancellation(t *testing.T) {
	started := make(chan struct{})
	var hits atomic.Int32
	var sawCookie atomic.Bool
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) == 1 {
			close(started)
		}
		if _, err := r.Cookie("session"); err == nil {
			sawCookie.Store(true)
		}
		time.Sleep(200 * time.Millisecond)
		_, _ = io.WriteString(w, `[{"id":"1","name":"Asadero","category":"Restaurantes","ranking":4}]`)
	}))

	ctxA, cancelA := context.WithCancel(WithSession(context.Background(), []*http.Cookie{{Name: "session", Value: "visitor-a"}}))
	defer cancelA()

	errA := make(chan error, 1)
	go func() {
		_, err := c.PopularBusinesses(ctxA)
		errA <- err
	}()
	<-started

	type result struct {
		list []models.Business
		err  error
	}
	resB := make(chan result, 1)
	go func() {
		list, err := c.PopularBusinesses(context.Background())
		resB <- result{list, err}
	}()

	time.Sleep(20 * time.Millisecond)
	cancelA()

	err := <-errA
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTransport)

	b := <-resB
	require.NoError(t, b.err)
	require.Len(t, b.list, 1)
	assert.Equal(t, "Asadero", b.list[0].Name)
	assert.Equal(t, int32(1), hits.Load())
	assert.False(t, sawCookie.Load(), "the shared call carries no visitor session")
}

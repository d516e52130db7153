package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkhouse/tattoo-booking-backend/internal/availability"
)

type stubResolver struct {
	mu           sync.Mutex
	result       *availability.Availability
	err          error
	fn           availability.UpdateFunc
	unsubscribed chan struct{}
}

func (s *stubResolver) Resolve(_ context.Context, date time.Time) (*availability.Availability, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := *s.result
	out.Date = date
	return &out, nil
}

func (s *stubResolver) Subscribe(_ context.Context, date time.Time, fn availability.UpdateFunc) (func(), error) {
	if s.err != nil {
		return nil, s.err
	}
	s.mu.Lock()
	s.fn = fn
	s.mu.Unlock()

	a := *s.result
	a.Date = date
	fn(&a, nil)

	var once sync.Once
	return func() {
		once.Do(func() { close(s.unsubscribed) })
	}, nil
}

func (s *stubResolver) push(a *availability.Availability, err error) {
	s.mu.Lock()
	fn := s.fn
	s.mu.Unlock()
	fn(a, err)
}

func newTestEngine(r Resolver) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	h := NewHandler(r, NewStreamServer(nil, slog.Default()))
	noAuth := func(c *gin.Context) { c.Next() }
	RegisterRoutes(engine.Group("/v1"), h, noAuth)
	return engine
}

func TestHandler_Get(t *testing.T) {
	resolver := &stubResolver{result: &availability.Availability{
		Available: []string{"10:00", "12:00"},
		Occupied:  []string{"11:00"},
	}}
	engine := newTestEngine(resolver)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/availability?date=2026-10-18", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Warning"))

	var body AvailabilityResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "2026-10-18", body.Date)
	assert.Equal(t, []string{"10:00", "12:00"}, body.Slots)
	assert.Equal(t, []string{"11:00"}, body.OccupiedSlots)
	assert.Equal(t, []string{}, body.ElapsedSlots)
	assert.False(t, body.Degraded)
}

func TestHandler_Get_Degraded(t *testing.T) {
	resolver := &stubResolver{result: &availability.Availability{
		Available: availability.DefaultSlots,
		Degraded:  true,
	}}
	engine := newTestEngine(resolver)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/availability?date=2026-10-18", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Warning"), "degraded")
	assert.Contains(t, w.Body.String(), `"degraded":true`)
}

func TestHandler_Get_Errors(t *testing.T) {
	tests := []struct {
		name  string
		query string
		err   error
		want  int
	}{
		{"Missing date", "", nil, http.StatusBadRequest},
		{"Malformed date", "?date=18.10.2026", nil, http.StatusBadRequest},
		{"Outside horizon", "?date=2027-01-01", availability.ErrOutsideHorizon, http.StatusBadRequest},
		{"Storage down", "?date=2026-10-18", availability.ErrUpstream, http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := newTestEngine(&stubResolver{err: tt.err, result: &availability.Availability{}})
			w := httptest.NewRecorder()
			engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/availability"+tt.query, nil))
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func dialStream(t *testing.T, server *httptest.Server, query string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/v1/availability/stream" + query
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readFrame(t *testing.T, conn *websocket.Conn) StreamFrame {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var f StreamFrame
	require.NoError(t, conn.ReadJSON(&f))
	return f
}

func TestHandler_Stream(t *testing.T) {
	resolver := &stubResolver{
		result:       &availability.Availability{Available: availability.DefaultSlots},
		unsubscribed: make(chan struct{}),
	}
	server := httptest.NewServer(newTestEngine(resolver))
	defer server.Close()

	conn := dialStream(t, server, "?date=2026-10-18")

	first := readFrame(t, conn)
	assert.Equal(t, FrameAvailability, first.Type)
	require.NotNil(t, first.Availability)
	assert.Equal(t, "2026-10-18", first.Availability.Date)
	assert.Equal(t, availability.DefaultSlots, first.Availability.Slots)

	resolver.push(&availability.Availability{
		Date:      time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC),
		Available: []string{"10:00"},
		Occupied:  []string{"11:00", "12:00", "14:00", "15:00", "16:00", "17:00"},
	}, nil)
	second := readFrame(t, conn)
	assert.Equal(t, []string{"10:00"}, second.Availability.Slots)

	resolver.push(nil, availability.ErrUpstream)
	third := readFrame(t, conn)
	assert.Equal(t, FrameError, third.Type)
	assert.NotEmpty(t, third.Error)

	// Closing the socket tears the subscription down.
	require.NoError(t, conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")))
	select {
	case <-resolver.unsubscribed:
	case <-time.After(2 * time.Second):
		t.Fatal("subscription not released after client closed")
	}
}

func TestHandler_Stream_RejectedSubscription(t *testing.T) {
	resolver := &stubResolver{err: availability.ErrOutsideHorizon, result: &availability.Availability{}}
	server := httptest.NewServer(newTestEngine(resolver))
	defer server.Close()

	conn := dialStream(t, server, "?date=2027-06-01")

	f := readFrame(t, conn)
	assert.Equal(t, FrameError, f.Type)

	_, _, err := conn.ReadMessage()
	var closeErr *websocket.CloseError
	require.ErrorAs(t, err, &closeErr)
	assert.Equal(t, websocket.ClosePolicyViolation, closeErr.Code)
}

func TestHandler_Stream_BadDate(t *testing.T) {
	server := httptest.NewServer(newTestEngine(&stubResolver{result: &availability.Availability{}}))
	defer server.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/v1/availability/stream?date=tomorrow"
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skyreserve/skyreserve/internal/domain"
	"github.com/skyreserve/skyreserve/internal/mockapi"
)

func newTestClient(t *testing.T) (*Client, *mockapi.Server) {
	t.Helper()
	backend := mockapi.New()
	srv := httptest.NewServer(backend)
	t.Cleanup(srv.Close)
	// Resource routes require a bearer token, like the real backend.
	c := NewClient(srv.URL)
	c.SetTokenFunc(func() string { return "test-token" })
	return c, backend
}

// Auth endpoints hit the host root; resource endpoints hit /api. A
// recording server verifies the split.
func TestClientBasePathSplit(t *testing.T) {
	var paths []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/auth/login":
			_, _ = w.Write([]byte(`{"token":"t1","user":{"id":"u1","email":"a@b.c"}}`))
		default:
			_, _ = w.Write([]byte(`[]`))
		}
	}))
	t.Cleanup(srv.Close)

	c := NewClient(srv.URL)
	_, err := c.Login(context.Background(), "a@b.c", "pw")
	require.NoError(t, err)
	_, err = c.SearchFlights(context.Background(), FlightQuery{})
	require.NoError(t, err)
	_, err = c.ListBookings(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"/auth/login", "/api/flights", "/api/bookings"}, paths)
}

func TestClientAttachesBearerToken(t *testing.T) {
	var header string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	}))
	t.Cleanup(srv.Close)

	c := NewClient(srv.URL)
	c.SetTokenFunc(func() string { return "tok-1" })

	_, err := c.ListBookings(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-1", header)

	// No header when logged out.
	c.SetTokenFunc(func() string { return "" })
	_, err = c.ListBookings(context.Background())
	require.NoError(t, err)
	assert.Empty(t, header)
}

func TestClientAuthDeniedHook(t *testing.T) {
	c, backend := newTestClient(t)
	backend.DenyBearer(true)
	c.SetTokenFunc(func() string { return "stale" })

	var fired int
	c.SetOnAuthDenied(func() { fired++ })

	_, err := c.ListBookings(context.Background())
	require.Error(t, err)
	assert.Equal(t, ErrAuthDenied, CodeOf(err))
	assert.Equal(t, 1, fired)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
}

func TestClientServerErrorMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"message":"account already exists"}`))
	}))
	t.Cleanup(srv.Close)

	c := NewClient(srv.URL)
	_, err := c.Register(context.Background(), domain.RegistrationProfile{Email: "a@b.c"})
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, ErrStatus, apiErr.Code)
	assert.Equal(t, http.StatusConflict, apiErr.Status)
	assert.Contains(t, apiErr.Message, "account already exists")
}

func TestClientTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	t.Cleanup(srv.Close)

	c := NewClient(srv.URL, WithHTTPClient(&http.Client{Timeout: 20 * time.Millisecond}))
	_, err := c.ListBookings(context.Background())
	require.Error(t, err)
	assert.Equal(t, ErrTimeout, CodeOf(err))
}

func TestSimulatePayment(t *testing.T) {
	details := PaymentDetails{CardNumber: "4111 1111 1111 1111", Expiry: "12/29", CVV: "123"}

	start := time.Now()
	err := SimulatePayment(context.Background(), details, 10*time.Millisecond)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 10*time.Millisecond)

	// Missing fields are rejected before any delay.
	err = SimulatePayment(context.Background(), PaymentDetails{CardNumber: "4111"}, time.Hour)
	require.Error(t, err)

	// Cancellation aborts the wait.
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = SimulatePayment(ctx, details, time.Hour)
	require.Error(t, err)
}

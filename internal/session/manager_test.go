package session

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skyreserve/skyreserve/internal/api"
	"github.com/skyreserve/skyreserve/internal/domain"
	"github.com/skyreserve/skyreserve/internal/mockapi"
	"github.com/skyreserve/skyreserve/internal/storage"
)

var testUser = domain.User{
	ID:         "u1",
	Email:      "asha@example.com",
	Phone:      "+91 98765 43210",
	FullName:   "Asha Verma",
	DOB:        "1991-04-02",
	PassportID: "P1234567",
	Role:       "user",
}

type fixture struct {
	backend *mockapi.Server
	store   *storage.MemoryStore
	manager *Manager
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	backend := mockapi.New()
	backend.SeedAccount(testUser.Email, "secret", testUser)

	srv := httptest.NewServer(backend)
	t.Cleanup(srv.Close)

	store := storage.NewMemoryStore()
	client := api.NewClient(srv.URL)
	manager := NewManager(store, client, nil)
	manager.Restore(context.Background())
	return &fixture{backend: backend, store: store, manager: manager}
}

func storedValue(t *testing.T, s storage.Store, key string) (string, bool) {
	t.Helper()
	v, ok, err := s.Get(context.Background(), key)
	require.NoError(t, err)
	return v, ok
}

func TestLoginTokenUserShape(t *testing.T) {
	f := newFixture(t)

	user, err := f.manager.Login(context.Background(), testUser.Email, "secret")
	require.NoError(t, err)
	assert.Equal(t, testUser, user)

	sess := f.manager.Session()
	require.True(t, sess.LoggedIn())
	assert.Equal(t, TokenServerIssued, sess.Token.Source)
	assert.Equal(t, testUser.Email, sess.User.Email)
}

func TestLoginSynthesizesTokenForBareAndArrayShapes(t *testing.T) {
	for _, shape := range []mockapi.AuthShape{mockapi.ShapeBareUser, mockapi.ShapeArray} {
		f := newFixture(t)
		f.backend.SetShape(shape)

		user, err := f.manager.Login(context.Background(), testUser.Email, "secret")
		require.NoError(t, err)
		assert.Equal(t, testUser.ID, user.ID)

		sess := f.manager.Session()
		require.True(t, sess.LoggedIn())
		assert.Equal(t, TokenSynthesized, sess.Token.Source, "shape %v", shape)
	}
}

// The backend leaks a password field in every auth shape; it must
// never survive normalization, in memory or on disk.
func TestLoginStripsPassword(t *testing.T) {
	for _, shape := range []mockapi.AuthShape{mockapi.ShapeTokenUser, mockapi.ShapeBareUser, mockapi.ShapeArray} {
		f := newFixture(t)
		f.backend.SetShape(shape)

		user, err := f.manager.Login(context.Background(), testUser.Email, "secret")
		require.NoError(t, err)

		inMemory, err := json.Marshal(user)
		require.NoError(t, err)
		assert.NotContains(t, strings.ToLower(string(inMemory)), "password")

		persisted, ok := storedValue(t, f.store, storage.KeyUser)
		require.True(t, ok)
		assert.NotContains(t, strings.ToLower(persisted), "password")
	}
}

func TestLoginEmptyArrayFailsAndPreservesSession(t *testing.T) {
	f := newFixture(t)

	// Establish a logged-in session first.
	_, err := f.manager.Login(context.Background(), testUser.Email, "secret")
	require.NoError(t, err)
	before := f.manager.Session()

	f.backend.SetShape(mockapi.ShapeEmptyArray)
	_, err = f.manager.Login(context.Background(), testUser.Email, "secret")
	require.Error(t, err)
	assert.Equal(t, ErrAuthFailed, CodeOf(err))
	assert.Equal(t, api.ErrAuthEmptyResult, api.CodeOf(err))

	after := f.manager.Session()
	assert.Equal(t, before.Token, after.Token)
	assert.Equal(t, *before.User, *after.User)
}

func TestLoginUnrecognizedShapeFails(t *testing.T) {
	f := newFixture(t)
	f.backend.SetShape(mockapi.ShapeGarbage)

	_, err := f.manager.Login(context.Background(), testUser.Email, "secret")
	require.Error(t, err)
	assert.Equal(t, api.ErrAuthShapeUnrecognized, api.CodeOf(err))
	assert.False(t, f.manager.LoggedIn())
}

func TestLoginBadCredentials(t *testing.T) {
	f := newFixture(t)

	_, err := f.manager.Login(context.Background(), testUser.Email, "wrong")
	require.Error(t, err)
	assert.Equal(t, ErrAuthFailed, CodeOf(err))
	assert.False(t, f.manager.LoggedIn())
}

func TestLoginRejectionClearsExistingSession(t *testing.T) {
	f := newFixture(t)

	_, err := f.manager.Login(context.Background(), testUser.Email, "secret")
	require.NoError(t, err)
	require.True(t, f.manager.LoggedIn())

	// A 401 means the backend no longer trusts us at all: the denied
	// hook force-logs-out, so the prior session does not survive a
	// failed re-login.
	_, err = f.manager.Login(context.Background(), testUser.Email, "wrong")
	require.Error(t, err)
	assert.Equal(t, ErrAuthFailed, CodeOf(err))
	assert.False(t, f.manager.LoggedIn())
}

func TestLoginMissingInput(t *testing.T) {
	f := newFixture(t)

	_, err := f.manager.Login(context.Background(), "", "secret")
	assert.Equal(t, ErrAuthMissingInput, CodeOf(err))

	_, err = f.manager.Login(context.Background(), "   ", "secret")
	assert.Equal(t, ErrAuthMissingInput, CodeOf(err))

	_, err = f.manager.Login(context.Background(), testUser.Email, "")
	assert.Equal(t, ErrAuthMissingInput, CodeOf(err))
}

func TestRegister(t *testing.T) {
	f := newFixture(t)

	profile := domain.RegistrationProfile{
		FullName:   "Rohan Iyer",
		Email:      "rohan@example.com",
		Phone:      "+91 91234 56789",
		DOB:        "1988-11-20",
		PassportID: "P7654321",
		Password:   "hunter2",
	}
	user, err := f.manager.Register(context.Background(), profile)
	require.NoError(t, err)
	assert.Equal(t, profile.Email, user.Email)
	assert.True(t, f.manager.LoggedIn())

	// The new account can log in afterwards.
	f.manager.Logout(context.Background())
	_, err = f.manager.Login(context.Background(), profile.Email, profile.Password)
	require.NoError(t, err)
}

func TestRegisterMissingFields(t *testing.T) {
	f := newFixture(t)

	_, err := f.manager.Register(context.Background(), domain.RegistrationProfile{
		Email:    "rohan@example.com",
		Password: "hunter2",
	})
	require.Error(t, err)
	assert.Equal(t, ErrRegistrationIncomplete, CodeOf(err))
	assert.Contains(t, err.Error(), "fullName")
	assert.False(t, f.manager.LoggedIn())
}

func TestLogoutIdempotent(t *testing.T) {
	f := newFixture(t)

	_, err := f.manager.Login(context.Background(), testUser.Email, "secret")
	require.NoError(t, err)

	f.manager.Logout(context.Background())
	assert.False(t, f.manager.LoggedIn())
	_, ok := storedValue(t, f.store, storage.KeyToken)
	assert.False(t, ok)
	_, ok = storedValue(t, f.store, storage.KeyUser)
	assert.False(t, ok)

	// Second logout is a no-op, not an error.
	f.manager.Logout(context.Background())
	assert.False(t, f.manager.LoggedIn())
}

func TestLogoutClearsBookingContext(t *testing.T) {
	f := newFixture(t)

	_, err := f.manager.Login(context.Background(), testUser.Email, "secret")
	require.NoError(t, err)

	f.manager.SelectFlight(domain.Flight{ID: "f1", FlightNumber: "SR101"})
	f.manager.SetActiveBooking("b1")
	booking := f.manager.Booking()
	require.NotNil(t, booking.SelectedFlight)
	require.Equal(t, "b1", booking.BookingID)

	f.manager.Logout(context.Background())
	booking = f.manager.Booking()
	assert.Nil(t, booking.SelectedFlight)
	assert.Empty(t, booking.BookingID)
}

// Round-trip: a persisted session rehydrates in a fresh manager with
// an equal user and the same token.
func TestRestoreRoundTrip(t *testing.T) {
	f := newFixture(t)

	loggedIn, err := f.manager.Login(context.Background(), testUser.Email, "secret")
	require.NoError(t, err)
	tokenBefore := f.manager.Session().Token

	fresh := NewManager(f.store, api.NewClient("http://unused.invalid"), nil)
	fresh.Restore(context.Background())

	sess := fresh.Session()
	require.True(t, sess.LoggedIn())
	assert.Equal(t, loggedIn, *sess.User)
	assert.Equal(t, tokenBefore, sess.Token)
	// Booking context never survives a restart.
	assert.Nil(t, fresh.Booking().SelectedFlight)
}

func TestRestoreMalformedUserClearsStorage(t *testing.T) {
	malformed := []string{"{not json", "null", "", "   "}
	for _, raw := range malformed {
		store := storage.NewMemoryStore()
		ctx := context.Background()
		require.NoError(t, store.Set(ctx, storage.KeyToken, "tok-1"))
		require.NoError(t, store.Set(ctx, storage.KeyUser, raw))

		m := NewManager(store, api.NewClient("http://unused.invalid"), nil)
		m.Restore(ctx)

		assert.False(t, m.LoggedIn(), "user blob %q", raw)
		_, ok := storedValue(t, store, storage.KeyToken)
		assert.False(t, ok, "token should be cleared for user blob %q", raw)
		_, ok = storedValue(t, store, storage.KeyUser)
		assert.False(t, ok, "user should be cleared for user blob %q", raw)

		// Idempotent on repeated init.
		m.Restore(ctx)
		assert.False(t, m.LoggedIn())
	}
}

func TestRestoreHalfPersistedStateClearsBoth(t *testing.T) {
	ctx := context.Background()

	// Token without user.
	store := storage.NewMemoryStore()
	require.NoError(t, store.Set(ctx, storage.KeyToken, "tok-1"))
	m := NewManager(store, api.NewClient("http://unused.invalid"), nil)
	m.Restore(ctx)
	assert.False(t, m.LoggedIn())
	_, ok := storedValue(t, store, storage.KeyToken)
	assert.False(t, ok)

	// User without token.
	store = storage.NewMemoryStore()
	userJSON, err := json.Marshal(testUser)
	require.NoError(t, err)
	require.NoError(t, store.Set(ctx, storage.KeyUser, string(userJSON)))
	m = NewManager(store, api.NewClient("http://unused.invalid"), nil)
	m.Restore(ctx)
	assert.False(t, m.LoggedIn())
	_, ok = storedValue(t, store, storage.KeyUser)
	assert.False(t, ok)
}

// Any 401 from any endpoint forces a logout and fires the UI hook.
func TestAuthorizationDeniedForcesLogout(t *testing.T) {
	backend := mockapi.New()
	backend.SeedAccount(testUser.Email, "secret", testUser)
	srv := httptest.NewServer(backend)
	t.Cleanup(srv.Close)

	store := storage.NewMemoryStore()
	client := api.NewClient(srv.URL)
	m := NewManager(store, client, nil)
	m.Restore(context.Background())

	_, err := m.Login(context.Background(), testUser.Email, "secret")
	require.NoError(t, err)

	var hookFired bool
	m.SetOnForcedLogout(func() { hookFired = true })

	backend.DenyBearer(true)
	_, err = client.ListBookings(context.Background())
	require.Error(t, err)
	assert.Equal(t, api.ErrAuthDenied, api.CodeOf(err))

	assert.True(t, hookFired)
	assert.False(t, m.LoggedIn())
	_, ok := storedValue(t, store, storage.KeyToken)
	assert.False(t, ok)
}

func TestSessionSnapshotIsACopy(t *testing.T) {
	f := newFixture(t)

	_, err := f.manager.Login(context.Background(), testUser.Email, "secret")
	require.NoError(t, err)

	snapshot := f.manager.Session()
	snapshot.User.FullName = "Mutated"
	assert.Equal(t, testUser.FullName, f.manager.Session().User.FullName)
}

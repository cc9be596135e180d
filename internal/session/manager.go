// Package session owns the process-wide authenticated-session and
// booking-context state. It is the single source of truth for "who is
// logged in" and "what is currently being booked": the session part
// survives restarts through the credential store, the booking context
// is memory-only and dies with the process or on logout.
package session

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/skyreserve/skyreserve/internal/api"
	"github.com/skyreserve/skyreserve/internal/domain"
	"github.com/skyreserve/skyreserve/internal/log"
	"github.com/skyreserve/skyreserve/internal/storage"
)

// Session is the authenticated identity and its credential. The two
// fields are set and cleared together: Token is present if and only if
// User is present.
type Session struct {
	User  *domain.User
	Token Token
}

// LoggedIn reports whether a credential is held.
func (s Session) LoggedIn() bool { return s.Token.Present() }

// BookingContext is the in-progress booking selection. Memory-only;
// reset on logout.
type BookingContext struct {
	SelectedFlight *domain.Flight
	BookingID      string
}

// Manager owns Session and BookingContext and exposes the only
// mutation paths for either. Construct one per process with NewManager
// and call Restore before first use.
type Manager struct {
	store  storage.Store
	client *api.Client
	logger *log.Logger

	mu      sync.Mutex
	session Session
	booking BookingContext

	// onForcedLogout runs after an automatic logout triggered by an
	// authorization-denied response, so the UI layer can direct the
	// user back to the login entry point.
	onForcedLogout func()
}

// NewManager wires a manager to its credential store and API client.
// The manager registers itself as the client's token supplier and as
// its authorization-denied hook: any 401 from any endpoint forces a
// logout, keeping local state consistent with server-side session
// invalidation.
func NewManager(store storage.Store, client *api.Client, logger *log.Logger) *Manager {
	if logger == nil {
		logger = log.DefaultLogger()
	}
	m := &Manager{store: store, client: client, logger: logger}
	client.SetTokenFunc(m.TokenValue)
	client.SetOnAuthDenied(m.forceLogout)
	return m
}

// SetOnForcedLogout registers the UI hook run after an automatic
// logout.
func (m *Manager) SetOnForcedLogout(fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onForcedLogout = fn
}

// isRestoreSentinel reports persisted user values meaning "nothing
// here". Older clients persisted the literal string "null" for a
// logged-out user; a store may still hold one.
func isRestoreSentinel(raw string) bool {
	trimmed := strings.TrimSpace(raw)
	return trimmed == "" || trimmed == "null"
}

// Restore initializes the session from the credential store. Corrupt
// or sentinel user blobs, and half-persisted states (token without
// user or user without token), yield a logged-out session and clear
// both keys so the next start does not trip over them again. Restore
// never fails the process; problems are logged and self-healed.
func (m *Manager) Restore(ctx context.Context) {
	tokenValue, hasToken, err := m.store.Get(ctx, storage.KeyToken)
	if err != nil {
		m.logger.WithError(err).Warn("session restore: token read failed")
		hasToken = false
	}
	userRaw, hasUser, err := m.store.Get(ctx, storage.KeyUser)
	if err != nil {
		m.logger.WithError(err).Warn("session restore: user read failed")
		hasUser = false
	}

	var user *domain.User
	switch {
	case !hasUser || isRestoreSentinel(userRaw):
		user = nil
	default:
		var decoded domain.User
		if err := json.Unmarshal([]byte(userRaw), &decoded); err != nil {
			m.logger.WithError(err).Warn("session restore: corrupt user blob, clearing credentials")
			user = nil
		} else {
			user = &decoded
		}
	}

	token := Token{}
	if hasToken && tokenValue != "" {
		token = ClassifyToken(tokenValue)
	}

	// Both present or neither: a half-persisted state is treated as
	// logged out.
	if user == nil || !token.Present() {
		if hasUser || hasToken {
			m.clearStoredCredentials(ctx)
		}
		m.mu.Lock()
		m.session = Session{}
		m.booking = BookingContext{}
		m.mu.Unlock()
		return
	}

	m.mu.Lock()
	m.session = Session{User: user, Token: token}
	m.booking = BookingContext{}
	m.mu.Unlock()
	m.logger.Debug("session restored", "user", user.Email, "token_source", token.Source.String())
}

// Login authenticates with the backend and publishes the resulting
// session. On failure the previous session state is left untouched,
// with one exception: a 401 rejection fires the auth-denied hook,
// which force-logs-out and clears whatever session was held.
func (m *Manager) Login(ctx context.Context, email, password string) (domain.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return domain.User{}, NewError(ErrAuthMissingInput, "email and password are required")
	}

	result, err := m.client.Login(ctx, email, password)
	if err != nil {
		return domain.User{}, WrapError(ErrAuthFailed, "login rejected", err)
	}

	user, token, err := m.publish(ctx, result, email)
	if err != nil {
		return domain.User{}, err
	}
	m.logger.Info("logged in", "user", user.Email, "token_source", token.Source.String())
	return user, nil
}

// Register creates an account and publishes the resulting session,
// mirroring Login.
func (m *Manager) Register(ctx context.Context, profile domain.RegistrationProfile) (domain.User, error) {
	if missing := profile.MissingFields(); len(missing) > 0 {
		return domain.User{}, NewError(ErrRegistrationIncomplete,
			"missing required fields: "+strings.Join(missing, ", "))
	}

	result, err := m.client.Register(ctx, profile)
	if err != nil {
		return domain.User{}, WrapError(ErrRegistrationFailed, "registration rejected", err)
	}

	user, token, err := m.publish(ctx, result, profile.Email)
	if err != nil {
		return domain.User{}, err
	}
	m.logger.Info("registered", "user", user.Email, "token_source", token.Source.String())
	return user, nil
}

// publish persists the normalized auth result and then updates the
// in-memory session. Storage writes happen before the in-memory state
// becomes visible, so a consumer observing a logged-in session can
// always find a consistent persisted copy.
func (m *Manager) publish(ctx context.Context, result api.AuthResult, identifier string) (domain.User, Token, error) {
	token := Token{Value: result.Token, Source: TokenServerIssued}
	if result.Token == "" {
		token = SynthesizeToken(identifier, time.Now())
		m.logger.Warn("backend omitted token, using local placeholder", "user", identifier)
	}

	userJSON, err := json.Marshal(result.User)
	if err != nil {
		return domain.User{}, Token{}, WrapError(ErrPersistFailed, "encode user", err)
	}
	if err := m.store.Set(ctx, storage.KeyUser, string(userJSON)); err != nil {
		return domain.User{}, Token{}, WrapError(ErrPersistFailed, "persist user", err)
	}
	if err := m.store.Set(ctx, storage.KeyToken, token.Value); err != nil {
		return domain.User{}, Token{}, WrapError(ErrPersistFailed, "persist token", err)
	}

	user := result.User
	m.mu.Lock()
	m.session = Session{User: &user, Token: token}
	m.mu.Unlock()
	return user, token, nil
}

// Logout clears persisted credentials and resets both Session and
// BookingContext. Safe to call when already logged out.
func (m *Manager) Logout(ctx context.Context) {
	m.clearStoredCredentials(ctx)
	m.mu.Lock()
	wasLoggedIn := m.session.LoggedIn()
	m.session = Session{}
	m.booking = BookingContext{}
	m.mu.Unlock()
	if wasLoggedIn {
		m.logger.Info("logged out")
	}
}

func (m *Manager) clearStoredCredentials(ctx context.Context) {
	if err := m.store.Delete(ctx, storage.KeyToken); err != nil {
		m.logger.WithError(err).Warn("clear stored token failed")
	}
	if err := m.store.Delete(ctx, storage.KeyUser); err != nil {
		m.logger.WithError(err).Warn("clear stored user failed")
	}
}

// forceLogout is the client's authorization-denied hook.
func (m *Manager) forceLogout() {
	m.logger.Warn("authorization denied by backend, clearing session")
	m.Logout(context.Background())
	m.mu.Lock()
	hook := m.onForcedLogout
	m.mu.Unlock()
	if hook != nil {
		hook()
	}
}

// SelectFlight records the flight being booked. Memory-only.
func (m *Manager) SelectFlight(flight domain.Flight) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.booking.SelectedFlight = &flight
}

// SetActiveBooking records the id of the booking just created.
// Memory-only.
func (m *Manager) SetActiveBooking(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.booking.BookingID = id
}

// Session returns a snapshot of the current session.
func (m *Manager) Session() Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	snapshot := m.session
	if snapshot.User != nil {
		user := *snapshot.User
		snapshot.User = &user
	}
	return snapshot
}

// Booking returns a snapshot of the current booking context.
func (m *Manager) Booking() BookingContext {
	m.mu.Lock()
	defer m.mu.Unlock()
	snapshot := m.booking
	if snapshot.SelectedFlight != nil {
		flight := *snapshot.SelectedFlight
		snapshot.SelectedFlight = &flight
	}
	return snapshot
}

// LoggedIn reports whether a credential is currently held. Protected
// UI paths gate on this alone.
func (m *Manager) LoggedIn() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session.LoggedIn()
}

// TokenValue returns the raw credential for request attachment, or ""
// when logged out.
func (m *Manager) TokenValue() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session.Token.Value
}

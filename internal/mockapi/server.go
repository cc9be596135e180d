// Package mockapi is a test fixture: an in-process stand-in for the
// reservation backend, wired into httptest servers by client and
// session tests. It reproduces the backend's observable quirks (the
// three auth response shapes, the /api prefix split, the id/flightId
// field drift) so the client code can be exercised against all of
// them. It is not a product server.
package mockapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/skyreserve/skyreserve/internal/domain"
)

// AuthShape selects which of the observed auth response shapes the
// fixture serves.
type AuthShape int

const (
	// ShapeTokenUser serves {"token": ..., "user": {...}}.
	ShapeTokenUser AuthShape = iota
	// ShapeBareUser serves the user object alone, no token.
	ShapeBareUser
	// ShapeArray serves a single-element array of user objects.
	ShapeArray
	// ShapeEmptyArray serves [] regardless of credentials.
	ShapeEmptyArray
	// ShapeGarbage serves a shape no client should accept.
	ShapeGarbage
)

// Account is a seeded credential pair with its profile.
type Account struct {
	Password string
	User     domain.User
}

// Server is the fixture backend.
type Server struct {
	mu sync.Mutex

	shape      AuthShape
	accounts   map[string]Account // by email
	flights    []map[string]any   // raw records, so tests control field drift
	bookings   []domain.Booking
	denyBearer bool

	router *mux.Router
}

// New creates a fixture with no seeded data, serving ShapeTokenUser.
func New() *Server {
	s := &Server{
		shape:    ShapeTokenUser,
		accounts: map[string]Account{},
	}
	r := mux.NewRouter()
	r.HandleFunc("/auth/login", s.handleLogin).Methods("POST")
	r.HandleFunc("/auth/register", s.handleRegister).Methods("POST")

	apiRouter := r.PathPrefix("/api").Subrouter()
	apiRouter.Use(s.requireBearer)
	apiRouter.HandleFunc("/flights", s.handleSearchFlights).Methods("GET")
	apiRouter.HandleFunc("/flights/{id}", s.handleGetFlight).Methods("GET")
	apiRouter.HandleFunc("/bookings", s.handleCreateBooking).Methods("POST")
	apiRouter.HandleFunc("/bookings", s.handleListBookings).Methods("GET")
	apiRouter.HandleFunc("/bookings/{id}/cancel", s.handleCancelBooking).Methods("PUT")
	s.router = r
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// SetShape switches the auth response shape.
func (s *Server) SetShape(shape AuthShape) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shape = shape
}

// SeedAccount registers a credential pair.
func (s *Server) SeedAccount(email, password string, user domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts[email] = Account{Password: password, User: user}
}

// SeedFlight adds a raw flight record. Raw maps let tests exercise the
// id/flightId drift and missing optional fields.
func (s *Server) SeedFlight(record map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.flights = append(s.flights, record)
}

// SeedBooking adds a booking to the list endpoint.
func (s *Server) SeedBooking(b domain.Booking) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bookings = append(s.bookings, b)
}

// Bookings returns a snapshot of stored bookings.
func (s *Server) Bookings() []domain.Booking {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Booking, len(s.bookings))
	copy(out, s.bookings)
	return out
}

// DenyBearer makes every /api request answer 401, simulating an
// expired or revoked token.
func (s *Server) DenyBearer(deny bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.denyBearer = deny
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"message": msg})
}

func (s *Server) requireBearer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		deny := s.denyBearer
		s.mu.Unlock()

		header := r.Header.Get("Authorization")
		if deny || !strings.HasPrefix(header, "Bearer ") || strings.TrimPrefix(header, "Bearer ") == "" {
			writeError(w, http.StatusUnauthorized, "invalid or expired token")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// userPayload renders a user with a password field present, the way
// careless backend versions leak it. Clients must strip it.
func userPayload(a Account) map[string]any {
	return map[string]any{
		"id":         a.User.ID,
		"email":      a.User.Email,
		"phone":      a.User.Phone,
		"fullName":   a.User.FullName,
		"dob":        a.User.DOB,
		"passportId": a.User.PassportID,
		"role":       a.User.Role,
		"password":   a.Password,
	}
}

func (s *Server) writeAuthResponse(w http.ResponseWriter, a Account) {
	s.mu.Lock()
	shape := s.shape
	s.mu.Unlock()

	switch shape {
	case ShapeTokenUser:
		writeJSON(w, http.StatusOK, map[string]any{
			"token": "srv-" + uuid.NewString(),
			"user":  userPayload(a),
		})
	case ShapeBareUser:
		writeJSON(w, http.StatusOK, userPayload(a))
	case ShapeArray:
		writeJSON(w, http.StatusOK, []map[string]any{userPayload(a)})
	case ShapeEmptyArray:
		writeJSON(w, http.StatusOK, []map[string]any{})
	case ShapeGarbage:
		writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
	}
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var creds struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		writeError(w, http.StatusBadRequest, "malformed credentials")
		return
	}

	s.mu.Lock()
	account, ok := s.accounts[creds.Email]
	shape := s.shape
	s.mu.Unlock()

	if shape == ShapeEmptyArray {
		s.writeAuthResponse(w, Account{})
		return
	}
	if !ok || account.Password != creds.Password {
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}
	s.writeAuthResponse(w, account)
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var profile domain.RegistrationProfile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		writeError(w, http.StatusBadRequest, "malformed profile")
		return
	}

	s.mu.Lock()
	if _, exists := s.accounts[profile.Email]; exists {
		s.mu.Unlock()
		writeError(w, http.StatusConflict, "account already exists")
		return
	}
	account := Account{
		Password: profile.Password,
		User: domain.User{
			ID:         "u-" + uuid.NewString(),
			Email:      profile.Email,
			Phone:      profile.Phone,
			FullName:   profile.FullName,
			DOB:        profile.DOB,
			PassportID: profile.PassportID,
			Role:       "user",
		},
	}
	s.accounts[profile.Email] = account
	s.mu.Unlock()

	s.writeAuthResponse(w, account)
}

func (s *Server) handleSearchFlights(w http.ResponseWriter, r *http.Request) {
	source := r.URL.Query().Get("source")
	destination := r.URL.Query().Get("destination")

	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]map[string]any, 0, len(s.flights))
	for _, f := range s.flights {
		if source != "" && f["source"] != source {
			continue
		}
		if destination != "" && f["destination"] != destination {
			continue
		}
		out = append(out, f)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetFlight(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, f := range s.flights {
		if f["id"] == id || f["flightId"] == id {
			writeJSON(w, http.StatusOK, f)
			return
		}
	}
	writeError(w, http.StatusNotFound, "flight not found")
}

func (s *Server) handleCreateBooking(w http.ResponseWriter, r *http.Request) {
	var req struct {
		FlightID       string  `json:"flightId"`
		PassengerName  string  `json:"passengerName"`
		PassengerPhone string  `json:"passengerPhone"`
		TotalFare      float64 `json:"totalFare"`
		Fees           float64 `json:"fees"`
		FinalAmount    float64 `json:"finalAmount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed booking")
		return
	}
	if req.FlightID == "" {
		writeError(w, http.StatusBadRequest, "flightId is required")
		return
	}

	booking := domain.Booking{
		ID:               "b-" + uuid.NewString(),
		FlightID:         req.FlightID,
		BookingReference: fmt.Sprintf("ARMS-%06d", len(s.bookings)+1),
		PassengerName:    req.PassengerName,
		PassengerPhone:   req.PassengerPhone,
		TotalFare:        req.TotalFare,
		Fees:             req.Fees,
		FinalAmount:      req.FinalAmount,
		Status:           domain.BookingConfirmed,
		PaymentStatus:    domain.PaymentCompleted,
		BookingDate:      time.Now().UTC(),
	}

	s.mu.Lock()
	if flight := s.findFlightLocked(req.FlightID); flight != nil {
		if dep, ok := flight["departureTime"].(string); ok {
			if t, err := time.Parse(time.RFC3339, dep); err == nil {
				booking.DepartureTime = t
			}
		}
	}
	s.bookings = append(s.bookings, booking)
	s.mu.Unlock()

	writeJSON(w, http.StatusCreated, booking)
}

func (s *Server) findFlightLocked(id string) map[string]any {
	for _, f := range s.flights {
		if f["id"] == id || f["flightId"] == id {
			return f
		}
	}
	return nil
}

func (s *Server) handleListBookings(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, s.bookings)
}

func (s *Server) handleCancelBooking(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.bookings {
		if s.bookings[i].ID == id {
			s.bookings[i].Status = domain.BookingCancelled
			writeJSON(w, http.StatusOK, s.bookings[i])
			return
		}
	}
	writeError(w, http.StatusNotFound, "booking not found")
}

package session

import (
	"encoding/base64"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenSource distinguishes trust levels of a credential. A
// server-issued token is whatever opaque string the backend handed out.
// A synthesized token is a local placeholder minted when the backend
// response carried a user but no token; it authenticates nothing and
// downstream code must not treat it as a real credential.
type TokenSource int

const (
	// TokenAbsent means no credential is held.
	TokenAbsent TokenSource = iota
	// TokenServerIssued is a backend-issued credential.
	TokenServerIssued
	// TokenSynthesized is a locally minted placeholder.
	TokenSynthesized
)

// String returns a short label for the source.
func (s TokenSource) String() string {
	switch s {
	case TokenServerIssued:
		return "server-issued"
	case TokenSynthesized:
		return "locally-synthesized"
	default:
		return "absent"
	}
}

// Token is an opaque credential string tagged with its trust level.
type Token struct {
	Value  string
	Source TokenSource
}

// Present reports whether a credential is held.
func (t Token) Present() bool { return t.Value != "" }

// localPrefix marks synthesized token payloads so the trust level
// survives a round-trip through persistent storage.
const localPrefix = "local:"

// SynthesizeToken mints a placeholder credential from the identifier
// and the current time. The encoding is opaque, not cryptographic.
func SynthesizeToken(identifier string, now time.Time) Token {
	payload := localPrefix + identifier + ":" + strconv.FormatInt(now.UnixNano(), 10)
	return Token{
		Value:  base64.RawURLEncoding.EncodeToString([]byte(payload)),
		Source: TokenSynthesized,
	}
}

// ClassifyToken recovers the trust level of a persisted token value.
// Values that decode to the local marker are synthesized placeholders;
// everything else is treated as server-issued.
func ClassifyToken(value string) Token {
	if value == "" {
		return Token{}
	}
	if decoded, err := base64.RawURLEncoding.DecodeString(value); err == nil &&
		strings.HasPrefix(string(decoded), localPrefix) {
		return Token{Value: value, Source: TokenSynthesized}
	}
	return Token{Value: value, Source: TokenServerIssued}
}

// ExpiresAt extracts the expiry claim when the token happens to be a
// JWT. The parse is unverified: this is introspection for display, not
// validation, which only the backend can do. ok is false for opaque
// tokens, placeholders, and JWTs without an exp claim.
func (t Token) ExpiresAt() (time.Time, bool) {
	if t.Source != TokenServerIssued {
		return time.Time{}, false
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(t.Value, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

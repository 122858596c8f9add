package session

import (
	"context"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"tech-assigner/internal/apperr"
)

// Session is the operator's authenticated context, carried explicitly into
// every backend-facing call. The platform backend is the verifier of the
// token; claims are read here only for labeling and proactive expiry.
type Session struct {
	Token      string
	AssignerID string
	ExpiresAt  time.Time
}

// Expired reports whether the session token is past its expiry claim.
// A token without an exp claim never expires locally.
func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}

// FromBearer builds a Session from an Authorization header value.
// The JWT is parsed without signature verification; a token that does not
// parse at all still yields a usable session with only the raw token set,
// since the backend makes the final call.
func FromBearer(header string) (Session, error) {
	token := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(header), "Bearer"))
	if token == "" {
		return Session{}, apperr.ErrAuthExpired
	}

	sess := Session{Token: token}

	claims := jwt.RegisteredClaims{}
	parser := jwt.NewParser(jwt.WithoutClaimsValidation())
	if _, _, err := parser.ParseUnverified(token, &claims); err != nil {
		return sess, nil
	}
	sess.AssignerID = claims.Subject
	if claims.ExpiresAt != nil {
		sess.ExpiresAt = claims.ExpiresAt.Time
	}
	return sess, nil
}

type ctxKey struct{}

// WithSession attaches a session to the context.
func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

// FromContext extracts the session placed by the auth middleware.
func FromContext(ctx context.Context) (Session, bool) {
	s, ok := ctx.Value(ctxKey{}).(Session)
	return s, ok
}

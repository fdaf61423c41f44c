package session

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/hosanna-kids/sunday-school/teacher-portal/internal/core/domain"
)

// CookieName is the cookie the session token travels in.
const CookieName = "session_token"

type tokenClaims struct {
	Role           string `json:"role"`
	ApprovalStatus string `json:"approval_status"`
	jwt.RegisteredClaims
}

// NewToken mints a signed session token for a teacher record. Claims are a
// snapshot of the record; they go stale until the next sign-in, which is
// accepted.
func NewToken(secret string, t *domain.Teacher, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := tokenClaims{
		Role:           string(t.Role),
		ApprovalStatus: string(t.ApprovalStatus),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   t.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Parse verifies a session token and returns normalized claims. Any
// verification failure returns an error; callers treat that the same as an
// absent token. Unknown role or approval status values are collapsed to
// their fail-closed defaults (TEACHER, PENDING) here so downstream policy
// never sees them.
func Parse(secret, tokenString string) (*domain.Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &tokenClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*tokenClaims)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	if claims.Subject == "" {
		return nil, errors.New("session token missing subject")
	}

	return &domain.Claims{
		TeacherID:      claims.Subject,
		Role:           domain.NormalizeRole(claims.Role),
		ApprovalStatus: domain.NormalizeApprovalStatus(claims.ApprovalStatus),
	}, nil
}

package services

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"errors"
	"math/big"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"github.com/sony/gobreaker"

	"github.com/hosanna-kids/sunday-school/teacher-portal/internal/config"
	"github.com/hosanna-kids/sunday-school/teacher-portal/internal/core/ports"
	"github.com/hosanna-kids/sunday-school/teacher-portal/internal/core/session"
)

const (
	oauthStatePrefix = "oauth:state:"
	oauthStateTTL    = 10 * time.Minute
)

var (
	ErrInvalidState     = errors.New("invalid or expired oauth state")
	ErrEmailNotVerified = errors.New("email not verified")
)

// GoogleOAuthService signs teachers in with Google and turns the verified
// identity into a teacher record plus a signed session token.
type GoogleOAuthService struct {
	clientID     string
	clientSecret string
	redirectURL  string
	authSecret   string
	sessionTTL   time.Duration
	adminEmails  []string
	teacherRepo  ports.TeacherRepository
	stateStore   *redis.Client
	stateCB      *gobreaker.CircuitBreaker
}

type googleTokenResponse struct {
	IDToken string `json:"id_token"`
}

type googleClaims struct {
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Name          string `json:"name"`
	jwt.RegisteredClaims
}

type googleJWKS struct {
	Keys []struct {
		Kid string `json:"kid"`
		N   string `json:"n"`
		E   string `json:"e"`
	} `json:"keys"`
}

func NewGoogleOAuthService(
	clientID, clientSecret, redirectURL, authSecret string,
	sessionTTL time.Duration,
	adminEmails []string,
	teacherRepo ports.TeacherRepository,
	stateStore *redis.Client,
) *GoogleOAuthService {
	return &GoogleOAuthService{
		clientID:     clientID,
		clientSecret: clientSecret,
		redirectURL:  redirectURL,
		authSecret:   authSecret,
		sessionTTL:   sessionTTL,
		adminEmails:  adminEmails,
		teacherRepo:  teacherRepo,
		stateStore:   stateStore,
		stateCB:      config.NewCircuitBreaker("Redis-State"),
	}
}

// GenerateState creates a random state for CSRF protection and stores it
// single-use in Redis.
func (s *GoogleOAuthService) GenerateState(ctx context.Context) (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	state := base64.URLEncoding.EncodeToString(b)

	_, err := s.stateCB.Execute(func() (interface{}, error) {
		return nil, s.stateStore.Set(ctx, oauthStatePrefix+state, "1", oauthStateTTL).Err()
	})
	if err != nil {
		return "", err
	}
	return state, nil
}

// ValidateState consumes the state; a second validation of the same value
// fails.
func (s *GoogleOAuthService) ValidateState(ctx context.Context, state string) error {
	if state == "" {
		return ErrInvalidState
	}
	val, err := s.stateCB.Execute(func() (interface{}, error) {
		return s.stateStore.GetDel(ctx, oauthStatePrefix+state).Result()
	})
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrInvalidState
		}
		return err
	}
	if val != "1" {
		return ErrInvalidState
	}
	return nil
}

// GetAuthURL returns the Google authorization URL
func (s *GoogleOAuthService) GetAuthURL(state string) string {
	params := url.Values{
		"client_id":     {s.clientID},
		"redirect_uri":  {s.redirectURL},
		"response_type": {"code"},
		"scope":         {"openid email profile"},
		"state":         {state},
	}
	return "https://accounts.google.com/o/oauth2/v2/auth?" + params.Encode()
}

// Authenticate exchanges code for tokens, verifies the Google identity and
// returns a session token for the upserted teacher record.
func (s *GoogleOAuthService) Authenticate(ctx context.Context, code string) (string, error) {
	idToken, err := s.exchangeCode(ctx, code)
	if err != nil {
		return "", err
	}

	email, name, err := s.verifyIDToken(ctx, idToken)
	if err != nil {
		return "", err
	}

	return s.CompleteSignIn(ctx, email, name)
}

// CompleteSignIn upserts the teacher record for a verified email and mints
// the session token. First sign-in creates a PENDING/TEACHER record unless
// the email is allowlisted, in which case the record is APPROVED/ADMIN;
// allowlisted emails are re-promoted on every sign-in.
func (s *GoogleOAuthService) CompleteSignIn(ctx context.Context, email, name string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return "", errors.New("empty email")
	}

	admin := config.IsAdminEmail(email, s.adminEmails)

	teacher, err := s.teacherRepo.UpsertOnSignIn(ctx, email, name, admin)
	if err != nil {
		return "", err
	}

	return session.NewToken(s.authSecret, teacher, s.sessionTTL)
}

func (s *GoogleOAuthService) exchangeCode(ctx context.Context, code string) (string, error) {
	data := url.Values{
		"client_id":     {s.clientID},
		"client_secret": {s.clientSecret},
		"code":          {code},
		"grant_type":    {"authorization_code"},
		"redirect_uri":  {s.redirectURL},
	}

	req, _ := http.NewRequestWithContext(ctx, "POST", "https://oauth2.googleapis.com/token", strings.NewReader(data.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var result googleTokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", err
	}

	if result.IDToken == "" {
		return "", errors.New("no id_token in response")
	}

	return result.IDToken, nil
}

func (s *GoogleOAuthService) verifyIDToken(ctx context.Context, idToken string) (email, name string, err error) {
	keys, err := s.fetchGoogleKeys(ctx)
	if err != nil {
		return "", "", err
	}

	token, err := jwt.ParseWithClaims(idToken, &googleClaims{}, func(t *jwt.Token) (interface{}, error) {
		kid, _ := t.Header["kid"].(string)
		key, ok := keys[kid]
		if !ok {
			return nil, errors.New("key not found")
		}
		return key, nil
	})
	if err != nil {
		return "", "", err
	}

	claims := token.Claims.(*googleClaims)

	if claims.Email == "" || !claims.EmailVerified {
		return "", "", ErrEmailNotVerified
	}

	return claims.Email, claims.Name, nil
}

func (s *GoogleOAuthService) fetchGoogleKeys(ctx context.Context) (map[string]*rsa.PublicKey, error) {
	req, _ := http.NewRequestWithContext(ctx, "GET", "https://www.googleapis.com/oauth2/v3/certs", nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var jwks googleJWKS
	if err := json.NewDecoder(resp.Body).Decode(&jwks); err != nil {
		return nil, err
	}

	keys := make(map[string]*rsa.PublicKey)
	for _, k := range jwks.Keys {
		nBytes, _ := base64.RawURLEncoding.DecodeString(k.N)
		eBytes, _ := base64.RawURLEncoding.DecodeString(k.E)

		var e int
		for _, b := range eBytes {
			e = e<<8 + int(b)
		}

		keys[k.Kid] = &rsa.PublicKey{
			N: new(big.Int).SetBytes(nBytes),
			E: e,
		}
	}

	return keys, nil
}

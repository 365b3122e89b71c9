package hstoken

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"pet-foster-homes/internal/ports/auth"

	"github.com/cristalhq/jwt/v4"
)

const DefaultTTL = 60 * time.Minute

var (
	ErrTokenInvalid = errors.New("token invalid")
	ErrTokenExpired = errors.New("token expired")
)

// Codec implementa auth.TokenIssuer y auth.TokenVerifier con HS256.
// La credencial se valida en este mismo servicio, así que el token se
// firma y verifica localmente (no hay verifier externo).
type Codec struct {
	signer   jwt.Signer
	verifier jwt.Verifier
	ttl      time.Duration
	now      func() time.Time
}

type sessionClaims struct {
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	ExpiresAt time.Time `json:"expires_at"`
}

func New(secret []byte, ttl time.Duration) (*Codec, error) {
	if len(secret) == 0 {
		return nil, errors.New("hstoken: empty secret")
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	signer, err := jwt.NewSignerHS(jwt.HS256, secret)
	if err != nil {
		return nil, err
	}
	verifier, err := jwt.NewVerifierHS(jwt.HS256, secret)
	if err != nil {
		return nil, err
	}

	return &Codec{
		signer:   signer,
		verifier: verifier,
		ttl:      ttl,
		now:      time.Now,
	}, nil
}

func (c *Codec) Issue(email string, role auth.Role) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || role == "" {
		return "", errors.New("hstoken: email and role required")
	}

	token, err := jwt.NewBuilder(c.signer).Build(sessionClaims{
		Email:     email,
		Role:      string(role),
		ExpiresAt: c.now().Add(c.ttl),
	})
	if err != nil {
		return "", err
	}
	return token.String(), nil
}

func (c *Codec) Verify(ctx context.Context, raw string) (auth.Claims, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return auth.Claims{}, ErrTokenInvalid
	}

	token, err := jwt.Parse([]byte(raw), c.verifier)
	if err != nil {
		return auth.Claims{}, ErrTokenInvalid
	}

	var sc sessionClaims
	if err := json.Unmarshal(token.Claims(), &sc); err != nil {
		return auth.Claims{}, ErrTokenInvalid
	}
	if sc.Email == "" || sc.Role == "" {
		return auth.Claims{}, ErrTokenInvalid
	}
	if !sc.ExpiresAt.IsZero() && c.now().After(sc.ExpiresAt) {
		return auth.Claims{}, ErrTokenExpired
	}

	return auth.Claims{
		Email: sc.Email,
		Role:  auth.Role(sc.Role),
	}, nil
}

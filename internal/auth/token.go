package auth

import (
	"errors"
	"fmt"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/spec-kit/inventory-service/internal/domain"
)

const (
	// DefaultTokenTTL is the validity window of a session token.
	DefaultTokenTTL = 24 * time.Hour

	minSecretLength = 32
)

// Claims describes the JWT payload.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// CodecOption customizes a TokenCodec.
type CodecOption func(*TokenCodec)

// WithClock replaces the codec time source.
func WithClock(now func() time.Time) CodecOption {
	return func(c *TokenCodec) {
		if now != nil {
			c.now = now
		}
	}
}

// TokenCodec issues and verifies HS256 session tokens. The secret is supplied
// once at construction and is read-only afterwards, so a codec is safe for
// concurrent use.
type TokenCodec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
	parser *jwt.Parser
}

// NewTokenCodec builds a codec around an externally provisioned secret.
func NewTokenCodec(secret []byte, ttl time.Duration, opts ...CodecOption) (*TokenCodec, error) {
	if len(secret) < minSecretLength {
		return nil, fmt.Errorf("token secret must be at least %d bytes", minSecretLength)
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}

	key := make([]byte, len(secret))
	copy(key, secret)

	c := &TokenCodec{
		secret: key,
		ttl:    ttl,
		now:    time.Now,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithoutClaimsValidation(),
		),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// TTL returns the validity window applied to new tokens.
func (c *TokenCodec) TTL() time.Duration {
	return c.ttl
}

// Encode signs a token for subject carrying role. It returns the token and its
// expiry as encoded in the exp claim.
func (c *TokenCodec) Encode(subject string, role domain.Role) (string, time.Time, error) {
	if subject == "" {
		return "", time.Time{}, errors.New("token subject required")
	}
	if !role.Valid() {
		return "", time.Time{}, fmt.Errorf("cannot issue token for role %q", role)
	}

	now := c.now()
	claims := &Claims{
		Role: role.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(c.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return tokenString, claims.ExpiresAt.Time, nil
}

// Decode verifies the signature and returns the identity it carries. Expiry is
// not checked here; see Verify and IsExpired.
func (c *TokenCodec) Decode(tokenString string) (*domain.Identity, error) {
	claims := &Claims{}
	_, err := c.parser.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
		return c.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenSignatureInvalid) {
			return nil, ErrInvalidSignature
		}
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	role, err := domain.ParseRole(claims.Role)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if claims.Subject == "" || claims.ExpiresAt == nil || claims.IssuedAt == nil {
		return nil, fmt.Errorf("%w: missing required claims", ErrMalformed)
	}

	return &domain.Identity{
		Subject:   claims.Subject,
		Role:      role,
		TokenID:   claims.ID,
		IssuedAt:  claims.IssuedAt.Time,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// Verify decodes the token and rejects it once expired.
func (c *TokenCodec) Verify(tokenString string) (*domain.Identity, error) {
	identity, err := c.Decode(tokenString)
	if err != nil {
		return nil, err
	}
	if c.expired(identity) {
		return nil, ErrExpired
	}
	return identity, nil
}

// IsExpired reports whether the token's exp claim is in the past.
func (c *TokenCodec) IsExpired(tokenString string) (bool, error) {
	identity, err := c.Decode(tokenString)
	if err != nil {
		return false, err
	}
	return c.expired(identity), nil
}

// Validate is true iff the token verifies, belongs to expectedSubject and has
// not expired.
func (c *TokenCodec) Validate(tokenString, expectedSubject string) bool {
	identity, err := c.Verify(tokenString)
	if err != nil {
		return false
	}
	return identity.Subject == expectedSubject
}

func (c *TokenCodec) expired(identity *domain.Identity) bool {
	return !c.now().Before(identity.ExpiresAt)
}

package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenPair is what login and refresh hand back to the admin portal. The
// portal retries a 401 once after exchanging the refresh token.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
}

// JWT handles token generation and validation.
type JWT struct {
	secret     []byte
	accessExp  time.Duration
	refreshExp time.Duration
}

// Claims carries the user subject, their role and the token kind. Kind
// distinguishes access tokens from refresh tokens so one cannot stand in for
// the other.
type Claims struct {
	jwt.RegisteredClaims
	Role string `json:"role,omitempty"`
	Kind string `json:"kind,omitempty"`
}

const (
	kindAccess  = "access"
	kindRefresh = "refresh"
)

// NewJWT returns a new JWT handler.
func NewJWT(secret string, accessExp, refreshExp time.Duration) *JWT {
	return &JWT{secret: []byte(secret), accessExp: accessExp, refreshExp: refreshExp}
}

// GeneratePair creates a signed access/refresh token pair for the user.
func (j *JWT) GeneratePair(subject, role string) (TokenPair, error) {
	now := time.Now()
	access, err := j.sign(subject, role, kindAccess, now.Add(j.accessExp))
	if err != nil {
		return TokenPair{}, err
	}
	refresh, err := j.sign(subject, role, kindRefresh, now.Add(j.refreshExp))
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{AccessToken: access, RefreshToken: refresh, ExpiresAt: now.Add(j.accessExp)}, nil
}

func (j *JWT) sign(subject, role, kind string, exp time.Time) (string, error) {
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(exp),
		},
		Role: role,
		Kind: kind,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(j.secret)
}

// Validate parses an access token and returns its claims.
func (j *JWT) Validate(tok string) (*Claims, error) {
	return j.validate(tok, kindAccess)
}

// ValidateRefresh parses a refresh token and returns its claims.
func (j *JWT) ValidateRefresh(tok string) (*Claims, error) {
	return j.validate(tok, kindRefresh)
}

func (j *JWT) validate(tok, kind string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tok, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return j.secret, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	if claims.Kind != kind {
		return nil, fmt.Errorf("wrong token kind")
	}
	return claims, nil
}

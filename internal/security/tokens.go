package security

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrInvalidToken is returned when a token is malformed, expired, or has a bad signature.
	ErrInvalidToken = errors.New("invalid token")
)

// SessionClaims holds JWT claims for the session token. Subject carries the user ID.
type SessionClaims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
}

// TokenProvider issues and verifies HS256 session tokens signed with a server-held secret.
type TokenProvider struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

// NewTokenProvider returns a TokenProvider signing with secret. issuer is set
// on claims and checked on verification. ttl is the token lifetime from issuance.
func NewTokenProvider(secret []byte, issuer string, ttl time.Duration) *TokenProvider {
	return &TokenProvider{
		secret: secret,
		issuer: issuer,
		ttl:    ttl,
	}
}

// Issue issues a session token for the given user. Returns the signed token
// and its expiration time (issuance + ttl).
func (p *TokenProvider) Issue(userID, email string) (token string, expiresAt time.Time, err error) {
	now := time.Now().UTC()
	expiresAt = now.Add(p.ttl)
	claims := SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    p.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		Email: email,
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	token, err = t.SignedString(p.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return token, expiresAt, nil
}

// Verify parses and validates the token (signature, exp, iss). Returns the
// user ID and email, or ErrInvalidToken.
func (p *TokenProvider) Verify(tokenString string) (userID, email string, err error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return p.secret, nil
	})
	if err != nil {
		return "", "", ErrInvalidToken
	}
	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return "", "", ErrInvalidToken
	}
	if claims.Issuer != p.issuer {
		return "", "", ErrInvalidToken
	}
	if claims.Subject == "" {
		return "", "", ErrInvalidToken
	}
	return claims.Subject, claims.Email, nil
}

package auth

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned when an ID token fails verification
var ErrInvalidToken = errors.New("invalid id token")

// Verifier checks ID tokens issued by the identity provider
type Verifier struct {
	secret []byte
	issuer string
}

// NewVerifier creates a Verifier for HMAC-signed tokens. An empty issuer
// accepts tokens from any issuer.
func NewVerifier(secret, issuer string) *Verifier {
	return &Verifier{secret: []byte(secret), issuer: issuer}
}

// Verify parses the token and returns its registered claims
func (v *Verifier) Verify(idToken string) (*jwt.RegisteredClaims, error) {
	if idToken == "" {
		return nil, fmt.Errorf("%w: empty token", ErrInvalidToken)
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{"HS256", "HS384", "HS512"}),
		jwt.WithExpirationRequired(),
	}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}

	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(idToken, claims, func(*jwt.Token) (any, error) {
		return v.secret, nil
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	return claims, nil
}

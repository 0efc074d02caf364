package internal

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// registeredClaims are the claims the time window validation looks at.
var registeredClaims = []string{"exp", "nbf", "iat", "iss", "sub", "aud"}

// JWTVerifier is the TokenVerifier for EARs serialized as JWTs.
type JWTVerifier struct {
	leeway time.Duration
}

func NewJWTVerifier(leeway time.Duration) *JWTVerifier {
	return &JWTVerifier{leeway: leeway}
}

func (v *JWTVerifier) SupportsAlgorithm(alg string) bool {
	if alg == jwt.SigningMethodNone.Alg() {
		return false
	}
	return jwt.GetSigningMethod(alg) != nil
}

// Decode checks the signature of token with key and returns its claims.
// The "alg" header of the token must match alg. Claims are not validated.
func (v *JWTVerifier) Decode(token string, key []byte, alg string) (Claims, error) {
	method := jwt.GetSigningMethod(alg)
	if method == nil || alg == jwt.SigningMethodNone.Alg() {
		return nil, fmt.Errorf("unsupported signing algorithm '%s'", alg)
	}

	verificationKey, err := parseVerificationKey(method, key)
	if err != nil {
		return nil, fmt.Errorf("parsing verification key: %w", err)
	}

	claims := jwt.MapClaims{}
	_, err = jwt.ParseWithClaims(
		token,
		claims,
		func(*jwt.Token) (any, error) {
			return verificationKey, nil
		},
		jwt.WithValidMethods([]string{alg}),
		jwt.WithoutClaimsValidation(),
	)
	if err != nil {
		return nil, fmt.Errorf("parsing token: %w", err)
	}
	return MapClaims(claims), nil
}

// Validate checks the time window of the claims ("nbf" and "exp", when
// present) against now.
func (v *JWTVerifier) Validate(claims Claims, now time.Time) error {
	registered := jwt.MapClaims{}
	for _, name := range registeredClaims {
		if value, ok := claims.Get(name); ok {
			registered[name] = value
		}
	}

	validator := jwt.NewValidator(
		jwt.WithTimeFunc(func() time.Time { return now }),
		jwt.WithLeeway(v.leeway),
	)
	if err := validator.Validate(registered); err != nil {
		return fmt.Errorf("validating claims: %w", err)
	}
	return nil
}

func parseVerificationKey(method jwt.SigningMethod, key []byte) (any, error) {
	switch method.(type) {
	case *jwt.SigningMethodECDSA:
		return jwt.ParseECPublicKeyFromPEM(key)
	case *jwt.SigningMethodRSA, *jwt.SigningMethodRSAPSS:
		return jwt.ParseRSAPublicKeyFromPEM(key)
	case *jwt.SigningMethodEd25519:
		return jwt.ParseEdPublicKeyFromPEM(key)
	case *jwt.SigningMethodHMAC:
		return key, nil
	}
	return nil, fmt.Errorf("unsupported signing method %T", method)
}

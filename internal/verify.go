package internal

import (
	"fmt"
	"time"

	"github.com/blocky/ear/pkg/ear_error"
)

// TokenVerifier checks the signature and validity window of signed tokens
// and exposes their decoded claims.
type TokenVerifier interface {
	SupportsAlgorithm(alg string) bool
	Decode(token string, key []byte, alg string) (Claims, error)
	Validate(claims Claims, now time.Time) error
}

type VerificationTimeFunc func() time.Time

func WithCurrentTime() VerificationTimeFunc {
	return time.Now
}

func WithTime(t time.Time) VerificationTimeFunc {
	return func() time.Time {
		return t
	}
}

// Verify checks the signature of the EAR token with key, validates its time
// window and makes sure its "eat_profile" is one of accepted. Either every
// check passes and a usable EAR is returned, or none is.
func Verify(
	token string,
	key []byte,
	alg string,
	tokenVerifier TokenVerifier,
	verificationTime VerificationTimeFunc,
	accepted []Profile,
) (
	*EAR,
	error,
) {
	if !tokenVerifier.SupportsAlgorithm(alg) {
		return nil, fmt.Errorf("%w \"%s\"", ear_error.ErrUnknownAlgorithm, alg)
	}

	now := verificationTime()
	if now.IsZero() {
		return nil, fmt.Errorf("%w: verification time is 0", ear_error.ErrClaimsInvalid)
	}

	if len(token) == 0 {
		return nil, fmt.Errorf("%w: token is empty", ear_error.ErrSignatureInvalid)
	}
	if len(key) == 0 {
		return nil, fmt.Errorf("%w: key is empty", ear_error.ErrSignatureInvalid)
	}

	claims, err := tokenVerifier.Decode(token, key, alg)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ear_error.ErrSignatureInvalid, err)
	}
	if claims == nil {
		return nil, fmt.Errorf("%w: token has no claims", ear_error.ErrSignatureInvalid)
	}

	err = tokenVerifier.Validate(claims, now)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ear_error.ErrClaimsInvalid, err)
	}

	profile, err := checkProfile(claims, accepted)
	if err != nil {
		return nil, err
	}

	return &EAR{claims: claims, profile: profile}, nil
}

func checkProfile(claims Claims, accepted []Profile) (Profile, error) {
	v, ok := claims.Get(ProfileClaim)
	if !ok {
		return Profile{}, ear_error.ErrMissingProfile
	}

	tag, ok := v.(string)
	if !ok {
		return Profile{}, fmt.Errorf(
			"%w: \"%s\" is a %T, not a string",
			ear_error.ErrMissingProfile,
			ProfileClaim,
			v,
		)
	}

	profile, ok := lookupProfile(tag, accepted)
	if !ok {
		return Profile{},
			fmt.Errorf("%w \"%s\"", ear_error.ErrUnsupportedProfile, tag)
	}
	return profile, nil
}

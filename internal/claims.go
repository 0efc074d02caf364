package internal

import (
	"encoding/json"
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/blocky/ear/pkg/ear_error"
)

const (
	ProfileClaim           = "eat_profile"
	SubmodsClaim           = "submods"
	StatusClaim            = "ear.status"
	TrustVectorClaim       = "ear.trustworthiness-vector"
	AppraisalPolicyIDClaim = "ear.appraisal-policy-id"
	KeyAttestationClaim    = "ear.veraison.key-attestation"
	AkPubClaim             = "akpub"
	IssuedAtClaim          = "iat"
)

// Claims is a decoded claims-set that can be queried by claim name.
type Claims interface {
	Get(name string) (any, bool)
}

// MapClaims is the claims tree produced by decoding the JSON payload of a
// token.
type MapClaims map[string]any

func (c MapClaims) Get(name string) (any, bool) {
	v, ok := c[name]
	return v, ok
}

func asObject(v any) (MapClaims, bool) {
	switch o := v.(type) {
	case map[string]any:
		return o, true
	case MapClaims:
		return o, true
	case jwt.MapClaims:
		return MapClaims(o), true
	}
	return nil, false
}

func getSubmods(claims Claims) (MapClaims, error) {
	v, ok := claims.Get(SubmodsClaim)
	if !ok {
		return nil, ear_error.ErrMissingSubmods
	}

	// some backends hand nested claims back as serialized JSON
	if text, ok := v.(string); ok {
		var submods map[string]any
		if err := json.Unmarshal([]byte(text), &submods); err != nil {
			return nil, fmt.Errorf("%w: %w", ear_error.ErrMalformedSubmods, err)
		}
		if submods == nil {
			return nil, fmt.Errorf("%w: got null", ear_error.ErrMalformedSubmods)
		}
		return submods, nil
	}

	submods, ok := asObject(v)
	if !ok {
		return nil, fmt.Errorf("%w: got %T", ear_error.ErrMalformedSubmods, v)
	}
	return submods, nil
}

func getSubmod(submods MapClaims, name string) (MapClaims, error) {
	v, ok := submods[name]
	if !ok {
		return nil, fmt.Errorf(
			"%w for \"%s\"",
			ear_error.ErrUnknownAppraisalRecord,
			name,
		)
	}

	submod, ok := asObject(v)
	if !ok {
		return nil, fmt.Errorf(
			"%w: appraisal record \"%s\" is a %T",
			ear_error.ErrMalformedSubmods,
			name,
			v,
		)
	}
	return submod, nil
}

func getStringField(record Claims, key string) (string, error) {
	v, ok := record.Get(key)
	if !ok {
		return "", fmt.Errorf("%w: \"%s\"", ear_error.ErrFieldMissingOrWrongType, key)
	}

	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf(
			"%w: \"%s\" is a %T, not a string",
			ear_error.ErrFieldMissingOrWrongType,
			key,
			v,
		)
	}
	return s, nil
}

func getObjectField(record Claims, key string) (MapClaims, error) {
	v, ok := record.Get(key)
	if !ok {
		return nil, fmt.Errorf("%w: \"%s\"", ear_error.ErrFieldMissingOrWrongType, key)
	}

	o, ok := asObject(v)
	if !ok {
		return nil, fmt.Errorf(
			"%w: \"%s\" is a %T, not an object",
			ear_error.ErrFieldMissingOrWrongType,
			key,
			v,
		)
	}
	return o, nil
}

package internal

import (
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/blocky/ear/pkg/ear_error"
)

// EAR is a verified attestation result. Values are only produced by Verify
// and are never modified afterwards, so an EAR can be read from multiple
// goroutines at once.
type EAR struct {
	claims  Claims
	profile Profile
}

func (e *EAR) Profile() string {
	return e.profile.Tag
}

func (e *EAR) Layout() Layout {
	return e.profile.Layout
}

// AppraisalRecords returns the names of the appraisal records in the EAR in
// lexicographic order.
func (e *EAR) AppraisalRecords() ([]string, error) {
	submods, err := e.submods()
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(submods))
	for name := range submods {
		names = append(names, name)
	}
	slices.Sort(names)
	return names, nil
}

// Tier returns the trust tier found in the "ear.status" claim of the named
// appraisal record.
func (e *EAR) Tier(record string) (Tier, error) {
	submod, err := e.submod(record)
	if err != nil {
		return TierNone, err
	}
	return statusOf(submod)
}

// AttestedPublicKey returns the DER encoded SubjectPublicKeyInfo carried by
// the Veraison key attestation extension of the named appraisal record.
func (e *EAR) AttestedPublicKey(record string) ([]byte, error) {
	submod, err := e.submod(record)
	if err != nil {
		return nil, err
	}

	keyAttestation, err := getObjectField(submod, KeyAttestationClaim)
	if err != nil {
		return nil, err
	}

	akpub, err := getStringField(keyAttestation, AkPubClaim)
	if err != nil {
		return nil, err
	}

	key, err := DecodeB64URL(akpub)
	if err != nil {
		return nil, fmt.Errorf("base64 decoding of \"%s\": %w", AkPubClaim, err)
	}
	return key, nil
}

func (e *EAR) AppraisalPolicyID(record string) (string, error) {
	submod, err := e.submod(record)
	if err != nil {
		return "", err
	}
	return getStringField(submod, AppraisalPolicyIDClaim)
}

// TrustVector returns a copy of the trustworthiness vector of the named
// appraisal record. The vector is not interpreted.
func (e *EAR) TrustVector(record string) (map[string]any, error) {
	submod, err := e.submod(record)
	if err != nil {
		return nil, err
	}

	vector, err := getObjectField(submod, TrustVectorClaim)
	if err != nil {
		return nil, err
	}
	return maps.Clone(map[string]any(vector)), nil
}

// OverallTier returns the verdict for the EAR as a whole. For the flat layout
// it is the top level "ear.status". For the modular layout the record tiers
// are aggregated and the most severe one is returned.
func (e *EAR) OverallTier() (Tier, error) {
	if e.profile.Layout == LayoutFlat {
		return statusOf(e.claims)
	}

	names, err := e.AppraisalRecords()
	if err != nil {
		return TierNone, err
	}
	if len(names) == 0 {
		return TierNone, nil
	}

	overall := TierAffirming
	for _, name := range names {
		tier, err := e.Tier(name)
		if err != nil {
			return TierNone, err
		}
		if tier.severity() > overall.severity() {
			overall = tier
		}
	}
	return overall, nil
}

func (e *EAR) IssuedAt() (time.Time, error) {
	v, ok := e.claims.Get(IssuedAtClaim)
	if !ok {
		return time.Time{},
			fmt.Errorf("%w: \"%s\"", ear_error.ErrFieldMissingOrWrongType, IssuedAtClaim)
	}

	iat, err := jwt.MapClaims{IssuedAtClaim: v}.GetIssuedAt()
	if err != nil {
		return time.Time{},
			fmt.Errorf("%w: %w", ear_error.ErrFieldMissingOrWrongType, err)
	}
	return iat.Time, nil
}

func (e *EAR) submods() (MapClaims, error) {
	if e.profile.Layout == LayoutFlat {
		return nil, fmt.Errorf(
			"%w: profile \"%s\" has a flat layout",
			ear_error.ErrMissingSubmods,
			e.profile.Tag,
		)
	}
	return getSubmods(e.claims)
}

func (e *EAR) submod(record string) (MapClaims, error) {
	submods, err := e.submods()
	if err != nil {
		return nil, err
	}
	return getSubmod(submods, record)
}

func statusOf(record Claims) (Tier, error) {
	status, err := getStringField(record, StatusClaim)
	if err != nil {
		return TierNone, err
	}
	return ParseTier(status)
}

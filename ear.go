// Package ear verifies EAT Attestation Results (EAR) serialized as JWTs and
// exposes the appraisal outcomes they carry.
package ear

import (
	"fmt"
	"time"

	"github.com/blocky/ear/internal"
)

type EAR = internal.EAR
type Tier = internal.Tier
type Layout = internal.Layout
type Profile = internal.Profile
type TokenVerifier = internal.TokenVerifier

const (
	TierNone            = internal.TierNone
	TierAffirming       = internal.TierAffirming
	TierWarning         = internal.TierWarning
	TierContraindicated = internal.TierContraindicated
)

const (
	LayoutModular = internal.LayoutModular
	LayoutFlat    = internal.LayoutFlat
)

var (
	ProfileEAR     = internal.ProfileEAR
	ProfileEARFlat = internal.ProfileEARFlat
)

func ParseTier(status string) (Tier, error) {
	return internal.ParseTier(status)
}

type VerificationTime int

const (
	CurrentTime VerificationTime = iota
	FixedTime
)

type VerifierConfig struct {
	verificationTime VerificationTime
	time             time.Time
	leeway           time.Duration
	profiles         []Profile
	tokenVerifier    TokenVerifier
}

type VerifierConfigOption func(*VerifierConfig)

// WithCurrentTime validates the time window of each EAR against the wall
// clock at the moment it is verified.
func WithCurrentTime() VerifierConfigOption {
	return func(c *VerifierConfig) {
		c.verificationTime = CurrentTime
	}
}

// WithTime validates the time window of each EAR against t.
func WithTime(t time.Time) VerifierConfigOption {
	return func(c *VerifierConfig) {
		c.verificationTime = FixedTime
		c.time = t
	}
}

func WithLeeway(d time.Duration) VerifierConfigOption {
	return func(c *VerifierConfig) {
		c.leeway = d
	}
}

// WithProfiles replaces the set of accepted EAR profiles.
func WithProfiles(profiles ...Profile) VerifierConfigOption {
	return func(c *VerifierConfig) {
		c.profiles = profiles
	}
}

func WithTokenVerifier(tv TokenVerifier) VerifierConfigOption {
	return func(c *VerifierConfig) {
		c.tokenVerifier = tv
	}
}

type Verifier struct {
	tokenVerifier    internal.TokenVerifier
	verificationTime internal.VerificationTimeFunc
	profiles         []Profile
}

func NewVerifier(options ...VerifierConfigOption) (*Verifier, error) {
	config := &VerifierConfig{
		verificationTime: CurrentTime,
		profiles:         []Profile{ProfileEAR},
	}
	for _, opt := range options {
		opt(config)
	}

	return NewVerifierFromConfig(config)
}

func NewVerifierFromConfig(config *VerifierConfig) (*Verifier, error) {
	var verifier = new(Verifier)

	switch config.verificationTime {
	case CurrentTime:
		verifier.verificationTime = internal.WithCurrentTime()
	case FixedTime:
		if config.time.IsZero() {
			return nil, fmt.Errorf("fixed verification time is 0")
		}
		verifier.verificationTime = internal.WithTime(config.time)
	default:
		return nil,
			fmt.Errorf("unknown verification time: %d", config.verificationTime)
	}

	if config.leeway < 0 {
		return nil, fmt.Errorf("negative leeway: %v", config.leeway)
	}

	if len(config.profiles) == 0 {
		return nil, fmt.Errorf("no accepted profiles")
	}
	verifier.profiles = append([]Profile(nil), config.profiles...)

	verifier.tokenVerifier = config.tokenVerifier
	if verifier.tokenVerifier == nil {
		verifier.tokenVerifier = internal.NewJWTVerifier(config.leeway)
	}

	return verifier, nil
}

// Verify checks token with key using the JWT algorithm alg (e.g. "ES256").
// Asymmetric keys are PEM encoded; HMAC keys are the raw secret. The
// returned error wraps one of the sentinels in pkg/ear_error.
func (v *Verifier) Verify(token string, key []byte, alg string) (*EAR, error) {
	ear, err := internal.Verify(
		token,
		key,
		alg,
		v.tokenVerifier,
		v.verificationTime,
		v.profiles,
	)
	if err != nil {
		return nil, fmt.Errorf("verifying EAR: %w", err)
	}
	return ear, nil
}

// Verify checks token with the default verifier configuration.
func Verify(token string, key []byte, alg string) (*EAR, error) {
	verifier, err := NewVerifier()
	if err != nil {
		return nil, fmt.Errorf("creating verifier: %w", err)
	}
	return verifier.Verify(token, key, alg)
}

package internal_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/blocky/ear/internal"
	"github.com/blocky/ear/mocks"
	"github.com/blocky/ear/pkg/ear_error"
)

func makeEAR(t *testing.T, claims internal.MapClaims) *internal.EAR {
	tokenVerifier := mocks.NewInternalTokenVerifier(t)
	tokenVerifier.EXPECT().SupportsAlgorithm(mock.Anything).Return(true)
	tokenVerifier.EXPECT().Decode(mock.Anything, mock.Anything, mock.Anything).
		Return(claims, nil)
	tokenVerifier.EXPECT().Validate(mock.Anything, mock.Anything).Return(nil)

	ear, err := internal.Verify(
		"header.payload.signature",
		[]byte("key"),
		"ES256",
		tokenVerifier,
		internal.WithTime(verificationTime),
		[]internal.Profile{internal.ProfileEAR, internal.ProfileEARFlat},
	)
	require.NoError(t, err)
	return ear
}

func modularClaims(submods any) internal.MapClaims {
	return internal.MapClaims{
		internal.ProfileClaim: internal.ProfileEAR.Tag,
		internal.SubmodsClaim: submods,
	}
}

func record(status any) map[string]any {
	return map[string]any{
		internal.StatusClaim: status,
		internal.KeyAttestationClaim: map[string]any{
			internal.AkPubClaim: internal.EARAkPubB64URL,
		},
	}
}

func TestEAR_AppraisalRecords(t *testing.T) {
	t.Run("happy path", func(t *testing.T) {
		// given
		ear := makeEAR(t, modularClaims(map[string]any{
			"TPM_ENACTTRUST": record("affirming"),
			"PARSEC_TPM":     record("warning"),
			"CCA_REALM":      record("none"),
		}))

		// when
		records, err := ear.AppraisalRecords()

		// then
		require.NoError(t, err)
		assert.Equal(t, []string{"CCA_REALM", "PARSEC_TPM", "TPM_ENACTTRUST"}, records)
	})

	t.Run("no records", func(t *testing.T) {
		// given
		ear := makeEAR(t, modularClaims(map[string]any{}))

		// when
		records, err := ear.AppraisalRecords()

		// then
		require.NoError(t, err)
		assert.Empty(t, records)
	})

	t.Run("missing submods", func(t *testing.T) {
		// given
		ear := makeEAR(t, internal.MapClaims{
			internal.ProfileClaim: internal.ProfileEAR.Tag,
		})

		// when
		_, err := ear.AppraisalRecords()

		// then
		assert.ErrorIs(t, err, ear_error.ErrMissingSubmods)
	})

	t.Run("submods serialized as JSON text", func(t *testing.T) {
		// given
		ear := makeEAR(t, modularClaims(
			`{"PARSEC_TPM":{"ear.status":"affirming"},"CCA_REALM":{"ear.status":"warning"}}`,
		))

		// when
		records, err := ear.AppraisalRecords()
		require.NoError(t, err)
		tier, err := ear.Tier("PARSEC_TPM")

		// then
		require.NoError(t, err)
		assert.Equal(t, []string{"CCA_REALM", "PARSEC_TPM"}, records)
		assert.Equal(t, internal.TierAffirming, tier)
	})

	malformedTests := []struct {
		name    string
		submods any
	}{
		{"number", 42},
		{"array", []any{"PARSEC_TPM"}},
		{"text of an array", `[1]`},
		{"truncated text", `{`},
		{"text of null", `null`},
		{"text that is not JSON", `PARSEC_TPM`},
	}
	for _, tt := range malformedTests {
		t.Run("malformed submods - "+tt.name, func(t *testing.T) {
			// given
			ear := makeEAR(t, modularClaims(tt.submods))

			// when
			_, err := ear.AppraisalRecords()

			// then
			assert.ErrorIs(t, err, ear_error.ErrMalformedSubmods)
		})
	}

	t.Run("flat layout", func(t *testing.T) {
		// given
		ear := makeEAR(t, internal.MapClaims{
			internal.ProfileClaim: internal.ProfileEARFlat.Tag,
			internal.StatusClaim:  "affirming",
			internal.SubmodsClaim: map[string]any{"PARSEC_TPM": record("affirming")},
		})

		// when
		_, err := ear.AppraisalRecords()

		// then
		assert.ErrorIs(t, err, ear_error.ErrMissingSubmods)
		assert.ErrorContains(t, err, "flat layout")
	})
}

func TestEAR_Tier(t *testing.T) {
	happyPathTests := []struct {
		status   string
		wantTier internal.Tier
	}{
		{"none", internal.TierNone},
		{"affirming", internal.TierAffirming},
		{"warning", internal.TierWarning},
		{"contraindicated", internal.TierContraindicated},
	}
	for _, tt := range happyPathTests {
		t.Run("happy path - "+tt.status, func(t *testing.T) {
			// given
			ear := makeEAR(t, modularClaims(map[string]any{
				"PARSEC_TPM": record(tt.status),
			}))

			// when
			tier, err := ear.Tier("PARSEC_TPM")

			// then
			require.NoError(t, err)
			assert.Equal(t, tt.wantTier, tier)
		})
	}

	errorTests := []struct {
		name    string
		submods any
		wantErr error
	}{
		{
			"unknown appraisal record",
			map[string]any{"TPM_ENACTTRUST": record("affirming")},
			ear_error.ErrUnknownAppraisalRecord,
		},
		{
			"unknown appraisal record among malformed records",
			map[string]any{"TPM_ENACTTRUST": "not a record", "CCA": record(42)},
			ear_error.ErrUnknownAppraisalRecord,
		},
		{
			"record is not an object",
			map[string]any{"PARSEC_TPM": []any{"affirming"}},
			ear_error.ErrMalformedSubmods,
		},
		{
			"missing status",
			map[string]any{"PARSEC_TPM": map[string]any{}},
			ear_error.ErrFieldMissingOrWrongType,
		},
		{
			"status is not a string",
			map[string]any{"PARSEC_TPM": record(2.0)},
			ear_error.ErrFieldMissingOrWrongType,
		},
		{
			"unknown status",
			map[string]any{"PARSEC_TPM": record("Affirming")},
			ear_error.ErrUnknownStatus,
		},
	}
	for _, tt := range errorTests {
		t.Run(tt.name, func(t *testing.T) {
			// given
			ear := makeEAR(t, modularClaims(tt.submods))

			// when
			_, err := ear.Tier("PARSEC_TPM")

			// then
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestEAR_AttestedPublicKey(t *testing.T) {
	t.Run("happy path", func(t *testing.T) {
		// given
		ear := makeEAR(t, modularClaims(map[string]any{
			"PARSEC_TPM": record("affirming"),
		}))

		// when
		akpub, err := ear.AttestedPublicKey("PARSEC_TPM")

		// then
		require.NoError(t, err)
		assert.Equal(t, internal.EARAkPubDER, akpub)
	})

	t.Run("returned key is owned by the caller", func(t *testing.T) {
		// given
		ear := makeEAR(t, modularClaims(map[string]any{
			"PARSEC_TPM": record("affirming"),
		}))
		first, err := ear.AttestedPublicKey("PARSEC_TPM")
		require.NoError(t, err)

		// when
		first[0] ^= 0xff
		second, err := ear.AttestedPublicKey("PARSEC_TPM")

		// then
		require.NoError(t, err)
		assert.Equal(t, internal.EARAkPubDER, second)
	})

	errorTests := []struct {
		name    string
		record  any
		wantErr error
	}{
		{
			"missing key attestation",
			map[string]any{internal.StatusClaim: "affirming"},
			ear_error.ErrFieldMissingOrWrongType,
		},
		{
			"key attestation is not an object",
			map[string]any{internal.KeyAttestationClaim: internal.EARAkPubB64URL},
			ear_error.ErrFieldMissingOrWrongType,
		},
		{
			"missing akpub",
			map[string]any{internal.KeyAttestationClaim: map[string]any{}},
			ear_error.ErrFieldMissingOrWrongType,
		},
		{
			"akpub is not a string",
			map[string]any{
				internal.KeyAttestationClaim: map[string]any{internal.AkPubClaim: 1.0},
			},
			ear_error.ErrFieldMissingOrWrongType,
		},
		{
			"akpub is empty",
			map[string]any{
				internal.KeyAttestationClaim: map[string]any{internal.AkPubClaim: ""},
			},
			ear_error.ErrEmptyInput,
		},
		{
			"akpub is only padding",
			map[string]any{
				internal.KeyAttestationClaim: map[string]any{internal.AkPubClaim: "===="},
			},
			ear_error.ErrEmptyOutput,
		},
		{
			"akpub is not base64url",
			map[string]any{
				internal.KeyAttestationClaim: map[string]any{internal.AkPubClaim: "*"},
			},
			ear_error.ErrInvalidInput,
		},
	}
	for _, tt := range errorTests {
		t.Run(tt.name, func(t *testing.T) {
			// given
			ear := makeEAR(t, modularClaims(map[string]any{"PARSEC_TPM": tt.record}))

			// when
			akpub, err := ear.AttestedPublicKey("PARSEC_TPM")

			// then
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, akpub)
		})
	}

	t.Run("unknown appraisal record", func(t *testing.T) {
		// given
		ear := makeEAR(t, modularClaims(map[string]any{
			"TPM_ENACTTRUST": map[string]any{},
		}))

		// when
		_, err := ear.AttestedPublicKey("PARSEC_TPM")

		// then
		assert.ErrorIs(t, err, ear_error.ErrUnknownAppraisalRecord)
		assert.ErrorContains(t, err, "PARSEC_TPM")
	})
}

func TestEAR_AppraisalPolicyID(t *testing.T) {
	// given
	ear := makeEAR(t, internal.MapClaims(internal.EARClaims("affirming")))

	// when
	policyID, err := ear.AppraisalPolicyID(internal.EARAppraisalRecord)

	// then
	require.NoError(t, err)
	assert.Equal(t, "https://veraison.example/policy/1/60a0068d", policyID)

	// when
	_, err = ear.AppraisalPolicyID("CCA_REALM")

	// then
	assert.ErrorIs(t, err, ear_error.ErrUnknownAppraisalRecord)
}

func TestEAR_TrustVector(t *testing.T) {
	t.Run("happy path", func(t *testing.T) {
		// given
		ear := makeEAR(t, internal.MapClaims(internal.EARClaims("affirming")))

		// when
		vector, err := ear.TrustVector(internal.EARAppraisalRecord)

		// then
		require.NoError(t, err)
		assert.Equal(t, 2, vector["hardware"])
	})

	t.Run("returned vector is a copy", func(t *testing.T) {
		// given
		ear := makeEAR(t, internal.MapClaims(internal.EARClaims("affirming")))
		vector, err := ear.TrustVector(internal.EARAppraisalRecord)
		require.NoError(t, err)

		// when
		vector["hardware"] = 96
		again, err := ear.TrustVector(internal.EARAppraisalRecord)

		// then
		require.NoError(t, err)
		assert.Equal(t, 2, again["hardware"])
	})

	t.Run("missing vector", func(t *testing.T) {
		// given
		ear := makeEAR(t, modularClaims(map[string]any{
			"PARSEC_TPM": record("affirming"),
		}))

		// when
		_, err := ear.TrustVector("PARSEC_TPM")

		// then
		assert.ErrorIs(t, err, ear_error.ErrFieldMissingOrWrongType)
	})
}

func TestEAR_OverallTier(t *testing.T) {
	tests := []struct {
		name     string
		statuses []string
		wantTier internal.Tier
	}{
		{"no records", nil, internal.TierNone},
		{"all affirming", []string{"affirming", "affirming"}, internal.TierAffirming},
		{"none beats affirming", []string{"affirming", "none"}, internal.TierNone},
		{"warning beats none", []string{"none", "warning", "affirming"}, internal.TierWarning},
		{
			"contraindicated beats everything",
			[]string{"warning", "contraindicated", "none", "affirming"},
			internal.TierContraindicated,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// given
			submods := map[string]any{}
			for i, status := range tt.statuses {
				submods[string(rune('A'+i))] = record(status)
			}
			ear := makeEAR(t, modularClaims(submods))

			// when
			tier, err := ear.OverallTier()

			// then
			require.NoError(t, err)
			assert.Equal(t, tt.wantTier, tier)
		})
	}

	t.Run("record with unknown status", func(t *testing.T) {
		// given
		ear := makeEAR(t, modularClaims(map[string]any{
			"A": record("affirming"),
			"B": record("bogus"),
		}))

		// when
		_, err := ear.OverallTier()

		// then
		assert.ErrorIs(t, err, ear_error.ErrUnknownStatus)
	})

	t.Run("flat layout", func(t *testing.T) {
		// given
		ear := makeEAR(t, internal.MapClaims{
			internal.ProfileClaim: internal.ProfileEARFlat.Tag,
			internal.StatusClaim:  "contraindicated",
		})

		// when
		tier, err := ear.OverallTier()

		// then
		require.NoError(t, err)
		assert.Equal(t, internal.TierContraindicated, tier)
	})

	t.Run("flat layout without status", func(t *testing.T) {
		// given
		ear := makeEAR(t, internal.MapClaims{
			internal.ProfileClaim: internal.ProfileEARFlat.Tag,
		})

		// when
		_, err := ear.OverallTier()

		// then
		assert.ErrorIs(t, err, ear_error.ErrFieldMissingOrWrongType)
	})
}

func TestEAR_IssuedAt(t *testing.T) {
	t.Run("happy path", func(t *testing.T) {
		// given
		claims := modularClaims(map[string]any{})
		claims[internal.IssuedAtClaim] = 1.666529184e+09
		ear := makeEAR(t, claims)

		// when
		iat, err := ear.IssuedAt()

		// then
		require.NoError(t, err)
		assert.Equal(t, time.Unix(1666529184, 0).UTC(), iat.UTC())
	})

	t.Run("missing", func(t *testing.T) {
		// given
		ear := makeEAR(t, modularClaims(map[string]any{}))

		// when
		_, err := ear.IssuedAt()

		// then
		assert.ErrorIs(t, err, ear_error.ErrFieldMissingOrWrongType)
	})

	t.Run("wrong type", func(t *testing.T) {
		// given
		claims := modularClaims(map[string]any{})
		claims[internal.IssuedAtClaim] = "yesterday"
		ear := makeEAR(t, claims)

		// when
		_, err := ear.IssuedAt()

		// then
		assert.ErrorIs(t, err, ear_error.ErrFieldMissingOrWrongType)
	})
}

func TestEAR_ConcurrentReads(t *testing.T) {
	// given
	ear, err := verifyWithJWT(
		internal.EARJWT,
		internal.EARPublicKeyPEM,
		"ES256",
	)
	require.NoError(t, err)

	// when
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			tier, err := ear.Tier(internal.EARAppraisalRecord)
			assert.NoError(t, err)
			assert.Equal(t, internal.TierAffirming, tier)

			akpub, err := ear.AttestedPublicKey(internal.EARAppraisalRecord)
			assert.NoError(t, err)
			assert.Equal(t, internal.EARAkPubDER, akpub)

			_, err = ear.TrustVector(internal.EARAppraisalRecord)
			assert.NoError(t, err)
		}()
	}

	// then
	wg.Wait()
}

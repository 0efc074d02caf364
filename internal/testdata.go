package internal

import (
	_ "embed"
	"encoding/hex"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// The reference EAR was issued by the Veraison verifier for a PARSEC TPM
// attester. It is signed with ES256 and carries no "exp" claim.

//go:embed testdata/ear.jwt
var EARJWT string

//go:embed testdata/ear_pub.pem
var EARPublicKeyPEM []byte

var EARNotBefore = time.Unix(1677247879, 0)

const EARAppraisalRecord = "PARSEC_TPM"

const EARAkPubB64URL = "MFkwEwYHKoZIzj0CAQYIKoZIzj0DAQcDQgAEcjSp8_MWM3gy8TugWO1TpQSj_vIksLpC-g8l5S3lpGb7PWWGoCAjEP8_A59VZwLXgwoZzN0WxuBPjpaWiWsfCQ"

var EARAkPubDER = mustDecodeHex(
	"3059301306072a8648ce3d020106082a8648ce3d030107034200047234a9f3f3" +
		"16337832f13ba058ed53a504a3fef224b0ba42fa0f25e52de5a466fb3d6586a0" +
		"202310ff3f039f556702d7830a19ccdd16c6e04f8e9696896b1f09",
)

// SignEAR serializes claims as a JWT signed with key. It is used to mint
// tokens that the reference EAR cannot cover.
func SignEAR(claims map[string]any, method jwt.SigningMethod, key any) (string, error) {
	return jwt.NewWithClaims(method, jwt.MapClaims(claims)).SignedString(key)
}

// EARClaims returns the claims of a modular EAR with a single appraisal
// record for EARAppraisalRecord in the given status.
func EARClaims(status string) map[string]any {
	return map[string]any{
		ProfileClaim:  ProfileEAR.Tag,
		IssuedAtClaim: EARNotBefore.Unix(),
		SubmodsClaim: map[string]any{
			EARAppraisalRecord: map[string]any{
				StatusClaim:            status,
				AppraisalPolicyIDClaim: "https://veraison.example/policy/1/60a0068d",
				TrustVectorClaim: map[string]any{
					"executables":       2,
					"hardware":          2,
					"instance-identity": 2,
				},
				KeyAttestationClaim: map[string]any{
					AkPubClaim: EARAkPubB64URL,
				},
			},
		},
	}
}

func mustDecodeHex(s string) []byte {
	b, err := hex.DecodeString(s)
	if err != nil {
		panic(err)
	}
	return b
}

package internal

import (
	"encoding/base64"
	"fmt"

	"github.com/blocky/ear/pkg/ear_error"
)

// DecodeB64URL decodes the base64url encoded prefix of in.
//
// Decoding is lenient: padding is optional and the scan stops at the first
// byte outside the URL-safe alphabet ('=' included), so anything following
// the padding is ignored. A trailing group made of a single symbol does not
// carry a whole byte and is dropped.
func DecodeB64URL(in string) ([]byte, error) {
	if len(in) == 0 {
		return nil, ear_error.ErrEmptyInput
	}

	n := 0
	for n < len(in) && isB64URLSymbol(in[n]) {
		n++
	}

	if n == 0 {
		if in[0] == '=' {
			return nil,
				fmt.Errorf("%w: input starts with padding", ear_error.ErrEmptyOutput)
		}
		return nil, fmt.Errorf(
			"%w: unexpected symbol %q at offset 0",
			ear_error.ErrInvalidInput,
			in[0],
		)
	}

	if n%4 == 1 {
		n--
	}
	if n == 0 {
		return nil, fmt.Errorf(
			"%w: a single symbol does not encode a byte",
			ear_error.ErrEmptyOutput,
		)
	}

	out, err := base64.RawURLEncoding.DecodeString(in[:n])
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ear_error.ErrInvalidInput, err)
	}
	return out, nil
}

func isB64URLSymbol(c byte) bool {
	switch {
	case 'A' <= c && c <= 'Z':
		return true
	case 'a' <= c && c <= 'z':
		return true
	case '0' <= c && c <= '9':
		return true
	case c == '-' || c == '_':
		return true
	}
	return false
}

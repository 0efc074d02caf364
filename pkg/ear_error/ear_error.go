package ear_error

type EARError string

func (e EARError) Error() string { return string(e) }

const (
	ErrUnknownAlgorithm = EARError("unknown JWT algorithm")
	ErrSignatureInvalid = EARError("cannot verify EAR JWT")
	ErrClaimsInvalid    = EARError("cannot validate EAR JWT")

	ErrMissingProfile     = EARError("missing mandatory eat_profile")
	ErrUnsupportedProfile = EARError("unknown eat_profile")

	ErrMissingSubmods          = EARError("\"submods\" not found")
	ErrMalformedSubmods        = EARError("\"submods\" does not contain a JSON object")
	ErrUnknownAppraisalRecord  = EARError("no appraisal record found")
	ErrFieldMissingOrWrongType = EARError("claim not found or not of the expected type")

	ErrUnknownStatus = EARError("unknown status")

	ErrEmptyInput   = EARError("base64url input is empty")
	ErrEmptyOutput  = EARError("base64url input decodes to nothing")
	ErrInvalidInput = EARError("base64url input has no valid symbols")
)
